package api

import (
	"encoding/json"
	"net/http"
)

// writeJSON serializes v as the response body
func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON parses the request body into dest
func decodeJSON(r *http.Request, dest interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dest)
}

// respondWithError logs the error and sends a JSON error response without
// exposing internals
func (s *Server) respondWithError(w http.ResponseWriter, code int, message string, err error) {
	if err != nil {
		s.log.Warn().Err(err).Int("code", code).Msg(message)
	} else {
		s.log.Warn().Int("code", code).Msg(message)
	}
	writeJSON(w, code, map[string]string{"error": message})
}
