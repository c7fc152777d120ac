package api

import (
	"net/http"

	"vitaldeck/catalog"
	"vitaldeck/derive"
	"vitaldeck/generator"
	"vitaldeck/state"
)

// doctorSummary is the full doctor-visit preparation payload
type doctorSummary struct {
	VisitType        catalog.VisitType        `json:"visitType"`
	Tip              string                   `json:"tip"`
	DiscussionPoints []derive.DiscussionPoint `json:"discussionPoints"`
	StarredPointIDs  []string                 `json:"starredPointIds"`
	PriorityMetrics  []generator.Summary      `json:"priorityMetrics"`
}

func (s *Server) handleGetDoctorSummary(w http.ResponseWriter, _ *http.Request) {
	st := s.store.State()

	priority := make([]generator.Summary, 0, len(catalog.DoctorViewPriorities))
	for _, id := range catalog.DoctorViewPriorities {
		if m, ok := generator.Find(s.summaries, id); ok {
			priority = append(priority, m)
		}
	}

	writeJSON(w, http.StatusOK, doctorSummary{
		VisitType:        st.DoctorVisitType,
		Tip:              catalog.VisitTips[st.DoctorVisitType],
		DiscussionPoints: derive.DiscussionPoints(st.DoctorVisitType, st.SavedObservations, s.summaries),
		StarredPointIDs:  st.StarredDiscussionIDs,
		PriorityMetrics:  priority,
	})
}

func (s *Server) handleSetVisitType(w http.ResponseWriter, r *http.Request) {
	var body struct {
		VisitType string `json:"visitType"`
	}
	if err := decodeJSON(r, &body); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	visit, err := catalog.ParseVisitType(body.VisitType)
	if err != nil {
		s.respondWithError(w, http.StatusBadRequest, "unknown visit type", err)
		return
	}
	writeJSON(w, http.StatusOK, s.store.Dispatch(state.SetVisitType{Visit: visit}))
}

func (s *Server) handleStarPoint(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Dispatch(state.ToggleStarredPoint{PointID: r.PathValue("id")}))
}
