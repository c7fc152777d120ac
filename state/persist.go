package state

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"vitaldeck/blobstore"
)

// Load rehydrates the root aggregate from the blob store. An absent blob
// yields the onboarding defaults; a stored blob is trusted verbatim with no
// schema migration.
func Load(ctx context.Context, blobs blobstore.Store) (AppState, error) {
	var s AppState
	err := blobs.Get(ctx, blobstore.KeyAppState, &s)
	if errors.Is(err, blobstore.ErrNotFound) {
		return Default(), nil
	}
	if err != nil {
		return AppState{}, err
	}
	return s, nil
}

// PersistOn subscribes a writer that serializes the whole aggregate to the
// blob store after every dispatch. No debouncing: rapid updates mean
// redundant full-state writes, which is acceptable for a local store.
func PersistOn(store *Store, blobs blobstore.Store, log zerolog.Logger) (unsubscribe func()) {
	return store.Subscribe(func(next AppState, _ Event) {
		if err := blobs.Set(context.Background(), blobstore.KeyAppState, next); err != nil {
			log.Error().Err(err).Msg("failed to persist app state")
		}
	})
}
