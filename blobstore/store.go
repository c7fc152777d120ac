package blobstore

import "context"

// Well-known blob keys
const (
	KeyAppState     = "app_state"
	KeyResearchLogs = "research_logs"
)

// Store is a key-value blob store holding whole JSON documents. Every write
// replaces the document wholesale; there is no partial update.
type Store interface {
	// Get unmarshals the blob at key into dest. Returns ErrNotFound when the
	// key is absent.
	Get(ctx context.Context, key string, dest interface{}) error

	// Set marshals value and overwrites the blob at key
	Set(ctx context.Context, key string, value interface{}) error

	// Delete removes the blob at key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any underlying resources
	Close() error
}
