package user

import (
	"context"
)

// Repository is the boundary to the external auth provider's user store.
// UpdateMetadata replaces the whole metadata document from a previously
// read snapshot; the store offers no compare-and-swap, so two concurrent
// writers can lose an update (last write wins). Callers keep their
// mutations idempotent so a retried operation converges.
type Repository interface {
	// Get returns the user with parsed metadata. Unknown IDs surface as
	// ErrNotFound.
	Get(ctx context.Context, id string) (*User, error)
	UpdateMetadata(ctx context.Context, id string, metadata Metadata) error
}
