package testutil

import (
	"context"
	"sync"

	"github.com/zurichjs/rewards/internal/domain/user"
	ierr "github.com/zurichjs/rewards/internal/errors"
)

// InMemoryUserStore implements user.Repository for testing
type InMemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]*user.User
}

// NewInMemoryUserStore creates a new in-memory user store
func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{
		users: make(map[string]*user.User),
	}
}

// CreateUser seeds a user record. Metadata defaults to an empty document
// at the current schema version.
func (s *InMemoryUserStore) CreateUser(u *user.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.Metadata.SchemaVersion == 0 {
		u.Metadata.SchemaVersion = user.MetadataSchemaVersion
	}
	s.users[u.ID] = u
}

func (s *InMemoryUserStore) Get(ctx context.Context, id string) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ierr.NewError("user not found").
			WithHintf("User %s does not exist", id).
			Mark(ierr.ErrNotFound)
	}

	clone := *u
	return &clone, nil
}

func (s *InMemoryUserStore) UpdateMetadata(ctx context.Context, id string, metadata user.Metadata) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return ierr.NewError("user not found").
			WithHintf("User %s does not exist", id).
			Mark(ierr.ErrNotFound)
	}

	metadata.SchemaVersion = user.MetadataSchemaVersion
	u.Metadata = metadata
	return nil
}

// Clear removes all users from the store
func (s *InMemoryUserStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = make(map[string]*user.User)
}
