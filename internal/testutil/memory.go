package testutil

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/clientbook/clientbook/internal/model"
	"github.com/clientbook/clientbook/internal/repository"
)

// MemoryStore is an in-memory stand-in for repository.Repository.
// It mirrors the repository's owner scoping, ordering and sentinel errors.
// Records are copied on the way in and out so callers never alias stored state.
type MemoryStore struct {
	mu       sync.Mutex
	users    map[string]model.User
	clients  map[string]model.Client
	meetings map[string]model.Meeting

	// Err, when set, is returned by every operation.
	Err error
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[string]model.User),
		clients:  make(map[string]model.Client),
		meetings: make(map[string]model.Meeting),
	}
}

// CreateUser stores a user, enforcing email uniqueness.
func (s *MemoryStore) CreateUser(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if s.emailTaken(user.Email, "") {
		return repository.ErrEmailExists
	}
	s.users[user.ID] = *user
	return nil
}

// GetUserByID returns a copy of the user.
func (s *MemoryStore) GetUserByID(_ context.Context, id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return &u, nil
}

// GetUserByEmail matches email exactly.
func (s *MemoryStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

// UpdateUserProfile writes the mutable profile fields.
func (s *MemoryStore) UpdateUserProfile(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	stored, ok := s.users[user.ID]
	if !ok {
		return repository.ErrUserNotFound
	}
	if s.emailTaken(user.Email, user.ID) {
		return repository.ErrEmailExists
	}
	stored.FullName = user.FullName
	stored.Email = user.Email
	stored.Phone = user.Phone
	stored.ProfilePicture = user.ProfilePicture
	s.users[user.ID] = stored
	return nil
}

// UpdatePasswordHash replaces the stored hash.
func (s *MemoryStore) UpdatePasswordHash(_ context.Context, id, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	stored, ok := s.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	stored.PasswordHash = passwordHash
	s.users[id] = stored
	return nil
}

func (s *MemoryStore) emailTaken(email, exceptID string) bool {
	for id, u := range s.users {
		if id != exceptID && u.Email == email {
			return true
		}
	}
	return false
}

// CreateClient stores a client.
func (s *MemoryStore) CreateClient(_ context.Context, c *model.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.clients[c.ID] = *c
	return nil
}

// ListClients returns the owner's clients, newest first.
func (s *MemoryStore) ListClients(_ context.Context, ownerID string) ([]*model.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]*model.Client, 0)
	for _, c := range s.clients {
		if c.OwnerID == ownerID {
			out = append(out, &c)
		}
	}
	slices.SortFunc(out, func(a, b *model.Client) int {
		if n := b.CreatedAt.Compare(a.CreatedAt); n != 0 {
			return n
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return out, nil
}

// GetClient returns the client only when it belongs to ownerID.
func (s *MemoryStore) GetClient(_ context.Context, ownerID, id string) (*model.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	c, ok := s.clients[id]
	if !ok || c.OwnerID != ownerID {
		return nil, repository.ErrClientNotFound
	}
	return &c, nil
}

// UpdateClient overwrites a client matched by id and owner.
func (s *MemoryStore) UpdateClient(_ context.Context, c *model.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	stored, ok := s.clients[c.ID]
	if !ok || stored.OwnerID != c.OwnerID {
		return repository.ErrClientNotFound
	}
	updated := *c
	updated.CreatedAt = stored.CreatedAt
	s.clients[c.ID] = updated
	return nil
}

// DeleteClient removes a client matched by id and owner.
func (s *MemoryStore) DeleteClient(_ context.Context, ownerID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	c, ok := s.clients[id]
	if !ok || c.OwnerID != ownerID {
		return repository.ErrClientNotFound
	}
	delete(s.clients, id)
	return nil
}

// CreateMeeting stores a meeting.
func (s *MemoryStore) CreateMeeting(_ context.Context, m *model.Meeting) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.meetings[m.ID] = *m
	return nil
}

// ListMeetings returns the owner's meetings in ascending date order.
func (s *MemoryStore) ListMeetings(_ context.Context, ownerID string) ([]*model.Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]*model.Meeting, 0)
	for _, m := range s.meetings {
		if m.OwnerID == ownerID {
			out = append(out, &m)
		}
	}
	slices.SortFunc(out, func(a, b *model.Meeting) int {
		if n := a.DateTime.Compare(b.DateTime); n != 0 {
			return n
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}

// GetMeeting returns the meeting only when it belongs to ownerID.
func (s *MemoryStore) GetMeeting(_ context.Context, ownerID, id string) (*model.Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	m, ok := s.meetings[id]
	if !ok || m.OwnerID != ownerID {
		return nil, repository.ErrMeetingNotFound
	}
	return &m, nil
}

// UpdateMeeting overwrites a meeting matched by id and owner.
func (s *MemoryStore) UpdateMeeting(_ context.Context, m *model.Meeting) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	stored, ok := s.meetings[m.ID]
	if !ok || stored.OwnerID != m.OwnerID {
		return repository.ErrMeetingNotFound
	}
	updated := *m
	updated.CreatedAt = stored.CreatedAt
	s.meetings[m.ID] = updated
	return nil
}

// DeleteMeeting removes a meeting matched by id and owner.
func (s *MemoryStore) DeleteMeeting(_ context.Context, ownerID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	m, ok := s.meetings[id]
	if !ok || m.OwnerID != ownerID {
		return repository.ErrMeetingNotFound
	}
	delete(s.meetings, id)
	return nil
}

// ErrCacheDown is returned by a MemoryProfileCache with Broken set.
var ErrCacheDown = errors.New("cache unavailable")

// MemoryProfileCache is an in-memory profile cache.
type MemoryProfileCache struct {
	mu      sync.Mutex
	entries map[string]model.User

	// Broken makes every call fail with ErrCacheDown.
	Broken bool
}

// NewMemoryProfileCache returns an empty cache.
func NewMemoryProfileCache() *MemoryProfileCache {
	return &MemoryProfileCache{entries: make(map[string]model.User)}
}

// GetProfile returns nil, nil on a miss.
func (c *MemoryProfileCache) GetProfile(_ context.Context, userID string) (*model.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Broken {
		return nil, ErrCacheDown
	}
	u, ok := c.entries[userID]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

// SetProfile stores the profile without its password hash.
func (c *MemoryProfileCache) SetProfile(_ context.Context, user *model.User) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Broken {
		return ErrCacheDown
	}
	u := *user
	u.PasswordHash = ""
	c.entries[user.ID] = u
	return nil
}

// AddProfile stores the profile only when no entry exists.
func (c *MemoryProfileCache) AddProfile(_ context.Context, user *model.User) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Broken {
		return ErrCacheDown
	}
	if _, ok := c.entries[user.ID]; ok {
		return nil
	}
	u := *user
	u.PasswordHash = ""
	c.entries[user.ID] = u
	return nil
}

// DeleteProfile drops a cached profile.
func (c *MemoryProfileCache) DeleteProfile(_ context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Broken {
		return ErrCacheDown
	}
	delete(c.entries, userID)
	return nil
}

// Has reports whether userID is cached.
func (c *MemoryProfileCache) Has(userID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[userID]
	return ok
}
