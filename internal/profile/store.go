// Package profile caches the current user's profile for display. The cache is
// primed from the session probe when possible and only hits the network when
// it has nothing for the current user.
package profile

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/courtside-app/courtside/internal/api"
	"github.com/courtside-app/courtside/internal/state"
)

// API is the subset of the backend client the store depends on
type API interface {
	GetProfile(ctx context.Context) (*api.User, error)
	UpdateProfile(ctx context.Context, req api.UpdateProfileRequest) (*api.User, error)
}

// Store is the read-through profile cache
type Store struct {
	api   API
	log   zerolog.Logger
	state *state.Store[*api.User]

	mu      sync.Mutex
	loading bool
}

// NewStore creates an empty profile cache
func NewStore(apiClient API, log zerolog.Logger) *Store {
	return &Store{
		api:   apiClient,
		log:   log.With().Str("component", "profile").Logger(),
		state: state.New[*api.User](nil),
	}
}

// Current returns the cached profile, or nil when nothing is cached
func (s *Store) Current() *api.User {
	return s.state.Get()
}

// Subscribe registers a listener for profile changes
func (s *Store) Subscribe(fn func(*api.User), fireImmediately bool) (dispose func()) {
	return s.state.Subscribe(fn, fireImmediately)
}

// Prime seeds the cache from an already-known user (typically the session
// probe result) without a network round-trip.
func (s *Store) Prime(user *api.User) {
	s.state.Set(user)
}

// Load returns the cached profile, fetching it from the API only when the
// cache is empty. Concurrent loads collapse into one fetch.
func (s *Store) Load(ctx context.Context) (*api.User, error) {
	if cached := s.state.Get(); cached != nil {
		return cached, nil
	}

	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return s.state.Get(), nil
	}
	s.loading = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	user, err := s.api.GetProfile(ctx)
	if err != nil {
		return nil, err
	}

	s.state.Set(user)
	return user, nil
}

// Update writes the new profile through to the API and refreshes the cache
func (s *Store) Update(ctx context.Context, req api.UpdateProfileRequest) (*api.User, error) {
	user, err := s.api.UpdateProfile(ctx, req)
	if err != nil {
		return nil, err
	}

	s.log.Debug().Str("user_id", user.ID).Msg("Profile updated")
	s.state.Set(user)
	return user, nil
}

// Clear empties the cache on logout
func (s *Store) Clear() {
	s.state.Set(nil)
}
