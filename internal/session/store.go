// Package session holds the client-side authentication state: whether the
// current user is authenticated, who they are, and whether the initial
// session probe has completed. The state is transient and rebuilt on every
// process start via a network round-trip.
package session

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/courtside-app/courtside/internal/api"
	"github.com/courtside-app/courtside/internal/state"
)

// Snapshot is the observable authentication state. Consumers must not make a
// redirect decision until SessionChecked is true.
type Snapshot struct {
	Authenticated  bool
	User           *api.User
	SessionChecked bool
}

// API is the subset of the backend client the store depends on
type API interface {
	CheckSession(ctx context.Context) (*api.SessionResponse, error)
	Login(ctx context.Context, email, password string) (*api.LoginResponse, error)
	Logout(ctx context.Context) error
	SetToken(token string)
	Token() string
}

// Store tracks the session lifecycle for the running process
type Store struct {
	api   API
	log   zerolog.Logger
	state *state.Store[Snapshot]

	mu      sync.Mutex
	checked bool
}

// NewStore creates a session store in the unchecked, unauthenticated state
func NewStore(apiClient API, log zerolog.Logger) *Store {
	return &Store{
		api:   apiClient,
		log:   log.With().Str("component", "session").Logger(),
		state: state.New(Snapshot{}),
	}
}

// Snapshot returns the current session state
func (s *Store) Snapshot() Snapshot {
	return s.state.Get()
}

// Subscribe registers a listener for session state changes. The returned
// dispose function must be called on teardown.
func (s *Store) Subscribe(fn func(Snapshot), fireImmediately bool) (dispose func()) {
	return s.state.Subscribe(fn, fireImmediately)
}

// Token returns the bearer token currently installed on the API client
func (s *Store) Token() string {
	return s.api.Token()
}

// AdoptToken installs a previously persisted token so the next Check can
// validate it.
func (s *Store) AdoptToken(token string) {
	s.api.SetToken(token)
}

// Check performs the session probe. Only the first call hits the network;
// later calls return the current snapshot immediately. A failed probe means
// "not authenticated", never an error: the snapshot is still marked checked
// so guards can settle.
func (s *Store) Check(ctx context.Context) Snapshot {
	s.mu.Lock()
	if s.checked {
		s.mu.Unlock()
		return s.state.Get()
	}
	s.checked = true
	s.mu.Unlock()

	resp, err := s.api.CheckSession(ctx)
	if err != nil {
		s.log.Debug().Err(err).Msg("Session probe failed, treating as unauthenticated")
		s.state.Set(Snapshot{Authenticated: false, User: nil, SessionChecked: true})
		return s.state.Get()
	}

	s.state.Set(Snapshot{
		Authenticated:  resp.Authenticated,
		User:           resp.User,
		SessionChecked: true,
	})
	return s.state.Get()
}

// Login authenticates against the backend. On success the API client holds
// the new token and the snapshot flips to authenticated.
func (s *Store) Login(ctx context.Context, email, password string) error {
	resp, err := s.api.Login(ctx, email, password)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.checked = true
	s.mu.Unlock()

	s.log.Info().Str("user_id", resp.User.ID).Msg("User logged in")
	s.state.Set(Snapshot{
		Authenticated:  true,
		User:           resp.User,
		SessionChecked: true,
	})
	return nil
}

// Logout clears the session. The server call is best-effort: local state is
// cleared regardless so a dead backend cannot pin a stale session.
func (s *Store) Logout(ctx context.Context) {
	if err := s.api.Logout(ctx); err != nil {
		s.log.Warn().Err(err).Msg("Server-side logout failed, clearing local session anyway")
	}
	s.api.SetToken("")

	s.mu.Lock()
	s.checked = true
	s.mu.Unlock()

	s.state.Set(Snapshot{Authenticated: false, User: nil, SessionChecked: true})
}
