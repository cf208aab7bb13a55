// Package bootstrap coordinates the session lifecycle: it runs the initial
// session probe, then opens/closes the realtime socket and loads/clears the
// profile cache on every authentication transition, exactly once per
// transition.
package bootstrap

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/courtside-app/courtside/internal/api"
	"github.com/courtside-app/courtside/internal/session"
)

// Sockets is the realtime connection surface the coordinator drives
type Sockets interface {
	Connect(ctx context.Context, token string) error
	Disconnect()
}

// Profiles is the profile cache surface the coordinator drives
type Profiles interface {
	Prime(user *api.User)
	Load(ctx context.Context) (*api.User, error)
	Clear()
}

// Coordinator wires the session store to the socket manager and profile cache
type Coordinator struct {
	sessions *session.Store
	sockets  Sockets
	profiles Profiles
	log      zerolog.Logger

	mu      sync.Mutex
	started bool
	known   bool // a transition has been observed
	auth    bool // last observed Authenticated value
	gen     uint64
	dispose func()

	ctx context.Context
}

// New creates an idle coordinator
func New(sessions *session.Store, sockets Sockets, profiles Profiles, log zerolog.Logger) *Coordinator {
	return &Coordinator{
		sessions: sessions,
		sockets:  sockets,
		profiles: profiles,
		log:      log.With().Str("component", "bootstrap").Logger(),
	}
}

// Run subscribes to session transitions and, if no probe has completed yet,
// performs the initial one. Calling Run again is a no-op.
func (c *Coordinator) Run(ctx context.Context) {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return
	}
	c.started = true
	c.ctx = ctx
	c.mu.Unlock()

	dispose := c.sessions.Subscribe(func(snap session.Snapshot) {
		c.apply(snap)
	}, true)

	c.mu.Lock()
	c.dispose = dispose
	c.mu.Unlock()

	if !c.sessions.Snapshot().SessionChecked {
		c.sessions.Check(ctx)
	}
}

// Close disposes the subscription and tears down the realtime connection
func (c *Coordinator) Close() {
	c.mu.Lock()
	dispose := c.dispose
	c.dispose = nil
	c.gen++ // invalidate in-flight transitions
	c.mu.Unlock()

	if dispose != nil {
		dispose()
	}
	c.sockets.Disconnect()
}

// apply reacts to a session snapshot. Only authentication edges act; repeated
// snapshots with the same Authenticated value are ignored, which is what
// keeps socket opens and profile loads to one per transition.
func (c *Coordinator) apply(snap session.Snapshot) {
	if !snap.SessionChecked {
		return
	}

	c.mu.Lock()
	if c.known && c.auth == snap.Authenticated {
		c.mu.Unlock()
		return
	}
	c.known = true
	c.auth = snap.Authenticated
	c.gen++
	gen := c.gen
	ctx := c.ctx
	c.mu.Unlock()

	if snap.Authenticated {
		c.onLogin(ctx, gen, snap.User)
	} else {
		c.onLogout()
	}
}

func (c *Coordinator) onLogin(ctx context.Context, gen uint64, user *api.User) {
	c.profiles.Prime(user)

	if err := c.sockets.Connect(ctx, c.sessions.Token()); err != nil {
		c.log.Warn().Err(err).Msg("Failed to open realtime connection")
	}

	// a logout may have raced the connect; results from a stale transition
	// must not be applied
	if !c.current(gen) {
		c.sockets.Disconnect()
		return
	}

	if _, err := c.profiles.Load(ctx); err != nil {
		c.log.Warn().Err(err).Msg("Failed to load profile after login")
		return
	}

	// the profile fetch can lose the same race; a logged-out process must
	// not keep a cached profile
	if !c.current(gen) {
		c.profiles.Clear()
	}
}

func (c *Coordinator) onLogout() {
	c.sockets.Disconnect()
	c.profiles.Clear()
}

func (c *Coordinator) current(gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen == gen
}
