package bootstrap

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/courtside-app/courtside/internal/api"
	"github.com/courtside-app/courtside/internal/session"
)

// fakeBackend drives a real session store
type fakeBackend struct {
	token string
	user  *api.User
}

func (f *fakeBackend) CheckSession(ctx context.Context) (*api.SessionResponse, error) {
	return &api.SessionResponse{Authenticated: f.user != nil, User: f.user}, nil
}

func (f *fakeBackend) Login(ctx context.Context, email, password string) (*api.LoginResponse, error) {
	return &api.LoginResponse{Token: "tok", User: f.user}, nil
}

func (f *fakeBackend) Logout(ctx context.Context) error { return nil }
func (f *fakeBackend) SetToken(token string)            { f.token = token }
func (f *fakeBackend) Token() string                    { return f.token }

type fakeSockets struct {
	connects    int
	disconnects int
	lastToken   string
}

func (f *fakeSockets) Connect(ctx context.Context, token string) error {
	f.connects++
	f.lastToken = token
	return nil
}

func (f *fakeSockets) Disconnect() { f.disconnects++ }

type fakeProfiles struct {
	primes int
	loads  int
	clears int
}

func (f *fakeProfiles) Prime(user *api.User)                        { f.primes++ }
func (f *fakeProfiles) Load(ctx context.Context) (*api.User, error) { f.loads++; return nil, nil }
func (f *fakeProfiles) Clear()                                      { f.clears++ }

func TestCoordinator_InitialProbeAuthenticated(t *testing.T) {
	backend := &fakeBackend{user: &api.User{ID: "u1"}, token: "persisted"}
	sessions := session.NewStore(backend, zerolog.Nop())
	sockets := &fakeSockets{}
	profiles := &fakeProfiles{}

	c := New(sessions, sockets, profiles, zerolog.Nop())
	c.Run(context.Background())
	defer c.Close()

	if sockets.connects != 1 {
		t.Errorf("socket connects = %d, want 1", sockets.connects)
	}
	if sockets.lastToken != "persisted" {
		t.Errorf("socket token = %q, want persisted", sockets.lastToken)
	}
	if profiles.primes != 1 || profiles.loads != 1 {
		t.Errorf("profile primes/loads = %d/%d, want 1/1", profiles.primes, profiles.loads)
	}
}

func TestCoordinator_InitialProbeUnauthenticatedOpensNothing(t *testing.T) {
	backend := &fakeBackend{} // nil user: probe resolves unauthenticated
	sessions := session.NewStore(backend, zerolog.Nop())
	sockets := &fakeSockets{}
	profiles := &fakeProfiles{}

	c := New(sessions, sockets, profiles, zerolog.Nop())
	c.Run(context.Background())
	defer c.Close()

	if sockets.connects != 0 {
		t.Errorf("socket connects = %d, want 0", sockets.connects)
	}
	if profiles.loads != 0 {
		t.Errorf("profile loads = %d, want 0", profiles.loads)
	}
	// the unauthenticated edge still clears state exactly once
	if profiles.clears != 1 {
		t.Errorf("profile clears = %d, want 1", profiles.clears)
	}
}

func TestCoordinator_ExactlyOncePerTransition(t *testing.T) {
	backend := &fakeBackend{user: &api.User{ID: "u1"}}
	sessions := session.NewStore(backend, zerolog.Nop())
	sockets := &fakeSockets{}
	profiles := &fakeProfiles{}

	c := New(sessions, sockets, profiles, zerolog.Nop())
	c.Run(context.Background())
	defer c.Close()

	// repeated logins while already authenticated are not a transition
	sessions.Login(context.Background(), "juan@club.ph", "secret")
	sessions.Login(context.Background(), "juan@club.ph", "secret")
	if sockets.connects != 1 {
		t.Errorf("socket connects = %d after redundant logins, want 1", sockets.connects)
	}

	// logout is one transition
	sessions.Logout(context.Background())
	if sockets.disconnects != 1 || profiles.clears != 1 {
		t.Errorf("disconnects/clears = %d/%d after logout, want 1/1",
			sockets.disconnects, profiles.clears)
	}

	// logging back in is another
	sessions.Login(context.Background(), "juan@club.ph", "secret")
	if sockets.connects != 2 || profiles.loads != 2 {
		t.Errorf("connects/loads = %d/%d after re-login, want 2/2",
			sockets.connects, profiles.loads)
	}
}

func TestCoordinator_RunTwiceIsNoop(t *testing.T) {
	backend := &fakeBackend{user: &api.User{ID: "u1"}}
	sessions := session.NewStore(backend, zerolog.Nop())
	sockets := &fakeSockets{}
	profiles := &fakeProfiles{}

	c := New(sessions, sockets, profiles, zerolog.Nop())
	c.Run(context.Background())
	c.Run(context.Background())
	defer c.Close()

	if sockets.connects != 1 {
		t.Errorf("socket connects = %d after double Run, want 1", sockets.connects)
	}
}

// blockingProfiles models the cache write a real profile load performs, and
// blocks in Load until released so a logout can race the fetch.
type blockingProfiles struct {
	user    *api.User
	loading chan struct{} // closed when Load has started
	release chan struct{}

	mu     sync.Mutex
	cached *api.User
}

func (f *blockingProfiles) Prime(user *api.User) {}

func (f *blockingProfiles) Load(ctx context.Context) (*api.User, error) {
	close(f.loading)
	<-f.release
	f.mu.Lock()
	f.cached = f.user
	f.mu.Unlock()
	return f.user, nil
}

func (f *blockingProfiles) Clear() {
	f.mu.Lock()
	f.cached = nil
	f.mu.Unlock()
}

func (f *blockingProfiles) current() *api.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cached
}

func TestCoordinator_LogoutDuringProfileLoadDropsStaleCache(t *testing.T) {
	user := &api.User{ID: "u1"}
	backend := &fakeBackend{user: user}
	sessions := session.NewStore(backend, zerolog.Nop())
	sockets := &fakeSockets{}
	profiles := &blockingProfiles{
		user:    user,
		loading: make(chan struct{}),
		release: make(chan struct{}),
	}

	c := New(sessions, sockets, profiles, zerolog.Nop())
	done := make(chan struct{})
	go func() {
		c.Run(context.Background()) // probe authenticates, then Load blocks
		close(done)
	}()

	<-profiles.loading
	sessions.Logout(context.Background()) // arrives while the fetch is in flight

	close(profiles.release)
	<-done
	defer c.Close()

	if got := profiles.current(); got != nil {
		t.Errorf("profile cache = %+v after logout raced the load, want nil", got)
	}
}

// blockingSockets blocks in Connect until released so a logout can race the
// dial.
type blockingSockets struct {
	dialing chan struct{} // closed when Connect has started
	release chan struct{}

	mu          sync.Mutex
	connects    int
	disconnects int
}

func (f *blockingSockets) Connect(ctx context.Context, token string) error {
	close(f.dialing)
	<-f.release
	f.mu.Lock()
	f.connects++
	f.mu.Unlock()
	return nil
}

func (f *blockingSockets) Disconnect() {
	f.mu.Lock()
	f.disconnects++
	f.mu.Unlock()
}

func (f *blockingSockets) counts() (connects, disconnects int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connects, f.disconnects
}

func TestCoordinator_LogoutDuringConnectTearsDownStaleSocket(t *testing.T) {
	backend := &fakeBackend{user: &api.User{ID: "u1"}}
	sessions := session.NewStore(backend, zerolog.Nop())
	sockets := &blockingSockets{
		dialing: make(chan struct{}),
		release: make(chan struct{}),
	}
	profiles := &fakeProfiles{}

	c := New(sessions, sockets, profiles, zerolog.Nop())
	done := make(chan struct{})
	go func() {
		c.Run(context.Background()) // probe authenticates, then Connect blocks
		close(done)
	}()

	<-sockets.dialing
	sessions.Logout(context.Background()) // arrives while the dial is in flight

	close(sockets.release)
	<-done
	defer c.Close()

	// one disconnect for the logout edge, one tearing down the stale dial
	if _, disconnects := sockets.counts(); disconnects != 2 {
		t.Errorf("disconnects = %d after logout raced the connect, want 2", disconnects)
	}
	// the stale transition must not go on to load the profile
	if profiles.loads != 0 {
		t.Errorf("profile loads = %d for a stale transition, want 0", profiles.loads)
	}
}

// Shutdown can race startup; the race detector checks the locking here.
func TestCoordinator_ConcurrentRunAndClose(t *testing.T) {
	backend := &fakeBackend{user: &api.User{ID: "u1"}}
	sessions := session.NewStore(backend, zerolog.Nop())
	released := make(chan struct{})
	close(released)
	sockets := &blockingSockets{dialing: make(chan struct{}), release: released}
	profiles := &blockingProfiles{
		user:    &api.User{ID: "u1"},
		loading: make(chan struct{}),
		release: released,
	}

	c := New(sessions, sockets, profiles, zerolog.Nop())

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		c.Run(context.Background())
	}()
	go func() {
		defer wg.Done()
		c.Close()
	}()
	wg.Wait()
	c.Close()
}

func TestCoordinator_CloseDisconnectsAndStopsReacting(t *testing.T) {
	backend := &fakeBackend{user: &api.User{ID: "u1"}}
	sessions := session.NewStore(backend, zerolog.Nop())
	sockets := &fakeSockets{}
	profiles := &fakeProfiles{}

	c := New(sessions, sockets, profiles, zerolog.Nop())
	c.Run(context.Background())
	c.Close()

	disconnectsAtClose := sockets.disconnects
	if disconnectsAtClose == 0 {
		t.Error("Close did not disconnect the socket")
	}

	// transitions after Close are ignored
	sessions.Logout(context.Background())
	if profiles.clears != 0 {
		t.Errorf("profile clears = %d after Close, want 0", profiles.clears)
	}
}
