package session

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/courtside-app/courtside/internal/api"
)

// fakeAPI simulates the backend client
type fakeAPI struct {
	token string

	checkCalls   int
	checkResp    *api.SessionResponse
	checkErr     error
	loginResp    *api.LoginResponse
	loginErr     error
	logoutCalls  int
	logoutErr    error
}

func (f *fakeAPI) CheckSession(ctx context.Context) (*api.SessionResponse, error) {
	f.checkCalls++
	return f.checkResp, f.checkErr
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (*api.LoginResponse, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	f.token = f.loginResp.Token
	return f.loginResp, nil
}

func (f *fakeAPI) Logout(ctx context.Context) error {
	f.logoutCalls++
	return f.logoutErr
}

func (f *fakeAPI) SetToken(token string) { f.token = token }
func (f *fakeAPI) Token() string         { return f.token }

func newTestStore(f *fakeAPI) *Store {
	return NewStore(f, zerolog.Nop())
}

func TestStore_InitialSnapshotIsUnchecked(t *testing.T) {
	s := newTestStore(&fakeAPI{})

	snap := s.Snapshot()
	if snap.SessionChecked {
		t.Error("SessionChecked should be false before the first probe")
	}
	if snap.Authenticated {
		t.Error("Authenticated should be false before the first probe")
	}
}

func TestStore_CheckProbesOnce(t *testing.T) {
	f := &fakeAPI{
		checkResp: &api.SessionResponse{
			Authenticated: true,
			User:          &api.User{ID: "u1", Name: "Juan Dela Cruz"},
		},
	}
	s := newTestStore(f)

	snap := s.Check(context.Background())
	if !snap.Authenticated || !snap.SessionChecked {
		t.Fatalf("expected authenticated+checked snapshot, got %+v", snap)
	}

	// second call must not hit the network again
	s.Check(context.Background())
	s.Check(context.Background())
	if f.checkCalls != 1 {
		t.Errorf("CheckSession called %d times, want 1", f.checkCalls)
	}
}

func TestStore_CheckFailureMeansUnauthenticated(t *testing.T) {
	f := &fakeAPI{checkErr: errors.New("connection refused")}
	s := newTestStore(f)

	snap := s.Check(context.Background())
	if snap.Authenticated {
		t.Error("failed probe must be treated as unauthenticated")
	}
	if !snap.SessionChecked {
		t.Error("failed probe must still mark the session as checked")
	}
}

func TestStore_LoginUpdatesSnapshotAndNotifies(t *testing.T) {
	f := &fakeAPI{
		loginResp: &api.LoginResponse{
			Token: "tok-1",
			User:  &api.User{ID: "u1", Name: "Juan Dela Cruz", IsVerified: true},
		},
	}
	s := newTestStore(f)

	var transitions []bool
	s.Subscribe(func(snap Snapshot) {
		transitions = append(transitions, snap.Authenticated)
	}, false)

	if err := s.Login(context.Background(), "juan@club.ph", "secret"); err != nil {
		t.Fatalf("Login() error: %v", err)
	}

	snap := s.Snapshot()
	if !snap.Authenticated || snap.User == nil || snap.User.ID != "u1" {
		t.Errorf("unexpected snapshot after login: %+v", snap)
	}
	if len(transitions) != 1 || !transitions[0] {
		t.Errorf("expected one authenticated notification, got %v", transitions)
	}
	if f.token != "tok-1" {
		t.Errorf("token not installed on API client, got %q", f.token)
	}
}

func TestStore_LoginErrorLeavesStateUntouched(t *testing.T) {
	f := &fakeAPI{loginErr: errors.New("invalid email or password")}
	s := newTestStore(f)

	if err := s.Login(context.Background(), "juan@club.ph", "wrong"); err == nil {
		t.Fatal("expected login error")
	}
	if s.Snapshot().Authenticated {
		t.Error("failed login must not authenticate")
	}
}

func TestStore_LogoutClearsSessionEvenWhenServerFails(t *testing.T) {
	f := &fakeAPI{
		loginResp: &api.LoginResponse{Token: "tok-1", User: &api.User{ID: "u1"}},
		logoutErr: errors.New("backend down"),
	}
	s := newTestStore(f)
	if err := s.Login(context.Background(), "juan@club.ph", "secret"); err != nil {
		t.Fatal(err)
	}

	s.Logout(context.Background())

	snap := s.Snapshot()
	if snap.Authenticated || snap.User != nil {
		t.Errorf("expected cleared session, got %+v", snap)
	}
	if !snap.SessionChecked {
		t.Error("SessionChecked must survive logout")
	}
	if f.token != "" {
		t.Errorf("token not cleared, got %q", f.token)
	}
	if f.logoutCalls != 1 {
		t.Errorf("server logout called %d times, want 1", f.logoutCalls)
	}
}

func TestStore_AdoptTokenFeedsProbe(t *testing.T) {
	f := &fakeAPI{
		checkResp: &api.SessionResponse{Authenticated: true, User: &api.User{ID: "u1"}},
	}
	s := newTestStore(f)

	s.AdoptToken("persisted-token")
	if f.token != "persisted-token" {
		t.Fatalf("AdoptToken did not install the token, got %q", f.token)
	}

	snap := s.Check(context.Background())
	if !snap.Authenticated {
		t.Error("expected authenticated snapshot from adopted token")
	}
}
