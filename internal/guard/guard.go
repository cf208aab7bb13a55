// Package guard decides whether the current session may access a route, and
// re-evaluates that decision whenever session state changes so a mid-session
// logout immediately revokes access to the active view.
package guard

import (
	"sync"

	"github.com/courtside-app/courtside/internal/session"
)

// Decision is the outcome of a guard evaluation
type Decision int

const (
	// Pending means the initial session probe has not resolved yet; the
	// caller must not redirect.
	Pending Decision = iota
	// Allow renders the requested view
	Allow
	// RedirectLogin sends the visitor to the login page
	RedirectLogin
	// RedirectHome sends an under-privileged user to the home page
	RedirectHome
	// RedirectRegister sends an unverified user to registration/verification
	RedirectRegister
)

func (d Decision) String() string {
	switch d {
	case Pending:
		return "pending"
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect-login"
	case RedirectHome:
		return "redirect-home"
	case RedirectRegister:
		return "redirect-register"
	default:
		return "unknown"
	}
}

// Requirements describe what a route demands of the session
type Requirements struct {
	RequireAuth       bool
	RequireAdmin      bool
	RequireSuperAdmin bool
}

// Route pairs a path with its access requirements
type Route struct {
	Path string
	Req  Requirements
}

// DefaultVerificationAllowlist lists the paths an authenticated-but-unverified
// user may still visit.
var DefaultVerificationAllowlist = []string{"/register", "/verify"}

// Guard evaluates access decisions against a verification allowlist
type Guard struct {
	allowlist map[string]bool
}

// New creates a guard. When no allowlist paths are given the default
// registration/verification allowlist applies.
func New(verificationAllowlist ...string) *Guard {
	if len(verificationAllowlist) == 0 {
		verificationAllowlist = DefaultVerificationAllowlist
	}
	m := make(map[string]bool, len(verificationAllowlist))
	for _, p := range verificationAllowlist {
		m[p] = true
	}
	return &Guard{allowlist: m}
}

// Evaluate decides access for a route given a session snapshot. The check
// order doubles as the tie-break when several conditions fail:
// unauthenticated, then unverified, then missing super-admin, then missing
// admin. No decision is made before the session probe has resolved.
func (g *Guard) Evaluate(snap session.Snapshot, route Route) Decision {
	if !snap.SessionChecked {
		return Pending
	}

	needsAuth := route.Req.RequireAuth || route.Req.RequireAdmin || route.Req.RequireSuperAdmin
	if needsAuth && (!snap.Authenticated || snap.User == nil) {
		return RedirectLogin
	}

	// Unverified members are confined to the registration/verification pages
	// regardless of what the route itself requires.
	if snap.Authenticated && snap.User != nil && !snap.User.IsVerified && !g.allowlist[route.Path] {
		return RedirectRegister
	}

	if route.Req.RequireSuperAdmin && !snap.User.IsSuperAdmin {
		return RedirectHome
	}
	if route.Req.RequireAdmin && !(snap.User.IsAdmin || snap.User.IsSuperAdmin) {
		return RedirectHome
	}

	return Allow
}

// Watcher re-evaluates a route against every session state change. Route
// changes are pushed explicitly via SetRoute rather than observed, so
// navigation unrelated to auth does not trigger re-validation.
type Watcher struct {
	guard *Guard

	mu       sync.Mutex
	route    Route
	last     Decision
	hasLast  bool
	onChange func(Decision)

	dispose func()
}

// Watch subscribes to the session store and delivers the initial decision for
// route immediately. onChange fires only when the decision actually changes.
// The returned watcher must be Stopped on teardown.
func (g *Guard) Watch(store *session.Store, route Route, onChange func(Decision)) *Watcher {
	w := &Watcher{
		guard:    g,
		route:    route,
		onChange: onChange,
	}
	w.dispose = store.Subscribe(func(snap session.Snapshot) {
		w.deliver(g.Evaluate(snap, w.currentRoute()))
	}, true)
	return w
}

// SetRoute switches the watched route and re-evaluates against the given
// snapshot right away.
func (w *Watcher) SetRoute(route Route, snap session.Snapshot) {
	w.mu.Lock()
	w.route = route
	// A new route is a new decision context: forget the previous decision so
	// an identical outcome is still delivered for the new path.
	w.hasLast = false
	w.mu.Unlock()

	w.deliver(w.guard.Evaluate(snap, route))
}

// Stop removes the session subscription
func (w *Watcher) Stop() {
	w.dispose()
}

func (w *Watcher) currentRoute() Route {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.route
}

func (w *Watcher) deliver(d Decision) {
	w.mu.Lock()
	if w.hasLast && w.last == d {
		w.mu.Unlock()
		return
	}
	w.last = d
	w.hasLast = true
	w.mu.Unlock()

	w.onChange(d)
}
