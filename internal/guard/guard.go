// Package guard decides, per render/navigation, whether a route's content
// may be shown or the user must be redirected. Guards are pure functions of
// session state: no timers, no internal state; expiry is rechecked on every
// call, never proactively on a schedule.
package guard

import (
	"time"

	"ddg-console/internal/session"
	"ddg-console/internal/token"
)

// Routes the guards redirect to.
const (
	// AnonymousEntry is the login route.
	AnonymousEntry = "/"
	// AuthenticatedLanding is the post-login landing route.
	AuthenticatedLanding = "/dashboard"
)

// Outcome is the kind of guard decision.
type Outcome int

const (
	// Render allows the route's content to show.
	Render Outcome = iota
	// Redirect sends the user to Decision.Target instead.
	Redirect
)

// Decision is the result of evaluating a gate: render the guarded content or
// redirect to Target. The consuming front end performs the actual
// navigation, keeping the decision logic free of any rendering dependency.
type Decision struct {
	Outcome Outcome
	Target  string
}

// Authenticated gates routes that require a live session. No token redirects
// to the anonymous entry; an expired token first clears the session (the
// same idempotent recovery every expiry path converges on) and then
// redirects; a live token renders.
func Authenticated(store *session.Store) Decision {
	return authenticatedAt(store, time.Now())
}

// Anonymous gates the login route. No token renders; an expired token is
// treated as no session (cleared, then rendered, without an extra redirect
// round-trip); a live token redirects to the authenticated landing route.
func Anonymous(store *session.Store) Decision {
	return anonymousAt(store, time.Now())
}

func authenticatedAt(store *session.Store, now time.Time) Decision {
	tok := store.Token()
	if tok == "" {
		return Decision{Outcome: Redirect, Target: AnonymousEntry}
	}
	if token.IsExpired(tok, now) {
		store.Logout()
		return Decision{Outcome: Redirect, Target: AnonymousEntry}
	}
	return Decision{Outcome: Render}
}

func anonymousAt(store *session.Store, now time.Time) Decision {
	tok := store.Token()
	if tok == "" {
		return Decision{Outcome: Render}
	}
	if token.IsExpired(tok, now) {
		store.Logout()
		return Decision{Outcome: Render}
	}
	return Decision{Outcome: Redirect, Target: AuthenticatedLanding}
}
