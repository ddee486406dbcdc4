// Package auth performs login and logout against the backend and keeps the
// session store in step with the outcome.
package auth

import (
	"context"
	"log"

	"ddg-console/internal/api"
	"ddg-console/internal/session"
	sessiondomain "ddg-console/internal/session/domain"
	"ddg-console/internal/telemetry"
	telemetrydomain "ddg-console/internal/telemetry/domain"
	"ddg-console/internal/token"
)

// Gateway owns the session side effects of authentication. Each operation
// performs one network call and at most one session mutation; Login and
// Logout additionally navigate.
type Gateway struct {
	client  *api.AuthClient
	store   *session.Store
	nav     api.Navigator
	emitter telemetry.EventEmitter
}

// NewGateway returns a Gateway over the given auth client and session store.
// nav and emitter may be nil.
func NewGateway(client *api.AuthClient, store *session.Store, nav api.Navigator, emitter telemetry.EventEmitter) *Gateway {
	return &Gateway{client: client, store: store, nav: nav, emitter: emitter}
}

// Login authenticates with the backend, persists the issued token, hydrates
// the role, and navigates to the authenticated landing route. On failure the
// error is returned with no session mutation; user-facing messaging is the
// caller's job. A role-hydration failure after a successful login is logged
// but does not fail the login: the session stays authenticated but role-less
// until the menu retries.
func (g *Gateway) Login(ctx context.Context, email, password string) error {
	tok, err := g.client.Login(ctx, email, password)
	if err != nil {
		telemetry.EmitAsync(g.emitter, telemetry.NewEvent(telemetrydomain.EventLoginFailure, 0, email))
		return err
	}

	g.store.SetAuth(tok)

	if _, err := g.HydrateRole(ctx, tok); err != nil {
		log.Printf("auth: role hydration after login failed: %v", err)
	}

	if subject, ok := token.SubjectID(tok); ok {
		telemetry.EmitAsync(g.emitter, telemetry.NewEvent(telemetrydomain.EventLoginSuccess, subject, ""))
	}
	if g.nav != nil {
		g.nav.NavigateTo("/dashboard")
	}
	return nil
}

// HydrateRole resolves the subject id from the token, fetches its profile,
// and caches {user_id, role_cd} in the session store. When the token carries
// no usable subject there is nothing to hydrate and ("", nil) is returned
// with no mutation. A profile-fetch failure also leaves the store untouched:
// the session remains authenticated but role-less until retried.
func (g *Gateway) HydrateRole(ctx context.Context, tok string) (string, error) {
	subject, ok := token.SubjectID(tok)
	if !ok {
		return "", nil
	}
	profile, err := g.client.Profile(ctx, subject)
	if err != nil {
		return "", err
	}
	g.store.SetUser(sessiondomain.UserProjection{UserID: subject, RoleCd: profile.RoleCd})
	return profile.RoleCd, nil
}

// Logout invalidates the session server-side (best-effort: a failure is
// logged, not fatal), then unconditionally clears the session store and
// navigates to the anonymous entry point.
func (g *Gateway) Logout(ctx context.Context) {
	var userID int64
	if u, ok := g.store.User(); ok {
		userID = u.UserID
	}

	if err := g.client.Logout(ctx); err != nil {
		log.Printf("auth: server-side logout failed: %v", err)
	}

	g.store.Logout()
	telemetry.EmitAsync(g.emitter, telemetry.NewEvent(telemetrydomain.EventLogout, userID, ""))
	if g.nav != nil {
		g.nav.NavigateTo("/")
	}
}
