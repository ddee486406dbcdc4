package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ddg-console/internal/session"
)

// recordingNavigator captures redirect targets.
type recordingNavigator struct {
	targets []string
}

func (n *recordingNavigator) NavigateTo(path string) {
	n.targets = append(n.targets, path)
}

func signedToken(t *testing.T, userID int64, exp time.Time) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	body, err := json.Marshal(map[string]any{"user_id": userID, "exp": exp.Unix()})
	if err != nil {
		t.Fatalf("marshal claims: %v", err)
	}
	return header + "." + base64.RawURLEncoding.EncodeToString(body) + ".sig"
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *session.Store, *recordingNavigator, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	store := session.NewStore("")
	nav := &recordingNavigator{}
	c := NewClient(srv.URL, 5*time.Second, store, nav, nil, nil)
	return c, store, nav, srv
}

func TestClient_AttachesBearerWhenTokenLive(t *testing.T) {
	var gotAuth string
	c, store, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	tok := signedToken(t, 7, time.Now().Add(time.Hour))
	store.SetAuth(tok)

	if err := c.Get(context.Background(), "/ping", nil); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if gotAuth != "Bearer "+tok {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}
}

func TestClient_NoTokenSendsUnauthenticated(t *testing.T) {
	var gotAuth string
	var called bool
	c, _, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))

	if err := c.Get(context.Background(), "/ping", nil); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !called {
		t.Fatal("request without a token should still reach the network")
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q, want none", gotAuth)
	}
}

func TestClient_ExpiredTokenNeverReachesNetwork(t *testing.T) {
	var called bool
	c, store, nav, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	store.SetAuth(signedToken(t, 7, time.Now().Add(-time.Hour)))

	err := c.Get(context.Background(), "/users", nil)
	if err != ErrSessionExpired {
		t.Fatalf("err = %v, want ErrSessionExpired", err)
	}
	if called {
		t.Error("expired-token request reached the network")
	}
	if store.Token() != "" {
		t.Error("session not cleared after expired-token check")
	}
	if len(nav.targets) != 1 || nav.targets[0] != "/" {
		t.Errorf("redirects = %v, want one redirect to /", nav.targets)
	}
}

func TestClient_UnauthorizedResponseClearsSession(t *testing.T) {
	c, store, nav, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	store.SetAuth(signedToken(t, 7, time.Now().Add(time.Hour)))

	err := c.Get(context.Background(), "/users", nil)
	if err != ErrUnauthorized {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
	if store.Token() != "" {
		t.Error("session not cleared after 401")
	}
	if len(nav.targets) != 1 || nav.targets[0] != "/" {
		t.Errorf("redirects = %v, want one redirect to /", nav.targets)
	}
}

func TestClient_NormalizesDataEnvelope(t *testing.T) {
	c, _, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"role_id":1,"role_nm":"Usher","is_active":true}]}`))
	}))

	var roles []Role
	if err := c.Get(context.Background(), "/admin/role/", &roles); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(roles) != 1 || roles[0].RoleNm != "Usher" {
		t.Errorf("roles = %+v, want the unwrapped record", roles)
	}
}

func TestClient_DecodesBareArray(t *testing.T) {
	c, _, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"department_id":2,"department_nm":"Music","is_active":true}]`))
	}))

	var deps []Department
	if err := c.Get(context.Background(), "/ddg/departments/", &deps); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(deps) != 1 || deps[0].DepartmentNm != "Music" {
		t.Errorf("departments = %+v, want the bare-array record", deps)
	}
}

func TestClient_TruncatedResponseBodyIsTransportError(t *testing.T) {
	c, _, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Promise more bytes than are written so the client's body read
		// fails mid-stream instead of decoding a truncated document.
		w.Header().Set("Content-Length", "1024")
		w.Write([]byte(`{"data":[{"role_id":1,`))
	}))

	var roles []Role
	err := c.Get(context.Background(), "/admin/role/", &roles)
	if err == nil {
		t.Fatal("truncated body should surface a read error")
	}
	if !strings.Contains(err.Error(), "read response") {
		t.Errorf("err = %v, want a wrapped read-response failure", err)
	}
	if len(roles) != 0 {
		t.Errorf("roles = %+v, want nothing decoded from a failed read", roles)
	}
}

func TestClient_NonAuthFailureBubblesWithMessage(t *testing.T) {
	c, store, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"invalid credentials"}`))
	}))
	tok := signedToken(t, 7, time.Now().Add(time.Hour))
	store.SetAuth(tok)

	err := c.Post(context.Background(), "/admin/auth/login", map[string]string{}, nil)
	apiErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("err = %T (%v), want *Error", err, err)
	}
	if apiErr.Status != http.StatusBadRequest || apiErr.Message != "invalid credentials" {
		t.Errorf("apiErr = %+v, want 400/invalid credentials", apiErr)
	}
	if store.Token() != tok {
		t.Error("non-401 failure must not touch the session")
	}
}
