package main

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ddg-console/internal/api"
	"ddg-console/internal/auth"
	"ddg-console/internal/session"
	sessiondomain "ddg-console/internal/session/domain"
)

func issueToken(t *testing.T, userID int64, exp time.Time) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	body, err := json.Marshal(map[string]any{"user_id": userID, "exp": exp.Unix()})
	if err != nil {
		t.Fatalf("marshal claims: %v", err)
	}
	return header + "." + base64.RawURLEncoding.EncodeToString(body) + ".sig"
}

// captureNavigator records redirect targets for assertions.
type captureNavigator struct {
	targets []string
}

func (n *captureNavigator) NavigateTo(path string) {
	n.targets = append(n.targets, path)
}

func newTestApp(t *testing.T, handler http.Handler) (*app, *session.Store) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	store := session.NewStore("")
	nav := &captureNavigator{}
	client := api.NewClient(srv.URL, 5*time.Second, store, nav, nil, nil)
	authClient := api.NewAuthClient(client)
	return &app{
		store:       store,
		nav:         nav,
		gateway:     auth.NewGateway(authClient, store, nav, nil),
		auth:        authClient,
		roles:       api.NewRolesClient(client),
		events:      api.NewEventsClient(client),
		departments: api.NewDepartmentsClient(client),
		assignments: api.NewAssignmentsClient(client),
	}, store
}

func runCommand(t *testing.T, a *app, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCommand(a)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestGuardedCommand_WithoutSessionFails(t *testing.T) {
	a, _ := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("guarded command reached the network without a session")
	}))

	_, err := runCommand(t, a, "users", "list")
	if !errors.Is(err, errNotSignedIn) {
		t.Errorf("err = %v, want errNotSignedIn", err)
	}
}

func TestLoginCommand_SignsInAndReportsRole(t *testing.T) {
	tok := issueToken(t, 7, time.Now().Add(time.Hour))
	a, store := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/admin/auth/login":
			fmt.Fprintf(w, `{"data":{"token":%q}}`, tok)
		case "/admin/auth/profile/7":
			w.Write([]byte(`{"data":{"user_id":7,"role_cd":"ADMIN"}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	out, err := runCommand(t, a, "login", "--email", "a@b.com", "--password", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !strings.Contains(out, "Role: ADMIN") {
		t.Errorf("output = %q, want hydrated role", out)
	}
	if store.Token() != tok {
		t.Error("login did not persist the issued token")
	}
}

func TestLoginCommand_LiveSessionRedirectsInsteadOfReauthenticating(t *testing.T) {
	tok := issueToken(t, 7, time.Now().Add(time.Hour))
	a, store := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("login with a live session reached the network: %s %s", r.Method, r.URL.Path)
	}))
	store.SetAuth(tok)

	out, err := runCommand(t, a, "login", "--email", "a@b.com", "--password", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !strings.Contains(out, "Already signed in") {
		t.Errorf("output = %q, want live-session notice", out)
	}
	if store.Token() != tok {
		t.Error("anonymous gate replaced a live session's token")
	}
	nav := a.nav.(*captureNavigator)
	if len(nav.targets) != 1 || nav.targets[0] != "/dashboard" {
		t.Errorf("redirects = %v, want one redirect to /dashboard", nav.targets)
	}
}

func TestLoginCommand_ExpiredSessionIsClearedThenSignsIn(t *testing.T) {
	fresh := issueToken(t, 7, time.Now().Add(time.Hour))
	a, store := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/admin/auth/login":
			fmt.Fprintf(w, `{"data":{"token":%q}}`, fresh)
		case "/admin/auth/profile/7":
			w.Write([]byte(`{"data":{"user_id":7,"role_cd":"LEADER"}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	store.SetAuth(issueToken(t, 7, time.Now().Add(-time.Hour)))

	out, err := runCommand(t, a, "login", "--email", "a@b.com", "--password", "pw")
	if err != nil {
		t.Fatalf("login over an expired session: %v", err)
	}
	if strings.Contains(out, "Already signed in") {
		t.Errorf("output = %q, expired session treated as live", out)
	}
	if store.Token() != fresh {
		t.Error("login did not replace the expired token")
	}
}

func TestMenuCommand_UserSeesReducedTree(t *testing.T) {
	a, store := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	store.SetAuth(issueToken(t, 3, time.Now().Add(time.Hour)))
	store.SetUser(sessiondomain.UserProjection{UserID: 3, RoleCd: "USER"})

	out, err := runCommand(t, a, "menu")
	if err != nil {
		t.Fatalf("menu: %v", err)
	}
	if strings.Contains(out, "Administration") {
		t.Errorf("USER menu leaked the admin section:\n%s", out)
	}
	if !strings.Contains(out, "Events (/events)") || !strings.Contains(out, "Settings") {
		t.Errorf("USER menu missing allow-listed sections:\n%s", out)
	}
	if strings.Contains(out, "/events/new") {
		t.Errorf("USER menu leaked event administration:\n%s", out)
	}
}

func TestMenuCommand_UnrecognizedRoleShowsNoAccess(t *testing.T) {
	a, store := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	store.SetAuth(issueToken(t, 3, time.Now().Add(time.Hour)))
	store.SetUser(sessiondomain.UserProjection{UserID: 3, RoleCd: "GUEST"})

	out, err := runCommand(t, a, "menu")
	if err != nil {
		t.Fatalf("menu: %v", err)
	}
	if !strings.Contains(out, "No access") {
		t.Errorf("output = %q, want explicit no-access message", out)
	}
}

func TestUsersListCommand_RendersTable(t *testing.T) {
	a, store := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/admin/auth/" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"data":[{"user_id":1,"user_nm":"Ana","user_lt":"Diaz","email":"ana@x.org","is_active":true}]}`))
	}))
	store.SetAuth(issueToken(t, 1, time.Now().Add(time.Hour)))

	out, err := runCommand(t, a, "users", "list")
	if err != nil {
		t.Fatalf("users list: %v", err)
	}
	if !strings.Contains(out, "Ana Diaz") || !strings.Contains(out, "ana@x.org") {
		t.Errorf("output = %q, want the listed user", out)
	}
}

func TestAssignmentsGrantCommand_DuplicateIsNotAnError(t *testing.T) {
	a, store := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			t.Error("duplicate assignment reached the network")
		}
		w.Write([]byte(`{"data":[{"user_id":7,"role_id":2}]}`))
	}))
	store.SetAuth(issueToken(t, 7, time.Now().Add(time.Hour)))

	out, err := runCommand(t, a, "assignments", "grant", "--user", "7", "--role", "2")
	if err != nil {
		t.Fatalf("grant: %v", err)
	}
	if !strings.Contains(out, "Already assigned") {
		t.Errorf("output = %q, want duplicate notice", out)
	}
}
