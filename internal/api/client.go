// Package api is the console's HTTP boundary with the backend. A single
// shared Client attaches the bearer token, refuses to send requests over an
// expired session, and turns 401 responses into the idempotent
// logout-and-redirect recovery; feature clients compose it with their REST
// path prefix. This is the one enforcement point for session validity on the
// network path: route guards protect navigation, the Client protects every
// data call regardless of which screen issued it.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"

	"ddg-console/internal/session"
	"ddg-console/internal/telemetry"
	telemetrydomain "ddg-console/internal/telemetry/domain"
	"ddg-console/internal/token"
)

// Sentinel errors for session-validity failures on the network path.
// Both are raised only after the session has already been cleared and the
// redirect issued; callers must not assume the request succeeded, and must
// not attempt their own recovery.
var (
	// ErrSessionExpired means the pre-request check found an expired token;
	// the request never reached the network.
	ErrSessionExpired = errors.New("session expired")
	// ErrUnauthorized means the backend rejected the request with 401.
	ErrUnauthorized = errors.New("unauthorized")
)

// Error is a non-2xx backend response other than 401. Genuine failures like
// bad credentials bubble to the calling screen as *Error.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: backend returned %d", e.Status)
	}
	return fmt.Sprintf("api: backend returned %d: %s", e.Status, e.Message)
}

// Navigator performs the console's redirect side effect. Keeping it an
// interface keeps session-recovery logic free of any rendering dependency.
type Navigator interface {
	NavigateTo(path string)
}

// Client is the shared HTTP wrapper every feature client composes.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      *session.Store
	nav        Navigator
	emitter    telemetry.EventEmitter
	nowF       func() time.Time
}

// NewClient returns a Client rooted at baseURL. The transport is instrumented
// with otelhttp against the given TracerProvider (nil-safe: otelhttp falls
// back to the global provider). nav and emitter may be nil when no front end
// or telemetry sink is wired, e.g. in tests.
func NewClient(baseURL string, timeout time.Duration, store *session.Store, nav Navigator, emitter telemetry.EventEmitter, tp trace.TracerProvider) *Client {
	var opts []otelhttp.Option
	if tp != nil {
		opts = append(opts, otelhttp.WithTracerProvider(tp))
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport, opts...),
		},
		store:   store,
		nav:     nav,
		emitter: emitter,
		nowF:    time.Now,
	}
}

// Get issues a GET and decodes the normalized response into out (may be nil).
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST with a JSON body and decodes the normalized response into out.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT with a JSON body and decodes the normalized response into out.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// Delete issues a DELETE. body carries identifiers for backends that expect
// them in the request body (the assignment endpoints do); it may be nil.
func (c *Client) Delete(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodDelete, path, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	// Pre-request hook: an expired token must never reach the network.
	tok := c.store.Token()
	if tok != "" && token.IsExpired(tok, c.nowF()) {
		c.expireSession(telemetrydomain.EventSessionExpired, "expired token on "+method+" "+path)
		return ErrSessionExpired
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encode request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("api: %s %s: read response: %w", method, path, err)
	}

	// Post-response hook: 401 resolves to the same idempotent recovery as a
	// locally detected expiry, then still propagates to the caller.
	if resp.StatusCode == http.StatusUnauthorized {
		c.expireSession(telemetrydomain.EventUnauthorized, method+" "+path)
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &Error{Status: resp.StatusCode, Message: errorMessage(respBody, resp.Status)}
	}
	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	return decodeEnvelope(respBody, out)
}

// expireSession clears the session and redirects to the anonymous entry
// point. Safe to race with other in-flight requests: logout is idempotent
// and both paths converge on the same cleared state.
func (c *Client) expireSession(eventType, detail string) {
	var userID int64
	if u, ok := c.store.User(); ok {
		userID = u.UserID
	}
	c.store.Logout()
	if c.nav != nil {
		c.nav.NavigateTo("/")
	}
	telemetry.EmitAsync(c.emitter, telemetry.NewEvent(eventType, userID, detail))
}

// decodeEnvelope normalizes backend responses into out. Bodies wrapped as
// {"data": ...} are unwrapped once here so no downstream consumer repeats
// the check; bare arrays and objects decode as-is.
func decodeEnvelope(body []byte, out any) error {
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err == nil && env.Data != nil {
		return json.Unmarshal(env.Data, out)
	}
	return json.Unmarshal(body, out)
}

// errorMessage extracts a human-readable message from an error body, trying
// the conventional {"message": ...} shape before falling back to the raw
// body or HTTP status text.
func errorMessage(body []byte, statusText string) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	if msg := strings.TrimSpace(string(body)); msg != "" && len(msg) <= 200 {
		return msg
	}
	return statusText
}
