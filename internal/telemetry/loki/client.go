// Package loki pushes console events to Grafana Loki as log lines.
package loki

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"ddg-console/internal/telemetry/domain"
)

// PushRequest is the Loki push API request body (v1).
type PushRequest struct {
	Streams []Stream `json:"streams"`
}

// Stream is a single stream with labels and log entries.
type Stream struct {
	Stream map[string]string `json:"stream"`
	Values [][]string        `json:"values"` // each entry is [timestamp_ns, log_line]
}

// labelSanitize replaces characters that are invalid in Loki label values.
var labelSanitize = regexp.MustCompile(`[^a-zA-Z0-9_\-:]`)

// Emitter implements telemetry.EventEmitter by pushing each console event
// to Loki at the configured base URL.
type Emitter struct {
	baseURL    string
	httpClient *http.Client
}

// NewEmitter returns an Emitter pushing to the Loki instance at baseURL
// (e.g. http://localhost:3100).
func NewEmitter(baseURL string) *Emitter {
	return &Emitter{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

// Emit serializes the event as the log line and pushes it with event_type
// and user_id labels. Returns an error if the HTTP request fails or Loki
// returns non-2xx.
func (e *Emitter) Emit(ctx context.Context, event *domain.ConsoleEvent) error {
	if event == nil {
		return nil
	}
	line, err := json.Marshal(event)
	if err != nil {
		return err
	}
	labels := map[string]string{"job": "ddg-console"}
	if event.EventType != "" {
		labels["event_type"] = sanitizeLabel(event.EventType)
	}
	if event.UserID != 0 {
		labels["user_id"] = strconv.FormatInt(event.UserID, 10)
	}
	ts := event.CreatedAt
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	return e.push(ctx, ts, string(line), labels)
}

func (e *Emitter) push(ctx context.Context, timestamp time.Time, line string, labels map[string]string) error {
	if e.baseURL == "" {
		return fmt.Errorf("loki: base URL is empty")
	}
	body := PushRequest{
		Streams: []Stream{{
			Stream: labels,
			Values: [][]string{{fmt.Sprintf("%d", timestamp.UnixNano()), line}},
		}},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/loki/api/v1/push", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := e.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("loki: push returned %s", resp.Status)
	}
	return nil
}

func sanitizeLabel(v string) string {
	return labelSanitize.ReplaceAllString(strings.TrimSpace(v), "_")
}
