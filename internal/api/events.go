package api

import (
	"context"
	"fmt"
)

const eventPrefix = "/ddg/events"

// Event is a scheduled service event.
type Event struct {
	ServiceEventID int64  `json:"service_event_id"`
	ServiceNm      string `json:"service_nm"`
	ServiceDate    string `json:"service_date"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	IsActive       bool   `json:"is_active"`
	DepartmentID   int64  `json:"department_id"`
	DepartmentNm   string `json:"department_nm,omitempty"`
}

// NewEvent carries the fields for scheduling an event.
type NewEvent struct {
	ServiceNm    string `json:"service_nm"`
	ServiceDate  string `json:"service_date"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	IsActive     bool   `json:"is_active"`
	DepartmentID int64  `json:"department_id"`
}

// EventsClient talks to the /ddg/events endpoints: event CRUD plus the
// attendance and reminder workflows.
type EventsClient struct {
	c *Client
}

// NewEventsClient returns an EventsClient composing the shared wrapper.
func NewEventsClient(c *Client) *EventsClient {
	return &EventsClient{c: c}
}

// List returns all events.
func (e *EventsClient) List(ctx context.Context) ([]Event, error) {
	var events []Event
	if err := e.c.Get(ctx, eventPrefix+"/", &events); err != nil {
		return nil, err
	}
	return events, nil
}

// Get returns the event with the given id.
func (e *EventsClient) Get(ctx context.Context, eventID int64) (*Event, error) {
	var ev Event
	if err := e.c.Get(ctx, fmt.Sprintf("%s/%d", eventPrefix, eventID), &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

// Create schedules an event. The backend expects the record nested under an
// "event" key on create only.
func (e *EventsClient) Create(ctx context.Context, ev NewEvent) error {
	return e.c.Post(ctx, eventPrefix+"/", map[string]NewEvent{"event": ev}, nil)
}

// Update replaces the event record for eventID.
func (e *EventsClient) Update(ctx context.Context, eventID int64, ev NewEvent) error {
	return e.c.Put(ctx, fmt.Sprintf("%s/%d", eventPrefix, eventID), ev, nil)
}

// Delete removes the event record for eventID.
func (e *EventsClient) Delete(ctx context.Context, eventID int64) error {
	return e.c.Delete(ctx, fmt.Sprintf("%s/%d", eventPrefix, eventID), nil, nil)
}

// SendReminder asks the backend to notify the users assigned to the event.
func (e *EventsClient) SendReminder(ctx context.Context, eventID int64) error {
	return e.c.Post(ctx, fmt.Sprintf("%s/reminder/%d", eventPrefix, eventID), nil, nil)
}

// AssignUser adds userID to the event roster.
func (e *EventsClient) AssignUser(ctx context.Context, eventID, userID int64) error {
	body := map[string]int64{"user_id": userID}
	return e.c.Post(ctx, fmt.Sprintf("%s/assign-user/%d", eventPrefix, eventID), body, nil)
}

// RemoveUser takes userID off the event roster.
func (e *EventsClient) RemoveUser(ctx context.Context, eventID, userID int64) error {
	return e.c.Delete(ctx, fmt.Sprintf("%s/deleteUserFromEvent/%d/%d", eventPrefix, eventID, userID), nil, nil)
}

// UsersByEvent returns the users on the event roster.
func (e *EventsClient) UsersByEvent(ctx context.Context, eventID int64) ([]User, error) {
	var users []User
	if err := e.c.Get(ctx, fmt.Sprintf("%s/users/%d", eventPrefix, eventID), &users); err != nil {
		return nil, err
	}
	return users, nil
}

// EventsByUser returns the events a user is assigned to.
func (e *EventsClient) EventsByUser(ctx context.Context, userID int64) ([]Event, error) {
	var events []Event
	if err := e.c.Get(ctx, fmt.Sprintf("%s/user-events/%d", eventPrefix, userID), &events); err != nil {
		return nil, err
	}
	return events, nil
}

// RecordAttendance marks userID as present at the event.
func (e *EventsClient) RecordAttendance(ctx context.Context, eventID, userID int64) error {
	body := map[string]int64{"event_id": eventID, "user_id": userID}
	return e.c.Post(ctx, eventPrefix+"/attendance", body, nil)
}
