package api

import (
	"context"
	"errors"
	"fmt"
)

// assignmentPrefix keeps the original backend's spelling; the path is the
// wire contract, not ours to fix.
const assignmentPrefix = "/admin/assignament"

// ErrDuplicateAssignment is returned by AssignRole when the user already
// holds the role, before anything reaches the network.
var ErrDuplicateAssignment = errors.New("user already has this role assigned")

// RoleAssignment links a user to a role.
type RoleAssignment struct {
	UserID int64 `json:"user_id"`
	RoleID int64 `json:"role_id"`
}

// DepartmentAssignment places a user in a department, optionally as its
// leader, reporting to a manager.
type DepartmentAssignment struct {
	DepartmentID int64  `json:"department_id"`
	UserID       int64  `json:"user_id"`
	ReportsTo    int64  `json:"reports_to"`
	IsLeader     bool   `json:"is_leader,omitempty"`
	DepartmentNm string `json:"department_nm,omitempty"`
	UserNm       string `json:"user_nm,omitempty"`
	Email        string `json:"email,omitempty"`
}

// AssignmentsClient talks to the /admin/assignament endpoints.
type AssignmentsClient struct {
	c *Client
}

// NewAssignmentsClient returns an AssignmentsClient composing the shared wrapper.
func NewAssignmentsClient(c *Client) *AssignmentsClient {
	return &AssignmentsClient{c: c}
}

// ListRoleAssignments returns all user-role assignments.
func (a *AssignmentsClient) ListRoleAssignments(ctx context.Context) ([]RoleAssignment, error) {
	var out []RoleAssignment
	if err := a.c.Get(ctx, assignmentPrefix+"/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AssignRole grants roleID to userID. The current assignment list is checked
// first and duplicates are dropped before they reach the network, matching
// the ministry-assignment screen's behavior.
func (a *AssignmentsClient) AssignRole(ctx context.Context, userID, roleID int64) error {
	existing, err := a.ListRoleAssignments(ctx)
	if err != nil {
		return err
	}
	if HasRoleAssignment(existing, userID, roleID) {
		return ErrDuplicateAssignment
	}
	return a.c.Post(ctx, assignmentPrefix+"/", RoleAssignment{UserID: userID, RoleID: roleID}, nil)
}

// RemoveRole revokes roleID from userID. Identifiers travel in the request
// body, as the backend expects.
func (a *AssignmentsClient) RemoveRole(ctx context.Context, userID, roleID int64) error {
	return a.c.Delete(ctx, assignmentPrefix+"/", RoleAssignment{UserID: userID, RoleID: roleID}, nil)
}

// Assign places a user in a department.
func (a *AssignmentsClient) Assign(ctx context.Context, d DepartmentAssignment) error {
	return a.c.Post(ctx, assignmentPrefix+"/assign", d, nil)
}

// ListDepartmentAssignments returns all user-department assignments.
func (a *AssignmentsClient) ListDepartmentAssignments(ctx context.Context) ([]DepartmentAssignment, error) {
	var out []DepartmentAssignment
	if err := a.c.Get(ctx, assignmentPrefix+"/assign", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateAssignment replaces the assignment record with the given id.
func (a *AssignmentsClient) UpdateAssignment(ctx context.Context, id int64, d DepartmentAssignment) error {
	return a.c.Put(ctx, fmt.Sprintf("%s/%d", assignmentPrefix, id), d, nil)
}

// HasRoleAssignment reports whether the (userID, roleID) pair is already
// present in assignments.
func HasRoleAssignment(assignments []RoleAssignment, userID, roleID int64) bool {
	for _, as := range assignments {
		if as.UserID == userID && as.RoleID == roleID {
			return true
		}
	}
	return false
}
