package api

import (
	"context"
	"fmt"
)

const rolePrefix = "/admin/role"

// Role is an assignable role record.
type Role struct {
	RoleID   int64  `json:"role_id"`
	RoleNm   string `json:"role_nm"`
	IsActive bool   `json:"is_active"`
}

// NewRole carries the fields for creating a role.
type NewRole struct {
	RoleNm   string `json:"role_nm"`
	IsActive bool   `json:"is_active"`
}

// RolesClient talks to the /admin/role endpoints.
type RolesClient struct {
	c *Client
}

// NewRolesClient returns a RolesClient composing the shared wrapper.
func NewRolesClient(c *Client) *RolesClient {
	return &RolesClient{c: c}
}

// List returns all roles.
func (r *RolesClient) List(ctx context.Context) ([]Role, error) {
	var roles []Role
	if err := r.c.Get(ctx, rolePrefix+"/", &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

// Create adds a role.
func (r *RolesClient) Create(ctx context.Context, role NewRole) error {
	return r.c.Post(ctx, rolePrefix+"/", role, nil)
}

// Update replaces the role record for roleID.
func (r *RolesClient) Update(ctx context.Context, roleID int64, role NewRole) error {
	return r.c.Put(ctx, fmt.Sprintf("%s/%d", rolePrefix, roleID), role, nil)
}

// Delete removes the role record for roleID.
func (r *RolesClient) Delete(ctx context.Context, roleID int64) error {
	return r.c.Delete(ctx, fmt.Sprintf("%s/%d", rolePrefix, roleID), nil, nil)
}
