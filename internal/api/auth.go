package api

import (
	"context"
	"errors"
	"fmt"
)

const authPrefix = "/admin/auth"

// User is a console user record as the admin endpoints return it.
type User struct {
	UserID    int64  `json:"user_id"`
	UserNm    string `json:"user_nm"`
	UserLt    string `json:"user_lt"`
	Email     string `json:"email"`
	IsActive  bool   `json:"is_active"`
	IsManager bool   `json:"is_manager"`
}

// NewUser carries the fields for registering a user.
type NewUser struct {
	UserNm    string `json:"user_nm"`
	UserLt    string `json:"user_lt"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	IsActive  bool   `json:"is_active"`
	IsManager bool   `json:"is_manager"`
}

// Profile is the authenticated profile, including the role that drives menu
// and route visibility.
type Profile struct {
	UserID    int64  `json:"user_id"`
	UserNm    string `json:"user_nm"`
	UserLt    string `json:"user_lt"`
	Email     string `json:"email"`
	IsActive  bool   `json:"is_active"`
	IsManager bool   `json:"is_manager"`
	RoleID    int64  `json:"role_id"`
	RoleNm    string `json:"role_nm"`
	RoleCd    string `json:"role_cd"`
}

// ErrNoToken is returned by Login when a 2xx response carries no token.
var ErrNoToken = errors.New("login response carried no token")

// AuthClient talks to the /admin/auth endpoints: login/logout plus the user
// administration operations the Users screen uses.
type AuthClient struct {
	c *Client
}

// NewAuthClient returns an AuthClient composing the shared wrapper.
func NewAuthClient(c *Client) *AuthClient {
	return &AuthClient{c: c}
}

// Login posts credentials and returns the issued token. It performs no
// session mutation; the auth gateway owns that.
func (a *AuthClient) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	var resp struct {
		Token string `json:"token"`
	}
	if err := a.c.Post(ctx, authPrefix+"/login", body, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", ErrNoToken
	}
	return resp.Token, nil
}

// Logout asks the backend to invalidate the current session server-side.
func (a *AuthClient) Logout(ctx context.Context) error {
	return a.c.Post(ctx, authPrefix+"/logout", nil, nil)
}

// Profile fetches the profile (including role_cd) for the given user id.
func (a *AuthClient) Profile(ctx context.Context, userID int64) (*Profile, error) {
	var p Profile
	if err := a.c.Get(ctx, fmt.Sprintf("%s/profile/%d", authPrefix, userID), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListUsers returns all users.
func (a *AuthClient) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := a.c.Get(ctx, authPrefix+"/", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Register creates a user.
func (a *AuthClient) Register(ctx context.Context, u NewUser) error {
	return a.c.Post(ctx, authPrefix+"/register", u, nil)
}

// UpdateUser replaces the user record for userID.
func (a *AuthClient) UpdateUser(ctx context.Context, userID int64, u NewUser) error {
	return a.c.Put(ctx, fmt.Sprintf("%s/%d", authPrefix, userID), u, nil)
}

// ChangePassword sets a new password for userID.
func (a *AuthClient) ChangePassword(ctx context.Context, userID int64, password string) error {
	body := map[string]string{"password": password}
	return a.c.Put(ctx, fmt.Sprintf("%s/change-password/%d", authPrefix, userID), body, nil)
}

// DeleteUser removes the user record for userID.
func (a *AuthClient) DeleteUser(ctx context.Context, userID int64) error {
	return a.c.Delete(ctx, fmt.Sprintf("%s/delete-user/%d", authPrefix, userID), nil, nil)
}
