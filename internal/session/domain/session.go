package domain

// UserProjection is the minimal slice of the authenticated profile the
// console keeps: enough to derive menu and route visibility.
type UserProjection struct {
	UserID int64  `json:"user_id"`
	RoleCd string `json:"role_cd"` // empty when the backend returned no role
}

// Session is the console's durable belief about the current authentication
// state. User is populated only after a profile fetch and is cleared together
// with Token; expiry is re-validated lazily on each guarded access, never
// continuously enforced.
type Session struct {
	Token string          `json:"token"` // empty when logged out
	User  *UserProjection `json:"user"`  // nil until role hydration succeeds
}
