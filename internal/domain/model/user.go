package model

import "time"

// UserRole is the SSO platform role attached to a user account.
type UserRole string

const (
	// RoleClient accounts list and manage only their own service credentials.
	RoleClient UserRole = "CL-USER"

	// RoleAdmin accounts see every registered service credential.
	RoleAdmin UserRole = "ADMIN-USER"
)

// User is an SSO platform account allowed to call the registry. Accounts are
// provisioned out of band (by the SSO platform or the useradmin tool); the
// registry itself only reads them.
type User struct {
	ID        int64
	Email     string
	Role      UserRole
	CreatedAt time.Time
}
