package domain

import "time"

// Role is the closed set of access roles known to the portal.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleStaff     Role = "staff"
	RoleAffiliate Role = "affiliate"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleAffiliate:
		return true
	}
	return false
}

// UserType tags a session with the kind of account that opened it.
// For affiliates it implies an Affiliate row exists alongside the User.
type UserType string

const (
	UserTypeAdmin     UserType = "admin"
	UserTypeStaff     UserType = "staff"
	UserTypeAffiliate UserType = "affiliate"
)

// Valid reports whether t is one of the known user types.
func (t UserType) Valid() bool {
	switch t {
	case UserTypeAdmin, UserTypeStaff, UserTypeAffiliate:
		return true
	}
	return false
}

// UserTypeForRole maps an access role to the session user type.
func UserTypeForRole(r Role) UserType {
	switch r {
	case RoleAdmin:
		return UserTypeAdmin
	case RoleAffiliate:
		return UserTypeAffiliate
	default:
		return UserTypeStaff
	}
}

// User models an authenticated actor in the system.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
