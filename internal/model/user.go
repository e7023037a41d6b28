package model

import (
	"fmt"
	"time"
)

// Role is the closed set of dashboard roles. ParseRole and DashboardPath are
// the two places that enumerate it; a new role has no behavior until both
// switches handle it.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleBusiness Role = "business"
	RoleUser     Role = "user"
)

// ParseRole maps a stored role string to a Role. Unknown values are an error
// rather than a silent fallback.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleBusiness:
		return RoleBusiness, nil
	case RoleUser:
		return RoleUser, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// DashboardPath returns the dashboard landing path for the role.
func (r Role) DashboardPath() string {
	switch r {
	case RoleAdmin:
		return "/dashboard/admin"
	case RoleBusiness:
		return "/dashboard/business"
	case RoleUser:
		return "/dashboard/user"
	}
	return "/dashboard/user"
}

type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
	StatusPending   Status = "pending"
)

type KYCLevel string

const (
	KYCUnverified KYCLevel = "unverified"
	KYCBasic      KYCLevel = "basic"
	KYCFull       KYCLevel = "full"
	KYCBusiness   KYCLevel = "business"
)

// User is one row of the admin user-management table, shaped exactly as
// get_admin_users returns it.
type User struct {
	ID                string     `json:"id"`
	FullName          string     `json:"full_name"`
	Email             string     `json:"email"`
	PhoneNumber       string     `json:"phone_number"`
	KYCLevel          KYCLevel   `json:"kyc_level"`
	Status            Status     `json:"status"`
	CreatedAt         time.Time  `json:"created_at"`
	LastLogin         *time.Time `json:"last_login"`
	Country           string     `json:"country"`
	TotalTransactions int64      `json:"total_transactions"`
	TotalVolume       float64    `json:"total_volume"`
}
