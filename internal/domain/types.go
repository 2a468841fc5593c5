package domain

// ID is used across domain entities.
type ID int64

// Role identifies which credential table a principal belongs to.
type Role string

const (
	RoleDriver  Role = "driver"
	RoleOfficer Role = "officer"
	RoleAdmin   Role = "admin"
)

// RequestContext carries authenticated user info when available.
type RequestContext struct {
	UserID ID   `json:"userId"`
	Role   Role `json:"role"`
}
