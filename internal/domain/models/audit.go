package models

import "time"

// AuditLog is an append-only activity record. At most one of the actor
// references is set; all of them go null if the actor row is removed.
type AuditLog struct {
	ID          int64     `json:"id"`
	DriverID    *int64    `json:"driver_user_id,omitempty"`
	OfficerID   *int64    `json:"law_of_user_id,omitempty"`
	AdminID     *int64    `json:"lto_user,omitempty"`
	ActionType  string    `json:"action"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"-"`
}
