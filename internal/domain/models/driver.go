package models

import "time"

const (
	AccountUnverified = "Unverified"
	AccountVerified   = "Verified"
)

// DriverUser is a driver account row. PasswordHash never leaves the backend.
type DriverUser struct {
	ID            int64      `json:"id"`
	Username      string     `json:"username"`
	PasswordHash  string     `json:"-"`
	FullName      string     `json:"full_name"`
	Email         string     `json:"email"`
	PhoneNumber   string     `json:"phone_number"`
	LicenseImg    []byte     `json:"-"`
	LicenseNumber string     `json:"license_number"`
	LicenseStatus string     `json:"license_status"`
	LicenseExpiry *time.Time `json:"license_expiry,omitempty"`
	Birthday      *time.Time `json:"birthday,omitempty"`
	AccountStatus string     `json:"account_status"`
}

// Age derives the driver's age from the birthday; nil when birthday is unset.
func (d DriverUser) Age(now time.Time) *int {
	if d.Birthday == nil {
		return nil
	}
	b := *d.Birthday
	age := now.Year() - b.Year()
	if now.Month() < b.Month() || (now.Month() == b.Month() && now.Day() < b.Day()) {
		age--
	}
	return &age
}
