package models

// LawOfficer is a law-enforcement officer account. Provisioned externally,
// read-only in this backend.
type LawOfficer struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	BadgeID      string `json:"badge_id"`
	Station      string `json:"station"`
	PhoneNumber  string `json:"phone_number"`
	FullName     string `json:"full_name"`
}

// LtoAdminUser is an LTO administrator account.
type LtoAdminUser struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	FullName     string `json:"full_name"`
	Position     string `json:"position"`
	PhoneNumber  string `json:"phone_number"`
}
