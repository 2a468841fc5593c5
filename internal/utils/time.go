package utils

import (
	"strings"
	"time"
)

const (
	layoutDate  = "2006-01-02"
	layoutAudit = "2006-01-02 15:04"
)

// ParseDate parses YYYY-MM-DD in local timezone. Used for birthdays and
// license expiry dates coming off the wire.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), time.Local)
}

// FormatDate formats time to YYYY-MM-DD in local timezone.
func FormatDate(t time.Time) string {
	return t.In(time.Local).Format(layoutDate)
}

// FormatDatePtr is FormatDate for optional dates; empty string when nil.
func FormatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return FormatDate(*t)
}

// FormatAuditTime renders audit timestamps as "YYYY-MM-DD HH:MM".
func FormatAuditTime(t time.Time) string {
	return t.In(time.Local).Format(layoutAudit)
}
