package db

import (
	"database/sql"
	"database/sql/driver"
	"errors"
)

// QueryRower is the subset of *sql.DB the schema probes need.
type QueryRower interface {
	QueryRow(query string, args ...any) *sql.Row
}

// HasTable reports whether the current schema contains the named table.
// Used by the store probe endpoint; errors collapse to false so the caller
// reports "missing" rather than crashing on a bad connection.
func HasTable(q QueryRower, table string) bool {
	var name sql.NullString
	err := q.QueryRow(`
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		LIMIT 1
	`, table).Scan(&name)

	if err != nil {
		if errors.Is(err, driver.ErrBadConn) {
			return false
		}
		return false
	}
	return name.Valid && name.String != ""
}

// NullIfEmpty helps store optional strings without wiping existing data.
func NullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// NullableID converts an optional FK value for insertion.
func NullableID(id *int64) any {
	if id == nil || *id <= 0 {
		return nil
	}
	return *id
}
