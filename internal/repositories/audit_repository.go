package repositories

import (
	"database/sql"

	intconfig "ltobackend/internal/config"
	intdb "ltobackend/internal/db"
	"ltobackend/internal/domain"
	"ltobackend/internal/domain/models"
)

type AuditRepository struct {
	DB *sql.DB
}

func (r AuditRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Append writes one audit entry. Entries are append-only; nothing in this
// backend updates or deletes them.
func (r AuditRepository) Append(entry models.AuditLog) error {
	_, err := r.db().Exec(`
		INSERT INTO audit_log
			(driver_user_id, law_of_user_id, lto_user, action_type, description, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		intdb.NullableID(entry.DriverID),
		intdb.NullableID(entry.OfficerID),
		intdb.NullableID(entry.AdminID),
		entry.ActionType,
		intdb.NullIfEmpty(entry.Description),
		entry.Timestamp,
	)
	return err
}

// ListByAdmin returns entries attributed to one admin actor, newest first.
func (r AuditRepository) ListByAdmin(adminID int64) ([]models.AuditLog, error) {
	if adminID <= 0 {
		return nil, domain.ValidationError{Field: "user_id", Msg: "invalid id"}
	}
	rows, err := r.db().Query(`
		SELECT log_id, driver_user_id, law_of_user_id, lto_user,
		       action_type, COALESCE(description,''), timestamp
		FROM audit_log
		WHERE lto_user = ?
		ORDER BY timestamp DESC
	`, adminID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.AuditLog{}
	for rows.Next() {
		var e models.AuditLog
		if err := rows.Scan(&e.ID, &e.DriverID, &e.OfficerID, &e.AdminID,
			&e.ActionType, &e.Description, &e.Timestamp); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
