package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intconfig "ltobackend/internal/config"
	intdb "ltobackend/internal/db"
	"ltobackend/internal/domain"
	"ltobackend/internal/domain/models"
)

type ViolationRepository struct {
	DB *sql.DB
}

func (r ViolationRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// MaxID returns the highest violation id, 0 when the table is empty. The
// advisory next-id preview is MaxID()+1; only the auto-increment key handed
// out at insert time is authoritative.
func (r ViolationRepository) MaxID() (int64, error) {
	var max int64
	err := r.db().QueryRow(`SELECT COALESCE(MAX(violation_id), 0) FROM violations`).Scan(&max)
	if err != nil {
		return 0, err
	}
	return max, nil
}

func (r ViolationRepository) GetByID(id int64) (models.Violation, error) {
	if id <= 0 {
		return models.Violation{}, domain.ValidationError{Field: "violation_id", Msg: "invalid id"}
	}
	var v models.Violation
	err := r.db().QueryRow(`
		SELECT violation_id, driver_user_id, law_of_user_id,
		       COALESCE(location,''), COALESCE(status,'unpaid'), total_fee
		FROM violations
		WHERE violation_id = ?
		LIMIT 1
	`, id).Scan(&v.ID, &v.DriverID, &v.OfficerID, &v.Location, &v.Status, &v.TotalFee)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Violation{}, domain.NotFoundError{Resource: "violation"}
		}
		return models.Violation{}, err
	}
	return v, nil
}

// CreateWithDetails inserts the violation row and every line item in one
// transaction. A fault mid-sequence rolls everything back so a violation
// without its details is never observable.
func (r ViolationRepository) CreateWithDetails(v models.Violation, details []models.ViolationDetail) (int64, error) {
	if len(details) == 0 {
		return 0, domain.ValidationError{Field: "violations", Msg: "at least one line item is required"}
	}

	tx, err := r.db().Begin()
	if err != nil {
		return 0, err
	}

	res, err := tx.Exec(`
		INSERT INTO violations (driver_user_id, law_of_user_id, location, status, total_fee)
		VALUES (?, ?, ?, ?, ?)
	`, v.DriverID, intdb.NullableID(v.OfficerID), v.Location, v.Status, v.TotalFee)
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}
	violationID, err := res.LastInsertId()
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}

	for _, d := range details {
		if _, err := tx.Exec(`
			INSERT INTO violations_details
				(violation_id, violation_type, fee_at_time, notes,
				 platenumber, vehicle_type, car_name, vehicle_color)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`,
			violationID,
			intdb.NullableID(d.TypeID),
			d.FeeAtTime,
			intdb.NullIfEmpty(d.Notes),
			d.PlateNumber,
			d.VehicleType,
			d.CarName,
			d.VehicleColor,
		); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("insert violation detail: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return violationID, nil
}

// MarkPaid flips a violation to paid inside the caller's transaction. The
// status check makes repeat completion a plain no-op write.
func (r ViolationRepository) MarkPaid(tx *sql.Tx, violationID int64) error {
	var status string
	err := tx.QueryRow(`SELECT COALESCE(status,'unpaid') FROM violations WHERE violation_id = ? FOR UPDATE`,
		violationID).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "violation"}
		}
		return err
	}
	if strings.EqualFold(status, models.ViolationPaid) {
		return nil
	}
	_, err = tx.Exec(`UPDATE violations SET status = ? WHERE violation_id = ?`,
		models.ViolationPaid, violationID)
	return err
}

// DetailsByViolation lists line items for one violation, oldest first.
func (r ViolationRepository) DetailsByViolation(violationID int64) ([]models.ViolationDetail, error) {
	rows, err := r.db().Query(`
		SELECT violation_details, violation_id, violation_type, fee_at_time,
		       COALESCE(notes,''), COALESCE(platenumber,''),
		       COALESCE(vehicle_type,''), COALESCE(car_name,''), COALESCE(vehicle_color,'')
		FROM violations_details
		WHERE violation_id = ?
		ORDER BY violation_details
	`, violationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.ViolationDetail{}
	for rows.Next() {
		var d models.ViolationDetail
		if err := rows.Scan(&d.ID, &d.ViolationID, &d.TypeID, &d.FeeAtTime,
			&d.Notes, &d.PlateNumber, &d.VehicleType, &d.CarName, &d.VehicleColor); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// PenaltiesByDriver returns the flattened per-line-item view: one row per
// detail, officer name "N/A" when the officer reference went null, detail fee
// falling back to the violation total when the snapshot is missing.
func (r ViolationRepository) PenaltiesByDriver(driverID int64) ([]models.PenaltyRow, error) {
	rows, err := r.db().Query(`
		SELECT v.violation_id,
		       COALESCE(t.violation_name, 'N/A'),
		       COALESCE(o.full_name, 'N/A'),
		       COALESCE(d.fee_at_time, v.total_fee),
		       COALESCE(v.status, 'unpaid')
		FROM violations v
		JOIN violations_details d ON d.violation_id = v.violation_id
		LEFT JOIN violation_type t ON t.violation_type = d.violation_type
		LEFT JOIN law_officer o ON o.law_of_user_id = v.law_of_user_id
		WHERE v.driver_user_id = ?
		ORDER BY v.violation_id, d.violation_details
	`, driverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.PenaltyRow{}
	for rows.Next() {
		var p models.PenaltyRow
		if err := rows.Scan(&p.ViolationID, &p.ViolationType, &p.Officer, &p.Fee, &p.Status); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ListTypes returns the offense catalog ordered by id.
func (r ViolationRepository) ListTypes() ([]models.ViolationType, error) {
	rows, err := r.db().Query(`
		SELECT violation_type, violation_name, violation_fee
		FROM violation_type
		ORDER BY violation_type
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.ViolationType{}
	for rows.Next() {
		var t models.ViolationType
		if err := rows.Scan(&t.ID, &t.Name, &t.Fee); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// TypeExists reports whether a catalog reference still resolves. Unresolvable
// references on a filing are stored null rather than rejected.
func (r ViolationRepository) TypeExists(id int64) (bool, error) {
	if id <= 0 {
		return false, nil
	}
	var n int
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM violation_type WHERE violation_type = ?`, id).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}
