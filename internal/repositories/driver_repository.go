package repositories

import (
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"

	intconfig "ltobackend/internal/config"
	intdb "ltobackend/internal/db"
	"ltobackend/internal/domain"
	"ltobackend/internal/domain/models"
)

type DriverRepository struct {
	DB *sql.DB
}

func (r DriverRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const driverColumns = `driver_user_id, username, password, full_name,
	       COALESCE(email,''), COALESCE(phone_number,''),
	       license_number, COALESCE(license_status,''),
	       license_expiry, birthday, COALESCE(account_status,'Unverified')`

func scanDriver(row *sql.Row) (models.DriverUser, error) {
	var d models.DriverUser
	err := row.Scan(
		&d.ID,
		&d.Username,
		&d.PasswordHash,
		&d.FullName,
		&d.Email,
		&d.PhoneNumber,
		&d.LicenseNumber,
		&d.LicenseStatus,
		&d.LicenseExpiry,
		&d.Birthday,
		&d.AccountStatus,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.DriverUser{}, domain.NotFoundError{Resource: "driver"}
		}
		return models.DriverUser{}, err
	}
	return d, nil
}

func (r DriverRepository) GetByID(id int64) (models.DriverUser, error) {
	if id <= 0 {
		return models.DriverUser{}, domain.ValidationError{Field: "driver_user_id", Msg: "invalid id"}
	}
	row := r.db().QueryRow(`SELECT `+driverColumns+` FROM driver_user WHERE driver_user_id = ? LIMIT 1`, id)
	return scanDriver(row)
}

func (r DriverRepository) GetByUsername(username string) (models.DriverUser, error) {
	row := r.db().QueryRow(`SELECT `+driverColumns+` FROM driver_user WHERE username = ? LIMIT 1`, username)
	return scanDriver(row)
}

// GetByNameAndLicense resolves a driver the way an officer identifies one at
// the roadside: exact full-name plus license-number match.
func (r DriverRepository) GetByNameAndLicense(fullName, licenseNumber string) (models.DriverUser, error) {
	row := r.db().QueryRow(`SELECT `+driverColumns+`
		FROM driver_user
		WHERE full_name = ? AND license_number = ?
		LIMIT 1`, fullName, licenseNumber)
	return scanDriver(row)
}

func (r DriverRepository) ExistsByNameAndLicense(fullName, licenseNumber string) (bool, error) {
	var n int
	err := r.db().QueryRow(`SELECT COUNT(*) FROM driver_user WHERE full_name = ? AND license_number = ?`,
		fullName, licenseNumber).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Create inserts a new driver account. A duplicate username surfaces as a
// ConflictError via the unique index, not a crash.
func (r DriverRepository) Create(d models.DriverUser) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO driver_user
			(username, password, full_name, email, phone_number, license_img,
			 license_number, license_status, license_expiry, birthday, account_status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		d.Username,
		d.PasswordHash,
		d.FullName,
		d.Email,
		d.PhoneNumber,
		d.LicenseImg,
		d.LicenseNumber,
		intdb.NullIfEmpty(d.LicenseStatus),
		d.LicenseExpiry,
		d.Birthday,
		models.AccountUnverified,
	)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, domain.ConflictError{Resource: "driver", Msg: "username already exists"}
		}
		return 0, err
	}
	return res.LastInsertId()
}

// SetAccountStatus writes the verification flag. Row existence is checked
// separately so a same-value update still reads as success.
func (r DriverRepository) SetAccountStatus(id int64, status string) error {
	_, err := r.db().Exec(`UPDATE driver_user SET account_status = ? WHERE driver_user_id = ?`, status, id)
	return err
}

func (r DriverRepository) SetLicenseExpiry(id int64, expiry time.Time) error {
	_, err := r.db().Exec(`UPDATE driver_user SET license_expiry = ? WHERE driver_user_id = ?`, expiry, id)
	return err
}

// AdminDriverRow is the administrative bulk-view projection.
type AdminDriverRow struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	License       string `json:"license"`
	Status        string `json:"status"`
	LicenseExpiry string `json:"license_expiry"`
}

func (r DriverRepository) ListAll() ([]AdminDriverRow, error) {
	rows, err := r.db().Query(`
		SELECT driver_user_id,
		       COALESCE(full_name,''),
		       COALESCE(license_number,''),
		       COALESCE(account_status,'Unverified'),
		       COALESCE(DATE_FORMAT(license_expiry, '%Y-%m-%d'), '')
		FROM driver_user
		ORDER BY driver_user_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []AdminDriverRow{}
	for rows.Next() {
		var d AdminDriverRow
		if err := rows.Scan(&d.ID, &d.Name, &d.License, &d.Status, &d.LicenseExpiry); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// isDuplicateKey detects MySQL error 1062 (duplicate entry on a unique index).
func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
