package repositories

import (
	"database/sql"
	"errors"

	intconfig "ltobackend/internal/config"
	"ltobackend/internal/domain"
	"ltobackend/internal/domain/models"
)

type AdminRepository struct {
	DB *sql.DB
}

func (r AdminRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const adminColumns = `lto_user, username, password, full_name,
	       COALESCE(position,''), COALESCE(phone_number,'')`

func scanAdmin(row *sql.Row) (models.LtoAdminUser, error) {
	var a models.LtoAdminUser
	err := row.Scan(
		&a.ID,
		&a.Username,
		&a.PasswordHash,
		&a.FullName,
		&a.Position,
		&a.PhoneNumber,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.LtoAdminUser{}, domain.NotFoundError{Resource: "admin"}
		}
		return models.LtoAdminUser{}, err
	}
	return a, nil
}

func (r AdminRepository) GetByID(id int64) (models.LtoAdminUser, error) {
	if id <= 0 {
		return models.LtoAdminUser{}, domain.ValidationError{Field: "user_id", Msg: "invalid id"}
	}
	row := r.db().QueryRow(`SELECT `+adminColumns+` FROM lto_admin_user WHERE lto_user = ? LIMIT 1`, id)
	return scanAdmin(row)
}

func (r AdminRepository) GetByUsername(username string) (models.LtoAdminUser, error) {
	row := r.db().QueryRow(`SELECT `+adminColumns+` FROM lto_admin_user WHERE username = ? LIMIT 1`, username)
	return scanAdmin(row)
}
