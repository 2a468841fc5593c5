package repositories

import (
	"database/sql"
	"errors"

	intconfig "ltobackend/internal/config"
	"ltobackend/internal/domain"
	"ltobackend/internal/domain/models"
)

type OfficerRepository struct {
	DB *sql.DB
}

func (r OfficerRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const officerColumns = `law_of_user_id, username, password, badge_id,
	       COALESCE(station,''), COALESCE(phone_number,''), full_name`

func scanOfficer(row *sql.Row) (models.LawOfficer, error) {
	var o models.LawOfficer
	err := row.Scan(
		&o.ID,
		&o.Username,
		&o.PasswordHash,
		&o.BadgeID,
		&o.Station,
		&o.PhoneNumber,
		&o.FullName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.LawOfficer{}, domain.NotFoundError{Resource: "officer"}
		}
		return models.LawOfficer{}, err
	}
	return o, nil
}

func (r OfficerRepository) GetByID(id int64) (models.LawOfficer, error) {
	if id <= 0 {
		return models.LawOfficer{}, domain.ValidationError{Field: "officer_user_id", Msg: "invalid id"}
	}
	row := r.db().QueryRow(`SELECT `+officerColumns+` FROM law_officer WHERE law_of_user_id = ? LIMIT 1`, id)
	return scanOfficer(row)
}

func (r OfficerRepository) GetByUsername(username string) (models.LawOfficer, error) {
	row := r.db().QueryRow(`SELECT `+officerColumns+` FROM law_officer WHERE username = ? LIMIT 1`, username)
	return scanOfficer(row)
}
