package repositories

import (
	"database/sql"
	"errors"

	intconfig "ltobackend/internal/config"
	"ltobackend/internal/domain"
	"ltobackend/internal/domain/models"
)

type PaymentRepository struct {
	DB *sql.DB
}

func (r PaymentRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const paymentColumns = `payment_id, violation_id, driver_user_id, payment_type,
	       payment_date, amount_paid, transaction_ref, COALESCE(status,'For Checking')`

// Create inserts a new payment. payment_date is set by the store at insert
// time and never written again. A duplicate transaction_ref surfaces as a
// ConflictError through the unique index.
func (r PaymentRepository) Create(p models.Payment) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO payment
			(violation_id, driver_user_id, payment_type, payment_date,
			 amount_paid, transaction_ref, status)
		VALUES (?, ?, ?, NOW(), ?, ?, ?)
	`,
		p.ViolationID,
		p.DriverID,
		p.PaymentType,
		p.AmountPaid,
		p.TransactionRef,
		p.Status,
	)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, domain.ConflictError{Resource: "payment", Msg: "transaction_ref already used"}
		}
		return 0, err
	}
	return res.LastInsertId()
}

func (r PaymentRepository) GetByID(id int64) (models.Payment, error) {
	if id <= 0 {
		return models.Payment{}, domain.ValidationError{Field: "payment_id", Msg: "invalid id"}
	}
	row := r.db().QueryRow(`SELECT `+paymentColumns+` FROM payment WHERE payment_id = ? LIMIT 1`, id)
	return scanPayment(row.Scan)
}

// GetForUpdate locks the payment row inside the caller's transaction so the
// completion flow reads and writes the same committed state.
func (r PaymentRepository) GetForUpdate(tx *sql.Tx, id int64) (models.Payment, error) {
	row := tx.QueryRow(`SELECT `+paymentColumns+` FROM payment WHERE payment_id = ? LIMIT 1 FOR UPDATE`, id)
	return scanPayment(row.Scan)
}

// SetStatus writes the payment status inside the caller's transaction.
func (r PaymentRepository) SetStatus(tx *sql.Tx, id int64, status string) error {
	_, err := tx.Exec(`UPDATE payment SET status = ? WHERE payment_id = ?`, status, id)
	return err
}

// ListByDriver returns a driver's payment history, most recent first.
func (r PaymentRepository) ListByDriver(driverID int64) ([]models.Payment, error) {
	rows, err := r.db().Query(`
		SELECT `+paymentColumns+`
		FROM payment
		WHERE driver_user_id = ?
		ORDER BY payment_date DESC
	`, driverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// AdminPaymentRow is the administrative bulk-view projection; status is
// lowercased on read as the review screens expect.
type AdminPaymentRow struct {
	ID             int64  `json:"id"`
	Driver         string `json:"driver"`
	Amount         string `json:"amount"`
	TransactionRef string `json:"transaction_ref"`
	Status         string `json:"status"`
}

func (r PaymentRepository) ListAll() ([]AdminPaymentRow, error) {
	rows, err := r.db().Query(`
		SELECT p.payment_id,
		       COALESCE(u.full_name, ''),
		       p.amount_paid,
		       p.transaction_ref,
		       LOWER(COALESCE(p.status, ''))
		FROM payment p
		LEFT JOIN driver_user u ON u.driver_user_id = p.driver_user_id
		ORDER BY p.payment_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []AdminPaymentRow{}
	for rows.Next() {
		var p AdminPaymentRow
		if err := rows.Scan(&p.ID, &p.Driver, &p.Amount, &p.TransactionRef, &p.Status); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanPayment(scan func(...any) error) (models.Payment, error) {
	var p models.Payment
	err := scan(
		&p.ID,
		&p.ViolationID,
		&p.DriverID,
		&p.PaymentType,
		&p.PaymentDate,
		&p.AmountPaid,
		&p.TransactionRef,
		&p.Status,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Payment{}, domain.NotFoundError{Resource: "payment"}
		}
		return models.Payment{}, err
	}
	return p, nil
}
