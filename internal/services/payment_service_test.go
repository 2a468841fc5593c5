package services

import (
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"

	"ltobackend/internal/domain"
	"ltobackend/internal/domain/models"
	"ltobackend/internal/repositories"
)

// decimalArg matches a decimal argument by numeric value, independent of
// string formatting.
type decimalArg struct {
	want decimal.Decimal
}

func (d decimalArg) Match(v driver.Value) bool {
	var s string
	switch val := v.(type) {
	case string:
		s = val
	case []byte:
		s = string(val)
	default:
		return false
	}
	got, err := decimal.NewFromString(s)
	return err == nil && got.Equal(d.want)
}

func newPaymentService(t *testing.T) (PaymentService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	svc := PaymentService{
		Payments: repositories.PaymentRepository{DB: db},
		Violations: ViolationService{
			Drivers:    repositories.DriverRepository{DB: db},
			Officers:   repositories.OfficerRepository{DB: db},
			Violations: repositories.ViolationRepository{DB: db},
		},
		Drivers: repositories.DriverRepository{DB: db},
		Recorder: VerificationService{
			Drivers: repositories.DriverRepository{DB: db},
			Audit:   repositories.AuditRepository{DB: db},
		},
		DB: db,
	}
	return svc, mock, func() { db.Close() }
}

func driverRow() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"driver_user_id", "username", "password", "full_name", "email", "phone_number",
		"license_number", "license_status", "license_expiry", "birthday", "account_status",
	}).AddRow(2, "juan", "hash", "Juan Dela Cruz", "juan@example.com", "0917",
		"N01-23-456789", "Valid", nil, nil, "Verified")
}

func violationRow(status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"violation_id", "driver_user_id", "law_of_user_id", "location", "status", "total_fee",
	}).AddRow(1, 2, 3, "EDSA cor. Shaw Blvd", status, "800.00")
}

func paymentRow(status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"payment_id", "violation_id", "driver_user_id", "payment_type",
		"payment_date", "amount_paid", "transaction_ref", "status",
	}).AddRow(5, 1, 2, "GCash", time.Now(), "800.00", "TX-001", status)
}

func TestSubmitPaymentForcesForChecking(t *testing.T) {
	svc, mock, done := newPaymentService(t)
	defer done()

	mock.ExpectQuery("FROM violations").WillReturnRows(violationRow("unpaid"))
	mock.ExpectQuery("FROM driver_user").WillReturnRows(driverRow())
	mock.ExpectExec("INSERT INTO payment").
		WithArgs(int64(1), int64(2), "GCash", decimalArg{decimal.NewFromInt(800)}, "TX-001", models.PaymentForChecking).
		WillReturnResult(sqlmock.NewResult(5, 1))

	// caller-supplied status must be ignored
	id, err := svc.Submit(SubmitPaymentInput{
		ViolationID:    1,
		DriverID:       2,
		PaymentType:    "GCash",
		AmountPaid:     decimal.NewFromInt(800),
		TransactionRef: "TX-001",
		Status:         "Completed",
	})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if id != 5 {
		t.Fatalf("unexpected payment id: got %d want 5", id)
	}

	// the expectation set contains no violation update: submitting a payment
	// never mutates the parent violation
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSubmitPaymentDuplicateTransactionRef(t *testing.T) {
	svc, mock, done := newPaymentService(t)
	defer done()

	mock.ExpectQuery("FROM violations").WillReturnRows(violationRow("unpaid"))
	mock.ExpectQuery("FROM driver_user").WillReturnRows(driverRow())
	mock.ExpectExec("INSERT INTO payment").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	_, err := svc.Submit(SubmitPaymentInput{
		ViolationID:    1,
		DriverID:       2,
		PaymentType:    "Cash",
		AmountPaid:     decimal.NewFromInt(800),
		TransactionRef: "TX-001",
	})
	if !domain.IsConflict(err) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
}

func TestSubmitPaymentRejectsUnknownPaymentType(t *testing.T) {
	svc, _, done := newPaymentService(t)
	defer done()

	_, err := svc.Submit(SubmitPaymentInput{
		ViolationID:    1,
		DriverID:       2,
		PaymentType:    "Barter",
		AmountPaid:     decimal.NewFromInt(800),
		TransactionRef: "TX-002",
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestCompletePaymentFlipsViolation(t *testing.T) {
	svc, mock, done := newPaymentService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM payment WHERE payment_id").WillReturnRows(paymentRow("For Checking"))
	mock.ExpectExec("UPDATE payment SET status").
		WithArgs(models.PaymentCompleted, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM violations WHERE violation_id").
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("unpaid"))
	mock.ExpectExec("UPDATE violations SET status").
		WithArgs(models.ViolationPaid, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectExec("INSERT INTO audit_log").WillReturnResult(sqlmock.NewResult(1, 1))

	if err := svc.Complete(5, "Completed", 9); err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCompletePaymentIdempotent(t *testing.T) {
	svc, mock, done := newPaymentService(t)
	defer done()

	// payment already completed, violation already paid: the status writes
	// repeat, nothing else happens
	mock.ExpectBegin()
	mock.ExpectQuery("FROM payment WHERE payment_id").WillReturnRows(paymentRow("completed"))
	mock.ExpectExec("UPDATE payment SET status").
		WithArgs(models.PaymentCompleted, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("FROM violations WHERE violation_id").
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("paid"))
	mock.ExpectCommit()

	if err := svc.Complete(5, "completed", 0); err != nil {
		t.Fatalf("Complete on completed payment returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCompletePaymentRejectsOtherStatuses(t *testing.T) {
	svc, mock, done := newPaymentService(t)
	defer done()

	for _, status := range []string{"", "failed", "Pending", "For Checking", "paid"} {
		err := svc.Complete(5, status, 0)
		if !domain.IsValidation(err) {
			t.Fatalf("status %q: expected ValidationError, got %v", status, err)
		}
	}

	// no expectations registered: a rejected status must not touch the store
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("store was touched: %v", err)
	}
}

func TestCompletePaymentNotFound(t *testing.T) {
	svc, mock, done := newPaymentService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM payment WHERE payment_id").
		WillReturnRows(sqlmock.NewRows([]string{"payment_id"}))
	mock.ExpectRollback()

	err := svc.Complete(77, "completed", 0)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
