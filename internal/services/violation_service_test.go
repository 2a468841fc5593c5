package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"

	"ltobackend/internal/domain"
	"ltobackend/internal/repositories"
)

func newViolationService(t *testing.T) (ViolationService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	svc := ViolationService{
		Drivers:    repositories.DriverRepository{DB: db},
		Officers:   repositories.OfficerRepository{DB: db},
		Violations: repositories.ViolationRepository{DB: db},
	}
	return svc, mock, func() { db.Close() }
}

func officerRow() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"law_of_user_id", "username", "password", "badge_id", "station", "phone_number", "full_name",
	}).AddRow(3, "pnp-cruz", "hash", "B-1021", "Mandaluyong", "0918", "Officer Cruz")
}

func filingInput() RegisterViolationInput {
	return RegisterViolationInput{
		DriverName:    "Juan Dela Cruz",
		LicenseNumber: "N01-23-456789",
		Address:       "EDSA cor. Shaw Blvd",
		PlateNumber:   "ABC-1234",
		VehicleType:   "Sedan",
		CarName:       "Vios",
		VehicleColor:  "Silver",
		Notes:         "no helmet",
		Violations: []LineItemInput{
			{Type: 1, FeeAtTime: decimal.RequireFromString("500.00")},
			{Type: 2, FeeAtTime: decimal.RequireFromString("300.00")},
		},
	}
}

func TestRegisterViolationTotalsLineItems(t *testing.T) {
	svc, mock, done := newViolationService(t)
	defer done()

	mock.ExpectQuery("FROM law_officer").WillReturnRows(officerRow())
	mock.ExpectQuery("FROM driver_user").WillReturnRows(driverRow())
	mock.ExpectQuery("FROM violation_type").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("FROM violation_type").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectBegin()
	// total_fee is the sum of the submitted snapshots; status always unpaid
	mock.ExpectExec("INSERT INTO violations").
		WithArgs(int64(2), int64(3), "EDSA cor. Shaw Blvd", "unpaid", decimalArg{decimal.NewFromInt(800)}).
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec("INSERT INTO violations_details").
		WithArgs(int64(7), int64(1), decimalArg{decimal.NewFromInt(500)}, "no helmet",
			"ABC-1234", "Sedan", "Vios", "Silver").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO violations_details").
		WithArgs(int64(7), int64(2), decimalArg{decimal.NewFromInt(300)}, "no helmet",
			"ABC-1234", "Sedan", "Vios", "Silver").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	id, err := svc.Register(3, filingInput())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if id != 7 {
		t.Fatalf("unexpected violation id: got %d want 7", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRegisterViolationUnresolvedTypeStoredNull(t *testing.T) {
	svc, mock, done := newViolationService(t)
	defer done()

	in := filingInput()
	in.Violations = in.Violations[:1]
	in.Violations[0].Type = 99 // not in catalog

	mock.ExpectQuery("FROM law_officer").WillReturnRows(officerRow())
	mock.ExpectQuery("FROM driver_user").WillReturnRows(driverRow())
	mock.ExpectQuery("FROM violation_type").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO violations").
		WillReturnResult(sqlmock.NewResult(8, 1))
	mock.ExpectExec("INSERT INTO violations_details").
		WithArgs(int64(8), nil, decimalArg{decimal.NewFromInt(500)}, "no helmet",
			"ABC-1234", "Sedan", "Vios", "Silver").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	if _, err := svc.Register(3, in); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRegisterViolationRollsBackOnDetailFailure(t *testing.T) {
	svc, mock, done := newViolationService(t)
	defer done()

	in := filingInput()

	mock.ExpectQuery("FROM law_officer").WillReturnRows(officerRow())
	mock.ExpectQuery("FROM driver_user").WillReturnRows(driverRow())
	mock.ExpectQuery("FROM violation_type").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("FROM violation_type").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO violations").WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectExec("INSERT INTO violations_details").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO violations_details").
		WillReturnError(sqlErrClosed{})
	mock.ExpectRollback()

	if _, err := svc.Register(3, in); err == nil {
		t.Fatal("expected error when a detail insert fails")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("violation insert must roll back with its details: %v", err)
	}
}

func TestRegisterViolationRequiresLineItems(t *testing.T) {
	svc, mock, done := newViolationService(t)
	defer done()

	in := filingInput()
	in.Violations = nil

	mock.ExpectQuery("FROM law_officer").WillReturnRows(officerRow())

	_, err := svc.Register(3, in)
	if !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestRegisterViolationUnknownDriver(t *testing.T) {
	svc, mock, done := newViolationService(t)
	defer done()

	mock.ExpectQuery("FROM law_officer").WillReturnRows(officerRow())
	mock.ExpectQuery("FROM driver_user").
		WillReturnRows(sqlmock.NewRows([]string{"driver_user_id"}))

	_, err := svc.Register(3, filingInput())
	if !domain.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestNextViolationID(t *testing.T) {
	svc, mock, done := newViolationService(t)
	defer done()

	mock.ExpectQuery(`MAX\(violation_id\)`).
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(41))

	next, err := svc.NextID()
	if err != nil {
		t.Fatalf("NextID returned error: %v", err)
	}
	if next != 42 {
		t.Fatalf("unexpected next id: got %d want 42", next)
	}
}

func TestNextViolationIDEmptyTable(t *testing.T) {
	svc, mock, done := newViolationService(t)
	defer done()

	mock.ExpectQuery(`MAX\(violation_id\)`).
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(0))

	next, err := svc.NextID()
	if err != nil {
		t.Fatalf("NextID returned error: %v", err)
	}
	if next != 1 {
		t.Fatalf("unexpected next id: got %d want 1", next)
	}
}

type sqlErrClosed struct{}

func (sqlErrClosed) Error() string { return "connection reset" }
