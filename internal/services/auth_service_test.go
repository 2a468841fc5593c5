package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"golang.org/x/crypto/bcrypt"

	"ltobackend/internal/domain"
	"ltobackend/internal/repositories"
)

func newAuthService(t *testing.T) (AuthService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	svc := AuthService{
		Drivers:   repositories.DriverRepository{DB: db},
		Officers:  repositories.OfficerRepository{DB: db},
		Admins:    repositories.AdminRepository{DB: db},
		JWTSecret: []byte("test-secret"),
	}
	return svc, mock, func() { db.Close() }
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt error: %v", err)
	}
	return string(h)
}

func driverRowWith(t *testing.T, password, accountStatus string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"driver_user_id", "username", "password", "full_name", "email", "phone_number",
		"license_number", "license_status", "license_expiry", "birthday", "account_status",
	}).AddRow(2, "juan", hashOf(t, password), "Juan Dela Cruz", "juan@example.com", "0917",
		"N01-23-456789", "Valid", nil, nil, accountStatus)
}

func TestLoginVerifiedDriver(t *testing.T) {
	svc, mock, done := newAuthService(t)
	defer done()

	mock.ExpectQuery("FROM driver_user").WillReturnRows(driverRowWith(t, "s3cret", "Verified"))

	res, err := svc.Login("juan", "s3cret")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if res.UserType != domain.RoleDriver {
		t.Fatalf("unexpected role: %s", res.UserType)
	}
	if res.UserID != 2 || res.FullName != "Juan Dela Cruz" {
		t.Fatalf("unexpected principal: %+v", res)
	}
	if res.Token == "" {
		t.Fatal("expected a session token")
	}
}

func TestLoginUnverifiedDriverRefused(t *testing.T) {
	svc, mock, done := newAuthService(t)
	defer done()

	mock.ExpectQuery("FROM driver_user").WillReturnRows(driverRowWith(t, "s3cret", "Unverified"))

	// correct credentials are not enough before admin verification
	_, err := svc.Login("juan", "s3cret")
	if !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden AuthError, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, mock, done := newAuthService(t)
	defer done()

	mock.ExpectQuery("FROM driver_user").WillReturnRows(driverRowWith(t, "s3cret", "Verified"))

	_, err := svc.Login("juan", "wrong")
	if !domain.IsAuth(err) || domain.IsForbidden(err) {
		t.Fatalf("expected plain AuthError, got %v", err)
	}
}

func TestLoginFallsThroughToOfficer(t *testing.T) {
	svc, mock, done := newAuthService(t)
	defer done()

	mock.ExpectQuery("FROM driver_user").
		WillReturnRows(sqlmock.NewRows([]string{"driver_user_id"}))
	mock.ExpectQuery("FROM law_officer").
		WillReturnRows(sqlmock.NewRows([]string{
			"law_of_user_id", "username", "password", "badge_id", "station", "phone_number", "full_name",
		}).AddRow(3, "pnp-cruz", hashOf(t, "patrol"), "B-1021", "Mandaluyong", "0918", "Officer Cruz"))

	res, err := svc.Login("pnp-cruz", "patrol")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if res.UserType != domain.RoleOfficer {
		t.Fatalf("unexpected role: %s", res.UserType)
	}
}

func TestLoginUnknownUsername(t *testing.T) {
	svc, mock, done := newAuthService(t)
	defer done()

	mock.ExpectQuery("FROM driver_user").
		WillReturnRows(sqlmock.NewRows([]string{"driver_user_id"}))
	mock.ExpectQuery("FROM law_officer").
		WillReturnRows(sqlmock.NewRows([]string{"law_of_user_id"}))
	mock.ExpectQuery("FROM lto_admin_user").
		WillReturnRows(sqlmock.NewRows([]string{"lto_user"}))

	_, err := svc.Login("nobody", "whatever")
	if !domain.IsAuth(err) {
		t.Fatalf("expected AuthError, got %v", err)
	}
}

func TestLoginMissingFields(t *testing.T) {
	svc, _, done := newAuthService(t)
	defer done()

	if _, err := svc.Login("", "pw"); !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, err := svc.Login("user", ""); !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
