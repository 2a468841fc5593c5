package services

import (
	"encoding/base64"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"ltobackend/internal/domain"
	"ltobackend/internal/domain/models"
	"ltobackend/internal/repositories"
	"ltobackend/internal/utils"
)

// DriverService handles driver registration and the driver-facing reads.
type DriverService struct {
	Drivers    repositories.DriverRepository
	Violations repositories.ViolationRepository
	RequestID  string
}

type RegisterDriverInput struct {
	Username      string `json:"username"`
	Password      string `json:"password"`
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	PhoneNumber   string `json:"phone_number"`
	LicenseNumber string `json:"license_number"`
	Birthday      string `json:"birthday"`
	LicenseImg    string `json:"license_img"` // optional base64 data URI
}

// Register creates a driver account in Unverified state. The password is
// bcrypt-hashed before it reaches the store.
func (s DriverService) Register(in RegisterDriverInput) (int64, error) {
	in.Username = utils.TrimOrEmpty(in.Username)
	in.FullName = utils.NormalizeSpace(in.FullName)
	in.LicenseNumber = utils.TrimOrEmpty(in.LicenseNumber)

	required := map[string]string{
		"username":       in.Username,
		"password":       in.Password,
		"full_name":      in.FullName,
		"email":          utils.TrimOrEmpty(in.Email),
		"phone_number":   utils.TrimOrEmpty(in.PhoneNumber),
		"license_number": in.LicenseNumber,
		"birthday":       utils.TrimOrEmpty(in.Birthday),
	}
	for field, v := range required {
		if v == "" {
			return 0, domain.ValidationError{Field: field, Msg: "is required"}
		}
	}

	birthday, err := utils.ParseDate(in.Birthday)
	if err != nil {
		return 0, domain.ValidationError{Field: "birthday", Msg: "invalid format, use YYYY-MM-DD", Err: err}
	}

	var img []byte
	if strings.TrimSpace(in.LicenseImg) != "" {
		img, err = decodeImageDataURI(in.LicenseImg)
		if err != nil {
			return 0, domain.ValidationError{Field: "license_img", Msg: "image upload failed", Err: err}
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, domain.InternalError{Msg: "failed to hash password", Err: err}
	}

	id, err := s.Drivers.Create(models.DriverUser{
		Username:      in.Username,
		PasswordHash:  string(hash),
		FullName:      in.FullName,
		Email:         utils.TrimOrEmpty(in.Email),
		PhoneNumber:   utils.TrimOrEmpty(in.PhoneNumber),
		LicenseImg:    img,
		LicenseNumber: in.LicenseNumber,
		Birthday:      &birthday,
		AccountStatus: models.AccountUnverified,
	})
	if err != nil {
		return 0, err
	}

	utils.LogEvent(s.RequestID, "driver", "register", "new driver account created")
	return id, nil
}

// DriverProfile is the profile payload with the derived age attribute.
type DriverProfile struct {
	FullName      string `json:"full_name"`
	Age           *int   `json:"age"`
	LicenseStatus string `json:"license_status"`
	LicenseExpiry string `json:"license_expiry,omitempty"`
	Birthday      string `json:"birthday,omitempty"`
	Email         string `json:"email"`
	PhoneNumber   string `json:"phone_number"`
	LicenseNumber string `json:"license_number"`
	AccountStatus string `json:"account_status"`
}

func (s DriverService) Details(driverID int64) (DriverProfile, error) {
	d, err := s.Drivers.GetByID(driverID)
	if err != nil {
		return DriverProfile{}, err
	}
	return DriverProfile{
		FullName:      d.FullName,
		Age:           d.Age(time.Now()),
		LicenseStatus: d.LicenseStatus,
		LicenseExpiry: utils.FormatDatePtr(d.LicenseExpiry),
		Birthday:      utils.FormatDatePtr(d.Birthday),
		Email:         d.Email,
		PhoneNumber:   d.PhoneNumber,
		LicenseNumber: d.LicenseNumber,
		AccountStatus: d.AccountStatus,
	}, nil
}

// Penalties returns the flattened per-line-item list for a driver.
func (s DriverService) Penalties(driverID int64) ([]models.PenaltyRow, error) {
	if driverID <= 0 {
		return nil, domain.ValidationError{Field: "driver_user_id", Msg: "invalid id"}
	}
	return s.Violations.PenaltiesByDriver(driverID)
}

// decodeImageDataURI decodes "data:image/png;base64,..." payloads. Plain
// base64 without a data-URI prefix is accepted too.
func decodeImageDataURI(raw string) ([]byte, error) {
	payload := raw
	if idx := strings.Index(raw, ";base64,"); idx >= 0 {
		payload = raw[idx+len(";base64,"):]
	}
	return base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
}
