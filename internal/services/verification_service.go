package services

import (
	"fmt"
	"time"

	"ltobackend/internal/domain"
	"ltobackend/internal/domain/models"
	"ltobackend/internal/repositories"
	"ltobackend/internal/utils"
)

// VerificationService is the identity-check predicate plus the audit recorder.
type VerificationService struct {
	Drivers   repositories.DriverRepository
	Audit     repositories.AuditRepository
	RequestID string
}

// DriverExists reports whether a driver record matches the exact full name
// and license number. Officers consult this before filing; drivers use it as
// a self-check.
func (s VerificationService) DriverExists(fullName, licenseNumber string) (bool, error) {
	fullName = utils.NormalizeSpace(fullName)
	licenseNumber = utils.TrimOrEmpty(licenseNumber)
	if fullName == "" || licenseNumber == "" {
		return false, domain.ValidationError{Msg: "full_name and license_number are required"}
	}
	return s.Drivers.ExistsByNameAndLicense(fullName, licenseNumber)
}

// SetDriverVerified marks an account Verified. An unknown id is NotFound; a
// driver already verified reads as a successful no-op.
func (s VerificationService) SetDriverVerified(driverID, adminID int64) error {
	if _, err := s.Drivers.GetByID(driverID); err != nil {
		return err
	}
	if err := s.Drivers.SetAccountStatus(driverID, models.AccountVerified); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "admin", "verify_driver", fmt.Sprintf("driver_user_id=%d", driverID))
	if adminID > 0 {
		s.Record(models.AuditLog{AdminID: &adminID},
			"driver_verified",
			fmt.Sprintf("Driver %d verified", driverID))
	}
	return nil
}

// UpdateLicenseExpiry validates and writes a driver's license expiry date.
func (s VerificationService) UpdateLicenseExpiry(driverID, adminID int64, expiry string) error {
	date, err := utils.ParseDate(expiry)
	if err != nil {
		return domain.ValidationError{Field: "license_expiry", Msg: "invalid date format", Err: err}
	}
	if _, err := s.Drivers.GetByID(driverID); err != nil {
		return err
	}
	if err := s.Drivers.SetLicenseExpiry(driverID, date); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "admin", "update_license_expiry", fmt.Sprintf("driver_user_id=%d", driverID))
	if adminID > 0 {
		s.Record(models.AuditLog{AdminID: &adminID},
			"license_expiry_updated",
			fmt.Sprintf("Driver %d license expiry set to %s", driverID, utils.FormatDate(date)))
	}
	return nil
}

// AuditView is one audit entry as the admin screens render it.
type AuditView struct {
	ID          int64  `json:"id"`
	Action      string `json:"action"`
	Description string `json:"description"`
	Timestamp   string `json:"timestamp"`
}

// AuditLogs lists entries for one admin actor, newest first.
func (s VerificationService) AuditLogs(adminID int64) ([]AuditView, error) {
	entries, err := s.Audit.ListByAdmin(adminID)
	if err != nil {
		return nil, err
	}
	out := make([]AuditView, 0, len(entries))
	for _, e := range entries {
		out = append(out, AuditView{
			ID:          e.ID,
			Action:      e.ActionType,
			Description: e.Description,
			Timestamp:   utils.FormatAuditTime(e.Timestamp),
		})
	}
	return out, nil
}

// Record appends one audit entry. Failures are logged, never propagated: an
// audit write must not fail the action it describes.
func (s VerificationService) Record(actor models.AuditLog, actionType, description string) {
	actor.ActionType = actionType
	actor.Description = description
	actor.Timestamp = time.Now()
	if err := s.Audit.Append(actor); err != nil {
		utils.LogWarn(s.RequestID, "audit", "append", err)
	}
}
