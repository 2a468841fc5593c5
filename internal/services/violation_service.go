package services

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"ltobackend/internal/domain"
	"ltobackend/internal/domain/models"
	"ltobackend/internal/repositories"
	"ltobackend/internal/utils"
)

// ViolationService is the aggregator over violations and their line items: it
// owns the total-fee relationship and the paid-status write.
type ViolationService struct {
	Drivers    repositories.DriverRepository
	Officers   repositories.OfficerRepository
	Violations repositories.ViolationRepository
	RequestID  string
}

// NextID previews the next violation number for display. It is a hint only:
// concurrent filings can read the same value, and nothing reserves it. The
// store-assigned key returned by Register is the authoritative id.
func (s ViolationService) NextID() (int64, error) {
	max, err := s.Violations.MaxID()
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}

// LineItemInput is one charge on a filing. Type may reference the catalog;
// an unresolvable reference is stored null. FeeAtTime is the snapshot the
// officer filed with, not the catalog's current fee.
type LineItemInput struct {
	Type      int64           `json:"violation_type"`
	FeeAtTime decimal.Decimal `json:"fee_at_time"`
}

type RegisterViolationInput struct {
	DriverName    string          `json:"driver_name"`
	LicenseNumber string          `json:"license_number"`
	Address       string          `json:"address"`
	PlateNumber   string          `json:"platenumber"`
	VehicleType   string          `json:"vehicle_type"`
	CarName       string          `json:"car_name"`
	VehicleColor  string          `json:"vehicle_color"`
	Notes         string          `json:"notes"`
	Violations    []LineItemInput `json:"violations"`
}

// Register files a violation with its line items atomically. The officer is
// identified by the explicit officerID parameter, never by ambient session
// state. total_fee is the sum of the submitted fee snapshots, fixed at
// creation; status starts as unpaid no matter what the caller sent.
func (s ViolationService) Register(officerID int64, in RegisterViolationInput) (int64, error) {
	officer, err := s.Officers.GetByID(officerID)
	if err != nil {
		return 0, err
	}

	in.DriverName = utils.NormalizeSpace(in.DriverName)
	in.LicenseNumber = utils.TrimOrEmpty(in.LicenseNumber)
	in.Address = utils.TrimOrEmpty(in.Address)

	if in.DriverName == "" || in.LicenseNumber == "" || in.Address == "" {
		return 0, domain.ValidationError{Msg: "driver_name, license_number and address are required"}
	}
	if len(in.Violations) == 0 {
		return 0, domain.ValidationError{Field: "violations", Msg: "at least one line item is required"}
	}

	driver, err := s.Drivers.GetByNameAndLicense(in.DriverName, in.LicenseNumber)
	if err != nil {
		return 0, err
	}

	fees := make([]decimal.Decimal, 0, len(in.Violations))
	details := make([]models.ViolationDetail, 0, len(in.Violations))
	for _, item := range in.Violations {
		if item.FeeAtTime.IsNegative() {
			return 0, domain.ValidationError{Field: "fee_at_time", Msg: "must not be negative"}
		}

		var typeRef *int64
		if item.Type > 0 {
			ok, err := s.Violations.TypeExists(item.Type)
			if err != nil {
				return 0, err
			}
			if ok {
				t := item.Type
				typeRef = &t
			}
		}

		fees = append(fees, item.FeeAtTime)
		details = append(details, models.ViolationDetail{
			TypeID:       typeRef,
			FeeAtTime:    item.FeeAtTime,
			Notes:        utils.TrimOrEmpty(in.Notes),
			PlateNumber:  utils.TrimOrEmpty(in.PlateNumber),
			VehicleType:  utils.TrimOrEmpty(in.VehicleType),
			CarName:      utils.TrimOrEmpty(in.CarName),
			VehicleColor: utils.TrimOrEmpty(in.VehicleColor),
		})
	}

	officerRef := officer.ID
	violationID, err := s.Violations.CreateWithDetails(models.Violation{
		DriverID:  driver.ID,
		OfficerID: &officerRef,
		Location:  in.Address,
		Status:    models.ViolationUnpaid,
		TotalFee:  utils.SumFees(fees),
	}, details)
	if err != nil {
		return 0, err
	}

	utils.LogEvent(s.RequestID, "violation", "register",
		fmt.Sprintf("violation_id=%d items=%d", violationID, len(details)))
	return violationID, nil
}

// MarkViolationPaid flips the parent violation to paid inside the caller's
// transaction. The payment lifecycle calls this explicitly when a payment
// completes; it is idempotent for already-paid violations.
func (s ViolationService) MarkViolationPaid(tx *sql.Tx, violationID int64) error {
	return s.Violations.MarkPaid(tx, violationID)
}

// Types returns the offense catalog.
func (s ViolationService) Types() ([]models.ViolationType, error) {
	return s.Violations.ListTypes()
}
