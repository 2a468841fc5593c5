package services

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	intconfig "ltobackend/internal/config"
	"ltobackend/internal/domain"
	"ltobackend/internal/domain/models"
	"ltobackend/internal/repositories"
	"ltobackend/internal/utils"
)

// PaymentService governs the payment lifecycle: created -> "For Checking" ->
// "completed". No other transition exists; Pending/Failed are declared wire
// vocabulary that no code path produces.
type PaymentService struct {
	Payments   repositories.PaymentRepository
	Violations ViolationService
	Drivers    repositories.DriverRepository
	Recorder   VerificationService
	DB         *sql.DB
	RequestID  string
}

func (s PaymentService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

type SubmitPaymentInput struct {
	ViolationID    int64           `json:"violation_id"`
	DriverID       int64           `json:"driver_user_id"`
	PaymentType    string          `json:"payment_type"`
	AmountPaid     decimal.Decimal `json:"amount_paid"`
	TransactionRef string          `json:"transaction_ref"`
	Status         string          `json:"status"` // ignored; kept so old clients can still send it
}

// Submit records a driver's payment attempt. The status is forced to
// "For Checking" regardless of caller input, and the parent violation is left
// untouched: a payment's existence is not proof of payment.
func (s PaymentService) Submit(in SubmitPaymentInput) (int64, error) {
	in.TransactionRef = utils.TrimOrEmpty(in.TransactionRef)
	if in.TransactionRef == "" {
		return 0, domain.ValidationError{Field: "transaction_ref", Msg: "is required"}
	}
	if !models.ValidPaymentType(in.PaymentType) {
		return 0, domain.ValidationError{Field: "payment_type", Msg: "must be one of Online, Cash, GCash, BankTransfer"}
	}
	if in.AmountPaid.IsNegative() {
		return 0, domain.ValidationError{Field: "amount_paid", Msg: "must not be negative"}
	}

	if _, err := s.Violations.Violations.GetByID(in.ViolationID); err != nil {
		return 0, err
	}
	if _, err := s.Drivers.GetByID(in.DriverID); err != nil {
		return 0, err
	}

	id, err := s.Payments.Create(models.Payment{
		ViolationID:    in.ViolationID,
		DriverID:       in.DriverID,
		PaymentType:    in.PaymentType,
		AmountPaid:     in.AmountPaid,
		TransactionRef: in.TransactionRef,
		Status:         models.PaymentForChecking,
	})
	if err != nil {
		return 0, err
	}

	utils.LogEvent(s.RequestID, "payment", "submit",
		fmt.Sprintf("payment_id=%d violation_id=%d", id, in.ViolationID))
	return id, nil
}

// Complete performs the one allowed explicit transition. requestedStatus must
// be exactly "completed" (case-insensitive); anything else is rejected with no
// state change. Marking the payment completed and flipping the parent
// violation to paid happen in the same transaction, through an explicit call
// into the aggregator rather than any implicit hook. The whole operation is
// idempotent: re-completing a completed payment is a no-op beyond the status
// write.
func (s PaymentService) Complete(paymentID int64, requestedStatus string, adminID int64) error {
	if paymentID <= 0 {
		return domain.ValidationError{Field: "payment_id", Msg: "invalid id"}
	}
	if !strings.EqualFold(utils.TrimOrEmpty(requestedStatus), models.PaymentCompleted) {
		return domain.ValidationError{Field: "status", Msg: `only status "completed" is allowed`}
	}

	tx, err := s.db().Begin()
	if err != nil {
		return err
	}

	payment, err := s.Payments.GetForUpdate(tx, paymentID)
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := s.Payments.SetStatus(tx, paymentID, models.PaymentCompleted); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := s.Violations.MarkViolationPaid(tx, payment.ViolationID); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	utils.LogEvent(s.RequestID, "payment", "complete",
		fmt.Sprintf("payment_id=%d violation_id=%d", paymentID, payment.ViolationID))

	if adminID > 0 {
		s.Recorder.Record(models.AuditLog{AdminID: &adminID},
			"payment_completed",
			fmt.Sprintf("Payment %d marked as completed", paymentID))
	}
	return nil
}

// HistoryByDriver returns a driver's payments, most recent first.
func (s PaymentService) HistoryByDriver(driverID int64) ([]models.Payment, error) {
	if driverID <= 0 {
		return nil, domain.ValidationError{Field: "driver_user_id", Msg: "invalid id"}
	}
	return s.Payments.ListByDriver(driverID)
}

// ListAll is the administrative bulk view.
func (s PaymentService) ListAll() ([]repositories.AdminPaymentRow, error) {
	return s.Payments.ListAll()
}
