package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment statuses. Only ForChecking (set on create) and Completed (the one
// allowed transition) are produced; Pending and Failed are declared wire
// vocabulary with no transition in this workflow.
const (
	PaymentForChecking = "For Checking"
	PaymentCompleted   = "completed"
	PaymentPending     = "Pending"
	PaymentFailed      = "Failed"
)

// Payment types accepted on submission.
const (
	PayOnline       = "Online"
	PayCash         = "Cash"
	PayGCash        = "GCash"
	PayBankTransfer = "BankTransfer"
)

// Payment is a driver's attempt to settle a violation. PaymentDate is set once
// at creation; TransactionRef is unique across all payments.
type Payment struct {
	ID             int64           `json:"payment_id"`
	ViolationID    int64           `json:"violation_id"`
	DriverID       int64           `json:"driver_user_id"`
	PaymentType    string          `json:"payment_type"`
	PaymentDate    time.Time       `json:"payment_date"`
	AmountPaid     decimal.Decimal `json:"amount_paid"`
	TransactionRef string          `json:"transaction_ref"`
	Status         string          `json:"status"`
}

// ValidPaymentType reports whether t is one of the accepted payment types.
func ValidPaymentType(t string) bool {
	switch t {
	case PayOnline, PayCash, PayGCash, PayBankTransfer:
		return true
	}
	return false
}
