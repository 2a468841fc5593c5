package models

import "github.com/shopspring/decimal"

const (
	ViolationUnpaid = "unpaid"
	ViolationPaid   = "paid"
)

// ViolationType is a catalog row: offense name plus the current fee.
type ViolationType struct {
	ID   int64           `json:"id"`
	Name string          `json:"violation_name"`
	Fee  decimal.Decimal `json:"violation_fee"`
}

// Violation is a filed offense owned by one driver, optionally attributed to
// one officer. OfficerID goes null when the officer row is removed.
type Violation struct {
	ID        int64           `json:"violation_id"`
	DriverID  int64           `json:"driver_user_id"`
	OfficerID *int64          `json:"law_of_user_id,omitempty"`
	Location  string          `json:"location"`
	Status    string          `json:"status"`
	TotalFee  decimal.Decimal `json:"total_fee"`
}

// ViolationDetail is one line-item within a violation. FeeAtTime snapshots the
// catalog fee at filing time and survives catalog edits or type removal.
type ViolationDetail struct {
	ID           int64           `json:"violation_details"`
	ViolationID  int64           `json:"violation_id"`
	TypeID       *int64          `json:"violation_type,omitempty"`
	FeeAtTime    decimal.Decimal `json:"fee_at_time"`
	Notes        string          `json:"notes"`
	PlateNumber  string          `json:"platenumber"`
	VehicleType  string          `json:"vehicle_type"`
	CarName      string          `json:"car_name"`
	VehicleColor string          `json:"vehicle_color"`
}

// PenaltyRow is the flattened per-line-item view a driver sees: one row per
// detail with the owning violation's status and officer attribution.
type PenaltyRow struct {
	ViolationID   int64           `json:"violation_id"`
	ViolationType string          `json:"violation_type"`
	Officer       string          `json:"officer"`
	Fee           decimal.Decimal `json:"fee"`
	Status        string          `json:"status"`
}
