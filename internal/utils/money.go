package utils

import (
	"strings"

	"github.com/shopspring/decimal"
	"ltobackend/internal/domain"
)

// ParseAmount parses a decimal currency string ("500.00"). Negative amounts
// are rejected; fee and payment fields are never negative in this schema.
func ParseAmount(field, s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, domain.ValidationError{Field: field, Msg: "amount is required"}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, domain.ValidationError{Field: field, Msg: "invalid amount", Err: err}
	}
	if d.IsNegative() {
		return decimal.Zero, domain.ValidationError{Field: field, Msg: "amount must not be negative"}
	}
	return d, nil
}

// FormatMoney keeps consistent two-decimal formatting for currency fields.
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// SumFees adds line-item fee snapshots into a violation total.
func SumFees(fees []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, f := range fees {
		total = total.Add(f)
	}
	return total
}
