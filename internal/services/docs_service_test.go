package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"

	"ltobackend/internal/domain"
	"ltobackend/internal/repositories"
)

func TestDocsServiceGenerate(t *testing.T) {
	ticketLoader := func(id int64) (ticketDocData, error) {
		return ticketDocData{
			ViolationID:   id,
			DriverName:    "Juan Dela Cruz",
			LicenseNumber: "N01-23-456789",
			OfficerName:   "Officer Cruz",
			Location:      "EDSA cor. Shaw Blvd",
			Status:        "unpaid",
			PlateNumber:   "ABC-1234",
			Items: []ticketItem{
				{Name: "Disregarding Traffic Signs", Fee: decimal.RequireFromString("500.00")},
				{Name: "No Helmet", Fee: decimal.RequireFromString("300.00")},
			},
			TotalFee: decimal.RequireFromString("800.00"),
		}, nil
	}
	receiptLoader := func(id int64) (receiptDocData, error) {
		return receiptDocData{
			PaymentID:      id,
			ViolationID:    1,
			DriverName:     "Juan Dela Cruz",
			PaymentType:    "GCash",
			TransactionRef: "TX-001",
			AmountPaid:     decimal.RequireFromString("800.00"),
			PaymentDate:    time.Now(),
		}, nil
	}

	svc := DocsService{TicketLoader: ticketLoader, ReceiptLoader: receiptLoader}

	pdf, filename, err := svc.GenerateTicket(1)
	if err != nil {
		t.Fatalf("GenerateTicket returned error: %v", err)
	}
	if len(pdf) == 0 || filename == "" {
		t.Fatalf("GenerateTicket returned empty data")
	}

	receipt, recName, err := svc.GenerateReceipt(5)
	if err != nil {
		t.Fatalf("GenerateReceipt returned error: %v", err)
	}
	if len(receipt) == 0 || recName == "" {
		t.Fatalf("GenerateReceipt returned empty data")
	}
}

func TestGenerateReceiptRequiresCompletedPayment(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM payment WHERE payment_id").
		WithArgs(int64(5)).
		WillReturnRows(paymentRow("For Checking"))

	svc := DocsService{Payments: repositories.PaymentRepository{DB: db}}
	if _, _, err := svc.GenerateReceipt(5); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for pending payment, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
