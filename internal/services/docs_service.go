package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phpdave11/gofpdf"
	"github.com/shopspring/decimal"

	"ltobackend/internal/domain"
	"ltobackend/internal/domain/models"
	"ltobackend/internal/repositories"
	"ltobackend/internal/utils"
)

// DocsService renders the printable documents: a citation ticket per
// violation and an official receipt per completed payment.
type DocsService struct {
	Violations    repositories.ViolationRepository
	Drivers       repositories.DriverRepository
	Officers      repositories.OfficerRepository
	Payments      repositories.PaymentRepository
	RequestID     string
	TicketLoader  func(int64) (ticketDocData, error)
	ReceiptLoader func(int64) (receiptDocData, error)
}

type ticketItem struct {
	Name string
	Fee  decimal.Decimal
}

type ticketDocData struct {
	ViolationID   int64
	DriverName    string
	LicenseNumber string
	OfficerName   string
	Location      string
	Status        string
	PlateNumber   string
	Items         []ticketItem
	TotalFee      decimal.Decimal
}

type receiptDocData struct {
	PaymentID      int64
	ViolationID    int64
	DriverName     string
	PaymentType    string
	TransactionRef string
	AmountPaid     decimal.Decimal
	PaymentDate    time.Time
}

func (s DocsService) GenerateTicket(violationID int64) ([]byte, string, error) {
	data, err := s.loadTicketData(violationID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_ticket", fmt.Sprintf("violation_id=%d", violationID))
	return buildTicketPDF(data)
}

func (s DocsService) GenerateReceipt(paymentID int64) ([]byte, string, error) {
	data, err := s.loadReceiptData(paymentID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_receipt", fmt.Sprintf("payment_id=%d", paymentID))
	return buildReceiptPDF(data)
}

func (s DocsService) loadTicketData(violationID int64) (ticketDocData, error) {
	if s.TicketLoader != nil {
		return s.TicketLoader(violationID)
	}

	var out ticketDocData
	v, err := s.Violations.GetByID(violationID)
	if err != nil {
		return out, err
	}
	out.ViolationID = v.ID
	out.Location = v.Location
	out.Status = v.Status
	out.TotalFee = v.TotalFee

	if d, err := s.Drivers.GetByID(v.DriverID); err == nil {
		out.DriverName = d.FullName
		out.LicenseNumber = d.LicenseNumber
	}

	out.OfficerName = "N/A"
	if v.OfficerID != nil {
		if o, err := s.Officers.GetByID(*v.OfficerID); err == nil {
			out.OfficerName = o.FullName
		}
	}

	details, err := s.Violations.DetailsByViolation(v.ID)
	if err != nil {
		return out, err
	}
	typeNames := map[int64]string{}
	if types, err := s.Violations.ListTypes(); err == nil {
		for _, t := range types {
			typeNames[t.ID] = t.Name
		}
	}
	for _, d := range details {
		name := "N/A"
		if d.TypeID != nil {
			if n, ok := typeNames[*d.TypeID]; ok {
				name = n
			}
		}
		if out.PlateNumber == "" {
			out.PlateNumber = d.PlateNumber
		}
		out.Items = append(out.Items, ticketItem{Name: name, Fee: d.FeeAtTime})
	}
	return out, nil
}

func (s DocsService) loadReceiptData(paymentID int64) (receiptDocData, error) {
	if s.ReceiptLoader != nil {
		return s.ReceiptLoader(paymentID)
	}

	var out receiptDocData
	p, err := s.Payments.GetByID(paymentID)
	if err != nil {
		return out, err
	}
	if !strings.EqualFold(p.Status, models.PaymentCompleted) {
		return out, domain.ValidationError{Field: "payment_id", Msg: "receipt is only available for completed payments"}
	}
	out.PaymentID = p.ID
	out.ViolationID = p.ViolationID
	out.PaymentType = p.PaymentType
	out.TransactionRef = p.TransactionRef
	out.AmountPaid = p.AmountPaid
	out.PaymentDate = p.PaymentDate

	if d, err := s.Drivers.GetByID(p.DriverID); err == nil {
		out.DriverName = d.FullName
	}
	return out, nil
}

func buildTicketPDF(d ticketDocData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Traffic Violation Ticket", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "LAND TRANSPORTATION OFFICE")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "TRAFFIC VIOLATION TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	lines := []string{
		fmt.Sprintf("Ticket No      : TVT-%06d", d.ViolationID),
		fmt.Sprintf("Driver         : %s", safe(d.DriverName, "-")),
		fmt.Sprintf("License No     : %s", safe(d.LicenseNumber, "-")),
		fmt.Sprintf("Plate No       : %s", safe(d.PlateNumber, "-")),
		fmt.Sprintf("Location       : %s", safe(d.Location, "-")),
		fmt.Sprintf("Issued By      : %s", safe(d.OfficerName, "N/A")),
		fmt.Sprintf("Status         : %s", strings.ToUpper(safe(d.Status, "unpaid"))),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(130, 8, "Violation", "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 8, "Fee", "1", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, item := range d.Items {
		pdf.CellFormat(130, 8, item.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 8, "PHP "+utils.FormatMoney(item.Fee), "1", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(130, 8, "TOTAL", "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 8, "PHP "+utils.FormatMoney(d.TotalFee), "1", 1, "R", false, 0, "")

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, "Settle this citation through any accepted payment channel. Payments are reviewed before the violation is marked paid.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("TICKET_%d.pdf", d.ViolationID)
	return buf.Bytes(), filename, nil
}

func buildReceiptPDF(d receiptDocData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Official Receipt", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "LAND TRANSPORTATION OFFICE")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "OFFICIAL RECEIPT")
	pdf.Ln(12)

	receiptNo := "OR-" + strings.ToUpper(uuid.NewString()[:8])
	pdf.SetFont("Helvetica", "", 11)
	lines := []string{
		fmt.Sprintf("Receipt No     : %s", receiptNo),
		fmt.Sprintf("Date           : %s", time.Now().Format("2006-01-02 15:04")),
		fmt.Sprintf("Payment No     : #%d", d.PaymentID),
		fmt.Sprintf("Violation No   : TVT-%06d", d.ViolationID),
		fmt.Sprintf("Paid By        : %s", safe(d.DriverName, "-")),
		fmt.Sprintf("Payment Type   : %s", safe(d.PaymentType, "-")),
		fmt.Sprintf("Transaction Ref: %s", safe(d.TransactionRef, "-")),
		fmt.Sprintf("Payment Date   : %s", d.PaymentDate.Format("2006-01-02 15:04")),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 9, "AMOUNT PAID: PHP "+utils.FormatMoney(d.AmountPaid))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, "This receipt acknowledges a payment confirmed by the LTO. Keep it for your records.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("RECEIPT_%d.pdf", d.PaymentID)
	return buf.Bytes(), filename, nil
}

func safe(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
