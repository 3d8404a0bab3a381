package services

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"payment-module/models"

	"github.com/jung-kurt/gofpdf"
)

// GenerateReceipt creates a PDF settlement receipt for a successful payment
// and returns the written file path.
func GenerateReceipt(order *models.Order, status *models.OrderStatus) (string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Payment Receipt")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(40, 10, fmt.Sprintf("Order ID: %s", status.CustomOrderID))
	pdf.Ln(10)
	pdf.Cell(40, 10, fmt.Sprintf("School: %s", order.SchoolID))
	pdf.Ln(10)
	pdf.Cell(40, 10, fmt.Sprintf("Student: %s", order.StudentInfo.Name))
	pdf.Ln(10)
	pdf.Cell(40, 10, fmt.Sprintf("Gateway: %s", status.GatewayName))
	pdf.Ln(10)
	pdf.Cell(40, 10, fmt.Sprintf("Order Amount: INR %.2f", status.OrderAmount))
	pdf.Ln(10)
	if status.TransactionAmount != nil {
		pdf.Cell(40, 10, fmt.Sprintf("Settled Amount: INR %.2f", *status.TransactionAmount))
		pdf.Ln(10)
	}
	pdf.Cell(40, 10, fmt.Sprintf("Settled At: %s", status.UpdatedAt.Format(time.RFC1123)))
	pdf.Ln(12)
	pdf.Cell(40, 10, "Thank you for your payment.")

	if err := os.MkdirAll("receipts", 0o755); err != nil {
		return "", fmt.Errorf("error creating receipts directory: %w", err)
	}

	fileName := filepath.Join("receipts", fmt.Sprintf("receipt_%s.pdf", status.CustomOrderID))
	if err := pdf.OutputFileAndClose(fileName); err != nil {
		return "", fmt.Errorf("error generating receipt PDF: %w", err)
	}

	return fileName, nil
}
