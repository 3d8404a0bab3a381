package services

import (
	"fmt"
	"io"
	"time"

	"payment-module/models"

	"github.com/xuri/excelize/v2"
)

var exportHeaders = []string{
	"Collect ID", "Custom Order ID", "School ID", "Student",
	"Gateway", "Order Amount", "Transaction Amount", "Status", "Payment Time",
}

// WriteTransactionsXLSX renders the joined transaction rows as an XLSX
// workbook and writes it to w.
func WriteTransactionsXLSX(w io.Writer, transactions []models.Transaction) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	for i, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("failed to build header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, txn := range transactions {
		row := []interface{}{
			txn.CollectID,
			txn.CustomOrderID,
			txn.SchoolID,
			txn.StudentName,
			txn.GatewayName,
			txn.OrderAmount,
			nil,
			txn.Status,
			txn.PaymentTime.Format(time.RFC3339),
		}
		if txn.TransactionAmount != nil {
			row[6] = *txn.TransactionAmount
		}

		for j, value := range row {
			if value == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return fmt.Errorf("failed to build cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to write row %d: %w", i+1, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	return nil
}
