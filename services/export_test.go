package services

import (
	"bytes"
	"testing"
	"time"

	"payment-module/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteTransactionsXLSX(t *testing.T) {
	amount := 500.0
	transactions := []models.Transaction{
		{
			CollectID:         "o-1",
			CustomOrderID:     "ord_abc",
			SchoolID:          "S1",
			StudentName:       "A",
			GatewayName:       "UPI",
			OrderAmount:       500,
			TransactionAmount: &amount,
			Status:            "success",
			PaymentTime:       time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		},
		{
			CollectID:     "o-2",
			CustomOrderID: "ord_def",
			SchoolID:      "S2",
			StudentName:   "B",
			GatewayName:   "UPI",
			OrderAmount:   250,
			Status:        "pending",
			PaymentTime:   time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTransactionsXLSX(&buf, transactions))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	sheet := f.GetSheetName(0)

	header, err := f.GetCellValue(sheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Collect ID", header)

	school, err := f.GetCellValue(sheet, "C2")
	require.NoError(t, err)
	assert.Equal(t, "S1", school)

	status, err := f.GetCellValue(sheet, "H3")
	require.NoError(t, err)
	assert.Equal(t, "pending", status)

	// Pending row has no settled amount
	settled, err := f.GetCellValue(sheet, "G3")
	require.NoError(t, err)
	assert.Empty(t, settled)
}
