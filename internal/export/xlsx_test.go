package export

import (
	"bytes"
	"testing"
	"time"

	"clothingshop/internal/dto"
	"clothingshop/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestFileName(t *testing.T) {
	now := time.Date(2025, 6, 10, 14, 30, 5, 0, time.UTC)
	assert.Equal(t, "Orders_Export_20250610_143005.xlsx", FileName(now))
}

func TestWriteOrders_LayoutAndSummary(t *testing.T) {
	date := time.Date(2025, 6, 9, 10, 0, 0, 0, time.UTC)
	rows := []dto.ExportRow{
		{
			OrderID:         "ord-1",
			OrderDate:       &date,
			Status:          model.StatusCompleted,
			TotalAmount:     decimal.NewFromFloat(120.50),
			CustomerName:    "Alice",
			CustomerPhone:   "555-0100",
			ShippingAddress: "1 Main St",
			PaymentMethod:   "card",
			PaymentStatus:   "paid",
		},
		{
			OrderID:     "ord-2",
			Status:      model.StatusCompleted,
			TotalAmount: decimal.NewFromFloat(79.50),
		},
		{
			OrderID:     "ord-3",
			Status:      model.StatusPending,
			TotalAmount: decimal.NewFromInt(10),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteOrders(&buf, rows))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	// Header row
	got, err := f.GetCellValue(sheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Order ID", got)
	got, _ = f.GetCellValue(sheetName, "I1")
	assert.Equal(t, "Payment Status", got)

	// Data rows
	got, _ = f.GetCellValue(sheetName, "A2")
	assert.Equal(t, "ord-1", got)
	got, _ = f.GetCellValue(sheetName, "C2")
	assert.Equal(t, "Alice", got)
	got, _ = f.GetCellValue(sheetName, "G3")
	assert.Equal(t, model.StatusCompleted, got)

	// Summary block sits two rows under the data, statuses in lifecycle order.
	summaryHeader := len(rows) + 4
	got, _ = f.GetCellValue(sheetName, cellAt(1, summaryHeader))
	assert.Equal(t, "Status", got)

	got, _ = f.GetCellValue(sheetName, cellAt(1, summaryHeader+1))
	assert.Equal(t, model.StatusPending, got)
	got, _ = f.GetCellValue(sheetName, cellAt(2, summaryHeader+1))
	assert.Equal(t, "1", got)

	got, _ = f.GetCellValue(sheetName, cellAt(1, summaryHeader+2))
	assert.Equal(t, model.StatusCompleted, got)
	got, _ = f.GetCellValue(sheetName, cellAt(2, summaryHeader+2))
	assert.Equal(t, "2", got)
	got, _ = f.GetCellValue(sheetName, cellAt(3, summaryHeader+2))
	assert.Equal(t, "200.00", got)
}
