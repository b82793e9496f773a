package export

// xlsx.go — Excel export of order listings using excelize.
// Produces a single "Orders" sheet: a styled header row, one row per order
// with the status cell color-coded, and a per-status summary block below
// the data (status, order count, total value).

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"clothingshop/internal/dto"
	"clothingshop/internal/model"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Orders"

var headers = []string{
	"Order ID", "Order Date", "Customer", "Contact", "Shipping Address",
	"Total Amount", "Status", "Payment Method", "Payment Status",
}

// statusFills maps each order status to its cell background color.
var statusFills = map[string]string{
	model.StatusPending:    "FFEB9C",
	model.StatusProcessing: "BDD7EE",
	model.StatusShipped:    "A9D08E",
	model.StatusCompleted:  "92D050",
	model.StatusCancelled:  "FFC7CE",
}

// FileName builds the download attachment name for an export generated now.
func FileName(now time.Time) string {
	return fmt.Sprintf("Orders_Export_%s.xlsx", now.Format("20060102_150405"))
}

// WriteOrders renders rows into an xlsx workbook and writes it to w.
func WriteOrders(w io.Writer, rows []dto.ExportRow) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return err
	}

	dateFmt := "yyyy-mm-dd hh:mm:ss"
	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &dateFmt})
	if err != nil {
		return err
	}
	amountFmt := "#,##0.00"
	amountStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &amountFmt})
	if err != nil {
		return err
	}

	statusStyles := make(map[string]int, len(statusFills))
	for status, color := range statusFills {
		id, err := f.NewStyle(&excelize.Style{
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
			Alignment: &excelize.Alignment{Horizontal: "center"},
		})
		if err != nil {
			return err
		}
		statusStyles[strings.ToLower(status)] = id
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return err
		}
	}
	lastCol, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(sheetName, "A1", lastCol, headerStyle); err != nil {
		return err
	}

	type statusAgg struct {
		count int
		total decimal.Decimal
	}
	summary := make(map[string]*statusAgg)

	for i, row := range rows {
		r := i + 2
		f.SetCellValue(sheetName, cellAt(1, r), row.OrderID)
		if row.OrderDate != nil {
			f.SetCellValue(sheetName, cellAt(2, r), *row.OrderDate)
			f.SetCellStyle(sheetName, cellAt(2, r), cellAt(2, r), dateStyle)
		}
		f.SetCellValue(sheetName, cellAt(3, r), row.CustomerName)
		f.SetCellValue(sheetName, cellAt(4, r), row.CustomerPhone)
		f.SetCellValue(sheetName, cellAt(5, r), row.ShippingAddress)
		amount, _ := row.TotalAmount.Float64()
		f.SetCellValue(sheetName, cellAt(6, r), amount)
		f.SetCellStyle(sheetName, cellAt(6, r), cellAt(6, r), amountStyle)
		f.SetCellValue(sheetName, cellAt(7, r), row.Status)
		if style, ok := statusStyles[strings.ToLower(row.Status)]; ok {
			f.SetCellStyle(sheetName, cellAt(7, r), cellAt(7, r), style)
		}
		f.SetCellValue(sheetName, cellAt(8, r), row.PaymentMethod)
		f.SetCellValue(sheetName, cellAt(9, r), row.PaymentStatus)

		agg, ok := summary[row.Status]
		if !ok {
			agg = &statusAgg{}
			summary[row.Status] = agg
		}
		agg.count++
		agg.total = agg.total.Add(row.TotalAmount)
	}

	// Column widths tuned for typical content
	f.SetColWidth(sheetName, "A", "A", 38)
	f.SetColWidth(sheetName, "B", "B", 20)
	f.SetColWidth(sheetName, "C", "C", 24)
	f.SetColWidth(sheetName, "D", "D", 16)
	f.SetColWidth(sheetName, "E", "E", 40)
	f.SetColWidth(sheetName, "F", "F", 14)
	f.SetColWidth(sheetName, "G", "I", 16)

	// ── Status summary block ──────────────────────────────────────────────────
	summaryRow := len(rows) + 4
	f.SetCellValue(sheetName, cellAt(1, summaryRow), "Status")
	f.SetCellValue(sheetName, cellAt(2, summaryRow), "Count")
	f.SetCellValue(sheetName, cellAt(3, summaryRow), "Total Value")
	f.SetCellStyle(sheetName, cellAt(1, summaryRow), cellAt(3, summaryRow), headerStyle)

	known := make(map[string]bool, len(model.AllStatuses))
	ordered := make([]string, 0, len(summary))
	for _, status := range model.AllStatuses {
		known[status] = true
		if _, ok := summary[status]; ok {
			ordered = append(ordered, status)
		}
	}
	// Unexpected statuses still get a summary line, after the known ones.
	extras := make([]string, 0)
	for status := range summary {
		if !known[status] {
			extras = append(extras, status)
		}
	}
	sort.Strings(extras)
	ordered = append(ordered, extras...)

	r := summaryRow + 1
	for _, status := range ordered {
		agg := summary[status]
		f.SetCellValue(sheetName, cellAt(1, r), status)
		f.SetCellValue(sheetName, cellAt(2, r), agg.count)
		total, _ := agg.total.Float64()
		f.SetCellValue(sheetName, cellAt(3, r), total)
		f.SetCellStyle(sheetName, cellAt(3, r), cellAt(3, r), amountStyle)
		r++
	}

	return f.Write(w)
}

func cellAt(col, row int) string {
	cell, _ := excelize.CoordinatesToCellName(col, row)
	return cell
}
