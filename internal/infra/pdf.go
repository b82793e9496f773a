package infra

// pdf.go — Order invoice generation using go-pdf/fpdf.
// Generates an A4 invoice with:
//   - Shop name header
//   - Order id, date and customer details
//   - Item table (product, size/color, quantity, unit price, line total)
//   - Bold grand total
//   - Payment method line
//
// The output file is saved to storagePath/invoice_{orderID}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"clothingshop/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// GenerateInvoicePDF writes an invoice for the order and returns the absolute
// path to the generated file. storagePath is created if needed.
func GenerateInvoicePDF(order *model.Order, shopName, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("invoice_%s.pdf", order.ID.String())
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(contentW, 10, shopName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, "Order Invoice", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Order info ────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Order %s", order.ID.String()), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	if order.OrderDate != nil {
		pdf.CellFormat(contentW, 5, order.OrderDate.Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")
	}
	if order.User != nil {
		pdf.CellFormat(contentW, 5, "Customer: "+order.User.FullName, "", 1, "L", false, 0, "")
	}
	if order.ShippingAddress != "" {
		pdf.CellFormat(contentW, 5, "Ship to: "+order.ShippingAddress, "", 1, "L", false, 0, "")
	}
	if order.PhoneContact != "" {
		pdf.CellFormat(contentW, 5, "Contact: "+order.PhoneContact, "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(3)

	// ── Item table ────────────────────────────────────────────────────────────
	col1 := contentW * 0.38 // product
	col2 := contentW * 0.18 // variant
	col3 := contentW * 0.10 // qty
	col4 := contentW * 0.16 // unit price
	col5 := contentW * 0.18 // line total

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 6, "Product", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Variant", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, "Qty", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col4, 6, "Unit Price", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col5, 6, "Total", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range order.Items {
		name := ""
		variant := ""
		if item.Variant != nil {
			variant = item.Variant.Size + " / " + item.Variant.Color
			if item.Variant.Product != nil {
				name = item.Variant.Product.Name
			}
		}
		if len(name) > 34 {
			name = name[:33] + "…"
		}
		lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		if item.Discount != nil {
			lineTotal = lineTotal.Sub(*item.Discount)
		}
		pdf.CellFormat(col1, 6, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, variant, "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 6, fmt.Sprintf("x%d", item.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(col4, 6, "$"+item.UnitPrice.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col5, 6, "$"+lineTotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)

	// ── Total ─────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(col1+col2+col3+col4, 8, "TOTAL:", "", 0, "R", false, 0, "")
	pdf.CellFormat(col5, 8, "$"+order.TotalAmount.StringFixed(2), "", 1, "R", false, 0, "")

	if order.Payment != nil {
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(col1+col2+col3+col4, 5, "Payment ("+order.Payment.Method+"):", "", 0, "R", false, 0, "")
		pdf.CellFormat(col5, 5, order.Payment.PaymentStatus, "", 1, "R", false, 0, "")
	}

	// ── Footer ────────────────────────────────────────────────────────────────
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(contentW, 5, "Thank you for your purchase!", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
