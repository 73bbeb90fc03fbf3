package pdf

import (
	"bytes"
	"fmt"
	"os"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/cogworks/invoice-service/internal/apperrors"
	"github.com/cogworks/invoice-service/internal/config"
	"github.com/cogworks/invoice-service/internal/models"
)

// Fixed single-page layout. Coordinates are in points from the top-left
// of an A4 page. There is no pagination: the table region fits roughly
// 25 rows before colliding with the signature block, and overflow is out
// of scope for this document.
const (
	leftMargin = 30
	rightEdge  = 550

	logoX, logoY, logoW, logoH = 30, 45, 120, 45

	headerX = 180

	tableDescX   = 30
	tableQtyX    = 320
	tableRateX   = 370
	tableAmountX = 460
	tableRowStep = 18

	totalsLabelX = 350
	totalsValueX = 460
)

// Renderer produces the fixed-layout invoice document. The company and
// signature blocks come from configuration, never from the request.
type Renderer struct {
	company  config.CompanyConfig
	signer   config.SignerConfig
	logoPath string
	taxRate  decimal.Decimal
}

// NewRenderer creates an invoice renderer.
func NewRenderer(company config.CompanyConfig, signer config.SignerConfig, logoPath string, taxRate decimal.Decimal) *Renderer {
	return &Renderer{
		company:  company,
		signer:   signer,
		logoPath: logoPath,
		taxRate:  taxRate,
	}
}

// Render lays out a single A4 page for the invoice and serializes it.
// The returned bytes are complete and ready for attachment.
func (r *Renderer) Render(inv *models.Invoice) ([]byte, error) {
	doc := gofpdf.New("P", "pt", "A4", "")
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()
	_, pageHeight := doc.GetPageSize()

	r.drawLogo(doc)
	r.drawCompanyHeader(doc)
	r.drawInvoiceMeta(doc, inv)
	r.drawBillTo(doc, inv)
	y := r.drawItemTable(doc, inv)
	r.drawTotals(doc, inv, y)
	r.drawSignature(doc, pageHeight)

	doc.SetFont("Helvetica", "", 8)
	doc.Text(leftMargin, pageHeight-60, "This is a system-generated invoice. No physical signature required.")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, &apperrors.RenderError{Err: err}
	}
	return buf.Bytes(), nil
}

// drawLogo places the letterhead image if the asset exists. A missing
// logo is silently tolerated.
func (r *Renderer) drawLogo(doc *gofpdf.Fpdf) {
	if r.logoPath == "" {
		return
	}
	if _, err := os.Stat(r.logoPath); err != nil {
		return
	}
	opts := gofpdf.ImageOptions{ReadDpi: true}
	doc.ImageOptions(r.logoPath, logoX, logoY, logoW, logoH, false, opts, 0, "")
}

func (r *Renderer) drawCompanyHeader(doc *gofpdf.Fpdf) {
	doc.SetFont("Helvetica", "B", 14)
	doc.Text(headerX, 60, r.company.Name)

	doc.SetFont("Helvetica", "", 9)
	doc.Text(headerX, 75, r.company.Address)
	doc.Text(headerX, 88, "Email: "+r.company.Email)
	doc.Text(headerX, 101, "WhatsApp: "+r.company.WhatsApp)
}

func (r *Renderer) drawInvoiceMeta(doc *gofpdf.Fpdf, inv *models.Invoice) {
	doc.SetFont("Helvetica", "B", 16)
	doc.Text(leftMargin, 130, "INVOICE")

	doc.SetFont("Helvetica", "", 10)
	doc.Text(400, 130, "Invoice No: "+inv.Number)
	doc.Text(400, 145, "Date: "+inv.IssueDate.Format("2006-01-02"))
}

func (r *Renderer) drawBillTo(doc *gofpdf.Fpdf, inv *models.Invoice) {
	doc.SetFont("Helvetica", "B", 11)
	doc.Text(leftMargin, 180, "Bill To:")

	doc.SetFont("Helvetica", "", 10)
	doc.Text(leftMargin, 195, orPlaceholder(inv.ClientName))
	doc.Text(leftMargin, 210, orPlaceholder(inv.ClientEmail))
}

// drawItemTable renders the column headers, separator line and one row
// per line item, and returns the y position below the last row.
func (r *Renderer) drawItemTable(doc *gofpdf.Fpdf, inv *models.Invoice) float64 {
	y := 250.0

	doc.SetFont("Helvetica", "B", 10)
	doc.Text(tableDescX, y, "Description")
	doc.Text(tableQtyX, y, "Qty")
	doc.Text(tableRateX, y, "Rate (Rs.)")
	doc.Text(tableAmountX, y, "Amount (Rs.)")
	doc.Line(leftMargin, y+5, rightEdge, y+5)

	doc.SetFont("Helvetica", "", 10)
	y += 25
	for _, item := range inv.Items {
		doc.Text(tableDescX, y, item.Description)
		doc.Text(tableQtyX, y, item.Quantity.String())
		doc.Text(tableRateX, y, item.Rate.String())
		doc.Text(tableAmountX, y, item.Total.StringFixed(2))
		y += tableRowStep
	}

	return y
}

func (r *Renderer) drawTotals(doc *gofpdf.Fpdf, inv *models.Invoice, y float64) {
	y += 20
	doc.Text(totalsLabelX, y, "Subtotal:")
	doc.Text(totalsValueX, y, inv.Subtotal.StringFixed(2))

	y += tableRowStep
	taxLabel := fmt.Sprintf("GST (%s%%):", r.taxRate.Mul(decimal.NewFromInt(100)).String())
	doc.Text(totalsLabelX, y, taxLabel)
	doc.Text(totalsValueX, y, inv.Tax.StringFixed(2))

	y += tableRowStep
	doc.SetFont("Helvetica", "B", 11)
	doc.Text(totalsLabelX, y, "Total:")
	doc.Text(totalsValueX, y, inv.Total.StringFixed(2))
}

func (r *Renderer) drawSignature(doc *gofpdf.Fpdf, pageHeight float64) {
	doc.SetFont("Helvetica", "", 9)
	doc.Line(totalsLabelX, pageHeight-120, rightEdge, pageHeight-120)
	doc.Text(totalsLabelX, pageHeight-105, "Digitally Signed By")

	doc.SetFont("Helvetica", "B", 10)
	doc.Text(totalsLabelX, pageHeight-90, r.signer.Name)

	doc.SetFont("Helvetica", "", 9)
	doc.Text(totalsLabelX, pageHeight-75, "Mobile: "+r.signer.Mobile)
	doc.Text(totalsLabelX, pageHeight-60, "For "+r.company.Name)
}

func orPlaceholder(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
