package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cogworks/invoice-service/internal/config"
	"github.com/cogworks/invoice-service/internal/models"
)

func testRenderer(logoPath string) *Renderer {
	company := config.CompanyConfig{
		Name:     "Cog Works",
		Address:  "42 Ledger Lane",
		Email:    "billing@cogworks.example",
		WhatsApp: "+1 555 0100",
	}
	signer := config.SignerConfig{Name: "A. Signer", Mobile: "+1 555 0101"}
	return NewRenderer(company, signer, logoPath, decimal.RequireFromString("0.18"))
}

func testInvoice(items []models.LineItem) *models.Invoice {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Total)
	}
	tax := subtotal.Mul(decimal.RequireFromString("0.18")).Round(2)

	return &models.Invoice{
		Number:      "COG-1A2B3C",
		ClientName:  "Client Co",
		ClientEmail: "client@example.com",
		Items:       items,
		Subtotal:    subtotal,
		Tax:         tax,
		Total:       subtotal.Add(tax),
		IssueDate:   time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestRender_ProducesValidDocument(t *testing.T) {
	items := []models.LineItem{
		{
			Description: "Consulting",
			Quantity:    decimal.NewFromInt(2),
			Rate:        decimal.RequireFromString("1500.00"),
			Total:       decimal.RequireFromString("3000.00"),
		},
	}

	out, err := testRenderer("").Render(testInvoice(items))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if len(out) == 0 {
		t.Fatal("Expected non-empty document")
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Errorf("Expected a PDF header, got %q", out[:8])
	}
}

func TestRender_ZeroItems(t *testing.T) {
	out, err := testRenderer("").Render(testInvoice(nil))
	if err != nil {
		t.Fatalf("Render with zero items failed: %v", err)
	}

	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Error("Expected a valid PDF with an empty table body")
	}
}

func TestRender_MissingClientDetails(t *testing.T) {
	inv := testInvoice(nil)
	inv.ClientName = ""
	inv.ClientEmail = ""

	// Missing bill-to values render as the N/A placeholder rather than
	// failing or leaving the block blank.
	if _, err := testRenderer("").Render(inv); err != nil {
		t.Fatalf("Render without client details failed: %v", err)
	}
}

func TestRender_MissingLogoTolerated(t *testing.T) {
	if _, err := testRenderer("static/does-not-exist.png").Render(testInvoice(nil)); err != nil {
		t.Fatalf("Render with a missing logo failed: %v", err)
	}
}

func TestOrPlaceholder(t *testing.T) {
	if got := orPlaceholder(""); got != "N/A" {
		t.Errorf("Expected N/A for empty value, got %q", got)
	}
	if got := orPlaceholder("Client Co"); got != "Client Co" {
		t.Errorf("Expected value passthrough, got %q", got)
	}
}

func TestRender_ManyItemsStillSinglePage(t *testing.T) {
	items := make([]models.LineItem, 20)
	for i := range items {
		items[i] = models.LineItem{
			Description: "Line item",
			Quantity:    decimal.NewFromInt(1),
			Rate:        decimal.RequireFromString("10.00"),
			Total:       decimal.RequireFromString("10.00"),
		}
	}

	out, err := testRenderer("").Render(testInvoice(items))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !bytes.Contains(out, []byte("/Count 1")) {
		t.Error("Expected a single-page document")
	}
}
