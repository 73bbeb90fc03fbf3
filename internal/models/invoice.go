package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItemInput is a single row as submitted on the invoice form.
// Quantity and Rate arrive as decimal strings and are parsed during
// aggregation so malformed values surface as validation errors.
type LineItemInput struct {
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	Rate        string `json:"rate"`
}

// LineItem is a priced invoice row. Total is rounded to two decimal
// places and immutable once computed.
type LineItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Total       decimal.Decimal `json:"total"`
}

// Invoice is the fully computed invoice for one request. It is rendered
// to a PDF and persisted as a summary row, then discarded; the persisted
// row is the durable source of truth.
type Invoice struct {
	Number      string          `json:"number"`
	ClientName  string          `json:"client_name,omitempty"`
	ClientEmail string          `json:"client_email,omitempty"`
	Items       []LineItem      `json:"items"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Tax         decimal.Decimal `json:"tax"`
	Total       decimal.Decimal `json:"total"`
	IssueDate   time.Time       `json:"issue_date"`
}

// InvoiceRecord mirrors the invoices table row. Amounts are float
// approximations; the fixed row schema predates this service and uses
// float columns.
type InvoiceRecord struct {
	InvoiceNo   string    `json:"invoice_no"`
	ClientName  string    `json:"client_name,omitempty"`
	ClientEmail string    `json:"client_email,omitempty"`
	Service     string    `json:"service"`
	Amount      float64   `json:"amount"`
	GST         float64   `json:"gst"`
	Total       float64   `json:"total"`
	CreatedAt   time.Time `json:"created_at"`
}

// Record converts an invoice to its persisted summary form.
func (inv *Invoice) Record(serviceLabel string) *InvoiceRecord {
	return &InvoiceRecord{
		InvoiceNo:   inv.Number,
		ClientName:  inv.ClientName,
		ClientEmail: inv.ClientEmail,
		Service:     serviceLabel,
		Amount:      inv.Subtotal.InexactFloat64(),
		GST:         inv.Tax.InexactFloat64(),
		Total:       inv.Total.InexactFloat64(),
		CreatedAt:   inv.IssueDate,
	}
}
