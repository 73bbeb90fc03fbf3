package repository

import (
	"context"

	"github.com/cogworks/invoice-service/internal/models"
)

// InvoiceRepository is the durable store for invoice summary rows.
type InvoiceRepository interface {
	// Insert writes exactly one row for an issued invoice.
	Insert(ctx context.Context, rec *models.InvoiceRecord) error

	// GetByNumber retrieves a persisted row by invoice number.
	// Returns apperrors.ErrNotFound when no row exists.
	GetByNumber(ctx context.Context, invoiceNo string) (*models.InvoiceRecord, error)
}

// InvoiceCache is a best-effort read cache in front of the repository.
type InvoiceCache interface {
	Get(ctx context.Context, invoiceNo string) (*models.InvoiceRecord, error)
	Set(ctx context.Context, rec *models.InvoiceRecord) error
	Delete(ctx context.Context, invoiceNo string) error
}
