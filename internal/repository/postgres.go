package repository

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/cogworks/invoice-service/internal/apperrors"
	"github.com/cogworks/invoice-service/internal/models"
)

// PostgresInvoiceRepository implements InvoiceRepository using PostgreSQL.
type PostgresInvoiceRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPostgresInvoiceRepository creates a new PostgreSQL invoice repository.
func NewPostgresInvoiceRepository(db *sql.DB, logger *zap.Logger) *PostgresInvoiceRepository {
	return &PostgresInvoiceRepository{
		db:     db,
		logger: logger,
	}
}

// Insert writes one summary row per issued invoice. No read-back, no
// retry, no idempotency key; duplicate invoice numbers are an accepted
// collision risk and would surface as a constraint error here.
func (r *PostgresInvoiceRepository) Insert(ctx context.Context, rec *models.InvoiceRecord) error {
	r.logger.Debug("Inserting invoice row", zap.String("invoice_no", rec.InvoiceNo))

	query := `
		INSERT INTO invoices (
			invoice_no, client_name, client_email, service, amount, gst, total, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		rec.InvoiceNo,
		nullableString(rec.ClientName),
		nullableString(rec.ClientEmail),
		rec.Service,
		rec.Amount,
		rec.GST,
		rec.Total,
		rec.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to insert invoice row",
			zap.String("invoice_no", rec.InvoiceNo),
			zap.Error(err),
		)
		return err
	}

	r.logger.Info("Invoice row inserted",
		zap.String("invoice_no", rec.InvoiceNo),
		zap.Float64("total", rec.Total),
	)

	return nil
}

// GetByNumber retrieves a persisted summary row by invoice number.
func (r *PostgresInvoiceRepository) GetByNumber(ctx context.Context, invoiceNo string) (*models.InvoiceRecord, error) {
	r.logger.Debug("Fetching invoice row", zap.String("invoice_no", invoiceNo))

	query := `
		SELECT invoice_no, client_name, client_email, service, amount, gst, total, created_at
		FROM invoices
		WHERE invoice_no = $1
	`

	var rec models.InvoiceRecord
	var clientName, clientEmail sql.NullString

	err := r.db.QueryRowContext(ctx, query, invoiceNo).Scan(
		&rec.InvoiceNo,
		&clientName,
		&clientEmail,
		&rec.Service,
		&rec.Amount,
		&rec.GST,
		&rec.Total,
		&rec.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to fetch invoice row",
			zap.String("invoice_no", invoiceNo),
			zap.Error(err),
		)
		return nil, err
	}

	if clientName.Valid {
		rec.ClientName = clientName.String
	}
	if clientEmail.Valid {
		rec.ClientEmail = clientEmail.String
	}

	return &rec, nil
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
