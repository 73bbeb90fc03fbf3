package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cogworks/invoice-service/internal/apperrors"
	"github.com/cogworks/invoice-service/internal/config"
	"github.com/cogworks/invoice-service/internal/events"
	"github.com/cogworks/invoice-service/internal/mailer"
	"github.com/cogworks/invoice-service/internal/metrics"
	"github.com/cogworks/invoice-service/internal/models"
	"github.com/cogworks/invoice-service/internal/pdf"
	"github.com/cogworks/invoice-service/internal/repository"
)

// InvoiceService runs the invoice issuance workflow: aggregate line
// items, compute tax, render the PDF, persist one summary row, then
// email the document to the owner and optionally the client.
type InvoiceService struct {
	repo      repository.InvoiceRepository
	cache     repository.InvoiceCache
	renderer  *pdf.Renderer
	sender    mailer.Sender
	publisher events.Publisher
	metrics   *metrics.InvoiceMetrics
	config    *config.Config
	taxRate   decimal.Decimal
	logger    *zap.Logger
}

// NewInvoiceService creates a new invoice service. The configured tax
// rate is parsed once here so call sites never deal with rate strings.
func NewInvoiceService(
	repo repository.InvoiceRepository,
	cache repository.InvoiceCache,
	renderer *pdf.Renderer,
	sender mailer.Sender,
	publisher events.Publisher,
	m *metrics.InvoiceMetrics,
	cfg *config.Config,
	logger *zap.Logger,
) (*InvoiceService, error) {
	taxRate, err := decimal.NewFromString(cfg.Invoice.TaxRate)
	if err != nil {
		return nil, fmt.Errorf("invalid tax rate %q: %w", cfg.Invoice.TaxRate, err)
	}

	return &InvoiceService{
		repo:      repo,
		cache:     cache,
		renderer:  renderer,
		sender:    sender,
		publisher: publisher,
		metrics:   m,
		config:    cfg,
		taxRate:   taxRate,
		logger:    logger,
	}, nil
}

// TaxRate returns the configured tax rate as a decimal.
func (s *InvoiceService) TaxRate() decimal.Decimal {
	return s.taxRate
}

// IssueInvoice runs the full workflow for one submission. Persistence
// failure blocks notification so every emailed invoice has a durable
// row; a notification failure after the insert leaves the row in place.
func (s *InvoiceService) IssueInvoice(ctx context.Context, req *IssueInvoiceRequest) (*models.Invoice, error) {
	s.logger.Info("Issuing invoice",
		zap.String("client_name", req.ClientName),
		zap.Int("item_count", len(req.Items)),
	)

	if err := ValidateIssueInvoiceRequest(req); err != nil {
		return nil, err
	}

	items, subtotal, err := BuildLineItems(req.Items)
	if err != nil {
		return nil, err
	}

	totals := CalculateInvoiceTotal(subtotal, s.taxRate)

	inv := &models.Invoice{
		Number:      GenerateInvoiceNumber(s.config.Invoice.Prefix),
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		Items:       items,
		Subtotal:    totals.Subtotal,
		Tax:         totals.Tax,
		Total:       totals.Total,
		IssueDate:   time.Now(),
	}

	document, err := s.renderer.Render(inv)
	if err != nil {
		s.metrics.RenderFailures.Inc()
		s.logger.Error("Failed to render invoice",
			zap.String("invoice_no", inv.Number),
			zap.Error(err),
		)
		return nil, err
	}

	rec := inv.Record(s.config.Invoice.ServiceLabel)
	if err := s.repo.Insert(ctx, rec); err != nil {
		s.metrics.PersistenceFailures.Inc()
		return nil, &apperrors.PersistenceError{Err: err}
	}

	if s.config.Features.EnableInvoiceCaching {
		if err := s.cache.Set(ctx, rec); err != nil {
			// Log but don't fail
			s.logger.Warn("Failed to cache invoice record",
				zap.String("invoice_no", inv.Number),
				zap.Error(err),
			)
		}
	}

	if s.config.Features.EnableInvoiceEvents {
		if err := s.publisher.PublishInvoiceIssued(ctx, rec); err != nil {
			// Log but don't fail
			s.logger.Warn("Failed to publish invoice issued event",
				zap.String("invoice_no", inv.Number),
				zap.Error(err),
			)
		}
	}

	if err := s.sendInvoiceEmails(ctx, inv, document); err != nil {
		return nil, err
	}

	s.metrics.InvoicesIssued.Inc()
	s.logger.Info("Invoice issued",
		zap.String("invoice_no", inv.Number),
		zap.String("total", inv.Total.StringFixed(2)),
	)

	return inv, nil
}

// sendInvoiceEmails delivers the document to the owner, then to the
// client when an address was supplied. The document bytes are shared
// read-only between both sends.
func (s *InvoiceService) sendInvoiceEmails(ctx context.Context, inv *models.Invoice, document []byte) error {
	if err := s.sender.SendInvoice(ctx, s.config.Company.OwnerEmail, inv.Number, document); err != nil {
		s.metrics.EmailFailures.WithLabelValues("owner").Inc()
		return &apperrors.NotificationError{Recipient: "owner", Err: err}
	}
	s.metrics.EmailsSent.WithLabelValues("owner").Inc()

	if inv.ClientEmail == "" {
		return nil
	}

	if err := s.sender.SendInvoice(ctx, inv.ClientEmail, inv.Number, document); err != nil {
		s.metrics.EmailFailures.WithLabelValues("client").Inc()
		// The owner email already went out; that partial success is
		// recorded in the logs only.
		s.logger.Error("Client email failed after owner email succeeded",
			zap.String("invoice_no", inv.Number),
		)
		return &apperrors.NotificationError{Recipient: "client", Err: err}
	}
	s.metrics.EmailsSent.WithLabelValues("client").Inc()

	return nil
}

// GetInvoice retrieves a persisted invoice summary row, consulting the
// cache first when caching is enabled.
func (s *InvoiceService) GetInvoice(ctx context.Context, invoiceNo string) (*models.InvoiceRecord, error) {
	if s.config.Features.EnableInvoiceCaching {
		if rec, err := s.cache.Get(ctx, invoiceNo); err == nil && rec != nil {
			return rec, nil
		}
	}

	rec, err := s.repo.GetByNumber(ctx, invoiceNo)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, &apperrors.PersistenceError{Err: err}
	}

	if s.config.Features.EnableInvoiceCaching {
		if err := s.cache.Set(ctx, rec); err != nil {
			s.logger.Warn("Failed to cache invoice record",
				zap.String("invoice_no", invoiceNo),
				zap.Error(err),
			)
		}
	}

	return rec, nil
}
