package service

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cogworks/invoice-service/internal/apperrors"
	"github.com/cogworks/invoice-service/internal/config"
	"github.com/cogworks/invoice-service/internal/events"
	"github.com/cogworks/invoice-service/internal/mailer"
	"github.com/cogworks/invoice-service/internal/metrics"
	"github.com/cogworks/invoice-service/internal/models"
	"github.com/cogworks/invoice-service/internal/pdf"
)

type memoryRepo struct {
	rows      map[string]*models.InvoiceRecord
	insertErr error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{rows: make(map[string]*models.InvoiceRecord)}
}

func (r *memoryRepo) Insert(ctx context.Context, rec *models.InvoiceRecord) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.rows[rec.InvoiceNo] = rec
	return nil
}

func (r *memoryRepo) GetByNumber(ctx context.Context, invoiceNo string) (*models.InvoiceRecord, error) {
	rec, ok := r.rows[invoiceNo]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return rec, nil
}

type stubCache struct{}

func (stubCache) Get(ctx context.Context, invoiceNo string) (*models.InvoiceRecord, error) {
	return nil, nil
}
func (stubCache) Set(ctx context.Context, rec *models.InvoiceRecord) error { return nil }

func (stubCache) Delete(ctx context.Context, invoiceNo string) error { return nil }

func testConfig() *config.Config {
	return &config.Config{
		Company: config.CompanyConfig{
			Name:       "Cog Works",
			Address:    "42 Ledger Lane",
			Email:      "billing@cogworks.example",
			WhatsApp:   "+1 555 0100",
			OwnerEmail: "owner@cogworks.example",
		},
		Signer: config.SignerConfig{
			Name:   "A. Signer",
			Mobile: "+1 555 0101",
		},
		Invoice: config.InvoiceConfig{
			Prefix:       "COG",
			TaxRate:      "0.18",
			ServiceLabel: "Multiple Items",
		},
	}
}

func newTestService(t *testing.T, repo *memoryRepo, sender *mailer.MockSender) *InvoiceService {
	t.Helper()

	cfg := testConfig()
	renderer := pdf.NewRenderer(cfg.Company, cfg.Signer, "", decimal.RequireFromString(cfg.Invoice.TaxRate))
	m := metrics.NewInvoiceMetrics(prometheus.NewRegistry())

	svc, err := NewInvoiceService(repo, stubCache{}, renderer, sender, events.NoopPublisher{}, m, cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("NewInvoiceService failed: %v", err)
	}
	return svc
}

func TestIssueInvoice_EmailsOwnerAndClient(t *testing.T) {
	repo := newMemoryRepo()
	sender := mailer.NewMockSender()
	svc := newTestService(t, repo, sender)

	req := &IssueInvoiceRequest{
		ClientName:  "Client Co",
		ClientEmail: "client@example.com",
		Items: []models.LineItemInput{
			{Description: "Consulting", Quantity: "2", Rate: "1500.00"},
		},
	}

	inv, err := svc.IssueInvoice(context.Background(), req)
	if err != nil {
		t.Fatalf("IssueInvoice failed: %v", err)
	}

	if got := inv.Total.StringFixed(2); got != "3540.00" {
		t.Errorf("Expected total 3540.00, got %s", got)
	}

	if len(sender.Sent) != 2 {
		t.Fatalf("Expected 2 emails, got %d", len(sender.Sent))
	}
	if sender.Sent[0].To != "owner@cogworks.example" {
		t.Errorf("Expected owner email first, got %s", sender.Sent[0].To)
	}
	if sender.Sent[1].To != "client@example.com" {
		t.Errorf("Expected client email second, got %s", sender.Sent[1].To)
	}

	// Both deliveries attach the same rendered document.
	if len(sender.Sent[0].Document) == 0 || len(sender.Sent[1].Document) == 0 {
		t.Error("Expected a non-empty document attached to both emails")
	}

	if _, ok := repo.rows[inv.Number]; !ok {
		t.Errorf("Expected a persisted row for %s", inv.Number)
	}
}

func TestIssueInvoice_OwnerOnlyWithoutClientEmail(t *testing.T) {
	repo := newMemoryRepo()
	sender := mailer.NewMockSender()
	svc := newTestService(t, repo, sender)

	req := &IssueInvoiceRequest{
		ClientName: "Walk-in",
		Items: []models.LineItemInput{
			{Description: "Repair", Quantity: "1", Rate: "250"},
		},
	}

	if _, err := svc.IssueInvoice(context.Background(), req); err != nil {
		t.Fatalf("IssueInvoice failed: %v", err)
	}

	if len(sender.Sent) != 1 {
		t.Fatalf("Expected exactly 1 email, got %d", len(sender.Sent))
	}
	if sender.Sent[0].To != "owner@cogworks.example" {
		t.Errorf("Expected owner email, got %s", sender.Sent[0].To)
	}
}

func TestIssueInvoice_PersistenceFailureBlocksEmail(t *testing.T) {
	repo := newMemoryRepo()
	repo.insertErr = errors.New("connection refused")
	sender := mailer.NewMockSender()
	svc := newTestService(t, repo, sender)

	req := &IssueInvoiceRequest{
		Items: []models.LineItemInput{
			{Description: "Consulting", Quantity: "1", Rate: "100"},
		},
	}

	_, err := svc.IssueInvoice(context.Background(), req)

	var persistenceErr *apperrors.PersistenceError
	if !errors.As(err, &persistenceErr) {
		t.Fatalf("Expected PersistenceError, got %v", err)
	}

	if len(sender.Sent) != 0 {
		t.Errorf("Expected no emails after persistence failure, got %d", len(sender.Sent))
	}
}

func TestIssueInvoice_NotificationFailureKeepsRow(t *testing.T) {
	repo := newMemoryRepo()
	sender := mailer.NewMockSender()
	sender.Err = errors.New("relay unavailable")
	svc := newTestService(t, repo, sender)

	req := &IssueInvoiceRequest{
		Items: []models.LineItemInput{
			{Description: "Consulting", Quantity: "1", Rate: "100"},
		},
	}

	_, err := svc.IssueInvoice(context.Background(), req)

	var notificationErr *apperrors.NotificationError
	if !errors.As(err, &notificationErr) {
		t.Fatalf("Expected NotificationError, got %v", err)
	}

	// The row was inserted before delivery was attempted; there is no
	// rollback.
	if len(repo.rows) != 1 {
		t.Errorf("Expected the persisted row to remain, got %d rows", len(repo.rows))
	}
}

func TestIssueInvoice_ValidationFailurePersistsNothing(t *testing.T) {
	repo := newMemoryRepo()
	sender := mailer.NewMockSender()
	svc := newTestService(t, repo, sender)

	req := &IssueInvoiceRequest{
		Items: []models.LineItemInput{
			{Description: "Consulting", Quantity: "oops", Rate: "100"},
		},
	}

	_, err := svc.IssueInvoice(context.Background(), req)

	var validationErr *apperrors.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}

	if len(repo.rows) != 0 {
		t.Errorf("Expected no persisted rows, got %d", len(repo.rows))
	}
	if len(sender.Sent) != 0 {
		t.Errorf("Expected no emails, got %d", len(sender.Sent))
	}
}

func TestGetInvoice(t *testing.T) {
	repo := newMemoryRepo()
	repo.rows["COG-ABC123"] = &models.InvoiceRecord{
		InvoiceNo: "COG-ABC123",
		Service:   "Multiple Items",
		Amount:    100,
		GST:       18,
		Total:     118,
	}
	svc := newTestService(t, repo, mailer.NewMockSender())

	rec, err := svc.GetInvoice(context.Background(), "COG-ABC123")
	if err != nil {
		t.Fatalf("GetInvoice failed: %v", err)
	}
	if rec.Total != 118 {
		t.Errorf("Expected total 118, got %v", rec.Total)
	}

	if _, err := svc.GetInvoice(context.Background(), "COG-MISSING"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestNewInvoiceService_RejectsBadTaxRate(t *testing.T) {
	cfg := testConfig()
	cfg.Invoice.TaxRate = "eighteen percent"

	renderer := pdf.NewRenderer(cfg.Company, cfg.Signer, "", decimal.RequireFromString("0.18"))
	m := metrics.NewInvoiceMetrics(prometheus.NewRegistry())

	_, err := NewInvoiceService(newMemoryRepo(), stubCache{}, renderer, mailer.NewMockSender(), events.NoopPublisher{}, m, cfg, zap.NewNop())
	if err == nil {
		t.Fatal("Expected an error for an unparseable tax rate")
	}
}
