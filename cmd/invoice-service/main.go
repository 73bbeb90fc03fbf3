package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/cogworks/invoice-service/internal/config"
	"github.com/cogworks/invoice-service/internal/events"
	"github.com/cogworks/invoice-service/internal/handlers"
	"github.com/cogworks/invoice-service/internal/mailer"
	"github.com/cogworks/invoice-service/internal/metrics"
	"github.com/cogworks/invoice-service/internal/pdf"
	"github.com/cogworks/invoice-service/internal/repository"
	"github.com/cogworks/invoice-service/internal/server"
	"github.com/cogworks/invoice-service/internal/service"

	"github.com/shopspring/decimal"

	_ "github.com/lib/pq"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("Starting invoice-service", zap.Int("port", cfg.Server.Port))

	db, err := initDatabase(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	invoiceRepo := repository.NewPostgresInvoiceRepository(db, logger)
	invoiceCache := repository.NewRedisInvoiceCache(cfg.Redis, logger)

	taxRate, err := decimal.NewFromString(cfg.Invoice.TaxRate)
	if err != nil {
		logger.Fatal("Invalid tax rate", zap.String("tax_rate", cfg.Invoice.TaxRate), zap.Error(err))
	}

	renderer := pdf.NewRenderer(cfg.Company, cfg.Signer, cfg.Invoice.LogoPath, taxRate)
	sender := mailer.NewSMTPMailer(cfg.SMTP, cfg.Company.Name, logger)

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.Features.EnableInvoiceEvents {
		kafkaPublisher := events.NewKafkaPublisher(cfg.Kafka, logger)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	invoiceMetrics := metrics.NewInvoiceMetrics(prometheus.DefaultRegisterer)

	invoiceService, err := service.NewInvoiceService(
		invoiceRepo,
		invoiceCache,
		renderer,
		sender,
		publisher,
		invoiceMetrics,
		cfg,
		logger,
	)
	if err != nil {
		logger.Fatal("Failed to create invoice service", zap.Error(err))
	}

	h := handlers.NewHandlers(invoiceService, cfg, logger)

	srv := server.New(h, cfg)

	go func() {
		logger.Info("Server starting",
			zap.Int("port", cfg.Server.Port),
			zap.Bool("enable_invoice_caching", cfg.Features.EnableInvoiceCaching),
			zap.Bool("enable_invoice_events", cfg.Features.EnableInvoiceEvents),
		)
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

func initDatabase(cfg *config.Config, logger *zap.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.MaxLifetime)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	logger.Info("Database connected",
		zap.String("host", cfg.Database.Host),
		zap.String("name", cfg.Database.Name),
	)

	return db, nil
}
