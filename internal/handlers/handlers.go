package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cogworks/invoice-service/internal/apperrors"
	"github.com/cogworks/invoice-service/internal/config"
	"github.com/cogworks/invoice-service/internal/service"
)

// Handlers holds all HTTP handlers for the invoice service.
type Handlers struct {
	invoiceService *service.InvoiceService
	config         *config.Config
	logger         *zap.Logger
}

// NewHandlers creates a new handlers instance.
func NewHandlers(invoiceService *service.InvoiceService, cfg *config.Config, logger *zap.Logger) *Handlers {
	return &Handlers{
		invoiceService: invoiceService,
		config:         cfg,
		logger:         logger,
	}
}

// handleError maps workflow errors to HTTP status codes.
func handleError(c *gin.Context, err error) {
	var validationErr *apperrors.ValidationError
	var notificationErr *apperrors.NotificationError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": validationErr.Message,
			"field": validationErr.Field,
		})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "invoice not found"})
	case errors.As(err, &notificationErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": "invoice email delivery failed"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
