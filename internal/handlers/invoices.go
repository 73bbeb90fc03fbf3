package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cogworks/invoice-service/internal/apperrors"
	"github.com/cogworks/invoice-service/internal/service"
)

// ShowForm handles GET / and renders the invoice entry form.
func (h *Handlers) ShowForm(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"CompanyName": h.config.Company.Name,
	})
}

// CreateInvoice handles POST /invoices. The form submits parallel
// desc[]/qty[]/rate[] arrays plus the optional client name and email.
func (h *Handlers) CreateInvoice(c *gin.Context) {
	req, err := service.NewIssueInvoiceRequest(
		c.PostForm("name"),
		c.PostForm("email"),
		c.PostFormArray("desc[]"),
		c.PostFormArray("qty[]"),
		c.PostFormArray("rate[]"),
	)
	if err != nil {
		h.renderError(c, err)
		return
	}

	inv, err := h.invoiceService.IssueInvoice(c.Request.Context(), req)
	if err != nil {
		h.logger.Error("Invoice issuance failed", zap.Error(err))
		h.renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "success.html", gin.H{
		"InvoiceNo":   inv.Number,
		"CompanyName": h.config.Company.Name,
	})
}

// GetInvoice handles GET /api/v1/invoices/:invoice_no and returns the
// persisted summary row.
func (h *Handlers) GetInvoice(c *gin.Context) {
	invoiceNo := c.Param("invoice_no")

	rec, err := h.invoiceService.GetInvoice(c.Request.Context(), invoiceNo)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, rec)
}

// renderError maps workflow errors to the HTML error page shown to the
// form submitter.
func (h *Handlers) renderError(c *gin.Context, err error) {
	var validationErr *apperrors.ValidationError
	var notificationErr *apperrors.NotificationError

	status := http.StatusInternalServerError
	message := "Something went wrong while generating the invoice."

	switch {
	case errors.As(err, &validationErr):
		status = http.StatusBadRequest
		message = validationErr.Message
	case errors.As(err, &notificationErr):
		status = http.StatusBadGateway
		message = "The invoice was recorded but the email could not be delivered."
	}

	c.HTML(status, "error.html", gin.H{
		"Message":     message,
		"CompanyName": h.config.Company.Name,
	})
}
