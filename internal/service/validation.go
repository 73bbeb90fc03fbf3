package service

import (
	"fmt"
	"net/mail"

	"github.com/shopspring/decimal"

	"github.com/cogworks/invoice-service/internal/apperrors"
	"github.com/cogworks/invoice-service/internal/models"
)

// IssueInvoiceRequest is the validated form of an invoice submission.
type IssueInvoiceRequest struct {
	ClientName  string
	ClientEmail string
	Items       []models.LineItemInput
}

// NewIssueInvoiceRequest assembles the parallel form arrays into a single
// ordered item sequence. Mismatched array lengths are rejected outright
// rather than truncated to the shortest.
func NewIssueInvoiceRequest(clientName, clientEmail string, descs, qtys, rates []string) (*IssueInvoiceRequest, error) {
	if len(descs) != len(qtys) || len(descs) != len(rates) {
		return nil, apperrors.NewValidationError("items", fmt.Sprintf(
			"line item arrays must be the same length: %d descriptions, %d quantities, %d rates",
			len(descs), len(qtys), len(rates),
		))
	}

	items := make([]models.LineItemInput, len(descs))
	for i := range descs {
		items[i] = models.LineItemInput{
			Description: descs[i],
			Quantity:    qtys[i],
			Rate:        rates[i],
		}
	}

	return &IssueInvoiceRequest{
		ClientName:  clientName,
		ClientEmail: clientEmail,
		Items:       items,
	}, nil
}

// ValidateIssueInvoiceRequest validates an invoice submission.
func ValidateIssueInvoiceRequest(req *IssueInvoiceRequest) error {
	for i, item := range req.Items {
		if err := validateLineItemInput(&item, i); err != nil {
			return err
		}
	}

	if req.ClientEmail != "" {
		if _, err := mail.ParseAddress(req.ClientEmail); err != nil {
			return apperrors.NewValidationError("email", "client email is not a valid address")
		}
	}

	return nil
}

func validateLineItemInput(item *models.LineItemInput, index int) error {
	if item.Description == "" {
		return apperrors.NewValidationError("desc", fmt.Sprintf("description is required for item %d", index+1))
	}

	if _, _, err := parseLineItemAmounts(*item, index); err != nil {
		return err
	}

	return nil
}

func parseLineItemAmounts(item models.LineItemInput, index int) (qty, rate decimal.Decimal, err error) {
	qty, err = decimal.NewFromString(item.Quantity)
	if err != nil {
		return decimal.Zero, decimal.Zero,
			apperrors.NewValidationError("qty", fmt.Sprintf("quantity %q for item %d is not a number", item.Quantity, index+1))
	}
	if qty.IsNegative() {
		return decimal.Zero, decimal.Zero,
			apperrors.NewValidationError("qty", fmt.Sprintf("quantity for item %d cannot be negative", index+1))
	}

	rate, err = decimal.NewFromString(item.Rate)
	if err != nil {
		return decimal.Zero, decimal.Zero,
			apperrors.NewValidationError("rate", fmt.Sprintf("rate %q for item %d is not a number", item.Rate, index+1))
	}
	if rate.IsNegative() {
		return decimal.Zero, decimal.Zero,
			apperrors.NewValidationError("rate", fmt.Sprintf("rate for item %d cannot be negative", index+1))
	}

	return qty, rate, nil
}
