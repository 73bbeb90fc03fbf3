package service

import (
	"github.com/shopspring/decimal"

	"github.com/cogworks/invoice-service/internal/models"
)

// InvoiceTotal represents the pricing breakdown for an invoice.
type InvoiceTotal struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// RoundMoney rounds to two fractional digits, ties away from zero.
// All money math stays in arbitrary-precision decimals; floats appear
// only at the persistence boundary.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// BuildLineItems prices each submitted row and accumulates the subtotal.
// Rounding is applied per line before summation, never to the running
// sum, so each line total is exact on its own.
func BuildLineItems(inputs []models.LineItemInput) ([]models.LineItem, decimal.Decimal, error) {
	items := make([]models.LineItem, 0, len(inputs))
	subtotal := decimal.Zero

	for i, in := range inputs {
		qty, rate, err := parseLineItemAmounts(in, i)
		if err != nil {
			return nil, decimal.Zero, err
		}

		lineTotal := RoundMoney(qty.Mul(rate))
		items = append(items, models.LineItem{
			Description: in.Description,
			Quantity:    qty,
			Rate:        rate,
			Total:       lineTotal,
		})
		subtotal = subtotal.Add(lineTotal)
	}

	return items, RoundMoney(subtotal), nil
}

// CalculateTax computes tax on a subtotal at the configured rate.
func CalculateTax(subtotal, taxRate decimal.Decimal) decimal.Decimal {
	return RoundMoney(subtotal.Mul(taxRate))
}

// CalculateInvoiceTotal computes the full invoice breakdown.
func CalculateInvoiceTotal(subtotal, taxRate decimal.Decimal) InvoiceTotal {
	tax := CalculateTax(subtotal, taxRate)
	return InvoiceTotal{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    RoundMoney(subtotal.Add(tax)),
	}
}
