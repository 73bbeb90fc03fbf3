package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/cogworks/invoice-service/internal/config"
)

// Sender delivers a rendered invoice to one recipient.
type Sender interface {
	SendInvoice(ctx context.Context, to, invoiceNo string, document []byte) error
}

// Ensure SMTPMailer implements Sender
var _ Sender = (*SMTPMailer)(nil)

// SMTPMailer sends invoice emails through an external SMTP relay. The
// connection is upgraded with STARTTLS and authenticated with the
// configured account. There is no retry or queuing; a delivery failure
// is returned to the caller as-is.
type SMTPMailer struct {
	dialer      *gomail.Dialer
	from        string
	companyName string
	logger      *zap.Logger
}

// NewSMTPMailer creates a mailer for the configured relay.
func NewSMTPMailer(cfg config.SMTPConfig, companyName string, logger *zap.Logger) *SMTPMailer {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	dialer.TLSConfig = &tls.Config{ServerName: cfg.Host}

	return &SMTPMailer{
		dialer:      dialer,
		from:        cfg.Username,
		companyName: companyName,
		logger:      logger,
	}
}

// SendInvoice composes and delivers one invoice email with the PDF
// attached as "{invoiceNo}.pdf".
func (m *SMTPMailer) SendInvoice(ctx context.Context, to, invoiceNo string, document []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, m.companyName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("Invoice %s | %s", invoiceNo, m.companyName))
	msg.SetBody("text/plain", fmt.Sprintf("Please find attached invoice %s.", invoiceNo))
	msg.Attach(invoiceNo+".pdf",
		gomail.SetHeader(map[string][]string{"Content-Type": {"application/pdf"}}),
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(document)
			return err
		}),
	)

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.Error("Failed to send invoice email",
			zap.String("to", to),
			zap.String("invoice_no", invoiceNo),
			zap.Error(err),
		)
		return err
	}

	m.logger.Info("Invoice email sent",
		zap.String("to", to),
		zap.String("invoice_no", invoiceNo),
	)
	return nil
}

// MockSender is a mock implementation for testing.
type MockSender struct {
	Sent []MockDelivery
	Err  error
}

// MockDelivery records one SendInvoice call.
type MockDelivery struct {
	To        string
	InvoiceNo string
	Document  []byte
}

// NewMockSender creates a mock sender.
func NewMockSender() *MockSender {
	return &MockSender{Sent: make([]MockDelivery, 0)}
}

func (m *MockSender) SendInvoice(ctx context.Context, to, invoiceNo string, document []byte) error {
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, MockDelivery{To: to, InvoiceNo: invoiceNo, Document: document})
	return nil
}
