package service

import (
	"regexp"
	"testing"
)

var invoiceNumberPattern = regexp.MustCompile(`^[A-Z]+-[0-9A-F]{6}$`)

func TestGenerateInvoiceNumber(t *testing.T) {
	for i := 0; i < 50; i++ {
		number := GenerateInvoiceNumber("COG")
		if !invoiceNumberPattern.MatchString(number) {
			t.Fatalf("Invoice number %q does not match expected pattern", number)
		}
	}
}

func TestGenerateInvoiceNumber_UsesPrefix(t *testing.T) {
	number := GenerateInvoiceNumber("ACME")
	if number[:5] != "ACME-" {
		t.Errorf("Expected prefix ACME-, got %s", number)
	}
	if len(number) != len("ACME-")+6 {
		t.Errorf("Expected 6-character suffix, got %s", number)
	}
}
