package repository

import (
	"testing"
)

func TestPostgresInvoiceRepository_Insert(t *testing.T) {
	t.Skip("Integration test - requires database")
}

func TestPostgresInvoiceRepository_GetByNumber(t *testing.T) {
	t.Skip("Integration test - requires database")
}

func TestNullableString(t *testing.T) {
	if v := nullableString(""); v.Valid {
		t.Error("Expected empty string to map to NULL")
	}

	v := nullableString("Client Co")
	if !v.Valid || v.String != "Client Co" {
		t.Errorf("Expected valid string, got %+v", v)
	}
}
