package service

import (
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// GenerateInvoiceNumber produces "{prefix}-XXXXXX" where the suffix is
// six uppercase hex characters from a random UUID. Collisions are
// accepted; there is no uniqueness check against existing rows.
func GenerateInvoiceNumber(prefix string) string {
	id := uuid.New()
	return prefix + "-" + strings.ToUpper(hex.EncodeToString(id[:3]))
}
