package domain

import (
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// TransactionIDPrefix is the fixed, human-readable head of every transaction ID.
const TransactionIDPrefix = "TXN_"

// NewTransactionID returns the external-facing reference for a payment attempt:
// the fixed prefix followed by 16 uppercase hex characters taken from a random
// 128-bit UUID. Collision probability is negligible over the service lifetime.
func NewTransactionID() string {
	id := uuid.New()
	return TransactionIDPrefix + strings.ToUpper(hex.EncodeToString(id[:8]))
}
