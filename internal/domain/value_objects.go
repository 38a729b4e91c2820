package domain

import (
	"fmt"
	"strings"
)

// PaymentDetails carries the raw instrument fields from a process request.
// Only a masked rendition ever reaches storage; see MaskDetails.
type PaymentDetails struct {
	CardNumber     string
	CardHolder     string
	ExpiryMonth    string
	ExpiryYear     string
	CVV            string
	BillingAddress string
}

// MaskDetails reduces the instrument to a display-safe string: the last four
// digits of the card number behind an asterisk run, plus the holder name.
// Expiry, CVV and billing address are dropped outright. When the card number
// is too short to yield a safe last-4, the fragment is omitted entirely.
func MaskDetails(details PaymentDetails) string {
	var masked strings.Builder
	if len(details.CardNumber) > 4 {
		last4 := details.CardNumber[len(details.CardNumber)-4:]
		fmt.Fprintf(&masked, "Card: ****%s", last4)
	}
	if details.CardHolder != "" {
		if masked.Len() > 0 {
			masked.WriteString(", ")
		}
		fmt.Fprintf(&masked, "Holder: %s", details.CardHolder)
	}
	return masked.String()
}
