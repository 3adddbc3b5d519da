// Package validation holds the client-side fast-fail checks performed
// before any network call. Nothing here is trusted by the server; the
// remote service revalidates everything it is sent.
package validation

import (
	"regexp"
	"strings"

	"ctlpay/internal/errors"
)

// Canonical identifier rule: the CTL prefix followed by 3 to 29 more
// uppercase alphanumerics. Identifiers are normalized to uppercase first.
var transactionIDPattern = regexp.MustCompile(`^CTL[A-Z0-9]{3,29}$`)

// NormalizeTransactionID trims and uppercases a raw identifier the way
// manual entry and QR payloads are both canonicalized.
func NormalizeTransactionID(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// ValidateTransactionID checks the canonical identifier format.
func ValidateTransactionID(id string) error {
	if id == "" {
		return errors.ErrValidationFailed.WithMessage("veuillez saisir un ID de transaction")
	}
	if !strings.HasPrefix(id, "CTL") {
		return errors.ErrValidationFailed.WithMessage("ID CTL invalide - doit commencer par CTL")
	}
	if !transactionIDPattern.MatchString(id) {
		return errors.ErrValidationFailed.WithMessage("ID CTL invalide: %s", id)
	}
	return nil
}

// ValidateAmount checks that a monetary amount is strictly positive.
func ValidateAmount(amount int64) error {
	if amount <= 0 {
		return errors.ErrInvalidAmount
	}
	return nil
}
