package models

// Transaction statuses as carried on the wire by the CTL-Pay API.
const (
	StatusPending   = "en_attente"
	StatusPaid      = "paye"
	StatusCancelled = "annule"
	StatusExpired   = "expire"
)

var statusLabels = map[string]string{
	StatusPending:   "En attente",
	StatusPaid:      "Payé",
	StatusCancelled: "Annulé",
	StatusExpired:   "Expiré",
}

// StatusLabel returns the display label for a wire status. Unknown
// statuses are returned as-is.
func StatusLabel(status string) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return status
}

// LineItem is a single beverage on a transaction, display-only.
type LineItem struct {
	Label     string `json:"nom"`
	UnitPrice int64  `json:"prix"`
}

// Transaction is a server-issued pending charge. Amounts are whole FCFA.
// The client never mutates a transaction field by field; it only replaces
// the whole snapshot with what the server returned.
type Transaction struct {
	ID     string     `json:"id"`
	Amount int64      `json:"montant"`
	Status string     `json:"statut"`
	Items  []LineItem `json:"boissons,omitempty"`
}

// Payable reports whether the transaction can still be paid.
func (t *Transaction) Payable() bool {
	return t != nil && t.Status == StatusPending
}
