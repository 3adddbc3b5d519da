package models

import "time"

// HistoryEntryKindPayment is the only entry kind the ledger records today.
const HistoryEntryKindPayment = "paiement"

// HistoryEntry is a completed payment as remembered by the client-local
// ledger. It is a snapshot, not a reference: the ledger is non-authoritative
// and what it holds never feeds back into balances.
type HistoryEntry struct {
	EntryID     string      `json:"entryId"`
	Kind        string      `json:"type"`
	Transaction Transaction `json:"transaction"`
	RecordedAt  time.Time   `json:"recordedAt"`
}
