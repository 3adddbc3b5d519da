package history

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"ctlpay/internal/models"
)

const (
	// DefaultLimit bounds the journal to the most recent payments.
	DefaultLimit = 10

	storeTimeout = 2 * time.Second
)

// Ledger records confirmed payments into a Store, newest-first,
// capped at a fixed number of entries.
type Ledger struct {
	store Store
	limit int
}

func NewLedger(store Store, limit int) *Ledger {
	if store == nil {
		panic("history: store is required")
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Ledger{store: store, limit: limit}
}

// Append records a confirmed payment. A store failure is logged but never
// surfaced: the payment already happened server-side and must not appear
// to fail because the recap could not be written.
func (l *Ledger) Append(tx models.Transaction) {
	entry := models.HistoryEntry{
		EntryID:     uuid.New().String(),
		Kind:        models.HistoryEntryKindPayment,
		Transaction: tx,
		RecordedAt:  time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	if err := l.store.Push(ctx, entry, l.limit); err != nil {
		log.Printf("history: échec d'enregistrement de %s: %v", tx.ID, err)
	}
}

// List returns the journal newest-first.
func (l *Ledger) List(ctx context.Context) ([]models.HistoryEntry, error) {
	return l.store.List(ctx)
}

// TotalAmount sums the amounts of every retained entry.
func (l *Ledger) TotalAmount(ctx context.Context) (int64, error) {
	entries, err := l.store.List(ctx)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, entry := range entries {
		total += entry.Transaction.Amount
	}
	return total, nil
}

// Count returns the number of retained entries.
func (l *Ledger) Count(ctx context.Context) (int, error) {
	entries, err := l.store.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}

// Clear empties the journal.
func (l *Ledger) Clear(ctx context.Context) error {
	return l.store.Clear(ctx)
}

// Limit reports the retention cap.
func (l *Ledger) Limit() int {
	return l.limit
}
