// Package history keeps a bounded, newest-first journal of confirmed
// payments. The journal is a convenience for the vending-machine display,
// not an accounting record: the remote server remains the source of truth
// and losing the journal loses nothing but the on-screen recap.
package history

import (
	"context"

	"ctlpay/internal/models"
)

// Store persists history entries newest-first, trimmed to a limit.
type Store interface {
	// Push prepends entry and drops anything beyond limit.
	Push(ctx context.Context, entry models.HistoryEntry, limit int) error
	// List returns entries newest-first.
	List(ctx context.Context) ([]models.HistoryEntry, error)
	// Clear removes every entry.
	Clear(ctx context.Context) error
}
