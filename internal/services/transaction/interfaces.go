package transaction

import (
	"context"

	"ctlpay/internal/models"
)

// Service drives the purchase lifecycle: load a transaction by ID, pay it,
// and reset back to idle.
type Service interface {
	// Load fetches the transaction behind id and makes it the current one.
	Load(ctx context.Context, id string) (Snapshot, error)
	// Pay settles the currently loaded transaction.
	Pay(ctx context.Context) (Snapshot, error)
	// Cancel discards the current transaction and returns to idle.
	Cancel() Snapshot
	// Acknowledge closes a confirmed payment and returns to idle.
	Acknowledge() Snapshot
	// Current reports the present state without side effects.
	Current() Snapshot
}

// Gateway is the remote-API surface the controller needs.
type Gateway interface {
	GetTransaction(ctx context.Context, id string) (*models.Transaction, error)
	PayTransaction(ctx context.Context, id string) (*models.Transaction, int64, error)
}

// ConnectivityGate refuses remote work while the server is unreachable.
type ConnectivityGate interface {
	RequireOnline(ctx context.Context) error
}

// BalanceKeeper exposes the cached wallet balance and accepts the
// authoritative post-payment figure.
type BalanceKeeper interface {
	Balance() int64
	ApplyPaymentResult(newBalance int64)
}

// Ledger records confirmed payments.
type Ledger interface {
	Append(tx models.Transaction)
}

// MetricsRecorder counts lookups and payment outcomes.
type MetricsRecorder interface {
	RecordLoad(result string)
	RecordPayment(result string, amount int64)
}
