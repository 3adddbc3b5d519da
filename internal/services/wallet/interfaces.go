package wallet

import (
	"context"

	"ctlpay/internal/models"
)

// Service is the wallet controller surface.
type Service interface {
	// Balance returns the cached balance in FCFA.
	Balance() int64
	// RefreshBalance fetches the authoritative balance. On failure the
	// stale figure is kept and the error returned for logging.
	RefreshBalance(ctx context.Context) (int64, error)
	// TopUp recharges the balance through a mobile-money operator.
	TopUp(ctx context.Context, amount int64, operatorKey string) (*TopUpResult, error)
	// ApplyPaymentResult overwrites the cached balance after a payment.
	ApplyPaymentResult(newBalance int64)
	// Quote builds the display-only fee summary for a top-up.
	Quote(amount int64, operatorKey string) (*models.FeeQuote, error)
	// Operators lists the configured fee schedule.
	Operators() []models.Operator
}

// Gateway is the slice of the remote API the wallet needs.
type Gateway interface {
	GetBalance(ctx context.Context) (int64, error)
	Recharge(ctx context.Context, amount int64, operator string) (int64, string, error)
}

// ConnectivityGate refuses money-moving calls while offline.
type ConnectivityGate interface {
	RequireOnline(ctx context.Context) error
}

// MetricsRecorder records wallet activity.
type MetricsRecorder interface {
	RecordTopUp(result string, amount int64)
	RecordBalance(balance int64)
}
