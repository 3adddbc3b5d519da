// Package transaction implements the purchase lifecycle of the vending
// machine: look up a CTL transaction, verify it is payable, settle it and
// hand the confirmed result to the wallet and the history journal.
//
// Every remote call is preceded by local checks (ID format, payable status,
// sufficient balance, connectivity) so that the pay endpoint - which is not
// idempotent server-side - is only ever reached with a request that has a
// real chance of succeeding. A single operation may be in flight at a time;
// concurrent attempts are refused rather than queued.
package transaction

import (
	"context"
	stderrors "errors"
	"sync"

	"ctlpay/internal/errors"
	"ctlpay/internal/metrics"
	"ctlpay/internal/models"
	"ctlpay/internal/validation"
)

type service struct {
	gateway Gateway
	gate    ConnectivityGate
	wallet  BalanceKeeper
	ledger  Ledger
	metrics MetricsRecorder

	mu      sync.Mutex
	state   State
	current *models.Transaction
	// epoch increments on Cancel/Acknowledge so a stale in-flight call
	// cannot clobber the state of a session the user already left.
	epoch uint64
}

// NewService wires the purchase controller. All collaborators except
// metrics are required.
func NewService(gw Gateway, gate ConnectivityGate, wallet BalanceKeeper, ledger Ledger, collector MetricsRecorder) Service {
	if gw == nil {
		panic("transaction: gateway is required")
	}
	if gate == nil {
		panic("transaction: connectivity gate is required")
	}
	if wallet == nil {
		panic("transaction: wallet is required")
	}
	if ledger == nil {
		panic("transaction: ledger is required")
	}
	if collector == nil {
		collector = metrics.NoopCollector{}
	}
	return &service{
		gateway: gw,
		gate:    gate,
		wallet:  wallet,
		ledger:  ledger,
		metrics: collector,
		state:   StateIdle,
	}
}

func (s *service) Load(ctx context.Context, id string) (Snapshot, error) {
	id = validation.NormalizeTransactionID(id)
	if err := validation.ValidateTransactionID(id); err != nil {
		s.metrics.RecordLoad(metrics.ResultRefused)
		return s.Current(), err
	}

	if err := s.gate.RequireOnline(ctx); err != nil {
		s.metrics.RecordLoad(metrics.ResultOffline)
		return s.Current(), err
	}

	s.mu.Lock()
	if s.state == StateLoading || s.state == StatePaying {
		s.mu.Unlock()
		s.metrics.RecordLoad(metrics.ResultRefused)
		return s.Current(), errors.ErrPaymentInFlight.WithMessage("une opération est déjà en cours")
	}
	s.state = StateLoading
	s.current = nil
	epoch := s.epoch
	s.mu.Unlock()

	tx, err := s.gateway.GetTransaction(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		// The session was cancelled while the lookup was in flight.
		return s.snapshotLocked(), errors.ErrNoTransaction
	}
	if err != nil {
		s.state = StateIdle
		s.metrics.RecordLoad(failureResult(err))
		return s.snapshotLocked(), err
	}
	s.state = StateLoaded
	s.current = tx
	s.metrics.RecordLoad(metrics.ResultSuccess)
	return s.snapshotLocked(), nil
}

func (s *service) Pay(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	if s.state == StatePaying {
		s.mu.Unlock()
		return s.Current(), errors.ErrPaymentInFlight
	}
	if s.state != StateLoaded || s.current == nil {
		s.mu.Unlock()
		return s.Current(), errors.ErrNoTransaction
	}
	if !s.current.Payable() {
		status := s.current.Status
		s.mu.Unlock()
		return s.Current(), errors.ErrTransactionNotPayable.WithMessage("transaction %s", models.StatusLabel(status))
	}
	id := s.current.ID
	amount := s.current.Amount
	s.mu.Unlock()

	if err := s.gate.RequireOnline(ctx); err != nil {
		s.metrics.RecordPayment(metrics.ResultOffline, amount)
		return s.Current(), err
	}

	if s.wallet.Balance() < amount {
		s.metrics.RecordPayment(metrics.ResultRefused, amount)
		return s.Current(), errors.ErrInsufficientBalance
	}

	s.mu.Lock()
	if s.state != StateLoaded || s.current == nil || s.current.ID != id {
		s.mu.Unlock()
		return s.Current(), errors.ErrPaymentInFlight
	}
	s.state = StatePaying
	epoch := s.epoch
	s.mu.Unlock()

	paid, newBalance, err := s.gateway.PayTransaction(ctx, id)
	if err == nil {
		// Server truth always lands, even if the session moved on while
		// the request was in flight: the money did change hands.
		s.wallet.ApplyPaymentResult(newBalance)
		s.ledger.Append(*paid)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		s.metrics.RecordPayment(metrics.ResultSuccess, amount)
		return s.snapshotLocked(), err
	}
	if err != nil {
		s.state = StateLoaded
		s.metrics.RecordPayment(failureResult(err), amount)
		return s.snapshotLocked(), err
	}
	s.state = StateConfirmed
	s.current = paid
	s.metrics.RecordPayment(metrics.ResultSuccess, amount)
	return s.snapshotLocked(), nil
}

func (s *service) Cancel() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateIdle
	s.current = nil
	s.epoch++
	return s.snapshotLocked()
}

func (s *service) Acknowledge() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateConfirmed {
		return s.snapshotLocked()
	}
	s.state = StateIdle
	s.current = nil
	s.epoch++
	return s.snapshotLocked()
}

func (s *service) Current() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// failureResult tells explicit server refusals apart from transport
// failures in the counters.
func failureResult(err error) string {
	if stderrors.Is(err, errors.ErrServerRejected) {
		return metrics.ResultRejected
	}
	return metrics.ResultFailure
}

func (s *service) snapshotLocked() Snapshot {
	snap := Snapshot{State: s.state}
	if s.current != nil {
		tx := *s.current
		snap.Transaction = &tx
		snap.StatusLabel = models.StatusLabel(tx.Status)
		snap.Payable = s.state == StateLoaded && tx.Payable()
	}
	return snap
}
