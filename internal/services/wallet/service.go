package wallet

import (
	"context"
	"log"
	"math"
	"sort"
	"sync"

	"ctlpay/internal/errors"
	"ctlpay/internal/metrics"
	"ctlpay/internal/models"
	"ctlpay/internal/validation"
)

// TopUpResult is the server's answer to a successful recharge.
type TopUpResult struct {
	NewBalance int64  `json:"nouveauSolde"`
	Message    string `json:"message"`
}

type service struct {
	gateway   Gateway
	gate      ConnectivityGate
	operators map[string]models.Operator
	metrics   MetricsRecorder

	mu      sync.RWMutex
	balance int64
}

// NewService creates a wallet service over the given fee schedule.
// Metrics may be nil.
func NewService(gateway Gateway, gate ConnectivityGate, operators []models.Operator, collector MetricsRecorder) Service {
	if gateway == nil {
		panic("gateway is required")
	}
	if gate == nil {
		panic("connectivity gate is required")
	}
	if len(operators) == 0 {
		panic("operator schedule is required")
	}
	if collector == nil {
		collector = metrics.NoopCollector{}
	}

	schedule := make(map[string]models.Operator, len(operators))
	for _, op := range operators {
		if !op.Valid() {
			panic("operator " + op.Key + " has an invalid fee rate")
		}
		schedule[op.Key] = op
	}

	return &service{
		gateway:   gateway,
		gate:      gate,
		operators: schedule,
		metrics:   collector,
	}
}

func (s *service) Balance() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.balance
}

func (s *service) RefreshBalance(ctx context.Context) (int64, error) {
	balance, err := s.gateway.GetBalance(ctx)
	if err != nil {
		// Stale balance is kept; a refresh failure is not destructive.
		log.Printf("balance refresh failed, keeping cached figure: %v", err)
		return s.Balance(), err
	}

	s.setBalance(balance)
	return balance, nil
}

func (s *service) TopUp(ctx context.Context, amount int64, operatorKey string) (*TopUpResult, error) {
	if err := validation.ValidateAmount(amount); err != nil {
		s.metrics.RecordTopUp(metrics.ResultRefused, amount)
		return nil, err
	}
	if operatorKey == "" {
		s.metrics.RecordTopUp(metrics.ResultRefused, amount)
		return nil, errors.ErrOperatorRequired
	}
	op, ok := s.operators[operatorKey]
	if !ok {
		s.metrics.RecordTopUp(metrics.ResultRefused, amount)
		return nil, errors.ErrOperatorRequired.WithMessage("opérateur inconnu: %s", operatorKey)
	}
	if err := s.gate.RequireOnline(ctx); err != nil {
		s.metrics.RecordTopUp(metrics.ResultOffline, amount)
		return nil, err
	}

	newBalance, message, err := s.gateway.Recharge(ctx, amount, op.Key)
	if err != nil {
		s.metrics.RecordTopUp(metrics.ResultFailure, amount)
		return nil, err
	}

	s.setBalance(newBalance)
	s.metrics.RecordTopUp(metrics.ResultSuccess, amount)
	return &TopUpResult{NewBalance: newBalance, Message: message}, nil
}

func (s *service) ApplyPaymentResult(newBalance int64) {
	s.setBalance(newBalance)
}

func (s *service) Quote(amount int64, operatorKey string) (*models.FeeQuote, error) {
	if err := validation.ValidateAmount(amount); err != nil {
		return nil, err
	}
	op, ok := s.operators[operatorKey]
	if !ok {
		return nil, errors.ErrOperatorRequired
	}

	fee := int64(math.Round(float64(amount) * op.FeeRate))
	return &models.FeeQuote{
		Operator: op.Key,
		Amount:   amount,
		Fee:      fee,
		Total:    amount + fee,
	}, nil
}

func (s *service) Operators() []models.Operator {
	ops := make([]models.Operator, 0, len(s.operators))
	for _, op := range s.operators {
		ops = append(ops, op)
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i].Key < ops[j].Key })
	return ops
}

// setBalance is the only writer of the cached figure. The new value always
// comes from a server response.
func (s *service) setBalance(balance int64) {
	s.mu.Lock()
	s.balance = balance
	s.mu.Unlock()
	s.metrics.RecordBalance(balance)
}
