package wallet

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ctlpay/internal/config"
	"ctlpay/internal/errors"
)

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) GetBalance(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockGateway) Recharge(ctx context.Context, amount int64, operator string) (int64, string, error) {
	args := m.Called(ctx, amount, operator)
	return args.Get(0).(int64), args.String(1), args.Error(2)
}

type fakeGate struct {
	online bool
}

func (g *fakeGate) RequireOnline(ctx context.Context) error {
	if !g.online {
		return errors.ErrServerUnreachable
	}
	return nil
}

func newTestService(gw Gateway, online bool) Service {
	return NewService(gw, &fakeGate{online: online}, config.DefaultOperators(), nil)
}

func TestService_Quote(t *testing.T) {
	svc := newTestService(new(MockGateway), true)

	tests := []struct {
		name     string
		amount   int64
		operator string
		wantFee  int64
	}{
		{name: "orange 1% exact", amount: 5000, operator: "orange", wantFee: 50},
		{name: "mtn 1.5% rounds up", amount: 1000, operator: "mtn", wantFee: 15},
		{name: "mtn rounds half up", amount: 100, operator: "mtn", wantFee: 2},
		{name: "orange small amount", amount: 49, operator: "orange", wantFee: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := svc.Quote(tt.amount, tt.operator)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFee, quote.Fee)
			assert.Equal(t, tt.amount+tt.wantFee, quote.Total)
			assert.Equal(t, tt.operator, quote.Operator)
		})
	}

	t.Run("unknown operator", func(t *testing.T) {
		_, err := svc.Quote(1000, "wave")
		assert.ErrorIs(t, err, errors.ErrOperatorRequired)
	})

	t.Run("non-positive amount", func(t *testing.T) {
		_, err := svc.Quote(0, "orange")
		assert.ErrorIs(t, err, errors.ErrInvalidAmount)
	})
}

func TestService_TopUp(t *testing.T) {
	tests := []struct {
		name      string
		amount    int64
		operator  string
		online    bool
		setupMock func(*MockGateway)
		wantErr   error
	}{
		{
			name:     "successful top-up overwrites balance",
			amount:   5000,
			operator: "orange",
			online:   true,
			setupMock: func(gw *MockGateway) {
				gw.On("Recharge", mock.Anything, int64(5000), "orange").
					Return(int64(7500), "Rechargement effectué", nil)
			},
		},
		{
			name:     "zero amount refused locally",
			amount:   0,
			operator: "orange",
			online:   true,
			wantErr:  errors.ErrInvalidAmount,
		},
		{
			name:     "negative amount refused locally",
			amount:   -100,
			operator: "orange",
			online:   true,
			wantErr:  errors.ErrInvalidAmount,
		},
		{
			name:    "missing operator refused locally",
			amount:  5000,
			online:  true,
			wantErr: errors.ErrOperatorRequired,
		},
		{
			name:     "unknown operator refused locally",
			amount:   5000,
			operator: "wave",
			online:   true,
			wantErr:  errors.ErrOperatorRequired,
		},
		{
			name:     "offline refused without network call",
			amount:   5000,
			operator: "orange",
			online:   false,
			wantErr:  errors.ErrServerUnreachable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := new(MockGateway)
			if tt.setupMock != nil {
				tt.setupMock(gw)
			}
			svc := newTestService(gw, tt.online)

			result, err := svc.TopUp(context.Background(), tt.amount, tt.operator)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Zero(t, svc.Balance())
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(7500), result.NewBalance)
				assert.Equal(t, "Rechargement effectué", result.Message)
				assert.Equal(t, int64(7500), svc.Balance())
			}
			// Local rejections must never reach the gateway.
			gw.AssertExpectations(t)
		})
	}

	t.Run("server rejection keeps prior balance", func(t *testing.T) {
		gw := new(MockGateway)
		gw.On("GetBalance", mock.Anything).Return(int64(2000), nil)
		gw.On("Recharge", mock.Anything, int64(5000), "orange").
			Return(int64(0), "", errors.Rejected("Opérateur indisponible"))
		svc := newTestService(gw, true)

		_, err := svc.RefreshBalance(context.Background())
		require.NoError(t, err)

		_, err = svc.TopUp(context.Background(), 5000, "orange")
		assert.ErrorIs(t, err, errors.ErrServerRejected)
		assert.Equal(t, int64(2000), svc.Balance())
	})
}

func TestService_RefreshBalance(t *testing.T) {
	t.Run("overwrites cached balance", func(t *testing.T) {
		gw := new(MockGateway)
		gw.On("GetBalance", mock.Anything).Return(int64(1234), nil)
		svc := newTestService(gw, true)

		balance, err := svc.RefreshBalance(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(1234), balance)
		assert.Equal(t, int64(1234), svc.Balance())
	})

	t.Run("failure keeps stale figure", func(t *testing.T) {
		gw := new(MockGateway)
		gw.On("GetBalance", mock.Anything).Return(int64(900), nil).Once()
		gw.On("GetBalance", mock.Anything).Return(int64(0), errors.ErrServerUnreachable).Once()
		svc := newTestService(gw, true)

		_, err := svc.RefreshBalance(context.Background())
		require.NoError(t, err)

		stale, err := svc.RefreshBalance(context.Background())
		assert.Error(t, err)
		assert.Equal(t, int64(900), stale)
		assert.Equal(t, int64(900), svc.Balance())
	})
}

func TestService_ApplyPaymentResult(t *testing.T) {
	svc := newTestService(new(MockGateway), true)

	// The cached balance is overwritten exactly, never derived locally.
	svc.ApplyPaymentResult(300)
	assert.Equal(t, int64(300), svc.Balance())

	svc.ApplyPaymentResult(300)
	assert.Equal(t, int64(300), svc.Balance())
}

func TestService_Operators(t *testing.T) {
	svc := newTestService(new(MockGateway), true)

	ops := svc.Operators()
	require.Len(t, ops, 2)
	assert.Equal(t, "mtn", ops[0].Key)
	assert.Equal(t, "orange", ops[1].Key)
}
