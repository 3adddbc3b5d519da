package history

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ctlpay/internal/models"
)

func paidTransaction(i int) models.Transaction {
	return models.Transaction{
		ID:     fmt.Sprintf("CTL%03d", i),
		Amount: int64(100 * i),
		Status: models.StatusPaid,
	}
}

func TestLedger_RetentionCap(t *testing.T) {
	ledger := NewLedger(NewMemoryStore(), 3)

	for i := 1; i <= 4; i++ {
		ledger.Append(paidTransaction(i))
	}

	entries, err := ledger.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Newest first, oldest dropped.
	assert.Equal(t, "CTL004", entries[0].Transaction.ID)
	assert.Equal(t, "CTL003", entries[1].Transaction.ID)
	assert.Equal(t, "CTL002", entries[2].Transaction.ID)
}

func TestLedger_EntryShape(t *testing.T) {
	ledger := NewLedger(NewMemoryStore(), 0)

	ledger.Append(paidTransaction(7))

	entries, err := ledger.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.NotEmpty(t, entry.EntryID)
	assert.Equal(t, models.HistoryEntryKindPayment, entry.Kind)
	assert.Equal(t, "CTL007", entry.Transaction.ID)
	assert.Equal(t, int64(700), entry.Transaction.Amount)
	assert.False(t, entry.RecordedAt.IsZero())
}

func TestLedger_TotalsAndClear(t *testing.T) {
	ledger := NewLedger(NewMemoryStore(), 5)
	ctx := context.Background()

	ledger.Append(paidTransaction(1))
	ledger.Append(paidTransaction(2))

	total, err := ledger.TotalAmount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(300), total)

	count, err := ledger.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, ledger.Clear(ctx))

	entries, err := ledger.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLedger_DefaultLimit(t *testing.T) {
	ledger := NewLedger(NewMemoryStore(), 0)
	assert.Equal(t, DefaultLimit, ledger.Limit())

	for i := 1; i <= DefaultLimit+5; i++ {
		ledger.Append(paidTransaction(i))
	}

	entries, err := ledger.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, DefaultLimit)
}
