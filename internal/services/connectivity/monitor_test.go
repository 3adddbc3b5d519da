package connectivity

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	domainErrors "ctlpay/internal/errors"
)

type fakeProber struct {
	calls atomic.Int64
	fail  atomic.Bool
}

func (p *fakeProber) Health(ctx context.Context) error {
	p.calls.Add(1)
	if p.fail.Load() {
		return errors.New("connection refused")
	}
	return nil
}

func TestMonitor_Probe(t *testing.T) {
	t.Run("success flips state online", func(t *testing.T) {
		prober := &fakeProber{}
		m := NewMonitor(prober, time.Minute, nil)

		state := m.Probe(context.Background())

		assert.True(t, state.Online)
		assert.Empty(t, state.LastError)
		assert.True(t, m.Online())
	})

	t.Run("failure flips state offline and keeps reason", func(t *testing.T) {
		prober := &fakeProber{}
		prober.fail.Store(true)
		m := NewMonitor(prober, time.Minute, nil)

		state := m.Probe(context.Background())

		assert.False(t, state.Online)
		assert.Contains(t, state.LastError, "connection refused")
		assert.False(t, m.Online())
	})

	t.Run("subscribers see every transition", func(t *testing.T) {
		prober := &fakeProber{}
		m := NewMonitor(prober, time.Minute, nil)

		var seen []bool
		m.Subscribe(func(s State) { seen = append(seen, s.Online) })

		m.Probe(context.Background())
		prober.fail.Store(true)
		m.Probe(context.Background())

		assert.Equal(t, []bool{true, false}, seen)
	})
}

func TestMonitor_RequireOnline(t *testing.T) {
	t.Run("online passes without probing", func(t *testing.T) {
		prober := &fakeProber{}
		m := NewMonitor(prober, time.Minute, nil)
		m.Probe(context.Background())
		before := prober.calls.Load()

		assert.NoError(t, m.RequireOnline(context.Background()))
		assert.Equal(t, before, prober.calls.Load())
	})

	t.Run("offline refuses and triggers a reconnection probe", func(t *testing.T) {
		prober := &fakeProber{}
		prober.fail.Store(true)
		m := NewMonitor(prober, time.Minute, nil)
		m.Probe(context.Background())
		before := prober.calls.Load()

		err := m.RequireOnline(context.Background())
		assert.ErrorIs(t, err, domainErrors.ErrServerUnreachable)

		// The probe runs asynchronously; recovery is observable afterwards.
		prober.fail.Store(false)
		assert.Eventually(t, func() bool {
			return prober.calls.Load() > before
		}, time.Second, 10*time.Millisecond)
	})
}

func TestMonitor_StartStop(t *testing.T) {
	prober := &fakeProber{}
	m := NewMonitor(prober, 20*time.Millisecond, nil)

	m.Start(context.Background())
	m.Start(context.Background()) // idempotent

	assert.Eventually(t, func() bool {
		return prober.calls.Load() >= 3
	}, time.Second, 5*time.Millisecond)

	m.Stop()
	m.Stop() // idempotent
	settled := prober.calls.Load()
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, settled, prober.calls.Load())
}
