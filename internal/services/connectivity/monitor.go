// Package connectivity tracks liveness of the remote CTL-Pay service.
//
// The monitor is the single writer of the process-wide connectivity state.
// Every money-moving operation reads the latest state through RequireOnline
// before touching the network; when the state is offline the operation is
// refused locally and a fresh probe is scheduled instead of the call.
package connectivity

import (
	"context"
	"sync"
	"time"

	"ctlpay/internal/errors"
)

// DefaultInterval matches the page-session probe cadence of the original
// client.
const DefaultInterval = 30 * time.Second

const probeTimeout = 5 * time.Second

// State is a snapshot of the last probe outcome.
type State struct {
	Online    bool      `json:"online"`
	LastError string    `json:"lastError,omitempty"`
	CheckedAt time.Time `json:"checkedAt"`
}

// Prober performs one health call against the remote service.
type Prober interface {
	Health(ctx context.Context) error
}

// Subscriber is notified after every probe with the resulting state.
type Subscriber func(State)

// MetricsRecorder records probe outcomes.
type MetricsRecorder interface {
	RecordProbe(online bool)
}

// Monitor owns the connectivity state for the lifetime of the session.
type Monitor struct {
	prober   Prober
	interval time.Duration
	metrics  MetricsRecorder

	mu      sync.RWMutex
	state   State
	subs    []Subscriber
	cancel  context.CancelFunc
	running bool
	wg      sync.WaitGroup
}

// NewMonitor creates a monitor. The interval defaults to DefaultInterval
// when non-positive; metrics may be nil.
func NewMonitor(prober Prober, interval time.Duration, metrics MetricsRecorder) *Monitor {
	if prober == nil {
		panic("prober is required")
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Monitor{
		prober:   prober,
		interval: interval,
		metrics:  metrics,
	}
}

// Probe performs one health check, updates the shared state and notifies
// subscribers. It never propagates an error past its boundary; the outcome
// is always resolved into the returned state.
func (m *Monitor) Probe(ctx context.Context) State {
	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	err := m.prober.Health(probeCtx)

	state := State{
		Online:    err == nil,
		CheckedAt: time.Now(),
	}
	if err != nil {
		state.LastError = err.Error()
	}
	m.metrics.RecordProbe(state.Online)

	m.mu.Lock()
	m.state = state
	subs := make([]Subscriber, len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()

	for _, sub := range subs {
		sub(state)
	}
	return state
}

// State returns the latest probe outcome.
func (m *Monitor) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Online reports whether the last probe succeeded.
func (m *Monitor) Online() bool {
	return m.State().Online
}

// RequireOnline gates money-moving operations. When the state is offline
// it kicks off an asynchronous reconnection probe and refuses the
// operation without a network call.
func (m *Monitor) RequireOnline(ctx context.Context) error {
	if m.Online() {
		return nil
	}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		m.Probe(context.Background())
	}()

	return errors.ErrServerUnreachable
}

// Subscribe registers a callback invoked after every probe.
func (m *Monitor) Subscribe(sub Subscriber) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, sub)
}

// Start launches the repeating probe loop. It probes once immediately and
// then on every interval tick until the context is cancelled or Stop is
// called. Calling Start while running is a no-op.
func (m *Monitor) Start(ctx context.Context) {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.running = true
	m.mu.Unlock()

	m.wg.Add(1)
	go m.loop(runCtx)
}

func (m *Monitor) loop(ctx context.Context) {
	defer m.wg.Done()

	m.Probe(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Probe(ctx)
		}
	}
}

// Stop cancels the probe loop and waits for in-flight probes to finish.
// Safe to call more than once.
func (m *Monitor) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	cancel := m.cancel
	m.cancel = nil
	m.mu.Unlock()

	cancel()
	m.wg.Wait()
}

type noopMetrics struct{}

func (noopMetrics) RecordProbe(bool) {}
