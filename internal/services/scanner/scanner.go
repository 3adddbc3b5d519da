// Package scanner turns decoded QR frames into transaction IDs. A frame is
// either a bare CTL identifier or a JSON payload carrying one; anything
// else is ignored and the session keeps listening. The first usable frame
// ends the session.
package scanner

import (
	"context"
	"strings"
	"sync"

	"github.com/bytedance/sonic"

	"ctlpay/internal/errors"
	"ctlpay/internal/validation"
)

// payloadTypePayment is the only payload type the scanner accepts when a
// type discriminator is present.
const payloadTypePayment = "paiement"

// FrameSource feeds decoded QR frame contents to a scan session.
type FrameSource interface {
	// Next blocks until a frame is available, the source closes, or ctx ends.
	Next(ctx context.Context) ([]byte, error)
	Close() error
}

// SourceOpener acquires a fresh FrameSource for each scan session.
type SourceOpener func() (FrameSource, error)

// MatchFunc receives the transaction ID decoded from the winning frame.
type MatchFunc func(id string)

type qrPayload struct {
	Type          string `json:"type"`
	TransactionID string `json:"transactionId"`
}

// Scanner runs at most one scan session at a time.
type Scanner struct {
	open SourceOpener

	mu      sync.Mutex
	source  FrameSource
	cancel  context.CancelFunc
	running bool
	wg      sync.WaitGroup
}

func New(open SourceOpener) *Scanner {
	if open == nil {
		panic("scanner: source opener is required")
	}
	return &Scanner{open: open}
}

// Start opens a frame source and listens until a frame yields a usable
// transaction ID, the source closes, or Stop is called. Starting while a
// session runs is a no-op.
func (s *Scanner) Start(onMatch MatchFunc) error {
	if onMatch == nil {
		panic("scanner: match callback is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}

	source, err := s.open()
	if err != nil {
		return errors.ErrDeviceUnavailable.WithMessage("impossible d'accéder à la caméra: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.source = source
	s.cancel = cancel
	s.running = true

	s.wg.Add(1)
	go s.loop(ctx, source, onMatch)
	return nil
}

func (s *Scanner) loop(ctx context.Context, source FrameSource, onMatch MatchFunc) {
	defer s.wg.Done()

	for {
		frame, err := source.Next(ctx)
		if err != nil {
			s.teardown(source)
			return
		}

		id, ok := decodePayload(frame)
		if !ok {
			continue
		}

		s.teardown(source)
		onMatch(id)
		return
	}
}

// teardown ends the session owning source. It is single-shot: a session
// superseded by a newer one must not touch the newer session's state.
func (s *Scanner) teardown(source FrameSource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running || s.source != source {
		return
	}
	s.cancel()
	_ = source.Close()
	s.source = nil
	s.cancel = nil
	s.running = false
}

// Stop ends the current session, if any, and waits for it to finish.
func (s *Scanner) Stop() {
	s.mu.Lock()
	source := s.source
	s.mu.Unlock()

	if source != nil {
		s.teardown(source)
	}
	s.wg.Wait()
}

// Running reports whether a scan session is active.
func (s *Scanner) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// decodePayload extracts a transaction ID from a frame. Frames are either
// the bare ID or a JSON object with a transactionId field.
func decodePayload(frame []byte) (string, bool) {
	text := strings.TrimSpace(string(frame))
	if text == "" {
		return "", false
	}

	if strings.HasPrefix(text, "{") {
		var payload qrPayload
		if err := sonic.Unmarshal([]byte(text), &payload); err != nil {
			return "", false
		}
		if payload.TransactionID == "" {
			return "", false
		}
		if payload.Type != "" && payload.Type != payloadTypePayment {
			return "", false
		}
		text = payload.TransactionID
	}

	id := validation.NormalizeTransactionID(text)
	if err := validation.ValidateTransactionID(id); err != nil {
		return "", false
	}
	return id, true
}
