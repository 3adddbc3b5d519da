package scanner

import (
	"context"
	"sync"

	"ctlpay/internal/errors"
)

// ErrSourceClosed is returned by Next once the source has been closed.
var ErrSourceClosed = errors.ErrDeviceUnavailable.WithMessage("source de frames fermée")

const defaultFrameBuffer = 16

// ChannelSource is a FrameSource fed programmatically, typically by the
// HTTP layer relaying frames decoded by the rendering device.
type ChannelSource struct {
	mu     sync.Mutex
	frames chan []byte
	done   chan struct{}
	closed bool
}

func NewChannelSource(buffer int) *ChannelSource {
	if buffer <= 0 {
		buffer = defaultFrameBuffer
	}
	return &ChannelSource{
		frames: make(chan []byte, buffer),
		done:   make(chan struct{}),
	}
}

// Offer submits a frame without blocking. It reports false when the source
// is closed or the buffer is full; dropped frames are fine, the device
// keeps decoding.
func (c *ChannelSource) Offer(frame []byte) bool {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return false
	}

	select {
	case c.frames <- frame:
		return true
	default:
		return false
	}
}

func (c *ChannelSource) Next(ctx context.Context) ([]byte, error) {
	select {
	case frame := <-c.frames:
		return frame, nil
	case <-c.done:
		return nil, ErrSourceClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *ChannelSource) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.done)
	}
	return nil
}

// Hub routes offered frames to the source of the current scan session.
// Each session gets a fresh source so frames from an abandoned session
// cannot leak into the next one.
type Hub struct {
	mu      sync.Mutex
	current *ChannelSource
	buffer  int
}

func NewHub(buffer int) *Hub {
	return &Hub{buffer: buffer}
}

// Open creates the source for a new session and makes it current.
func (h *Hub) Open() (FrameSource, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = NewChannelSource(h.buffer)
	return h.current, nil
}

// Offer relays a frame to the current session, if any.
func (h *Hub) Offer(frame []byte) bool {
	h.mu.Lock()
	source := h.current
	h.mu.Unlock()
	if source == nil {
		return false
	}
	return source.Offer(frame)
}
