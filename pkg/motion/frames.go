package motion

import (
	"sync"
	"time"
)

// DefaultFrameInterval approximates a 60Hz display refresh.
const DefaultFrameInterval = 16 * time.Millisecond

// FrameSource delivers frame timestamps from the host scheduler.
//
// Frames are delivered in order on a single channel. After Stop returns no
// further frames are delivered and the channel is never closed, so callers
// select on it alongside their own cancellation.
type FrameSource interface {
	Frames() <-chan time.Time
	Stop()
}

// FrameTicker is the production FrameSource backed by time.Ticker.
type FrameTicker struct {
	ticker *time.Ticker
}

// NewFrameTicker starts a ticker firing every interval. A non-positive
// interval uses DefaultFrameInterval.
func NewFrameTicker(interval time.Duration) *FrameTicker {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &FrameTicker{ticker: time.NewTicker(interval)}
}

// Frames returns the tick channel.
func (f *FrameTicker) Frames() <-chan time.Time { return f.ticker.C }

// Stop stops the ticker.
func (f *FrameTicker) Stop() { f.ticker.Stop() }

// ManualFrames is a FrameSource driven by tests. Each call to Step delivers
// one frame stamped with the clock's current time.
type ManualFrames struct {
	clock Clock
	ch    chan time.Time

	mu      sync.Mutex
	stopped bool
}

// NewManualFrames returns a manual source reading timestamps from clock.
func NewManualFrames(clock Clock) *ManualFrames {
	return &ManualFrames{clock: clock, ch: make(chan time.Time, 64)}
}

// Frames returns the frame channel.
func (m *ManualFrames) Frames() <-chan time.Time { return m.ch }

// Step queues one frame. It reports false once the source is stopped.
func (m *ManualFrames) Step() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stopped {
		return false
	}
	m.ch <- m.clock.Now()
	return true
}

// Stop prevents further frames.
func (m *ManualFrames) Stop() {
	m.mu.Lock()
	m.stopped = true
	m.mu.Unlock()
}

// Stopped reports whether Stop has been called.
func (m *ManualFrames) Stopped() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopped
}
