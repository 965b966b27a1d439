package live

import (
	"log/slog"
	"time"

	"github.com/kbc-construction/site/pkg/motion"
)

// Config configures live sessions.
type Config struct {
	// FrameInterval is the counter frame period.
	// Default: 16ms.
	FrameInterval time.Duration

	// CarouselInterval is how long each hero slide is shown.
	// Default: 5s.
	CarouselInterval time.Duration

	// HandshakeTimeout bounds the wait for the client hello.
	// Default: 10s.
	HandshakeTimeout time.Duration

	// ReadTimeout is the maximum time between client frames, pongs included.
	// Default: 60s.
	ReadTimeout time.Duration

	// WriteTimeout bounds each socket write.
	// Default: 10s.
	WriteTimeout time.Duration

	// HeartbeatInterval is the ping period. Must be less than ReadTimeout.
	// Default: 30s.
	HeartbeatInterval time.Duration

	// MaxMessageSize is the largest client frame accepted.
	// Default: 4KB.
	MaxMessageSize int64

	// MaxSessions limits concurrent sessions. Zero means unlimited.
	// Default: 1000.
	MaxSessions int

	// SendQueue is the number of outbound frames buffered per session.
	// Default: 64.
	SendQueue int

	// AllowedOrigins lists the origins allowed to open a socket. Empty means
	// same-origin only.
	AllowedOrigins []string

	// Ticker creates frame and carousel sources. Tests inject manual sources.
	// Default: motion.NewFrameTicker.
	Ticker func(time.Duration) motion.FrameSource

	// Recorder receives session metrics. Default: no-op.
	Recorder Recorder

	// Logger is the base logger. Default: slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() Config {
	return Config{
		FrameInterval:     motion.DefaultFrameInterval,
		CarouselInterval:  5 * time.Second,
		HandshakeTimeout:  10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      10 * time.Second,
		HeartbeatInterval: 30 * time.Second,
		MaxMessageSize:    4 * 1024,
		MaxSessions:       1000,
		SendQueue:         64,
	}
}

// withDefaults fills unset fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.FrameInterval <= 0 {
		c.FrameInterval = d.FrameInterval
	}
	if c.CarouselInterval <= 0 {
		c.CarouselInterval = d.CarouselInterval
	}
	if c.HandshakeTimeout <= 0 {
		c.HandshakeTimeout = d.HandshakeTimeout
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = d.ReadTimeout
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = d.WriteTimeout
	}
	if c.HeartbeatInterval <= 0 {
		c.HeartbeatInterval = d.HeartbeatInterval
	}
	if c.MaxMessageSize <= 0 {
		c.MaxMessageSize = d.MaxMessageSize
	}
	if c.MaxSessions < 0 {
		c.MaxSessions = 0
	}
	if c.SendQueue <= 0 {
		c.SendQueue = d.SendQueue
	}
	if c.Ticker == nil {
		c.Ticker = func(d time.Duration) motion.FrameSource { return motion.NewFrameTicker(d) }
	}
	if c.Recorder == nil {
		c.Recorder = nopRecorder{}
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// Recorder observes session activity. Implementations must be safe for
// concurrent use.
type Recorder interface {
	SessionOpened()
	SessionClosed()
	RevealFired(kind string)
	CounterFrame()
	SocketError(kind string)
}

type nopRecorder struct{}

func (nopRecorder) SessionOpened()     {}
func (nopRecorder) SessionClosed()     {}
func (nopRecorder) RevealFired(string) {}
func (nopRecorder) CounterFrame()      {}
func (nopRecorder) SocketError(string) {}
