package live

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/kbc-construction/site/pkg/counter"
	"github.com/kbc-construction/site/pkg/reveal"
	"github.com/kbc-construction/site/pkg/site"
	"github.com/kbc-construction/site/pkg/ui"
)

// Page describes what a session drives: the regions mounted by the page
// build that produced the HTML, and the number of hero slides.
type Page struct {
	Regions []ui.RegionSpec
	Slides  int
}

// Session is one connected page. Inbound messages and carousel ticks are
// handled on a single event loop goroutine; running counters step on their
// own frame sources and only ever enqueue text patches.
type Session struct {
	ID string

	conn     *websocket.Conn
	cfg      Config
	page     Page
	logger   *slog.Logger
	recorder Recorder

	ctx    context.Context
	cancel context.CancelFunc

	inbound  chan ClientMessage
	outbound chan []byte
	done     chan struct{}

	closed    atomic.Bool
	closeOnce sync.Once

	// Owned by the event loop.
	observer  *SocketObserver
	triggers  []*reveal.Trigger
	animators map[reveal.Region]*counter.Animator
	carousel  site.Carousel
	slide     int

	counters sync.WaitGroup
	running  atomic.Int32
	sent     atomic.Uint64
}

func generateSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("crypto/rand failed: %v", err))
	}
	return hex.EncodeToString(b)
}

// newSession creates a session on an upgraded connection. cfg must already
// have its defaults applied.
func newSession(conn *websocket.Conn, page Page, cfg Config) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	id := generateSessionID()
	return &Session{
		ID:        id,
		conn:      conn,
		cfg:       cfg,
		page:      page,
		logger:    cfg.Logger.With("component", "live", "session_id", id),
		recorder:  cfg.Recorder,
		ctx:       ctx,
		cancel:    cancel,
		inbound:   make(chan ClientMessage, 16),
		outbound:  make(chan []byte, cfg.SendQueue),
		done:      make(chan struct{}),
		animators: make(map[reveal.Region]*counter.Animator),
		carousel:  site.NewCarousel(page.Slides, cfg.CarouselInterval),
	}
}

// Run serves the session until the connection closes. It returns the reason
// the session ended, or nil for a normal close.
func (s *Session) Run() error {
	go s.readLoop()
	go s.writeLoop()

	err := s.eventLoop()
	s.Close()
	s.counters.Wait()
	return err
}

// Done returns a channel closed when the session ends.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// IsClosed reports whether the session has been closed.
func (s *Session) IsClosed() bool {
	return s.closed.Load()
}

// RunningCounters returns the number of counters currently animating.
func (s *Session) RunningCounters() int {
	return int(s.running.Load())
}

// Close ends the session. Pending frames are dropped; nothing is written to
// the socket afterwards except the close frame.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		s.cancel()
		close(s.done)

		s.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second),
		)
		s.conn.Close()

		s.logger.Info("session closed", "messages_sent", s.sent.Load())
	})
}

// readLoop decodes client frames and hands them to the event loop.
func (s *Session) readLoop() {
	defer s.Close()

	s.conn.SetReadLimit(s.cfg.MaxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(s.cfg.HandshakeTimeout))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.recorder.SocketError("read")
				s.logger.Warn("read error", "error", err)
			}
			return
		}
		s.conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))

		msg, err := DecodeClientMessage(data)
		if err != nil {
			s.recorder.SocketError("decode")
			s.logger.Debug("dropping client frame", "error", err)
			continue
		}

		select {
		case s.inbound <- msg:
		case <-s.done:
			return
		}
	}
}

// writeLoop is the only goroutine writing data frames. It also sends
// heartbeat pings.
func (s *Session) writeLoop() {
	ticker := time.NewTicker(s.cfg.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case data := <-s.outbound:
			if s.closed.Load() {
				return
			}
			s.conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
			if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				s.recorder.SocketError("write")
				s.logger.Warn("write error", "error", err)
				s.Close()
				return
			}
			s.sent.Add(1)

		case <-ticker.C:
			deadline := time.Now().Add(s.cfg.WriteTimeout)
			if err := s.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				s.recorder.SocketError("ping")
				s.Close()
				return
			}

		case <-s.done:
			return
		}
	}
}

// eventLoop waits for the hello, mounts the page's triggers and then
// serialises intersection updates and carousel ticks until close.
func (s *Session) eventLoop() error {
	hello, err := s.awaitHello()
	if err != nil {
		return err
	}

	s.mount(hello.Observer)
	defer s.unmount()

	var slides <-chan time.Time
	if s.carousel.Cycles() {
		src := s.cfg.Ticker(s.carousel.Interval)
		defer src.Stop()
		slides = src.Frames()
	}

	for {
		select {
		case msg := <-s.inbound:
			s.safeHandle(msg)

		case <-slides:
			s.slide = s.carousel.Next(s.slide)
			s.send(SlideMessage{Type: TypeSlide, Index: s.slide})

		case <-s.done:
			return nil
		}
	}
}

func (s *Session) awaitHello() (ClientMessage, error) {
	timer := time.NewTimer(s.cfg.HandshakeTimeout)
	defer timer.Stop()

	select {
	case msg := <-s.inbound:
		if msg.Type != TypeHello {
			return ClientMessage{}, &SessionError{SessionID: s.ID, Op: "handshake", Err: ErrHandshake}
		}
		return msg, nil
	case <-timer.C:
		return ClientMessage{}, &SessionError{SessionID: s.ID, Op: "handshake", Err: context.DeadlineExceeded}
	case <-s.done:
		return ClientMessage{}, nil
	}
}

// mount creates one trigger per region. Regions whose trigger is visible from
// the start (observation unavailable) are revealed right away; the rest are
// sent to the client to observe.
func (s *Session) mount(observerAvailable bool) {
	s.observer = NewSocketObserver(observerAvailable, s.unobserve)

	var observed []ObservedRegion
	var revealed []ui.RegionSpec
	for _, r := range s.page.Regions {
		r := r
		t := reveal.NewTrigger(s.observer, r.ID, r.Trigger)
		s.triggers = append(s.triggers, t)
		if r.Kind == ui.KindCounter {
			s.animators[r.ID] = counter.NewAnimator(r.Counter, t)
		}

		if t.Visible() {
			revealed = append(revealed, r)
			continue
		}
		t.OnChange(func(visible bool) {
			if visible {
				s.reveal(r)
			}
		})
		observed = append(observed, ObservedRegion{ID: string(r.ID), Threshold: t.Config().Threshold})
	}

	s.logger.Debug("mounted",
		"regions", len(s.page.Regions),
		"observed", len(observed),
		"observer", observerAvailable)

	if len(observed) > 0 {
		s.send(ObserveMessage{Type: TypeObserve, Regions: observed})
	}
	for _, r := range revealed {
		s.reveal(r)
	}
}

// unmount stops every trigger and cancels running counters.
func (s *Session) unmount() {
	s.cancel()
	for _, t := range s.triggers {
		t.Close()
	}
	s.triggers = nil
}

func (s *Session) safeHandle(msg ClientMessage) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("handler panic", "panic", r, "stack", string(debug.Stack()))
		}
	}()
	s.handle(msg)
}

func (s *Session) handle(msg ClientMessage) {
	switch msg.Type {
	case TypeIntersect:
		if !s.observer.Deliver(reveal.Region(msg.Region), msg.Ratio) {
			s.logger.Debug("intersect for unobserved region", "region", msg.Region)
		}
	case TypeHello:
		s.logger.Debug("duplicate hello ignored")
	}
}

// reveal moves a fired region into its visible state.
func (s *Session) reveal(r ui.RegionSpec) {
	s.recorder.RevealFired(r.Kind.String())

	if r.Kind == ui.KindCounter {
		s.startCounter(r)
		return
	}
	if patches := ui.RevealPatches(r); len(patches) > 0 {
		s.send(PatchMessage{Type: TypePatch, Patches: patches})
	}
}

// startCounter animates a counter on its own frame source. The source is
// stopped as soon as the counter settles or the session closes.
func (s *Session) startCounter(r ui.RegionSpec) {
	a, ok := s.animators[r.ID]
	if !ok || a.Phase() != counter.Idle {
		return
	}
	frames := s.cfg.Ticker(s.cfg.FrameInterval)

	s.counters.Add(1)
	s.running.Add(1)
	go func() {
		defer s.counters.Done()
		defer s.running.Add(-1)

		err := counter.Run(s.ctx, a, frames, func(f counter.Frame) {
			s.recorder.CounterFrame()
			s.send(PatchMessage{Type: TypePatch, Patches: []ui.Patch{ui.CounterPatch(r, f.Text)}})
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			s.logger.Warn("counter stopped", "region", r.ID, "error", err)
		}
	}()
}

func (s *Session) unobserve(region reveal.Region) {
	s.send(UnobserveMessage{Type: TypeUnobserve, Region: string(region)})
}

// send queues a message for the write loop. A client that cannot keep up is
// disconnected rather than sent a partial stream of patches.
func (s *Session) send(v any) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	data, err := encode(v)
	if err != nil {
		return err
	}

	select {
	case s.outbound <- data:
		return nil
	case <-s.done:
		return ErrSessionClosed
	default:
		s.recorder.SocketError("queue_full")
		s.logger.Warn("send queue full, closing session")
		s.Close()
		return &SessionError{SessionID: s.ID, Op: "send", Err: ErrSendQueueFull}
	}
}
