package live

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/kbc-construction/site/pkg/counter"
	"github.com/kbc-construction/site/pkg/fade"
	"github.com/kbc-construction/site/pkg/motion"
	"github.com/kbc-construction/site/pkg/reveal"
	"github.com/kbc-construction/site/pkg/ui"
	"github.com/kbc-construction/site/pkg/vdom"
)

type createdSource struct {
	interval time.Duration
	src      *motion.ManualFrames
}

type manualTickers struct {
	clock   *motion.FakeClock
	created chan createdSource
}

func newManualTickers() *manualTickers {
	return &manualTickers{clock: motion.NewFakeClock(), created: make(chan createdSource, 16)}
}

func (m *manualTickers) source(d time.Duration) motion.FrameSource {
	src := motion.NewManualFrames(m.clock)
	m.created <- createdSource{interval: d, src: src}
	return src
}

func (m *manualTickers) next(t *testing.T) createdSource {
	t.Helper()
	select {
	case c := <-m.created:
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("no frame source created")
		return createdSource{}
	}
}

type countingRecorder struct {
	mu      sync.Mutex
	opened  int
	closed  int
	reveals map[string]int
	frames  int
	errors  map[string]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{reveals: map[string]int{}, errors: map[string]int{}}
}

func (r *countingRecorder) SessionOpened() { r.mu.Lock(); r.opened++; r.mu.Unlock() }
func (r *countingRecorder) SessionClosed() { r.mu.Lock(); r.closed++; r.mu.Unlock() }
func (r *countingRecorder) CounterFrame()  { r.mu.Lock(); r.frames++; r.mu.Unlock() }
func (r *countingRecorder) RevealFired(kind string) {
	r.mu.Lock()
	r.reveals[kind]++
	r.mu.Unlock()
}
func (r *countingRecorder) SocketError(kind string) {
	r.mu.Lock()
	r.errors[kind]++
	r.mu.Unlock()
}

type serverMessage struct {
	Type    string           `json:"type"`
	Regions []ObservedRegion `json:"regions"`
	Region  string           `json:"region"`
	Patches []ui.Patch       `json:"patches"`
	Index   int              `json:"index"`
}

type harness struct {
	hub     *Hub
	server  *httptest.Server
	tickers *manualTickers
	rec     *countingRecorder
}

func newHarness(t *testing.T, page func() Page, mutate func(*Config)) *harness {
	t.Helper()
	h := &harness{tickers: newManualTickers(), rec: newCountingRecorder()}
	cfg := Config{
		Ticker:           h.tickers.source,
		Recorder:         h.rec,
		HandshakeTimeout: 2 * time.Second,
		Logger:           slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	if mutate != nil {
		mutate(&cfg)
	}
	h.hub = NewHub(cfg, page)
	h.server = httptest.NewServer(h.hub)
	t.Cleanup(func() {
		h.hub.CloseAll()
		h.server.Close()
	})
	return h
}

func (h *harness) dial(t *testing.T) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(h.server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, msg ClientMessage) {
	t.Helper()
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func read(t *testing.T, conn *websocket.Conn) serverMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg serverMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	return msg
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func fadePage() Page {
	m := ui.NewMount()
	m.FadeIn(fade.Options{Delay: 200 * time.Millisecond}, vdom.P("hello"))
	return Page{Regions: m.Regions()}
}

func counterPage() Page {
	m := ui.NewMount()
	m.Counter(counter.Options{End: 100, Duration: time.Second, Suffix: "+"}, "")
	return Page{Regions: m.Regions()}
}

func TestFadeRevealOverSocket(t *testing.T) {
	h := newHarness(t, fadePage, nil)
	conn := h.dial(t)

	send(t, conn, ClientMessage{Type: TypeHello, Observer: true})
	obs := read(t, conn)
	if obs.Type != TypeObserve || len(obs.Regions) != 1 {
		t.Fatalf("first message = %+v, want observe", obs)
	}
	if obs.Regions[0] != (ObservedRegion{ID: "r1", Threshold: 0.1}) {
		t.Errorf("observed region = %+v", obs.Regions[0])
	}

	// Below threshold: nothing happens.
	send(t, conn, ClientMessage{Type: TypeIntersect, Region: "r1", Ratio: 0.05})
	send(t, conn, ClientMessage{Type: TypeIntersect, Region: "r1", Ratio: 0.2})

	unobs := read(t, conn)
	if unobs.Type != TypeUnobserve || unobs.Region != "r1" {
		t.Fatalf("message = %+v, want unobserve r1", unobs)
	}
	patch := read(t, conn)
	if patch.Type != TypePatch || len(patch.Patches) != 1 {
		t.Fatalf("message = %+v, want one patch", patch)
	}
	want := ui.StylePatch("r1", "opacity: 1; transform: translate(0, 0); transition: all 1000ms ease-out 200ms;")
	if patch.Patches[0] != want {
		t.Errorf("patch = %+v, want %+v", patch.Patches[0], want)
	}

	waitFor(t, "reveal metric", func() bool {
		h.rec.mu.Lock()
		defer h.rec.mu.Unlock()
		return h.rec.reveals["fade"] == 1
	})
}

func TestFailOpenWithoutObserver(t *testing.T) {
	h := newHarness(t, fadePage, nil)
	conn := h.dial(t)

	send(t, conn, ClientMessage{Type: TypeHello, Observer: false})
	msg := read(t, conn)
	if msg.Type != TypePatch {
		t.Fatalf("first message = %+v, want an immediate patch", msg)
	}
	if !strings.HasPrefix(msg.Patches[0].Value, "opacity: 1;") {
		t.Errorf("patch = %+v, want visible style", msg.Patches[0])
	}
}

func TestCounterOverSocket(t *testing.T) {
	h := newHarness(t, counterPage, nil)
	conn := h.dial(t)

	send(t, conn, ClientMessage{Type: TypeHello, Observer: true})
	if obs := read(t, conn); obs.Regions[0].Threshold != 0.3 {
		t.Fatalf("observe = %+v, want threshold 0.3", obs)
	}

	send(t, conn, ClientMessage{Type: TypeIntersect, Region: "r1", Ratio: 0.25})
	send(t, conn, ClientMessage{Type: TypeIntersect, Region: "r1", Ratio: 0.3})
	if msg := read(t, conn); msg.Type != TypeUnobserve {
		t.Fatalf("message = %+v, want unobserve", msg)
	}

	frames := h.tickers.next(t)
	if frames.interval != motion.DefaultFrameInterval {
		t.Errorf("frame interval = %v, want %v", frames.interval, motion.DefaultFrameInterval)
	}

	frames.src.Step()
	h.tickers.clock.Advance(500 * time.Millisecond)
	frames.src.Step()
	h.tickers.clock.Advance(500 * time.Millisecond)
	frames.src.Step()

	for _, want := range []string{"0+", "93+", "100+"} {
		msg := read(t, conn)
		if msg.Type != TypePatch || len(msg.Patches) != 1 {
			t.Fatalf("message = %+v, want patch", msg)
		}
		if got := msg.Patches[0]; got != ui.TextPatch("r1-value", want) {
			t.Errorf("patch = %+v, want text %q", got, want)
		}
	}

	waitFor(t, "frame source stop", frames.src.Stopped)
}

func TestCloseStopsRunningCounter(t *testing.T) {
	h := newHarness(t, counterPage, nil)
	conn := h.dial(t)

	send(t, conn, ClientMessage{Type: TypeHello})
	frames := h.tickers.next(t)

	frames.src.Step()
	if msg := read(t, conn); msg.Type != TypePatch {
		t.Fatalf("message = %+v, want first counter frame", msg)
	}

	conn.Close()
	waitFor(t, "frame source stop", frames.src.Stopped)
	waitFor(t, "session removal", func() bool { return h.hub.Count() == 0 })
}

func TestCarouselAdvances(t *testing.T) {
	page := func() Page { return Page{Slides: 3} }
	h := newHarness(t, page, func(c *Config) { c.CarouselInterval = 5 * time.Second })
	conn := h.dial(t)

	send(t, conn, ClientMessage{Type: TypeHello, Observer: true})
	carousel := h.tickers.next(t)
	if carousel.interval != 5*time.Second {
		t.Fatalf("carousel interval = %v", carousel.interval)
	}

	for _, want := range []int{1, 2, 0} {
		carousel.src.Step()
		msg := read(t, conn)
		if msg.Type != TypeSlide || msg.Index != want {
			t.Errorf("message = %+v, want slide %d", msg, want)
		}
	}
}

func TestHandshakeRequiresHello(t *testing.T) {
	h := newHarness(t, fadePage, nil)
	conn := h.dial(t)

	send(t, conn, ClientMessage{Type: TypeIntersect, Region: "r1", Ratio: 1})
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatal("expected the server to close the connection")
	}
}

func TestMalformedFramesAreDropped(t *testing.T) {
	h := newHarness(t, fadePage, nil)
	conn := h.dial(t)

	if err := conn.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatal(err)
	}
	send(t, conn, ClientMessage{Type: TypeHello, Observer: true})
	if msg := read(t, conn); msg.Type != TypeObserve {
		t.Fatalf("message = %+v, want observe", msg)
	}

	send(t, conn, ClientMessage{Type: TypeIntersect, Region: "nope", Ratio: 1})
	send(t, conn, ClientMessage{Type: TypeIntersect, Region: "r1", Ratio: 1})
	if msg := read(t, conn); msg.Type != TypeUnobserve {
		t.Fatalf("message = %+v, want unobserve", msg)
	}

	h.rec.mu.Lock()
	defer h.rec.mu.Unlock()
	if h.rec.errors["decode"] != 1 {
		t.Errorf("decode errors = %d, want 1", h.rec.errors["decode"])
	}
}

func TestSessionLimit(t *testing.T) {
	h := newHarness(t, fadePage, func(c *Config) { c.MaxSessions = 1 })
	h.dial(t)

	url := "ws" + strings.TrimPrefix(h.server.URL, "http")
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatal("second connection should be rejected")
	}
	if resp == nil || resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("response = %v, want 503", resp)
	}
}

func TestCloseAll(t *testing.T) {
	h := newHarness(t, fadePage, nil)
	conn := h.dial(t)
	send(t, conn, ClientMessage{Type: TypeHello, Observer: true})
	read(t, conn)

	waitFor(t, "session registration", func() bool { return h.hub.Count() == 1 })
	h.hub.CloseAll()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
		t.Errorf("read error = %v, want normal close", err)
	}
	waitFor(t, "session removal", func() bool { return h.hub.Count() == 0 })

	url := "ws" + strings.TrimPrefix(h.server.URL, "http")
	if _, _, err := websocket.DefaultDialer.Dial(url, nil); err == nil {
		t.Error("closed hub should reject new connections")
	}
}

func TestSocketObserver(t *testing.T) {
	var stopped []reveal.Region
	o := NewSocketObserver(true, func(r reveal.Region) { stopped = append(stopped, r) })

	var got []float64
	stop, err := o.Observe("r1", func(ratio float64) { got = append(got, ratio) })
	if err != nil {
		t.Fatal(err)
	}

	o.Deliver("r1", 1.5)
	o.Deliver("r1", -1)
	if o.Deliver("r2", 0.5) {
		t.Error("unknown region should not be delivered")
	}
	if len(got) != 2 || got[0] != 1 || got[1] != 0 {
		t.Errorf("ratios = %v, want clamped [1 0]", got)
	}

	stop()
	stop()
	if o.Watching("r1") || len(stopped) != 1 {
		t.Errorf("stop: watching=%v stopped=%v", o.Watching("r1"), stopped)
	}

	if _, err := NewSocketObserver(false, nil).Observe("r1", func(float64) {}); err != reveal.ErrUnavailable {
		t.Errorf("unavailable Observe error = %v", err)
	}
}

func TestDecodeClientMessage(t *testing.T) {
	msg, err := DecodeClientMessage([]byte(`{"type":"intersect","region":"r2","ratio":0.4}`))
	if err != nil || msg.Region != "r2" || msg.Ratio != 0.4 {
		t.Errorf("decode = %+v, %v", msg, err)
	}
	if _, err := DecodeClientMessage([]byte(`{"type":"patch"}`)); err == nil {
		t.Error("server message types must be rejected")
	}
	if _, err := DecodeClientMessage([]byte(`{`)); err == nil {
		t.Error("invalid JSON must be rejected")
	}
}

func TestSlideMessageKeepsZeroIndex(t *testing.T) {
	data, err := json.Marshal(SlideMessage{Type: TypeSlide})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"type":"slide","index":0}` {
		t.Errorf("encoded = %s", data)
	}
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"https://kbcproperties.com/"})
	tests := []struct {
		origin, host string
		want         bool
	}{
		{"", "example.com", true},
		{"https://kbcproperties.com", "internal:8080", true},
		{"http://localhost:8080", "localhost:8080", true},
		{"https://evil.example", "localhost:8080", false},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/_live", nil)
		r.Host = tt.host
		if tt.origin != "" {
			r.Header.Set("Origin", tt.origin)
		}
		if got := check(r); got != tt.want {
			t.Errorf("origin %q host %q = %v, want %v", tt.origin, tt.host, got, tt.want)
		}
	}
}

func TestClientScriptHeroParallax(t *testing.T) {
	for _, want := range []string{
		`document.querySelector(".hero-slides")`,
		`window.addEventListener("scroll"`,
		`{ passive: true }`,
		`"translateY(" + window.scrollY * 0.2 + "px)"`,
	} {
		if !strings.Contains(ClientScript, want) {
			t.Errorf("client script missing %q", want)
		}
	}
	// Parallax runs before the socket is opened, so static exports get it too.
	if !strings.Contains(ClientScript, "parallax();\n    connect();") {
		t.Error("parallax should start before connect")
	}
}
