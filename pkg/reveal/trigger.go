package reveal

import (
	"errors"
	"sync"
)

// Region is a handle to an observed DOM region, the element id.
type Region string

// ErrUnavailable reports that no viewport intersection primitive exists for
// the region. Triggers treat it as "visible" rather than hiding content.
var ErrUnavailable = errors.New("reveal: visibility observation unavailable")

// Observer is the capability to watch a region's intersection ratio with the
// viewport. Observe calls fn with each new ratio in [0, 1] until stop is
// called. Calls to fn for one region are never concurrent.
type Observer interface {
	Observe(region Region, fn func(ratio float64)) (stop func(), err error)
}

// Thresholds used by the page's reveal wrappers.
const (
	FadeThreshold    = 0.1
	CounterThreshold = 0.3
)

// Config controls when a Trigger fires.
type Config struct {
	// Threshold is the fraction of the region that must be visible.
	// Values outside [0, 1] are clamped. A zero threshold fires on any
	// non-zero intersection.
	Threshold float64

	// Once keeps the trigger visible forever after it first fires and stops
	// observing.
	Once bool
}

// Trigger tracks whether a region has been seen in the viewport.
type Trigger struct {
	region Region
	cfg    Config

	mu        sync.Mutex
	visible   bool
	fired     bool
	closed    bool
	failOpen  bool
	stop      func()
	listeners []func(visible bool)
}

// NewTrigger starts observing region. A nil observer or an Observe error
// leaves the trigger visible from the start.
func NewTrigger(obs Observer, region Region, cfg Config) *Trigger {
	cfg.Threshold = clampThreshold(cfg.Threshold)
	t := &Trigger{region: region, cfg: cfg}

	if obs == nil {
		t.openFail()
		return t
	}

	stop, err := obs.Observe(region, t.update)
	if err != nil {
		t.openFail()
		return t
	}

	t.mu.Lock()
	// A once-trigger can fire synchronously inside Observe; stop right away.
	if t.closed || (t.cfg.Once && t.fired) {
		t.mu.Unlock()
		if stop != nil {
			stop()
		}
		return t
	}
	t.stop = stop
	t.mu.Unlock()
	return t
}

func (t *Trigger) openFail() {
	t.visible = true
	t.fired = true
	t.failOpen = true
}

// Region returns the observed region.
func (t *Trigger) Region() Region { return t.region }

// Config returns the effective configuration.
func (t *Trigger) Config() Config { return t.cfg }

// Visible reports the current flag.
func (t *Trigger) Visible() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.visible
}

// FailedOpen reports whether the trigger is visible because observation was
// unavailable.
func (t *Trigger) FailedOpen() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.failOpen
}

// OnChange registers fn to be called on every flag transition. Listeners run
// on the goroutine delivering the ratio.
func (t *Trigger) OnChange(fn func(visible bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	t.listeners = append(t.listeners, fn)
}

// Close stops observing and drops listeners. It is safe to call twice.
func (t *Trigger) Close() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.closed = true
	stop := t.stop
	t.stop = nil
	t.listeners = nil
	t.mu.Unlock()

	if stop != nil {
		stop()
	}
}

func (t *Trigger) update(ratio float64) {
	t.mu.Lock()
	if t.closed || (t.cfg.Once && t.fired) {
		t.mu.Unlock()
		return
	}

	next := t.reached(ratio)
	if next == t.visible {
		t.mu.Unlock()
		return
	}
	t.visible = next

	var stop func()
	if next {
		t.fired = true
		if t.cfg.Once {
			stop = t.stop
			t.stop = nil
		}
	}
	listeners := append([]func(bool){}, t.listeners...)
	t.mu.Unlock()

	if stop != nil {
		stop()
	}
	for _, fn := range listeners {
		fn(next)
	}
}

func (t *Trigger) reached(ratio float64) bool {
	if t.cfg.Threshold == 0 {
		return ratio > 0
	}
	return ratio >= t.cfg.Threshold
}

func clampThreshold(v float64) float64 {
	if v < 0 || v != v {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
