// Package counter animates an integer display from 0 to a target value with a
// quartic ease-out, starting the first time its region becomes visible.
//
// The interpolation is a pure stepping function (Advance) so it can be tested
// without a scheduler. Animator wraps it in the Idle -> Running -> Settled
// state machine, and Run drives an Animator from a host frame source.
package counter

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/kbc-construction/site/pkg/motion"
	"github.com/kbc-construction/site/pkg/reveal"
)

const (
	// DefaultDuration is the animation length when none is configured.
	DefaultDuration = 2000 * time.Millisecond

	// Threshold is the visible fraction that starts the count.
	Threshold = reveal.CounterThreshold
)

// Options configures a counter.
type Options struct {
	End      int
	Duration time.Duration
	Suffix   string
}

// TriggerConfig returns the trigger configuration counters use.
func TriggerConfig() reveal.Config {
	return reveal.Config{Threshold: Threshold, Once: true}
}

// EffectiveDuration returns Duration, or DefaultDuration when it is not
// positive.
func (o Options) EffectiveDuration() time.Duration {
	if o.Duration <= 0 {
		return DefaultDuration
	}
	return o.Duration
}

// Value returns the displayed value at progress p in [0, 1]. At p >= 1 the
// value is exactly end.
func Value(p float64, end int) int {
	if p >= 1 {
		return end
	}
	return int(math.Floor(motion.EaseOutQuart(p) * float64(end)))
}

// Advance returns the displayed value after elapsed time and whether the
// animation has settled.
func (o Options) Advance(elapsed time.Duration) (int, bool) {
	p := motion.Clamp01(float64(elapsed) / float64(o.EffectiveDuration()))
	return Value(p, o.End), p >= 1
}

// Format renders value with the configured suffix.
func (o Options) Format(value int) string {
	return strconv.Itoa(value) + o.Suffix
}

// Phase is the animator state.
type Phase uint8

const (
	Idle Phase = iota
	Running
	Settled
	Stopped
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Settled:
		return "settled"
	case Stopped:
		return "stopped"
	default:
		return "Phase(" + strconv.Itoa(int(p)) + ")"
	}
}

// Visibility reports whether the counter's region has been seen.
// *reveal.Trigger satisfies it.
type Visibility interface {
	Visible() bool
}

// Frame is one rendered counter update.
type Frame struct {
	Value int
	Text  string
	Done  bool
}

// Animator holds the state of one counter instance. It is not safe for
// concurrent use; the owner steps it from a single goroutine.
type Animator struct {
	opts    Options
	vis     Visibility
	phase   Phase
	value   int
	started time.Time
}

// NewAnimator returns an idle animator gated on vis. A nil vis is treated as
// always visible.
func NewAnimator(opts Options, vis Visibility) *Animator {
	return &Animator{opts: opts, vis: vis}
}

// Options returns the counter configuration.
func (a *Animator) Options() Options { return a.opts }

// Phase returns the current state.
func (a *Animator) Phase() Phase { return a.phase }

// Value returns the currently displayed number.
func (a *Animator) Value() int { return a.value }

// Display returns the currently displayed text.
func (a *Animator) Display() string { return a.opts.Format(a.value) }

// Started returns the timestamp captured on the first running frame.
func (a *Animator) Started() (time.Time, bool) {
	return a.started, a.phase != Idle && !a.started.IsZero()
}

// Tick processes one animation frame at now. It reports false when nothing
// changed: before visibility, after settling, or after Stop.
func (a *Animator) Tick(now time.Time) (Frame, bool) {
	switch a.phase {
	case Idle:
		if a.vis != nil && !a.vis.Visible() {
			return Frame{}, false
		}
		a.phase = Running
		a.started = now
	case Settled, Stopped:
		return Frame{}, false
	}

	value, done := a.opts.Advance(now.Sub(a.started))
	a.value = value
	if done {
		a.phase = Settled
	}
	return Frame{Value: value, Text: a.opts.Format(value), Done: done}, true
}

// Stop cancels the animation. Later ticks are ignored.
func (a *Animator) Stop() {
	if a.phase != Settled {
		a.phase = Stopped
	}
}

// Run steps a from frames until it settles or ctx is done. onFrame is called
// for every frame that changes the display, in frame order, on the calling
// goroutine. frames is stopped before Run returns, and onFrame is never called
// after ctx is done.
func Run(ctx context.Context, a *Animator, frames motion.FrameSource, onFrame func(Frame)) error {
	defer frames.Stop()
	for {
		select {
		case <-ctx.Done():
			a.Stop()
			return ctx.Err()
		case now := <-frames.Frames():
			if ctx.Err() != nil {
				a.Stop()
				return ctx.Err()
			}
			f, ok := a.Tick(now)
			if ok && onFrame != nil {
				onFrame(f)
			}
			if a.phase == Settled || a.phase == Stopped {
				return nil
			}
		}
	}
}
