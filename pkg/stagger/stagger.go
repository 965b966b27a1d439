// Package stagger plans cascading reveals for a group of siblings. One
// trigger governs the whole group; each element child gets a transition delay
// proportional to its position.
package stagger

import (
	"time"

	"github.com/kbc-construction/site/pkg/motion"
	"github.com/kbc-construction/site/pkg/reveal"
)

const (
	// DefaultStep is the delay increment between consecutive children.
	DefaultStep = 100 * time.Millisecond

	// Distance is the hidden downward offset in pixels.
	Distance = 30

	// Duration is the length of each child's transition.
	Duration = 600 * time.Millisecond

	// Threshold is the visible fraction of the group that triggers the reveal.
	Threshold = reveal.FadeThreshold
)

// Options configures a stagger group.
type Options struct {
	// Step is the per-index delay increment. Zero means DefaultStep; use
	// NoStep for simultaneous reveals.
	Step time.Duration

	// Class is passed through to the group wrapper.
	Class string
}

// NoStep requests a zero delay increment.
const NoStep time.Duration = -1

// EffectiveStep resolves the configured increment.
func (o Options) EffectiveStep() time.Duration {
	switch {
	case o.Step == 0:
		return DefaultStep
	case o.Step < 0:
		return 0
	default:
		return o.Step
	}
}

// TriggerConfig returns the trigger configuration stagger groups use.
func TriggerConfig() reveal.Config {
	return reveal.Config{Threshold: Threshold, Once: true}
}

// Child describes one sibling for planning purposes.
type Child struct {
	// Element is false for content that cannot carry a style, such as bare
	// text. Such children pass through unanimated.
	Element bool
}

// ChildState is the explicit animation record for one sibling.
type ChildState struct {
	Index      int
	Animated   bool
	Opacity    float64
	OffsetY    float64
	Transition motion.Transition
}

// Plan computes the state of every child. Index is the child's position among
// all siblings, so a skipped text node still consumes a delay slot.
func Plan(children []Child, visible bool, opts Options) []ChildState {
	step := opts.EffectiveStep()
	states := make([]ChildState, len(children))
	for i, c := range children {
		states[i] = ChildState{Index: i}
		if !c.Element {
			continue
		}
		states[i] = ChildFor(i, visible, step)
	}
	return states
}

// ChildFor computes the state of the element child at index i.
func ChildFor(i int, visible bool, step time.Duration) ChildState {
	s := ChildState{
		Index:    i,
		Animated: true,
		Transition: motion.Transition{
			Duration: Duration,
			Delay:    time.Duration(i) * step,
			Easing:   "ease-out",
		},
	}
	if visible {
		s.Opacity = 1
	} else {
		s.OffsetY = Distance
	}
	return s
}

// Style renders the child state as CSS declarations. Unanimated children have
// no style.
func (s ChildState) Style() motion.Declarations {
	if !s.Animated {
		return nil
	}
	return motion.Declarations{}.
		Add("opacity", motion.FormatOpacity(s.Opacity)).
		Add("transform", motion.Offset{Y: s.OffsetY}.Transform()).
		Add("transition", s.Transition.CSS())
}
