// Package fade computes the render state of a fade-in reveal: an element that
// starts transparent and offset by 50px, then settles into place the first
// time it scrolls into view.
package fade

import (
	"time"

	"github.com/kbc-construction/site/pkg/motion"
	"github.com/kbc-construction/site/pkg/reveal"
)

const (
	// Distance is the hidden offset in pixels.
	Distance = 50

	// Duration is the length of the reveal transition.
	Duration = 1000 * time.Millisecond

	// Threshold is the visible fraction that triggers the reveal.
	Threshold = reveal.FadeThreshold
)

// Options configures a fade reveal.
type Options struct {
	// Delay postpones the start of the transition. Negative values are
	// treated as zero.
	Delay time.Duration

	// Direction is the side the element arrives from. The zero value is Up.
	Direction motion.Direction

	// Class is passed through to the wrapper element.
	Class string
}

// TriggerConfig returns the trigger configuration fade reveals use.
func TriggerConfig() reveal.Config {
	return reveal.Config{Threshold: Threshold, Once: true}
}

// State is the render state of a fade reveal at one instant.
type State struct {
	Visible    bool
	Opacity    float64
	Offset     motion.Offset
	Transition motion.Transition
}

// HiddenOffset returns the pre-reveal offset for d. An element arriving from
// below (Up) starts 50px down, and so on.
func HiddenOffset(d motion.Direction) motion.Offset {
	switch d {
	case motion.Down:
		return motion.Offset{Y: -Distance}
	case motion.Left:
		return motion.Offset{X: Distance}
	case motion.Right:
		return motion.Offset{X: -Distance}
	default:
		return motion.Offset{Y: Distance}
	}
}

// StateFor derives the render state from the trigger flag and options.
func StateFor(visible bool, opts Options) State {
	delay := opts.Delay
	if delay < 0 {
		delay = 0
	}
	s := State{
		Visible: visible,
		Transition: motion.Transition{
			Duration: Duration,
			Delay:    delay,
			Easing:   "ease-out",
		},
	}
	if visible {
		s.Opacity = 1
		return s
	}
	s.Offset = HiddenOffset(opts.Direction)
	return s
}

// Style renders the state as CSS declarations.
func (s State) Style() motion.Declarations {
	return motion.Declarations{}.
		Add("opacity", motion.FormatOpacity(s.Opacity)).
		Add("transform", s.Offset.Transform()).
		Add("transition", s.Transition.CSS())
}
