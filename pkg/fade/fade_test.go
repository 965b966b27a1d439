package fade

import (
	"testing"
	"time"

	"github.com/kbc-construction/site/pkg/motion"
)

func TestHiddenOffset(t *testing.T) {
	tests := []struct {
		dir  motion.Direction
		want motion.Offset
	}{
		{motion.Up, motion.Offset{Y: 50}},
		{motion.Down, motion.Offset{Y: -50}},
		{motion.Left, motion.Offset{X: 50}},
		{motion.Right, motion.Offset{X: -50}},
	}
	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			s := StateFor(false, Options{Direction: tt.dir})
			if s.Offset != tt.want {
				t.Errorf("Offset = %+v, want %+v", s.Offset, tt.want)
			}
			if s.Opacity != 0 {
				t.Errorf("Opacity = %v, want 0", s.Opacity)
			}
		})
	}
}

func TestStateForVisible(t *testing.T) {
	s := StateFor(true, Options{Direction: motion.Left, Delay: 400 * time.Millisecond})
	if !s.Offset.IsZero() {
		t.Errorf("visible Offset = %+v, want zero", s.Offset)
	}
	if s.Opacity != 1 {
		t.Errorf("visible Opacity = %v, want 1", s.Opacity)
	}
	if s.Transition.Delay != 400*time.Millisecond {
		t.Errorf("Delay = %v, want 400ms", s.Transition.Delay)
	}
	if s.Transition.Duration != time.Second {
		t.Errorf("Duration = %v, want 1s", s.Transition.Duration)
	}
}

func TestStateForNegativeDelay(t *testing.T) {
	s := StateFor(false, Options{Delay: -time.Second})
	if s.Transition.Delay != 0 {
		t.Errorf("Delay = %v, want 0", s.Transition.Delay)
	}
}

func TestStyle(t *testing.T) {
	hidden := StateFor(false, Options{Direction: motion.Left, Delay: 200 * time.Millisecond}).Style().String()
	want := "opacity: 0; transform: translate(50px, 0); transition: all 1000ms ease-out 200ms;"
	if hidden != want {
		t.Errorf("hidden style = %q, want %q", hidden, want)
	}

	shown := StateFor(true, Options{}).Style().String()
	want = "opacity: 1; transform: translate(0, 0); transition: all 1000ms ease-out 0ms;"
	if shown != want {
		t.Errorf("visible style = %q, want %q", shown, want)
	}
}

func TestTriggerConfig(t *testing.T) {
	cfg := TriggerConfig()
	if cfg.Threshold != 0.1 || !cfg.Once {
		t.Errorf("TriggerConfig() = %+v", cfg)
	}
}
