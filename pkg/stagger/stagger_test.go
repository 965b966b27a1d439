package stagger

import (
	"testing"
	"time"
)

func elements(n int) []Child {
	out := make([]Child, n)
	for i := range out {
		out[i] = Child{Element: true}
	}
	return out
}

func TestPlanDelays(t *testing.T) {
	states := Plan(elements(4), false, Options{Step: 200 * time.Millisecond})
	for i, s := range states {
		want := time.Duration(i) * 200 * time.Millisecond
		if s.Transition.Delay != want {
			t.Errorf("child %d delay = %v, want %v", i, s.Transition.Delay, want)
		}
	}
	if states[2].Transition.Delay != 400*time.Millisecond {
		t.Errorf("index 2 delay = %v, want 400ms", states[2].Transition.Delay)
	}
}

func TestPlanDefaultStep(t *testing.T) {
	states := Plan(elements(3), false, Options{})
	if states[1].Transition.Delay != 100*time.Millisecond {
		t.Errorf("default step delay = %v, want 100ms", states[1].Transition.Delay)
	}
}

func TestPlanNoStep(t *testing.T) {
	states := Plan(elements(3), true, Options{Step: NoStep})
	for _, s := range states {
		if s.Transition.Delay != 0 {
			t.Errorf("child %d delay = %v, want 0", s.Index, s.Transition.Delay)
		}
	}
}

func TestPlanHiddenAndVisible(t *testing.T) {
	hidden := Plan(elements(2), false, Options{})
	for _, s := range hidden {
		if s.Opacity != 0 || s.OffsetY != 30 {
			t.Errorf("hidden child %d = %+v", s.Index, s)
		}
		if s.Transition.Duration != 600*time.Millisecond {
			t.Errorf("duration = %v, want 600ms", s.Transition.Duration)
		}
	}

	visible := Plan(elements(2), true, Options{})
	for _, s := range visible {
		if s.Opacity != 1 || s.OffsetY != 0 {
			t.Errorf("visible child %d = %+v", s.Index, s)
		}
	}
}

func TestPlanSkipsNonElements(t *testing.T) {
	children := []Child{{Element: true}, {Element: false}, {Element: true}}
	states := Plan(children, false, Options{Step: 200 * time.Millisecond})

	if states[1].Animated {
		t.Error("text child should not be animated")
	}
	if states[1].Style() != nil {
		t.Error("text child should have no style")
	}
	if states[2].Transition.Delay != 400*time.Millisecond {
		t.Errorf("index 2 delay = %v, want 400ms", states[2].Transition.Delay)
	}
}

func TestChildStyle(t *testing.T) {
	got := ChildFor(2, false, 150*time.Millisecond).Style().String()
	want := "opacity: 0; transform: translate(0, 30px); transition: all 600ms ease-out 300ms;"
	if got != want {
		t.Errorf("Style() = %q, want %q", got, want)
	}
}

func TestPlanEmpty(t *testing.T) {
	if got := Plan(nil, true, Options{}); len(got) != 0 {
		t.Errorf("Plan(nil) = %v", got)
	}
}
