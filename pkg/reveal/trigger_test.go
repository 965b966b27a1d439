package reveal

import (
	"testing"
)

func TestTriggerFiresAtThreshold(t *testing.T) {
	obs := NewManualObserver()
	trig := NewTrigger(obs, "r1", Config{Threshold: 0.3, Once: true})

	if trig.Visible() {
		t.Fatal("trigger should start hidden")
	}
	obs.Set("r1", 0.29)
	if trig.Visible() {
		t.Error("ratio below threshold should not reveal")
	}
	obs.Set("r1", 0.3)
	if !trig.Visible() {
		t.Error("ratio equal to threshold should reveal")
	}
}

func TestTriggerOnceNeverReverts(t *testing.T) {
	obs := NewManualObserver()
	trig := NewTrigger(obs, "r1", Config{Threshold: 0.1, Once: true})

	obs.Set("r1", 1)
	for _, ratio := range []float64{0, 0.05, 0, 0.5, 0} {
		obs.Set("r1", ratio)
		if !trig.Visible() {
			t.Fatalf("once trigger reverted at ratio %v", ratio)
		}
	}
}

func TestTriggerOnceStopsObserving(t *testing.T) {
	obs := NewManualObserver()
	NewTrigger(obs, "r1", Config{Threshold: 0.1, Once: true})

	if obs.Watching("r1") != 1 {
		t.Fatalf("Watching = %d, want 1", obs.Watching("r1"))
	}
	obs.Set("r1", 0.2)
	if obs.Watching("r1") != 0 {
		t.Errorf("Watching after fire = %d, want 0", obs.Watching("r1"))
	}
	if obs.Stops("r1") != 1 {
		t.Errorf("Stops = %d, want 1", obs.Stops("r1"))
	}
}

func TestTriggerContinuousTracksBothWays(t *testing.T) {
	obs := NewManualObserver()
	trig := NewTrigger(obs, "r1", Config{Threshold: 0.5})

	var changes []bool
	trig.OnChange(func(v bool) { changes = append(changes, v) })

	obs.Set("r1", 0.6)
	obs.Set("r1", 0.7)
	obs.Set("r1", 0.1)
	obs.Set("r1", 0.5)

	want := []bool{true, false, true}
	if len(changes) != len(want) {
		t.Fatalf("changes = %v, want %v", changes, want)
	}
	for i := range want {
		if changes[i] != want[i] {
			t.Errorf("changes[%d] = %v, want %v", i, changes[i], want[i])
		}
	}
	if obs.Watching("r1") != 1 {
		t.Error("continuous trigger should keep observing")
	}
}

func TestTriggerOnChangeFiresOnce(t *testing.T) {
	obs := NewManualObserver()
	trig := NewTrigger(obs, "r1", Config{Threshold: 0.1, Once: true})

	calls := 0
	trig.OnChange(func(v bool) {
		if !v {
			t.Error("once trigger reported false")
		}
		calls++
	})
	obs.Set("r1", 0.5)
	obs.Set("r1", 0)
	obs.Set("r1", 0.5)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestTriggerFailOpen(t *testing.T) {
	t.Run("nil observer", func(t *testing.T) {
		trig := NewTrigger(nil, "r1", Config{Threshold: 0.1, Once: true})
		if !trig.Visible() || !trig.FailedOpen() {
			t.Error("nil observer should fail open")
		}
	})

	t.Run("unavailable", func(t *testing.T) {
		obs := NewManualObserver().Unavailable()
		trig := NewTrigger(obs, "r1", Config{Threshold: 0.3, Once: true})
		if !trig.Visible() || !trig.FailedOpen() {
			t.Error("unavailable observer should fail open")
		}
	})
}

func TestTriggerZeroThreshold(t *testing.T) {
	obs := NewManualObserver()
	trig := NewTrigger(obs, "r1", Config{Threshold: 0, Once: true})

	obs.Set("r1", 0)
	if trig.Visible() {
		t.Error("zero ratio should not reveal at threshold 0")
	}
	obs.Set("r1", 0.01)
	if !trig.Visible() {
		t.Error("any intersection should reveal at threshold 0")
	}
}

func TestTriggerClampsThreshold(t *testing.T) {
	if got := NewTrigger(nil, "a", Config{Threshold: 3}).Config().Threshold; got != 1 {
		t.Errorf("threshold 3 clamped to %v, want 1", got)
	}
	if got := NewTrigger(nil, "a", Config{Threshold: -1}).Config().Threshold; got != 0 {
		t.Errorf("threshold -1 clamped to %v, want 0", got)
	}
}

func TestTriggerCloseStopsObservation(t *testing.T) {
	obs := NewManualObserver()
	trig := NewTrigger(obs, "r1", Config{Threshold: 0.1, Once: true})

	called := false
	trig.OnChange(func(bool) { called = true })
	trig.Close()
	trig.Close()

	obs.Set("r1", 1)
	if trig.Visible() || called {
		t.Error("closed trigger must ignore ratios")
	}
	if obs.Stops("r1") != 1 {
		t.Errorf("Stops = %d, want 1", obs.Stops("r1"))
	}
}

type syncObserver struct {
	ratio   float64
	stopped int
}

func (s *syncObserver) Observe(_ Region, fn func(float64)) (func(), error) {
	fn(s.ratio)
	return func() { s.stopped++ }, nil
}

func TestTriggerFiresDuringObserve(t *testing.T) {
	obs := &syncObserver{ratio: 1}
	trig := NewTrigger(obs, "r1", Config{Threshold: 0.1, Once: true})
	if !trig.Visible() {
		t.Error("initial ratio should reveal")
	}
	if obs.stopped != 1 {
		t.Errorf("stopped = %d, want 1", obs.stopped)
	}
}
