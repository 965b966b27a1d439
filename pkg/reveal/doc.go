// Package reveal detects when a page region enters the viewport.
//
// A Trigger wraps one region and exposes a Visible flag. The browser's
// intersection observation is hidden behind the Observer interface: the live
// session provides the production implementation fed by the page client, and
// ManualObserver provides a deterministic one for tests.
//
// With Config.Once the flag turns true at most once and never reverts, and
// observation stops as soon as it fires. When observation is unavailable the
// trigger starts visible so content is never hidden permanently.
//
//	obs := reveal.NewManualObserver()
//	trig := reveal.NewTrigger(obs, "stats", reveal.Config{Threshold: 0.3, Once: true})
//	obs.Set("stats", 0.5)
//	trig.Visible() // true
package reveal
