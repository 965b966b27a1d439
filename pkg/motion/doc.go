// Package motion provides the timing and styling primitives shared by the
// reveal utilities: a replaceable Clock, easing curves, reveal directions and
// offsets, CSS transition rendering, and host frame sources.
//
// Easing math is pure and independent of scheduling. A FrameSource stands in
// for the browser's animation frame callback; NewFrameTicker drives it from a
// time.Ticker in production and ManualFrames drives it step by step in tests.
//
//	clock := motion.NewFakeClock()
//	frames := motion.NewManualFrames(clock)
//	clock.Advance(500 * time.Millisecond)
//	frames.Step()
package motion
