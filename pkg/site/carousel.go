package site

import "time"

// DefaultSlideInterval is how long each hero slide stays on screen.
const DefaultSlideInterval = 5 * time.Second

// Carousel cycles the hero slides.
type Carousel struct {
	Slides   int
	Interval time.Duration
}

// NewCarousel returns a carousel over n slides. A non-positive interval uses
// DefaultSlideInterval.
func NewCarousel(n int, interval time.Duration) Carousel {
	if interval <= 0 {
		interval = DefaultSlideInterval
	}
	return Carousel{Slides: n, Interval: interval}
}

// IndexAt returns the slide shown after elapsed time since mount.
func (c Carousel) IndexAt(elapsed time.Duration) int {
	if c.Slides <= 1 || c.Interval <= 0 || elapsed < 0 {
		return 0
	}
	return int(elapsed/c.Interval) % c.Slides
}

// Next returns the slide after i.
func (c Carousel) Next(i int) int {
	if c.Slides <= 1 {
		return 0
	}
	return (i + 1) % c.Slides
}

// Cycles reports whether there is more than one slide to rotate through.
func (c Carousel) Cycles() bool {
	return c.Slides > 1
}
