package live

import (
	"math"
	"sync"

	"github.com/kbc-construction/site/pkg/reveal"
)

// SocketObserver is the reveal.Observer backed by the browser's
// IntersectionObserver. Ratios arrive as intersect messages and are routed to
// the registered callbacks by Deliver.
type SocketObserver struct {
	available bool
	onStop    func(reveal.Region)

	mu       sync.Mutex
	watchers map[reveal.Region]func(float64)
}

// NewSocketObserver returns an observer for a client that reported whether
// it supports intersection observation. onStop is called when a region's
// observation ends, so the client can be told to unobserve it.
func NewSocketObserver(available bool, onStop func(reveal.Region)) *SocketObserver {
	return &SocketObserver{
		available: available,
		onStop:    onStop,
		watchers:  make(map[reveal.Region]func(float64)),
	}
}

// Observe implements reveal.Observer.
func (o *SocketObserver) Observe(region reveal.Region, fn func(ratio float64)) (func(), error) {
	if !o.available {
		return nil, reveal.ErrUnavailable
	}

	o.mu.Lock()
	o.watchers[region] = fn
	o.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			o.mu.Lock()
			delete(o.watchers, region)
			o.mu.Unlock()
			if o.onStop != nil {
				o.onStop(region)
			}
		})
	}, nil
}

// Deliver routes a ratio to region's callback. It reports false when the
// region is not being observed or the ratio is not a number.
func (o *SocketObserver) Deliver(region reveal.Region, ratio float64) bool {
	if math.IsNaN(ratio) {
		return false
	}
	ratio = math.Max(0, math.Min(1, ratio))

	o.mu.Lock()
	fn, ok := o.watchers[region]
	o.mu.Unlock()
	if !ok {
		return false
	}
	fn(ratio)
	return true
}

// Watching reports whether region is being observed.
func (o *SocketObserver) Watching(region reveal.Region) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, ok := o.watchers[region]
	return ok
}
