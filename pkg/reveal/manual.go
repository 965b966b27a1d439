package reveal

import "sync"

// ManualObserver is a deterministic Observer for tests. Ratios are delivered
// synchronously by Set.
type ManualObserver struct {
	mu          sync.Mutex
	unavailable bool
	nextID      int
	watchers    map[Region]map[int]func(float64)
	stopped     map[Region]int
}

// NewManualObserver returns an observer with no regions.
func NewManualObserver() *ManualObserver {
	return &ManualObserver{
		watchers: make(map[Region]map[int]func(float64)),
		stopped:  make(map[Region]int),
	}
}

// Unavailable makes subsequent Observe calls fail with ErrUnavailable.
func (m *ManualObserver) Unavailable() *ManualObserver {
	m.mu.Lock()
	m.unavailable = true
	m.mu.Unlock()
	return m
}

// Observe implements Observer.
func (m *ManualObserver) Observe(region Region, fn func(ratio float64)) (func(), error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.unavailable {
		return nil, ErrUnavailable
	}

	id := m.nextID
	m.nextID++
	if m.watchers[region] == nil {
		m.watchers[region] = make(map[int]func(float64))
	}
	m.watchers[region][id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.watchers[region], id)
			m.stopped[region]++
			m.mu.Unlock()
		})
	}, nil
}

// Set delivers ratio to every active watcher of region.
func (m *ManualObserver) Set(region Region, ratio float64) {
	m.mu.Lock()
	fns := make([]func(float64), 0, len(m.watchers[region]))
	for _, fn := range m.watchers[region] {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(ratio)
	}
}

// Watching returns the number of active observations of region.
func (m *ManualObserver) Watching(region Region) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.watchers[region])
}

// Stops returns how many observations of region have been stopped.
func (m *ManualObserver) Stops(region Region) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopped[region]
}
