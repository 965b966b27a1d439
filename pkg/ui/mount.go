package ui

import (
	"strconv"
	"sync"

	"github.com/kbc-construction/site/pkg/reveal"
)

// Mount collects the reveal regions of one rendered page.
//
// Region ids are assigned in call order ("r1", "r2", ...), so building the
// same page twice yields the same ids. The server relies on this to match a
// live connection to the HTML it served earlier.
type Mount struct {
	mu      sync.Mutex
	next    int
	regions []RegionSpec
	index   map[reveal.Region]int
}

// NewMount returns an empty mount.
func NewMount() *Mount {
	return &Mount{index: make(map[reveal.Region]int)}
}

func (m *Mount) register(spec RegionSpec) reveal.Region {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	spec.ID = reveal.Region("r" + strconv.Itoa(m.next))
	m.index[spec.ID] = len(m.regions)
	m.regions = append(m.regions, spec)
	return spec.ID
}

func (m *Mount) update(id reveal.Region, fn func(*RegionSpec)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i, ok := m.index[id]; ok {
		fn(&m.regions[i])
	}
}

// Regions returns the registered regions in document order.
func (m *Mount) Regions() []RegionSpec {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]RegionSpec, len(m.regions))
	copy(out, m.regions)
	return out
}

// Region looks up a region by id.
func (m *Mount) Region(id reveal.Region) (RegionSpec, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, ok := m.index[id]
	if !ok {
		return RegionSpec{}, false
	}
	return m.regions[i], true
}

// Len returns the number of registered regions.
func (m *Mount) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.regions)
}
