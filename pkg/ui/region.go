package ui

import (
	"fmt"
	"strconv"

	"github.com/kbc-construction/site/pkg/counter"
	"github.com/kbc-construction/site/pkg/fade"
	"github.com/kbc-construction/site/pkg/reveal"
	"github.com/kbc-construction/site/pkg/stagger"
)

// Kind identifies which reveal utility a region belongs to.
type Kind uint8

const (
	KindFade Kind = iota
	KindStagger
	KindCounter
)

// String returns the kind name used in data-reveal markers and metrics.
func (k Kind) String() string {
	switch k {
	case KindFade:
		return "fade"
	case KindStagger:
		return "stagger"
	case KindCounter:
		return "counter"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// RegionSpec records everything a live session needs to drive one mounted
// wrapper: which trigger to create, and which elements to patch when it fires.
type RegionSpec struct {
	ID      reveal.Region
	Kind    Kind
	Trigger reveal.Config

	Fade    fade.Options
	Stagger stagger.Options
	Counter counter.Options

	// Children lists the stagger group's direct children in order.
	Children []ChildSpec
}

// ChildSpec is one child of a stagger group.
type ChildSpec struct {
	Index   int
	Element bool
	// Target is the element id patches address. Empty for non-elements.
	Target string
	// Base is the child's own inline style. Animation declarations are
	// appended after it so they win on conflict.
	Base string
}

// ValueTarget is the element id of a counter's text node.
func (r RegionSpec) ValueTarget() string {
	return string(r.ID) + "-value"
}

// childTarget builds the id assigned to stagger children that have none.
func childTarget(region reveal.Region, index int) string {
	return fmt.Sprintf("%s-%d", region, index)
}
