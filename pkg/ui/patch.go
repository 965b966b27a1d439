package ui

import (
	"github.com/kbc-construction/site/pkg/fade"
	"github.com/kbc-construction/site/pkg/stagger"
)

// Op is a patch operation.
type Op string

const (
	// OpStyle replaces the target's inline style.
	OpStyle Op = "style"
	// OpText replaces the target's text content.
	OpText Op = "text"
)

// Patch is one DOM update applied by the browser client.
type Patch struct {
	Op     Op     `json:"op"`
	Target string `json:"target"`
	Value  string `json:"value"`
}

// StylePatch sets target's inline style.
func StylePatch(target, style string) Patch {
	return Patch{Op: OpStyle, Target: target, Value: style}
}

// TextPatch sets target's text.
func TextPatch(target, text string) Patch {
	return Patch{Op: OpText, Target: target, Value: text}
}

// RevealPatches returns the patches that move a region into its visible
// state. Counters reveal through frames and produce no style patch.
func RevealPatches(r RegionSpec) []Patch {
	switch r.Kind {
	case KindFade:
		style := fade.StateFor(true, r.Fade).Style().String()
		return []Patch{StylePatch(string(r.ID), style)}
	case KindStagger:
		step := r.Stagger.EffectiveStep()
		patches := make([]Patch, 0, len(r.Children))
		for _, c := range r.Children {
			if !c.Element || c.Target == "" {
				continue
			}
			style := stagger.ChildFor(c.Index, true, step).Style().String()
			patches = append(patches, StylePatch(c.Target, withBase(c.Base, style)))
		}
		return patches
	default:
		return nil
	}
}

// CounterPatch returns the text patch for a counter frame.
func CounterPatch(r RegionSpec, text string) Patch {
	return TextPatch(r.ValueTarget(), text)
}
