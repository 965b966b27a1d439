package ui

import (
	"strings"

	"github.com/kbc-construction/site/pkg/counter"
	"github.com/kbc-construction/site/pkg/fade"
	"github.com/kbc-construction/site/pkg/stagger"
	"github.com/kbc-construction/site/pkg/vdom"
)

// NoscriptCSS reveals every wrapper when scripting is disabled, so that a
// page without a live connection never keeps content hidden.
const NoscriptCSS = `[data-reveal="fade"],[data-reveal="stagger"]>*{opacity:1 !important;transform:none !important;}` +
	`[data-counter-value]{display:none;}`

func regionAttrs(id string, kind Kind, class string) []vdom.Attr {
	return []vdom.Attr{
		vdom.ID(id),
		vdom.Class(class),
		vdom.Data("region", id),
		vdom.Data("reveal", kind.String()),
	}
}

// FadeIn wraps children in a block that fades and slides into place the
// first time it is seen. The wrapper is rendered in its hidden state.
func (m *Mount) FadeIn(opts fade.Options, children ...any) *vdom.VNode {
	id := string(m.register(RegionSpec{
		Kind:    KindFade,
		Trigger: fade.TriggerConfig(),
		Fade:    opts,
	}))

	args := make([]any, 0, len(children)+5)
	args = append(args, regionAttrs(id, KindFade, opts.Class))
	args = append(args, vdom.StyleAttr(fade.StateFor(false, opts).Style().String()))
	args = append(args, children...)
	return vdom.Div(args...)
}

// Stagger wraps children in a group whose element children cascade into view
// with increasing delays. Element children without an id are given one so
// the live session can address them. Text and other non-element children are
// left untouched.
func (m *Mount) Stagger(opts stagger.Options, children ...any) *vdom.VNode {
	id := m.register(RegionSpec{
		Kind:    KindStagger,
		Trigger: stagger.TriggerConfig(),
		Stagger: opts,
	})

	nodes := vdom.Flatten(vdom.Fragment(children...).Children)
	plan := make([]stagger.Child, len(nodes))
	for i, n := range nodes {
		plan[i] = stagger.Child{Element: n.IsElement()}
	}
	states := stagger.Plan(plan, false, opts)

	specs := make([]ChildSpec, len(nodes))
	for i, n := range nodes {
		specs[i] = ChildSpec{Index: i, Element: n.IsElement()}
		if !states[i].Animated {
			continue
		}
		target := n.ID()
		if target == "" {
			target = childTarget(id, i)
			n.SetAttr("id", target)
		}
		specs[i].Target = target
		specs[i].Base = n.Style()
		n.SetStyle(withBase(specs[i].Base, states[i].Style().String()))
	}
	m.update(id, func(r *RegionSpec) { r.Children = specs })

	return vdom.Div(regionAttrs(string(id), KindStagger, opts.Class), nodes)
}

// withBase appends animation declarations to an element's own style.
func withBase(base, style string) string {
	base = strings.TrimSpace(base)
	switch {
	case base == "":
		return style
	case style == "":
		return base
	case !strings.HasSuffix(base, ";"):
		base += ";"
	}
	return base + " " + style
}

// Counter renders a number that counts up from zero once a third of it is
// visible. The text lives in an inner span so that a noscript fallback can
// show the final value instead.
func (m *Mount) Counter(opts counter.Options, class string) *vdom.VNode {
	id := m.register(RegionSpec{
		Kind:    KindCounter,
		Trigger: counter.TriggerConfig(),
		Counter: opts,
	})
	spec := RegionSpec{ID: id}

	return vdom.Span(
		regionAttrs(string(id), KindCounter, class),
		vdom.Span(vdom.ID(spec.ValueTarget()), vdom.Data("counter-value", string(id)), opts.Format(0)),
		vdom.Noscript(opts.Format(opts.End)),
	)
}
