// Package ui renders the reveal utilities into the page tree.
//
// A Mount is created per page build. Its FadeIn, Stagger and Counter methods
// return wrapper nodes in their hidden initial state, marked with
// data-region and data-reveal attributes, and record a RegionSpec for each
// wrapper. A live session later turns a fired region into Patches that the
// browser applies.
//
//	m := ui.NewMount()
//	hero := m.FadeIn(fade.Options{Delay: 200 * time.Millisecond},
//	    vdom.H1("Building Dreams"),
//	)
//	for _, r := range m.Regions() {
//	    // r.ID == "r1", r.Kind == ui.KindFade
//	}
package ui
