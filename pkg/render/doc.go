// Package render provides server-side rendering for VNode trees.
//
// The render package converts VNode trees into HTML strings or streams,
// handling the details of producing valid, safe HTML output:
//
//   - HTML5 element rendering with void and raw-text elements
//   - Text and attribute escaping
//   - Boolean attributes (controls, muted, playsinline, ...)
//   - Full page rendering with DOCTYPE, head and trailing scripts
//
// # Basic Usage
//
// To render a VNode tree to a string:
//
//	renderer := render.NewRenderer(render.RendererConfig{})
//	html, err := renderer.RenderToString(node)
//
// To stream HTML to a writer:
//
//	err := renderer.RenderToWriter(w, node)
//
// # Full Page Rendering
//
//	page := render.PageData{
//	    Body:  bodyNode,
//	    Title: "KBC Construction",
//	    Scripts: []render.ScriptTag{{Inline: live.ClientScript}},
//	}
//	err := renderer.RenderPage(w, page)
//
// Attributes are written in sorted order so that output is deterministic
// across renders of the same tree. Props whose key starts with an
// underscore are internal and never rendered.
package render
