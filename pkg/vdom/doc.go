// Package vdom provides the virtual DOM the site's page is built from.
//
// The page tree lives on the server. It is rendered to HTML by package render
// and its animated regions are updated in the browser through style and text
// patches rather than by diffing trees.
//
// # Core Types
//
// VNode is the fundamental building block representing elements, text,
// fragments and raw HTML. Props holds attributes. Attr is used to build Props.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Div(Class("card"), ID("main"),
//	    H1(Text("Title")),
//	    P(Text("Content")),
//	)
package vdom
