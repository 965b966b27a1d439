package vdom

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement  VKind = iota // <div>, <section>, etc.
	KindText                  // Plain text node
	KindFragment              // Grouping without wrapper
	KindRaw                   // Raw HTML (trusted content only)
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindRaw:
		return "Raw"
	default:
		return "Unknown"
	}
}

// VNode is the virtual DOM node.
type VNode struct {
	Kind     VKind    // Node type
	Tag      string   // Element tag name (e.g., "div")
	Props    Props    // Attributes
	Children []*VNode // Child nodes
	Text     string   // For KindText and KindRaw
}

// Props holds attributes.
type Props map[string]any

// IsElement reports whether the node is an element and can carry a style.
func (v *VNode) IsElement() bool {
	return v != nil && v.Kind == KindElement
}

// ID returns the element's id attribute, or "".
func (v *VNode) ID() string {
	if !v.IsElement() {
		return ""
	}
	id, _ := v.Props["id"].(string)
	return id
}

// Style returns the element's inline style, or "".
func (v *VNode) Style() string {
	if !v.IsElement() {
		return ""
	}
	style, _ := v.Props["style"].(string)
	return style
}

// SetAttr sets an attribute on an element node. It is a no-op for other
// kinds.
func (v *VNode) SetAttr(key string, value any) {
	if !v.IsElement() {
		return
	}
	if v.Props == nil {
		v.Props = make(Props)
	}
	v.Props[key] = value
}

// Walk visits the node and its descendants depth-first in document order.
// Returning false from fn skips the node's children.
func (v *VNode) Walk(fn func(*VNode) bool) {
	if v == nil {
		return
	}
	if !fn(v) {
		return
	}
	for _, c := range v.Children {
		c.Walk(fn)
	}
}

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// SetStyle replaces the element's inline style. An empty style removes it.
func (v *VNode) SetStyle(style string) {
	if !v.IsElement() {
		return
	}
	if style == "" {
		delete(v.Props, "style")
		return
	}
	v.SetAttr("style", style)
}
