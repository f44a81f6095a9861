// Package view builds the quiz page as a declarative tree. Renderers turn the
// tree into HTML or terminal output; tests inspect it directly.
package view

import (
	"sort"
	"strings"
)

// Kind distinguishes the node variants.
type Kind int

const (
	KindElement Kind = iota
	KindText
	// KindRaw holds an untrusted HTML fragment. Renderers sanitize it.
	KindRaw
)

// Attrs are element attributes. A key with an empty value renders as a
// boolean attribute.
type Attrs map[string]string

// Node is one element, text run, or raw fragment.
type Node struct {
	Kind     Kind
	Tag      string
	Attrs    Attrs
	Text     string
	Children []*Node
}

// El builds an element node. Nil children are dropped so optional parts can
// be passed inline.
func El(tag string, attrs Attrs, children ...*Node) *Node {
	n := &Node{Kind: KindElement, Tag: tag, Attrs: attrs}
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

// Text builds a text node.
func Text(s string) *Node {
	return &Node{Kind: KindText, Text: s}
}

// Raw builds an untrusted HTML fragment node.
func Raw(html string) *Node {
	return &Node{Kind: KindRaw, Text: html}
}

// Attr returns the attribute value and whether it is set.
func (n *Node) Attr(key string) (string, bool) {
	if n == nil || n.Attrs == nil {
		return "", false
	}
	v, ok := n.Attrs[key]
	return v, ok
}

// HasAttr reports whether the attribute is set.
func (n *Node) HasAttr(key string) bool {
	_, ok := n.Attr(key)
	return ok
}

// ID returns the id attribute.
func (n *Node) ID() string {
	v, _ := n.Attr("id")
	return v
}

// HasClass reports whether class is listed in the class attribute.
func (n *Node) HasClass(class string) bool {
	v, _ := n.Attr("class")
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

// SortedAttrKeys returns attribute names in a stable order.
func (n *Node) SortedAttrKeys() []string {
	keys := make([]string, 0, len(n.Attrs))
	for k := range n.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Walk visits n and its descendants depth-first, pre-order. Returning false
// from fn skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// FindAll returns every descendant (including n) matching pred.
func (n *Node) FindAll(pred func(*Node) bool) []*Node {
	var out []*Node
	n.Walk(func(c *Node) bool {
		if pred(c) {
			out = append(out, c)
		}
		return true
	})
	return out
}

// Find returns the first descendant (including n) matching pred.
func (n *Node) Find(pred func(*Node) bool) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		if pred(c) {
			found = c
			return false
		}
		return true
	})
	return found
}

// ByID matches elements with the given id.
func ByID(id string) func(*Node) bool {
	return func(n *Node) bool { return n.Kind == KindElement && n.ID() == id }
}

// ByTag matches elements with the given tag.
func ByTag(tag string) func(*Node) bool {
	return func(n *Node) bool { return n.Kind == KindElement && n.Tag == tag }
}

// ByClass matches elements carrying class.
func ByClass(class string) func(*Node) bool {
	return func(n *Node) bool { return n.Kind == KindElement && n.HasClass(class) }
}

// ByAttr matches elements that have the attribute set.
func ByAttr(key string) func(*Node) bool {
	return func(n *Node) bool { return n.Kind == KindElement && n.HasAttr(key) }
}

// TextContent concatenates the text of n and its descendants. Raw fragments
// contribute their markup unchanged.
func (n *Node) TextContent() string {
	var b strings.Builder
	n.Walk(func(c *Node) bool {
		if c.Kind == KindText || c.Kind == KindRaw {
			b.WriteString(c.Text)
		}
		return true
	})
	return b.String()
}
