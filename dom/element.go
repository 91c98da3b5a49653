package dom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/

import (
	"strings"

	"golang.org/x/net/html"
)

// Element wraps a single element node of a parse tree. Instances are
// interned per Document; comparing two *Element pointers compares DOM
// identity.
type Element struct {
	doc       *Document
	node      *html.Node
	listeners map[string][]func(Event)
}

// Node exposes the underlying HTML node.
func (e *Element) Node() *html.Node {
	return e.node
}

// Document returns the owning document.
func (e *Element) Document() *Document {
	return e.doc
}

// TagName returns the lower-case tag name, e.g. "div".
func (e *Element) TagName() string {
	return e.node.Data
}

// Parent returns the parent element, or nil for the root.
func (e *Element) Parent() *Element {
	for p := e.node.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode {
			return e.doc.ElementFor(p)
		}
	}
	return nil
}

// SiblingElements returns all element children of e's parent, in document
// order, e included.
func (e *Element) SiblingElements() []*Element {
	if e.node.Parent == nil {
		return []*Element{e}
	}
	var sibs []*Element
	for ch := e.node.Parent.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type == html.ElementNode {
			sibs = append(sibs, e.doc.ElementFor(ch))
		}
	}
	return sibs
}

// TextContent concatenates the text of the element and all descendants.
func (e *Element) TextContent() string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
			walk(ch)
		}
	}
	walk(e.node)
	return sb.String()
}

// --- Attributes --------------------------------------------------------

// Attr returns the value of an attribute, or "" if unset.
func (e *Element) Attr(name string) string {
	for _, a := range e.node.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// HasAttr checks for the existence of an attribute.
func (e *Element) HasAttr(name string) bool {
	for _, a := range e.node.Attr {
		if a.Key == name {
			return true
		}
	}
	return false
}

// SetAttr sets an attribute, overwriting an existing value.
func (e *Element) SetAttr(name, value string) {
	for i, a := range e.node.Attr {
		if a.Key == name {
			e.node.Attr[i].Val = value
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: name, Val: value})
}

// RemoveAttr deletes an attribute if present.
func (e *Element) RemoveAttr(name string) {
	for i, a := range e.node.Attr {
		if a.Key == name {
			e.node.Attr = append(e.node.Attr[:i], e.node.Attr[i+1:]...)
			return
		}
	}
}

// Dataset looks up a data-attribute by its dataset key, i.e.
// Dataset("eca-delay") reads attribute "data-eca-delay". The second return
// value reports whether the attribute exists at all.
func (e *Element) Dataset(key string) (string, bool) {
	name := "data-" + key
	for _, a := range e.node.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// --- Class list ---------------------------------------------------------

// Classes returns the element's class list in declaration order.
func (e *Element) Classes() []string {
	return strings.Fields(e.Attr("class"))
}

// HasClass checks class membership.
func (e *Element) HasClass(class string) bool {
	for _, c := range e.Classes() {
		if c == class {
			return true
		}
	}
	return false
}

// AddClass appends a class unless already present.
func (e *Element) AddClass(class string) {
	if class == "" || e.HasClass(class) {
		return
	}
	cls := e.Attr("class")
	if cls == "" {
		e.SetAttr("class", class)
		return
	}
	e.SetAttr("class", cls+" "+class)
}

// RemoveClass deletes a class from the class list, if present.
func (e *Element) RemoveClass(class string) {
	classes := e.Classes()
	kept := classes[:0]
	for _, c := range classes {
		if c != class {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		e.RemoveAttr("class")
		return
	}
	e.SetAttr("class", strings.Join(kept, " "))
}
