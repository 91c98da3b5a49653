package dom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/

import (
	"errors"
	"io"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrNoDocument is returned when a Document is constructed from a nil or
// unparsable source.
var ErrNoDocument = errors.New("no HTML document to work on")

// Document wraps an HTML parse tree. It interns Element wrappers, so that
// every *html.Node maps to exactly one *Element for the lifetime of the
// document. Identity of elements matters to clients (members are looked up
// by element), therefore wrappers must be stable.
type Document struct {
	root  *html.Node
	elems map[*html.Node]*Element
}

// Parse reads an HTML document.
func Parse(r io.Reader) (*Document, error) {
	if r == nil {
		return nil, ErrNoDocument
	}
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return FromNode(root), nil
}

// ParseString is a convenience wrapper around Parse.
func ParseString(doc string) (*Document, error) {
	return Parse(strings.NewReader(doc))
}

// FromNode wraps an already parsed tree.
func FromNode(root *html.Node) *Document {
	return &Document{
		root:  root,
		elems: make(map[*html.Node]*Element),
	}
}

// Root returns the root node of the underlying parse tree.
func (d *Document) Root() *html.Node {
	return d.root
}

// ElementFor returns the unique Element wrapper for an HTML node,
// creating it on first use. Non-element nodes yield nil.
func (d *Document) ElementFor(n *html.Node) *Element {
	if n == nil || n.Type != html.ElementNode {
		return nil
	}
	if e, ok := d.elems[n]; ok {
		return e
	}
	e := &Element{doc: d, node: n}
	d.elems[n] = e
	return e
}

// QuerySelectorAll compiles a CSS selector (via cascadia) and returns all
// matching elements in document order.
func (d *Document) QuerySelectorAll(selector string) ([]*Element, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, err
	}
	nodes := sel.MatchAll(d.root)
	elems := make([]*Element, 0, len(nodes))
	for _, n := range nodes {
		if e := d.ElementFor(n); e != nil {
			elems = append(elems, e)
		}
	}
	return elems, nil
}

// DocumentElement returns the <html> element.
func (d *Document) DocumentElement() *Element {
	return d.ElementFor(findByAtom(d.root, atom.Html))
}

// Body returns the <body> element.
func (d *Document) Body() *Element {
	return d.ElementFor(findByAtom(d.root, atom.Body))
}

func findByAtom(n *html.Node, a atom.Atom) *html.Node {
	if n == nil {
		return nil
	}
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if r := findByAtom(ch, a); r != nil {
			return r
		}
	}
	return nil
}
