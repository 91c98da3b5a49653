/*
Package textwrap restructures text-bearing elements for per-character
animation.

Wrap splits an element's text into individually addressable spans: every
visually rendered character lands in its own letter span, every
whitespace-delimited word in a word container span. Markup embedded in the
text (e.g. a <b> inside a headline) is preserved; only its text content is
rewrapped. The original plain text is recorded in an aria-label attribute
so the restructured element keeps its accessible name.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package textwrap

import (
	"strings"
	"unicode"

	"github.com/plakich/eca/dom"
	"golang.org/x/net/html"
)

// Class names of the generated containers.
const (
	LetterClass = "eca-letter"
	WordClass   = "eca-word"
)

// Wrap restructures el in place and returns the generated letter spans in
// document order. The letter spans are what the animation engine tracks
// as members.
func Wrap(el *dom.Element) []*dom.Element {
	doc := el.Document()
	label := el.TextContent()
	el.SetAttr("aria-label", label)

	var letters []*dom.Element
	wrapChildren(doc, el.Node(), &letters)
	return letters
}

// wrapChildren rewrites the child list of n, replacing every text node by
// word/letter span structures and recursing into element children.
func wrapChildren(doc *dom.Document, n *html.Node, letters *[]*dom.Element) {
	// Detach the current children first; they are re-added or replaced below.
	var children []*html.Node
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		children = append(children, ch)
	}
	for _, ch := range children {
		n.RemoveChild(ch)
	}

	for _, ch := range children {
		switch ch.Type {
		case html.TextNode:
			appendWrappedText(doc, n, ch.Data, letters)
		case html.ElementNode:
			// Embedded markup is preserved, its text rewrapped in place.
			n.AppendChild(ch)
			wrapChildren(doc, ch, letters)
		default:
			n.AppendChild(ch)
		}
	}
}

// appendWrappedText appends word containers with letter spans for every
// word in text, keeping the original whitespace as bare text nodes so the
// rendered spacing is unchanged.
func appendWrappedText(doc *dom.Document, parent *html.Node, text string, letters *[]*dom.Element) {
	runs := splitRuns(text)
	for _, run := range runs {
		if run.space {
			parent.AppendChild(&html.Node{Type: html.TextNode, Data: run.text})
			continue
		}
		word := newSpan(WordClass)
		parent.AppendChild(word)
		for _, r := range run.text {
			letter := newSpan(LetterClass)
			letter.AppendChild(&html.Node{Type: html.TextNode, Data: string(r)})
			word.AppendChild(letter)
			*letters = append(*letters, doc.ElementFor(letter))
		}
	}
}

type textRun struct {
	text  string
	space bool
}

// splitRuns partitions text into alternating whitespace and word runs.
func splitRuns(text string) []textRun {
	var runs []textRun
	var sb strings.Builder
	inSpace := false
	flush := func() {
		if sb.Len() > 0 {
			runs = append(runs, textRun{text: sb.String(), space: inSpace})
			sb.Reset()
		}
	}
	for _, r := range text {
		s := unicode.IsSpace(r)
		if s != inSpace {
			flush()
			inSpace = s
		}
		sb.WriteRune(r)
	}
	flush()
	return runs
}

func newSpan(class string) *html.Node {
	return &html.Node{
		Type: html.ElementNode,
		Data: "span",
		Attr: []html.Attribute{{Key: "class", Val: class}},
	}
}
