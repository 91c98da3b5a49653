package dom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/

import (
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
)

// Style returns the raw inline style attribute, verbatim.
func (e *Element) Style() string {
	return e.Attr("style")
}

// SetStyle replaces the inline style attribute verbatim. An empty string
// removes the attribute, which is what a fresh element looks like.
func (e *Element) SetStyle(style string) {
	if style == "" {
		e.RemoveAttr("style")
		return
	}
	e.SetAttr("style", style)
}

// StyleProperty returns the value of a single declaration from the inline
// style, or "" if the declaration is not present (or the style is
// unparsable).
func (e *Element) StyleProperty(property string) string {
	style := e.Style()
	if style == "" {
		return ""
	}
	decls, err := parser.ParseDeclarations(style)
	if err != nil {
		return ""
	}
	property = strings.ToLower(property)
	for _, d := range decls {
		if strings.ToLower(d.Property) == property {
			return d.Value
		}
	}
	return ""
}

// SetStyleProperty sets a single declaration on the inline style, replacing
// an existing declaration of the same property and keeping all others. An
// unparsable pre-existing style is treated as empty.
func (e *Element) SetStyleProperty(property, value string) {
	var decls []*css.Declaration
	if style := e.Style(); style != "" {
		var err error
		decls, err = parser.ParseDeclarations(style)
		if err != nil {
			tracer().Debugf("dropping unparsable inline style %q", style)
			decls = nil
		}
	}
	property = strings.ToLower(property)
	replaced := false
	for _, d := range decls {
		if strings.ToLower(d.Property) == property {
			d.Value = value
			replaced = true
		}
	}
	if !replaced {
		decls = append(decls, &css.Declaration{Property: property, Value: value})
	}
	e.SetStyle(serializeDeclarations(decls))
}

// ApplyStyle merges a literal declaration block into the inline style,
// declaration by declaration. Unparsable input is ignored and reported to
// the caller.
func (e *Element) ApplyStyle(block string) error {
	if block == "" {
		return nil
	}
	decls, err := parser.ParseDeclarations(block)
	if err != nil {
		return err
	}
	for _, d := range decls {
		e.SetStyleProperty(d.Property, d.Value)
	}
	return nil
}

func serializeDeclarations(decls []*css.Declaration) string {
	var sb strings.Builder
	for i, d := range decls {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(d.Property)
		sb.WriteString(": ")
		sb.WriteString(d.Value)
		if d.Important {
			sb.WriteString(" !important")
		}
		sb.WriteString(";")
	}
	return sb.String()
}
