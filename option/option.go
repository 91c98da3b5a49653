/*
Package option resolves user configuration from DOM data-attributes.

Every recognized option has a declared type (boolean, duration, or string)
and a hard-coded default. Resolution follows a fixed precedence: an
explicit per-element attribute wins over a page-global attribute (set on
the <html> or <body> element), which wins over the default. Coercion never
fails: non-numeric durations and fractions silently resolve to zero, and
unrecognized boolean spellings resolve to the default. This mirrors how
the engine treats misconfiguration everywhere — degrade, don't halt.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package option

import (
	"strconv"
	"strings"
	"time"

	"github.com/npillmayer/schuko/tracing"
	"github.com/plakich/eca/dom"
)

// tracer will return a tracer. We are tracing to 'eca.option'.
func tracer() tracing.Trace {
	return tracing.Select("eca.option")
}

// DefaultPrefix is the dataset prefix for all recognized options, i.e.
// option "delay" is read from attribute "data-eca-delay".
const DefaultPrefix = "eca"

// Resolver looks up typed option values with per-element over page-global
// over default precedence.
type Resolver struct {
	prefix string
	global *dom.Element // <html> or <body>; may be nil
}

// NewResolver creates a resolver for a document. Page-global options are
// read from the <html> element, falling back to <body> if the document has
// no <html> wrapper.
func NewResolver(doc *dom.Document) *Resolver {
	global := doc.DocumentElement()
	if global == nil {
		global = doc.Body()
	}
	return &Resolver{prefix: DefaultPrefix, global: global}
}

// WithPrefix returns a resolver using a non-default dataset prefix.
func (r *Resolver) WithPrefix(prefix string) *Resolver {
	return &Resolver{prefix: prefix, global: r.global}
}

// raw performs the precedence lookup. el may be nil for a pure global
// lookup.
func (r *Resolver) raw(el *dom.Element, name string) (string, bool) {
	key := r.prefix + "-" + name
	if el != nil {
		if v, ok := el.Dataset(key); ok {
			return strings.TrimSpace(v), true
		}
	}
	if r.global != nil {
		if v, ok := r.global.Dataset(key); ok {
			return strings.TrimSpace(v), true
		}
	}
	return "", false
}

// String resolves a string option.
func (r *Resolver) String(el *dom.Element, name string, def string) string {
	if v, ok := r.raw(el, name); ok {
		return v
	}
	return def
}

// Bool resolves a boolean option. An attribute present without a value
// (or with "true", "1", "yes") is true; "false", "0" and "no" are false;
// any other spelling keeps the default.
func (r *Resolver) Bool(el *dom.Element, name string, def bool) bool {
	v, ok := r.raw(el, name)
	if !ok {
		return def
	}
	switch strings.ToLower(v) {
	case "", "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	tracer().Debugf("option %s: unrecognized boolean %q, keeping default", name, v)
	return def
}

// Duration resolves a duration option, unit-normalized to milliseconds:
// a bare number is milliseconds, "ms" and "s" suffixes are honored.
// Non-numeric values resolve to zero.
func (r *Resolver) Duration(el *dom.Element, name string, def time.Duration) time.Duration {
	v, ok := r.raw(el, name)
	if !ok {
		return def
	}
	d, ok := ParseDuration(v)
	if !ok {
		return 0
	}
	return d
}

// Fraction resolves a visibility fraction, coerced to the nearest step of
// {0, 0.25, 0.5, 0.75, 1}. Non-numeric values resolve to zero.
func (r *Resolver) Fraction(el *dom.Element, name string) float64 {
	v, ok := r.raw(el, name)
	if !ok {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return CoerceFraction(f)
}

// CoerceFraction snaps an arbitrary number to the nearest of the five
// supported visibility steps, clamping to [0, 1].
func CoerceFraction(f float64) float64 {
	if f <= 0 {
		return 0
	}
	if f >= 1 {
		return 1
	}
	steps := [...]float64{0, 0.25, 0.5, 0.75, 1}
	best, dist := 0.0, 2.0
	for _, s := range steps {
		d := f - s
		if d < 0 {
			d = -d
		}
		if d < dist {
			best, dist = s, d
		}
	}
	return best
}
