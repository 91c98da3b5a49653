/*
Package dom is a thin facade over golang.org/x/net/html parse trees.

It provides the handful of DOM operations the animation engine needs:
class-list manipulation, dataset lookup, inline-style reads and writes,
selector queries, and dispatching of animation/transition lifecycle
events to registered listeners.

Geometry is deliberately not derived from the parse tree — a parse tree
has no layout. Instead, clients supply a Metrics implementation that
answers viewport height, scroll offset and per-element bounding boxes.
Metrics is the one place where host-platform state (window size caches,
scroll position) lives.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package dom

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer will return a tracer. We are tracing to 'eca.dom'.
func tracer() tracing.Trace {
	return tracing.Select("eca.dom")
}
