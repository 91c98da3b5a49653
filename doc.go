/*
Package eca decides when groups of DOM elements receive or lose a single
CSS class that triggers a CSS-defined animation or transition.

The engine groups raw elements into animation units, tracks visibility
through one of two interchangeable strategies (scroll-driven polling or
intersection-callback driven), computes staggered and group-level delays,
and performs the class/style writes that start or re-arm animations. CSS
owns playback; the engine never computes intermediate animation frames.

Update cycles follow a strict read-then-write discipline: all geometry is
sampled before any class or style is written, and the write phase runs at
the next animation-frame boundary. Concurrent triggers (scroll and resize
in the same frame) collapse into one cycle; a trigger arriving while a
cycle is in flight is dropped, not queued.

Group delays are scheduled on a Clock and are best-effort: a background
tab throttling its timers stretches the wait, which is accepted rather
than corrected.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package eca

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer will return a tracer. We are tracing to 'eca.engine'.
func tracer() tracing.Trace {
	return tracing.Select("eca.engine")
}
