package eca

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/

import (
	"time"

	"github.com/plakich/eca/dom"
)

// Member is one tracked element within a Group. It owns the element's
// geometry and animation flags; group-level configuration is read through
// the non-owning group reference, never duplicated here.
type Member struct {
	el    *dom.Element
	group *Group

	// Viewport-relative geometry, refreshed only by the visibility
	// strategies. hasGeometry guards against acting on never-measured
	// members.
	top, bottom float64
	hasGeometry bool

	// configuredThreshold is the user's visibility fraction; threshold is
	// the effective one, corrected downward when the element outgrows the
	// viewport so the fraction stays reachable.
	configuredThreshold float64
	threshold           float64

	visible  bool
	animated bool

	uniqueDelay    time.Duration
	hasUniqueDelay bool

	// Inline style captured at construction, restored verbatim when the
	// member de-animates.
	originalStyle string

	// Intersection-strategy bookkeeping: the top coordinate reported by the
	// previous callback batch.
	lastReportedTop float64
	hasReportedTop  bool
}

func newMember(el *dom.Element, g *Group, threshold float64) *Member {
	return &Member{
		el:                  el,
		group:               g,
		configuredThreshold: threshold,
		threshold:           threshold,
		originalStyle:       el.Style(),
	}
}

// Element returns the underlying DOM element.
func (m *Member) Element() *dom.Element {
	return m.el
}

// Group returns the owning group.
func (m *Member) Group() *Group {
	return m.group
}

// Top returns the element's top edge relative to the viewport.
func (m *Member) Top() float64 {
	return m.top
}

// Bottom returns the element's bottom edge relative to the viewport.
func (m *Member) Bottom() float64 {
	return m.bottom
}

// Height returns the element's measured height, 0 before the first read.
func (m *Member) Height() float64 {
	return m.bottom - m.top
}

// IsVisible reports the member's visibility flag as of the last read phase.
func (m *Member) IsVisible() bool {
	return m.visible
}

// IsAnimated reports whether the member currently carries the animated
// marker class.
func (m *Member) IsAnimated() bool {
	return m.animated
}

// Threshold returns the effective visibility fraction after viewport
// correction.
func (m *Member) Threshold() float64 {
	return m.threshold
}

// UniqueDelay returns the member's delay override, if any.
func (m *Member) UniqueDelay() (time.Duration, bool) {
	return m.uniqueDelay, m.hasUniqueDelay
}

// OriginalStyle returns the inline style captured at construction.
func (m *Member) OriginalStyle() string {
	return m.originalStyle
}

func (m *Member) setUniqueDelay(d time.Duration) {
	m.uniqueDelay = d
	m.hasUniqueDelay = true
}

// setGeometry is the only write path for the member's coordinates; the
// decision logic never sees stale-read geometry because strategies run
// strictly before it in the same cycle.
func (m *Member) setGeometry(top, bottom float64) {
	m.top = top
	m.bottom = bottom
	m.hasGeometry = true
	m.group.fresh = m
}

// setVisible flips the visibility flag through the group aggregate, which
// must stay exactly equal to the sum of member flags.
func (m *Member) setVisible(v bool) {
	if m.visible == v {
		return
	}
	m.visible = v
	if v {
		m.group.adjustVisible(1)
	} else {
		m.group.adjustVisible(-1)
	}
}

// setAnimated flips the animated flag through the group aggregate.
func (m *Member) setAnimated(a bool) {
	if m.animated == a {
		return
	}
	m.animated = a
	if a {
		m.group.adjustAnimated(1)
	} else {
		m.group.adjustAnimated(-1)
	}
}

// correctThreshold lowers the effective fraction step by step until the
// required pixel span fits the viewport. An element taller than the
// viewport can never show 100% of itself, so a threshold of 1 would be
// unreachable; substituting the next-lower reachable step is expected
// behavior, not an error. Re-run on every resize.
func (m *Member) correctThreshold(viewportHeight float64) {
	if m.hasGeometry && viewportHeight > 0 {
		m.threshold = correctedThreshold(m.configuredThreshold, m.Height(), viewportHeight)
		return
	}
	m.threshold = m.configuredThreshold
}

// correctedThreshold steps a fraction down until the required pixel span
// fits the viewport.
func correctedThreshold(t, height, viewportHeight float64) float64 {
	for t > 0 && t*height >= viewportHeight {
		t -= 0.25
	}
	if t < 0 {
		t = 0
	}
	return t
}

// entryOffsetPx converts the effective fraction into pixels for visibility
// checks on the way in. The pixel value is clamped to the element's own
// height so an oversized offset can never exceed the element.
func (m *Member) entryOffsetPx() float64 {
	h := m.Height()
	px := m.threshold * h
	if px > h {
		px = h
	}
	return px
}

// exitOffsetPx is the pixel offset used on the way out. Animations never
// need the offset on exit, only on entry: once an animated element is
// moving under its own CSS transform, an offset would re-trigger the
// visibility edge and loop. Transitions keep the symmetric offset.
func (m *Member) exitOffsetPx() float64 {
	if !m.group.cfg.Transitions {
		return 0
	}
	return m.entryOffsetPx()
}

// isAboveViewport reports whether the element has left the viewport above,
// under the exit offset rules.
func (m *Member) isAboveViewport() bool {
	return m.hasGeometry && m.bottom-m.exitOffsetPx() <= 0
}

// isBelowViewport reports whether the element has left the viewport below,
// under the exit offset rules.
func (m *Member) isBelowViewport(viewportHeight float64) bool {
	return m.hasGeometry && m.top+m.exitOffsetPx() >= viewportHeight
}

// ReadyToAnimate derives whether this member should receive the animated
// class in the current cycle: visible (or its group plays on load, or the
// group is aggregate-visible under first-sight semantics), not yet
// animated, and the group not currently waiting out its delay.
func (m *Member) ReadyToAnimate() bool {
	g := m.group
	if m.animated || g.delaying {
		return false
	}
	if g.cfg.PlayOnLoad {
		return true
	}
	if g.AllOnFirstSight() {
		return g.IsVisible()
	}
	return m.visible
}

// ReadyToDeanimate derives whether this member should lose the animated
// class: the group re-arms on exit, does not play on load, the member is
// animated, and the configured directional exit condition holds. Under
// first-sight semantics the condition is evaluated on the group's boundary
// member instead of this one.
func (m *Member) ReadyToDeanimate(viewportHeight float64) bool {
	g := m.group
	if g.cfg.Remove == RemoveNever || g.cfg.PlayOnLoad || !m.animated {
		return false
	}
	probe := m
	if g.AllOnFirstSight() {
		probe = g.freshest()
		if probe == nil {
			return false
		}
	}
	switch g.cfg.Remove {
	case RemoveBoth:
		return probe.isAboveViewport() || probe.isBelowViewport(viewportHeight)
	case RemoveAbove:
		return probe.isAboveViewport()
	case RemoveBelow:
		return probe.isBelowViewport(viewportHeight)
	}
	return false
}
