package eca

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/

import (
	"github.com/plakich/eca/dom"
)

// Trigger identifies the external event source that started an update
// cycle.
type Trigger uint8

const (
	TriggerScroll Trigger = iota
	TriggerResize
	TriggerIntersection
	TriggerTimer
)

func (t Trigger) String() string {
	switch t {
	case TriggerScroll:
		return "scroll"
	case TriggerResize:
		return "resize"
	case TriggerIntersection:
		return "intersection"
	case TriggerTimer:
		return "timer"
	}
	return "unknown"
}

// strategy is the visibility-calculation capability. Exactly one variant
// is chosen at engine construction; the scheduler and the decision logic
// depend only on this interface. Strategies write member geometry and
// visibility flags, never animation flags or styles, and always run before
// the write phase of the same cycle.
type strategy interface {
	name() string
	// read refreshes geometry and visibility for all groups as far as the
	// variant can, given the trigger.
	read(groups []*Group, trigger Trigger)
	// refresh re-derives one group's geometry and visibility on demand,
	// e.g. after a group delay elapsed and the old sample went stale.
	refresh(g *Group)
}

// readMemberByBox refreshes one member from a bounding-box sample. Shared
// between the polling strategy and the on-demand refresh path of both
// strategies.
func readMemberByBox(metrics dom.Metrics, m *Member) {
	box := metrics.BoundingBox(m.el)
	vh := metrics.ViewportHeight()
	m.setGeometry(box.Top, box.Bottom)
	m.correctThreshold(vh)

	px := m.entryOffsetPx()
	if m.visible && !m.group.cfg.Transitions {
		// Animations only need the offset on the way in; keeping it on the
		// way out re-triggers the edge once the element animates itself.
		px = 0
	}
	inView := m.top+px < vh && m.bottom-px > 0
	spansViewport := m.top <= 0 && m.bottom >= vh
	m.setVisible(inView || spansViewport)
}

func refreshGroupByBox(metrics dom.Metrics, g *Group) {
	for _, m := range g.members {
		readMemberByBox(metrics, m)
	}
}
