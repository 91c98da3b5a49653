package eca

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/

import (
	"strings"
	"time"

	"github.com/plakich/eca/dom"
)

// RemoveMode controls whether members lose the animated class again when
// they leave the viewport, and in which direction the exit must happen.
type RemoveMode uint8

const (
	RemoveNever RemoveMode = iota // animated members stay animated
	RemoveBoth                    // re-arm on exit above or below
	RemoveAbove                   // re-arm only when the element left above
	RemoveBelow                   // re-arm only when the element left below
)

// ParseRemoveMode coerces a raw option string into a RemoveMode. It never
// fails; unrecognized spellings mean RemoveNever.
func ParseRemoveMode(v string) RemoveMode {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "both", "yes", "1":
		return RemoveBoth
	case "above":
		return RemoveAbove
	case "below":
		return RemoveBelow
	}
	return RemoveNever
}

func (m RemoveMode) String() string {
	switch m {
	case RemoveBoth:
		return "both"
	case RemoveAbove:
		return "above"
	case RemoveBelow:
		return "below"
	}
	return "never"
}

// GroupConfig is the configuration of one animation unit, resolved once at
// group creation from per-element settings with page-global fallbacks.
// Members read it through their group reference; it is never copied onto
// members.
type GroupConfig struct {
	Multiplier      time.Duration // stagger base interval; 0 disables stagger
	FromZero        bool          // stagger counts from 0×Multiplier instead of 1×
	Delay           time.Duration // one-time whole-group delay
	PlayOnLoad      bool          // animate every member on the first cycle, no visibility gating
	Reverse         bool          // process members in reverse document order
	AllOnFirstSight bool          // group-aggregate visibility; overridden by PlayOnLoad
	Transitions     bool          // group uses CSS transitions instead of animations
	Remove          RemoveMode
	Listeners       string  // raw listener spec, as written in markup
	Offset          float64 // visibility fraction, one of 0, .25, .5, .75, 1
}

// Group is one animation unit: an ordered set of members sharing one
// resolved configuration and one delay/stagger timeline.
type Group struct {
	id      string
	cfg     GroupConfig
	members []*Member

	originalDelay time.Duration // restored when the animated count returns to zero

	// Aggregate runtime state, kept exact by the member setters.
	visibleCount  int
	animatedCount int
	finished      bool

	delaying   bool
	delayTimer Timer

	// Stagger hand-out state; reset after every update cycle.
	staggerNext time.Duration
	staggerSet  bool

	// fresh is the member whose geometry was updated most recently. In
	// intersection-driven mode not every member has current geometry, so
	// group-level boundary checks fall back to this one.
	fresh *Member

	playOnLoadDone bool

	callback func(justAnimated []*dom.Element)
}

func newGroup(id string, cfg GroupConfig) *Group {
	if cfg.PlayOnLoad {
		// Play-on-load wins; group-aggregate visibility never applies then.
		cfg.AllOnFirstSight = false
	}
	return &Group{
		id:            id,
		cfg:           cfg,
		originalDelay: cfg.Delay,
	}
}

// ID returns the group's identity, unique among concurrently tracked
// groups for the run.
func (g *Group) ID() string {
	return g.id
}

// Config returns the group's resolved configuration.
func (g *Group) Config() GroupConfig {
	return g.cfg
}

// Members returns the group's members in document order. The slice is a
// copy; the member objects are shared and should be treated read-mostly by
// external callers.
func (g *Group) Members() []*Member {
	out := make([]*Member, len(g.members))
	copy(out, g.members)
	return out
}

// Len returns the member count.
func (g *Group) Len() int {
	return len(g.members)
}

// IsVisible reports the aggregate visibility: true if at least one member
// is visible.
func (g *Group) IsVisible() bool {
	return g.visibleCount > 0
}

// AnimatedCount returns the number of currently animated members.
func (g *Group) AnimatedCount() int {
	return g.animatedCount
}

// Finished reports whether every member is animated.
func (g *Group) Finished() bool {
	return g.finished
}

// IsDelaying reports whether the group is waiting out its group delay.
func (g *Group) IsDelaying() bool {
	return g.delaying
}

// Delay returns the currently effective group delay. It is zeroed once the
// delay has been waited out and restored from the configured value when the
// group fully de-animates.
func (g *Group) Delay() time.Duration {
	return g.cfg.Delay
}

// AllOnFirstSight reports whether group-aggregate visibility drives the
// members. Play-on-load groups never use it.
func (g *Group) AllOnFirstSight() bool {
	return g.cfg.AllOnFirstSight && !g.cfg.PlayOnLoad
}

// SetCallback installs a per-group callback invoked with the just-animated
// elements after the cycle that animated them has completed. This is the
// supported extension point for non-CSS animation logic; the callback runs
// outside the engine lock and may use the engine's public surface.
func (g *Group) SetCallback(fn func(justAnimated []*dom.Element)) {
	g.callback = fn
}

func (g *Group) appendMember(m *Member) {
	g.members = append(g.members, m)
	g.finished = g.animatedCount == len(g.members) && len(g.members) > 0
}

// boundary returns the member whose geometry stands in for the whole group
// when aggregate visibility applies: the last member in processing order.
func (g *Group) boundary() *Member {
	if len(g.members) == 0 {
		return nil
	}
	if g.cfg.Reverse {
		return g.members[0]
	}
	return g.members[len(g.members)-1]
}

// freshest returns a member with usable geometry for group-level boundary
// checks: the designated boundary member, or — when that one has never
// been measured, which happens in intersection-driven mode — the most
// recently updated member.
func (g *Group) freshest() *Member {
	if b := g.boundary(); b != nil && b.hasGeometry {
		return b
	}
	return g.fresh
}

// nextStaggerDelay hands out the next staggered delay and advances the
// counter. The first hand-out of a cycle seeds at 0 or one multiplier,
// depending on FromZero; every further hand-out adds one multiplier.
func (g *Group) nextStaggerDelay() time.Duration {
	if !g.staggerSet {
		g.staggerSet = true
		if g.cfg.FromZero {
			g.staggerNext = 0
		} else {
			g.staggerNext = g.cfg.Multiplier
		}
	} else {
		g.staggerNext += g.cfg.Multiplier
	}
	return g.staggerNext
}

// resetStagger restarts stagger numbering. Called after every update cycle
// so members entering view later start a fresh sequence.
func (g *Group) resetStagger() {
	g.staggerSet = false
	g.staggerNext = 0
}

// adjustVisible is the member-setter side effect keeping the aggregate
// visible count exact.
func (g *Group) adjustVisible(delta int) {
	g.visibleCount += delta
}

// adjustAnimated is the member-setter side effect keeping the animated
// count and the finished flag exact.
func (g *Group) adjustAnimated(delta int) {
	g.animatedCount += delta
	g.finished = len(g.members) > 0 && g.animatedCount == len(g.members)
}
