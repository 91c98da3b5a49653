package eca

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/

import (
	"time"

	"github.com/plakich/eca/dom"
	"github.com/plakich/eca/option"
)

// decideAll runs the write phase of one update cycle: for every eligible
// group, the per-member animate/de-animate pass. Callers hold e.mu. The
// returned closures are the pending just-animated callbacks; they must be
// invoked only after e.mu is released, since callbacks are free to call
// back into the engine's public surface.
func (e *Engine) decideAll() []func() {
	vh := e.metrics.ViewportHeight()
	var calls []func()
	for _, g := range e.groups {
		if fn := e.decideGroup(g, vh); fn != nil {
			calls = append(calls, fn)
		}
	}
	return calls
}

func (e *Engine) decideGroup(g *Group, viewportHeight float64) func() {
	if g.delaying {
		return nil
	}
	if g.cfg.Remove == RemoveNever && g.finished {
		// Terminal: every member animated and none will ever re-arm.
		return nil
	}
	if g.cfg.Delay > 0 && (g.IsVisible() || (g.cfg.PlayOnLoad && !g.playOnLoadDone)) {
		e.startGroupDelay(g)
		return nil
	}

	var justAnimated []*dom.Element
	n := len(g.members)
	for i := 0; i < n; i++ {
		m := g.members[i]
		if g.cfg.Reverse {
			m = g.members[n-1-i]
		}
		switch {
		case m.ReadyToAnimate():
			e.animateMember(m)
			justAnimated = append(justAnimated, m.el)
		case m.ReadyToDeanimate(viewportHeight):
			if g.AllOnFirstSight() {
				// The boundary member left the viewport: the whole group
				// de-animates atomically in this one pass.
				for _, mm := range g.members {
					if mm.animated {
						e.deanimateMember(mm)
					}
				}
				i = n // nothing left to do for this group
				continue
			}
			e.deanimateMember(m)
		}
	}

	if g.cfg.PlayOnLoad {
		g.playOnLoadDone = true
	}
	// Stagger numbering restarts every cycle, so members entering view
	// later begin a fresh sequence.
	g.resetStagger()
	if g.animatedCount == 0 {
		g.cfg.Delay = g.originalDelay
	}
	if g.callback != nil && len(justAnimated) > 0 {
		cb := g.callback
		return func() { cb(justAnimated) }
	}
	return nil
}

// animateMember assigns the member's delay, writes the marker class and
// flips the animated flag. Delay priority: unique per-element override,
// then the group's staggered counter; with no multiplier configured, any
// CSS-declared delay stays untouched.
func (e *Engine) animateMember(m *Member) {
	g := m.group
	if d, ok := m.UniqueDelay(); ok {
		e.writeDelay(m, d)
	} else if g.cfg.Multiplier > 0 {
		e.writeDelay(m, g.nextStaggerDelay())
	}
	m.el.AddClass(e.animatedClass)
	m.setAnimated(true)
	tracer().P("group", g.id).Debugf("member animated (%d/%d)", g.animatedCount, len(g.members))
}

func (e *Engine) writeDelay(m *Member, d time.Duration) {
	prop := "animation-delay"
	if m.group.cfg.Transitions {
		prop = "transition-delay"
	}
	m.el.SetStyleProperty(prop, option.FormatDelay(d))
}

// deanimateMember removes the marker class and restores the inline style
// captured at construction, discarding delays and any listener-applied
// styles accumulated since.
func (e *Engine) deanimateMember(m *Member) {
	m.el.RemoveClass(e.animatedClass)
	m.setAnimated(false)
	m.el.SetStyle(m.originalStyle)
	tracer().P("group", m.group.id).Debugf("member de-animated (%d/%d)", m.group.animatedCount, len(m.group.members))
}

// startGroupDelay defers the group's entire per-member pass. When the
// timer fires, visibility is re-derived (geometry may be stale after the
// wait), the delay is zeroed so it is not reapplied until reset, and the
// normal pass re-enters at the next frame boundary. Precision is
// best-effort: throttled background timers stretch the wait.
func (e *Engine) startGroupDelay(g *Group) {
	g.delaying = true
	wait := g.cfg.Delay
	tracer().P("group", g.id).Debugf("deferring group for %s", wait)
	g.delayTimer = e.clock.AfterFunc(wait, func() {
		e.mu.Lock()
		e.strategy.refresh(g)
		g.cfg.Delay = 0
		g.delaying = false
		g.delayTimer = nil
		e.mu.Unlock()
		e.timers.remove(g.id)
		e.sched.request(TriggerTimer)
	})
	e.timers.put(g.id, g.delayTimer)
}

// recorrectThresholds re-validates every member's effective threshold
// against the current viewport height. Callers hold e.mu.
func (e *Engine) recorrectThresholds() {
	vh := e.metrics.ViewportHeight()
	for _, g := range e.groups {
		for _, m := range g.members {
			m.correctThreshold(vh)
		}
	}
}
