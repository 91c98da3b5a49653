package eca

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/

import (
	"fmt"
	"strings"
	"sync"

	tp "github.com/xlab/treeprint"
)

// timerRegistry keeps the active group-delay timer handles, keyed by group
// id, so callers may cancel a pending group delay.
type timerRegistry struct {
	mu sync.Mutex
	m  map[string]Timer
}

func newTimerRegistry() *timerRegistry {
	return &timerRegistry{m: make(map[string]Timer)}
}

func (r *timerRegistry) put(groupID string, t Timer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m[groupID] = t
}

func (r *timerRegistry) remove(groupID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.m, groupID)
}

func (r *timerRegistry) get(groupID string) Timer {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.m[groupID]
}

// DelayTimer returns the pending delay-timer handle for a group, or nil.
func (e *Engine) DelayTimer(groupID string) Timer {
	return e.timers.get(groupID)
}

// CancelDelay aborts a group's pending delay. The group stops waiting and
// its remaining delay is zeroed, so the next cycle proceeds straight to
// the per-member pass. Reports whether a pending delay was cancelled.
func (e *Engine) CancelDelay(groupID string) bool {
	t := e.timers.get(groupID)
	if t == nil {
		return false
	}
	stopped := t.Stop()
	e.timers.remove(groupID)
	e.mu.Lock()
	if g := e.byID[groupID]; g != nil && stopped {
		g.cfg.Delay = 0
		g.delaying = false
		g.delayTimer = nil
	}
	e.mu.Unlock()
	return stopped
}

// Group returns a tracked group by its exact id, or nil.
func (e *Engine) Group(id string) *Group {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.byID[id]
}

// GroupsMatching returns all groups whose id contains the given substring,
// in bootstrap order. Intended for callers writing custom tracking logic;
// the returned objects should be treated read-mostly.
func (e *Engine) GroupsMatching(substr string) []*Group {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []*Group
	for _, g := range e.groups {
		if strings.Contains(g.id, substr) {
			out = append(out, g)
		}
	}
	return out
}

// Groups returns all tracked groups in bootstrap order.
func (e *Engine) Groups() []*Group {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*Group, len(e.groups))
	copy(out, e.groups)
	return out
}

// Dump renders the live group/member registry as a tree, for debugging.
func (e *Engine) Dump() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	p := tp.New()
	for _, g := range e.groups {
		branch := p.AddBranch(fmt.Sprintf("%s [%s] animated %d/%d visible=%v finished=%v delaying=%v",
			g.id, e.strategy.name(), g.animatedCount, len(g.members), g.IsVisible(), g.finished, g.delaying))
		for _, m := range g.members {
			branch.AddNode(fmt.Sprintf("<%s class=%q> top=%.0f bottom=%.0f visible=%v animated=%v",
				m.el.TagName(), strings.Join(m.el.Classes(), " "), m.top, m.bottom, m.visible, m.animated))
		}
	}
	return p.String()
}
