package eca

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/

import (
	"sync"
)

// scheduler coordinates update cycles. It guarantees that at most one
// read+write cycle is in flight — a trigger arriving while one is pending
// is dropped, not queued, because the next natural trigger will catch up —
// and that every geometry read of a cycle happens before any DOM write of
// that cycle, with the write phase deferred to the next frame boundary.
type scheduler struct {
	mu       sync.Mutex
	updating bool
	engine   *Engine
}

func (s *scheduler) request(trigger Trigger) {
	s.mu.Lock()
	if s.updating {
		s.mu.Unlock()
		tracer().Debugf("dropping %s trigger, cycle already in flight", trigger)
		return
	}
	s.updating = true
	s.mu.Unlock()

	e := s.engine

	// Read phase, synchronous with the trigger.
	e.mu.Lock()
	if trigger == TriggerResize {
		// Reachable thresholds depend on viewport height; re-validate every
		// member before sampling geometry.
		e.recorrectThresholds()
	}
	e.strategy.read(e.groups, trigger)
	e.mu.Unlock()

	// Write phase, batched to the next frame boundary.
	e.frames.RequestFrame(func() {
		e.mu.Lock()
		calls := e.decideAll()
		e.mu.Unlock()

		s.mu.Lock()
		s.updating = false
		s.mu.Unlock()

		// Just-animated callbacks run after the cycle has completed and
		// outside the engine lock, so they may use the public surface.
		for _, fn := range calls {
			fn()
		}
	})
}
