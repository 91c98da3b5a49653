package eca

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/

import (
	"encoding/json"

	"github.com/plakich/eca/dom"
)

// Abbreviated lifecycle-event names accepted in listener specs, translated
// to the concrete platform event names. Which column applies is decided by
// the group's transitions flag; an abbreviation with no counterpart for
// the group's kind is skipped.
var animationEvents = map[string]string{
	"start":     "animationstart",
	"end":       "animationend",
	"iteration": "animationiteration",
}

var transitionEvents = map[string]string{
	"start": "transitionstart",
	"end":   "transitionend",
	"run":   "transitionrun",
}

// attachListeners wires a group's listener spec: a JSON object mapping
// abbreviated event names to literal style strings, applied to the element
// verbatim when the event's target is the element itself (not a bubbled
// descendant). Malformed JSON skips the feature for this group and leaves
// everything else untouched.
func (e *Engine) attachListeners(g *Group) {
	if g.cfg.Listeners == "" {
		return
	}
	var spec map[string]string
	if err := json.Unmarshal([]byte(g.cfg.Listeners), &spec); err != nil {
		tracer().P("group", g.id).Errorf("malformed listener spec, skipping listeners: %v", err)
		return
	}
	events := animationEvents
	if g.cfg.Transitions {
		events = transitionEvents
	}
	for abbrev, style := range spec {
		eventName, ok := events[abbrev]
		if !ok {
			tracer().P("group", g.id).Debugf("listener %q has no event for this group kind", abbrev)
			continue
		}
		style := style
		for _, m := range g.members {
			el := m.el
			el.AddEventListener(eventName, func(ev dom.Event) {
				if ev.Target != el {
					return
				}
				if err := el.ApplyStyle(style); err != nil {
					tracer().P("group", g.id).Errorf("listener style unparsable: %v", err)
				}
			})
		}
	}
}
