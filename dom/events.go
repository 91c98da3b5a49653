package dom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/

// Event is a dispatched lifecycle event, e.g. "animationend". Target is
// the element the event originated on, which stays fixed while the event
// bubbles towards the root.
type Event struct {
	Type   string
	Target *Element
}

// AddEventListener registers a handler for an event type on this element.
// Handlers fire for events targeted at the element and for events bubbling
// up from descendants; handlers that only care about the element itself
// must compare Event.Target.
func (e *Element) AddEventListener(typ string, handler func(Event)) {
	if e.listeners == nil {
		e.listeners = make(map[string][]func(Event))
	}
	e.listeners[typ] = append(e.listeners[typ], handler)
}

// Dispatch delivers an event to the target element and then bubbles it
// through the ancestor chain.
func (e *Element) Dispatch(typ string) {
	ev := Event{Type: typ, Target: e}
	for el := e; el != nil; el = el.Parent() {
		for _, h := range el.listeners[typ] {
			h(ev)
		}
	}
}
