package eca

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/

import (
	"errors"
	"sync"

	"github.com/plakich/eca/dom"
	"github.com/plakich/eca/option"
)

// ErrNoMetrics is returned by New when no geometry source is supplied;
// without one, no visibility can ever be derived.
var ErrNoMetrics = errors.New("no geometry metrics supplied")

// DefaultMarker is the class that opts an element into tracking.
const DefaultMarker = "eca"

// DefaultAnimatedClass is the single class whose presence triggers the
// CSS-defined animation or transition.
const DefaultAnimatedClass = "eca-animate"

// Options configures an Engine. Zero values select the defaults noted per
// field; only Metrics is mandatory.
type Options struct {
	// Marker is the class identifying trackable elements. Default "eca".
	Marker string
	// AnimatedClass is the class added to animate a member and removed to
	// re-arm it. Default "eca-animate".
	AnimatedClass string
	// Prefix is the dataset prefix under which option attributes are read,
	// i.e. prefix "viz" reads "data-viz-stagger". Default "eca".
	Prefix string
	// Metrics answers viewport and bounding-box questions. Required.
	Metrics dom.Metrics
	// Clock schedules group-delay timers. Default: runtime timers.
	Clock Clock
	// Frames schedules write phases at frame boundaries. Default: a
	// 16ms timer emulation.
	Frames Frames
	// Observe enables the intersection-driven visibility strategy. Leaving
	// it nil — the capability probe for hosts without intersection
	// observation — forces the polling strategy.
	Observe IntersectionSource
}

// Engine is the visibility-and-timing decision engine. One Engine tracks
// all groups of one document for the lifetime of the page; there is no
// teardown.
//
// The engine expects cooperative, sequenced access: its entry points
// serialize on an internal mutex, so callbacks from scroll handlers,
// resize handlers, observers and timers interleave but never overlap.
type Engine struct {
	mu sync.Mutex

	doc           *dom.Document
	marker        string
	animatedClass string
	optionPrefix  string

	metrics  dom.Metrics
	clock    Clock
	frames   Frames
	strategy strategy
	sched    *scheduler
	timers   *timerRegistry

	groups []*Group
	byID   map[string]*Group
}

// New bootstraps an engine over a parsed document: it queries the marker
// class, builds one group per leading class with its members in document
// order, resolves each group's configuration, and wires listeners. No
// cycle runs until the first trigger arrives (or Start is called).
func New(doc *dom.Document, opts Options) (*Engine, error) {
	if doc == nil {
		return nil, dom.ErrNoDocument
	}
	if opts.Metrics == nil {
		return nil, ErrNoMetrics
	}
	e := &Engine{
		doc:           doc,
		marker:        opts.Marker,
		animatedClass: opts.AnimatedClass,
		optionPrefix:  opts.Prefix,
		metrics:       opts.Metrics,
		clock:         opts.Clock,
		frames:        opts.Frames,
		timers:        newTimerRegistry(),
		byID:          make(map[string]*Group),
	}
	if e.marker == "" {
		e.marker = DefaultMarker
	}
	if e.animatedClass == "" {
		e.animatedClass = DefaultAnimatedClass
	}
	if e.optionPrefix == "" {
		e.optionPrefix = option.DefaultPrefix
	}
	if e.clock == nil {
		e.clock = SystemClock()
	}
	if e.frames == nil {
		e.frames = SystemFrames()
	}
	if opts.Observe != nil {
		e.strategy = newObserverStrategy(opts.Metrics, opts.Observe)
	} else {
		e.strategy = newPollStrategy(opts.Metrics)
	}
	e.sched = &scheduler{engine: e}
	if err := e.bootstrap(); err != nil {
		return nil, err
	}
	return e, nil
}

// prefix returns the dataset prefix for recognized options.
func (e *Engine) prefix() string {
	return e.optionPrefix
}

// Start runs the initial cycle, animating play-on-load groups and whatever
// is visible without scrolling.
func (e *Engine) Start() {
	e.sched.request(TriggerScroll)
}

// OnScroll is the entry point for host scroll events.
func (e *Engine) OnScroll() {
	e.sched.request(TriggerScroll)
}

// OnResize is the entry point for host resize events. Besides the normal
// cycle it refreshes the cached viewport height and re-validates member
// thresholds before the read phase.
func (e *Engine) OnResize() {
	e.sched.request(TriggerResize)
}

// HandleIntersections is the entry point for observer callback batches.
// With the polling strategy active the batch carries no information and is
// ignored.
func (e *Engine) HandleIntersections(entries []IntersectionEntry) {
	o, ok := e.strategy.(*observerStrategy)
	if !ok {
		tracer().Debugf("intersection batch ignored: polling strategy active")
		return
	}
	e.mu.Lock()
	o.deliver(entries)
	e.mu.Unlock()
	e.sched.request(TriggerIntersection)
}
