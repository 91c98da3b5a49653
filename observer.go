package eca

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/

import (
	"github.com/plakich/eca/dom"
)

// ObserverThresholds are the five fixed ratios at which hosts must
// configure their intersection observation. Only one of them matters to
// any given member; entries for the others are filtered by the straddle
// check below.
var ObserverThresholds = [5]float64{0, 0.25, 0.5, 0.75, 1}

// IntersectionEntry is one element's report from an observer callback
// batch: its intersection ratio with the viewport and its bounding-box
// coordinates at callback time.
type IntersectionEntry struct {
	Element      *dom.Element
	Ratio        float64
	Top, Bottom  float64
	Intersecting bool
}

// IntersectionSource is the host's observation registry. The engine
// temporarily unobserves elements it has nothing to do for and re-observes
// them on the next scroll or resize so their geometry stays current.
type IntersectionSource interface {
	Observe(el *dom.Element)
	Unobserve(el *dom.Element)
}

// observerStrategy derives visibility from intersection callback batches
// instead of polling bounding boxes. Metrics is still consulted for the
// scroll offset and viewport height, which decide whether the user
// actually moved since the previous batch.
type observerStrategy struct {
	metrics dom.Metrics
	source  IntersectionSource

	byElement map[*dom.Element]*Member
	pending   []IntersectionEntry

	lastScrollY   float64
	lastViewportH float64
	tracked       bool

	// processed members at the current scroll offset; rebuilt whenever the
	// offset or the viewport height changes.
	processed map[*Member]struct{}
	paused    map[*dom.Element]struct{}
}

func newObserverStrategy(metrics dom.Metrics, source IntersectionSource) *observerStrategy {
	return &observerStrategy{
		metrics:   metrics,
		source:    source,
		byElement: make(map[*dom.Element]*Member),
		processed: make(map[*Member]struct{}),
		paused:    make(map[*dom.Element]struct{}),
	}
}

func (o *observerStrategy) name() string {
	return "intersection"
}

// register starts observation for a member's element.
func (o *observerStrategy) register(m *Member) {
	o.byElement[m.el] = m
	o.source.Observe(m.el)
}

// deliver queues a callback batch for the next read phase.
func (o *observerStrategy) deliver(entries []IntersectionEntry) {
	o.pending = append(o.pending, entries...)
}

func (o *observerStrategy) read(groups []*Group, trigger Trigger) {
	scrollY := o.metrics.ScrollY()
	vh := o.metrics.ViewportHeight()
	moved := !o.tracked || scrollY != o.lastScrollY || vh != o.lastViewportH
	o.lastScrollY, o.lastViewportH, o.tracked = scrollY, vh, true

	if moved {
		// New scroll offset: duplicate-processing bookkeeping restarts and
		// everything paused gets measured again.
		o.processed = make(map[*Member]struct{})
		o.resume()
	}

	entries := o.pending
	o.pending = nil
	for _, entry := range entries {
		o.processEntry(entry, vh)
	}
}

func (o *observerStrategy) processEntry(entry IntersectionEntry, viewportHeight float64) {
	m := o.byElement[entry.Element]
	if m == nil {
		return
	}
	g := m.group

	// A play-on-load group needs exactly one handling; afterwards its
	// callbacks carry no information.
	if g.cfg.PlayOnLoad && g.playOnLoadDone {
		o.pause(m)
		return
	}
	// Without re-arming on exit, an animated member has nothing left to do,
	// ever.
	if g.cfg.Remove == RemoveNever && m.animated {
		o.pause(m)
		return
	}
	// An element whose own CSS transform crosses a threshold re-fires the
	// callback without the user scrolling. Same position, same offset,
	// already handled: ignore it, or the animation would loop.
	if m.hasReportedTop && entry.Top == m.lastReportedTop {
		if _, done := o.processed[m]; done {
			o.pause(m)
			return
		}
	}

	threshold := m.configuredThreshold
	if viewportHeight > 0 {
		threshold = correctedThreshold(threshold, entry.Bottom-entry.Top, viewportHeight)
	}
	var nowVisible bool
	switch {
	case !g.cfg.Transitions && m.visible:
		// Mirror of the polling asymmetry: an already-visible member of an
		// animation group stays visible while any intersection remains.
		nowVisible = entry.Intersecting
	case threshold == 0:
		nowVisible = entry.Intersecting
	default:
		nowVisible = entry.Intersecting && entry.Ratio >= threshold
	}
	if nowVisible == m.visible {
		// The reported ratio and this member's threshold do not straddle:
		// observation fires at five global ratios, only one applies here.
		// A pure skip, nothing is recorded.
		o.pause(m)
		return
	}

	m.lastReportedTop = entry.Top
	m.hasReportedTop = true
	m.setGeometry(entry.Top, entry.Bottom)
	m.correctThreshold(viewportHeight)
	o.processed[m] = struct{}{}
	m.setVisible(nowVisible)
}

func (o *observerStrategy) refresh(g *Group) {
	refreshGroupByBox(o.metrics, g)
}

// pause temporarily stops observing an element; resume() re-registers it
// on the next scroll or resize.
func (o *observerStrategy) pause(m *Member) {
	if _, already := o.paused[m.el]; already {
		return
	}
	o.paused[m.el] = struct{}{}
	o.source.Unobserve(m.el)
	tracer().Debugf("paused observation of a member of group %q", m.group.id)
}

func (o *observerStrategy) resume() {
	for el := range o.paused {
		o.source.Observe(el)
	}
	o.paused = make(map[*dom.Element]struct{})
}
