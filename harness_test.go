package eca

import (
	"sync"
	"time"

	"github.com/plakich/eca/dom"
)

// --- controllable time source ----------------------------------------------

type fakeTimer struct {
	clock   *fakeClock
	due     time.Time
	fn      func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// fakeClock is a controllable time source: timers fire only when the test
// advances the clock past their deadline.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(0, 0)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, fn func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, due: c.now.Add(d), fn: fn}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && !t.due.After(c.now) {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()
	for _, t := range due {
		t.fn()
	}
}

// --- frame scheduler ---------------------------------------------------------

// fakeFrames queues frame callbacks until the test flushes them, which is
// how the read/write phase split becomes observable.
type fakeFrames struct {
	mu      sync.Mutex
	pending []func()
}

func (f *fakeFrames) RequestFrame(fn func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending = append(f.pending, fn)
}

func (f *fakeFrames) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pending)
}

// Flush runs queued frame callbacks, including ones queued while flushing.
func (f *fakeFrames) Flush() {
	for {
		f.mu.Lock()
		if len(f.pending) == 0 {
			f.mu.Unlock()
			return
		}
		fn := f.pending[0]
		f.pending = f.pending[1:]
		f.mu.Unlock()
		fn()
	}
}

// --- geometry fixture --------------------------------------------------------

type fakeMetrics struct {
	vh      float64
	scrollY float64
	boxes   map[*dom.Element]dom.Rect
	reads   int
}

func newFakeMetrics(vh float64) *fakeMetrics {
	return &fakeMetrics{vh: vh, boxes: make(map[*dom.Element]dom.Rect)}
}

func (m *fakeMetrics) ViewportHeight() float64 { return m.vh }
func (m *fakeMetrics) ScrollY() float64        { return m.scrollY }

func (m *fakeMetrics) BoundingBox(e *dom.Element) dom.Rect {
	m.reads++
	return m.boxes[e]
}

func (m *fakeMetrics) place(e *dom.Element, top, bottom float64) {
	m.boxes[e] = dom.Rect{Top: top, Bottom: bottom}
}

// --- observation registry ------------------------------------------------------

type fakeObserverSource struct {
	observed map[*dom.Element]bool
}

func newFakeObserverSource() *fakeObserverSource {
	return &fakeObserverSource{observed: make(map[*dom.Element]bool)}
}

func (s *fakeObserverSource) Observe(el *dom.Element)   { s.observed[el] = true }
func (s *fakeObserverSource) Unobserve(el *dom.Element) { delete(s.observed, el) }

// --- engine fixture -----------------------------------------------------------

type fixture struct {
	doc     *dom.Document
	engine  *Engine
	metrics *fakeMetrics
	clock   *fakeClock
	frames  *fakeFrames
	source  *fakeObserverSource
}

func newFixture(t testingT, markup string, observe bool) *fixture {
	doc, err := dom.ParseString(markup)
	if err != nil {
		t.Fatalf("cannot parse fixture markup: %v", err)
	}
	f := &fixture{
		doc:     doc,
		metrics: newFakeMetrics(600),
		clock:   newFakeClock(),
		frames:  &fakeFrames{},
	}
	opts := Options{
		Metrics: f.metrics,
		Clock:   f.clock,
		Frames:  f.frames,
	}
	if observe {
		f.source = newFakeObserverSource()
		opts.Observe = f.source
	}
	f.engine, err = New(doc, opts)
	if err != nil {
		t.Fatalf("cannot construct engine: %v", err)
	}
	return f
}

// cycle triggers a scroll-driven update and flushes the write phase.
func (f *fixture) cycle() {
	f.engine.OnScroll()
	f.frames.Flush()
}

// querySel returns the single element matching a selector, failing the test
// otherwise.
func (f *fixture) querySel(t testingT, sel string) *dom.Element {
	elems, err := f.doc.QuerySelectorAll(sel)
	if err != nil || len(elems) != 1 {
		t.Fatalf("expected exactly one element for %q, have %d (err=%v)", sel, len(elems), err)
	}
	return elems[0]
}

// testingT is the subset of *testing.T the fixtures need.
type testingT interface {
	Fatalf(format string, args ...interface{})
}
