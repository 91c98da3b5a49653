package eca

import (
	"testing"
	"time"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plakich/eca/dom"
)

func TestSingleElementDefaultConfig(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "eca.engine")
	defer teardown()
	//
	f := newFixture(t, `<div><p class="eca fade"></p></div>`, false)
	el := f.querySel(t, ".fade")
	g := f.engine.Group("fade")
	require.NotNil(t, g)
	require.Equal(t, 1, g.Len())

	f.metrics.place(el, 700, 800) // below the fold
	f.cycle()
	assert.False(t, g.Members()[0].IsVisible(), "expected member below the fold to be invisible")
	assert.False(t, el.HasClass(DefaultAnimatedClass))

	f.metrics.place(el, 550, 650) // top crossed the viewport bottom
	f.cycle()
	m := g.Members()[0]
	assert.True(t, m.IsVisible(), "expected member to be visible after entering")
	assert.True(t, m.IsAnimated(), "expected member to be animated after entering")
	assert.True(t, el.HasClass(DefaultAnimatedClass))
	// with no stagger and no override, any CSS-declared delay stays untouched
	assert.Equal(t, "", el.StyleProperty("animation-delay"))
}

func TestStaggeredGroupOfThree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "eca.engine")
	defer teardown()
	//
	f := newFixture(t, `<div>
		<p id="a" class="eca card" data-eca-stagger="100ms"></p>
		<p id="b" class="eca card"></p>
		<p id="c" class="eca card"></p>
	</div>`, false)
	a := f.querySel(t, "#a")
	b := f.querySel(t, "#b")
	c := f.querySel(t, "#c")
	f.metrics.place(a, 100, 150)
	f.metrics.place(b, 200, 250)
	f.metrics.place(c, 300, 350)
	f.cycle()

	assert.Equal(t, "100ms", a.StyleProperty("animation-delay"))
	assert.Equal(t, "200ms", b.StyleProperty("animation-delay"))
	assert.Equal(t, "300ms", c.StyleProperty("animation-delay"))
	g := f.engine.Group("card")
	require.NotNil(t, g)
	assert.True(t, g.Finished())
}

func TestStaggeredGroupReversed(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "eca.engine")
	defer teardown()
	//
	f := newFixture(t, `<div>
		<p id="a" class="eca card" data-eca-stagger="100ms" data-eca-reverse="true"></p>
		<p id="b" class="eca card"></p>
		<p id="c" class="eca card"></p>
	</div>`, false)
	for _, sel := range []string{"#a", "#b", "#c"} {
		f.metrics.place(f.querySel(t, sel), 100, 150)
	}
	f.cycle()

	assert.Equal(t, "300ms", f.querySel(t, "#a").StyleProperty("animation-delay"))
	assert.Equal(t, "200ms", f.querySel(t, "#b").StyleProperty("animation-delay"))
	assert.Equal(t, "100ms", f.querySel(t, "#c").StyleProperty("animation-delay"))
}

func TestUniqueDelayOverridesStagger(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "eca.engine")
	defer teardown()
	//
	f := newFixture(t, `<div>
		<p id="a" class="eca card" data-eca-stagger="100ms"></p>
		<p id="b" class="eca card" data-eca-delay="42ms"></p>
		<p id="c" class="eca card"></p>
	</div>`, false)
	for _, sel := range []string{"#a", "#b", "#c"} {
		f.metrics.place(f.querySel(t, sel), 100, 150)
	}
	f.cycle()

	// b keeps its override and does not advance the stagger counter
	assert.Equal(t, "100ms", f.querySel(t, "#a").StyleProperty("animation-delay"))
	assert.Equal(t, "42ms", f.querySel(t, "#b").StyleProperty("animation-delay"))
	assert.Equal(t, "200ms", f.querySel(t, "#c").StyleProperty("animation-delay"))
}

func TestStaggerRestartsPerCycle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "eca.engine")
	defer teardown()
	//
	f := newFixture(t, `<div>
		<p id="a" class="eca card" data-eca-stagger="100ms"></p>
		<p id="b" class="eca card"></p>
	</div>`, false)
	a := f.querySel(t, "#a")
	b := f.querySel(t, "#b")
	f.metrics.place(a, 100, 150)
	f.metrics.place(b, 900, 950) // not yet in view
	f.cycle()
	assert.Equal(t, "100ms", a.StyleProperty("animation-delay"))

	f.metrics.place(b, 100, 150) // b enters in a later cycle
	f.cycle()
	// numbering restarted: b is the first hand-out of its own cycle
	assert.Equal(t, "100ms", b.StyleProperty("animation-delay"))
}

func TestRemoveOnExitBelowWithAnimations(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "eca.engine")
	defer teardown()
	//
	f := newFixture(t, `<div>
		<p class="eca box" data-eca-remove="below" data-eca-offset="0.25" style="color: red;"></p>
	</div>`, false)
	el := f.querySel(t, ".box")
	g := f.engine.Group("box")
	require.NotNil(t, g)
	m := g.Members()[0]

	f.metrics.place(el, 300, 400)
	f.cycle()
	require.True(t, m.IsAnimated(), "expected member to animate when visible")

	// Scrolled up: element sits just under the fold but not entirely below.
	// Animations contribute zero offset on exit, so nothing happens yet.
	f.metrics.place(el, 590, 690)
	f.cycle()
	assert.True(t, m.IsAnimated(), "expected member to stay animated while bottom condition unmet")

	f.metrics.place(el, 650, 750) // entirely below the viewport
	f.cycle()
	assert.False(t, m.IsAnimated(), "expected member to de-animate once entirely below")
	assert.False(t, el.HasClass(DefaultAnimatedClass))
	assert.Equal(t, "color: red;", el.Style(), "expected inline style restored verbatim")

	// Re-entry re-arms the animation.
	f.metrics.place(el, 300, 400)
	f.cycle()
	assert.True(t, m.IsAnimated(), "expected member to re-animate after re-entering")
}

func TestRemoveOnExitAboveOnly(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "eca.engine")
	defer teardown()
	//
	f := newFixture(t, `<div><p class="eca box" data-eca-remove="above"></p></div>`, false)
	el := f.querySel(t, ".box")
	m := f.engine.Group("box").Members()[0]

	f.metrics.place(el, 300, 400)
	f.cycle()
	require.True(t, m.IsAnimated())

	f.metrics.place(el, 650, 750) // exits below: wrong direction
	f.cycle()
	assert.True(t, m.IsAnimated(), "expected below-exit to be ignored in above-only mode")

	f.metrics.place(el, -200, -100) // exits above
	f.cycle()
	assert.False(t, m.IsAnimated(), "expected above-exit to de-animate")
}

func TestGroupDelayGating(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "eca.engine")
	defer teardown()
	//
	f := newFixture(t, `<div><p class="eca hero" data-eca-group-delay="1000"></p></div>`, false)
	el := f.querySel(t, ".hero")
	g := f.engine.Group("hero")
	require.NotNil(t, g)

	f.metrics.place(el, 100, 200)
	f.cycle()
	assert.True(t, g.IsDelaying(), "expected group to enter delaying state")
	assert.False(t, el.HasClass(DefaultAnimatedClass), "expected no member processed while delaying")
	require.NotNil(t, f.engine.DelayTimer("hero"), "expected a registered delay-timer handle")

	f.clock.Advance(999 * time.Millisecond)
	f.frames.Flush()
	assert.False(t, el.HasClass(DefaultAnimatedClass), "expected nothing to happen before the delay elapsed")

	f.clock.Advance(1 * time.Millisecond)
	f.frames.Flush()
	assert.False(t, g.IsDelaying())
	assert.True(t, el.HasClass(DefaultAnimatedClass), "expected member animated after the delay elapsed")
	assert.Nil(t, f.engine.DelayTimer("hero"), "expected the timer handle to be retired")
	assert.Equal(t, time.Duration(0), g.Delay(), "expected the waited-out delay to be zeroed")
}

func TestGroupDelayRestoredAfterFullDeanimation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "eca.engine")
	defer teardown()
	//
	f := newFixture(t, `<div>
		<p class="eca hero" data-eca-group-delay="500" data-eca-remove="both"></p>
	</div>`, false)
	el := f.querySel(t, ".hero")
	g := f.engine.Group("hero")

	f.metrics.place(el, 100, 200)
	f.cycle()
	f.clock.Advance(500 * time.Millisecond)
	f.frames.Flush()
	require.True(t, el.HasClass(DefaultAnimatedClass))
	require.Equal(t, time.Duration(0), g.Delay())

	f.metrics.place(el, -300, -200) // leaves above, re-arms
	f.cycle()
	assert.False(t, el.HasClass(DefaultAnimatedClass))
	assert.Equal(t, 500*time.Millisecond, g.Delay(), "expected delay restored once animated count returned to zero")
}

func TestCancelDelay(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "eca.engine")
	defer teardown()
	//
	f := newFixture(t, `<div><p class="eca hero" data-eca-group-delay="1000"></p></div>`, false)
	el := f.querySel(t, ".hero")
	g := f.engine.Group("hero")

	f.metrics.place(el, 100, 200)
	f.cycle()
	require.True(t, g.IsDelaying())

	if !f.engine.CancelDelay("hero") {
		t.Fatal("expected CancelDelay to cancel a pending delay, didn't")
	}
	assert.False(t, g.IsDelaying())

	f.cycle()
	assert.True(t, el.HasClass(DefaultAnimatedClass), "expected the next cycle to proceed straight to the member pass")
}

func TestPlayOnLoadAnimatesWithoutVisibility(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "eca.engine")
	defer teardown()
	//
	f := newFixture(t, `<div>
		<p id="a" class="eca intro" data-eca-play-on-load="true"></p>
		<p id="b" class="eca intro"></p>
	</div>`, false)
	f.metrics.place(f.querySel(t, "#a"), 900, 950) // both off-screen
	f.metrics.place(f.querySel(t, "#b"), 1000, 1050)
	f.engine.Start()
	f.frames.Flush()

	g := f.engine.Group("intro")
	require.NotNil(t, g)
	assert.Equal(t, 2, g.AnimatedCount(), "expected every member animated on load")
	assert.True(t, g.Finished())
}

func TestAllOnFirstSight(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "eca.engine")
	defer teardown()
	//
	f := newFixture(t, `<div>
		<p id="a" class="eca gallery" data-eca-all-on-first-sight="true" data-eca-remove="above"></p>
		<p id="b" class="eca gallery"></p>
		<p id="c" class="eca gallery"></p>
	</div>`, false)
	a := f.querySel(t, "#a")
	b := f.querySel(t, "#b")
	c := f.querySel(t, "#c")
	g := f.engine.Group("gallery")
	require.NotNil(t, g)

	// only the first member is actually in view
	f.metrics.place(a, 500, 550)
	f.metrics.place(b, 700, 750)
	f.metrics.place(c, 900, 950)
	f.cycle()
	assert.Equal(t, 3, g.AnimatedCount(), "expected aggregate visibility to animate the whole group")

	// the whole group de-animates atomically once the boundary member (the
	// last one) has left above
	f.metrics.place(a, -500, -450)
	f.metrics.place(b, -300, -250)
	f.metrics.place(c, -100, -50)
	f.cycle()
	assert.Equal(t, 0, g.AnimatedCount(), "expected atomic whole-group de-animation")
	for _, el := range []string{"#a", "#b", "#c"} {
		assert.False(t, f.querySel(t, el).HasClass(DefaultAnimatedClass))
	}
}

func TestMalformedListenerSpec(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "eca.engine")
	defer teardown()
	//
	f := newFixture(t, `<div>
		<p class="eca broken" data-eca-listeners='{"start": broken json'></p>
	</div>`, false)
	el := f.querySel(t, ".broken")
	g := f.engine.Group("broken")
	require.NotNil(t, g, "expected group to be constructed despite malformed listener spec")

	// no listener fired: dispatching the platform event changes nothing
	el.Dispatch("animationstart")
	assert.Equal(t, "", el.Style())

	// decision logic for the group unaffected
	f.metrics.place(el, 100, 200)
	f.cycle()
	assert.True(t, el.HasClass(DefaultAnimatedClass))
}

func TestListenerAppliesStyleOnTargetOnly(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "eca.engine")
	defer teardown()
	//
	f := newFixture(t, `<div>
		<p class="eca glow" data-eca-listeners='{"end": "opacity: 1"}'><span id="inner"></span></p>
	</div>`, false)
	el := f.querySel(t, ".glow")
	inner := f.querySel(t, "#inner")

	inner.Dispatch("animationend") // bubbles, but target is the descendant
	assert.Equal(t, "", el.Style(), "expected bubbled event not to apply the style")

	el.Dispatch("animationend")
	assert.Equal(t, "1", el.StyleProperty("opacity"), "expected the style applied for the element's own event")
}

func TestTransitionListenerEventNames(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "eca.engine")
	defer teardown()
	//
	f := newFixture(t, `<div>
		<p class="eca slide" data-eca-transitions="true" data-eca-listeners='{"run": "color: blue", "iteration": "color: red"}'></p>
	</div>`, false)
	el := f.querySel(t, ".slide")

	el.Dispatch("transitionrun")
	assert.Equal(t, "blue", el.StyleProperty("color"))
	// "iteration" has no transition counterpart and was skipped
	el.Dispatch("animationiteration")
	assert.NotEqual(t, "red", el.StyleProperty("color"))
}

func TestReadBeforeWrite(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "eca.engine")
	defer teardown()
	//
	f := newFixture(t, `<div>
		<p id="a" class="eca one"></p>
	</div><div>
		<p id="b" class="eca two"></p>
	</div>`, false)
	a := f.querySel(t, "#a")
	b := f.querySel(t, "#b")
	f.metrics.place(a, 100, 200)
	f.metrics.place(b, 100, 200)

	f.engine.OnScroll()
	// read phase ran synchronously: geometry for every group sampled
	if f.metrics.reads < 2 {
		t.Fatalf("expected geometry of both groups sampled before any write, have %d reads", f.metrics.reads)
	}
	assert.False(t, a.HasClass(DefaultAnimatedClass), "expected no class write before the frame boundary")
	assert.False(t, b.HasClass(DefaultAnimatedClass), "expected no class write before the frame boundary")

	f.frames.Flush()
	assert.True(t, a.HasClass(DefaultAnimatedClass))
	assert.True(t, b.HasClass(DefaultAnimatedClass))
}

func TestConcurrentTriggerDropped(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "eca.engine")
	defer teardown()
	//
	f := newFixture(t, `<div><p class="eca one"></p></div>`, false)
	f.metrics.place(f.querySel(t, ".one"), 100, 200)

	f.engine.OnScroll()
	f.engine.OnResize() // same frame: dropped, not queued
	if n := f.frames.Pending(); n != 1 {
		t.Errorf("expected exactly one pending write phase, have %d", n)
	}
	f.frames.Flush()

	f.engine.OnResize() // after the write phase: a fresh cycle
	if n := f.frames.Pending(); n != 1 {
		t.Errorf("expected a fresh cycle after the previous finished, have %d pending", n)
	}
	f.frames.Flush()
}

func TestIdempotentDeanimationRestore(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "eca.engine")
	defer teardown()
	//
	f := newFixture(t, `<div>
		<p class="eca box" style="color: red; margin-top: 4px;"
		   data-eca-stagger="100ms" data-eca-remove="both"
		   data-eca-listeners='{"end": "opacity: 0.5"}'></p>
	</div>`, false)
	el := f.querySel(t, ".box")
	original := el.Style()

	f.metrics.place(el, 100, 200)
	f.cycle()
	require.NotEqual(t, original, el.Style(), "expected the delay write to change the inline style")
	el.Dispatch("animationend") // listener piles more style on top
	require.Equal(t, "0.5", el.StyleProperty("opacity"))

	f.metrics.place(el, -300, -200)
	f.cycle()
	assert.Equal(t, original, el.Style(), "expected the captured style restored verbatim")
}

func TestCallbackMayUseEnginePublicSurface(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "eca.engine")
	defer teardown()
	//
	f := newFixture(t, `<div><p class="eca card"></p></div>`, false)
	el := f.querySel(t, ".card")
	g := f.engine.Group("card")
	require.NotNil(t, g)

	// The callback is the extension point for custom animation logic, so it
	// must be able to call back into the engine without deadlocking.
	var lookedUp *Group
	var dumped string
	g.SetCallback(func(justAnimated []*dom.Element) {
		lookedUp = f.engine.Group("card")
		dumped = f.engine.Dump()
		f.engine.CancelDelay("card")
	})
	f.metrics.place(el, 100, 200)
	f.cycle()

	require.Equal(t, g, lookedUp, "expected the callback to look up its own group")
	assert.NotEmpty(t, dumped)
	assert.True(t, el.HasClass(DefaultAnimatedClass))
}

func TestCustomOptionPrefix(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "eca.engine")
	defer teardown()
	//
	doc, err := dom.ParseString(`<div>
		<p id="a" class="eca card" data-viz-stagger="100ms" data-eca-stagger="900ms"></p>
		<p id="b" class="eca card"></p>
	</div>`)
	require.NoError(t, err)
	metrics := newFakeMetrics(600)
	frames := &fakeFrames{}
	engine, err := New(doc, Options{
		Metrics: metrics,
		Clock:   newFakeClock(),
		Frames:  frames,
		Prefix:  "viz",
	})
	require.NoError(t, err)

	els, err := doc.QuerySelectorAll(".card")
	require.NoError(t, err)
	require.Len(t, els, 2)
	metrics.place(els[0], 100, 150)
	metrics.place(els[1], 200, 250)
	engine.OnScroll()
	frames.Flush()

	// options resolve under the viz prefix; the eca attribute is ignored
	assert.Equal(t, "100ms", els[0].StyleProperty("animation-delay"))
	assert.Equal(t, "200ms", els[1].StyleProperty("animation-delay"))
}

func TestThresholdCorrectedForOversizedElement(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "eca.engine")
	defer teardown()
	//
	f := newFixture(t, `<div><p class="eca tall" data-eca-offset="1"></p></div>`, false)
	el := f.querySel(t, ".tall")
	m := f.engine.Group("tall").Members()[0]

	// 1000px element in a 600px viewport: fractions 1 and 0.75 can never be
	// shown at once, 0.5 can.
	f.metrics.place(el, 0, 1000)
	f.cycle()
	assert.Equal(t, 0.5, m.Threshold(), "expected threshold stepped down to the largest reachable fraction")
	assert.True(t, m.IsVisible(), "expected the full-span element to count as visible")
	assert.True(t, m.IsAnimated())

	// In a roomier viewport the configured fraction becomes reachable again.
	f.metrics.vh = 2000
	f.engine.OnResize()
	f.frames.Flush()
	assert.Equal(t, 1.0, m.Threshold(), "expected configured threshold restored after resize")
}

func TestGroupIDDisambiguation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "eca.engine")
	defer teardown()
	//
	f := newFixture(t, `<div>
		<p class="eca teaser"></p>
	</div><div>
		<p class="eca teaser"></p>
	</div>`, false)
	if f.engine.Group("teaser") == nil {
		t.Error("expected first group to keep its leading class as id, hasn't")
	}
	if f.engine.Group("teaser-2") == nil {
		t.Error("expected second group id to carry a running-integer suffix, hasn't")
	}
	if n := len(f.engine.GroupsMatching("teaser")); n != 2 {
		t.Errorf("expected substring lookup to find 2 groups, found %d", n)
	}
}

func TestJustAnimatedCallback(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "eca.engine")
	defer teardown()
	//
	f := newFixture(t, `<div>
		<p id="a" class="eca card"></p>
		<p id="b" class="eca card"></p>
	</div>`, false)
	a := f.querySel(t, "#a")
	b := f.querySel(t, "#b")
	g := f.engine.Group("card")
	require.NotNil(t, g)

	var batches [][]*dom.Element
	g.SetCallback(func(justAnimated []*dom.Element) {
		batches = append(batches, justAnimated)
	})

	f.metrics.place(a, 100, 200)
	f.metrics.place(b, 900, 950)
	f.cycle()
	require.Len(t, batches, 1, "expected one callback batch for the first cycle")
	assert.Equal(t, []*dom.Element{a}, batches[0])

	f.cycle() // nothing new animated: no callback
	assert.Len(t, batches, 1)

	f.metrics.place(b, 100, 200)
	f.cycle()
	require.Len(t, batches, 2)
	assert.Equal(t, []*dom.Element{b}, batches[1])
}
