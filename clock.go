package eca

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/

import (
	"time"
)

// Timer is the handle of a pending one-shot delay. Stop reports whether
// the timer was cancelled before firing.
type Timer interface {
	Stop() bool
}

// Clock schedules one-shot callbacks. The engine uses it for group delays
// only; tests substitute a controllable clock.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
}

// Frames schedules a callback for the next animation-frame boundary. The
// contract is asynchronous delivery: implementations must not invoke fn
// before RequestFrame returns.
type Frames interface {
	RequestFrame(fn func())
}

// DefaultFrameInterval approximates a 60Hz frame-rendering callback for
// hosts without a native one.
const DefaultFrameInterval = 16 * time.Millisecond

// SystemClock returns a Clock backed by the runtime timers.
func SystemClock() Clock {
	return systemClock{}
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// SystemFrames returns a Frames implementation that fires callbacks after
// DefaultFrameInterval, emulating requestAnimationFrame off a timer.
func SystemFrames() Frames {
	return frameTimer{interval: DefaultFrameInterval}
}

type frameTimer struct {
	interval time.Duration
}

func (f frameTimer) RequestFrame(fn func()) {
	time.AfterFunc(f.interval, fn)
}
