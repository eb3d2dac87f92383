// Package anim drives bar meter animations over a pixel surface. An
// Engine runs one animation at a time, stepped from the caller's render
// loop: pick a starter such as FillUpIntv or ScrollingUpBlocks, then
// call Update with a monotonic millisecond timestamp. The engine never
// sleeps and never draws outside Update.
//
// Starters and controls return the engine, so calls chain:
//
//	eng.Loop().FillUpIntv(25, 100, 0)
//	for running := true; running; {
//		running = eng.Update(clock.Now())
//		m.Show()
//	}
package anim

import (
	"errors"
	"math/rand"
	"time"
)

// Surface is the pixel contract animations draw through. Out of range
// segments must be ignored on write and read as off.
type Surface interface {
	Count() int
	SetPixel(seg int, on bool)
	PixelState(seg int) bool
	Clear()
}

// Signal supplies a live reading to signal driven animations, typically
// an ADC sample or a percent value depending on the starter.
type Signal func() uint16

// ErrBlockPoolExhausted reports that a block animation ran out of pool
// slots and dropped an emission. Read it through Err.
var ErrBlockPoolExhausted = errors.New("block pool exhausted")

// program is one animation state machine. step advances it to e.now and
// reports completion of a cycle.
type program interface {
	step(e *Engine) bool
}

// Engine owns the animation control state shared by every program:
// run/pause/loop flags, render direction and logic, and the block
// emission gate. Per animation state lives in the program started last.
type Engine struct {
	surf    Surface
	segs    int
	program program

	epoch time.Time
	now   int64
	rng   *rand.Rand

	err error

	init        bool
	running     bool
	paused      bool
	looping     bool
	loopingNow  bool
	skipPending bool

	initLogicInverted   bool
	renderLogicInverted bool
	prevRenderLogic     bool
	logicSet            bool
	nonInvertingLogic   bool

	renderDirReversed bool

	emitEnabled bool
}

// New builds an idle engine over a surface.
func New(s Surface) *Engine {
	return &Engine{
		surf:        s,
		segs:        s.Count(),
		epoch:       time.Now(),
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		init:        true,
		emitEnabled: true,
	}
}

// Seed makes randomized animations reproducible.
func (e *Engine) Seed(seed int64) *Engine {
	e.rng = rand.New(rand.NewSource(seed))
	return e
}

// Update advances the active animation to now, a monotonic timestamp in
// milliseconds on the caller's clock. Pass a negative value to run on
// the engine's own clock instead. Returns true while an animation is
// running.
func (e *Engine) Update(now int64) bool {
	if now < 0 {
		now = time.Since(e.epoch).Milliseconds()
	}
	e.now = now

	if !e.running || e.paused || e.program == nil {
		return false
	}

	if e.program.step(e) {
		if e.looping {
			if e.skipPending {
				e.loopingNow = false
			} else {
				e.loopingNow = true
				e.init = true
			}
		} else {
			e.loopingNow = false
			e.running = false
			e.program = nil
		}
	}
	return e.running
}

// start installs a program and its control flags. The previous logic
// override survives on purpose: SetLogic holds until Stop or ResetLogic.
func (e *Engine) start(p program, nonInverting, dirReversed, logicInverted bool) *Engine {
	e.nonInvertingLogic = nonInverting
	e.renderDirReversed = dirReversed
	e.initLogicInverted = logicInverted
	e.program = p
	e.running = true
	e.init = true
	e.err = nil
	return e
}

// begin refreshes the segment count before a starter sizes its state.
func (e *Engine) begin() {
	e.segs = e.surf.Count()
}

// Restart re-arms the active animation's init pass on the next Update.
func (e *Engine) Restart() *Engine {
	e.init = true
	return e
}

// Pause freezes the animation. Update keeps returning false until
// Resume.
func (e *Engine) Pause() *Engine {
	e.paused = true
	return e
}

// Resume releases a pause.
func (e *Engine) Resume() *Engine {
	e.paused = false
	return e
}

// Stop ends the animation and releases its program. Loop enablement and
// direction survive; a logic override does not.
func (e *Engine) Stop() *Engine {
	e.paused = false
	e.running = false
	e.skipPending = false
	e.program = nil
	e.logicSet = false
	return e
}

// Loop makes completed cycles restart instead of stopping.
func (e *Engine) Loop() *Engine {
	e.looping = true
	return e
}

// NoLoop stops the animation at the end of its current cycle.
func (e *Engine) NoLoop() *Engine {
	e.looping = false
	return e
}

// SetDir sets the render direction, true meaning reversed.
func (e *Engine) SetDir(reversed bool) *Engine {
	e.renderDirReversed = reversed
	return e
}

// ToggleDir flips the render direction.
func (e *Engine) ToggleDir() *Engine {
	e.renderDirReversed = !e.renderDirReversed
	return e
}

// ReverseDir renders opposite to the direction the animation started
// with.
func (e *Engine) ReverseDir() *Engine {
	e.renderDirReversed = true
	return e
}

// ResetDir restores the direction the animation started with.
func (e *Engine) ResetDir() *Engine {
	e.renderDirReversed = false
	return e
}

// SetLogic overrides the render logic, true meaning inverted (fill
// behaves as empty, exploding as colliding). No effect on animations
// without an inverted form. The override holds across starters until
// Stop or ResetLogic.
func (e *Engine) SetLogic(inverted bool) *Engine {
	if e.nonInvertingLogic {
		return e
	}
	e.renderLogicInverted = inverted
	e.logicSet = true
	return e
}

// ToggleLogic flips the render logic. No effect on animations without
// an inverted form.
func (e *Engine) ToggleLogic() *Engine {
	if e.nonInvertingLogic {
		return e
	}
	e.renderLogicInverted = !e.renderLogicInverted
	e.logicSet = true
	return e
}

// InvertLogic renders with the logic opposite to the animation's
// starting logic.
func (e *Engine) InvertLogic() *Engine {
	if e.nonInvertingLogic {
		return e
	}
	e.renderLogicInverted = !e.initLogicInverted
	e.logicSet = true
	return e
}

// ResetLogic drops any logic override and restores the starting logic.
func (e *Engine) ResetLogic() *Engine {
	if e.nonInvertingLogic {
		return e
	}
	e.renderLogicInverted = e.initLogicInverted
	e.logicSet = false
	return e
}

// StopBlockEmission holds back new blocks in block animations; active
// blocks keep moving. With a finite block count the animation then ends
// once the bar drains.
func (e *Engine) StopBlockEmission() *Engine {
	e.emitEnabled = false
	return e
}

// ResumeBlockEmission lifts StopBlockEmission.
func (e *Engine) ResumeBlockEmission() *Engine {
	e.emitEnabled = true
	return e
}

func (e *Engine) IsRunning() bool { return e.running }
func (e *Engine) IsPaused() bool  { return e.paused }

// IsLoopEnabled reports whether completed cycles restart.
func (e *Engine) IsLoopEnabled() bool { return e.looping }

// PendingLoop reports a completed cycle about to restart. The event is
// consumed by the read and fires at most once per cycle.
func (e *Engine) PendingLoop() bool {
	if e.skipPending {
		e.skipPending = false
	} else if e.loopingNow {
		e.loopingNow = false
		return true
	}
	return false
}

// IsLogicInverted reports whether the render logic differs from the
// animation's starting logic.
func (e *Engine) IsLogicInverted() bool {
	return e.initLogicInverted != e.renderLogicInverted
}

// SupportsInvertedLogic reports whether the active animation has an
// inverted form the logic controls can switch to.
func (e *Engine) SupportsInvertedLogic() bool {
	return !e.nonInvertingLogic
}

// IsDirectionReversed reports whether rendering runs opposite to the
// direction the animation started with.
func (e *Engine) IsDirectionReversed() bool {
	return e.renderDirReversed
}

func (e *Engine) IsBlockEmissionEnabled() bool { return e.emitEnabled }

// Err returns the first fault recorded by the active animation, such as
// a dropped block emission. Starting a new animation clears it.
func (e *Engine) Err() error { return e.err }

// latchLogic fixes the render logic to the animation's starting logic
// on its init pass, unless the user holds an override.
func (e *Engine) latchLogic() {
	if !e.logicSet {
		e.prevRenderLogic = e.initLogicInverted
		e.renderLogicInverted = e.initLogicInverted
	}
}

// dirPixel maps a logical pixel through the render direction.
func (e *Engine) dirPixel(i int) int {
	if e.renderDirReversed {
		return e.segs - 1 - i
	}
	return i
}

// foldHalf mirrors a half range pixel around the center boundary so
// center-out animations run edges-in. Out of range input stays out of
// range.
func (e *Engine) foldHalf(mirror bool, i int) int {
	if !mirror || i < 0 {
		return i
	}
	d := (e.segs/2 - 1) - i
	if d < 0 {
		d = -d
	}
	return d
}
