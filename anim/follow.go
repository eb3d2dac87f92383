package anim

// Signal followers: the bar tracks a smoothed live reading, mapped from
// the signal range onto the segment count. Sampling and rendering run
// on separate clocks so a slow display can still smooth a fast signal.
// Followers run until stopped; a missing signal clears the bar and
// completes.

type followProgram struct {
	sig Signal

	smoothing int
	smoothed  int

	minMap, maxMap int

	intv       int64
	sampleIntv int64
	last       int64
	lastSample int64

	// pointer adds a raw signal needle riding the smoothed fill.
	pointer bool
}

func (p *followProgram) step(e *Engine) bool {
	if p.sig == nil {
		e.surf.Clear()
		return true
	}

	if e.init {
		e.init = false
		e.latchLogic()
		p.smoothed = int(p.sig())
		p.last = e.now
		e.surf.Clear()
		return false
	}

	if e.now-p.lastSample >= p.sampleIntv {
		p.smoothed = smoothStep(int(p.sig()), p.smoothed, p.smoothing)
		p.lastSample = e.now
	}

	if e.now-p.last >= p.intv {
		p.last = e.now

		level := mappedLevel(p.smoothed, p.minMap, p.maxMap, 0, e.segs)
		for i := 0; i < e.segs; i++ {
			e.surf.SetPixel(e.dirPixel(i), i < level)
		}

		if p.pointer {
			needle := mappedLevel(int(p.sig()), p.minMap, p.maxMap, 0, e.segs)
			if needle < level && needle > 0 {
				e.surf.SetPixel(e.dirPixel(needle-1), false)
			}
			if needle < level-2 {
				e.surf.SetPixel(e.dirPixel(needle+1), false)
			}
			e.surf.SetPixel(e.dirPixel(needle), true)
		}
	}
	return false
}

type dualFollowProgram struct {
	sig1, sig2 Signal

	smoothing  int
	smoothed1  int
	smoothed2  int
	minMap     int
	maxMap     int
	intv       int64
	sampleIntv int64
	last       int64
	lastSample int64
}

func (p *dualFollowProgram) step(e *Engine) bool {
	if p.sig1 == nil && p.sig2 == nil {
		e.surf.Clear()
		return true
	}

	if e.init {
		e.init = false
		e.latchLogic()
		p.smoothed1 = int(p.sig1())
		p.smoothed2 = int(p.sig2())
		p.last = e.now
		e.surf.Clear()
		return false
	}

	if e.renderLogicInverted != e.prevRenderLogic {
		e.prevRenderLogic = e.renderLogicInverted
	}

	if e.now-p.lastSample >= p.sampleIntv {
		p.lastSample = e.now
		p.smoothed1 = smoothStep(int(p.sig1()), p.smoothed1, p.smoothing)
		p.smoothed2 = smoothStep(int(p.sig2()), p.smoothed2, p.smoothing)
	}

	if e.now-p.last >= p.intv {
		p.last = e.now

		p.smoothed1 = smoothStep(int(p.sig1()), p.smoothed1, p.smoothing)
		half := e.segs / 2
		level1 := mappedLevel(p.smoothed1, p.minMap, p.maxMap, 0, half)
		level2 := mappedLevel(p.smoothed2, p.minMap, p.maxMap, 0, half)

		// Raw pixel addressing: the band is symmetric, so direction
		// controls have no visible effect.
		for i := 0; i < e.segs; i++ {
			inBand := i >= (half-1)-level1 && i <= half+level2
			if e.renderLogicInverted {
				e.surf.SetPixel(i, !inBand)
			} else {
				e.surf.SetPixel(i, inBand)
			}
		}
	}
	return false
}

type peakFollowProgram struct {
	sig Signal

	smoothing int
	smoothed  int

	minMap, maxMap int

	intv       int64
	sampleIntv int64
	hold       int64
	last       int64
	lastSample int64
	lastPeak   int64

	level     int
	peakLevel int
}

func (p *peakFollowProgram) step(e *Engine) bool {
	if p.sig == nil {
		e.surf.Clear()
		return true
	}

	if e.init {
		e.init = false
		e.latchLogic()
		e.surf.Clear()
		p.smoothed = int(p.sig())
		p.last = e.now
		p.lastPeak = e.now
		p.level = 0
		p.peakLevel = 0
		return false
	}

	if e.now-p.lastSample >= p.sampleIntv {
		p.lastSample = e.now
		p.smoothed = smoothStep(int(p.sig()), p.smoothed, p.smoothing)
		p.level = mappedLevel(p.smoothed, p.minMap, p.maxMap, 0, e.segs)
	}

	if e.now-p.last >= p.intv {
		p.last = e.now

		if p.level > p.peakLevel {
			p.peakLevel = p.level
			if p.peakLevel > e.segs-1 {
				p.peakLevel = e.segs - 1
			}
			p.lastPeak = e.now
		} else if e.now-p.lastPeak >= p.hold && p.peakLevel > p.level {
			p.peakLevel--
			p.lastPeak = e.now
		}

		for i := 0; i < e.segs; i++ {
			e.surf.SetPixel(e.dirPixel(i), i <= p.level)
		}
		if p.peakLevel < e.segs {
			e.surf.SetPixel(e.dirPixel(p.peakLevel), true)
		}
	}
	return false
}

func (e *Engine) followSignal(sig Signal, intv int64, minMap, maxMap, smoothing int, sampling int64, pointer bool) *Engine {
	e.begin()
	minMap, maxMap = correctedRange(minMap, maxMap)
	p := &followProgram{
		sig:        sig,
		smoothing:  clampInt(smoothing, 0, 100),
		minMap:     minMap,
		maxMap:     maxMap,
		intv:       maxI64(10, intv),
		sampleIntv: sampling,
		pointer:    pointer,
	}
	return e.start(p, true, false, false)
}

// FollowSignalSmooth fills the bar to a smoothed signal level.
// smoothing weights new readings in percent; minMap and maxMap bound
// the raw signal range.
func (e *Engine) FollowSignalSmooth(sig Signal, intv int64, minMap, maxMap, smoothing int, sampling int64) *Engine {
	return e.followSignal(sig, intv, minMap, maxMap, smoothing, sampling, false)
}

// FollowSignalPointer is FollowSignalSmooth with a raw signal needle
// carved out of the smoothed fill.
func (e *Engine) FollowSignalPointer(sig Signal, intv int64, minMap, maxMap, smoothing int, sampling int64) *Engine {
	return e.followSignal(sig, intv, minMap, maxMap, smoothing, sampling, true)
}

func (e *Engine) followDual(sig1 Signal, intv int64, sig2 Signal, minMap, maxMap, smoothing int, sampling int64, logicInverted bool) *Engine {
	e.begin()
	if sig2 == nil {
		sig2 = sig1
	}
	if sig1 == nil {
		sig1 = sig2
	}
	minMap, maxMap = correctedRange(minMap, maxMap)
	p := &dualFollowProgram{
		sig1:       sig1,
		sig2:       sig2,
		smoothing:  clampInt(smoothing, 0, 100),
		minMap:     minMap,
		maxMap:     maxMap,
		intv:       maxI64(10, intv),
		sampleIntv: sampling,
	}
	return e.start(p, false, false, logicInverted)
}

// FollowDualFromCenter grows a band from the bar's center, the lower
// half tracking sig1 and the upper half sig2. A nil sig2 mirrors sig1.
func (e *Engine) FollowDualFromCenter(sig1 Signal, intv int64, sig2 Signal, minMap, maxMap, smoothing int, sampling int64) *Engine {
	return e.followDual(sig1, intv, sig2, minMap, maxMap, smoothing, sampling, false)
}

// FollowDualFromEdges renders the complement band: the bar fills from
// both edges toward the signal levels.
func (e *Engine) FollowDualFromEdges(sig1 Signal, intv int64, sig2 Signal, minMap, maxMap, smoothing int, sampling int64) *Engine {
	return e.followDual(sig1, intv, sig2, minMap, maxMap, smoothing, sampling, true)
}

// FollowSignalFloatingPeak fills the bar to a smoothed signal level and
// floats a peak marker above it that holds for peakHold milliseconds
// before decaying one segment per render step.
func (e *Engine) FollowSignalFloatingPeak(sig Signal, peakHold, intv int64, minMap, maxMap, smoothing int, sampling int64) *Engine {
	e.begin()
	minMap, maxMap = correctedRange(minMap, maxMap)
	p := &peakFollowProgram{
		sig:        sig,
		smoothing:  clampInt(smoothing, 0, 100),
		minMap:     minMap,
		maxMap:     maxMap,
		intv:       maxI64(10, intv),
		sampleIntv: sampling,
		hold:       maxI64(20, peakHold),
	}
	return e.start(p, true, false, false)
}
