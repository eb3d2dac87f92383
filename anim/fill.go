package anim

// Progressive fill and empty over a percent window of the bar. The
// window maps onto segment trackers once at start, or on every step for
// the Live variants. Inverted logic runs the same sweep as an empty.

type fillProgram struct {
	intv int64
	last int64

	tracker  int
	min, max int

	live   bool
	minSig Signal
	maxSig Signal
}

// refresh remaps the percent window each step when live signals drive
// the bounds.
func (p *fillProgram) refresh(e *Engine) {
	if !p.live {
		return
	}
	minP, maxP := normalizePercent(readPercent(p.minSig, 0), readPercent(p.maxSig, 100))
	p.min = mapRange(minP, 0, 100, 0, e.segs-1)
	p.max = mapRange(maxP, 0, 100, 0, e.segs-1)
}

func (p *fillProgram) step(e *Engine) bool {
	p.refresh(e)

	if e.init {
		e.init = false
		e.latchLogic()
		if e.renderLogicInverted {
			p.tracker = p.max
			for i := 0; i < e.segs; i++ {
				e.surf.SetPixel(e.dirPixel(i), i <= p.max)
			}
		} else {
			p.tracker = p.min
			for i := 0; i < e.segs; i++ {
				e.surf.SetPixel(e.dirPixel(i), i <= p.min)
			}
		}
		return false
	}

	// A live logic flip re-enters the window from the nearest bound.
	if e.renderLogicInverted != e.prevRenderLogic {
		e.prevRenderLogic = e.renderLogicInverted
		if e.renderLogicInverted && p.tracker > p.max {
			p.tracker = p.max
		}
		if !e.renderLogicInverted && p.tracker < p.min {
			p.tracker = p.min
		}
	}

	if e.now-p.last >= p.intv {
		p.last = e.now
		if e.renderLogicInverted {
			if p.tracker >= p.min {
				e.surf.SetPixel(e.dirPixel(p.tracker), false)
				p.tracker--
			} else {
				return true
			}
		} else {
			if p.tracker <= p.max && p.tracker < e.segs {
				e.surf.SetPixel(e.dirPixel(p.tracker), true)
				p.tracker++
			} else {
				return true
			}
		}
	}
	return false
}

// fillWindow maps a percent window onto segment trackers.
func fillWindow(segs, minPct, maxPct int) (lo, hi int) {
	minPct, maxPct = normalizePercent(minPct, maxPct)
	lo = mapRange(minPct, 0, 100, 0, segs-1)
	hi = mapRange(maxPct, 0, 100, 0, segs-1)
	return lo, hi
}

func fillSteps(lo, hi int) int {
	steps := hi - lo + 1
	if steps < 1 {
		steps = 1
	}
	return steps
}

func (e *Engine) fillDur(duration int64, maxPct, minPct int, dirReversed, logicInverted bool) *Engine {
	e.begin()
	lo, hi := fillWindow(e.segs, minPct, maxPct)
	p := &fillProgram{
		min:  lo,
		max:  hi,
		intv: maxI64(5, duration/int64(fillSteps(lo, hi))),
	}
	return e.start(p, false, dirReversed, logicInverted)
}

func (e *Engine) fillIntv(intv int64, maxPct, minPct int, dirReversed, logicInverted bool) *Engine {
	e.begin()
	lo, hi := fillWindow(e.segs, minPct, maxPct)
	p := &fillProgram{min: lo, max: hi, intv: maxI64(5, intv)}
	return e.start(p, false, dirReversed, logicInverted)
}

func (e *Engine) fillLive(intv int64, maxPct, minPct Signal, dirReversed, logicInverted bool) *Engine {
	e.begin()
	p := &fillProgram{
		intv:   maxI64(5, intv),
		live:   true,
		minSig: minPct,
		maxSig: maxPct,
	}
	return e.start(p, false, dirReversed, logicInverted)
}

// FillUpDur fills the window bottom up over roughly duration
// milliseconds.
func (e *Engine) FillUpDur(duration int64, maxPct, minPct int) *Engine {
	return e.fillDur(duration, maxPct, minPct, false, false)
}

// FillUpIntv fills the window bottom up, one segment per interval.
func (e *Engine) FillUpIntv(intv int64, maxPct, minPct int) *Engine {
	return e.fillIntv(intv, maxPct, minPct, false, false)
}

// FillUpLive is FillUpIntv with the window bounds re-read from percent
// signals on every step. A nil signal pins its bound to 0 or 100.
func (e *Engine) FillUpLive(intv int64, maxPct, minPct Signal) *Engine {
	return e.fillLive(intv, maxPct, minPct, false, false)
}

// FillDownDur fills the window top down over roughly duration
// milliseconds.
func (e *Engine) FillDownDur(duration int64, maxPct, minPct int) *Engine {
	return e.fillDur(duration, maxPct, minPct, true, false)
}

// FillDownIntv fills the window top down, one segment per interval.
func (e *Engine) FillDownIntv(intv int64, maxPct, minPct int) *Engine {
	return e.fillIntv(intv, maxPct, minPct, true, false)
}

// FillDownLive is FillDownIntv with live window bounds.
func (e *Engine) FillDownLive(intv int64, maxPct, minPct Signal) *Engine {
	return e.fillLive(intv, maxPct, minPct, true, false)
}

// EmptyDownDur drains the window top down over roughly duration
// milliseconds.
func (e *Engine) EmptyDownDur(duration int64, maxPct, minPct int) *Engine {
	return e.fillDur(duration, maxPct, minPct, false, true)
}

// EmptyDownIntv drains the window top down, one segment per interval.
func (e *Engine) EmptyDownIntv(intv int64, maxPct, minPct int) *Engine {
	return e.fillIntv(intv, maxPct, minPct, false, true)
}

// EmptyDownLive is EmptyDownIntv with live window bounds.
func (e *Engine) EmptyDownLive(intv int64, maxPct, minPct Signal) *Engine {
	return e.fillLive(intv, maxPct, minPct, false, true)
}

// EmptyUpDur drains the window bottom up over roughly duration
// milliseconds.
func (e *Engine) EmptyUpDur(duration int64, maxPct, minPct int) *Engine {
	return e.fillDur(duration, maxPct, minPct, true, true)
}

// EmptyUpIntv drains the window bottom up, one segment per interval.
func (e *Engine) EmptyUpIntv(intv int64, maxPct, minPct int) *Engine {
	return e.fillIntv(intv, maxPct, minPct, true, true)
}

// EmptyUpLive is EmptyUpIntv with live window bounds.
func (e *Engine) EmptyUpLive(intv int64, maxPct, minPct Signal) *Engine {
	return e.fillLive(intv, maxPct, minPct, true, true)
}
