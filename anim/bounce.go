package anim

// Fill then empty, cycling through an inner fill program by flipping
// its render logic at each turn. The cycle loops without an init pass;
// phase turnaround re-enters the window through the fill program's
// logic flip clamp. The fill phase allows the pending loop event, the
// empty phase swallows it.

type bouncePhase int

const (
	bounceFilling bouncePhase = iota
	bounceEmptying
)

type bounceProgram struct {
	fill      fillProgram
	fillIntv  int64
	emptyIntv int64
	phase     bouncePhase
}

func (p *bounceProgram) step(e *Engine) bool {
	switch p.phase {
	case bounceFilling:
		e.skipPending = false
		if p.fill.step(e) {
			e.renderLogicInverted = !e.initLogicInverted
			p.phase = bounceEmptying
			p.fill.intv = p.emptyIntv
		}
	case bounceEmptying:
		e.skipPending = true
		if p.fill.step(e) {
			e.renderLogicInverted = e.initLogicInverted
			p.phase = bounceFilling
			p.fill.intv = p.fillIntv
			return true
		}
	}
	return false
}

func (e *Engine) bounceDur(duration int64, maxPct, minPct int, fillIntv int64, dirReversed bool) *Engine {
	e.begin()
	lo, hi := fillWindow(e.segs, minPct, maxPct)
	steps := int64(fillSteps(lo, hi))
	fill := fillIntv
	var empty int64
	if fill == 0 {
		fill = maxI64(5, duration) / (2 * steps)
		empty = fill
	} else {
		empty = maxI64(5, duration-fill*steps) / steps
	}
	p := &bounceProgram{
		fill:      fillProgram{min: lo, max: hi, intv: fill},
		fillIntv:  fill,
		emptyIntv: empty,
	}
	return e.start(p, true, dirReversed, false)
}

func (e *Engine) bounceIntv(fillIntv, emptyIntv int64, maxPct, minPct int, dirReversed bool) *Engine {
	e.begin()
	lo, hi := fillWindow(e.segs, minPct, maxPct)
	fill := maxI64(5, fillIntv)
	p := &bounceProgram{
		fill:      fillProgram{min: lo, max: hi, intv: fill},
		fillIntv:  fill,
		emptyIntv: maxI64(5, emptyIntv),
	}
	return e.start(p, true, dirReversed, false)
}

func (e *Engine) bounceLive(fillIntv, emptyIntv int64, maxPct, minPct Signal, dirReversed bool) *Engine {
	e.begin()
	fill := maxI64(5, fillIntv)
	p := &bounceProgram{
		fill:      fillProgram{intv: fill, live: true, minSig: minPct, maxSig: maxPct},
		fillIntv:  fill,
		emptyIntv: maxI64(5, emptyIntv),
	}
	return e.start(p, true, dirReversed, false)
}

// BounceFillUpDur fills the window bottom up then drains it top down,
// fitting one full cycle into roughly duration milliseconds. A nonzero
// fillIntv pins the fill pace and leaves the remainder of the budget to
// the drain.
func (e *Engine) BounceFillUpDur(duration int64, maxPct, minPct int, fillIntv int64) *Engine {
	return e.bounceDur(duration, maxPct, minPct, fillIntv, false)
}

// BounceFillUpIntv fills bottom up then drains top down at fixed paces.
func (e *Engine) BounceFillUpIntv(fillIntv, emptyIntv int64, maxPct, minPct int) *Engine {
	return e.bounceIntv(fillIntv, emptyIntv, maxPct, minPct, false)
}

// BounceFillUpLive is BounceFillUpIntv with the window bounds re-read
// from percent signals on every step.
func (e *Engine) BounceFillUpLive(fillIntv, emptyIntv int64, maxPct, minPct Signal) *Engine {
	return e.bounceLive(fillIntv, emptyIntv, maxPct, minPct, false)
}

// BounceFillDownDur fills the window top down then drains it bottom up
// over roughly duration milliseconds.
func (e *Engine) BounceFillDownDur(duration int64, maxPct, minPct int, fillIntv int64) *Engine {
	return e.bounceDur(duration, maxPct, minPct, fillIntv, true)
}

// BounceFillDownIntv fills top down then drains bottom up at fixed
// paces.
func (e *Engine) BounceFillDownIntv(fillIntv, emptyIntv int64, maxPct, minPct int) *Engine {
	return e.bounceIntv(fillIntv, emptyIntv, maxPct, minPct, true)
}

// BounceFillDownLive is BounceFillDownIntv with live window bounds.
func (e *Engine) BounceFillDownLive(fillIntv, emptyIntv int64, maxPct, minPct Signal) *Engine {
	return e.bounceLive(fillIntv, emptyIntv, maxPct, minPct, true)
}
