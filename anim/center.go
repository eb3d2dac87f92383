package anim

// Symmetric fill around the bar's midpoint. Each step lights or clears
// a pixel pair mirrored across the center; the edgesIn fold runs the
// same sweep from the outer ends instead. Odd bars leave the middle
// pixel untouched.

type centerFillProgram struct {
	intv int64
	last int64

	// Trackers run over the half range center-1..0, so min >= max.
	tracker  int
	min, max int

	live   bool
	minSig Signal
	maxSig Signal

	edgesIn bool
}

func (p *centerFillProgram) refresh(e *Engine) {
	if !p.live {
		return
	}
	center := e.segs / 2
	minP, maxP := normalizePercent(readPercent(p.minSig, 0), readPercent(p.maxSig, 100))
	p.min = mapRange(minP, 0, 100, center-1, 0)
	p.max = mapRange(maxP, 0, 100, center-1, 0)
}

func (p *centerFillProgram) setPair(e *Engine, i int, on bool) {
	px := e.foldHalf(p.edgesIn, i)
	e.surf.SetPixel(px, on)
	e.surf.SetPixel(e.segs-1-px, on)
}

func (p *centerFillProgram) step(e *Engine) bool {
	center := e.segs / 2
	p.refresh(e)

	if e.init {
		e.init = false
		e.latchLogic()
		if e.renderLogicInverted {
			p.tracker = p.max
			for i := 0; i < center; i++ {
				p.setPair(e, i, i >= p.max)
			}
		} else {
			p.tracker = p.min
			for i := 0; i < center; i++ {
				p.setPair(e, i, i > p.min)
			}
		}
		return false
	}

	if e.now-p.last >= p.intv {
		p.last = e.now
		if !e.renderLogicInverted {
			if p.tracker >= p.max && p.tracker >= 0 {
				p.setPair(e, p.tracker, true)
				p.tracker--
			} else {
				return true
			}
		} else {
			if p.tracker <= p.min && p.tracker < center {
				p.setPair(e, p.tracker, false)
				p.tracker++
			} else {
				return true
			}
		}
	}
	return false
}

// centerBounceProgram cycles the symmetric fill and drain. Unlike the
// edge bounce, the cycle end allows the pending loop event and restarts
// through a fresh init pass.
type centerBounceProgram struct {
	fill      centerFillProgram
	fillIntv  int64
	emptyIntv int64
	phase     bouncePhase
}

func (p *centerBounceProgram) step(e *Engine) bool {
	switch p.phase {
	case bounceFilling:
		e.skipPending = true
		if p.fill.step(e) {
			e.renderLogicInverted = !e.initLogicInverted
			p.phase = bounceEmptying
			p.fill.intv = p.emptyIntv
		}
	case bounceEmptying:
		e.skipPending = false
		if p.fill.step(e) {
			e.renderLogicInverted = e.initLogicInverted
			p.phase = bounceFilling
			p.fill.intv = p.fillIntv
			return true
		}
	}
	return false
}

func centerWindow(segs, minPct, maxPct int) (lo, hi int) {
	center := segs / 2
	minPct, maxPct = normalizePercent(minPct, maxPct)
	lo = mapRange(minPct, 0, 100, center-1, 0)
	hi = mapRange(maxPct, 0, 100, center-1, 0)
	return lo, hi
}

func (e *Engine) centerBounceDur(duration int64, maxPct, minPct int, fillIntv int64, edgesIn bool) *Engine {
	e.begin()
	lo, hi := centerWindow(e.segs, minPct, maxPct)
	steps := int64(fillSteps(hi, lo))
	fill := fillIntv
	var empty int64
	if fill == 0 {
		fill = maxI64(5, duration) / (2 * steps)
		empty = fill
	} else {
		empty = maxI64(5, duration-fill*steps) / steps
	}
	p := &centerBounceProgram{
		fill:      centerFillProgram{min: lo, max: hi, intv: fill, edgesIn: edgesIn},
		fillIntv:  fill,
		emptyIntv: empty,
	}
	return e.start(p, true, false, false)
}

func (e *Engine) centerBounceIntv(fillIntv, emptyIntv int64, maxPct, minPct int, edgesIn bool) *Engine {
	e.begin()
	lo, hi := centerWindow(e.segs, minPct, maxPct)
	p := &centerBounceProgram{
		fill:      centerFillProgram{min: lo, max: hi, intv: fillIntv, edgesIn: edgesIn},
		fillIntv:  fillIntv,
		emptyIntv: emptyIntv,
	}
	return e.start(p, true, false, false)
}

func (e *Engine) centerBounceLive(fillIntv, emptyIntv int64, maxPct, minPct Signal, edgesIn bool) *Engine {
	e.begin()
	p := &centerBounceProgram{
		fill:      centerFillProgram{intv: fillIntv, live: true, minSig: minPct, maxSig: maxPct, edgesIn: edgesIn},
		fillIntv:  fillIntv,
		emptyIntv: emptyIntv,
	}
	return e.start(p, true, false, false)
}

// BounceFillFromCenterDur grows pixel pairs from the center to the
// edges and shrinks them back, one full cycle in roughly duration
// milliseconds. A nonzero fillIntv pins the grow pace.
func (e *Engine) BounceFillFromCenterDur(duration int64, maxPct, minPct int, fillIntv int64) *Engine {
	return e.centerBounceDur(duration, maxPct, minPct, fillIntv, false)
}

// BounceFillFromCenterIntv grows pairs from the center and shrinks them
// back at fixed paces.
func (e *Engine) BounceFillFromCenterIntv(fillIntv, emptyIntv int64, maxPct, minPct int) *Engine {
	return e.centerBounceIntv(fillIntv, emptyIntv, maxPct, minPct, false)
}

// BounceFillFromCenterLive is BounceFillFromCenterIntv with the window
// bounds re-read from percent signals on every step.
func (e *Engine) BounceFillFromCenterLive(fillIntv, emptyIntv int64, maxPct, minPct Signal) *Engine {
	return e.centerBounceLive(fillIntv, emptyIntv, maxPct, minPct, false)
}

// BounceFillFromEdgesDur grows pixel pairs from the edges to the center
// and shrinks them back over roughly duration milliseconds.
func (e *Engine) BounceFillFromEdgesDur(duration int64, maxPct, minPct int, fillIntv int64) *Engine {
	return e.centerBounceDur(duration, maxPct, minPct, fillIntv, true)
}

// BounceFillFromEdgesIntv grows pairs from the edges and shrinks them
// back at fixed paces.
func (e *Engine) BounceFillFromEdgesIntv(fillIntv, emptyIntv int64, maxPct, minPct int) *Engine {
	return e.centerBounceIntv(fillIntv, emptyIntv, maxPct, minPct, true)
}

// BounceFillFromEdgesLive is BounceFillFromEdgesIntv with live window
// bounds.
func (e *Engine) BounceFillFromEdgesLive(fillIntv, emptyIntv int64, maxPct, minPct Signal) *Engine {
	return e.centerBounceLive(fillIntv, emptyIntv, maxPct, minPct, true)
}
