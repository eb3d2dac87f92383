package anim

// Pixels flip in a shuffled order, one per interval, until the whole
// bar has changed. Pixels already in the target state are skipped
// without spending an interval on them.

type randomProgram struct {
	intv   int64
	last   int64
	order  []int
	cursor int
}

func (p *randomProgram) step(e *Engine) bool {
	if e.init {
		e.init = false
		e.latchLogic()

		if e.renderLogicInverted {
			for i := 0; i < e.segs; i++ {
				e.surf.SetPixel(i, true)
			}
		} else {
			e.surf.Clear()
		}

		p.order = make([]int, e.segs)
		for i := range p.order {
			p.order[i] = i
		}
		for i := len(p.order) - 1; i > 0; i-- {
			j := e.rng.Intn(i + 1)
			p.order[i], p.order[j] = p.order[j], p.order[i]
		}
		p.cursor = 0
		p.last = e.now
		return false
	}

	if e.now-p.last >= p.intv {
		p.last = e.now
		// One visible change per interval; pixels already in the target
		// state pass through for free.
		for retries := 0; p.cursor < len(p.order) && retries < len(p.order)-1; retries++ {
			seg := p.order[p.cursor]
			state := e.surf.PixelState(seg)
			change := (!e.initLogicInverted && !state) || (e.initLogicInverted && state)
			p.cursor++
			if change {
				e.surf.SetPixel(seg, !e.initLogicInverted)
				break
			}
		}
	}

	if p.cursor >= len(p.order) {
		p.order = nil
		return true
	}
	return false
}

// RandomFill lights the bar one random pixel per interval until full.
func (e *Engine) RandomFill(intv int64) *Engine {
	e.begin()
	return e.start(&randomProgram{intv: intv}, false, false, false)
}

// RandomEmpty clears the bar one random pixel per interval until empty.
func (e *Engine) RandomEmpty(intv int64) *Engine {
	e.begin()
	return e.start(&randomProgram{intv: intv}, false, false, true)
}
