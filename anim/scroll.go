package anim

// Blocks scrolling the full bar. Normal logic travels up, inverted
// logic travels down; flipping mid-run re-projects active blocks so the
// lit pixels hold still while the travel reverses.

type scrollProgram struct {
	pool blockPool
	size int
	intv int64
	last int64
}

func (p *scrollProgram) step(e *Engine) bool {
	if e.init {
		e.init = false
		e.emitEnabled = true
		e.latchLogic()
		p.pool.reset(p.size)
		p.pool.emitted = 0
		p.pool.cooldown = 0
		return false
	}

	if e.renderLogicInverted != e.prevRenderLogic {
		e.prevRenderLogic = e.renderLogicInverted
		p.pool.cooldown = p.pool.reproject(e.segs)
		p.pool.emitted = p.pool.requested
	}

	if e.now-p.last >= p.intv {
		p.last = e.now
		e.surf.Clear()
		if (p.pool.requested == 0 || p.pool.emitted < p.pool.requested) && e.emitEnabled {
			p.pool.emit(e, -1)
		}
		for i := range p.pool.blocks {
			b := &p.pool.blocks[i]
			if !b.active {
				continue
			}
			b.position++
			for j := 0; j < p.pool.length; j++ {
				head := b.position
				tail := head - j
				if e.renderLogicInverted {
					head = (e.segs - 1) - b.position
					tail = head + j
				}
				if tail < 0 || tail >= e.segs {
					continue
				}
				e.surf.SetPixel(e.dirPixel(tail), true)
			}
			if b.position >= e.segs-1+p.pool.length {
				b.active = false
			}
		}
	}

	if (p.pool.requested > 0 && p.pool.emitted >= p.pool.requested) || !e.emitEnabled {
		if !p.pool.anyActive() {
			return true
		}
	}
	return false
}

func (e *Engine) scrollBlocks(intv int64, length, spacing, count int, inverted bool) *Engine {
	e.begin()
	p := &scrollProgram{
		pool: blockPool{length: length, spacing: spacing, requested: count},
		size: poolSize(e.segs, length, spacing, 64),
		intv: maxI64(5, intv),
	}
	return e.start(p, false, false, inverted)
}

// ScrollingUpBlocks streams blocks from the bottom of the bar off the
// top. count caps the emissions; zero streams until stopped.
func (e *Engine) ScrollingUpBlocks(intv int64, length, spacing, count int) *Engine {
	return e.scrollBlocks(intv, length, spacing, count, false)
}

// ScrollingDownBlocks streams blocks from the top of the bar off the
// bottom. count caps the emissions; zero streams until stopped.
func (e *Engine) ScrollingDownBlocks(intv int64, length, spacing, count int) *Engine {
	return e.scrollBlocks(intv, length, spacing, count, true)
}
