package anim

// One block at a time drops across the bar and lands on a growing
// stack; inverted logic dismantles the stack instead, lifting blocks
// off and carrying them away. Levels move in strides of block length
// plus spacing. The four starters are the direction and logic corners
// of the same machine.

type stackProgram struct {
	pool blockPool
	intv int64
	last int64

	// level is the boundary the next block lands on, always a stride
	// multiple.
	level int
}

func (p *stackProgram) step(e *Engine) bool {
	stride := p.pool.length + p.pool.spacing

	if e.init {
		e.init = false
		e.latchLogic()
		p.pool.reset(1)
		p.pool.cooldown = 0
		p.level = 0
		if !e.renderLogicInverted {
			e.surf.Clear()
		} else {
			for p.level < e.segs {
				p.level += stride
			}
			for i := 0; i < p.level; i++ {
				e.surf.SetPixel(e.dirPixel(i), i%stride < p.pool.length)
			}
		}
		return false
	}

	if e.renderLogicInverted != e.prevRenderLogic {
		e.prevRenderLogic = e.renderLogicInverted
		if e.renderLogicInverted {
			p.level += stride
		} else {
			p.level -= stride
		}
	}

	if e.now-p.last >= p.intv {
		p.last = e.now

		for i := range p.pool.blocks {
			b := &p.pool.blocks[i]
			if !b.active {
				continue
			}
			for j := 0; j < p.pool.length; j++ {
				seg := b.position + j
				if seg >= 0 && seg < e.segs {
					e.surf.SetPixel(e.dirPixel(seg), false)
				}
			}
		}

		hasActive := p.pool.anyActive()
		if !hasActive {
			p.pool.cooldown = 0
			if !e.renderLogicInverted && p.level <= e.segs {
				p.pool.emit(e, e.segs)
			} else if e.renderLogicInverted && p.level >= 0 {
				p.pool.emit(e, p.level-stride)
			}
		}

		for i := range p.pool.blocks {
			b := &p.pool.blocks[i]
			if !b.active {
				continue
			}
			if b.position >= 0 && b.position < e.segs {
				e.surf.SetPixel(e.dirPixel(b.position), false)
			}
			if !e.renderLogicInverted {
				b.position--
			} else {
				b.position++
			}
			for j := 0; j < p.pool.length; j++ {
				seg := b.position + j
				if seg >= 0 && seg < e.segs {
					e.surf.SetPixel(e.dirPixel(seg), true)
				}
			}
			if !e.renderLogicInverted {
				if b.position <= p.level {
					p.level += stride
					b.active = false
				}
			} else if b.position >= e.segs {
				p.level -= stride
				b.active = false
			}
		}

		if p.level == 0 {
			e.surf.SetPixel(e.dirPixel(0), false)
		}
		for i := 0; i < p.level-stride; i++ {
			e.surf.SetPixel(e.dirPixel(i), i%stride < p.pool.length)
		}

		// Completion trails the last landing by one step; hasActive is
		// the pre-move scan.
		if !e.renderLogicInverted {
			if p.level >= e.segs-1 && !hasActive {
				return true
			}
		} else if p.level <= 0 && !hasActive {
			return true
		}
	}
	return false
}

func (e *Engine) stackingBlocks(intv int64, length, spacing int, dirReversed, logicInverted bool) *Engine {
	e.begin()
	p := &stackProgram{
		pool: blockPool{length: length, spacing: spacing},
		intv: maxI64(5, intv),
	}
	e.start(p, false, dirReversed, logicInverted)
	e.emitEnabled = true
	return e
}

// DownStackingBlocks drops blocks from the top that stack up from the
// bottom. Completes when the stack covers the bar.
func (e *Engine) DownStackingBlocks(intv int64, length, spacing int) *Engine {
	return e.stackingBlocks(intv, length, spacing, false, false)
}

// UpUnstackingBlocks starts from a stacked bar and lifts blocks off the
// top until it is empty.
func (e *Engine) UpUnstackingBlocks(intv int64, length, spacing int) *Engine {
	return e.stackingBlocks(intv, length, spacing, false, true)
}

// UpStackingBlocks rises blocks from the bottom that stack down from
// the top. Completes when the stack covers the bar.
func (e *Engine) UpStackingBlocks(intv int64, length, spacing int) *Engine {
	return e.stackingBlocks(intv, length, spacing, true, false)
}

// DownUnstackingBlocks starts from a stacked bar and drops blocks off
// the bottom until it is empty.
func (e *Engine) DownUnstackingBlocks(intv int64, length, spacing int) *Engine {
	return e.stackingBlocks(intv, length, spacing, true, true)
}
