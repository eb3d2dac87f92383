package anim

// Paired blocks on the two bar halves, mirrored around the center.
// Normal logic launches from the edges and collides at the center;
// inverted logic launches from the center and explodes outward. Pixels
// are addressed raw, so direction controls have no visible effect.

type mirrorProgram struct {
	pool blockPool
	size int
	intv int64
	last int64
}

func (p *mirrorProgram) step(e *Engine) bool {
	center := e.segs / 2

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
		p.pool.cooldown = p.pool.reproject(center)
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
			vis := clampInt(b.position+1, 0, p.pool.length)
			for j := 0; j < vis; j++ {
				head := b.position
				tail := head - j
				if e.renderLogicInverted {
					head = center - 1 - b.position
					tail = head + j
				}
				if tail < 0 || tail >= center {
					continue
				}
				e.surf.SetPixel(tail, true)
				e.surf.SetPixel(e.segs-1-tail, true)
			}
			if b.position >= center-1+p.pool.length {
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

func (e *Engine) mirrorBlocks(intv int64, length, spacing, count int, inverted bool) *Engine {
	e.begin()
	p := &mirrorProgram{
		pool: blockPool{length: length, spacing: spacing, requested: count},
		size: poolSize(e.segs/2, length, spacing, 32),
		intv: maxI64(5, intv),
	}
	return e.start(p, false, false, inverted)
}

// ExplodingBlocks launches mirrored block pairs from the center that
// travel out to the edges. count caps the emissions; zero streams until
// stopped.
func (e *Engine) ExplodingBlocks(intv int64, length, spacing, count int) *Engine {
	return e.mirrorBlocks(intv, length, spacing, count, true)
}

// CollidingBlocks launches mirrored block pairs from the edges that
// meet at the center. count caps the emissions; zero streams until
// stopped.
func (e *Engine) CollidingBlocks(intv int64, length, spacing, count int) *Engine {
	return e.mirrorBlocks(intv, length, spacing, count, false)
}
