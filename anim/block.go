package anim

// A block is a run of lit pixels traveling the bar. Animations own a
// fixed pool of them sized at start; emission cycles through the pool
// and paces itself so consecutive blocks keep their spacing.

type block struct {
	position int
	active   bool
}

type blockPool struct {
	blocks  []block
	length  int
	spacing int

	// requested caps how many blocks a run emits; zero means no cap.
	requested int

	emitIndex int
	emitted   int
	cooldown  int
}

func (p *blockPool) reset(size int) {
	p.blocks = make([]block, size)
	for i := range p.blocks {
		p.blocks[i].position = -1
	}
	p.emitIndex = 0
}

func (p *blockPool) anyActive() bool {
	for i := range p.blocks {
		if p.blocks[i].active {
			return true
		}
	}
	return false
}

// emit launches one block at pos if the cooldown and the emission cap
// allow it. An exhausted pool drops the block and records the fault on
// the engine.
func (p *blockPool) emit(e *Engine, pos int) {
	if len(p.blocks) == 0 {
		return
	}
	if p.cooldown > 0 {
		p.cooldown--
		return
	}
	if p.requested > 0 && p.emitted >= p.requested {
		return
	}
	for i := 0; i < len(p.blocks); i++ {
		idx := (p.emitIndex + i) % len(p.blocks)
		b := &p.blocks[idx]
		if !b.active {
			b.position = pos
			b.active = true
			p.emitted++
			p.cooldown = p.length + p.spacing - 1
			p.emitIndex = (p.emitIndex + 1) % len(p.blocks)
			return
		}
	}
	if e.err == nil {
		e.err = ErrBlockPoolExhausted
	}
}

// switchedPosition re-projects a block position onto the opposite
// travel logic so the lit pixels stay put when the logic flips.
func switchedPosition(pos, length, travel int) int {
	return (travel - 1) - pos + (length - 1)
}

// reproject flips every active block onto the opposite travel logic and
// returns the cooldown that keeps the next emission spaced behind the
// block now closest to the emit end. Blocks pushed off the range
// deactivate.
func (p *blockPool) reproject(travel int) int {
	closest := -1
	for i := range p.blocks {
		b := &p.blocks[i]
		if !b.active {
			continue
		}
		swp := switchedPosition(b.position, p.length, travel)
		b.position = swp
		if swp < 0 {
			b.active = false
			continue
		}
		if closest < 0 || swp < closest {
			closest = swp
		}
	}
	if closest < 0 {
		return 0
	}
	cd := (p.length + p.spacing - 1) - closest
	if cd < 0 {
		cd = 0
	}
	return cd
}

// poolSize fits enough slots for the travel range plus two in flight,
// bounded to keep start allocation small.
func poolSize(travel, length, spacing, limit int) int {
	interval := length + spacing
	if interval < 1 {
		interval = 1
	}
	return clampInt(travel/interval+2, 2, limit)
}
