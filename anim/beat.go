package anim

// Tempo driven level jitter: the bar level climbs toward a peak target
// on every other beat and sags back between beats, with a small random
// wobble, while a floating peak dot rides on top. Runs until stopped.

type beatProgram struct {
	bpm    int
	bpmSig Signal

	base int
	peak int
	hold int64

	level        int
	peakLevel    int
	isPeak       bool
	randomOffset int

	lastBeat   int64
	lastRandom int64
	lastPeak   int64
}

func (p *beatProgram) step(e *Engine) bool {
	if e.init {
		e.init = false
		e.latchLogic()
		e.surf.Clear()
		p.level = p.base
		p.peakLevel = p.peak
	}

	bpm := p.bpm
	if p.bpmSig != nil {
		bpm = int(p.bpmSig())
		if bpm < 1 {
			bpm = 1
		}
	}
	if e.now-p.lastBeat >= int64(60000/bpm) {
		p.lastBeat = e.now
		p.isPeak = !p.isPeak
	}

	if p.isPeak && p.level <= p.peak {
		p.level += 3 + e.rng.Intn(2)
	} else if !p.isPeak && p.level >= p.base {
		p.level -= e.rng.Intn(4)
	}
	if e.now-p.lastRandom >= int64(50+e.rng.Intn(250)) {
		p.lastRandom = e.now
		p.randomOffset = e.rng.Intn(8) - 4
	}

	level := clampInt(p.level+p.randomOffset, 0, e.segs)
	if level > p.peakLevel {
		p.peakLevel = level
		if p.peakLevel > e.segs-1 {
			p.peakLevel = e.segs - 1
		}
		p.lastPeak = e.now
	} else if e.now-p.lastPeak >= p.hold && p.peakLevel > level {
		p.peakLevel--
		p.lastPeak = e.now
	}

	for i := 0; i < e.segs; i++ {
		e.surf.SetPixel(e.dirPixel(i), i < level)
	}
	if p.peakLevel < e.segs {
		e.surf.SetPixel(e.dirPixel(p.peakLevel), true)
	}
	return false
}

func (e *Engine) beatPulse(bpm int, sig Signal) *Engine {
	e.begin()
	p := &beatProgram{
		bpm:    bpm,
		bpmSig: sig,
		base:   35 * (e.segs - 1) / 100,
		peak:   67 * (e.segs - 1) / 100,
		hold:   150,
	}
	return e.start(p, true, false, false)
}

// BeatPulse pulses the bar at a fixed tempo in beats per minute.
func (e *Engine) BeatPulse(bpm int) *Engine {
	if bpm < 1 {
		bpm = 1
	}
	return e.beatPulse(bpm, nil)
}

// BeatPulseLive pulses the bar at a tempo re-read from a signal on
// every step. A nil signal runs at 116 bpm.
func (e *Engine) BeatPulseLive(bpm Signal) *Engine {
	return e.beatPulse(116, bpm)
}
