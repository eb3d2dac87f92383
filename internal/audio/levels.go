package audio

import (
	"math"

	"github.com/mjibson/go-dsp/fft"

	"github.com/example/barmeter/anim"
)

// Band edges in Hz.
const (
	bassLow    = 20
	bassHigh   = 250
	midHigh    = 2000
	trebleHigh = 8000
)

// fullScale matches the 10 bit range the follower animations map from.
const fullScale = 1023

// Levels condenses captured samples into bar-scaled band levels. Call
// Refresh once per frame; the Signal accessors read the cached levels,
// so a single FFT serves every follower in the frame.
type Levels struct {
	cap        *Capture
	sampleRate float64

	buffer []complex128
	window []float64

	bassPeak   float64
	midPeak    float64
	treblePeak float64

	bass    uint16
	mid     uint16
	treble  uint16
	overall uint16
}

func NewLevels(c *Capture) *Levels {
	return &Levels{cap: c, sampleRate: c.SampleRate()}
}

// Refresh analyzes the newest captured samples.
func (l *Levels) Refresh() {
	l.analyze(l.cap.Samples())
}

// Bass, Mid, Treble and Overall return signals reading the cached
// levels, 0..1023.
func (l *Levels) Bass() anim.Signal    { return func() uint16 { return l.bass } }
func (l *Levels) Mid() anim.Signal     { return func() uint16 { return l.mid } }
func (l *Levels) Treble() anim.Signal  { return func() uint16 { return l.treble } }
func (l *Levels) Overall() anim.Signal { return func() uint16 { return l.overall } }

func (l *Levels) analyze(samples []float32) {
	if len(samples) == 0 {
		l.bass, l.mid, l.treble, l.overall = 0, 0, 0, 0
		return
	}

	size := nextPow2(minInt(len(samples), 2048))
	if size < 256 {
		size = 256
	}
	l.ensureWorkspace(size)

	for i := 0; i < size; i++ {
		if i < len(samples) {
			l.buffer[i] = complex(float64(samples[i])*l.window[i], 0)
			continue
		}
		l.buffer[i] = 0
	}

	res := fft.FFT(l.buffer[:size])
	resolution := l.sampleRate / float64(size)

	bass := bandEnergy(res, resolution, bassLow, bassHigh)
	mid := bandEnergy(res, resolution, bassHigh, midHigh)
	treble := bandEnergy(res, resolution, midHigh, trebleHigh)

	l.bassPeak = envelope(l.bassPeak, bass, 0.94, 0.75)
	l.midPeak = envelope(l.midPeak, mid, 0.94, 0.78)
	l.treblePeak = envelope(l.treblePeak, treble, 0.94, 0.8)

	bassOut := dynamics(bass, l.bassPeak)
	midOut := dynamics(mid, l.midPeak)
	trebleOut := dynamics(treble, l.treblePeak)

	l.bass = toLevel(bassOut)
	l.mid = toLevel(midOut)
	l.treble = toLevel(trebleOut)
	l.overall = toLevel((bassOut + midOut + trebleOut) / 3)
}

func (l *Levels) ensureWorkspace(size int) {
	if len(l.buffer) != size {
		l.buffer = make([]complex128, size)
	}
	if len(l.window) != size {
		l.window = make([]float64, size)
		sizeF := float64(size)
		for i := range l.window {
			l.window[i] = hann(float64(i), sizeF)
		}
	}
}

func bandEnergy(buffer []complex128, resolution, minHz, maxHz float64) float64 {
	if minHz >= maxHz {
		return 0
	}
	lo := int(math.Floor(minHz / resolution))
	hi := int(math.Ceil(maxHz/resolution)) + 1
	if hi > len(buffer)/2 {
		hi = len(buffer) / 2
	}
	if lo >= hi {
		return 0
	}
	sum := 0.0
	for _, v := range buffer[lo:hi] {
		sum += math.Sqrt(real(v)*real(v) + imag(v)*imag(v))
	}
	normalized := sum / float64(hi-lo)
	if normalized > 1 {
		return 1
	}
	return normalized
}

func hann(i, size float64) float64 {
	return 0.5 * (1.0 - math.Cos(2.0*math.Pi*i/size))
}

// envelope tracks a peak with separate attack and release factors.
func envelope(current, input, attack, release float64) float64 {
	if input > current {
		return current*attack + input*(1-attack)
	}
	return current * release
}

// dynamics expands a value against its tracked peak so quiet passages
// still move the bar.
func dynamics(value, peak float64) float64 {
	if peak < 0.01 {
		return value
	}
	ratio := value / peak
	if ratio < 0 {
		ratio = 0
	}
	expanded := math.Pow(ratio, 0.7) * peak
	if ratio > 0.85 {
		expanded *= 1.0 + (ratio-0.85)*2.0
	}
	if expanded > 1 {
		return 1
	}
	return expanded
}

func toLevel(x float64) uint16 {
	if x < 0 {
		x = 0
	}
	if x > 1 {
		x = 1
	}
	return uint16(x * fullScale)
}

func nextPow2(n int) int {
	if n <= 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	return n + 1
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
