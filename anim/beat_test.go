package anim_test

import (
	"testing"

	"github.com/example/barmeter/anim"

	. "github.com/stretchr/testify/assert"
)

func TestBeatPulseStaysWithinBar(t *testing.T) {
	b := newBar(28)
	e := anim.New(b).Seed(1).BeatPulse(120)

	var now int64
	for i := 0; i < 300; i++ {
		True(t, e.Update(now), "beat pulse never completes on its own")
		lit := b.lit()
		True(t, lit >= 1, "the peak marker keeps at least one pixel lit")
		True(t, lit <= 28)
		now += 10
	}
	Nil(t, e.Err())
}

func TestBeatPulseLiveReadsTempoSignal(t *testing.T) {
	var bpm uint16 = 90
	b := newBar(16)
	e := anim.New(b).Seed(2).BeatPulseLive(func() uint16 { return bpm })

	var now int64
	for i := 0; i < 100; i++ {
		True(t, e.Update(now))
		now += 10
	}
	bpm = 180
	for i := 0; i < 100; i++ {
		True(t, e.Update(now))
		now += 10
	}
	True(t, b.lit() >= 1)
}

func TestBeatPulseStopsOnDemand(t *testing.T) {
	b := newBar(16)
	e := anim.New(b).Seed(3).BeatPulse(116)

	e.Update(0)
	e.Update(10)
	e.Stop()
	False(t, e.Update(20))
	False(t, e.IsRunning())
}
