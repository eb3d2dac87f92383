package anim_test

import (
	"testing"

	"github.com/example/barmeter/anim"

	. "github.com/stretchr/testify/assert"
)

func constSignal(v uint16) anim.Signal {
	return func() uint16 { return v }
}

func TestFollowSignalTracksLevel(t *testing.T) {
	b := newBar(20)
	e := anim.New(b).FollowSignalSmooth(constSignal(512), 20, 0, 1023, 30, 5)

	for now := int64(0); now <= 20; now += 5 {
		True(t, e.Update(now), "followers run until stopped")
	}
	// 512 of 1023 maps onto ten of twenty segments.
	Equal(t, 10, b.lit())
	True(t, b.px[9])
	False(t, b.px[10])
}

func TestFollowSignalMissingSignalClearsAndCompletes(t *testing.T) {
	b := newBar(8)
	b.SetPixel(2, true)
	b.SetPixel(5, true)

	e := anim.New(b).FollowSignalSmooth(nil, 20, 0, 1023, 30, 5)

	False(t, e.Update(0))
	False(t, e.IsRunning())
	Equal(t, 0, b.lit())
}

func TestFollowPointerNeedleRidesFill(t *testing.T) {
	b := newBar(20)
	e := anim.New(b).FollowSignalPointer(constSignal(512), 20, 0, 1023, 30, 5)

	for now := int64(0); now <= 20; now += 5 {
		e.Update(now)
	}
	// The needle sits one past a steady fill.
	True(t, b.px[10])
	Equal(t, 11, b.lit())
}

func TestFollowDualGrowsBandFromCenter(t *testing.T) {
	b := newBar(8)
	sig := constSignal(512)
	e := anim.New(b).FollowDualFromCenter(sig, 20, sig, 0, 1023, 30, 5)

	for now := int64(0); now <= 20; now += 5 {
		e.Update(now)
	}
	// Two segments each side of the center boundary.
	Equal(t, []bool{false, true, true, true, true, true, true, false}, b.px)
}

func TestFollowDualFromEdgesRendersComplement(t *testing.T) {
	b := newBar(8)
	sig := constSignal(512)
	e := anim.New(b).FollowDualFromEdges(sig, 20, sig, 0, 1023, 30, 5)

	for now := int64(0); now <= 20; now += 5 {
		e.Update(now)
	}
	Equal(t, []bool{true, false, false, false, false, false, false, true}, b.px)
}

func TestFollowDualNilSecondarySignalMirrorsPrimary(t *testing.T) {
	b := newBar(8)
	e := anim.New(b).FollowDualFromCenter(constSignal(512), 20, nil, 0, 1023, 30, 5)

	for now := int64(0); now <= 20; now += 5 {
		e.Update(now)
	}
	Equal(t, []bool{false, true, true, true, true, true, true, false}, b.px)
}

func TestFloatingPeakHoldsThenDecays(t *testing.T) {
	level := uint16(1000)
	b := newBar(10)
	e := anim.New(b).FollowSignalFloatingPeak(func() uint16 { return level }, 50, 10, 0, 1000, 100, 5)

	e.Update(0)
	e.Update(5)
	e.Update(10)
	Equal(t, 10, b.lit(), "a full scale signal fills the bar")

	// The signal collapses; the peak marker stays put for its hold
	// time.
	level = 0
	e.Update(15)
	e.Update(20)
	Equal(t, 2, b.lit())
	True(t, b.px[0])
	True(t, b.px[9])

	e.Update(40)
	True(t, b.px[9], "peak held inside the hold window")

	e.Update(60)
	False(t, b.px[9], "peak decays after the hold window")
	True(t, b.px[8])
}
