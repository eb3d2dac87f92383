package anim_test

import (
	"testing"

	"github.com/example/barmeter/anim"

	. "github.com/stretchr/testify/assert"
)

func TestScrollingBoundedCountCompletes(t *testing.T) {
	b := newBar(12)
	e := anim.New(b).ScrollingUpBlocks(5, 2, 1, 3)

	runUntilDone(t, e, 5, 400)

	Equal(t, 0, b.lit(), "all blocks scroll off the bar")
	False(t, e.IsRunning())
	Nil(t, e.Err())
}

func TestScrollingUncappedStreamsUntilStopped(t *testing.T) {
	b := newBar(12)
	e := anim.New(b).ScrollingUpBlocks(5, 2, 1, 0)

	var now int64
	sawPixels := false
	for i := 0; i < 200; i++ {
		True(t, e.Update(now))
		if b.lit() > 0 {
			sawPixels = true
		}
		now += 5
	}
	True(t, sawPixels)
	True(t, e.IsRunning())
}

func TestScrollingDownTravelsDownward(t *testing.T) {
	b := newBar(8)
	e := anim.New(b).ScrollingDownBlocks(5, 2, 1, 1)

	e.Update(0)
	e.Update(5)
	True(t, b.px[7], "blocks enter at the top")
	Equal(t, 1, b.lit())

	e.Update(10)
	True(t, b.px[6])
	True(t, b.px[7])

	e.Update(15)
	True(t, b.px[5])
	True(t, b.px[6])
	False(t, b.px[7])
}

func TestStopBlockEmissionDrainsBar(t *testing.T) {
	b := newBar(8)
	e := anim.New(b).ScrollingUpBlocks(5, 1, 1, 0)

	var now int64
	for i := 0; i < 10; i++ {
		e.Update(now)
		now += 5
	}
	True(t, b.lit() > 0)

	e.StopBlockEmission()
	False(t, e.IsBlockEmissionEnabled())

	for i := 0; i < 100 && e.IsRunning(); i++ {
		e.Update(now)
		now += 5
	}
	False(t, e.IsRunning(), "a drained stream completes")
	Equal(t, 0, b.lit())
}

func TestInvertLogicReprojectsBlocksSeamlessly(t *testing.T) {
	b := newBar(16)
	e := anim.New(b).ScrollingUpBlocks(5, 1, 3, 1)

	// Five steps carry the single block to segment 4.
	var now int64
	for ; now <= 25; now += 5 {
		e.Update(now)
	}
	True(t, b.px[4])
	Equal(t, 1, b.lit())

	// Flipping the logic re-projects the block in place; the next step
	// moves it one segment the other way.
	e.InvertLogic()
	True(t, e.IsLogicInverted())
	e.Update(now)
	True(t, b.px[3])
	Equal(t, 1, b.lit())

	runUntilDone(t, e, 5, 100)
	Equal(t, 0, b.lit(), "the block exits through the bottom")
	Nil(t, e.Err())
}

func TestExplodingBlocksStayMirrored(t *testing.T) {
	b := newBar(8)
	e := anim.New(b).ExplodingBlocks(5, 1, 0, 2)

	e.Update(0)
	e.Update(5)
	True(t, b.px[3])
	True(t, b.px[4])

	var now int64 = 10
	for e.IsRunning() {
		e.Update(now)
		for i := 0; i < 4; i++ {
			Equal(t, b.px[i], b.px[7-i], "mirror pairs move together")
		}
		now += 5
		if now > 500 {
			t.Fatal("exploding blocks did not complete")
		}
	}
	Equal(t, 0, b.lit())
}

func TestCollidingBlocksEnterAtEdges(t *testing.T) {
	b := newBar(8)
	e := anim.New(b).CollidingBlocks(5, 2, 1, 1)

	e.Update(0)
	e.Update(5)
	True(t, b.px[0])
	True(t, b.px[7])
	Equal(t, 2, b.lit())

	runUntilDone(t, e, 5, 100)
	Equal(t, 0, b.lit())
}

func TestCollidingSixBlocksRecyclePool(t *testing.T) {
	b := newBar(16)
	e := anim.New(b).CollidingBlocks(5, 2, 1, 6)

	// Six emissions outnumber the pool slots, so records must recycle.
	runUntilDone(t, e, 5, 800)
	Equal(t, 0, b.lit())
	Nil(t, e.Err())
}

func TestStackingDownCoversBar(t *testing.T) {
	b := newBar(6)
	e := anim.New(b).DownStackingBlocks(5, 1, 0)

	runUntilDone(t, e, 5, 400)
	Equal(t, 6, b.lit(), "gapless blocks stack the whole bar")
}

func TestUpUnstackingEmptiesBar(t *testing.T) {
	b := newBar(6)
	e := anim.New(b).UpUnstackingBlocks(5, 1, 0)

	e.Update(0)
	Equal(t, 6, b.lit(), "unstacking starts from a full stack")

	runUntilDone(t, e, 5, 400)
	Equal(t, 0, b.lit())
}

func TestUpStackingRendersMirrored(t *testing.T) {
	b := newBar(9)
	e := anim.New(b).UpStackingBlocks(5, 2, 1)

	e.Update(0)
	e.Update(5)
	True(t, b.px[0], "rising blocks appear at the bottom")

	runUntilDone(t, e, 5, 400)
	Equal(t, 6, b.lit(), "two wide blocks with one gap cover six of nine")
}
