package anim_test

import (
	"testing"

	"github.com/example/barmeter/anim"

	. "github.com/stretchr/testify/assert"
)

func TestBounceFillClosesItsCycle(t *testing.T) {
	b := newBar(8)
	e := anim.New(b).BounceFillUpIntv(5, 5, 100, 0)

	runUntilDone(t, e, 5, 100)

	Equal(t, 0, b.lit(), "a bounce cycle ends on an empty bar")
	False(t, e.IsRunning())
	False(t, e.PendingLoop())
}

func TestBounceLoopRunsWithoutLoopEvents(t *testing.T) {
	b := newBar(6)
	e := anim.New(b).Loop().BounceFillUpIntv(5, 5, 100, 0)

	var now int64
	for i := 0; i < 80; i++ {
		True(t, e.Update(now), "looped bounce never stops")
		False(t, e.PendingLoop(), "bounce cycles swallow the loop event")
		now += 5
	}
	True(t, e.IsRunning())
}

func TestBounceFillDownStartsAtTop(t *testing.T) {
	b := newBar(8)
	e := anim.New(b).BounceFillDownIntv(5, 5, 100, 0)

	e.Update(0)
	True(t, b.px[7])
	False(t, b.px[0])
	Equal(t, 1, b.lit())
}

func TestBounceDurSplitsBudgetBetweenPhases(t *testing.T) {
	b := newBar(10)
	e := anim.New(b).BounceFillUpDur(1000, 100, 0, 0)

	// Ten steps each way from a 1000 ms budget: 50 ms per step.
	e.Update(0)
	e.Update(49)
	Equal(t, 1, b.lit())
	e.Update(50)
	Equal(t, 1, b.lit(), "first step re-covers the pre-lit segment")
	e.Update(100)
	Equal(t, 2, b.lit())
}
