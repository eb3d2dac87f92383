package meter_test

import (
	"bytes"
	"testing"

	"github.com/example/barmeter/driver/fake"
	"github.com/example/barmeter/layout"
	. "github.com/example/barmeter/meter"
	"github.com/stretchr/testify/assert"
)

func newBar28(t *testing.T) (*Meter, *fake.Driver) {
	t.Helper()
	drv := fake.New(1, 8, 8)
	lay := layout.NewPreset(drv, 0, layout.BL28SK, layout.Forward)
	return New(drv, lay), drv
}

func TestSetAndReadBack(t *testing.T) {
	m, drv := newBar28(t)

	m.SetPixel(0, true)
	m.SetPixel(5, true)
	m.SetPixel(27, true)

	assert.True(t, m.PixelState(0))
	assert.True(t, m.PixelState(5))
	assert.True(t, m.PixelState(27))
	assert.False(t, m.PixelState(1))
	assert.Equal(t, 3, drv.Lit())

	// The SK preset puts segment 5 at row 1, column 1.
	assert.True(t, drv.Led(0, 1, 1))
}

func TestOutOfRangeIsSilent(t *testing.T) {
	m, drv := newBar28(t)

	m.SetPixel(-1, true)
	m.SetPixel(28, true)
	m.SetPixel(255, true)

	assert.Equal(t, 0, drv.Lit())
	assert.False(t, m.PixelState(-1))
	assert.False(t, m.PixelState(28))
}

func TestClearOnlyTouchesTheBar(t *testing.T) {
	drv := fake.New(1, 8, 8)
	lay := layout.NewPreset(drv, 0, layout.BL28SK, layout.Forward)
	m := New(drv, lay)

	// An LED outside the 4x7 bar region stays lit through Clear.
	drv.SetLed(0, 7, 7, true)
	for i := 0; i < m.Count(); i++ {
		m.SetPixel(i, true)
	}
	assert.Equal(t, 29, drv.Lit())

	m.Clear()
	assert.Equal(t, 1, drv.Lit())
	assert.True(t, drv.Led(0, 7, 7))
}

func TestShowForwardsToDriver(t *testing.T) {
	m, drv := newBar28(t)
	assert.NoError(t, m.Show())
	assert.NoError(t, m.Show())
	assert.Equal(t, 2, drv.Shows)
}

func TestDirectionFlipKeepsState(t *testing.T) {
	m, _ := newBar28(t)

	m.SetPixel(0, true)
	m.SetDirection(layout.Reverse)

	// The physical LED did not move; logically it now reads from the
	// far end.
	assert.False(t, m.PixelState(0))
	assert.True(t, m.PixelState(27))
}

func TestOffsetSettersForwardToLayout(t *testing.T) {
	m, drv := newBar28(t)

	m.SetMatrixOffset(2, 1)
	m.SetPixel(0, true)
	assert.True(t, drv.Led(0, 2, 1))

	drv2 := fake.New(1, 8, 8)
	lin := New(drv2, layout.NewLinear(drv2, 0, 10, layout.Forward))
	lin.SetSegmentOffset(3)
	lin.SetPixel(0, true)
	assert.True(t, drv2.Led(0, 0, 3))
}

func TestWriteMapping(t *testing.T) {
	drv := fake.New(1, 8, 8)
	lay := layout.NewTable(drv, 0, layout.SliceTable{{0, 1, 2}, {0, 3, 4}}, layout.Forward)
	m := New(drv, lay)

	var buf bytes.Buffer
	assert.NoError(t, m.WriteMapping(&buf))
	assert.Equal(t,
		"segment 0 -> device 0, row 1, col 2\nsegment 1 -> device 0, row 3, col 4\n",
		buf.String())
}
