package layout_test

import (
	"strconv"
	"testing"

	. "github.com/example/barmeter/layout"
	"github.com/stretchr/testify/assert"
)

// grid is a fixed driver chain shape for resolving against.
type grid struct{ devs, rows, cols int }

func (g grid) DeviceCount() int        { return g.devs }
func (g grid) MaxRows(dev int) int     { return g.rows }
func (g grid) MaxCols() int            { return g.cols }
func (g grid) MaxSegments(dev int) int { return g.rows * g.cols }

var TestPresetSKMapsColumnMajor = []struct {
	Seg, Dev, Row, Col int
}{
	{0, 0, 0, 0},
	{1, 0, 1, 0},
	{3, 0, 3, 0},
	{4, 0, 0, 1},
	{5, 0, 1, 1},
	{26, 0, 2, 6},
	{27, 0, 3, 6},
}

var TestPresetSAMapsColumnMajor = []struct {
	Seg, Dev, Row, Col int
}{
	{0, 0, 0, 0},
	{6, 0, 6, 0},
	{7, 0, 0, 1},
	{27, 0, 6, 3},
}

func TestPresetMapping(t *testing.T) {
	g := grid{devs: 1, rows: 8, cols: 8}

	sk := NewPreset(g, 0, BL28SK, Forward)
	assert.Equal(t, 28, sk.Count(), "SK preset is 28 segments")
	for _, v := range TestPresetSKMapsColumnMajor {
		t.Run("SK seg "+strconv.Itoa(v.Seg), func(t *testing.T) {
			dev, row, col, ok := sk.Resolve(v.Seg)
			assert.True(t, ok)
			assert.Equal(t, v.Dev, dev)
			assert.Equal(t, v.Row, row)
			assert.Equal(t, v.Col, col)
		})
	}

	sa := NewPreset(g, 0, BL28SA, Forward)
	for _, v := range TestPresetSAMapsColumnMajor {
		t.Run("SA seg "+strconv.Itoa(v.Seg), func(t *testing.T) {
			dev, row, col, ok := sa.Resolve(v.Seg)
			assert.True(t, ok)
			assert.Equal(t, v.Dev, dev)
			assert.Equal(t, v.Row, row)
			assert.Equal(t, v.Col, col)
		})
	}
}

func TestPresetNoneUsesNativeGrid(t *testing.T) {
	g := grid{devs: 1, rows: 8, cols: 8}
	l := NewPreset(g, 0, PresetNone, Forward)
	assert.Equal(t, 64, l.Count())

	// Native layout resolves row major, no matrix offsets.
	dev, row, col, ok := l.Resolve(10)
	assert.True(t, ok)
	assert.Equal(t, 0, dev)
	assert.Equal(t, 1, row)
	assert.Equal(t, 2, col)
}

func TestReverseNumbersFromFarEnd(t *testing.T) {
	g := grid{devs: 1, rows: 8, cols: 8}
	fwd := NewPreset(g, 0, BL28SK, Forward)
	rev := NewPreset(g, 0, BL28SK, Reverse)

	for seg := 0; seg < 28; seg++ {
		d1, r1, c1, _ := fwd.Resolve(seg)
		d2, r2, c2, _ := rev.Resolve(27 - seg)
		assert.Equal(t, d1, d2)
		assert.Equal(t, r1, r2)
		assert.Equal(t, c1, c2)
	}
}

func TestSetDirectionTwiceRestoresMapping(t *testing.T) {
	g := grid{devs: 1, rows: 8, cols: 8}
	l := NewMatrix(g, 0, 4, 7, Forward)
	_, r1, c1, _ := l.Resolve(5)
	l.SetDirection(Reverse).SetDirection(Forward)
	_, r2, c2, _ := l.Resolve(5)
	assert.Equal(t, r1, r2)
	assert.Equal(t, c1, c2)
}

func TestMatrixOffsetsShiftCoordinates(t *testing.T) {
	g := grid{devs: 1, rows: 8, cols: 8}
	l := NewMatrix(g, 0, 4, 7, Forward).SetMatrixOffset(2, 1)

	dev, row, col, ok := l.Resolve(0)
	assert.True(t, ok)
	assert.Equal(t, 0, dev)
	assert.Equal(t, 2, row)
	assert.Equal(t, 1, col)

	// Offsets clamp to the device grid.
	l.SetMatrixOffset(99, 99)
	_, row, col, _ = l.Resolve(0)
	assert.Equal(t, 7, row)
	assert.Equal(t, 7, col)
}

func TestLinearSegmentOffset(t *testing.T) {
	g := grid{devs: 1, rows: 8, cols: 8}
	l := NewLinear(g, 0, 28, Forward).SetSegmentOffset(4)

	dev, row, col, ok := l.Resolve(0)
	assert.True(t, ok)
	assert.Equal(t, 0, dev)
	assert.Equal(t, 0, row)
	assert.Equal(t, 4, col)

	_, row, col, _ = l.Resolve(5)
	assert.Equal(t, 1, row)
	assert.Equal(t, 1, col)
}

func TestLinearSpansDevices(t *testing.T) {
	g := grid{devs: 2, rows: 8, cols: 8}
	l := NewLinear(g, 0, 100, Forward)

	dev, row, col, ok := l.Resolve(70)
	assert.True(t, ok)
	assert.Equal(t, 1, dev)
	assert.Equal(t, 0, row)
	assert.Equal(t, 6, col)
}

func TestMatrixSpansDevices(t *testing.T) {
	// 16x8 grid over two 8x8 devices; segment 64 onward lands on dev 1.
	g := grid{devs: 2, rows: 8, cols: 8}
	l := NewMatrix(g, 0, 16, 8, Forward)
	assert.Equal(t, 128, l.Count())

	dev, row, col, ok := l.Resolve(64)
	assert.True(t, ok)
	assert.Equal(t, 1, dev)
	assert.Equal(t, 0, row)
	assert.Equal(t, 0, col)

	dev, row, col, ok = l.Resolve(65)
	assert.True(t, ok)
	assert.Equal(t, 1, dev)
	assert.Equal(t, 1, row)
	assert.Equal(t, 0, col)
}

func TestCustomTableAppliesOffsets(t *testing.T) {
	g := grid{devs: 2, rows: 8, cols: 8}
	tab := SliceTable{{0, 0, 0}, {0, 2, 5}, {1, 7, 7}}
	l := NewTable(g, 0, tab, Forward).SetMatrixOffset(1, 1)

	assert.Equal(t, 3, l.Count())

	dev, row, col, ok := l.Resolve(1)
	assert.True(t, ok)
	assert.Equal(t, 0, dev, "table device is used verbatim")
	assert.Equal(t, 3, row)
	assert.Equal(t, 6, col)

	dev, _, _, _ = l.Resolve(2)
	assert.Equal(t, 1, dev)
}

func TestPackedTableMatchesSliceTable(t *testing.T) {
	g := grid{devs: 2, rows: 8, cols: 8}
	entries := SliceTable{{0, 1, 2}, {0, 3, 4}, {1, 5, 6}}
	packed := PackedTable{0, 1, 2, 0, 3, 4, 1, 5, 6}

	a := NewTable(g, 0, entries, Forward)
	b := NewTable(g, 0, packed, Forward)

	assert.Equal(t, a.Count(), b.Count())
	for seg := 0; seg < a.Count(); seg++ {
		d1, r1, c1, _ := a.Resolve(seg)
		d2, r2, c2, _ := b.Resolve(seg)
		assert.Equal(t, d1, d2)
		assert.Equal(t, r1, r2)
		assert.Equal(t, c1, c2)
	}
}

func TestDeviceBeyondChainResolvesNothing(t *testing.T) {
	g := grid{devs: 2, rows: 8, cols: 8}
	l := NewPreset(g, 5, BL28SK, Forward)

	assert.Equal(t, 0, l.Count(), "device past the chain keeps zero segments")
	_, _, _, ok := l.Resolve(0)
	assert.False(t, ok)
}

func TestConstructionClamps(t *testing.T) {
	g := grid{devs: 8, rows: 8, cols: 8}

	l := NewMatrix(g, 99, 4, 20, Forward)
	assert.Equal(t, 7, l.Device(), "device index clamps to chain limit")
	assert.Equal(t, 8, l.Cols(), "columns clamp to device width")

	l = NewMatrix(g, 0, 0, 0, Forward)
	assert.Equal(t, 1, l.Rows())
	assert.Equal(t, 1, l.Cols())

	l = NewLinear(g, 0, 16, Forward).SetSegmentOffset(1000)
	_, row, col, _ := l.Resolve(0)
	assert.Equal(t, 7, row, "segment offset clamps to device capacity")
	assert.Equal(t, 7, col)
}

func TestOutOfRangeSegmentMisses(t *testing.T) {
	g := grid{devs: 1, rows: 8, cols: 8}
	l := NewPreset(g, 0, BL28SK, Forward)

	_, _, _, ok := l.Resolve(-1)
	assert.False(t, ok)
	_, _, _, ok = l.Resolve(28)
	assert.False(t, ok)
}
