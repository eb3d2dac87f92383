// Package layout resolves logical bar segments to physical driver
// coordinates. A Layout describes how a run of segments sits on a chain
// of LED driver devices: as a factory preset, an explicit matrix, a
// linear run of outputs, or a custom per-segment table.
package layout

// Direction is the logical numbering order of the bar.
type Direction uint8

const (
	Forward Direction = iota
	Reverse
)

func (d Direction) String() string {
	if d == Reverse {
		return "reverse"
	}
	return "forward"
}

// Preset identifies a known bar-graph matrix wiring.
type Preset uint8

const (
	PresetNone Preset = iota
	// BL28SK is the 28 segment common-cathode module, 4 rows by 7 columns.
	BL28SK
	// BL28SA is the 28 segment common-anode module, 7 rows by 4 columns.
	BL28SA
)

// Geometry describes the addressable space of a driver chain. Drivers
// in package led satisfy it.
type Geometry interface {
	DeviceCount() int
	MaxRows(dev int) int
	MaxCols() int
	MaxSegments(dev int) int
}

// Layout maps segment indices to (device, row, column) coordinates.
// Construct one with NewPreset, NewMatrix, NewLinear or NewTable.
type Layout struct {
	geom   Geometry
	dev    int
	segs   int
	rows   int
	cols   int
	rowOff int
	colOff int
	segOff int
	dir    Direction
	matrix bool // row/col addressing with offsets, vs linear output run
	table  Table
}

const maxDeviceIndex = 7

// NewPreset builds a layout from a factory preset starting at device dev.
// PresetNone falls back to the device's native row by column grid.
func NewPreset(g Geometry, dev int, p Preset, dir Direction) *Layout {
	l := &Layout{geom: g, dev: clamp(dev, 0, maxDeviceIndex), dir: dir}
	if l.degenerate() {
		return l
	}
	switch p {
	case BL28SK:
		l.segs, l.rows, l.cols = 28, 4, 7
		l.matrix = true
	case BL28SA:
		l.segs, l.rows, l.cols = 28, 7, 4
		l.matrix = true
	default:
		l.rows = g.MaxRows(l.dev)
		l.cols = g.MaxCols()
		l.segs = l.rows * l.cols
	}
	return l
}

// NewMatrix builds a layout over an explicit rows by cols grid. The grid
// may span several devices; rows beyond one device continue on the next.
func NewMatrix(g Geometry, dev, rows, cols int, dir Direction) *Layout {
	l := &Layout{geom: g, dev: clamp(dev, 0, maxDeviceIndex), dir: dir}
	if l.degenerate() {
		return l
	}
	l.rows = clamp(rows, 1, 255)
	l.cols = clamp(cols, 1, g.MaxCols())
	l.segs = l.rows * l.cols
	l.matrix = true
	return l
}

// NewLinear builds a layout over segs consecutive driver outputs,
// numbered row-major from the device's first output. Use
// SetSegmentOffset when the bar does not start at output zero.
func NewLinear(g Geometry, dev, segs int, dir Direction) *Layout {
	l := &Layout{geom: g, dev: clamp(dev, 0, maxDeviceIndex), dir: dir}
	if l.degenerate() {
		return l
	}
	if segs < 0 {
		segs = 0
	}
	l.segs = segs
	l.rows = g.MaxRows(l.dev)
	l.cols = g.MaxCols()
	return l
}

// NewTable builds a layout from an explicit per-segment coordinate table.
func NewTable(g Geometry, dev int, t Table, dir Direction) *Layout {
	l := &Layout{geom: g, dev: clamp(dev, 0, maxDeviceIndex), dir: dir}
	if l.degenerate() {
		return l
	}
	l.segs = t.Len()
	l.rows = g.MaxRows(l.dev)
	l.cols = g.MaxCols()
	l.table = t
	l.matrix = true
	return l
}

// degenerate reports whether the layout addresses a device beyond the
// chain. Such a layout keeps zero segments and every lookup misses.
func (l *Layout) degenerate() bool {
	return l.dev >= l.geom.DeviceCount()
}

// SetDirection changes the numbering order of the bar.
func (l *Layout) SetDirection(d Direction) *Layout {
	l.dir = d
	return l
}

// SetMatrixOffset shifts resolved coordinates down by row rows and right
// by col columns. Offsets are clamped to the device grid.
func (l *Layout) SetMatrixOffset(row, col int) *Layout {
	if l.degenerate() {
		return l
	}
	l.rowOff = clamp(row, 0, l.geom.MaxRows(l.dev)-1)
	l.colOff = clamp(col, 0, l.geom.MaxCols()-1)
	return l
}

// SetSegmentOffset skips off driver outputs before the first segment.
// It only applies to linear layouts; matrix and table layouts use
// SetMatrixOffset instead.
func (l *Layout) SetSegmentOffset(off int) *Layout {
	if l.degenerate() {
		return l
	}
	l.segOff = clamp(off, 0, l.geom.MaxSegments(l.dev)-1)
	return l
}

func (l *Layout) Count() int           { return l.segs }
func (l *Layout) Rows() int            { return l.rows }
func (l *Layout) Cols() int            { return l.cols }
func (l *Layout) Device() int          { return l.dev }
func (l *Layout) Direction() Direction { return l.dir }

// Resolve maps a logical segment to its device, row and column. ok is
// false when seg is out of range.
func (l *Layout) Resolve(seg int) (dev, row, col int, ok bool) {
	if seg < 0 || seg >= l.segs {
		return 0, 0, 0, false
	}

	// Direction applies before any offset.
	mapped := seg
	if l.dir == Reverse {
		mapped = l.segs - 1 - seg
	}
	if !l.matrix {
		mapped += l.segOff
	}

	if l.table != nil {
		dev, row, col = l.table.Entry(mapped)
		return dev, row + l.rowOff, col + l.colOff, true
	}

	// Segments past one device carry over to the next in the chain.
	perDev := l.geom.MaxRows(l.dev) * l.geom.MaxCols()
	dev = l.dev + mapped/perDev
	local := mapped % perDev

	if l.matrix {
		// Matrix wiring runs column major.
		return dev, local%l.rows + l.rowOff, local/l.rows + l.colOff, true
	}
	return dev, local / l.geom.MaxCols(), local % l.geom.MaxCols(), true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
