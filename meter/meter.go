// Package meter binds a segment layout to an LED driver chain and
// exposes the bar as a run of logical pixels. Animations in package anim
// draw through this surface without knowing the wiring behind it.
package meter

import (
	"fmt"
	"io"

	"github.com/example/barmeter/layout"
	"github.com/example/barmeter/led"
)

// Meter addresses a bar of segments on a driver chain. Writes are staged
// in the driver's buffers; call Show to push a frame.
type Meter struct {
	drv led.Driver
	lay *layout.Layout
}

func New(drv led.Driver, lay *layout.Layout) *Meter {
	return &Meter{drv: drv, lay: lay}
}

// Count returns the number of logical segments in the bar.
func (m *Meter) Count() int { return m.lay.Count() }

// SetPixel stages one segment on or off. Out of range segments are
// ignored.
func (m *Meter) SetPixel(seg int, on bool) {
	dev, row, col, ok := m.lay.Resolve(seg)
	if !ok {
		return
	}
	m.drv.SetLed(dev, row, col, on)
}

// PixelState reads a segment's staged state back from the driver
// buffer. Out of range segments read as off.
func (m *Meter) PixelState(seg int) bool {
	dev, row, col, ok := m.lay.Resolve(seg)
	if !ok {
		return false
	}
	return m.drv.Led(dev, row, col)
}

// Clear stages every segment of the bar off. Segments outside the bar
// are left alone.
func (m *Meter) Clear() {
	for i := 0; i < m.lay.Count(); i++ {
		m.SetPixel(i, false)
	}
}

// Show pushes staged state to the hardware.
func (m *Meter) Show() error { return m.drv.Show() }

// Layout returns the segment layout for direction and offset tweaks.
func (m *Meter) Layout() *layout.Layout { return m.lay }

// SetDirection flips the logical numbering order of the bar.
func (m *Meter) SetDirection(d layout.Direction) *Meter {
	m.lay.SetDirection(d)
	return m
}

func (m *Meter) Direction() layout.Direction { return m.lay.Direction() }

// SetMatrixOffset shifts the resolved row and column coordinates.
func (m *Meter) SetMatrixOffset(row, col int) *Meter {
	m.lay.SetMatrixOffset(row, col)
	return m
}

// SetSegmentOffset shifts the bar along a linear run of outputs.
func (m *Meter) SetSegmentOffset(off int) *Meter {
	m.lay.SetSegmentOffset(off)
	return m
}

// WriteMapping dumps the resolved coordinates of every segment, one per
// line. Useful when verifying offsets and split device wiring.
func (m *Meter) WriteMapping(w io.Writer) error {
	for i := 0; i < m.lay.Count(); i++ {
		dev, row, col, ok := m.lay.Resolve(i)
		if !ok {
			continue
		}
		if _, err := fmt.Fprintf(w, "segment %d -> device %d, row %d, col %d\n", i, dev, row, col); err != nil {
			return err
		}
	}
	return nil
}
