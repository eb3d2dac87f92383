// Package strip renders a bar on an addressable LED strip, one LED per
// segment. The strip is any display.Drawer: a WS2812 class chain on an
// SPI port, or the console drawer for a terminal rendition of the same
// frame.
package strip

import (
	"fmt"
	"image"
	"image/color"

	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/extra/devices/screen"
)

// refreshRate is the NRZ bit clock base in kHz.
const refreshRate physic.Frequency = 800

// Opts configures a strip bar.
type Opts struct {
	// NumPixels is the strip length and therefore the segment count.
	NumPixels int
	// On is the colour of a lit segment. The zero value selects warm
	// white.
	On color.NRGBA
}

func (o *Opts) onColor() color.NRGBA {
	if o.On == (color.NRGBA{}) {
		return color.NRGBA{R: 0xFF, G: 0xBF, B: 0x5F, A: 0xFF}
	}
	return o.On
}

// Dev drives the strip through a display.Drawer. Segment state is
// staged locally and rendered as a 1 by N image with Show.
type Dev struct {
	drawer display.Drawer
	n      int
	on     color.NRGBA
	buf    []bool
	img    *image.NRGBA
}

// New wraps an open drawer.
func New(drawer display.Drawer, o *Opts) *Dev {
	n := o.NumPixels
	if n < 1 {
		n = 1
	}
	return &Dev{
		drawer: drawer,
		n:      n,
		on:     o.onColor(),
		buf:    make([]bool, n),
		img:    image.NewNRGBA(image.Rect(0, 0, n, 1)),
	}
}

// NewSPI opens an NRZ strip of o.NumPixels LEDs on p.
func NewSPI(p spi.Port, o *Opts) (*Dev, error) {
	opts := nrzled.Opts{
		NumPixels: o.NumPixels,
		Channels:  3,
		Freq:      ((refreshRate * 3) + 100) * physic.KiloHertz,
	}
	d, err := nrzled.NewSPI(p, &opts)
	if err != nil {
		return nil, fmt.Errorf("strip: %w", err)
	}
	d.Halt()
	return New(d, o), nil
}

// NewScreen renders the strip as coloured blocks on stdout.
func NewScreen(o *Opts) *Dev {
	n := o.NumPixels
	if n < 1 {
		n = 1
	}
	return New(screen.New(n), o)
}

func (d *Dev) String() string {
	return fmt.Sprintf("strip{%s}", d.drawer)
}

func (d *Dev) DeviceCount() int        { return 1 }
func (d *Dev) MaxRows(dev int) int     { return 1 }
func (d *Dev) MaxCols() int            { return d.n }
func (d *Dev) MaxSegments(dev int) int { return d.n }

// SetLed stages one LED; the strip is row 0 of a single device. Out of
// range coordinates are ignored.
func (d *Dev) SetLed(dev, row, col int, on bool) {
	if dev != 0 || row != 0 || col < 0 || col >= d.n {
		return
	}
	d.buf[col] = on
}

// Led reads a staged LED back from the buffer.
func (d *Dev) Led(dev, row, col int) bool {
	return dev == 0 && row == 0 && col >= 0 && col < d.n && d.buf[col]
}

// Clear stages every LED off.
func (d *Dev) Clear() {
	for i := range d.buf {
		d.buf[i] = false
	}
}

// Show paints the staged segments into the frame image and draws it.
func (d *Dev) Show() error {
	off := color.NRGBA{A: 0xFF}
	for x := 0; x < d.n; x++ {
		c := off
		if d.buf[x] {
			c = d.on
		}
		d.img.SetNRGBA(x, 0, c)
	}
	return d.drawer.Draw(d.drawer.Bounds(), d.img, image.Point{})
}

// Halt blanks the staged state and stops the drawer.
func (d *Dev) Halt() error {
	d.Clear()
	return d.drawer.Halt()
}
