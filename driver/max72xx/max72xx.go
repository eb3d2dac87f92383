// Package max72xx drives chains of MAX7219/MAX7221 LED display drivers
// over SPI. Each device owns an 8x8 bank of outputs addressed through
// its eight digit registers; a row write shifts one 16-bit frame per
// device through the whole chain.
package max72xx

import (
	"fmt"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Register opcodes, MAX7219/MAX7221 datasheet table 2.
const (
	regNoOp        = 0x00
	regDigit0      = 0x01 // digit registers run 0x01..0x08
	regDecodeMode  = 0x09
	regIntensity   = 0x0A
	regScanLimit   = 0x0B
	regShutdown    = 0x0C
	regDisplayTest = 0x0F
)

const (
	maxDevices = 8
	rowsPerDev = 8
	colsPerDev = 8

	// DefaultIntensity is the power-up PWM level, mid-scale of 0..15.
	DefaultIntensity = 8
)

// Dev is an open chain of MAX72xx devices. Digit rows are staged in a
// local buffer and pushed with Show.
type Dev struct {
	c    spi.Conn
	devs int
	buf  []byte // one byte per device row, bit 7 = column 0
	tx   []byte // scratch frame, two bytes per device
}

// New connects to a chain of n devices and leaves them awake with BCD
// decoding off, all eight rows scanned, mid intensity and a cleared
// display. n is clamped to 1..8.
func New(p spi.Port, n int) (*Dev, error) {
	if n < 1 {
		n = 1
	}
	if n > maxDevices {
		n = maxDevices
	}
	c, err := p.Connect(10*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("max72xx: connect: %w", err)
	}
	d := &Dev{
		c:    c,
		devs: n,
		buf:  make([]byte, n*rowsPerDev),
		tx:   make([]byte, n*2),
	}
	for _, w := range [][2]byte{
		{regDisplayTest, 0},
		{regScanLimit, rowsPerDev - 1},
		{regDecodeMode, 0},
		{regIntensity, DefaultIntensity},
	} {
		if err := d.broadcast(w[0], w[1]); err != nil {
			return nil, err
		}
	}
	// Clear before releasing shutdown so power-on garbage never shows.
	if err := d.Show(); err != nil {
		return nil, err
	}
	if err := d.broadcast(regShutdown, 1); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("max72xx{%s}", d.c)
}

func (d *Dev) DeviceCount() int        { return d.devs }
func (d *Dev) MaxRows(dev int) int     { return rowsPerDev }
func (d *Dev) MaxCols() int            { return colsPerDev }
func (d *Dev) MaxSegments(dev int) int { return rowsPerDev * colsPerDev }

func (d *Dev) index(dev, row, col int) (int, bool) {
	if dev < 0 || dev >= d.devs || row < 0 || row >= rowsPerDev || col < 0 || col >= colsPerDev {
		return 0, false
	}
	return dev*rowsPerDev + row, true
}

// SetLed stages one LED. Column 0 maps to the most significant segment
// bit, matching the DIG row / SEG column wiring of common modules. Out
// of range coordinates are ignored.
func (d *Dev) SetLed(dev, row, col int, on bool) {
	i, ok := d.index(dev, row, col)
	if !ok {
		return
	}
	mask := byte(0x80) >> col
	if on {
		d.buf[i] |= mask
	} else {
		d.buf[i] &^= mask
	}
}

// Led reads a staged LED back from the buffer.
func (d *Dev) Led(dev, row, col int) bool {
	i, ok := d.index(dev, row, col)
	if !ok {
		return false
	}
	return d.buf[i]&(0x80>>col) != 0
}

// Clear stages every LED off.
func (d *Dev) Clear() {
	for i := range d.buf {
		d.buf[i] = 0
	}
}

// Show pushes the staged rows, one chained frame per digit register.
// The frame is shifted out last device first so device 0 sits nearest
// the bus master.
func (d *Dev) Show() error {
	for row := 0; row < rowsPerDev; row++ {
		for dev := 0; dev < d.devs; dev++ {
			off := 2 * (d.devs - 1 - dev)
			d.tx[off] = byte(regDigit0 + row)
			d.tx[off+1] = d.buf[dev*rowsPerDev+row]
		}
		if err := d.c.Tx(d.tx, nil); err != nil {
			return fmt.Errorf("max72xx: row %d: %w", row, err)
		}
	}
	return nil
}

// SetIntensity sets the PWM brightness of every device. level is
// clamped to 0..15.
func (d *Dev) SetIntensity(level int) error {
	if level < 0 {
		level = 0
	}
	if level > 15 {
		level = 15
	}
	return d.broadcast(regIntensity, byte(level))
}

// Halt clears the display and puts the chain into shutdown.
func (d *Dev) Halt() error {
	d.Clear()
	if err := d.Show(); err != nil {
		return err
	}
	return d.broadcast(regShutdown, 0)
}

// broadcast writes the same register on every device in one frame.
func (d *Dev) broadcast(reg, val byte) error {
	for dev := 0; dev < d.devs; dev++ {
		d.tx[2*dev] = reg
		d.tx[2*dev+1] = val
	}
	if err := d.c.Tx(d.tx, nil); err != nil {
		return fmt.Errorf("max72xx: reg %#02x: %w", reg, err)
	}
	return nil
}
