// Package ht16k33 drives HT16K33 LED controller backpacks over I2C.
// Each device scans an 8 common by 16 output matrix out of a 16 byte
// display RAM; several backpacks on one bus form a chain through their
// address pins.
package ht16k33

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
)

// Command prefixes, HT16K33 datasheet.
const (
	cmdRAM        = 0x00 // display RAM write, address auto-increments
	cmdOscillator = 0x21 // system setup, oscillator on
	cmdDisplay    = 0x80 // display setup, OR display on bit and blink bits
	cmdBrightness = 0xE0 // dimming, OR level 0..15

	displayOn = 0x01
)

// Blink selects the hardware blink rate applied with the display setup
// command.
type Blink byte

const (
	BlinkOff    Blink = 0x00
	Blink2Hz    Blink = 0x02
	Blink1Hz    Blink = 0x04
	BlinkHalfHz Blink = 0x06
)

const (
	maxDevices = 8 // three address pins above 0x70
	rowsPerDev = 8 // commons COM0..COM7
	colsPerDev = 16
	ramSize    = 16

	// DefaultAddr is the backpack address with all address pins open.
	DefaultAddr = 0x70
)

// Dev is a run of HT16K33 backpacks at consecutive addresses. LED state
// is staged in a local copy of each display RAM and pushed with Show.
type Dev struct {
	devs []i2c.Dev
	buf  []byte // ramSize bytes per device
}

// New configures n backpacks at addr, addr+1, ... and leaves them on at
// full brightness with a cleared display. n is clamped to 1..8.
func New(b i2c.Bus, addr uint16, n int) (*Dev, error) {
	if n < 1 {
		n = 1
	}
	if n > maxDevices {
		n = maxDevices
	}
	d := &Dev{buf: make([]byte, n*ramSize)}
	for i := 0; i < n; i++ {
		d.devs = append(d.devs, i2c.Dev{Bus: b, Addr: addr + uint16(i)})
	}
	for i := range d.devs {
		for _, cmd := range []byte{
			cmdOscillator,
			cmdDisplay | displayOn | byte(BlinkOff),
			cmdBrightness | 15,
		} {
			if err := d.devs[i].Tx([]byte{cmd}, nil); err != nil {
				return nil, fmt.Errorf("ht16k33: device %d: %w", i, err)
			}
		}
	}
	if err := d.Show(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("ht16k33{%s, n=%d}", &d.devs[0], len(d.devs))
}

func (d *Dev) DeviceCount() int        { return len(d.devs) }
func (d *Dev) MaxRows(dev int) int     { return rowsPerDev }
func (d *Dev) MaxCols() int            { return colsPerDev }
func (d *Dev) MaxSegments(dev int) int { return rowsPerDev * colsPerDev }

// index locates the RAM byte holding (dev, row, col). Row is the
// common, column the ROW output; outputs 8..15 live in the odd byte of
// the common's RAM pair.
func (d *Dev) index(dev, row, col int) (int, byte, bool) {
	if dev < 0 || dev >= len(d.devs) || row < 0 || row >= rowsPerDev || col < 0 || col >= colsPerDev {
		return 0, 0, false
	}
	return dev*ramSize + 2*row + col/8, 1 << (col % 8), true
}

// SetLed stages one LED. Out of range coordinates are ignored.
func (d *Dev) SetLed(dev, row, col int, on bool) {
	i, mask, ok := d.index(dev, row, col)
	if !ok {
		return
	}
	if on {
		d.buf[i] |= mask
	} else {
		d.buf[i] &^= mask
	}
}

// Led reads a staged LED back from the buffer.
func (d *Dev) Led(dev, row, col int) bool {
	i, mask, ok := d.index(dev, row, col)
	if !ok {
		return false
	}
	return d.buf[i]&mask != 0
}

// Clear stages every LED off.
func (d *Dev) Clear() {
	for i := range d.buf {
		d.buf[i] = 0
	}
}

// Show writes each device's staged RAM in one transaction, address
// pointer reset to zero.
func (d *Dev) Show() error {
	for i := range d.devs {
		w := append([]byte{cmdRAM}, d.buf[i*ramSize:(i+1)*ramSize]...)
		if err := d.devs[i].Tx(w, nil); err != nil {
			return fmt.Errorf("ht16k33: device %d: %w", i, err)
		}
	}
	return nil
}

// SetBrightness sets the dimming level of every device, clamped to
// 0..15.
func (d *Dev) SetBrightness(level int) error {
	if level < 0 {
		level = 0
	}
	if level > 15 {
		level = 15
	}
	return d.command(cmdBrightness | byte(level))
}

// SetBlink sets the hardware blink rate of every device.
func (d *Dev) SetBlink(r Blink) error {
	return d.command(cmdDisplay | displayOn | byte(r))
}

// Halt clears the display and switches it off. The oscillator keeps
// running so a later SetBlink wakes the device.
func (d *Dev) Halt() error {
	d.Clear()
	if err := d.Show(); err != nil {
		return err
	}
	return d.command(cmdDisplay)
}

func (d *Dev) command(cmd byte) error {
	for i := range d.devs {
		if err := d.devs[i].Tx([]byte{cmd}, nil); err != nil {
			return fmt.Errorf("ht16k33: device %d: %w", i, err)
		}
	}
	return nil
}
