package max72xx_test

import (
	"bytes"
	"testing"

	"periph.io/x/conn/v3/spi/spitest"

	"github.com/example/barmeter/driver/max72xx"
	"github.com/example/barmeter/led"
	"github.com/stretchr/testify/assert"
)

var _ led.Driver = (*max72xx.Dev)(nil)

// broadcast is one chained frame writing the same register on n devices.
func broadcast(n int, reg, val byte) []byte {
	f := make([]byte, 0, n*2)
	for i := 0; i < n; i++ {
		f = append(f, reg, val)
	}
	return f
}

// blankRows is the frame sequence of a full Show on a cleared chain.
func blankRows(n int) []byte {
	var f []byte
	for row := byte(0); row < 8; row++ {
		f = append(f, broadcast(n, 0x01+row, 0x00)...)
	}
	return f
}

func initFrames(n int) []byte {
	var f []byte
	f = append(f, broadcast(n, 0x0F, 0x00)...) // display test off
	f = append(f, broadcast(n, 0x0B, 0x07)...) // scan all rows
	f = append(f, broadcast(n, 0x09, 0x00)...) // no BCD decode
	f = append(f, broadcast(n, 0x0A, 0x08)...) // mid intensity
	f = append(f, blankRows(n)...)
	f = append(f, broadcast(n, 0x0C, 0x01)...) // leave shutdown
	return f
}

func TestNewInitialisesChain(t *testing.T) {
	var buf bytes.Buffer
	d, err := max72xx.New(spitest.NewRecordRaw(&buf), 2)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, initFrames(2), buf.Bytes())
	assert.Equal(t, "max72xx{recordraw}", d.String())
}

func TestDeviceCountClamped(t *testing.T) {
	var buf bytes.Buffer
	d, err := max72xx.New(spitest.NewRecordRaw(&buf), 0)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 1, d.DeviceCount())

	d, err = max72xx.New(spitest.NewRecordRaw(&buf), 99)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 8, d.DeviceCount())
	assert.Equal(t, 8, d.MaxRows(0))
	assert.Equal(t, 8, d.MaxCols())
	assert.Equal(t, 64, d.MaxSegments(0))
}

func TestShowSendsOneFramePerRow(t *testing.T) {
	var buf bytes.Buffer
	d, err := max72xx.New(spitest.NewRecordRaw(&buf), 2)
	if err != nil {
		t.Fatal(err)
	}
	buf.Reset()

	// Device 0 row 2 column 5, device 1 row 0 column 0. The chain frame
	// carries the far device first.
	d.SetLed(0, 2, 5, true)
	d.SetLed(1, 0, 0, true)
	if err := d.Show(); err != nil {
		t.Fatal(err)
	}

	want := []byte{
		0x01, 0x80, 0x01, 0x00,
		0x02, 0x00, 0x02, 0x00,
		0x03, 0x00, 0x03, 0x04,
		0x04, 0x00, 0x04, 0x00,
		0x05, 0x00, 0x05, 0x00,
		0x06, 0x00, 0x06, 0x00,
		0x07, 0x00, 0x07, 0x00,
		0x08, 0x00, 0x08, 0x00,
	}
	assert.Equal(t, want, buf.Bytes())
}

func TestStagingAndReadback(t *testing.T) {
	var buf bytes.Buffer
	d, err := max72xx.New(spitest.NewRecordRaw(&buf), 1)
	if err != nil {
		t.Fatal(err)
	}

	d.SetLed(0, 3, 1, true)
	assert.True(t, d.Led(0, 3, 1))
	assert.False(t, d.Led(0, 3, 2))

	// Out of range coordinates are silent and read back off.
	d.SetLed(1, 0, 0, true)
	d.SetLed(0, 8, 0, true)
	d.SetLed(0, 0, -1, true)
	assert.False(t, d.Led(1, 0, 0))
	assert.False(t, d.Led(0, 8, 0))

	d.Clear()
	assert.False(t, d.Led(0, 3, 1))
}

func TestIntensityClampedToRegisterRange(t *testing.T) {
	var buf bytes.Buffer
	d, err := max72xx.New(spitest.NewRecordRaw(&buf), 1)
	if err != nil {
		t.Fatal(err)
	}
	buf.Reset()

	if err := d.SetIntensity(99); err != nil {
		t.Fatal(err)
	}
	if err := d.SetIntensity(-3); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, []byte{0x0A, 0x0F, 0x0A, 0x00}, buf.Bytes())
}

func TestHaltClearsAndShutsDown(t *testing.T) {
	var buf bytes.Buffer
	d, err := max72xx.New(spitest.NewRecordRaw(&buf), 1)
	if err != nil {
		t.Fatal(err)
	}
	d.SetLed(0, 0, 0, true)
	buf.Reset()

	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	want := append(blankRows(1), 0x0C, 0x00)
	assert.Equal(t, want, buf.Bytes())
	assert.False(t, d.Led(0, 0, 0))
}
