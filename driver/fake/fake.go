// Package fake provides an in-memory driver, useful for headless tests
// and simulators.
package fake

// Driver buffers LED state for a chain of identical devices and counts
// frame pushes instead of talking to hardware.
type Driver struct {
	Shows int

	devs, rows, cols int
	buf              []bool
}

func New(devices, rows, cols int) *Driver {
	return &Driver{
		devs: devices,
		rows: rows,
		cols: cols,
		buf:  make([]bool, devices*rows*cols),
	}
}

func (d *Driver) DeviceCount() int        { return d.devs }
func (d *Driver) MaxRows(dev int) int     { return d.rows }
func (d *Driver) MaxCols() int            { return d.cols }
func (d *Driver) MaxSegments(dev int) int { return d.rows * d.cols }

func (d *Driver) index(dev, row, col int) (int, bool) {
	if dev < 0 || dev >= d.devs || row < 0 || row >= d.rows || col < 0 || col >= d.cols {
		return 0, false
	}
	return (dev*d.rows+row)*d.cols + col, true
}

func (d *Driver) SetLed(dev, row, col int, on bool) {
	if i, ok := d.index(dev, row, col); ok {
		d.buf[i] = on
	}
}

func (d *Driver) Led(dev, row, col int) bool {
	if i, ok := d.index(dev, row, col); ok {
		return d.buf[i]
	}
	return false
}

func (d *Driver) Clear() {
	for i := range d.buf {
		d.buf[i] = false
	}
}

func (d *Driver) Show() error {
	d.Shows++
	return nil
}

// Lit returns how many LEDs are staged on across the chain.
func (d *Driver) Lit() int {
	n := 0
	for _, on := range d.buf {
		if on {
			n++
		}
	}
	return n
}
