// Package led defines the contract between bar layouts and LED driver
// hardware. A Driver owns per-device frame buffers addressed by row and
// column; changes are staged with SetLed and pushed with Show.
package led

// Driver abstracts a chain of LED driver devices.
type Driver interface {
	// DeviceCount returns the number of chained devices.
	DeviceCount() int
	// MaxRows returns the row capacity of device dev.
	MaxRows(dev int) int
	// MaxCols returns the column capacity shared by the chain.
	MaxCols() int
	// MaxSegments returns the total output count of device dev.
	MaxSegments(dev int) int

	// SetLed stages one LED on or off. Out of range coordinates are
	// ignored.
	SetLed(dev, row, col int, on bool)
	// Led reports the staged state of one LED from the buffer, not the
	// physical device. Out of range coordinates read as off.
	Led(dev, row, col int) bool
	// Clear stages every LED off.
	Clear()
	// Show pushes the staged buffers to hardware.
	Show() error
}
