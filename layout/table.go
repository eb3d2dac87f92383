package layout

// Table supplies explicit coordinates for each segment of a custom
// wired bar. Entries are (device, row, column) before offsets.
type Table interface {
	Len() int
	Entry(seg int) (dev, row, col int)
}

// SliceTable holds a table as parsed entries.
type SliceTable [][3]uint8

func (t SliceTable) Len() int { return len(t) }

func (t SliceTable) Entry(seg int) (dev, row, col int) {
	e := t[seg]
	return int(e[0]), int(e[1]), int(e[2])
}

// PackedTable reads a table from a flat byte stream, three bytes per
// segment. Suited to tables shipped as embedded assets or read from
// config files without an unpack step.
type PackedTable []byte

func (t PackedTable) Len() int { return len(t) / 3 }

func (t PackedTable) Entry(seg int) (dev, row, col int) {
	i := seg * 3
	return int(t[i]), int(t[i+1]), int(t[i+2])
}
