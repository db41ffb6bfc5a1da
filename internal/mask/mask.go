package mask

import "fmt"

// Mask is a 2D binary grid where true marks foreground pixels.
//
// The grid is stored row-major. Codec operations never mutate a Mask in
// place; every operation that needs a different grid allocates a fresh one,
// so a single source mask can safely be reused across repeated calls.
type Mask struct {
	width  int
	height int
	bits   []bool
}

// New creates an all-background mask of the given dimensions.
// Both dimensions must be at least 1.
func New(width, height int) (*Mask, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("invalid mask dimensions %dx%d: both must be >= 1", width, height)
	}
	return &Mask{
		width:  width,
		height: height,
		bits:   make([]bool, width*height),
	}, nil
}

// FromRows builds a mask from row-major rows of 0/1 values.
// All rows must have the same non-zero length.
func FromRows(rows [][]int) (*Mask, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("mask rows must be non-empty")
	}
	width := len(rows[0])
	m, err := New(width, len(rows))
	if err != nil {
		return nil, err
	}
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("ragged mask: row %d has %d columns, want %d", y, len(row), width)
		}
		for x, v := range row {
			if v != 0 {
				m.bits[y*width+x] = true
			}
		}
	}
	return m, nil
}

// Width returns the number of columns.
func (m *Mask) Width() int { return m.width }

// Height returns the number of rows.
func (m *Mask) Height() int { return m.height }

// At reports whether the pixel at (x, y) is foreground.
// Coordinates are 0-based with the origin at the top-left corner.
func (m *Mask) At(x, y int) bool {
	return m.bits[y*m.width+x]
}

// Set marks the pixel at (x, y) as foreground or background.
func (m *Mask) Set(x, y int, v bool) {
	m.bits[y*m.width+x] = v
}

// Clone returns an independent copy of the mask.
func (m *Mask) Clone() *Mask {
	bits := make([]bool, len(m.bits))
	copy(bits, m.bits)
	return &Mask{width: m.width, height: m.height, bits: bits}
}

// Rows returns the mask as row-major rows of 0/1 values, the shape used
// on the wire by the MCP tools.
func (m *Mask) Rows() [][]int {
	rows := make([][]int, m.height)
	for y := 0; y < m.height; y++ {
		row := make([]int, m.width)
		for x := 0; x < m.width; x++ {
			if m.bits[y*m.width+x] {
				row[x] = 1
			}
		}
		rows[y] = row
	}
	return rows
}

// Count returns the number of foreground pixels.
func (m *Mask) Count() int {
	n := 0
	for _, b := range m.bits {
		if b {
			n++
		}
	}
	return n
}
