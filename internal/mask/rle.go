package mask

import "fmt"

// RLE is the uncompressed COCO run-length encoding of a binary mask.
//
// Counts are run lengths taken in column-major order (each column is walked
// top to bottom before moving right). Runs alternate background/foreground
// and always start with a background run: when the first pixel is
// foreground, a zero-length background run is emitted first. Downstream
// decoders depend on this parity convention.
//
// Invariant: the counts sum to Size[0]*Size[1].
type RLE struct {
	// Size is [height, width] of the encoded mask.
	Size [2]int `json:"size"`

	// Counts are the alternating run lengths, background first.
	Counts []int `json:"counts"`
}

// Encode produces the column-major run-length encoding of a mask.
//
// An all-background mask encodes to a single run; an all-foreground mask
// encodes to a leading zero followed by a single run.
func Encode(m *Mask) *RLE {
	rle := &RLE{Size: [2]int{m.height, m.width}}

	cur := false // runs start with background
	run := 0
	for x := 0; x < m.width; x++ {
		for y := 0; y < m.height; y++ {
			v := m.At(x, y)
			if v == cur {
				run++
				continue
			}
			rle.Counts = append(rle.Counts, run)
			cur = v
			run = 1
		}
	}
	rle.Counts = append(rle.Counts, run)
	return rle
}

// Decode expands the encoding back into a mask. It is the exact inverse of
// Encode for every valid mask.
func (r *RLE) Decode() (*Mask, error) {
	height, width := r.Size[0], r.Size[1]
	m, err := New(width, height)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, c := range r.Counts {
		if c < 0 {
			return nil, fmt.Errorf("negative run length %d", c)
		}
		total += c
	}
	if total != width*height {
		return nil, fmt.Errorf("run lengths sum to %d, want %d", total, width*height)
	}

	pos := 0
	fg := false
	for _, c := range r.Counts {
		if fg {
			for i := pos; i < pos+c; i++ {
				// column-major pixel index: column i/height, row i%height
				m.bits[(i%height)*width+i/height] = true
			}
		}
		pos += c
		fg = !fg
	}
	return m, nil
}

// Area returns the number of foreground pixels implied by the encoding.
func (r *RLE) Area() float64 {
	area := 0
	for i := 1; i < len(r.Counts); i += 2 {
		area += r.Counts[i]
	}
	return float64(area)
}

// BBox returns the tight axis-aligned bounding box of the foreground as
// [x, y, width, height]. Extents are inclusive, so a single foreground
// pixel yields a 1x1 box. An empty mask yields all zeros.
func (r *RLE) BBox() [4]float64 {
	height := r.Size[0]
	minX, minY := -1, -1
	maxX, maxY := 0, 0

	pos := 0
	fg := false
	for _, c := range r.Counts {
		if fg && c > 0 {
			for i := pos; i < pos+c; i++ {
				x, y := i/height, i%height
				if minX < 0 || x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
				if minY < 0 || y < minY {
					minY = y
				}
				if y > maxY {
					maxY = y
				}
			}
		}
		pos += c
		fg = !fg
	}

	if minX < 0 {
		return [4]float64{}
	}
	return [4]float64{
		float64(minX),
		float64(minY),
		float64(maxX - minX + 1),
		float64(maxY - minY + 1),
	}
}
