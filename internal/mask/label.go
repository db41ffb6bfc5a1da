package mask

import "fmt"

// Connectivity selects the pixel-adjacency rule used when labeling
// connected components.
type Connectivity int

const (
	// Four connects pixels sharing an edge.
	Four Connectivity = 4
	// Eight also connects pixels sharing only a corner.
	Eight Connectivity = 8
)

// DefaultConnectivity is used when a caller does not choose one.
const DefaultConnectivity = Eight

var neighbors4 = [][2]int{{0, -1}, {-1, 0}, {0, 1}, {1, 0}}
var neighbors8 = [][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Components splits a mask into one mask per connected foreground
// component. Every returned mask has the same shape as the input and is
// the source mask restricted to the component's bounding box: pixels
// inside the box are copied from the source, pixels outside are forced to
// background.
//
// Components are discovered by a row-major scan, so the order is
// deterministic for a given mask and connectivity.
func Components(m *Mask, conn Connectivity) ([]*Mask, error) {
	var offsets [][2]int
	switch conn {
	case Four:
		offsets = neighbors4
	case Eight:
		offsets = neighbors8
	default:
		return nil, fmt.Errorf("invalid connectivity %d: must be 4 or 8", conn)
	}

	visited := make([]bool, m.width*m.height)
	var components []*Mask

	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if visited[y*m.width+x] || !m.At(x, y) {
				continue
			}

			// flood the component, tracking its bounding box
			minX, minY := x, y
			maxX, maxY := x, y
			queue := [][2]int{{x, y}}
			visited[y*m.width+x] = true
			for len(queue) > 0 {
				p := queue[0]
				queue = queue[1:]
				px, py := p[0], p[1]
				if px < minX {
					minX = px
				}
				if px > maxX {
					maxX = px
				}
				if py < minY {
					minY = py
				}
				if py > maxY {
					maxY = py
				}
				for _, d := range offsets {
					nx, ny := px+d[0], py+d[1]
					if nx < 0 || nx >= m.width || ny < 0 || ny >= m.height {
						continue
					}
					if visited[ny*m.width+nx] || !m.At(nx, ny) {
						continue
					}
					visited[ny*m.width+nx] = true
					queue = append(queue, [2]int{nx, ny})
				}
			}

			comp, _ := New(m.width, m.height)
			for cy := minY; cy <= maxY; cy++ {
				for cx := minX; cx <= maxX; cx++ {
					comp.Set(cx, cy, m.At(cx, cy))
				}
			}
			components = append(components, comp)
		}
	}
	return components, nil
}
