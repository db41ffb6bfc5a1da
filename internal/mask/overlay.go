package mask

import (
	"image"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ComponentOverlay renders each connected component of a mask in a
// distinct color for visual inspection and reports how many components
// were found. Background pixels are transparent.
//
// Component colors are evenly spaced hues, so neighboring labels stay
// visually distinct regardless of how many components the mask has.
func ComponentOverlay(m *Mask, conn Connectivity) (*image.RGBA, int, error) {
	components, err := Components(m, conn)
	if err != nil {
		return nil, 0, err
	}

	out := image.NewRGBA(image.Rect(0, 0, m.width, m.height))
	for i, comp := range components {
		hue := float64(i) * 360.0 / float64(len(components))
		r, g, b := colorful.Hsv(hue, 0.85, 0.9).RGB255()
		c := color.RGBA{R: r, G: g, B: b, A: 255}
		for y := 0; y < m.height; y++ {
			for x := 0; x < m.width; x++ {
				if comp.At(x, y) {
					out.SetRGBA(x, y, c)
				}
			}
		}
	}
	return out, len(components), nil
}
