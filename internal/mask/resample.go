package mask

import (
	"fmt"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/segment"
	"github.com/disintegration/imaging"
)

// Resample resizes a mask to the target dimensions.
//
// The mask is lifted to a grayscale image (foreground 255, background 0),
// resized with a box filter so each output pixel averages the source area
// it covers, then thresholded back to boolean at 128. A resampled pixel is
// therefore foreground when at least half of the source area it covers was
// foreground.
//
// Zero or negative target dimensions are a caller error.
func Resample(m *Mask, width, height int) (*Mask, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("invalid resample target %dx%d: both dimensions must be >= 1", width, height)
	}

	gray := image.NewGray(image.Rect(0, 0, m.width, m.height))
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if m.At(x, y) {
				gray.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}

	resized := imaging.Resize(gray, width, height, imaging.Box)
	binary := segment.Threshold(resized, 128)

	out, err := New(width, height)
	if err != nil {
		return nil, err
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if binary.GrayAt(x, y).Y > 0 {
				out.Set(x, y, true)
			}
		}
	}
	return out, nil
}
