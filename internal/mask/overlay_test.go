package mask

import (
	"image/color"
	"testing"
)

func TestComponentOverlay(t *testing.T) {
	m := mustMask(t, [][]int{
		{1, 0, 0},
		{0, 0, 0},
		{0, 0, 1},
	})

	img, count, err := ComponentOverlay(m, Four)
	if err != nil {
		t.Fatalf("ComponentOverlay failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("component count: got %d, want 2", count)
	}

	bounds := img.Bounds()
	if bounds.Dx() != 3 || bounds.Dy() != 3 {
		t.Fatalf("dimensions: got %dx%d, want 3x3", bounds.Dx(), bounds.Dy())
	}

	c1 := img.RGBAAt(0, 0)
	c2 := img.RGBAAt(2, 2)
	if c1.A == 0 || c2.A == 0 {
		t.Fatal("foreground pixels should be opaque")
	}
	if c1 == c2 {
		t.Error("distinct components should get distinct colors")
	}
	if bg := img.RGBAAt(1, 1); bg != (color.RGBA{}) {
		t.Errorf("background pixel should be transparent, got %v", bg)
	}
}

func TestComponentOverlay_InvalidConnectivity(t *testing.T) {
	m := mustMask(t, [][]int{{1}})
	if _, _, err := ComponentOverlay(m, Connectivity(3)); err == nil {
		t.Error("expected error for invalid connectivity")
	}
}
