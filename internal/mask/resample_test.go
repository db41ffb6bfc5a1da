package mask

import "testing"

func TestResample_InvalidTarget(t *testing.T) {
	m := mustMask(t, [][]int{{1, 0}, {0, 1}})

	tests := []struct {
		name          string
		width, height int
	}{
		{"zero width", 0, 4},
		{"zero height", 4, 0},
		{"negative", -2, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Resample(m, tt.width, tt.height); err == nil {
				t.Errorf("Resample(%d, %d): expected error, got nil", tt.width, tt.height)
			}
		})
	}
}

func TestResample_SameSize(t *testing.T) {
	m := mustMask(t, [][]int{
		{1, 0, 1},
		{0, 1, 0},
	})
	out, err := Resample(m, 3, 2)
	if err != nil {
		t.Fatalf("Resample failed: %v", err)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			if out.At(x, y) != m.At(x, y) {
				t.Errorf("pixel (%d,%d) changed by identity resample", x, y)
			}
		}
	}
}

func TestResample_Upscale(t *testing.T) {
	// doubling maps each source pixel onto a 2x2 output block
	m := mustMask(t, [][]int{
		{1, 0},
		{0, 1},
	})
	out, err := Resample(m, 4, 4)
	if err != nil {
		t.Fatalf("Resample failed: %v", err)
	}
	if out.Width() != 4 || out.Height() != 4 {
		t.Fatalf("dimensions: got %dx%d, want 4x4", out.Width(), out.Height())
	}
	if got := out.Count(); got != 8 {
		t.Errorf("foreground pixels: got %d, want 8", got)
	}
	for _, p := range [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {2, 2}, {3, 2}, {2, 3}, {3, 3}} {
		if !out.At(p[0], p[1]) {
			t.Errorf("pixel (%d,%d) should be foreground", p[0], p[1])
		}
	}
}

func TestResample_DownscaleMajorityCoverage(t *testing.T) {
	// each output pixel covers a 2x2 source block; only fully covered
	// blocks stay foreground
	m := mustMask(t, [][]int{
		{1, 1, 0, 0},
		{1, 1, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	out, err := Resample(m, 2, 2)
	if err != nil {
		t.Fatalf("Resample failed: %v", err)
	}
	if !out.At(0, 0) {
		t.Error("fully covered output pixel should be foreground")
	}
	if out.At(1, 0) || out.At(0, 1) || out.At(1, 1) {
		t.Error("uncovered output pixels should be background")
	}
}

func TestResample_DoesNotMutateInput(t *testing.T) {
	m := mustMask(t, [][]int{{1, 0}, {0, 1}})
	before := m.Rows()
	if _, err := Resample(m, 6, 6); err != nil {
		t.Fatalf("Resample failed: %v", err)
	}
	after := m.Rows()
	for y := range before {
		for x := range before[y] {
			if before[y][x] != after[y][x] {
				t.Fatalf("Resample mutated its input at (%d,%d)", x, y)
			}
		}
	}
}
