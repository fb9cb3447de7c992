package terminal

import "testing"

func TestRgbToAnsi8_Extremes(t *testing.T) {
	if got := rgbToAnsi8(0, 0, 0); got != 0 {
		t.Errorf("black = %d, want 0", got)
	}
	if got := rgbToAnsi8(255, 255, 255); got != 7 {
		t.Errorf("white = %d, want 7", got)
	}
}

func TestRgbToAnsi8_PrimaryQuadrants(t *testing.T) {
	tests := []struct {
		r, g, b int
		want    int
	}{
		{200, 0, 0, 1},   // red
		{0, 200, 0, 2},   // green
		{0, 0, 200, 4},   // blue
		{200, 200, 0, 3}, // yellow
		{200, 0, 200, 5}, // magenta
		{0, 200, 200, 6}, // cyan
	}
	for _, tt := range tests {
		got := rgbToAnsi8(tt.r, tt.g, tt.b)
		if got != tt.want {
			t.Errorf("rgbToAnsi8(%d,%d,%d) = %d, want %d", tt.r, tt.g, tt.b, got, tt.want)
		}
	}
}

func TestXterm256ToAnsi8_Passthrough(t *testing.T) {
	for n := 0; n < 8; n++ {
		if got := xterm256ToAnsi8(n); got != n {
			t.Errorf("xterm256ToAnsi8(%d) = %d, want %d", n, got, n)
		}
	}
}

func TestXterm256ToAnsi8_BrightFoldsToBase(t *testing.T) {
	for n := 8; n < 16; n++ {
		want := n - 8
		if got := xterm256ToAnsi8(n); got != want {
			t.Errorf("xterm256ToAnsi8(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestXterm256ToAnsi8_GreyscaleThreshold(t *testing.T) {
	if got := xterm256ToAnsi8(232); got != 0 {
		t.Errorf("darkest grey = %d, want 0 (black)", got)
	}
	if got := xterm256ToAnsi8(255); got != 7 {
		t.Errorf("lightest grey = %d, want 7 (white)", got)
	}
}

func TestXterm256ToAnsi8_Cube(t *testing.T) {
	// 196 = 16 + 36*5 + 6*0 + 0 -> pure red corner of the cube
	got := xterm256ToAnsi8(196)
	if got != 1 {
		t.Errorf("xterm256ToAnsi8(196) = %d, want 1 (red)", got)
	}
}

func TestPairCache_Idempotent(t *testing.T) {
	p := NewPairCache()
	id1 := p.Get(2, 5)
	id2 := p.Get(2, 5)
	if id1 != id2 {
		t.Errorf("Get(2,5) not idempotent: %d != %d", id1, id2)
	}
	other := p.Get(3, 5)
	if other == id1 {
		t.Error("different (fg,bg) should not collide")
	}
}

func TestPairCache_DefaultPairIsZero(t *testing.T) {
	p := NewPairCache()
	if got := p.Get(0, 0); got != 0 {
		t.Errorf("Get(0,0) = %d, want 0", got)
	}
}

func TestPairCache_ExhaustionDegradesToZero(t *testing.T) {
	p := NewPairCache()
	exhausted := false
	for fg := 0; fg <= 15 && !exhausted; fg++ {
		for bg := 0; bg <= 15; bg++ {
			if fg == 0 && bg == 0 {
				continue
			}
			if p.Get(fg, bg) == 0 {
				exhausted = true
				break
			}
		}
	}
	if !exhausted {
		t.Fatal("expected the cache to exhaust: maxPairIDs-reservedPairIDs is fewer than the 255 distinct non-default pairs")
	}
}
