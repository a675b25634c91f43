package compose

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestFadeOpacity(t *testing.T) {
	const dur = 3.0

	tests := []struct {
		t    float64
		want float64
	}{
		{0, 0},
		{0.25, 0.5},
		{0.5, 1},
		{1.5, 1},
		{2.5, 1},
		{2.75, 0.5},
		{3.0, 0},  // end of clip
		{-1, 0},   // before clip
		{4.0, 0},  // past clip
	}

	for _, tt := range tests {
		got := FadeOpacity(tt.t, dur)
		if !almostEqual(got, tt.want) {
			t.Errorf("FadeOpacity(%f, %f) = %f, want %f", tt.t, dur, got, tt.want)
		}
	}
}

func TestFadeOpacityShortClip(t *testing.T) {
	// Ramps overlap on clips shorter than one second; opacity never reaches 1
	// but stays within [0, 1].
	const dur = 0.6
	for ts := 0.0; ts < dur; ts += 0.05 {
		got := FadeOpacity(ts, dur)
		if got < 0 || got > 1 {
			t.Errorf("FadeOpacity(%f, %f) = %f out of range", ts, dur, got)
		}
	}
	if got := FadeOpacity(0.3, dur); !almostEqual(got, 0.6) {
		t.Errorf("FadeOpacity(0.3, 0.6) = %f, want 0.6", got)
	}
}

func TestZoomScale(t *testing.T) {
	if got := ZoomScale(0); !almostEqual(got, 1.0) {
		t.Errorf("ZoomScale(0) = %f, want 1.0", got)
	}
	if got := ZoomScale(2); !almostEqual(got, 1.1) {
		t.Errorf("ZoomScale(2) = %f, want 1.1", got)
	}
	if got := ZoomScale(10); !almostEqual(got, 1.5) {
		t.Errorf("ZoomScale(10) = %f, want 1.5", got)
	}
}

func TestPanOffset(t *testing.T) {
	if got := PanOffset(0); !almostEqual(got, 0) {
		t.Errorf("PanOffset(0) = %f, want 0", got)
	}
	if got := PanOffset(0.5); !almostEqual(got, 50) {
		t.Errorf("PanOffset(0.5) = %f, want 50", got)
	}
	if got := PanOffset(3); !almostEqual(got, 300) {
		t.Errorf("PanOffset(3) = %f, want 300", got)
	}
}
