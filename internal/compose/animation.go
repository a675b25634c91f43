package compose

import "math"

// Animation timing constants. The transforms below are pure functions of
// elapsed time so they can be verified without rendering frames; Compose
// translates them into the equivalent ffmpeg filter expressions.
const (
	// fadeEdge is the in/out opacity ramp length at clip boundaries.
	fadeEdge = 0.5
	// zoomRate is the scale growth per second for the zoom animation.
	zoomRate = 0.05
	// panSpeed is the horizontal reveal speed in pixels per second.
	panSpeed = 100.0
	// panPrescale enlarges the frame to leave room for the pan offset.
	panPrescale = 1.2
)

// FadeOpacity returns frame opacity for the fade animation at elapsed time t
// within a clip of the given duration: 0 to 1 over the first 0.5s, 1 to 0
// over the last 0.5s, fully opaque between.
func FadeOpacity(t, duration float64) float64 {
	if t < 0 || t >= duration {
		return 0
	}
	in := t / fadeEdge
	out := (duration - t) / fadeEdge
	return math.Min(1, math.Min(in, out))
}

// ZoomScale returns the zoom animation's scale factor at elapsed time t.
func ZoomScale(t float64) float64 {
	return 1 + zoomRate*t
}

// PanOffset returns the pan animation's horizontal offset in pixels at
// elapsed time t.
func PanOffset(t float64) float64 {
	return panSpeed * t
}
