// Package script resolves render parameters from script payloads produced by
// an external content-generation service. Payloads arrive either as JSON
// matching the Parameters schema or as free-form text the service wrote for a
// human reader; both degrade to defaults rather than failing.
package script

// Animation selects the motion applied to every clip of a render.
type Animation string

const (
	AnimationFade Animation = "fade"
	AnimationZoom Animation = "zoom"
	AnimationPan  Animation = "pan"
)

// Valid reports whether the animation is one of the supported types.
func (a Animation) Valid() bool {
	switch a {
	case AnimationFade, AnimationZoom, AnimationPan:
		return true
	}
	return false
}

// Parameters is a fully resolved render parameter set. After Resolve or Clamp
// every field is within its domain; there is no partially valid state.
type Parameters struct {
	FPS                int       `json:"fps"`
	DurationPerImage   float64   `json:"duration_per_image"`
	TransitionDuration float64   `json:"transition_duration"`
	Animation          Animation `json:"animation_type"`
	TargetWidth        int       `json:"target_width"`
	TargetHeight       int       `json:"target_height"`

	// Advisory fields from the external schema. Carried through for callers
	// but never applied to rendering.
	Theme           string  `json:"theme,omitempty"`
	Style           string  `json:"style,omitempty"`
	OverallDuration float64 `json:"overall_duration,omitempty"`
}

// Defaults returns the built-in parameter set: 24 fps, 3s per image, 0.5s
// transitions, fade animation, 720x1280 portrait.
func Defaults() Parameters {
	return Parameters{
		FPS:                24,
		DurationPerImage:   3.0,
		TransitionDuration: 0.5,
		Animation:          AnimationFade,
		TargetWidth:        720,
		TargetHeight:       1280,
	}
}

// Clamp validates p field by field, replacing out-of-domain values with the
// corresponding default. The result is always fully valid.
func Clamp(p Parameters, defaults Parameters) Parameters {
	if p.FPS <= 0 {
		p.FPS = defaults.FPS
	}
	if p.DurationPerImage <= 0 {
		p.DurationPerImage = defaults.DurationPerImage
	}
	if p.TransitionDuration < 0 {
		p.TransitionDuration = defaults.TransitionDuration
	}
	if !p.Animation.Valid() {
		p.Animation = defaults.Animation
	}
	if p.TargetWidth <= 0 {
		p.TargetWidth = defaults.TargetWidth
	}
	if p.TargetHeight <= 0 {
		p.TargetHeight = defaults.TargetHeight
	}
	return p
}
