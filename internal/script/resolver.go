package script

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Text extraction patterns. The generation service writes durations as
// "时长: 3秒" / "转场: 0.5秒" and mentions an fps token inline.
var (
	durationPattern   = regexp.MustCompile(`时长[:：]\s*(\d+(?:\.\d+)?)\s*秒`)
	transitionPattern = regexp.MustCompile(`转场[:：]\s*(\d+(?:\.\d+)?)\s*秒`)
	fpsPattern        = regexp.MustCompile(`(\d+)\s*(?:fps|FPS)`)
)

// Animation keyword groups, checked in order: zoom, pan, fade.
var (
	zoomKeywords = []string{"缩放", "放大", "缩小"}
	panKeywords  = []string{"平移", "移动", "摇镜头"}
	fadeKeywords = []string{"淡入淡出", "渐变"}
)

// Resolver turns raw script payloads into validated parameter sets.
type Resolver struct {
	logger zerolog.Logger
}

// NewResolver creates a resolver that logs parse decisions at debug level.
func NewResolver(logger zerolog.Logger) *Resolver {
	return &Resolver{
		logger: logger.With().Str("component", "script").Logger(),
	}
}

// Resolve extracts parameters from raw and clamps them against defaults.
// It never fails: structured JSON is tried first, then free-text extraction,
// and anything unparseable degrades to the default for that field so an
// unreliable upstream generator can never block a render.
func (r *Resolver) Resolve(raw string, defaults Parameters) Parameters {
	defaults = Clamp(defaults, Defaults())

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaults
	}

	if p, ok := r.resolveJSON(raw, defaults); ok {
		return p
	}

	return r.resolveText(raw, defaults)
}

// jsonPayload mirrors the external script schema. Pointer fields distinguish
// absent keys (use default) from explicit values (clamp).
type jsonPayload struct {
	FPS                *float64 `json:"fps"`
	DurationPerImage   *float64 `json:"duration_per_image"`
	TransitionDuration *float64 `json:"transition_duration"`
	AnimationType      *string  `json:"animation_type"`
	TargetWidth        *int     `json:"target_width"`
	TargetHeight       *int     `json:"target_height"`
	Theme              string   `json:"theme"`
	Style              string   `json:"style"`
	OverallDuration    float64  `json:"overall_duration"`
}

func (r *Resolver) resolveJSON(raw string, defaults Parameters) (Parameters, bool) {
	if !strings.HasPrefix(raw, "{") {
		return Parameters{}, false
	}

	var payload jsonPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		r.logger.Debug().Err(err).Msg("script is not valid JSON, falling back to text extraction")
		return Parameters{}, false
	}

	p := defaults
	if payload.FPS != nil {
		p.FPS = int(*payload.FPS)
		if float64(p.FPS) != *payload.FPS {
			p.FPS = 0 // fractional fps is out of domain, force the default
		}
	}
	if payload.DurationPerImage != nil {
		p.DurationPerImage = *payload.DurationPerImage
	}
	if payload.TransitionDuration != nil {
		p.TransitionDuration = *payload.TransitionDuration
	}
	if payload.AnimationType != nil {
		p.Animation = Animation(strings.ToLower(strings.TrimSpace(*payload.AnimationType)))
	}
	if payload.TargetWidth != nil {
		p.TargetWidth = *payload.TargetWidth
	}
	if payload.TargetHeight != nil {
		p.TargetHeight = *payload.TargetHeight
	}
	p.Theme = payload.Theme
	p.Style = payload.Style
	p.OverallDuration = payload.OverallDuration

	resolved := Clamp(p, defaults)
	r.logger.Debug().
		Int("fps", resolved.FPS).
		Float64("duration_per_image", resolved.DurationPerImage).
		Float64("transition_duration", resolved.TransitionDuration).
		Str("animation", string(resolved.Animation)).
		Msg("parameters resolved from JSON script")
	return resolved, true
}

func (r *Resolver) resolveText(raw string, defaults Parameters) Parameters {
	p := defaults

	if m := durationPattern.FindStringSubmatch(raw); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			p.DurationPerImage = v
		}
	}
	if m := transitionPattern.FindStringSubmatch(raw); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			p.TransitionDuration = v
		}
	}
	if m := fpsPattern.FindStringSubmatch(raw); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			p.FPS = v
		}
	}

	switch {
	case containsAny(raw, zoomKeywords):
		p.Animation = AnimationZoom
	case containsAny(raw, panKeywords):
		p.Animation = AnimationPan
	case containsAny(raw, fadeKeywords):
		p.Animation = AnimationFade
	}

	resolved := Clamp(p, defaults)
	r.logger.Debug().
		Int("fps", resolved.FPS).
		Float64("duration_per_image", resolved.DurationPerImage).
		Float64("transition_duration", resolved.TransitionDuration).
		Str("animation", string(resolved.Animation)).
		Msg("parameters resolved from text script")
	return resolved
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
