package script

import (
	"os"
	"testing"

	"github.com/rs/zerolog"
)

func newTestResolver() *Resolver {
	return NewResolver(zerolog.New(os.Stderr))
}

func TestResolveJSON(t *testing.T) {
	r := newTestResolver()

	raw := `{"fps": 30, "duration_per_image": 2.5, "transition_duration": 1.0, "animation_type": "zoom", "target_width": 1080, "target_height": 1920}`
	p := r.Resolve(raw, Defaults())

	if p.FPS != 30 {
		t.Errorf("expected fps 30, got %d", p.FPS)
	}
	if p.DurationPerImage != 2.5 {
		t.Errorf("expected duration 2.5, got %f", p.DurationPerImage)
	}
	if p.TransitionDuration != 1.0 {
		t.Errorf("expected transition 1.0, got %f", p.TransitionDuration)
	}
	if p.Animation != AnimationZoom {
		t.Errorf("expected zoom, got %q", p.Animation)
	}
	if p.TargetWidth != 1080 || p.TargetHeight != 1920 {
		t.Errorf("expected 1080x1920, got %dx%d", p.TargetWidth, p.TargetHeight)
	}
}

func TestResolveJSONInvalidFields(t *testing.T) {
	r := newTestResolver()

	// fps=0 and an unknown animation must fall back to defaults field by field
	raw := `{"fps": 0, "animation_type": "spin", "duration_per_image": 4.0}`
	p := r.Resolve(raw, Defaults())

	if p.FPS != 24 {
		t.Errorf("expected default fps 24, got %d", p.FPS)
	}
	if p.Animation != AnimationFade {
		t.Errorf("expected default animation fade, got %q", p.Animation)
	}
	if p.DurationPerImage != 4.0 {
		t.Errorf("valid field should survive clamping, got %f", p.DurationPerImage)
	}
}

func TestResolveJSONNegativeTransition(t *testing.T) {
	r := newTestResolver()

	p := r.Resolve(`{"transition_duration": -2}`, Defaults())
	if p.TransitionDuration != 0.5 {
		t.Errorf("expected default transition 0.5, got %f", p.TransitionDuration)
	}
}

func TestResolveJSONZeroTransition(t *testing.T) {
	r := newTestResolver()

	// zero is inside the domain and must not be replaced
	p := r.Resolve(`{"transition_duration": 0}`, Defaults())
	if p.TransitionDuration != 0 {
		t.Errorf("expected transition 0, got %f", p.TransitionDuration)
	}
}

func TestResolveJSONFractionalFPS(t *testing.T) {
	r := newTestResolver()

	p := r.Resolve(`{"fps": 23.5}`, Defaults())
	if p.FPS != 24 {
		t.Errorf("fractional fps should default, got %d", p.FPS)
	}
}

func TestResolveJSONAdvisoryFields(t *testing.T) {
	r := newTestResolver()

	p := r.Resolve(`{"theme": "coastal", "style": "warm", "overall_duration": 15}`, Defaults())
	if p.Theme != "coastal" || p.Style != "warm" {
		t.Errorf("advisory fields not carried: %+v", p)
	}
	if p.OverallDuration != 15 {
		t.Errorf("expected overall_duration 15, got %f", p.OverallDuration)
	}
	// advisory fields never affect render fields
	if p.DurationPerImage != 3.0 {
		t.Errorf("expected default duration, got %f", p.DurationPerImage)
	}
}

func TestResolveText(t *testing.T) {
	r := newTestResolver()

	raw := "每张图片时长: 4秒，转场：1.5秒，使用缩放效果，建议 30fps"
	p := r.Resolve(raw, Defaults())

	if p.DurationPerImage != 4.0 {
		t.Errorf("expected duration 4.0, got %f", p.DurationPerImage)
	}
	if p.TransitionDuration != 1.5 {
		t.Errorf("expected transition 1.5, got %f", p.TransitionDuration)
	}
	if p.Animation != AnimationZoom {
		t.Errorf("expected zoom, got %q", p.Animation)
	}
	if p.FPS != 30 {
		t.Errorf("expected fps 30, got %d", p.FPS)
	}
}

func TestResolveTextAnimationKeywords(t *testing.T) {
	r := newTestResolver()

	tests := []struct {
		raw  string
		want Animation
	}{
		{"画面缓慢放大", AnimationZoom},
		{"镜头从左向右移动", AnimationPan},
		{"使用摇镜头效果", AnimationPan},
		{"图片之间淡入淡出", AnimationFade},
		{"色彩渐变过渡", AnimationFade},
		{"没有任何提示", AnimationFade}, // default
	}

	for _, tt := range tests {
		p := r.Resolve(tt.raw, Defaults())
		if p.Animation != tt.want {
			t.Errorf("Resolve(%q) animation = %q, want %q", tt.raw, p.Animation, tt.want)
		}
	}
}

func TestResolveNeverFails(t *testing.T) {
	r := newTestResolver()

	inputs := []string{
		"",
		"   ",
		"complete nonsense",
		"{broken json",
		`{"fps": "twenty"}`,
		"{}",
		"秒秒秒",
	}

	for _, raw := range inputs {
		p := r.Resolve(raw, Defaults())
		if p.FPS <= 0 {
			t.Errorf("Resolve(%q): fps must be positive, got %d", raw, p.FPS)
		}
		if p.DurationPerImage <= 0 {
			t.Errorf("Resolve(%q): duration must be positive, got %f", raw, p.DurationPerImage)
		}
		if p.TransitionDuration < 0 {
			t.Errorf("Resolve(%q): transition must be non-negative, got %f", raw, p.TransitionDuration)
		}
		if !p.Animation.Valid() {
			t.Errorf("Resolve(%q): invalid animation %q", raw, p.Animation)
		}
	}
}

func TestResolveMalformedJSONFallsBackToDefaults(t *testing.T) {
	r := newTestResolver()

	p := r.Resolve(`{"fps": 60,`, Defaults())
	if p != Defaults() {
		t.Errorf("malformed JSON with no text hints should yield defaults, got %+v", p)
	}
}

func TestClamp(t *testing.T) {
	p := Clamp(Parameters{FPS: -5, DurationPerImage: 0, TransitionDuration: -1, Animation: "wobble"}, Defaults())

	want := Defaults()
	if p != want {
		t.Errorf("expected full defaults, got %+v", p)
	}
}
