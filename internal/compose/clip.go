package compose

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/quenby/slidecast/internal/ffmpeg"
	"github.com/quenby/slidecast/internal/media"
	"github.com/quenby/slidecast/internal/script"
)

// Clip is one image's timed visual segment. The filter chain produces an
// exact target-resolution frame for any t in [0, Duration). A clip is owned
// by the timeline it joins and released after encoding.
type Clip struct {
	Asset    media.Asset
	Duration float64
	Geometry Geometry
	Filters  []string
}

// Composer builds clips from images and render parameters.
type Composer struct {
	logger zerolog.Logger
}

// NewComposer creates a clip composer.
func NewComposer(logger zerolog.Logger) *Composer {
	return &Composer{
		logger: logger.With().Str("component", "compose").Logger(),
	}
}

// Compose builds one clip for the image: cover-scale and center-crop to the
// target frame, fix the duration to params.DurationPerImage, and apply the
// render-wide animation as a time-parameterized filter chain.
func (c *Composer) Compose(asset media.Asset, srcW, srcH int, params script.Parameters) Clip {
	dur := params.DurationPerImage
	geo := Cover(srcW, srcH, params.TargetWidth, params.TargetHeight)

	fb := ffmpeg.NewFilterBuilder()

	switch params.Animation {
	case script.AnimationZoom:
		// Cover-crop to the target, then grow scale linearly about the frame
		// center. zoompan evaluates per output frame, so t = on/fps.
		fb.Scale(geo.ScaledWidth, geo.ScaledHeight).
			Crop(geo.Width, geo.Height, geo.CropX, geo.CropY).
			ZoomPan(fmt.Sprintf("1+%g*on/%d", zoomRate, params.FPS), geo.Width, geo.Height, params.FPS)

	case script.AnimationPan:
		// Pre-scale 1.2x beyond the target so the crop window can travel
		// left to right at panSpeed px/s, vertically centered.
		preW := evenDim(panPrescale * float64(params.TargetWidth))
		preH := evenDim(panPrescale * float64(params.TargetHeight))
		pre := Cover(srcW, srcH, preW, preH)
		geo = pre
		fb.Scale(pre.ScaledWidth, pre.ScaledHeight).
			Crop(pre.Width, pre.Height, pre.CropX, pre.CropY).
			CropExpr(params.TargetWidth, params.TargetHeight,
				fmt.Sprintf("min(%g*t\\,iw-ow)", panSpeed), "(ih-oh)/2")

	default: // fade
		fb.Scale(geo.ScaledWidth, geo.ScaledHeight).
			Crop(geo.Width, geo.Height, geo.CropX, geo.CropY).
			FadeIn(0, fadeEdge).
			FadeOut(math.Max(dur-fadeEdge, 0), fadeEdge)
	}

	clip := Clip{
		Asset:    asset,
		Duration: dur,
		Geometry: geo,
		Filters:  fb.BuildAll(),
	}

	c.logger.Debug().
		Str("image", asset.Path).
		Float64("duration", dur).
		Str("animation", string(params.Animation)).
		Int("src_width", srcW).
		Int("src_height", srcH).
		Msg("clip composed")

	return clip
}

// evenDim rounds a dimension up to the nearest even integer; yuv420p encoding
// rejects odd frame sizes.
func evenDim(v float64) int {
	n := int(math.Ceil(v))
	if n%2 != 0 {
		n++
	}
	return n
}
