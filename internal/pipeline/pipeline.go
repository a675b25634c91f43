// Package pipeline orchestrates one render request end to end: validation,
// parameter resolution, clip composition, transition scheduling, audio
// reconciliation, and encoding.
package pipeline

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/quenby/slidecast/internal/audio"
	"github.com/quenby/slidecast/internal/compose"
	"github.com/quenby/slidecast/internal/config"
	"github.com/quenby/slidecast/internal/encoder"
	"github.com/quenby/slidecast/internal/ffmpeg"
	"github.com/quenby/slidecast/internal/media"
	"github.com/quenby/slidecast/internal/script"
	"github.com/quenby/slidecast/internal/system"
)

// Request is the unit of work for one render: an ordered image list, an
// optional audio path, and a parameter set. Requests are stateless across
// invocations; concurrent renders share nothing.
type Request struct {
	Images []string
	Audio  string
	Params script.Parameters
}

// Pipeline wires the render stages together. It holds no per-request state,
// so a single pipeline may serve concurrent requests.
type Pipeline struct {
	cfg      *config.Config
	exec     *ffmpeg.Executor
	composer *compose.Composer
	mixer    *audio.Mixer
	resolver *script.Resolver
	encoder  *encoder.Encoder
	logger   zerolog.Logger
}

// New creates a pipeline from configuration. The ffmpeg/ffprobe binaries must
// be present on PATH.
func New(logger zerolog.Logger, cfg *config.Config) (*Pipeline, error) {
	exec, err := ffmpeg.New(logger, cfg.FFmpeg.Threads)
	if err != nil {
		return nil, err
	}

	enc := encoder.New(logger, exec, encoder.NewNamer(cfg.OutputDir), encoder.Options{
		Workers: system.EncodeWorkers(cfg.Concurrency),
		CRF:     cfg.FFmpeg.CRF,
		Preset:  cfg.FFmpeg.Preset,
	})

	return &Pipeline{
		cfg:      cfg,
		exec:     exec,
		composer: compose.NewComposer(logger),
		mixer:    audio.NewMixer(logger, exec),
		resolver: script.NewResolver(logger),
		encoder:  enc,
		logger:   logger.With().Str("component", "pipeline").Logger(),
	}, nil
}

// Render executes the full pipeline for one request and blocks until the
// output path is available or a stage fails. Validation short-circuits before
// any file is produced; later failures surface as a RenderError naming the
// failing stage. There is no silent partial output.
func (p *Pipeline) Render(ctx context.Context, req Request) (string, error) {
	result := media.Validate(req.Images, req.Audio)
	if !result.Valid {
		p.logger.Warn().Strs("problems", result.Errors).Msg("request rejected by validation")
		return "", &ValidationError{Problems: result.Errors}
	}

	params := script.Clamp(req.Params, p.cfg.DefaultParameters())

	p.logger.Info().
		Int("images", len(req.Images)).
		Bool("audio", req.Audio != "").
		Int("fps", params.FPS).
		Str("animation", string(params.Animation)).
		Int("width", params.TargetWidth).
		Int("height", params.TargetHeight).
		Msg("render request accepted")

	clips := make([]compose.Clip, 0, len(req.Images))
	for _, path := range req.Images {
		w, h, err := media.ProbeImage(path)
		if err != nil {
			return "", renderErr(StageCompose, err)
		}
		asset := media.Asset{Path: path, Kind: media.KindImage}
		clips = append(clips, p.composer.Compose(asset, w, h, params))
	}

	timeline := compose.Schedule(clips, params.TransitionDuration, p.logger)

	var audioAsset *media.Asset
	if req.Audio != "" {
		audioAsset = &media.Asset{Path: req.Audio, Kind: media.KindAudio}
	}
	track, err := p.mixer.Mix(ctx, audioAsset, timeline.Duration)
	if err != nil {
		return "", renderErr(StageMix, err)
	}

	output, err := p.encoder.Render(ctx, timeline, track, params)
	if err != nil {
		return "", renderErr(StageEncode, err)
	}

	p.logger.Info().Str("output", output).Float64("duration", timeline.Duration).Msg("render finished")
	return output, nil
}

// RenderScripted resolves parameters from a script payload produced by an
// external generation service, then renders. Script parsing is fail-soft:
// unusable payloads fall back to the configured defaults.
func (p *Pipeline) RenderScripted(ctx context.Context, images []string, audioPath, rawScript string) (string, error) {
	params := p.resolver.Resolve(rawScript, p.cfg.DefaultParameters())
	return p.Render(ctx, Request{
		Images: images,
		Audio:  audioPath,
		Params: params,
	})
}
