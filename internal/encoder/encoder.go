// Package encoder renders a composed timeline plus optional audio into a
// single output file by driving ffmpeg in three passes: parallel per-clip
// segment encodes, stream-copy concatenation, and a final scale/fps/mux pass.
package encoder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/quenby/slidecast/internal/audio"
	"github.com/quenby/slidecast/internal/compose"
	"github.com/quenby/slidecast/internal/ffmpeg"
	"github.com/quenby/slidecast/internal/script"
	"github.com/quenby/slidecast/pkg/util"
)

// Options tune encoding quality and parallelism.
type Options struct {
	Workers int
	CRF     int
	Preset  string
}

// Encoder renders timelines to disk.
type Encoder struct {
	exec    *ffmpeg.Executor
	namer   Namer
	workers int
	crf     int
	preset  string
	logger  zerolog.Logger
}

// New creates an encoder. Zero option fields fall back to package defaults.
func New(logger zerolog.Logger, exec *ffmpeg.Executor, namer Namer, opts Options) *Encoder {
	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}
	crf := opts.CRF
	if crf == 0 {
		crf = ffmpeg.DefaultCRF
	}
	preset := opts.Preset
	if preset == "" {
		preset = ffmpeg.DefaultPreset
	}

	return &Encoder{
		exec:    exec,
		namer:   namer,
		workers: workers,
		crf:     crf,
		preset:  preset,
		logger:  logger.With().Str("component", "encoder").Logger(),
	}
}

// Render encodes the timeline and muxes the optional audio track, returning
// the path of the finished file. Intermediate segments live in a private temp
// directory that is removed on every exit path; a partially written output is
// removed on failure, so only the success path leaves a file behind.
func (e *Encoder) Render(ctx context.Context, tl compose.Timeline, track *audio.Track, params script.Parameters) (string, error) {
	if len(tl.Clips) == 0 {
		return "", fmt.Errorf("timeline has no clips")
	}

	tmpDir, err := os.MkdirTemp("", "slidecast_")
	if err != nil {
		return "", fmt.Errorf("failed to create workspace: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	e.logger.Info().
		Int("clips", len(tl.Clips)).
		Float64("duration", tl.Duration).
		Bool("audio", track != nil).
		Msg("starting render")

	segments, err := e.encodeSegments(ctx, tl.Clips, params, tmpDir)
	if err != nil {
		return "", fmt.Errorf("segment encode failed: %w", err)
	}

	merged := filepath.Join(tmpDir, "merged.mp4")
	if err := e.exec.Concat(ctx, ffmpeg.ConcatOptions{
		Inputs: segments,
		Output: merged,
		Progress: func(p *ffmpeg.Progress) {
			e.logger.Debug().
				Str("time", util.FormatDuration(p.OutTime)).
				Str("speed", p.Speed).
				Msg("concat progress")
		},
	}); err != nil {
		return "", fmt.Errorf("concatenation failed: %w", err)
	}

	output := e.namer.Next()
	if err := util.EnsureDir(filepath.Dir(output)); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	runOpts := ffmpeg.RunOptions{
		Args: finalArgs(merged, tl, track, params, e.crf, e.preset, output),
		ProgressHandler: func(p *ffmpeg.Progress) {
			e.logger.Info().
				Str("time", util.FormatDuration(p.OutTime)).
				Float64("fps", p.FPS).
				Str("speed", p.Speed).
				Msg("encoding")
		},
		LogHandler: func(line string) {
			e.logger.Debug().Str("ffmpeg", line).Msg("final pass")
		},
	}
	if err := e.exec.Run(ctx, runOpts); err != nil {
		util.CleanupFiles(output)
		return "", fmt.Errorf("final encode failed: %w", err)
	}

	e.logger.Info().Str("output", output).Msg("render complete")
	return output, nil
}

// encodeSegments renders each clip to its own mp4, at most e.workers at a time.
func (e *Encoder) encodeSegments(ctx context.Context, clips []compose.Clip, params script.Parameters, tmpDir string) ([]string, error) {
	segments := make([]string, len(clips))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i, clip := range clips {
		i, clip := i, clip
		segPath := filepath.Join(tmpDir, fmt.Sprintf("seg%03d.mp4", i))
		segments[i] = segPath

		g.Go(func() error {
			runOpts := ffmpeg.RunOptions{
				Args: segmentArgs(clip, params, e.crf, e.preset, segPath),
				ProgressHandler: func(p *ffmpeg.Progress) {
					e.logger.Debug().
						Int("segment", i).
						Str("time", util.FormatDuration(p.OutTime)).
						Str("speed", p.Speed).
						Msg("segment progress")
				},
				LogHandler: func(line string) {
					e.logger.Debug().Str("ffmpeg", line).Int("segment", i).Msg("segment encode")
				},
			}
			if err := e.exec.Run(gctx, runOpts); err != nil {
				return fmt.Errorf("clip %d (%s): %w", i, clip.Asset.Path, err)
			}
			e.logger.Debug().Int("segment", i).Str("path", segPath).Msg("segment ready")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return segments, nil
}

// segmentArgs builds the ffmpeg invocation for one clip: loop the still image
// for the clip duration and run its filter chain at the target frame rate.
func segmentArgs(clip compose.Clip, params script.Parameters, crf int, preset, output string) []string {
	fps := strconv.Itoa(params.FPS)

	args := []string{
		"-loop", "1",
		"-framerate", fps,
		"-i", clip.Asset.Path,
		"-t", util.FormatSeconds(clip.Duration),
	}
	if len(clip.Filters) > 0 {
		args = append(args, "-vf", strings.Join(clip.Filters, ","))
	}
	args = append(args,
		"-r", fps,
		"-pix_fmt", "yuv420p",
		"-c:v", ffmpeg.DefaultVideoCodec,
		"-crf", strconv.Itoa(crf),
		"-preset", preset,
		"-an",
		output,
	)
	return args
}

// finalArgs builds the final pass: exact resize to the target frame as a
// safeguard against rounding drift, the timeline-level lead-in fade, output
// frame rate, and the optional looped-and-trimmed audio mux.
func finalArgs(merged string, tl compose.Timeline, track *audio.Track, params script.Parameters, crf int, preset, output string) []string {
	args := []string{"-i", merged}

	if track != nil {
		if track.Copies > 1 {
			args = append(args, "-stream_loop", strconv.Itoa(track.Copies-1))
		}
		args = append(args, "-i", track.Asset.Path)
	}

	vf := ffmpeg.NewFilterBuilder().
		Scale(params.TargetWidth, params.TargetHeight).
		FadeIn(0, tl.LeadIn).
		Build()

	args = append(args,
		"-vf", vf,
		"-r", strconv.Itoa(params.FPS),
		"-t", util.FormatSeconds(tl.Duration),
		"-map", "0:v:0",
	)

	if track != nil {
		args = append(args,
			"-map", "1:a:0",
			"-c:a", ffmpeg.DefaultAudioCodec,
			"-b:a", "192k",
		)
	}

	args = append(args,
		"-c:v", ffmpeg.DefaultVideoCodec,
		"-crf", strconv.Itoa(crf),
		"-preset", preset,
		"-pix_fmt", "yuv420p",
		"-movflags", "+faststart",
		output,
	)
	return args
}
