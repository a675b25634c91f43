// Package audio reconciles an optional audio asset's duration against the
// video timeline.
package audio

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/quenby/slidecast/internal/ffmpeg"
	"github.com/quenby/slidecast/internal/media"
)

// Track is an audio asset with an effective span that exactly matches the
// video timeline: the source is trimmed, or looped and then trimmed, to
// Duration seconds. Copies is the number of source repetitions concatenated
// before trimming (1 means the source plays once).
type Track struct {
	Asset          media.Asset
	SourceDuration float64
	Duration       float64
	Copies         int
}

// Plan computes the loop-and-trim arithmetic for a source of sourceDur
// seconds against a video of videoDur seconds. When the source is shorter,
// floor(videoDur/sourceDur)+1 copies are concatenated and trimmed; otherwise
// a single copy is trimmed (or used as-is when the durations match).
func Plan(sourceDur, videoDur float64) (copies int, effective float64) {
	if sourceDur >= videoDur {
		return 1, videoDur
	}
	return int(math.Floor(videoDur/sourceDur)) + 1, videoDur
}

// Mixer produces matched audio tracks for render requests.
type Mixer struct {
	exec   *ffmpeg.Executor
	logger zerolog.Logger
}

// NewMixer creates an audio mixer backed by the given executor.
func NewMixer(logger zerolog.Logger, exec *ffmpeg.Executor) *Mixer {
	return &Mixer{
		exec:   exec,
		logger: logger.With().Str("component", "audio").Logger(),
	}
}

// Mix reconciles the optional audio asset against the video duration. A nil
// asset yields a nil track (silent output). The returned track's Duration
// equals videoDuration exactly in every branch.
func (m *Mixer) Mix(ctx context.Context, asset *media.Asset, videoDuration float64) (*Track, error) {
	if asset == nil {
		return nil, nil
	}
	if videoDuration <= 0 {
		return nil, fmt.Errorf("video duration must be positive, got %f", videoDuration)
	}

	info, err := m.exec.ProbeMedia(ctx, asset.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to probe audio %s: %w", asset.Path, err)
	}
	if !info.HasAudio {
		return nil, fmt.Errorf("file has no audio stream: %s", asset.Path)
	}

	sourceDur := info.Duration.Seconds()
	if sourceDur <= 0 {
		return nil, fmt.Errorf("audio %s has no measurable duration", asset.Path)
	}

	copies, effective := Plan(sourceDur, videoDuration)

	m.logger.Debug().
		Str("audio", asset.Path).
		Float64("source_duration", sourceDur).
		Float64("video_duration", videoDuration).
		Int("copies", copies).
		Msg("audio track planned")

	return &Track{
		Asset:          *asset,
		SourceDuration: sourceDur,
		Duration:       effective,
		Copies:         copies,
	}, nil
}
