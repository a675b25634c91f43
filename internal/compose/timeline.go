package compose

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/quenby/slidecast/internal/ffmpeg"
)

// Timeline is the ordered, time-concatenated sequence of clips forming the
// full video track. Transitions are opacity ramps inside existing clip
// durations, so Duration always equals the sum of clip durations. A timeline
// is owned by a single render request and never shared.
type Timeline struct {
	Clips    []Clip
	Duration float64
	// LeadIn is the fade-in applied to the concatenated sequence as a whole
	// during the final encode pass.
	LeadIn float64
}

// Schedule sequences clips into a timeline with cross-fade transitions.
//
// With a single clip it gets an independent 0.5s fade-in and fade-out. With
// multiple clips, every clip except the last receives a tail fade-out of the
// transition length (composing with any fade the animation already applied),
// and the whole sequence receives a leading fade-in of the same length.
// A transition that would not fit inside the shortest clip is clamped to half
// that clip's duration.
func Schedule(clips []Clip, transition float64, logger zerolog.Logger) Timeline {
	log := logger.With().Str("component", "schedule").Logger()

	total := 0.0
	minDur := math.Inf(1)
	for _, c := range clips {
		total += c.Duration
		if c.Duration < minDur {
			minDur = c.Duration
		}
	}

	if len(clips) > 1 && transition >= minDur {
		clamped := minDur / 2
		log.Warn().
			Float64("transition", transition).
			Float64("shortest_clip", minDur).
			Float64("clamped", clamped).
			Msg("transition longer than shortest clip, clamping")
		transition = clamped
	}

	scheduled := make([]Clip, len(clips))
	copy(scheduled, clips)

	if len(scheduled) == 1 {
		c := &scheduled[0]
		c.Filters = appendFilters(c.Filters, ffmpeg.NewFilterBuilder().
			FadeIn(0, fadeEdge).
			FadeOut(math.Max(c.Duration-fadeEdge, 0), fadeEdge).
			BuildAll())

		return Timeline{Clips: scheduled, Duration: total}
	}

	leadIn := 0.0
	if transition > 0 {
		leadIn = transition
		for i := range scheduled[:len(scheduled)-1] {
			c := &scheduled[i]
			c.Filters = appendFilters(c.Filters, ffmpeg.NewFilterBuilder().
				FadeOut(c.Duration-transition, transition).
				BuildAll())
		}
	}

	log.Debug().
		Int("clips", len(scheduled)).
		Float64("duration", total).
		Float64("transition", transition).
		Msg("timeline scheduled")

	return Timeline{Clips: scheduled, Duration: total, LeadIn: leadIn}
}

// appendFilters joins filter chains without sharing backing arrays between
// the input clips and the scheduled copies.
func appendFilters(base, extra []string) []string {
	merged := make([]string, 0, len(base)+len(extra))
	merged = append(merged, base...)
	merged = append(merged, extra...)
	return merged
}
