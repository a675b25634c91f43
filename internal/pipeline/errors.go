package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

// Render stages, reported by RenderError when a request fails mid-flight.
const (
	StageCompose  = "compose"
	StageSchedule = "schedule"
	StageMix      = "mix"
	StageEncode   = "encode"
)

// ValidationError reports unusable input assets, detected before any work is
// performed. The caller must fix the inputs; no partial output exists.
type ValidationError struct {
	Problems []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("input validation failed: %s", strings.Join(e.Problems, "; "))
}

// RenderError reports a failure during composition, mixing or encoding. It is
// fatal for the request and carries the failing stage plus the original cause.
type RenderError struct {
	Stage string
	Err   error
}

// Error implements the error interface.
func (e *RenderError) Error() string {
	return fmt.Sprintf("render failed at stage %q: %v", e.Stage, e.Err)
}

// Unwrap returns the originating cause.
func (e *RenderError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func renderErr(stage string, err error) error {
	return &RenderError{Stage: stage, Err: err}
}
