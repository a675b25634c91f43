package pipeline

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"testing"

	"github.com/rs/zerolog"

	"github.com/quenby/slidecast/internal/config"
)

func skipIfNoFFmpeg(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not installed, skipping test")
	}
	if _, err := exec.LookPath("ffprobe"); err != nil {
		t.Skip("ffprobe not installed, skipping test")
	}
}

func testPipeline(t *testing.T) *Pipeline {
	t.Helper()
	skipIfNoFFmpeg(t)

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	cfg.OutputDir = t.TempDir()

	p, err := New(zerolog.New(os.Stderr), cfg)
	if err != nil {
		t.Fatalf("failed to create pipeline: %v", err)
	}
	return p
}

func TestRenderRejectsEmptyRequest(t *testing.T) {
	p := testPipeline(t)

	_, err := p.Render(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected validation error for empty request")
	}
	if !IsValidation(err) {
		t.Errorf("expected validation error, got %T: %v", err, err)
	}
}

func TestRenderRejectsMissingImages(t *testing.T) {
	p := testPipeline(t)

	_, err := p.Render(context.Background(), Request{
		Images: []string{"/nonexistent/a.jpg", "/nonexistent/b.jpg"},
	})
	if !IsValidation(err) {
		t.Errorf("expected validation error, got %T: %v", err, err)
	}

	var ve *ValidationError
	if errors.As(err, &ve) && len(ve.Problems) != 2 {
		t.Errorf("expected 2 problems, got %v", ve.Problems)
	}
}

func TestRenderScriptedRejectsBadInputsDespiteValidScript(t *testing.T) {
	p := testPipeline(t)

	_, err := p.RenderScripted(context.Background(), nil, "", `{"fps": 30}`)
	if !IsValidation(err) {
		t.Errorf("script resolution must not mask input validation, got %T: %v", err, err)
	}
}
