// Package media models input assets and performs pre-flight validation.
package media

import (
	"fmt"
	"image"
	"os"

	// Raster formats the validator can size without shelling out.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/quenby/slidecast/pkg/util"
)

// Kind distinguishes asset roles in a render request.
type Kind string

const (
	KindImage Kind = "image"
	KindAudio Kind = "audio"
)

// Asset is a validated input file. Immutable once validated; owned by the
// render request that referenced it.
type Asset struct {
	Path string
	Kind Kind
}

// Result is the outcome of pre-flight validation. Validation never fails with
// an error value; problems accumulate in Errors.
type Result struct {
	Valid  bool
	Errors []string
}

// Validate checks that every image exists and is a regular file, and likewise
// for the optional audio path (empty string means no audio). Downstream
// pipeline stages must not run when Valid is false.
func Validate(images []string, audio string) Result {
	var errs []string

	if len(images) == 0 {
		errs = append(errs, "at least one image is required")
	}
	for _, path := range images {
		if msg := checkFile(path, "image"); msg != "" {
			errs = append(errs, msg)
		}
	}

	if audio != "" {
		if msg := checkFile(audio, "audio"); msg != "" {
			errs = append(errs, msg)
		}
	}

	return Result{
		Valid:  len(errs) == 0,
		Errors: errs,
	}
}

func checkFile(path, kind string) string {
	if !util.IsRegularFile(path) {
		return fmt.Sprintf("missing or not a regular %s file: %s", kind, path)
	}
	return ""
}

// ProbeImage reads the image header and returns its pixel dimensions.
func ProbeImage(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return 0, 0, fmt.Errorf("image %s has invalid dimensions (%s %dx%d)", path, format, cfg.Width, cfg.Height)
	}

	return cfg.Width, cfg.Height, nil
}
