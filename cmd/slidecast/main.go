package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/quenby/slidecast/internal/config"
	"github.com/quenby/slidecast/internal/logging"
	"github.com/quenby/slidecast/internal/pipeline"
	"github.com/quenby/slidecast/internal/script"
)

var (
	cfgFile string
	verbose bool
)

func main() {
	ctx := context.Background()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "slidecast",
	Short: "slidecast - slideshow video assembly",
	Long:  "Assembles short videos from still images, an optional audio track, and render parameters optionally resolved from a generated script.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		logging.Init(verbose)

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		ctx := config.WithConfig(cmd.Context(), cfg)
		cmd.SetContext(ctx)

		return nil
	},
}

var (
	renderImages     []string
	renderAudio      string
	renderScriptFile string
	renderOutputDir  string
	renderFPS        int
	renderDuration   float64
	renderTransition float64
	renderAnimation  string
	renderSize       string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a slideshow video from images",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())
		if renderOutputDir != "" {
			cfg.OutputDir = renderOutputDir
		}

		pipe, err := pipeline.New(log.Logger, cfg)
		if err != nil {
			return err
		}

		var output string
		if renderScriptFile != "" {
			raw, err := readScript(renderScriptFile)
			if err != nil {
				return err
			}
			output, err = pipe.RenderScripted(cmd.Context(), renderImages, renderAudio, raw)
			if err != nil {
				return err
			}
		} else {
			params, err := flagParameters()
			if err != nil {
				return err
			}
			output, err = pipe.Render(cmd.Context(), pipeline.Request{
				Images: renderImages,
				Audio:  renderAudio,
				Params: params,
			})
			if err != nil {
				return err
			}
		}

		log.Info().Str("output", output).Msg("video ready")
		fmt.Println(output)
		return nil
	},
}

var scriptFile string

var scriptCmd = &cobra.Command{
	Use:   "script",
	Short: "Resolve render parameters from a script payload and print them",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		raw, err := readScript(scriptFile)
		if err != nil {
			return err
		}

		resolver := script.NewResolver(log.Logger)
		params := resolver.Resolve(raw, cfg.DefaultParameters())

		out, err := json.MarshalIndent(params, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	renderCmd.Flags().StringArrayVar(&renderImages, "image", nil, "image file (repeatable, in display order)")
	renderCmd.Flags().StringVar(&renderAudio, "audio", "", "optional audio file")
	renderCmd.Flags().StringVar(&renderScriptFile, "script", "", "script payload file, or - for stdin")
	renderCmd.Flags().StringVarP(&renderOutputDir, "output", "o", "", "output directory")
	renderCmd.Flags().IntVar(&renderFPS, "fps", 0, "frames per second")
	renderCmd.Flags().Float64Var(&renderDuration, "duration", 0, "seconds per image")
	renderCmd.Flags().Float64Var(&renderTransition, "transition", -1, "transition length in seconds")
	renderCmd.Flags().StringVar(&renderAnimation, "animation", "", "animation type: fade, zoom or pan")
	renderCmd.Flags().StringVar(&renderSize, "size", "", "target resolution as WxH, e.g. 720x1280")
	_ = renderCmd.MarkFlagRequired("image")

	scriptCmd.Flags().StringVar(&scriptFile, "file", "-", "script payload file, or - for stdin")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(scriptCmd)
}

// flagParameters maps render flags onto a parameter set. Unset flags stay at
// their zero values and pick up the configured defaults during clamping.
func flagParameters() (script.Parameters, error) {
	p := script.Parameters{
		FPS:                renderFPS,
		DurationPerImage:   renderDuration,
		TransitionDuration: renderTransition,
		Animation:          script.Animation(renderAnimation),
	}

	if renderSize != "" {
		parts := strings.SplitN(renderSize, "x", 2)
		if len(parts) != 2 {
			return p, fmt.Errorf("invalid size %q, expected WxH", renderSize)
		}
		if _, err := fmt.Sscanf(renderSize, "%dx%d", &p.TargetWidth, &p.TargetHeight); err != nil {
			return p, fmt.Errorf("invalid size %q, expected WxH", renderSize)
		}
	}

	return p, nil
}

func readScript(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read script from stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read script file: %w", err)
	}
	return string(data), nil
}
