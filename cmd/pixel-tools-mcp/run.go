package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ironsheep/pixel-tools-mcp/internal/imaging"
	"github.com/ironsheep/pixel-tools-mcp/internal/pipeline"
	"github.com/ironsheep/pixel-tools-mcp/internal/render"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the batch pipeline on one image.",
	Long: `Reads the input image, converts it to grayscale and saves the result, then
brightens and darkens the original. Every stage is rendered with its
histogram as a PNG file in the output directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadPipelineConfig()
		if err != nil {
			return err
		}

		logger := slog.Default()
		renderer, err := render.NewFileRenderer(cfg.OutputDir, logger)
		if err != nil {
			return err
		}

		p, err := pipeline.New(cfg, imaging.Codec{JPEGQuality: viper.GetInt("jpeg_quality")}, renderer, logger)
		if err != nil {
			return err
		}
		if _, err := p.Run(); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Done. Renderings written to %s\n", cfg.OutputDir)
		return nil
	},
}

// loadPipelineConfig merges defaults, config file, environment and flags.
func loadPipelineConfig() (pipeline.Config, error) {
	cfg := pipeline.DefaultConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to read configuration: %w", err)
	}
	return cfg, nil
}

func init() {
	rootCmd.AddCommand(runCmd)

	defaults := pipeline.DefaultConfig()
	flags := runCmd.Flags()
	flags.StringP("input", "i", "", "image to process")
	flags.StringP("output-dir", "o", defaults.OutputDir, "directory for renderings and the grayscale image")
	flags.String("gray-output", "", "path of the grayscale image (default <output-dir>/<input>_gray<ext>)")
	flags.Float64("brighten", defaults.Brighten, "brightening factor")
	flags.Float64("darken", defaults.Darken, "darkening factor")
	flags.String("histogram", "", "histogram mode: per-channel or luminance")
	flags.Bool("compare", false, "render side-by-side comparisons with luminance histograms")
	flags.String("layout", defaults.Layout, "figure (image and histogram in one file) or separate")

	for key, flag := range map[string]string{
		"input":       "input",
		"output_dir":  "output-dir",
		"gray_output": "gray-output",
		"brighten":    "brighten",
		"darken":      "darken",
		"histogram":   "histogram",
		"compare":     "compare",
		"layout":      "layout",
	} {
		cobra.CheckErr(viper.BindPFlag(key, flags.Lookup(flag)))
	}
}
