package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ironsheep/pixel-tools-mcp/internal/imaging"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "pixel-tools-mcp",
	Short: "Grayscale, brightness and histogram tools for images",
	Long: `pixel-tools-mcp converts images to grayscale, scales their brightness and
computes their histograms. It runs as an MCP server over stdin/stdout
(the default) or as a batch pipeline writing PNG renderings to a directory.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		slog.SetDefault(newLogger(os.Stderr, viper.GetString("log_level")))
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is $HOME/.pixel-tools.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Int("workers", 0, "parallel workers per transform (0 uses all CPUs)")
	rootCmd.PersistentFlags().Int("jpeg-quality", imaging.DefaultJPEGQuality, "quality of JPEG files written")
	cobra.CheckErr(viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level")))
	cobra.CheckErr(viper.BindPFlag("workers", rootCmd.PersistentFlags().Lookup("workers")))
	cobra.CheckErr(viper.BindPFlag("jpeg_quality", rootCmd.PersistentFlags().Lookup("jpeg-quality")))
}

func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		// Search config in home directory with name ".pixel-tools" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".pixel-tools")
	}

	viper.AutomaticEnv() // read in environment variables that match
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.SetEnvPrefix("PIXEL_TOOLS")

	// If a config file is found, read it in. Stdout carries the protocol,
	// so the notice goes to stderr.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger returns a text logger on w. Unknown levels fall back to info.
func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
