package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ironsheep/pixel-tools-mcp/internal/imaging"
	"github.com/ironsheep/pixel-tools-mcp/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server on stdin/stdout.",
	RunE: func(cmd *cobra.Command, args []string) error {
		server.Version = Version
		slog.Debug("starting MCP server", "version", Version, "built", BuildTime, "commit", GitCommit)

		srv := server.New(
			server.WithLogger(slog.Default()),
			server.WithWorkers(viper.GetInt("workers")),
			server.WithCodec(imaging.Codec{JPEGQuality: viper.GetInt("jpeg_quality")}),
		)
		return srv.Run()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
