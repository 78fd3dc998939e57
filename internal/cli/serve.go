package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"textstats/internal/textstats"
	"textstats/internal/webserver"
)

type serveOptions struct {
	host        string
	port        int
	metrics     bool
	compression bool
}

func newServeCommand(root *rootOptions) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the upload web service",
		Long: `Start an HTTP server exposing:
  GET  /             welcome page
  GET  /upload-page  upload form
  GET  /upload/      usage hint
  POST /upload/      statistics for the file in the "file" form field
  GET  /metrics      Prometheus metrics (when enabled)

Examples:
  textstats serve
  textstats serve --host 0.0.0.0 --port 8080
  textstats serve --config textstats.toml --encoding utf-8,ascii`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig(cmd)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("host") {
				cfg.Server.Host = opts.host
			}

			if flags.Changed("port") {
				cfg.Server.Port = opts.port
			}

			if flags.Changed("metrics") {
				cfg.Metrics.Enabled = opts.metrics
			}

			if flags.Changed("compression") {
				cfg.Compression.Enabled = opts.compression
			}

			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			logger, err := newLogger(cfg.Logging, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			slog.SetDefault(logger)

			processor, err := textstats.New(cfg.Processing.Encodings...)
			if err != nil {
				return err
			}

			srv, err := webserver.New(cfg, processor, logger)
			if err != nil {
				return fmt.Errorf("failed to create server: %w", err)
			}

			logger.Info("Open the upload page in your browser", "url", fmt.Sprintf("http://%s%s", cfg.Server.Addr(), webserver.UploadPagePath))

			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&opts.host, "host", "127.0.0.1", "listen host")
	cmd.Flags().IntVarP(&opts.port, "port", "p", 8000, "listen port")
	cmd.Flags().BoolVar(&opts.metrics, "metrics", true, "expose Prometheus metrics")
	cmd.Flags().BoolVar(&opts.compression, "compression", true, "compress responses with zstd or gzip")

	return cmd
}
