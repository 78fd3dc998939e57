package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"textstats/internal/config"
)

// Version is overridden at build time with -ldflags "-X textstats/internal/cli.Version=..."
var Version = "dev"

type rootOptions struct {
	configFile string
	envFiles   []string
	logLevel   string
	logFormat  string
	encodings  []string
}

// NewRootCommand builds the textstats command tree
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "textstats",
		Short: "Word and character statistics for text files",
		Long: `textstats decodes text files (UTF-8 with a Latin-1 fallback by default),
strips punctuation and reports word, unique word and character counts.

Run "textstats serve" for the upload web service or "textstats analyze" for
files on disk.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "TOML config file")
	flags.StringSliceVar(&opts.envFiles, "env-file", []string{".env"}, "env files loaded before reading TEXTSTATS_* variables")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&opts.logFormat, "log-format", "", "log format (text, json)")
	flags.StringSliceVar(&opts.encodings, "encoding", nil, "decoder fallback chain, tried in order (utf-8, latin-1, ascii)")

	cmd.AddCommand(newServeCommand(opts), newAnalyzeCommand(opts), newVersionCommand())

	return cmd
}

// Execute runs the root command until it returns or the process is signalled
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := NewRootCommand()

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		return err
	}

	return nil
}

// loadConfig merges defaults, the config file, env files, TEXTSTATS_*
// variables and finally the persistent flags.
func (o *rootOptions) loadConfig(cmd *cobra.Command) (config.Config, error) {
	if err := config.LoadEnvFiles(o.envFiles...); err != nil {
		return config.Config{}, err
	}

	cfg, err := config.FromEnvironment(o.configFile)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()

	if flags.Changed("log-level") {
		cfg.Logging.Level = o.logLevel
	}

	if flags.Changed("log-format") {
		cfg.Logging.Format = o.logFormat
	}

	if flags.Changed("encoding") {
		cfg.Processing.Encodings = o.encodings
	}

	return cfg, nil
}

// newLogger builds the slog logger described by cfg
func newLogger(cfg config.LoggingConfig, w io.Writer) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}

	handlerOpts := &slog.HandlerOptions{Level: level}

	switch cfg.Format {
	case "json":
		return slog.New(slog.NewJSONHandler(w, handlerOpts)), nil
	case "text", "":
		return slog.New(slog.NewTextHandler(w, handlerOpts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q: must be text or json", cfg.Format)
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the textstats version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "textstats %s\n", Version)
		},
	}
}
