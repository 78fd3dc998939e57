package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"textstats/internal/textstats"
)

func newAnalyzeCommand(root *rootOptions) *cobra.Command {
	var pretty bool

	cmd := &cobra.Command{
		Use:   "analyze FILE...",
		Short: "Print statistics for text files on disk",
		Long: `Print one JSON object per file, in the same shape the upload endpoint returns.
Files no configured decoder accepts produce {"error": "Unsupported file encoding"}.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig(cmd)
			if err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			logger, err := newLogger(cfg.Logging, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			processor, err := textstats.New(cfg.Processing.Encodings...)
			if err != nil {
				return err
			}

			encoder := json.NewEncoder(cmd.OutOrStdout())
			if pretty {
				encoder.SetIndent("", "  ")
			}

			for _, path := range args {
				content, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", path, err)
				}

				var out any

				result, err := processor.Analyze(filepath.Base(path), content)
				switch {
				case errors.Is(err, textstats.ErrUnsupportedEncoding):
					logger.Debug("Unsupported file encoding", "path", path, "error", err)
					out = textstats.ErrorResult{Error: textstats.UnsupportedEncodingMessage}
				case err != nil:
					return fmt.Errorf("failed to analyze %s: %w", path, err)
				default:
					logger.Debug("File analyzed", "path", path, "encoding", result.Encoding)
					out = result
				}

				if err := encoder.Encode(out); err != nil {
					return fmt.Errorf("failed writing output: %w", err)
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent JSON output")

	return cmd
}
