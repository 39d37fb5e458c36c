package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"docnorm/internal/config"
	"docnorm/internal/document"
	"docnorm/internal/pipeline"
	"docnorm/internal/providers"
	"docnorm/version"
)

var (
	cfgFile      string
	logLevel     string
	outputPath   string
	paragraphNum int
)

var rootCmd = &cobra.Command{
	Use:   "docnorm <input.docx>",
	Short: "Normalize capitalization in a Word document with an LLM",
	Long: `docnorm extracts the paragraphs of a Word document, sends each one to a
remote LLM with a capitalization-normalization prompt, and reassembles the
responses in original order.

Paragraphs are processed in fixed-size concurrent batches with a pacing
delay between batches. Throttled requests are retried with exponential
backoff; a paragraph that fails for any other reason is logged and skipped.

Examples:
  docnorm book.docx                   # Normalize and print to stdout
  docnorm book.docx -o book.txt       # Normalize into a text file
  docnorm book.docx -p 3              # Normalize only paragraph 3`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := newLogger(logLevel)

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if cfg.Provider.APIKey == "" {
			return fmt.Errorf("provider.api_key is not set (use the config file or DOCNORM_PROVIDER_API_KEY)")
		}

		client := providers.NewOpenAIClient(providers.OpenAIConfig{
			APIKey:         cfg.Provider.APIKey,
			BaseURL:        cfg.Provider.BaseURL,
			Model:          cfg.Provider.Model,
			MaxTokens:      cfg.Provider.MaxTokens,
			Temperature:    cfg.Provider.Temperature,
			TopP:           cfg.Provider.TopP,
			ConnectTimeout: cfg.Provider.ConnectTimeout,
			RequestTimeout: cfg.Provider.RequestTimeout,
		})
		invoker := pipeline.NewInvoker(client, pipeline.InvokerConfig{
			MaxRetries: cfg.Pipeline.MaxRetries,
			RetryDelay: cfg.Pipeline.RetryDelay,
		}, logger)
		pipe := pipeline.New(invoker, pipeline.Config{
			BatchSize:  cfg.Pipeline.BatchSize,
			BatchDelay: cfg.Pipeline.BatchDelay,
		}, logger)

		paragraphs, err := document.Read(args[0])
		if err != nil {
			return err
		}

		// Single-paragraph mode bypasses batching; failure is fatal.
		if cmd.Flags().Changed("paragraph") {
			text, err := pipe.ProcessOne(ctx, paragraphs, paragraphNum)
			if err != nil {
				return err
			}
			return writeOutput(text+"\n", outputPath, logger)
		}

		logger.Info("processing document", "paragraphs", len(paragraphs))
		results := pipe.ProcessAll(ctx, paragraphs)
		return writeOutput(pipeline.Assemble(results), outputPath, logger)
	},
	Version: version.GitRelease,
}

// writeOutput saves text to path, or prints it to stdout when path is empty.
func writeOutput(text, path string, logger *slog.Logger) error {
	if path == "" {
		fmt.Print(text)
		return nil
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	logger.Info("results saved", "path", path)
	return nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: lvl,
	}))
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./docnorm.yaml or ~/.docnorm/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&logLevel, "log-level", "info", "log level: debug, info, warn, error",
	)
	rootCmd.Flags().StringVarP(
		&outputPath, "output", "o", "", "path to output file (default: stdout)",
	)
	rootCmd.Flags().IntVarP(
		&paragraphNum, "paragraph", "p", 0, "process only this paragraph (1-based)",
	)

	rootCmd.AddCommand(versionCmd)
}
