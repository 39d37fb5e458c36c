package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"docnorm/internal/document"
	"docnorm/version"
)

var outputPath string

var rootCmd = &cobra.Command{
	Use:   "textdoc <input.txt>",
	Short: "Convert a plain-text file into a styled Word document",
	Long: `textdoc splits a plain-text file into paragraphs on blank lines and emits
a styled .docx document. Short paragraphs that do not end in a period are
rendered bold as headings.

Examples:
  textdoc notes.txt                 # Writes notes.docx
  textdoc notes.txt -o out.docx     # Writes out.docx`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))

		input := args[0]
		data, err := os.ReadFile(input)
		if err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("the file %s does not exist: %w", input, os.ErrNotExist)
			}
			return fmt.Errorf("reading input: %w", err)
		}

		out := outputPath
		if out == "" {
			out = strings.TrimSuffix(input, filepath.Ext(input)) + ".docx"
		}

		paragraphs := document.SplitParagraphs(string(data))
		if err := document.Write(paragraphs, out); err != nil {
			return err
		}

		logger.Info("document created", "path", out, "paragraphs", len(paragraphs))
		return nil
	},
	Version: version.GitRelease,
}

func init() {
	rootCmd.Flags().StringVarP(
		&outputPath, "output", "o", "", "path to output document (default: input name with .docx)",
	)
}
