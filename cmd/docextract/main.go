package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/fieldline/docextract/internal/common"
)

var (
	logger *slog.Logger
	cfg    *common.Config

	flagTemplate      string
	flagTemplateSheet string
	flagOutput        string
)

var rootCmd = &cobra.Command{
	Use:   "docextract",
	Short: "Extract fields from OCR text and align tables to a template schema",
	Long: `docextract converts noisy OCR text and loosely structured sheets into
column-complete tables under a target schema. The schema is read from a
blank-template workbook's header row; extraction vocabularies ship built
in per document type and can be overridden with YAML rule files.`,
	SilenceUsage: true,
}

func main() {
	// Structured logger without time/level noise, message and variables only.
	logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey || a.Key == slog.LevelKey {
				return slog.Attr{}
			}
			return a
		},
	}))
	slog.SetDefault(logger)

	cfg = common.LoadConfig()

	rootCmd.PersistentFlags().StringVar(&flagTemplate, "template", cfg.Template.Path, "blank-template workbook supplying the target schema")
	rootCmd.PersistentFlags().StringVar(&flagTemplateSheet, "template-sheet", cfg.Template.Sheet, "sheet holding the template header row")
	rootCmd.PersistentFlags().StringVar(&flagOutput, "out", "extracted.xlsx", "output workbook path")

	if err := rootCmd.Execute(); err != nil {
		logger.Error("docextract failed", "error", err)
		os.Exit(1)
	}
}
