package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/fieldline/docextract/internal/align"
	"github.com/fieldline/docextract/internal/common"
	"github.com/fieldline/docextract/internal/extract"
	"github.com/fieldline/docextract/internal/pipeline"
	"github.com/fieldline/docextract/internal/sheet"
)

var (
	flagAlignInput  string
	flagAlignSheets []string
	flagColumnMap   string
	flagVibration   bool
)

var alignCmd = &cobra.Command{
	Use:   "align",
	Short: "Align source sheets onto the template schema",
	Long: `Reads one or more sheets from a source workbook and aligns them onto
the template schema, concatenated in input order. With --vibration the
sheets are treated as vibration-analysis reports and structurally
unpivoted first: the header and direction rows are located by sentinel
cell values and equipment identity is carried forward down rows.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		schema, err := sheet.ReadSchema(flagTemplate, flagTemplateSheet)
		if err != nil {
			return err
		}

		var columnMap map[string]string
		if flagColumnMap != "" {
			if columnMap, err = align.LoadColumnMap(flagColumnMap); err != nil {
				return err
			}
		}

		proc := pipeline.NewProcessor(logger, extract.NewExtractor(logger, nil), schema, columnMap)

		if flagVibration {
			return runVibrationAlign(cmd, proc, schema)
		}
		return runTableAlign(cmd, proc)
	},
}

func init() {
	alignCmd.Flags().StringVar(&flagAlignInput, "input", "", "source workbook")
	alignCmd.Flags().StringSliceVar(&flagAlignSheets, "sheets", nil, "sheets to align, in order")
	alignCmd.Flags().StringVar(&flagColumnMap, "column-map", "", "YAML source-to-target column mapping (default: identity)")
	alignCmd.Flags().BoolVar(&flagVibration, "vibration", false, "unpivot vibration-report sheets before aligning")
	_ = alignCmd.MarkFlagRequired("input")
	_ = alignCmd.MarkFlagRequired("sheets")
	rootCmd.AddCommand(alignCmd)
}

func runTableAlign(cmd *cobra.Command, proc *pipeline.Processor) error {
	tables := make([][]map[string]any, 0, len(flagAlignSheets))
	for _, name := range flagAlignSheets {
		rows, err := sheet.ReadNamedRows(flagAlignInput, name)
		if err != nil {
			return err
		}
		tables = append(tables, rows)
	}
	res, err := proc.ProcessTables(cmd.Context(), tables)
	if err != nil {
		return err
	}
	return writeResultWorkbook("Aligned", res.Table)
}

func runVibrationAlign(cmd *cobra.Command, proc *pipeline.Processor, schema align.Schema) error {
	vibCfg := align.VibrationConfig{
		HeaderSentinel:    cfg.Vibration.Header,
		DirectionSentinel: cfg.Vibration.Direction,
	}

	// Sheets are independent tables: each is unpivoted and aligned on
	// its own, then concatenated in input order. A sheet with missing
	// sentinels stops that sheet only; its diagnostic is surfaced and
	// the remaining sheets still export.
	combined := align.Table{Schema: schema}
	for _, name := range flagAlignSheets {
		rows, err := sheet.ReadTable(flagAlignInput, name)
		if err != nil {
			return err
		}
		res, err := proc.ProcessVibration(cmd.Context(), rows, vibCfg)
		if err != nil {
			if errors.Is(err, common.ErrSourceUnavailable) {
				for _, d := range res.Diagnostics {
					logger.Warn("sheet skipped", "sheet", name, "reason", d)
				}
				continue
			}
			return err
		}
		combined.Rows = append(combined.Rows, res.Table.Rows...)
	}
	return writeResultWorkbook("Aligned", combined)
}
