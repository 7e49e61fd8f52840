package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/fieldline/docextract/internal/align"
	"github.com/fieldline/docextract/internal/entity"
	"github.com/fieldline/docextract/internal/export"
	"github.com/fieldline/docextract/internal/extract"
	"github.com/fieldline/docextract/internal/pipeline"
	"github.com/fieldline/docextract/internal/rules"
	"github.com/fieldline/docextract/internal/sheet"
)

var (
	flagInvoiceRules  string
	flagContractRules string
)

var extractCmd = &cobra.Command{
	Use:   "extract [text-file]",
	Short: "Extract fields from an OCR text document and export aligned rows",
	Long: `Reads OCR text from the given file (or stdin when the argument is "-"),
classifies the document, applies the matching field rules and the
line-item tokenizer, and writes the flattened rows aligned to the
template schema. Ambiguous documents are run through both the invoice
and contract vocabularies and both result sets are exported.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readTextArg(args[0])
		if err != nil {
			return err
		}

		schema, err := sheet.ReadSchema(flagTemplate, flagTemplateSheet)
		if err != nil {
			return err
		}

		ex, err := buildExtractor()
		if err != nil {
			return err
		}

		proc := pipeline.NewProcessor(logger, ex, schema, nil)
		res, err := proc.ProcessText(cmd.Context(), entity.RawDocument{Text: text})
		if err != nil {
			return err
		}

		return writeResultWorkbook("Extracted", res.Table)
	},
}

func init() {
	extractCmd.Flags().StringVar(&flagInvoiceRules, "invoice-rules", "", "YAML rule set overriding the built-in invoice vocabulary")
	extractCmd.Flags().StringVar(&flagContractRules, "contract-rules", "", "YAML rule set overriding the built-in contract vocabulary")
	rootCmd.AddCommand(extractCmd)
}

func buildExtractor() (*extract.Extractor, error) {
	ex := extract.NewExtractor(logger, nil)
	invoicePath := flagInvoiceRules
	if invoicePath == "" {
		invoicePath = cfg.Rules.InvoicePath
	}
	contractPath := flagContractRules
	if contractPath == "" {
		contractPath = cfg.Rules.ContractPath
	}

	if invoicePath != "" {
		rs, err := rules.LoadRuleSet(invoicePath)
		if err != nil {
			return nil, err
		}
		ex.Overrides[entity.DocTypeInvoice] = rs
	}
	if contractPath != "" {
		rs, err := rules.LoadRuleSet(contractPath)
		if err != nil {
			return nil, err
		}
		ex.Overrides[entity.DocTypeContract] = rs
	}
	return ex, nil
}

func readTextArg(arg string) (string, error) {
	if arg == "-" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(arg)
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}
	return string(b), nil
}

func writeResultWorkbook(sheetName string, table align.Table) error {
	b, err := export.NewService(logger).WriteWorkbook([]export.NamedTable{{Name: sheetName, Table: table}})
	if err != nil {
		return err
	}
	if err := os.WriteFile(flagOutput, b, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", flagOutput, err)
	}
	logger.Info("workbook written", "path", flagOutput)
	return nil
}
