package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/fieldline/docextract/internal/async"
	"github.com/fieldline/docextract/internal/entity"
	"github.com/fieldline/docextract/internal/export"
	"github.com/fieldline/docextract/internal/pipeline"
	"github.com/fieldline/docextract/internal/sheet"
)

var (
	flagBatchDir    string
	flagBatchOutDir string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Extract a directory of OCR text files concurrently",
	Long: `Processes every .txt file in a directory through the extraction
pipeline. Documents are independent, so they run concurrently on a
bounded worker pool; one bad document never stops the batch. Each
document produces its own workbook in the output directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		schema, err := sheet.ReadSchema(flagTemplate, flagTemplateSheet)
		if err != nil {
			return err
		}
		ex, err := buildExtractor()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(flagBatchOutDir, 0o755); err != nil {
			return err
		}

		bp := &batchProcessor{
			proc:   pipeline.NewProcessor(logger, ex, schema, nil),
			outDir: flagBatchOutDir,
		}
		queue := async.NewProcessorQueue(bp, logger,
			async.WithWorkers(cfg.Batch.Workers),
			async.WithQueueSize(cfg.Batch.QueueSize),
			async.WithProcessTimeout(cfg.Batch.ProcessTimeout),
		)

		entries, err := os.ReadDir(flagBatchDir)
		if err != nil {
			return fmt.Errorf("read batch dir: %w", err)
		}
		queued := 0
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".txt") {
				continue
			}
			job := async.Job{
				ID:          uuid.New(),
				Path:        filepath.Join(flagBatchDir, e.Name()),
				SubmittedAt: time.Now(),
			}
			if err := queue.Enqueue(cmd.Context(), job); err != nil {
				return err
			}
			queued++
		}
		outcomes := queue.Shutdown(context.Background())

		failed := 0
		for _, o := range outcomes {
			if o.Err != nil {
				failed++
				logger.Error("document failed", "path", o.Job.Path, "error", o.Err)
			}
		}
		logger.Info("batch complete", "queued", queued, "failed", failed, "out_dir", flagBatchOutDir)
		if failed > 0 {
			return fmt.Errorf("%d of %d documents failed", failed, queued)
		}
		return nil
	},
}

func init() {
	batchCmd.Flags().StringVar(&flagBatchDir, "dir", "", "directory of OCR text files")
	batchCmd.Flags().StringVar(&flagBatchOutDir, "out-dir", "out", "directory for per-document workbooks")
	_ = batchCmd.MarkFlagRequired("dir")
	rootCmd.AddCommand(batchCmd)
}

// batchProcessor runs one document path end to end and writes its
// workbook next to the others. Pipelines share no state, so this is
// safe to call from every worker.
type batchProcessor struct {
	proc   *pipeline.Processor
	outDir string
}

func (b *batchProcessor) ProcessPath(ctx context.Context, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}

	res, err := b.proc.ProcessText(ctx, entity.RawDocument{Text: string(raw)})
	if err != nil {
		return err
	}

	bytes, err := export.NewService(b.proc.Logger).WriteWorkbook([]export.NamedTable{
		{Name: "Extracted", Table: res.Table},
	})
	if err != nil {
		return err
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	out := filepath.Join(b.outDir, base+".xlsx")
	if err := os.WriteFile(out, bytes, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", out, err)
	}
	return nil
}
