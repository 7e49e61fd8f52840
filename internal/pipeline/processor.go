// Package pipeline coordinates the per-document stages: classification
// and field extraction for free text, or the structural unpivot for
// tabular vibration reports, then flattening and schema alignment.
// Each document is processed start to finish on the calling goroutine;
// nothing is shared between documents.
package pipeline

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/fieldline/docextract/internal/align"
	"github.com/fieldline/docextract/internal/entity"
	"github.com/fieldline/docextract/internal/extract"
	"github.com/fieldline/docextract/internal/record"
)

// Result is the outcome of one document's run. The aligned table stays
// in memory even when a later export attempt fails, so export can be
// retried without recomputing extraction. Diagnostics carry user-facing
// messages; they are rendered by the caller, never thrown upward as
// stack traces.
type Result struct {
	RunID       uuid.UUID
	Records     []*entity.ExtractedRecord
	Table       align.Table
	Diagnostics []string
}

// Processor runs one document end to end against a fixed target schema.
type Processor struct {
	Logger    *slog.Logger
	Extractor *extract.Extractor
	Schema    align.Schema
	// ColumnMap maps flattened field names onto template columns.
	// Nil means identity: fields land on same-named columns.
	ColumnMap map[string]string
}

func NewProcessor(logger *slog.Logger, ex *extract.Extractor, schema align.Schema, columnMap map[string]string) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if columnMap == nil {
		columnMap = align.Identity(schema)
	}
	return &Processor{Logger: logger, Extractor: ex, Schema: schema, ColumnMap: columnMap}
}

// ProcessText runs the free-text path: classify, extract fields and line
// items, flatten to row-per-line-item, align to the target schema.
// Field misses and malformed line-item rows never fail the run.
func (p *Processor) ProcessText(ctx context.Context, doc entity.RawDocument) (*Result, error) {
	runID := uuid.New()

	records := p.Extractor.Extract(ctx, doc)
	rows := record.FlattenAll(records)
	aligned := align.Align(rows, p.Schema, p.ColumnMap)

	p.Logger.Info("pipeline.text.ok",
		"run_id", runID,
		"records", len(records),
		"rows", len(aligned),
	)
	return &Result{
		RunID:   runID,
		Records: records,
		Table:   align.Table{Schema: p.Schema, Rows: aligned},
	}, nil
}

// ProcessVibration runs the tabular path: structural unpivot of the
// report sheet, then alignment. A missing sentinel stops this table
// only: the result carries the diagnostic and an empty table, and the
// error is returned for the caller to report.
func (p *Processor) ProcessVibration(ctx context.Context, rows [][]string, cfg align.VibrationConfig) (*Result, error) {
	runID := uuid.New()

	recs, err := align.UnpivotVibration(rows, cfg)
	if err != nil {
		p.Logger.Warn("pipeline.vibration.unavailable", "run_id", runID, "error", err)
		return &Result{
			RunID:       runID,
			Table:       align.Table{Schema: p.Schema},
			Diagnostics: []string{err.Error()},
		}, err
	}

	aligned := align.Align(recs, p.Schema, p.ColumnMap)
	p.Logger.Info("pipeline.vibration.ok",
		"run_id", runID,
		"rows", len(aligned),
	)
	return &Result{
		RunID: runID,
		Table: align.Table{Schema: p.Schema, Rows: aligned},
	}, nil
}

// ProcessTables aligns several already-shaped source tables against the
// schema, concatenated in input order.
func (p *Processor) ProcessTables(ctx context.Context, tables [][]map[string]any) (*Result, error) {
	runID := uuid.New()
	aligned := align.AlignAll(tables, p.Schema, p.ColumnMap)
	p.Logger.Info("pipeline.tables.ok",
		"run_id", runID,
		"tables", len(tables),
		"rows", len(aligned),
	)
	return &Result{
		RunID: runID,
		Table: align.Table{Schema: p.Schema, Rows: aligned},
	}, nil
}
