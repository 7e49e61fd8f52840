package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/fieldline/docextract/internal/align"
	"github.com/fieldline/docextract/internal/common"
)

// NamedTable is one sheet to write: aligned rows under the schema that
// orders their columns.
type NamedTable struct {
	Name  string
	Table align.Table
}

// Service produces XLSX bytes from aligned tables. It never mutates its
// input: a failed write leaves the caller's tables intact for a retry.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// WriteWorkbook returns an XLSX workbook with one sheet per table, in
// input order. Each sheet's header row is the schema's column names in
// order; data cells follow the same order. No index column is written.
func (s *Service) WriteWorkbook(tables []NamedTable) ([]byte, error) {
	start := time.Now()
	if len(tables) == 0 {
		return nil, common.NewAppError("EXPORT_EMPTY", "no tables to export", common.ErrInvalidInput)
	}

	f := excelize.NewFile()
	for i, nt := range tables {
		if err := s.writeSheet(f, nt); err != nil {
			return nil, err
		}
		if i == 0 {
			// The first table replaces the default sheet.
			idx, err := f.GetSheetIndex(nt.Name)
			if err != nil {
				return nil, common.ExportFailure(err)
			}
			f.SetActiveSheet(idx)
			if nt.Name != "Sheet1" {
				if err := f.DeleteSheet("Sheet1"); err != nil {
					return nil, common.ExportFailure(err)
				}
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, common.ExportFailure(fmt.Errorf("xlsx write: %w", err))
	}

	s.logger.Info("export.xlsx.ok",
		"sheets", len(tables),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func (s *Service) writeSheet(f *excelize.File, nt NamedTable) error {
	if _, err := f.NewSheet(nt.Name); err != nil {
		return common.ExportFailure(err)
	}

	write := func(col, row int, v any) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(nt.Name, cell, v)
	}

	for i, h := range nt.Table.Schema {
		if err := write(i+1, 1, h); err != nil {
			return common.ExportFailure(err)
		}
	}

	for r, rec := range nt.Table.Rows {
		for c, col := range nt.Table.Schema {
			v, ok := rec[col]
			if !ok || v == nil {
				continue
			}
			if err := write(c+1, r+2, v); err != nil {
				return common.ExportFailure(err)
			}
		}
	}
	return nil
}
