// Package sheet wraps the spreadsheet-read collaborator. Sheets are
// addressed by name and structurally significant rows by sentinel cell
// content, never by fixed offsets.
package sheet

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/fieldline/docextract/internal/align"
	"github.com/fieldline/docextract/internal/common"
)

// ReadTable returns all rows of the named sheet as raw cell text.
// A missing workbook or sheet is a SourceUnavailable diagnostic: the
// document's pipeline stops, nothing panics upward.
func ReadTable(path, sheetName string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, common.SourceUnavailable("open workbook %s: %v", path, err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, common.SourceUnavailable("sheet %q not found in %s", sheetName, path)
	}
	return rows, nil
}

// ReadNamedRows reads the named sheet as records keyed by its header
// row (the first non-empty row). Cells beyond the header width are
// dropped; short rows leave their trailing keys unset.
func ReadNamedRows(path, sheetName string) ([]map[string]any, error) {
	rows, err := ReadTable(path, sheetName)
	if err != nil {
		return nil, err
	}
	headerIdx := firstNonEmptyRow(rows)
	if headerIdx < 0 {
		return nil, common.SourceUnavailable("sheet %q in %s has no header row", sheetName, path)
	}
	header := rows[headerIdx]

	var out []map[string]any
	for _, row := range rows[headerIdx+1:] {
		rec := make(map[string]any, len(header))
		for i, name := range header {
			if strings.TrimSpace(name) == "" || i >= len(row) {
				continue
			}
			rec[strings.TrimSpace(name)] = row[i]
		}
		if len(rec) > 0 {
			out = append(out, rec)
		}
	}
	return out, nil
}

// ReadSchema reads the target schema off a blank-template sheet: its
// header row's cell values, in column order. The aligner itself is
// schema-agnostic; whatever columns the template declares is what every
// exported table gets.
func ReadSchema(path, sheetName string) (align.Schema, error) {
	rows, err := ReadTable(path, sheetName)
	if err != nil {
		return nil, err
	}
	headerIdx := firstNonEmptyRow(rows)
	if headerIdx < 0 {
		return nil, common.SourceUnavailable("template sheet %q in %s has no header row", sheetName, path)
	}

	cols := make([]string, 0, len(rows[headerIdx]))
	for _, c := range rows[headerIdx] {
		c = strings.TrimSpace(c)
		if c != "" {
			cols = append(cols, c)
		}
	}
	schema, err := align.NewSchema(cols)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", path, err)
	}
	return schema, nil
}

func firstNonEmptyRow(rows [][]string) int {
	for i, row := range rows {
		for _, c := range row {
			if strings.TrimSpace(c) != "" {
				return i
			}
		}
	}
	return -1
}
