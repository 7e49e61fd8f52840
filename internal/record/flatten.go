// Package record turns nested per-document records into flat
// row-per-line-item record sets suitable for tabular export.
package record

import (
	"strings"

	"github.com/fieldline/docextract/internal/entity"
)

// Column names the line-item fields occupy in flattened rows.
const (
	ColDocumentType = "Document Type"
	ColDescription  = "Description"
	ColQuantity     = "Quantity"
	ColUnitPrice    = "Unit Price"
	ColLineTotal    = "Line Total"
)

// Flatten expands one extracted record into row-per-line-item form.
// With no line items exactly one row is emitted, header fields intact and
// line-item columns nil. With items, every row repeats every header field
// and adds that item's four fields. Row count is always
// max(1, len(line items)).
func Flatten(rec *entity.ExtractedRecord) []map[string]any {
	header := headerFields(rec)

	if len(rec.LineItems) == 0 {
		row := cloneRow(header)
		row[ColDescription] = nil
		row[ColQuantity] = nil
		row[ColUnitPrice] = nil
		row[ColLineTotal] = nil
		return []map[string]any{row}
	}

	rows := make([]map[string]any, 0, len(rec.LineItems))
	for _, it := range rec.LineItems {
		row := cloneRow(header)
		row[ColDescription] = it.Description
		row[ColQuantity] = it.Quantity
		row[ColUnitPrice] = it.UnitPrice
		row[ColLineTotal] = it.LineTotal
		rows = append(rows, row)
	}
	return rows
}

// FlattenAll flattens several records and concatenates the rows in input
// order, e.g. both result sets of an ambiguous document.
func FlattenAll(recs []*entity.ExtractedRecord) []map[string]any {
	var rows []map[string]any
	for _, rec := range recs {
		rows = append(rows, Flatten(rec)...)
	}
	return rows
}

func headerFields(rec *entity.ExtractedRecord) map[string]any {
	header := make(map[string]any, len(rec.Fields)+len(rec.Multi)+1)
	header[ColDocumentType] = string(rec.DocumentType)
	for k, v := range rec.Fields {
		header[k] = v
	}
	// Multivalue fields surface every hit, joined; this replaces the
	// single anchored value, which is one of the hits anyway.
	for k, vs := range rec.Multi {
		header[k] = strings.Join(vs, ", ")
	}
	return header
}

func cloneRow(src map[string]any) map[string]any {
	dst := make(map[string]any, len(src)+4)
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
