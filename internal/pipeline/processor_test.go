package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldline/docextract/internal/align"
	"github.com/fieldline/docextract/internal/common"
	"github.com/fieldline/docextract/internal/entity"
	"github.com/fieldline/docextract/internal/extract"
)

func textProcessor(t *testing.T, cols ...string) *Processor {
	t.Helper()
	schema, err := align.NewSchema(cols)
	require.NoError(t, err)
	return NewProcessor(nil, extract.NewExtractor(nil, nil), schema, nil)
}

func TestProcessTextInvoice(t *testing.T) {
	p := textProcessor(t, "Invoice Number", "Total", "Description", "Quantity", "Not Extracted")
	doc := entity.RawDocument{Text: "Invoice Number: INV-2024-001\n" +
		"Description   Qty   Unit Price   Total\n" +
		"Widget A   3   $10.00   $30.00\n" +
		"Widget B   2   $5.00   $10.00\n" +
		"Total: $40.00"}

	res, err := p.ProcessText(context.Background(), doc)
	require.NoError(t, err)
	require.Len(t, res.Table.Rows, 2) // one row per line item

	for _, row := range res.Table.Rows {
		require.Len(t, row, 5)
		assert.Equal(t, "INV-2024-001", row["Invoice Number"])
		assert.Equal(t, "", row["Not Extracted"])
	}
	assert.Equal(t, "Widget A", res.Table.Rows[0]["Description"])
	assert.Equal(t, 3, res.Table.Rows[0]["Quantity"])
	assert.Equal(t, "Widget B", res.Table.Rows[1]["Description"])
}

func TestProcessTextAmbiguousSurfacesBothResultSets(t *testing.T) {
	p := textProcessor(t, "Document Type")
	res, err := p.ProcessText(context.Background(), entity.RawDocument{Text: "plain note"})
	require.NoError(t, err)

	require.Len(t, res.Records, 2)
	require.Len(t, res.Table.Rows, 2)
	assert.Equal(t, string(entity.DocTypeInvoice), res.Table.Rows[0]["Document Type"])
	assert.Equal(t, string(entity.DocTypeContract), res.Table.Rows[1]["Document Type"])
}

func TestProcessVibrationMissingSentinel(t *testing.T) {
	p := textProcessor(t, "Equipment Name")
	res, err := p.ProcessVibration(context.Background(), [][]string{{"noise"}}, align.VibrationConfig{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrSourceUnavailable))
	// The caller gets a diagnostic and an empty result, not a panic.
	require.NotNil(t, res)
	assert.Empty(t, res.Table.Rows)
	assert.NotEmpty(t, res.Diagnostics)
}

func TestProcessVibrationAligned(t *testing.T) {
	p := textProcessor(t, "Equipment Name", "A1", "Normal", "Status")
	rows := [][]string{
		{"EQUIPMENT"},
		{"", "01/06/2024"},
		{"DIRECTION", "Axial"},
		{"Pump P-101", "Motor DE", "Axial", "1.2", "ok", "none", "monitor", "NORMAL"},
	}
	res, err := p.ProcessVibration(context.Background(), rows, align.VibrationConfig{})
	require.NoError(t, err)
	require.Len(t, res.Table.Rows, 1)

	row := res.Table.Rows[0]
	require.Len(t, row, 4)
	assert.Equal(t, "Pump P-101", row["Equipment Name"])
	assert.Equal(t, "1.2", row["A1"])
	assert.Equal(t, 1, row["Normal"])
	assert.Equal(t, "NORMAL", row["Status"])
}

func TestProcessTablesConcatInOrder(t *testing.T) {
	p := textProcessor(t, "N")
	res, err := p.ProcessTables(context.Background(), [][]map[string]any{
		{{"N": "a"}},
		{{"N": "b"}, {"N": "c"}},
	})
	require.NoError(t, err)
	require.Len(t, res.Table.Rows, 3)
	assert.Equal(t, "a", res.Table.Rows[0]["N"])
	assert.Equal(t, "c", res.Table.Rows[2]["N"])
}
