package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldline/docextract/internal/entity"
)

type staticTagger struct {
	entities []TaggedEntity
}

func (s staticTagger) Tag(context.Context, string) ([]TaggedEntity, error) {
	return s.entities, nil
}

func TestExtractInvoice(t *testing.T) {
	e := NewExtractor(nil, nil)
	doc := entity.RawDocument{Text: "Invoice Number: INV-2024-001\n" +
		"Invoice date: 12/03/2024\n" +
		"Description   Qty   Unit Price   Total\n" +
		"Widget A   3   $10.00   $30.00\n" +
		"Total: $30.00"}

	recs := e.Extract(context.Background(), doc)
	require.Len(t, recs, 1)
	rec := recs[0]
	assert.Equal(t, entity.DocTypeInvoice, rec.DocumentType)

	v, ok := rec.Field("Invoice Number")
	require.True(t, ok)
	assert.Equal(t, "INV-2024-001", v)

	v, ok = rec.Field("Invoice Date")
	require.True(t, ok)
	assert.Equal(t, "12/03/2024", v)

	require.Len(t, rec.LineItems, 1)
	assert.Equal(t, "Widget A", rec.LineItems[0].Description)
}

func TestExtractAmbiguousRunsBothVocabularies(t *testing.T) {
	e := NewExtractor(nil, nil)
	recs := e.Extract(context.Background(), entity.RawDocument{Text: "handwritten note, dated 01/01/2024"})

	require.Len(t, recs, 2)
	assert.Equal(t, entity.DocTypeInvoice, recs[0].DocumentType)
	assert.Equal(t, entity.DocTypeContract, recs[1].DocumentType)
}

func TestExtractFieldNotFoundIsAbsence(t *testing.T) {
	e := NewExtractor(nil, nil)
	recs := e.Extract(context.Background(), entity.RawDocument{Text: "Invoice with nothing else"})

	require.Len(t, recs, 1)
	_, ok := recs[0].Field("Due Date")
	assert.False(t, ok)
}

func TestTaggerIsFallbackOnly(t *testing.T) {
	tagger := staticTagger{entities: []TaggedEntity{{Label: EntityLabelDate, Text: "99/99/9999"}}}
	e := NewExtractor(nil, tagger)

	// Keyword-anchored match present: tagger output must not override it.
	recs := e.Extract(context.Background(), entity.RawDocument{Text: "Invoice\nDue date: 01/02/2024"})
	require.Len(t, recs, 1)
	v, ok := recs[0].Field("Due Date")
	require.True(t, ok)
	assert.Equal(t, "01/02/2024", v)

	// No keyword match anywhere: the tagged span fills the gap.
	recs = e.Extract(context.Background(), entity.RawDocument{Text: "Invoice, no dates typed"})
	require.Len(t, recs, 1)
	v, ok = recs[0].Field("Due Date")
	require.True(t, ok)
	assert.Equal(t, "99/99/9999", v)
}

func TestExtractMultivalueCollectsAll(t *testing.T) {
	e := NewExtractor(nil, nil)
	recs := e.Extract(context.Background(), entity.RawDocument{
		Text: "Invoice date: 01/02/2024\nshipped 03/04/2024\nemail billing@acme.example",
	})
	require.Len(t, recs, 1)
	assert.Equal(t, []string{"01/02/2024", "03/04/2024"}, recs[0].Multi["Invoice Date"])
	assert.Equal(t, []string{"billing@acme.example"}, recs[0].Multi["Email"])
}
