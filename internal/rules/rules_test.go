package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldline/docextract/internal/entity"
)

func TestBuiltinRuleSetsCompile(t *testing.T) {
	for _, rs := range []RuleSet{InvoiceRules(), ContractRules()} {
		for _, r := range rs.Rules {
			if _, err := r.Compile(); err != nil {
				t.Errorf("%s/%s: %v", rs.DocumentType, r.Field, err)
			}
		}
	}
}

func TestBuiltinRuleSetLookup(t *testing.T) {
	rs, ok := BuiltinRuleSet(entity.DocTypeInvoice)
	require.True(t, ok)
	assert.Equal(t, entity.DocTypeInvoice, rs.DocumentType)

	_, ok = BuiltinRuleSet(entity.DocTypeAmbiguous)
	assert.False(t, ok)
}

func TestParseRuleSet(t *testing.T) {
	raw := []byte(`
document_type: INVOICE
rules:
  - field: PO Number
    keywords: ["po number", "purchase order"]
    pattern: '[A-Z0-9-]+'
  - field: Order Date
    keywords: ["order date"]
    pattern: date
    multivalue: true
`)
	rs, err := ParseRuleSet(raw)
	require.NoError(t, err)
	assert.Equal(t, entity.DocTypeInvoice, rs.DocumentType)
	require.Len(t, rs.Rules, 2)
	assert.Equal(t, "PO Number", rs.Rules[0].Field)
	assert.True(t, rs.Rules[1].Multivalue)
}

func TestParseRuleSetRejectsUnknownShape(t *testing.T) {
	cases := map[string]string{
		"missing rules":     "document_type: INVOICE\n",
		"bad document type": "document_type: MEMO\nrules:\n  - {field: X, keywords: [x], pattern: y}\n",
		"empty keywords":    "document_type: INVOICE\nrules:\n  - {field: X, keywords: [], pattern: y}\n",
		"extra key":         "document_type: INVOICE\nrules:\n  - {field: X, keywords: [x], pattern: y, score: 3}\n",
	}
	for name, raw := range cases {
		if _, err := ParseRuleSet([]byte(raw)); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}

func TestParseRuleSetRejectsBadRegex(t *testing.T) {
	raw := []byte("document_type: INVOICE\nrules:\n  - {field: X, keywords: [x], pattern: '(['}\n")
	_, err := ParseRuleSet(raw)
	assert.Error(t, err)
}

func TestNamedPatternsResolve(t *testing.T) {
	r := FieldRule{Field: "Total", Pattern: PatternAmount}
	assert.NotEqual(t, PatternAmount, r.ValuePattern())

	r = FieldRule{Field: "Code", Pattern: `[A-Z]{3}`}
	assert.Equal(t, `[A-Z]{3}`, r.ValuePattern())
}
