package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldline/docextract/internal/rules"
)

const invoiceText = "Invoice Number: INV-2024-001\nTotal: $1,234.56"

func ruleByField(t *testing.T, rs rules.RuleSet, name string) rules.FieldRule {
	t.Helper()
	for _, r := range rs.Rules {
		if r.Field == name {
			return r
		}
	}
	t.Fatalf("no rule %q in %s set", name, rs.DocumentType)
	return rules.FieldRule{}
}

func TestFieldInvoiceNumberAndTotal(t *testing.T) {
	rs := rules.InvoiceRules()

	v, ok := Field(invoiceText, ruleByField(t, rs, "Invoice Number"))
	require.True(t, ok)
	assert.Equal(t, "INV-2024-001", v)

	v, ok = Field(invoiceText, ruleByField(t, rs, "Total"))
	require.True(t, ok)
	assert.Equal(t, "$1,234.56", v)
}

func TestFieldFirstKeywordAlternativeWins(t *testing.T) {
	rule := rules.FieldRule{
		Field:    "Date",
		Keywords: []string{"date", "invoice date"},
		Pattern:  rules.PatternDate,
	}
	// The looser "date" alternative matches first and the more specific
	// one is never consulted. First-match-wins, no scoring.
	text := "Due date: 01/02/2024\nInvoice date: 03/04/2024"
	v, ok := Field(text, rule)
	require.True(t, ok)
	assert.Equal(t, "01/02/2024", v)
}

func TestFieldAbsentVsEmpty(t *testing.T) {
	rule := rules.FieldRule{
		Field:    "Ref",
		Keywords: []string{"reference"},
		Pattern:  `[A-Z]*`,
	}
	// No keyword anywhere: absent.
	_, ok := Field("totally unrelated text", rule)
	assert.False(t, ok)

	// Keyword present but the star pattern matches the empty string:
	// present with an empty value, which is a different outcome.
	v, ok := Field("reference: 123", rule)
	require.True(t, ok)
	assert.Equal(t, "", v)
}

func TestFieldMultivalueFallback(t *testing.T) {
	rule := rules.FieldRule{
		Field:      "Invoice Date",
		Keywords:   []string{"invoice date"},
		Pattern:    rules.PatternDate,
		Multivalue: true,
	}
	// No keyword in sight; the bare-pattern scan takes the first
	// date-shaped token.
	v, ok := Field("shipped 05/06/2024, delivered 07/06/2024", rule)
	require.True(t, ok)
	assert.Equal(t, "05/06/2024", v)

	all := FieldAll("shipped 05/06/2024, delivered 07/06/2024", rule)
	assert.Equal(t, []string{"05/06/2024", "07/06/2024"}, all)
}

func TestFieldSingleValueHasNoFallback(t *testing.T) {
	rule := rules.FieldRule{
		Field:    "Due Date",
		Keywords: []string{"due date"},
		Pattern:  rules.PatternDate,
	}
	_, ok := Field("shipped 05/06/2024", rule)
	assert.False(t, ok)
}

func TestFieldValueMayCrossLineBoundary(t *testing.T) {
	// Not anchored to line boundaries: the keyword's value may sit on
	// the next line. Accepted heuristic, not a bug.
	rule := rules.FieldRule{
		Field:    "Total",
		Keywords: []string{"total"},
		Pattern:  rules.PatternAmount,
	}
	v, ok := Field("Total\n$42.00", rule)
	require.True(t, ok)
	assert.Equal(t, "$42.00", v)
}
