// Package rules declares how fields are located in free text: each rule
// pairs an ordered list of anchor keywords with a value pattern. Rule sets
// ship built in per document type and may also be loaded from YAML.
package rules

import (
	"fmt"
	"regexp"

	"github.com/fieldline/docextract/internal/entity"
	"github.com/fieldline/docextract/internal/pattern"
)

// Named value patterns usable in place of a raw regex in rule files.
const (
	PatternAmount = "amount"
	PatternDate   = "date"
	PatternEmail  = "email"
)

// FieldRule declares how to find one field. Keywords are tried in priority
// order and the first alternative that matches wins; there is no scoring
// across alternatives. Multivalue rules additionally fall back to scanning
// the whole text for the bare pattern when no keyword anchors a match.
type FieldRule struct {
	Field      string   `yaml:"field"`
	Keywords   []string `yaml:"keywords"`
	Pattern    string   `yaml:"pattern"`
	Multivalue bool     `yaml:"multivalue"`
}

// ValuePattern resolves the rule's pattern source, expanding the named
// built-ins to their library definitions.
func (r FieldRule) ValuePattern() string {
	switch r.Pattern {
	case PatternAmount:
		return pattern.AmountPattern
	case PatternDate:
		return pattern.DatePattern
	case PatternEmail:
		return pattern.EmailPattern
	default:
		return r.Pattern
	}
}

// Compile returns the value pattern as a compiled regexp.
func (r FieldRule) Compile() (*regexp.Regexp, error) {
	re, err := regexp.Compile(r.ValuePattern())
	if err != nil {
		return nil, fmt.Errorf("rule %q: bad value pattern: %w", r.Field, err)
	}
	return re, nil
}

// RuleSet is the extraction vocabulary for one document type.
type RuleSet struct {
	DocumentType entity.DocumentType `yaml:"document_type"`
	Rules        []FieldRule         `yaml:"rules"`
}

// InvoiceRules is the built-in vocabulary for invoice-shaped documents.
func InvoiceRules() RuleSet {
	return RuleSet{
		DocumentType: entity.DocTypeInvoice,
		Rules: []FieldRule{
			{Field: "Invoice Number", Keywords: []string{"invoice number", "invoice no", "invoice #", "inv"}, Pattern: `[A-Za-z0-9][A-Za-z0-9/-]*\d`},
			{Field: "Invoice Date", Keywords: []string{"invoice date", "date of issue", "date"}, Pattern: PatternDate, Multivalue: true},
			{Field: "Due Date", Keywords: []string{"due date", "payment due"}, Pattern: PatternDate},
			{Field: "Vendor Name", Keywords: []string{"from", "vendor", "billed by", "seller"}, Pattern: `[A-Z][A-Za-z&,. ]+`},
			{Field: "Subtotal", Keywords: []string{"subtotal", "sub total"}, Pattern: PatternAmount},
			{Field: "Tax", Keywords: []string{"tax", "vat", "gst"}, Pattern: PatternAmount},
			{Field: "Total", Keywords: []string{"grand total", "total due", "total"}, Pattern: PatternAmount},
			{Field: "Email", Keywords: []string{"email", "e-mail", "contact"}, Pattern: PatternEmail, Multivalue: true},
		},
	}
}

// ContractRules is the built-in vocabulary for contract-shaped documents.
func ContractRules() RuleSet {
	return RuleSet{
		DocumentType: entity.DocTypeContract,
		Rules: []FieldRule{
			{Field: "Agreement Title", Keywords: []string{"this", "title"}, Pattern: `[A-Z][A-Za-z ]*Agreement`},
			{Field: "Effective Date", Keywords: []string{"effective date", "effective as of", "dated", "date"}, Pattern: PatternDate, Multivalue: true},
			{Field: "Party A", Keywords: []string{"between", "party a", "first party"}, Pattern: `[A-Z][A-Za-z&,. ]+`},
			{Field: "Party B", Keywords: []string{"and", "party b", "second party"}, Pattern: `[A-Z][A-Za-z&,. ]+`},
			{Field: "Term", Keywords: []string{"term of", "term"}, Pattern: `\d+\s+(?:days|months|years)`},
			{Field: "Contract Value", Keywords: []string{"consideration of", "contract value", "fee of", "sum of"}, Pattern: PatternAmount},
			{Field: "Governing Law", Keywords: []string{"governed by the laws of", "governing law"}, Pattern: `[A-Z][A-Za-z ]+`},
			{Field: "Email", Keywords: []string{"email", "e-mail", "notices to"}, Pattern: PatternEmail, Multivalue: true},
		},
	}
}

// BuiltinRuleSet returns the shipped vocabulary for the given type.
// Ambiguous documents have no vocabulary of their own; callers run both
// the invoice and the contract sets.
func BuiltinRuleSet(dt entity.DocumentType) (RuleSet, bool) {
	switch dt {
	case entity.DocTypeInvoice:
		return InvoiceRules(), true
	case entity.DocTypeContract:
		return ContractRules(), true
	default:
		return RuleSet{}, false
	}
}
