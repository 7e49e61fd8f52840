package entity

// DocumentType is the heuristic category assigned to a raw text document.
type DocumentType string

const (
	DocTypeInvoice   DocumentType = "INVOICE"
	DocTypeContract  DocumentType = "CONTRACT"
	DocTypeAmbiguous DocumentType = "AMBIGUOUS"
)

// RawDocument is an opaque text blob produced by the OCR collaborator.
// Immutable once produced.
type RawDocument struct {
	Text string
}

// LineItem is one parsed row of an invoice's item table. Amounts are kept
// as the raw matched literals; no numeric parsing beyond the quantity.
type LineItem struct {
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	LineTotal   string `json:"line_total"`
}

// ExtractedRecord is the per-document result of field extraction.
// A field that was not found is absent from Fields entirely; an empty
// string means the field was found with an empty value. The two are
// distinct and both survive flattening and alignment.
type ExtractedRecord struct {
	DocumentType DocumentType        `json:"document_type"`
	Fields       map[string]string   `json:"fields"`
	Multi        map[string][]string `json:"multi,omitempty"`
	LineItems    []LineItem          `json:"line_items,omitempty"`
}

// NewExtractedRecord returns an empty record for the given document type.
func NewExtractedRecord(dt DocumentType) *ExtractedRecord {
	return &ExtractedRecord{
		DocumentType: dt,
		Fields:       make(map[string]string),
		Multi:        make(map[string][]string),
	}
}

// Field returns the value for name and whether it was extracted at all.
func (r *ExtractedRecord) Field(name string) (string, bool) {
	v, ok := r.Fields[name]
	return v, ok
}

// FieldNames returns the names of all single-valued fields that were found.
func (r *ExtractedRecord) FieldNames() []string {
	names := make([]string, 0, len(r.Fields))
	for k := range r.Fields {
		names = append(names, k)
	}
	return names
}
