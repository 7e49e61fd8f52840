package extract

import (
	"strings"

	"github.com/fieldline/docextract/internal/entity"
)

// Classify assigns a document type from literal keyword presence.
// "invoice" is checked first, so text containing both "invoice" and
// "agreement" classifies as an invoice. Ambiguous documents must be run
// through both extraction vocabularies by the caller; the classifier
// never picks one silently.
func Classify(text string) entity.DocumentType {
	t := strings.ToLower(text)
	switch {
	case strings.Contains(t, "invoice"):
		return entity.DocTypeInvoice
	case strings.Contains(t, "agreement"), strings.Contains(t, "contract"):
		return entity.DocTypeContract
	default:
		return entity.DocTypeAmbiguous
	}
}
