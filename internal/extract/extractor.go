package extract

import (
	"context"
	"log/slog"

	"github.com/fieldline/docextract/internal/entity"
	"github.com/fieldline/docextract/internal/rules"
)

// Extractor runs the classify -> field rules -> line items stage for one
// document. Field-level misses are explicit absence, never errors, so
// extraction always yields at least one record per vocabulary applied.
type Extractor struct {
	Logger *slog.Logger
	Tagger EntityTagger

	// Overrides replace the built-in vocabulary for a document type,
	// e.g. a rule set loaded from YAML.
	Overrides map[entity.DocumentType]rules.RuleSet
}

func NewExtractor(logger *slog.Logger, tagger EntityTagger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if tagger == nil {
		tagger = NopTagger{}
	}
	return &Extractor{
		Logger:    logger,
		Tagger:    tagger,
		Overrides: make(map[entity.DocumentType]rules.RuleSet),
	}
}

// Extract classifies doc and applies the matching vocabulary. Ambiguous
// documents are run through both the invoice and contract vocabularies
// and both result records are returned; the engine never picks one.
func (e *Extractor) Extract(ctx context.Context, doc entity.RawDocument) []*entity.ExtractedRecord {
	dt := Classify(doc.Text)

	var types []entity.DocumentType
	if dt == entity.DocTypeAmbiguous {
		types = []entity.DocumentType{entity.DocTypeInvoice, entity.DocTypeContract}
	} else {
		types = []entity.DocumentType{dt}
	}

	tagged := e.tag(ctx, doc.Text)

	records := make([]*entity.ExtractedRecord, 0, len(types))
	for _, t := range types {
		rs, ok := e.Overrides[t]
		if !ok {
			rs, _ = rules.BuiltinRuleSet(t)
		}
		// Each record keeps the vocabulary that produced it, so the two
		// result sets of an ambiguous document stay distinguishable.
		records = append(records, e.applyRuleSet(doc.Text, t, rs, tagged))
	}

	e.Logger.Info("extract.ok",
		"document_type", dt,
		"records", len(records),
	)
	return records
}

func (e *Extractor) applyRuleSet(text string, dt entity.DocumentType, rs rules.RuleSet, tagged []TaggedEntity) *entity.ExtractedRecord {
	rec := entity.NewExtractedRecord(dt)

	for _, rule := range rs.Rules {
		v, ok := Field(text, rule)
		if !ok {
			v, ok = taggerFallback(rule, tagged)
		}
		if ok {
			rec.Fields[rule.Field] = v
		}
		if rule.Multivalue {
			if all := FieldAll(text, rule); len(all) > 0 {
				rec.Multi[rule.Field] = all
			}
		}
	}

	if dt == entity.DocTypeInvoice {
		rec.LineItems = LineItems(text)
	}
	return rec
}

func (e *Extractor) tag(ctx context.Context, text string) []TaggedEntity {
	tagged, err := e.Tagger.Tag(ctx, text)
	if err != nil {
		// Tagger output is a fallback only; losing it degrades recall,
		// not correctness.
		e.Logger.Warn("extract.tagger.failed", "error", err)
		return nil
	}
	return tagged
}

// taggerFallback maps a rule's named pattern to a tagger label and takes
// the first tagged span. Rules with raw regex patterns have no tagger
// equivalent and stay absent.
func taggerFallback(rule rules.FieldRule, tagged []TaggedEntity) (string, bool) {
	var label string
	switch rule.Pattern {
	case rules.PatternDate:
		label = EntityLabelDate
	case rules.PatternAmount:
		label = EntityLabelMoney
	default:
		return "", false
	}
	for _, t := range tagged {
		if t.Label == label && t.Text != "" {
			return t.Text, true
		}
	}
	return "", false
}
