package extract

import "context"

// Entity labels the external tagger may produce that this engine knows
// how to map back onto value patterns.
const (
	EntityLabelDate  = "DATE"
	EntityLabelMoney = "MONEY"
)

// TaggedEntity is one span reported by the external NLP collaborator.
type TaggedEntity struct {
	Label string
	Text  string
}

// EntityTagger is the black-box named-entity collaborator. Its output is
// only ever used as a fallback behind keyword-anchored matches and never
// overrides one.
type EntityTagger interface {
	Tag(ctx context.Context, text string) ([]TaggedEntity, error)
}

// NopTagger is the default collaborator: no entities, no error.
type NopTagger struct{}

func (NopTagger) Tag(context.Context, string) ([]TaggedEntity, error) { return nil, nil }
