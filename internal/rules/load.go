package rules

import (
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// ruleSetSchema constrains external rule files before they are trusted.
// Draft 2020-12 subset, same validator the pipeline uses elsewhere.
const ruleSetSchema = `{
  "type": "object",
  "additionalProperties": false,
  "required": ["document_type", "rules"],
  "properties": {
    "document_type": {"type": "string", "enum": ["INVOICE", "CONTRACT"]},
    "rules": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "additionalProperties": false,
        "required": ["field", "keywords", "pattern"],
        "properties": {
          "field": {"type": "string", "minLength": 1},
          "keywords": {"type": "array", "minItems": 1, "items": {"type": "string", "minLength": 1}},
          "pattern": {"type": "string", "minLength": 1},
          "multivalue": {"type": "boolean"}
        }
      }
    }
  }
}`

var compiledRuleSetSchema = jsonschema.MustCompileString("ruleset.schema.json", ruleSetSchema)

// LoadRuleSet reads a YAML rule file, validates it against the rule-set
// schema, and compiles every value pattern once to surface bad regexes at
// load time instead of mid-extraction.
func LoadRuleSet(path string) (RuleSet, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return RuleSet{}, fmt.Errorf("read rule set: %w", err)
	}
	return ParseRuleSet(raw)
}

// ParseRuleSet validates and decodes a YAML rule-set document.
func ParseRuleSet(raw []byte) (RuleSet, error) {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return RuleSet{}, fmt.Errorf("parse rule set: %w", err)
	}
	if err := compiledRuleSetSchema.Validate(doc); err != nil {
		return RuleSet{}, fmt.Errorf("invalid rule set: %w", err)
	}

	var rs RuleSet
	if err := yaml.Unmarshal(raw, &rs); err != nil {
		return RuleSet{}, fmt.Errorf("decode rule set: %w", err)
	}
	for _, r := range rs.Rules {
		if _, err := r.Compile(); err != nil {
			return RuleSet{}, err
		}
	}
	return rs, nil
}
