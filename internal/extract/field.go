// Package extract turns raw OCR text into extracted records using
// keyword-anchored rules, a line-item tokenizer and a document-type
// classifier. This is pure text search, not NLP; the entity tagger is
// only ever consulted as a fallback behind keyword matches.
package extract

import (
	"regexp"
	"strings"
	"sync"

	"github.com/fieldline/docextract/internal/rules"
)

// keyword and value may be separated by punctuation or whitespace,
// including newlines. Matches are deliberately not anchored to line
// boundaries; a value may span into a following label. That is an
// accepted heuristic limitation of OCR text.
const keywordGap = `[\s:;#*.\-]*`

var (
	anchoredMu    sync.Mutex
	anchoredCache = map[string]*regexp.Regexp{}
)

func anchoredRegexp(keyword, valuePattern string) (*regexp.Regexp, error) {
	src := `(?i:` + regexp.QuoteMeta(keyword) + `)` + keywordGap + `(` + valuePattern + `)`
	anchoredMu.Lock()
	defer anchoredMu.Unlock()
	if re, ok := anchoredCache[src]; ok {
		return re, nil
	}
	re, err := regexp.Compile(src)
	if err != nil {
		return nil, err
	}
	anchoredCache[src] = re
	return re, nil
}

// Field locates the rule's value in text. Keyword alternatives are tried
// in declared order; the first alternative with a match wins and later,
// possibly more specific keywords are not consulted. For multivalue rules
// a bare-pattern scan of the whole text serves as the fallback when no
// keyword anchors a match. The boolean reports presence: absence and an
// empty matched value are different outcomes.
func Field(text string, rule rules.FieldRule) (string, bool) {
	vp := rule.ValuePattern()
	for _, kw := range rule.Keywords {
		re, err := anchoredRegexp(kw, vp)
		if err != nil {
			continue
		}
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1]), true
		}
	}
	if rule.Multivalue {
		if re, err := regexp.Compile(vp); err == nil {
			if m := re.FindString(text); m != "" {
				return strings.TrimSpace(m), true
			}
		}
	}
	return "", false
}

// FieldAll returns every occurrence of the rule's bare value pattern in
// text, in positional order. Used for multivalue rules where all hits are
// surfaced, not just the anchored one.
func FieldAll(text string, rule rules.FieldRule) []string {
	re, err := regexp.Compile(rule.ValuePattern())
	if err != nil {
		return nil
	}
	all := re.FindAllString(text, -1)
	for i, v := range all {
		all[i] = strings.TrimSpace(v)
	}
	return all
}
