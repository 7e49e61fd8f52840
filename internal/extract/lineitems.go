package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/fieldline/docextract/internal/entity"
	"github.com/fieldline/docextract/internal/pattern"
)

// Words any of which mark the start of an item table. OCR text has no
// reliable column delimiters, so the header line is found by content.
var lineItemHeaderWords = []string{
	"description", "item", "qty", "quantity",
	"unit price", "price per unit", "amount", "total",
}

// lineItemRowRe is the structural row guess:
// description, quantity, unit price, line total separated by whitespace.
// The description capture may span newlines.
var lineItemRowRe = regexp.MustCompile(
	`(?s)(.+?)\s+(\d+)\s+(` + pattern.AmountPattern + `)\s+(` + pattern.AmountPattern + `)`,
)

// LineItems parses repeated-structure item rows out of text. The first
// line containing a known column-header word opens the candidate section,
// which runs to the end of the text; without such a line the result is
// empty, never an error. Rows are matched left to right, non-overlapping.
// A row whose quantity does not parse as an integer is dropped silently
// and scanning continues; partial-row noise must not abort extraction.
func LineItems(text string) []entity.LineItem {
	section, ok := lineItemSection(text)
	if !ok {
		return nil
	}

	var items []entity.LineItem
	for _, m := range lineItemRowRe.FindAllStringSubmatch(section, -1) {
		qty, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		items = append(items, entity.LineItem{
			Description: strings.TrimSpace(m[1]),
			Quantity:    qty,
			UnitPrice:   m[3],
			LineTotal:   m[4],
		})
	}
	return items
}

// lineItemSection returns the text following the header line, or false
// when no line carries a header word.
func lineItemSection(text string) (string, bool) {
	offset := 0
	for {
		lineEnd := strings.IndexByte(text[offset:], '\n')
		var line string
		if lineEnd < 0 {
			line = text[offset:]
		} else {
			line = text[offset : offset+lineEnd]
		}

		lower := strings.ToLower(line)
		for _, w := range lineItemHeaderWords {
			if strings.Contains(lower, w) {
				return text[offset+len(line):], true
			}
		}

		if lineEnd < 0 {
			return "", false
		}
		offset += lineEnd + 1
	}
}
