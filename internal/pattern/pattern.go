// Package pattern holds the reusable recognizers for amount, date and
// email literals in free OCR text. Matches are returned as the raw
// matched literal: amounts are never parsed to floats and dates get no
// calendar validation, so locale quirks and OCR noise pass through to
// the caller unmodified.
package pattern

import "regexp"

// AmountPattern matches an optional currency glyph followed by a decimal
// number with optional thousands separators and exactly 0 or 2 fraction
// digits. The glyph may be spaced off the number, but without a glyph the
// literal starts at the first digit; surrounding whitespace is never part
// of the matched amount.
const AmountPattern = `(?:[$€£₹]\s?)?(?:\d{1,3}(?:,\d{3})+|\d+)(?:\.\d{2})?`

// DatePattern matches three alternative literal forms:
// D[D]/M[M]/YYYY, YYYY/M[M]/D[D] (also - and . separators), and
// "MonthName D[D][suffix], YYYY". Leftmost occurrence in the text wins.
const DatePattern = `\d{1,2}[/\-.]\d{1,2}[/\-.]\d{4}` +
	`|\d{4}[/\-.]\d{1,2}[/\-.]\d{1,2}` +
	`|(?i:Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|Jun(?:e)?|Jul(?:y)?|Aug(?:ust)?|Sep(?:tember)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?)\.?\s+\d{1,2}(?:st|nd|rd|th)?,?\s+\d{4}`

// EmailPattern matches an RFC-ish email literal, permissive on purpose.
const EmailPattern = `[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`

var (
	amountRe = regexp.MustCompile(AmountPattern)
	dateRe   = regexp.MustCompile(DatePattern)
	emailRe  = regexp.MustCompile(EmailPattern)
)

// MatchAmount returns the first amount literal in text, unnormalized.
// Downstream consumers treat amounts as opaque strings.
func MatchAmount(text string) (string, bool) {
	m := amountRe.FindString(text)
	return m, m != ""
}

// MatchDate returns the first date-shaped literal in text. A value like
// "13/45/2099" is accepted; this is syntactic recognition only.
func MatchDate(text string) (string, bool) {
	m := dateRe.FindString(text)
	return m, m != ""
}

// MatchEmail returns the first email literal in text.
func MatchEmail(text string) (string, bool) {
	m := emailRe.FindString(text)
	return m, m != ""
}

// FindDates returns every date-shaped literal in text, in positional order.
func FindDates(text string) []string {
	return dateRe.FindAllString(text, -1)
}

// FindEmails returns every email literal in text, in positional order.
func FindEmails(text string) []string {
	return emailRe.FindAllString(text, -1)
}
