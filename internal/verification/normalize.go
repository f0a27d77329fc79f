package verification

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/araddon/dateparse"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DateLayout is the canonical form of every date compared by the engine (MM/DD/YYYY).
const DateLayout = "01/02/2006"

// nameModifiers are generational suffixes ignored when comparing names.
var nameModifiers = map[string]struct{}{
	"jr":  {},
	"sr":  {},
	"i":   {},
	"ii":  {},
	"iii": {},
}

// NormalizeName reduces a free-text name to lowercase alphabetic tokens.
// Accented letters are folded to their base letter before non-letters are stripped.
func NormalizeName(raw string) []string {
	folded := foldAccents(raw)

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch {
		case r < unicode.MaxASCII && unicode.IsLetter(r):
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}

	var tokens []string
	for _, part := range strings.Fields(b.String()) {
		if _, skip := nameModifiers[part]; skip {
			continue
		}
		tokens = append(tokens, part)
	}
	return tokens
}

// namePair returns the "first last" comparison key, or "" when no tokens survive.
func namePair(tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}
	return tokens[0] + " " + tokens[len(tokens)-1]
}

// NormalizeSSN keeps the trailing four digits of raw. Inputs with fewer than
// four digits come back short so they can never equal a real last-4.
func NormalizeSSN(raw string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
	if len(digits) > 4 {
		return digits[len(digits)-4:]
	}
	return digits
}

// dateCandidates find a date inside longer OCR text such as
// "DOB 11/11/1962" or "Monday, November 11, 1962".
var dateCandidates = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{4}-\d{1,2}-\d{1,2}\b`),
	regexp.MustCompile(`\b\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4}\b`),
	regexp.MustCompile(`(?i)\b(jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)[a-z]*\.?\s+\d{1,2}(st|nd|rd|th)?,?\s+\d{4}\b`),
	regexp.MustCompile(`(?i)\b\d{1,2}(st|nd|rd|th)?\s+(jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)[a-z]*\.?,?\s+\d{4}\b`),
}

// usNumericDate matches MM-DD-YYYY and MM.DD.YYYY, read the same way as MM/DD/YYYY.
var usNumericDate = regexp.MustCompile(`^(\d{1,2})[.-](\d{1,2})[.-](\d{2,4})$`)

// shortYearDate matches numeric dates written with a two-digit year.
var shortYearDate = regexp.MustCompile(`^\d{1,2}[/.-]\d{1,2}[/.-]\d{2}$`)

// NormalizeDate parses loosely formatted date text and renders it as MM/DD/YYYY.
// A two-digit year that lands after the current year is read as the previous
// century, so "11/11/62" is 1962. Unparseable text yields "".
func NormalizeDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	t, ok := parseDate(raw)
	for _, re := range dateCandidates {
		if ok {
			break
		}
		if m := re.FindString(raw); m != "" {
			t, ok = parseDate(m)
		}
	}
	if !ok {
		return ""
	}
	return t.Format(DateLayout)
}

func parseDate(s string) (time.Time, bool) {
	shortYear := shortYearDate.MatchString(s)
	s = usNumericDate.ReplaceAllString(s, "$1/$2/$3")
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	if shortYear && t.Year() > time.Now().Year() {
		t = t.AddDate(-100, 0, 0)
	}
	return t, true
}

// CollapseWhitespace turns OCR text spanning several lines into a single trimmed line.
func CollapseWhitespace(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}

func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}
