package verification

import (
	"regexp"
	"strings"
)

// labelRule maps a label pattern to a category. A rule whose guard reports
// false does not match and evaluation moves on to the next rule.
type labelRule struct {
	category Category
	pattern  *regexp.Regexp
	guard    func(Checks) bool
}

// labelRules is evaluated top to bottom; the first matching rule wins.
var labelRules = []labelRule{
	{
		category: Birthdate,
		pattern:  regexp.MustCompile(`(?i)birth.*date|date.*birth`),
		guard:    func(c Checks) bool { return !c.Birthdate },
	},
	{
		category: Name,
		pattern:  regexp.MustCompile(`(?i)name`),
	},
	{
		category: SSN,
		pattern:  regexp.MustCompile(`(?i)social.*security|social.*number|ssn`),
		guard:    func(c Checks) bool { return !c.SSN },
	},
	{
		category: Deathdate,
		pattern:  regexp.MustCompile(`(?i)(death|dead).*date|date.*(death|dead)`),
		guard:    func(c Checks) bool { return !c.Deathdate },
	},
	{
		category: CertificateKeyword,
		pattern:  regexp.MustCompile(`(?i)location|place|time|county`),
	},
}

// Classify maps an OCR label to its category given the checks already
// confirmed in the current run. For CertificateKeyword it also returns the
// lowercased keyword that matched, which is the dedupe key.
func Classify(label string, confirmed Checks) (Category, string) {
	for _, r := range labelRules {
		match := r.pattern.FindString(label)
		if match == "" {
			continue
		}
		if r.guard != nil && !r.guard(confirmed) {
			continue
		}
		if r.category == CertificateKeyword {
			return r.category, strings.ToLower(match)
		}
		return r.category, ""
	}
	return Unclassified, ""
}

// ClassifySignal reports whether a fraud-check entity carries the identity
// document signal configured in policy.
func ClassifySignal(signal FraudSignal, policy Policy) Category {
	if signal.Type != "" && signal.Type == policy.IdentitySignalType {
		return IdentityFraudSignal
	}
	return Unclassified
}
