package verification

// failureRule pairs a failing check with the message shown for it.
type failureRule struct {
	failed  func(Checks) bool
	message string
}

// failureRules is ordered by priority: only the first failing rule is reported.
// Identity proof and certificate share one message.
var failureRules = []failureRule{
	{func(c Checks) bool { return !c.IdentityProof || !c.Certificate }, MessageCertificateUnverified},
	{func(c Checks) bool { return !c.Name }, MessageNameMismatch},
	{func(c Checks) bool { return !c.Birthdate }, MessageBirthdateMismatch},
	{func(c Checks) bool { return !c.SSN }, MessageSSNMismatch},
	{func(c Checks) bool { return !c.Deathdate }, MessageDeathdateMismatch},
}

// Decide turns settled checks into a decision. Checks disabled by policy
// arrive already true, so they never block success.
func Decide(checks Checks) Decision {
	for _, r := range failureRules {
		if r.failed(checks) {
			return Decision{Status: StatusFailure, Message: r.message}
		}
	}
	return Decision{Status: StatusSuccess}
}

// Evaluate runs a complete verification over the extracted pages and
// identity-proofing signals. It is deterministic for the same inputs.
func Evaluate(expected ExpectedIdentity, pages []Page, signals []FraudSignal, policy Policy) Result {
	acc := NewAccumulator(expected, policy)
	for _, field := range FlattenPages(pages) {
		acc.Add(field)
	}
	for _, signal := range signals {
		acc.AddSignal(signal)
	}
	return acc.Result()
}

// FlattenPages concatenates page fields in order, collapsing the multi-line
// text OCR returns for labels and values.
func FlattenPages(pages []Page) []Field {
	var fields []Field
	for _, page := range pages {
		for _, f := range page.Fields {
			fields = append(fields, Field{
				Name:  CollapseWhitespace(f.Name),
				Value: CollapseWhitespace(f.Value),
			})
		}
	}
	return fields
}
