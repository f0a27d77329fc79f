package verification

// identityProofPass is the normalized value of a passing identity signal.
const identityProofPass = "PASS"

// Accumulator folds the evidence of one verification run. Every flag only
// ever moves from false to true. An Accumulator must not be reused across documents.
type Accumulator struct {
	expected ExpectedIdentity
	policy   Policy
	checks   Checks
	fields   ParsedFields

	names    map[string]struct{}
	keywords map[string]struct{}

	// identitySignal is the value of the last identity entity seen.
	identitySignal string
}

// NewAccumulator starts a run. Checks switched off by policy, an empty
// expected SSN and an absent expected deathdate start out verified.
func NewAccumulator(expected ExpectedIdentity, policy Policy) *Accumulator {
	a := &Accumulator{
		expected: expected,
		policy:   policy,
		names:    make(map[string]struct{}),
		keywords: make(map[string]struct{}),
	}
	a.checks.SSN = expected.SSNLast4 == ""
	a.checks.Deathdate = !policy.VerifyDeathdate || expected.Deathdate == ""
	a.checks.Certificate = !policy.VerifyCertificate
	a.checks.IdentityProof = !policy.VerifyIdentityProof
	return a
}

// Add classifies one field and folds it in. It returns the category the
// field was counted under.
func (a *Accumulator) Add(field Field) Category {
	category, keyword := Classify(field.Name, a.checks)
	switch category {
	case Birthdate:
		a.fields.Birthdate = NormalizeDate(field.Value)
		a.checks.Birthdate = datesEqual(a.fields.Birthdate, a.expected.Birthdate)
	case Name:
		if tokens := NormalizeName(field.Value); len(tokens) >= 2 {
			pair := namePair(tokens)
			if _, seen := a.names[pair]; !seen {
				a.names[pair] = struct{}{}
				a.fields.Names = append(a.fields.Names, pair)
			}
		}
	case SSN:
		a.fields.SSNLast4 = NormalizeSSN(field.Value)
		a.checks.SSN = a.fields.SSNLast4 == a.expected.SSNLast4
	case Deathdate:
		a.fields.Deathdate = NormalizeDate(field.Value)
		a.checks.Deathdate = datesEqual(a.fields.Deathdate, a.expected.Deathdate)
	case CertificateKeyword:
		if _, seen := a.keywords[keyword]; !seen {
			a.keywords[keyword] = struct{}{}
			a.fields.CertificateKeywords = append(a.fields.CertificateKeywords, keyword)
		}
		if len(a.keywords) >= a.policy.CertificateKeywordThreshold {
			a.checks.Certificate = true
		}
	}
	return category
}

// AddSignal folds one identity-proofing entity in. When the processor
// reports the identity entity more than once, the last value counts.
func (a *Accumulator) AddSignal(signal FraudSignal) Category {
	category := ClassifySignal(signal, a.policy)
	if category == IdentityFraudSignal {
		a.identitySignal = signal.NormalizedValue
	}
	return category
}

// Checks returns the flags as they stand. The name flag is only settled by Result.
func (a *Accumulator) Checks() Checks {
	checks := a.checks
	if a.identitySignal == identityProofPass {
		checks.IdentityProof = true
	}
	return checks
}

// Result settles the name check and derives the decision.
func (a *Accumulator) Result() Result {
	checks := a.Checks()
	if want := namePair(NormalizeName(a.expected.Name)); want != "" {
		_, checks.Name = a.names[want]
	}

	fields := a.fields
	fields.Names = append([]string(nil), a.fields.Names...)
	fields.CertificateKeywords = append([]string(nil), a.fields.CertificateKeywords...)

	return Result{
		Decision: Decide(checks),
		Checks:   checks,
		Fields:   fields,
	}
}

func datesEqual(got, want string) bool {
	return got != "" && got == want
}
