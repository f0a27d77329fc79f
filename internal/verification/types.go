// Package verification reconciles OCR output against the identity a claimant
// declared and produces a deterministic approve/reject decision.
//
// The package does no I/O. Callers hand it the expected identity, the
// extracted form fields and any identity-proofing signals; everything needed
// for a run lives in a fresh Accumulator, so concurrent runs share nothing.
package verification

// Category is the semantic class a form field label maps to.
type Category int

const (
	Unclassified Category = iota
	Birthdate
	Deathdate
	Name
	SSN
	CertificateKeyword
	IdentityFraudSignal
)

func (c Category) String() string {
	switch c {
	case Birthdate:
		return "BIRTHDATE"
	case Deathdate:
		return "DEATHDATE"
	case Name:
		return "NAME"
	case SSN:
		return "SSN"
	case CertificateKeyword:
		return "CERTIFICATE_KEYWORD"
	case IdentityFraudSignal:
		return "IDENTITY_FRAUD_SIGNAL"
	default:
		return "UNCLASSIFIED"
	}
}

// ExpectedIdentity is what the claimant declared when the upload link was issued.
// Dates are MM/DD/YYYY. An empty SSNLast4 means the SSN is not required and an
// empty Deathdate means the date of death is not checked.
type ExpectedIdentity struct {
	Name      string
	Birthdate string
	Deathdate string
	SSNLast4  string
}

// Field is one key/value pair detected by the form extractor.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Page groups the fields detected on one page, in detection order.
type Page struct {
	Fields []Field `json:"fields"`
}

// FraudSignal is an entity returned by the identity-proofing processor.
type FraudSignal struct {
	Type            string `json:"type"`
	NormalizedValue string `json:"normalizedValue"`
}

// ParsedFields is the audit trail of what was read from the document.
// It is stored next to the decision and plays no part in it.
type ParsedFields struct {
	Birthdate           string   `firestore:"birthdate,omitempty" json:"birthdate,omitempty"`
	Deathdate           string   `firestore:"deathdate,omitempty" json:"deathdate,omitempty"`
	SSNLast4            string   `firestore:"ssnLast4,omitempty" json:"ssnLast4,omitempty"`
	Names               []string `firestore:"names,omitempty" json:"names,omitempty"`
	CertificateKeywords []string `firestore:"certificateKeywords,omitempty" json:"certificateKeywords,omitempty"`
}

// Status is the outcome of a verification run.
type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusFailure Status = "FAILURE"
)

const (
	MessageCertificateUnverified = "Unable to verify certificate"
	MessageNameMismatch          = "Name mismatch"
	MessageBirthdateMismatch     = "Birthdate mismatch"
	MessageSSNMismatch           = "SSN mismatch"
	MessageDeathdateMismatch     = "Date of death mismatch"
)

// Decision is derived once from a finished accumulator and never changes.
type Decision struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
}

// Checks reports the per-attribute flags a decision was derived from.
type Checks struct {
	Birthdate     bool `json:"birthdate"`
	Deathdate     bool `json:"deathdate"`
	Name          bool `json:"name"`
	SSN           bool `json:"ssn"`
	Certificate   bool `json:"certificate"`
	IdentityProof bool `json:"identityProof"`
}

// Result is everything a run produces.
type Result struct {
	Decision Decision     `json:"decision"`
	Checks   Checks       `json:"checks"`
	Fields   ParsedFields `json:"fields"`
}
