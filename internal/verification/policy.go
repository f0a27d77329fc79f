package verification

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultIdentitySignalType is the identity-proofing entity that reports
// whether the image is a genuine identity document.
const DefaultIdentitySignalType = "fraud_signals_is_identity_document"

// Profile names select a preset Policy.
const (
	ProfileFull  = "full"
	ProfileBasic = "basic"
)

// Policy switches the optional checks. Name, birthdate and SSN are always checked.
type Policy struct {
	VerifyDeathdate             bool   `yaml:"verify_deathdate"`
	VerifyCertificate           bool   `yaml:"verify_certificate"`
	VerifyIdentityProof         bool   `yaml:"verify_identity_proof"`
	CertificateKeywordThreshold int    `yaml:"certificate_keyword_threshold"`
	IdentitySignalType          string `yaml:"identity_signal_type"`
}

// DefaultPolicy enables every check.
func DefaultPolicy() Policy {
	return Policy{
		VerifyDeathdate:             true,
		VerifyCertificate:           true,
		VerifyIdentityProof:         true,
		CertificateKeywordThreshold: 2,
		IdentitySignalType:          DefaultIdentitySignalType,
	}
}

// PolicyForProfile returns the preset for name. "basic" matches deployments
// that only reconcile name, birthdate and SSN.
func PolicyForProfile(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ProfileFull:
		return DefaultPolicy(), nil
	case ProfileBasic:
		p := DefaultPolicy()
		p.VerifyDeathdate = false
		p.VerifyCertificate = false
		p.VerifyIdentityProof = false
		return p, nil
	default:
		return Policy{}, fmt.Errorf("unknown verification profile %q", name)
	}
}

// LoadPolicy reads a YAML policy file. Keys absent from the file keep their
// DefaultPolicy value and ${VAR} references are expanded from the environment.
func LoadPolicy(path string) (Policy, error) {
	// #nosec G304 -- path is operator-provided config path.
	raw, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("failed to read verification policy: %w", err)
	}
	return ParsePolicy([]byte(os.ExpandEnv(string(raw))))
}

// ParsePolicy decodes a YAML policy document on top of DefaultPolicy.
func ParsePolicy(raw []byte) (Policy, error) {
	p := DefaultPolicy()
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return Policy{}, fmt.Errorf("failed to parse verification policy: %w", err)
	}
	return p, p.Validate()
}

func (p Policy) Validate() error {
	if p.VerifyCertificate && p.CertificateKeywordThreshold < 1 {
		return fmt.Errorf("certificate_keyword_threshold must be at least 1 when verify_certificate=true")
	}
	if p.VerifyIdentityProof && p.IdentitySignalType == "" {
		return fmt.Errorf("identity_signal_type is required when verify_identity_proof=true")
	}
	return nil
}
