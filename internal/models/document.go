package models

import (
	"errors"
	"log/slog"
	"time"

	"github.com/Lllllllleong/identityverification/internal/verification"
)

var (
	// ErrNotFound is returned when a document or its uploaded object does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidTransition is returned when a status change is not allowed.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrInvalidInput is returned when a request fails validation.
	ErrInvalidInput = errors.New("invalid input")
)

// Status tracks a document from link creation to a verification outcome.
type Status string

const (
	StatusWaiting   Status = "WAITING"
	StatusVerifying Status = "VERIFYING"
	StatusSuccess   Status = "SUCCESS"
	StatusFailure   Status = "FAILURE"
)

// MessageProcessingError is stored when the extraction services could not process the upload.
const MessageProcessingError = "Error processing document"

// IsTerminal reports whether s is a verification outcome.
func (s Status) IsTerminal() bool {
	return s == StatusSuccess || s == StatusFailure
}

// CanTransition reports whether a document in status from may move to status to.
// Repeating VERIFYING and rewriting a terminal outcome are allowed because
// upload signals and verification runs are delivered at least once.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusWaiting:
		return to == StatusVerifying
	case StatusVerifying:
		return to == StatusVerifying || to.IsTerminal()
	case StatusSuccess, StatusFailure:
		return to.IsTerminal()
	default:
		return false
	}
}

// StatusFromDecision maps an engine outcome onto the document lifecycle.
func StatusFromDecision(d verification.Decision) Status {
	if d.Status == verification.StatusSuccess {
		return StatusSuccess
	}
	return StatusFailure
}

// Document is the Firestore record behind one upload link.
type Document struct {
	ID            string                    `firestore:"-" json:"id"`
	Name          string                    `firestore:"name" json:"name"`
	Birthdate     string                    `firestore:"birthdate" json:"birthdate"`
	Deathdate     string                    `firestore:"deathdate,omitempty" json:"deathdate,omitempty"`
	SSNLast4      string                    `firestore:"ssnLast4" json:"ssnLast4"`
	Filename      string                    `firestore:"filename,omitempty" json:"filename,omitempty"`
	Mimetype      string                    `firestore:"mimetype,omitempty" json:"mimetype,omitempty"`
	Status        Status                    `firestore:"status" json:"status"`
	StatusMessage string                    `firestore:"statusMessage,omitempty" json:"statusMessage,omitempty"`
	Fields        verification.ParsedFields `firestore:"fields" json:"fields"`
	CreatedAt     time.Time                 `firestore:"createdAt,omitempty" json:"createdAt"`
	UpdatedAt     time.Time                 `firestore:"updatedAt,omitempty" json:"updatedAt"`
}

// ExpectedIdentity returns the values the uploaded document is reconciled against.
func (d *Document) ExpectedIdentity() verification.ExpectedIdentity {
	return verification.ExpectedIdentity{
		Name:      d.Name,
		Birthdate: d.Birthdate,
		Deathdate: d.Deathdate,
		SSNLast4:  d.SSNLast4,
	}
}

const redacted = "******"

// LogValue keeps claimant PII out of logs.
func (d *Document) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("id", d.ID),
		slog.String("status", string(d.Status)),
		slog.String("filename", d.Filename),
		slog.String("mimetype", d.Mimetype),
		slog.String("name", redacted),
		slog.String("birthdate", redacted),
		slog.String("deathdate", redacted),
		slog.String("ssnLast4", redacted),
	)
}

// DocumentUpdate is a partial write; nil fields are left untouched.
type DocumentUpdate struct {
	Status        *Status
	StatusMessage *string
	Fields        *verification.ParsedFields
	Filename      *string
	Mimetype      *string
}

// OutcomeUpdate records the result of a verification run.
func OutcomeUpdate(status Status, message string, fields verification.ParsedFields) DocumentUpdate {
	return DocumentUpdate{
		Status:        &status,
		StatusMessage: &message,
		Fields:        &fields,
	}
}

// UploadUpdate records where the claimant's upload will land.
func UploadUpdate(filename, mimetype string) DocumentUpdate {
	return DocumentUpdate{
		Filename: &filename,
		Mimetype: &mimetype,
	}
}
