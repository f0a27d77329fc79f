package models

import "github.com/Lllllllleong/identityverification/internal/verification"

// These structs define the JSON payloads exchanged with the upload UI,
// the dispatch workflow and the verifier function.

// CreateDocumentRequest is the input for issuing a new upload link.
type CreateDocumentRequest struct {
	Name      string `json:"name" validate:"required,max=200"`
	Birthdate string `json:"birthdate" validate:"required,datetime=01/02/2006"`
	Deathdate string `json:"deathdate,omitempty" validate:"omitempty,datetime=01/02/2006"`
	SSNLast4  string `json:"ssnLast4,omitempty" validate:"omitempty,len=4,numeric"`
}

// CreateDocumentResponse carries the id embedded in the upload link.
type CreateDocumentResponse struct {
	ID string `json:"id"`
}

// DocumentStatusResponse is what the upload UI polls.
type DocumentStatusResponse struct {
	ID            string `json:"id"`
	Status        Status `json:"status"`
	StatusMessage string `json:"statusMessage,omitempty"`
}

// UploadURLResponse is a signed URL to PUT the image to.
// Complete is true once the upload has been signalled.
type UploadURLResponse struct {
	URL      string `json:"url"`
	Complete bool   `json:"complete"`
}

// VerifyDocumentRequest is the input for the document-verifier function.
type VerifyDocumentRequest struct {
	DocumentID  string `json:"documentId"`
	ExecutionID string `json:"executionId,omitempty"`
}

// VerifyDocumentResponse is the output of the document-verifier function.
type VerifyDocumentResponse struct {
	DocumentID    string               `json:"documentId"`
	Status        Status               `json:"status"`
	StatusMessage string               `json:"statusMessage,omitempty"`
	Checks        *verification.Checks `json:"checks,omitempty"`
	Skipped       bool                 `json:"skipped,omitempty"`
}

// GCSEvent is the payload of a storage object-finalized CloudEvent.
type GCSEvent struct {
	Bucket      string `json:"bucket"`
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
}
