package services

import (
	"context"
	"time"

	"github.com/Lllllllleong/identityverification/internal/models"
	"github.com/Lllllllleong/identityverification/internal/verification"
)

// DocumentStore persists upload-link documents.
type DocumentStore interface {
	Create(ctx context.Context, doc *models.Document) error
	Load(ctx context.Context, id string) (*models.Document, error)
	Update(ctx context.Context, id string, update models.DocumentUpdate) error
	Transition(ctx context.Context, id string, to models.Status) (*models.Document, error)
}

// BlobStore holds uploaded document images.
type BlobStore interface {
	Download(ctx context.Context, name string) ([]byte, error)
	SignedUploadURL(ctx context.Context, name, contentType string, ttl time.Duration) (string, error)
}

// FormExtractor returns the key/value pairs found on each page of a document.
type FormExtractor interface {
	ExtractForm(ctx context.Context, content []byte, mimeType string) ([]verification.Page, error)
}

// FraudChecker returns identity-proofing signals for a document image.
type FraudChecker interface {
	CheckIdentity(ctx context.Context, content []byte, mimeType string) ([]verification.FraudSignal, error)
}

// ExtractionArchive keeps raw extraction output for audit.
type ExtractionArchive interface {
	SaveExtraction(ctx context.Context, documentID string, pages []verification.Page, signals []verification.FraudSignal, result verification.Result) error
}

// Dispatcher schedules an asynchronous verification run. Delivery is at least once.
type Dispatcher interface {
	DispatchVerification(ctx context.Context, documentID string) (string, error)
}
