package gcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"

	"github.com/Lllllllleong/identityverification/internal/models"
	"github.com/Lllllllleong/identityverification/internal/verification"
)

// GetEnv is a helper to read an environment variable or return a default value.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// GetEnvInt reads an integer environment variable, falling back when unset or malformed.
func GetEnvInt(key string, fallback int) int {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		slog.Warn("Ignoring malformed integer environment variable.", "key", key, "value", raw)
		return fallback
	}
	return v
}

// GetEnvDuration reads a time.Duration environment variable such as "1h".
func GetEnvDuration(key string, fallback time.Duration) time.Duration {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		slog.Warn("Ignoring malformed duration environment variable.", "key", key, "value", raw)
		return fallback
	}
	return d
}

// SaveToGCSAtomically writes content to a GCS object only if it doesn't already exist.
// An existing object is not a failure: repeated runs of the same document skip the write.
func SaveToGCSAtomically(ctx context.Context, bucket *storage.BucketHandle, objectName string, content []byte, contentType string) error {
	writer := bucket.Object(objectName).If(storage.Conditions{DoesNotExist: true}).NewWriter(ctx)
	writer.ContentType = contentType

	if _, err := writer.Write(content); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write to GCS: %w", err)
	}

	if err := writer.Close(); err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) && gerr.Code == http.StatusPreconditionFailed {
			slog.Info("SKIPPING: Object already exists.", "gcsObject", objectName)
			return nil
		}
		return fmt.Errorf("failed to finalize GCS write: %w", err)
	}
	return nil
}

// GCSBlobStore holds uploaded document images in a single bucket.
type GCSBlobStore struct {
	client *storage.Client
	bucket string
}

func NewGCSBlobStore(client *storage.Client, bucket string) *GCSBlobStore {
	return &GCSBlobStore{client: client, bucket: bucket}
}

// Download reads an uploaded object fully into memory.
func (s *GCSBlobStore) Download(ctx context.Context, name string) ([]byte, error) {
	reader, err := s.client.Bucket(s.bucket).Object(name).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, fmt.Errorf("object gs://%s/%s: %w", s.bucket, name, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get GCS object reader for gs://%s/%s: %w", s.bucket, name, err)
	}
	defer reader.Close()

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read gs://%s/%s: %w", s.bucket, name, err)
	}
	return content, nil
}

// SignedUploadURL returns a V4 signed URL that accepts a single PUT of contentType.
func (s *GCSBlobStore) SignedUploadURL(ctx context.Context, name, contentType string, ttl time.Duration) (string, error) {
	url, err := s.client.Bucket(s.bucket).SignedURL(name, &storage.SignedURLOptions{
		Scheme:      storage.SigningSchemeV4,
		Method:      http.MethodPut,
		ContentType: contentType,
		Expires:     time.Now().Add(ttl),
	})
	if err != nil {
		return "", fmt.Errorf("failed to sign upload URL for gs://%s/%s: %w", s.bucket, name, err)
	}
	return url, nil
}

// ExtractionRecord is the raw output of the extraction services for one run.
type ExtractionRecord struct {
	DocumentID  string                     `json:"documentId"`
	Pages       []verification.Page        `json:"pages"`
	Signals     []verification.FraudSignal `json:"signals,omitempty"`
	Result      verification.Result        `json:"result"`
	ExtractedAt time.Time                  `json:"extractedAt"`
}

// GCSExtractionArchive keeps the first extraction of every document for audit.
type GCSExtractionArchive struct {
	client *storage.Client
	bucket string
}

func NewGCSExtractionArchive(client *storage.Client, bucket string) *GCSExtractionArchive {
	return &GCSExtractionArchive{client: client, bucket: bucket}
}

// SaveExtraction writes <documentId>/extraction.json unless it already exists.
func (a *GCSExtractionArchive) SaveExtraction(ctx context.Context, documentID string, pages []verification.Page, signals []verification.FraudSignal, result verification.Result) error {
	record := ExtractionRecord{
		DocumentID:  documentID,
		Pages:       pages,
		Signals:     signals,
		Result:      result,
		ExtractedAt: time.Now().UTC(),
	}
	content, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal extraction record: %w", err)
	}
	objectName := fmt.Sprintf("%s/extraction.json", documentID)
	return SaveToGCSAtomically(ctx, a.client.Bucket(a.bucket), objectName, content, "application/json")
}
