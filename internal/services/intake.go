package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"reflect"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	executions "cloud.google.com/go/workflows/executions/apiv1"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Lllllllleong/identityverification/internal/gcp"
	"github.com/Lllllllleong/identityverification/internal/metrics"
	"github.com/Lllllllleong/identityverification/internal/models"
)

// DefaultUploadURLTTL is how long a signed upload URL stays valid.
const DefaultUploadURLTTL = time.Hour

const defaultUploadMimetype = "image/jpeg"

// uploadExtensions lists the accepted upload types and the object suffix each gets.
var uploadExtensions = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/tiff":      ".tiff",
	"application/pdf": ".pdf",
}

// IntakeConfig holds all configuration for the intake service.
type IntakeConfig struct {
	ProjectID           string
	UploadBucket        string
	FirestoreCollection string
	WorkflowLocation    string
	WorkflowID          string
	UploadURLTTL        time.Duration
}

// IntakeService issues upload links and hands completed uploads to verification.
type IntakeService struct {
	store      DocumentStore
	blobs      BlobStore
	dispatcher Dispatcher
	validate   *validator.Validate
	bucket     string
	ttl        time.Duration
	metrics    *metrics.Metrics
	logger     *slog.Logger
	newID      func() string
}

type IntakeOption func(*IntakeService)

func WithIntakeLogger(logger *slog.Logger) IntakeOption {
	return func(s *IntakeService) {
		s.logger = logger
	}
}

func WithIntakeMetrics(m *metrics.Metrics) IntakeOption {
	return func(s *IntakeService) {
		s.metrics = m
	}
}

func WithUploadURLTTL(ttl time.Duration) IntakeOption {
	return func(s *IntakeService) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithUploadBucket restricts object-finalized handling to one bucket.
func WithUploadBucket(bucket string) IntakeOption {
	return func(s *IntakeService) {
		s.bucket = bucket
	}
}

// WithIDGenerator replaces uuid generation, for tests.
func WithIDGenerator(newID func() string) IntakeOption {
	return func(s *IntakeService) {
		s.newID = newID
	}
}

func NewIntakeService(store DocumentStore, blobs BlobStore, dispatcher Dispatcher, opts ...IntakeOption) (*IntakeService, error) {
	if store == nil {
		return nil, fmt.Errorf("document store is required")
	}
	if blobs == nil {
		return nil, fmt.Errorf("blob store is required")
	}
	if dispatcher == nil {
		return nil, fmt.Errorf("dispatcher is required")
	}

	s := &IntakeService{
		store:      store,
		blobs:      blobs,
		dispatcher: dispatcher,
		validate:   newValidator(),
		ttl:        DefaultUploadURLTTL,
		logger:     slog.Default(),
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// loadIntakeConfig loads and validates all necessary environment variables for this service.
func loadIntakeConfig() (*IntakeConfig, error) {
	config := &IntakeConfig{
		ProjectID:           gcp.GetEnv("PROJECT_ID", ""),
		UploadBucket:        gcp.GetEnv("UPLOAD_BUCKET", ""),
		FirestoreCollection: gcp.GetEnv("FIRESTORE_COLLECTION", "documents"),
		WorkflowLocation:    gcp.GetEnv("WORKFLOW_LOCATION", "us-central1"),
		WorkflowID:          gcp.GetEnv("WORKFLOW_ID", ""),
		UploadURLTTL:        gcp.GetEnvDuration("UPLOAD_URL_TTL", DefaultUploadURLTTL),
	}
	if config.ProjectID == "" {
		return nil, fmt.Errorf("PROJECT_ID environment variable must be set")
	}
	if config.UploadBucket == "" {
		return nil, fmt.Errorf("UPLOAD_BUCKET environment variable must be set")
	}
	if config.WorkflowID == "" {
		return nil, fmt.Errorf("WORKFLOW_ID environment variable must be set")
	}
	return config, nil
}

// NewIntake creates an IntakeService wired to Firestore, Cloud Storage and Workflows.
func NewIntake(ctx context.Context) (*IntakeService, error) {
	config, err := loadIntakeConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	fsClient, err := gcp.NewFirestoreClient(ctx, config.ProjectID)
	if err != nil {
		return nil, err
	}
	storageClient, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	execClient, err := executions.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create workflow executions client: %w", err)
	}

	slog.Info("Intake logic initialized.", "workflowId", config.WorkflowID, "uploadBucket", config.UploadBucket)

	return NewIntakeService(
		gcp.NewFirestoreDocumentStore(fsClient, config.FirestoreCollection),
		gcp.NewGCSBlobStore(storageClient, config.UploadBucket),
		gcp.NewWorkflowDispatcher(execClient, config.ProjectID, config.WorkflowLocation, config.WorkflowID),
		WithUploadBucket(config.UploadBucket),
		WithUploadURLTTL(config.UploadURLTTL),
		WithIntakeMetrics(metrics.New(prometheus.DefaultRegisterer)),
	)
}

// CreateDocument stores the expected identity and returns the id for the upload link.
func (s *IntakeService) CreateDocument(ctx context.Context, req *models.CreateDocumentRequest) (*models.CreateDocumentResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: request is required", models.ErrInvalidInput)
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrInvalidInput, validationMessage(err))
	}

	doc := &models.Document{
		ID:        s.newID(),
		Name:      strings.TrimSpace(req.Name),
		Birthdate: req.Birthdate,
		Deathdate: req.Deathdate,
		SSNLast4:  req.SSNLast4,
		Status:    models.StatusWaiting,
	}
	if err := s.store.Create(ctx, doc); err != nil {
		return nil, err
	}

	s.metrics.IncrementIntake("created")
	s.logger.Info("Upload link created.", "document", doc)
	return &models.CreateDocumentResponse{ID: doc.ID}, nil
}

// DocumentStatus returns what the upload UI polls for.
func (s *IntakeService) DocumentStatus(ctx context.Context, id string) (*models.DocumentStatusResponse, error) {
	doc, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.DocumentStatusResponse{
		ID:            doc.ID,
		Status:        doc.Status,
		StatusMessage: doc.StatusMessage,
	}, nil
}

// UploadURL issues a signed PUT URL while the document is still waiting for
// its upload. Once the upload has been signalled no URL is issued and
// Complete is set instead. An empty mimetype means image/jpeg.
func (s *IntakeService) UploadURL(ctx context.Context, id, mimetype string) (*models.UploadURLResponse, error) {
	if mimetype == "" {
		mimetype = defaultUploadMimetype
	}
	ext, ok := uploadExtensions[mimetype]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported mimetype %q", models.ErrInvalidInput, mimetype)
	}

	doc, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.Status != models.StatusWaiting {
		return &models.UploadURLResponse{Complete: true}, nil
	}

	objectName := doc.ID + ext
	if err := s.store.Update(ctx, doc.ID, models.UploadUpdate(objectName, mimetype)); err != nil {
		return nil, err
	}
	url, err := s.blobs.SignedUploadURL(ctx, objectName, mimetype, s.ttl)
	if err != nil {
		return nil, err
	}

	s.metrics.IncrementIntake("upload_url")
	s.logger.Info("Upload URL issued.", "documentId", doc.ID, "gcsObject", objectName, "ttl", s.ttl)
	return &models.UploadURLResponse{URL: url}, nil
}

// CompleteUpload moves the document to VERIFYING and dispatches a
// verification run. A repeated call dispatches again.
func (s *IntakeService) CompleteUpload(ctx context.Context, id string) (*models.DocumentStatusResponse, error) {
	logCtx := s.logger.With("documentId", id)

	doc, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.Filename == "" {
		return nil, fmt.Errorf("%w: no upload URL was issued for document %s", models.ErrInvalidTransition, id)
	}

	doc, err = s.store.Transition(ctx, id, models.StatusVerifying)
	if err != nil {
		return nil, err
	}

	executionName, err := s.dispatcher.DispatchVerification(ctx, doc.ID)
	if err != nil {
		logCtx.Error("Failed to dispatch verification", "error", err)
		return nil, fmt.Errorf("failed to dispatch verification for %s: %w", doc.ID, err)
	}

	s.metrics.IncrementIntake("upload_complete")
	logCtx.Info("Verification dispatched.", "executionName", executionName)
	return &models.DocumentStatusResponse{ID: doc.ID, Status: doc.Status}, nil
}

// HandleObjectFinalized completes the upload named by a storage finalize
// event. Objects in other buckets and objects with no pending document are
// acknowledged without error so the event is not redelivered.
func (s *IntakeService) HandleObjectFinalized(ctx context.Context, e models.GCSEvent) error {
	logCtx := s.logger.With("gcsBucket", e.Bucket, "gcsObject", e.Name)

	if s.bucket != "" && e.Bucket != s.bucket {
		logCtx.Debug("Ignoring object from another bucket.")
		return nil
	}
	id := strings.TrimSuffix(path.Base(e.Name), path.Ext(e.Name))
	if id == "" {
		logCtx.Warn("Ignoring object with no document id.")
		return nil
	}

	doc, err := s.store.Load(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		logCtx.Warn("No document for uploaded object, ignoring.")
		return nil
	}
	if err != nil {
		return err
	}
	if doc.Filename == "" {
		if err := s.store.Update(ctx, id, models.UploadUpdate(e.Name, e.ContentType)); err != nil {
			return err
		}
	}

	if _, err := s.CompleteUpload(ctx, id); err != nil {
		if errors.Is(err, models.ErrInvalidTransition) {
			logCtx.Warn("Document is not awaiting verification, ignoring.", "error", err)
			return nil
		}
		return err
	}
	return nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "datetime":
			msgs = append(msgs, fmt.Sprintf("%s must be formatted as %s", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}

// newValidator reports fields by their json names so messages match the request payload.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
