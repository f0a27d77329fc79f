package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"cloud.google.com/go/storage"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/Lllllllleong/identityverification/internal/gcp"
	"github.com/Lllllllleong/identityverification/internal/metrics"
	"github.com/Lllllllleong/identityverification/internal/models"
	"github.com/Lllllllleong/identityverification/internal/verification"
)

const (
	extractorDocumentAI = "documentai"
	extractorVertex     = "vertex"
)

// VerifierConfig holds all configuration for the verifier service.
type VerifierConfig struct {
	ProjectID             string
	UploadBucket          string
	FirestoreCollection   string
	DocumentAILocation    string
	FormProcessorID       string
	IDProofingProcessorID string
	FormExtractor         string
	VertexAIRegion        string
	VertexAIModel         string
	ArchiveBucket         string
	PolicyFile            string
	Profile               string
	PDFMaxPages           int
}

// VerifierFunction reconciles an uploaded document against the identity
// captured when its upload link was created.
type VerifierFunction struct {
	store     DocumentStore
	blobs     BlobStore
	extractor FormExtractor
	fraud     FraudChecker
	archive   ExtractionArchive
	preflight *PDFPreflight
	policy    verification.Policy
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

type VerifierOption func(*VerifierFunction)

// WithFraudChecker enables the identity-proofing call. Without one the
// identity proof check is never confirmed unless the policy disables it.
func WithFraudChecker(fraud FraudChecker) VerifierOption {
	return func(f *VerifierFunction) {
		f.fraud = fraud
	}
}

func WithArchive(archive ExtractionArchive) VerifierOption {
	return func(f *VerifierFunction) {
		f.archive = archive
	}
}

func WithPolicy(policy verification.Policy) VerifierOption {
	return func(f *VerifierFunction) {
		f.policy = policy
	}
}

func WithMetrics(m *metrics.Metrics) VerifierOption {
	return func(f *VerifierFunction) {
		f.metrics = m
	}
}

func WithLogger(logger *slog.Logger) VerifierOption {
	return func(f *VerifierFunction) {
		f.logger = logger
	}
}

func WithPDFMaxPages(maxPages int) VerifierOption {
	return func(f *VerifierFunction) {
		f.preflight = NewPDFPreflight(maxPages)
	}
}

func NewVerifierFunction(store DocumentStore, blobs BlobStore, extractor FormExtractor, opts ...VerifierOption) (*VerifierFunction, error) {
	if store == nil {
		return nil, fmt.Errorf("document store is required")
	}
	if blobs == nil {
		return nil, fmt.Errorf("blob store is required")
	}
	if extractor == nil {
		return nil, fmt.Errorf("form extractor is required")
	}

	f := &VerifierFunction{
		store:     store,
		blobs:     blobs,
		extractor: extractor,
		policy:    verification.DefaultPolicy(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.preflight == nil {
		f.preflight = NewPDFPreflight(DefaultPDFMaxPages)
	}
	return f, nil
}

// loadVerifierConfig loads and validates all necessary environment variables for this service.
func loadVerifierConfig() (*VerifierConfig, error) {
	config := &VerifierConfig{
		ProjectID:             gcp.GetEnv("PROJECT_ID", ""),
		UploadBucket:          gcp.GetEnv("UPLOAD_BUCKET", ""),
		FirestoreCollection:   gcp.GetEnv("FIRESTORE_COLLECTION", "documents"),
		DocumentAILocation:    gcp.GetEnv("DOCUMENTAI_LOCATION", "us"),
		FormProcessorID:       gcp.GetEnv("DOCUMENTAI_FORM_PROCESSOR", ""),
		IDProofingProcessorID: gcp.GetEnv("DOCUMENTAI_ID_PROOFING_PROCESSOR", ""),
		FormExtractor:         gcp.GetEnv("FORM_EXTRACTOR", extractorDocumentAI),
		VertexAIRegion:        gcp.GetEnv("VERTEX_AI_REGION", "us-central1"),
		VertexAIModel:         gcp.GetEnv("VERTEX_AI_MODEL", "gemini-2.5-flash"),
		ArchiveBucket:         gcp.GetEnv("EXTRACTION_ARCHIVE_BUCKET", ""),
		PolicyFile:            gcp.GetEnv("VERIFICATION_POLICY_FILE", ""),
		Profile:               gcp.GetEnv("VERIFICATION_PROFILE", ""),
		PDFMaxPages:           gcp.GetEnvInt("PDF_MAX_PAGES", DefaultPDFMaxPages),
	}

	if config.ProjectID == "" {
		return nil, fmt.Errorf("PROJECT_ID environment variable must be set")
	}
	if config.UploadBucket == "" {
		return nil, fmt.Errorf("UPLOAD_BUCKET environment variable must be set")
	}
	switch config.FormExtractor {
	case extractorDocumentAI:
		if config.FormProcessorID == "" {
			return nil, fmt.Errorf("DOCUMENTAI_FORM_PROCESSOR environment variable must be set")
		}
	case extractorVertex:
	default:
		return nil, fmt.Errorf("unsupported FORM_EXTRACTOR %q", config.FormExtractor)
	}
	return config, nil
}

func loadPolicy(config *VerifierConfig) (verification.Policy, error) {
	if config.PolicyFile != "" {
		return verification.LoadPolicy(config.PolicyFile)
	}
	return verification.PolicyForProfile(config.Profile)
}

// NewVerifier creates a VerifierFunction wired to Firestore, Cloud Storage and
// the configured extraction services.
func NewVerifier(ctx context.Context) (*VerifierFunction, error) {
	config, err := loadVerifierConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	policy, err := loadPolicy(config)
	if err != nil {
		return nil, fmt.Errorf("failed to load verification policy: %w", err)
	}

	fsClient, err := gcp.NewFirestoreClient(ctx, config.ProjectID)
	if err != nil {
		return nil, err
	}
	storageClient, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	opts := []VerifierOption{
		WithPolicy(policy),
		WithMetrics(metrics.New(prometheus.DefaultRegisterer)),
		WithPDFMaxPages(config.PDFMaxPages),
	}

	var extractor FormExtractor
	needsDocumentAI := config.FormExtractor == extractorDocumentAI ||
		(policy.VerifyIdentityProof && config.IDProofingProcessorID != "")
	if needsDocumentAI {
		docAIClient, err := gcp.NewDocumentAIClient(ctx, config.DocumentAILocation)
		if err != nil {
			return nil, err
		}
		if config.FormExtractor == extractorDocumentAI {
			extractor = gcp.NewDocumentAIFormExtractor(docAIClient,
				gcp.ProcessorName(config.ProjectID, config.DocumentAILocation, config.FormProcessorID))
		}
		if policy.VerifyIdentityProof && config.IDProofingProcessorID != "" {
			opts = append(opts, WithFraudChecker(gcp.NewDocumentAIFraudChecker(docAIClient,
				gcp.ProcessorName(config.ProjectID, config.DocumentAILocation, config.IDProofingProcessorID))))
		}
	}
	if config.FormExtractor == extractorVertex {
		extractor, err = gcp.NewVertexFormExtractor(ctx, config.ProjectID, config.VertexAIRegion, config.VertexAIModel)
		if err != nil {
			return nil, fmt.Errorf("failed to create vertex extractor: %w", err)
		}
	}

	if config.ArchiveBucket != "" {
		opts = append(opts, WithArchive(gcp.NewGCSExtractionArchive(storageClient, config.ArchiveBucket)))
	}

	if policy.VerifyIdentityProof && config.IDProofingProcessorID == "" {
		slog.Warn("Identity proofing is required by policy but DOCUMENTAI_ID_PROOFING_PROCESSOR is not set; every document will fail.")
	}
	slog.Info("Verifier logic initialized.",
		"formExtractor", config.FormExtractor,
		"identityProofing", config.IDProofingProcessorID != "",
		"verifyDeathdate", policy.VerifyDeathdate,
		"verifyCertificate", policy.VerifyCertificate,
	)

	return NewVerifierFunction(
		gcp.NewFirestoreDocumentStore(fsClient, config.FirestoreCollection),
		gcp.NewGCSBlobStore(storageClient, config.UploadBucket),
		extractor,
		opts...,
	)
}

// Process runs one verification of the document named in req. Extraction
// failures and a missing uploaded object are recorded on the document as a
// processing error and are not returned. Store and transient download
// failures are returned so the caller retries.
func (f *VerifierFunction) Process(ctx context.Context, req *models.VerifyDocumentRequest) (*models.VerifyDocumentResponse, error) {
	start := time.Now()
	logCtx := f.logger.With("documentId", req.DocumentID, "executionId", req.ExecutionID)

	if req.DocumentID == "" {
		return nil, fmt.Errorf("%w: documentId is required", models.ErrInvalidInput)
	}

	doc, err := f.store.Load(ctx, req.DocumentID)
	if err != nil {
		logCtx.Error("Failed to load document", "error", err)
		return nil, fmt.Errorf("failed to load document %s: %w", req.DocumentID, err)
	}
	logCtx.Info("Starting verification.", "document", doc)

	if doc.Status == models.StatusWaiting {
		logCtx.Warn("Upload has not been completed, skipping verification.")
		return &models.VerifyDocumentResponse{DocumentID: doc.ID, Status: doc.Status, Skipped: true}, nil
	}
	if doc.Filename == "" {
		return f.recordProcessingError(ctx, logCtx, doc, fmt.Errorf("document has no uploaded object"))
	}

	content, err := f.blobs.Download(ctx, doc.Filename)
	if errors.Is(err, models.ErrNotFound) {
		return f.recordProcessingError(ctx, logCtx, doc, fmt.Errorf("uploaded object %s not found: %w", doc.Filename, err))
	}
	if err != nil {
		logCtx.Error("Failed to download uploaded object", "gcsObject", doc.Filename, "error", err)
		return nil, fmt.Errorf("failed to download %s: %w", doc.Filename, err)
	}

	pages, signals, err := f.extract(ctx, logCtx, content, doc.Mimetype)
	if err != nil {
		return f.recordProcessingError(ctx, logCtx, doc, err)
	}

	result := verification.Evaluate(doc.ExpectedIdentity(), pages, signals, f.policy)
	status := models.StatusFromDecision(result.Decision)
	if err := f.store.Update(ctx, doc.ID, models.OutcomeUpdate(status, result.Decision.Message, result.Fields)); err != nil {
		logCtx.Error("Failed to persist verification outcome", "error", err)
		return nil, fmt.Errorf("failed to persist outcome for %s: %w", doc.ID, err)
	}

	if f.archive != nil {
		if err := f.archive.SaveExtraction(ctx, doc.ID, pages, signals, result); err != nil {
			logCtx.Warn("Failed to archive extraction output", "error", err)
		}
	}

	f.metrics.IncrementOutcome(string(status), result.Decision.Message)
	f.metrics.ObserveVerifyLatency(time.Since(start))
	logCtx.Info("Verification complete.",
		"status", status,
		"statusMessage", result.Decision.Message,
		"pages", len(pages),
		"signals", len(signals),
	)

	checks := result.Checks
	return &models.VerifyDocumentResponse{
		DocumentID:    doc.ID,
		Status:        status,
		StatusMessage: result.Decision.Message,
		Checks:        &checks,
	}, nil
}

// extract runs the PDF preflight and then the form extraction and identity
// proofing calls concurrently.
func (f *VerifierFunction) extract(ctx context.Context, logCtx *slog.Logger, content []byte, mimeType string) ([]verification.Page, []verification.FraudSignal, error) {
	content, mimeType, err := f.preflight.Prepare(content, mimeType)
	if err != nil {
		return nil, nil, err
	}

	var (
		pages   []verification.Page
		signals []verification.FraudSignal
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		callStart := time.Now()
		p, err := f.extractor.ExtractForm(gctx, content, mimeType)
		f.metrics.ObserveExtractionLatency("form", time.Since(callStart))
		if err != nil {
			return fmt.Errorf("failed to extract form fields: %w", err)
		}
		pages = p
		return nil
	})
	if f.fraud != nil && f.policy.VerifyIdentityProof {
		g.Go(func() error {
			callStart := time.Now()
			s, err := f.fraud.CheckIdentity(gctx, content, mimeType)
			f.metrics.ObserveExtractionLatency("identity_proofing", time.Since(callStart))
			if err != nil {
				return fmt.Errorf("failed to run identity proofing: %w", err)
			}
			signals = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	logCtx.Debug("Extraction finished.", "mimeType", mimeType, "pages", len(pages), "signals", len(signals))
	return pages, signals, nil
}

func (f *VerifierFunction) recordProcessingError(ctx context.Context, logCtx *slog.Logger, doc *models.Document, cause error) (*models.VerifyDocumentResponse, error) {
	logCtx.Error("Document could not be processed", "error", cause)

	update := models.OutcomeUpdate(models.StatusFailure, models.MessageProcessingError, verification.ParsedFields{})
	if err := f.store.Update(ctx, doc.ID, update); err != nil {
		logCtx.Error("Failed to persist processing error", "error", err)
		return nil, fmt.Errorf("failed to persist processing error for %s: %w", doc.ID, err)
	}
	f.metrics.IncrementOutcome(string(models.StatusFailure), models.MessageProcessingError)

	return &models.VerifyDocumentResponse{
		DocumentID:    doc.ID,
		Status:        models.StatusFailure,
		StatusMessage: models.MessageProcessingError,
	}, nil
}
