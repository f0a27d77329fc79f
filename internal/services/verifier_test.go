package services

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks DocumentStore,BlobStore,FormExtractor,FraudChecker,ExtractionArchive,Dispatcher

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/Lllllllleong/identityverification/internal/metrics"
	"github.com/Lllllllleong/identityverification/internal/models"
	"github.com/Lllllllleong/identityverification/internal/services/mocks"
	"github.com/Lllllllleong/identityverification/internal/verification"
)

type VerifierSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	store     *mocks.MockDocumentStore
	blobs     *mocks.MockBlobStore
	extractor *mocks.MockFormExtractor
	fraud     *mocks.MockFraudChecker
	archive   *mocks.MockExtractionArchive
	metrics   *metrics.Metrics
	verifier  *VerifierFunction
}

func TestVerifierSuite(t *testing.T) {
	suite.Run(t, new(VerifierSuite))
}

func (s *VerifierSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = mocks.NewMockDocumentStore(s.ctrl)
	s.blobs = mocks.NewMockBlobStore(s.ctrl)
	s.extractor = mocks.NewMockFormExtractor(s.ctrl)
	s.fraud = mocks.NewMockFraudChecker(s.ctrl)
	s.archive = mocks.NewMockExtractionArchive(s.ctrl)
	s.metrics = metrics.New(prometheus.NewRegistry())

	var err error
	s.verifier, err = NewVerifierFunction(s.store, s.blobs, s.extractor,
		WithFraudChecker(s.fraud),
		WithArchive(s.archive),
		WithMetrics(s.metrics),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	s.Require().NoError(err)
}

func (s *VerifierSuite) TearDownTest() {
	s.ctrl.Finish()
}

func verifyingDoc() *models.Document {
	return &models.Document{
		ID:        "doc-1",
		Name:      "Jill Diane Harmon",
		Birthdate: "11/11/1962",
		SSNLast4:  "7034",
		Filename:  "doc-1.jpg",
		Mimetype:  "image/jpeg",
		Status:    models.StatusVerifying,
	}
}

func certificatePages() []verification.Page {
	return []verification.Page{{Fields: []verification.Field{
		{Name: "Name", Value: "Jill Harmon"},
		{Name: "Date of\nBirth", Value: "November 11, 1962"},
		{Name: "SSN", Value: "xxx-xx-7034"},
		{Name: "County of Death", Value: "Travis"},
		{Name: "Place of Death", Value: "Austin"},
	}}}
}

var passing = []verification.FraudSignal{{Type: verification.DefaultIdentitySignalType, NormalizedValue: "PASS"}}

var jpegBytes = []byte("jpeg-bytes")

func (s *VerifierSuite) TestNew() {
	s.Run("nil store returns error", func() {
		_, err := NewVerifierFunction(nil, s.blobs, s.extractor)
		s.ErrorContains(err, "document store is required")
	})

	s.Run("nil blob store returns error", func() {
		_, err := NewVerifierFunction(s.store, nil, s.extractor)
		s.ErrorContains(err, "blob store is required")
	})

	s.Run("nil extractor returns error", func() {
		_, err := NewVerifierFunction(s.store, s.blobs, nil)
		s.ErrorContains(err, "form extractor is required")
	})

	s.Run("defaults to the full policy", func() {
		v, err := NewVerifierFunction(s.store, s.blobs, s.extractor)
		s.Require().NoError(err)
		s.Equal(verification.DefaultPolicy(), v.policy)
		s.NotNil(v.preflight)
	})
}

func (s *VerifierSuite) TestProcess_Success() {
	ctx := context.Background()
	doc := verifyingDoc()

	var stored models.DocumentUpdate
	s.store.EXPECT().Load(gomock.Any(), "doc-1").Return(doc, nil)
	s.blobs.EXPECT().Download(gomock.Any(), "doc-1.jpg").Return(jpegBytes, nil)
	s.extractor.EXPECT().ExtractForm(gomock.Any(), jpegBytes, "image/jpeg").Return(certificatePages(), nil)
	s.fraud.EXPECT().CheckIdentity(gomock.Any(), jpegBytes, "image/jpeg").Return(passing, nil)
	s.store.EXPECT().Update(gomock.Any(), "doc-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, u models.DocumentUpdate) error {
			stored = u
			return nil
		})
	s.archive.EXPECT().SaveExtraction(gomock.Any(), "doc-1", certificatePages(), passing, gomock.Any()).Return(nil)

	res, err := s.verifier.Process(ctx, &models.VerifyDocumentRequest{DocumentID: "doc-1"})
	s.Require().NoError(err)

	s.Equal(models.StatusSuccess, res.Status)
	s.Empty(res.StatusMessage)
	s.Require().NotNil(res.Checks)
	s.True(res.Checks.IdentityProof)

	s.Require().NotNil(stored.Status)
	s.Equal(models.StatusSuccess, *stored.Status)
	s.Equal("", *stored.StatusMessage)
	s.Equal([]string{"jill harmon"}, stored.Fields.Names)
	s.Equal("11/11/1962", stored.Fields.Birthdate)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.VerificationOutcome.WithLabelValues("SUCCESS", "")))
}

func (s *VerifierSuite) TestProcess_FailureIsPersisted() {
	doc := verifyingDoc()
	pages := []verification.Page{{Fields: []verification.Field{
		{Name: "Name", Value: "John Smith"},
		{Name: "County", Value: "Travis"},
		{Name: "Place", Value: "Austin"},
	}}}

	s.store.EXPECT().Load(gomock.Any(), "doc-1").Return(doc, nil)
	s.blobs.EXPECT().Download(gomock.Any(), "doc-1.jpg").Return(jpegBytes, nil)
	s.extractor.EXPECT().ExtractForm(gomock.Any(), jpegBytes, "image/jpeg").Return(pages, nil)
	s.fraud.EXPECT().CheckIdentity(gomock.Any(), jpegBytes, "image/jpeg").Return(passing, nil)
	s.store.EXPECT().Update(gomock.Any(), "doc-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, u models.DocumentUpdate) error {
			s.Equal(models.StatusFailure, *u.Status)
			s.Equal(verification.MessageNameMismatch, *u.StatusMessage)
			return nil
		})
	s.archive.EXPECT().SaveExtraction(gomock.Any(), "doc-1", gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	res, err := s.verifier.Process(context.Background(), &models.VerifyDocumentRequest{DocumentID: "doc-1"})
	s.Require().NoError(err)
	s.Equal(models.StatusFailure, res.Status)
	s.Equal(verification.MessageNameMismatch, res.StatusMessage)
}

func (s *VerifierSuite) TestProcess_ExtractionErrors() {
	for name, setup := range map[string]func(){
		"form extraction fails": func() {
			s.extractor.EXPECT().ExtractForm(gomock.Any(), jpegBytes, "image/jpeg").Return(nil, errors.New("deadline exceeded"))
			s.fraud.EXPECT().CheckIdentity(gomock.Any(), jpegBytes, "image/jpeg").Return(passing, nil).AnyTimes()
		},
		"identity proofing fails": func() {
			s.extractor.EXPECT().ExtractForm(gomock.Any(), jpegBytes, "image/jpeg").Return(certificatePages(), nil).AnyTimes()
			s.fraud.EXPECT().CheckIdentity(gomock.Any(), jpegBytes, "image/jpeg").Return(nil, errors.New("processor unavailable"))
		},
	} {
		s.Run(name, func() {
			s.SetupTest()
			s.store.EXPECT().Load(gomock.Any(), "doc-1").Return(verifyingDoc(), nil)
			s.blobs.EXPECT().Download(gomock.Any(), "doc-1.jpg").Return(jpegBytes, nil)
			setup()
			s.store.EXPECT().Update(gomock.Any(), "doc-1",
				models.OutcomeUpdate(models.StatusFailure, models.MessageProcessingError, verification.ParsedFields{})).
				Return(nil)

			res, err := s.verifier.Process(context.Background(), &models.VerifyDocumentRequest{DocumentID: "doc-1"})
			s.Require().NoError(err, "extraction failures are recorded, not returned")
			s.Equal(models.StatusFailure, res.Status)
			s.Equal(models.MessageProcessingError, res.StatusMessage)
			s.Nil(res.Checks)
		})
	}
}

func (s *VerifierSuite) TestProcess_InvalidPDFIsProcessingError() {
	doc := verifyingDoc()
	doc.Filename = "doc-1.pdf"
	doc.Mimetype = "application/pdf"

	s.store.EXPECT().Load(gomock.Any(), "doc-1").Return(doc, nil)
	s.blobs.EXPECT().Download(gomock.Any(), "doc-1.pdf").Return([]byte("%PDF-1.7 not really"), nil)
	s.store.EXPECT().Update(gomock.Any(), "doc-1",
		models.OutcomeUpdate(models.StatusFailure, models.MessageProcessingError, verification.ParsedFields{})).
		Return(nil)

	res, err := s.verifier.Process(context.Background(), &models.VerifyDocumentRequest{DocumentID: "doc-1"})
	s.Require().NoError(err)
	s.Equal(models.MessageProcessingError, res.StatusMessage)
}

func (s *VerifierSuite) TestProcess_Lifecycle() {
	s.Run("empty document id is rejected", func() {
		_, err := s.verifier.Process(context.Background(), &models.VerifyDocumentRequest{})
		s.ErrorIs(err, models.ErrInvalidInput)
	})

	s.Run("missing document is returned", func() {
		s.store.EXPECT().Load(gomock.Any(), "gone").Return(nil, models.ErrNotFound)

		_, err := s.verifier.Process(context.Background(), &models.VerifyDocumentRequest{DocumentID: "gone"})
		s.ErrorIs(err, models.ErrNotFound)
	})

	s.Run("waiting document is skipped", func() {
		doc := verifyingDoc()
		doc.Status = models.StatusWaiting
		s.store.EXPECT().Load(gomock.Any(), "doc-1").Return(doc, nil)

		res, err := s.verifier.Process(context.Background(), &models.VerifyDocumentRequest{DocumentID: "doc-1"})
		s.Require().NoError(err)
		s.True(res.Skipped)
		s.Equal(models.StatusWaiting, res.Status)
	})

	s.Run("download failure is returned for retry", func() {
		s.store.EXPECT().Load(gomock.Any(), "doc-1").Return(verifyingDoc(), nil)
		s.blobs.EXPECT().Download(gomock.Any(), "doc-1.jpg").Return(nil, errors.New("connection reset"))

		_, err := s.verifier.Process(context.Background(), &models.VerifyDocumentRequest{DocumentID: "doc-1"})
		s.ErrorContains(err, "connection reset")
	})

	s.Run("missing uploaded object is a processing error", func() {
		s.store.EXPECT().Load(gomock.Any(), "doc-1").Return(verifyingDoc(), nil)
		s.blobs.EXPECT().Download(gomock.Any(), "doc-1.jpg").Return(nil, models.ErrNotFound)
		s.store.EXPECT().Update(gomock.Any(), "doc-1",
			models.OutcomeUpdate(models.StatusFailure, models.MessageProcessingError, verification.ParsedFields{})).
			Return(nil)

		res, err := s.verifier.Process(context.Background(), &models.VerifyDocumentRequest{DocumentID: "doc-1"})
		s.Require().NoError(err)
		s.Equal(models.StatusFailure, res.Status)
		s.Equal(models.MessageProcessingError, res.StatusMessage)
	})

	s.Run("outcome write failure is returned", func() {
		s.store.EXPECT().Load(gomock.Any(), "doc-1").Return(verifyingDoc(), nil)
		s.blobs.EXPECT().Download(gomock.Any(), "doc-1.jpg").Return(jpegBytes, nil)
		s.extractor.EXPECT().ExtractForm(gomock.Any(), jpegBytes, "image/jpeg").Return(certificatePages(), nil)
		s.fraud.EXPECT().CheckIdentity(gomock.Any(), jpegBytes, "image/jpeg").Return(passing, nil)
		s.store.EXPECT().Update(gomock.Any(), "doc-1", gomock.Any()).Return(errors.New("unavailable"))

		_, err := s.verifier.Process(context.Background(), &models.VerifyDocumentRequest{DocumentID: "doc-1"})
		s.ErrorContains(err, "failed to persist outcome")
	})

	s.Run("archive failure does not fail the run", func() {
		s.store.EXPECT().Load(gomock.Any(), "doc-1").Return(verifyingDoc(), nil)
		s.blobs.EXPECT().Download(gomock.Any(), "doc-1.jpg").Return(jpegBytes, nil)
		s.extractor.EXPECT().ExtractForm(gomock.Any(), jpegBytes, "image/jpeg").Return(certificatePages(), nil)
		s.fraud.EXPECT().CheckIdentity(gomock.Any(), jpegBytes, "image/jpeg").Return(passing, nil)
		s.store.EXPECT().Update(gomock.Any(), "doc-1", gomock.Any()).Return(nil)
		s.archive.EXPECT().SaveExtraction(gomock.Any(), "doc-1", gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("denied"))

		res, err := s.verifier.Process(context.Background(), &models.VerifyDocumentRequest{DocumentID: "doc-1"})
		s.Require().NoError(err)
		s.Equal(models.StatusSuccess, res.Status)
	})
}

func (s *VerifierSuite) TestProcess_BasicProfileSkipsIdentityProofing() {
	basic, err := verification.PolicyForProfile("basic")
	s.Require().NoError(err)
	v, err := NewVerifierFunction(s.store, s.blobs, s.extractor,
		WithFraudChecker(s.fraud),
		WithPolicy(basic),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	s.Require().NoError(err)

	pages := []verification.Page{{Fields: []verification.Field{
		{Name: "Name", Value: "Jill Harmon"},
		{Name: "Date of Birth", Value: "11/11/1962"},
		{Name: "Social Security Number", Value: "1234567034"},
	}}}
	s.store.EXPECT().Load(gomock.Any(), "doc-1").Return(verifyingDoc(), nil)
	s.blobs.EXPECT().Download(gomock.Any(), "doc-1.jpg").Return(jpegBytes, nil)
	s.extractor.EXPECT().ExtractForm(gomock.Any(), jpegBytes, "image/jpeg").Return(pages, nil)
	s.store.EXPECT().Update(gomock.Any(), "doc-1", gomock.Any()).Return(nil)

	res, err := v.Process(context.Background(), &models.VerifyDocumentRequest{DocumentID: "doc-1"})
	s.Require().NoError(err)
	s.Equal(models.StatusSuccess, res.Status)
}
