package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Lllllllleong/identityverification/internal/httpapi/mocks"
	"github.com/Lllllllleong/identityverification/internal/models"
)

func newTestRouter(t *testing.T) (http.Handler, *mocks.MockIntake) {
	t.Helper()
	intake := mocks.NewMockIntake(gomock.NewController(t))
	h := NewHandler(intake, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewRouter(h), intake
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestStatusCheck(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := serve(router, http.MethodGet, "/status", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCreateDocument(t *testing.T) {
	t.Run("returns the new id", func(t *testing.T) {
		router, intake := newTestRouter(t)
		intake.EXPECT().CreateDocument(gomock.Any(), &models.CreateDocumentRequest{
			Name:      "Jill Diane Harmon",
			Birthdate: "11/11/1962",
			SSNLast4:  "7034",
		}).Return(&models.CreateDocumentResponse{ID: "doc-1"}, nil)

		rec := serve(router, http.MethodPost, "/api/create-document",
			`{"name":"Jill Diane Harmon","birthdate":"11/11/1962","ssnLast4":"7034"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"id":"doc-1"}`, rec.Body.String())
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	})

	t.Run("malformed body is a bad request", func(t *testing.T) {
		router, _ := newTestRouter(t)

		rec := serve(router, http.MethodPost, "/api/create-document", `{"name":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("validation failure is a bad request", func(t *testing.T) {
		router, intake := newTestRouter(t)
		intake.EXPECT().CreateDocument(gomock.Any(), gomock.Any()).
			Return(nil, fmt.Errorf("%w: name is required", models.ErrInvalidInput))

		rec := serve(router, http.MethodPost, "/api/create-document", `{}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Contains(t, body["error"], "name is required")
	})

	t.Run("wrong method is rejected", func(t *testing.T) {
		router, _ := newTestRouter(t)

		rec := serve(router, http.MethodGet, "/api/create-document", "")
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestDocumentStatus(t *testing.T) {
	router, intake := newTestRouter(t)
	intake.EXPECT().DocumentStatus(gomock.Any(), "doc-1").Return(&models.DocumentStatusResponse{
		ID:            "doc-1",
		Status:        models.StatusFailure,
		StatusMessage: "Birthdate mismatch",
	}, nil)

	rec := serve(router, http.MethodGet, "/api/document-status/doc-1", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"doc-1","status":"FAILURE","statusMessage":"Birthdate mismatch"}`, rec.Body.String())
}

func TestUploadURL(t *testing.T) {
	router, intake := newTestRouter(t)
	intake.EXPECT().UploadURL(gomock.Any(), "doc-1", "application/pdf").
		Return(&models.UploadURLResponse{URL: "https://signed"}, nil)

	rec := serve(router, http.MethodGet, "/api/upload-url/doc-1?mimetype=application/pdf", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"url":"https://signed","complete":false}`, rec.Body.String())
}

func TestUploadComplete(t *testing.T) {
	router, intake := newTestRouter(t)
	intake.EXPECT().CompleteUpload(gomock.Any(), "doc-1").
		Return(&models.DocumentStatusResponse{ID: "doc-1", Status: models.StatusVerifying}, nil)

	rec := serve(router, http.MethodPost, "/api/upload-complete/doc-1", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"doc-1","status":"VERIFYING"}`, rec.Body.String())
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", fmt.Errorf("document doc-1: %w", models.ErrNotFound), http.StatusNotFound},
		{"invalid transition", fmt.Errorf("%w: SUCCESS -> VERIFYING", models.ErrInvalidTransition), http.StatusConflict},
		{"invalid input", models.ErrInvalidInput, http.StatusBadRequest},
		{"anything else", errors.New("firestore unavailable"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router, intake := newTestRouter(t)
			intake.EXPECT().CompleteUpload(gomock.Any(), "doc-1").Return(nil, tc.err)

			rec := serve(router, http.MethodPost, "/api/upload-complete/doc-1", "")
			assert.Equal(t, tc.status, rec.Code)
		})
	}

	t.Run("internal errors are not echoed", func(t *testing.T) {
		router, intake := newTestRouter(t)
		intake.EXPECT().DocumentStatus(gomock.Any(), "doc-1").Return(nil, errors.New("rpc error: secret detail"))

		rec := serve(router, http.MethodGet, "/api/document-status/doc-1", "")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "secret detail")
	})
}
