package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Lllllllleong/identityverification/internal/models"
	"github.com/Lllllllleong/identityverification/internal/services"
)

var (
	verifierInstance *services.VerifierFunction
	once             sync.Once
	initErr          error
	metricsHandler   = promhttp.Handler()
)

func init() {
	// --- Set up structured logging ---
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// "HandleVerifyDocument" is the entry point name configured in GCP.
	functions.HTTP("HandleVerifyDocument", handleVerifyDocument)
}

// main is required by the Go Functions Framework.
func main() {}

// handleVerifyDocument is called by the verification workflow, once per document.
func handleVerifyDocument(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		verifierInstance, initErr = services.NewVerifier(context.Background())
	})
	if initErr != nil {
		slog.Error("Critical: Verifier initialization failed", "error", initErr)
		http.Error(w, "Internal Server Error: failed to initialize service", http.StatusInternalServerError)
		return
	}

	if r.Method == http.MethodGet && r.URL.Path == "/metrics" {
		metricsHandler.ServeHTTP(w, r)
		return
	}

	var req models.VerifyDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Could not decode request body", "error", err)
		http.Error(w, "Bad Request: could not parse JSON", http.StatusBadRequest)
		return
	}

	res, err := verifierInstance.Process(r.Context(), &req)
	if err != nil {
		// The workflow retries on 5xx only.
		switch {
		case errors.Is(err, models.ErrInvalidInput):
			http.Error(w, "Bad Request: "+err.Error(), http.StatusBadRequest)
		case errors.Is(err, models.ErrNotFound):
			http.Error(w, "Not Found: document does not exist", http.StatusNotFound)
		default:
			http.Error(w, "Internal Server Error: processing failed", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		slog.Error(
			"Failed to write response",
			"error", err,
			"documentId", req.DocumentID,
			"executionId", req.ExecutionID,
		)
		http.Error(w, "Internal Server Error: failed to encode response", http.StatusInternalServerError)
	}
}
