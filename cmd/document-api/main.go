package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"

	"github.com/Lllllllleong/identityverification/internal/httpapi"
	"github.com/Lllllllleong/identityverification/internal/services"
)

var (
	router  http.Handler
	once    sync.Once
	initErr error
)

func init() {
	// --- Set up structured logging ---
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// "HandleDocumentAPI" is the entry point name configured in GCP.
	functions.HTTP("HandleDocumentAPI", handleDocumentAPI)
}

// main is required by the Go Functions Framework.
func main() {}

// handleDocumentAPI serves the upload UI endpoints.
func handleDocumentAPI(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		var intake *services.IntakeService
		intake, initErr = services.NewIntake(context.Background())
		if initErr == nil {
			router = httpapi.NewRouter(httpapi.NewHandler(intake, slog.Default()))
		}
	})
	if initErr != nil {
		slog.Error("Critical: Intake initialization failed", "error", initErr)
		http.Error(w, "Internal Server Error: failed to initialize service", http.StatusInternalServerError)
		return
	}

	router.ServeHTTP(w, r)
}
