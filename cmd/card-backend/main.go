package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	"github.com/joho/godotenv"

	"github.com/GhanshyamDewangan/Business-Card-OCR/internal/models"
	"github.com/GhanshyamDewangan/Business-Card-OCR/internal/services"
)

var (
	backendInstance *services.CardBackend
	once            sync.Once
	initErr         error
)

func init() {
	// --- Set up structured logging ---
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Local runs read a .env file; deployed functions get real env vars.
	_ = godotenv.Load()

	// Register the HTTP function with the framework.
	functions.HTTP("CardBackend", handleCardRequest)
}

// main is required by the Go Functions Framework.
func main() {}

// handleCardRequest is the HTTP handler for all actions. Every pipeline
// error is reported inside the response envelope; only an
// initialization failure surfaces as a transport-level error.
func handleCardRequest(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		backendInstance, initErr = services.NewCardBackend(context.Background())
	})
	if initErr != nil {
		slog.Error("Critical error during function initialization", "error", initErr)
		http.Error(w, "Internal Server Error: failed to initialize service", http.StatusInternalServerError)
		return
	}

	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		writeEnvelope(w, models.Envelope{Success: true, Message: "Card backend is running"})
		return
	}

	var req models.BackendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Could not decode request body", "error", err)
		writeEnvelope(w, models.Envelope{Success: false, Message: "could not parse request JSON"})
		return
	}

	writeEnvelope(w, backendInstance.Dispatch(r.Context(), &req))
}

func writeEnvelope(w http.ResponseWriter, env models.Envelope) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(env); err != nil {
		slog.Error("Failed to write response", "error", err)
	}
}
