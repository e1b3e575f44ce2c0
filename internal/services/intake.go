package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"cloud.google.com/go/storage"
)

// GCSEvent is the payload of a storage finalize CloudEvent.
type GCSEvent struct {
	Bucket string `json:"bucket"`
	Name   string `json:"name"`
}

// IntakeFunction handles card photographs dropped straight into the
// intake bucket: it runs the full extract → enrich → save pipeline
// without a caller-supplied record.
type IntakeFunction struct {
	backend       *CardBackend
	storageClient *storage.Client
}

// NewIntake creates a new IntakeFunction instance.
func NewIntake(ctx context.Context) (*IntakeFunction, error) {
	backend, err := NewCardBackend(ctx)
	if err != nil {
		return nil, err
	}
	storageClient, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	slog.Info("Card intake logic initialized.")
	return &IntakeFunction{backend: backend, storageClient: storageClient}, nil
}

// Process downloads the new object and pushes it through the pipeline.
// Non-image objects are skipped, not failed, so unrelated uploads to
// the bucket do not pile up as failed invocations.
func (f *IntakeFunction) Process(ctx context.Context, e GCSEvent) error {
	logCtx := slog.With("gcsBucket", e.Bucket, "gcsObject", e.Name)

	if !isCardPhoto(e.Name) {
		logCtx.Info("Skipping non-photo object.")
		return nil
	}
	logCtx.Info("Processing new card photo.")

	reader, err := f.storageClient.Bucket(e.Bucket).Object(e.Name).NewReader(ctx)
	if err != nil {
		logCtx.Error("Failed to open intake object", "error", err)
		return fmt.Errorf("failed to get GCS object reader for gs://%s/%s: %w", e.Bucket, e.Name, err)
	}
	defer reader.Close()

	photo, err := io.ReadAll(reader)
	if err != nil {
		logCtx.Error("Failed to read intake object", "error", err)
		return fmt.Errorf("failed to read gs://%s/%s: %w", e.Bucket, e.Name, err)
	}

	message, err := f.backend.AutoSave(ctx, photo)
	if err != nil {
		logCtx.Error("Intake pipeline failed", "error", err)
		return err
	}
	logCtx.Info("Intake pipeline complete.", "result", message)
	return nil
}

func isCardPhoto(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".jpg") ||
		strings.HasSuffix(lower, ".jpeg") ||
		strings.HasSuffix(lower, ".png")
}
