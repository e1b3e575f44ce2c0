package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/sheets/v4"

	"github.com/GhanshyamDewangan/Business-Card-OCR/internal/blob"
	"github.com/GhanshyamDewangan/Business-Card-OCR/internal/gcp"
	"github.com/GhanshyamDewangan/Business-Card-OCR/internal/models"
	"github.com/GhanshyamDewangan/Business-Card-OCR/internal/ocr"
	"github.com/GhanshyamDewangan/Business-Card-OCR/internal/schema"
	"github.com/GhanshyamDewangan/Business-Card-OCR/internal/sheet"
)

// Extractor is the recognition collaborator: card photographs in,
// opaque parsed record out.
type Extractor interface {
	Extract(ctx context.Context, images ...[]byte) (json.RawMessage, error)
}

// Enricher augments an extracted record with web research findings.
type Enricher interface {
	Enrich(ctx context.Context, record models.CardRecord) models.CardRecord
}

// CardBackend wires the save, read and extract operations over one
// tabular store, one blob persister and the recognition backend.
type CardBackend struct {
	store     sheet.TabularStore
	blobs     blob.Persister
	extractor Extractor
	enricher  Enricher
	audit     AuditTrail
	version   schema.Version
	now       func() time.Time
}

// NewCardBackend creates a backend from environment configuration,
// building all clients.
func NewCardBackend(ctx context.Context) (*CardBackend, error) {
	config, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	vertexClient, err := gcp.NewVertexClient(ctx, config.ProjectID, config.VertexAIRegion)
	if err != nil {
		return nil, fmt.Errorf("failed to create vertex client: %w", err)
	}
	ocrClient := ocr.NewClient(vertexClient)

	backend := &CardBackend{
		extractor: ocrClient,
		enricher:  ocrClient,
		version:   config.SchemaVersion,
		now:       time.Now,
	}

	switch config.StoreBackend {
	case StoreBackendXLSX:
		backend.store = sheet.NewXLSXStore(config.WorkbookPath, config.WorkbookSheet)
		backend.blobs, err = blob.NewDirPersister(config.PhotosDir)
		if err != nil {
			return nil, fmt.Errorf("failed to create photo directory: %w", err)
		}
	default:
		sheetsService, err := sheets.NewService(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create sheets service: %w", err)
		}
		backend.store = sheet.NewGoogleStore(sheetsService, config.SpreadsheetID, config.SheetRange)

		storageClient, err := storage.NewClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		backend.blobs = blob.NewGCSPersister(storageClient, config.PhotosBucket, "cards")

		firestoreClient, err := gcp.NewFirestoreClient(ctx, config.ProjectID)
		if err != nil {
			return nil, fmt.Errorf("failed to create firestore client: %w", err)
		}
		backend.audit = NewFirestoreAudit(firestoreClient, config.AuditCollection)
	}

	slog.Info("Card backend initialized.",
		"storeBackend", config.StoreBackend, "schemaVersion", string(config.SchemaVersion))
	return backend, nil
}

// Extract forwards the primary image to the recognition backend and
// returns its result unmodified.
func (b *CardBackend) Extract(ctx context.Context, req *models.BackendRequest) (json.RawMessage, error) {
	if strings.TrimSpace(req.Photo1Base64) == "" {
		return nil, &MalformedRequestError{Reason: "photo1Base64 is required for extract"}
	}
	image, err := blob.Decode(req.Photo1Base64)
	if err != nil {
		return nil, &MalformedRequestError{Reason: "photo1Base64 is not valid base64", Err: err}
	}
	return b.extractor.Extract(ctx, image)
}

// Save runs the ingestion pipeline for one card: persist the
// photograph(s), build the validation cell, normalize onto the active
// schema and append the row. It returns a confirmation message.
func (b *CardBackend) Save(ctx context.Context, req *models.BackendRequest) (string, error) {
	if strings.TrimSpace(req.Photo1Base64) == "" {
		return "", &MalformedRequestError{Reason: "photo1Base64 is required for save"}
	}

	var record models.CardRecord
	if len(req.ExtractedData) > 0 {
		if err := json.Unmarshal(req.ExtractedData, &record); err != nil {
			return "", &MalformedRequestError{Reason: "extractedData is not a valid record", Err: err}
		}
	}
	logCtx := slog.With("company", record.Company)

	// A leading + would make the sheet treat the phone number as a
	// formula-ish numeric; the apostrophe keeps it textual.
	if strings.HasPrefix(record.Phone, "+") {
		record.Phone = "'" + record.Phone
	}

	photo1Ref, err := b.blobs.Store(ctx, blob.Attachment{Slot: blob.SlotPhoto1, Base64: req.Photo1Base64})
	if err != nil {
		logCtx.Error("Primary photo could not be persisted.", "error", err)
		return "", err
	}

	var photo2Ref string
	if strings.TrimSpace(req.Photo2Base64) != "" {
		photo2Ref, err = b.blobs.Store(ctx, blob.Attachment{Slot: blob.SlotPhoto2, Base64: req.Photo2Base64})
		if err != nil {
			// A save must never be lost because the secondary image
			// failed; the row records a diagnostic instead.
			logCtx.Warn("Secondary photo failed; saving without it.", "error", err)
			photo2Ref = fmt.Sprintf("photo2 upload failed: %v", err)
		}
	}

	validation := sheet.ValidationCell(record.ValidationSource, record.Company, record.Validated())

	row, err := schema.BuildRow(schema.RowInput{
		Record:     record,
		Timestamp:  b.now(),
		Photo1Ref:  photo1Ref,
		Photo2Ref:  photo2Ref,
		Validation: validation,
	}, b.version)
	if err != nil {
		return "", err
	}

	if err := b.store.Append(ctx, row); err != nil {
		logCtx.Error("Row append failed.", "error", err)
		return "", err
	}

	score := ConfidenceScore(record)
	if b.audit != nil {
		entry := AuditEntry{
			Company:       record.Company,
			SchemaVersion: string(b.version),
			Photo1Ref:     photo1Ref,
			Photo2Ref:     photo2Ref,
			Confidence:    score,
			CreatedAt:     b.now(),
		}
		if err := b.audit.RecordSave(ctx, entry); err != nil {
			// The row is already committed; the audit trail is best-effort.
			logCtx.Warn("Audit trail write failed.", "error", err)
		}
	}

	logCtx.Info("Card saved.", "confidenceScore", score)
	if record.Company != "" {
		return fmt.Sprintf("Card for %q saved (confidence %d).", record.Company, score), nil
	}
	return fmt.Sprintf("Card saved (confidence %d).", score), nil
}

// Read loads the full reconciled table: every row, keyed by header,
// formula text preferred over computed values.
func (b *CardBackend) Read(ctx context.Context) ([]sheet.Record, error) {
	return b.store.ReadAll(ctx)
}

// AutoSave runs extract, enrichment and save in one pass for a
// photograph that arrived without a caller, e.g. from the intake
// bucket trigger.
func (b *CardBackend) AutoSave(ctx context.Context, photo []byte) (string, error) {
	raw, err := b.extractor.Extract(ctx, photo)
	if err != nil {
		return "", err
	}
	var record models.CardRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return "", &ocr.UpstreamError{Stage: "extract", Err: fmt.Errorf("extraction result does not match the record shape: %w", err)}
	}
	if b.enricher != nil {
		record = b.enricher.Enrich(ctx, record)
	}
	merged, err := json.Marshal(record)
	if err != nil {
		return "", err
	}
	return b.Save(ctx, &models.BackendRequest{
		Action:        models.ActionSave,
		ExtractedData: merged,
		Photo1Base64:  blob.Encode(photo),
	})
}
