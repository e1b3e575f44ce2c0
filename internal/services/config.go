package services

import (
	"fmt"

	"github.com/GhanshyamDewangan/Business-Card-OCR/internal/gcp"
	"github.com/GhanshyamDewangan/Business-Card-OCR/internal/schema"
)

// Store backend selectors.
const (
	StoreBackendSheets = "sheets"
	StoreBackendXLSX   = "xlsx"
)

// BackendConfig holds all configuration for the card backend.
type BackendConfig struct {
	ProjectID       string
	VertexAIRegion  string
	SchemaVersion   schema.Version
	AuditCollection string

	// Tabular store selection. "sheets" persists to a Google
	// spreadsheet; "xlsx" keeps a local workbook, used for development.
	StoreBackend  string
	SpreadsheetID string
	SheetRange    string
	WorkbookPath  string
	WorkbookSheet string

	// Blob persistence follows the store choice: a GCS bucket for
	// sheets, a local directory for xlsx.
	PhotosBucket string
	PhotosDir    string
}

// loadConfig loads and validates all necessary environment variables for this service.
func loadConfig() (*BackendConfig, error) {
	projectID := gcp.GetEnv("PROJECT_ID", "")
	if projectID == "" {
		return nil, fmt.Errorf("PROJECT_ID environment variable must be set")
	}

	version, err := schema.ParseVersion(gcp.GetEnv("SCHEMA_VERSION", ""))
	if err != nil {
		return nil, err
	}

	config := &BackendConfig{
		ProjectID:       projectID,
		VertexAIRegion:  gcp.GetEnv("VERTEX_AI_REGION", "us-central1"),
		SchemaVersion:   version,
		AuditCollection: gcp.GetEnv("FIRESTORE_COLLECTION", "card_saves"),
		StoreBackend:    gcp.GetEnv("CARD_STORE_BACKEND", StoreBackendSheets),
		SpreadsheetID:   gcp.GetEnv("SPREADSHEET_ID", ""),
		SheetRange:      gcp.GetEnv("SHEET_RANGE", "Cards!A:V"),
		WorkbookPath:    gcp.GetEnv("CARD_WORKBOOK_PATH", "cards.xlsx"),
		WorkbookSheet:   gcp.GetEnv("CARD_WORKBOOK_SHEET", "Cards"),
		PhotosBucket:    gcp.GetEnv("CARD_PHOTOS_BUCKET", ""),
		PhotosDir:       gcp.GetEnv("CARD_PHOTOS_DIR", "photos"),
	}

	switch config.StoreBackend {
	case StoreBackendSheets:
		if config.SpreadsheetID == "" {
			return nil, fmt.Errorf("SPREADSHEET_ID environment variable must be set")
		}
		if config.PhotosBucket == "" {
			return nil, fmt.Errorf("CARD_PHOTOS_BUCKET environment variable must be set")
		}
	case StoreBackendXLSX:
		// Local paths have usable defaults.
	default:
		return nil, fmt.Errorf("CARD_STORE_BACKEND must be %q or %q, got %q",
			StoreBackendSheets, StoreBackendXLSX, config.StoreBackend)
	}

	return config, nil
}
