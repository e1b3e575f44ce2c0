package models

import "encoding/json"

// Request actions accepted at the backend boundary.
const (
	ActionExtract = "extract"
	ActionSave    = "save"
	ActionRead    = "read"
)

// BackendRequest is the JSON payload posted to the card backend. The
// field names mirror the spreadsheet endpoint the mobile client already
// talks to.
type BackendRequest struct {
	Action        string          `json:"action"`
	ExtractedData json.RawMessage `json:"extractedData,omitempty"`
	Photo1Base64  string          `json:"photo1Base64,omitempty"`
	Photo2Base64  string          `json:"photo2Base64,omitempty"`
}

// Envelope is the uniform response shape for every action. Pipeline
// errors are reported inside it, never as transport-level failures.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}
