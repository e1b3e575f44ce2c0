package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/GhanshyamDewangan/Business-Card-OCR/internal/models"
)

// MalformedRequestError reports a request that cannot be dispatched:
// missing payload pieces or an action this backend does not know.
type MalformedRequestError struct {
	Reason string
	Err    error
}

func (e *MalformedRequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed request: %s: %v", e.Reason, e.Err)
	}
	return "malformed request: " + e.Reason
}

func (e *MalformedRequestError) Unwrap() error { return e.Err }

// Dispatch routes one decoded request to its operation and always
// returns a well-formed envelope; pipeline errors are reported inside
// it, never raised past the boundary.
func (b *CardBackend) Dispatch(ctx context.Context, req *models.BackendRequest) models.Envelope {
	switch req.Action {
	case models.ActionExtract:
		data, err := b.Extract(ctx, req)
		if err != nil {
			return failure(req.Action, err)
		}
		return models.Envelope{Success: true, Data: data}

	case models.ActionSave:
		message, err := b.Save(ctx, req)
		if err != nil {
			return failure(req.Action, err)
		}
		return models.Envelope{Success: true, Message: message}

	case models.ActionRead:
		records, err := b.Read(ctx)
		if err != nil {
			return failure(req.Action, err)
		}
		return models.Envelope{Success: true, Data: records}

	case "":
		return failure(req.Action, &MalformedRequestError{Reason: "missing action"})

	default:
		return failure(req.Action, &MalformedRequestError{Reason: fmt.Sprintf("unrecognized action %q", req.Action)})
	}
}

func failure(action string, err error) models.Envelope {
	slog.Error("Request failed.", "action", action, "error", err)
	return models.Envelope{Success: false, Message: err.Error()}
}
