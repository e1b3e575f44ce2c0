// Package blob persists raw card photographs and hands back stable,
// dereferenceable references for the spreadsheet row to record.
package blob

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Photograph slot ids. photo1 is mandatory for a save; photo2 is
// optional and its failures are absorbed by the pipeline.
const (
	SlotPhoto1 = "photo1"
	SlotPhoto2 = "photo2"
)

// Attachment is one base64-encoded card photograph bound to a slot.
type Attachment struct {
	Slot   string
	Base64 string
}

// AttachmentError reports a decode or store failure for one attachment.
type AttachmentError struct {
	Slot string
	Op   string // "decode" or "store"
	Err  error
}

func (e *AttachmentError) Error() string {
	return fmt.Sprintf("attachment %s: %s failed: %v", e.Slot, e.Op, e.Err)
}

func (e *AttachmentError) Unwrap() error { return e.Err }

// Persister stores raw image bytes and returns a stable reference
// (URL or identifier). References are immutable once created.
type Persister interface {
	Store(ctx context.Context, att Attachment) (string, error)
}

// Decode strips an optional data-URI prefix ("data:image/jpeg;base64,")
// and decodes the payload. Mobile clients send both shapes.
func Decode(b64 string) ([]byte, error) {
	if i := strings.IndexByte(b64, ','); i >= 0 {
		b64 = b64[i+1:]
	}
	return base64.StdEncoding.DecodeString(strings.TrimSpace(b64))
}

// Encode is the inverse of Decode for payloads the backend produced
// itself, e.g. when re-submitting an intake photo through the save path.
func Encode(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// objectName derives a collision-resistant object name from the slot id,
// a UTC timestamp and a random suffix. User-supplied names are never
// used.
func objectName(slot string) string {
	return fmt.Sprintf("%s_%s_%s.jpg",
		slot,
		time.Now().UTC().Format("20060102T150405"),
		strings.Split(uuid.NewString(), "-")[0])
}
