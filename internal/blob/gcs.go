package blob

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"cloud.google.com/go/storage"
)

// GCSPersister writes attachments into one GCS bucket and returns
// public object URLs as references.
type GCSPersister struct {
	client *storage.Client
	bucket string
	prefix string
}

// NewGCSPersister returns a persister writing under bucket/prefix.
func NewGCSPersister(client *storage.Client, bucket, prefix string) *GCSPersister {
	return &GCSPersister{client: client, bucket: bucket, prefix: prefix}
}

// Store decodes the payload and uploads it. The DoesNotExist condition
// makes a retried write of the same generated name a no-op instead of
// an overwrite.
func (p *GCSPersister) Store(ctx context.Context, att Attachment) (string, error) {
	data, err := Decode(att.Base64)
	if err != nil {
		return "", &AttachmentError{Slot: att.Slot, Op: "decode", Err: err}
	}

	name := objectName(att.Slot)
	if p.prefix != "" {
		name = p.prefix + "/" + name
	}

	writer := p.client.Bucket(p.bucket).Object(name).
		If(storage.Conditions{DoesNotExist: true}).NewWriter(ctx)
	writer.ContentType = "image/jpeg"

	if _, err := io.Copy(writer, bytes.NewReader(data)); err != nil {
		_ = writer.Close()
		slog.Error("Failed to copy attachment to GCS.", "slot", att.Slot, "object", name, "error", err)
		return "", &AttachmentError{Slot: att.Slot, Op: "store", Err: err}
	}
	if err := writer.Close(); err != nil {
		slog.Error("Failed to finalize GCS write.", "slot", att.Slot, "object", name, "error", err)
		return "", &AttachmentError{Slot: att.Slot, Op: "store", Err: err}
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", p.bucket, name), nil
}
