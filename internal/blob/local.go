package blob

import (
	"context"
	"os"
	"path/filepath"
)

// DirPersister writes attachments into a local directory. It backs the
// xlsx store deployment mode and the pipeline tests.
type DirPersister struct {
	dir string
}

// NewDirPersister returns a persister rooted at dir, creating it if
// needed.
func NewDirPersister(dir string) (*DirPersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DirPersister{dir: dir}, nil
}

// Store decodes the payload and writes it as a new file, returning the
// absolute path as the reference.
func (p *DirPersister) Store(ctx context.Context, att Attachment) (string, error) {
	data, err := Decode(att.Base64)
	if err != nil {
		return "", &AttachmentError{Slot: att.Slot, Op: "decode", Err: err}
	}

	path := filepath.Join(p.dir, objectName(att.Slot))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", &AttachmentError{Slot: att.Slot, Op: "store", Err: err}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return path, nil
	}
	return abs, nil
}
