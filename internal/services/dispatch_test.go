package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GhanshyamDewangan/Business-Card-OCR/internal/models"
	"github.com/GhanshyamDewangan/Business-Card-OCR/internal/ocr"
	"github.com/GhanshyamDewangan/Business-Card-OCR/internal/sheet"
)

func TestDispatchUnrecognizedAction(t *testing.T) {
	backend := newTestBackend(&fakeStore{}, defaultBlobs())

	env := backend.Dispatch(context.Background(), &models.BackendRequest{Action: "purge"})
	assert.False(t, env.Success)
	assert.Contains(t, env.Message, "unrecognized action")
}

func TestDispatchMissingAction(t *testing.T) {
	backend := newTestBackend(&fakeStore{}, defaultBlobs())

	env := backend.Dispatch(context.Background(), &models.BackendRequest{})
	assert.False(t, env.Success)
	assert.Contains(t, env.Message, "missing action")
}

func TestDispatchSave(t *testing.T) {
	store := &fakeStore{}
	backend := newTestBackend(store, defaultBlobs())

	env := backend.Dispatch(context.Background(), saveRequest(models.CardRecord{Company: "Acme"}, false))
	assert.True(t, env.Success)
	assert.Contains(t, env.Message, "saved")
	assert.Len(t, store.rows, 1)
}

func TestDispatchRead(t *testing.T) {
	store := &fakeStore{records: []sheet.Record{{"Company": "Acme"}}}
	backend := newTestBackend(store, defaultBlobs())

	env := backend.Dispatch(context.Background(), &models.BackendRequest{Action: models.ActionRead})
	require.True(t, env.Success)
	records, ok := env.Data.([]sheet.Record)
	require.True(t, ok)
	assert.Len(t, records, 1)
}

func TestDispatchExtractPassthrough(t *testing.T) {
	backend := newTestBackend(&fakeStore{}, defaultBlobs())
	raw := json.RawMessage(`{"company":"Acme","slogan":"we never validate this"}`)
	backend.extractor = &fakeExtractor{raw: raw}

	env := backend.Dispatch(context.Background(), &models.BackendRequest{
		Action:       models.ActionExtract,
		Photo1Base64: photo(),
	})
	require.True(t, env.Success)
	assert.Equal(t, raw, env.Data, "extract returns the backend response verbatim")
}

func TestDispatchExtractUpstreamFailure(t *testing.T) {
	backend := newTestBackend(&fakeStore{}, defaultBlobs())
	backend.extractor = &fakeExtractor{err: &ocr.UpstreamError{Stage: "extract", Err: errors.New("quota exceeded")}}

	env := backend.Dispatch(context.Background(), &models.BackendRequest{
		Action:       models.ActionExtract,
		Photo1Base64: photo(),
	})
	assert.False(t, env.Success)
	assert.Contains(t, env.Message, "recognition backend")
}

func TestDispatchExtractMissingImage(t *testing.T) {
	backend := newTestBackend(&fakeStore{}, defaultBlobs())
	backend.extractor = &fakeExtractor{raw: json.RawMessage(`{}`)}

	env := backend.Dispatch(context.Background(), &models.BackendRequest{Action: models.ActionExtract})
	assert.False(t, env.Success)
	assert.Contains(t, env.Message, "photo1Base64")
}

func TestDispatchNeverPanicsOnStoreFailure(t *testing.T) {
	store := &fakeStore{readErr: &sheet.StoreAccessError{Store: "sheet-id", Err: errors.New("403")}}
	backend := newTestBackend(store, defaultBlobs())

	env := backend.Dispatch(context.Background(), &models.BackendRequest{Action: models.ActionRead})
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Message)
}
