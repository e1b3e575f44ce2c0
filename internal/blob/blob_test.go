package blob

import (
	"context"
	"encoding/base64"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePlain(t *testing.T) {
	data, err := Decode(base64.StdEncoding.EncodeToString([]byte("card bytes")))
	require.NoError(t, err)
	assert.Equal(t, []byte("card bytes"), data)
}

func TestDecodeDataURI(t *testing.T) {
	payload := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte("card bytes"))
	data, err := Decode(payload)
	require.NoError(t, err)
	assert.Equal(t, []byte("card bytes"), data)
}

func TestDecodeInvalid(t *testing.T) {
	_, err := Decode("not-base64!!!")
	assert.Error(t, err)
}

func TestDirPersisterStore(t *testing.T) {
	p, err := NewDirPersister(t.TempDir())
	require.NoError(t, err)

	ref, err := p.Store(context.Background(), Attachment{
		Slot:   SlotPhoto1,
		Base64: base64.StdEncoding.EncodeToString([]byte("front of card")),
	})
	require.NoError(t, err)

	data, err := os.ReadFile(ref)
	require.NoError(t, err)
	assert.Equal(t, []byte("front of card"), data)
}

func TestDirPersisterInvalidPayload(t *testing.T) {
	p, err := NewDirPersister(t.TempDir())
	require.NoError(t, err)

	_, err = p.Store(context.Background(), Attachment{Slot: SlotPhoto1, Base64: "not-base64!!!"})
	var attErr *AttachmentError
	require.ErrorAs(t, err, &attErr)
	assert.Equal(t, SlotPhoto1, attErr.Slot)
	assert.Equal(t, "decode", attErr.Op)
}

func TestDirPersisterDistinctReferences(t *testing.T) {
	p, err := NewDirPersister(t.TempDir())
	require.NoError(t, err)
	payload := base64.StdEncoding.EncodeToString([]byte("same bytes"))

	first, err := p.Store(context.Background(), Attachment{Slot: SlotPhoto1, Base64: payload})
	require.NoError(t, err)
	second, err := p.Store(context.Background(), Attachment{Slot: SlotPhoto1, Base64: payload})
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
