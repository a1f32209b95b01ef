package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()
	owner := uuid.New()

	key, err := store.Upload(ctx, owner, "Launch plan.txt", strings.NewReader("Hello\n\nWorld"))
	require.NoError(t, err)
	assert.True(t, OwnedBy(key, owner))
	assert.False(t, OwnedBy(key, uuid.New()))
	assert.True(t, strings.HasSuffix(key, "/Launch-plan.txt"))

	rc, err := store.Download(ctx, key)
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "Hello\n\nWorld", string(body))

	require.NoError(t, store.Delete(ctx, key))
	_, err = store.Download(ctx, key)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStorageRejectsTraversal(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = store.Download(context.Background(), "../secrets.txt")
	assert.ErrorIs(t, err, ErrInvalidKey)

	_, err = store.Download(context.Background(), "exports/a/../../x")
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "text/plain; charset=utf-8", ContentType("a.TXT"))
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", ContentType("a.docx"))
	assert.Equal(t, "application/octet-stream", ContentType("a"))
}
