package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalBucket_RoundTrip(t *testing.T) {
	ctx := context.Background()
	b, err := NewLocalBucket(t.TempDir(), "team-documents", "http://files.test/")
	require.NoError(t, err)

	require.NoError(t, b.Upload(ctx, "doc.ppt", strings.NewReader("v1"), false))

	err = b.Upload(ctx, "doc.ppt", strings.NewReader("v2"), false)
	assert.ErrorIs(t, err, ErrObjectExists)

	require.NoError(t, b.Upload(ctx, "doc.ppt", strings.NewReader("v2"), true))

	rc, err := b.Download(ctx, "doc.ppt")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "v2", string(data))

	assert.Equal(t, "http://files.test/files/team-documents/doc.ppt", b.PublicURL("doc.ppt"))

	require.NoError(t, b.Delete(ctx, "doc.ppt"))
	require.NoError(t, b.Delete(ctx, "doc.ppt"))

	_, err = b.Download(ctx, "doc.ppt")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestLocalBucket_RejectsPathKeys(t *testing.T) {
	ctx := context.Background()
	b, err := NewLocalBucket(t.TempDir(), "resources", "")
	require.NoError(t, err)

	for _, key := range []string{"", "..", "a/b", "../escape"} {
		assert.ErrorIs(t, b.Upload(ctx, key, strings.NewReader("x"), true), ErrInvalidKey, key)
	}
}
