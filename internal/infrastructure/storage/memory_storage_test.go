package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryObjectStorage(t *testing.T) {
	s := NewMemoryObjectStorage()
	ctx := context.Background()

	data := []byte("license")
	require.NoError(t, s.Upload(ctx, "licenses/u1/a.png", data, "image/png"))
	data[0] = 'X'

	obj, ok := s.Get("licenses/u1/a.png")
	require.True(t, ok)
	assert.Equal(t, "license", string(obj.Data))
	assert.Equal(t, "image/png", obj.ContentType)

	url, expiresAt, err := s.GenerateDownloadURL(ctx, "licenses/u1/a.png", time.Minute)
	require.NoError(t, err)
	assert.Contains(t, url, "/_storage/licenses/u1/a.png")
	assert.True(t, expiresAt.After(time.Now()))

	require.NoError(t, s.DeleteObject(ctx, "licenses/u1/a.png"))
	_, ok = s.Get("licenses/u1/a.png")
	assert.False(t, ok)

	assert.ErrorIs(t, s.Upload(ctx, "", nil, ""), errKeyRequired)
	_, _, err = s.GenerateDownloadURL(ctx, "", time.Minute)
	assert.ErrorIs(t, err, errKeyRequired)
}
