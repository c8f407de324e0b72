package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(LocalConfig{BasePath: t.TempDir()})
	require.NoError(t, err)

	content := "a\nb\nc"
	require.NoError(t, s.Write(ctx, "ulid-export-20240101000000.txt", strings.NewReader(content), int64(len(content)), "text/plain"))
	require.NoError(t, s.Write(ctx, "nested/uuidv4-export.json", strings.NewReader("[]"), 2, "application/json"))

	rc, err := s.Read(ctx, "ulid-export-20240101000000.txt")
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, content, string(got))

	files, err := s.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "nested/uuidv4-export.json", files[0].Key)
	assert.Equal(t, "ulid-export-20240101000000.txt", files[1].Key)
	assert.EqualValues(t, len(content), files[1].Size)

	files, err = s.List(ctx, "ulid")
	require.NoError(t, err)
	assert.Len(t, files, 1)

	url, err := s.GetURL(ctx, "nested/uuidv4-export.json", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(s.GetBasePath(), "nested", "uuidv4-export.json"), url)
}

func TestLocalStorageOverwrite(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(LocalConfig{BasePath: t.TempDir()})
	require.NoError(t, err)

	require.NoError(t, s.Write(ctx, "a.txt", strings.NewReader("one"), -1, ""))
	require.NoError(t, s.Write(ctx, "a.txt", strings.NewReader("two"), -1, ""))

	data, err := os.ReadFile(filepath.Join(s.GetBasePath(), "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))
}

func TestLocalStorageErrors(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(LocalConfig{BasePath: t.TempDir()})
	require.NoError(t, err)

	_, err = s.Read(ctx, "missing.txt")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.GetURL(ctx, "missing.txt", time.Minute)
	assert.ErrorIs(t, err, ErrNotFound)

	for _, key := range []string{"", "..", "../escape.txt"} {
		assert.Error(t, s.Write(ctx, key, strings.NewReader("x"), 1, ""), key)
	}
}

func TestNewS3StorageRequiresBucket(t *testing.T) {
	_, err := NewS3Storage(context.Background(), S3Config{})
	assert.Error(t, err)
}

func TestS3ObjectKey(t *testing.T) {
	s, err := NewS3Storage(context.Background(), S3Config{
		Bucket:          "ids",
		Prefix:          "/exports/",
		Endpoint:        "http://127.0.0.1:9000",
		AccessKeyID:     "minio",
		SecretAccessKey: "minio123",
		UsePathStyle:    true,
		PublicURL:       "https://cdn.example.com/",
	})
	require.NoError(t, err)

	assert.Equal(t, "exports/a.txt", s.objectKey("a.txt"))
	assert.Equal(t, "ids", s.GetBucket())

	url, err := s.GetURL(context.Background(), "a.txt", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/exports/a.txt", url)
}

func TestLocalStorageReadDirectory(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(LocalConfig{BasePath: t.TempDir()})
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(s.GetBasePath(), "dir.txt"), 0o755))

	_, err = s.Read(ctx, "dir.txt")
	assert.ErrorIs(t, err, ErrNotFound)
}
