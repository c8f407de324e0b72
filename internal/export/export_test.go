package export

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/weiawesome/uidgen/internal/kind"
	"github.com/weiawesome/uidgen/pkg/storage"
)

var sample = []string{"01HZX3", "01HZX4", "01HZX5"}

func TestRenderText(t *testing.T) {
	out, err := Render(FormatRaw, sample)
	require.NoError(t, err)
	assert.Equal(t, "01HZX3\n01HZX4\n01HZX5", string(out))

	out, err = Render(FormatJSON, sample)
	require.NoError(t, err)
	assert.Equal(t, "[\n  \"01HZX3\",\n  \"01HZX4\",\n  \"01HZX5\"\n]", string(out))

	out, err = Render(FormatJSON, nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(out))

	out, err = Render(FormatYAML, sample)
	require.NoError(t, err)
	assert.Equal(t, "- 01HZX3\n- 01HZX4\n- 01HZX5\n", string(out))
}

func TestRenderDecodable(t *testing.T) {
	out, err := Render(FormatYAML, sample)
	require.NoError(t, err)
	var fromYAML []string
	require.NoError(t, yaml.Unmarshal(out, &fromYAML))
	assert.Equal(t, sample, fromYAML)

	out, err = Render(FormatTOML, sample)
	require.NoError(t, err)
	var doc tomlDoc
	_, err = toml.Decode(string(out), &doc)
	require.NoError(t, err)
	assert.Equal(t, sample, doc.IDs)

	out, err = Render(FormatMsgpack, sample)
	require.NoError(t, err)
	var fromMsgpack []string
	require.NoError(t, msgpack.Unmarshal(out, &fromMsgpack))
	assert.Equal(t, sample, fromMsgpack)
}

func TestRenderUnknown(t *testing.T) {
	_, err := Render(Format("csv"), sample)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatRaw, f)

	f, err = ParseFormat(" JSON ")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("xml")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	assert.Len(t, FormatNames(), 5)
	assert.True(t, FormatMsgpack.Binary())
	assert.False(t, FormatYAML.Binary())
}

func TestSuggestFileName(t *testing.T) {
	now := time.Date(2024, 3, 9, 7, 5, 2, 0, time.UTC)
	assert.Equal(t, "uuidv4-export-20240309070502.txt", SuggestFileName(kind.UUIDv4, FormatRaw, now))
	assert.Equal(t, "ulid-export-20240309070502.json", SuggestFileName(kind.ULID, FormatJSON, now))
	assert.Equal(t, "nanoid-export-20240309070502.txt", SuggestFileName(kind.NanoID, "", now))
}

func newLocalExporter(t *testing.T) (*Exporter, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewLocalStorage(storage.LocalConfig{BasePath: dir})
	require.NoError(t, err)
	e := NewExporter(store)
	e.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	return e, dir
}

func TestExport(t *testing.T) {
	ctx := context.Background()
	e, dir := newLocalExporter(t)

	r, err := e.Export(ctx, kind.ULID, FormatJSON, sample, "")
	require.NoError(t, err)
	assert.Equal(t, "ulid-export-20240102030405.json", r.Key)
	assert.Equal(t, 3, r.Count)
	assert.False(t, r.Skipped)
	assert.Equal(t, filepath.Join(dir, r.Key), r.Location)

	data, err := os.ReadFile(filepath.Join(dir, r.Key))
	require.NoError(t, err)
	assert.Equal(t, "[\n  \"01HZX3\",\n  \"01HZX4\",\n  \"01HZX5\"\n]", string(data))
	assert.Equal(t, len(data), r.Bytes)

	r, err = e.Export(ctx, kind.ULID, FormatRaw, sample, "mine.txt")
	require.NoError(t, err)
	assert.Equal(t, "mine.txt", r.Key)

	files, err := e.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, files, 2)

	rc, err := e.Open(ctx, "mine.txt")
	require.NoError(t, err)
	defer rc.Close()
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "01HZX3\n01HZX4\n01HZX5", string(body))
}

func TestExportEmpty(t *testing.T) {
	e, dir := newLocalExporter(t)

	r, err := e.Export(context.Background(), kind.UUIDv3, FormatRaw, nil, "")
	require.NoError(t, err)
	assert.True(t, r.Skipped)
	assert.Zero(t, r.Count)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

type failingStore struct{ storage.Storage }

func (failingStore) Write(context.Context, string, io.Reader, int64, string) error {
	return errors.New("disk full")
}

func TestExportWriteFailure(t *testing.T) {
	e := NewExporter(failingStore{})

	_, err := e.Export(context.Background(), kind.ULID, FormatRaw, sample, "x.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	assert.ErrorIs(t, e.Save(context.Background(), []byte("x"), "", ""), ErrEmptyFileName)

	_, err = e.Export(context.Background(), kind.ULID, Format("csv"), sample, "x.csv")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestIsExportKey(t *testing.T) {
	tests := map[string]bool{
		"ulid-export-20240102030405.json": true,
		"mine.txt":                        true,
		"ids.msgpack":                     true,
		"":                                false,
		".env":                            false,
		".hidden.txt":                     false,
		"notes.md":                        false,
		"noext":                           false,
		"nested/ids.txt":                  false,
		`nested\ids.txt`:                  false,
		"../ids.txt":                      false,
	}
	for key, want := range tests {
		assert.Equal(t, want, IsExportKey(key), key)
	}

	f, ok := FormatForExt("txt")
	assert.True(t, ok)
	assert.Equal(t, FormatRaw, f)
	_, ok = FormatForExt("md")
	assert.False(t, ok)
}

func TestListAndOpenSkipForeignFiles(t *testing.T) {
	ctx := context.Background()
	e, dir := newLocalExporter(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SECRET=1"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module x"), 0o600))
	_, err := e.Export(ctx, kind.ULID, FormatRaw, sample, "")
	require.NoError(t, err)

	files, err := e.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "ulid-export-20240102030405.txt", files[0].Key)

	for _, key := range []string{".env", "go.mod"} {
		_, err := e.Open(ctx, key)
		assert.ErrorIs(t, err, storage.ErrNotFound, key)
	}
}
