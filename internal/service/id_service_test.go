package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weiawesome/uidgen/internal/dispatch"
	"github.com/weiawesome/uidgen/internal/export"
	"github.com/weiawesome/uidgen/internal/generator"
	"github.com/weiawesome/uidgen/internal/kind"
	"github.com/weiawesome/uidgen/internal/links"
	"github.com/weiawesome/uidgen/pkg/storage"
)

func newService(t *testing.T) (IDService, string) {
	t.Helper()

	reg, err := generator.Build(generator.DefaultConfig())
	require.NoError(t, err)

	dir := t.TempDir()
	store, err := storage.NewLocalStorage(storage.LocalConfig{BasePath: dir})
	require.NoError(t, err)

	svc := NewIDService(reg, dispatch.New(reg, dispatch.WithMaxCount(50)), export.NewExporter(store), links.New(links.Config{}))
	return svc, dir
}

func TestGenerate(t *testing.T) {
	svc, _ := newService(t)

	res, err := svc.Generate(context.Background(), dispatch.Request{Kind: kind.UUIDv7, Count: 5})
	require.NoError(t, err)
	assert.Len(t, res.IDs, 5)

	_, err = svc.Generate(context.Background(), dispatch.Request{Kind: kind.UUIDv7, Count: 51})
	assert.ErrorIs(t, err, dispatch.ErrCountTooLarge)
	assert.Equal(t, 50, svc.MaxCount())
}

func TestValidateAndParse(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	res, err := svc.Generate(ctx, dispatch.Request{Kind: kind.Snowflake, Count: 1})
	require.NoError(t, err)
	id := res.IDs[0]

	v, err := svc.Validate(ctx, kind.Snowflake, id)
	require.NoError(t, err)
	assert.True(t, v.Valid)

	parsed, err := svc.Parse(ctx, kind.Snowflake, id)
	require.NoError(t, err)
	assert.EqualValues(t, 1, parsed.MachineID)

	v, err = svc.Validate(ctx, kind.ULID, "not-a-ulid")
	require.NoError(t, err)
	assert.False(t, v.Valid)
	assert.NotEmpty(t, v.Reason)

	_, err = svc.Parse(ctx, kind.ULID, "not-a-ulid")
	assert.ErrorIs(t, err, ErrInvalidID)

	_, err = svc.Validate(ctx, kind.UPID, "zzzz_abc")
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = svc.Parse(ctx, kind.Kind("guid"), "x")
	assert.ErrorIs(t, err, kind.ErrUnknown)
}

func TestCatalogues(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	assert.Len(t, svc.Kinds(ctx), len(kind.All()))
	assert.Len(t, svc.Namespaces(ctx), 4)
	assert.Len(t, svc.Links(ctx), 2)
}

func TestExport(t *testing.T) {
	svc, dir := newService(t)
	ctx := context.Background()

	r, err := svc.Export(ctx, ExportRequest{
		Generate: dispatch.Request{Kind: kind.NilUUID, Count: 2},
		Format:   export.FormatRaw,
		FileName: "nil.txt",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, r.Count)

	data, err := os.ReadFile(filepath.Join(dir, "nil.txt"))
	require.NoError(t, err)
	assert.Equal(t, kind.NilLiteral+"\n"+kind.NilLiteral, string(data))

	r, err = svc.Export(ctx, ExportRequest{
		Generate: dispatch.Request{Kind: kind.ULID},
		Format:   export.FormatJSON,
		IDs:      []string{"a", "b", "c"},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, r.Count)

	files, err := svc.ListExports(ctx, "")
	require.NoError(t, err)
	assert.Len(t, files, 2)

	r, err = svc.Export(ctx, ExportRequest{Generate: dispatch.Request{Kind: kind.UUIDv3, Name: "x", Count: 3}})
	require.NoError(t, err)
	assert.True(t, r.Skipped)

	_, err = svc.Export(ctx, ExportRequest{Generate: dispatch.Request{Kind: "bogus"}, IDs: []string{"a"}})
	assert.ErrorIs(t, err, kind.ErrUnknown)
}

func TestExportWithoutStorage(t *testing.T) {
	reg, err := generator.Build(generator.DefaultConfig())
	require.NoError(t, err)
	svc := NewIDService(reg, dispatch.New(reg), nil, links.New(links.Config{}))

	_, err = svc.Export(context.Background(), ExportRequest{Generate: dispatch.Request{Kind: kind.ULID, Count: 1}})
	assert.ErrorIs(t, err, ErrNoExporter)
}
