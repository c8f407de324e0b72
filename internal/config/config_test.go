package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weiawesome/uidgen/internal/dispatch"
	"github.com/weiawesome/uidgen/internal/generator"
	"github.com/weiawesome/uidgen/internal/links"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("UIDGEN_CONFIG_DIR", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8090, cfg.Server.Port)
	assert.Equal(t, 50053, cfg.GRPC.Port)
	assert.Equal(t, dispatch.DefaultMaxCount, cfg.Generate.MaxCount)
	assert.False(t, cfg.Generate.StrictNamespace)
	assert.Equal(t, "local", cfg.Export.Driver)
	assert.Equal(t, DefaultExportDir, cfg.Export.Local.BasePath)
	assert.Equal(t, links.DefaultGitHubURL, cfg.Links.GitHub)
	assert.Equal(t, generator.DefaultUPIDPrefix, cfg.UPID.DefaultPrefix)

	gen := cfg.Generator()
	def := generator.DefaultConfig()
	assert.Equal(t, def.SnowflakeEpoch, gen.SnowflakeEpoch)
	assert.Equal(t, def.NanoIDAlphabet, gen.NanoIDAlphabet)
	assert.Equal(t, def.FlexIDTick, gen.FlexIDTick)
	assert.True(t, def.FlexIDEpoch.Equal(gen.FlexIDEpoch))
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "uidgen.yaml")
	body := `
generate:
  max_count: 50
  strict_namespace: true
sonyflake:
  machine_id: 7
  start_time: "2023-06-01T00:00:00Z"
flexid:
  tick: 5ms
export:
  driver: s3
  s3:
    bucket: ids
    use_path_style: true
links:
  github: https://example.com/repo
`
	require.NoError(t, os.WriteFile(file, []byte(body), 0o644))
	t.Setenv("UIDGEN_GRPC_PORT", "7000")

	cfg, err := LoadFile(file)
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.Generate.MaxCount)
	assert.True(t, cfg.Generate.StrictNamespace)
	assert.EqualValues(t, 7, cfg.Sonyflake.MachineID)
	assert.Equal(t, time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), cfg.Sonyflake.StartTime.UTC())
	assert.Equal(t, 5*time.Millisecond, cfg.FlexID.Tick)
	assert.Equal(t, "s3", cfg.Export.Driver)
	assert.Equal(t, "ids", cfg.Export.S3.Bucket)
	assert.True(t, cfg.Export.S3.UsePathStyle)
	assert.Equal(t, "https://example.com/repo", cfg.Links.GitHub)
	assert.Equal(t, links.DefaultRFC9562URL, cfg.Links.RFC9562)
	assert.Equal(t, 7000, cfg.GRPC.Port)
}

func TestLoadFileBadDriver(t *testing.T) {
	file := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(file, []byte("export:\n  driver: ftp\n"), 0o644))

	_, err := LoadFile(file)
	assert.Error(t, err)
}
