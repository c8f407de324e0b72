package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFile(t *testing.T) {
	v, err := Load(t.TempDir(), "absent")
	require.NoError(t, err)
	assert.NotNil(t, v)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "uidgen.yaml")
	require.NoError(t, os.WriteFile(file, []byte("grpc:\n  port: 6000\nlog:\n  level: debug\n"), 0o644))

	t.Setenv("UIDGEN_LOG_LEVEL", "warn")

	v, err := LoadFile(file)
	require.NoError(t, err)
	assert.Equal(t, 6000, v.GetInt("grpc.port"))
	assert.Equal(t, "warn", v.GetString("log.level"))

	v, err = Load(dir, "uidgen")
	require.NoError(t, err)
	assert.Equal(t, 6000, v.GetInt("grpc.port"))
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestGetEnv(t *testing.T) {
	t.Setenv("UIDGEN_TEST_VALUE", "x")
	assert.Equal(t, "x", GetEnv("UIDGEN_TEST_VALUE", "y"))
	assert.Equal(t, "y", GetEnv("UIDGEN_TEST_UNSET", "y"))
}
