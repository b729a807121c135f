package datadir

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PINGDUMP_DATA_DIR", dir)

	got, err := Find("")
	require.NoError(t, err)
	assert.Equal(t, dir, got)
}

func TestFindFromEnvMissingDir(t *testing.T) {
	t.Setenv("PINGDUMP_DATA_DIR", filepath.Join(t.TempDir(), "gone"))

	_, err := Find("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data directory not found")
}

func TestFindNextToConfig(t *testing.T) {
	base := t.TempDir()
	cfg := filepath.Join(base, "stabping_config.json")
	require.NoError(t, os.WriteFile(cfg, []byte("{}"), 0o644))
	want := filepath.Join(base, DirName)
	require.NoError(t, os.Mkdir(want, 0o755))

	got, err := Find(cfg)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFindConfigDataDirKey(t *testing.T) {
	base := t.TempDir()
	override := filepath.Join(base, "elsewhere")
	require.NoError(t, os.Mkdir(override, 0o755))

	cfg := filepath.Join(base, "stabping_config.json")
	require.NoError(t, os.WriteFile(cfg, []byte(`{"data_dir": "`+override+`"}`), 0o644))

	got, err := Find(cfg)
	require.NoError(t, err)
	assert.Equal(t, override, got)
}

func TestFindConfigMissing(t *testing.T) {
	_, err := Find(filepath.Join(t.TempDir(), "no_config.json"))
	assert.Error(t, err)
}

func TestFindNextToConfigMissingDir(t *testing.T) {
	base := t.TempDir()
	cfg := filepath.Join(base, "stabping_config.json")
	require.NoError(t, os.WriteFile(cfg, []byte("{}"), 0o644))

	_, err := Find(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data directory not found")
}

func TestVerify(t *testing.T) {
	dir := t.TempDir()
	got, err := Verify(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, got)

	_, err = Verify(filepath.Join(dir, "gone"))
	assert.Error(t, err)

	// A plain file is not a data directory.
	file := filepath.Join(dir, "f")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	_, err = Verify(file)
	assert.Error(t, err)
}

func TestPaths(t *testing.T) {
	assert.Equal(t, filepath.Join("d", "tcpping.data.dat"), DataPath("d"))
	assert.Equal(t, filepath.Join("d", "tcpping.index.json"), IndexPath("d"))
}
