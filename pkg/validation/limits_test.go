//go:build !integration

package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLimits(t *testing.T) {
	limits := DefaultLimits()
	assert.Equal(t, 3, limits.MinNodes)
	assert.Equal(t, 50, limits.NodesWarn)
	assert.Equal(t, 150, limits.NodesFail)
	assert.Equal(t, 100*1024, limits.SizeWarnBytes)
	assert.Equal(t, 500*1024, limits.SizeFailBytes)
	assert.Equal(t, 100, limits.EdgesWarn)
	assert.Equal(t, 4, limits.Workers)
	assert.Equal(t, 1, limits.ParallelThreshold)
	assert.Empty(t, limits.Scripts)
}

func TestLoadLimitsWithoutFile(t *testing.T) {
	t.Setenv("FLOWLINT_WORKERS", "")

	limits, err := LoadLimits("")
	require.NoError(t, err)
	assert.Equal(t, DefaultLimits(), limits)
}

func TestLoadLimitsMissingFile(t *testing.T) {
	_, err := LoadLimits(filepath.Join(t.TempDir(), "absent.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "limits file not found")
}

func TestLoadLimitsOverlay(t *testing.T) {
	t.Setenv("FLOWLINT_WORKERS", "")
	path := filepath.Join(t.TempDir(), ".flowlint.yml")
	require.NoError(t, os.WriteFile(path, []byte("nodes_warn: 10\nscripts:\n  - deploy.sh\n"), 0o644))

	limits, err := LoadLimits(path)
	require.NoError(t, err)
	assert.Equal(t, 10, limits.NodesWarn, "file value should override the default")
	assert.Equal(t, 150, limits.NodesFail, "unset fields should keep defaults")
	assert.Equal(t, []string{"deploy.sh"}, limits.Scripts)
}

func TestLoadLimitsWorkersEnvOverride(t *testing.T) {
	t.Setenv("FLOWLINT_WORKERS", "2")
	limits, err := LoadLimits("")
	require.NoError(t, err)
	assert.Equal(t, 2, limits.Workers)

	t.Setenv("FLOWLINT_WORKERS", "200")
	limits, err = LoadLimits("")
	require.NoError(t, err)
	assert.Equal(t, 64, limits.Workers, "env override should clamp to the maximum")

	t.Setenv("FLOWLINT_WORKERS", "not-a-number")
	limits, err = LoadLimits("")
	require.NoError(t, err)
	assert.Equal(t, 4, limits.Workers, "unparseable env value should keep the default")
}

func TestLoadLimitsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".flowlint.yml")
	require.NoError(t, os.WriteFile(path, []byte("nodes_warn: [\n"), 0o644))

	_, err := LoadLimits(path)
	require.Error(t, err)
}
