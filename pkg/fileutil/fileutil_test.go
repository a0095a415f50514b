//go:build !integration

package fileutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePath(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)

	tests := []struct {
		name     string
		path     string
		expected string
		wantErr  bool
	}{
		{
			name:    "empty path rejected",
			path:    "",
			wantErr: true,
		},
		{
			name:     "absolute path cleaned",
			path:     "/tmp/../tmp/workflow.json",
			expected: "/tmp/workflow.json",
		},
		{
			name:     "relative path resolved against cwd",
			path:     "workflow.json",
			expected: filepath.Join(cwd, "workflow.json"),
		},
		{
			name:     "dot components normalized",
			path:     "./docs/../workflow.json",
			expected: filepath.Join(cwd, "workflow.json"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolvePath(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()
	filePath := filepath.Join(tmpDir, "present.json")
	require.NoError(t, os.WriteFile(filePath, []byte("{}"), 0o644))

	assert.True(t, FileExists(filePath), "existing file should be reported")
	assert.False(t, FileExists(filepath.Join(tmpDir, "absent.json")), "missing file should not be reported")
	assert.False(t, FileExists(tmpDir), "directory should not count as a file")
}

func TestDirExists(t *testing.T) {
	tmpDir := t.TempDir()
	filePath := filepath.Join(tmpDir, "present.json")
	require.NoError(t, os.WriteFile(filePath, []byte("{}"), 0o644))

	assert.True(t, DirExists(tmpDir), "existing directory should be reported")
	assert.False(t, DirExists(filepath.Join(tmpDir, "missing")), "missing directory should not be reported")
	assert.False(t, DirExists(filePath), "file should not count as a directory")
}

func TestIsExecutable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("execute bits are not meaningful on Windows")
	}

	tmpDir := t.TempDir()

	execPath := filepath.Join(tmpDir, "deploy.sh")
	require.NoError(t, os.WriteFile(execPath, []byte("#!/bin/bash\n"), 0o755))

	plainPath := filepath.Join(tmpDir, "notes.sh")
	require.NoError(t, os.WriteFile(plainPath, []byte("#!/bin/bash\n"), 0o644))

	assert.True(t, IsExecutable(execPath), "script with execute bit should be reported")
	assert.False(t, IsExecutable(plainPath), "script without execute bit should not be reported")
	assert.False(t, IsExecutable(filepath.Join(tmpDir, "missing.sh")), "missing file should not be reported")
	assert.False(t, IsExecutable(tmpDir), "directory should not count as executable")
}
