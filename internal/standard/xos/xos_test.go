// Copyright 2026 Peter Edge
//
// All rights reserved.

package xos

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExpandHome(t *testing.T) {
	t.Parallel()
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)
	path, err := ExpandHome("~/.config/ibflex/config.yaml")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(homeDir, ".config", "ibflex", "config.yaml"), path)
	path, err = ExpandHome("relative/config.yaml")
	require.NoError(t, err)
	require.Equal(t, "relative/config.yaml", path)
}

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()
	dirPath := filepath.Join(t.TempDir(), "statements")
	filePath := filepath.Join(dirPath, "statement.xml")
	require.NoError(t, WriteFileAtomic(filePath, []byte("first"), 0o600))
	data, err := os.ReadFile(filePath)
	require.NoError(t, err)
	require.Equal(t, "first", string(data))
	fileInfo, err := os.Stat(filePath)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), fileInfo.Mode().Perm())

	require.NoError(t, WriteFileAtomic(filePath, []byte("second"), 0o644))
	data, err = os.ReadFile(filePath)
	require.NoError(t, err)
	require.Equal(t, "second", string(data))

	// No temporary files are left behind.
	entries, err := os.ReadDir(dirPath)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestWriteFileAtomicRenameFailure(t *testing.T) {
	t.Parallel()
	dirPath := t.TempDir()
	// A directory cannot be replaced by a file.
	targetPath := filepath.Join(dirPath, "target")
	require.NoError(t, os.Mkdir(targetPath, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(targetPath, "child"), nil, 0o644))
	require.Error(t, WriteFileAtomic(targetPath, []byte("data"), 0o644))
	entries, err := os.ReadDir(dirPath)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}
