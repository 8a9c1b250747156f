// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package xos provides extensions to the standard os package.
package xos

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExpandHome expands a leading ~ in a path to the user's home directory.
func ExpandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not get home directory: %w", err)
	}
	return filepath.Join(homeDir, path[1:]), nil
}

// WriteFileAtomic writes data to a temporary file in the directory of filePath
// and renames it over filePath, so that readers never observe a partial file.
//
// The parent directory is created if it does not exist.
func WriteFileAtomic(filePath string, data []byte, perm os.FileMode) (retErr error) {
	dirPath := filepath.Dir(filePath)
	if err := os.MkdirAll(dirPath, 0o755); err != nil {
		return err
	}
	file, err := os.CreateTemp(dirPath, "."+filepath.Base(filePath)+".*")
	if err != nil {
		return err
	}
	tempFilePath := file.Name()
	defer func() {
		if retErr != nil {
			retErr = errors.Join(retErr, removeIfExists(tempFilePath))
		}
	}()
	if _, err := file.Write(data); err != nil {
		return errors.Join(err, file.Close())
	}
	if err := file.Chmod(perm); err != nil {
		return errors.Join(err, file.Close())
	}
	if err := file.Close(); err != nil {
		return err
	}
	return os.Rename(tempFilePath, filePath)
}

// *** PRIVATE ***

func removeIfExists(filePath string) error {
	if err := os.Remove(filePath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
