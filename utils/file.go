package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// CopyFileWithTimestamp copies a file into the destination directory
// under a timestamp-suffixed name and returns the destination path.
func CopyFileWithTimestamp(sourcePath, destDir string) (string, error) {
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create destination directory: %v", err)
	}

	sourceFile, err := os.Open(sourcePath)
	if err != nil {
		return "", fmt.Errorf("failed to open source file: %v", err)
	}
	defer sourceFile.Close()

	originalName := filepath.Base(sourcePath)
	ext := filepath.Ext(originalName)
	baseName := strings.TrimSuffix(originalName, ext)
	destPath := filepath.Join(destDir, fmt.Sprintf("%s_%d%s", baseName, time.Now().Unix(), ext))

	destFile, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %v", err)
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return "", fmt.Errorf("failed to copy file: %v", err)
	}
	return destPath, nil
}

// FindFileWithTimestamp resolves a requested original filename to the
// path of its timestamp-suffixed copy inside dir.
func FindFileWithTimestamp(dir, requestedName string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	ext := filepath.Ext(requestedName)
	baseName := strings.TrimSuffix(requestedName, ext)
	for _, file := range files {
		name := file.Name()
		if filepath.Ext(name) != ext {
			continue
		}
		nameWithoutExt := strings.TrimSuffix(name, ext)
		if nameWithoutExt == baseName {
			return filepath.Join(dir, name), nil
		}
		idx := strings.LastIndex(nameWithoutExt, "_")
		if idx == -1 {
			continue
		}
		if nameWithoutExt[:idx] == baseName {
			return filepath.Join(dir, name), nil
		}
	}
	return "", fmt.Errorf("file not found: %s", requestedName)
}
