package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ArchiveFile copies a source file into the upload directory under a
// timestamped name so the original ingestion input can be inspected or
// re-ingested later. Returns the archived path.
func ArchiveFile(sourcePath, uploadDir string) (string, error) {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return "", fmt.Errorf("failed to read source file: %w", err)
	}

	base := filepath.Base(sourcePath)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)
	destPath := filepath.Join(uploadDir, fmt.Sprintf("%s_%d%s", name, time.Now().Unix(), ext))

	if err := os.WriteFile(destPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write archived file: %w", err)
	}
	return destPath, nil
}
