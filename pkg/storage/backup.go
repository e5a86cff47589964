package storage

import (
	"archive/zip"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"scrib/pkg/utils"
)

// BackupCollections writes the current value of each key into a zip archive
// under dir and returns the archive path. Keys with no stored value are
// written as an empty JSON array.
func BackupCollections(ctx context.Context, gw Gateway, dir string, keys ...string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	timestamp := time.Now().Format("20060102-1504")
	zipPath := filepath.Join(dir, fmt.Sprintf("backup-%s-%s.zip", timestamp, utils.ShortID()))

	zipFile, err := os.Create(zipPath)
	if err != nil {
		return "", err
	}

	zipWriter := zip.NewWriter(zipFile)
	for _, key := range keys {
		value, found, err := gw.Get(ctx, key)
		if err != nil {
			zipWriter.Close()
			zipFile.Close()
			os.Remove(zipPath)
			return "", fmt.Errorf("read %s: %w", key, err)
		}
		if !found {
			value = "[]"
		}

		w, err := zipWriter.Create(key + ".json")
		if err != nil {
			zipWriter.Close()
			zipFile.Close()
			os.Remove(zipPath)
			return "", err
		}
		if _, err := w.Write([]byte(value)); err != nil {
			zipWriter.Close()
			zipFile.Close()
			os.Remove(zipPath)
			return "", err
		}
	}

	if err := zipWriter.Close(); err != nil {
		zipFile.Close()
		os.Remove(zipPath)
		return "", err
	}
	if err := zipFile.Close(); err != nil {
		return "", err
	}

	log.Printf("Backup created at: %s", zipPath)
	return zipPath, nil
}
