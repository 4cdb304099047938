package project

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/piwi3910/PlanTidy/internal/drawing"
	"github.com/piwi3910/PlanTidy/internal/model"
)

// BackupVersion is written into every backup.
const BackupVersion = "1.0.0"

// BackupExtension is the file extension of session backups.
const BackupExtension = ".zst"

// IsBackupPath reports whether path names a session backup.
func IsBackupPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), BackupExtension)
}

// BackupData is the top-level structure of a session backup.
type BackupData struct {
	Version   string            `json:"version"`
	CreatedAt string            `json:"created_at"`
	Config    model.AppConfig   `json:"config"`
	Drawing   *drawing.Snapshot `json:"drawing,omitempty"`
}

// ExportBackup writes the config and, when doc is not nil, a snapshot of the
// document to a zstd-compressed JSON file.
func ExportBackup(exportPath string, config model.AppConfig, doc *drawing.Document) error {
	backup := BackupData{
		Version:   BackupVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
	}
	if doc != nil {
		snap := doc.Snapshot()
		backup.Drawing = &snap
	}
	data, err := json.Marshal(backup)
	if err != nil {
		return fmt.Errorf("failed to marshal backup data: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(exportPath), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	f, err := os.Create(exportPath)
	if err != nil {
		return fmt.Errorf("failed to create backup file: %w", err)
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		f.Close()
		return fmt.Errorf("failed to create compressor: %w", err)
	}
	if _, err := enc.Write(data); err != nil {
		enc.Close()
		f.Close()
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return f.Close()
}

// ImportBackup reads a backup file. The caller is responsible for applying
// the imported config and rebuilding the drawing with drawing.FromSnapshot.
func ImportBackup(importPath string) (BackupData, error) {
	raw, err := os.ReadFile(importPath)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	dec, err := zstd.NewReader(bytes.NewReader(raw))
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to open backup file: %w", err)
	}
	defer dec.Close()
	data, err := io.ReadAll(dec)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to decompress backup file: %w", err)
	}

	var backup BackupData
	if err := json.Unmarshal(data, &backup); err != nil {
		return BackupData{}, fmt.Errorf("failed to parse backup file: %w", err)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: missing version field")
	}
	if err := backup.Config.Validate(); err != nil {
		return BackupData{}, fmt.Errorf("invalid backup file: %w", err)
	}
	return backup, nil
}
