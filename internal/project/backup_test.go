package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/PlanTidy/internal/drawing"
	"github.com/piwi3910/PlanTidy/internal/model"
)

func TestExportAndImportBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backups", "session.json.zst")

	cfg := model.DefaultAppConfig()
	cfg.DrawingName = "Plan Level 3"

	doc := drawing.New()
	line := doc.AddLine("A-WALL", model.Point2D{X: 0, Y: 0}, model.Point2D{X: 10, Y: 0})
	doc.Group([]string{line})

	if err := ExportBackup(path, cfg, doc); err != nil {
		t.Fatalf("ExportBackup failed: %v", err)
	}

	backup, err := ImportBackup(path)
	if err != nil {
		t.Fatalf("ImportBackup failed: %v", err)
	}

	if backup.Version != BackupVersion {
		t.Errorf("expected version %s, got %s", BackupVersion, backup.Version)
	}
	if backup.CreatedAt == "" {
		t.Error("expected non-empty CreatedAt")
	}
	if backup.Config.DrawingName != "Plan Level 3" {
		t.Errorf("expected DrawingName=Plan Level 3, got %s", backup.Config.DrawingName)
	}
	if backup.Drawing == nil {
		t.Fatal("expected a drawing snapshot")
	}

	restored := drawing.FromSnapshot(*backup.Drawing)
	c, err := restored.Curve(line)
	if err != nil {
		t.Fatalf("line %s missing after restore: %v", line, err)
	}
	if c.Layer != "A-WALL" {
		t.Errorf("expected layer A-WALL, got %s", c.Layer)
	}
	if len(restored.Groups()) != 1 {
		t.Errorf("expected 1 group, got %d", len(restored.Groups()))
	}
}

func TestExportBackupWithoutDrawing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config-only.zst")

	if err := ExportBackup(path, model.DefaultAppConfig(), nil); err != nil {
		t.Fatalf("ExportBackup failed: %v", err)
	}
	backup, err := ImportBackup(path)
	if err != nil {
		t.Fatalf("ImportBackup failed: %v", err)
	}
	if backup.Drawing != nil {
		t.Error("expected no drawing snapshot")
	}
}

func TestImportBackupInvalid(t *testing.T) {
	dir := t.TempDir()

	if _, err := ImportBackup(filepath.Join(dir, "missing.zst")); err == nil {
		t.Error("expected error for missing file")
	}

	plain := filepath.Join(dir, "plain.json")
	if err := os.WriteFile(plain, []byte(`{"version": "1.0.0"}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportBackup(plain); err == nil {
		t.Error("expected error for uncompressed file")
	}
}

func TestIsBackupPath(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"session.zst", true},
		{"backups/session.json.ZST", true},
		{"plan.dxf", false},
		{"zst", false},
	}
	for _, tt := range tests {
		if got := IsBackupPath(tt.path); got != tt.want {
			t.Errorf("IsBackupPath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
