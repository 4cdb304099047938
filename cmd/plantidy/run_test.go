package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/PlanTidy/internal/cleanup"
	"github.com/piwi3910/PlanTidy/internal/drawing"
	"github.com/piwi3910/PlanTidy/internal/model"
	"github.com/piwi3910/PlanTidy/internal/project"
)

func TestObjectsOnLayer(t *testing.T) {
	doc := drawing.New()
	a := doc.AddLine("Plan::Walls", model.Point2D{}, model.Point2D{X: 1})
	b := doc.AddLine("Plan::Walls::Inner", model.Point2D{}, model.Point2D{Y: 1})
	doc.AddLine("Plan::WallsOld", model.Point2D{}, model.Point2D{X: 2})

	s, err := cleanup.NewSession(doc, model.DefaultAppConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}

	if got := objectsOnLayer(s, ""); len(got) != 3 {
		t.Errorf("expected all 3 objects, got %d", len(got))
	}
	got := objectsOnLayer(s, "Plan::Walls")
	if len(got) != 2 || got[0] != a || got[1] != b {
		t.Errorf("expected [%s %s], got %v", a, b, got)
	}
}

func TestWriteReport(t *testing.T) {
	dir := t.TempDir()
	report := model.Report{Title: "Test"}

	for _, name := range []string{"report.pdf", "report.xlsx"} {
		path := filepath.Join(dir, name)
		if err := writeReport(path, report); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}

	if err := writeReport(filepath.Join(dir, "report.txt"), report); err == nil {
		t.Error("expected error for unsupported report format")
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := map[string]bool{"extend": false, "overlaps": false, "blocks": false, "organize": false, "frame": false, "config": false,
		"restore": false, "find-blocks": false}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestOpenSessionFromBackup(t *testing.T) {
	doc := drawing.New()
	doc.AddLine("Plan::Walls", model.Point2D{}, model.Point2D{X: 10})
	doc.AddLine("Plan::Walls", model.Point2D{}, model.Point2D{Y: 10})
	cfg := model.DefaultAppConfig()
	cfg.DrawingName = "Restored"

	path := filepath.Join(t.TempDir(), "session.zst")
	if err := project.ExportBackup(path, cfg, doc); err != nil {
		t.Fatal(err)
	}

	s, err := openSession(context.Background(), path)
	if err != nil {
		t.Fatalf("openSession: %v", err)
	}
	if got := s.Doc.Stats().Objects; got != 2 {
		t.Errorf("expected 2 objects, got %d", got)
	}
	if s.Config.DrawingName != "Restored" {
		t.Errorf("expected backup config, got drawing name %q", s.Config.DrawingName)
	}
}

func TestOpenSessionFromEmptyBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.zst")
	if err := project.ExportBackup(path, model.DefaultAppConfig(), nil); err != nil {
		t.Fatal(err)
	}
	if _, err := openSession(context.Background(), path); err == nil {
		t.Error("expected error for a backup without a drawing")
	}
}
