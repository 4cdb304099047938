package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/piwi3910/PlanTidy/internal/cleanup"
	"github.com/piwi3910/PlanTidy/internal/drawing"
	"github.com/piwi3910/PlanTidy/internal/export"
	"github.com/piwi3910/PlanTidy/internal/importer"
	"github.com/piwi3910/PlanTidy/internal/logging"
	"github.com/piwi3910/PlanTidy/internal/model"
	"github.com/piwi3910/PlanTidy/internal/project"
	"github.com/spf13/cobra"
)

// outputFlags are shared by every command that rewrites a drawing.
type outputFlags struct {
	output string
	report string
}

func (f *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "write the cleaned drawing to this DXF file")
	cmd.Flags().StringVar(&f.report, "report", "", "write a cleanup report (.pdf or .xlsx)")
}

// openSession sets up logging and opens path in a new cleanup session. A
// DXF file is imported under the configuration file; a backup brings its own
// configuration and drawing.
func openSession(ctx context.Context, path string) (*cleanup.Session, error) {
	logger, err := logging.New(logLevel, logFormat)
	if err != nil {
		return nil, err
	}
	if project.IsBackupPath(path) {
		doc, cfg, err := restoreBackup(path)
		logger.LogFile(ctx, "import backup", path, err)
		if err != nil {
			return nil, err
		}
		return cleanup.NewSession(doc, cfg, logger)
	}

	cfg, err := project.LoadAppConfig(configPath)
	if err != nil {
		logger.LogFile(ctx, "load config", configPath, err)
		return nil, err
	}

	result := importer.ImportDXF(path)
	logger.LogWarnings(ctx, path, result.Warnings)
	if len(result.Errors) > 0 {
		err := fmt.Errorf("import %s: %s", path, strings.Join(result.Errors, "; "))
		logger.LogFile(ctx, "import drawing", path, err)
		return nil, err
	}
	logger.LogFile(ctx, "import drawing", path, nil)

	return cleanup.NewSession(result.Document, cfg, logger)
}

// restoreBackup reads a backup holding a drawing.
func restoreBackup(path string) (*drawing.Document, model.AppConfig, error) {
	backup, err := project.ImportBackup(path)
	if err != nil {
		return nil, model.AppConfig{}, err
	}
	if backup.Drawing == nil {
		return nil, model.AppConfig{}, fmt.Errorf("backup %s holds no drawing", path)
	}
	return drawing.FromSnapshot(*backup.Drawing), backup.Config, nil
}

// finish writes the drawing, the report and the backup requested on the
// command line.
func finish(ctx context.Context, s *cleanup.Session, out outputFlags, report model.Report) error {
	if out.output != "" {
		err := export.ExportDXF(out.output, s.Doc)
		s.Logger.LogFile(ctx, "export drawing", out.output, err)
		if err != nil {
			return err
		}
	}
	if out.report != "" {
		if err := writeReport(out.report, report); err != nil {
			s.Logger.LogFile(ctx, "export report", out.report, err)
			return err
		}
		s.Logger.LogFile(ctx, "export report", out.report, nil)
	}
	if backupPath != "" {
		err := project.ExportBackup(backupPath, s.Config, s.Doc)
		s.Logger.LogFile(ctx, "export backup", backupPath, err)
		if err != nil {
			return err
		}
	}
	return nil
}

func writeReport(path string, report model.Report) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return export.ExportReportPDF(path, report)
	case ".xlsx":
		return export.ExportWorkbook(path, report)
	default:
		return fmt.Errorf("unsupported report format %q (use .pdf or .xlsx)", filepath.Ext(path))
	}
}

// objectsOnLayer returns the ids of all objects, or only those whose layer
// path starts with prefix.
func objectsOnLayer(s *cleanup.Session, prefix string) []string {
	ids := s.Doc.ObjectIDs()
	if prefix == "" {
		return ids
	}
	var out []string
	for _, id := range ids {
		o, _ := s.Doc.Object(id)
		if o.Layer == prefix || strings.HasPrefix(o.Layer, prefix+"::") {
			out = append(out, id)
		}
	}
	return out
}
