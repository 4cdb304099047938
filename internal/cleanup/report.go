package cleanup

import (
	"time"

	"github.com/piwi3910/PlanTidy/internal/model"
)

// LayerRows lists every document layer with its print settings and object
// count.
func (s *Session) LayerRows() []model.LayerRow {
	var rows []model.LayerRow
	for _, name := range s.Doc.LayerNames() {
		l, _ := s.Doc.Layer(name)
		rows = append(rows, model.LayerRow{
			Name:       name,
			Color:      l.Color,
			PrintColor: l.PrintColor,
			PrintWidth: l.PrintWidth,
			Objects:    len(s.Doc.ObjectsByLayer(name)),
		})
	}
	return rows
}

// NewReport starts a report for the session's drawing, with the current
// layers and the standard color legend filled in.
func (s *Session) NewReport(title, source string) model.Report {
	return model.Report{
		Title:       title,
		DrawingName: s.Config.DrawingName,
		Source:      source,
		Generated:   time.Now(),
		Layers:      s.LayerRows(),
		Legend:      s.Config.Standards.Colors,
	}
}
