// Package cleanup implements the drawing cleanup operations: block
// filtering and replacement, layer organisation, curve extension, overlap
// selection and print framing. Every operation runs against the document
// and configuration held by a Session.
package cleanup

import (
	"errors"
	"fmt"
	"strings"

	"github.com/piwi3910/PlanTidy/internal/drawing"
	"github.com/piwi3910/PlanTidy/internal/logging"
	"github.com/piwi3910/PlanTidy/internal/model"
	"golang.org/x/text/cases"
)

var (
	ErrNotInstance = errors.New("not a block instance")
	ErrCyclicBlock = errors.New("block references itself")
)

// Session binds a document to the configuration and logger used by the
// cleanup operations.
type Session struct {
	Doc    *drawing.Document
	Config model.AppConfig
	Logger *logging.Logger
}

// NewSession validates cfg and returns a Session. A nil logger discards output.
func NewSession(doc *drawing.Document, cfg model.AppConfig, logger *logging.Logger) (*Session, error) {
	if doc == nil {
		return nil, fmt.Errorf("new session: document is nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}
	if logger == nil {
		logger = logging.Noop()
	}
	return &Session{Doc: doc, Config: cfg, Logger: logger.WithDrawing(cfg.DrawingName)}, nil
}

func (s *Session) layer(category model.LayerCategory, name string) string {
	return s.Config.StandardLayer(category, name)
}

// containsFold reports whether sub occurs in text ignoring case.
func containsFold(text, sub string) bool {
	fold := cases.Fold()
	return strings.Contains(fold.String(text), fold.String(sub))
}

// isTopLevel reports whether the object sits on a layer without parent.
func (s *Session) isTopLevel(o *drawing.Object) bool {
	return drawing.ParentName(o.Layer) == ""
}

// editable reports whether an object's layer is visible and unlocked.
func (s *Session) editable(o *drawing.Object) bool {
	l, ok := s.Doc.Layer(o.Layer)
	if !ok {
		return true
	}
	return !l.Hidden && !l.Locked
}
