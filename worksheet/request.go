// Package worksheet ties the pipeline together: recognized text is
// normalized, laid out on pages and handed to a renderer. Session keeps the
// state of one user's generation flow.
package worksheet

import (
	"github.com/ByLCY/zitie/glyph"
	"github.com/ByLCY/zitie/layout"
	"github.com/ByLCY/zitie/ocr"
	"github.com/ByLCY/zitie/renderer"
)

// Request is an immutable description of one generation: the text to lay
// out plus every setting that affects the output.
type Request struct {
	Text     string              `json:"text"`
	Language string              `json:"language"`
	Cell     layout.CellConfig   `json:"cell"`
	Page     layout.PageGeometry `json:"page"`
	Style    renderer.Style      `json:"style"`
	Meta     renderer.Meta       `json:"meta"`
}

// DefaultRequest returns A4, 80px 米字格 and the default render style.
func DefaultRequest() Request {
	return Request{
		Language: ocr.DefaultLanguage,
		Cell:     layout.DefaultCellConfig(),
		Page:     layout.A4(),
		Style:    renderer.DefaultStyle(),
		Meta:     renderer.Meta{Title: "練字帖", Creator: "zitie"},
	}
}

// WithText returns a copy of r with Text replaced.
func (r Request) WithText(text string) Request {
	r.Text = text
	return r
}

// Build normalizes the request text and lays it out. Configuration errors
// come back wrapped in a *StageError for StageLayout.
func Build(req Request) (*layout.WorksheetLayout, error) {
	ws, err := layout.Layout(glyph.Normalize(req.Text), req.Cell, req.Page)
	if err != nil {
		return nil, &StageError{Stage: StageLayout, Err: err}
	}
	return ws, nil
}
