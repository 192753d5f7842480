//go:build !ocr

// Package tesseract provides an ocr.Engine backed by Tesseract via
// gosseract.
//
// This is the stub used when the "ocr" build tag is not set; Recognize
// always fails with ErrNotEnabled. Rebuild with -tags ocr (libtesseract
// required) to enable recognition.
package tesseract

import (
	"context"

	"github.com/ByLCY/zitie/ocr"
)

// Engine is the stub engine.
type Engine struct{}

var _ ocr.Engine = (*Engine)(nil)

// New returns the stub engine.
func New() *Engine { return &Engine{} }

func (e *Engine) Name() string { return "tesseract" }

func (e *Engine) Recognize(_ context.Context, in ocr.Input) (ocr.Result, error) {
	return ocr.Result{}, ocr.NewRecognitionError(e.Name(), in.ID, ErrNotEnabled)
}
