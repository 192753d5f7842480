//go:build ocr

// Package tesseract provides an ocr.Engine backed by Tesseract via
// gosseract. It requires libtesseract and the "ocr" build tag:
//
//	go build -tags ocr
//
// Without the tag, Engine.Recognize returns ErrNotEnabled.
package tesseract

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/ByLCY/zitie/ocr"
)

// Engine implements ocr.Engine with a fresh gosseract client per call.
type Engine struct {
	clientFactory func() *gosseract.Client
}

var _ ocr.Engine = (*Engine)(nil)

// New constructs a Tesseract-backed OCR engine.
func New() *Engine {
	return &Engine{clientFactory: gosseract.NewClient}
}

func (e *Engine) Name() string { return "tesseract" }

// Recognize runs Tesseract on in.Image. Tesseract itself cannot be
// interrupted; when ctx is done first the call returns ctx.Err() and the
// late result is dropped.
func (e *Engine) Recognize(ctx context.Context, in ocr.Input) (ocr.Result, error) {
	if len(in.Image) == 0 {
		return ocr.Result{}, ocr.NewRecognitionError(e.Name(), in.ID, ocr.ErrEmptyImage)
	}
	type outcome struct {
		res ocr.Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		c := e.clientFactory()
		defer c.Close()
		res, err := e.recognizeWithClient(c, in)
		done <- outcome{res, err}
	}()
	select {
	case <-ctx.Done():
		return ocr.Result{}, ctx.Err()
	case o := <-done:
		if o.err != nil {
			return ocr.Result{}, ocr.NewRecognitionError(e.Name(), in.ID, o.err)
		}
		return o.res, nil
	}
}

func (e *Engine) recognizeWithClient(c *gosseract.Client, in ocr.Input) (ocr.Result, error) {
	in.Report("loading image", 0.1)
	if err := c.SetImageFromBytes(in.Image); err != nil {
		return ocr.Result{}, fmt.Errorf("set image: %w", err)
	}
	langs := in.Languages
	if len(langs) == 0 {
		langs = []string{ocr.DefaultLanguage}
	}
	if err := c.SetLanguage(langs...); err != nil {
		return ocr.Result{}, fmt.Errorf("set languages: %w", err)
	}
	if in.DPI > 0 {
		if err := c.SetVariable(gosseract.SettableVariable("user_defined_dpi"), fmt.Sprint(in.DPI)); err != nil {
			return ocr.Result{}, fmt.Errorf("set dpi: %w", err)
		}
	}
	in.Report("recognizing text", 0.3)
	text, err := c.Text()
	if err != nil {
		return ocr.Result{}, fmt.Errorf("recognize text: %w", err)
	}
	in.Report("recognizing text", 0.9)
	conf := meanConfidence(c)
	in.Report("done", 1)
	return ocr.Result{
		InputID:    in.ID,
		Text:       strings.TrimSpace(text),
		Language:   langs[0],
		Confidence: conf,
	}, nil
}

func meanConfidence(c *gosseract.Client) float64 {
	boxes, err := c.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil || len(boxes) == 0 {
		return 0
	}
	var sum float64
	for _, b := range boxes {
		sum += b.Confidence / 100.0
	}
	return sum / float64(len(boxes))
}
