package ocr

import (
	"errors"
	"fmt"
)

// ErrEmptyImage is returned for inputs without image data.
var ErrEmptyImage = errors.New("ocr: empty image")

// RecognitionError wraps a failure reported by an OCR engine.
type RecognitionError struct {
	Engine  string
	InputID string
	Err     error
}

func (e *RecognitionError) Error() string {
	return fmt.Sprintf("文字识别失败 (%s, %s): %v", e.Engine, e.InputID, e.Err)
}

func (e *RecognitionError) Unwrap() error { return e.Err }

// NewRecognitionError creates a RecognitionError.
func NewRecognitionError(engine, inputID string, err error) *RecognitionError {
	return &RecognitionError{Engine: engine, InputID: inputID, Err: err}
}
