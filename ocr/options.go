package ocr

import "fmt"

// InputOption mutates an OCR input.
type InputOption func(*Input)

// WithLanguages sets language hints on the OCR input.
func WithLanguages(langs ...string) InputOption {
	return func(in *Input) { in.Languages = append([]string(nil), langs...) }
}

// WithDPI overrides the DPI value on the OCR input.
func WithDPI(dpi int) InputOption {
	return func(in *Input) { in.DPI = dpi }
}

// WithProgress installs a progress callback.
func WithProgress(fn func(Progress)) InputOption {
	return func(in *Input) { in.OnProgress = fn }
}

// NewInput decodes image bytes, re-encodes them as PNG and applies opts.
// Without a language option the input uses DefaultLanguage.
func NewInput(id string, image []byte, opts ...InputOption) (Input, error) {
	data, format, err := PrepareImage(image)
	if err != nil {
		return Input{}, fmt.Errorf("prepare image %s: %w", id, err)
	}
	in := Input{
		ID:        id,
		Image:     data,
		Format:    format,
		Languages: []string{DefaultLanguage},
	}
	for _, opt := range opts {
		opt(&in)
	}
	return in, nil
}
