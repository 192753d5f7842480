package tesseract

import "errors"

// ErrNotEnabled is returned when the binary was built without the "ocr"
// build tag.
var ErrNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")
