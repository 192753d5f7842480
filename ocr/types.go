package ocr

import "context"

// DefaultLanguage is the Tesseract traineddata used when no hint is given
// (traditional Chinese).
const DefaultLanguage = "chi_tra"

// ImageFormat identifies the content type of an OCR input image.
type ImageFormat string

const (
	ImageFormatPNG  ImageFormat = "image/png"
	ImageFormatJPEG ImageFormat = "image/jpeg"
	ImageFormatGIF  ImageFormat = "image/gif"
	ImageFormatBMP  ImageFormat = "image/bmp"
	ImageFormatTIFF ImageFormat = "image/tiff"
	ImageFormatWebP ImageFormat = "image/webp"
)

// Progress is an incremental status report emitted while recognizing.
// It is for user feedback only.
type Progress struct {
	Status   string  // e.g. "loading image", "recognizing text"
	Progress float64 // 0..1
}

// Input is a single image submitted for recognition.
type Input struct {
	// ID is echoed back in the Result.
	ID string
	// Image is the encoded image payload.
	Image []byte
	// Format declares the content type of Image; empty means sniff it.
	Format ImageFormat
	// Languages are traineddata names such as "chi_tra" or "eng".
	Languages []string
	// DPI is the effective resolution; zero means unknown.
	DPI int
	// OnProgress, when set, receives progress notifications.
	OnProgress func(Progress)
}

// Report forwards p to the input's progress callback if there is one.
func (in Input) Report(status string, progress float64) {
	if in.OnProgress != nil {
		in.OnProgress(Progress{Status: status, Progress: progress})
	}
}

// Result is the output for one input image.
type Result struct {
	InputID    string
	Text       string
	Language   string
	Confidence float64 // mean word confidence in 0..1, zero when unknown
}

// Engine recognizes text in images.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, in Input) (Result, error)
}

// EngineFunc adapts a plain function to Engine.
type EngineFunc func(ctx context.Context, in Input) (Result, error)

func (f EngineFunc) Name() string { return "func" }

func (f EngineFunc) Recognize(ctx context.Context, in Input) (Result, error) { return f(ctx, in) }
