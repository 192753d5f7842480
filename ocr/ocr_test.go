package ocr

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"reflect"
	"testing"

	"golang.org/x/image/bmp"
)

func sampleImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.White)
		}
	}
	img.Set(4, 4, color.Black)
	return img
}

func TestPrepareImageConvertsBMPToPNG(t *testing.T) {
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, sampleImage()); err != nil {
		t.Fatalf("encode bmp: %v", err)
	}
	if f, err := SniffFormat(buf.Bytes()); err != nil || f != ImageFormatBMP {
		t.Fatalf("SniffFormat = %v, %v", f, err)
	}
	data, format, err := PrepareImage(buf.Bytes())
	if err != nil {
		t.Fatalf("PrepareImage() error = %v", err)
	}
	if format != ImageFormatPNG {
		t.Fatalf("unexpected format: %s", format)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not png: %v", err)
	}
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 8 {
		t.Fatalf("unexpected bounds: %v", img.Bounds())
	}
}

func TestPrepareImagePassesPNGThrough(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, sampleImage()); err != nil {
		t.Fatal(err)
	}
	data, _, err := PrepareImage(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, buf.Bytes()) {
		t.Fatalf("png input should be returned unchanged")
	}
}

func TestPrepareImageRejectsBadInput(t *testing.T) {
	if _, _, err := PrepareImage(nil); !errors.Is(err, ErrEmptyImage) {
		t.Fatalf("expected ErrEmptyImage, got %v", err)
	}
	if _, _, err := PrepareImage([]byte("not an image")); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestNewInputAppliesOptions(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, sampleImage()); err != nil {
		t.Fatal(err)
	}
	in, err := NewInput("upload-1", buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(in.Languages, []string{DefaultLanguage}) {
		t.Fatalf("default language missing: %v", in.Languages)
	}

	var seen []Progress
	langs := []string{"chi_sim", "eng"}
	in, err = NewInput("upload-2", buf.Bytes(),
		WithLanguages(langs...),
		WithDPI(300),
		WithProgress(func(p Progress) { seen = append(seen, p) }),
	)
	if err != nil {
		t.Fatal(err)
	}
	langs[0] = "jpn"
	if !reflect.DeepEqual(in.Languages, []string{"chi_sim", "eng"}) {
		t.Fatalf("languages were not copied: %v", in.Languages)
	}
	if in.DPI != 300 || in.ID != "upload-2" {
		t.Fatalf("unexpected input: %+v", in)
	}
	in.Report("recognizing text", 0.5)
	if len(seen) != 1 || seen[0].Progress != 0.5 {
		t.Fatalf("progress not forwarded: %+v", seen)
	}
}

func TestRecognitionErrorUnwraps(t *testing.T) {
	base := errors.New("tesseract exploded")
	err := error(NewRecognitionError("tesseract", "upload-1", base))
	if !errors.Is(err, base) {
		t.Fatalf("RecognitionError should unwrap to the cause")
	}
	var re *RecognitionError
	if !errors.As(err, &re) || re.Engine != "tesseract" {
		t.Fatalf("errors.As failed: %v", err)
	}
}
