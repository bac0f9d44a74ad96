package debug

import (
	"errors"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/image/bmp"
)

// createTestPixels returns a 2x2 bottom-up buffer: red bottom row, blue top row.
func createTestPixels() []byte {
	return []byte{
		255, 0, 0, 255, 255, 0, 0, 255,
		0, 0, 255, 255, 0, 0, 255, 255,
	}
}

func fixedClock() time.Time {
	return time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC)
}

func TestFlipRGBA(t *testing.T) {
	img, err := FlipRGBA(createTestPixels(), 2, 2)
	if err != nil {
		t.Fatalf("FlipRGBA failed: %v", err)
	}

	blue := color.RGBA{0, 0, 255, 255}
	red := color.RGBA{255, 0, 0, 255}
	if got := img.RGBAAt(0, 0); got != blue {
		t.Errorf("top-left = %v, want blue", got)
	}
	if got := img.RGBAAt(1, 1); got != red {
		t.Errorf("bottom-right = %v, want red", got)
	}
}

func TestFlipRGBASizeMismatch(t *testing.T) {
	if _, err := FlipRGBA(make([]byte, 10), 2, 2); err == nil {
		t.Error("expected error for short pixel buffer")
	}
}

func TestGenerateFilename(t *testing.T) {
	sc := NewScreenshotCapture("shots", "procmesh")
	sc.now = fixedClock

	want := filepath.Join("shots", "procmesh_2024-03-01_12-30-45.000.png")
	if got := sc.GenerateFilename(); got != want {
		t.Errorf("GenerateFilename() = %s, want %s", got, want)
	}

	if err := sc.SetFormat("BMP"); err != nil {
		t.Fatalf("SetFormat failed: %v", err)
	}
	if got := filepath.Ext(sc.GenerateFilename()); got != ".bmp" {
		t.Errorf("extension %s, want .bmp", got)
	}

	if err := sc.SetFormat("gif"); !errors.Is(err, ErrUnknownImageFormat) {
		t.Errorf("expected ErrUnknownImageFormat, got %v", err)
	}
}

func TestCapturePNG(t *testing.T) {
	sc := NewScreenshotCapture(filepath.Join(t.TempDir(), "out"), "test")
	sc.now = fixedClock

	name, err := sc.CaptureFromPixels(createTestPixels(), 2, 2)
	if err != nil {
		t.Fatalf("CaptureFromPixels failed: %v", err)
	}

	f, err := os.Open(name)
	if err != nil {
		t.Fatalf("opening screenshot: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decoding PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 2 || b.Dy() != 2 {
		t.Errorf("size %v, want 2x2", b)
	}
}

func TestCaptureBMP(t *testing.T) {
	sc := NewScreenshotCapture(t.TempDir(), "test")
	sc.now = fixedClock
	if err := sc.SetFormat("bmp"); err != nil {
		t.Fatal(err)
	}

	name, err := sc.CaptureFromPixels(createTestPixels(), 2, 2)
	if err != nil {
		t.Fatalf("CaptureFromPixels failed: %v", err)
	}

	f, err := os.Open(name)
	if err != nil {
		t.Fatalf("opening screenshot: %v", err)
	}
	defer f.Close()

	img, err := bmp.Decode(f)
	if err != nil {
		t.Fatalf("decoding BMP: %v", err)
	}
	r, g, b, _ := img.At(0, 1).RGBA()
	if r>>8 != 255 || g != 0 || b != 0 {
		t.Errorf("bottom-left = (%d,%d,%d), want red", r>>8, g>>8, b>>8)
	}
}
