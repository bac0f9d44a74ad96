// Package debug provides viewer debugging utilities.
package debug

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/bmp"
)

var ErrUnknownImageFormat = errors.New("unknown screenshot format")

// ScreenshotCapture writes frames to timestamped image files.
type ScreenshotCapture struct {
	outputDir string
	prefix    string
	format    string // png or bmp
	now       func() time.Time
}

// NewScreenshotCapture creates a new screenshot capture handler.
func NewScreenshotCapture(outputDir, prefix string) *ScreenshotCapture {
	return &ScreenshotCapture{
		outputDir: outputDir,
		prefix:    prefix,
		format:    "png",
		now:       time.Now,
	}
}

// SetFormat selects png or bmp output.
func (sc *ScreenshotCapture) SetFormat(format string) error {
	format = strings.ToLower(format)
	switch format {
	case "png", "bmp":
		sc.format = format
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownImageFormat, format)
	}
}

// FlipRGBA converts bottom-up RGBA rows, as read back from OpenGL, into a
// top-down image.
func FlipRGBA(pixels []byte, width, height int) (*image.RGBA, error) {
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		dst := y * img.Stride
		copy(img.Pix[dst:dst+rowSize], pixels[src:src+rowSize])
	}
	return img, nil
}

// CaptureFromPixels saves bottom-up RGBA pixel data and returns the file name.
func (sc *ScreenshotCapture) CaptureFromPixels(pixels []byte, width, height int) (string, error) {
	img, err := FlipRGBA(pixels, width, height)
	if err != nil {
		return "", err
	}
	return sc.CaptureFromImage(img)
}

// CaptureFromImage saves img and returns the file name.
func (sc *ScreenshotCapture) CaptureFromImage(img image.Image) (name string, err error) {
	if sc.outputDir != "" {
		if err := os.MkdirAll(sc.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	name = sc.GenerateFilename()
	file, err := os.Create(name)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := sc.encode(file, img); err != nil {
		return "", err
	}
	return name, nil
}

func (sc *ScreenshotCapture) encode(w io.Writer, img image.Image) error {
	var err error
	if sc.format == "bmp" {
		err = bmp.Encode(w, img)
	} else {
		err = png.Encode(w, img)
	}
	if err != nil {
		return fmt.Errorf("encoding %s: %w", strings.ToUpper(sc.format), err)
	}
	return nil
}

// GenerateFilename generates a screenshot filename without saving.
func (sc *ScreenshotCapture) GenerateFilename() string {
	timestamp := sc.now().Format("2006-01-02_15-04-05.000")
	filename := fmt.Sprintf("%s_%s.%s", sc.prefix, timestamp, sc.format)
	if sc.outputDir != "" {
		filename = filepath.Join(sc.outputDir, filename)
	}
	return filename
}
