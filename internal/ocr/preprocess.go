//go:build cgo && ocr

package ocr

import (
	"fmt"
	"os"

	"github.com/davidbyttow/govips/v2/vips"
)

// Preprocessing cleans up a scanned page before recognition. The steps
// mirror what the escalated retry attempts need: grayscale conversion,
// contrast stretch, sharpen, then a fixed-threshold binarization around
// mid-gray. Requires vips.Startup to have been called at process start.

// Preprocess applies the cleanup pipeline to an encoded image and returns
// the processed image as PNG bytes.
func Preprocess(data []byte) ([]byte, error) {
	img, err := vips.NewImageFromBuffer(data)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	defer img.Close()

	if err := img.ToColorSpace(vips.InterpretationBW); err != nil {
		return nil, fmt.Errorf("grayscale: %w", err)
	}

	// Contrast auto-stretch: widen the tonal range around the midpoint.
	if err := img.Linear([]float64{1.3}, []float64{-38}); err != nil {
		return nil, fmt.Errorf("contrast stretch: %w", err)
	}

	if err := img.Sharpen(1.0, 2.0, 3.0); err != nil {
		return nil, fmt.Errorf("sharpen: %w", err)
	}

	// Fixed-threshold binarization: a steep ramp around the 140 threshold
	// saturates pixels to black or white on export.
	if err := img.Linear([]float64{16}, []float64{-16 * 140}); err != nil {
		return nil, fmt.Errorf("binarize: %w", err)
	}

	out, _, err := img.ExportPng(vips.NewPngExportParams())
	if err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return out, nil
}

// preprocessToTemp runs Preprocess on an image file and writes the result
// to a temporary PNG, returning its path. The caller removes the file.
func preprocessToTemp(imagePath string) (string, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}

	cleaned, err := Preprocess(data)
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp("", "ocr-clean-*.png")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(cleaned); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}
