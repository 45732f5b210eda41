// Package ocr implements text acquisition for certificate documents: PDF
// text-layer reads with an OCR fallback for scanned pages, and direct OCR
// for image uploads.
package ocr

import "context"

// Options tunes a single recognition attempt. The batch pipeline escalates
// density and preprocessing across retries.
type Options struct {
	// Density is the rasterization resolution in DPI.
	Density int
	// Preprocess enables the image cleanup pipeline (grayscale, contrast
	// stretch, sharpen, binarize) before recognition.
	Preprocess bool
	// Languages are Tesseract language codes, e.g. ["spa", "eng"].
	Languages []string
}

// Provider is the external black-box text recognizer.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// IsAvailable checks if the provider is properly configured and usable.
	IsAvailable() bool

	// ImageText runs recognition on a single image file.
	ImageText(ctx context.Context, imagePath string, opts Options) (string, error)

	// PDFPageText rasterizes one PDF page (1-based) and runs recognition
	// on it.
	PDFPageText(ctx context.Context, pdfPath string, page int, opts Options) (string, error)

	// Close cleans up resources.
	Close() error
}

// ProviderConfig configures provider construction.
type ProviderConfig struct {
	Languages []string
}
