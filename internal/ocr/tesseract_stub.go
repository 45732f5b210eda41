//go:build !cgo || !ocr

package ocr

import (
	"context"
	"fmt"
)

// TesseractProvider is a stub for environments without Tesseract/CGO
// support.
type TesseractProvider struct {
	name string
}

// NewTesseractProvider creates a stub provider that reports unavailability.
func NewTesseractProvider(cfg ProviderConfig) (*TesseractProvider, error) {
	return &TesseractProvider{name: "tesseract (unavailable)"}, nil
}

func (p *TesseractProvider) Name() string {
	return p.name
}

func (p *TesseractProvider) IsAvailable() bool {
	return false
}

func (p *TesseractProvider) ImageText(ctx context.Context, imagePath string, opts Options) (string, error) {
	return "", fmt.Errorf("OCR not available: built without Tesseract support")
}

func (p *TesseractProvider) PDFPageText(ctx context.Context, pdfPath string, page int, opts Options) (string, error) {
	return "", fmt.Errorf("OCR not available: built without Tesseract support")
}

func (p *TesseractProvider) Close() error {
	return nil
}
