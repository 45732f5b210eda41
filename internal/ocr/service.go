package ocr

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog/log"
)

// Service acquires plain text from a document: the embedded text layer for
// digital PDFs, OCR for scanned pages and image uploads.
type Service struct {
	provider  Provider
	languages []string
	enabled   bool
}

// ServiceConfig configures the acquisition service.
type ServiceConfig struct {
	Enabled   bool
	Languages []string
}

// NewService creates the text acquisition service. When OCR is disabled or
// the provider is unavailable, text-layer extraction still works; scanned
// pages and images fail with an explicit error.
func NewService(cfg ServiceConfig) (*Service, error) {
	languages := cfg.Languages
	if len(languages) == 0 {
		languages = []string{"spa"}
	}

	if !cfg.Enabled {
		log.Info().Msg("OCR disabled, only PDF text layers will be read")
		return &Service{languages: languages}, nil
	}

	provider, err := NewTesseractProvider(ProviderConfig{Languages: languages})
	if err != nil {
		return nil, fmt.Errorf("create OCR provider: %w", err)
	}
	if !provider.IsAvailable() {
		log.Warn().Str("provider", provider.Name()).
			Msg("OCR provider not available, scanned documents will fail")
		return &Service{languages: languages}, nil
	}

	log.Info().Str("provider", provider.Name()).Strs("languages", languages).
		Msg("OCR service initialized")
	return &Service{provider: provider, languages: languages, enabled: true}, nil
}

// OCREnabled reports whether an OCR provider is available.
func (s *Service) OCREnabled() bool {
	return s.enabled
}

// Close releases the provider.
func (s *Service) Close() error {
	if s.provider != nil {
		return s.provider.Close()
	}
	return nil
}

// AcquireText returns the plain text of a document. PDFs are read page by
// page from the embedded text layer; a page with an empty layer is
// rasterized at the attempt's density and recognized instead. Images go
// straight to recognition. Unreadable sources propagate an error; there is
// no internal retry for corrupt input.
func (s *Service) AcquireText(ctx context.Context, path string, opts Options) (string, error) {
	opts.Languages = s.languages

	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return s.acquirePDF(ctx, path, opts)
	case ".jpg", ".jpeg", ".png":
		if !s.enabled {
			return "", fmt.Errorf("image %s requires OCR, which is not available", filepath.Base(path))
		}
		return s.provider.ImageText(ctx, path, opts)
	default:
		return "", fmt.Errorf("unsupported document type %q", filepath.Ext(path))
	}
}

func (s *Service) acquirePDF(ctx context.Context, path string, opts Options) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read PDF: %w", err)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse PDF: %w", err)
	}

	var text strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if !page.V.IsNull() {
			content, err := page.GetPlainText(nil)
			if err == nil && strings.TrimSpace(content) != "" {
				text.WriteString(content)
				text.WriteString("\n")
				continue
			}
		}

		// Empty or unreadable text layer: the page is likely a scan.
		if !s.enabled {
			log.Warn().Str("pdf", filepath.Base(path)).Int("page", i).
				Msg("Page has no text layer and OCR is unavailable")
			continue
		}
		recognized, err := s.provider.PDFPageText(ctx, path, i, opts)
		if err != nil {
			log.Warn().Err(err).Str("pdf", filepath.Base(path)).Int("page", i).
				Msg("OCR failed for page, continuing with others")
			continue
		}
		text.WriteString(recognized)
		text.WriteString("\n")
	}

	return strings.TrimSpace(text.String()), nil
}
