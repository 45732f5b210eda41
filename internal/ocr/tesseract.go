//go:build cgo && ocr

package ocr

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/otiai10/gosseract/v2"
	"github.com/rs/zerolog/log"
)

// TesseractProvider implements OCR using Tesseract, with pdftoppm
// (poppler-utils) for PDF page rasterization.
type TesseractProvider struct {
	name             string
	defaultLanguages []string
	available        bool
	tesseractPath    string
	pdftoppmPath     string
}

// NewTesseractProvider creates a new Tesseract OCR provider.
func NewTesseractProvider(cfg ProviderConfig) (*TesseractProvider, error) {
	languages := cfg.Languages
	if len(languages) == 0 {
		languages = []string{"spa"}
	}

	tesseractPath, err := exec.LookPath("tesseract")
	available := err == nil
	pdftoppmPath, _ := exec.LookPath("pdftoppm")

	if !available {
		log.Warn().Msg("Tesseract not found in PATH, OCR will be unavailable")
	} else {
		log.Debug().
			Str("tesseract_path", tesseractPath).
			Str("pdftoppm_path", pdftoppmPath).
			Strs("languages", languages).
			Msg("Tesseract provider initialized")
	}

	return &TesseractProvider{
		name:             "tesseract",
		defaultLanguages: languages,
		available:        available,
		tesseractPath:    tesseractPath,
		pdftoppmPath:     pdftoppmPath,
	}, nil
}

func (p *TesseractProvider) Name() string {
	return p.name
}

func (p *TesseractProvider) IsAvailable() bool {
	return p.available
}

func (p *TesseractProvider) Close() error {
	return nil
}

func (p *TesseractProvider) ImageText(ctx context.Context, imagePath string, opts Options) (string, error) {
	if !p.available {
		return "", fmt.Errorf("tesseract is not available")
	}

	path := imagePath
	if opts.Preprocess {
		cleaned, err := preprocessToTemp(imagePath)
		if err != nil {
			log.Warn().Err(err).Str("image", filepath.Base(imagePath)).
				Msg("Preprocessing failed, recognizing raw image")
		} else {
			defer os.Remove(cleaned)
			path = cleaned
		}
	}

	return p.recognize(path, opts)
}

func (p *TesseractProvider) PDFPageText(ctx context.Context, pdfPath string, page int, opts Options) (string, error) {
	if !p.available {
		return "", fmt.Errorf("tesseract is not available")
	}
	if p.pdftoppmPath == "" {
		return "", fmt.Errorf("pdftoppm (poppler-utils) is required for PDF OCR but not found")
	}

	imgPath, tmpDir, err := p.rasterizePage(ctx, pdfPath, page, opts.Density)
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(tmpDir)

	return p.ImageText(ctx, imgPath, opts)
}

// rasterizePage renders a single PDF page to PNG at the requested density.
func (p *TesseractProvider) rasterizePage(ctx context.Context, pdfPath string, page, density int) (string, string, error) {
	tmpDir, err := os.MkdirTemp("", "ocr-page-*")
	if err != nil {
		return "", "", fmt.Errorf("create temp dir: %w", err)
	}

	if density <= 0 {
		density = 150
	}
	outputPrefix := filepath.Join(tmpDir, "page")
	cmd := exec.CommandContext(ctx, p.pdftoppmPath,
		"-png",
		"-r", strconv.Itoa(density),
		"-f", strconv.Itoa(page),
		"-l", strconv.Itoa(page),
		pdfPath, outputPrefix)

	if output, err := cmd.CombinedOutput(); err != nil {
		os.RemoveAll(tmpDir)
		return "", "", fmt.Errorf("pdftoppm failed: %w, output: %s", err, string(output))
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		os.RemoveAll(tmpDir)
		return "", "", fmt.Errorf("read temp dir: %w", err)
	}

	var images []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".png") {
			images = append(images, filepath.Join(tmpDir, entry.Name()))
		}
	}
	if len(images) == 0 {
		os.RemoveAll(tmpDir)
		return "", "", fmt.Errorf("no image produced for page %d", page)
	}
	sort.Strings(images)

	return images[0], tmpDir, nil
}

// recognize runs Tesseract on a single image file.
func (p *TesseractProvider) recognize(imagePath string, opts Options) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	languages := opts.Languages
	if len(languages) == 0 {
		languages = p.defaultLanguages
	}
	if err := client.SetLanguage(strings.Join(languages, "+")); err != nil {
		return "", fmt.Errorf("set language: %w", err)
	}
	if err := client.SetImage(imagePath); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}
	return strings.TrimSpace(text), nil
}
