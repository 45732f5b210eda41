// Package pipeline drives batch processing: it couples text acquisition
// and field extraction in one escalating retry loop, then renames and
// files each recognized document.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/rs/zerolog/log"

	"github.com/Juangranados89/certificados-app/internal/classify"
	"github.com/Juangranados89/certificados-app/internal/extract"
	"github.com/Juangranados89/certificados-app/internal/ocr"
)

// TextAcquirer is the acquisition dependency; satisfied by *ocr.Service.
type TextAcquirer interface {
	AcquireText(ctx context.Context, path string, opts ocr.Options) (string, error)
}

// Attempt is one rung of the acquisition retry ladder.
type Attempt struct {
	Density    int
	Preprocess bool
}

// DefaultAttempts escalates from a fast low-resolution pass to slower
// high-resolution passes with preprocessing. The ladder stops at the first
// attempt whose extraction yields the required fields; otherwise the last
// attempt's result stands.
var DefaultAttempts = []Attempt{
	{Density: 150, Preprocess: false},
	{Density: 300, Preprocess: true},
	{Density: 400, Preprocess: true},
}

// Processor runs documents through acquisition, extraction and filing.
type Processor struct {
	acquirer TextAcquirer
	attempts []Attempt
}

// NewProcessor creates a processor with the default retry ladder.
func NewProcessor(acquirer TextAcquirer) *Processor {
	return &Processor{acquirer: acquirer, attempts: DefaultAttempts}
}

// NewProcessorWithAttempts overrides the retry ladder.
func NewProcessorWithAttempts(acquirer TextAcquirer, attempts []Attempt) *Processor {
	if len(attempts) == 0 {
		attempts = DefaultAttempts
	}
	return &Processor{acquirer: acquirer, attempts: attempts}
}

// ProcessBatch processes files strictly sequentially. A failing document
// is recorded and never aborts the remainder. onProgress, when non-nil, is
// called after each document with the 1-based count of processed files.
func (p *Processor) ProcessBatch(ctx context.Context, files []string, mode extract.Mode, outDir string, onProgress func(done int, rec extract.Record)) []extract.Record {
	records := make([]extract.Record, 0, len(files))
	for i, f := range files {
		rec := p.ProcessDocument(ctx, f, mode, outDir)
		records = append(records, rec)
		if onProgress != nil {
			onProgress(i+1, rec)
		}
	}
	return records
}

// ProcessDocument runs the coupled acquisition/extraction retry loop on a
// single document and, on success, files it under its category folder.
func (p *Processor) ProcessDocument(ctx context.Context, path string, mode extract.Mode, outDir string) extract.Record {
	base := filepath.Base(path)

	var fs extract.FieldSet
	for i, att := range p.attempts {
		text, err := p.acquirer.AcquireText(ctx, path, ocr.Options{
			Density:    att.Density,
			Preprocess: att.Preprocess,
		})
		if err != nil {
			// Unreadable source: hard failure for this document, no
			// escalation.
			log.Warn().Err(err).Str("file", base).Msg("Document could not be read")
			return extract.FailedRecord(base, err)
		}

		fs = extract.Route(text, mode)
		if fs.Complete() {
			break
		}
		if i < len(p.attempts)-1 {
			log.Debug().Str("file", base).Int("attempt", i+1).
				Int("next_density", p.attempts[i+1].Density).
				Msg("Required fields missing, escalating acquisition")
		}
	}

	rec := extract.NewRecord(base, fs)
	if rec.Status != extract.StatusOK {
		log.Info().Str("file", base).Str("reason", rec.FailReason).Msg("Extraction failed")
		return rec
	}

	dest, err := p.file(rec, path, outDir)
	if err != nil {
		log.Warn().Err(err).Str("file", base).Msg("Filing failed")
		return extract.FailedRecord(base, err)
	}
	rec.NewName = filepath.Base(dest)

	log.Debug().Str("file", base).Str("filed_as", rec.NewName).Msg("Document filed")
	return rec
}

// file copies the document into its category folder, converting image
// sources into single-page PDF containers first.
func (p *Processor) file(rec extract.Record, srcPath, outDir string) (string, error) {
	src := srcPath
	if isImage(srcPath) {
		converted, err := imageToPDF(srcPath)
		if err != nil {
			return "", fmt.Errorf("convert image to PDF: %w", err)
		}
		defer os.Remove(converted)
		src = converted
	}
	return classify.File(rec, src, outDir)
}

func isImage(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}

// imageToPDF wraps an image into a single-page PDF container.
func imageToPDF(imagePath string) (string, error) {
	tmp, err := os.CreateTemp("", "certificado-*.pdf")
	if err != nil {
		return "", err
	}
	tmp.Close()

	if err := api.ImportImagesFile([]string{imagePath}, tmp.Name(), nil, nil); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}
