package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Juangranados89/certificados-app/internal/extract"
	"github.com/Juangranados89/certificados-app/internal/ocr"
)

const confinedText = "CERTIFICADO ESPACIOS CONFINADOS: JUAN PEREZ GOMEZ " +
	"C.C. 12.345.678 NIVEL ENTRANTE FECHA DE EXPEDICION: 14/07/2025"

// fakeAcquirer scripts what each acquisition attempt returns, either per
// call order (seq) or per file name (byPath).
type fakeAcquirer struct {
	seq    []string
	byPath map[string]string
	err    error
	calls  []ocr.Options
}

func (f *fakeAcquirer) AcquireText(_ context.Context, path string, opts ocr.Options) (string, error) {
	f.calls = append(f.calls, opts)
	if f.err != nil {
		return "", f.err
	}
	if f.byPath != nil {
		return f.byPath[filepath.Base(path)], nil
	}
	idx := len(f.calls) - 1
	if idx >= len(f.seq) {
		idx = len(f.seq) - 1
	}
	return f.seq[idx], nil
}

func writeSource(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o644))
	return path
}

func TestProcessDocumentEscalatesUntilComplete(t *testing.T) {
	tmp := t.TempDir()
	src := writeSource(t, tmp, "escaneo.pdf")
	out := filepath.Join(tmp, "salida")

	// The low-resolution pass reads garbage; the second pass succeeds.
	fake := &fakeAcquirer{seq: []string{"RUIDO ILEGIBLE", confinedText}}
	proc := NewProcessor(fake)

	rec := proc.ProcessDocument(context.Background(), src, extract.ModeAuto, out)
	require.Equal(t, extract.StatusOK, rec.Status)
	assert.Equal(t, "JUAN_PEREZ_GOMEZ_12345678_ENTRANTE_.pdf", rec.NewName)

	require.Len(t, fake.calls, 2)
	assert.Equal(t, ocr.Options{Density: 150, Preprocess: false}, fake.calls[0])
	assert.Equal(t, ocr.Options{Density: 300, Preprocess: true}, fake.calls[1])

	_, err := os.Stat(filepath.Join(out, "ENTRANTE", rec.NewName))
	assert.NoError(t, err)
}

func TestProcessDocumentStopsAtFirstSuccess(t *testing.T) {
	tmp := t.TempDir()
	src := writeSource(t, tmp, "escaneo.pdf")

	fake := &fakeAcquirer{seq: []string{confinedText}}
	proc := NewProcessor(fake)

	rec := proc.ProcessDocument(context.Background(), src, extract.ModeAuto, filepath.Join(tmp, "salida"))
	assert.Equal(t, extract.StatusOK, rec.Status)
	assert.Len(t, fake.calls, 1)
}

func TestProcessDocumentExhaustsLadder(t *testing.T) {
	tmp := t.TempDir()
	src := writeSource(t, tmp, "escaneo.pdf")
	out := filepath.Join(tmp, "salida")

	fake := &fakeAcquirer{seq: []string{"SIN MARCADORES CONOCIDOS"}}
	proc := NewProcessor(fake)

	rec := proc.ProcessDocument(context.Background(), src, extract.ModeAuto, out)
	assert.Equal(t, extract.StatusFailed, rec.Status)
	assert.Equal(t, "patron no reconocido", rec.FailReason)
	assert.Len(t, fake.calls, len(DefaultAttempts))

	// Nothing was filed.
	_, err := os.Stat(out)
	assert.True(t, os.IsNotExist(err))
}

func TestProcessDocumentUnreadableSource(t *testing.T) {
	tmp := t.TempDir()
	src := writeSource(t, tmp, "roto.pdf")

	fake := &fakeAcquirer{err: errors.New("sin texto legible")}
	proc := NewProcessor(fake)

	rec := proc.ProcessDocument(context.Background(), src, extract.ModeAuto, filepath.Join(tmp, "salida"))
	assert.Equal(t, extract.StatusFailed, rec.Status)
	assert.Equal(t, "sin texto legible", rec.FailReason)
	// A hard read failure does not escalate.
	assert.Len(t, fake.calls, 1)
}

func TestProcessBatch(t *testing.T) {
	tmp := t.TempDir()
	good := writeSource(t, tmp, "bueno.pdf")
	bad := writeSource(t, tmp, "malo.pdf")
	out := filepath.Join(tmp, "salida")

	fake := &fakeAcquirer{byPath: map[string]string{
		"bueno.pdf": confinedText,
		"malo.pdf":  "NADA RECONOCIBLE",
	}}
	proc := NewProcessor(fake)

	var progress []int
	rows := proc.ProcessBatch(context.Background(), []string{bad, good}, extract.ModeAuto, out,
		func(done int, _ extract.Record) { progress = append(progress, done) })

	require.Len(t, rows, 2)
	// A failing document never aborts the remainder of the batch.
	assert.Equal(t, extract.StatusFailed, rows[0].Status)
	assert.Equal(t, "malo.pdf", rows[0].SourceFile)
	assert.Equal(t, extract.StatusOK, rows[1].Status)
	assert.Equal(t, []int{1, 2}, progress)
}
