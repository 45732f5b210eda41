package jobs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Juangranados89/certificados-app/internal/archive"
	"github.com/Juangranados89/certificados-app/internal/extract"
	"github.com/Juangranados89/certificados-app/internal/pipeline"
	"github.com/Juangranados89/certificados-app/internal/report"
)

// Artifact names produced in each job's output directory on completion.
const (
	ReportName  = "reporte.xlsx"
	ArchiveName = "certificados.zip"
)

// Runner owns the worker goroutines that execute batch jobs. Documents
// within a batch are processed strictly sequentially; independent batches
// run concurrently, each in its own output directory.
type Runner struct {
	store *Store
	proc  *pipeline.Processor
}

// NewRunner creates a runner bound to a store and a processor.
func NewRunner(store *Store, proc *pipeline.Processor) *Runner {
	return &Runner{store: store, proc: proc}
}

// Submit registers a job and starts its worker. The returned id can be
// polled on the store immediately. The worker takes ownership of
// stagingDir (when non-empty) and removes it once the batch finishes.
func (r *Runner) Submit(ctx context.Context, files []string, mode extract.Mode, outputDir, stagingDir string) uuid.UUID {
	id := r.store.Create(mode, len(files), outputDir)
	go r.run(ctx, id, files, mode, outputDir, stagingDir)
	return id
}

func (r *Runner) run(ctx context.Context, id uuid.UUID, files []string, mode extract.Mode, outputDir, stagingDir string) {
	log.Info().Str("job", id.String()).Int("files", len(files)).Str("mode", string(mode)).
		Msg("Batch started")

	if stagingDir != "" {
		defer func() {
			if err := os.RemoveAll(stagingDir); err != nil {
				log.Warn().Err(err).Str("job", id.String()).Msg("Staging cleanup failed")
			}
		}()
	}

	r.store.Update(id, func(j *Job) { j.State = StateRunning })

	rows := r.proc.ProcessBatch(ctx, files, mode, outputDir, func(done int, _ extract.Record) {
		r.store.Update(id, func(j *Job) { j.Processed = done })
	})

	if err := report.WriteXLSX(filepath.Join(outputDir, ReportName), rows); err != nil {
		log.Error().Err(err).Str("job", id.String()).Msg("Report generation failed")
		r.store.Update(id, func(j *Job) {
			j.State = StateFailed
			j.Error = err.Error()
			j.Rows = rows
		})
		return
	}

	if err := archive.BuildZip(outputDir, filepath.Join(outputDir, ArchiveName)); err != nil {
		log.Error().Err(err).Str("job", id.String()).Msg("Archive assembly failed")
		r.store.Update(id, func(j *Job) {
			j.State = StateFailed
			j.Error = err.Error()
			j.Rows = rows
		})
		return
	}

	r.store.Update(id, func(j *Job) {
		j.State = StateCompleted
		j.Rows = rows
	})

	ok := 0
	for _, rec := range rows {
		if rec.Status == extract.StatusOK {
			ok++
		}
	}
	log.Info().Str("job", id.String()).Int("ok", ok).Int("failed", len(rows)-ok).
		Msg("Batch completed")
}
