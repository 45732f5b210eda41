package api

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Juangranados89/certificados-app/internal/archive"
	"github.com/Juangranados89/certificados-app/internal/extract"
	"github.com/Juangranados89/certificados-app/internal/jobs"
)

// allowedUploadExts are the extensions accepted at the upload boundary.
// ZIP bundles are expanded; their members pass through the same filter as
// direct uploads.
var allowedUploadExts = map[string]bool{
	".pdf":  true,
	".zip":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// allowedContentTypes are the sniffed MIME types a saved document may have.
var allowedContentTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
}

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// handleCreateJob accepts a multipart batch (field "files", optional field
// "mode"), stages the documents in a per-job working directory and starts
// a worker. Responds 202 with the job id for polling.
func (s *Server) handleCreateJob(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "multipart form required")
	}

	uploads := form.File["files"]
	if len(uploads) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no files selected")
	}
	if len(uploads) > s.config.Storage.MaxFiles {
		return fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("at most %d files per batch", s.config.Storage.MaxFiles))
	}

	mode, err := extract.ParseMode(c.FormValue("mode"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	workDir, err := os.MkdirTemp("", "certificados-in-*")
	if err != nil {
		return fmt.Errorf("create working directory: %w", err)
	}
	submitted := false
	defer func() {
		// The worker owns the staging directory once the job is submitted;
		// until then any early return must clean it up.
		if !submitted {
			os.RemoveAll(workDir)
		}
	}()

	if err := os.MkdirAll(s.config.Storage.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output root: %w", err)
	}
	outDir, err := os.MkdirTemp(s.config.Storage.OutputDir, "lote-*")
	if err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	defer func() {
		if !submitted {
			os.RemoveAll(outDir)
		}
	}()

	var docs []string
	for _, upload := range uploads {
		name := sanitizeName(upload.Filename)
		ext := strings.ToLower(filepath.Ext(name))
		if !allowedUploadExts[ext] {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("unsupported file type: %s", upload.Filename))
		}

		staged := filepath.Join(workDir, name)
		if err := c.SaveFile(upload, staged); err != nil {
			return fmt.Errorf("save upload %s: %w", name, err)
		}

		if ext == ".zip" {
			members, err := archive.ExtractBundle(staged, workDir)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest,
					fmt.Sprintf("invalid bundle %s: %s", name, err))
			}
			os.Remove(staged)
			// Bundle members pass the same content check as direct uploads.
			for _, member := range members {
				if err := verifyContentType(member); err != nil {
					return fiber.NewError(fiber.StatusBadRequest,
						fmt.Sprintf("%s: %s: %s", name, filepath.Base(member), err))
				}
			}
			docs = append(docs, members...)
			continue
		}

		if err := verifyContentType(staged); err != nil {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("%s: %s", name, err))
		}
		docs = append(docs, staged)
	}

	if len(docs) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no processable documents in upload")
	}

	id := s.runner.Submit(context.Background(), docs, mode, outDir, workDir)
	submitted = true
	log.Info().Str("job", id.String()).Int("documents", len(docs)).Msg("Batch accepted")

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"job_id": id})
}

func (s *Server) handleGetJob(c *fiber.Ctx) error {
	job, err := s.lookupJob(c)
	if err != nil {
		return err
	}
	return c.JSON(job)
}

func (s *Server) handleDownloadReport(c *fiber.Ctx) error {
	return s.download(c, jobs.ReportName)
}

func (s *Server) handleDownloadArchive(c *fiber.Ctx) error {
	return s.download(c, jobs.ArchiveName)
}

func (s *Server) download(c *fiber.Ctx, artifact string) error {
	job, err := s.lookupJob(c)
	if err != nil {
		return err
	}
	if job.State != jobs.StateCompleted {
		return fiber.NewError(fiber.StatusConflict, "job has not completed")
	}
	return c.Download(filepath.Join(job.OutputDir, artifact), artifact)
}

func (s *Server) lookupJob(c *fiber.Ctx) (jobs.Job, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jobs.Job{}, fiber.NewError(fiber.StatusBadRequest, "invalid job id")
	}
	job, err := s.store.Get(id)
	if err != nil {
		return jobs.Job{}, fiber.NewError(fiber.StatusNotFound, "job not found")
	}
	return job, nil
}

// sanitizeName flattens an upload name to a safe base name.
func sanitizeName(name string) string {
	base := filepath.Base(filepath.Clean(name))
	base = unsafeNameChars.ReplaceAllString(base, "_")
	if base == "" || base == "." {
		base = "documento"
	}
	return base
}

// verifyContentType sniffs the staged file and rejects content that does
// not match a supported document type, regardless of its extension.
func verifyContentType(path string) error {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return fmt.Errorf("detect content type: %w", err)
	}
	if !allowedContentTypes[mt.String()] {
		return fmt.Errorf("unsupported content type %s", mt.String())
	}
	return nil
}
