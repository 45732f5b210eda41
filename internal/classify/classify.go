// Package classify maps extracted certificate records to a destination
// category folder and a canonical file name.
package classify

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Juangranados89/certificados-app/internal/extract"
)

// categoryPriority lists the role keywords checked against the level, in
// priority order. First match wins; this is a priority list, not an
// alphabetical one.
var categoryPriority = []string{"APAREJADOR", "OPERADOR", "SUPERVISOR"}

// DefaultCategory is used when neither a role keyword nor a level string
// is available.
const DefaultCategory = "OTROS"

// Category resolves the destination folder for a record from its level,
// falling back to the raw course string.
func Category(rec extract.Record) string {
	src := strings.ToUpper(rec.Level)
	if strings.TrimSpace(src) == "" {
		src = strings.ToUpper(rec.Course)
	}
	for _, kw := range categoryPriority {
		if strings.Contains(src, kw) {
			return kw
		}
	}
	if s := strings.TrimSpace(src); s != "" {
		return strings.ReplaceAll(s, " ", "_")
	}
	return DefaultCategory
}

// FileName builds the canonical destination name for an OK record. The
// output is always a .pdf, even for image sources, which are converted to
// single-page PDF containers before filing.
func FileName(rec extract.Record) string {
	name := strings.ReplaceAll(strings.ToUpper(rec.FullName), " ", "_")
	return fmt.Sprintf("%s_%s_%s_.pdf", name, rec.IDNumber, Category(rec))
}

// File copies the (already PDF) source document into the category folder
// under outRoot using the canonical name, creating the folder when absent.
// Returns the destination path.
func File(rec extract.Record, srcPath, outRoot string) (string, error) {
	dir := filepath.Join(outRoot, Category(rec))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create category folder: %w", err)
	}
	dst := filepath.Join(dir, FileName(rec))
	if err := copyFile(srcPath, dst); err != nil {
		return "", err
	}
	return dst, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy %s: %w", filepath.Base(src), err)
	}
	return out.Close()
}
