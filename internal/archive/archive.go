// Package archive handles ZIP bundles on both sides of a batch: unpacking
// uploaded bundles into the job working directory and assembling the filed
// output tree into a downloadable archive.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// supportedExts are the document types accepted from inside a bundle.
var supportedExts = map[string]bool{
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// SupportedMember reports whether a bundle member name is a document type
// the pipeline can process.
func SupportedMember(name string) bool {
	return supportedExts[strings.ToLower(filepath.Ext(name))]
}

// ExtractBundle unpacks the supported members of a ZIP bundle into destDir
// and returns their paths. Member names are flattened to their base name,
// which also neutralizes path traversal in crafted archives. Unsupported
// members are skipped silently.
func ExtractBundle(zipPath, destDir string) ([]string, error) {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, fmt.Errorf("open bundle: %w", err)
	}
	defer zr.Close()

	var out []string
	for _, member := range zr.File {
		if member.FileInfo().IsDir() || !SupportedMember(member.Name) {
			continue
		}

		dst := filepath.Join(destDir, filepath.Base(member.Name))
		if err := extractMember(member, dst); err != nil {
			return nil, fmt.Errorf("extract %s: %w", member.Name, err)
		}
		out = append(out, dst)
	}
	return out, nil
}

func extractMember(member *zip.File, dst string) error {
	src, err := member.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return err
	}
	return out.Close()
}

// BuildZip assembles everything under srcDir into a ZIP at zipPath,
// preserving the category folder layout. The walk order is lexical, so
// the archive layout is deterministic. The archive file itself is skipped
// when it lives inside srcDir.
func BuildZip(srcDir, zipPath string) error {
	f, err := os.Create(zipPath)
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)

	err = filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path == zipPath {
			return nil
		}

		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}

		w, err := zw.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		src, err := os.Open(path)
		if err != nil {
			return err
		}
		defer src.Close()

		_, err = io.Copy(w, src)
		return err
	})
	if err != nil {
		zw.Close()
		return fmt.Errorf("assemble archive: %w", err)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize archive: %w", err)
	}
	return f.Close()
}
