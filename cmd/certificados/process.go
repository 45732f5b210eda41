package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Juangranados89/certificados-app/internal/archive"
	"github.com/Juangranados89/certificados-app/internal/extract"
	"github.com/Juangranados89/certificados-app/internal/jobs"
	"github.com/Juangranados89/certificados-app/internal/ocr"
	"github.com/Juangranados89/certificados-app/internal/pipeline"
	"github.com/Juangranados89/certificados-app/internal/report"
)

func newProcessCommand() *cobra.Command {
	var (
		mode      string
		outDir    string
		languages []string
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:   "process [files or directories]",
		Short: "Process a local batch of certificate documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(args, mode, outDir, languages, verbose)
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "auto", "extraction mode: auto, confined-space, heights, lifting, generic")
	cmd.Flags().StringVarP(&outDir, "out", "o", "./salida", "output directory for filed documents")
	cmd.Flags().StringSliceVar(&languages, "lang", []string{"spa"}, "OCR languages")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	return cmd
}

func runProcess(args []string, modeStr, outDir string, languages []string, verbose bool) error {
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	mode, err := extract.ParseMode(modeStr)
	if err != nil {
		return err
	}

	files, err := collectDocuments(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no processable documents found")
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	startVips()
	defer stopVips()

	texts, err := ocr.NewService(ocr.ServiceConfig{Enabled: true, Languages: languages})
	if err != nil {
		return err
	}
	defer texts.Close()

	proc := pipeline.NewProcessor(texts)
	rows := proc.ProcessBatch(context.Background(), files, mode, outDir, func(done int, rec extract.Record) {
		log.Info().Int("done", done).Int("total", len(files)).Str("file", rec.SourceFile).
			Str("status", string(rec.Status)).Msg("Processed")
	})

	reportPath := filepath.Join(outDir, jobs.ReportName)
	if err := report.WriteXLSX(reportPath, rows); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	printSummary(rows)
	fmt.Printf("\nReport: %s\n", reportPath)
	return nil
}

// collectDocuments expands arguments into the list of supported documents,
// walking directories recursively.
func collectDocuments(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if archive.SupportedMember(arg) {
				files = append(files, arg)
			}
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && archive.SupportedMember(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

func printSummary(rows []extract.Record) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Archivo", "Nombre", "CC", "Nivel", "Expedicion", "Vencimiento", "Estado"})

	for _, rec := range rows {
		name := rec.NewName
		if name == "" {
			name = rec.SourceFile
		}
		status := "OK"
		if rec.Status != extract.StatusOK {
			status = rec.FailReason
		}
		table.Append([]string{name, rec.FullName, rec.IDNumber, rec.Level, rec.IssueDate, rec.ExpiryDate, status})
	}
	table.Render()
}
