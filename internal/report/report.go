// Package report writes the tabular batch summary as an XLSX workbook.
package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Juangranados89/certificados-app/internal/extract"
)

const sheetName = "Certificados"

// headers mirrors the row layout users review after a batch.
var headers = []string{"ARCHIVO", "NOMBRE", "CC", "CURSO", "NIVEL", "FECHA_EXP", "FECHA_VEN", "ESTADO"}

// WriteXLSX writes one row per processed document. Failed rows keep the
// original file name and carry the failure reason in the status column.
func WriteXLSX(path string, rows []extract.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	endHeader, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(sheetName, "A1", endHeader, headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, rec := range rows {
		values := []string{
			fileColumn(rec),
			rec.FullName,
			rec.IDNumber,
			rec.Course,
			rec.Level,
			rec.IssueDate,
			rec.ExpiryDate,
			statusColumn(rec),
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("write row %d: %w", i+1, err)
			}
		}
	}

	if err := f.SetColWidth(sheetName, "A", "A", 42); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	if err := f.SetColWidth(sheetName, "B", "H", 22); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}

// fileColumn shows the canonical name for filed documents and the original
// name for failures, so users can locate the source for review.
func fileColumn(rec extract.Record) string {
	if rec.NewName != "" {
		return rec.NewName
	}
	return rec.SourceFile
}

func statusColumn(rec extract.Record) string {
	if rec.Status == extract.StatusOK {
		return "OK"
	}
	return "ERROR: " + rec.FailReason
}
