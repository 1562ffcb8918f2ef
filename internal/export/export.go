// Package export writes scraped records as a table, one header row followed by one row per record.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gnzdotmx/ytdatascraper/internal/utils"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet used for .xlsx exports
const SheetName = "Videos"

// AllowedExtensions lists the output formats Write understands
var AllowedExtensions = []string{".csv", ".xlsx"}

// Record is anything that flattens into column name -> cell text
type Record interface {
	Values() map[string]string
}

// MaxXLSXCellChars is the most characters a workbook cell holds
const MaxXLSXCellChars = excelize.TotalCellChars

// TruncatedCell is a value that did not fit in a workbook cell
type TruncatedCell struct {
	Row    int // 1-based data row, the header excluded
	Column string
	Length int // characters before truncation
}

// Result describes a written table
type Result struct {
	Path      string
	Rows      int
	Truncated []TruncatedCell
}

// Write exports records to path with columns in exactly the given order.
// An existing file is overwritten. The format follows the extension: .xlsx writes a workbook,
// anything else CSV. Workbook cells are capped at MaxXLSXCellChars; every capped value is
// logged and listed in the result. CSV output is never shortened.
func Write[R Record](path string, records []R, columns []string) (Result, error) {
	if len(columns) == 0 {
		return Result{}, fmt.Errorf("at least one column is required")
	}
	if err := utils.EnsureParentDir(path); err != nil {
		return Result{}, err
	}

	rows := Rows(records, columns)
	res := Result{Path: path, Rows: len(rows)}

	var err error
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		res.Truncated = capCells(rows, columns)
		err = writeXLSX(path, columns, rows)
	} else {
		err = writeCSV(path, columns, rows)
	}
	if err != nil {
		return Result{}, err
	}

	utils.LogSuccess("Exported %d rows to %s", len(rows), path)
	return res, nil
}

// capCells shortens values longer than a workbook cell in place
func capCells(rows [][]string, columns []string) []TruncatedCell {
	var truncated []TruncatedCell
	for i, row := range rows {
		for j, v := range row {
			if len(v) <= MaxXLSXCellChars {
				continue
			}
			n := utf8.RuneCountInString(v)
			if n <= MaxXLSXCellChars {
				continue
			}
			row[j] = string([]rune(v)[:MaxXLSXCellChars])
			truncated = append(truncated, TruncatedCell{Row: i + 1, Column: columns[j], Length: n})
			utils.LogWarning("Row %d column %q has %d characters, truncated to %d in the workbook; use .csv for full text",
				i+1, columns[j], n, MaxXLSXCellChars)
		}
	}
	return truncated
}

// Rows projects records onto columns. Columns a record does not know render empty.
func Rows[R Record](records []R, columns []string) [][]string {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		values := rec.Values()
		row := make([]string, len(columns))
		for i, col := range columns {
			row[i] = values[col]
		}
		rows = append(rows, row)
	}
	return rows
}

func writeCSV(path string, header []string, rows [][]string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write CSV rows: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func writeXLSX(path string, header []string, rows [][]string) error {
	f := excelize.NewFile()
	defer utils.CloseQuietly(f, "workbook")

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet writer: %w", err)
	}

	if err := sw.SetRow("A1", toCells(header)); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, toCells(row)); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
