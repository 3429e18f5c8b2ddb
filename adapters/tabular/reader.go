package tabular

import (
	"bytes"
	"encoding/csv"
	"log"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"datasheet/internal/errors"
)

// Reader decodes an uploaded CSV or XLSX byte stream into raw string rows.
type Reader struct {
	filename string
	fileType string // "csv" or "xlsx"
}

// NewReader creates a reader for the given filename; the file type is
// chosen by extension, defaulting to CSV.
func NewReader(filename string) *Reader {
	ext := strings.ToLower(filepath.Ext(filename))
	fileType := "csv"
	if ext == ".xlsx" || ext == ".xls" {
		fileType = "xlsx"
	}
	return &Reader{filename: filename, fileType: fileType}
}

// ReadRows decodes the stream into rows of cells. Rows may have varying
// widths; the normalizer decides whether the shape is usable. A malformed
// stream fails with a PARSE_ERROR and yields no partial rows.
func (r *Reader) ReadRows(data []byte) ([][]string, error) {
	switch r.fileType {
	case "csv":
		return r.readCSVRows(data)
	case "xlsx":
		return r.readExcelRows(data)
	default:
		return nil, errors.InvalidInput("unsupported file type: " + r.fileType)
	}
}

func (r *Reader) readCSVRows(data []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		log.Printf("[Reader] FAILED - Error reading CSV stream %s: %v", r.filename, err)
		return nil, errors.ParseError("failed to read CSV stream", err)
	}

	log.Printf("[Reader] CSV stream %s read (%d rows)", r.filename, len(rows))
	return rows, nil
}

func (r *Reader) readExcelRows(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		log.Printf("[Reader] FAILED - Error opening workbook %s: %v", r.filename, err)
		return nil, errors.ParseError("failed to open workbook", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		log.Printf("[Reader] FAILED - Error reading sheet %q from %s: %v", sheet, r.filename, err)
		return nil, errors.ParseError("failed to read worksheet", err)
	}

	log.Printf("[Reader] Workbook %s sheet %q read (%d rows)", r.filename, sheet, len(rows))
	return rows, nil
}
