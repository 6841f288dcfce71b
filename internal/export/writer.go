package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gphunter1004/automation/internal/logging"
	"github.com/gphunter1004/automation/internal/validation"

	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"
)

// Output formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// XLSX layout: headers on the second row, data from the fourth.
const (
	SheetName     = "Sheet1"
	HeaderRow     = 2
	FirstDataRow  = 4
	ColumnWidth   = 15
	HeaderFillHex = "E0E0E0"
)

// Writer writes ledger rows to files or streams.
type Writer struct {
	delimiter rune
	logger    logging.Logger
}

// NewWriter creates a Writer using delimiter for CSV output.
func NewWriter(delimiter rune, logger logging.Logger) *Writer {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if delimiter == 0 {
		delimiter = ','
	}
	return &Writer{delimiter: delimiter, logger: logger}
}

// WriteCSV writes rows with a header line.
func (w *Writer) WriteCSV(out io.Writer, rows []LedgerRow) error {
	csvWriter := csv.NewWriter(out)
	csvWriter.Comma = w.delimiter

	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

// WriteXLSX writes rows as a workbook with a bold grey header row.
func (w *Writer) WriteXLSX(out io.Writer, rows []LedgerRow) error {
	f, err := buildWorkbook(rows)
	if err != nil {
		return err
	}
	defer func() {
		if err := f.Close(); err != nil {
			w.logger.WithError(err).Warn("Failed to close workbook")
		}
	}()

	if err := f.Write(out); err != nil {
		return fmt.Errorf("error writing workbook: %w", err)
	}
	return nil
}

func buildWorkbook(rows []LedgerRow) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := setRow(f, HeaderRow, Headers); err != nil {
		return nil, err
	}
	for i, row := range rows {
		if err := setRow(f, FirstDataRow+i, row.Values()); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{HeaderFillHex}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("error creating header style: %w", err)
	}

	first, _ := excelize.CoordinatesToCellName(1, HeaderRow)
	last, _ := excelize.CoordinatesToCellName(len(Headers), HeaderRow)
	if err := f.SetCellStyle(SheetName, first, last, headerStyle); err != nil {
		return nil, fmt.Errorf("error styling header: %w", err)
	}

	firstCol, _ := excelize.ColumnNumberToName(1)
	lastCol, _ := excelize.ColumnNumberToName(len(Headers))
	if err := f.SetColWidth(SheetName, firstCol, lastCol, ColumnWidth); err != nil {
		return nil, fmt.Errorf("error setting column width: %w", err)
	}

	return f, nil
}

func setRow(f *excelize.File, row int, values []string) error {
	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(SheetName, cell, value); err != nil {
			return fmt.Errorf("error writing cell %s: %w", cell, err)
		}
	}
	return nil
}

// WriteFile writes rows to path in the given format, creating the parent
// directory when needed. An empty format is taken from the file extension.
func (w *Writer) WriteFile(path, format string, rows []LedgerRow) error {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
	if err := validation.IsValidOutputFormat(format); err != nil {
		return err
	}

	log := w.logger.WithFields(
		logging.Field{Key: logging.FieldOutputFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(rows)},
	)
	log.Info("Writing ledger")

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	switch format {
	case FormatXLSX:
		err = w.WriteXLSX(file, rows)
	default:
		err = w.WriteCSV(file, rows)
	}
	if err != nil {
		log.WithError(err).Error("Failed to write ledger")
		return err
	}

	log.Info("Ledger written")
	return nil
}
