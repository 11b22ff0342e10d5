package fileutil

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// CSVReader provides a helper/utility to read CSV file(s)
type CSVReader struct {
	FilePath string

	// Comment, if not 0, marks lines to skip when they start with it
	Comment rune
}

// NewCSVReader returns a CSVReader instance for a specified CSV file
func NewCSVReader(fp string) *CSVReader {
	return &CSVReader{
		FilePath: fp,
		Comment:  '#',
	}
}

func (r *CSVReader) newReader(f io.Reader) *csv.Reader {
	reader := csv.NewReader(f)
	reader.Comment = r.Comment
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1 // short rows are reported to the row processor
	return reader
}

// ReadHeader reads ONLY the header of the specified CSV file
func (r *CSVReader) ReadHeader() ([]string, error) {
	f, err := os.Open(r.FilePath)
	if err != nil {
		return nil, fmt.Errorf("opening a csv file: %w", err)
	}
	defer f.Close()

	header, err := r.newReader(f).Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	return header, nil
}

// ReadAndProcessByRow reads and processes a CSV file row by row. The row
// number passed to processorFn is 1-based and excludes the header.
func (r *CSVReader) ReadAndProcessByRow(processorFn func(rowNum int, row []string) error) error {
	f, err := os.Open(r.FilePath)
	if err != nil {
		return fmt.Errorf("opening a csv file: %w", err)
	}
	defer f.Close()

	reader := r.newReader(f)

	// Skip header
	_, err = reader.Read()
	if err != nil {
		return fmt.Errorf("reading CSV header: %w", err)
	}

	for rowNum := 1; ; rowNum++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading CSV row %d: %w", rowNum, err)
		}

		if err = processorFn(rowNum, row); err != nil {
			return err
		}
	}

	return nil
}
