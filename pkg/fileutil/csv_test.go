package fileutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tirasundara/ledger-service/pkg/fileutil"
)

func TestCSVReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.csv")
	content := "base, target, rate\n# comment line\nPLN, EUR, 0.22\nPLN,USD\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	reader := fileutil.NewCSVReader(path)

	header, err := reader.ReadHeader()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(header) != 3 || header[1] != "target" {
		t.Errorf("Expected trimmed header [base target rate], got %v", header)
	}

	var rows [][]string
	err = reader.ReadAndProcessByRow(func(rowNum int, row []string) error {
		rows = append(rows, row)
		return nil
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows (comment skipped), got %d", len(rows))
	}
	if len(rows[1]) != 2 {
		t.Errorf("Expected short row to be passed through, got %v", rows[1])
	}
}

func TestCSVReader_MissingFile(t *testing.T) {
	reader := fileutil.NewCSVReader(filepath.Join(t.TempDir(), "missing.csv"))

	if _, err := reader.ReadHeader(); err == nil {
		t.Errorf("Expected error for missing file")
	}
}
