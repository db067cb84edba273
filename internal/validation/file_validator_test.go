package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, size int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0644))
	return path
}

func TestValidateWorkbook(t *testing.T) {
	v := NewFileValidator(nil)

	path := writeFile(t, "wage_report.xlsx", 1024)
	assert.NoError(t, v.ValidateWorkbook(path, 0))
	assert.NoError(t, v.ValidateWorkbook(path, 2048))
}

func TestValidateWorkbookMissing(t *testing.T) {
	v := NewFileValidator(nil)

	err := v.ValidateWorkbook(filepath.Join(t.TempDir(), "absent.xlsx"), 0)
	assert.ErrorContains(t, err, "does not exist")
}

func TestValidateWorkbookDirectory(t *testing.T) {
	v := NewFileValidator(nil)

	err := v.ValidateWorkbook(t.TempDir(), 0)
	assert.ErrorContains(t, err, "directory")
}

func TestValidateWorkbookExtension(t *testing.T) {
	v := NewFileValidator(nil)

	tests := []struct {
		name string
		ok   bool
	}{
		{"report.xlsx", true},
		{"report.xlsm", true},
		{"REPORT.XLSX", true},
		{"report.csv", false},
		{"report.xls", false},
		{"report", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.name, 16)
			err := v.ValidateWorkbook(path, 0)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, "extension")
			}
		})
	}
}

func TestValidateWorkbookSizeLimit(t *testing.T) {
	v := NewFileValidator(nil)

	path := writeFile(t, "big.xlsx", 4096)
	err := v.ValidateWorkbook(path, 1024)
	assert.ErrorContains(t, err, "exceeding")
}
