package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// workbookExtensions are the spreadsheet formats excelize can open here.
var workbookExtensions = map[string]bool{
	".xlsx": true,
	".xlsm": true,
}

// FileValidator checks the wage report workbook before the parser touches it.
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger,
	}
}

// ValidateWorkbook validates that the workbook path points at a readable
// spreadsheet of acceptable size. maxSize of zero disables the size check.
func (v *FileValidator) ValidateWorkbook(path string, maxSize int64) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("Workbook does not exist",
			slog.String("path", path))
		return fmt.Errorf("workbook %s does not exist", path)
	}
	if err != nil {
		v.logger.Error("Failed to stat workbook",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to stat workbook %s: %w", path, err)
	}

	if info.IsDir() {
		v.logger.Error("Workbook path is a directory",
			slog.String("path", path))
		return fmt.Errorf("%s is a directory, not a workbook", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !workbookExtensions[ext] {
		v.logger.Error("Unsupported workbook extension",
			slog.String("path", path),
			slog.String("extension", ext))
		return fmt.Errorf("unsupported workbook extension %q (want .xlsx or .xlsm)", ext)
	}

	if maxSize > 0 && info.Size() > maxSize {
		v.logger.Error("Workbook exceeds size limit",
			slog.String("path", path),
			slog.Int64("size", info.Size()),
			slog.Int64("limit", maxSize))
		return fmt.Errorf("workbook %s is %d bytes, exceeding the %d byte limit", path, info.Size(), maxSize)
	}

	v.logger.Info("Workbook validated",
		slog.String("path", path),
		slog.Int64("size", info.Size()))

	return nil
}
