package validation

import (
	"bytes"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
)

// xlsx files are zip archives; legacy xls files use the OLE compound
// document container.
var (
	zipMagic = []byte{0x50, 0x4B, 0x03, 0x04}
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// WorkbookValidator validates uploaded workbook files before parsing
type WorkbookValidator struct {
	logger *slog.Logger
}

// NewWorkbookValidator creates a new workbook validator
func NewWorkbookValidator(logger *slog.Logger) *WorkbookValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookValidator{
		logger: logger,
	}
}

// ValidateFilename checks that the uploaded filename looks like an Excel
// workbook and is not an Office temp file
func (v *WorkbookValidator) ValidateFilename(name string) error {
	base := filepath.Base(name)

	ext := strings.ToLower(filepath.Ext(base))
	if ext != ".xlsx" && ext != ".xls" {
		v.logger.Warn("Rejected upload with unsupported extension",
			slog.String("filename", base),
			slog.String("extension", ext))
		return fmt.Errorf("file %s is not an Excel workbook (extension: %s)", base, ext)
	}

	if strings.HasPrefix(base, "~$") {
		v.logger.Warn("Rejected temporary Excel file",
			slog.String("filename", base))
		return fmt.Errorf("file %s is a temporary Excel file", base)
	}

	return nil
}

// ValidateContent sniffs the leading bytes of an upload and rejects bodies
// that are not Excel containers. head should hold at least the first 8 bytes.
func (v *WorkbookValidator) ValidateContent(head []byte) error {
	if bytes.HasPrefix(head, zipMagic) || bytes.HasPrefix(head, oleMagic) {
		return nil
	}

	v.logger.Warn("Rejected upload with unrecognized content",
		slog.Int("head_bytes", len(head)))
	return fmt.Errorf("file content is not a recognized Excel workbook format")
}
