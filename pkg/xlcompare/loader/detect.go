package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimeXLS  = "application/vnd.ms-excel"
	mimeZip  = "application/zip"
	mimeOLE  = "application/x-ole-storage"
)

// Detect sniffs the container format of the file at path.
// Generic zip and OLE signatures fall back to the file extension.
func Detect(path string) (Format, error) {
	if _, err := os.Stat(path); err != nil {
		return "", newDecodeError(path, FormatAuto, err)
	}

	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return "", newDecodeError(path, FormatAuto, err)
	}

	switch {
	case mtype.Is(mimeXLSX):
		return FormatPackedXML, nil
	case mtype.Is(mimeXLS):
		return FormatLegacyBinary, nil
	case mtype.Is(mimeZip), mtype.Is(mimeOLE):
		if f, ok := formatFromExtension(path); ok {
			return f, nil
		}
	}

	return "", fmt.Errorf("%w: %s is %s", ErrUnsupportedContainer, filepath.Base(path), mtype.String())
}

func formatFromExtension(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return FormatPackedXML, true
	case ".xls":
		return FormatLegacyBinary, true
	}
	return "", false
}
