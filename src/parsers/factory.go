package parsers

import (
	"path/filepath"
	"strings"
)

// ForFilename selects a parser strictly by filename extension,
// case-insensitive: .xlsx means the advertising spreadsheet, anything else
// is treated as the delimited-text sales export.
func ForFilename(filename string, chunkSizeBytes int) Parser {
	if strings.EqualFold(filepath.Ext(filename), ".xlsx") {
		return NewXLSXParser()
	}
	return NewCSVParser(chunkSizeBytes)
}
