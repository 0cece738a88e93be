package validation

import (
	"bytes"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
)

// AllowedClientContentTypes is a map for quick lookup of allowed client-declared MIME types.
var AllowedClientContentTypes = map[string]bool{
	"text/csv":                 true,
	"application/csv":          true,
	"application/vnd.ms-excel": true, // often used for CSV by older Excel
	"text/plain":               true, // CSVs are often plain text
	"application/octet-stream": true, // fallback, but be more cautious
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true, // .xlsx ad reports
}

// zipMagic is the local-file-header signature every .xlsx starts with.
var zipMagic = []byte{'P', 'K', 0x03, 0x04}

// ValidateClientContentType checks the Content-Type header provided by the client.
func ValidateClientContentType(contentType string) error {
	if contentType == "" {
		return nil // browsers sometimes omit the part header entirely
	}
	normalized := strings.ToLower(strings.Split(contentType, ";")[0])
	if allowed := AllowedClientContentTypes[strings.TrimSpace(normalized)]; !allowed {
		return fmt.Errorf("client-declared file type '%s' is not allowed for report upload", contentType)
	}
	return nil
}

// ValidateFileContent checks the actual file content signature (magic
// bytes) against what the filename extension promises. An .xlsx must carry
// the zip signature; anything else must look like text so later CSV
// parsing can fail cleanly instead of chewing on a binary.
func ValidateFileContent(filename string, data []byte) error {
	if strings.EqualFold(filepath.Ext(filename), ".xlsx") {
		if !bytes.HasPrefix(data, zipMagic) {
			return fmt.Errorf("file '%s' does not look like an XLSX workbook", filename)
		}
		return nil
	}

	probe := data
	if len(probe) > 512 {
		probe = probe[:512]
	}
	detected := http.DetectContentType(probe)
	detected = strings.ToLower(strings.Split(detected, ";")[0])

	allowedDetectedTypes := map[string]bool{
		"text/plain":               true,
		"text/csv":                 true,
		"application/csv":          true,
		"application/octet-stream": true, // be cautious with this; strict parsing is key later
	}
	if !allowedDetectedTypes[detected] {
		return fmt.Errorf("detected file content type '%s' is not consistent with a delimited-text report", detected)
	}
	return nil
}
