package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sync"

	"github.com/mics-123/merch-dashboard/src/config"
	"github.com/mics-123/merch-dashboard/src/logger"
	"github.com/mics-123/merch-dashboard/src/models"
	"github.com/mics-123/merch-dashboard/src/security/validation"
	"github.com/mics-123/merch-dashboard/src/services"
	"github.com/mics-123/merch-dashboard/src/utils"
)

type UploadHandler struct {
	importService services.ImportService
	reportService services.ReportService
}

func NewUploadHandler(importService services.ImportService, reportService services.ReportService) *UploadHandler {
	return &UploadHandler{
		importService: importService,
		reportService: reportService,
	}
}

// fileImportResult is the per-file terminal outcome returned to the client.
// Progress notifications are logged, not returned; the HTTP response only
// carries each file's terminal message.
type fileImportResult struct {
	Filename string            `json:"filename"`
	OK       bool              `json:"ok"`
	Kind     models.ReportKind `json:"kind,omitempty"`
	Count    int               `json:"count,omitempty"`
	Error    string            `json:"error,omitempty"`
}

type uploadResponse struct {
	Files []fileImportResult `json:"files"`
}

// HandleUpload accepts one or more report files under the repeatable
// "file" form field, spawns one isolated import task per file, and waits
// for every task's terminal notification. Each terminal success triggers a
// combined-view rebuild on the next dashboard read.
func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(config.Cfg.MaxUploadSizeBytes); err != nil {
		logger.L.Warn("Failed to parse multipart form or request too large", "error", err, "limit", config.Cfg.MaxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("Failed to parse form or request too large (max %d MB)", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	fileHeaders := r.MultipartForm.File["file"]
	if len(fileHeaders) == 0 {
		utils.SendJSONError(w, "No files submitted. Ensure the 'file' field is used.", http.StatusBadRequest)
		return
	}

	results := make([]fileImportResult, len(fileHeaders))
	var wg sync.WaitGroup

	for i, fileHeader := range fileHeaders {
		data, err := h.readUpload(fileHeader)
		if err != nil {
			// File-read and pre-flight validation failures are that
			// file's terminal failure; other files proceed untouched.
			logger.L.Warn("Rejected uploaded file", "filename", fileHeader.Filename, "error", err)
			results[i] = fileImportResult{Filename: fileHeader.Filename, OK: false, Error: err.Error()}
			continue
		}

		notifications := h.importService.Submit(fileHeader.Filename, data)
		wg.Add(1)
		go func(i int, filename string, notifications <-chan services.Notification) {
			defer wg.Done()
			for n := range notifications {
				if !n.Terminal() {
					logger.L.Debug("Import progress", "filename", filename, "kind", n.Kind, "count", n.Count)
					continue
				}
				results[i] = fileImportResult{
					Filename: filename,
					OK:       n.OK,
					Kind:     n.Kind,
					Count:    n.Count,
					Error:    n.Error,
				}
				if n.OK {
					h.reportService.Invalidate()
				}
			}
		}(i, fileHeader.Filename, notifications)
	}
	wg.Wait()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(uploadResponse{Files: results}); err != nil {
		logger.L.Error("Error encoding JSON response for upload result", "error", err)
	}
}

func (h *UploadHandler) readUpload(fileHeader *multipart.FileHeader) ([]byte, error) {
	if fileHeader.Size > config.Cfg.MaxUploadSizeBytes {
		return nil, fmt.Errorf("file too large, max %d MB", config.Cfg.MaxUploadSizeBytes/(1024*1024))
	}
	if err := validation.ValidateClientContentType(fileHeader.Header.Get("Content-Type")); err != nil {
		return nil, err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	if err := validation.ValidateFileContent(fileHeader.Filename, data); err != nil {
		return nil, err
	}
	return data, nil
}
