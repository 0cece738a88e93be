package services

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/mics-123/merch-dashboard/src/models"
)

var (
	ErrParsingFailed     = errors.New("report parsing failed")
	ErrPersistenceFailed = errors.New("report persistence failed")
)

// Notification is one message from an import task to its submitter.
// A task emits zero or more progress notifications (OK with
// Kind=sales-chunk) followed by exactly one terminal notification: OK with
// the report kind and aggregated row count, or not-OK with a description.
type Notification struct {
	OK    bool              `json:"ok"`
	Kind  models.ReportKind `json:"kind,omitempty"`
	Count int               `json:"count,omitempty"`
	Error string            `json:"error,omitempty"`
}

// Terminal reports whether this notification ends the task's lifecycle.
func (n Notification) Terminal() bool {
	return !n.OK || n.Kind != models.KindSalesChunk
}

// ImportService runs one isolated ingestion task per submitted file.
type ImportService interface {
	// Submit starts the task and returns its notification channel. The
	// channel is closed after the terminal notification; every task
	// terminates, on both success and failure paths.
	Submit(filename string, data []byte) <-chan Notification
}

// DashboardResult is the combined, profit-annotated view plus the KPI
// totals the presentation layer renders above the table.
type DashboardResult struct {
	Rows         []models.CombinedRecord `json:"rows"`
	TotalRoyalty decimal.Decimal         `json:"totalRoyalty"`
	TotalAdSpend decimal.Decimal         `json:"totalAdSpend"`
}

// ReportService produces the merged sales/ads view.
type ReportService interface {
	Dashboard() (*DashboardResult, error)
	// Invalidate drops the cached view; the submitter calls it after
	// every terminal-success notification so the next read rebuilds.
	Invalidate()
}
