package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mics-123/merch-dashboard/src/database"
	"github.com/mics-123/merch-dashboard/src/logger"
	"github.com/mics-123/merch-dashboard/src/models"
	"github.com/mics-123/merch-dashboard/src/parsers"
	"github.com/mics-123/merch-dashboard/src/processors"
)

type importServiceImpl struct {
	store     database.Store
	chunkSize int
}

func NewImportService(store database.Store, chunkSizeBytes int) ImportService {
	return &importServiceImpl{
		store:     store,
		chunkSize: chunkSizeBytes,
	}
}

// Submit spawns a goroutine per file. Tasks share nothing but the store;
// two concurrently submitted files never touch each other's state, and
// there is no ordering guarantee between their terminal notifications.
func (s *importServiceImpl) Submit(filename string, data []byte) <-chan Notification {
	out := make(chan Notification, 4)
	taskID := uuid.New().String()
	go s.run(taskID, filename, data, out)
	return out
}

func (s *importServiceImpl) run(taskID, filename string, data []byte, out chan<- Notification) {
	defer close(out)
	logger.L.Info("Import task started", "taskID", taskID, "filename", filename, "sizeBytes", len(data))

	count, kind, err := s.ingest(filename, data, out)
	if err != nil {
		logger.L.Warn("Import task failed", "taskID", taskID, "filename", filename, "error", err)
		out <- Notification{OK: false, Error: err.Error()}
		return
	}

	logger.L.Info("Import task succeeded", "taskID", taskID, "filename", filename, "kind", kind, "count", count)
	out <- Notification{OK: true, Kind: kind, Count: count}
}

// ingest drives one parser run end-to-end. For the chunked sales path,
// each chunk's partial aggregate is upserted before the next chunk is
// parsed; chunks already written when a later chunk fails stay persisted
// (at-least-partial-apply, by contract).
func (s *importServiceImpl) ingest(filename string, data []byte, progress chan<- Notification) (int, models.ReportKind, error) {
	parser := parsers.ForFilename(filename, s.chunkSize)

	if parser.Kind() == models.KindAds {
		count, err := s.ingestAds(parser, data)
		return count, models.KindAds, err
	}
	count, err := s.ingestSales(parser, data, progress)
	return count, models.KindSales, err
}

func (s *importServiceImpl) ingestAds(parser parsers.Parser, data []byte) (int, error) {
	agg := processors.NewAdAggregator()
	err := parser.Parse(data, func(chunk []models.RawRow) error {
		for _, raw := range chunk {
			rec, err := processors.NormalizeAdRow(raw)
			if err != nil {
				return err
			}
			agg.Add(rec)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, processors.ErrInvalidRow) {
			return 0, err
		}
		return 0, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}

	if err := s.store.UpsertAds(agg.Records()); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
	}
	return agg.Len(), nil
}

func (s *importServiceImpl) ingestSales(parser parsers.Parser, data []byte, progress chan<- Notification) (int, error) {
	total := 0
	err := parser.Parse(data, func(chunk []models.RawRow) error {
		// Normalize the whole chunk before writing anything, so a bad
		// row never leaves a wrongly-keyed partial behind.
		agg := processors.NewSalesAggregator()
		for _, raw := range chunk {
			rec, err := processors.NormalizeSalesRow(raw)
			if err != nil {
				return err
			}
			agg.Add(rec)
		}

		if err := s.store.UpsertSales(agg.Records()); err != nil {
			return fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
		}
		total += agg.Len()
		progress <- Notification{OK: true, Kind: models.KindSalesChunk, Count: total}
		return nil
	})
	if err != nil {
		if errors.Is(err, processors.ErrInvalidRow) || errors.Is(err, ErrPersistenceFailed) {
			return 0, err
		}
		return 0, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}
	return total, nil
}
