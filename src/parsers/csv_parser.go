package parsers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/mics-123/merch-dashboard/src/models"
)

// DefaultChunkSizeBytes matches the chunk size the import pipeline was
// tuned for: large sales exports never need the full parsed table in
// memory at once, and the caller gets a progress point per chunk.
const DefaultChunkSizeBytes = 512 * 1024

// CSVParser parses a delimited-text sales export incrementally. The header
// row is taken from the first line, empty lines are skipped, and rows are
// handed to the sink in chunks of roughly chunkSize bytes, always cut at a
// row boundary.
type CSVParser struct {
	chunkSize int
}

func NewCSVParser(chunkSizeBytes int) *CSVParser {
	if chunkSizeBytes <= 0 {
		chunkSizeBytes = DefaultChunkSizeBytes
	}
	return &CSVParser{chunkSize: chunkSizeBytes}
}

func (p *CSVParser) Kind() models.ReportKind {
	return models.KindSales
}

func (p *CSVParser) Parse(data []byte, sink RowSink) error {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1 // ragged rows are the normalizer's problem

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read CSV header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var (
		chunk      []models.RawRow
		chunkBytes int
	)
	flush := func() error {
		if len(chunk) == 0 {
			return nil
		}
		err := sink(chunk)
		chunk = nil
		chunkBytes = 0
		return err
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("malformed CSV record: %w", err)
		}
		if isEmptyRecord(record) {
			continue
		}

		row := make(models.RawRow, len(header))
		for i, name := range header {
			if i < len(record) {
				row[name] = record[i]
			} else {
				row[name] = ""
			}
		}
		chunk = append(chunk, row)
		for _, cell := range record {
			chunkBytes += len(cell) + 1
		}

		if chunkBytes >= p.chunkSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	return flush()
}

func isEmptyRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
