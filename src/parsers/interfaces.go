package parsers

import "github.com/mics-123/merch-dashboard/src/models"

// RowSink receives one chunk of raw rows from a parser. The spreadsheet
// parser calls it once with the whole sheet; the delimited-text parser
// calls it once per chunk. A non-nil error aborts the parse immediately.
type RowSink func(chunk []models.RawRow) error

// Parser drives one report file end-to-end, feeding rows to a sink.
type Parser interface {
	// Kind reports which of the two seller reports this parser produces.
	Kind() models.ReportKind
	// Parse decodes the file bytes and streams rows into sink. Chunk
	// boundaries are aligned to row boundaries by the parser, never by
	// the caller.
	Parse(data []byte, sink RowSink) error
}
