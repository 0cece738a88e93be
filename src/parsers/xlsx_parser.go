package parsers

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/mics-123/merch-dashboard/src/models"
)

// XLSXParser decodes the advertising spreadsheet. The whole workbook is
// read into memory, only the first sheet is used, and the sheet's first
// row provides the column keys. Cells absent from a row default to the
// empty string; whether that empty value is acceptable is decided by the
// normalizer, not here.
type XLSXParser struct{}

func NewXLSXParser() *XLSXParser {
	return &XLSXParser{}
}

func (p *XLSXParser) Kind() models.ReportKind {
	return models.KindAds
}

func (p *XLSXParser) Parse(data []byte, sink RowSink) error {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return fmt.Errorf("workbook contains no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		// Header-only or fully empty sheet: nothing to emit.
		return sink(nil)
	}

	header := rows[0]
	out := make([]models.RawRow, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		row := make(models.RawRow, len(header))
		for i, name := range header {
			if i < len(cells) {
				row[name] = cells[i]
			} else {
				row[name] = ""
			}
		}
		out = append(out, row)
	}
	// No chunking: the whole sheet is one pass.
	return sink(out)
}
