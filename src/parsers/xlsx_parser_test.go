package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mics-123/merch-dashboard/src/models"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestXLSXParserFirstSheetHeaderAsKeys(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"Date", "Advertised ASIN", "14 Day Total Orders (#)", "Spend", "Currency"},
		{"2024-01-01", "B001", "3", "2.50", "USD"},
		{"2024-01-02", "B002", "1", "0.75", "USD"},
	})

	chunks := collectChunks(t, NewXLSXParser(), data)
	require.Len(t, chunks, 1, "spreadsheet parser emits the whole sheet in one pass")
	require.Len(t, chunks[0], 2)

	row := chunks[0][0]
	assert.Equal(t, "2024-01-01", row["Date"])
	assert.Equal(t, "B001", row["Advertised ASIN"])
	assert.Equal(t, "2.50", row["Spend"])
}

func TestXLSXParserMissingCellsDefaultEmpty(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"Date", "Advertised ASIN", "Spend", "Currency"},
		{"2024-01-01", "B001"},
	})

	chunks := collectChunks(t, NewXLSXParser(), data)
	require.Len(t, chunks, 1)
	row := chunks[0][0]
	assert.Equal(t, "", row["Spend"])
	assert.Equal(t, "", row["Currency"])
}

func TestXLSXParserGarbageBytes(t *testing.T) {
	err := NewXLSXParser().Parse([]byte("this is not a zip archive"), func(chunk []models.RawRow) error {
		t.Fatal("sink must not be called for an undecodable workbook")
		return nil
	})
	assert.Error(t, err)
}

func TestXLSXParserKind(t *testing.T) {
	assert.Equal(t, models.KindAds, NewXLSXParser().Kind())
}

func TestForFilenameRouting(t *testing.T) {
	tests := []struct {
		filename string
		kind     models.ReportKind
	}{
		{"ads-report.xlsx", models.KindAds},
		{"ADS-REPORT.XLSX", models.KindAds},
		{"sales.csv", models.KindSales},
		{"sales.tsv", models.KindSales},
		{"noextension", models.KindSales},
		{"archive.xlsx.txt", models.KindSales},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.kind, ForFilename(tt.filename, 0).Kind())
		})
	}
}
