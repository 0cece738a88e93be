package parsers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mics-123/merch-dashboard/src/models"
)

func collectChunks(t *testing.T, p Parser, data []byte) [][]models.RawRow {
	t.Helper()
	var chunks [][]models.RawRow
	err := p.Parse(data, func(chunk []models.RawRow) error {
		chunks = append(chunks, chunk)
		return nil
	})
	require.NoError(t, err)
	return chunks
}

func TestCSVParserHeaderAsKeys(t *testing.T) {
	csvData := "Date,Mkt,ASIN,Purchased,Royalties,Currency\n" +
		"2024-01-01,US,B001,10,5.00,USD\n" +
		"2024-01-01,US,B002,2,0.90,USD\n"

	chunks := collectChunks(t, NewCSVParser(0), []byte(csvData))
	require.Len(t, chunks, 1)
	require.Len(t, chunks[0], 2)

	row := chunks[0][0]
	assert.Equal(t, "2024-01-01", row["Date"])
	assert.Equal(t, "US", row["Mkt"])
	assert.Equal(t, "B001", row["ASIN"])
	assert.Equal(t, "5.00", row["Royalties"])
}

func TestCSVParserSkipsEmptyLines(t *testing.T) {
	csvData := "Date,Mkt,ASIN\n" +
		"2024-01-01,US,B001\n" +
		"\n" +
		"2024-01-02,US,B002\n" +
		"\n"

	chunks := collectChunks(t, NewCSVParser(0), []byte(csvData))
	require.Len(t, chunks, 1)
	assert.Len(t, chunks[0], 2)
}

func TestCSVParserShortRowsFillEmpty(t *testing.T) {
	csvData := "Date,Mkt,ASIN,Currency\n" +
		"2024-01-01,US\n"

	chunks := collectChunks(t, NewCSVParser(0), []byte(csvData))
	require.Len(t, chunks, 1)
	row := chunks[0][0]
	assert.Equal(t, "", row["ASIN"])
	assert.Equal(t, "", row["Currency"])
}

func TestCSVParserChunksAlignToRowBoundaries(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("Date,Mkt,ASIN,Purchased\n")
	for i := 0; i < 100; i++ {
		sb.WriteString("2024-01-01,US,B001,1\n")
	}

	// A tiny chunk size forces many flushes; every row must still land
	// in exactly one chunk.
	chunks := collectChunks(t, NewCSVParser(64), []byte(sb.String()))
	assert.Greater(t, len(chunks), 1, "expected multiple chunks")

	total := 0
	for _, chunk := range chunks {
		assert.NotEmpty(t, chunk)
		total += len(chunk)
	}
	assert.Equal(t, 100, total)
}

func TestCSVParserStripsBOM(t *testing.T) {
	csvData := "\uFEFFDate,Mkt,ASIN\n2024-01-01,US,B001\n"

	chunks := collectChunks(t, NewCSVParser(0), []byte(csvData))
	require.Len(t, chunks, 1)
	assert.Equal(t, "2024-01-01", chunks[0][0]["Date"])
}

func TestCSVParserMalformedQuoting(t *testing.T) {
	csvData := "Date,Mkt,ASIN\n" +
		"2024-01-01,\"US,B001\n"

	err := NewCSVParser(0).Parse([]byte(csvData), func(chunk []models.RawRow) error {
		return nil
	})
	assert.Error(t, err)
}

func TestCSVParserSinkErrorAbortsParse(t *testing.T) {
	csvData := "Date,Mkt,ASIN\n" +
		"2024-01-01,US,B001\n"

	sentinel := assert.AnError
	err := NewCSVParser(0).Parse([]byte(csvData), func(chunk []models.RawRow) error {
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
}

func TestCSVParserKind(t *testing.T) {
	assert.Equal(t, models.KindSales, NewCSVParser(0).Kind())
}
