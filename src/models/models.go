package models

import "github.com/shopspring/decimal"

// ReportKind identifies which of the two seller reports a file contains.
// It doubles as the "kind" field of import notifications, where the extra
// KindSalesChunk value marks a mid-file progress message.
type ReportKind string

const (
	KindSales      ReportKind = "sales"
	KindAds        ReportKind = "ads"
	KindSalesChunk ReportKind = "sales-chunk"
)

// RawRow is one parsed report row before normalization, keyed by the
// header cell of each column. Missing cells map to the empty string.
type RawRow map[string]string

// KeySeparator joins identity fields into aggregation keys. Dates and
// ASINs never contain it, so keys cannot collide across fields.
const KeySeparator = "|"

// SalesRecord is one aggregated unit-sales bucket.
// Identity: (date, market, asin).
type SalesRecord struct {
	Date       string          `json:"date"` // YYYY-MM-DD
	Market     string          `json:"market"`
	ASIN       string          `json:"asin"`
	UnitsTotal int64           `json:"unitsTotal"`
	Royalty    decimal.Decimal `json:"royalty"`
	Currency   string          `json:"currency"`
}

func (r SalesRecord) Key() string {
	return r.Date + KeySeparator + r.Market + KeySeparator + r.ASIN
}

// AdRecord is one aggregated advertising-spend bucket.
// Identity: (date, asin) - market is not part of the ads identity.
type AdRecord struct {
	Date     string          `json:"date"`
	ASIN     string          `json:"asin"`
	UnitsAd  int64           `json:"unitsAd"`
	AdSpend  decimal.Decimal `json:"adSpend"`
	Currency string          `json:"currency"`
}

func (r AdRecord) Key() string {
	return r.Date + KeySeparator + r.ASIN
}

// CombinedRecord is the read-time join of a sales and an ad bucket on
// (date, asin). It is never persisted; the report service rebuilds it on
// every read. Profit is nil whenever the sales-side and ads-side currency
// codes differ - cross-currency subtraction is never performed.
type CombinedRecord struct {
	Date       string           `json:"date"`
	Market     string           `json:"market"`
	ASIN       string           `json:"asin"`
	UnitsTotal int64            `json:"unitsTotal"`
	Royalty    decimal.Decimal  `json:"royalty"`
	Currency   string           `json:"currency"`
	UnitsAd    int64            `json:"unitsAd"`
	AdSpend    decimal.Decimal  `json:"adSpend"`
	Profit     *decimal.Decimal `json:"profit"`
}
