package processors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mics-123/merch-dashboard/src/models"
	"github.com/mics-123/merch-dashboard/src/security/validation"
	"github.com/mics-123/merch-dashboard/src/utils"
)

// ErrInvalidRow marks a row whose aggregation key cannot be trusted: the
// date is unparseable or a required identifier column is missing. Callers
// abort the whole file on it - a broken key would silently corrupt totals,
// unlike a garbled measure cell which just coerces to zero.
var ErrInvalidRow = errors.New("invalid report row")

// Sales report header names. The market column appears under two names
// depending on which portal produced the export.
const (
	salesDateColumn    = "Date"
	salesASINColumn    = "ASIN"
	salesUnitsColumn   = "Purchased"
	salesRoyaltyColumn = "Royalties"
)

var salesMarketColumns = []string{"Mkt", "Market"}

// Ads report header names, with the same two-name situation for the
// advertised product column.
const (
	adsDateColumn  = "Date"
	adsUnitsColumn = "14 Day Total Orders (#)"
	adsSpendColumn = "Spend"
)

var adsASINColumns = []string{"Advertised ASIN", "Advertised_ASIN"}

const currencyColumn = "Currency"

// NormalizeSalesRow canonicalizes one raw sales row into a single-row
// SalesRecord ready for aggregation.
func NormalizeSalesRow(row models.RawRow) (models.SalesRecord, error) {
	date, err := utils.NormalizeDate(row[salesDateColumn])
	if err != nil {
		return models.SalesRecord{}, fmt.Errorf("%w: %v", ErrInvalidRow, err)
	}

	market, ok := firstPresent(row, salesMarketColumns...)
	if !ok {
		return models.SalesRecord{}, fmt.Errorf("%w: missing market column (expected one of %s)",
			ErrInvalidRow, strings.Join(salesMarketColumns, ", "))
	}

	asin, ok := firstPresent(row, salesASINColumn)
	if !ok {
		return models.SalesRecord{}, fmt.Errorf("%w: missing %s column", ErrInvalidRow, salesASINColumn)
	}

	return models.SalesRecord{
		Date:       date,
		Market:     market,
		ASIN:       asin,
		UnitsTotal: utils.CoerceInt(row[salesUnitsColumn]),
		Royalty:    utils.CoerceDecimal(row[salesRoyaltyColumn]),
		Currency:   cleanAttribute(row[currencyColumn]),
	}, nil
}

// NormalizeAdRow canonicalizes one raw advertising row into a single-row
// AdRecord ready for aggregation.
func NormalizeAdRow(row models.RawRow) (models.AdRecord, error) {
	date, err := utils.NormalizeDate(row[adsDateColumn])
	if err != nil {
		return models.AdRecord{}, fmt.Errorf("%w: %v", ErrInvalidRow, err)
	}

	asin, ok := firstPresent(row, adsASINColumns...)
	if !ok {
		return models.AdRecord{}, fmt.Errorf("%w: missing advertised product column (expected one of %s)",
			ErrInvalidRow, strings.Join(adsASINColumns, ", "))
	}

	return models.AdRecord{
		Date:     date,
		ASIN:     asin,
		UnitsAd:  utils.CoerceInt(row[adsUnitsColumn]),
		AdSpend:  utils.CoerceDecimal(row[adsSpendColumn]),
		Currency: cleanAttribute(row[currencyColumn]),
	}, nil
}

// firstPresent returns the cleaned value of the first alias that exists as
// a column in the row. Presence of the header is what matters; an empty
// cell under a present header is still a present column.
func firstPresent(row models.RawRow, aliases ...string) (string, bool) {
	for _, alias := range aliases {
		if value, ok := row[alias]; ok {
			return cleanAttribute(value), true
		}
	}
	return "", false
}

func cleanAttribute(value string) string {
	return strings.TrimSpace(validation.StripUnprintable(value))
}
