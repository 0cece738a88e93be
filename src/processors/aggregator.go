package processors

import (
	"sort"

	"github.com/mics-123/merch-dashboard/src/models"
)

// SalesAggregator folds normalized sales rows into one record per
// (date, market, asin) identity. Measures sum; non-additive attributes
// (currency) take the latest row seen. Source reports are assumed
// internally consistent per key, so last-write-wins is documented behavior
// rather than a business rule.
//
// Folding chunks separately and merging the partial aggregators yields the
// same totals as a single pass over the whole file, in any chunk order.
type SalesAggregator struct {
	records map[string]models.SalesRecord
}

func NewSalesAggregator() *SalesAggregator {
	return &SalesAggregator{records: make(map[string]models.SalesRecord)}
}

func (a *SalesAggregator) Add(rec models.SalesRecord) {
	key := rec.Key()
	current, ok := a.records[key]
	if !ok {
		a.records[key] = rec
		return
	}
	current.UnitsTotal += rec.UnitsTotal
	current.Royalty = current.Royalty.Add(rec.Royalty)
	current.Currency = rec.Currency
	a.records[key] = current
}

// Merge folds another aggregator's partial totals into this one.
func (a *SalesAggregator) Merge(other *SalesAggregator) {
	for _, key := range other.sortedKeys() {
		a.Add(other.records[key])
	}
}

func (a *SalesAggregator) Len() int {
	return len(a.records)
}

// Records returns the aggregated records ordered by key, so repeated runs
// over the same input produce identical slices.
func (a *SalesAggregator) Records() []models.SalesRecord {
	out := make([]models.SalesRecord, 0, len(a.records))
	for _, key := range a.sortedKeys() {
		out = append(out, a.records[key])
	}
	return out
}

func (a *SalesAggregator) sortedKeys() []string {
	keys := make([]string, 0, len(a.records))
	for key := range a.records {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// AdAggregator is the ads-side counterpart, keyed by (date, asin).
type AdAggregator struct {
	records map[string]models.AdRecord
}

func NewAdAggregator() *AdAggregator {
	return &AdAggregator{records: make(map[string]models.AdRecord)}
}

func (a *AdAggregator) Add(rec models.AdRecord) {
	key := rec.Key()
	current, ok := a.records[key]
	if !ok {
		a.records[key] = rec
		return
	}
	current.UnitsAd += rec.UnitsAd
	current.AdSpend = current.AdSpend.Add(rec.AdSpend)
	current.Currency = rec.Currency
	a.records[key] = current
}

func (a *AdAggregator) Merge(other *AdAggregator) {
	for _, key := range other.sortedKeys() {
		a.Add(other.records[key])
	}
}

func (a *AdAggregator) Len() int {
	return len(a.records)
}

func (a *AdAggregator) Records() []models.AdRecord {
	out := make([]models.AdRecord, 0, len(a.records))
	for _, key := range a.sortedKeys() {
		out = append(out, a.records[key])
	}
	return out
}

func (a *AdAggregator) sortedKeys() []string {
	keys := make([]string, 0, len(a.records))
	for key := range a.records {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
