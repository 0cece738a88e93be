package services

import (
	"fmt"
	"sort"

	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"

	"github.com/mics-123/merch-dashboard/src/database"
	"github.com/mics-123/merch-dashboard/src/logger"
	"github.com/mics-123/merch-dashboard/src/models"
)

const dashboardCacheKey = "combined_dashboard"

type reportServiceImpl struct {
	store       database.Store
	reportCache *cache.Cache
}

func NewReportService(store database.Store, reportCache *cache.Cache) ReportService {
	return &reportServiceImpl{
		store:       store,
		reportCache: reportCache,
	}
}

// Dashboard rebuilds the combined view from the two persisted tables. The
// two full-table reads are independent, with no transactional isolation
// between them: a concurrently completing import's writes may or may not
// be visible in a given pass.
func (s *reportServiceImpl) Dashboard() (*DashboardResult, error) {
	if cached, found := s.reportCache.Get(dashboardCacheKey); found {
		if result, ok := cached.(*DashboardResult); ok {
			return result, nil
		}
	}

	sales, err := s.store.ReadAllSales()
	if err != nil {
		return nil, fmt.Errorf("error reading sales records: %w", err)
	}
	ads, err := s.store.ReadAllAds()
	if err != nil {
		return nil, fmt.Errorf("error reading ad records: %w", err)
	}

	rows := Combine(sales, ads)

	totalRoyalty := decimal.Zero
	totalAdSpend := decimal.Zero
	for _, row := range rows {
		totalRoyalty = totalRoyalty.Add(row.Royalty)
		totalAdSpend = totalAdSpend.Add(row.AdSpend)
	}

	result := &DashboardResult{
		Rows:         rows,
		TotalRoyalty: totalRoyalty,
		TotalAdSpend: totalAdSpend,
	}
	s.reportCache.Set(dashboardCacheKey, result, cache.DefaultExpiration)
	logger.L.Debug("Rebuilt combined dashboard", "salesRecords", len(sales), "adRecords", len(ads), "combinedRows", len(rows))
	return result, nil
}

func (s *reportServiceImpl) Invalidate() {
	s.reportCache.Delete(dashboardCacheKey)
}

// Combine joins aggregated sales and ad records on (date, asin).
//
// The result map is seeded from the sales side; when several sales markets
// collide on one combine key, the last processed sales row's market and
// currency win - an artifact of the merge order that downstream consumers
// rely on, preserved as-is. Ads then overlay their measures, synthesizing
// rows for ads-only identities. Profit is royalty minus ad spend, rounded
// to 2 decimal places, computed only when the row's currency matches the
// ad record's currency; otherwise it stays nil.
func Combine(sales []models.SalesRecord, ads []models.AdRecord) []models.CombinedRecord {
	byKey := make(map[string]*models.CombinedRecord, len(sales))

	for _, s := range sales {
		key := s.Date + models.KeySeparator + s.ASIN
		byKey[key] = &models.CombinedRecord{
			Date:       s.Date,
			Market:     s.Market,
			ASIN:       s.ASIN,
			UnitsTotal: s.UnitsTotal,
			Royalty:    s.Royalty,
			Currency:   s.Currency,
			AdSpend:    decimal.Zero,
		}
	}

	for _, a := range ads {
		key := a.Date + models.KeySeparator + a.ASIN
		row, ok := byKey[key]
		if !ok {
			row = &models.CombinedRecord{
				Date:     a.Date,
				ASIN:     a.ASIN,
				Royalty:  decimal.Zero,
				Currency: a.Currency,
			}
			byKey[key] = row
		}
		row.UnitsAd = a.UnitsAd
		row.AdSpend = a.AdSpend
		if row.Currency == a.Currency {
			profit := row.Royalty.Sub(a.AdSpend).Round(2)
			row.Profit = &profit
		}
	}

	out := make([]models.CombinedRecord, 0, len(byKey))
	for _, row := range byKey {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].ASIN < out[j].ASIN
	})
	return out
}
