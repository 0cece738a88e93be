package database

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mics-123/merch-dashboard/src/logger"
	"github.com/mics-123/merch-dashboard/src/models"
)

// Store is the persistence contract the ingestion pipeline needs: upsert a
// batch by identity key (full replace-by-key, not an increment) and read a
// whole table back. Concurrent upserts from different import tasks are not
// serialized against each other; same-key collisions resolve
// last-write-wins with no defined cross-file ordering.
type Store interface {
	UpsertSales(records []models.SalesRecord) error
	UpsertAds(records []models.AdRecord) error
	ReadAllSales() ([]models.SalesRecord, error)
	ReadAllAds() ([]models.AdRecord, error)
}

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) UpsertSales(records []models.SalesRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("error beginning upsert transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO sales_records (date, market, asin, units_total, royalty, currency)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(date, market, asin) DO UPDATE SET
			units_total = excluded.units_total,
			royalty = excluded.royalty,
			currency = excluded.currency`)
	if err != nil {
		return fmt.Errorf("error preparing sales upsert statement: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.Exec(rec.Date, rec.Market, rec.ASIN, rec.UnitsTotal, rec.Royalty.String(), rec.Currency); err != nil {
			return fmt.Errorf("error upserting sales record (key %s): %w", rec.Key(), err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing sales upsert: %w", err)
	}
	if logger.L != nil {
		logger.L.Debug("Upserted sales records", "count", len(records))
	}
	return nil
}

func (s *SQLStore) UpsertAds(records []models.AdRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("error beginning upsert transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO ad_records (date, asin, units_ad, ad_spend, currency)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(date, asin) DO UPDATE SET
			units_ad = excluded.units_ad,
			ad_spend = excluded.ad_spend,
			currency = excluded.currency`)
	if err != nil {
		return fmt.Errorf("error preparing ads upsert statement: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.Exec(rec.Date, rec.ASIN, rec.UnitsAd, rec.AdSpend.String(), rec.Currency); err != nil {
			return fmt.Errorf("error upserting ad record (key %s): %w", rec.Key(), err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing ads upsert: %w", err)
	}
	if logger.L != nil {
		logger.L.Debug("Upserted ad records", "count", len(records))
	}
	return nil
}

func (s *SQLStore) ReadAllSales() ([]models.SalesRecord, error) {
	rows, err := s.db.Query(`SELECT date, market, asin, units_total, royalty, currency
		FROM sales_records ORDER BY date, market, asin`)
	if err != nil {
		return nil, fmt.Errorf("error reading sales records: %w", err)
	}
	defer rows.Close()

	var records []models.SalesRecord
	for rows.Next() {
		var rec models.SalesRecord
		var royalty string
		if err := rows.Scan(&rec.Date, &rec.Market, &rec.ASIN, &rec.UnitsTotal, &royalty, &rec.Currency); err != nil {
			return nil, fmt.Errorf("error scanning sales record: %w", err)
		}
		rec.Royalty, err = decimal.NewFromString(royalty)
		if err != nil {
			return nil, fmt.Errorf("error decoding stored royalty %q: %w", royalty, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *SQLStore) ReadAllAds() ([]models.AdRecord, error) {
	rows, err := s.db.Query(`SELECT date, asin, units_ad, ad_spend, currency
		FROM ad_records ORDER BY date, asin`)
	if err != nil {
		return nil, fmt.Errorf("error reading ad records: %w", err)
	}
	defer rows.Close()

	var records []models.AdRecord
	for rows.Next() {
		var rec models.AdRecord
		var spend string
		if err := rows.Scan(&rec.Date, &rec.ASIN, &rec.UnitsAd, &spend, &rec.Currency); err != nil {
			return nil, fmt.Errorf("error scanning ad record: %w", err)
		}
		rec.AdSpend, err = decimal.NewFromString(spend)
		if err != nil {
			return nil, fmt.Errorf("error decoding stored ad spend %q: %w", spend, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
