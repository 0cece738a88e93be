package database

import (
	"database/sql"
	stdlog "log"

	"github.com/mics-123/merch-dashboard/src/logger"
	_ "modernc.org/sqlite"
)

var DB *sql.DB

func InitDB(databasePath string) {
	db, err := sql.Open("sqlite", databasePath)
	if err != nil {
		stdlog.Fatalf("failed to open database at %s: %v", databasePath, err)
	}

	DB = db

	if err := EnsureSchema(DB); err != nil {
		if logger.L != nil {
			logger.L.Error("failed to create tables", "error", err)
		}
		stdlog.Fatalf("failed to create tables: %v", err)
	}
	if logger.L != nil {
		logger.L.Info("Database tables ensured/created.", "databasePath", databasePath)
	} else {
		stdlog.Println("Database tables ensured/created:", databasePath)
	}
}

// EnsureSchema creates the two report tables if they do not exist yet.
// Monetary amounts are stored as decimal strings, never as REAL.
func EnsureSchema(db *sql.DB) error {
	createTableStatement := `
	CREATE TABLE IF NOT EXISTS sales_records (
		date TEXT NOT NULL,
		market TEXT NOT NULL,
		asin TEXT NOT NULL,
		units_total INTEGER NOT NULL DEFAULT 0,
		royalty TEXT NOT NULL DEFAULT '0',
		currency TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (date, market, asin)
	);

	CREATE TABLE IF NOT EXISTS ad_records (
		date TEXT NOT NULL,
		asin TEXT NOT NULL,
		units_ad INTEGER NOT NULL DEFAULT 0,
		ad_spend TEXT NOT NULL DEFAULT '0',
		currency TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (date, asin)
	);
	`
	_, err := db.Exec(createTableStatement)
	return err
}
