package database

import (
	"database/sql"
	"fmt"
	"log"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// OpenDB opens a SQLite database connection
func OpenDB(dataSourceName string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", withLocking(dataSourceName))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// sqlite has a single writer; one connection also keeps :memory: databases intact
	db.SetMaxOpenConns(1)

	// Test the connection
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Enable foreign key constraints
	if _, err = db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// InitializeDatabase opens the database connection and runs migrations
func InitializeDatabase(dataSourceName string) (*sql.DB, error) {
	db, err := OpenDB(dataSourceName)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Printf("✅ Database initialized: %s", dataSourceName)
	return db, nil
}

// withLocking makes BEGIN take the write lock up front and sets a busy
// timeout. A deferred transaction that reads and then writes cannot wait
// for another handle on the same file and fails with "database is locked".
func withLocking(dataSourceName string) string {
	params := []string{}
	if !strings.Contains(dataSourceName, "_timeout=") {
		params = append(params, "_busy_timeout=5000")
	}
	if !strings.Contains(dataSourceName, "_txlock=") {
		params = append(params, "_txlock=immediate")
	}
	if len(params) == 0 {
		return dataSourceName
	}
	sep := "?"
	if strings.Contains(dataSourceName, "?") {
		sep = "&"
	}
	return dataSourceName + sep + strings.Join(params, "&")
}
