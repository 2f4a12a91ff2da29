package store

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// SQLStore implements Store over SQLite (local and test use) or
// PostgreSQL (server deployments). Queries are written with `?`
// placeholders and rebound per driver.
type SQLStore struct {
	db *sqlx.DB
}

// Open connects to the database named by url and runs migrations.
// URLs starting with postgres:// use the PostgreSQL driver; anything
// else is treated as a SQLite path (":memory:" included).
func Open(url string) (*SQLStore, error) {
	driver := "sqlite"
	if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") {
		driver = "postgres"
	}

	db, err := sqlx.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if driver == "sqlite" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enabling WAL mode: %w", err)
		}
		if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enabling foreign keys: %w", err)
		}
	}

	s := &SQLStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// q rebinds a `?`-style query for the active driver.
func (s *SQLStore) q(query string) string {
	return s.db.Rebind(query)
}

// encodeIDs serializes an ID set as a JSON array for a TEXT column.
func encodeIDs(ids []string) (string, error) {
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return "", fmt.Errorf("encoding id list: %w", err)
	}
	return string(data), nil
}

// decodeIDs parses an ID set from a TEXT column.
func decodeIDs(data string) ([]string, error) {
	if data == "" {
		return []string{}, nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(data), &ids); err != nil {
		return nil, fmt.Errorf("decoding id list: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// isUniqueViolation detects duplicate-key errors from either driver.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique")
}
