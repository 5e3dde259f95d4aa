package kvstore

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/blogem/boardhook/database"
)

// SQLiteStore implements Store on the kv_* tables. The database package keeps
// a single connection open, so every transaction below is serialized and each
// primitive is atomic.
type SQLiteStore struct {
	db     *sql.DB
	closer bool
}

// OpenSQLiteStore opens (and migrates) a sqlite file and uses it as a Store
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := database.InitializeDatabase(path)
	if err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db, closer: true}, nil
}

// NewSQLiteStore uses an already migrated database. Close leaves it open.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_strings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLiteStore) Incr(ctx context.Context, key string) (int64, error) {
	var next int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var current string
		err := tx.QueryRowContext(ctx, `SELECT value FROM kv_strings WHERE key = ?`, key).Scan(&current)
		switch {
		case err == sql.ErrNoRows:
			next = 1
		case err != nil:
			return fmt.Errorf("failed to read counter %s: %w", key, err)
		default:
			n, parseErr := strconv.ParseInt(current, 10, 64)
			if parseErr != nil {
				return fmt.Errorf("incr %s: %w", key, ErrNotInteger)
			}
			next = n + 1
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO kv_strings (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value
		`, key, strconv.FormatInt(next, 10))
		if err != nil {
			return fmt.Errorf("failed to write counter %s: %w", key, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return next, nil
}

func (s *SQLiteStore) HSet(ctx context.Context, key, field, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv_hashes (key, field, value) VALUES (?, ?, ?)
		ON CONFLICT(key, field) DO UPDATE SET value = excluded.value
	`, key, field, value)
	if err != nil {
		return fmt.Errorf("failed to set %s[%s]: %w", key, field, err)
	}
	return nil
}

func (s *SQLiteStore) HGet(ctx context.Context, key, field string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_hashes WHERE key = ? AND field = ?`, key, field).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get %s[%s]: %w", key, field, err)
	}
	return value, true, nil
}

func (s *SQLiteStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT field, value FROM kv_hashes WHERE key = ?`, key)
	if err != nil {
		return nil, fmt.Errorf("failed to query hash %s: %w", key, err)
	}
	defer rows.Close()

	result := make(map[string]string)
	for rows.Next() {
		var field, value string
		if err := rows.Scan(&field, &value); err != nil {
			return nil, fmt.Errorf("failed to scan hash %s: %w", key, err)
		}
		result[field] = value
	}
	return result, rows.Err()
}

func (s *SQLiteStore) HDel(ctx context.Context, key string, fields ...string) error {
	if len(fields) == 0 {
		return nil
	}
	return s.withTx(ctx, func(tx *sql.Tx) error {
		for _, field := range fields {
			if _, err := tx.ExecContext(ctx, `DELETE FROM kv_hashes WHERE key = ? AND field = ?`, key, field); err != nil {
				return fmt.Errorf("failed to delete %s[%s]: %w", key, field, err)
			}
		}
		return nil
	})
}

// LPush appends at the head: the newest element has the highest seq
func (s *SQLiteStore) LPush(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv_lists (key, seq, value)
		SELECT ?, COALESCE(MAX(seq), 0) + 1, ? FROM kv_lists WHERE key = ?
	`, key, value, key)
	if err != nil {
		return fmt.Errorf("failed to push to %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) LTrim(ctx context.Context, key string, start, stop int64) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		n, err := listLen(ctx, tx, key)
		if err != nil {
			return err
		}
		from, to, ok := normalizeRange(start, stop, n)
		if !ok {
			_, err = tx.ExecContext(ctx, `DELETE FROM kv_lists WHERE key = ?`, key)
		} else {
			_, err = tx.ExecContext(ctx, `
				DELETE FROM kv_lists WHERE key = ? AND seq NOT IN (
					SELECT seq FROM kv_lists WHERE key = ? ORDER BY seq DESC LIMIT ? OFFSET ?
				)
			`, key, key, to-from+1, from)
		}
		if err != nil {
			return fmt.Errorf("failed to trim %s: %w", key, err)
		}
		return nil
	})
}

func (s *SQLiteStore) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	values := []string{}
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		n, err := listLen(ctx, tx, key)
		if err != nil {
			return err
		}
		from, to, ok := normalizeRange(start, stop, n)
		if !ok {
			return nil
		}
		rows, err := tx.QueryContext(ctx, `
			SELECT value FROM kv_lists WHERE key = ? ORDER BY seq DESC LIMIT ? OFFSET ?
		`, key, to-from+1, from)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", key, err)
		}
		defer rows.Close()
		for rows.Next() {
			var value string
			if err := rows.Scan(&value); err != nil {
				return fmt.Errorf("failed to scan %s: %w", key, err)
			}
			values = append(values, value)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return values, nil
}

func listLen(ctx context.Context, tx *sql.Tx, key string) (int64, error) {
	var n int64
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM kv_lists WHERE key = ?`, key).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", key, err)
	}
	return n, nil
}

func (s *SQLiteStore) SAdd(ctx context.Context, key, member string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `INSERT OR IGNORE INTO kv_sets (key, member) VALUES (?, ?)`, key, member)
	if err != nil {
		return false, fmt.Errorf("failed to add %s to %s: %w", member, key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to add %s to %s: %w", member, key, err)
	}
	return n == 1, nil
}

func (s *SQLiteStore) SRem(ctx context.Context, key, member string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv_sets WHERE key = ? AND member = ?`, key, member); err != nil {
		return fmt.Errorf("failed to remove %s from %s: %w", member, key, err)
	}
	return nil
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) Close() error {
	if !s.closer {
		return nil
	}
	return s.db.Close()
}
