// Package kvstore is the durable keyed store behind the event logs, the
// tenant registry and the account records. Each primitive is atomic on its
// own; callers compose them.
package kvstore

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrNotInteger is returned by Incr when the key holds a non-numeric value
var ErrNotInteger = errors.New("value is not an integer")

// Store is the subset of Redis semantics the service relies on.
// Missing keys and fields are reported with found=false, never as errors.
// List indexes follow LRANGE/LTRIM rules: inclusive, negative counts from the tail.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Incr(ctx context.Context, key string) (int64, error)

	HSet(ctx context.Context, key, field, value string) error
	HGet(ctx context.Context, key, field string) (string, bool, error)
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HDel(ctx context.Context, key string, fields ...string) error

	LPush(ctx context.Context, key, value string) error
	LTrim(ctx context.Context, key string, start, stop int64) error
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)

	// SAdd reports whether member was newly added
	SAdd(ctx context.Context, key, member string) (bool, error)
	SRem(ctx context.Context, key, member string) error

	Ping(ctx context.Context) error
	Close() error
}

// Open builds a Store from a DSN. An empty DSN returns a nil Store and no
// error: the service then runs in degraded mode without durability.
//
//	redis://[:password@]host:port/db, rediss://...  Redis
//	sqlite://path/to/file.db, sqlite::memory:       sqlite
func Open(ctx context.Context, dsn string) (Store, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, nil
	}
	parsed, err := url.Parse(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse store url: %w", err)
	}
	switch strings.ToLower(parsed.Scheme) {
	case "redis", "rediss":
		store, err := NewRedisStoreFromURL(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return store, nil
	case "sqlite", "sqlite3":
		path, ok := SQLitePath(dsn)
		if !ok {
			return nil, fmt.Errorf("sqlite store url has no path: %s", dsn)
		}
		store, err := OpenSQLiteStore(path)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported store scheme: %s", parsed.Scheme)
	}
}

// SQLitePath returns the database path of a sqlite store URL
func SQLitePath(dsn string) (string, bool) {
	dsn = strings.TrimSpace(dsn)
	parsed, err := url.Parse(dsn)
	if err != nil {
		return "", false
	}
	switch strings.ToLower(parsed.Scheme) {
	case "sqlite", "sqlite3":
	default:
		return "", false
	}
	path := strings.TrimPrefix(dsn[len(parsed.Scheme)+1:], "//")
	return path, path != ""
}

// normalizeRange resolves LRANGE-style indexes against a list of length n.
// ok is false when the range selects nothing.
func normalizeRange(start, stop, n int64) (int64, int64, bool) {
	if start < 0 {
		start += n
	}
	if stop < 0 {
		stop += n
	}
	if start < 0 {
		start = 0
	}
	if stop >= n {
		stop = n - 1
	}
	if n == 0 || start > stop || start >= n {
		return 0, 0, false
	}
	return start, stop, true
}

// Redact hides the password of a store URL for display
func Redact(dsn string) string {
	parsed, err := url.Parse(dsn)
	if err != nil || parsed.User == nil {
		return dsn
	}
	return parsed.Redacted()
}
