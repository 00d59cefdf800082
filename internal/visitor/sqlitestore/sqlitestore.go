// Package sqlitestore persists visitor flags and privacy-conscious visit
// records in sqlite. It is kept apart from package visitor so the browser
// client, which cannot link the sqlite driver, only depends on the latter.
package sqlitestore

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite"

	"github.com/rezzedai/bourlier-site/internal/visitor"
)

// timeLayout is how timestamps are stored. Text in this layout sorts
// chronologically, so range queries compare strings.
const timeLayout = "2006-01-02 15:04:05"

const schema = `
CREATE TABLE IF NOT EXISTS flags (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS visits (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	hashed_ip  TEXT NOT NULL,  -- salted hash, never the raw address
	user_agent TEXT,
	path       TEXT,
	visited_at TEXT NOT NULL,
	repeat     INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS visits_visited_at ON visits (visited_at);
`

// Store is the sqlite-backed store for visitor flags and visit records.
type Store struct {
	db     *sql.DB
	salt   string
	logger *log.Logger
	now    func() time.Time
}

// Open opens (or creates) the database at path. An empty salt generates a
// random one, which makes unique-visitor counts restart with the process.
func Open(ctx context.Context, path, salt string, logger *log.Logger) (*Store, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open visitor db: %w", err)
	}
	// sqlite allows one writer; a single connection also keeps :memory:
	// databases shared across queries.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create visitor schema: %w", err)
	}
	if salt == "" {
		salt, err = randomHex(32)
		if err != nil {
			db.Close()
			return nil, err
		}
		logger.Warn("sqlitestore: no hash salt configured, unique visitor counts reset on restart")
	}
	logger.Debug("sqlitestore: database ready", "path", path)
	return &Store{db: db, salt: salt, logger: logger, now: time.Now}, nil
}

// Close closes the database.
func (d *Store) Close() error { return d.db.Close() }

// Ping checks that the database is reachable.
func (d *Store) Ping(ctx context.Context) error { return d.db.PingContext(ctx) }

// Get implements visitor.FlagStore.
func (d *Store) Get(ctx context.Context, key string) (string, error) {
	var v string
	err := d.db.QueryRowContext(ctx, `SELECT value FROM flags WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", visitor.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get flag %q: %w", key, err)
	}
	return v, nil
}

// Set implements visitor.FlagStore.
func (d *Store) Set(ctx context.Context, key, value string) error {
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO flags (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, d.now().UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("set flag %q: %w", key, err)
	}
	return nil
}

// HashIP returns the salted, truncated hash stored in place of an address.
func (d *Store) HashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + d.salt))
	return hex.EncodeToString(sum[:])[:16]
}

// Visit is one recorded page view.
type Visit struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	VisitedAt time.Time `json:"visited_at"`
	Returning bool      `json:"returning"`
}

// Record stores a page view. The raw ip is hashed before it is written.
func (d *Store) Record(ctx context.Context, ip, userAgent, path string, returning bool) error {
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO visits (hashed_ip, user_agent, path, visited_at, repeat)
		VALUES (?, ?, ?, ?, ?)
	`, d.HashIP(ip), userAgent, path, d.now().UTC().Format(timeLayout), returning)
	if err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	return nil
}

// Stats summarises recorded visits.
type Stats struct {
	TotalVisits     int64   `json:"total_visits"`
	UniqueVisitors  int64   `json:"unique_visitors"`
	ReturningVisits int64   `json:"returning_visits"`
	VisitsToday     int64   `json:"visits_today"`
	VisitsThisWeek  int64   `json:"visits_this_week"`
	TopPaths        []Count `json:"top_paths"`
	RecentVisits    []Visit `json:"recent_visits"`
}

// Count is a path with its number of visits.
type Count struct {
	Path   string `json:"path"`
	Visits int64  `json:"visits"`
}

// Stats computes the admin dashboard figures.
func (d *Store) Stats(ctx context.Context) (*Stats, error) {
	now := d.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).Format(timeLayout)
	week := now.Add(-7 * 24 * time.Hour).Format(timeLayout)

	stats := &Stats{}
	counts := []struct {
		query string
		args  []any
		dst   *int64
	}{
		{`SELECT COUNT(*) FROM visits`, nil, &stats.TotalVisits},
		{`SELECT COUNT(DISTINCT hashed_ip) FROM visits`, nil, &stats.UniqueVisitors},
		{`SELECT COUNT(*) FROM visits WHERE repeat = 1`, nil, &stats.ReturningVisits},
		{`SELECT COUNT(*) FROM visits WHERE visited_at >= ?`, []any{today}, &stats.VisitsToday},
		{`SELECT COUNT(*) FROM visits WHERE visited_at >= ?`, []any{week}, &stats.VisitsThisWeek},
	}
	for _, c := range counts {
		if err := d.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("visit stats: %w", err)
		}
	}

	rows, err := d.db.QueryContext(ctx, `
		SELECT path, COUNT(*) AS n FROM visits
		GROUP BY path ORDER BY n DESC, path ASC LIMIT 10
	`)
	if err != nil {
		return nil, fmt.Errorf("top paths: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c Count
		if err := rows.Scan(&c.Path, &c.Visits); err != nil {
			return nil, fmt.Errorf("scan top path: %w", err)
		}
		stats.TopPaths = append(stats.TopPaths, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("top paths: %w", err)
	}

	stats.RecentVisits, err = d.Recent(ctx, 50)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// Recent returns the latest visits, newest first.
func (d *Store) Recent(ctx context.Context, limit int) ([]Visit, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, hashed_ip, COALESCE(user_agent, ''), COALESCE(path, ''), visited_at, repeat
		FROM visits ORDER BY visited_at DESC, id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent visits: %w", err)
	}
	defer rows.Close()

	var out []Visit
	for rows.Next() {
		var v Visit
		var at string
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &at, &v.Returning); err != nil {
			return nil, fmt.Errorf("scan visit: %w", err)
		}
		v.VisitedAt, err = time.Parse(timeLayout, at)
		if err != nil {
			d.logger.Debug("sqlitestore: bad timestamp", "id", v.ID, "value", at)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Cleanup deletes visits older than retention and returns how many were
// removed.
func (d *Store) Cleanup(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := d.now().UTC().Add(-retention).Format(timeLayout)
	res, err := d.db.ExecContext(ctx, `DELETE FROM visits WHERE visited_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cleanup visits: %w", err)
	}
	n, _ := res.RowsAffected()
	if n > 0 {
		d.logger.Info("sqlitestore: privacy cleanup", "removed", n, "older_than", retention)
	}
	return n, nil
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}

var _ visitor.FlagStore = (*Store)(nil)
