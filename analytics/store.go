package analytics

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite"
)

// Store persists views in SQLite. Timestamps are stored as unix seconds (UTC).
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the analytics database at path.
func NewStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create analytics dir: %w", err)
		}
	}
	// Per-connection pragmas go in the DSN so every pooled connection gets them.
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)")
	if err != nil {
		return nil, fmt.Errorf("open analytics db: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(time.Hour)

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("configure analytics db: %w", err)
	}

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS views (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			visitor_id TEXT NOT NULL,
			page TEXT NOT NULL,
			path TEXT NOT NULL,
			referrer TEXT NOT NULL DEFAULT '',
			browser TEXT NOT NULL,
			os TEXT NOT NULL,
			device TEXT NOT NULL,
			ts INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS bot_views (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			bot_name TEXT NOT NULL,
			user_agent TEXT NOT NULL,
			path TEXT NOT NULL,
			ts INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_views_ts ON views(ts);
		CREATE INDEX IF NOT EXISTS idx_views_page ON views(page);
		CREATE INDEX IF NOT EXISTS idx_bot_views_ts ON bot_views(ts);

		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	return err
}

// currentSchemaVersion is the latest schema version. Increment when adding migrations.
const currentSchemaVersion = 1

func (s *Store) migrate() error {
	verStr, err := s.GetSetting("schema_version")
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	version := 0
	if verStr != "" {
		version, err = strconv.Atoi(verStr)
		if err != nil {
			return fmt.Errorf("parse schema version %q: %w", verStr, err)
		}
	}
	if version > currentSchemaVersion {
		return fmt.Errorf("schema version %d is newer than supported %d", version, currentSchemaVersion)
	}
	return s.SetSetting("schema_version", strconv.Itoa(currentSchemaVersion))
}

// GetSetting returns a setting value, or "" if it is not set.
func (s *Store) GetSetting(key string) (string, error) {
	var v string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return v, err
}

// SetSetting upserts a setting.
func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(`INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

// RecordView stores a human page view.
func (s *Store) RecordView(ctx context.Context, v View) error {
	if v.Timestamp.IsZero() {
		v.Timestamp = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO views (visitor_id, page, path, referrer, browser, os, device, ts)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		v.VisitorID, v.Page, v.Path, v.Referrer, v.Browser, v.OS, v.Device, v.Timestamp.UTC().Unix())
	return err
}

// RecordBotView stores a crawler page view.
func (s *Store) RecordBotView(ctx context.Context, v BotView) error {
	if v.Timestamp.IsZero() {
		v.Timestamp = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO bot_views (bot_name, user_agent, path, ts) VALUES (?, ?, ?, ?)`,
		v.BotName, v.UserAgent, v.Path, v.Timestamp.UTC().Unix())
	return err
}

// Stats aggregates views in [from, to).
func (s *Store) Stats(ctx context.Context, from, to time.Time) (*Stats, error) {
	lo, hi := from.UTC().Unix(), to.UTC().Unix()
	st := &Stats{
		Period: from.Format("2006-01-02") + " to " + to.Format("2006-01-02"),
	}

	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*), COUNT(DISTINCT visitor_id) FROM views WHERE ts >= ? AND ts < ?`, lo, hi).
		Scan(&st.TotalViews, &st.UniqueVisitors)
	if err != nil {
		return nil, fmt.Errorf("totals: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bot_views WHERE ts >= ? AND ts < ?`, lo, hi).Scan(&st.BotViews); err != nil {
		return nil, fmt.Errorf("bot totals: %w", err)
	}

	queries := []struct {
		dst   *[]Count
		query string
	}{
		{&st.Pages, `SELECT page, COUNT(*) FROM views WHERE ts >= ? AND ts < ? AND page NOT LIKE 'post:%' GROUP BY page ORDER BY 2 DESC, 1`},
		{&st.Posts, `SELECT page, COUNT(*) FROM views WHERE ts >= ? AND ts < ? AND page LIKE 'post:%' GROUP BY page ORDER BY 2 DESC, 1 LIMIT 10`},
		{&st.Browsers, `SELECT browser, COUNT(*) FROM views WHERE ts >= ? AND ts < ? GROUP BY browser ORDER BY 2 DESC, 1`},
		{&st.Devices, `SELECT device, COUNT(*) FROM views WHERE ts >= ? AND ts < ? GROUP BY device ORDER BY 2 DESC, 1`},
		{&st.Referrers, `SELECT referrer, COUNT(*) FROM views WHERE ts >= ? AND ts < ? GROUP BY referrer ORDER BY 2 DESC, 1 LIMIT 10`},
		{&st.Bots, `SELECT bot_name, COUNT(*) FROM bot_views WHERE ts >= ? AND ts < ? GROUP BY bot_name ORDER BY 2 DESC, 1`},
		{&st.Daily, `SELECT date(ts, 'unixepoch'), COUNT(*) FROM views WHERE ts >= ? AND ts < ? GROUP BY 1 ORDER BY 1`},
	}
	for _, q := range queries {
		counts, err := s.counts(ctx, q.query, lo, hi)
		if err != nil {
			return nil, err
		}
		*q.dst = counts
	}
	return st, nil
}

func (s *Store) counts(ctx context.Context, query string, args ...any) ([]Count, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Count{}
	for rows.Next() {
		var c Count
		if err := rows.Scan(&c.Name, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// DeleteBefore removes human and bot views older than t and returns how many rows went.
func (s *Store) DeleteBefore(ctx context.Context, t time.Time) (int64, error) {
	cutoff := t.UTC().Unix()
	var total int64
	for _, table := range []string{"views", "bot_views"} {
		res, err := s.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE ts < ?`, cutoff)
		if err != nil {
			return total, fmt.Errorf("cleanup %s: %w", table, err)
		}
		n, _ := res.RowsAffected()
		total += n
	}
	return total, nil
}

// StartCleanupScheduler deletes rows older than retentionDays once right
// away and then every interval. The returned func stops the scheduler.
func (s *Store) StartCleanupScheduler(retentionDays int, interval time.Duration, logf func(format string, args ...any)) func() {
	ctx, cancel := context.WithCancel(context.Background())
	cleanup := func() {
		cutoff := time.Now().AddDate(0, 0, -retentionDays)
		n, err := s.DeleteBefore(ctx, cutoff)
		if err != nil && logf != nil {
			logf("analytics cleanup: %v", err)
		} else if n > 0 && logf != nil {
			logf("analytics cleanup: removed %d rows", n)
		}
	}
	cleanup()

	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				cleanup()
			}
		}
	}()
	return func() {
		cancel()
		<-done
	}
}
