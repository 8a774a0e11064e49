package main

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Cedrix49/portfolio/internal/faq"
)

var errLinkNotFound = errors.New("link not found")

type LinkStat struct {
	Code      string    `json:"code"`
	Label     string    `json:"label"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
	Clicks    int       `json:"clicks"`
}

// FAQHit is the aggregate count of answers served per question and outcome.
// Question is empty for fallback answers. Raw queries are never stored.
type FAQHit struct {
	Question string    `json:"question"`
	Outcome  string    `json:"outcome"`
	Count    int64     `json:"count"`
	LastSeen time.Time `json:"last_seen"`
}

const schema = `
CREATE TABLE IF NOT EXISTS visitors (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	hashed_ip TEXT NOT NULL,  -- Store hashed IP instead of raw IP
	user_agent TEXT,
	path TEXT,
	timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
	country TEXT
);

CREATE TABLE IF NOT EXISTS links (
	code TEXT PRIMARY KEY,
	label TEXT NOT NULL DEFAULT '',
	url TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	clicks INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS faq_hits (
	question TEXT NOT NULL,
	outcome TEXT NOT NULL,
	count INTEGER NOT NULL DEFAULT 0,
	last_seen DATETIME,
	PRIMARY KEY (question, outcome)
);

CREATE INDEX IF NOT EXISTS idx_visitors_timestamp ON visitors(timestamp);
`

// openDB opens (or creates) the sqlite database and applies the schema.
func openDB(path string) (*sql.DB, error) {
	dsn := "file:" + path + "?_time_format=sqlite&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One writer at a time; background hit counters queue instead of failing
	// with SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return db, nil
}

// seedLinks upserts the outbound links so URL changes in code take effect
// without losing click counts.
func seedLinks(db *sql.DB, links []ProfileLink) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO links (code, label, url, created_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(code) DO UPDATE SET label = excluded.label, url = excluded.url
	`)
	if err != nil {
		return fmt.Errorf("prepare seed: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, l := range links {
		if _, err := stmt.Exec(l.Code, l.Label, l.URL, now); err != nil {
			return fmt.Errorf("seed link %s: %w", l.Code, err)
		}
	}
	return tx.Commit()
}

// followLink returns the target of code and counts the click.
func followLink(db *sql.DB, code string) (string, error) {
	var url string
	err := db.QueryRow(`SELECT url FROM links WHERE code = ?`, code).Scan(&url)
	if errors.Is(err, sql.ErrNoRows) {
		return "", errLinkNotFound
	}
	if err != nil {
		return "", fmt.Errorf("lookup link %s: %w", code, err)
	}
	if _, err := db.Exec(`UPDATE links SET clicks = clicks + 1 WHERE code = ?`, code); err != nil {
		// The redirect still works; only the counter is lost.
		log.Printf("Error counting click for %s: %v", code, err)
	}
	return url, nil
}

func listLinks(db *sql.DB, limit int) ([]LinkStat, error) {
	rows, err := db.Query(`
		SELECT code, label, url, created_at, clicks
		FROM links
		ORDER BY clicks DESC, code ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query links: %w", err)
	}
	defer rows.Close()

	var links []LinkStat
	for rows.Next() {
		var l LinkStat
		if err := rows.Scan(&l.Code, &l.Label, &l.URL, &l.CreatedAt, &l.Clicks); err != nil {
			continue
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

func resetLinkClicks(db *sql.DB, code string) error {
	result, err := db.Exec(`UPDATE links SET clicks = 0 WHERE code = ?`, code)
	if err != nil {
		return fmt.Errorf("reset clicks for %s: %w", code, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return errLinkNotFound
	}
	return nil
}

// recordFAQHit bumps the counter for the question and outcome in res.
func recordFAQHit(db *sql.DB, res faq.Result) error {
	_, err := db.Exec(`
		INSERT INTO faq_hits (question, outcome, count, last_seen) VALUES (?, ?, 1, ?)
		ON CONFLICT(question, outcome) DO UPDATE SET count = count + 1, last_seen = excluded.last_seen
	`, res.Question, string(res.Outcome), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("record faq hit: %w", err)
	}
	return nil
}

func topFAQHits(db *sql.DB, limit int) ([]FAQHit, error) {
	rows, err := db.Query(`
		SELECT question, outcome, count, last_seen
		FROM faq_hits
		ORDER BY count DESC, last_seen DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query faq hits: %w", err)
	}
	defer rows.Close()

	var hits []FAQHit
	for rows.Next() {
		var h FAQHit
		if err := rows.Scan(&h.Question, &h.Outcome, &h.Count, &h.LastSeen); err != nil {
			continue
		}
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

func clearFAQHits(db *sql.DB) (int64, error) {
	result, err := db.Exec(`DELETE FROM faq_hits`)
	if err != nil {
		return 0, fmt.Errorf("clear faq hits: %w", err)
	}
	return result.RowsAffected()
}
