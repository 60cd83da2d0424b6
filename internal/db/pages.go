package db

import (
	"time"
)

// pageCacheMaxAge is how long cached static endpoint pages stay fresh. The
// item/recipe catalogues change with game patches, not minute to minute.
const pageCacheMaxAge = 24 * time.Hour

// GetPages retrieves cached API pages for an endpoint, in page order.
// Returns nil, false if nothing is cached or the cache is stale.
func (d *DB) GetPages(endpoint string) ([][]byte, bool) {
	var updatedAt string
	err := d.sql.QueryRow(
		"SELECT updated_at FROM api_pages WHERE endpoint=? ORDER BY updated_at ASC LIMIT 1",
		endpoint,
	).Scan(&updatedAt)
	if err != nil {
		return nil, false
	}

	t, err := time.Parse(time.RFC3339, updatedAt)
	if err != nil || time.Since(t) > pageCacheMaxAge {
		return nil, false
	}

	rows, err := d.sql.Query(
		"SELECT body FROM api_pages WHERE endpoint=? ORDER BY page",
		endpoint,
	)
	if err != nil {
		return nil, false
	}
	defer rows.Close()

	var pages [][]byte
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			continue
		}
		pages = append(pages, body)
	}
	if len(pages) == 0 {
		return nil, false
	}
	return pages, true
}

// SetPages stores API pages for an endpoint, replacing any previous cache.
func (d *DB) SetPages(endpoint string, pages [][]byte) {
	tx, err := d.sql.Begin()
	if err != nil {
		return
	}
	defer tx.Rollback()

	tx.Exec("DELETE FROM api_pages WHERE endpoint=?", endpoint)

	stmt, err := tx.Prepare("INSERT INTO api_pages (endpoint, page, body, updated_at) VALUES (?,?,?,?)")
	if err != nil {
		return
	}
	defer stmt.Close()

	now := time.Now().Format(time.RFC3339)
	for i, body := range pages {
		stmt.Exec(endpoint, i, body, now)
	}
	tx.Commit()
}

// DropPages discards the cached pages for an endpoint, forcing a refetch.
func (d *DB) DropPages(endpoint string) {
	d.sql.Exec("DELETE FROM api_pages WHERE endpoint=?", endpoint)
}
