package db

import (
	"time"

	"gw2-arbitrage/internal/engine"
)

// SaveRun records one simulated item's result so past scans can be compared.
func (d *DB) SaveRun(startedAt time.Time, itemName string, item *engine.ProfitableItem) {
	d.sql.Exec(
		"INSERT INTO runs (started_at, item_id, item_name, profit, crafting_cost, count, time_gated, needs_ascended) VALUES (?,?,?,?,?,?,?,?)",
		startedAt.Format(time.RFC3339), item.ID, itemName,
		item.Profit, item.CraftingCost, item.Count,
		boolToInt(item.TimeGated), boolToInt(item.NeedsAscended),
	)
}

// RunSummary is one stored scan result row.
type RunSummary struct {
	StartedAt    string
	ItemID       int
	ItemName     string
	Profit       int
	CraftingCost int
	Count        int
}

// RecentRuns returns the latest stored results, newest first.
func (d *DB) RecentRuns(limit int) []RunSummary {
	if limit <= 0 {
		limit = 50
	}
	rows, err := d.sql.Query(
		"SELECT started_at, item_id, item_name, profit, crafting_cost, count FROM runs ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.StartedAt, &r.ItemID, &r.ItemName, &r.Profit, &r.CraftingCost, &r.Count); err != nil {
			continue
		}
		runs = append(runs, r)
	}
	return runs
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
