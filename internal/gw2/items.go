package gw2

import (
	"encoding/json"
	"fmt"

	"gw2-arbitrage/internal/catalog"
	"gw2-arbitrage/internal/logger"
)

// FetchItems retrieves the full item catalogue, keyed by item id. Pages are
// served from the persistent store when fresh.
func (c *Client) FetchItems() (map[int]*catalog.Item, error) {
	pages, err := c.getCachedPages("items")
	if err != nil {
		return nil, err
	}

	items := make(map[int]*catalog.Item)
	for _, page := range pages {
		var batch []*catalog.Item
		if err := json.Unmarshal(page, &batch); err != nil {
			return nil, fmt.Errorf("parse items page: %w", err)
		}
		for _, item := range batch {
			items[item.ID] = item
		}
	}

	logger.Success("API", fmt.Sprintf("Loaded %d items", len(items)))
	return items, nil
}
