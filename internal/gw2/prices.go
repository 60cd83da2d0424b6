package gw2

import (
	"encoding/json"
	"fmt"

	"gw2-arbitrage/internal/logger"
	"gw2-arbitrage/internal/market"
)

const pricesCacheKey = "commerce/prices"

// FetchPrices retrieves the top-of-book price snapshot for every tradeable
// item. The snapshot is held in memory for a few minutes; it is never cached
// to disk since it goes stale almost immediately.
func (c *Client) FetchPrices() (map[int]*market.Price, error) {
	if cached, ok := c.prices.Get(pricesCacheKey); ok {
		return cached.(map[int]*market.Price), nil
	}

	logger.Info("API", "Fetching trading post prices...")
	pages, err := c.getAllPages("commerce/prices")
	if err != nil {
		return nil, err
	}

	prices := make(map[int]*market.Price)
	for _, page := range pages {
		var batch []*market.Price
		if err := json.Unmarshal(page, &batch); err != nil {
			return nil, fmt.Errorf("parse prices page: %w", err)
		}
		for _, price := range batch {
			prices[price.ID] = price
		}
	}

	logger.Success("API", fmt.Sprintf("Loaded %d prices", len(prices)))
	c.prices.SetDefault(pricesCacheKey, prices)
	return prices, nil
}
