package gw2

import (
	"encoding/json"
	"fmt"

	"gw2-arbitrage/internal/catalog"
	"gw2-arbitrage/internal/logger"
)

// FetchRecipes retrieves every recipe, keyed by output item id. Pages are
// served from the persistent store when fresh.
func (c *Client) FetchRecipes() (map[int]*catalog.Recipe, error) {
	pages, err := c.getCachedPages("recipes")
	if err != nil {
		return nil, err
	}

	recipes := make(map[int]*catalog.Recipe)
	for _, page := range pages {
		var batch []*catalog.Recipe
		if err := json.Unmarshal(page, &batch); err != nil {
			return nil, fmt.Errorf("parse recipes page: %w", err)
		}
		for _, recipe := range batch {
			recipes[recipe.OutputItemID] = recipe
		}
	}

	logger.Success("API", fmt.Sprintf("Loaded %d recipes", len(recipes)))
	return recipes, nil
}
