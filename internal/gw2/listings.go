package gw2

import (
	"encoding/json"
	"fmt"
	"sort"

	"gw2-arbitrage/internal/logger"
	"gw2-arbitrage/internal/market"
)

// listingsResponse mirrors one commerce/listings entry; the per-level order
// count is dropped, only price and quantity matter to the simulation.
type listingsResponse struct {
	ID    int              `json:"id"`
	Buys  []market.Listing `json:"buys"`
	Sells []market.Listing `json:"sells"`
}

// FetchListings retrieves the full order book for the given item ids, in
// batches, keyed by item id. Concurrent calls for the same id set are
// coalesced into a single fetch.
//
// The API lists sells in ascending and buys in descending price order; both
// ladders are reversed so the best offer sits at the tail and can be popped
// by the simulation.
func (c *Client) FetchListings(ids []int) (map[int]*market.ItemListings, error) {
	ids = append([]int(nil), ids...)
	sort.Ints(ids)

	result, err, _ := c.group.Do(fmt.Sprintf("listings:%s", joinIDs(ids)), func() (interface{}, error) {
		return c.fetchListings(ids)
	})
	if err != nil {
		return nil, err
	}
	return result.(map[int]*market.ItemListings), nil
}

func (c *Client) fetchListings(ids []int) (map[int]*market.ItemListings, error) {
	logger.Info("API", fmt.Sprintf("Fetching detailed listings for %d items...", len(ids)))

	bodies, err := c.getByIDs("commerce/listings", ids)
	if err != nil {
		return nil, err
	}

	book := make(map[int]*market.ItemListings)
	for _, body := range bodies {
		var batch []listingsResponse
		if err := json.Unmarshal(body, &batch); err != nil {
			return nil, fmt.Errorf("parse listings: %w", err)
		}
		for _, entry := range batch {
			reverse(entry.Buys)
			reverse(entry.Sells)
			book[entry.ID] = &market.ItemListings{
				ID:    entry.ID,
				Buys:  entry.Buys,
				Sells: entry.Sells,
			}
		}
	}

	logger.Success("API", fmt.Sprintf("Loaded listings for %d items", len(book)))
	return book, nil
}

func reverse(levels []market.Listing) {
	for i, j := 0, len(levels)-1; i < j; i, j = i+1, j-1 {
		levels[i], levels[j] = levels[j], levels[i]
	}
}
