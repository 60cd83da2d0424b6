package engine

import (
	"fmt"
	"sort"

	"gw2-arbitrage/internal/catalog"
	"gw2-arbitrage/internal/market"
)

// ScanResult is the outcome of the estimated-mode screening pass: the items
// worth a precise simulation and every ingredient their recipe trees can
// reach, so the caller knows which detailed order books to fetch.
type ScanResult struct {
	CandidateIDs  []int
	IngredientIDs []int
}

// ListingIDs returns the deduplicated union of candidate and ingredient ids,
// sorted for stable fetch order.
func (r *ScanResult) ListingIDs() []int {
	seen := make(map[int]bool, len(r.CandidateIDs)+len(r.IngredientIDs))
	var ids []int
	for _, id := range r.CandidateIDs {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, id := range r.IngredientIDs {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

// Scan screens every known recipe with the cheap estimated resolver and
// returns the ones whose top buy order, net of commission, beats the
// estimated production cost. Items that cannot be sold (restricted flags,
// legacy ids), recipes outside the configured disciplines, and items with no
// standing sell offers are skipped.
func (a *Analyzer) Scan(prices map[int]*market.Price, disciplines []string, progress func(string)) *ScanResult {
	if progress == nil {
		progress = func(string) {}
	}
	progress(fmt.Sprintf("Screening %d recipes...", len(a.Recipes)))

	result := &ScanResult{}

	for itemID, recipe := range a.Recipes {
		if item, ok := a.Items[itemID]; ok && catalog.IsRestricted(item) {
			continue
		}

		if !recipe.HasDiscipline(disciplines) {
			continue
		}

		// Some craftable items carry no restriction flags but still cannot
		// be listed (e.g. 39417, 79557); they simply never have a price.
		price, ok := prices[itemID]
		if !ok || price.Sells.Quantity == 0 {
			continue
		}

		cost, ok := a.EstimatedCost(itemID, prices)
		if !ok {
			continue
		}

		if market.EffectiveBuyPrice(price.Buys.UnitPrice) > cost.Cost {
			result.CandidateIDs = append(result.CandidateIDs, itemID)
			result.IngredientIDs = append(result.IngredientIDs,
				catalog.CollectIngredientIDs(itemID, a.Recipes)...)
		}
	}

	sort.Ints(result.CandidateIDs)
	progress(fmt.Sprintf("%d candidates past screening", len(result.CandidateIDs)))
	return result
}
