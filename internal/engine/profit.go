package engine

import (
	"fmt"
	"math/big"

	"gw2-arbitrage/internal/market"
)

// PurchasedIngredient accumulates, across all committed crafting iterations,
// how much of one ingredient was bought from the trading post and at which
// price levels.
type PurchasedIngredient struct {
	Count    *big.Rat    // fractional units consumed; round up for a shopping list
	Cost     int         // total coppers spent
	Listings map[int]int // unit price -> quantity bought at that price
}

// Buy merges one committed purchase into the ledger entry.
func (p *PurchasedIngredient) Buy(count *big.Rat, cost int, breakdown map[int]int) {
	p.Count.Add(p.Count, count)
	p.Cost += cost
	for unitPrice, quantity := range breakdown {
		p.Listings[unitPrice] += quantity
	}
}

// UnitsToBuy returns the whole number of units the shopping list should show.
func (p *PurchasedIngredient) UnitsToBuy() int {
	return ceilRat(p.Count)
}

// ProfitableItem is the aggregate result of simulating crafting one item
// until it stops being profitable.
type ProfitableItem struct {
	ID                     int
	CraftingCost           int      // total cost across all committed iterations
	CraftingSteps          *big.Rat // total crafting actions, fractional for multi-output batches
	Count                  int      // committed iterations
	Profit                 int
	ProfitabilityThreshold int // lowest sell price that would still break even
	TimeGated              bool
	NeedsAscended          bool
	PurchasedIngredients   map[int]*PurchasedIngredient
}

// ProfitPerItem returns the profit of one crafted unit, rounded down.
func (p *ProfitableItem) ProfitPerItem() int {
	if p.Count == 0 {
		return 0
	}
	return p.Profit / p.Count
}

// ProfitPerCraftingStep returns the profit earned per crafting action,
// rounded down.
func (p *ProfitableItem) ProfitPerCraftingStep() int {
	if p.CraftingSteps.Sign() == 0 {
		return 0
	}
	perStep := new(big.Rat).SetInt64(int64(p.Profit))
	perStep.Quo(perStep, p.CraftingSteps)
	return ratFloor(perStep)
}

// ProfitOnCost returns profit divided by invested cost.
func (p *ProfitableItem) ProfitOnCost() *big.Rat {
	if p.CraftingCost == 0 {
		return new(big.Rat)
	}
	return big.NewRat(int64(p.Profit), int64(p.CraftingCost))
}

// CraftingProfit simulates crafting and selling the item behind listings, one
// unit at a time, until an iteration stops being profitable, the book runs
// dry, or the configured iteration cap is reached.
//
// Each iteration resolves the precise crafting cost against the current book,
// checks it against the best standing buy order net of commission, and only
// then commits: the buy order is consumed, every tentative ingredient
// purchase is executed against the book in recorded order, and the purchase
// ledger is updated. Marginal cost rises and marginal revenue falls as the
// book depletes, so stopping at the first unprofitable iteration is exact.
func (a *Analyzer) CraftingProfit(listings *market.ItemListings, book map[int]*market.ItemListings) *ProfitableItem {
	result := &ProfitableItem{
		ID:                   listings.ID,
		CraftingSteps:        new(big.Rat),
		PurchasedIngredients: make(map[int]*PurchasedIngredient),
	}

	for a.Opts.Count <= 0 || result.Count < a.Opts.Count {
		log := &PurchaseLog{}
		steps := new(big.Rat)

		cost, ok := a.PreciseCost(listings.ID, book, log, steps)
		if !ok {
			break
		}

		buyPrice, ok := listings.BestBuyOffer()
		if !ok {
			break
		}

		profit := market.EffectiveBuyPrice(buyPrice) - cost.Cost
		if profit <= 0 {
			break
		}

		// A trading-post win at the top level has no parent to record the
		// purchase of the item itself; book it here so the sell ladder is
		// consumed and the next iteration sees the depleted book.
		if cost.Source == SourceTradingPost {
			log.Append(listings.ID, big.NewRat(1, 1))
		}

		// Commit the iteration: consume the buy order, then execute every
		// tentative purchase against the same book the lookahead priced.
		listings.Sell()

		for _, purchase := range log.Entries() {
			entry, ok := book[purchase.ItemID]
			if !ok {
				panic(fmt.Sprintf("engine: missing detailed listings for %d", purchase.ItemID))
			}
			units := ceilRat(purchase.Count)
			buyCost, breakdown, ok := entry.Buy(units)
			if !ok {
				panic(fmt.Sprintf("engine: sell ladder for %d exhausted mid-commit", purchase.ItemID))
			}

			if ledger, exists := result.PurchasedIngredients[purchase.ItemID]; exists {
				ledger.Buy(purchase.Count, buyCost, breakdown)
			} else {
				result.PurchasedIngredients[purchase.ItemID] = &PurchasedIngredient{
					Count:    new(big.Rat).Set(purchase.Count),
					Cost:     buyCost,
					Listings: breakdown,
				}
			}
		}

		result.Profit += profit
		result.CraftingCost += cost.Cost
		result.ProfitabilityThreshold = market.EffectiveSellPrice(cost.Cost)
		result.Count++
		result.CraftingSteps.Add(result.CraftingSteps, steps)
		result.TimeGated = cost.TimeGated
		result.NeedsAscended = cost.NeedsAscended
	}

	return result
}

// ceilRat returns the smallest integer >= r. r must be non-negative.
func ceilRat(r *big.Rat) int {
	q := new(big.Int).Quo(r.Num(), r.Denom())
	if !r.IsInt() {
		q.Add(q, big.NewInt(1))
	}
	return int(q.Int64())
}

// ratFloor returns the largest integer <= r. r must be non-negative.
func ratFloor(r *big.Rat) int {
	q := new(big.Int).Quo(r.Num(), r.Denom())
	return int(q.Int64())
}
