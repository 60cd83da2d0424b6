package engine

import (
	"fmt"
	"math/big"

	"gw2-arbitrage/internal/catalog"
	"gw2-arbitrage/internal/market"
)

// Source identifies the cheapest way to acquire an item.
type Source int

const (
	SourceCrafting Source = iota
	SourceTradingPost
	SourceVendor
)

func (s Source) String() string {
	switch s {
	case SourceCrafting:
		return "Crafting"
	case SourceTradingPost:
		return "TradingPost"
	case SourceVendor:
		return "Vendor"
	}
	return fmt.Sprintf("Source(%d)", int(s))
}

// CraftingCost is the resolved cheapest-acquisition decision for one item at
// one point in simulated time.
type CraftingCost struct {
	Cost          int
	Source        Source
	TimeGated     bool
	NeedsAscended bool
}

// CraftingOptions control which recipes the resolver may use and how many
// crafting iterations the profit simulator runs. They are passed down
// unchanged through the whole recursion.
type CraftingOptions struct {
	IncludeTimeGated bool // allow once-per-day recipes
	IncludeAscended  bool // treat common ascended materials as free
	Count            int  // max crafting iterations, 0 = unbounded
}

// maxCraftDepth bounds the recipe recursion. Live recipe data is a DAG well
// under this depth; the bound only guards against malformed cyclic data.
const maxCraftDepth = 64

// Analyzer resolves crafting costs and simulates crafting profits against a
// static catalogue of items and recipes.
type Analyzer struct {
	Items   map[int]*catalog.Item
	Recipes map[int]*catalog.Recipe
	Opts    CraftingOptions
}

// NewAnalyzer creates an Analyzer over the given catalogue.
func NewAnalyzer(items map[int]*catalog.Item, recipes map[int]*catalog.Recipe, opts CraftingOptions) *Analyzer {
	return &Analyzer{Items: items, Recipes: recipes, Opts: opts}
}

// usableRecipe returns the item's recipe, or nil when it has none or the
// recipe is excluded by the options.
func (a *Analyzer) usableRecipe(itemID int) *catalog.Recipe {
	recipe, ok := a.Recipes[itemID]
	if !ok {
		return nil
	}
	if catalog.IsTimeGated(recipe) && !a.Opts.IncludeTimeGated {
		return nil
	}
	return recipe
}

func (a *Analyzer) item(itemID int) *catalog.Item {
	item, ok := a.Items[itemID]
	if !ok {
		// The driver pre-fetches the catalogue for every reachable item;
		// a miss here is a broken invariant, not a recoverable condition.
		panic(fmt.Sprintf("engine: item %d not in catalogue", itemID))
	}
	return item
}

// selectLowestCost picks the cheapest of the available acquisition sources.
// On a cost tie the trading post wins over crafting, and crafting over the
// vendor, so the simulator prefers the source that needs no crafting steps.
func selectLowestCost(craftCost int, haveCraft bool, tpCost int, haveTP bool,
	vendorCost int, haveVendor bool, timeGated, needsAscended bool) (CraftingCost, bool) {

	if !haveCraft && !haveTP && !haveVendor {
		return CraftingCost{}, false
	}

	cost := 0
	first := true
	for _, c := range []struct {
		value int
		have  bool
	}{{tpCost, haveTP}, {craftCost, haveCraft}, {vendorCost, haveVendor}} {
		if !c.have {
			continue
		}
		if first || c.value < cost {
			cost = c.value
			first = false
		}
	}

	var source Source
	switch {
	case haveTP && cost == tpCost:
		source = SourceTradingPost
	case haveCraft && cost == craftCost:
		source = SourceCrafting
	default:
		source = SourceVendor
	}

	return CraftingCost{Cost: cost, Source: source, TimeGated: timeGated, NeedsAscended: needsAscended}, true
}

// EstimatedCost resolves the cheapest way to obtain an item using only
// top-of-book price snapshots. It never mutates shared state and is used to
// screen items before the expensive precise simulation.
func (a *Analyzer) EstimatedCost(itemID int, prices map[int]*market.Price) (CraftingCost, bool) {
	return a.estimatedCost(itemID, prices, 0)
}

func (a *Analyzer) estimatedCost(itemID int, prices map[int]*market.Price, depth int) (CraftingCost, bool) {
	item := a.item(itemID)

	timeGated := false
	needsAscended := catalog.IsCommonAscendedMaterial(item)

	craftCost := 0
	haveCraft := false
	if recipe := a.usableRecipe(itemID); recipe != nil && depth < maxCraftDepth {
		timeGated = catalog.IsTimeGated(recipe)

		sum := 0
		haveCraft = true
		for _, ing := range recipe.Ingredients {
			ingCost, ok := a.estimatedCost(ing.ItemID, prices, depth+1)
			if !ok {
				// Craft branch is dead, but the item may still be bought.
				haveCraft = false
				break
			}
			timeGated = timeGated || ingCost.TimeGated
			needsAscended = needsAscended || ingCost.NeedsAscended
			sum += ingCost.Cost * ing.Count
		}
		if haveCraft {
			craftCost = market.DivIntCeil(sum, recipe.OutputCount())
		}
	}

	tpCost := 0
	haveTP := false
	if price, ok := prices[itemID]; ok && price.Sells.Quantity > 0 {
		tpCost = price.Sells.UnitPrice
		haveTP = true
	}

	vendorCost, haveVendor := catalog.VendorPrice(item, a.Opts.IncludeAscended)

	return selectLowestCost(craftCost, haveCraft, tpCost, haveTP, vendorCost, haveVendor, timeGated, needsAscended)
}

// PreciseCost resolves the cheapest way to obtain an item against the live
// order book, recording tentative trading-post purchases into log and
// fractional crafting effort into steps.
//
// The contract on failure or on a non-crafting winner is exact restoration:
// the log and step counter are returned to the state captured on entry, so a
// rejected subtree leaves no speculative bookkeeping behind. Repeated calls
// against the same book pick up whatever liquidity earlier committed
// iterations left.
func (a *Analyzer) PreciseCost(itemID int, book map[int]*market.ItemListings,
	log *PurchaseLog, steps *big.Rat) (CraftingCost, bool) {
	return a.preciseCost(itemID, book, log, steps, 0)
}

func (a *Analyzer) preciseCost(itemID int, book map[int]*market.ItemListings,
	log *PurchaseLog, steps *big.Rat, depth int) (CraftingCost, bool) {

	item := a.item(itemID)

	mark := log.Mark()
	stepsBefore := new(big.Rat).Set(steps)

	timeGated := false
	needsAscended := catalog.IsCommonAscendedMaterial(item)

	craftCost := 0
	haveCraft := false
	if recipe := a.usableRecipe(itemID); recipe != nil && depth < maxCraftDepth {
		timeGated = catalog.IsTimeGated(recipe)
		outputCount := recipe.OutputCount()

		sum := 0
		feasible := len(recipe.Ingredients) > 0
		for _, ing := range recipe.Ingredients {
			ingMark := log.Mark()
			ingStepsBefore := new(big.Rat).Set(steps)

			ingCost, ok := a.preciseCost(ing.ItemID, book, log, steps, depth+1)
			if !ok {
				log.RollbackTo(mark)
				steps.Set(stepsBefore)
				return CraftingCost{}, false
			}

			timeGated = timeGated || ingCost.TimeGated
			needsAscended = needsAscended || ingCost.NeedsAscended

			// Order book consumption for ingredients is deferred until the
			// whole parent iteration commits, so a parent that is cheaper
			// bought than crafted can discard these records.
			switch ingCost.Source {
			case SourceTradingPost:
				log.Append(ing.ItemID, big.NewRat(int64(ing.Count), int64(outputCount)))
			case SourceCrafting:
				// The ingredient's subtree was resolved for one batch of the
				// ingredient; this parent batch needs count/outputCount of it.
				factor := big.NewRat(int64(ing.Count), int64(outputCount))
				log.ScaleFrom(ingMark, factor)

				delta := new(big.Rat).Sub(steps, ingStepsBefore)
				steps.Add(ingStepsBefore, delta.Mul(delta, factor))
			}

			sum += ingCost.Cost * ing.Count
		}
		if feasible {
			craftCost = market.DivIntCeil(sum, outputCount)
			haveCraft = true
		}
	}

	tpCost := 0
	haveTP := false
	if listings, ok := book[itemID]; ok {
		tpCost, haveTP = listings.LowestSellOffer(1)
	}

	vendorCost, haveVendor := catalog.VendorPrice(item, a.Opts.IncludeAscended)

	lowest, ok := selectLowestCost(craftCost, haveCraft, tpCost, haveTP, vendorCost, haveVendor, timeGated, needsAscended)
	if !ok {
		log.RollbackTo(mark)
		steps.Set(stepsBefore)
		return CraftingCost{}, false
	}

	if lowest.Source != SourceCrafting {
		// The parent records a single purchase for this item itself; drop
		// everything this subtree speculated.
		log.RollbackTo(mark)
		steps.Set(stepsBefore)
	} else {
		// Count the craft of this item too, so the top-level item's own
		// crafting action is included in the step total.
		var outputCount int64 = 1
		if recipe := a.usableRecipe(itemID); recipe != nil {
			outputCount = int64(recipe.OutputCount())
		}
		steps.Add(steps, big.NewRat(1, outputCount))
	}

	return lowest, true
}
