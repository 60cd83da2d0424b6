package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"gw2-arbitrage/internal/catalog"
	"gw2-arbitrage/internal/engine"
)

// WriteOverviewCSV writes one row per profitable item, most profitable last
// (matching the sort the scan produces).
func WriteOverviewCSV(path string, results []*engine.ProfitableItem,
	items map[int]*catalog.Item, recipes map[int]*catalog.Recipe) error {

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"name", "disciplines", "profit", "count", "link", "id",
		"profitability_threshold", "timegated", "craft_level"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range results {
		if r.Profit == 0 {
			continue
		}
		item := items[r.ID]
		recipe := recipes[r.ID]
		row := []string{
			item.Name,
			strings.Join(recipe.Disciplines, "/"),
			strconv.Itoa(r.Profit),
			strconv.Itoa(r.Count),
			fmt.Sprintf("https://www.gw2bltc.com/en/item/%d", r.ID),
			strconv.Itoa(r.ID),
			strconv.Itoa(r.ProfitabilityThreshold),
			strconv.FormatBool(r.TimeGated),
			strconv.Itoa(recipe.MinRating),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// WriteShoppingListCSV writes the purchase ledger of one simulated item: one
// row per ingredient with the units to buy, total cost, and the per-price
// breakdown of which listings to take.
func WriteShoppingListCSV(path string, result *engine.ProfitableItem,
	items map[int]*catalog.Item) error {

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"ingredient", "id", "count", "cost", "listings"}); err != nil {
		return err
	}

	for _, id := range sortedIngredientIDs(result.PurchasedIngredients) {
		purchased := result.PurchasedIngredients[id]
		name := strconv.Itoa(id)
		if item, ok := items[id]; ok {
			name = item.Name
		}
		row := []string{
			name,
			strconv.Itoa(id),
			FormatStackCount(purchased.UnitsToBuy()),
			strconv.Itoa(purchased.Cost),
			formatBreakdown(purchased.Listings),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// FormatStackCount renders a unit count with its trading-post stack
// breakdown once it exceeds one stack, e.g. "612 (2 x 250 + 112)".
func FormatStackCount(count int) string {
	if count < catalog.StackSize {
		return strconv.Itoa(count)
	}
	stacks := count / catalog.StackSize
	remainder := count % catalog.StackSize
	if remainder == 0 {
		return fmt.Sprintf("%d (%d x %d)", count, stacks, catalog.StackSize)
	}
	return fmt.Sprintf("%d (%d x %d + %d)", count, stacks, catalog.StackSize, remainder)
}

// formatBreakdown renders a unit-price → quantity map as "qty @ price"
// segments, cheapest first.
func formatBreakdown(listings map[int]int) string {
	prices := make([]int, 0, len(listings))
	for price := range listings {
		prices = append(prices, price)
	}
	sort.Ints(prices)

	parts := make([]string, 0, len(prices))
	for _, price := range prices {
		parts = append(parts, fmt.Sprintf("%d @ %d", listings[price], price))
	}
	return strings.Join(parts, "; ")
}

func sortedIngredientIDs(ingredients map[int]*engine.PurchasedIngredient) []int {
	ids := make([]int, 0, len(ingredients))
	for id := range ingredients {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
