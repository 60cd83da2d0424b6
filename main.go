package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"gw2-arbitrage/internal/catalog"
	"gw2-arbitrage/internal/config"
	"gw2-arbitrage/internal/db"
	"gw2-arbitrage/internal/engine"
	"gw2-arbitrage/internal/export"
	"gw2-arbitrage/internal/gw2"
	"gw2-arbitrage/internal/logger"
)

var version = "dev"

func main() {
	itemID := flag.Int("item", 0, "item id to build a precise shopping list for (0 = full profitability scan)")
	count := flag.Int("count", -1, "max crafting iterations per item (-1 = config/unbounded)")
	includeTimeGated := flag.Bool("include-time-gated", false, "allow once-per-day recipes")
	includeAscended := flag.Bool("include-ascended", false, "treat common ascended materials as free")
	output := flag.String("output", "", "CSV output path (default from config)")
	refresh := flag.Bool("refresh", false, "discard cached item/recipe pages before running")
	flag.Parse()

	logger.Banner(version)

	cfg := config.Load()
	if *includeTimeGated {
		cfg.IncludeTimeGated = true
	}
	if *includeAscended {
		cfg.IncludeAscended = true
	}
	if *count >= 0 {
		cfg.CraftCount = *count
	}
	if *output != "" {
		cfg.OutputCSV = *output
	}

	database, err := db.Open()
	if err != nil {
		logger.Error("DB", fmt.Sprintf("Failed to open database: %v", err))
		os.Exit(1)
	}
	defer database.Close()

	if *refresh {
		database.DropPages("items")
		database.DropPages("recipes")
		logger.Info("DB", "Dropped cached catalogue pages")
	}

	client := gw2.NewClient(database)

	items, err := client.FetchItems()
	if err != nil {
		logger.Error("API", fmt.Sprintf("Items: %v", err))
		os.Exit(1)
	}
	recipes, err := client.FetchRecipes()
	if err != nil {
		logger.Error("API", fmt.Sprintf("Recipes: %v", err))
		os.Exit(1)
	}

	logger.Section("Catalogue")
	logger.Stats("Items", len(items))
	logger.Stats("Recipes", len(recipes))

	analyzer := engine.NewAnalyzer(items, recipes, cfg.CraftingOptions())

	if *itemID != 0 {
		runShoppingList(cfg, client, database, analyzer, *itemID)
		return
	}
	runScan(cfg, client, database, analyzer, recipes)
}

// runScan screens every recipe, then simulates each candidate's profit
// against a shared live order book and exports the overview.
func runScan(cfg *config.Config, client *gw2.Client, database *db.DB,
	analyzer *engine.Analyzer, recipes map[int]*catalog.Recipe) {

	prices, err := client.FetchPrices()
	if err != nil {
		logger.Error("API", fmt.Sprintf("Prices: %v", err))
		os.Exit(1)
	}

	scan := analyzer.Scan(prices, cfg.Disciplines, func(msg string) {
		logger.Info("SCAN", msg)
	})
	if len(scan.CandidateIDs) == 0 {
		logger.Warn("SCAN", "Nothing looks profitable right now")
		return
	}

	book, err := client.FetchListings(scan.ListingIDs())
	if err != nil {
		logger.Error("API", fmt.Sprintf("Listings: %v", err))
		os.Exit(1)
	}

	logger.Info("SCAN", "Computing precise crafting profits...")
	started := time.Now()

	var results []*engine.ProfitableItem
	for _, id := range scan.CandidateIDs {
		listings, ok := book[id]
		if !ok {
			continue
		}
		result := analyzer.CraftingProfit(listings, book)
		if result.Profit == 0 {
			continue
		}
		database.SaveRun(started, analyzer.Items[id].Name, result)
		results = append(results, result)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Profit < results[j].Profit })

	if err := export.WriteOverviewCSV(cfg.OutputCSV, results, analyzer.Items, recipes); err != nil {
		logger.Error("CSV", fmt.Sprintf("Export failed: %v", err))
		os.Exit(1)
	}

	logger.Section("Scan results")
	logger.Stats("Profitable items", len(results))
	for _, r := range results {
		logger.Info("SCAN", fmt.Sprintf("%s (%d): %d profit over %d crafts, %d / step",
			analyzer.Items[r.ID].Name, r.ID, r.Profit, r.Count, r.ProfitPerCraftingStep()))
	}
	logger.Success("CSV", fmt.Sprintf("Wrote %s", cfg.OutputCSV))
}

// runShoppingList simulates one item until unprofitable and prints the exact
// ingredient shopping list.
func runShoppingList(cfg *config.Config, client *gw2.Client, database *db.DB,
	analyzer *engine.Analyzer, itemID int) {

	item, ok := analyzer.Items[itemID]
	if !ok {
		logger.Error("SCAN", fmt.Sprintf("Unknown item id %d", itemID))
		os.Exit(1)
	}

	ids := append([]int{itemID}, catalog.CollectIngredientIDs(itemID, analyzer.Recipes)...)
	book, err := client.FetchListings(ids)
	if err != nil {
		logger.Error("API", fmt.Sprintf("Listings: %v", err))
		os.Exit(1)
	}
	listings, ok := book[itemID]
	if !ok {
		logger.Error("SCAN", fmt.Sprintf("%s (%d) has no trading post listings", item.Name, itemID))
		os.Exit(1)
	}

	result := analyzer.CraftingProfit(listings, book)
	if result.Profit == 0 {
		logger.Warn("SCAN", fmt.Sprintf("%s (%d) is not profitable to craft", item.Name, itemID))
		return
	}
	database.SaveRun(time.Now(), item.Name, result)

	logger.Section("Shopping list")
	logger.Info("SCAN", fmt.Sprintf("%d x %s = %d profit (%d / step)",
		result.Count, item.Name, result.Profit, result.ProfitPerCraftingStep()))
	for id, purchased := range result.PurchasedIngredients {
		name := fmt.Sprintf("item %d", id)
		if ing, ok := analyzer.Items[id]; ok {
			name = ing.Name
		}
		logger.Info("SCAN", fmt.Sprintf("%s %s (%d) for %d",
			export.FormatStackCount(purchased.UnitsToBuy()), name, id, purchased.Cost))
	}

	if cfg.OutputCSV != "" {
		if err := export.WriteShoppingListCSV(cfg.OutputCSV, result, analyzer.Items); err != nil {
			logger.Error("CSV", fmt.Sprintf("Export failed: %v", err))
			os.Exit(1)
		}
		logger.Success("CSV", fmt.Sprintf("Wrote %s", cfg.OutputCSV))
	}
}
