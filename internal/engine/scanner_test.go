package engine

import (
	"testing"

	"gw2-arbitrage/internal/catalog"
	"gw2-arbitrage/internal/market"
)

func craftableRecipe(outputID int, disciplines []string, ingredients ...catalog.Ingredient) *catalog.Recipe {
	r := recipe(outputID, 1, ingredients...)
	r.Disciplines = disciplines
	return r
}

func TestScan_FindsProfitableCandidates(t *testing.T) {
	armorsmith := []string{"Armorsmith"}
	items := map[int]*catalog.Item{
		100: item(100, "Profitable Widget"),
		101: item(101, "Part"),
		200: item(200, "Unprofitable Widget"),
	}
	recipes := map[int]*catalog.Recipe{
		100: craftableRecipe(100, armorsmith, catalog.Ingredient{ItemID: 101, Count: 1}),
		200: craftableRecipe(200, armorsmith, catalog.Ingredient{ItemID: 101, Count: 1}),
	}
	prices := map[int]*market.Price{
		// craft 100 for 10, sell to a 40 buy order (34 net): profitable
		100: price(100, 50, 5, 40, 5),
		// craft 200 for 10, sell to a 11 buy order (9 net): not profitable
		200: price(200, 50, 5, 11, 5),
		101: price(101, 10, 50, 0, 0),
	}
	a := NewAnalyzer(items, recipes, CraftingOptions{})

	var messages []string
	result := a.Scan(prices, catalog.FilterDisciplines, func(msg string) { messages = append(messages, msg) })

	if len(result.CandidateIDs) != 1 || result.CandidateIDs[0] != 100 {
		t.Fatalf("CandidateIDs = %v, want [100]", result.CandidateIDs)
	}
	if len(result.IngredientIDs) != 1 || result.IngredientIDs[0] != 101 {
		t.Fatalf("IngredientIDs = %v, want [101]", result.IngredientIDs)
	}
	if len(messages) == 0 {
		t.Fatal("progress callback never invoked")
	}

	ids := result.ListingIDs()
	if len(ids) != 2 || ids[0] != 100 || ids[1] != 101 {
		t.Fatalf("ListingIDs = %v, want [100 101]", ids)
	}
}

func TestScan_SkipsRestrictedAndWrongDiscipline(t *testing.T) {
	items := map[int]*catalog.Item{
		100: {ID: 100, Name: "Bound Widget", Flags: []string{"AccountBound"}},
		200: item(200, "Cook-only Widget"),
		101: item(101, "Part"),
	}
	recipes := map[int]*catalog.Recipe{
		100: craftableRecipe(100, []string{"Armorsmith"}, catalog.Ingredient{ItemID: 101, Count: 1}),
		200: craftableRecipe(200, []string{"Chef"}, catalog.Ingredient{ItemID: 101, Count: 1}),
	}
	prices := map[int]*market.Price{
		100: price(100, 50, 5, 40, 5),
		200: price(200, 50, 5, 40, 5),
		101: price(101, 10, 50, 0, 0),
	}
	a := NewAnalyzer(items, recipes, CraftingOptions{})

	result := a.Scan(prices, []string{"Armorsmith"}, nil)
	if len(result.CandidateIDs) != 0 {
		t.Fatalf("CandidateIDs = %v, want none", result.CandidateIDs)
	}
}

func TestScan_SkipsItemsWithoutSellOffers(t *testing.T) {
	items := map[int]*catalog.Item{
		100: item(100, "Unlisted Widget"),
		101: item(101, "Part"),
	}
	recipes := map[int]*catalog.Recipe{
		100: craftableRecipe(100, []string{"Armorsmith"}, catalog.Ingredient{ItemID: 101, Count: 1}),
	}
	prices := map[int]*market.Price{
		100: price(100, 0, 0, 40, 5), // zero sell quantity: not listable
		101: price(101, 10, 50, 0, 0),
	}
	a := NewAnalyzer(items, recipes, CraftingOptions{})

	result := a.Scan(prices, []string{"Armorsmith"}, nil)
	if len(result.CandidateIDs) != 0 {
		t.Fatalf("CandidateIDs = %v, want none", result.CandidateIDs)
	}
}
