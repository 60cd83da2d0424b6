package catalog

import "strings"

// Item is one entry of the item catalogue, loaded once from the API and
// immutable afterwards.
type Item struct {
	ID           int      `json:"id"`
	ChatLink     string   `json:"chat_link"`
	Name         string   `json:"name"`
	Icon         string   `json:"icon"`
	Description  string   `json:"description"`
	Type         string   `json:"type"`
	Rarity       string   `json:"rarity"`
	Level        int      `json:"level"`
	VendorValue  int      `json:"vendor_value"`
	Flags        []string `json:"flags"`
	GameTypes    []string `json:"game_types"`
	Restrictions []string `json:"restrictions"`
}

// Raw refinement materials that merchants sell for a fixed markup over the
// listed vendor value. See https://wiki.guildwars2.com/wiki/Merchant
var vendorSoldMaterials = map[string]bool{
	"Thermocatalytic Reagent":  true,
	"Spool of Jute Thread":     true,
	"Spool of Wool Thread":     true,
	"Spool of Cotton Thread":   true,
	"Spool of Linen Thread":    true,
	"Spool of Silk Thread":     true,
	"Spool of Gossamer Thread": true,
	"Lump of Tin":              true,
	"Lump of Coal":             true,
	"Lump of Primordium":       true,
	"Jar of Vinegar":           true,
	"Packet of Baking Powder":  true,
	"Jar of Vegetable Oil":     true,
	"Packet of Salt":           true,
	"Bag of Sugar":             true,
	"Jug of Water":             true,
	"Bag of Starch":            true,
	"Bag of Flour":             true,
	"Bottle of Soy Sauce":      true,
	"Milling Basin":            true,
	"Crystalline Bottle":       true,
	"Bag of Mortar":            true,
	"Essence of Elegance":      true,
}

// Items merchants sell at a price unrelated to their vendor value.
var vendorFixedPrices = map[string]int{
	"Pile of Compost Starter":      150,
	"Pile of Powdered Gelatin Mix": 200,
	"Smell-Enhancing Culture":      40000,
}

// VendorPrice returns the price at which the item can be bought from a
// merchant, when it can be bought at all. Common ascended materials are
// treated as free only when includeAscended is set; without it they have no
// vendor source.
func VendorPrice(item *Item, includeAscended bool) (int, bool) {
	name := item.Name

	if vendorSoldMaterials[name] ||
		(strings.HasSuffix(name, "Rune of Holding") && !strings.HasPrefix(name, "Supreme")) {
		// standard merchant sell price is vendor value * 8, see:
		// https://forum-en.gw2archive.eu/forum/community/api/How-to-get-the-vendor-sell-price
		if item.VendorValue > 0 {
			return item.VendorValue * 8, true
		}
		return 0, false
	}

	if price, ok := vendorFixedPrices[name]; ok {
		return price, true
	}

	if includeAscended && IsCommonAscendedMaterial(item) {
		return 0, true
	}

	return 0, false
}

// IsRestricted reports whether the item cannot be listed on the trading post
// and is therefore excluded as a crafting end-product.
func IsRestricted(item *Item) bool {
	switch item.ID {
	case 24749: // legacy Major Rune of the Air
		return true
	case 76363: // legacy catapult schematic
		return true
	}
	for _, flag := range item.Flags {
		if flag == "AccountBound" || flag == "SoulbindOnAcquire" {
			return true
		}
	}
	return false
}

// IsCommonAscendedMaterial reports whether the item is one of the account
// currencies that most players accumulate faster than they can spend.
func IsCommonAscendedMaterial(item *Item) bool {
	switch item.Name {
	case "Empyreal Fragment", "Dragonite Ore", "Pile of Bloodstone Dust":
		return true
	}
	return false
}
