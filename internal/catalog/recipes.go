package catalog

// StackSize is the trading-post stack size, used when formatting shopping
// list quantities.
const StackSize = 250

// Ingredient is one input line of a recipe.
type Ingredient struct {
	ItemID int `json:"item_id"`
	Count  int `json:"count"`
}

// Recipe describes how one item is crafted. Immutable once loaded; keyed by
// output item id in the recipe map.
type Recipe struct {
	ID              int          `json:"id"`
	Type            string       `json:"type"`
	OutputItemID    int          `json:"output_item_id"`
	OutputItemCount int          `json:"output_item_count"`
	TimeToCraftMS   int          `json:"time_to_craft_ms"`
	Disciplines     []string     `json:"disciplines"`
	MinRating       int          `json:"min_rating"`
	Flags           []string     `json:"flags"`
	Ingredients     []Ingredient `json:"ingredients"`
	ChatLink        string       `json:"chat_link"`
}

// OutputCount returns the recipe's batch size, defaulting to 1 when the API
// omits or zeroes the field.
func (r *Recipe) OutputCount() int {
	if r.OutputItemCount <= 0 {
		return 1
	}
	return r.OutputItemCount
}

// FilterDisciplines are the crafting disciplines considered when scanning for
// profitable items.
var FilterDisciplines = []string{
	"Armorsmith",
	"Artificer",
	"Chef",
	"Huntsman",
	"Jeweler",
	"Leatherworker",
	"Scribe",
	"Tailor",
	"Weaponsmith",
}

// HasDiscipline reports whether the recipe can be crafted by any of the given
// disciplines.
func (r *Recipe) HasDiscipline(disciplines []string) bool {
	for _, want := range disciplines {
		for _, have := range r.Disciplines {
			if have == want {
				return true
			}
		}
	}
	return false
}

// Once-per-day recipes, see https://wiki.guildwars2.com/wiki/Category:Time_gated_recipes
// Charged Quartz Crystals are left off the list since they also drop from
// containers.
var timeGatedOutputs = map[int]bool{
	46740: true, // Spool of Silk Weaving Thread
	46742: true, // Lump of Mithrillium
	46744: true, // Glob of Elder Spirit Residue
	46745: true, // Spool of Thick Elonian Cord
	66913: true, // Clay Pot
	66917: true, // Plate of Meaty Plant Food
	66923: true, // Plate of Piquant Plant Food
	66993: true, // Grow Lamp
	67015: true, // Heat Stone
	67377: true, // Vial of Maize Balm
	79726: true, // Dragon Hatchling Doll Eye
	79763: true, // Gossamer Stuffing
	79790: true, // Dragon Hatchling Doll Hide
	79795: true, // Dragon Hatchling Doll Adornments
	79817: true, // Dragon Hatchling Doll Frame
}

// IsTimeGated reports whether the recipe is limited to one craft per day.
func IsTimeGated(r *Recipe) bool {
	return timeGatedOutputs[r.OutputItemID]
}

// CollectIngredientIDs returns every item id reachable through the recipe
// tree below itemID, excluding itemID itself. A visited set guards against
// cycles in malformed recipe data.
func CollectIngredientIDs(itemID int, recipes map[int]*Recipe) []int {
	visited := map[int]bool{itemID: true}
	var ids []int
	var walk func(id int)
	walk = func(id int) {
		recipe, ok := recipes[id]
		if !ok {
			return
		}
		for _, ing := range recipe.Ingredients {
			if visited[ing.ItemID] {
				continue
			}
			visited[ing.ItemID] = true
			ids = append(ids, ing.ItemID)
			walk(ing.ItemID)
		}
	}
	walk(itemID)
	return ids
}
