// Package crafting implements the craft feasibility engine: given a recipe,
// available ingredient stock and coin balance, it reports whether a requested
// batch is possible and the true maximum batch size. Execution itself lives
// in the game store so the deduction is atomic with the rest of the mutation.
package crafting

import (
	"math"

	"github.com/isleforge/isleforge/internal/catalog"
	"github.com/isleforge/isleforge/internal/progression"
)

// Stock exposes how much of an item is on hand. Both container kinds satisfy it.
type Stock interface {
	Quantity(itemID string) int
}

// Shortfall records one ingredient the stock cannot cover for the requested batch.
type Shortfall struct {
	ItemID string `json:"itemId"`
	Need   int    `json:"need"`
	Have   int    `json:"have"`
}

// Check is the result of a feasibility evaluation.
type Check struct {
	CanCraft           bool        `json:"canCraft"`
	Cost               int         `json:"cost"` // total coin cost for the requested batch
	MissingIngredients []Shortfall `json:"missingIngredients,omitempty"`
	MaxCraftable       int         `json:"maxCraftable"`
}

// Evaluate checks a batch of qty crafts of the recipe against the stock and
// coin balance. MaxCraftable is the minimum over the currency constraint and
// every single ingredient constraint - whichever binds - clamped at zero.
func Evaluate(cat *catalog.Catalog, recipe *catalog.Recipe, stock Stock, coins, qty int) Check {
	if qty < 1 {
		qty = 1
	}
	resultItem, _ := cat.Item(recipe.ResultItemID)
	perUnitCost := progression.CraftingCost(recipe, resultItem)

	check := Check{Cost: perUnitCost * qty}

	// Free recipes are unbounded by currency; ingredients still bind below.
	maxCraftable := math.MaxInt
	if perUnitCost > 0 {
		maxCraftable = coins / perUnitCost
	}

	for _, ing := range recipe.Ingredients {
		have := stock.Quantity(ing.ItemID)
		need := ing.Quantity * qty
		if have < need {
			check.MissingIngredients = append(check.MissingIngredients, Shortfall{
				ItemID: ing.ItemID, Need: need, Have: have,
			})
		}
		if ing.Quantity > 0 {
			if byIng := have / ing.Quantity; byIng < maxCraftable {
				maxCraftable = byIng
			}
		}
	}

	if maxCraftable < 0 {
		maxCraftable = 0
	}
	if maxCraftable == math.MaxInt {
		// No binding constraint at all (free recipe, no ingredients).
		maxCraftable = qty
	}
	check.MaxCraftable = maxCraftable
	check.CanCraft = len(check.MissingIngredients) == 0 && coins >= check.Cost
	return check
}
