package crafting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isleforge/isleforge/internal/catalog"
	"github.com/isleforge/isleforge/internal/container"
)

func testCatalogAndRecipe(t *testing.T) (*catalog.Catalog, *catalog.Recipe) {
	t.Helper()
	cat := catalog.Default()
	recipe, ok := cat.Recipe("recipe_iron_ingot")
	require.True(t, ok)
	return cat, recipe
}

func TestEvaluate_FeasibleBatch(t *testing.T) {
	cat, recipe := testCatalogAndRecipe(t)
	stock := &container.QuantityBounded{Capacity: 100}
	stock.Add(catalog.ItemIronOre, 10, container.Reject)
	stock.Add(catalog.ItemCoal, 10, container.Reject)

	// Iron ingot sells for 24: per-unit cost floor(24*1*0.5) = 12.
	check := Evaluate(cat, recipe, stock, 1000, 3)
	assert.True(t, check.CanCraft)
	assert.Equal(t, 36, check.Cost)
	assert.Empty(t, check.MissingIngredients)
	// 10 ore / 2 per craft = 5 binds below 10 coal / 1 and 1000/12 coins.
	assert.Equal(t, 5, check.MaxCraftable)
}

func TestEvaluate_MissingIngredients(t *testing.T) {
	cat, recipe := testCatalogAndRecipe(t)
	stock := &container.QuantityBounded{Capacity: 100}
	stock.Add(catalog.ItemIronOre, 3, container.Reject)

	check := Evaluate(cat, recipe, stock, 1000, 2)
	assert.False(t, check.CanCraft)
	require.Len(t, check.MissingIngredients, 2)
	assert.Equal(t, Shortfall{ItemID: catalog.ItemIronOre, Need: 4, Have: 3}, check.MissingIngredients[0])
	assert.Equal(t, Shortfall{ItemID: catalog.ItemCoal, Need: 2, Have: 0}, check.MissingIngredients[1])
	assert.Equal(t, 0, check.MaxCraftable, "coal at zero caps the batch at zero")
}

func TestEvaluate_CoinsBind(t *testing.T) {
	cat, recipe := testCatalogAndRecipe(t)
	stock := &container.QuantityBounded{Capacity: 1000}
	stock.Add(catalog.ItemIronOre, 100, container.Reject)
	stock.Add(catalog.ItemCoal, 100, container.Reject)

	// 25 coins buys floor(25/12) = 2 crafts even with deep ingredient stock.
	check := Evaluate(cat, recipe, stock, 25, 3)
	assert.False(t, check.CanCraft, "requested 3 costs 36 > 25")
	assert.Empty(t, check.MissingIngredients)
	assert.Equal(t, 2, check.MaxCraftable)

	check = Evaluate(cat, recipe, stock, 25, 2)
	assert.True(t, check.CanCraft)
	assert.Equal(t, 24, check.Cost)
}

func TestEvaluate_QuantityBelowOneTreatedAsOne(t *testing.T) {
	cat, recipe := testCatalogAndRecipe(t)
	stock := &container.QuantityBounded{Capacity: 100}
	stock.Add(catalog.ItemIronOre, 2, container.Reject)
	stock.Add(catalog.ItemCoal, 1, container.Reject)

	check := Evaluate(cat, recipe, stock, 100, 0)
	assert.True(t, check.CanCraft)
	assert.Equal(t, 12, check.Cost, "zero quantity evaluates as one craft")
	assert.Equal(t, 1, check.MaxCraftable)
}

func TestEvaluate_SlotBoundedStockSatisfiesInterface(t *testing.T) {
	cat, recipe := testCatalogAndRecipe(t)
	inv := &container.SlotBounded{MaxSlots: 12}
	inv.Add(catalog.ItemIronOre, 4, container.Reject)
	inv.Add(catalog.ItemCoal, 2, container.Reject)

	check := Evaluate(cat, recipe, inv, 100, 2)
	assert.True(t, check.CanCraft)
	assert.Equal(t, 2, check.MaxCraftable)
}
