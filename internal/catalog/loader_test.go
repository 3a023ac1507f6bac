package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// minimalContent is a self-consistent content set small enough to mutate per
// test case.
var minimalContent = map[string]string{
	ItemsFile: `{"version":"1.0","items":[
		{"id":"pebble","name":"Pebble","category":"resource","sellPrice":1}
	]}`,
	GeneratorsFile: `{"version":"1.0","generators":[
		{"id":"pebble_generator","name":"Pebble Generator","baseOutput":1,"baseInterval":1000,
		 "outputItemId":"pebble","unlockCost":0,"tiers":[
			{"outputMultiplier":1,"speedMultiplier":1,"upgradeCost":0},
			{"outputMultiplier":2,"speedMultiplier":0.9,"upgradeCost":10},
			{"outputMultiplier":3,"speedMultiplier":0.8,"upgradeCost":20},
			{"outputMultiplier":4,"speedMultiplier":0.7,"upgradeCost":30},
			{"outputMultiplier":5,"speedMultiplier":0.6,"upgradeCost":40}]}
	]}`,
	BlocksFile: `{"version":"1.0","blocks":[
		{"id":"block_pebble","itemId":"pebble","spawnChance":100,"breakTime":1000,"minPickaxeTier":1,"xpReward":1}
	]}`,
	VendorsFile: `{"version":"1.0","vendors":[
		{"id":"shop","name":"Shop","stock":[{"itemId":"pebble","price":2}]}
	]}`,
	BlueprintsFile: `{"version":"1.0","blueprints":[]}`,
	BoostersFile:   `{"version":"1.0","boosters":[]}`,
}

func writeContentDir(t *testing.T, overrides map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, data := range minimalContent {
		if o, ok := overrides[name]; ok {
			data = o
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(data), 0644))
	}
	return dir
}

func TestLoader_LoadMinimalContent(t *testing.T) {
	dir := writeContentDir(t, nil)

	cat, err := NewLoader().Load(dir)
	require.NoError(t, err)

	item, ok := cat.Item("pebble")
	require.True(t, ok)
	assert.Equal(t, 1, item.SellPrice)

	gen, ok := cat.Generator("pebble_generator")
	require.True(t, ok)
	assert.Len(t, gen.Tiers, 5)

	// Supplemental recipes merge in even for loaded content.
	_, ok = cat.Recipe("recipe_torch")
	assert.True(t, ok)
}

func TestLoader_LoadShippedContent(t *testing.T) {
	// The shipped configs (with their schemas) must mirror the built-in set.
	cat, err := NewLoader().Load(filepath.Join("..", "..", "configs", "content"))
	require.NoError(t, err)

	def := Default()
	for _, id := range []string{ItemCobblestone, ItemIronIngot, ItemWheatSeeds, ItemWoodenPickaxe} {
		want, ok := def.Item(id)
		require.True(t, ok)
		got, ok := cat.Item(id)
		require.True(t, ok, "shipped content missing %s", id)
		assert.Equal(t, want.SellPrice, got.SellPrice, "%s", id)
	}

	gen, ok := cat.Generator(GeneratorGold)
	require.True(t, ok)
	assert.Equal(t, 20000, gen.UnlockCost)

	bp, ok := cat.Blueprint(BlueprintGoldGenerator)
	require.True(t, ok)
	assert.Len(t, bp.Requirements, 3)
}

func TestLoader_MissingFile(t *testing.T) {
	dir := writeContentDir(t, nil)
	require.NoError(t, os.Remove(filepath.Join(dir, BoostersFile)))

	_, err := NewLoader().Load(dir)
	assert.Error(t, err)
}

func TestLoader_MalformedJSON(t *testing.T) {
	dir := writeContentDir(t, map[string]string{ItemsFile: `{"version":`})

	_, err := NewLoader().Load(dir)
	assert.Error(t, err)
}

func TestLoader_CrossFileValidation(t *testing.T) {
	t.Run("generator output missing from items", func(t *testing.T) {
		dir := writeContentDir(t, map[string]string{
			ItemsFile: `{"version":"1.0","items":[{"id":"rock","name":"Rock","category":"resource","sellPrice":1}]}`,
		})
		_, err := NewLoader().Load(dir)
		assert.ErrorIs(t, err, ErrInvalidContent)
	})

	t.Run("wrong tier count", func(t *testing.T) {
		dir := writeContentDir(t, map[string]string{
			GeneratorsFile: `{"version":"1.0","generators":[
				{"id":"pebble_generator","name":"Pebble Generator","baseOutput":1,"baseInterval":1000,
				 "outputItemId":"pebble","unlockCost":0,"tiers":[
					{"outputMultiplier":1,"speedMultiplier":1,"upgradeCost":0}]}
			]}`,
		})
		_, err := NewLoader().Load(dir)
		assert.ErrorIs(t, err, ErrInvalidContent)
	})
}

func TestLoader_SchemaRejectsBadShape(t *testing.T) {
	dir := writeContentDir(t, map[string]string{
		// Negative sell price parses fine but violates the schema.
		ItemsFile: `{"version":"1.0","items":[
			{"id":"pebble","name":"Pebble","category":"resource","sellPrice":-5}
		]}`,
	})
	schemaDir := filepath.Join(dir, SchemaDir)
	require.NoError(t, os.Mkdir(schemaDir, 0755))
	src, err := os.ReadFile(filepath.Join("..", "..", "configs", "content", SchemaDir, "items.schema.json"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(schemaDir, "items.schema.json"), src, 0644))

	_, err = NewLoader().Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema validation failed")
}
