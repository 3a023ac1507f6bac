// Package catalog holds the immutable content reference data: items,
// generators, mineable blocks, vendors, blueprints and boosters, keyed by
// stable string ids. The core never mutates catalog entries; lookups of
// unknown ids are a recoverable miss, never a panic.
package catalog

// Catalog is the assembled content set. Construct via New (from loaded
// configs) or Default (built-in content); both derive the recipe index.
type Catalog struct {
	items      map[string]*Item
	generators map[string]*Generator
	blocks     map[string]*Block
	vendors    map[string]*Vendor
	blueprints map[string]*Blueprint
	boosters   map[string]*Booster
	recipes    map[string]*Recipe

	blockOrder  []string
	recipeOrder []string
}

// New assembles a catalog from definitions. Recipes are derived from each
// item's embedded recipe plus the supplemental list; duplicate recipe ids
// de-duplicate with item-embedded recipes taking precedence.
func New(items []Item, generators []Generator, blocks []Block, vendors []Vendor, blueprints []Blueprint, boosters []Booster, supplemental []Recipe) *Catalog {
	c := &Catalog{
		items:      make(map[string]*Item, len(items)),
		generators: make(map[string]*Generator, len(generators)),
		blocks:     make(map[string]*Block, len(blocks)),
		vendors:    make(map[string]*Vendor, len(vendors)),
		blueprints: make(map[string]*Blueprint, len(blueprints)),
		boosters:   make(map[string]*Booster, len(boosters)),
		recipes:    make(map[string]*Recipe),
	}
	for i := range items {
		c.items[items[i].ID] = &items[i]
	}
	for i := range generators {
		c.generators[generators[i].ID] = &generators[i]
	}
	for i := range blocks {
		c.blocks[blocks[i].ID] = &blocks[i]
		c.blockOrder = append(c.blockOrder, blocks[i].ID)
	}
	for i := range vendors {
		c.vendors[vendors[i].ID] = &vendors[i]
	}
	for i := range blueprints {
		c.blueprints[blueprints[i].ID] = &blueprints[i]
	}
	for i := range boosters {
		c.boosters[boosters[i].ID] = &boosters[i]
	}

	// Supplemental recipes first so item-embedded duplicates overwrite them.
	for i := range supplemental {
		r := supplemental[i]
		if _, seen := c.recipes[r.ID]; !seen {
			c.recipeOrder = append(c.recipeOrder, r.ID)
		}
		c.recipes[r.ID] = &r
	}
	for i := range items {
		r := items[i].Recipe
		if r == nil {
			continue
		}
		if r.ResultItemID == "" {
			r.ResultItemID = items[i].ID
		}
		if r.ResultQuantity == 0 {
			r.ResultQuantity = 1
		}
		if _, seen := c.recipes[r.ID]; !seen {
			c.recipeOrder = append(c.recipeOrder, r.ID)
		}
		c.recipes[r.ID] = r
	}
	return c
}

// Item looks up an item definition by id.
func (c *Catalog) Item(id string) (*Item, bool) {
	v, ok := c.items[id]
	return v, ok
}

// ItemsByCategory returns every item in the category, unordered.
func (c *Catalog) ItemsByCategory(cat ItemCategory) []*Item {
	var out []*Item
	for _, it := range c.items {
		if it.Category == cat {
			out = append(out, it)
		}
	}
	return out
}

// Generator looks up a generator definition by id.
func (c *Catalog) Generator(id string) (*Generator, bool) {
	v, ok := c.generators[id]
	return v, ok
}

// Block looks up a mineable block by id.
func (c *Catalog) Block(id string) (*Block, bool) {
	v, ok := c.blocks[id]
	return v, ok
}

// Blocks returns every mineable block in definition order.
func (c *Catalog) Blocks() []*Block {
	out := make([]*Block, 0, len(c.blockOrder))
	for _, id := range c.blockOrder {
		out = append(out, c.blocks[id])
	}
	return out
}

// Vendor looks up a vendor by id.
func (c *Catalog) Vendor(id string) (*Vendor, bool) {
	v, ok := c.vendors[id]
	return v, ok
}

// Blueprint looks up a blueprint by id.
func (c *Catalog) Blueprint(id string) (*Blueprint, bool) {
	v, ok := c.blueprints[id]
	return v, ok
}

// Booster looks up a booster by id.
func (c *Catalog) Booster(id string) (*Booster, bool) {
	v, ok := c.boosters[id]
	return v, ok
}

// Recipe looks up a crafting recipe by id.
func (c *Catalog) Recipe(id string) (*Recipe, bool) {
	v, ok := c.recipes[id]
	return v, ok
}

// RecipeForItem returns the recipe producing the given item, if any.
func (c *Catalog) RecipeForItem(itemID string) (*Recipe, bool) {
	for _, id := range c.recipeOrder {
		if c.recipes[id].ResultItemID == itemID {
			return c.recipes[id], true
		}
	}
	return nil, false
}

// Recipes returns every recipe in derivation order.
func (c *Catalog) Recipes() []*Recipe {
	out := make([]*Recipe, 0, len(c.recipeOrder))
	for _, id := range c.recipeOrder {
		out = append(out, c.recipes[id])
	}
	return out
}
