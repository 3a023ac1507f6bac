package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/isleforge/isleforge/internal/validation"
)

// Sentinel errors for the content loader
var (
	ErrInvalidContent = errors.New("invalid content configuration")
)

// Loader loads and validates content configs from a directory laid out as
// items.json, generators.json, blocks.json, vendors.json, blueprints.json,
// boosters.json plus a schemas/ subdirectory.
type Loader struct {
	schemaValidator validation.SchemaValidator
}

// NewLoader creates a content loader.
func NewLoader() *Loader {
	return &Loader{schemaValidator: validation.NewSchemaValidator()}
}

type itemsConfig struct {
	Version string `json:"version"`
	Items   []Item `json:"items"`
}

type generatorsConfig struct {
	Version    string      `json:"version"`
	Generators []Generator `json:"generators"`
}

type blocksConfig struct {
	Version string  `json:"version"`
	Blocks  []Block `json:"blocks"`
}

type vendorsConfig struct {
	Version string   `json:"version"`
	Vendors []Vendor `json:"vendors"`
}

type blueprintsConfig struct {
	Version    string      `json:"version"`
	Blueprints []Blueprint `json:"blueprints"`
}

type boostersConfig struct {
	Version  string    `json:"version"`
	Boosters []Booster `json:"boosters"`
}

// Load reads every content file under dir, validates each against its schema
// and the set as a whole for referential integrity, and assembles the catalog.
// Supplemental hardcoded recipes are merged in the same way Default does.
func (l *Loader) Load(dir string) (*Catalog, error) {
	var items itemsConfig
	if err := l.loadFile(dir, ItemsFile, &items); err != nil {
		return nil, err
	}
	var gens generatorsConfig
	if err := l.loadFile(dir, GeneratorsFile, &gens); err != nil {
		return nil, err
	}
	var blocks blocksConfig
	if err := l.loadFile(dir, BlocksFile, &blocks); err != nil {
		return nil, err
	}
	var vendors vendorsConfig
	if err := l.loadFile(dir, VendorsFile, &vendors); err != nil {
		return nil, err
	}
	var blueprints blueprintsConfig
	if err := l.loadFile(dir, BlueprintsFile, &blueprints); err != nil {
		return nil, err
	}
	var boosters boostersConfig
	if err := l.loadFile(dir, BoostersFile, &boosters); err != nil {
		return nil, err
	}

	if err := validateContent(items.Items, gens.Generators, blocks.Blocks, vendors.Vendors, blueprints.Blueprints); err != nil {
		return nil, err
	}

	return New(items.Items, gens.Generators, blocks.Blocks, vendors.Vendors,
		blueprints.Blueprints, boosters.Boosters, SupplementalRecipes()), nil
}

func (l *Loader) loadFile(dir, name string, out interface{}) error {
	path := filepath.Join(dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf(ErrMsgReadConfigFailed, err)
	}

	schemaPath := filepath.Join(dir, SchemaDir, schemaFor(name))
	if _, err := os.Stat(schemaPath); err == nil {
		if err := l.schemaValidator.ValidateBytes(data, schemaPath); err != nil {
			return fmt.Errorf(ErrMsgSchemaFailed, name, err)
		}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf(ErrMsgParseConfigFailed, err)
	}
	return nil
}

func schemaFor(name string) string {
	return name[:len(name)-len(".json")] + ".schema.json"
}

// validateContent enforces the cross-file invariants the schemas cannot see:
// unique ids and foreign keys into the item set.
func validateContent(items []Item, gens []Generator, blocks []Block, vendors []Vendor, blueprints []Blueprint) error {
	itemIDs := make(map[string]bool, len(items))
	for _, it := range items {
		if itemIDs[it.ID] {
			return fmt.Errorf("%w: "+ErrMsgDuplicateID, ErrInvalidContent, it.ID, ItemsFile)
		}
		itemIDs[it.ID] = true
	}

	genIDs := make(map[string]bool, len(gens))
	for _, g := range gens {
		if genIDs[g.ID] {
			return fmt.Errorf("%w: "+ErrMsgDuplicateID, ErrInvalidContent, g.ID, GeneratorsFile)
		}
		genIDs[g.ID] = true
		if !itemIDs[g.OutputItemID] {
			return fmt.Errorf("%w: "+ErrMsgUnknownItemRef, ErrInvalidContent, "generator", g.ID, g.OutputItemID)
		}
		if len(g.Tiers) != 5 {
			return fmt.Errorf("%w: "+ErrMsgBadTierCount, ErrInvalidContent, g.ID, 5)
		}
	}

	for _, b := range blocks {
		if !itemIDs[b.ItemID] {
			return fmt.Errorf("%w: "+ErrMsgUnknownItemRef, ErrInvalidContent, "block", b.ID, b.ItemID)
		}
		if b.SpawnChance <= 0 {
			return fmt.Errorf("%w: "+ErrMsgNonPositiveWeight, ErrInvalidContent, b.ID)
		}
	}

	for _, v := range vendors {
		for _, s := range v.Stock {
			if !itemIDs[s.ItemID] {
				return fmt.Errorf("%w: "+ErrMsgUnknownItemRef, ErrInvalidContent, "vendor", v.ID, s.ItemID)
			}
		}
	}

	for _, bp := range blueprints {
		if !genIDs[bp.GeneratorID] {
			return fmt.Errorf("%w: blueprint '%s' references unknown generator '%s'", ErrInvalidContent, bp.ID, bp.GeneratorID)
		}
		for _, req := range bp.Requirements {
			if !itemIDs[req.ItemID] {
				return fmt.Errorf("%w: "+ErrMsgUnknownItemRef, ErrInvalidContent, "blueprint", bp.ID, req.ItemID)
			}
		}
	}

	return nil
}
