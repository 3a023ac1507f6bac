package catalog

// Content config file names under the content directory.
const (
	ItemsFile      = "items.json"
	GeneratorsFile = "generators.json"
	BlocksFile     = "blocks.json"
	VendorsFile    = "vendors.json"
	BlueprintsFile = "blueprints.json"
	BoostersFile   = "boosters.json"

	SchemaDir = "schemas"
)

// Error message formats
const (
	ErrMsgReadConfigFailed  = "failed to read content config: %w"
	ErrMsgParseConfigFailed = "failed to parse content config: %w"
	ErrMsgSchemaFailed      = "schema validation failed for %s: %w"
	ErrMsgDuplicateID       = "duplicate id '%s' in %s"
	ErrMsgUnknownItemRef    = "%s '%s' references unknown item '%s'"
	ErrMsgBadTierCount      = "generator '%s' must define exactly %d tiers"
	ErrMsgNonPositiveWeight = "block '%s' must have a positive spawn chance"
)

// Log messages
const (
	LogMsgContentLoaded = "Content catalog loaded"
	LogMsgUsingDefaults = "Content directory not found, using built-in catalog"
)
