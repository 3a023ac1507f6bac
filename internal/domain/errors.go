package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Save errors
	ErrMsgSaveNotFound = "save not found"

	// Catalog errors
	ErrMsgItemNotFound      = "item not found"
	ErrMsgGeneratorNotFound = "generator not found"
	ErrMsgRecipeNotFound    = "recipe not found"
	ErrMsgBlockNotFound     = "block not found"
	ErrMsgVendorNotFound    = "vendor not found"
	ErrMsgBlueprintNotFound = "blueprint not found"

	// Currency errors
	ErrMsgInsufficientCoins  = "insufficient coins"
	ErrMsgInsufficientPoints = "insufficient universal points"

	// Container errors
	ErrMsgInsufficientQuantity = "insufficient quantity"
	ErrMsgInventoryFull        = "inventory is full"
	ErrMsgStorageFull          = "storage is full"
	ErrMsgVaultFull            = "vault is full"

	// Crafting errors
	ErrMsgMissingIngredients = "missing ingredients"

	// Generator errors
	ErrMsgGeneratorLocked   = "generator is not unlocked"
	ErrMsgGeneratorMaxTier  = "generator is at max tier"
	ErrMsgAlreadyUnlocked   = "generator is already unlocked"
	ErrMsgBlueprintNotOwned = "blueprint is not owned"
	ErrMsgAlreadyBuilt      = "generator is already built"

	// Equipment errors
	ErrMsgWrongSlot     = "item does not fit that slot"
	ErrMsgSlotEmpty     = "equipment slot is empty"
	ErrMsgNoPickaxe     = "no usable pickaxe equipped"
	ErrMsgNotEquippable = "item is not equippable"

	// Bank errors
	ErrMsgBankFull            = "bank is at capacity"
	ErrMsgInsufficientBalance = "insufficient bank balance"

	// Farming errors
	ErrMsgSlotOccupied = "farm slot is occupied"
	ErrMsgSlotVacant   = "farm slot is empty"
	ErrMsgNotGrown     = "crop is not fully grown"
	ErrMsgNotASeed     = "item is not a seed"

	// Input errors
	ErrMsgInvalidQuantity = "quantity must be positive"
	ErrMsgInvalidSlot     = "invalid slot index"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Save errors
	ErrSaveNotFound = errors.New(ErrMsgSaveNotFound)

	// Catalog errors
	ErrItemNotFound      = errors.New(ErrMsgItemNotFound)
	ErrGeneratorNotFound = errors.New(ErrMsgGeneratorNotFound)
	ErrRecipeNotFound    = errors.New(ErrMsgRecipeNotFound)
	ErrBlockNotFound     = errors.New(ErrMsgBlockNotFound)
	ErrVendorNotFound    = errors.New(ErrMsgVendorNotFound)
	ErrBlueprintNotFound = errors.New(ErrMsgBlueprintNotFound)

	// Currency errors
	ErrInsufficientCoins  = errors.New(ErrMsgInsufficientCoins)
	ErrInsufficientPoints = errors.New(ErrMsgInsufficientPoints)

	// Container errors
	ErrInsufficientQuantity = errors.New(ErrMsgInsufficientQuantity)
	ErrInventoryFull        = errors.New(ErrMsgInventoryFull)
	ErrStorageFull          = errors.New(ErrMsgStorageFull)
	ErrVaultFull            = errors.New(ErrMsgVaultFull)

	// Crafting errors
	ErrMissingIngredients = errors.New(ErrMsgMissingIngredients)

	// Generator errors
	ErrGeneratorLocked   = errors.New(ErrMsgGeneratorLocked)
	ErrGeneratorMaxTier  = errors.New(ErrMsgGeneratorMaxTier)
	ErrAlreadyUnlocked   = errors.New(ErrMsgAlreadyUnlocked)
	ErrBlueprintNotOwned = errors.New(ErrMsgBlueprintNotOwned)
	ErrAlreadyBuilt      = errors.New(ErrMsgAlreadyBuilt)

	// Equipment errors
	ErrWrongSlot     = errors.New(ErrMsgWrongSlot)
	ErrSlotEmpty     = errors.New(ErrMsgSlotEmpty)
	ErrNoPickaxe     = errors.New(ErrMsgNoPickaxe)
	ErrNotEquippable = errors.New(ErrMsgNotEquippable)

	// Bank errors
	ErrBankFull            = errors.New(ErrMsgBankFull)
	ErrInsufficientBalance = errors.New(ErrMsgInsufficientBalance)

	// Farming errors
	ErrSlotOccupied = errors.New(ErrMsgSlotOccupied)
	ErrSlotVacant   = errors.New(ErrMsgSlotVacant)
	ErrNotGrown     = errors.New(ErrMsgNotGrown)
	ErrNotASeed     = errors.New(ErrMsgNotASeed)

	// Input errors
	ErrInvalidQuantity = errors.New(ErrMsgInvalidQuantity)
	ErrInvalidSlot     = errors.New(ErrMsgInvalidSlot)
)
