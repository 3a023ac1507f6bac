package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/isleforge/isleforge/internal/domain"
	"github.com/isleforge/isleforge/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// Helper functions for responding

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Get a buffer from the pool to reduce allocations
	buf := getBuffer()
	defer putBuffer(buf)

	// Encode to the buffer first
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Log the error - we can't write to response at this point since headers are sent
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	// Write the buffer to the response
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
// These messages are derived from domain errors and provide helpful guidance to users
const (
	// Generic messages
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgSaveNotFoundError   = "No save found for that game"
	ErrMsgItemNotFoundError   = "Item not found"
	ErrMsgRecipeNotFoundError = "Recipe not found"
	ErrMsgBlockNotFoundError  = "Block not found"
	ErrMsgVendorNotFoundError = "Vendor not found"
	ErrMsgBlueprintNotFound   = "Blueprint not found"
	ErrMsgGeneratorNotFound   = "Generator not found"

	// Currency messages
	ErrMsgNotEnoughCoinsError  = "Not enough coins"
	ErrMsgNotEnoughPointsError = "Not enough universal points"

	// Container messages
	ErrMsgNotEnoughItemsError = "Not enough items"
	ErrMsgInventoryFullError  = "Inventory is full"
	ErrMsgStorageFullError    = "Storage is full"
	ErrMsgVaultFullError      = "Vault is full"

	// Crafting messages
	ErrMsgMissingIngredientsError = "Missing ingredients"

	// Generator messages
	ErrMsgGeneratorLockedError  = "Unlock that generator first"
	ErrMsgGeneratorMaxTierError = "Generator is already at max tier"
	ErrMsgAlreadyUnlockedError  = "Already unlocked"
	ErrMsgBlueprintNotOwnedErr  = "Buy the blueprint first"
	ErrMsgAlreadyBuiltError     = "Already built"

	// Equipment messages
	ErrMsgWrongSlotError     = "That item does not fit there"
	ErrMsgSlotEmptyError     = "Nothing equipped in that slot"
	ErrMsgNoPickaxeError     = "Equip a pickaxe first"
	ErrMsgNotEquippableError = "That item cannot be equipped"

	// Bank messages
	ErrMsgBankFullError            = "Bank is at capacity"
	ErrMsgInsufficientBalanceError = "Not enough banked coins"

	// Farming messages
	ErrMsgSlotOccupiedError = "That plot is already planted"
	ErrMsgSlotVacantError   = "Nothing is planted there"
	ErrMsgNotGrownError     = "That crop is not ready yet"
	ErrMsgNotASeedError     = "That item cannot be planted"

	// Input messages
	ErrMsgInvalidQuantityError = "Quantity must be positive"
	ErrMsgInvalidSlotError     = "Invalid slot"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses
// This function converts internal service errors to appropriate HTTP status codes and messages
// that users can understand and act upon.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrSaveNotFound):
		return http.StatusNotFound, ErrMsgSaveNotFoundError
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusBadRequest, ErrMsgItemNotFoundError
	case errors.Is(err, domain.ErrRecipeNotFound):
		return http.StatusBadRequest, ErrMsgRecipeNotFoundError
	case errors.Is(err, domain.ErrBlockNotFound):
		return http.StatusBadRequest, ErrMsgBlockNotFoundError
	case errors.Is(err, domain.ErrVendorNotFound):
		return http.StatusBadRequest, ErrMsgVendorNotFoundError
	case errors.Is(err, domain.ErrBlueprintNotFound):
		return http.StatusBadRequest, ErrMsgBlueprintNotFound
	case errors.Is(err, domain.ErrGeneratorNotFound):
		return http.StatusBadRequest, ErrMsgGeneratorNotFound
	case errors.Is(err, domain.ErrInsufficientCoins):
		return http.StatusBadRequest, ErrMsgNotEnoughCoinsError
	case errors.Is(err, domain.ErrInsufficientPoints):
		return http.StatusBadRequest, ErrMsgNotEnoughPointsError
	case errors.Is(err, domain.ErrInsufficientQuantity):
		return http.StatusBadRequest, ErrMsgNotEnoughItemsError
	case errors.Is(err, domain.ErrInventoryFull):
		return http.StatusBadRequest, ErrMsgInventoryFullError
	case errors.Is(err, domain.ErrStorageFull):
		return http.StatusBadRequest, ErrMsgStorageFullError
	case errors.Is(err, domain.ErrVaultFull):
		return http.StatusBadRequest, ErrMsgVaultFullError
	case errors.Is(err, domain.ErrMissingIngredients):
		return http.StatusBadRequest, ErrMsgMissingIngredientsError
	case errors.Is(err, domain.ErrGeneratorLocked):
		return http.StatusBadRequest, ErrMsgGeneratorLockedError
	case errors.Is(err, domain.ErrGeneratorMaxTier):
		return http.StatusBadRequest, ErrMsgGeneratorMaxTierError
	case errors.Is(err, domain.ErrAlreadyUnlocked):
		return http.StatusBadRequest, ErrMsgAlreadyUnlockedError
	case errors.Is(err, domain.ErrBlueprintNotOwned):
		return http.StatusBadRequest, ErrMsgBlueprintNotOwnedErr
	case errors.Is(err, domain.ErrAlreadyBuilt):
		return http.StatusBadRequest, ErrMsgAlreadyBuiltError
	case errors.Is(err, domain.ErrWrongSlot):
		return http.StatusBadRequest, ErrMsgWrongSlotError
	case errors.Is(err, domain.ErrSlotEmpty):
		return http.StatusBadRequest, ErrMsgSlotEmptyError
	case errors.Is(err, domain.ErrNoPickaxe):
		return http.StatusBadRequest, ErrMsgNoPickaxeError
	case errors.Is(err, domain.ErrNotEquippable):
		return http.StatusBadRequest, ErrMsgNotEquippableError
	case errors.Is(err, domain.ErrBankFull):
		return http.StatusBadRequest, ErrMsgBankFullError
	case errors.Is(err, domain.ErrInsufficientBalance):
		return http.StatusBadRequest, ErrMsgInsufficientBalanceError
	case errors.Is(err, domain.ErrSlotOccupied):
		return http.StatusBadRequest, ErrMsgSlotOccupiedError
	case errors.Is(err, domain.ErrSlotVacant):
		return http.StatusBadRequest, ErrMsgSlotVacantError
	case errors.Is(err, domain.ErrNotGrown):
		return http.StatusBadRequest, ErrMsgNotGrownError
	case errors.Is(err, domain.ErrNotASeed):
		return http.StatusBadRequest, ErrMsgNotASeedError
	case errors.Is(err, domain.ErrInvalidQuantity):
		return http.StatusBadRequest, ErrMsgInvalidQuantityError
	case errors.Is(err, domain.ErrInvalidSlot):
		return http.StatusBadRequest, ErrMsgInvalidSlotError
	}

	// For error messages from tests/mocks with short messages, surface them.
	errMsg := err.Error()
	if errMsg != "" && len(errMsg) < 200 {
		return http.StatusInternalServerError, errMsg
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// respondServiceError logs a service-layer error and writes the mapped user-facing response.
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	log := logger.FromContext(r.Context())
	status, message := mapServiceErrorToUserMessage(err)
	if status >= http.StatusInternalServerError {
		log.Error(opName, "error", err)
	} else {
		log.Debug(opName, "error", err)
	}
	respondError(w, status, message)
}
