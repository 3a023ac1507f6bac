package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details for security reasons.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"

	// Path parameter error messages
	ErrMsgMissingGameID = "Missing game id"

	// Game operation error messages
	ErrMsgLoadGameFailed  = "Failed to load game"
	ErrMsgSaveGameFailed  = "Failed to save game"
	ErrMsgResetGameFailed = "Failed to reset game"
	ErrMsgUnknownAction   = "Unknown action"
)

// Success messages for API responses
const (
	MsgGameSavedSuccess = "Game saved"
	MsgGameResetSuccess = "Game reset"
)
