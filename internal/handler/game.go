package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/isleforge/isleforge/internal/game"
	"github.com/isleforge/isleforge/internal/logger"
	"github.com/isleforge/isleforge/internal/session"
)

// Handler exposes the game API over HTTP. Every route resolves the game id
// from the URL, loads (or creates) the session, and delegates to the store.
type Handler struct {
	sessions *session.Manager
}

// New creates a Handler backed by the given session manager.
func New(sessions *session.Manager) *Handler {
	return &Handler{sessions: sessions}
}

// loadStore resolves the session for the request's game id.
// If ok is false, the HTTP response has already been written.
func (h *Handler) loadStore(w http.ResponseWriter, r *http.Request) (*game.Store, bool) {
	gameID := chi.URLParam(r, "gameID")
	if gameID == "" {
		http.Error(w, ErrMsgMissingGameID, http.StatusBadRequest)
		return nil, false
	}

	store, err := h.sessions.Get(r.Context(), gameID)
	if err != nil {
		log := logger.FromContext(r.Context())
		log.Error(ErrMsgLoadGameFailed, "game_id", gameID, "error", err)
		respondError(w, http.StatusInternalServerError, ErrMsgLoadGameFailed)
		return nil, false
	}
	return store, true
}

// HandleGetGame returns the full game state. A game id that has never been
// seen before starts a fresh game rather than erroring.
func (h *Handler) HandleGetGame(w http.ResponseWriter, r *http.Request) {
	store, ok := h.loadStore(w, r)
	if !ok {
		return
	}

	// Bring generators up to date so the returned state reflects now.
	store.TickGenerators(r.Context())

	respondJSON(w, http.StatusOK, store.State())
}

// HandleSaveGame persists the session's current state immediately.
func (h *Handler) HandleSaveGame(w http.ResponseWriter, r *http.Request) {
	store, ok := h.loadStore(w, r)
	if !ok {
		return
	}

	if err := h.sessions.Save(r.Context(), store); err != nil {
		log := logger.FromContext(r.Context())
		log.Error(ErrMsgSaveGameFailed, "game_id", store.ID(), "error", err)
		respondError(w, http.StatusInternalServerError, ErrMsgSaveGameFailed)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgGameSavedSuccess})
}

// HandleResetGame replaces the session's state with a fresh game and persists it.
func (h *Handler) HandleResetGame(w http.ResponseWriter, r *http.Request) {
	store, ok := h.loadStore(w, r)
	if !ok {
		return
	}

	store.Reset(r.Context())
	if err := h.sessions.Save(r.Context(), store); err != nil {
		log := logger.FromContext(r.Context())
		log.Error(ErrMsgResetGameFailed, "game_id", store.ID(), "error", err)
		respondError(w, http.StatusInternalServerError, ErrMsgResetGameFailed)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgGameResetSuccess})
}

// HandleDeleteGame evicts the session and removes its saved snapshot.
func (h *Handler) HandleDeleteGame(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")
	if gameID == "" {
		http.Error(w, ErrMsgMissingGameID, http.StatusBadRequest)
		return
	}

	if err := h.sessions.Delete(r.Context(), gameID); err != nil {
		respondServiceError(w, r, "Delete game failed", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleGetVendorStock returns today's rotating stock for a vendor.
func (h *Handler) HandleGetVendorStock(w http.ResponseWriter, r *http.Request) {
	store, ok := h.loadStore(w, r)
	if !ok {
		return
	}

	vendorID := chi.URLParam(r, "vendorID")
	stock, err := store.VendorStockToday(vendorID)
	if err != nil {
		respondServiceError(w, r, "Get vendor stock failed", err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: stock})
}

// HandleGetBoosters returns the session's currently active boosters.
func (h *Handler) HandleGetBoosters(w http.ResponseWriter, r *http.Request) {
	store, ok := h.loadStore(w, r)
	if !ok {
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: store.ActiveBoosters()})
}
