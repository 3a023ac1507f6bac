package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isleforge/isleforge/internal/catalog"
	"github.com/isleforge/isleforge/internal/clock"
	"github.com/isleforge/isleforge/internal/container"
	"github.com/isleforge/isleforge/internal/domain"
	"github.com/isleforge/isleforge/internal/event"
	"github.com/isleforge/isleforge/internal/game"
	"github.com/isleforge/isleforge/internal/repository"
	"github.com/isleforge/isleforge/internal/session"
)

type testAPI struct {
	handler  *Handler
	router   *chi.Mux
	sessions *session.Manager
	repo     repository.Game
	clk      *clock.Fixed
}

// newTestAPI wires a Handler behind the same route layout the server mounts,
// backed by an in-memory repository and a fixed clock.
func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	clk := &clock.Fixed{Time: time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)}
	repo := repository.NewMemoryGame()
	sessions := session.NewManager(catalog.Default(), clk, event.NewMemoryBus(), repo, 8, time.Hour)
	t.Cleanup(func() { sessions.Close(context.Background()) })

	h := New(sessions)
	r := chi.NewRouter()
	r.Route("/api/v1/game/{gameID}", func(r chi.Router) {
		r.Get("/", h.HandleGetGame)
		r.Post("/save", h.HandleSaveGame)
		r.Post("/reset", h.HandleResetGame)
		r.Delete("/", h.HandleDeleteGame)
		r.Route("/items", func(r chi.Router) {
			r.Post("/add", h.HandleAddItem)
			r.Post("/remove", h.HandleRemoveItem)
			r.Post("/sell", h.HandleSellItem)
		})
		r.Post("/mine", h.HandleMineBlock)
		r.Route("/bank", func(r chi.Router) {
			r.Post("/deposit", h.HandleBankDeposit)
		})
		r.Route("/farm", func(r chi.Router) {
			r.Get("/slots/{slot}/progress", h.HandleGetCropProgress)
		})
		r.Get("/vendors/{vendorID}/stock", h.HandleGetVendorStock)
		r.Post("/vendors/buy", h.HandleBuyFromVendor)
		r.Route("/boosters", func(r chi.Router) {
			r.Get("/", h.HandleGetBoosters)
			r.Post("/buy", h.HandleBuyBooster)
		})
	})

	return &testAPI{handler: h, router: r, sessions: sessions, repo: repo, clk: clk}
}

func (api *testAPI) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)
	return w
}

// store fetches the live session so tests can arrange state directly.
func (api *testAPI) store(t *testing.T, gameID string) *game.Store {
	t.Helper()
	s, err := api.sessions.Get(context.Background(), gameID)
	require.NoError(t, err)
	return s
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func TestHandleGetGame_StartsFreshGame(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodGet, "/api/v1/game/fresh", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var state domain.GameState
	decodeBody(t, w, &state)

	assert.Equal(t, 1, state.Player.Level)
	assert.Equal(t, 0, state.Player.Coins)
	assert.Equal(t, catalog.ItemWoodenPickaxe, state.Equipment.MainHand)
	require.Len(t, state.Generators, 1)
	assert.Equal(t, catalog.GeneratorCobblestone, state.Generators[0].GeneratorID)
	assert.True(t, state.Generators[0].IsActive)
}

func TestHandleGetGame_TicksGeneratorsBeforeResponding(t *testing.T) {
	api := newTestAPI(t)

	// First request creates the game and anchors the generator tick.
	w := api.do(t, http.MethodGet, "/api/v1/game/ticker", nil)
	require.Equal(t, http.StatusOK, w.Code)

	api.clk.Advance(12 * time.Second)

	w = api.do(t, http.MethodGet, "/api/v1/game/ticker", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var state domain.GameState
	decodeBody(t, w, &state)
	assert.Equal(t, 2, state.Storage.Quantity(catalog.ItemCobblestone))
}

func TestHandleGetGame_MissingGameID(t *testing.T) {
	api := newTestAPI(t)

	// No chi route context, so the game id param resolves empty.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	api.handler.HandleGetGame(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), ErrMsgMissingGameID)
}

func TestHandleAddItem_Inventory(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodPost, "/api/v1/game/g1/items/add", AddItemRequest{
		ItemID: catalog.ItemStone, Quantity: 5, Target: "inventory",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp AddItemResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, 5, resp.Accepted)

	state := api.store(t, "g1").State()
	assert.Equal(t, 5, state.Inventory.Quantity(catalog.ItemStone))
}

func TestHandleAddItem_StorageClampReportsAccepted(t *testing.T) {
	api := newTestAPI(t)

	s := api.store(t, "g1")
	_, err := s.AddItemToStorage(catalog.ItemCobblestone, 48, container.Reject)
	require.NoError(t, err)

	w := api.do(t, http.MethodPost, "/api/v1/game/g1/items/add", AddItemRequest{
		ItemID: catalog.ItemCobblestone, Quantity: 10, Target: "storage", Policy: "clamp",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp AddItemResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, 2, resp.Accepted)
	assert.Equal(t, 50, s.State().Storage.Quantity(catalog.ItemCobblestone))
}

func TestHandleAddItem_StorageRejectOverflow(t *testing.T) {
	api := newTestAPI(t)

	s := api.store(t, "g1")
	_, err := s.AddItemToStorage(catalog.ItemCobblestone, 48, container.Reject)
	require.NoError(t, err)

	w := api.do(t, http.MethodPost, "/api/v1/game/g1/items/add", AddItemRequest{
		ItemID: catalog.ItemCobblestone, Quantity: 10, Target: "storage", Policy: "reject",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, ErrMsgStorageFullError, resp.Error)
	assert.Equal(t, 48, s.State().Storage.Quantity(catalog.ItemCobblestone))
}

func TestHandleAddItem_ValidationFailure(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodPost, "/api/v1/game/g1/items/add", map[string]interface{}{
		"itemId": catalog.ItemStone,
		"target": "storage",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp ValidationErrorResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, ErrMsgInvalidRequestSummary, resp.Error)
	assert.Equal(t, "This field is required", resp.Fields["quantity"])
}

func TestHandleBankDeposit_InsufficientCoins(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodPost, "/api/v1/game/broke/bank/deposit", map[string]interface{}{
		"amount": 50,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, ErrMsgNotEnoughCoinsError, resp.Error)
}

func TestHandleSaveGame(t *testing.T) {
	api := newTestAPI(t)

	api.store(t, "g1").AddCoins(250)

	w := api.do(t, http.MethodPost, "/api/v1/game/g1/save", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp SuccessResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, MsgGameSavedSuccess, resp.Message)

	snap, err := api.repo.GetSnapshot(context.Background(), "g1")
	require.NoError(t, err)
	assert.Contains(t, string(snap.Data), `"coins":250`)
}

func TestHandleResetGame(t *testing.T) {
	api := newTestAPI(t)

	api.store(t, "g1").AddCoins(500)

	w := api.do(t, http.MethodPost, "/api/v1/game/g1/reset", nil)
	require.Equal(t, http.StatusOK, w.Code)

	state := api.store(t, "g1").State()
	assert.Equal(t, 0, state.Player.Coins)
	assert.Equal(t, 1, state.Player.Level)

	// Reset persists the fresh state immediately.
	_, err := api.repo.GetSnapshot(context.Background(), "g1")
	assert.NoError(t, err)
}

func TestHandleDeleteGame(t *testing.T) {
	api := newTestAPI(t)

	api.store(t, "g1").AddCoins(99)
	require.Equal(t, http.StatusOK, api.do(t, http.MethodPost, "/api/v1/game/g1/save", nil).Code)

	w := api.do(t, http.MethodDelete, "/api/v1/game/g1", nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	_, err := api.repo.GetSnapshot(context.Background(), "g1")
	assert.ErrorIs(t, err, domain.ErrSaveNotFound)

	// The next access starts over instead of resurrecting the old session.
	assert.Equal(t, 0, api.store(t, "g1").State().Player.Coins)
}

func TestHandleGetVendorStock(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodGet, "/api/v1/game/g1/vendors/general_store/stock", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []catalog.VendorStock `json:"data"`
	}
	decodeBody(t, w, &resp)
	require.Len(t, resp.Data, 4)
	assert.Equal(t, catalog.ItemWheatSeeds, resp.Data[0].ItemID)
	assert.Equal(t, 5, resp.Data[0].Price)
}

func TestHandleGetVendorStock_UnknownVendor(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodGet, "/api/v1/game/g1/vendors/black_market/stock", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, ErrMsgVendorNotFoundError, resp.Error)
}

func TestHandleBuyFromVendor(t *testing.T) {
	api := newTestAPI(t)

	s := api.store(t, "g1")
	s.AddCoins(100)

	w := api.do(t, http.MethodPost, "/api/v1/game/g1/vendors/buy", VendorBuyRequest{
		VendorID: catalog.VendorGeneralStore, ItemID: catalog.ItemWheatSeeds, Quantity: 4,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp VendorBuyResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, 20, resp.TotalCost)

	state := s.State()
	assert.Equal(t, 80, state.Player.Coins)
	assert.Equal(t, 4, state.Inventory.Quantity(catalog.ItemWheatSeeds))
}

func TestHandleGetCropProgress_BadSlot(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodGet, "/api/v1/game/g1/farm/slots/abc/progress", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, ErrMsgInvalidSlotError, resp.Error)
}

func TestHandleGetCropProgress_VacantSlotReportsZero(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodGet, "/api/v1/game/g1/farm/slots/0/progress", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp CropProgressResponse
	decodeBody(t, w, &resp)
	assert.Zero(t, resp.Progress)
}

func TestHandleGetCropProgress_SlotOutOfRange(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodGet, "/api/v1/game/g1/farm/slots/99/progress", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, ErrMsgInvalidSlotError, resp.Error)
}

func TestHandleBoosters_BuyAndList(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodGet, "/api/v1/game/g1/boosters/", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var empty struct {
		Data []game.ActiveBooster `json:"data"`
	}
	decodeBody(t, w, &empty)
	assert.Empty(t, empty.Data)

	api.store(t, "g1").AddUniversalPoints(10)

	w = api.do(t, http.MethodPost, "/api/v1/game/g1/boosters/buy", BuyBoosterRequest{
		BoosterID: catalog.BoosterProduction,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = api.do(t, http.MethodGet, "/api/v1/game/g1/boosters/", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var active struct {
		Data []game.ActiveBooster `json:"data"`
	}
	decodeBody(t, w, &active)
	require.Len(t, active.Data, 1)
	assert.Equal(t, catalog.BoosterProduction, active.Data[0].BoosterID)
}

func TestHandleBuyBooster_InsufficientPoints(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodPost, "/api/v1/game/g1/boosters/buy", BuyBoosterRequest{
		BoosterID: catalog.BoosterProduction,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, ErrMsgNotEnoughPointsError, resp.Error)
}

func TestHandleMineBlock(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodPost, "/api/v1/game/g1/mine", MineRequest{BlockID: "block_cobblestone"})
	require.Equal(t, http.StatusOK, w.Code)

	state := api.store(t, "g1").State()
	assert.Equal(t, 1, state.Inventory.Quantity(catalog.ItemCobblestone))
	assert.Equal(t, 59, state.Durability[catalog.ItemWoodenPickaxe])
}

func TestHandleMineBlock_UnknownBlock(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodPost, "/api/v1/game/g1/mine", MineRequest{BlockID: "block_bedrock"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, ErrMsgBlockNotFoundError, resp.Error)
}
