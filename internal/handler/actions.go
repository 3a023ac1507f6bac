package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/isleforge/isleforge/internal/container"
	"github.com/isleforge/isleforge/internal/domain"
)

// Item movement and storage

// AddItemRequest adds items to a container. Policy only applies to storage
// adds; inventory adds always reject overflow.
type AddItemRequest struct {
	ItemID   string `json:"itemId" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
	Target   string `json:"target" validate:"required,oneof=storage inventory"`
	Policy   string `json:"policy" validate:"omitempty,oneof=reject clamp"`
}

// AddItemResponse reports how many units were actually stored.
type AddItemResponse struct {
	Accepted int `json:"accepted"`
}

func (h *Handler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	store, ok := h.loadStore(w, r)
	if !ok {
		return
	}

	var req AddItemRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Add item"); err != nil {
		return
	}

	if req.Target == "inventory" {
		if err := store.AddItemToInventory(req.ItemID, req.Quantity); err != nil {
			respondServiceError(w, r, "Add item failed", err)
			return
		}
		respondJSON(w, http.StatusOK, AddItemResponse{Accepted: req.Quantity})
		return
	}

	policy := container.Reject
	if req.Policy == "clamp" {
		policy = container.Clamp
	}
	accepted, err := store.AddItemToStorage(req.ItemID, req.Quantity, policy)
	if err != nil {
		respondServiceError(w, r, "Add item failed", err)
		return
	}
	respondJSON(w, http.StatusOK, AddItemResponse{Accepted: accepted})
}

// RemoveItemRequest removes items from a container.
type RemoveItemRequest struct {
	ItemID   string `json:"itemId" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
	Target   string `json:"target" validate:"required,oneof=storage inventory"`
}

func (h *Handler) HandleRemoveItem(w http.ResponseWriter, r *http.Request) {
	store, ok := h.loadStore(w, r)
	if !ok {
		return
	}

	var req RemoveItemRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Remove item"); err != nil {
		return
	}

	var err error
	if req.Target == "inventory" {
		err = store.RemoveItemFromInventory(req.ItemID, req.Quantity)
	} else {
		err = store.RemoveItemFromStorage(req.ItemID, req.Quantity)
	}
	if err != nil {
		respondServiceError(w, r, "Remove item failed", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: "Item removed"})
}

// MoveItemRequest transfers items between containers. Transfers are
// all-or-nothing; a move that does not fully fit is rejected.
type MoveItemRequest struct {
	ItemID    string `json:"itemId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	Direction string `json:"direction" validate:"required,oneof=toInventory toStorage toUnit fromUnit"`
}

func (h *Handler) HandleMoveItem(w http.ResponseWriter, r *http.Request) {
	store, ok := h.loadStore(w, r)
	if !ok {
		return
	}

	var req MoveItemRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Move item"); err != nil {
		return
	}

	var err error
	switch req.Direction {
	case "toInventory":
		err = store.MoveToInventory(req.ItemID, req.Quantity)
	case "toStorage":
		err = store.MoveToStorage(req.ItemID, req.Quantity)
	case "toUnit":
		err = store.MoveToStorageUnit(req.ItemID, req.Quantity)
	case "fromUnit":
		err = store.MoveFromStorageUnit(req.ItemID, req.Quantity)
	}
	if err != nil {
		respondServiceError(w, r, "Move item failed", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: "Item moved"})
}

// SelectStorageUnitRequest switches which storage unit transfers target.
type SelectStorageUnitRequest struct {
	UnitID string `json:"unitId" validate:"required"`
}

func (h *Handler) HandleSelectStorageUnit(w http.ResponseWriter, r *http.Request) {
	store, ok := h.loadStore(w, r)
	if !ok {
		return
	}

	var req SelectStorageUnitRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Select storage unit"); err != nil {
		return
	}

	if err := store.SelectStorageUnit(req.UnitID); err != nil {
		respondServiceError(w, r, "Select storage unit failed", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: "Storage unit selected"})
}

// BuyStorageUnitRequest purchases an additional storage unit.
type BuyStorageUnitRequest struct {
	Name string `json:"name" validate:"required,max=64"`
}

func (h *Handler) HandleBuyStorageUnit(w http.ResponseWriter, r *http.Request) {
	store, ok := h.loadStore(w, r)
	if !ok {
		return
	}

	var req BuyStorageUnitRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Buy storage unit"); err != nil {
		return
	}

	if err := store.BuyStorageUnit(req.Name); err != nil {
		respondServiceError(w, r, "Buy storage unit failed", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: "Storage unit purchased"})
}

func (h *Handler) HandleUpgradeStorage(w http.ResponseWriter, r *http.Request) {
	store, ok := h.loadStore(w, r)
	if !ok {
		return
	}

	if err := store.UpgradeStorage(); err != nil {
		respondServiceError(w, r, "Upgrade storage failed", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: "Storage upgraded"})
}

// Economy

// SellItemRequest sells items for coins. Source defaults to storage.
type SellItemRequest struct {
	ItemID   string `json:"itemId" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
	Source   string `json:"source" validate:"omitempty,oneof=storage inventory"`
}

func (h *Handler) HandleSellItem(w http.ResponseWriter, r *http.Request) {
	store, ok := h.loadStore(w, r)
	if !ok {
		return
	}

	var req SellItemRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Sell item"); err != nil {
		return
	}

	sell := store.SellItem
	if req.Source == "inventory" {
		sell = store.SellItemFromInventory
	}
	res, err := sell(r.Context(), req.ItemID, req.Quantity)
	if err != nil {
		respondServiceError(w, r, "Sell item failed", err)
		return
	}
	respondJSON(w, http.StatusOK, DataResponse{Data: res})
}

// SellAllResponse summarizes a bulk sale of everything in storage.
type SellAllResponse struct {
	Coins int `json:"coins"`
	Items int `json:"items"`
}

func (h *Handler) HandleSellAll(w http.ResponseWriter, r *http.Request) {
	store, ok := h.loadStore(w, r)
	if !ok {
		return
	}

	coins, items := store.SellAllItems(r.Context())
	respondJSON(w, http.StatusOK, SellAllResponse{Coins: coins, Items: items})
}

// VendorBuyRequest purchases from a vendor's rotating daily stock.
type VendorBuyRequest struct {
	VendorID string `json:"vendorId" validate:"required"`
	ItemID   string `json:"itemId" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

// VendorBuyResponse reports the coins spent on the purchase.
type VendorBuyResponse struct {
	TotalCost int `json:"totalCost"`
}

func (h *Handler) HandleBuyFromVendor(w http.ResponseWriter, r *http.Request) {
	store, ok := h.loadStore(w, r)
	if !ok {
		return
	}

	var req VendorBuyRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Buy from vendor"); err != nil {
		return
	}

	cost, err := store.BuyFromVendor(r.Context(), req.VendorID, req.ItemID, req.Quantity)
	if err != nil {
		respondServiceError(w, r, "Buy from vendor failed", err)
		return
	}
	respondJSON(w, http.StatusOK, VendorBuyResponse{TotalCost: cost})
}

// Crafting

// CraftRequest crafts (or evaluates crafting) a batch of a recipe.
type CraftRequest struct {
	RecipeID string `json:"recipeId" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

func (h *Handler) HandleEvaluateCraft(w http.ResponseWriter, r *http.Request) {
	store, ok := h.loadStore(w, r)
	if !ok {
		return
	}

	var req CraftRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Evaluate craft"); err != nil {
		return
	}

	check, err := store.EvaluateCraft(req.RecipeID, req.Quantity)
	if err != nil {
		respondServiceError(w, r, "Evaluate craft failed", err)
		return
	}
	respondJSON(w, http.StatusOK, DataResponse{Data: check})
}

func (h *Handler) HandleCraftItem(w http.ResponseWriter, r *http.Request) {
	store, ok := h.loadStore(w, r)
	if !ok {
		return
	}

	var req CraftRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Craft item"); err != nil {
		return
	}

	check, err := store.CraftItem(r.Context(), req.RecipeID, req.Quantity)
	if err != nil {
		respondServiceError(w, r, "Craft item failed", err)
		return
	}
	respondJSON(w, http.StatusOK, DataResponse{Data: check})
}

// Equipment

// EquipRequest equips a tool from the inventory.
type EquipRequest struct {
	ItemID string `json:"itemId" validate:"required"`
}

func (h *Handler) HandleEquipItem(w http.ResponseWriter, r *http.Request) {
	store, ok := h.loadStore(w, r)
	if !ok {
		return
	}

	var req EquipRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Equip item"); err != nil {
		return
	}

	if err := store.EquipItem(req.ItemID); err != nil {
		respondServiceError(w, r, "Equip item failed", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: "Item equipped"})
}

// UnequipRequest returns an equipped item to the inventory.
type UnequipRequest struct {
	Slot string `json:"slot" validate:"required,oneof=helmet chestplate leggings boots mainHand offHand"`
}

func (h *Handler) HandleUnequipItem(w http.ResponseWriter, r *http.Request) {
	store, ok := h.loadStore(w, r)
	if !ok {
		return
	}

	var req UnequipRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Unequip item"); err != nil {
		return
	}

	if err := store.UnequipItem(domain.EquipmentSlot(req.Slot)); err != nil {
		respondServiceError(w, r, "Unequip item failed", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: "Item unequipped"})
}

// Mining

// MineRequest breaks a block. An empty blockId rolls a random block first.
type MineRequest struct {
	BlockID string `json:"blockId"`
}

func (h *Handler) HandleMineBlock(w http.ResponseWriter, r *http.Request) {
	store, ok := h.loadStore(w, r)
	if !ok {
		return
	}

	var req MineRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Mine block"); err != nil {
		return
	}

	blockID := req.BlockID
	if blockID == "" {
		var err error
		blockID, err = store.RollBlock()
		if err != nil {
			respondServiceError(w, r, "Mine block failed", err)
			return
		}
	}

	res, err := store.MineBlock(r.Context(), blockID)
	if err != nil {
		respondServiceError(w, r, "Mine block failed", err)
		return
	}
	respondJSON(w, http.StatusOK, DataResponse{Data: res})
}

// Generators

// GeneratorRequest targets a single generator by id.
type GeneratorRequest struct {
	GeneratorID string `json:"generatorId" validate:"required"`
}

func (h *Handler) HandleUnlockGenerator(w http.ResponseWriter, r *http.Request) {
	store, ok := h.loadStore(w, r)
	if !ok {
		return
	}

	var req GeneratorRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Unlock generator"); err != nil {
		return
	}

	if err := store.UnlockGenerator(req.GeneratorID); err != nil {
		respondServiceError(w, r, "Unlock generator failed", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: "Generator unlocked"})
}

func (h *Handler) HandleUpgradeGenerator(w http.ResponseWriter, r *http.Request) {
	store, ok := h.loadStore(w, r)
	if !ok {
		return
	}

	var req GeneratorRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Upgrade generator"); err != nil {
		return
	}

	if err := store.UpgradeGenerator(req.GeneratorID); err != nil {
		respondServiceError(w, r, "Upgrade generator failed", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: "Generator upgraded"})
}

// SetGeneratorActiveRequest pauses or resumes a generator.
type SetGeneratorActiveRequest struct {
	GeneratorID string `json:"generatorId" validate:"required"`
	Active      *bool  `json:"active" validate:"required"`
}

func (h *Handler) HandleSetGeneratorActive(w http.ResponseWriter, r *http.Request) {
	store, ok := h.loadStore(w, r)
	if !ok {
		return
	}

	var req SetGeneratorActiveRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Set generator active"); err != nil {
		return
	}

	if err := store.SetGeneratorActive(req.GeneratorID, *req.Active); err != nil {
		respondServiceError(w, r, "Set generator active failed", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: "Generator updated"})
}

// BlueprintRequest targets a blueprint by id.
type BlueprintRequest struct {
	BlueprintID string `json:"blueprintId" validate:"required"`
}

func (h *Handler) HandleBuyBlueprint(w http.ResponseWriter, r *http.Request) {
	store, ok := h.loadStore(w, r)
	if !ok {
		return
	}

	var req BlueprintRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Buy blueprint"); err != nil {
		return
	}

	if err := store.BuyBlueprint(req.BlueprintID); err != nil {
		respondServiceError(w, r, "Buy blueprint failed", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: "Blueprint purchased"})
}

func (h *Handler) HandleBuildBlueprint(w http.ResponseWriter, r *http.Request) {
	store, ok := h.loadStore(w, r)
	if !ok {
		return
	}

	var req BlueprintRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Build blueprint"); err != nil {
		return
	}

	if err := store.BuildBlueprint(r.Context(), req.BlueprintID); err != nil {
		respondServiceError(w, r, "Build blueprint failed", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: "Generator built"})
}

// Bank and vault

// BankAmountRequest moves coins between wallet and bank.
type BankAmountRequest struct {
	Amount int `json:"amount" validate:"required,gt=0"`
}

func (h *Handler) HandleBankDeposit(w http.ResponseWriter, r *http.Request) {
	store, ok := h.loadStore(w, r)
	if !ok {
		return
	}

	var req BankAmountRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Bank deposit"); err != nil {
		return
	}

	if err := store.DepositToBank(req.Amount); err != nil {
		respondServiceError(w, r, "Bank deposit failed", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: "Coins deposited"})
}

func (h *Handler) HandleBankWithdraw(w http.ResponseWriter, r *http.Request) {
	store, ok := h.loadStore(w, r)
	if !ok {
		return
	}

	var req BankAmountRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Bank withdraw"); err != nil {
		return
	}

	if err := store.WithdrawFromBank(req.Amount); err != nil {
		respondServiceError(w, r, "Bank withdraw failed", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: "Coins withdrawn"})
}

func (h *Handler) HandleUpgradeBank(w http.ResponseWriter, r *http.Request) {
	store, ok := h.loadStore(w, r)
	if !ok {
		return
	}

	if err := store.UpgradeBank(); err != nil {
		respondServiceError(w, r, "Upgrade bank failed", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: "Bank upgraded"})
}

func (h *Handler) HandleUpgradeVault(w http.ResponseWriter, r *http.Request) {
	store, ok := h.loadStore(w, r)
	if !ok {
		return
	}

	if err := store.UpgradeVault(); err != nil {
		respondServiceError(w, r, "Upgrade vault failed", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: "Vault upgraded"})
}

// VaultItemRequest moves items between storage and the vault.
type VaultItemRequest struct {
	ItemID   string `json:"itemId" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

func (h *Handler) HandleVaultDeposit(w http.ResponseWriter, r *http.Request) {
	store, ok := h.loadStore(w, r)
	if !ok {
		return
	}

	var req VaultItemRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Vault deposit"); err != nil {
		return
	}

	if err := store.DepositToVault(req.ItemID, req.Quantity); err != nil {
		respondServiceError(w, r, "Vault deposit failed", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: "Items deposited"})
}

func (h *Handler) HandleVaultWithdraw(w http.ResponseWriter, r *http.Request) {
	store, ok := h.loadStore(w, r)
	if !ok {
		return
	}

	var req VaultItemRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Vault withdraw"); err != nil {
		return
	}

	if err := store.WithdrawFromVault(req.ItemID, req.Quantity); err != nil {
		respondServiceError(w, r, "Vault withdraw failed", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: "Items withdrawn"})
}

// Farming

// PlantCropRequest plants a seed in a farm slot.
type PlantCropRequest struct {
	Slot   int    `json:"slot" validate:"gte=0"`
	SeedID string `json:"seedId" validate:"required"`
}

func (h *Handler) HandlePlantCrop(w http.ResponseWriter, r *http.Request) {
	store, ok := h.loadStore(w, r)
	if !ok {
		return
	}

	var req PlantCropRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Plant crop"); err != nil {
		return
	}

	if err := store.PlantCrop(req.Slot, req.SeedID); err != nil {
		respondServiceError(w, r, "Plant crop failed", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: "Crop planted"})
}

// FarmSlotRequest targets a single farm slot.
type FarmSlotRequest struct {
	Slot int `json:"slot" validate:"gte=0"`
}

func (h *Handler) HandleWaterCrop(w http.ResponseWriter, r *http.Request) {
	store, ok := h.loadStore(w, r)
	if !ok {
		return
	}

	var req FarmSlotRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Water crop"); err != nil {
		return
	}

	if err := store.WaterCrop(req.Slot); err != nil {
		respondServiceError(w, r, "Water crop failed", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: "Crop watered"})
}

// HarvestResponse reports the yield of a harvest.
type HarvestResponse struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

func (h *Handler) HandleHarvestCrop(w http.ResponseWriter, r *http.Request) {
	store, ok := h.loadStore(w, r)
	if !ok {
		return
	}

	var req FarmSlotRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Harvest crop"); err != nil {
		return
	}

	itemID, qty, err := store.HarvestCrop(req.Slot)
	if err != nil {
		respondServiceError(w, r, "Harvest crop failed", err)
		return
	}
	respondJSON(w, http.StatusOK, HarvestResponse{ItemID: itemID, Quantity: qty})
}

func (h *Handler) HandleUpgradeFarm(w http.ResponseWriter, r *http.Request) {
	store, ok := h.loadStore(w, r)
	if !ok {
		return
	}

	if err := store.UpgradeFarm(); err != nil {
		respondServiceError(w, r, "Upgrade farm failed", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: "Farm upgraded"})
}

// CropProgressResponse reports growth progress in the 0 to 1 range.
type CropProgressResponse struct {
	Slot     int     `json:"slot"`
	Progress float64 `json:"progress"`
}

func (h *Handler) HandleGetCropProgress(w http.ResponseWriter, r *http.Request) {
	store, ok := h.loadStore(w, r)
	if !ok {
		return
	}

	slot, err := strconv.Atoi(chi.URLParam(r, "slot"))
	if err != nil || slot < 0 {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidSlotError)
		return
	}

	progress, err := store.CropProgress(slot)
	if err != nil {
		respondServiceError(w, r, "Get crop progress failed", err)
		return
	}
	respondJSON(w, http.StatusOK, CropProgressResponse{Slot: slot, Progress: progress})
}

// Boosters

// BuyBoosterRequest spends universal points on a temporary booster.
type BuyBoosterRequest struct {
	BoosterID string `json:"boosterId" validate:"required"`
}

func (h *Handler) HandleBuyBooster(w http.ResponseWriter, r *http.Request) {
	store, ok := h.loadStore(w, r)
	if !ok {
		return
	}

	var req BuyBoosterRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Buy booster"); err != nil {
		return
	}

	if err := store.BuyBooster(req.BoosterID); err != nil {
		respondServiceError(w, r, "Buy booster failed", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: "Booster activated"})
}
