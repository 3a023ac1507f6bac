package domain

// PlayerStats tracks level, experience and currencies.
//
// XP is always normalized below XPToNextLevel after any grant; the lifetime
// totals are monotonic and survive everything short of a full game reset.
type PlayerStats struct {
	Level            int     `json:"level"`
	XP               int     `json:"xp"`
	XPToNextLevel    int     `json:"xpToNextLevel"`
	Coins            int     `json:"coins"`
	UniversalPoints  float64 `json:"universalPoints"`
	TotalCoinsEarned int     `json:"totalCoinsEarned"`
	TotalItemsSold   int     `json:"totalItemsSold"`
}

// EquipmentSlot names one of the six equipment positions.
type EquipmentSlot string

const (
	SlotHelmet     EquipmentSlot = "helmet"
	SlotChestplate EquipmentSlot = "chestplate"
	SlotLeggings   EquipmentSlot = "leggings"
	SlotBoots      EquipmentSlot = "boots"
	SlotMainHand   EquipmentSlot = "mainHand"
	SlotOffHand    EquipmentSlot = "offHand"
)

// EquipmentSlots lists every slot in display order.
var EquipmentSlots = []EquipmentSlot{
	SlotHelmet, SlotChestplate, SlotLeggings, SlotBoots, SlotMainHand, SlotOffHand,
}

// Equipment holds the item occupying each slot, empty string when vacant.
type Equipment struct {
	Helmet     string `json:"helmet"`
	Chestplate string `json:"chestplate"`
	Leggings   string `json:"leggings"`
	Boots      string `json:"boots"`
	MainHand   string `json:"mainHand"`
	OffHand    string `json:"offHand"`
}

// Get returns the item id equipped in the slot, empty string when vacant.
func (e *Equipment) Get(slot EquipmentSlot) string {
	switch slot {
	case SlotHelmet:
		return e.Helmet
	case SlotChestplate:
		return e.Chestplate
	case SlotLeggings:
		return e.Leggings
	case SlotBoots:
		return e.Boots
	case SlotMainHand:
		return e.MainHand
	case SlotOffHand:
		return e.OffHand
	}
	return ""
}

// Set places an item id (or empty string to clear) in the slot.
func (e *Equipment) Set(slot EquipmentSlot, itemID string) {
	switch slot {
	case SlotHelmet:
		e.Helmet = itemID
	case SlotChestplate:
		e.Chestplate = itemID
	case SlotLeggings:
		e.Leggings = itemID
	case SlotBoots:
		e.Boots = itemID
	case SlotMainHand:
		e.MainHand = itemID
	case SlotOffHand:
		e.OffHand = itemID
	}
}
