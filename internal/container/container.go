// Package container implements the capacity-constrained item containers shared
// by inventory, storage, vault and storage units.
//
// Two bound semantics coexist and are deliberately kept distinct in the type
// system: SlotBounded counts distinct stacks against MaxSlots (stacking more of
// an existing item never consumes a new slot), while QuantityBounded counts the
// summed quantity against Capacity. Confusing the two corrupts capacity checks,
// so callers pick the concrete type, never a unified abstraction.
package container

// Stack is a quantity of a single item. Quantity is always > 0; a stack whose
// quantity reaches zero is removed from its container rather than kept empty.
type Stack struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

// Policy controls overflow behavior on Add.
//
// Clamp accepts as much as fits and reports the accepted amount; Reject
// accepts all or nothing. Passive accrual (generator deposits) clamps so a
// nearly-full storage still banks what it can; player-initiated transfers
// (buy, craft, move) reject so a purchase is never silently truncated.
type Policy int

const (
	Reject Policy = iota
	Clamp
)

// Container is the uniform add/remove contract implemented by both bound
// kinds. Move composes two Containers without caring which kind each is.
type Container interface {
	// Acceptable reports how much of the given item could be added right now.
	Acceptable(itemID string, qty int) int
	// Add inserts qty of itemID under the given policy and returns the
	// accepted amount. Under Reject the result is qty or 0, never partial.
	Add(itemID string, qty int, p Policy) int
	// Remove takes qty of itemID, deleting the stack on exact exhaustion.
	// Returns false (and changes nothing) if the held amount is short.
	Remove(itemID string, qty int) bool
	// Quantity returns the held amount of itemID, zero if absent.
	Quantity(itemID string) int
}

// SlotBounded holds at most MaxSlots distinct stacks. Used for the player
// inventory, the vault and storage-system units.
type SlotBounded struct {
	Slots    []Stack `json:"slots"`
	MaxSlots int     `json:"maxSlots"`
}

// Used returns the number of occupied slots.
func (c SlotBounded) Used() int { return len(c.Slots) }

// Quantity returns the held amount of itemID.
func (c SlotBounded) Quantity(itemID string) int { return quantityOf(c.Slots, itemID) }

// Acceptable reports how much of itemID fits. An existing stack has no
// quantity ceiling; a new item needs a free slot.
func (c SlotBounded) Acceptable(itemID string, qty int) int {
	if qty <= 0 {
		return 0
	}
	if indexOf(c.Slots, itemID) >= 0 {
		return qty
	}
	if len(c.Slots) < c.MaxSlots {
		return qty
	}
	return 0
}

// Add inserts qty of itemID under the given policy, returning the accepted
// amount.
func (c *SlotBounded) Add(itemID string, qty int, p Policy) int {
	accepted := c.Acceptable(itemID, qty)
	if accepted == 0 || (p == Reject && accepted < qty) {
		return 0
	}
	insert(&c.Slots, itemID, accepted)
	return accepted
}

// Remove takes qty of itemID, deleting the stack on exact exhaustion.
func (c *SlotBounded) Remove(itemID string, qty int) bool {
	return remove(&c.Slots, itemID, qty)
}

// Clone returns a deep copy.
func (c SlotBounded) Clone() SlotBounded {
	return SlotBounded{Slots: cloneStacks(c.Slots), MaxSlots: c.MaxSlots}
}

// QuantityBounded holds at most Capacity total units across all stacks.
// Used for the legacy bulk storage that generators deposit into.
type QuantityBounded struct {
	Items    []Stack `json:"items"`
	Capacity int     `json:"capacity"`
}

// Used returns the summed quantity across all stacks.
func (c QuantityBounded) Used() int {
	total := 0
	for _, s := range c.Items {
		total += s.Quantity
	}
	return total
}

// Free returns the remaining capacity.
func (c QuantityBounded) Free() int {
	free := c.Capacity - c.Used()
	if free < 0 {
		return 0
	}
	return free
}

// Quantity returns the held amount of itemID.
func (c QuantityBounded) Quantity(itemID string) int { return quantityOf(c.Items, itemID) }

// Acceptable reports how much of itemID fits within the remaining capacity.
func (c QuantityBounded) Acceptable(itemID string, qty int) int {
	if qty <= 0 {
		return 0
	}
	if free := c.Free(); qty > free {
		return free
	}
	return qty
}

// Add inserts qty of itemID under the given policy, returning the accepted
// amount.
func (c *QuantityBounded) Add(itemID string, qty int, p Policy) int {
	accepted := c.Acceptable(itemID, qty)
	if accepted == 0 || (p == Reject && accepted < qty) {
		return 0
	}
	insert(&c.Items, itemID, accepted)
	return accepted
}

// Remove takes qty of itemID, deleting the stack on exact exhaustion.
func (c *QuantityBounded) Remove(itemID string, qty int) bool {
	return remove(&c.Items, itemID, qty)
}

// Clone returns a deep copy.
func (c QuantityBounded) Clone() QuantityBounded {
	return QuantityBounded{Items: cloneStacks(c.Items), Capacity: c.Capacity}
}

// Move transfers itemID between containers. Under Reject the whole requested
// quantity moves or nothing does; under Clamp the transferred amount is capped
// by both the source's holdings and the destination's room. Returns the moved
// amount and whether anything moved. Items are never left in limbo: the source
// removal only happens for an amount the destination is known to accept.
func Move(from, to Container, itemID string, qty int, p Policy) (int, bool) {
	if qty <= 0 {
		return 0, false
	}
	available := from.Quantity(itemID)
	if available == 0 {
		return 0, false
	}

	want := qty
	if p == Reject {
		if available < qty || to.Acceptable(itemID, qty) < qty {
			return 0, false
		}
	} else {
		if want > available {
			want = available
		}
		want = to.Acceptable(itemID, want)
		if want == 0 {
			return 0, false
		}
	}

	if !from.Remove(itemID, want) {
		return 0, false
	}
	to.Add(itemID, want, Clamp)
	return want, true
}

func indexOf(stacks []Stack, itemID string) int {
	for i := range stacks {
		if stacks[i].ItemID == itemID {
			return i
		}
	}
	return -1
}

func quantityOf(stacks []Stack, itemID string) int {
	if i := indexOf(stacks, itemID); i >= 0 {
		return stacks[i].Quantity
	}
	return 0
}

func insert(stacks *[]Stack, itemID string, qty int) {
	if i := indexOf(*stacks, itemID); i >= 0 {
		(*stacks)[i].Quantity += qty
		return
	}
	*stacks = append(*stacks, Stack{ItemID: itemID, Quantity: qty})
}

func remove(stacks *[]Stack, itemID string, qty int) bool {
	if qty <= 0 {
		return false
	}
	i := indexOf(*stacks, itemID)
	if i < 0 || (*stacks)[i].Quantity < qty {
		return false
	}
	if (*stacks)[i].Quantity == qty {
		*stacks = append((*stacks)[:i], (*stacks)[i+1:]...)
	} else {
		(*stacks)[i].Quantity -= qty
	}
	return true
}

func cloneStacks(stacks []Stack) []Stack {
	if stacks == nil {
		return nil
	}
	out := make([]Stack, len(stacks))
	copy(out, stacks)
	return out
}
