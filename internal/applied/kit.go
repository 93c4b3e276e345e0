package applied

import "github.com/CardinalDevelopment/Cardinal-sub000/internal/world"

// ItemKit gives a fixed set of items and armor.
type ItemKit struct {
	ID    string
	Items []world.ItemStack
	Armor []world.ItemStack
	// Clear empties the inventory before the kit is applied.
	Clear bool
}

// Apply implements Kit.
func (k *ItemKit) Apply(p *world.Player) {
	if p == nil {
		return
	}
	if k.Clear {
		p.Inventory = nil
		p.Armor = nil
	}
	p.Inventory = append(p.Inventory, k.Items...)
	if len(k.Armor) > 0 {
		p.Armor = append([]world.ItemStack(nil), k.Armor...)
	}
}

// Remove implements RemovableKit. It takes back as much of each kit stack
// as the player still has.
func (k *ItemKit) Remove(p *world.Player) {
	if p == nil {
		return
	}
	p.Inventory = takeBack(p.Inventory, k.Items)
	p.Armor = takeBack(p.Armor, k.Armor)
}

func takeBack(have, give []world.ItemStack) []world.ItemStack {
	owed := make(map[world.Material]int, len(give))
	for _, s := range give {
		owed[s.Material] += s.Amount
	}
	out := have[:0]
	for _, s := range have {
		if n := owed[s.Material]; n > 0 {
			take := min(n, s.Amount)
			owed[s.Material] -= take
			s.Amount -= take
		}
		if s.Amount > 0 {
			out = append(out, s)
		}
	}
	return out
}
