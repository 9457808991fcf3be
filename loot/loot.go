// Package loot rolls item drops and provides the starting inventory.
package loot

import (
	"fmt"

	"tactical-realm/server/models"
	"tactical-realm/server/random"
)

// Entry is one weighted row of a drop table
type Entry struct {
	Item        models.Item
	Weight      int
	MinQuantity int
	MaxQuantity int
}

// Table rolls drops from weighted entries
type Table struct {
	Entries  []Entry
	MinItems int
	MaxItems int
	MinGold  int
	MaxGold  int
}

var defaultEntries = []Entry{
	{Item: models.Item{ID: "potion_health", Name: "Health Potion", Type: "consumable", Description: "Restores 10 HP."}, Weight: 40, MinQuantity: 1, MaxQuantity: 2},
	{Item: models.Item{ID: "bandage", Name: "Bandage", Type: "consumable", Description: "Restores 4 HP."}, Weight: 25, MinQuantity: 1, MaxQuantity: 3},
	{Item: models.Item{ID: "throwing_knife", Name: "Throwing Knife", Type: "weapon", Description: "A ranged attack for 3 damage."}, Weight: 15, MinQuantity: 1, MaxQuantity: 4},
	{Item: models.Item{ID: "smoke_bomb", Name: "Smoke Bomb", Type: "consumable", Description: "Blocks sight in a small area."}, Weight: 12, MinQuantity: 1, MaxQuantity: 1},
	{Item: models.Item{ID: "iron_shield", Name: "Iron Shield", Type: "armor", Description: "+1 defense."}, Weight: 8, MinQuantity: 1, MaxQuantity: 1},
}

// Default returns the standard drop table
func Default() *Table {
	return &Table{
		Entries:  defaultEntries,
		MinItems: 1,
		MaxItems: 3,
		MinGold:  5,
		MaxGold:  25,
	}
}

// GenerateLootDrop rolls a drop at pos. The same position and seed always give
// the same drop. It returns nil when the table has nothing to roll.
func (t *Table) GenerateLootDrop(pos models.Position, seed int64) *models.LootDrop {
	if t == nil || len(t.Entries) == 0 {
		return nil
	}
	total := 0
	for _, e := range t.Entries {
		total += e.Weight
	}
	if total <= 0 {
		return nil
	}

	rng := random.NewRNG(seed)
	drop := &models.LootDrop{
		ID:       fmt.Sprintf("loot_%d_%d_%d", seed, pos.X, pos.Y),
		Position: pos,
		Gold:     rng.NextInt(t.MinGold, t.MaxGold),
	}

	count := rng.NextInt(t.MinItems, t.MaxItems)
	for i := 0; i < count; i++ {
		e := t.pick(rng.Next() * float64(total))
		qty := rng.NextInt(e.MinQuantity, e.MaxQuantity)
		drop.Items = mergeItem(drop.Items, e.Item, qty)
	}
	return drop
}

func (t *Table) pick(roll float64) Entry {
	for _, e := range t.Entries {
		roll -= float64(e.Weight)
		if roll <= 0 {
			return e
		}
	}
	return t.Entries[0]
}

func mergeItem(items []models.Item, item models.Item, qty int) []models.Item {
	for i := range items {
		if items[i].ID == item.ID {
			items[i].Quantity += qty
			return items
		}
	}
	item.Quantity = qty
	return append(items, item)
}

// DefaultInventory returns a fresh copy of the starting inventory
func (t *Table) DefaultInventory() models.Inventory {
	return DefaultInventory()
}

// DefaultInventory returns a fresh copy of the starting inventory
func DefaultInventory() models.Inventory {
	return models.Inventory{
		Gold:     10,
		Capacity: 20,
		Items: []models.Item{
			{ID: "potion_health", Name: "Health Potion", Type: "consumable", Quantity: 2, Description: "Restores 10 HP."},
			{ID: "bandage", Name: "Bandage", Type: "consumable", Quantity: 3, Description: "Restores 4 HP."},
		},
	}
}
