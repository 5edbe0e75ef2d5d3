package tilemap

import "github.com/r-lodahl/Illarion-Server/engine/world"

// Field is one map cell: a tile with optional background music, an optional
// warp destination and a stack of items
type Field struct {
	Tile  uint16
	Music uint16
	warp  *world.Position
	items []Item
}

// Item is one item on a field. Wear counts down during aging; permanent
// items never decay. Data holds the item's auxiliary attributes in order.
type Item struct {
	ID        uint16
	Quality   uint16
	Wear      uint8
	Permanent bool
	Data      []world.DataPair
}

func (f *Field) TileCode() uint16 { return f.Tile }

func (f *Field) MusicID() uint16 { return f.Music }

// WarpTarget returns the warp destination if the field is a warp field
func (f *Field) WarpTarget() (world.Position, bool) {
	if f.warp == nil {
		return world.Position{}, false
	}
	return *f.warp, true
}

// SetWarp makes the field a warp field with the given destination
func (f *Field) SetWarp(target world.Position) {
	f.warp = &target
}

// ClearWarp removes the warp destination
func (f *Field) ClearWarp() {
	f.warp = nil
}

// AddItem puts an item on top of the field's item stack
func (f *Field) AddItem(item Item) {
	f.items = append(f.items, item)
}

// Items returns the field's item stack, bottom to top
func (f *Field) Items() []Item {
	return f.items
}

// ExportItems returns the flattened item views for the text export
func (f *Field) ExportItems() []world.ExportItem {
	if len(f.items) == 0 {
		return nil
	}
	result := make([]world.ExportItem, len(f.items))
	for i, item := range f.items {
		result[i] = world.ExportItem{
			ID:      item.ID,
			Quality: item.Quality,
			Data:    item.Data,
		}
	}
	return result
}

// age decays the item stack: non-permanent items lose one wear, worn-out
// items disappear
func (f *Field) age() {
	if len(f.items) == 0 {
		return
	}

	kept := f.items[:0]
	for _, item := range f.items {
		if !item.Permanent {
			if item.Wear <= 1 {
				continue
			}
			item.Wear--
		}
		kept = append(kept, item)
	}
	f.items = kept
}
