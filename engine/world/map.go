package world

// Map is the contract the world partition consumes from a map: a rectangular
// grid of fields fixed to one z level, identified by its bounding box.
// Implementations guarantee MaxX-MinX+1 == Width and MaxY-MinY+1 == Height;
// the partition never validates that.
type Map interface {
	ZLevel() int16
	MinX() int16
	MaxX() int16
	MinY() int16
	MaxY() int16
	Width() uint16
	Height() uint16
	// Intersects reports whether the map overlaps the inclusive rectangle
	// spanned by upperLeft and lowerRight on level z
	Intersects(upperLeft, lowerRight MapPosition, z int16) bool
	// Age runs one maintenance pass over the map
	Age()
	// FieldAt returns the field at the absolute coordinate, if there is one
	FieldAt(x, y int16) (Field, bool)
	// Save persists the map contents under the given filename
	Save(filename string) error
}

// Field is the read view of one map cell used by the text export
type Field interface {
	TileCode() uint16
	MusicID() uint16
	// WarpTarget returns the warp destination if the field is a warp field
	WarpTarget() (Position, bool)
	// ExportItems returns the items stacked on the field, bottom to top
	ExportItems() []ExportItem
}

// ExportItem is the flattened view of one item for the text export
type ExportItem struct {
	ID      uint16
	Quality uint16
	Data    []DataPair
}

// DataPair is one auxiliary data attribute of an item. The export emits data
// in the order the map reports it, so data is a slice, not a map.
type DataPair struct {
	Key   string
	Value string
}
