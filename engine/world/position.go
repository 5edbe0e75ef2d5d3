package world

import "fmt"

// Position is an absolute world coordinate: a tile column, row and z level.
// It is a value type with total equality, usable as an index key.
type Position struct {
	X int16
	Y int16
	Z int16
}

func (pos Position) String() string {
	return fmt.Sprintf("(%d, %d, %d)", pos.X, pos.Y, pos.Z)
}

// MapPosition is a 2D coordinate used for the corners of query rectangles
type MapPosition struct {
	X int16
	Y int16
}

func (pos MapPosition) String() string {
	return fmt.Sprintf("(%d, %d)", pos.X, pos.Y)
}
