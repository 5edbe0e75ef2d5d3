package tilemap

import (
	"github.com/r-lodahl/Illarion-Server/engine/world"
)

// Map is a rectangular grid of fields fixed to one z level. It implements
// world.Map; every coordinate inside the bounding box has a field.
type Map struct {
	zLevel int16
	minX   int16
	minY   int16
	width  uint16
	height uint16
	fields []Field // row-major, width*height
}

// NewMap creates a map with the given origin and size; all fields start empty
func NewMap(minX, minY int16, width, height uint16, z int16) *Map {
	return &Map{
		zLevel: z,
		minX:   minX,
		minY:   minY,
		width:  width,
		height: height,
		fields: make([]Field, int(width)*int(height)),
	}
}

func (m *Map) ZLevel() int16 { return m.zLevel }

func (m *Map) MinX() int16 { return m.minX }

func (m *Map) MaxX() int16 { return m.minX + int16(m.width) - 1 }

func (m *Map) MinY() int16 { return m.minY }

func (m *Map) MaxY() int16 { return m.minY + int16(m.height) - 1 }

func (m *Map) Width() uint16 { return m.width }

func (m *Map) Height() uint16 { return m.height }

// Intersects reports whether the map overlaps the inclusive rectangle
// spanned by upperLeft and lowerRight on level z
func (m *Map) Intersects(upperLeft, lowerRight world.MapPosition, z int16) bool {
	return z == m.zLevel &&
		m.minX <= lowerRight.X && m.MaxX() >= upperLeft.X &&
		m.minY <= lowerRight.Y && m.MaxY() >= upperLeft.Y
}

// At returns the field at the absolute coordinate for mutation, or nil when
// the coordinate is outside the map
func (m *Map) At(x, y int16) *Field {
	if x < m.minX || x > m.MaxX() || y < m.minY || y > m.MaxY() {
		return nil
	}
	row := int(y - m.minY)
	col := int(x - m.minX)
	return &m.fields[row*int(m.width)+col]
}

// FieldAt returns the read view of the field at the absolute coordinate
func (m *Map) FieldAt(x, y int16) (world.Field, bool) {
	f := m.At(x, y)
	if f == nil {
		return nil, false
	}
	return f, true
}

// Age runs one maintenance pass: every field ages its item stack
func (m *Map) Age() {
	for i := range m.fields {
		m.fields[i].age()
	}
}
