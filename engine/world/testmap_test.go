package world

import "time"

// testField / testMap implement the Field and Map contracts for tests

type testField struct {
	tile  uint16
	music uint16
	warp  *Position
	items []ExportItem
}

func (f *testField) TileCode() uint16 { return f.tile }

func (f *testField) MusicID() uint16 { return f.music }

func (f *testField) WarpTarget() (Position, bool) {
	if f.warp == nil {
		return Position{}, false
	}
	return *f.warp, true
}

func (f *testField) ExportItems() []ExportItem { return f.items }

type testMap struct {
	z          int16
	minX, maxX int16
	minY, maxY int16
	fields     map[MapPosition]*testField
	aged       int
	ageDelay   time.Duration
	saved      []string
	saveErr    error
}

func newTestMap(minX, minY int16, width, height uint16, z int16) *testMap {
	return &testMap{
		z:      z,
		minX:   minX,
		maxX:   minX + int16(width) - 1,
		minY:   minY,
		maxY:   minY + int16(height) - 1,
		fields: map[MapPosition]*testField{},
	}
}

func (m *testMap) setField(x, y int16, f *testField) {
	m.fields[MapPosition{x, y}] = f
}

func (m *testMap) ZLevel() int16 { return m.z }

func (m *testMap) MinX() int16 { return m.minX }

func (m *testMap) MaxX() int16 { return m.maxX }

func (m *testMap) MinY() int16 { return m.minY }

func (m *testMap) MaxY() int16 { return m.maxY }

func (m *testMap) Width() uint16 { return uint16(m.maxX - m.minX + 1) }

func (m *testMap) Height() uint16 { return uint16(m.maxY - m.minY + 1) }

func (m *testMap) Intersects(upperLeft, lowerRight MapPosition, z int16) bool {
	return z == m.z &&
		m.minX <= lowerRight.X && m.maxX >= upperLeft.X &&
		m.minY <= lowerRight.Y && m.maxY >= upperLeft.Y
}

func (m *testMap) Age() {
	m.aged++
	if m.ageDelay > 0 {
		time.Sleep(m.ageDelay)
	}
}

func (m *testMap) FieldAt(x, y int16) (Field, bool) {
	f, ok := m.fields[MapPosition{x, y}]
	if !ok {
		return nil, false
	}
	return f, true
}

func (m *testMap) Save(filename string) error {
	m.saved = append(m.saved, filename)
	return m.saveErr
}
