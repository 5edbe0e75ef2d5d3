package world

import (
	"testing"
	"time"

	"github.com/bmizerany/assert"
)

func TestInsertMapRejectsNil(t *testing.T) {
	wm := NewWorldMap()
	assert.T(t, !wm.InsertMap(nil), "nil map should be rejected")
	assert.Equal(t, 0, wm.NumMaps())
}

func TestInsertMapRejectsDuplicate(t *testing.T) {
	wm := NewWorldMap()
	m := newTestMap(0, 0, 4, 4, 0)
	assert.T(t, wm.InsertMap(m), "first insert should succeed")
	assert.T(t, !wm.InsertMap(m), "second insert of same handle should fail")
	assert.Equal(t, 1, wm.NumMaps())
}

func TestFindMapForPosCoversWholeFootprint(t *testing.T) {
	wm := NewWorldMap()
	m := newTestMap(-3, 10, 5, 4, 2)
	wm.InsertMap(m)

	for x := m.MinX(); x <= m.MaxX(); x++ {
		for y := m.MinY(); y <= m.MaxY(); y++ {
			found := wm.FindMapForPos(Position{x, y, 2})
			assert.Tf(t, found == Map(m), "map not found at (%d, %d)", x, y)
		}
	}
}

func TestFindMapForPosOutsideReturnsNil(t *testing.T) {
	wm := NewWorldMap()
	m := newTestMap(0, 0, 4, 4, 0)
	wm.InsertMap(m)

	assert.T(t, wm.FindMapForPos(Position{4, 0, 0}) == nil, "east of map")
	assert.T(t, wm.FindMapForPos(Position{-1, 0, 0}) == nil, "west of map")
	assert.T(t, wm.FindMapForPos(Position{0, 4, 0}) == nil, "south of map")
	assert.T(t, wm.FindMapForPos(Position{1, 1, 1}) == nil, "wrong level")
}

// Overlapping maps are allowed but unspecified; the index keeps whichever map
// was inserted last for the contested cells. This documents the behaviour, it
// does not bless it.
func TestInsertMapOverlapLastWriteWins(t *testing.T) {
	wm := NewWorldMap()
	first := newTestMap(0, 0, 4, 4, 0)
	second := newTestMap(2, 2, 4, 4, 0)
	wm.InsertMap(first)
	wm.InsertMap(second)

	assert.T(t, wm.FindMapForPos(Position{3, 3, 0}) == Map(second), "contested cell should belong to the later map")
	assert.T(t, wm.FindMapForPos(Position{0, 0, 0}) == Map(first), "uncontested cell keeps its owner")
}

func TestMapInRangeOf(t *testing.T) {
	wm := NewWorldMap()
	wm.InsertMap(newTestMap(10, 10, 5, 5, 0))

	assert.T(t, wm.MapInRangeOf(Position{8, 8, 0}, 3, 3), "rectangle touching the corner")
	assert.T(t, !wm.MapInRangeOf(Position{8, 8, 0}, 2, 2), "rectangle one cell short")
	assert.T(t, !wm.MapInRangeOf(Position{8, 8, 1}, 3, 3), "wrong level")
	assert.T(t, wm.MapInRangeOf(Position{12, 12, 0}, 1, 1), "rectangle inside the map")
}

func TestFindAllMapsInRangeOfOrderAndContent(t *testing.T) {
	wm := NewWorldMap()
	a := newTestMap(0, 0, 4, 4, 0)
	b := newTestMap(6, 0, 4, 4, 0)
	c := newTestMap(0, 0, 4, 4, 5) // other level
	wm.InsertMap(a)
	wm.InsertMap(b)
	wm.InsertMap(c)

	found := wm.FindAllMapsInRangeOf(2, 2, 8, 2, Position{2, 2, 0})
	assert.Equal(t, 2, len(found))
	assert.T(t, found[0] == Map(a) && found[1] == Map(b), "registry order expected")

	assert.Equal(t, 0, len(wm.FindAllMapsInRangeOf(0, 0, 0, 0, Position{100, 100, 0})))
}

// MapInRangeOf must be true exactly when FindAllMapsInRangeOf finds a map for
// a rectangle of the same extent.
func TestRangeQueriesAgree(t *testing.T) {
	wm := NewWorldMap()
	wm.InsertMap(newTestMap(0, 0, 4, 4, 0))
	wm.InsertMap(newTestMap(10, 10, 3, 3, 0))
	wm.InsertMap(newTestMap(-5, -5, 2, 2, 1))

	queries := []struct {
		upperLeft Position
		dx, dy    uint16
	}{
		{Position{0, 0, 0}, 1, 1},
		{Position{-2, -2, 0}, 3, 3},
		{Position{4, 4, 0}, 2, 2},
		{Position{8, 8, 0}, 5, 5},
		{Position{-5, -5, 1}, 1, 1},
		{Position{-5, -5, 2}, 1, 1},
		{Position{20, 20, 0}, 10, 10},
	}

	for _, q := range queries {
		// same rectangle, expressed as offsets from its top-left corner
		all := wm.FindAllMapsInRangeOf(0, int16(q.dy)-1, int16(q.dx)-1, 0, q.upperLeft)
		assert.Tf(t, wm.MapInRangeOf(q.upperLeft, q.dx, q.dy) == (len(all) > 0),
			"disagreement at %s dx=%d dy=%d", q.upperLeft, q.dx, q.dy)
	}
}

func TestAllMapsAgedEmptyRegistry(t *testing.T) {
	wm := NewWorldMap()
	assert.T(t, wm.AllMapsAged(), "empty registry is a completed sweep")
}

func TestAllMapsAgedFastSweep(t *testing.T) {
	wm := NewWorldMap()
	maps := make([]*testMap, 5)
	for i := range maps {
		maps[i] = newTestMap(int16(i*10), 0, 4, 4, 0)
		wm.InsertMap(maps[i])
	}

	assert.T(t, wm.AllMapsAged(), "trivial ages should finish in one call")
	for i, m := range maps {
		assert.Tf(t, m.aged == 1, "map %d aged %d times", i, m.aged)
	}

	assert.T(t, wm.AllMapsAged(), "next sweep starts over")
	for i, m := range maps {
		assert.Tf(t, m.aged == 2, "map %d aged %d times", i, m.aged)
	}
}

func TestAllMapsAgedBudgetSpansCalls(t *testing.T) {
	wm := NewWorldMap()
	maps := make([]*testMap, 5)
	for i := range maps {
		maps[i] = newTestMap(int16(i*10), 0, 4, 4, 0)
		maps[i].ageDelay = time.Millisecond * 6 // two ages overrun the 10ms budget
		wm.InsertMap(maps[i])
	}

	calls := 0
	for !wm.AllMapsAged() {
		calls++
		if calls > 10 {
			t.Fatalf("sweep did not complete after %d calls", calls)
		}
	}
	assert.Tf(t, calls >= 2, "sweep over slow maps finished too fast: %d intermediate calls", calls)

	for i, m := range maps {
		assert.Tf(t, m.aged == 1, "map %d aged %d times in one sweep", i, m.aged)
	}
}

func TestClear(t *testing.T) {
	wm := NewWorldMap()
	wm.InsertMap(newTestMap(0, 0, 4, 4, 0))
	wm.Clear()
	assert.Equal(t, 0, wm.NumMaps())
	assert.T(t, wm.FindMapForPos(Position{1, 1, 0}) == nil, "index should be empty")
}
