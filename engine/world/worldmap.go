package world

import (
	"time"

	"github.com/r-lodahl/Illarion-Server/engine/consts"
	"github.com/r-lodahl/Illarion-Server/engine/opmon"
)

// WorldMap is the partition of the world into maps. It keeps every inserted
// map in insertion order and indexes every covered coordinate for O(1)
// lookup. All operations assume a single logical owner; there is no internal
// locking, and inserting while an aging sweep is in progress invalidates the
// sweep cursor.
type WorldMap struct {
	maps     []Map
	index    map[Position]Map
	ageIndex int
}

// NewWorldMap creates an empty WorldMap
func NewWorldMap() *WorldMap {
	return &WorldMap{
		index: map[Position]Map{},
	}
}

// Clear drops all maps, the position index and the aging cursor
func (wm *WorldMap) Clear() {
	wm.maps = nil
	wm.index = map[Position]Map{}
	wm.ageIndex = 0
}

// NumMaps returns the number of registered maps
func (wm *WorldMap) NumMaps() int {
	return len(wm.maps)
}

// FindMapForPos returns the map covering pos, or nil when no map covers it.
// Absence is a normal outcome, not an error.
func (wm *WorldMap) FindMapForPos(pos Position) Map {
	return wm.index[pos]
}

// MapInRangeOf reports whether any map intersects the inclusive rectangle
// with top-left corner upperLeft spanning dx columns and dy rows, on level
// upperLeft.Z. Scans the registry because rectangle intersection cannot be
// decided from point lookups.
func (wm *WorldMap) MapInRangeOf(upperLeft Position, dx, dy uint16) bool {
	lowerRight := MapPosition{upperLeft.X + int16(dx) - 1, upperLeft.Y + int16(dy) - 1}

	for _, m := range wm.maps {
		if m.Intersects(MapPosition{upperLeft.X, upperLeft.Y}, lowerRight, upperLeft.Z) {
			return true
		}
	}
	return false
}

// FindAllMapsInRangeOf returns every map intersecting the rectangle centered
// on pos and extended north/south rows and east/west columns, on level pos.Z,
// in insertion order. The result may be empty.
func (wm *WorldMap) FindAllMapsInRangeOf(north, south, east, west int16, pos Position) []Map {
	upperLeft := MapPosition{pos.X - west, pos.Y - north}
	lowerRight := MapPosition{pos.X + east, pos.Y + south}

	var result []Map
	for _, m := range wm.maps {
		if m.Intersects(upperLeft, lowerRight, pos.Z) {
			result = append(result, m)
		}
	}
	return result
}

// InsertMap registers newMap and indexes its whole footprint. Returns false
// for a nil map or a map that is already registered (same handle). Where
// footprints overlap, the later insertion wins the contested index cells.
func (wm *WorldMap) InsertMap(newMap Map) bool {
	if newMap == nil {
		return false
	}

	for _, m := range wm.maps {
		if m == newMap {
			return false
		}
	}

	wm.maps = append(wm.maps, newMap)

	z := newMap.ZLevel()
	for x := int(newMap.MinX()); x <= int(newMap.MaxX()); x++ {
		for y := int(newMap.MinY()); y <= int(newMap.MaxY()); y++ {
			wm.index[Position{int16(x), int16(y), z}] = newMap
		}
	}

	return true
}

// AllMapsAged ages maps from the persistent cursor onwards until the
// wall-clock budget runs out. Returns true when this call completed a full
// sweep over all maps; the cursor then restarts at the beginning. The budget
// is checked between maps only, a started Age always runs to completion.
func (wm *WorldMap) AllMapsAged() bool {
	op := opmon.StartOperation("worldmap.age")
	defer op.Finish(consts.OPMON_AGE_WARN_THRESHOLD)

	startTime := time.Now()

	for wm.ageIndex < len(wm.maps) && time.Since(startTime) < consts.MAP_AGE_BUDGET {
		wm.maps[wm.ageIndex].Age()
		wm.ageIndex++
	}

	if wm.ageIndex < len(wm.maps) {
		return false
	}

	wm.ageIndex = 0
	return true
}
