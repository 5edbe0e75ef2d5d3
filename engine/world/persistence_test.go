package world

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/bmizerany/assert"
)

func TestCatalogRoundTrip(t *testing.T) {
	wm := NewWorldMap()
	a := newTestMap(-100, 50, 20, 10, -2)
	b := newTestMap(0, 0, 1, 1, 0)
	c := newTestMap(500, -500, 100, 100, 3)
	wm.InsertMap(a)
	wm.InsertMap(b)
	wm.InsertMap(c)

	prefix := filepath.Join(t.TempDir(), "world")
	if err := wm.SaveToDisk(prefix); err != nil {
		t.Fatal(err)
	}

	entries, err := ReadCatalog(prefix)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, 3, len(entries))
	for i, m := range []*testMap{a, b, c} {
		assert.Equal(t, CatalogEntry{
			Z:      m.ZLevel(),
			MinX:   m.MinX(),
			MinY:   m.MinY(),
			Width:  m.Width(),
			Height: m.Height(),
		}, entries[i])
	}
}

func TestSaveToDiskDelegatesMapSaves(t *testing.T) {
	wm := NewWorldMap()
	m := newTestMap(-3, 7, 4, 4, 1)
	wm.InsertMap(m)

	prefix := filepath.Join(t.TempDir(), "world")
	if err := wm.SaveToDisk(prefix); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, 1, len(m.saved))
	// decimal fields are space-padded to width 6
	assert.Equal(t, fmt.Sprintf("%s_     1_    -3_     7", prefix), m.saved[0])
}

func TestSaveToDiskBadPrefix(t *testing.T) {
	wm := NewWorldMap()
	wm.InsertMap(newTestMap(0, 0, 1, 1, 0))

	err := wm.SaveToDisk(filepath.Join(t.TempDir(), "no", "such", "dir", "world"))
	assert.T(t, err != nil, "saving under a missing directory should fail")
}

func TestSaveToDiskPropagatesMapSaveError(t *testing.T) {
	wm := NewWorldMap()
	m := newTestMap(0, 0, 1, 1, 0)
	m.saveErr = fmt.Errorf("disk full")
	wm.InsertMap(m)

	err := wm.SaveToDisk(filepath.Join(t.TempDir(), "world"))
	assert.T(t, err != nil, "map save failure should surface")
}

func TestReadCatalogMissingFile(t *testing.T) {
	_, err := ReadCatalog(filepath.Join(t.TempDir(), "nothing"))
	assert.T(t, err != nil, "missing catalog should be an error")
}
