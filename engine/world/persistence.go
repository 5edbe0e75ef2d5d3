package world

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/r-lodahl/Illarion-Server/engine/consts"
	"github.com/r-lodahl/Illarion-Server/engine/gwlog"
	"github.com/r-lodahl/Illarion-Server/engine/opmon"
)

// CatalogEntry is the bounding box record of one map in the binary catalog
type CatalogEntry struct {
	Z      int16
	MinX   int16
	MinY   int16
	Width  uint16
	Height uint16
}

// The catalog is written little-endian. The original server dumped
// host-native integers; fixing the byte order keeps catalogs portable.
var catalogByteOrder = binary.LittleEndian

func catalogFilename(prefix string) string {
	return prefix + "_initmaps"
}

// MapFilename returns the filename a map's own save file is stored under,
// derived from the save prefix and the map's z level and origin
func MapFilename(prefix string, z, minX, minY int16) string {
	return fmt.Sprintf("%s_%6d_%6d_%6d", prefix, z, minX, minY)
}

// SaveToDisk rewrites the binary catalog at <prefix>_initmaps and delegates
// per-map content persistence to every map, in registry order. The rewrite is
// full and unconditional; it is meant for checkpoints and shutdown, not the
// per-tick path.
func (wm *WorldMap) SaveToDisk(prefix string) error {
	op := opmon.StartOperation("worldmap.save")
	defer op.Finish(consts.OPMON_SAVE_WARN_THRESHOLD)

	filename := catalogFilename(prefix)
	f, err := os.Create(filename)
	if err != nil {
		gwlog.Errorf("WorldMap.SaveToDisk: could not create %s: %v", filename, err)
		return errors.Wrapf(err, "create %s", filename)
	}
	defer f.Close()

	gwlog.Infof("Saving %d maps.", len(wm.maps))

	w := bufio.NewWriter(f)
	if err := binary.Write(w, catalogByteOrder, uint16(len(wm.maps))); err != nil {
		return errors.Wrap(err, "write map count")
	}

	for _, m := range wm.maps {
		entry := CatalogEntry{
			Z:      m.ZLevel(),
			MinX:   m.MinX(),
			MinY:   m.MinY(),
			Width:  m.Width(),
			Height: m.Height(),
		}
		if err := binary.Write(w, catalogByteOrder, &entry); err != nil {
			return errors.Wrapf(err, "write catalog entry for map %d,%d,%d", entry.MinX, entry.MinY, entry.Z)
		}

		if err := m.Save(MapFilename(prefix, m.ZLevel(), m.MinX(), m.MinY())); err != nil {
			gwlog.Errorf("WorldMap.SaveToDisk: map %d,%d,%d save failed: %v", m.MinX(), m.MinY(), m.ZLevel(), err)
			return err
		}
	}

	if err := w.Flush(); err != nil {
		return errors.Wrapf(err, "flush %s", filename)
	}
	return nil
}

// ReadCatalog reads the binary catalog at <prefix>_initmaps back into its
// entries, in the order they were saved
func ReadCatalog(prefix string) ([]CatalogEntry, error) {
	filename := catalogFilename(prefix)
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", filename)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	var count uint16
	if err := binary.Read(r, catalogByteOrder, &count); err != nil {
		return nil, errors.Wrapf(err, "read map count from %s", filename)
	}

	entries := make([]CatalogEntry, count)
	for i := range entries {
		if err := binary.Read(r, catalogByteOrder, &entries[i]); err != nil {
			return nil, errors.Wrapf(err, "read catalog entry %d from %s", i, filename)
		}
	}
	return entries, nil
}
