package tilemap

import (
	"os"

	"github.com/pkg/errors"
	"github.com/r-lodahl/Illarion-Server/engine/consts"
	"github.com/r-lodahl/Illarion-Server/engine/gwlog"
	"github.com/r-lodahl/Illarion-Server/engine/world"
	"github.com/vmihailenco/msgpack"
)

// on-disk layout of one map file, packed with msgpack
type mapData struct {
	ZLevel int16
	MinX   int16
	MinY   int16
	Width  uint16
	Height uint16
	Fields []fieldData
}

type fieldData struct {
	Tile  uint16
	Music uint16
	Warp  *world.Position
	Items []Item
}

// Save writes the map contents to filename, replacing any previous file
func (m *Map) Save(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "create %s", filename)
	}
	defer f.Close()

	data := mapData{
		ZLevel: m.zLevel,
		MinX:   m.minX,
		MinY:   m.minY,
		Width:  m.width,
		Height: m.height,
		Fields: make([]fieldData, len(m.fields)),
	}
	for i := range m.fields {
		field := &m.fields[i]
		data.Fields[i] = fieldData{
			Tile:  field.Tile,
			Music: field.Music,
			Warp:  field.warp,
			Items: field.items,
		}
	}

	if consts.DEBUG_SAVE_LOAD {
		gwlog.Debugf("Saving map %d,%d,%d to %s", m.minX, m.minY, m.zLevel, filename)
	}

	if err := msgpack.NewEncoder(f).Encode(&data); err != nil {
		return errors.Wrapf(err, "encode %s", filename)
	}
	return nil
}

// LoadMap reads a map file written by Save
func LoadMap(filename string) (*Map, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", filename)
	}
	defer f.Close()

	var data mapData
	if err := msgpack.NewDecoder(f).Decode(&data); err != nil {
		return nil, errors.Wrapf(err, "decode %s", filename)
	}

	if len(data.Fields) != int(data.Width)*int(data.Height) {
		return nil, errors.Errorf("%s: %d fields for a %dx%d map", filename, len(data.Fields), data.Width, data.Height)
	}

	m := NewMap(data.MinX, data.MinY, data.Width, data.Height, data.ZLevel)
	for i, field := range data.Fields {
		m.fields[i] = Field{
			Tile:  field.Tile,
			Music: field.Music,
			warp:  field.Warp,
			items: field.Items,
		}
	}
	return m, nil
}

// LoadWorld reads the binary catalog at <prefix>_initmaps, loads every map
// file listed in it and inserts the maps into wm in catalog order
func LoadWorld(prefix string, wm *world.WorldMap) error {
	entries, err := world.ReadCatalog(prefix)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		m, err := LoadMap(world.MapFilename(prefix, entry.Z, entry.MinX, entry.MinY))
		if err != nil {
			return err
		}

		if m.Width() != entry.Width || m.Height() != entry.Height {
			return errors.Errorf("map %d,%d,%d is %dx%d but the catalog says %dx%d",
				entry.MinX, entry.MinY, entry.Z, m.Width(), m.Height(), entry.Width, entry.Height)
		}

		if !wm.InsertMap(m) {
			gwlog.Warnf("LoadWorld: map %d,%d,%d was not inserted", entry.MinX, entry.MinY, entry.Z)
		}
	}
	return nil
}
