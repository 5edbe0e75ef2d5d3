package tilemap

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/r-lodahl/Illarion-Server/engine/world"
)

// ImportMap parses the text export triplet of one map (tiles, warps, items)
// back into a Map. Imported items are marked permanent because the text
// format does not carry wear.
func ImportMap(dir string, minX, minY, z int16) (*Map, error) {
	filebase := world.ExportBasename(dir, minX, minY, z)

	m, err := importTiles(filebase+"tiles.txt", minX, minY, z)
	if err != nil {
		return nil, err
	}
	if err := importWarps(filebase+"warps.txt", m); err != nil {
		return nil, err
	}
	if err := importItems(filebase+"items.txt", m); err != nil {
		return nil, err
	}
	return m, nil
}

func importTiles(filename string, minX, minY, z int16) (*Map, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", filename)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)

	header := make(map[string]int, 6)
	for _, key := range []string{"V", "L", "X", "Y", "W", "H"} {
		value, err := readHeaderLine(scanner, key)
		if err != nil {
			return nil, errors.Wrapf(err, "%s", filename)
		}
		header[key] = value
	}

	if header["V"] != 2 {
		return nil, errors.Errorf("%s: unsupported version %d", filename, header["V"])
	}
	if header["L"] != int(z) || header["X"] != int(minX) || header["Y"] != int(minY) {
		return nil, errors.Errorf("%s: header origin %d,%d,%d does not match filename",
			filename, header["X"], header["Y"], header["L"])
	}

	m := NewMap(minX, minY, uint16(header["W"]), uint16(header["H"]), z)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		values, err := parseIntFields(line, 4)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: line %q", filename, line)
		}
		field := m.At(minX+int16(values[0]), minY+int16(values[1]))
		if field == nil {
			return nil, errors.Errorf("%s: field %d;%d is outside the map", filename, values[0], values[1])
		}
		field.Tile = uint16(values[2])
		field.Music = uint16(values[3])
	}
	return m, scanner.Err()
}

func importWarps(filename string, m *Map) error {
	f, err := os.Open(filename)
	if err != nil {
		return errors.Wrapf(err, "open %s", filename)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		values, err := parseIntFields(line, 5)
		if err != nil {
			return errors.Wrapf(err, "%s: line %q", filename, line)
		}
		field := m.At(m.MinX()+int16(values[0]), m.MinY()+int16(values[1]))
		if field == nil {
			return errors.Errorf("%s: warp %d;%d is outside the map", filename, values[0], values[1])
		}
		field.SetWarp(world.Position{X: int16(values[2]), Y: int16(values[3]), Z: int16(values[4])})
	}
	return scanner.Err()
}

func importItems(filename string, m *Map) error {
	f, err := os.Open(filename)
	if err != nil {
		return errors.Wrapf(err, "open %s", filename)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		parts := world.SplitUnescaped(line, ';')
		if len(parts) < 4 {
			return errors.Errorf("%s: line %q has %d fields, want at least 4", filename, line, len(parts))
		}
		values, err := parseIntFields(strings.Join(parts[:4], ";"), 4)
		if err != nil {
			return errors.Wrapf(err, "%s: line %q", filename, line)
		}

		item := Item{
			ID:        uint16(values[2]),
			Quality:   uint16(values[3]),
			Permanent: true,
		}
		for _, part := range parts[4:] {
			pair := world.SplitUnescaped(part, '=')
			if len(pair) != 2 {
				return errors.Errorf("%s: bad data pair %q in line %q", filename, part, line)
			}
			item.Data = append(item.Data, world.DataPair{
				Key:   world.UnescapeExportString(pair[0]),
				Value: world.UnescapeExportString(pair[1]),
			})
		}

		field := m.At(m.MinX()+int16(values[0]), m.MinY()+int16(values[1]))
		if field == nil {
			return errors.Errorf("%s: item %d;%d is outside the map", filename, values[0], values[1])
		}
		field.AddItem(item)
	}
	return scanner.Err()
}

func readHeaderLine(scanner *bufio.Scanner, key string) (int, error) {
	if !scanner.Scan() {
		return 0, errors.Errorf("missing header line %s", key)
	}
	line := scanner.Text()
	prefix := key + ": "
	if !strings.HasPrefix(line, prefix) {
		return 0, errors.Errorf("header line %q, want %q", line, prefix+"<n>")
	}
	value, err := strconv.Atoi(line[len(prefix):])
	if err != nil {
		return 0, errors.Wrapf(err, "header line %q", line)
	}
	return value, nil
}

func parseIntFields(s string, n int) ([]int, error) {
	parts := strings.Split(s, ";")
	if len(parts) != n {
		return nil, errors.Errorf("%d fields, want %d", len(parts), n)
	}
	values := make([]int, n)
	for i, part := range parts {
		value, err := strconv.Atoi(part)
		if err != nil {
			return nil, errors.Wrapf(err, "field %d", i)
		}
		values[i] = value
	}
	return values, nil
}
