package world

import (
	"bufio"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/r-lodahl/Illarion-Server/engine/consts"
	"github.com/r-lodahl/Illarion-Server/engine/gwlog"
	"github.com/r-lodahl/Illarion-Server/engine/opmon"
)

// ExportBasename returns the common base of the three export files of a map,
// including the trailing dot
func ExportBasename(exportDir string, minX, minY, z int16) string {
	return fmt.Sprintf("%se_%d_%d_%d.", exportDir, minX, minY, z)
}

// ExportTo writes the text export of every map into exportDir: per map a
// tiles, an items and a warps file. The export aborts on the first map whose
// files cannot be opened; files of earlier maps stay on disk.
func (wm *WorldMap) ExportTo(exportDir string) error {
	op := opmon.StartOperation("worldmap.export")
	defer op.Finish(consts.OPMON_EXPORT_WARN_THRESHOLD)

	for _, m := range wm.maps {
		if err := exportMap(m, exportDir); err != nil {
			return err
		}
	}
	return nil
}

func exportMap(m Map, exportDir string) error {
	filebase := ExportBasename(exportDir, m.MinX(), m.MinY(), m.ZLevel())

	tilesFile, err := os.Create(filebase + "tiles.txt")
	if err != nil {
		gwlog.Errorf("Could not open output files for map export: %s*.txt", filebase)
		return errors.Wrapf(err, "create %stiles.txt", filebase)
	}
	defer tilesFile.Close()

	itemsFile, err := os.Create(filebase + "items.txt")
	if err != nil {
		gwlog.Errorf("Could not open output files for map export: %s*.txt", filebase)
		return errors.Wrapf(err, "create %sitems.txt", filebase)
	}
	defer itemsFile.Close()

	warpsFile, err := os.Create(filebase + "warps.txt")
	if err != nil {
		gwlog.Errorf("Could not open output files for map export: %s*.txt", filebase)
		return errors.Wrapf(err, "create %swarps.txt", filebase)
	}
	defer warpsFile.Close()

	tiles := bufio.NewWriter(tilesFile)
	items := bufio.NewWriter(itemsFile)
	warps := bufio.NewWriter(warpsFile)

	fmt.Fprintf(tiles, "V: 2\n")
	fmt.Fprintf(tiles, "L: %d\n", m.ZLevel())
	fmt.Fprintf(tiles, "X: %d\n", m.MinX())
	fmt.Fprintf(tiles, "Y: %d\n", m.MinY())
	fmt.Fprintf(tiles, "W: %d\n", m.Width())
	fmt.Fprintf(tiles, "H: %d\n", m.Height())

	// row-major over the whole footprint; fields the map does not have are
	// skipped, local coordinates are relative to the top-left corner
	for y := int(m.MinY()); y <= int(m.MaxY()); y++ {
		for x := int(m.MinX()); x <= int(m.MaxX()); x++ {
			field, ok := m.FieldAt(int16(x), int16(y))
			if !ok {
				continue
			}

			localX := x - int(m.MinX())
			localY := y - int(m.MinY())
			fmt.Fprintf(tiles, "%d;%d;%d;%d\n", localX, localY, field.TileCode(), field.MusicID())

			if target, isWarp := field.WarpTarget(); isWarp {
				fmt.Fprintf(warps, "%d;%d;%d;%d;%d\n", localX, localY, target.X, target.Y, target.Z)
			}

			for _, item := range field.ExportItems() {
				fmt.Fprintf(items, "%d;%d;%d;%d", localX, localY, item.ID, item.Quality)
				for _, data := range item.Data {
					fmt.Fprintf(items, ";%s=%s", EscapeExportString(data.Key), EscapeExportString(data.Value))
				}
				items.WriteByte('\n')
			}
		}
	}

	for _, w := range []*bufio.Writer{tiles, items, warps} {
		if err := w.Flush(); err != nil {
			return errors.Wrapf(err, "flush export of %s*.txt", filebase)
		}
	}
	return nil
}
