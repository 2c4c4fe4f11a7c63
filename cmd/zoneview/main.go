// Command zoneview generates a zone and draws it in the terminal.
//
//	zoneview -seed 7 -w 48 -h 27 -prefabs hub,temple -enemies 6
//
// Keys: arrows scroll, n/p next/previous seed, c toggles colliders,
// q or Esc quits.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"babayaga/internal/core/types/enums"
	"babayaga/pkg/zone"

	"github.com/gdamore/tcell/v2"
)

func main() {
	var (
		desc    zone.Descriptor
		seed    int64
		floor   string
		prefabs string
		file    string
	)
	flag.Int64Var(&seed, "seed", 1, "zone seed")
	flag.IntVar(&desc.Width, "w", 48, "width in tiles")
	flag.IntVar(&desc.Height, "h", 27, "height in tiles")
	flag.StringVar(&floor, "floor", "GRASS", "floor tile kind")
	flag.StringVar(&prefabs, "prefabs", "HUB", "comma separated prefabs")
	flag.IntVar(&desc.NumEnemies, "enemies", 6, "enemy spawn markers")
	flag.IntVar(&desc.NumChests, "chests", 3, "chest markers")
	flag.IntVar(&desc.NumExits, "exits", 1, "exit markers")
	flag.BoolVar(&desc.ExteriorWalls, "walls", true, "surround the zone with walls")
	flag.StringVar(&file, "descriptor", "", "JSON descriptor file, overrides the size and marker flags")
	flag.Parse()

	if err := buildDescriptor(&desc, floor, prefabs, file); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	v := &viewer{desc: desc, seed: seed, colliders: true}
	if err := v.regenerate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "terminal setup failed: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "screen init failed: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	v.run(screen)
}

func buildDescriptor(desc *zone.Descriptor, floor, prefabs, file string) error {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return err
		}
		*desc = zone.Descriptor{}
		if err := json.Unmarshal(data, desc); err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		return desc.Validate()
	}

	kind, err := enums.ParseTileKind(floor)
	if err != nil {
		return err
	}
	desc.Floor = kind
	for _, name := range strings.Split(prefabs, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		p, err := zone.ParsePrefab(name)
		if err != nil {
			return err
		}
		desc.Prefabs = append(desc.Prefabs, p)
	}
	return desc.Validate()
}
