package main

import (
	"fmt"
	"os"
	"time"

	"babayaga/internal/domain"
	"babayaga/internal/infrastructure/storage"
)

func main() {
	if len(os.Args) < 3 {
		printHelp()
		return
	}

	switch os.Args[1] {
	case "info":
		rec, err := load(os.Args[2])
		if err != nil {
			fmt.Printf("Invalid replay: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("seed      %d\n", rec.Seed)
		fmt.Printf("recorded  %s\n", time.Unix(rec.Timestamp, 0).Format(time.RFC3339))
		fmt.Printf("snapshot  %d bytes\n", len(rec.Snapshot))
		fmt.Printf("actions   %d\n", len(rec.Actions))
		if n := len(rec.Actions); n > 0 {
			fmt.Printf("ticks     %d..%d\n", rec.Actions[0].Tick, rec.Actions[n-1].Tick)
		}
	case "actions":
		rec, err := load(os.Args[2])
		if err != nil {
			fmt.Printf("Invalid replay: %v\n", err)
			os.Exit(1)
		}
		for _, a := range rec.Actions {
			fmt.Printf("%8d  %-14s %-14s %s\n", a.Tick, a.Action, a.Token, a.Payload)
		}
	case "snapshot":
		data, err := os.ReadFile(os.Args[2])
		if err != nil {
			fmt.Printf("Read failed: %v\n", err)
			os.Exit(1)
		}
		snap, err := storage.UnmarshalSnapshot(data)
		if err != nil {
			fmt.Printf("Invalid snapshot: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("id     %s\n", snap.ID)
		fmt.Printf("tick   %d\n", snap.Tick)
		fmt.Printf("seed   %d\n", snap.Seed)
		if snap.Zone != nil {
			fmt.Printf("zone   %dx%d seed %d, %d chests opened\n",
				snap.Zone.Descriptor.Width, snap.Zone.Descriptor.Height, snap.Zone.Seed, len(snap.Zone.Claimed))
		}
		for _, a := range snap.Actors {
			hp := a.Stats.MaxHP
			if a.Stats.HP != nil {
				hp = *a.Stats.HP
			}
			fmt.Printf("actor  %-14s %-11s hp %6.1f/%-6.1f items %d coins %d\n",
				a.Name, a.Faction, hp, a.Stats.MaxHP, len(a.Inventory), a.Coins)
		}
	default:
		printHelp()
	}
}

func load(path string) (*domain.ReplaySession, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return storage.ReadReplay(f)
}

func printHelp() {
	fmt.Println(`Replay utility - inspect recordings and snapshots
Commands:
  info <file.byrp>          - header: seed, recording time, size
  actions <file.byrp>       - every recorded command with its tick
  snapshot <file.msgpack>   - actors and zone of a saved snapshot`)
}
