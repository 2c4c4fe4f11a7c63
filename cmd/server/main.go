package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"babayaga/internal/agent"
	"babayaga/internal/core/types/enums"
	"babayaga/internal/domain"
	"babayaga/internal/engine"
	"babayaga/internal/infrastructure/storage"
	"babayaga/internal/network"
	"babayaga/internal/server"
	"babayaga/internal/version"
	"babayaga/pkg/api"
	"babayaga/pkg/logger"
	"babayaga/pkg/utils"
	"babayaga/pkg/zone"
)

var openingZone = zone.Descriptor{
	Width:         48,
	Height:        27,
	Floor:         enums.TileGrass,
	Prefabs:       []zone.Prefab{zone.PrefabHub},
	NumEnemies:    6,
	NumChests:     3,
	NumExits:      1,
	ExteriorWalls: true,
}

// openZone queues GENERATE_ZONE like any client would, so it lands in the
// recording and playback rebuilds the same zone.
func openZone(host *engine.Host, seed int64) error {
	payload, err := json.Marshal(api.GenerateZonePayload{
		Descriptor: openingZone,
		Seed:       utils.DeriveSeed(seed, "zone-0"),
		Populate:   true,
	})
	if err != nil {
		return err
	}
	return host.ProcessCommand("", api.ClientCommand{
		Action:  domain.ActionGenerateZone.String(),
		Payload: payload,
	})
}

func init() {
	logger.Init()
}

func main() {
	var (
		seed       int64
		port       string
		replayPath string
		recordDir  string
		snapDir    string
		bots       int
		strict     bool
		noZone     bool
	)
	flag.Int64Var(&seed, "seed", 0, "Master seed (0 keeps BY_SEED or a random one)")
	flag.StringVar(&port, "port", "", "HTTP port (default BY_PORT or 8080)")
	flag.StringVar(&replayPath, "replay", "", "Path to a .byrp recording to play back headless")
	flag.StringVar(&recordDir, "record", "replays", "Directory for the recording saved on shutdown (empty disables)")
	flag.StringVar(&snapDir, "snapshots", "snapshots", "Directory for SNAPSHOT commands")
	flag.IntVar(&bots, "bots", 0, "Number of bot players to start")
	flag.BoolVar(&strict, "strict", false, "Abort ticks on invariant breaches")
	flag.BoolVar(&noZone, "empty", false, "Start without generating the opening zone")
	flag.Parse()

	log := logger.For("main")
	log.Info("Starting Baba Yaga simulation host...")
	log.Info(version.Info().String())

	cfg, err := engine.NewConfig().FromEnv()
	if err != nil {
		log.WithError(err).Fatal("bad environment")
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	if strict {
		cfg.Strict = true
	}

	if replayPath != "" {
		playback(cfg, replayPath)
		return
	}

	if port == "" {
		port = os.Getenv("BY_PORT")
	}
	if port == "" {
		port = "8080"
	}
	log.WithField("seed", cfg.Seed).Info("master seed")

	svc, err := engine.NewService(cfg)
	if err != nil {
		log.WithError(err).Fatal("bad configuration")
	}
	host := engine.NewHost(svc, network.NewBroadcaster(), storage.NewSnapshotStore(snapDir))

	if !noZone {
		if err := openZone(host, cfg.Seed); err != nil {
			log.WithError(err).Fatal("failed to queue opening zone")
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = host.Run(ctx)
	}()

	for i := 0; i < bots; i++ {
		go agent.NewBot(host).Run(ctx)
	}

	srv := server.New(host, port)
	go func() {
		if err := srv.Run(); err != nil {
			log.WithError(err).Fatal("server start error")
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down...")
	<-done

	if recordDir != "" {
		path, err := storage.NewReplayService(recordDir).Save(host.Replay)
		if err != nil {
			log.WithError(err).Error("failed to save recording")
		} else {
			log.WithField("path", path).Info("recording saved")
		}
	}
	log.Info("Done.")
}

// playback re-runs a recording with its own seed and exits.
func playback(cfg engine.Config, path string) {
	log := logger.For("main").WithField("replay", path)
	log.Info("Mode: replay playback")

	rec, err := storage.NewReplayService(filepath.Dir(path)).Load(path)
	if err != nil {
		log.WithError(err).Fatal("failed to load replay")
	}
	cfg.Seed = rec.Seed

	svc, err := engine.NewService(cfg)
	if err != nil {
		log.WithError(err).Fatal("bad configuration")
	}
	host := engine.NewHost(svc, nil, nil)
	n, err := host.Playback(rec)
	if err != nil {
		log.WithError(err).WithField("replayed", n).Fatal("playback failed")
	}
}
