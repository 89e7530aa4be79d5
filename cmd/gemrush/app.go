package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"gemrush/internal/account"
	"gemrush/internal/config"
	"gemrush/internal/events"
	"gemrush/internal/randutil"
)

// app bundles the wiring every command needs: config, logging, the persisted
// account store, the event bus and a seeded RNG.
type app struct {
	cfg    *config.Config
	logger *log.Logger
	store  *account.Store
	bus    events.Bus
	rng    randutil.Source
	seed   int64
}

func newApp(cli *CLI) (*app, error) {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := setupLogger(cli.Debug, cfg.App.LogLevel)

	kv, err := account.NewFileKV(cfg.App.DataFile)
	if err != nil {
		return nil, err
	}
	store, err := account.Open(kv, logger, account.WithStartingBalance(cfg.App.StartingBalance))
	if err != nil {
		return nil, err
	}

	bus := events.NewBus()
	bus.Subscribe(&announcer{})

	seed := time.Now().UnixNano()
	if cli.Seed != nil {
		seed = *cli.Seed
	}
	logger.Debug("Ready", "seed", seed, "balance", store.Balance())

	return &app{
		cfg:    cfg,
		logger: logger,
		store:  store,
		bus:    bus,
		rng:    randutil.New(seed),
		seed:   seed,
	}, nil
}

func setupLogger(debug bool, levelName string) *log.Logger {
	level := log.InfoLevel
	if parsed, err := log.ParseLevel(levelName); err == nil {
		level = parsed
	}
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
}

// announcer prints outcome notifications to the player
type announcer struct{}

func (a *announcer) OnEvent(e events.Event) {
	if e.Amount > 0 {
		fmt.Printf(">> %s (+%d gems)\n", e.Message, e.Amount)
		return
	}
	fmt.Printf(">> %s\n", e.Message)
}
