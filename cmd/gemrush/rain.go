package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coder/quartz"

	"gemrush/internal/events"
	"gemrush/internal/rain"
)

// RainCmd joins the next rain and blocks until it pays out
type RainCmd struct {
	Countdown int `kong:"help='Override the rain countdown in seconds'"`
}

func (c *RainCmd) Run(cli *CLI) error {
	app, err := newApp(cli)
	if err != nil {
		return err
	}

	cfg := app.cfg.RainConfig()
	if c.Countdown > 0 {
		cfg.Countdown = time.Duration(c.Countdown) * time.Second
	}

	paid := &kindWaiter{kind: events.KindRainPayout, ch: make(chan events.Event, 1)}
	app.bus.Subscribe(paid)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	scheduler := rain.NewScheduler(cfg, quartz.NewReal(), app.store, app.bus, app.logger)
	scheduler.Start(ctx)
	scheduler.Join(app.store.Profile().ID)

	current := scheduler.Current()
	fmt.Printf("Joined the rain: %d gems dropping in %d seconds\n",
		current.TotalAmount, current.RemainingSeconds)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	select {
	case <-paid.ch:
		fmt.Printf("Balance: %d gems\n", app.store.Balance())
		return nil
	case <-sig:
		fmt.Println("\nLeaving before the rain lands.")
		return nil
	}
}

// kindWaiter forwards the first event of one kind to a channel
type kindWaiter struct {
	kind events.Kind
	ch   chan events.Event
}

func (w *kindWaiter) OnEvent(e events.Event) {
	if e.Kind != w.kind {
		return
	}
	select {
	case w.ch <- e:
	default:
	}
}
