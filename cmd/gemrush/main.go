package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Config  string           `short:"c" default:"gemrush.hcl" help:"Path to HCL configuration file"`
	Debug   bool             `help:"Enable debug logging"`
	Seed    *int64           `help:"Deterministic RNG seed (optional)"`

	Blackjack BlackjackCmd `cmd:"" help:"Play a blackjack round"`
	Mines     MinesCmd     `cmd:"" help:"Play a mines round"`
	Battle    BattleCmd    `cmd:"" help:"Run a case battle against simulated opponents"`
	Rain      RainCmd      `cmd:"" help:"Join the next rain and wait for the payout"`
	Profile   ProfileCmd   `cmd:"" help:"Show the current profile and balance"`
	History   HistoryCmd   `cmd:"" help:"Show recent game history"`
	Login     LoginCmd     `cmd:"" help:"Start a fresh profile"`
	Simulate  SimulateCmd  `cmd:"" help:"Run bulk seeded rounds and report aggregate outcomes"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("gemrush"),
		kong.Description("Casino mini-games sharing one gem balance"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli)
	ctx.FatalIfErrorf(err)
}
