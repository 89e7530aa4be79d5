package main

import (
	"fmt"
)

// ProfileCmd shows the current profile and balance
type ProfileCmd struct{}

func (c *ProfileCmd) Run(cli *CLI) error {
	app, err := newApp(cli)
	if err != nil {
		return err
	}

	p := app.store.Profile()
	fmt.Printf("Username: %s\n", p.Username)
	fmt.Printf("Balance:  %d gems\n", p.Balance)
	return nil
}

// LoginCmd replaces the profile with a fresh one
type LoginCmd struct {
	Username string `kong:"arg,help='Username for the new profile'"`
}

func (c *LoginCmd) Run(cli *CLI) error {
	app, err := newApp(cli)
	if err != nil {
		return err
	}

	p, err := app.store.Login(c.Username)
	if err != nil {
		return err
	}
	fmt.Printf("Welcome, %s! You start with %d gems.\n", p.Username, p.Balance)
	return nil
}

// HistoryCmd lists recent settled rounds
type HistoryCmd struct {
	Limit int `kong:"default='20',help='Maximum entries to show'"`
}

func (c *HistoryCmd) Run(cli *CLI) error {
	app, err := newApp(cli)
	if err != nil {
		return err
	}

	history := app.store.History()
	if len(history) == 0 {
		fmt.Println("No games played yet.")
		return nil
	}
	if len(history) > c.Limit {
		history = history[len(history)-c.Limit:]
	}
	// Newest first for display.
	for i := len(history) - 1; i >= 0; i-- {
		entry := history[i]
		outcome := "lost"
		if entry.IsWin {
			outcome = "won "
		}
		fmt.Printf("%s  %-9s bet %5d  %s %5d\n",
			entry.Timestamp.Format("2006-01-02 15:04"), entry.Game, entry.BetAmount, outcome, entry.WinAmount)
	}
	return nil
}
