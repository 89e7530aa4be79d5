package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"gemrush/internal/blackjack"
)

// BlackjackCmd plays interactive blackjack rounds
type BlackjackCmd struct {
	Bet int `kong:"default='100',help='Bet amount in gems'"`
}

func (c *BlackjackCmd) Run(cli *CLI) error {
	app, err := newApp(cli)
	if err != nil {
		return err
	}

	engine := blackjack.NewEngine(app.rng, app.store, app.bus, app.logger)
	reader := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("\nBalance: %d gems\n", app.store.Balance())
		if err := engine.Deal(c.Bet); err != nil {
			return err
		}

		for engine.State() == blackjack.Playing {
			fmt.Printf("Dealer shows: %s\n", engine.DealerHand()[0])
			fmt.Printf("Your hand:    %s (%d)\n", engine.PlayerHand(), engine.PlayerHand().Value())
			fmt.Print("(h)it or (s)tand? ")
			if !reader.Scan() {
				if err := engine.Stand(); err != nil {
					return err
				}
				break
			}
			switch strings.ToLower(strings.TrimSpace(reader.Text())) {
			case "h", "hit":
				if err := engine.Hit(); err != nil {
					return err
				}
			case "s", "stand":
				if err := engine.Stand(); err != nil {
					return err
				}
			}
		}

		for engine.State() == blackjack.DealerTurn {
			time.Sleep(600 * time.Millisecond)
			if _, err := engine.DealerStep(); err != nil {
				return err
			}
			fmt.Printf("Dealer hand:  %s (%d)\n", engine.DealerHand(), engine.DealerHand().Value())
		}

		fmt.Printf("Your hand:    %s (%d)\n", engine.PlayerHand(), engine.PlayerHand().Value())
		fmt.Printf("Dealer hand:  %s (%d)\n", engine.DealerHand(), engine.DealerHand().Value())
		fmt.Printf("Balance: %d gems\n", app.store.Balance())

		fmt.Print("Play again? (y/n) ")
		if !reader.Scan() || !strings.HasPrefix(strings.ToLower(strings.TrimSpace(reader.Text())), "y") {
			return nil
		}
		engine.Reset()
	}
}
