package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gemrush/internal/mines"
)

// MinesCmd plays an interactive mines round
type MinesCmd struct {
	Bet   int `kong:"default='100',help='Bet amount in gems'"`
	Mines int `kong:"default='3',help='Number of mines on the grid (1-24)'"`
}

func (c *MinesCmd) Run(cli *CLI) error {
	app, err := newApp(cli)
	if err != nil {
		return err
	}

	engine := mines.NewEngine(app.rng, app.store, app.bus, app.logger)
	if err := engine.Start(c.Bet, c.Mines); err != nil {
		return err
	}

	reader := bufio.NewScanner(os.Stdin)
	for engine.Active() {
		printGrid(engine)
		fmt.Printf("Revealed %d safe cells, cashout pays %d gems (next reveal x%.2f)\n",
			engine.RevealedSafe(), engine.PotentialWin(), engine.NextMultiplier())
		fmt.Print("Cell to reveal (0-24), or (c)ashout: ")
		if !reader.Scan() {
			break
		}
		input := strings.ToLower(strings.TrimSpace(reader.Text()))
		if input == "c" || input == "cashout" {
			if _, err := engine.Cashout(); err != nil {
				fmt.Println(err)
				continue
			}
			break
		}
		index, err := strconv.Atoi(input)
		if err != nil {
			continue
		}
		engine.Reveal(index)
	}

	printGrid(engine)
	fmt.Printf("Balance: %d gems\n", app.store.Balance())
	return nil
}

func printGrid(engine *mines.Engine) {
	cells := engine.Cells()
	for row := 0; row < 5; row++ {
		for col := 0; col < 5; col++ {
			i := row*5 + col
			switch {
			case !cells[i].Revealed:
				fmt.Printf(" %2d ", i)
			case cells[i].Mine:
				fmt.Print("  * ")
			default:
				fmt.Print("  . ")
			}
		}
		fmt.Println()
	}
}
