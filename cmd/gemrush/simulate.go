package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"gemrush/internal/account"
	"gemrush/internal/blackjack"
	"gemrush/internal/cases"
	"gemrush/internal/events"
	"gemrush/internal/mines"
	"gemrush/internal/randutil"
)

// SimulateCmd runs bulk seeded rounds across workers and reports the
// aggregate return. Useful for eyeballing house edge.
type SimulateCmd struct {
	Game    string `kong:"arg,enum='blackjack,mines,cases',help='Game to simulate'"`
	Rounds  int    `kong:"default='1000',help='Total rounds to play'"`
	Bet     int    `kong:"default='100',help='Bet amount per round'"`
	Mines   int    `kong:"default='3',help='Mines on the grid (mines only)'"`
	Reveals int    `kong:"default='3',help='Safe reveals before cashing out (mines only)'"`
	Players int    `kong:"default='2',help='Seats per battle (cases only)'"`
	Cases   int    `kong:"default='3',help='Cases opened per player (cases only)'"`
	Workers int    `kong:"default='4',help='Parallel workers'"`
}

type simResult struct {
	rounds int
	wins   int
	net    int
}

func (c *SimulateCmd) Run(cli *CLI) error {
	app, err := newApp(cli)
	if err != nil {
		return err
	}

	workers := c.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > c.Rounds {
		workers = c.Rounds
	}

	results := make([]simResult, workers)
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		rounds := c.Rounds / workers
		if w < c.Rounds%workers {
			rounds++
		}
		seed := app.seed + int64(w)
		slot := w
		g.Go(func() error {
			result, err := c.runWorker(seed, rounds)
			if err != nil {
				return err
			}
			results[slot] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var total simResult
	for _, r := range results {
		total.rounds += r.rounds
		total.wins += r.wins
		total.net += r.net
	}

	wagered := total.rounds * c.Bet
	fmt.Printf("Game:     %s\n", c.Game)
	fmt.Printf("Rounds:   %d (seed %d)\n", total.rounds, app.seed)
	fmt.Printf("Wins:     %d (%.1f%%)\n", total.wins, 100*float64(total.wins)/float64(total.rounds))
	fmt.Printf("Wagered:  %d gems\n", wagered)
	fmt.Printf("Net:      %+d gems (%.2f%% return)\n", total.net, 100*float64(wagered+total.net)/float64(wagered))
	return nil
}

// runWorker plays rounds on its own store so workers never contend. The
// bankroll is sized so a losing streak cannot run dry mid-simulation.
func (c *SimulateCmd) runWorker(seed int64, rounds int) (simResult, error) {
	logger := log.New(io.Discard)
	bankroll := c.Bet * (rounds + 1)
	store, err := account.Open(account.NewMemoryKV(), logger, account.WithStartingBalance(bankroll))
	if err != nil {
		return simResult{}, err
	}
	rng := randutil.New(seed)
	bus := events.NewBus()

	result := simResult{rounds: rounds}
	switch c.Game {
	case "blackjack":
		engine := blackjack.NewEngine(rng, store, bus, logger)
		for i := 0; i < rounds; i++ {
			if err := c.playBlackjack(engine); err != nil {
				return simResult{}, err
			}
			switch engine.Result() {
			case blackjack.PlayerBlackjack, blackjack.PlayerWin:
				result.wins++
			}
			engine.Reset()
		}
	case "mines":
		engine := mines.NewEngine(rng, store, bus, logger)
		for i := 0; i < rounds; i++ {
			if err := c.playMines(engine, rng); err != nil {
				return simResult{}, err
			}
			if engine.Result() == mines.Win {
				result.wins++
			}
			engine.Reset()
		}
	case "cases":
		sampler, err := cases.NewSampler(cases.DefaultTiers())
		if err != nil {
			return simResult{}, err
		}
		lobby := cases.NewLobby(rng, sampler, store, bus, logger)
		localID := store.Profile().ID
		for i := 0; i < rounds; i++ {
			battle, err := lobby.Create("sim", c.Bet, c.Cases, c.Players, 0)
			if err != nil {
				return simResult{}, err
			}
			settlement, err := lobby.FillWithBots(battle.ID)
			if err != nil {
				return simResult{}, err
			}
			if winner := settlement.Winner(); winner != nil && winner.Participant.ID == localID {
				result.wins++
			}
		}
	}

	result.net = store.Balance() - bankroll
	return result, nil
}

// playBlackjack runs one round hitting on anything below hard 17
func (c *SimulateCmd) playBlackjack(engine *blackjack.Engine) error {
	if err := engine.Deal(c.Bet); err != nil {
		return err
	}
	for engine.State() == blackjack.Playing && engine.PlayerHand().Value() < 17 {
		if err := engine.Hit(); err != nil {
			return err
		}
	}
	if engine.State() == blackjack.Playing {
		if err := engine.Stand(); err != nil {
			return err
		}
	}
	for engine.State() == blackjack.DealerTurn {
		if _, err := engine.DealerStep(); err != nil {
			return err
		}
	}
	return nil
}

// playMines reveals random cells up to the target then cashes out
func (c *SimulateCmd) playMines(engine *mines.Engine, rng randutil.Source) error {
	if err := engine.Start(c.Bet, c.Mines); err != nil {
		return err
	}
	for engine.Active() && engine.RevealedSafe() < c.Reveals {
		engine.Reveal(randutil.IntN(rng, mines.GridSize))
	}
	if engine.Active() {
		if _, err := engine.Cashout(); err != nil {
			return err
		}
	}
	return nil
}
