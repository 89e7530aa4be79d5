package main

import (
	"fmt"

	"gemrush/internal/cases"
)

// BattleCmd creates a case battle, fills the remaining seats with simulated
// opponents and prints the openings.
type BattleCmd struct {
	Case    string `kong:"default='Bronze Case',help='Case preset name from the configuration'"`
	Cases   int    `kong:"default='3',help='Cases each player opens (1-10)'"`
	Players int    `kong:"default='2',help='Total seats including you (2-4)'"`
}

func (c *BattleCmd) Run(cli *CLI) error {
	app, err := newApp(cli)
	if err != nil {
		return err
	}

	preset := app.cfg.CaseByName(c.Case)
	if preset == nil {
		return fmt.Errorf("unknown case %q", c.Case)
	}

	sampler, err := cases.NewSampler(app.cfg.RewardTiers())
	if err != nil {
		return err
	}
	lobby := cases.NewLobby(app.rng, sampler, app.store, app.bus, app.logger)

	battle, err := lobby.Create("", preset.Price, c.Cases, c.Players, preset.Type)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d players x %d cases of %s (%d gems each), pot %d gems\n",
		battle.Name, battle.MaxPlayers, battle.CasesToOpen, preset.Name, battle.PricePerPlayer, battle.Pot())

	settlement, err := lobby.FillWithBots(battle.ID)
	if err != nil {
		return err
	}

	for _, opening := range settlement.Openings {
		fmt.Printf("\n%s opened:\n", opening.Participant.Name)
		for _, reward := range opening.Rewards {
			fmt.Printf("  %-10s %5d gems\n", reward.Tier.Name, reward.Value)
		}
		fmt.Printf("  final item: %d gems\n", opening.Final.Value)
	}

	if settlement.Push {
		fmt.Println("\nTie! Everyone gets their entry back.")
	} else if winner := settlement.Winner(); winner != nil {
		fmt.Printf("\n%s wins the pot of %d gems!\n", winner.Participant.Name, settlement.Pot)
	}
	fmt.Printf("Balance: %d gems\n", app.store.Balance())
	return nil
}
