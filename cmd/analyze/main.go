// Command analyze plays seeded games with a fixed policy and prints
// statistics about a configuration: how often the table holds no set, how
// many extra deals a game needs and how many cards are left at the end.
//
// The policy always takes the first set FindSets reports and deals three more
// cards only when the table has none.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"github.com/wricardo/set-game/game/config"
	"github.com/wricardo/set-game/game/engine"
)

// GameStats describes one simulated game
type GameStats struct {
	Seed        int64
	SetsFound   int
	ExtraDeals  int
	Tables      int // tables inspected while cards were left to deal
	NoSetTables int
	MaxVisible  int
	Leftover    int
}

// Summary aggregates GameStats over many games
type Summary struct {
	Config       string
	Games        int
	TotalSets    int
	TotalDeals   int
	Tables       int
	NoSetTables  int
	TotalLeft    int
	Cleared      int
	MaxVisible   int
	MostLeftover int
}

// Add folds one game into the summary
func (s *Summary) Add(g GameStats) {
	s.Games++
	s.TotalSets += g.SetsFound
	s.TotalDeals += g.ExtraDeals
	s.Tables += g.Tables
	s.NoSetTables += g.NoSetTables
	s.TotalLeft += g.Leftover
	if g.Leftover == 0 {
		s.Cleared++
	}
	if g.MaxVisible > s.MaxVisible {
		s.MaxVisible = g.MaxVisible
	}
	if g.Leftover > s.MostLeftover {
		s.MostLeftover = g.Leftover
	}
}

func ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}

// simulate plays one game to the end with the given seed
func simulate(base *engine.GameConfig, seed int64) (GameStats, error) {
	gameConfig := *base
	gameConfig.Seed = seed

	game, err := engine.NewEngine(&gameConfig)
	if err != nil {
		return GameStats{}, err
	}

	stats := GameStats{Seed: seed}
	for !game.IsGameOver() {
		if len(game.VisibleCards()) > stats.MaxVisible {
			stats.MaxVisible = len(game.VisibleCards())
		}

		if game.SelectionOutcome() == engine.OutcomeMatched {
			if !resolveMatch(game) {
				break
			}
			continue
		}

		hint := game.Hint()
		if game.DrawPileCount() > 0 {
			stats.Tables++
		}

		if hint == nil {
			stats.NoSetTables++
			stats.ExtraDeals++
			game.DealThreeMore()
			continue
		}

		for _, card := range hint {
			game.Choose(card.ID)
		}
		stats.SetsFound++
	}

	stats.Leftover = len(game.VisibleCards())
	if game.SelectionOutcome() == engine.OutcomeMatched {
		// the last set is found but still on the table
		stats.Leftover -= engine.SetSize
	}
	return stats, nil
}

// resolveMatch clears a matched selection. With cards left to deal the set is
// replaced; otherwise tapping and untapping another card discards it.
func resolveMatch(game *engine.GameEngine) bool {
	if game.DrawPileCount() > 0 {
		return game.DealThreeMore()
	}

	selected := make(map[engine.CardID]bool)
	for _, card := range game.SelectedCards() {
		selected[card.ID] = true
	}
	for _, card := range game.VisibleCards() {
		if !selected[card.ID] {
			game.Choose(card.ID)
			game.Choose(card.ID)
			return true
		}
	}
	return false
}

// analyze runs games seeded firstSeed, firstSeed+1, ...
func analyze(gameConfig *engine.GameConfig, games int, firstSeed int64) (Summary, error) {
	summary := Summary{Config: gameConfig.Name}
	for i := 0; i < games; i++ {
		stats, err := simulate(gameConfig, firstSeed+int64(i))
		if err != nil {
			return summary, err
		}
		summary.Add(stats)
	}
	return summary, nil
}

func printSummary(out io.Writer, s Summary) {
	fmt.Fprintf(out, "\n=== Analyzing %s (%d games) ===\n", s.Config, s.Games)
	fmt.Fprintf(out, "Sets found per game:      %.2f\n", ratio(s.TotalSets, s.Games))
	fmt.Fprintf(out, "Extra deals per game:     %.2f\n", ratio(s.TotalDeals, s.Games))
	fmt.Fprintf(out, "Tables without a set:     %d/%d (%.2f%%)\n", s.NoSetTables, s.Tables, 100*ratio(s.NoSetTables, s.Tables))
	fmt.Fprintf(out, "Largest table:            %d cards\n", s.MaxVisible)
	fmt.Fprintf(out, "Cards left at game end:   %.2f (max %d)\n", ratio(s.TotalLeft, s.Games), s.MostLeftover)
	fmt.Fprintf(out, "Games cleared completely: %d/%d\n", s.Cleared, s.Games)
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "analyze",
		Usage: "Simulate seeded games and report table statistics",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "Directory containing game configurations",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.StringSliceFlag{
				Name:  "config",
				Usage: "Configuration to analyze (repeatable, default: all)",
			},
			&cli.IntFlag{
				Name:  "games",
				Value: 100,
				Usage: "Number of games per configuration",
			},
			&cli.Int64Flag{
				Name:  "seed",
				Value: 1,
				Usage: "Seed of the first game",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			games := cmd.Int("games")
			if games <= 0 {
				return fmt.Errorf("--games must be positive, got %d", games)
			}

			manager, err := config.NewManager(cmd.String("config-dir"))
			if err != nil {
				return err
			}

			names := cmd.StringSlice("config")
			if len(names) == 0 {
				infos, err := manager.ListConfigs()
				if err != nil {
					return err
				}
				for _, info := range infos {
					names = append(names, info.ConfigID)
				}
			}

			out := cmd.Root().Writer
			for _, name := range names {
				gameConfig, err := manager.LoadConfig(name)
				if err != nil {
					return err
				}
				summary, err := analyze(gameConfig, games, cmd.Int64("seed"))
				if err != nil {
					return err
				}
				printSummary(out, summary)
			}
			return nil
		},
	}
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
