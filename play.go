package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"
	"github.com/wricardo/set-game/game/config"
	"github.com/wricardo/set-game/game/engine"
)

const playHelp = `Commands:
  1 5 9     choose cards by their table number (one or more)
  d         deal three more cards
  s         shuffle the table
  h         show a set
  n         start a new game
  q         quit`

// runPlay plays a single game against the terminal
func runPlay(ctx context.Context, cmd *cli.Command) error {
	configManager, err := config.NewManager(cmd.String("config-dir"))
	if err != nil {
		return fmt.Errorf("failed to create config manager: %w", err)
	}

	loaded, err := configManager.LoadConfig(cmd.String("config"))
	if err != nil {
		return err
	}

	gameConfig := *loaded
	if seed := cmd.Int64("seed"); seed != 0 {
		gameConfig.Seed = seed
	}

	game, err := engine.NewEngine(&gameConfig)
	if err != nil {
		return err
	}

	root := cmd.Root()
	return playLoop(root.Reader, root.Writer, game)
}

// playLoop reads one command per line until quit or end of input
func playLoop(in io.Reader, out io.Writer, game *engine.GameEngine) error {
	fmt.Fprintln(out, playHelp)
	printTable(out, game.Snapshot())

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		fields := strings.Fields(strings.ToLower(scanner.Text()))
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "q", "quit", "exit":
			fmt.Fprintln(out, "Bye.")
			return nil
		case "?", "help":
			fmt.Fprintln(out, playHelp)
			continue
		case "d", "deal":
			if !game.DealThreeMore() {
				fmt.Fprintln(out, dealEmptyMessage(game.GetConfig()))
				continue
			}
		case "s", "shuffle":
			game.ShuffleVisible()
		case "n", "new":
			game.NewGame()
		case "h", "hint":
			printHint(out, game)
			continue
		default:
			if !chooseAll(out, game, fields) {
				continue
			}
		}

		printTable(out, game.Snapshot())
	}
}

// chooseAll taps each numbered card in turn. Numbers are one-based as printed.
func chooseAll(out io.Writer, game *engine.GameEngine, fields []string) bool {
	positions := make([]int, 0, len(fields))
	for _, field := range fields {
		n, err := strconv.Atoi(field)
		if err != nil {
			fmt.Fprintf(out, "Unknown command %q. Type ? for help.\n", field)
			return false
		}
		positions = append(positions, n-1)
	}

	for _, position := range positions {
		if !game.ChooseAt(position) {
			fmt.Fprintf(out, "There is no card %d on the table.\n", position+1)
		}
	}
	return true
}

func dealEmptyMessage(gameConfig *engine.GameConfig) string {
	if gameConfig.Messages.DealEmpty != "" {
		return gameConfig.Messages.DealEmpty
	}
	return "The draw pile is empty."
}

func printHint(out io.Writer, game *engine.GameEngine) {
	hint := game.Hint()
	if hint == nil {
		fmt.Fprintln(out, "No set on the table.")
		return
	}

	visible := game.VisibleCards()
	numbers := make([]string, 0, len(hint))
	for _, card := range hint {
		for i, v := range visible {
			if v.ID == card.ID {
				numbers = append(numbers, strconv.Itoa(i+1))
			}
		}
	}
	fmt.Fprintf(out, "Try %s.\n", strings.Join(numbers, ", "))
}

func printTable(out io.Writer, state *engine.GameState) {
	selected := make(map[engine.CardID]bool, len(state.Selected))
	for _, card := range state.Selected {
		selected[card.ID] = true
	}

	fmt.Fprintln(out)
	for i, card := range state.Visible {
		marker := " "
		if selected[card.ID] {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %2d. %s\n", marker, i+1, card)
	}

	fmt.Fprintf(out, "\nDraw pile: %d  Sets found: %d  Selection: %s\n",
		state.DrawPileCount, len(state.Discarded)/engine.SetSize, state.Outcome)
	if state.Message != "" {
		fmt.Fprintln(out, state.Message)
	}
	if state.GameOver {
		fmt.Fprintln(out, "Type n for a new game or q to quit.")
	}
}
