// Command validate checks game configuration JSON files. It reports:
//   - JSON structure, including unknown keys
//   - Required fields and table size rules
//   - Required and optional message keys
//   - For seeded configurations, what the opening table looks like
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"
	"github.com/wricardo/set-game/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// Errors make the file invalid; Notes are informational and include warnings.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
	Notes  []string
}

func (r *ValidationResult) fail(format string, args ...interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *ValidationResult) note(format string, args ...interface{}) {
	r.Notes = append(r.Notes, fmt.Sprintf(format, args...))
}

// validateConfig loads and validates a single configuration JSON file
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
		Notes:  []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()

	var config engine.GameConfig
	if err := decoder.Decode(&config); err != nil {
		result.fail("Invalid JSON: %v", err)
		return result
	}

	if err := engine.ValidateGameConfig(&config); err != nil {
		result.fail("%v", err)
		return result
	}

	optionalMessages := map[string]string{
		"new_game":   config.Messages.NewGame,
		"deal":       config.Messages.Deal,
		"deal_empty": config.Messages.DealEmpty,
		"shuffle":    config.Messages.Shuffle,
	}
	for _, key := range []string{"new_game", "deal", "deal_empty", "shuffle"} {
		if optionalMessages[key] == "" {
			result.note("⚠ Optional message not set: %s", key)
		}
	}

	result.note("✓ Name: %s", config.Name)
	result.note("✓ Table: %d cards", config.TableSize)

	if config.Seed == 0 {
		result.note("✓ Seed: random per game")
		return result
	}

	result.note("✓ Seed: %d", config.Seed)
	game, err := engine.NewEngine(&config)
	if err != nil {
		result.fail("Failed to deal opening table: %v", err)
		return result
	}
	sets := engine.CountSets(game.VisibleCards())
	if sets == 0 {
		result.note("⚠ Opening table has no set")
	} else {
		result.note("✓ Opening table: %d sets", sets)
	}

	return result
}

// validateDir validates every *.json file in dir and writes a report to out.
// It returns false if any file is invalid.
func validateDir(dir string, out io.Writer) (bool, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return false, fmt.Errorf("error finding config files: %w", err)
	}
	if len(files) == 0 {
		return false, fmt.Errorf("no config files found in %s", dir)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Fprintf(out, "\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Fprintln(out, "✅ VALID")
			for _, note := range result.Notes {
				fmt.Fprintln(out, "  "+note)
			}
		} else {
			fmt.Fprintln(out, "❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				fmt.Fprintln(out, "  ❌ "+err)
			}
		}
	}

	fmt.Fprintf(out, "\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Fprintln(out, "✅ All configurations are valid!")
	} else {
		fmt.Fprintln(out, "❌ Some configurations have errors")
	}
	return allValid, nil
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "Validate game configuration files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Value:   "../configs",
				Usage:   "Directory containing game configurations",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			valid, err := validateDir(cmd.String("dir"), cmd.Root().Writer)
			if err != nil {
				return err
			}
			if !valid {
				return errors.New("some configurations have errors")
			}
			return nil
		},
	}
}

// main validates every configuration in --dir and exits non-zero if any is invalid
func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
