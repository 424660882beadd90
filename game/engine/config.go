package engine

import (
	"encoding/json"
	"fmt"
	"os"
)

// ValidateGameConfig validates a game configuration for correctness and playability
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is required")
	}

	// Validate required fields
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}

	// Validate table size
	if config.TableSize < MinTableSize || config.TableSize > MaxTableSize {
		return fmt.Errorf("config validation: table_size must be between %d and %d, got %d", MinTableSize, MaxTableSize, config.TableSize)
	}
	if config.TableSize%DealSize != 0 {
		return fmt.Errorf("config validation: table_size must be a multiple of %d, got %d", DealSize, config.TableSize)
	}

	// Validate messages
	if config.Messages.Welcome == "" {
		return fmt.Errorf("config validation: messages.welcome is required")
	}
	if config.Messages.Match == "" {
		return fmt.Errorf("config validation: messages.match is required")
	}
	if config.Messages.Mismatch == "" {
		return fmt.Errorf("config validation: messages.mismatch is required")
	}
	if config.Messages.GameOver == "" {
		return fmt.Errorf("config validation: messages.game_over is required")
	}

	return nil
}

// DefaultGameConfig returns the classic twelve-card variant
func DefaultGameConfig() *GameConfig {
	config := &GameConfig{
		Name:        "classic",
		Description: "Classic Set: twelve cards on the table, three more on demand",
		TableSize:   DefaultTableSize,
	}
	config.Messages.Welcome = "Find three cards where every attribute is all the same or all different."
	config.Messages.NewGame = "New game dealt. Good luck!"
	config.Messages.Match = "Set! Tap another card or deal to replace it."
	config.Messages.Mismatch = "Not a set. Tap any card to start over."
	config.Messages.Deal = "Three more cards dealt."
	config.Messages.DealEmpty = "The draw pile is empty."
	config.Messages.Shuffle = "Table shuffled."
	config.Messages.GameOver = "No sets left. Game over!"
	return config
}

// LoadGameConfig loads a game configuration from a JSON file
func LoadGameConfig(filename string) (*GameConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	// Validate the loaded configuration
	if err := ValidateGameConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
