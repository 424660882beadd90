// Package config provides configuration management for the Set card game.
//
// The config package handles:
//   - Loading game variants from JSON files
//   - Configuration validation
//   - Default configuration management
//   - Configuration discovery and listing
//
// Configuration Format:
//
// Game variants are stored as JSON files in the configs directory. Each
// variant defines:
//   - table_size: cards dealt at the start of a game (3 to 21, a multiple of 3)
//   - seed: a fixed shuffle seed, or 0 for a fresh shuffle every engine
//   - messages shown for welcome, match, mismatch, deal, shuffle and game over
//
// Available Configurations:
//   - classic: twelve cards, random deal
//   - practice: twelve cards, fixed seed so every game replays the same deck
//   - small_table: nine cards, sets are rarer
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameConfig, err := manager.LoadConfig("practice")
//	if errors.Is(err, config.ErrConfigNotFound) {
//		gameConfig = manager.GetDefault()
//	}
//
//	configs, err := manager.ListConfigs()
package config
