// Package engine provides the core game logic for the Set card game.
//
// The engine package implements the game mechanics including:
//   - The card model: four independent three-valued attributes plus a stable ID
//   - Deck generation and seeded shuffling
//   - Set validation and enumeration of the sets on the table
//   - The selection tracker and its derived outcome
//   - Dealing, match resolution and table backfill
//
// Core Types:
//
// The Engine interface defines the command and query surface, implemented by
// GameEngine. GameState is the immutable snapshot handed to presentation
// layers, while GameConfig defines table size, seed and messages loaded from
// JSON files.
//
// Usage:
//
//	gameEngine, err := engine.NewEngine(engine.DefaultGameConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Pick the first three cards on the table
//	for i := 0; i < 3; i++ {
//		gameEngine.ChooseAt(i)
//	}
//	state := gameEngine.Snapshot()
//
// Game Rules:
//
// The deck holds 81 cards, one per combination of count, shape, shading and
// color. Twelve cards are dealt face up. Three cards form a set when each
// attribute is either identical on all three cards or different on all three.
// A matched set is discarded and replaced from the draw pile the next time the
// player taps a card or asks for more cards. A mismatched selection is simply
// cleared. The game is over once the draw pile is empty and no set remains on
// the table.
//
// Concurrency:
//
// GameEngine is not safe for concurrent use. Callers serialize commands, as
// the service layer does with a single mutex.
package engine
