// Package service provides the business logic layer for the Set card game.
//
// The service package implements:
//   - Multi-session game management
//   - Configuration management and loading
//   - Command serialization and event reporting
//   - Action history paging
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager manages game configuration loading and validation.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the game engine. The engine itself has no locks, so every command goes
// through one service-wide mutex and each engine only ever sees a single
// writer. Each session owns its own engine with an independent deck.
//
// Every command returns an ActionResult: whether it was applied, the snapshot
// after it ran, and the events derived by comparing the snapshots taken before
// and after (selected, deselected, match, mismatch, discard, deal, shuffle,
// new_game, game_over, no_op).
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	sessionInfo, err := gameService.CreateSession(ctx, "classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := gameService.ChooseAt(ctx, sessionInfo.ID, 0)
//
// Errors:
//
// Lookups fail with ErrSessionNotFound or ErrConfigNotFound, malformed card
// identifiers with ErrInvalidCardID; match them with errors.Is. Commands that
// cannot apply (stale card, empty draw pile) are not errors: they come back
// with Applied set to false and a no_op event.
package service
