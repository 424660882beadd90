// Package websocket provides WebSocket transport for the Set card game.
//
// The websocket package implements:
//   - Session-aware WebSocket connections
//   - Snapshot push after every command
//   - Connection lifecycle management
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. The hub's client registry is owned by its Run
// goroutine; registration, broadcasts and client counts all go through
// channels. Each client connection has a read pump and a write pump.
//
// Message Protocol:
//
// Outgoing messages are JSON documents, one per frame:
//
//	{"session_id": "ab12", "event": "state_update",
//	 "game_state": {...}, "events": [{"type": "match", ...}]}
//
// Incoming frames are ignored; commands go through the REST API.
//
// Session Integration:
//
// Clients specify their session ID via query parameter (?session=ab12) when
// establishing the connection. State updates are broadcast only to clients
// connected to the same session.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//	defer hub.Stop()
//
//	hub.BroadcastResult(sessionID, result)
package websocket
