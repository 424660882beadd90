// Package session provides session management for the Set card game.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - Session lifecycle management
//   - Session cleanup and expiration
//
// Core Types:
//
// Manager is the session manager that handles all session operations.
// Each service.Session owns its own engine, so every player has a private
// table, draw pile and discard pile.
//
// Session Identifiers:
//
// Sessions use 4-character hex IDs for easy reference. Lookup is
// case-insensitive and generated IDs are retried on collision.
//
// Sessions live in memory only; they are gone when the process exits.
//
// Concurrency:
//
// The manager's map is guarded by a RWMutex. It does not serialize commands
// on a session's engine; that is the service layer's job.
//
// Usage:
//
//	manager := session.NewManager()
//
//	sess, err := manager.Create("", config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err = manager.Get(sessionID)
//	if errors.Is(err, session.ErrSessionNotFound) {
//		// stale ID
//	}
//
//	removed := manager.CleanupExpiredSessions(24 * time.Hour)
package session
