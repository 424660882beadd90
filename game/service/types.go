package service

import (
	"time"

	"github.com/wricardo/set-game/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	GameState      *engine.GameState  `json:"game_state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// ActionResult contains the outcome of one game command
type ActionResult struct {
	Applied   bool              `json:"applied"`
	GameState *engine.GameState `json:"game_state"`
	Message   string            `json:"message"`
	Events    []GameEvent       `json:"events"`
}

// Event types reported in ActionResult.Events
const (
	EventSelected   = "selected"
	EventDeselected = "deselected"
	EventMatch      = "match"
	EventMismatch   = "mismatch"
	EventDiscard    = "discard"
	EventDeal       = "deal"
	EventShuffle    = "shuffle"
	EventNewGame    = "new_game"
	EventGameOver   = "game_over"
	EventNoOp       = "no_op"
)

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string        `json:"type"`
	Message   string        `json:"message"`
	Timestamp time.Time     `json:"timestamp"`
	Cards     []engine.Card `json:"cards,omitempty"`
}

// HintResult names one set on the table
type HintResult struct {
	Found       bool          `json:"found"`
	Cards       []engine.Card `json:"cards,omitempty"`
	Positions   []int         `json:"positions,omitempty"` // zero-based table positions
	SetsOnTable int           `json:"sets_on_table"`
	Message     string        `json:"message"`
}

// HistoryOptions configures action history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated action history
type HistoryResponse struct {
	Actions      []engine.ActionEntry `json:"actions"`
	TotalActions int                  `json:"total_actions"`
	Page         int                  `json:"page"`
	PageSize     int                  `json:"page_size"`
	TotalPages   int                  `json:"total_pages"`
	HasNext      bool                 `json:"has_next"`
	HasPrevious  bool                 `json:"has_previous"`
}

// ConfigInfo provides information about a game configuration
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	TableSize   int    `json:"table_size"`
	Seeded      bool   `json:"seeded"`
}
