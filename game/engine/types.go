package engine

// ActionType names an engine command
type ActionType string

const (
	ActionNewGame ActionType = "new_game"
	ActionChoose  ActionType = "choose"
	ActionDeal    ActionType = "deal"
	ActionShuffle ActionType = "shuffle"
)

const (
	DeckSize         = 81
	SetSize          = 3
	DealSize         = 3
	DefaultTableSize = 12

	// Validation constants
	MinTableSize = 3
	MaxTableSize = 21
)

// GameConfig represents a game variant loaded from JSON
type GameConfig struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	TableSize   int    `json:"table_size"`
	Seed        int64  `json:"seed,omitempty"` // 0 draws a fresh seed per engine
	Messages    struct {
		Welcome   string `json:"welcome"`
		NewGame   string `json:"new_game"`
		Match     string `json:"match"`
		Mismatch  string `json:"mismatch"`
		Deal      string `json:"deal"`
		DealEmpty string `json:"deal_empty"`
		Shuffle   string `json:"shuffle"`
		GameOver  string `json:"game_over"`
	} `json:"messages"`
}

// GameState is a read-only snapshot of an engine. Slices are copies; mutating
// them never reaches the engine.
type GameState struct {
	DrawPileCount int              `json:"draw_pile_count"`
	Visible       []Card           `json:"visible"`
	Discarded     []Card           `json:"discarded"`
	Selected      []Card           `json:"selected"`
	Outcome       SelectionOutcome `json:"outcome"`
	SetsOnTable   int              `json:"sets_on_table"`
	GameOver      bool             `json:"game_over"`
	Message       string           `json:"message"`
	ConfigName    string           `json:"config_name"`
	GameNumber    int              `json:"game_number"`
	TotalActions  int              `json:"total_actions"`
}

// ActionEntry records a single command in the action history
type ActionEntry struct {
	Action        ActionType       `json:"action"`
	CardID        string           `json:"card_id,omitempty"`
	Applied       bool             `json:"applied"`
	Outcome       SelectionOutcome `json:"outcome"`
	VisibleCount  int              `json:"visible_count"`
	DrawPileCount int              `json:"draw_pile_count"`
	DiscardCount  int              `json:"discard_count"`
	Timestamp     int64            `json:"timestamp"`
	ActionNumber  int              `json:"action_number"`
	GameNumber    int              `json:"game_number"`
}
