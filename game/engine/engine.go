package engine

import (
	"time"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Commands
	NewGame() *GameState
	Choose(id CardID) bool
	ChooseAt(position int) bool
	DealThreeMore() bool
	ShuffleVisible()

	// Queries
	DrawPileCount() int
	VisibleCards() []Card
	DiscardedCards() []Card
	SelectedCards() []Card
	SelectionOutcome() SelectionOutcome
	Snapshot() *GameState
	Hint() []Card
	IsGameOver() bool

	// Configuration
	GetConfig() *GameConfig

	// History
	GetActionHistory() []ActionEntry
	GetLastAction() *ActionEntry
}

// GameEngine implements the Engine interface. The draw pile, the table, the
// discard pile and the selection are only reachable through its methods so
// that every card stays in exactly one pile.
type GameEngine struct {
	config *GameConfig
	source *Source

	drawPile  []Card
	visible   []Card
	discard   []Card
	selection Selection

	message    string
	gameNumber int
	history    []ActionEntry
}

// NewEngine creates a new game engine with the provided configuration and
// deals the first table.
func NewEngine(config *GameConfig) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}
	return newEngine(config, NewSource(config.Seed)), nil
}

// NewEngineWithSource creates an engine that draws all randomness from source
func NewEngineWithSource(config *GameConfig, source *Source) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}
	return newEngine(config, source), nil
}

// NewEngineWithDefaults creates a new game engine with the classic configuration
func NewEngineWithDefaults() *GameEngine {
	config := DefaultGameConfig()
	return newEngine(config, NewSource(config.Seed))
}

func newEngine(config *GameConfig, source *Source) *GameEngine {
	e := &GameEngine{
		config: config,
		source: source,
	}
	e.start()
	e.message = config.Messages.Welcome
	return e
}

// start throws away the current game and deals a fresh one
func (e *GameEngine) start() {
	deck := GenerateFullDeck(e.source)
	e.source.Shuffle(deck)

	e.drawPile = deck
	e.visible = make([]Card, 0, e.config.TableSize)
	e.discard = []Card{}
	e.selection.Clear()
	e.gameNumber++

	e.dealInitial()
}

// dealInitial moves up to TableSize cards from the front of the draw pile to the table
func (e *GameEngine) dealInitial() {
	e.visible = append(e.visible, e.draw(e.config.TableSize)...)
}

// draw removes up to n cards from the front of the draw pile
func (e *GameEngine) draw(n int) []Card {
	if n > len(e.drawPile) {
		n = len(e.drawPile)
	}
	drawn := make([]Card, n)
	copy(drawn, e.drawPile[:n])
	e.drawPile = e.drawPile[n:]
	return drawn
}

// NewGame regenerates the full deck, shuffles it and deals a new table.
// The action history is kept across games.
func (e *GameEngine) NewGame() *GameState {
	e.start()
	e.message = e.config.Messages.NewGame
	if e.message == "" {
		e.message = e.config.Messages.Welcome
	}
	e.record(ActionNewGame, NilCardID, true)
	return e.Snapshot()
}

// Choose toggles the card with the given ID. Tapping a selected card deselects
// it, except when the selection is a mismatch. Tapping a new card while a full
// triple is selected resolves the triple first: a match is discarded and
// backfilled, a mismatch is cleared, and the tapped card starts the next
// selection. A mismatched triple is also cleared when one of its own cards is
// tapped, and that card stays selected. Returns false and leaves the game
// untouched when the card is not on the table.
func (e *GameEngine) Choose(id CardID) bool {
	if e.visibleIndex(id) < 0 {
		e.record(ActionChoose, id, false)
		return false
	}

	switch e.SelectionOutcome() {
	case OutcomeMatched:
		if !e.selection.Remove(id) {
			e.resolveMatch()
			e.selection.Add(id)
		}
	case OutcomeMismatched:
		e.selection.Clear()
		e.selection.Add(id)
	default:
		if !e.selection.Remove(id) {
			e.selection.Add(id)
		}
	}

	e.message = e.outcomeMessage()
	e.record(ActionChoose, id, true)
	return true
}

// ChooseAt chooses the card at the given zero-based table position
func (e *GameEngine) ChooseAt(position int) bool {
	if position < 0 || position >= len(e.visible) {
		e.record(ActionChoose, NilCardID, false)
		return false
	}
	return e.Choose(e.visible[position].ID)
}

// DealThreeMore deals up to three cards. A pending match is discarded first and
// the new cards take the freed slots; otherwise they are appended to the table.
// Returns false and changes nothing when the draw pile is empty.
func (e *GameEngine) DealThreeMore() bool {
	if len(e.drawPile) == 0 {
		e.record(ActionDeal, NilCardID, false)
		return false
	}

	if e.SelectionOutcome() == OutcomeMatched {
		e.resolveMatch()
	} else {
		e.visible = append(e.visible, e.draw(DealSize)...)
	}

	e.message = e.config.Messages.Deal
	if e.IsGameOver() {
		e.message = e.config.Messages.GameOver
	}
	e.record(ActionDeal, NilCardID, true)
	return true
}

// ShuffleVisible reorders the table. The draw pile, the discard pile and the
// selection are untouched.
func (e *GameEngine) ShuffleVisible() {
	e.source.Shuffle(e.visible)
	if e.config.Messages.Shuffle != "" {
		e.message = e.config.Messages.Shuffle
	}
	e.record(ActionShuffle, NilCardID, true)
}

// resolveMatch moves the selected triple to the discard pile in selection order
// and fills the freed table slots from the draw pile in table order. Slots the
// draw pile cannot fill are removed.
func (e *GameEngine) resolveMatch() {
	matched := e.SelectedCards()
	e.discard = append(e.discard, matched...)

	replacements := e.draw(len(matched))
	next := 0
	table := make([]Card, 0, len(e.visible))
	for _, card := range e.visible {
		if !e.selection.Contains(card.ID) {
			table = append(table, card)
			continue
		}
		if next < len(replacements) {
			table = append(table, replacements[next])
			next++
		}
	}

	e.visible = table
	e.selection.Clear()
}

func (e *GameEngine) outcomeMessage() string {
	switch e.SelectionOutcome() {
	case OutcomeMatched:
		return e.config.Messages.Match
	case OutcomeMismatched:
		return e.config.Messages.Mismatch
	}
	if e.IsGameOver() {
		return e.config.Messages.GameOver
	}
	return ""
}

func (e *GameEngine) visibleIndex(id CardID) int {
	for i, card := range e.visible {
		if card.ID == id {
			return i
		}
	}
	return -1
}

// DrawPileCount returns the number of undealt cards
func (e *GameEngine) DrawPileCount() int {
	return len(e.drawPile)
}

// VisibleCards returns a copy of the table in display order
func (e *GameEngine) VisibleCards() []Card {
	return cloneCards(e.visible)
}

// DiscardedCards returns a copy of the discard pile, oldest first
func (e *GameEngine) DiscardedCards() []Card {
	return cloneCards(e.discard)
}

// SelectedCards returns the selected cards in selection order
func (e *GameEngine) SelectedCards() []Card {
	ids := e.selection.IDs()
	cards := make([]Card, 0, len(ids))
	for _, id := range ids {
		if i := e.visibleIndex(id); i >= 0 {
			cards = append(cards, e.visible[i])
		}
	}
	return cards
}

// SelectionOutcome classifies the current selection
func (e *GameEngine) SelectionOutcome() SelectionOutcome {
	return ClassifySelection(e.SelectedCards())
}

// Hint returns the first set on the table, or nil if there is none
func (e *GameEngine) Hint() []Card {
	sets := FindSets(e.visible)
	if len(sets) == 0 {
		return nil
	}
	first := sets[0]
	return []Card{e.visible[first[0]], e.visible[first[1]], e.visible[first[2]]}
}

// IsGameOver reports whether the draw pile is exhausted and no set is left on
// the table. A matched triple waiting to be discarded does not count.
func (e *GameEngine) IsGameOver() bool {
	if len(e.drawPile) > 0 {
		return false
	}
	if e.SelectionOutcome() != OutcomeMatched {
		return !HasSet(e.visible)
	}
	remaining := make([]Card, 0, len(e.visible))
	for _, card := range e.visible {
		if !e.selection.Contains(card.ID) {
			remaining = append(remaining, card)
		}
	}
	return !HasSet(remaining)
}

// Snapshot returns a copy of the current state
func (e *GameEngine) Snapshot() *GameState {
	selected := e.SelectedCards()
	return &GameState{
		DrawPileCount: len(e.drawPile),
		Visible:       cloneCards(e.visible),
		Discarded:     cloneCards(e.discard),
		Selected:      selected,
		Outcome:       ClassifySelection(selected),
		SetsOnTable:   CountSets(e.visible),
		GameOver:      e.IsGameOver(),
		Message:       e.message,
		ConfigName:    e.config.Name,
		GameNumber:    e.gameNumber,
		TotalActions:  len(e.history),
	}
}

// GetConfig returns the current game configuration
func (e *GameEngine) GetConfig() *GameConfig {
	return e.config
}

// GetActionHistory returns a copy of every recorded command, oldest first
func (e *GameEngine) GetActionHistory() []ActionEntry {
	history := make([]ActionEntry, len(e.history))
	copy(history, e.history)
	return history
}

// GetLastAction returns the last recorded command, or nil if there is none
func (e *GameEngine) GetLastAction() *ActionEntry {
	if len(e.history) == 0 {
		return nil
	}
	last := e.history[len(e.history)-1]
	return &last
}

func (e *GameEngine) record(action ActionType, id CardID, applied bool) {
	entry := ActionEntry{
		Action:        action,
		Applied:       applied,
		Outcome:       e.SelectionOutcome(),
		VisibleCount:  len(e.visible),
		DrawPileCount: len(e.drawPile),
		DiscardCount:  len(e.discard),
		Timestamp:     time.Now().Unix(),
		ActionNumber:  len(e.history) + 1,
		GameNumber:    e.gameNumber,
	}
	if id != NilCardID {
		entry.CardID = id.String()
	}
	e.history = append(e.history, entry)
}

func cloneCards(cards []Card) []Card {
	out := make([]Card, len(cards))
	copy(out, cards)
	return out
}
