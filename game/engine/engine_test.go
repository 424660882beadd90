package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestConfig() *GameConfig {
	config := DefaultGameConfig()
	config.Name = "Engine Test Config"
	config.Description = "Configuration for engine integration tests"
	config.Seed = 42
	return config
}

// pick returns the card of deck with the given attributes
func pick(t *testing.T, deck []Card, count Count, shape Shape, shading Shading, color Color) Card {
	t.Helper()
	for _, card := range deck {
		if card.Count == count && card.Shape == shape && card.Shading == shading && card.Color == color {
			return card
		}
	}
	t.Fatalf("no %s %s %s %s card in deck", count, color, shading, shape)
	return Card{}
}

// without returns deck minus the given cards, order preserved
func without(deck []Card, cards ...Card) []Card {
	out := make([]Card, 0, len(deck))
	for _, card := range deck {
		skip := false
		for _, c := range cards {
			if c.ID == card.ID {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, card)
		}
	}
	return out
}

// fixture is a hand-dealt game: a known set, a known non-set and filler cards
type fixture struct {
	deck     []Card
	setA     Card
	setB     Card
	setC     Card
	badA     Card
	badB     Card
	badC     Card
	leftover []Card
}

func newFixture(t *testing.T) fixture {
	deck := GenerateFullDeck(NewSource(7))
	f := fixture{deck: deck}
	f.setA = pick(t, deck, One, Diamond, Solid, Red)
	f.setB = pick(t, deck, Two, Diamond, Solid, Red)
	f.setC = pick(t, deck, Three, Diamond, Solid, Red)
	f.badA = pick(t, deck, One, Squiggle, Solid, Green)
	f.badB = pick(t, deck, One, Squiggle, Solid, Purple)
	f.badC = pick(t, deck, One, Oval, Striped, Green)
	f.leftover = without(deck, f.setA, f.setB, f.setC, f.badA, f.badB, f.badC)
	return f
}

// table returns a twelve-card table with the set spread over positions 1, 3 and 5
// and the non-set over positions 6, 8 and 10
func (f fixture) table() []Card {
	fill := f.leftover
	return []Card{
		fill[0], f.setA, fill[1], f.setB, fill[2], f.setC,
		f.badA, fill[3], f.badB, fill[4], f.badC, fill[5],
	}
}

// drawPile returns n cards not on the table
func (f fixture) drawPile(n int) []Card {
	return cloneCards(f.leftover[6 : 6+n])
}

func newTestEngine(t *testing.T, visible, drawPile []Card) *GameEngine {
	t.Helper()
	e, err := NewEngineWithSource(createTestConfig(), NewSource(42))
	require.NoError(t, err)
	e.visible = cloneCards(visible)
	e.drawPile = cloneCards(drawPile)
	e.discard = []Card{}
	e.selection.Clear()
	return e
}

func ids(cards []Card) []CardID {
	out := make([]CardID, len(cards))
	for i, card := range cards {
		out[i] = card.ID
	}
	return out
}

func TestNewEngine(t *testing.T) {
	e, err := NewEngine(createTestConfig())
	require.NoError(t, err)
	require.NotNil(t, e)

	assert.Len(t, e.VisibleCards(), DefaultTableSize)
	assert.Equal(t, DeckSize-DefaultTableSize, e.DrawPileCount())
	assert.Empty(t, e.DiscardedCards())
	assert.Empty(t, e.SelectedCards())
	assert.Equal(t, OutcomeNone, e.SelectionOutcome())
	assert.Equal(t, e.config.Messages.Welcome, e.Snapshot().Message)
	assert.Empty(t, e.GetActionHistory(), "construction is not a recorded action")
}

func TestNewEngine_InvalidConfig(t *testing.T) {
	config := createTestConfig()
	config.Name = ""

	_, err := NewEngine(config)
	assert.Error(t, err)

	_, err = NewEngine(nil)
	assert.Error(t, err)
}

func TestNewEngineWithDefaults(t *testing.T) {
	e := NewEngineWithDefaults()
	require.NotNil(t, e)
	assert.Equal(t, "classic", e.GetConfig().Name)
	assert.Len(t, e.VisibleCards(), DefaultTableSize)
}

func TestEngine_UniverseCompleteness(t *testing.T) {
	e, err := NewEngine(createTestConfig())
	require.NoError(t, err)

	check := func() {
		t.Helper()
		all := append(append(e.VisibleCards(), e.DiscardedCards()...), cloneCards(e.drawPile)...)
		require.Len(t, all, DeckSize)

		seenIDs := make(map[CardID]bool)
		seenAttrs := make(map[Card]bool)
		for _, card := range all {
			assert.False(t, seenIDs[card.ID], "duplicate id %s", card.ID)
			seenIDs[card.ID] = true

			attrs := card
			attrs.ID = NilCardID
			assert.False(t, seenAttrs[attrs], "duplicate attributes %s", card)
			seenAttrs[attrs] = true
		}
		assert.Len(t, seenAttrs, DeckSize)

		for _, selected := range e.SelectedCards() {
			assert.GreaterOrEqual(t, e.visibleIndex(selected.ID), 0, "selected card must be on the table")
		}
	}

	check()
	e.NewGame()
	check()

	// Play a while with hints and deals; the partition must hold after every command
	for i := 0; i < 40 && !e.IsGameOver(); i++ {
		if hint := e.Hint(); hint != nil {
			for _, card := range hint {
				e.Choose(card.ID)
			}
		}
		e.DealThreeMore()
		check()
	}
}

func TestEngine_NewGameResetsPiles(t *testing.T) {
	e, err := NewEngine(createTestConfig())
	require.NoError(t, err)

	before := ids(e.VisibleCards())
	e.ChooseAt(0)
	e.DealThreeMore()

	state := e.NewGame()
	assert.Len(t, state.Visible, DefaultTableSize)
	assert.Equal(t, DeckSize-DefaultTableSize, state.DrawPileCount)
	assert.Empty(t, state.Discarded)
	assert.Empty(t, state.Selected)
	assert.Equal(t, OutcomeNone, state.Outcome)
	assert.Equal(t, 2, state.GameNumber)
	assert.NotEqual(t, before, ids(state.Visible), "new game mints new cards")

	last := e.GetLastAction()
	require.NotNil(t, last)
	assert.Equal(t, ActionNewGame, last.Action)
	assert.Len(t, e.GetActionHistory(), 3, "history is kept across games")
}

func TestEngine_DealInitial_ShortDrawPile(t *testing.T) {
	f := newFixture(t)
	e := newTestEngine(t, nil, f.drawPile(5))

	e.dealInitial()
	assert.Len(t, e.VisibleCards(), 5)
	assert.Equal(t, 0, e.DrawPileCount())

	e = newTestEngine(t, nil, f.drawPile(20))
	e.dealInitial()
	assert.Len(t, e.VisibleCards(), DefaultTableSize)
	assert.Equal(t, 8, e.DrawPileCount())
	assert.Equal(t, ids(f.drawPile(12)), ids(e.VisibleCards()), "deal preserves draw order")
}

func TestEngine_SeededGamesAreReproducible(t *testing.T) {
	a, err := NewEngine(createTestConfig())
	require.NoError(t, err)
	b, err := NewEngine(createTestConfig())
	require.NoError(t, err)

	assert.Equal(t, a.VisibleCards(), b.VisibleCards())
	assert.Equal(t, a.drawPile, b.drawPile)

	a.ShuffleVisible()
	b.ShuffleVisible()
	assert.Equal(t, a.VisibleCards(), b.VisibleCards())
}

func TestEngine_ChooseToggles(t *testing.T) {
	f := newFixture(t)
	e := newTestEngine(t, f.table(), f.drawPile(9))

	require.True(t, e.Choose(f.setA.ID))
	assert.Equal(t, []CardID{f.setA.ID}, ids(e.SelectedCards()))
	assert.Equal(t, OutcomePending, e.SelectionOutcome())

	require.True(t, e.Choose(f.setB.ID))
	assert.Equal(t, OutcomePending, e.SelectionOutcome())

	require.True(t, e.Choose(f.setA.ID))
	assert.Equal(t, []CardID{f.setB.ID}, ids(e.SelectedCards()))

	require.True(t, e.Choose(f.setB.ID))
	assert.Empty(t, e.SelectedCards())
	assert.Equal(t, OutcomeNone, e.SelectionOutcome())
}

func TestEngine_ChooseUnknownCardIsNoOp(t *testing.T) {
	f := newFixture(t)
	e := newTestEngine(t, f.table(), f.drawPile(9))
	e.Choose(f.setA.ID)

	before := e.Snapshot()

	// A card still in the draw pile, a discarded one, and one never dealt
	assert.False(t, e.Choose(f.drawPile(1)[0].ID))
	assert.False(t, e.Choose(NewCard(One, Oval, Open, Green).ID))
	assert.False(t, e.Choose(NilCardID))
	assert.False(t, e.ChooseAt(-1))
	assert.False(t, e.ChooseAt(len(before.Visible)))

	after := e.Snapshot()
	assert.Equal(t, before.Visible, after.Visible)
	assert.Equal(t, before.Selected, after.Selected)
	assert.Equal(t, before.Discarded, after.Discarded)
	assert.Equal(t, before.DrawPileCount, after.DrawPileCount)

	last := e.GetLastAction()
	require.NotNil(t, last)
	assert.False(t, last.Applied)
}

func TestEngine_ChooseAt(t *testing.T) {
	f := newFixture(t)
	e := newTestEngine(t, f.table(), f.drawPile(9))

	require.True(t, e.ChooseAt(1))
	assert.Equal(t, []CardID{f.setA.ID}, ids(e.SelectedCards()))
}

func TestEngine_MatchResolution(t *testing.T) {
	f := newFixture(t)
	pile := f.drawPile(9)
	e := newTestEngine(t, f.table(), pile)
	table := f.table()

	e.Choose(f.setA.ID)
	e.Choose(f.setB.ID)
	e.Choose(f.setC.ID)
	require.Equal(t, OutcomeMatched, e.SelectionOutcome())
	assert.Equal(t, e.config.Messages.Match, e.Snapshot().Message)

	// Nothing moves until the next command
	assert.Len(t, e.VisibleCards(), 12)
	assert.Empty(t, e.DiscardedCards())

	fourth := table[0]
	require.True(t, e.Choose(fourth.ID))

	assert.Equal(t, []CardID{f.setA.ID, f.setB.ID, f.setC.ID}, ids(e.DiscardedCards()))
	assert.Equal(t, []CardID{fourth.ID}, ids(e.SelectedCards()))
	assert.Equal(t, OutcomePending, e.SelectionOutcome())
	assert.Equal(t, 6, e.DrawPileCount())

	// Freed slots are backfilled in place, in draw order
	visible := e.VisibleCards()
	require.Len(t, visible, 12)
	assert.Equal(t, pile[0].ID, visible[1].ID)
	assert.Equal(t, pile[1].ID, visible[3].ID)
	assert.Equal(t, pile[2].ID, visible[5].ID)
	assert.Equal(t, table[6].ID, visible[6].ID)
}

func TestEngine_MatchResolution_EmptyDrawPile(t *testing.T) {
	f := newFixture(t)
	e := newTestEngine(t, f.table(), nil)
	table := f.table()

	e.Choose(f.setA.ID)
	e.Choose(f.setB.ID)
	e.Choose(f.setC.ID)
	require.True(t, e.Choose(table[0].ID))

	assert.Len(t, e.VisibleCards(), 9, "table shrinks when nothing is left to draw")
	assert.Len(t, e.DiscardedCards(), 3)
	assert.Equal(t, []CardID{table[0].ID}, ids(e.SelectedCards()))
	for _, card := range e.VisibleCards() {
		assert.NotEqual(t, f.setA.ID, card.ID)
	}
}

func TestEngine_MatchedCardTappedIsDeselected(t *testing.T) {
	f := newFixture(t)
	e := newTestEngine(t, f.table(), f.drawPile(9))

	e.Choose(f.setA.ID)
	e.Choose(f.setB.ID)
	e.Choose(f.setC.ID)
	require.Equal(t, OutcomeMatched, e.SelectionOutcome())

	require.True(t, e.Choose(f.setB.ID))
	assert.Equal(t, []CardID{f.setA.ID, f.setC.ID}, ids(e.SelectedCards()))
	assert.Equal(t, OutcomePending, e.SelectionOutcome())
	assert.Empty(t, e.DiscardedCards())
}

func TestEngine_MismatchResolution(t *testing.T) {
	f := newFixture(t)
	e := newTestEngine(t, f.table(), f.drawPile(9))
	table := f.table()

	e.Choose(f.badA.ID)
	e.Choose(f.badB.ID)
	e.Choose(f.badC.ID)
	require.Equal(t, OutcomeMismatched, e.SelectionOutcome())
	assert.Equal(t, e.config.Messages.Mismatch, e.Snapshot().Message)

	require.True(t, e.Choose(f.setA.ID))
	assert.Equal(t, []CardID{f.setA.ID}, ids(e.SelectedCards()))
	assert.Empty(t, e.DiscardedCards())
	assert.Equal(t, ids(table), ids(e.VisibleCards()), "mismatched cards stay where they were")
	assert.Equal(t, 9, e.DrawPileCount())
}

func TestEngine_MismatchedCardTappedStartsNewSelection(t *testing.T) {
	f := newFixture(t)
	e := newTestEngine(t, f.table(), f.drawPile(9))

	e.Choose(f.badA.ID)
	e.Choose(f.badB.ID)
	e.Choose(f.badC.ID)
	require.Equal(t, OutcomeMismatched, e.SelectionOutcome())

	require.True(t, e.Choose(f.badB.ID))
	assert.Equal(t, []CardID{f.badB.ID}, ids(e.SelectedCards()))
}

func TestEngine_DealThreeMore(t *testing.T) {
	tests := []struct {
		name         string
		pendingMatch bool
		drawPile     int
		wantVisible  int
		wantDiscard  int
		wantDrawPile int
	}{
		{name: "match pending, full draw", pendingMatch: true, drawPile: 9, wantVisible: 12, wantDiscard: 3, wantDrawPile: 6},
		{name: "match pending, short draw", pendingMatch: true, drawPile: 1, wantVisible: 10, wantDiscard: 3, wantDrawPile: 0},
		{name: "no match, full draw", pendingMatch: false, drawPile: 9, wantVisible: 15, wantDiscard: 0, wantDrawPile: 6},
		{name: "no match, short draw", pendingMatch: false, drawPile: 2, wantVisible: 14, wantDiscard: 0, wantDrawPile: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			pile := f.drawPile(tt.drawPile)
			table := f.table()
			e := newTestEngine(t, table, pile)

			if tt.pendingMatch {
				e.Choose(f.setA.ID)
				e.Choose(f.setB.ID)
				e.Choose(f.setC.ID)
			} else {
				e.Choose(f.badA.ID)
			}

			require.True(t, e.DealThreeMore())

			visible := e.VisibleCards()
			assert.Len(t, visible, tt.wantVisible)
			assert.Len(t, e.DiscardedCards(), tt.wantDiscard)
			assert.Equal(t, tt.wantDrawPile, e.DrawPileCount())

			if tt.pendingMatch {
				assert.Empty(t, e.SelectedCards())
				assert.Equal(t, []CardID{f.setA.ID, f.setB.ID, f.setC.ID}, ids(e.DiscardedCards()))
				// First freed slot gets the first drawn card
				assert.Equal(t, pile[0].ID, visible[1].ID)
			} else {
				assert.Equal(t, []CardID{f.badA.ID}, ids(e.SelectedCards()), "selection survives a top-up")
				assert.Equal(t, ids(table), ids(visible[:12]))
				assert.Equal(t, ids(pile[:tt.wantVisible-12]), ids(visible[12:]))
			}
		})
	}
}

func TestEngine_DealThreeMore_EmptyDrawPileIsNoOp(t *testing.T) {
	for _, pendingMatch := range []bool{true, false} {
		f := newFixture(t)
		e := newTestEngine(t, f.table(), nil)
		if pendingMatch {
			e.Choose(f.setA.ID)
			e.Choose(f.setB.ID)
			e.Choose(f.setC.ID)
		}

		before := e.Snapshot()
		assert.False(t, e.DealThreeMore())
		after := e.Snapshot()

		assert.Equal(t, before.Visible, after.Visible)
		assert.Equal(t, before.Discarded, after.Discarded)
		assert.Equal(t, before.Selected, after.Selected)
		assert.Equal(t, before.Message, after.Message)
	}
}

func TestEngine_ShuffleVisiblePreservesCards(t *testing.T) {
	f := newFixture(t)
	table := f.table()
	e := newTestEngine(t, table, f.drawPile(9))
	e.Choose(f.setA.ID)
	e.Choose(f.badC.ID)

	e.ShuffleVisible()

	assert.ElementsMatch(t, ids(table), ids(e.VisibleCards()))
	assert.Equal(t, []CardID{f.setA.ID, f.badC.ID}, ids(e.SelectedCards()), "selection follows ids, not positions")
	assert.Equal(t, ids(f.drawPile(9)), ids(e.drawPile))
	assert.Empty(t, e.DiscardedCards())

	// Twelve cards staying in place across ten shuffles is a 1 in 479001600^10 event
	moved := false
	for i := 0; i < 10 && !moved; i++ {
		e.ShuffleVisible()
		moved = !assert.ObjectsAreEqual(ids(table), ids(e.VisibleCards()))
	}
	assert.True(t, moved)
}

func TestEngine_SnapshotIsACopy(t *testing.T) {
	e := NewEngineWithDefaults()
	state := e.Snapshot()
	first := state.Visible[0]

	state.Visible[0] = Card{}
	state.Visible = state.Visible[:1]

	assert.Equal(t, first, e.VisibleCards()[0])
	assert.Len(t, e.VisibleCards(), DefaultTableSize)
}

func TestEngine_GameOver(t *testing.T) {
	f := newFixture(t)

	// Only the known set is left and it is matched: nothing else can be played
	e := newTestEngine(t, []Card{f.setA, f.setB, f.setC}, nil)
	assert.False(t, e.IsGameOver())
	e.Choose(f.setA.ID)
	e.Choose(f.setB.ID)
	e.Choose(f.setC.ID)
	assert.True(t, e.IsGameOver())

	// No set among the non-set and the draw pile is empty
	e = newTestEngine(t, []Card{f.badA, f.badB, f.badC}, nil)
	assert.True(t, e.IsGameOver())
	assert.True(t, e.Snapshot().GameOver)

	// Cards left to draw keep the game going
	e = newTestEngine(t, []Card{f.badA, f.badB, f.badC}, f.drawPile(3))
	assert.False(t, e.IsGameOver())
}

func TestEngine_Hint(t *testing.T) {
	f := newFixture(t)
	e := newTestEngine(t, []Card{f.badA, f.setA, f.badB, f.setB, f.setC}, nil)

	hint := e.Hint()
	require.Len(t, hint, 3)
	assert.True(t, IsValidSet(hint[0], hint[1], hint[2]))

	e = newTestEngine(t, []Card{f.badA, f.badB, f.badC}, nil)
	assert.Nil(t, e.Hint())
}

func TestEngine_ActionHistory(t *testing.T) {
	f := newFixture(t)
	e := newTestEngine(t, f.table(), f.drawPile(3))

	e.Choose(f.setA.ID)
	e.DealThreeMore()
	e.DealThreeMore()
	e.ShuffleVisible()

	history := e.GetActionHistory()
	require.Len(t, history, 4)

	assert.Equal(t, ActionChoose, history[0].Action)
	assert.Equal(t, f.setA.ID.String(), history[0].CardID)
	assert.True(t, history[0].Applied)
	assert.Equal(t, OutcomePending, history[0].Outcome)

	assert.Equal(t, ActionDeal, history[1].Action)
	assert.True(t, history[1].Applied)
	assert.Equal(t, 15, history[1].VisibleCount)

	assert.Equal(t, ActionDeal, history[2].Action)
	assert.False(t, history[2].Applied)

	assert.Equal(t, ActionShuffle, history[3].Action)
	for i, entry := range history {
		assert.Equal(t, i+1, entry.ActionNumber)
	}
	assert.Equal(t, 4, e.Snapshot().TotalActions)
}
