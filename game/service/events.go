package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/wricardo/set-game/game/engine"
)

// actionEvents derives the events of an applied command from the snapshots
// taken before and after it.
func actionEvents(action engine.ActionType, before, after *engine.GameState, now time.Time) []GameEvent {
	events := []GameEvent{}
	add := func(eventType, message string, cards []engine.Card) {
		events = append(events, GameEvent{
			Type:      eventType,
			Message:   message,
			Timestamp: now,
			Cards:     cards,
		})
	}

	switch action {
	case engine.ActionNewGame:
		add(EventNewGame, fmt.Sprintf("Game %d dealt with %d cards", after.GameNumber, len(after.Visible)), after.Visible)
		if after.GameOver {
			add(EventGameOver, after.Message, nil)
		}
		return events
	case engine.ActionShuffle:
		add(EventShuffle, "Table shuffled", nil)
		return events
	}

	if discarded := after.Discarded[min(len(before.Discarded), len(after.Discarded)):]; len(discarded) > 0 {
		add(EventDiscard, "Discarded "+describe(discarded), discarded)
	}

	if dealt := missingFrom(after.Visible, before.Visible); len(dealt) > 0 {
		add(EventDeal, fmt.Sprintf("Dealt %d card(s), %d left in the draw pile", len(dealt), after.DrawPileCount), dealt)
	}

	if deselected := missingFrom(before.Selected, after.Selected); len(deselected) > 0 {
		// Cards that left the table were discarded, not deselected
		deselected = presentIn(deselected, after.Visible)
		if len(deselected) > 0 {
			add(EventDeselected, "Deselected "+describe(deselected), deselected)
		}
	}

	if selected := missingFrom(after.Selected, before.Selected); len(selected) > 0 {
		add(EventSelected, "Selected "+describe(selected), selected)
	}

	if after.Outcome != before.Outcome {
		switch after.Outcome {
		case engine.OutcomeMatched:
			add(EventMatch, after.Message, after.Selected)
		case engine.OutcomeMismatched:
			add(EventMismatch, after.Message, after.Selected)
		}
	}

	if after.GameOver && !before.GameOver {
		add(EventGameOver, after.Message, nil)
	}

	return events
}

// missingFrom returns the cards of a whose IDs are not in b, in a's order
func missingFrom(a, b []engine.Card) []engine.Card {
	seen := make(map[engine.CardID]bool, len(b))
	for _, card := range b {
		seen[card.ID] = true
	}
	var out []engine.Card
	for _, card := range a {
		if !seen[card.ID] {
			out = append(out, card)
		}
	}
	return out
}

// presentIn returns the cards of a whose IDs are in b, in a's order
func presentIn(a, b []engine.Card) []engine.Card {
	seen := make(map[engine.CardID]bool, len(b))
	for _, card := range b {
		seen[card.ID] = true
	}
	var out []engine.Card
	for _, card := range a {
		if seen[card.ID] {
			out = append(out, card)
		}
	}
	return out
}

func describe(cards []engine.Card) string {
	names := make([]string, len(cards))
	for i, card := range cards {
		names[i] = card.String()
	}
	return strings.Join(names, ", ")
}
