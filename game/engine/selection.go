package engine

// SelectionOutcome classifies the current selection
type SelectionOutcome string

const (
	OutcomeNone       SelectionOutcome = "none"
	OutcomePending    SelectionOutcome = "pending"
	OutcomeMatched    SelectionOutcome = "matched"
	OutcomeMismatched SelectionOutcome = "mismatched"
)

// Selection tracks the IDs the player has chosen, in the order they were chosen.
// It never holds more than SetSize IDs.
type Selection struct {
	ids []CardID
}

// Len returns the number of selected IDs
func (s *Selection) Len() int {
	return len(s.ids)
}

// IsComplete reports whether a full triple is selected
func (s *Selection) IsComplete() bool {
	return len(s.ids) == SetSize
}

// Contains reports whether id is selected
func (s *Selection) Contains(id CardID) bool {
	for _, selected := range s.ids {
		if selected == id {
			return true
		}
	}
	return false
}

// Add selects id. It returns false if id is already selected or the selection is full.
func (s *Selection) Add(id CardID) bool {
	if s.IsComplete() || s.Contains(id) {
		return false
	}
	s.ids = append(s.ids, id)
	return true
}

// Remove deselects id and reports whether it was selected
func (s *Selection) Remove(id CardID) bool {
	for i, selected := range s.ids {
		if selected == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the selection
func (s *Selection) Clear() {
	s.ids = nil
}

// IDs returns a copy of the selected IDs in selection order
func (s *Selection) IDs() []CardID {
	ids := make([]CardID, len(s.ids))
	copy(ids, s.ids)
	return ids
}

// ClassifySelection derives the outcome of a selection from its cards.
// Fewer than three cards are never judged.
func ClassifySelection(cards []Card) SelectionOutcome {
	switch {
	case len(cards) == 0:
		return OutcomeNone
	case len(cards) < SetSize:
		return OutcomePending
	case len(cards) == SetSize && IsValidSet(cards[0], cards[1], cards[2]):
		return OutcomeMatched
	default:
		return OutcomeMismatched
	}
}
