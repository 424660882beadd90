package engine

// IsValidSet reports whether the three cards form a set: for every attribute
// the values are either all equal or all different. The result does not
// depend on argument order.
func IsValidSet(a, b, c Card) bool {
	return sameOrDistinct(a.Count, b.Count, c.Count) &&
		sameOrDistinct(a.Shape, b.Shape, c.Shape) &&
		sameOrDistinct(a.Shading, b.Shading, c.Shading) &&
		sameOrDistinct(a.Color, b.Color, c.Color)
}

func sameOrDistinct[T comparable](x, y, z T) bool {
	if x == y {
		return y == z
	}
	return x != z && y != z
}

// FindSets returns the table positions of every valid set among cards, each
// triple in ascending order and the triples in lexicographic order.
func FindSets(cards []Card) [][3]int {
	var sets [][3]int
	n := len(cards)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			for k := j + 1; k < n; k++ {
				if IsValidSet(cards[i], cards[j], cards[k]) {
					sets = append(sets, [3]int{i, j, k})
				}
			}
		}
	}
	return sets
}

// CountSets returns how many valid sets are among cards
func CountSets(cards []Card) int {
	return len(FindSets(cards))
}

// HasSet reports whether at least one valid set is among cards
func HasSet(cards []Card) bool {
	n := len(cards)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			for k := j + 1; k < n; k++ {
				if IsValidSet(cards[i], cards[j], cards[k]) {
					return true
				}
			}
		}
	}
	return false
}
