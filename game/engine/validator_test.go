package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidSet(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c Card
		want    bool
	}{
		{
			name: "only count differs",
			a:    NewCard(One, Diamond, Solid, Red),
			b:    NewCard(Two, Diamond, Solid, Red),
			c:    NewCard(Three, Diamond, Solid, Red),
			want: true,
		},
		{
			name: "every attribute differs",
			a:    NewCard(One, Diamond, Solid, Red),
			b:    NewCard(Two, Squiggle, Striped, Green),
			c:    NewCard(Three, Oval, Open, Purple),
			want: true,
		},
		{
			name: "two shapes match and one differs",
			a:    NewCard(One, Diamond, Solid, Red),
			b:    NewCard(One, Diamond, Solid, Green),
			c:    NewCard(One, Oval, Solid, Purple),
			want: false,
		},
		{
			name: "two of three attributes broken",
			a:    NewCard(One, Diamond, Solid, Red),
			b:    NewCard(One, Squiggle, Solid, Red),
			c:    NewCard(One, Oval, Striped, Red),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidSet(tt.a, tt.b, tt.c))
		})
	}
}

func TestIsValidSet_OrderIndependent(t *testing.T) {
	deck := GenerateFullDeck(NewSource(1))
	for i := 0; i < len(deck); i += 5 {
		for j := i + 1; j < len(deck); j += 7 {
			for k := j + 1; k < len(deck); k += 3 {
				a, b, c := deck[i], deck[j], deck[k]
				want := IsValidSet(a, b, c)
				assert.Equal(t, want, IsValidSet(a, c, b))
				assert.Equal(t, want, IsValidSet(b, a, c))
				assert.Equal(t, want, IsValidSet(b, c, a))
				assert.Equal(t, want, IsValidSet(c, a, b))
				assert.Equal(t, want, IsValidSet(c, b, a))
			}
		}
	}
}

func TestIsValidSet_IgnoresIDs(t *testing.T) {
	a := NewCard(One, Diamond, Solid, Red)
	b := NewCard(Two, Diamond, Solid, Red)
	c := NewCard(Three, Diamond, Solid, Red)
	c2 := c
	c2.ID = NilCardID

	assert.Equal(t, IsValidSet(a, b, c), IsValidSet(a, b, c2))
}

func TestIsValidSet_ThirdCardIsUnique(t *testing.T) {
	// Any two distinct cards are completed by exactly one card of the deck
	deck := GenerateFullDeck(nil)
	for _, pair := range [][2]int{{0, 1}, {3, 40}, {17, 80}, {25, 26}} {
		completions := 0
		for k, card := range deck {
			if k == pair[0] || k == pair[1] {
				continue
			}
			if IsValidSet(deck[pair[0]], deck[pair[1]], card) {
				completions++
			}
		}
		assert.Equal(t, 1, completions, "pair %v", pair)
	}
}

func TestFindSets(t *testing.T) {
	cards := []Card{
		NewCard(One, Squiggle, Solid, Green),
		NewCard(One, Diamond, Solid, Red),
		NewCard(One, Squiggle, Solid, Purple),
		NewCard(Two, Diamond, Solid, Red),
		NewCard(Three, Diamond, Solid, Red),
	}

	sets := FindSets(cards)
	require.Len(t, sets, 1)
	assert.Equal(t, [3]int{1, 3, 4}, sets[0])
	assert.Equal(t, 1, CountSets(cards))
	assert.True(t, HasSet(cards))

	assert.Empty(t, FindSets(cards[:3]))
	assert.False(t, HasSet(cards[:3]))
	assert.False(t, HasSet(nil))
}

func TestFindSets_FullDeck(t *testing.T) {
	// 81 * 80 / 3! pairs, each completed by exactly one third card
	assert.Equal(t, 1080, CountSets(GenerateFullDeck(nil)))
}
