package engine

import (
	crand "crypto/rand"
	"encoding/binary"
	"io"
	"math/rand/v2"

	"github.com/google/uuid"
)

// Source is the single pseudorandom stream of an engine. It shuffles cards and
// mints card IDs, so a fixed seed reproduces a whole game.
type Source struct {
	stream *rand.ChaCha8
	rng    *rand.Rand
}

// NewSource creates a Source. A zero seed draws its key from crypto/rand;
// any other seed yields a reproducible stream.
func NewSource(seed int64) *Source {
	var key [32]byte
	if seed == 0 {
		if _, err := crand.Read(key[:]); err != nil {
			binary.LittleEndian.PutUint64(key[:8], rand.Uint64())
		}
	} else {
		binary.LittleEndian.PutUint64(key[:8], uint64(seed))
	}

	stream := rand.NewChaCha8(key)
	return &Source{
		stream: stream,
		rng:    rand.New(stream),
	}
}

// Read fills p with pseudorandom bytes; it never fails
func (s *Source) Read(p []byte) (int, error) {
	return s.stream.Read(p)
}

// Shuffle permutes cards in place with Fisher-Yates. Only the positions of the
// given slice are touched, so passing a sub-slice reshuffles just that part.
func (s *Source) Shuffle(cards []Card) {
	s.rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}

// GenerateFullDeck returns the 81 cards of the cartesian product of the four
// attributes, in count, shape, shading, color order. IDs are read from ids
// when it is non-nil, otherwise they come from crypto/rand.
func GenerateFullDeck(ids io.Reader) []Card {
	deck := make([]Card, 0, DeckSize)
	for _, count := range AllCounts() {
		for _, shape := range AllShapes() {
			for _, shading := range AllShadings() {
				for _, color := range AllColors() {
					deck = append(deck, Card{
						ID:      newCardID(ids),
						Count:   count,
						Shape:   shape,
						Shading: shading,
						Color:   color,
					})
				}
			}
		}
	}
	return deck
}

func newCardID(ids io.Reader) CardID {
	if ids == nil {
		return uuid.New()
	}
	id, err := uuid.NewRandomFromReader(ids)
	if err != nil {
		return uuid.New()
	}
	return id
}
