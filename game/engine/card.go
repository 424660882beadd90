package engine

import (
	"fmt"

	"github.com/google/uuid"
)

// Count is the number of symbols printed on a card
type Count string

const (
	One   Count = "one"
	Two   Count = "two"
	Three Count = "three"
)

// Shape is the symbol printed on a card
type Shape string

const (
	Diamond  Shape = "diamond"
	Squiggle Shape = "squiggle"
	Oval     Shape = "oval"
)

// Shading is the fill of the symbols
type Shading string

const (
	Solid   Shading = "solid"
	Striped Shading = "striped"
	Open    Shading = "open"
)

// Color is the ink color of the symbols
type Color string

const (
	Red    Color = "red"
	Green  Color = "green"
	Purple Color = "purple"
)

// AllCounts returns every Count in generation order
func AllCounts() []Count { return []Count{One, Two, Three} }

// AllShapes returns every Shape in generation order
func AllShapes() []Shape { return []Shape{Diamond, Squiggle, Oval} }

// AllShadings returns every Shading in generation order
func AllShadings() []Shading { return []Shading{Solid, Striped, Open} }

// AllColors returns every Color in generation order
func AllColors() []Color { return []Color{Red, Green, Purple} }

// IsValid reports whether c is one of the three counts
func (c Count) IsValid() bool { return c == One || c == Two || c == Three }

// IsValid reports whether s is one of the three shapes
func (s Shape) IsValid() bool { return s == Diamond || s == Squiggle || s == Oval }

// IsValid reports whether s is one of the three shadings
func (s Shading) IsValid() bool { return s == Solid || s == Striped || s == Open }

// IsValid reports whether c is one of the three colors
func (c Color) IsValid() bool { return c == Red || c == Green || c == Purple }

// CardID identifies a card for its whole lifetime, independent of its attributes
// and of its position on the table.
type CardID = uuid.UUID

// NilCardID is the zero CardID; no dealt card ever carries it
var NilCardID = uuid.Nil

// ParseCardID parses the string form of a CardID
func ParseCardID(s string) (CardID, error) {
	return uuid.Parse(s)
}

// Card is an immutable combination of the four attributes.
// Cards are compared by ID when tracking collections and the selection;
// SameAttributes compares the attribute tuple.
type Card struct {
	ID      CardID  `json:"id"`
	Count   Count   `json:"count"`
	Shape   Shape   `json:"shape"`
	Shading Shading `json:"shading"`
	Color   Color   `json:"color"`
}

// NewCard builds a card with a freshly generated ID
func NewCard(count Count, shape Shape, shading Shading, color Color) Card {
	return Card{
		ID:      uuid.New(),
		Count:   count,
		Shape:   shape,
		Shading: shading,
		Color:   color,
	}
}

// SameAttributes reports whether both cards carry the same four attribute values
func (c Card) SameAttributes(other Card) bool {
	return c.Count == other.Count &&
		c.Shape == other.Shape &&
		c.Shading == other.Shading &&
		c.Color == other.Color
}

// String renders the card the way a player reads it, e.g. "two red striped ovals"
func (c Card) String() string {
	shape := string(c.Shape)
	if c.Count != One {
		shape += "s"
	}
	return fmt.Sprintf("%s %s %s %s", c.Count, c.Color, c.Shading, shape)
}
