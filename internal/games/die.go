package games

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSides is returned for a face count outside ValidSides.
var ErrInvalidSides = errors.New("invalid die type")

// ValidSides lists the supported face counts in ascending order.
var ValidSides = []int{4, 6, 8, 10, 12, 20}

// Source supplies floats in [0, 1). engine.ByteGenerator satisfies it.
type Source interface {
	NextFloat() float64
}

// Die is a single die identified only by its face count.
type Die struct {
	sides int
}

// NewDie creates a die, rejecting face counts outside ValidSides.
func NewDie(sides int) (Die, error) {
	if !isValidSides(sides) {
		return Die{}, fmt.Errorf("%w: d%d", ErrInvalidSides, sides)
	}
	return Die{sides: sides}, nil
}

// MustDie is like NewDie but panics on an invalid face count.
func MustDie(sides int) Die {
	d, err := NewDie(sides)
	if err != nil {
		panic(err)
	}
	return d
}

// Sides returns the number of faces
func (d Die) Sides() int {
	return d.sides
}

// Valid reports whether the die was built with a supported face count.
func (d Die) Valid() bool {
	return isValidSides(d.sides)
}

// Roll draws one float from src and maps it onto [1, sides].
func (d Die) Roll(src Source) int {
	return int(src.NextFloat()*float64(d.sides)) + 1
}

func (d Die) String() string {
	return fmt.Sprintf("d%d", d.sides)
}

func isValidSides(sides int) bool {
	for _, s := range ValidSides {
		if s == sides {
			return true
		}
	}
	return false
}

// Dice is an ordered collection of dice.
type Dice []Die

// NewDice builds a collection from face counts.
func NewDice(sides ...int) (Dice, error) {
	dice := make(Dice, 0, len(sides))
	for _, s := range sides {
		d, err := NewDie(s)
		if err != nil {
			return nil, err
		}
		dice = append(dice, d)
	}
	return dice, nil
}

// MustDice is like NewDice but panics on an invalid face count.
func MustDice(sides ...int) Dice {
	dice, err := NewDice(sides...)
	if err != nil {
		panic(err)
	}
	return dice
}

// Sides returns the face counts in collection order.
func (d Dice) Sides() []int {
	sides := make([]int, len(d))
	for i, die := range d {
		sides[i] = die.sides
	}
	return sides
}

func (d Dice) String() string {
	parts := make([]string, len(d))
	for i, die := range d {
		parts[i] = die.String()
	}
	return strings.Join(parts, ", ")
}
