package games

import (
	"errors"
	"math"
	"testing"

	"github.com/MJE43/dicegame/internal/engine"
)

func TestNewDie(t *testing.T) {
	tests := []struct {
		sides   int
		wantErr bool
	}{
		{4, false},
		{6, false},
		{8, false},
		{10, false},
		{12, false},
		{20, false},
		{0, true},
		{1, true},
		{7, true},
		{100, true},
		{-6, true},
	}

	for _, tt := range tests {
		d, err := NewDie(tt.sides)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidSides) {
				t.Errorf("NewDie(%d) error = %v, want ErrInvalidSides", tt.sides, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("NewDie(%d) unexpected error: %v", tt.sides, err)
			continue
		}
		if d.Sides() != tt.sides {
			t.Errorf("NewDie(%d).Sides() = %d", tt.sides, d.Sides())
		}
	}
}

func TestMustDiePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustDie(7) did not panic")
		}
	}()
	MustDie(7)
}

func TestDieRollRange(t *testing.T) {
	bg := engine.NewByteGenerator("range_server", "range_client", 1, 0)

	for _, sides := range ValidSides {
		d := MustDie(sides)
		for i := 0; i < 5000; i++ {
			v := d.Roll(bg)
			if v < 1 || v > sides {
				t.Fatalf("%s rolled %d, out of range [1, %d]", d, v, sides)
			}
		}
	}
}

func TestDieRollEdges(t *testing.T) {
	d := MustDie(6)
	if v := d.Roll(&scriptedSource{floats: []float64{0}}); v != 1 {
		t.Errorf("float 0 rolled %d, want 1", v)
	}
	if v := d.Roll(&scriptedSource{floats: []float64{math.Nextafter(1, 0)}}); v != 6 {
		t.Errorf("float just below 1 rolled %d, want 6", v)
	}
}

func TestDieRollUniform(t *testing.T) {
	const trials = 60000
	bg := engine.NewByteGenerator("uniform_server", "uniform_client", 1, 0)

	for _, sides := range ValidSides {
		d := MustDie(sides)
		counts := make([]int, sides+1)
		for i := 0; i < trials; i++ {
			counts[d.Roll(bg)]++
		}

		// chi-square against uniform; the 0.999 quantile for 19 degrees of
		// freedom is about 43.8, the largest among the valid face counts
		expected := float64(trials) / float64(sides)
		chi := 0.0
		for v := 1; v <= sides; v++ {
			diff := float64(counts[v]) - expected
			chi += diff * diff / expected
		}
		if chi > 45 {
			t.Errorf("%s chi-square = %.2f, distribution looks non-uniform: %v", d, chi, counts[1:])
		}
	}
}

func TestDiceString(t *testing.T) {
	tests := []struct {
		dice Dice
		want string
	}{
		{nil, ""},
		{MustDice(6), "d6"},
		{MustDice(4, 6, 8, 10, 10, 12, 20), "d4, d6, d8, d10, d10, d12, d20"},
	}

	for _, tt := range tests {
		if got := tt.dice.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestNewDiceRejectsInvalid(t *testing.T) {
	if _, err := NewDice(4, 7); !errors.Is(err, ErrInvalidSides) {
		t.Errorf("NewDice(4, 7) error = %v, want ErrInvalidSides", err)
	}
}
