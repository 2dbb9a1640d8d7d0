package games

import (
	"fmt"
	"sort"
	"strings"
)

// Roll pairs a die position with the value it showed.
type Roll struct {
	Index int
	Die   Die
	Value int
}

func (r Roll) String() string {
	return fmt.Sprintf("#%d %s=%d", r.Index, r.Die, r.Value)
}

// Rolls renders as a comma separated list.
type Rolls []Roll

func (rs Rolls) String() string {
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = r.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Round records every step of one resolution.
type Round struct {
	First      Rolls
	Groups     map[int][]int // value -> ascending indices
	Eliminated []int
	Survivors  []int
	Final      Rolls
	Sum        int
	Win        bool
}

// Game holds the dice and target for a whole simulation run. It is read-only
// after construction and safe for concurrent use with separate sources.
type Game struct {
	dice   Dice
	target int
}

// NewGame creates a game. Every die must have been built through NewDie; an
// invalid die here is a programming error and panics.
func NewGame(dice Dice, target int) *Game {
	for i, d := range dice {
		if !d.Valid() {
			panic(fmt.Sprintf("games: die %d has unsupported face count %d", i, d.sides))
		}
	}
	owned := make(Dice, len(dice))
	copy(owned, dice)
	return &Game{dice: owned, target: target}
}

// Dice returns a copy of the game's dice.
func (g *Game) Dice() Dice {
	out := make(Dice, len(g.dice))
	copy(out, g.dice)
	return out
}

// Target returns the score a round must reach to win.
func (g *Game) Target() int {
	return g.target
}

// Play resolves one round and reports whether it was won.
func (g *Game) Play(src Source) bool {
	n := len(g.dice)
	if n == 0 {
		return 0 >= g.target
	}

	var firstBuf, eliminatedBuf [32]int
	first := firstBuf[:0]
	if n > len(firstBuf) {
		first = make([]int, 0, n)
	}
	for _, d := range g.dice {
		first = append(first, d.Roll(src))
	}

	eliminated := eliminatedBuf[:0]
	if n > len(eliminatedBuf) {
		eliminated = make([]int, 0, n)
	}
	eliminated = g.eliminate(first, eliminated)

	sum := 0
	for i, d := range g.dice {
		if containsIndex(eliminated, i) {
			continue
		}
		sum += d.Roll(src)
	}
	return sum >= g.target
}

// Resolve plays one round like Play and returns the full record.
func (g *Game) Resolve(src Source) Round {
	round := Round{
		First:  make(Rolls, len(g.dice)),
		Groups: make(map[int][]int),
	}

	values := make([]int, len(g.dice))
	for i, d := range g.dice {
		values[i] = d.Roll(src)
		round.First[i] = Roll{Index: i, Die: d, Value: values[i]}
		round.Groups[values[i]] = append(round.Groups[values[i]], i)
	}

	round.Eliminated = g.eliminate(values, make([]int, 0, len(g.dice)))

	for i, d := range g.dice {
		if containsIndex(round.Eliminated, i) {
			continue
		}
		round.Survivors = append(round.Survivors, i)
		r := Roll{Index: i, Die: d, Value: d.Roll(src)}
		round.Final = append(round.Final, r)
		round.Sum += r.Value
	}

	round.Win = round.Sum >= g.target
	return round
}

// maxSides bounds every rolled value, see ValidSides.
const maxSides = 20

// eliminate appends to dst, in ascending order, the index removed from every
// value group: the sole member of a unique value, otherwise the member with
// the fewest faces (lowest index on ties).
func (g *Game) eliminate(values []int, dst []int) []int {
	// picks[v] holds 1 + the index chosen for value v, 0 while v is unseen.
	var picks [maxSides + 1]int
	for i, v := range values {
		p := picks[v]
		if p == 0 || g.dice[i].sides < g.dice[p-1].sides {
			picks[v] = i + 1
		}
	}
	for _, p := range picks {
		if p != 0 {
			dst = append(dst, p-1)
		}
	}
	sort.Ints(dst)
	return dst
}

func containsIndex(sorted []int, idx int) bool {
	i := sort.SearchInts(sorted, idx)
	return i < len(sorted) && sorted[i] == idx
}
