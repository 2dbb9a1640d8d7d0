// Package dicespec parses comma separated dice notation such as
// "d4,d6,2d10" into a games.Dice collection.
package dicespec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/MJE43/dicegame/internal/games"
)

// Default is the dice set used when none is given.
const Default = "d4,d6,d8,2d10,d12,d20"

// MaxDice caps the total number of dice in one specification.
const MaxDice = 1000

var (
	ErrInvalidFormat = errors.New("invalid dice format")
	ErrInvalidCount  = errors.New("invalid dice count")
	ErrInvalidSides  = errors.New("invalid dice sides")
	ErrTooManyDice   = errors.New("too many dice")
)

// List is a parsed specification, terms in input order.
type List struct {
	Terms []*Term `@@ ( "," @@ )*`
}

// Term is one "[count]d<sides>" entry. Count and Sides keep every token
// found on their side of the "d" so malformed numbers are reported as bad
// counts or sides rather than as a syntax error.
type Term struct {
	Pos lexer.Position

	Count []string `@(Int | Other)*`
	Sides []string `"d" @(Int | Other)*`
}

var specLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `\d+`},
	{Name: "Dice", Pattern: `d`},
	{Name: "Comma", Pattern: `,`},
	{Name: "Other", Pattern: `[^,\sd0-9]+`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var (
	listParser = participle.MustBuild[List](
		participle.Lexer(specLexer),
		participle.Elide("Whitespace"),
	)
	termParser = participle.MustBuild[Term](
		participle.Lexer(specLexer),
		participle.Elide("Whitespace"),
	)
)

// Parse parses a comma separated list of terms. Dice appear in term order.
func Parse(spec string) (games.Dice, error) {
	list, err := listParser.ParseString("", spec)
	if err != nil {
		return nil, formatError(spec, err)
	}

	var dice games.Dice
	for _, term := range list.Terms {
		parsed, err := term.dice(term.text(spec))
		if err != nil {
			return nil, err
		}
		if len(dice)+len(parsed) > MaxDice {
			return nil, fmt.Errorf("%w: more than %d dice in %q", ErrTooManyDice, MaxDice, spec)
		}
		dice = append(dice, parsed...)
	}
	return dice, nil
}

// ParseTerm parses a single "[count]d<sides>" term. A missing count means one
// die; a count of zero yields no dice.
func ParseTerm(term string) (games.Dice, error) {
	t, err := termParser.ParseString("", term)
	if err != nil {
		return nil, formatError(term, err)
	}
	return t.dice(strings.TrimSpace(term))
}

func formatError(input string, err error) error {
	return fmt.Errorf("%w: %q: %s, expected terms like 'd6' or '2d10'", ErrInvalidFormat, input, err)
}

// text returns the source of the term, which runs to the next comma.
func (t *Term) text(spec string) string {
	rest := spec[min(t.Pos.Offset, len(spec)):]
	if i := strings.IndexByte(rest, ','); i >= 0 {
		rest = rest[:i]
	}
	return strings.TrimSpace(rest)
}

// dice validates the term and expands it; text names it in errors.
func (t *Term) dice(text string) (games.Dice, error) {
	count := 1
	if len(t.Count) > 0 {
		if len(t.Count) > 1 {
			return nil, fmt.Errorf("%w: %q in term %q", ErrInvalidCount, strings.Join(t.Count, ""), text)
		}
		n, err := strconv.ParseUint(t.Count[0], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %q in term %q", ErrInvalidCount, t.Count[0], text)
		}
		if n > MaxDice {
			return nil, fmt.Errorf("%w: %d in term %q exceeds %d", ErrTooManyDice, n, text, MaxDice)
		}
		count = int(n)
	}

	if len(t.Sides) != 1 {
		return nil, fmt.Errorf("%w: %q in term %q", ErrInvalidSides, strings.Join(t.Sides, ""), text)
	}
	sides, err := strconv.ParseUint(t.Sides[0], 10, 8)
	if err != nil {
		return nil, fmt.Errorf("%w: %q in term %q", ErrInvalidSides, t.Sides[0], text)
	}

	die, err := games.NewDie(int(sides))
	if err != nil {
		return nil, fmt.Errorf("%w: term %q: %w, valid types are %s", ErrInvalidSides, text, err, validTypes())
	}

	dice := make(games.Dice, count)
	for i := range dice {
		dice[i] = die
	}
	return dice, nil
}

func validTypes() string {
	names := make([]string, len(games.ValidSides))
	for i, s := range games.ValidSides {
		names[i] = "d" + strconv.Itoa(s)
	}
	return strings.Join(names, ", ")
}
