package sim

import (
	"math"
	"math/big"
	"time"

	"github.com/shopspring/decimal"
)

// z95 is the two-sided 95% normal quantile.
const z95 = 1.959963984540054

var hundred = decimal.NewFromInt(100)

// Summary contains aggregate statistics
type Summary struct {
	Iterations  uint64        // rounds requested
	Evaluated   uint64        // rounds actually played
	Wins        uint64        // rounds whose sum reached the target
	Elapsed     time.Duration // wall time spent playing
	Interrupted bool          // Evaluated < Iterations because of cancellation
}

// WinRate returns wins/evaluated as a percentage, exact to 16 decimal
// places. It is zero when nothing was evaluated.
func (s Summary) WinRate() decimal.Decimal {
	if s.Evaluated == 0 {
		return decimal.Zero
	}
	return fromUint64(s.Wins).Mul(hundred).Div(fromUint64(s.Evaluated))
}

// WinRatePercent formats WinRate with two decimal places.
func (s Summary) WinRatePercent() string {
	return s.WinRate().StringFixed(2)
}

// Probability returns the win fraction in [0, 1].
func (s Summary) Probability() float64 {
	if s.Evaluated == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Evaluated)
}

// StdError is the binomial standard error of the win rate, in percentage
// points.
func (s Summary) StdError() float64 {
	if s.Evaluated == 0 {
		return 0
	}
	p := s.Probability()
	return math.Sqrt(p*(1-p)/float64(s.Evaluated)) * 100
}

// ConfidenceInterval95 returns the normal-approximation 95% interval of the
// win rate in percent, clamped to [0, 100] and rounded to two places.
func (s Summary) ConfidenceInterval95() (lo, hi decimal.Decimal) {
	rate, _ := s.WinRate().Float64()
	margin := z95 * s.StdError()
	lo = decimal.NewFromFloat(math.Max(0, rate-margin)).Round(2)
	hi = decimal.NewFromFloat(math.Min(100, rate+margin)).Round(2)
	return lo, hi
}

// PerSecond returns the evaluated rounds per second of wall time.
func (s Summary) PerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Evaluated) / s.Elapsed.Seconds()
}

func fromUint64(v uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(v), 0)
}
