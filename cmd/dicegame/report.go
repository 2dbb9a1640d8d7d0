package main

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"

	"github.com/MJE43/dicegame/internal/sim"
)

// winRateLine is the final output line.
func winRateLine(s sim.Summary) string {
	return fmt.Sprintf("Win Rate: %s%% across %s iterations", s.WinRatePercent(), humanize.Comma(int64(s.Evaluated)))
}

func printReport(w io.Writer, logger *slog.Logger, result *sim.Result) {
	s := result.Summary
	lo, hi := s.ConfidenceInterval95()

	logger.Debug("throughput",
		"iterations_per_second", humanize.CommafWithDigits(s.PerSecond(), 0),
		"elapsed", s.Elapsed.Round(time.Millisecond).String(),
	)
	logger.Debug("estimate",
		"run_id", result.RunID,
		"engine", result.EngineVersion,
		"wins", s.Wins,
		"ci95", fmt.Sprintf("%s%% - %s%%", lo.StringFixed(2), hi.StringFixed(2)),
	)

	if s.Interrupted {
		pterm.Fprintln(w, pterm.Warning.Sprintf("stopped after %s of %s iterations",
			humanize.Comma(int64(s.Evaluated)), humanize.Comma(int64(s.Iterations))))
	}
	pterm.Fprintln(w, winRateLine(s))
}
