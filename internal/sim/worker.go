package sim

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/MJE43/dicegame/internal/engine"
	"github.com/MJE43/dicegame/internal/games"
)

// worker plays batches of rounds with its own byte generator.
type worker struct {
	id        int
	game      *games.Game
	bg        *engine.ByteGenerator
	evaluated *atomic.Uint64
	wins      *atomic.Uint64
	trace     bool
	logger    *slog.Logger
}

// Run processes jobs until the channel closes or ctx ends.
func (w *worker) Run(ctx context.Context, jobs <-chan job, wg *sync.WaitGroup) {
	defer wg.Done()

	for {
		select {
		case j, ok := <-jobs:
			if !ok {
				return
			}
			w.processJob(ctx, j)
		case <-ctx.Done():
			return
		}
	}
}

// processJob plays one round per nonce in the job and publishes the counts.
func (w *worker) processJob(ctx context.Context, j job) {
	var played, won uint64
	defer func() {
		w.evaluated.Add(played)
		w.wins.Add(won)
	}()

	for nonce := j.NonceStart; ; nonce++ {
		select {
		case <-ctx.Done():
			return
		default:
		}

		w.bg.Reset(nonce)
		var win bool
		if w.trace {
			win = w.traceRound(nonce)
		} else {
			win = w.game.Play(w.bg)
		}

		played++
		if win {
			won++
		}
		if nonce == j.NonceEnd {
			return
		}
	}
}

func (w *worker) traceRound(nonce uint64) bool {
	round := w.game.Resolve(w.bg)
	w.logger.Debug("round",
		"worker", w.id,
		"nonce", nonce,
		"first", round.First.String(),
		"groups", fmt.Sprint(round.Groups),
		"eliminated", fmt.Sprint(round.Eliminated),
		"final", round.Final.String(),
		"sum", round.Sum,
		"target", w.game.Target(),
		"win", round.Win,
	)
	return round.Win
}
