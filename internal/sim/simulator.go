// Package sim runs the elimination game many times and aggregates the wins.
//
// Round i of a run is played on the HMAC stream for nonce NonceStart+i, so a
// run is fully determined by its seeds: the win count does not depend on the
// number of workers or on the order in which batches complete.
package sim

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/MJE43/dicegame/internal/engine"
	"github.com/MJE43/dicegame/internal/games"
	"github.com/MJE43/dicegame/internal/logging"
)

// EngineVersion identifies the stream layout and resolution rules. Results
// are reproducible for equal seeds within one version.
const EngineVersion = "go-1.0.0"

// batchSize is the number of nonces handed to a worker at a time.
const batchSize = 8192

// Request describes one simulation run.
type Request struct {
	Dice       games.Dice
	Target     int
	Iterations uint64
	NonceStart uint64
	Seeds      engine.Seeds
	Timeout    time.Duration
	// TraceRounds logs every round's rolls, groups and eliminations at
	// debug level.
	TraceRounds bool
}

// Result contains the complete run outcome
type Result struct {
	RunID         string
	Summary       Summary
	EngineVersion string
	Echo          Request
}

// job is a closed range of nonces.
type job struct {
	NonceStart uint64
	NonceEnd   uint64
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithWorkers sets the number of worker goroutines. One runs every round on
// the calling goroutine; zero or less means GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(s *Simulator) {
		if n <= 0 {
			n = runtime.GOMAXPROCS(0)
		}
		s.workerCount = n
	}
}

// WithLogger sets the logger for progress and round tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Simulator) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Simulator plays rounds sequentially or across a worker pool.
type Simulator struct {
	workerCount int
	logger      *slog.Logger
}

// NewSimulator creates a simulator using GOMAXPROCS workers by default
func NewSimulator(opts ...Option) *Simulator {
	s := &Simulator{
		workerCount: runtime.GOMAXPROCS(0),
		logger:      logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Workers returns the configured worker count.
func (s *Simulator) Workers() int {
	return s.workerCount
}

// ValidateRequest checks a request before any round is played.
func ValidateRequest(req Request) error {
	if req.Iterations == 0 {
		return ErrNoIterations
	}
	if req.Seeds.Server == "" || req.Seeds.Client == "" {
		return ErrMissingSeeds
	}
	if req.Iterations-1 > math.MaxUint64-req.NonceStart {
		return fmt.Errorf("%w: start %d, iterations %d", ErrNonceOverflow, req.NonceStart, req.Iterations)
	}
	return nil
}

// Run plays req.Iterations rounds. Invalid dice panic, see games.NewGame.
// When ctx ends or the timeout elapses the rounds played so far are returned
// with Summary.Interrupted set.
func (s *Simulator) Run(ctx context.Context, req Request) (*Result, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}
	game := games.NewGame(req.Dice, req.Target)

	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	runID := uuid.NewString()
	logger := s.logger.With("run_id", runID)
	logger.Debug("simulation started",
		"dice", game.Dice().String(),
		"target", req.Target,
		"iterations", req.Iterations,
		"workers", s.workerCount,
		"engine", EngineVersion,
	)

	var evaluated, wins atomic.Uint64
	first := req.NonceStart
	last := req.NonceStart + req.Iterations - 1
	started := time.Now()

	newWorker := func(id int) *worker {
		return &worker{
			id:        id,
			game:      game,
			bg:        engine.NewByteGenerator(req.Seeds.Server, req.Seeds.Client, first, 0),
			evaluated: &evaluated,
			wins:      &wins,
			trace:     req.TraceRounds,
			logger:    logger,
		}
	}

	if s.workerCount == 1 {
		w := newWorker(0)
		forEachBatch(first, last, func(j job) bool {
			w.processJob(ctx, j)
			return ctx.Err() == nil
		})
	} else {
		jobs := make(chan job, s.workerCount*2)
		var wg sync.WaitGroup
		for i := 0; i < s.workerCount; i++ {
			wg.Add(1)
			go newWorker(i).Run(ctx, jobs, &wg)
		}
		go generateJobs(ctx, jobs, first, last)
		wg.Wait()
	}

	summary := Summary{
		Iterations: req.Iterations,
		Evaluated:  evaluated.Load(),
		Wins:       wins.Load(),
		Elapsed:    time.Since(started),
	}
	summary.Interrupted = summary.Evaluated < summary.Iterations

	if summary.Interrupted {
		logger.Warn("simulation interrupted",
			"evaluated", summary.Evaluated,
			"requested", summary.Iterations,
			"reason", context.Cause(ctx),
		)
	}
	logger.Debug("simulation finished",
		"evaluated", summary.Evaluated,
		"wins", summary.Wins,
		"elapsed", summary.Elapsed,
		"per_second", summary.PerSecond(),
	)

	return &Result{
		RunID:         runID,
		Summary:       summary,
		EngineVersion: EngineVersion,
		Echo:          req,
	}, nil
}

// forEachBatch calls fn for consecutive batches covering [start, end] until
// fn returns false. end may be math.MaxUint64.
func forEachBatch(start, end uint64, fn func(job) bool) {
	for current := start; ; {
		batchEnd := current + batchSize - 1
		if batchEnd < current || batchEnd > end {
			batchEnd = end
		}
		if !fn(job{NonceStart: current, NonceEnd: batchEnd}) || batchEnd == end {
			return
		}
		current = batchEnd + 1
	}
}

// generateJobs feeds batches to the workers and closes jobs when done.
func generateJobs(ctx context.Context, jobs chan<- job, start, end uint64) {
	defer close(jobs)

	forEachBatch(start, end, func(j job) bool {
		select {
		case jobs <- j:
			return true
		case <-ctx.Done():
			return false
		}
	})
}
