// Package config loads dicegame settings from DICEGAME_* environment
// variables and command-line flags, flags taking precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/MJE43/dicegame/internal/logging"
)

var (
	ErrInvalidTarget     = errors.New("target must be >= 0")
	ErrInvalidIterations = errors.New("iterations must be between 1 and 9223372036854775807")
	ErrInvalidWorkers    = errors.New("workers must be >= 0")
	ErrInvalidTimeout    = errors.New("timeout must be >= 0")
	ErrTooManyArgs       = errors.New("at most one dice specification may be given")
)

// Config holds everything needed for one simulation run.
type Config struct {
	Dice       string        `env:"DICEGAME_DICE" envDefault:"d4,d6,d8,2d10,d12,d20"`
	Target     int           `env:"DICEGAME_TARGET" envDefault:"19"`
	Iterations uint64        `env:"DICEGAME_ITERATIONS" envDefault:"100000"`
	Workers    int           `env:"DICEGAME_WORKERS"` // 0 means GOMAXPROCS
	ServerSeed string        `env:"DICEGAME_SEED"`
	ClientSeed string        `env:"DICEGAME_CLIENT_SEED"`
	Timeout    time.Duration `env:"DICEGAME_TIMEOUT"`
	LogLevel   string        `env:"DICEGAME_LOG_LEVEL" envDefault:"info"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads the environment, then applies flags and the optional positional
// dice specification from args. Flags and the positional argument may be
// interleaved. Usage and flag errors are written to output.
func Load(args []string, output io.Writer) (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return cfg, err
	}

	fs := flag.NewFlagSet("dicegame", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: dicegame [flags] [dice]\n\n")
		fmt.Fprintf(fs.Output(), "Estimates the win rate of the elimination dice game.\n")
		fmt.Fprintf(fs.Output(), "dice defaults to %q.\n\nFlags:\n", cfg.Dice)
		fs.PrintDefaults()
	}

	var verbose, trace bool
	fs.IntVar(&cfg.Target, "target", cfg.Target, "target number to roll")
	fs.IntVar(&cfg.Target, "t", cfg.Target, "shorthand for -target")
	fs.Uint64Var(&cfg.Iterations, "iterations", cfg.Iterations, "number of iterations to run")
	fs.Uint64Var(&cfg.Iterations, "n", cfg.Iterations, "shorthand for -iterations")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "worker goroutines, 0 for GOMAXPROCS, 1 for sequential")
	fs.IntVar(&cfg.Workers, "w", cfg.Workers, "shorthand for -workers")
	fs.StringVar(&cfg.ServerSeed, "seed", cfg.ServerSeed, "server seed for reproducible runs (random when empty)")
	fs.StringVar(&cfg.ClientSeed, "client-seed", cfg.ClientSeed, "client seed (random UUID when empty)")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "stop early and report a partial result after this long")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: error, warn, info, debug or trace")
	fs.BoolVar(&verbose, "v", false, "debug output, same as -log-level debug")
	fs.BoolVar(&trace, "trace", false, "log every round, same as -log-level trace")

	var positional []string
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	for fs.NArg() > 0 {
		positional = append(positional, fs.Arg(0))
		if err := fs.Parse(fs.Args()[1:]); err != nil {
			return cfg, err
		}
	}

	switch len(positional) {
	case 0:
	case 1:
		cfg.Dice = positional[0]
	default:
		return cfg, fmt.Errorf("%w, got %q", ErrTooManyArgs, positional)
	}

	if verbose {
		cfg.LogLevel = logging.LevelDebug
	}
	if trace {
		cfg.LogLevel = logging.LevelTrace
	}

	return cfg, cfg.Validate()
}

// Validate checks value ranges. The dice specification is checked by the
// dicespec parser.
func (c Config) Validate() error {
	if c.Target < 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidTarget, c.Target)
	}
	if c.Iterations == 0 || c.Iterations > math.MaxInt64 {
		return fmt.Errorf("%w, got %d", ErrInvalidIterations, c.Iterations)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidWorkers, c.Workers)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w, got %s", ErrInvalidTimeout, c.Timeout)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}
