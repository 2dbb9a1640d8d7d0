// Command dicegame estimates how often a set of dice reaches a target under
// the elimination rule.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/MJE43/dicegame/internal/config"
	"github.com/MJE43/dicegame/internal/dicespec"
	"github.com/MJE43/dicegame/internal/engine"
	"github.com/MJE43/dicegame/internal/logging"
	"github.com/MJE43/dicegame/internal/sim"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		stop()
		config.Exitf("dicegame: %v", err)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := config.Load(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	logger, err := logging.New(stderr, cfg.LogLevel)
	if err != nil {
		return err
	}

	dice, err := dicespec.Parse(cfg.Dice)
	if err != nil {
		return fmt.Errorf("parse dice: %w", err)
	}

	seeds := engine.Seeds{Server: cfg.ServerSeed, Client: cfg.ClientSeed}
	if seeds.Server == "" {
		if seeds.Server, err = engine.NewServerSeed(); err != nil {
			return fmt.Errorf("generate server seed: %w", err)
		}
	}
	if seeds.Client == "" {
		seeds.Client = uuid.NewString()
	}

	logger.Info("starting game", "target", cfg.Target, "iterations", cfg.Iterations)
	logger.Info("using dice", "dice", dice.String())
	logger.Debug("seeds", "server", seeds.Server, "client", seeds.Client)

	simulator := sim.NewSimulator(sim.WithWorkers(cfg.Workers), sim.WithLogger(logger))
	result, err := simulator.Run(ctx, sim.Request{
		Dice:        dice,
		Target:      cfg.Target,
		Iterations:  cfg.Iterations,
		Seeds:       seeds,
		Timeout:     cfg.Timeout,
		TraceRounds: logging.TraceEnabled(cfg.LogLevel),
	})
	if err != nil {
		return fmt.Errorf("simulate: %w", err)
	}

	printReport(stdout, logger, result)
	return nil
}
