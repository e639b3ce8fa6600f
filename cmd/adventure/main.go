package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/adventure/internal/application"
	"github.com/eugenenazirov/adventure/internal/config"
	"github.com/eugenenazirov/adventure/internal/logging"
	"github.com/eugenenazirov/adventure/internal/workload"
)

var signalNotify = signal.Notify

func main() {
	kingpinApp := kingpin.New("adventure", "Adventure - packs items, arranges sand grains and selects the best crystal, sequentially or over a worker pool")
	configFile := kingpinApp.Flag("config", "Path to YAML or TOML configuration file").String()

	var (
		strategySet, workersSet, spanSet, thresholdSet, levelSet, intervalSet bool
	)
	strategy := kingpinApp.Flag("strategy", "Execution strategy (sequential or parallel)").IsSetByUser(&strategySet).String()
	workers := kingpinApp.Flag("workers", "Number of workers in the pool").IsSetByUser(&workersSet).Int()
	minPackSpan := kingpinApp.Flag("min-pack-span", "Smallest capacity range handled by one packing task").IsSetByUser(&spanSet).Int()
	sortThreshold := kingpinApp.Flag("sort-threshold", "Range length below which sorting runs directly").IsSetByUser(&thresholdSet).Int()
	logLevel := kingpinApp.Flag("log-level", "Log level (debug, info, warn, error)").IsSetByUser(&levelSet).String()
	progressInterval := kingpinApp.Flag("progress-interval", "Minimum time between packing progress logs").IsSetByUser(&intervalSet).Duration()

	commands := map[string]application.Command{}
	workloadFiles := map[string]*string{}
	for _, c := range []struct {
		command application.Command
		help    string
	}{
		{application.CommandPack, "Pack the most valuable items into the workload container"},
		{application.CommandSort, "Arrange the workload grains in ascending size"},
		{application.CommandSelect, "Select the most brilliant workload crystal"},
	} {
		cmd := kingpinApp.Command(string(c.command), c.help)
		workloadFiles[cmd.FullCommand()] = cmd.Arg("workload", "Path to YAML or TOML workload file").Required().ExistingFile()
		commands[cmd.FullCommand()] = c.command
	}

	selected := kingpin.MustParse(kingpinApp.Parse(os.Args[1:]))

	overrides := &config.CLIOverrides{
		ConfigFile: *configFile,
	}
	if strategySet {
		overrides.Strategy = strategy
	}
	if workersSet {
		overrides.Workers = workers
	}
	if spanSet {
		overrides.MinPackSpan = minPackSpan
	}
	if thresholdSet {
		overrides.SortThreshold = sortThreshold
	}
	if levelSet {
		overrides.LogLevel = logLevel
	}
	if intervalSet {
		overrides.ProgressInterval = progressInterval
	}

	cfg, err := config.Load(overrides)
	if err != nil {
		kingpinApp.Fatalf("failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		kingpinApp.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	w, err := workload.Load(*workloadFiles[selected])
	if err != nil {
		logger.Fatal("failed to load workload", zap.Error(err))
	}

	app, err := application.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize application", zap.Error(err))
	}

	done := make(chan error, 1)
	go func() {
		done <- app.Run(commands[selected], w)
	}()

	if err := wait(done, app, logger); err != nil {
		_ = logger.Sync()
		fmt.Fprintf(os.Stderr, "adventure: %v\n", err)
		os.Exit(1)
	}
}

// wait returns the command result. A SIGINT or SIGTERM closes the strategy,
// which drains queued tasks, and then waits for the command to return.
func wait(done <-chan error, closer io.Closer, logger *zap.Logger) error {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-done:
		if closeErr := closer.Close(); closeErr != nil {
			logger.Warn("close failed", zap.Error(closeErr))
		}
		return err
	case sig := <-quit:
		logger.Info("shutting down, draining worker pool", zap.Stringer("signal", sig))
		if err := closer.Close(); err != nil {
			logger.Warn("close failed", zap.Error(err))
		}
		if err := <-done; err != nil {
			return fmt.Errorf("interrupted by %s: %w", sig, err)
		}
		return nil
	}
}
