// Package main implements a CHIP-8 interpreter that runs in a terminal
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/retroenv/retrochip8/internal/cli"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/host"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			config.PrintBanner(logger, "retrochip8", opts.Quiet, version, commit, date)
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug || opts.Trace, opts.Quiet)
	config.PrintBanner(logger, "retrochip8", opts.Quiet, version, commit, date)

	if err := run(ctx, logger, opts); err != nil {
		// Handle context cancellation (Ctrl+C) gracefully
		if errors.Is(err, context.Canceled) {
			logger.Info("Execution cancelled")
			return
		}
		logger.Error("Running ROM failed", log.Err(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *log.Logger, opts options.Program) error {
	rom, err := loader.New().Load(opts.Input)
	if err != nil {
		return err
	}
	config.PrintInfo(logger, opts.Input, rom, opts.Quiet)

	machine, err := vm.New(config.MachineOptions(logger, opts)...)
	if err != nil {
		return fmt.Errorf("creating machine: %w", err)
	}
	if err := machine.LoadROM(rom); err != nil {
		return fmt.Errorf("loading rom: %w", err)
	}

	runner := host.New(logger, machine, config.RunnerConfig(opts))

	if opts.Headless {
		return runHeadless(ctx, runner, machine, opts)
	}
	return runTerminal(ctx, runner, opts)
}

// runHeadless runs the machine without display and keyboard input and
// prints the registers when done.
func runHeadless(ctx context.Context, runner *host.Runner, machine *vm.Machine, opts options.Program) error {
	var err error
	if opts.Cycles > 0 {
		err = runner.RunCycles(ctx)
	} else {
		err = runner.Run(ctx)
	}

	fmt.Print(host.RegisterDump(machine.Snapshot()))
	return err
}

// runTerminal runs the machine with the display rendered to the terminal
// and key presses read from it.
func runTerminal(ctx context.Context, runner *host.Runner, opts options.Program) error {
	if opts.Raw {
		restore, err := host.SetRawIO(os.Stdin.Fd())
		if err != nil {
			return err
		}
		defer restore()
	}

	renderer := host.NewRenderer(os.Stdout)
	if err := renderer.Start(); err != nil {
		return err
	}
	defer func() { _ = renderer.Stop() }()

	runner.SetRenderer(renderer)
	runner.SetInput(host.ReadKeys(ctx, os.Stdin))
	return runner.Run(ctx)
}
