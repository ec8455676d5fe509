// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/retrochip8/internal/host"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// MachineOptions converts the program options to virtual machine options.
func MachineOptions(logger *log.Logger, opts options.Program) []vm.Option {
	quirks := vm.DefaultQuirks()
	quirks.IndexIncrement = !opts.NoIndexIncrement

	machineOptions := []vm.Option{
		vm.WithLogger(logger),
		vm.WithQuirks(quirks),
	}
	if opts.Seed != 0 {
		machineOptions = append(machineOptions, vm.WithRandomSource(vm.NewRandomSource(opts.Seed)))
	}
	if !opts.NoFont {
		machineOptions = append(machineOptions, vm.WithFont(host.Font))
	}
	return machineOptions
}

// RunnerConfig returns the runner settings of the program options.
func RunnerConfig(opts options.Program) host.Config {
	return host.Config{
		Hz:          opts.Hz,
		Cycles:      opts.Cycles,
		Trace:       opts.Trace,
		SkipUnknown: opts.SkipUnknown,
	}
}
