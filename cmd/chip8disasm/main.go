// Package main implements a CHIP-8 ROM disassembler
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/cli"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, disasmOptions, err := cli.ParseDisasmFlags()
	if err != nil {
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			printBanner(opts)
			usageErr.ShowUsage()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}

	printBanner(opts)

	logger := config.CreateLogger(false, opts.Quiet)
	if err := disasmFile(ctx, logger, opts, disasmOptions, os.Stdout); err != nil {
		fmt.Println(fmt.Errorf("disassembling failed: %w", err))
		os.Exit(1)
	}
}

func printBanner(opts options.DisasmProgram) {
	if !opts.Quiet {
		fmt.Println("[---------------------------------------]")
		fmt.Println("[ chip8disasm - CHIP-8 ROM disassembler ]")
		fmt.Printf("[---------------------------------------]\n\n")
		fmt.Printf("version: %s\n\n", buildinfo.Version(version, commit, date))
	}
}

// disasmFile disassembles the input file to the output file, or to the
// console writer if no output file is set. Only the created output file
// is closed.
func disasmFile(ctx context.Context, logger *log.Logger, opts options.DisasmProgram, disasmOptions options.Disassembler, console io.Writer) error {
	rom, err := loader.New().Load(opts.Input)
	if err != nil {
		return err
	}

	dis, err := disasm.New(logger, rom, disasmOptions)
	if err != nil {
		return fmt.Errorf("initializing disassembler: %w", err)
	}

	if opts.Output == "" {
		if _, err = dis.Process(ctx, console); err != nil {
			return fmt.Errorf("processing file: %w", err)
		}
		return nil
	}

	outputFile, err := os.Create(opts.Output)
	if err != nil {
		return fmt.Errorf("creating file '%s': %w", opts.Output, err)
	}
	if _, err = dis.Process(ctx, outputFile); err != nil {
		_ = outputFile.Close()
		return fmt.Errorf("processing file: %w", err)
	}
	if err = outputFile.Close(); err != nil {
		return fmt.Errorf("closing file: %w", err)
	}
	return nil
}
