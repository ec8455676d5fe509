// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/retrochip8/internal/host"
	"github.com/retroenv/retrochip8/internal/options"
)

// ParseFlags parses the command line flags of the interpreter.
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || len(args) == 0 {
		return opts, &UsageError{flags: flags, usage: "usage: retrochip8 [options] <rom file>"}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}
	if err := validateOptions(opts); err != nil {
		return opts, err
	}

	opts.Input = args[0]
	return opts, nil
}

// ParseDisasmFlags parses the command line flags of the disassembler.
func ParseDisasmFlags() (options.DisasmProgram, options.Disassembler, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.DisasmProgram
	disasmOptions := options.NewDisassembler()

	flags.StringVar(&opts.Output, "o", "", "name of the output .asm file, printed on console if no name given")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	var noHexComments, noOffsets bool
	flags.BoolVar(&noHexComments, "nohexcomments", false, "do not output opcode bytes as hex values in comments")
	flags.BoolVar(&noOffsets, "nooffsets", false, "do not output offsets in comments")
	flags.BoolVar(&disasmOptions.ZeroBytes, "z", false, "output the trailing zero bytes of the ROM")

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || len(args) == 0 {
		return opts, disasmOptions, &UsageError{flags: flags, usage: "usage: chip8disasm [options] <file to disassemble>"}
	}

	if err := validateArgs(args); err != nil {
		return opts, disasmOptions, err
	}

	opts.Input = args[0]
	disasmOptions.HexComments = !noHexComments
	disasmOptions.OffsetComments = !noOffsets
	return opts, disasmOptions, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	usage string
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	if e.flags == nil {
		fmt.Println(e.msg)
		return
	}
	fmt.Printf("%s\n\n", e.usage)
	e.flags.PrintDefaults()
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

// validateOptions checks the option values and combinations.
func validateOptions(opts options.Program) error {
	if opts.Hz <= 0 {
		return fmt.Errorf("invalid instruction frequency %d, must be positive", opts.Hz)
	}
	if opts.Trace && opts.Quiet {
		return &UsageError{msg: "the -trace and -q options can not be combined"}
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction")
	flags.BoolVar(&opts.Headless, "headless", false, "run without terminal display and keyboard input")
	flags.Uint64Var(&opts.Cycles, "cycles", 0, "stop after the given number of cycles, 0 runs until interrupted")
	flags.IntVar(&opts.Hz, "hz", host.DefaultHz, "instructions executed per second")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed of the random number generator, 0 uses a time based seed")
	flags.BoolVar(&opts.SkipUnknown, "skip-unknown", false, "skip unknown opcodes instead of stopping execution")
	flags.BoolVar(&opts.NoFont, "no-font", false, "do not load the built-in hex digit font")
	flags.BoolVar(&opts.Raw, "raw", true, "switch the terminal to raw mode for key input")
	flags.BoolVar(&opts.NoIndexIncrement, "no-index-increment", false, "do not advance I after register dump and load instructions")
}

