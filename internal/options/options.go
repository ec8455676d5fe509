// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	Input string `arg:"positional" usage:"CHIP-8 ROM file to run"`
}

// Flags contains behavior options.
type Flags struct {
	Debug       bool   `flag:"debug" usage:"enable debug logging"`
	Quiet       bool   `flag:"q" usage:"quiet mode"`
	Trace       bool   `flag:"trace" usage:"log every executed instruction"`
	Headless    bool   `flag:"headless" usage:"run without terminal display and input"`
	Cycles      uint64 `flag:"cycles" usage:"stop after the given number of cycles, 0 runs until interrupted"`
	Hz          int    `flag:"hz" usage:"instructions per second" default:"700"`
	Seed        uint64 `flag:"seed" usage:"random seed, 0 uses a time based seed"`
	SkipUnknown bool   `flag:"skip-unknown" usage:"skip unknown opcodes instead of stopping"`
	NoFont      bool   `flag:"no-font" usage:"do not load the built-in hex font"`
	Raw         bool   `flag:"raw" usage:"switch the terminal to raw mode for key input" default:"true"`
}

// MachineFlags contains compatibility options of the virtual machine.
type MachineFlags struct {
	NoIndexIncrement bool `flag:"no-index-increment" usage:"leave I unchanged by register dump and load"`
}

// Program options of the interpreter.
type Program struct {
	Parameters
	Flags
	MachineFlags
}

// DisasmProgram options of the disassembler tool.
type DisasmProgram struct {
	Input  string `arg:"positional" usage:"file to disassemble"`
	Output string `flag:"o" usage:"output .asm file (default: stdout)"`
	Quiet  bool   `flag:"q" usage:"quiet mode"`
}

// Disassembler defines options to control the disassembler.
type Disassembler struct {
	HexComments    bool
	OffsetComments bool
	ZeroBytes      bool
}

// NewDisassembler returns a new options instance with default options.
func NewDisassembler() Disassembler {
	return Disassembler{
		HexComments:    true,
		OffsetComments: true,
	}
}
