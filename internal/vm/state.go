package vm

import (
	"github.com/retroenv/retrochip8/internal/arch/chip8"
)

const (
	// RegisterCount is the number of general purpose registers.
	RegisterCount = 16

	// FlagRegister is the index of the register that doubles as carry,
	// borrow and collision flag.
	FlagRegister = 0xF

	// StackSize is the maximum number of nested subroutine calls.
	StackSize = 16

	// FontGlyphSize is the size in bytes of a built-in hex digit glyph.
	FontGlyphSize = 5
)

// State contains all mutable interpreter state. It only consists of fixed
// size arrays and values, assigning it creates an independent copy.
type State struct {
	V     [RegisterCount]byte // general purpose registers, V[0xF] is the flag register
	I     uint16              // index register
	PC    uint16              // program counter
	SP    uint8               // number of return addresses on the stack
	Stack [StackSize]uint16   // return addresses

	Memory [chip8.MemorySize]byte

	DT byte // delay timer
	ST byte // sound timer

	Display Display
	Keys    Keypad
}

// newState returns the power on state.
func newState() State {
	return State{
		PC: chip8.ProgramStart,
	}
}
