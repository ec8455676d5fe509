package vm

import (
	"errors"
	"fmt"

	"github.com/retroenv/retrochip8/internal/arch/chip8"
	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

var (
	// ErrRomTooLarge is returned when a ROM does not fit into program memory.
	ErrRomTooLarge = chip8.ErrRomTooLarge
	// ErrFontTooLarge is returned when font data does not fit below the program start.
	ErrFontTooLarge = errors.New("font too large")
	// ErrMemoryFault is returned when an instruction accesses an address outside of memory.
	ErrMemoryFault = errors.New("memory fault")
	// ErrStackOverflow is returned when a call exceeds the maximum nesting depth.
	ErrStackOverflow = chip8cpu.ErrStackOverflow
	// ErrStackUnderflow is returned when returning from a subroutine with an empty stack.
	ErrStackUnderflow = chip8cpu.ErrStackUnderflow
)

// checkMemory returns a memory fault if the size bytes starting at address
// are not all inside of memory.
func checkMemory(address uint16, size int) error {
	end := int(address) + size
	if end > chip8.MemorySize {
		return fmt.Errorf("%w: access $%04X-$%04X outside of memory", ErrMemoryFault, address, end-1)
	}
	return nil
}

// checkJumpTarget returns a memory fault if the address can not be the
// start of an instruction inside of program memory. Instructions start at
// even offsets from the program start.
func checkJumpTarget(address uint32) error {
	if address < chip8.ProgramStart || address > chip8.LastCodeAddress {
		return fmt.Errorf("%w: jump target $%04X outside of program memory", ErrMemoryFault, address)
	}
	if (address-chip8.ProgramStart)%chip8.OpcodeSize != 0 {
		return fmt.Errorf("%w: jump target $%04X is not instruction aligned", ErrMemoryFault, address)
	}
	return nil
}

// checkProgramCounter returns a memory fault if execution can not continue
// at the address because no complete instruction fits there.
func checkProgramCounter(address uint32) error {
	if address > chip8.LastCodeAddress {
		return fmt.Errorf("%w: next instruction at $%04X outside of program memory", ErrMemoryFault, address)
	}
	return nil
}
