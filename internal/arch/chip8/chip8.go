package chip8

import (
	"errors"
	"fmt"
)

// CHIP-8 memory layout constants.
//
// CHIP-8 memory map (4KB total):
//
//	0x000-0x1FF: Interpreter and font data (512 bytes)
//	0x200-0xFFF: User program space (3584 bytes)
//
// The display buffer (64×32 pixels) and stack are maintained separately
// from the 4KB main memory address space.
const (
	// MemorySize is the size of the CHIP-8 address space in bytes.
	MemorySize = 0x1000

	// ProgramStart is the memory address where CHIP-8 programs are loaded
	// and begin execution.
	ProgramStart = 0x200

	// MaxAddress is the highest valid address in CHIP-8 memory space.
	MaxAddress = 0xFFF

	// LastCodeAddress is the highest address an instruction can start at,
	// both opcode bytes have to be inside of the address space.
	LastCodeAddress = MaxAddress - 1

	// MaxProgramSize is the largest program that fits into the user program space.
	MaxProgramSize = MemorySize - ProgramStart
)

var (
	// ErrEmptyROM is returned for a ROM without any content.
	ErrEmptyROM = errors.New("empty rom")
	// ErrRomTooLarge is returned for a ROM that does not fit into program memory.
	ErrRomTooLarge = errors.New("rom too large")
)

// String returns the assembly representation of the operation, for example
// "ld V1, $05" or "drw V2, V3, $5".
func (o Operation) String() string {
	name := o.Name()
	if name == "" {
		return fmt.Sprintf("$%04X", o.Opcode)
	}
	if params := o.formatParams(); params != "" {
		return fmt.Sprintf("%s %s", name, params)
	}
	return name
}

// formatParams formats the operands of the operation.
func (o Operation) formatParams() string {
	switch o.Kind {
	case Cls, Ret:
		return "" // No parameters
	case Jp, Call:
		return fmt.Sprintf("$%03X", o.NNN)
	case JpV0:
		return fmt.Sprintf("V0, $%03X", o.NNN)
	case LdI:
		return fmt.Sprintf("I, $%03X", o.NNN)
	case SeByte, SneByte, LdByte, AddByte, Rnd:
		return fmt.Sprintf("V%X, $%02X", o.X, o.KK)
	case SeReg, SneReg, LdReg, Or, And, Xor, AddReg, Sub, Subn:
		return fmt.Sprintf("V%X, V%X", o.X, o.Y)
	case Shr, Shl, Skp, Sknp:
		return fmt.Sprintf("V%X", o.X)
	case Drw:
		return fmt.Sprintf("V%X, V%X, $%X", o.X, o.Y, o.N)
	default:
		return o.formatTimerAndIndexParams()
	}
}

// formatTimerAndIndexParams formats the operands of the 0xF instruction family.
func (o Operation) formatTimerAndIndexParams() string {
	switch o.Kind {
	case LdVxDT:
		return fmt.Sprintf("V%X, DT", o.X)
	case LdVxK:
		return fmt.Sprintf("V%X, K", o.X)
	case LdDTVx:
		return fmt.Sprintf("DT, V%X", o.X)
	case LdSTVx:
		return fmt.Sprintf("ST, V%X", o.X)
	case AddI:
		return fmt.Sprintf("I, V%X", o.X)
	case LdF:
		return fmt.Sprintf("F, V%X", o.X)
	case LdB:
		return fmt.Sprintf("B, V%X", o.X)
	case LdIVx:
		return fmt.Sprintf("[I], V%X", o.X)
	case LdVxI:
		return fmt.Sprintf("V%X, [I]", o.X)
	default:
		return ""
	}
}
