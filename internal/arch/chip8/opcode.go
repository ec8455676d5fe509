package chip8

import (
	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// OpcodeSize is the size of CHIP-8 instructions in bytes.
const OpcodeSize = 2

// Operation is a decoded CHIP-8 opcode. It only carries the operand fields
// that its kind uses, all other fields are zero.
type Operation struct {
	Kind   Kind
	Opcode uint16 // raw opcode the operation was decoded from

	X   uint8  // first register index, 0-15
	Y   uint8  // second register index, 0-15
	N   uint8  // 4-bit sprite height
	KK  uint8  // immediate byte
	NNN uint16 // 12-bit address
}

// Instruction returns the retrogolib instruction definition of the operation.
func (o Operation) Instruction() *chip8cpu.Instruction {
	return o.Kind.Instruction()
}

// Name returns the instruction mnemonic.
func (o Operation) Name() string {
	return o.Kind.Name()
}

// IsCall returns true if the operation is a subroutine call.
func (o Operation) IsCall() bool {
	return o.Kind == Call
}

// IsJump returns true if the operation is an unconditional jump, including
// the register offset jump.
func (o Operation) IsJump() bool {
	return o.Instruction() == chip8cpu.JpInst
}

// IsReturn returns true if the operation returns from a subroutine.
func (o Operation) IsReturn() bool {
	return o.Kind == Ret
}

// IsSkip returns true if the operation conditionally skips the next instruction.
func (o Operation) IsSkip() bool {
	ins := o.Instruction()
	if ins == nil {
		return false
	}
	return chip8cpu.SkipInstructions.Contains(ins.Name)
}

// IsDataReference returns true if the operation loads a memory address into
// the index register.
func (o Operation) IsDataReference() bool {
	return o.Kind == LdI
}

// ReadsMemory returns true if executing the operation reads from main memory.
func (o Operation) ReadsMemory() bool {
	return o.Kind == Drw || o.Kind == LdVxI
}

// WritesMemory returns true if executing the operation writes to main memory.
// DRW writes to display memory, not main memory.
func (o Operation) WritesMemory() bool {
	return o.Kind == LdB || o.Kind == LdIVx
}

// Target returns the absolute address operand of jump, call and index load
// operations. The register offset jump is excluded as its target depends on V0.
func (o Operation) Target() (uint16, bool) {
	switch o.Kind {
	case Jp, Call, LdI:
		return o.NNN, true
	default:
		return 0, false
	}
}
