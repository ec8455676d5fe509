package chip8

import (
	"errors"
	"fmt"
)

// ErrUnknownOpcode is returned when an opcode matches no instruction pattern.
var ErrUnknownOpcode = errors.New("unknown opcode")

// pattern matches an opcode when opcode&mask == value.
type pattern struct {
	mask  uint16
	value uint16
	kind  Kind
}

// decodeTable contains all opcode patterns, indexed by the top nibble.
var decodeTable = [16][]pattern{
	0x0: {
		{0xFFFF, 0x00E0, Cls},
		{0xFFFF, 0x00EE, Ret},
	},
	0x1: {{0xF000, 0x1000, Jp}},
	0x2: {{0xF000, 0x2000, Call}},
	0x3: {{0xF000, 0x3000, SeByte}},
	0x4: {{0xF000, 0x4000, SneByte}},
	0x5: {{0xF00F, 0x5000, SeReg}},
	0x6: {{0xF000, 0x6000, LdByte}},
	0x7: {{0xF000, 0x7000, AddByte}},
	0x8: {
		{0xF00F, 0x8000, LdReg},
		{0xF00F, 0x8001, Or},
		{0xF00F, 0x8002, And},
		{0xF00F, 0x8003, Xor},
		{0xF00F, 0x8004, AddReg},
		{0xF00F, 0x8005, Sub},
		{0xF00F, 0x8006, Shr},
		{0xF00F, 0x8007, Subn},
		{0xF00F, 0x800E, Shl},
	},
	0x9: {{0xF00F, 0x9000, SneReg}},
	0xA: {{0xF000, 0xA000, LdI}},
	0xB: {{0xF000, 0xB000, JpV0}},
	0xC: {{0xF000, 0xC000, Rnd}},
	0xD: {{0xF000, 0xD000, Drw}},
	0xE: {
		{0xF0FF, 0xE09E, Skp},
		{0xF0FF, 0xE0A1, Sknp},
	},
	0xF: {
		{0xF0FF, 0xF007, LdVxDT},
		{0xF0FF, 0xF00A, LdVxK},
		{0xF0FF, 0xF015, LdDTVx},
		{0xF0FF, 0xF018, LdSTVx},
		{0xF0FF, 0xF01E, AddI},
		{0xF0FF, 0xF029, LdF},
		{0xF0FF, 0xF033, LdB},
		{0xF0FF, 0xF055, LdIVx},
		{0xF0FF, 0xF065, LdVxI},
	},
}

// Decode decodes a 16-bit opcode into an operation.
func Decode(opcode uint16) (Operation, error) {
	kind := lookup(opcode)
	if kind == Invalid {
		return Operation{}, fmt.Errorf("%w: $%04X", ErrUnknownOpcode, opcode)
	}

	op := Operation{
		Kind:   kind,
		Opcode: opcode,
	}

	switch kinds[kind].operands {
	case operandsAddress:
		op.NNN = opcode & 0x0FFF
	case operandsRegByte:
		op.X = extractRegisterX(opcode)
		op.KK = uint8(opcode & 0x00FF)
	case operandsRegReg:
		op.X = extractRegisterX(opcode)
		op.Y = extractRegisterY(opcode)
	case operandsReg:
		op.X = extractRegisterX(opcode)
	case operandsRegRegNibble:
		op.X = extractRegisterX(opcode)
		op.Y = extractRegisterY(opcode)
		op.N = uint8(opcode & 0x000F)
	case operandsNone:
	}
	return op, nil
}

// DecodeBytes decodes the big-endian opcode stored in the first two bytes of data.
func DecodeBytes(data []byte) (Operation, error) {
	opcode, ok := decodeOpcode(data)
	if !ok {
		return Operation{}, fmt.Errorf("%w: need %d bytes, got %d", ErrUnknownOpcode, OpcodeSize, len(data))
	}
	return Decode(opcode)
}

// lookup returns the kind of the first table pattern matching the opcode.
func lookup(opcode uint16) Kind {
	firstNibble := (opcode & 0xF000) >> 12
	for _, p := range decodeTable[firstNibble] {
		if opcode&p.mask == p.value {
			return p.kind
		}
	}
	return Invalid
}

// decodeOpcode extracts the 16-bit opcode from instruction bytes.
func decodeOpcode(data []byte) (uint16, bool) {
	if len(data) < OpcodeSize {
		return 0, false
	}
	return uint16(data[0])<<8 | uint16(data[1]), true
}

// extractRegisterX extracts the X register nibble from a CHIP-8 opcode.
func extractRegisterX(opcode uint16) uint8 {
	return uint8((opcode & 0x0F00) >> 8)
}

// extractRegisterY extracts the Y register nibble from a CHIP-8 opcode.
func extractRegisterY(opcode uint16) uint8 {
	return uint8((opcode & 0x00F0) >> 4)
}
