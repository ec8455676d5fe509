package chip8

import (
	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Kind identifies the semantic operation of a decoded opcode.
type Kind uint8

// Operation kinds, one per CHIP-8 opcode.
const (
	Invalid Kind = iota
	Cls          // 00E0
	Ret          // 00EE
	Jp           // 1nnn
	Call         // 2nnn
	SeByte       // 3xkk
	SneByte      // 4xkk
	SeReg        // 5xy0
	LdByte       // 6xkk
	AddByte      // 7xkk
	LdReg        // 8xy0
	Or           // 8xy1
	And          // 8xy2
	Xor          // 8xy3
	AddReg       // 8xy4
	Sub          // 8xy5
	Shr          // 8xy6
	Subn         // 8xy7
	Shl          // 8xyE
	SneReg       // 9xy0
	LdI          // Annn
	JpV0         // Bnnn
	Rnd          // Cxkk
	Drw          // Dxyn
	Skp          // Ex9E
	Sknp         // ExA1
	LdVxDT       // Fx07
	LdVxK        // Fx0A
	LdDTVx       // Fx15
	LdSTVx       // Fx18
	AddI         // Fx1E
	LdF          // Fx29
	LdB          // Fx33
	LdIVx        // Fx55
	LdVxI        // Fx65

	kindCount
)

// operands describes which operand fields of an opcode an operation uses.
type operands uint8

const (
	operandsNone operands = iota
	operandsAddress
	operandsRegByte
	operandsRegReg
	operandsReg
	operandsRegRegNibble
)

// kindInfo links an operation kind to its retrogolib instruction definition
// and its operand layout.
type kindInfo struct {
	ins      *chip8cpu.Instruction
	operands operands
}

var kinds = [kindCount]kindInfo{
	Cls:     {chip8cpu.ClsInst, operandsNone},
	Ret:     {chip8cpu.RetInst, operandsNone},
	Jp:      {chip8cpu.JpInst, operandsAddress},
	Call:    {chip8cpu.CallInst, operandsAddress},
	SeByte:  {chip8cpu.SeInst, operandsRegByte},
	SneByte: {chip8cpu.SneInst, operandsRegByte},
	SeReg:   {chip8cpu.SeInst, operandsRegReg},
	LdByte:  {chip8cpu.LdInst, operandsRegByte},
	AddByte: {chip8cpu.AddInst, operandsRegByte},
	LdReg:   {chip8cpu.LdInst, operandsRegReg},
	Or:      {chip8cpu.OrInst, operandsRegReg},
	And:     {chip8cpu.AndInst, operandsRegReg},
	Xor:     {chip8cpu.XorInst, operandsRegReg},
	AddReg:  {chip8cpu.AddInst, operandsRegReg},
	Sub:     {chip8cpu.SubInst, operandsRegReg},
	Shr:     {chip8cpu.ShrInst, operandsRegReg},
	Subn:    {chip8cpu.SubnInst, operandsRegReg},
	Shl:     {chip8cpu.ShlInst, operandsRegReg},
	SneReg:  {chip8cpu.SneInst, operandsRegReg},
	LdI:     {chip8cpu.LdInst, operandsAddress},
	JpV0:    {chip8cpu.JpInst, operandsAddress},
	Rnd:     {chip8cpu.RndInst, operandsRegByte},
	Drw:     {chip8cpu.DrwInst, operandsRegRegNibble},
	Skp:     {chip8cpu.SkpInst, operandsReg},
	Sknp:    {chip8cpu.SknpInst, operandsReg},
	LdVxDT:  {chip8cpu.LdInst, operandsReg},
	LdVxK:   {chip8cpu.LdInst, operandsReg},
	LdDTVx:  {chip8cpu.LdInst, operandsReg},
	LdSTVx:  {chip8cpu.LdInst, operandsReg},
	AddI:    {chip8cpu.AddInst, operandsReg},
	LdF:     {chip8cpu.LdInst, operandsReg},
	LdB:     {chip8cpu.LdInst, operandsReg},
	LdIVx:   {chip8cpu.LdInst, operandsReg},
	LdVxI:   {chip8cpu.LdInst, operandsReg},
}

// Instruction returns the retrogolib instruction definition of the kind,
// or nil for an invalid kind.
func (k Kind) Instruction() *chip8cpu.Instruction {
	if k == Invalid || k >= kindCount {
		return nil
	}
	return kinds[k].ins
}

// Name returns the instruction mnemonic of the kind.
func (k Kind) Name() string {
	ins := k.Instruction()
	if ins == nil {
		return ""
	}
	return ins.Name
}

// Valid returns whether the kind identifies a decodable operation.
func (k Kind) Valid() bool {
	return k > Invalid && k < kindCount
}
