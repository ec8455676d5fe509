// Package chip8 provides the CHIP-8 instruction decoder.
//
// # Instruction Set
//
// CHIP-8 has a simple instruction set with 34 opcodes:
//   - All instructions are 2 bytes (16 bits), stored big-endian
//   - Instructions use direct addressing with 12-bit addresses
//   - 16 general-purpose 8-bit registers (V0-VF), VF doubles as flag register
//   - Special-purpose registers: I (16-bit), PC, SP, DT and ST
//
// # Decoding
//
// An opcode is split into four nibbles. The top nibble selects a row of the
// decode table, each row entry is a mask/value pair that has to match the full
// opcode. The 0x0, 0x8, 0xE and 0xF families share their leading nibble between
// many instructions and are disambiguated by the low nibble(s):
//
//	op, err := chip8.Decode(0x6105)
//	if err != nil {
//		return fmt.Errorf("decoding opcode: %w", err)
//	}
//	fmt.Println(op) // ld V1, $05
//
// Decoding is pure, the same opcode always decodes to the same Operation.
// Opcodes that match no table entry return an error wrapping ErrUnknownOpcode.
//
// # Instruction Definitions
//
// Every operation kind is linked to the matching retrogolib CHIP-8 instruction
// definition, which provides the mnemonic and the instruction family used for
// control flow classification.
//
// # Supported Operations
//
//   - Flow control: JP, CALL, RET
//   - Conditional skips: SE, SNE, SKP, SKNP
//   - Arithmetic and logic: ADD, SUB, SUBN, OR, AND, XOR, SHR, SHL
//   - Memory: LD (registers, index register, BCD, register dump and load)
//   - Graphics: CLS, DRW
//   - Timers and random numbers: LD DT, LD ST, RND
package chip8
