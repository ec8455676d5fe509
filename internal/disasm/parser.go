package disasm

import (
	"context"
	"errors"
	"fmt"

	"github.com/retroenv/retrochip8/internal/arch/chip8"
	"github.com/retroenv/retrochip8/internal/program"
	"github.com/retroenv/retrogolib/log"
)

// followExecutionFlow parses opcodes and follows the execution flow to
// parse all code, starting at the program start.
func (dis *Disasm) followExecutionFlow(ctx context.Context) error {
	dis.addAddressToParse(chip8.ProgramStart)

	for len(dis.offsetsToParse) > 0 {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("following execution flow: %w", err)
		}

		address := dis.offsetsToParse[0]
		dis.offsetsToParse = dis.offsetsToParse[1:]

		if err := dis.parseOffset(address); err != nil {
			return err
		}
	}
	return nil
}

// parseOffset decodes the instruction at the address and queues all
// addresses that can be executed after it.
func (dis *Disasm) parseOffset(address uint16) error {
	if dis.offsetsParsed.Contains(address) {
		return nil
	}
	dis.offsetsParsed.Add(address)

	index, ok := dis.addressToIndex(address)
	if !ok || index+chip8.OpcodeSize > len(dis.rom) {
		dis.logger.Debug("Execution flow leaves ROM", log.Hex("address", address))
		return nil
	}

	if index > 0 && dis.offsets[index-1].IsType(program.CodeOffset) {
		dis.offsets[index].SetType(program.CodeAsData)
		dis.logger.Debug("Jump into instruction", log.Hex("address", address))
		return nil
	}

	opcode := uint16(dis.rom[index])<<8 | uint16(dis.rom[index+1])
	op, err := chip8.Decode(opcode)
	if err != nil {
		if !errors.Is(err, chip8.ErrUnknownOpcode) {
			return fmt.Errorf("decoding opcode at $%04X: %w", address, err)
		}
		offsetInfo := &dis.offsets[index]
		offsetInfo.SetType(program.CodeAsData)
		offsetInfo.Comment = "unknown opcode"
		dis.logger.Debug("Unknown opcode",
			log.Hex("address", address),
			log.Hex("opcode", opcode))
		return nil
	}

	if dis.offsets[index+1].IsType(program.CodeOffset) {
		// the second byte was parsed as instruction start before
		dis.offsets[index].SetType(program.CodeAsData)
		dis.logger.Debug("Overlapping instruction", log.Hex("address", address))
		return nil
	}

	offsetInfo := &dis.offsets[index]
	offsetInfo.SetType(program.CodeOffset)
	offsetInfo.operation = op

	dis.processFlow(address, op)
	return nil
}

// processFlow queues the addresses that the operation can continue execution at.
func (dis *Disasm) processFlow(address uint16, op chip8.Operation) {
	next := address + chip8.OpcodeSize

	switch {
	case op.IsReturn():
		return

	case op.IsCall():
		dis.addBranchDestination(op.NNN, program.CallDestination)
		dis.addAddressToParse(next)

	case op.IsJump():
		target, ok := op.Target()
		if !ok {
			// register offset jump, the target depends on V0
			return
		}
		dis.addBranchDestination(target, program.JumpDestination)

	case op.IsSkip():
		dis.addAddressToParse(next)
		dis.addAddressToParse(next + chip8.OpcodeSize)

	default:
		if op.IsDataReference() {
			dis.addDataReference(op.NNN)
		}
		dis.addAddressToParse(next)
	}
}

// addAddressToParse adds an address to the list to be processed if the
// address has not been processed yet.
func (dis *Disasm) addAddressToParse(address uint16) {
	if dis.offsetsToParseAdded.Contains(address) {
		return
	}
	dis.offsetsToParseAdded.Add(address)
	dis.offsetsToParse = append(dis.offsetsToParse, address)
}

// addBranchDestination marks the address as jump or call destination and
// queues it for parsing.
func (dis *Disasm) addBranchDestination(address uint16, typ program.OffsetType) {
	dis.addAddressToParse(address)

	index, ok := dis.addressToIndex(address)
	if !ok {
		return
	}
	dis.offsets[index].SetType(typ)
	dis.branchDestinations.Add(address)
}

// addDataReference marks the address as target of an index register load.
func (dis *Disasm) addDataReference(address uint16) {
	index, ok := dis.addressToIndex(address)
	if !ok {
		return
	}
	dis.offsets[index].SetType(program.DataReference)
}
