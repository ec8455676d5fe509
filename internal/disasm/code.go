package disasm

import (
	"fmt"
	"slices"

	"github.com/retroenv/retrochip8/internal/arch/chip8"
	"github.com/retroenv/retrochip8/internal/program"
)

const (
	dataNaming  = "_data_%04x"
	funcNaming  = "_func_%04x"
	labelNaming = "_label_%04x"
)

// processJumpDestinations names all jump and call destinations.
func (dis *Disasm) processJumpDestinations() {
	branchDestinations := make([]uint16, 0, len(dis.branchDestinations))
	for dest := range dis.branchDestinations {
		branchDestinations = append(branchDestinations, dest)
	}
	slices.Sort(branchDestinations)

	for _, address := range branchDestinations {
		index, ok := dis.addressToIndex(address)
		if !ok || dis.insideInstruction(index) {
			continue
		}

		offsetInfo := &dis.offsets[index]
		if offsetInfo.Label != "" {
			continue
		}
		if offsetInfo.IsType(program.CallDestination) {
			offsetInfo.Label = fmt.Sprintf(funcNaming, address)
		} else {
			offsetInfo.Label = fmt.Sprintf(labelNaming, address)
		}
	}
}

// processDataReferences names all addresses that are loaded into the index
// register and updates all instructions that reference a named address.
func (dis *Disasm) processDataReferences() {
	for index := range dis.offsets {
		offsetInfo := &dis.offsets[index]
		if offsetInfo.IsType(program.DataReference) && offsetInfo.Label == "" && !dis.insideInstruction(index) {
			offsetInfo.Label = fmt.Sprintf(dataNaming, dis.indexToAddress(index))
		}
	}

	for index := range dis.offsets {
		offsetInfo := &dis.offsets[index]
		if !offsetInfo.IsType(program.CodeOffset) {
			continue
		}

		target, ok := offsetInfo.operation.Target()
		if !ok {
			continue
		}
		targetIndex, ok := dis.addressToIndex(target)
		if !ok {
			continue
		}
		offsetInfo.branchingTo = dis.offsets[targetIndex].Label
	}
}

// insideInstruction returns whether the index is the second byte of an instruction.
func (dis *Disasm) insideInstruction(index int) bool {
	return index > 0 && dis.offsets[index-1].IsType(program.CodeOffset)
}

// formatCode returns the asm output of a code offset, using the label of
// the address operand if the target is named.
func (dis *Disasm) formatCode(offsetInfo *offset) string {
	op := offsetInfo.operation
	if offsetInfo.branchingTo == "" {
		return op.String()
	}

	if op.Kind == chip8.LdI {
		return fmt.Sprintf("%s I, %s", op.Name(), offsetInfo.branchingTo)
	}
	return fmt.Sprintf("%s %s", op.Name(), offsetInfo.branchingTo)
}
