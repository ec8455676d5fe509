package host

import (
	"strings"
	"testing"

	"github.com/retroenv/retrochip8/internal/arch/chip8"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/assert"
)

func TestHistory(t *testing.T) {
	var h History
	assert.Empty(t, h.Entries())

	for i := range HistorySize + 3 {
		h.Add(vm.Cycle{PC: uint16(0x200 + 2*i)})
	}

	entries := h.Entries()
	assert.Len(t, entries, HistorySize)
	assert.Equal(t, uint16(0x206), entries[0].PC)
	assert.Equal(t, uint16(0x200+2*(HistorySize+2)), entries[HistorySize-1].PC)
}

func TestHistory_Lines(t *testing.T) {
	op, err := chip8.Decode(0x6105)
	assert.NoError(t, err)

	var h History
	h.Add(vm.Cycle{PC: 0x200, Opcode: 0x6105, Operation: op})

	lines := h.Lines()
	assert.Len(t, lines, 1)
	assert.Equal(t, "$0200  6105  ld V1, $05", lines[0])
}

func TestRegisterDump(t *testing.T) {
	var state vm.State
	state.V[0xA] = 0x3C
	state.I = 0x123
	state.PC = 0x200
	state.SP = 2

	dump := RegisterDump(state)
	lines := strings.Split(strings.TrimSuffix(dump, "\n"), "\n")
	assert.Len(t, lines, 5)
	assert.Equal(t, "V0: 00  V1: 00  V2: 00  V3: 00", lines[0])
	assert.Equal(t, "V8: 00  V9: 00  VA: 3C  VB: 00", lines[2])
	assert.Equal(t, "I: 0123  PC: 0200  SP: 02  DT: 00  ST: 00", lines[4])
}
