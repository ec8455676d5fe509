package host

import (
	"fmt"
	"strings"

	"github.com/retroenv/retrochip8/internal/vm"
)

// HistorySize is the number of executed instructions kept in the history.
const HistorySize = 15

// History keeps the most recently executed instructions, oldest first.
type History struct {
	entries []vm.Cycle
}

// Add appends an executed cycle and drops the oldest entry when the
// history is full.
func (h *History) Add(cycle vm.Cycle) {
	if len(h.entries) == HistorySize {
		copy(h.entries, h.entries[1:])
		h.entries = h.entries[:HistorySize-1]
	}
	h.entries = append(h.entries, cycle)
}

// Entries returns a copy of the history entries, oldest first.
func (h *History) Entries() []vm.Cycle {
	entries := make([]vm.Cycle, len(h.entries))
	copy(entries, h.entries)
	return entries
}

// Lines returns the history formatted as address, opcode and instruction.
func (h *History) Lines() []string {
	lines := make([]string, 0, len(h.entries))
	for _, cycle := range h.entries {
		lines = append(lines, formatCycle(cycle))
	}
	return lines
}

func formatCycle(cycle vm.Cycle) string {
	return fmt.Sprintf("$%04X  %04X  %s", cycle.PC, cycle.Opcode, cycle.Operation)
}

// RegisterDump formats the registers of the machine state.
func RegisterDump(state vm.State) string {
	var buf strings.Builder
	for row := range vm.RegisterCount / 4 {
		for col := range 4 {
			register := row*4 + col
			if col > 0 {
				buf.WriteString("  ")
			}
			fmt.Fprintf(&buf, "V%X: %02X", register, state.V[register])
		}
		buf.WriteByte('\n')
	}
	fmt.Fprintf(&buf, "I: %04X  PC: %04X  SP: %02X  DT: %02X  ST: %02X\n",
		state.I, state.PC, state.SP, state.DT, state.ST)
	return buf.String()
}
