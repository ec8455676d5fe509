package vm

import (
	"fmt"

	"github.com/retroenv/retrochip8/internal/arch/chip8"
	"github.com/retroenv/retrogolib/log"
)

// Outcome describes how an executed instruction left the machine.
type Outcome uint8

const (
	// Advanced means that the instruction completed and the program counter
	// points to the next instruction.
	Advanced Outcome = iota
	// AwaitingKey means that LD Vx, K found no pressed key. The program
	// counter was rewound so that the next cycle executes it again.
	AwaitingKey
)

func (o Outcome) String() string {
	switch o {
	case Advanced:
		return "advanced"
	case AwaitingKey:
		return "awaiting key"
	default:
		return fmt.Sprintf("outcome(%d)", uint8(o))
	}
}

// Cycle describes one executed fetch, decode and execute cycle.
type Cycle struct {
	PC        uint16 // address the opcode was fetched from
	Opcode    uint16
	Operation chip8.Operation
	Outcome   Outcome
}

// Machine is a CHIP-8 virtual machine.
type Machine struct {
	logger *log.Logger
	quirks Quirks
	random RandomSource

	state  State
	cycles uint64
}

// New returns a new machine in power on state, the program counter points
// to the program start and all memory is zero.
func New(options ...Option) (*Machine, error) {
	m := &Machine{
		quirks: DefaultQuirks(),
		state:  newState(),
	}

	for _, option := range options {
		if err := option(m); err != nil {
			return nil, err
		}
	}

	if m.random == nil {
		m.random = defaultRandomSource()
	}
	if m.logger == nil {
		m.logger = defaultLogger()
	}
	return m, nil
}

// LoadROM copies the program into memory starting at the program start and
// resets the program counter. A program that does not fit is rejected before
// any memory is modified.
func (m *Machine) LoadROM(rom []byte) error {
	if len(rom) > chip8.MaxProgramSize {
		return fmt.Errorf("%w: %d bytes, maximum is %d", ErrRomTooLarge, len(rom), chip8.MaxProgramSize)
	}

	copy(m.state.Memory[chip8.ProgramStart:], rom)
	m.state.PC = chip8.ProgramStart

	m.logger.Debug("ROM loaded",
		log.Int("size", len(rom)),
		log.Hex("address", uint16(chip8.ProgramStart)))
	return nil
}

// LoadFont copies the hex digit glyphs into memory starting at address 0.
// Glyph d is expected to occupy FontGlyphSize bytes starting at d*FontGlyphSize.
func (m *Machine) LoadFont(font []byte) error {
	if len(font) > chip8.ProgramStart {
		return fmt.Errorf("%w: %d bytes, maximum is %d", ErrFontTooLarge, len(font), chip8.ProgramStart)
	}

	copy(m.state.Memory[:], font)

	m.logger.Debug("Font loaded", log.Int("size", len(font)))
	return nil
}

// Fetch reads the big-endian opcode at the program counter and advances the
// program counter by 2. If the opcode is not fully inside of memory, a memory
// fault is returned and the program counter is unchanged.
func (m *Machine) Fetch() (uint16, error) {
	pc := m.state.PC
	if pc > chip8.LastCodeAddress {
		return 0, fmt.Errorf("%w: fetching opcode at $%04X", ErrMemoryFault, pc)
	}

	opcode := uint16(m.state.Memory[pc])<<8 | uint16(m.state.Memory[pc+1])
	m.state.PC = pc + chip8.OpcodeSize
	return opcode, nil
}

// Step executes one fetch, decode and execute cycle. On error the machine
// state is the same as before the call, including the program counter.
func (m *Machine) Step() (Cycle, error) {
	pc := m.state.PC
	cycle := Cycle{PC: pc}

	opcode, err := m.Fetch()
	if err != nil {
		return cycle, err
	}
	cycle.Opcode = opcode

	op, err := chip8.Decode(opcode)
	if err != nil {
		m.state.PC = pc
		return cycle, fmt.Errorf("decoding opcode at $%04X: %w", pc, err)
	}
	cycle.Operation = op

	outcome, err := m.Execute(op)
	if err != nil {
		m.state.PC = pc
		return cycle, fmt.Errorf("executing '%s' at $%04X: %w", op, pc, err)
	}
	cycle.Outcome = outcome

	m.cycles++
	return cycle, nil
}

// Skip advances the program counter past the current instruction without
// executing it. Hosts can use it to tolerate unknown opcodes.
func (m *Machine) Skip() {
	m.state.PC += chip8.OpcodeSize
}

// TickTimers decrements the delay and sound timers towards zero. It has to
// be called at 60 Hz, independent of the instruction execution speed.
func (m *Machine) TickTimers() {
	if m.state.DT > 0 {
		m.state.DT--
	}
	if m.state.ST > 0 {
		m.state.ST--
	}
}

// SoundActive returns whether the sound timer is running.
func (m *Machine) SoundActive() bool {
	return m.state.ST > 0
}

// SetKey updates the key latch. Keys above 0xF are ignored.
func (m *Machine) SetKey(key byte, pressed bool) {
	m.state.Keys.Set(key, pressed)
}

// ReleaseKeys releases all keys of the key latch.
func (m *Machine) ReleaseKeys() {
	m.state.Keys.Reset()
}

// Display returns a copy of the framebuffer.
func (m *Machine) Display() Display {
	return m.state.Display
}

// PC returns the program counter.
func (m *Machine) PC() uint16 {
	return m.state.PC
}

// Cycles returns the number of successfully executed cycles.
func (m *Machine) Cycles() uint64 {
	return m.cycles
}

// Quirks returns the active quirk settings.
func (m *Machine) Quirks() Quirks {
	return m.quirks
}

// Snapshot returns a copy of the complete machine state.
func (m *Machine) Snapshot() State {
	return m.state
}
