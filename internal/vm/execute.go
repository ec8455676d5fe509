package vm

import (
	"fmt"

	"github.com/retroenv/retrochip8/internal/arch/chip8"
)

// Execute applies a decoded operation to the machine state. The program
// counter is expected to already point past the instruction, as done by
// Fetch. On error the state is not modified.
func (m *Machine) Execute(op chip8.Operation) (Outcome, error) {
	switch op.Kind {
	case chip8.Ret, chip8.Jp, chip8.Call, chip8.JpV0:
		return Advanced, m.executeFlow(op)

	case chip8.SeByte, chip8.SneByte, chip8.SeReg, chip8.SneReg, chip8.Skp, chip8.Sknp:
		return Advanced, m.executeSkip(op)

	case chip8.LdVxK:
		return m.waitForKey(op)
	}

	// all remaining instructions continue with the next instruction
	if err := checkProgramCounter(uint32(m.state.PC)); err != nil {
		return Advanced, err
	}

	switch op.Kind {
	case chip8.Cls:
		m.state.Display.Clear()

	case chip8.LdByte, chip8.AddByte, chip8.LdReg, chip8.Or, chip8.And, chip8.Xor,
		chip8.AddReg, chip8.Sub, chip8.Shr, chip8.Subn, chip8.Shl, chip8.Rnd:
		m.executeArithmetic(op)

	case chip8.Drw:
		return Advanced, m.draw(op)

	case chip8.LdVxDT, chip8.LdDTVx, chip8.LdSTVx:
		m.executeTimer(op)

	case chip8.LdI, chip8.AddI, chip8.LdF, chip8.LdB, chip8.LdIVx, chip8.LdVxI:
		return Advanced, m.executeIndex(op)

	default:
		return Advanced, fmt.Errorf("%w: $%04X", chip8.ErrUnknownOpcode, op.Opcode)
	}
	return Advanced, nil
}

// executeFlow handles instructions that change the program flow.
func (m *Machine) executeFlow(op chip8.Operation) error {
	s := &m.state

	switch op.Kind {
	case chip8.Ret:
		if s.SP == 0 {
			return fmt.Errorf("%w: return with empty stack", ErrStackUnderflow)
		}
		s.SP--
		s.PC = s.Stack[s.SP]

	case chip8.Jp:
		if err := checkJumpTarget(uint32(op.NNN)); err != nil {
			return err
		}
		s.PC = op.NNN

	case chip8.Call:
		if err := checkJumpTarget(uint32(op.NNN)); err != nil {
			return err
		}
		if int(s.SP) >= StackSize {
			return fmt.Errorf("%w: call depth exceeds %d", ErrStackOverflow, StackSize)
		}
		s.Stack[s.SP] = s.PC
		s.SP++
		s.PC = op.NNN

	case chip8.JpV0:
		target := uint32(op.NNN) + uint32(s.V[0])
		if err := checkJumpTarget(target); err != nil {
			return err
		}
		s.PC = uint16(target)
	}
	return nil
}

// executeSkip handles the conditional skip instructions. A skip can not
// move the program counter past the last instruction address.
func (m *Machine) executeSkip(op chip8.Operation) error {
	s := &m.state
	vx, vy := s.V[op.X], s.V[op.Y]

	var skip bool
	switch op.Kind {
	case chip8.SeByte:
		skip = vx == op.KK
	case chip8.SneByte:
		skip = vx != op.KK
	case chip8.SeReg:
		skip = vx == vy
	case chip8.SneReg:
		skip = vx != vy
	case chip8.Skp:
		skip = s.Keys.Pressed(vx)
	case chip8.Sknp:
		skip = !s.Keys.Pressed(vx)
	}

	next := uint32(s.PC)
	if skip {
		next += chip8.OpcodeSize
	}
	if err := checkProgramCounter(next); err != nil {
		return err
	}

	s.PC = uint16(next)
	return nil
}

// executeArithmetic handles the register load, arithmetic and logic
// instructions. Flag results are written after the result register, a
// flag producing instruction with Vx being VF leaves the flag in VF.
func (m *Machine) executeArithmetic(op chip8.Operation) {
	s := &m.state
	vx, vy := s.V[op.X], s.V[op.Y]

	var result, flag byte
	setFlag := true

	switch op.Kind {
	case chip8.LdByte:
		result, setFlag = op.KK, false
	case chip8.AddByte:
		result, setFlag = vx+op.KK, false
	case chip8.LdReg:
		result, setFlag = vy, false
	case chip8.Rnd:
		result, setFlag = byte(m.random.Uint32())&op.KK, false

	case chip8.Or:
		result = vx | vy
	case chip8.And:
		result = vx & vy
	case chip8.Xor:
		result = vx ^ vy

	case chip8.AddReg:
		sum := uint16(vx) + uint16(vy)
		result = byte(sum)
		flag = byte(sum >> 8)
	case chip8.Sub:
		result = vx - vy
		flag = boolToFlag(vx >= vy)
	case chip8.Subn:
		result = vy - vx
		flag = boolToFlag(vy >= vx)

	case chip8.Shr:
		result = vx >> 1
		flag = vx & 0x01
	case chip8.Shl:
		result = vx << 1
		flag = vx >> 7
	}

	s.V[op.X] = result
	if setFlag {
		s.V[FlagRegister] = flag
	}
}

// draw handles DRW Vx, Vy, n.
func (m *Machine) draw(op chip8.Operation) error {
	s := &m.state
	if err := checkMemory(s.I, int(op.N)); err != nil {
		return err
	}

	rows := s.Memory[s.I : int(s.I)+int(op.N)]
	collision := s.Display.DrawSprite(s.V[op.X], s.V[op.Y], rows)
	s.V[FlagRegister] = boolToFlag(collision)
	return nil
}

// waitForKey handles LD Vx, K. Without a pressed key the program counter is
// rewound to repeat the instruction in the next cycle.
func (m *Machine) waitForKey(op chip8.Operation) (Outcome, error) {
	s := &m.state

	key, ok := s.Keys.FirstPressed()
	if !ok {
		s.PC -= chip8.OpcodeSize
		return AwaitingKey, nil
	}

	if err := checkProgramCounter(uint32(s.PC)); err != nil {
		return Advanced, err
	}
	s.V[op.X] = key
	return Advanced, nil
}

// executeTimer handles the delay and sound timer instructions.
func (m *Machine) executeTimer(op chip8.Operation) {
	s := &m.state

	switch op.Kind {
	case chip8.LdVxDT:
		s.V[op.X] = s.DT
	case chip8.LdDTVx:
		s.DT = s.V[op.X]
	case chip8.LdSTVx:
		s.ST = s.V[op.X]
	}
}

// executeIndex handles the instructions that use the index register.
func (m *Machine) executeIndex(op chip8.Operation) error {
	s := &m.state
	count := int(op.X) + 1

	switch op.Kind {
	case chip8.LdI:
		s.I = op.NNN

	case chip8.AddI:
		s.I += uint16(s.V[op.X])

	case chip8.LdF:
		s.I = uint16(s.V[op.X]&0x0F) * FontGlyphSize

	case chip8.LdB:
		if err := checkMemory(s.I, 3); err != nil {
			return err
		}
		value := s.V[op.X]
		s.Memory[s.I] = value / 100
		s.Memory[s.I+1] = value / 10 % 10
		s.Memory[s.I+2] = value % 10

	case chip8.LdIVx:
		if err := checkMemory(s.I, count); err != nil {
			return err
		}
		copy(s.Memory[s.I:], s.V[:count])
		m.advanceIndex(count)

	case chip8.LdVxI:
		if err := checkMemory(s.I, count); err != nil {
			return err
		}
		copy(s.V[:count], s.Memory[s.I:])
		m.advanceIndex(count)
	}
	return nil
}

// advanceIndex moves the index register past the registers that were
// stored or loaded, if enabled by the quirk settings.
func (m *Machine) advanceIndex(count int) {
	if m.quirks.IndexIncrement {
		m.state.I += uint16(count)
	}
}

func boolToFlag(b bool) byte {
	if b {
		return 1
	}
	return 0
}
