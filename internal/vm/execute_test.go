package vm

import (
	"errors"
	"testing"

	"github.com/retroenv/retrochip8/internal/arch/chip8"
	"github.com/retroenv/retrogolib/assert"
)

var digitZero = []byte{0xF0, 0x90, 0x90, 0x90, 0xF0}

// execute decodes and executes a single opcode on the machine.
func execute(t *testing.T, m *Machine, opcode uint16) (Outcome, error) {
	t.Helper()

	op, err := chip8.Decode(opcode)
	assert.NoError(t, err)
	return m.Execute(op)
}

// mustExecute executes an opcode that is expected to succeed.
func mustExecute(t *testing.T, m *Machine, opcode uint16) {
	t.Helper()

	_, err := execute(t, m, opcode)
	assert.NoError(t, err)
}

func TestExecute_Cls(t *testing.T) {
	m := newTestMachine(t)
	for y := range Height {
		m.state.Display.DrawSprite(0, byte(y), []byte{0xFF})
	}
	assert.Equal(t, Width*Height/8, m.state.Display.Lit())

	mustExecute(t, m, 0x00E0)
	assert.Equal(t, 0, m.state.Display.Lit())
}

func TestExecute_Jumps(t *testing.T) {
	t.Run("jp", func(t *testing.T) {
		m := newTestMachine(t)
		mustExecute(t, m, 0x1ABC)
		assert.Equal(t, uint16(0xABC), m.PC())
	})

	t.Run("jp V0", func(t *testing.T) {
		m := newTestMachine(t)
		m.state.V[0] = 0x10
		mustExecute(t, m, 0xB300)
		assert.Equal(t, uint16(0x310), m.PC())
	})

	t.Run("jp V0 uses V0 only", func(t *testing.T) {
		m := newTestMachine(t)
		m.state.V[3] = 0x10
		mustExecute(t, m, 0xB300)
		assert.Equal(t, uint16(0x300), m.PC())
	})

	faults := []struct {
		name   string
		opcode uint16
		v0     byte
	}{
		{"jp below program start", 0x1100, 0},
		{"jp odd last byte", 0x1FFF, 0},
		{"call below program start", 0x2000, 0},
		{"jp V0 beyond memory", 0xBFFF, 0x01},
		{"jp V0 past last instruction", 0xBFF0, 0x0F},
		{"jp odd address", 0x1203, 0},
		{"call odd address", 0x2203, 0},
		{"jp V0 odd target", 0xB300, 0x01},
	}
	for _, tt := range faults {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine(t)
			m.state.V[0] = tt.v0
			before := m.Snapshot()

			_, err := execute(t, m, tt.opcode)
			assert.True(t, errors.Is(err, ErrMemoryFault))
			assert.True(t, before == m.Snapshot())
		})
	}
}

func TestExecute_EndOfProgramMemory(t *testing.T) {
	faults := []struct {
		name   string
		pc     uint16 // program counter after fetching the instruction
		opcode uint16
	}{
		{"skip past last instruction", 0xFFE, 0x3000},
		{"skip after last instruction", 0x1000, 0x3000},
		{"no skip after last instruction", 0x1000, 0x3001},
		{"load after last instruction", 0x1000, 0x6105},
		{"clear after last instruction", 0x1000, 0x00E0},
		{"index load after last instruction", 0x1000, 0xA300},
	}
	for _, tt := range faults {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine(t)
			m.state.PC = tt.pc
			before := m.Snapshot()

			_, err := execute(t, m, tt.opcode)
			assert.True(t, errors.Is(err, ErrMemoryFault))
			assert.True(t, before == m.Snapshot())
		})
	}

	t.Run("key pressed after last instruction", func(t *testing.T) {
		m := newTestMachine(t)
		m.state.PC = 0x1000
		m.SetKey(0x4, true)

		_, err := execute(t, m, 0xF10A)
		assert.True(t, errors.Is(err, ErrMemoryFault))
		assert.Equal(t, byte(0), m.state.V[1])
	})

	t.Run("wait for key at last instruction", func(t *testing.T) {
		m := newTestMachine(t)
		m.state.PC = 0x1000

		outcome, err := execute(t, m, 0xF10A)
		assert.NoError(t, err)
		assert.Equal(t, AwaitingKey, outcome)
		assert.Equal(t, uint16(0xFFE), m.PC())
	})

	t.Run("skip to last instruction", func(t *testing.T) {
		m := newTestMachine(t)
		m.state.PC = 0xFFC
		mustExecute(t, m, 0x3000)
		assert.Equal(t, uint16(0xFFE), m.PC())
	})

	t.Run("jump from last instruction", func(t *testing.T) {
		m := newTestMachine(t)
		m.state.PC = 0x1000
		mustExecute(t, m, 0x1200)
		assert.Equal(t, uint16(0x200), m.PC())
	})
}

func TestExecute_CallReturn(t *testing.T) {
	m := newTestMachine(t)
	m.state.PC = 0x202

	mustExecute(t, m, 0x2400)
	assert.Equal(t, uint16(0x400), m.PC())
	assert.Equal(t, uint8(1), m.state.SP)

	mustExecute(t, m, 0x00EE)
	assert.Equal(t, uint16(0x202), m.PC())
	assert.Equal(t, uint8(0), m.state.SP)
}

func TestExecute_StackOverflow(t *testing.T) {
	m := newTestMachine(t)
	for range StackSize {
		mustExecute(t, m, 0x2300)
	}
	assert.Equal(t, uint8(StackSize), m.state.SP)

	before := m.Snapshot()
	_, err := execute(t, m, 0x2300)
	assert.True(t, errors.Is(err, ErrStackOverflow))
	assert.True(t, before == m.Snapshot())

	for range StackSize {
		mustExecute(t, m, 0x00EE)
	}
	_, err = execute(t, m, 0x00EE)
	assert.True(t, errors.Is(err, ErrStackUnderflow))
	assert.Equal(t, uint8(0), m.state.SP)
}

func TestExecute_Skips(t *testing.T) {
	tests := []struct {
		name    string
		opcode  uint16
		vx, vy  byte
		key     int // pressed key, -1 for none
		skipped bool
	}{
		{"se byte equal", 0x3142, 0x42, 0, -1, true},
		{"se byte not equal", 0x3142, 0x41, 0, -1, false},
		{"sne byte equal", 0x4142, 0x42, 0, -1, false},
		{"sne byte not equal", 0x4142, 0x41, 0, -1, true},
		{"se reg equal", 0x5120, 0x07, 0x07, -1, true},
		{"se reg not equal", 0x5120, 0x07, 0x08, -1, false},
		{"sne reg equal", 0x9120, 0x07, 0x07, -1, false},
		{"sne reg not equal", 0x9120, 0x07, 0x08, -1, true},
		{"skp pressed", 0xE19E, 0x0A, 0, 0xA, true},
		{"skp not pressed", 0xE19E, 0x0A, 0, 0xB, false},
		{"skp key out of range", 0xE19E, 0x1A, 0, 0xA, false},
		{"sknp pressed", 0xE1A1, 0x0A, 0, 0xA, false},
		{"sknp not pressed", 0xE1A1, 0x0A, 0, -1, true},
		{"sknp key out of range", 0xE1A1, 0xFF, 0, 0xF, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine(t)
			m.state.PC = 0x202
			m.state.V[1] = tt.vx
			m.state.V[2] = tt.vy
			if tt.key >= 0 {
				m.SetKey(byte(tt.key), true)
			}

			mustExecute(t, m, tt.opcode)
			if tt.skipped {
				assert.Equal(t, uint16(0x204), m.PC())
			} else {
				assert.Equal(t, uint16(0x202), m.PC())
			}
		})
	}
}

func TestExecute_Arithmetic(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint16
		vx, vy byte
		result byte
		flag   byte
	}{
		{"ld byte", 0x6142, 0x00, 0x00, 0x42, 0xEE},
		{"add byte", 0x7101, 0xFF, 0x00, 0x00, 0xEE},
		{"ld reg", 0x8120, 0x01, 0x37, 0x37, 0xEE},
		{"or", 0x8121, 0xF0, 0x0F, 0xFF, 0x00},
		{"and", 0x8122, 0xF3, 0x3F, 0x33, 0x00},
		{"xor", 0x8123, 0xFF, 0x0F, 0xF0, 0x00},
		{"add overflow", 0x8124, 0xFF, 0x01, 0x00, 0x01},
		{"add no overflow", 0x8124, 0x01, 0x01, 0x02, 0x00},
		{"sub no borrow", 0x8125, 0x05, 0x03, 0x02, 0x01},
		{"sub borrow", 0x8125, 0x03, 0x05, 0xFE, 0x00},
		{"sub equal", 0x8125, 0x05, 0x05, 0x00, 0x01},
		{"subn no borrow", 0x8127, 0x03, 0x05, 0x02, 0x01},
		{"subn borrow", 0x8127, 0x05, 0x03, 0xFE, 0x00},
		{"shr odd", 0x8126, 0x05, 0xFF, 0x02, 0x01},
		{"shr even", 0x8126, 0x04, 0xFF, 0x02, 0x00},
		{"shl high bit", 0x812E, 0x81, 0x00, 0x02, 0x01},
		{"shl no high bit", 0x812E, 0x41, 0xFF, 0x82, 0x00},
		{"rnd", 0xC10F, 0x00, 0x00, 0x05, 0xEE},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine(t)
			m.state.V[1] = tt.vx
			m.state.V[2] = tt.vy
			m.state.V[FlagRegister] = 0xEE

			mustExecute(t, m, tt.opcode)
			assert.Equal(t, tt.result, m.state.V[1])
			assert.Equal(t, tt.flag, m.state.V[FlagRegister])
			assert.Equal(t, uint16(chip8.ProgramStart), m.PC())
		})
	}
}

func TestExecute_FlagRegisterAsOperand(t *testing.T) {
	tests := []struct {
		name     string
		opcode   uint16
		vf, vy   byte
		expected byte
	}{
		{"add overflow", 0x8F14, 0xFF, 0x01, 0x01},
		{"add no overflow", 0x8F14, 0x01, 0x01, 0x00},
		{"sub no borrow", 0x8F15, 0x05, 0x03, 0x01},
		{"shr", 0x8F06, 0x02, 0x00, 0x00},
		{"shl", 0x8F0E, 0x80, 0x00, 0x01},
		{"or", 0x8F11, 0x01, 0x02, 0x00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine(t)
			m.state.V[FlagRegister] = tt.vf
			m.state.V[1] = tt.vy

			mustExecute(t, m, tt.opcode)
			assert.Equal(t, tt.expected, m.state.V[FlagRegister])
		})
	}
}

func TestExecute_Rnd(t *testing.T) {
	m := newTestMachine(t, WithRandomSource(fixedRandom(0x1234_56C3)))
	mustExecute(t, m, 0xC3F0)
	assert.Equal(t, byte(0xC0), m.state.V[3])
}

func TestExecute_Draw(t *testing.T) {
	m := newTestMachine(t)
	copy(m.state.Memory[0x300:], digitZero)
	m.state.I = 0x300
	m.state.V[FlagRegister] = 0xEE

	mustExecute(t, m, 0xD015)
	assert.Equal(t, byte(0), m.state.V[FlagRegister])
	assert.Equal(t, 14, m.state.Display.Lit())

	display := m.Display()
	for row, data := range digitZero {
		for bit := range 8 {
			expected := data&(0x80>>bit) != 0
			assert.Equal(t, expected, display.Pixel(bit, row))
		}
	}

	mustExecute(t, m, 0xD015)
	assert.Equal(t, byte(1), m.state.V[FlagRegister])
	assert.Equal(t, 0, m.state.Display.Lit())
}

func TestExecute_DrawWrapsOrigin(t *testing.T) {
	m := newTestMachine(t)
	m.state.Memory[0x300] = 0xC0
	m.state.I = 0x300
	m.state.V[1] = Width + 63 // wraps to x 63
	m.state.V[2] = Height + 31

	mustExecute(t, m, 0xD121)
	display := m.Display()
	assert.True(t, display.Pixel(63, 31))
	assert.True(t, display.Pixel(0, 31))
	assert.Equal(t, 2, display.Lit())
}

func TestExecute_DrawMemoryFault(t *testing.T) {
	m := newTestMachine(t)
	m.state.I = 0xFFC
	m.state.V[FlagRegister] = 0xEE
	before := m.Snapshot()

	_, err := execute(t, m, 0xD015)
	assert.True(t, errors.Is(err, ErrMemoryFault))
	assert.True(t, before == m.Snapshot())

	m.state.I = 0xFFB
	mustExecute(t, m, 0xD015)
}

func TestExecute_WaitForKey(t *testing.T) {
	m := newTestMachine(t)
	m.state.PC = 0x202

	outcome, err := execute(t, m, 0xF50A)
	assert.NoError(t, err)
	assert.Equal(t, AwaitingKey, outcome)
	assert.Equal(t, uint16(0x200), m.PC())

	m.state.PC = 0x202
	m.SetKey(0xE, true)
	m.SetKey(0x9, true)
	outcome, err = execute(t, m, 0xF50A)
	assert.NoError(t, err)
	assert.Equal(t, Advanced, outcome)
	assert.Equal(t, uint16(0x202), m.PC())
	assert.Equal(t, byte(0x9), m.state.V[5])
}

func TestExecute_Timers(t *testing.T) {
	m := newTestMachine(t)
	m.state.V[1] = 0x30
	m.state.V[2] = 0x40

	mustExecute(t, m, 0xF115)
	mustExecute(t, m, 0xF218)
	assert.Equal(t, byte(0x30), m.state.DT)
	assert.Equal(t, byte(0x40), m.state.ST)

	m.TickTimers()
	mustExecute(t, m, 0xF307)
	assert.Equal(t, byte(0x2F), m.state.V[3])
	assert.Equal(t, byte(0x3F), m.state.ST)
}

func TestExecute_Index(t *testing.T) {
	t.Run("ld I", func(t *testing.T) {
		m := newTestMachine(t)
		mustExecute(t, m, 0xA123)
		assert.Equal(t, uint16(0x123), m.state.I)
	})

	t.Run("add I", func(t *testing.T) {
		m := newTestMachine(t)
		m.state.I = 0x100
		m.state.V[4] = 0xFF
		mustExecute(t, m, 0xF41E)
		assert.Equal(t, uint16(0x1FF), m.state.I)
	})

	t.Run("ld F", func(t *testing.T) {
		m := newTestMachine(t)
		m.state.V[2] = 0x0A
		mustExecute(t, m, 0xF229)
		assert.Equal(t, uint16(0x0A*FontGlyphSize), m.state.I)
	})

	t.Run("ld F uses low nibble", func(t *testing.T) {
		m := newTestMachine(t)
		m.state.V[2] = 0x3B
		mustExecute(t, m, 0xF229)
		assert.Equal(t, uint16(0x0B*FontGlyphSize), m.state.I)
	})

	t.Run("ld B", func(t *testing.T) {
		m := newTestMachine(t)
		m.state.I = 0x300
		m.state.V[7] = 254
		mustExecute(t, m, 0xF733)
		assert.Equal(t, byte(2), m.state.Memory[0x300])
		assert.Equal(t, byte(5), m.state.Memory[0x301])
		assert.Equal(t, byte(4), m.state.Memory[0x302])
		assert.Equal(t, uint16(0x300), m.state.I)
	})
}

func TestExecute_RegisterDumpLoad(t *testing.T) {
	tests := []struct {
		name      string
		quirks    Quirks
		expectedI uint16
	}{
		{"index increment", Quirks{IndexIncrement: true}, 0x304},
		{"index unchanged", Quirks{IndexIncrement: false}, 0x300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine(t, WithQuirks(tt.quirks))
			m.state.I = 0x300
			m.state.V = [RegisterCount]byte{1, 2, 3, 4, 5}

			mustExecute(t, m, 0xF355)
			assert.Equal(t, tt.expectedI, m.state.I)
			assert.Equal(t, byte(4), m.state.Memory[0x303])
			assert.Equal(t, byte(0), m.state.Memory[0x304])

			m.state.I = 0x300
			m.state.V = [RegisterCount]byte{}
			mustExecute(t, m, 0xF265)
			assert.Equal(t, byte(1), m.state.V[0])
			assert.Equal(t, byte(3), m.state.V[2])
			assert.Equal(t, byte(0), m.state.V[3])
			if tt.quirks.IndexIncrement {
				assert.Equal(t, uint16(0x303), m.state.I)
			} else {
				assert.Equal(t, uint16(0x300), m.state.I)
			}
		})
	}
}

func TestExecute_IndexMemoryFaults(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint16
		i      uint16
	}{
		{"ld B at end", 0xF033, 0xFFE},
		{"ld B beyond memory", 0xF033, 0xFFFF},
		{"dump beyond memory", 0xFF55, 0xFF1},
		{"load beyond memory", 0xF165, 0xFFF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine(t)
			m.state.I = tt.i
			m.state.V[0] = 0xFF
			before := m.Snapshot()

			_, err := execute(t, m, tt.opcode)
			assert.True(t, errors.Is(err, ErrMemoryFault))
			assert.True(t, before == m.Snapshot())
		})
	}
}

func TestExecute_InvalidOperation(t *testing.T) {
	m := newTestMachine(t)
	before := m.Snapshot()

	_, err := m.Execute(chip8.Operation{Opcode: 0xFFFF})
	assert.True(t, errors.Is(err, chip8.ErrUnknownOpcode))
	assert.True(t, before == m.Snapshot())
}
