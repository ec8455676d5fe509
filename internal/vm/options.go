package vm

import (
	"math/rand/v2"
	"time"

	"github.com/retroenv/retrogolib/log"
)

// Quirks selects between historically diverging instruction behaviors.
//
// The following behaviors are fixed and not configurable: OR, AND and XOR
// reset VF to 0, SHR and SHL shift Vx in place and ignore Vy, DRW wraps
// sprites around both display edges.
type Quirks struct {
	// IndexIncrement advances I by x+1 after LD [I], Vx and LD Vx, [I].
	// The original COSMAC VIP interpreter behaves like this, later
	// interpreters leave I unchanged.
	IndexIncrement bool
}

// DefaultQuirks returns the default quirk settings.
func DefaultQuirks() Quirks {
	return Quirks{
		IndexIncrement: true,
	}
}

// RandomSource provides the random numbers for the RND instruction.
// *rand.Rand of math/rand/v2 implements it.
type RandomSource interface {
	Uint32() uint32
}

// NewRandomSource returns a deterministic random source for the given seed.
func NewRandomSource(seed uint64) RandomSource {
	return rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
}

// Option configures a Machine.
type Option func(*Machine) error

// WithQuirks sets the quirk settings. The default is DefaultQuirks.
func WithQuirks(quirks Quirks) Option {
	return func(m *Machine) error {
		m.quirks = quirks
		return nil
	}
}

// WithRandomSource sets the random source used by RND. The default is a
// source seeded from the current time.
func WithRandomSource(source RandomSource) Option {
	return func(m *Machine) error {
		m.random = source
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(m *Machine) error {
		m.logger = logger
		return nil
	}
}

// WithFont loads the font data into low memory, see LoadFont.
func WithFont(font []byte) Option {
	return func(m *Machine) error {
		return m.LoadFont(font)
	}
}

// defaultRandomSource returns a random source seeded from the current time.
func defaultRandomSource() RandomSource {
	return NewRandomSource(uint64(time.Now().UnixNano()))
}

// defaultLogger returns a logger that only outputs errors.
func defaultLogger() *log.Logger {
	cfg := log.DefaultConfig()
	cfg.Level = log.ErrorLevel
	return log.NewWithConfig(cfg)
}
