// Package host runs a CHIP-8 virtual machine in a terminal. It paces the
// instruction execution, ticks the timers at 60 Hz, latches key input and
// renders the display.
package host

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/retrochip8/internal/arch/chip8"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

const (
	// TimerFrequency is the frequency in Hz of the delay and sound timers.
	TimerFrequency = 60

	// DefaultHz is the default number of instructions executed per second.
	DefaultHz = 700

	// keyHoldFrames is the number of timer frames that a key stays pressed.
	// Terminals only report key presses, a key is released after this time
	// unless it is reported again by the keyboard repeat.
	keyHoldFrames = 6
)

// Config contains the runner settings.
type Config struct {
	Hz          int    // instructions per second
	Cycles      uint64 // stop after this number of cycles, 0 runs until cancelled
	Trace       bool   // log every executed instruction
	SkipUnknown bool   // skip unknown opcodes instead of stopping
}

// Runner drives a machine.
type Runner struct {
	logger  *log.Logger
	machine *vm.Machine
	cfg     Config

	renderer *Renderer
	input    <-chan KeyEvent

	history  History
	keyHold  [vm.KeyCount]int // remaining frames until a key is released
	executed uint64
}

// New returns a new runner for the machine.
func New(logger *log.Logger, machine *vm.Machine, cfg Config) *Runner {
	if cfg.Hz <= 0 {
		cfg.Hz = DefaultHz
	}
	return &Runner{
		logger:  logger,
		machine: machine,
		cfg:     cfg,
	}
}

// SetRenderer sets the renderer that draws a frame after every timer tick.
func (r *Runner) SetRenderer(renderer *Renderer) {
	r.renderer = renderer
}

// SetInput sets the channel that key presses are read from.
func (r *Runner) SetInput(input <-chan KeyEvent) {
	r.input = input
}

// Run executes the machine in real time until the context is cancelled,
// escape is pressed, the configured number of cycles was executed or an
// execution fault occurs.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.Debug("Starting execution",
		log.Int("hz", r.cfg.Hz),
		log.Int("cycles", int(r.cfg.Cycles)))

	ticker := time.NewTicker(time.Second / TimerFrequency)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Debug("Execution cancelled", log.Int("executed", int(r.executed)))
			return fmt.Errorf("running: %w", ctx.Err())

		case event, ok := <-r.input:
			if !ok {
				r.input = nil
				continue
			}
			if event.Quit {
				r.logger.Debug("Execution stopped by user", log.Int("executed", int(r.executed)))
				return nil
			}
			r.pressKey(event.Key)

		case <-ticker.C:
			done, err := r.frame()
			if err != nil || done {
				return err
			}
		}
	}
}

// RunCycles executes the configured number of cycles as fast as possible,
// ticking the timers after every frame worth of instructions. It is used
// for running without a terminal.
func (r *Runner) RunCycles(ctx context.Context) error {
	if r.cfg.Cycles == 0 {
		return errors.New("number of cycles to run not set")
	}

	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("running: %w", err)
		}

		done, err := r.frame()
		if err != nil || done {
			return err
		}
	}
}

// frame executes the instructions of one timer frame, ticks the timers and
// renders the display. It returns true when the configured number of cycles
// was executed.
func (r *Runner) frame() (bool, error) {
	for range r.cyclesPerFrame() {
		if r.cfg.Cycles > 0 && r.executed >= r.cfg.Cycles {
			r.logger.Debug("Cycle limit reached", log.Int("executed", int(r.executed)))
			return true, nil
		}
		if err := r.step(); err != nil {
			return false, err
		}
	}

	r.machine.TickTimers()
	r.releaseKeys()

	if r.renderer != nil {
		if err := r.renderer.Render(r.machine.Snapshot(), r.history.Lines()); err != nil {
			return false, err
		}
	}
	return false, nil
}

// step executes a single cycle.
func (r *Runner) step() error {
	pc := r.machine.PC()

	cycle, err := r.machine.Step()
	if err != nil {
		if r.cfg.SkipUnknown && errors.Is(err, chip8.ErrUnknownOpcode) {
			r.logger.Warn("Skipping unknown opcode",
				log.Hex("address", pc),
				log.Hex("opcode", cycle.Opcode))
			r.machine.Skip()
			r.executed++
			return nil
		}

		r.logFault(err)
		return fmt.Errorf("executing cycle %d: %w", r.executed, err)
	}

	r.executed++
	r.history.Add(cycle)

	if r.cfg.Trace {
		r.logger.Debug("Executed",
			log.Hex("address", cycle.PC),
			log.Hex("opcode", cycle.Opcode),
			log.String("instruction", cycle.Operation.String()),
			log.Stringer("outcome", cycle.Outcome))
	}
	return nil
}

// logFault logs an execution fault followed by the instruction history.
func (r *Runner) logFault(err error) {
	r.logger.Error("Execution fault", log.Err(err))
	for _, line := range r.history.Lines() {
		r.logger.Error("History", log.String("instruction", line))
	}
}

func (r *Runner) cyclesPerFrame() int {
	return max(1, r.cfg.Hz/TimerFrequency)
}

// pressKey latches a key as pressed for keyHoldFrames timer frames.
func (r *Runner) pressKey(key byte) {
	if int(key) >= vm.KeyCount {
		return
	}
	r.machine.SetKey(key, true)
	r.keyHold[key] = keyHoldFrames
}

// releaseKeys releases all keys whose hold time expired.
func (r *Runner) releaseKeys() {
	for key, frames := range r.keyHold {
		if frames == 0 {
			continue
		}
		frames--
		r.keyHold[key] = frames
		if frames == 0 {
			r.machine.SetKey(byte(key), false)
		}
	}
}

// Executed returns the number of executed cycles.
func (r *Runner) Executed() uint64 {
	return r.executed
}

// History returns the most recently executed instructions, oldest first.
func (r *Runner) History() []vm.Cycle {
	return r.history.Entries()
}
