// Package vm implements the CHIP-8 virtual machine.
//
// A Machine owns all interpreter state: registers, memory, stack, timers, the
// 64×32 monochrome framebuffer and the 16-key input latch. Execution is step
// driven and single threaded, every call to Step runs exactly one
// fetch, decode and execute cycle to completion:
//
//	m, err := vm.New(vm.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	if err := m.LoadROM(rom); err != nil {
//		return err
//	}
//	for {
//		cycle, err := m.Step()
//		if err != nil {
//			return err
//		}
//		...
//	}
//
// An instruction either fully commits or leaves the machine untouched, a failed
// Step can be reported and restarted. The delay and sound timers are not
// decremented by instruction execution, the host has to call TickTimers at 60 Hz.
//
// The machine is not safe for concurrent use. Observers that need to read the
// state from another goroutine have to work on a copy returned by Snapshot.
package vm
