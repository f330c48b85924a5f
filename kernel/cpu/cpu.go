// Package cpu exposes the handful of CPU-level primitives that the console
// core needs from the host: halting execution and gating interrupt delivery
// while a panic is in progress. On real hardware these hook into arch-specific
// assembly; this module targets the portable emulation described in the
// design notes, so the default implementations are plain Go that a test
// harness can substitute.
package cpu

var (
	// haltFn is invoked by Halt. Tests replace it to observe that a panic
	// reached the halt step without actually freezing the test binary.
	haltFn = func() {
		select {}
	}

	disableInterruptsFn = func() {}
	enableInterruptsFn  = func() {}
)

// Halt stops instruction execution on the calling CPU. It never returns.
func Halt() {
	haltFn()
}

// DisableInterrupts masks interrupt delivery on the calling CPU.
func DisableInterrupts() {
	disableInterruptsFn()
}

// EnableInterrupts unmasks interrupt delivery on the calling CPU.
func EnableInterrupts() {
	enableInterruptsFn()
}
