package cpu

import "testing"

func TestHalt(t *testing.T) {
	defer func(orig func()) { haltFn = orig }(haltFn)

	var called bool
	haltFn = func() { called = true }

	Halt()

	if !called {
		t.Fatal("expected Halt to invoke haltFn")
	}
}

func TestInterruptGating(t *testing.T) {
	defer func(orig func()) { disableInterruptsFn = orig }(disableInterruptsFn)
	defer func(orig func()) { enableInterruptsFn = orig }(enableInterruptsFn)

	var disabled, enabled bool
	disableInterruptsFn = func() { disabled = true }
	enableInterruptsFn = func() { enabled = true }

	DisableInterrupts()
	EnableInterrupts()

	if !disabled || !enabled {
		t.Fatalf("expected both gating functions to run, got disabled=%v enabled=%v", disabled, enabled)
	}
}
