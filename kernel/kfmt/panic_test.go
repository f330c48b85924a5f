package kfmt

import (
	"bytes"
	"errors"
	"sync/atomic"
	"testing"

	"consoleos/kernel"
)

func TestPanic(t *testing.T) {
	defer func(orig func()) { cpuHaltFn = orig }(cpuHaltFn)
	defer atomic.StoreUint32(&panicked, 0)
	defer SetOutputSink(nil)

	var cpuHaltCalled bool
	cpuHaltFn = func() {
		cpuHaltCalled = true
	}

	reset := func() *bytes.Buffer {
		var buf bytes.Buffer
		SetOutputSink(&buf)
		cpuHaltCalled = false
		atomic.StoreUint32(&panicked, 0)
		return &buf
	}

	t.Run("with *kernel.Error", func(t *testing.T) {
		buf := reset()

		Panic(&kernel.Error{Module: "test", Message: "panic test"})

		exp := "\n-----------------------------------\n[test] unrecoverable error: panic test\n*** kernel panic: system halted ***\n-----------------------------------\n"
		if got := buf.String(); got != exp {
			t.Fatalf("expected to get:\n%q\ngot:\n%q", exp, got)
		}
		if !cpuHaltCalled {
			t.Fatal("expected cpu.Halt() to be called by Panic")
		}
		if !Panicked() {
			t.Fatal("expected Panicked() to report true after Panic")
		}
	})

	t.Run("with error", func(t *testing.T) {
		buf := reset()

		Panic(errors.New("go error"))

		exp := "\n-----------------------------------\n[rt] unrecoverable error: go error\n*** kernel panic: system halted ***\n-----------------------------------\n"
		if got := buf.String(); got != exp {
			t.Fatalf("expected to get:\n%q\ngot:\n%q", exp, got)
		}
		if !cpuHaltCalled {
			t.Fatal("expected cpu.Halt() to be called by Panic")
		}
	})

	t.Run("with string", func(t *testing.T) {
		buf := reset()

		Panic("string error")

		exp := "\n-----------------------------------\n[rt] unrecoverable error: string error\n*** kernel panic: system halted ***\n-----------------------------------\n"
		if got := buf.String(); got != exp {
			t.Fatalf("expected to get:\n%q\ngot:\n%q", exp, got)
		}
		if !cpuHaltCalled {
			t.Fatal("expected cpu.Halt() to be called by Panic")
		}
	})

	t.Run("without error", func(t *testing.T) {
		buf := reset()

		Panic(nil)

		exp := "\n-----------------------------------\n*** kernel panic: system halted ***\n-----------------------------------\n"
		if got := buf.String(); got != exp {
			t.Fatalf("expected to get:\n%q\ngot:\n%q", exp, got)
		}
		if !cpuHaltCalled {
			t.Fatal("expected cpu.Halt() to be called by Panic")
		}
	})
}
