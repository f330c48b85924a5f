package tty

import (
	"bytes"
	"testing"

	"consoleos/device"
	"consoleos/kernel/kfmt"
)

// bufSerialSink is a SerialSink that appends every mirrored byte to a buffer,
// standing in for a real UART so tests can assert on what Write rendered.
type bufSerialSink struct{ buf bytes.Buffer }

func (s *bufSerialSink) WriteByte(b byte) error { return s.buf.WriteByte(b) }

func TestConsoleDriverInitResetsStateAndSetsOutputSink(t *testing.T) {
	serial := &bufSerialSink{}
	con := NewConsole(NewMemFramebuffer(), &IntCursorPort{}, serial, DefaultCommands, nil)
	feed(con.Editor, 'x', 'y')

	var out bytes.Buffer
	if err := con.DriverInit(&out); err != nil {
		t.Fatalf("DriverInit returned an error: %v", err)
	}
	if con.Editor.lb.E() != 0 || con.Editor.lb.W() != 0 {
		t.Fatal("expected DriverInit to reset the line buffer")
	}

	// The typed "xy" was already mirrored to the serial sink; drop it so only
	// Write's own bytes are checked.
	serial.buf.Reset()
	con.Device.Write([]byte("hi"))
	if serial.buf.String() != "hi" {
		t.Fatalf("expected Write to mirror its bytes to the serial sink, got %q", serial.buf.String())
	}

	kfmt.Printf("hello\n")
	if out.String() != "console: hello\n" {
		t.Fatalf("expected DriverInit's sink to prefix Printf output, got %q", out.String())
	}
}

func TestConsoleRegisterAddsItselfToTheDriverRegistry(t *testing.T) {
	con := NewConsole(NewMemFramebuffer(), &IntCursorPort{}, DiscardSerialSink{}, nil, nil)
	con.Register(device.DetectOrderLast)

	found := false
	for _, info := range device.DriverList() {
		if info.Driver == con {
			found = true
			if info.Order != device.DetectOrderLast {
				t.Fatalf("expected DetectOrderLast, got %v", info.Order)
			}
		}
	}
	if !found {
		t.Fatal("expected Register to add the console to device.DriverList")
	}
}
