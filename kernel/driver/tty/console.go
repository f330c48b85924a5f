package tty

import (
	"io"

	"consoleos/device"
	"consoleos/kernel"
	"consoleos/kernel/kfmt"
	ksync "consoleos/kernel/sync"
)

// Console wires together the Screen, Editor, DeviceIO and CondScheduler
// into the single console instance a kernel binds to its device switch. It
// also implements device.Driver so it can register itself the way every
// other driver in the tree does.
type Console struct {
	Screen    *Screen
	Editor    *Editor
	Device    *DeviceIO
	Scheduler *CondScheduler
}

// NewConsole builds a Console over the given hardware collaborators and
// command list. commands may be nil, disabling tab completion. dumpTasks
// may be nil, making Ctrl-P a no-op beyond clearing selection.
func NewConsole(fb Framebuffer, cursor CursorPort, serial SerialSink, commands []string, dumpTasks func()) *Console {
	scr := NewScreen(fb, cursor, serial)
	lock := &ksync.Spinlock{}
	sched := NewCondScheduler(lock)

	var completer *Completer
	if commands != nil {
		completer = NewCompleter(commands)
	}

	ed := NewEditor(scr, sched, lock, completer, dumpTasks)
	return &Console{
		Screen:    scr,
		Editor:    ed,
		Device:    NewDeviceIO(ed),
		Scheduler: sched,
	}
}

// DriverName implements device.Driver.
func (c *Console) DriverName() string { return "console" }

// DriverVersion implements device.Driver.
func (c *Console) DriverVersion() (major, minor, patch uint16) { return 1, 0, 0 }

// DriverInit implements device.Driver: it points the kfmt output sink at w,
// prefixed so anything Printf'd through the completer's match listing reads
// as coming from the console rather than whatever else shares w, and resets
// the console's editing state.
func (c *Console) DriverInit(w io.Writer) *kernel.Error {
	kfmt.SetOutputSink(&kfmt.PrefixWriter{Sink: w, Prefix: []byte("console: ")})
	c.Device.Init(nil, nil)
	return nil
}

// Register adds the console to the device registry at the given probe
// order, the way a real boot sequence would pick it up alongside every
// other driver.
func (c *Console) Register(order device.DetectOrder) {
	device.RegisterDriver(&device.DriverInfo{Order: order, Driver: c})
}

var _ device.Driver = (*Console)(nil)
