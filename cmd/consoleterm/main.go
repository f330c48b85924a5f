// Command consoleterm drives the line-editing console against a real
// terminal: it puts stdin into raw mode, feeds every byte (decoding arrow
// keys into tty.KeyLeft/tty.KeyRight) through Editor.Intr exactly the way a
// keyboard ISR would, and prints each committed line back out.
package main

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"

	"consoleos/device"
	"consoleos/kernel/driver/tty"
	"consoleos/kernel/kfmt"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "consoleterm:", err)
		os.Exit(1)
	}
}

func run() error {
	fd := int(os.Stdin.Fd())

	orig, err := enableRawMode(fd)
	if err != nil {
		return fmt.Errorf("enabling raw mode: %w", err)
	}
	defer disableRawMode(fd, orig)

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt)
	go func() {
		<-sigc
		disableRawMode(fd, orig)
		os.Exit(0)
	}()

	kfmt.SetOutputSink(os.Stdout)

	console := tty.NewConsole(
		tty.NewMemFramebuffer(),
		&tty.IntCursorPort{},
		&stdoutSerial{w: bufio.NewWriter(os.Stdout)},
		tty.DefaultCommands,
		nil,
	)
	console.Register(device.DetectOrderLast)
	console.Device.Init(nil, nil)

	// Each keystroke fires Intr exactly once, the way a keyboard IRQ fires
	// once per byte: Intr holds the console lock for the call, so a single
	// invocation must never block on I/O itself, or Device.Read below would
	// never get a turn to acquire the lock and sleep.
	in := bufio.NewReader(os.Stdin)
	go func() {
		for {
			key := nextKeyCode(in)
			if key < 0 {
				return
			}
			delivered := false
			console.Editor.Intr(func() int {
				if delivered {
					return -1
				}
				delivered = true
				return key
			})
		}
	}()

	for {
		line := make([]byte, tty.BufSize)
		n := console.Device.Read(nil, nil, line)
		if n <= 0 {
			return nil
		}
		kfmt.Printf("%s", line[:n])
	}
}

// nextKeyCode reads one logical key from in, decoding a CSI arrow-key
// sequence (ESC [ C / ESC [ D) into tty.KeyRight/tty.KeyLeft. It returns -1
// on read error, which stops the key-feeding loop in run.
func nextKeyCode(in *bufio.Reader) int {
	b, err := in.ReadByte()
	if err != nil {
		return -1
	}
	if b != 0x1b {
		return int(b)
	}

	b2, err := in.ReadByte()
	if err != nil || b2 != '[' {
		return 0x1b
	}
	b3, err := in.ReadByte()
	if err != nil {
		return 0x1b
	}
	switch b3 {
	case 'C':
		return tty.KeyRight
	case 'D':
		return tty.KeyLeft
	default:
		return 0x1b
	}
}

// stdoutSerial mirrors the console's byte-at-a-time output to the real
// terminal, standing in for the UART the original console wrote to.
type stdoutSerial struct {
	w *bufio.Writer
}

func (s *stdoutSerial) WriteByte(b byte) error {
	err := s.w.WriteByte(b)
	s.w.Flush()
	return err
}

func enableRawMode(fd int) (*unix.Termios, error) {
	orig, err := unix.IoctlGetTermios(fd, ioctlGetTermiosReq)
	if err != nil {
		return nil, err
	}
	raw := *orig
	raw.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	raw.Oflag &^= unix.OPOST
	raw.Cflag |= unix.CS8
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0
	if err := unix.IoctlSetTermios(fd, ioctlSetTermiosReq, &raw); err != nil {
		return nil, err
	}
	return orig, nil
}

func disableRawMode(fd int, orig *unix.Termios) {
	if orig == nil {
		return
	}
	_ = unix.IoctlSetTermios(fd, ioctlSetTermiosReq, orig)
}

const (
	ioctlGetTermiosReq = syscall.TCGETS
	ioctlSetTermiosReq = syscall.TCSETS
)
