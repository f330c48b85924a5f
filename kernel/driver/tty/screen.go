// Package tty implements the interactive line-editing console: a ring
// buffered input line rendered onto a text-mode screen, with selection,
// clipboard, undo, tab completion and the blocking character-device read
// path a kernel would bind to it. The hardware itself (framebuffer memory,
// the CRT cursor ports, the serial UART) is abstracted behind the
// Framebuffer, CursorPort and SerialSink interfaces below so the console
// logic can run, and be tested, without any real device backing it.
package tty

import (
	"consoleos/kernel"
	"consoleos/kernel/cpu"
	"consoleos/kernel/kfmt"
)

const (
	// Rows is the number of visible text rows.
	Rows = 25
	// Cols is the number of columns per row.
	Cols = 80
	// cellCount is the total number of addressable screen cells.
	cellCount = Rows * Cols

	normalAttr    = 0x07
	highlightAttr = 0x70

	// Backspace is the sentinel Screen.Put uses to move the cursor back one
	// cell without writing a glyph, instead of an ordinary byte value.
	Backspace = 0x100
)

// Framebuffer is the linear 25x80 cell memory the Screen renders into. Each
// cell packs an attribute byte in the high 8 bits and a character in the low
// 8 bits, matching the CGA text-mode layout this console was modeled on.
type Framebuffer interface {
	// Get returns the raw cell value at pos.
	Get(pos int) uint16
	// Set stores v at pos.
	Set(pos int, v uint16)
	// CopyWithin copies n cells starting at src to dst, as if by memmove.
	CopyWithin(dst, src, n int)
	// Clear zeroes cells in [from, to).
	Clear(from, to int)
}

// CursorPort is the hardware cursor register, addressed through the CRT
// index/data ports (0x3d4/0x3d5) on real hardware.
type CursorPort interface {
	Get() int
	Set(pos int)
}

// SerialSink is the UART the console mirrors every byte to.
type SerialSink interface {
	WriteByte(b byte) error
}

// MemFramebuffer is an in-memory Framebuffer, suitable for tests and for a
// userspace demo that renders the cells itself.
type MemFramebuffer [cellCount]uint16

// NewMemFramebuffer returns a zeroed Framebuffer backed by plain memory.
func NewMemFramebuffer() *MemFramebuffer { return &MemFramebuffer{} }

func (fb *MemFramebuffer) Get(pos int) uint16 { return fb[pos] }
func (fb *MemFramebuffer) Set(pos int, v uint16) { fb[pos] = v }

func (fb *MemFramebuffer) CopyWithin(dst, src, n int) {
	copy(fb[dst:dst+n], fb[src:src+n])
}

func (fb *MemFramebuffer) Clear(from, to int) {
	for i := from; i < to; i++ {
		fb[i] = 0
	}
}

// IntCursorPort is a CursorPort backed by a plain int, standing in for the
// CRT index register pair.
type IntCursorPort struct{ pos int }

func (p *IntCursorPort) Get() int    { return p.pos }
func (p *IntCursorPort) Set(pos int) { p.pos = pos }

// DiscardSerialSink throws away every byte. Useful when no real serial line
// is attached, e.g. in unit tests that only care about the framebuffer.
type DiscardSerialSink struct{}

func (DiscardSerialSink) WriteByte(byte) error { return nil }

// Screen renders the console's single editable line onto a Framebuffer,
// mirrors every byte to a SerialSink, and tracks the hardware cursor.
type Screen struct {
	fb     Framebuffer
	cursor CursorPort
	serial SerialSink
}

// NewScreen builds a Screen over the given collaborators.
func NewScreen(fb Framebuffer, cursor CursorPort, serial SerialSink) *Screen {
	return &Screen{fb: fb, cursor: cursor, serial: serial}
}

// GetCursor returns the current linear cursor position.
func (s *Screen) GetCursor() int { return s.cursor.Get() }

// SetCursor moves the hardware cursor to pos.
func (s *Screen) SetCursor(pos int) { s.cursor.Set(pos) }

// Put renders one byte (or the Backspace sentinel) at the current cursor
// position, advancing the cursor, scrolling the screen once the cursor
// reaches the bottom row (Rows-1), and mirroring the byte to the serial sink. If
// the system has already panicked, Put disables interrupts and spins
// instead of touching the framebuffer, freezing the screen for diagnosis.
func (s *Screen) Put(c int) {
	if kfmt.Panicked() {
		cpu.DisableInterrupts()
		select {}
	}

	s.mirrorToSerial(c)

	pos := s.cursor.Get()
	switch {
	case c == '\n':
		pos += Cols - pos%Cols
	case c == Backspace:
		if pos > 0 {
			pos--
		}
	default:
		s.fb.Set(pos, uint16(c&0xff)|(normalAttr<<8))
		pos++
	}

	if pos < 0 || pos > cellCount {
		kfmt.Panic(&kernel.Error{Module: "tty", Message: "screen cursor out of bounds"})
	}

	if pos/Cols >= Rows-1 {
		pos = s.scrollUp(pos)
	}

	s.cursor.Set(pos)
	if c == Backspace {
		s.fb.Set(pos, ' '|(normalAttr<<8))
	}
}

// scrollUp discards the top row, moving the next Rows-2 rows up by one and
// blanking from the (shifted) cursor position to the end of the last
// scrolled-into row, then returns the adjusted cursor position.
func (s *Screen) scrollUp(pos int) int {
	s.fb.CopyWithin(0, Cols, (Rows-2)*Cols)
	pos -= Cols
	s.fb.Clear(pos, (Rows-1)*Cols)
	return pos
}

// ScrollUpOneRow forces a scroll outside of a Put call, e.g. to clear the
// screen on init. The cursor is expected to already be on the last row.
func (s *Screen) ScrollUpOneRow() {
	s.cursor.Set(s.scrollUp(s.cursor.Get()))
}

// HighlightRange toggles the inverse-video attribute on cells [start, end),
// preserving whatever glyph is already there. Cells outside the visible
// framebuffer are silently skipped.
func (s *Screen) HighlightRange(start, end int, on bool) {
	if start < 0 {
		start = 0
	}
	if end > cellCount {
		end = cellCount
	}
	attr := uint16(normalAttr)
	if on {
		attr = highlightAttr
	}
	for pos := start; pos < end; pos++ {
		ch := s.fb.Get(pos) & 0x00ff
		s.fb.Set(pos, ch|(attr<<8))
	}
}

func (s *Screen) mirrorToSerial(c int) {
	if s.serial == nil {
		return
	}
	if c == Backspace {
		s.serial.WriteByte('\b')
		s.serial.WriteByte(' ')
		s.serial.WriteByte('\b')
		return
	}
	s.serial.WriteByte(byte(c))
}
