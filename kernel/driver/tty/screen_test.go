package tty

import "testing"

func newTestScreen() (*Screen, *MemFramebuffer, *IntCursorPort) {
	fb := NewMemFramebuffer()
	cursor := &IntCursorPort{}
	return NewScreen(fb, cursor, DiscardSerialSink{}), fb, cursor
}

func TestScreenPutWritesCellAndAdvancesCursor(t *testing.T) {
	scr, fb, cursor := newTestScreen()

	scr.Put('A')

	if got := fb.Get(0) & 0xff; got != 'A' {
		t.Fatalf("expected 'A' at cell 0, got %q", got)
	}
	if got := fb.Get(0) >> 8; got != normalAttr {
		t.Fatalf("expected normal attribute, got %#x", got)
	}
	if cursor.Get() != 1 {
		t.Fatalf("expected cursor at 1, got %d", cursor.Get())
	}
}

func TestScreenPutNewlineAdvancesToNextRow(t *testing.T) {
	scr, _, cursor := newTestScreen()
	scr.Put('A')
	scr.Put('\n')

	if cursor.Get() != Cols {
		t.Fatalf("expected cursor at start of row 1 (%d), got %d", Cols, cursor.Get())
	}
}

func TestScreenPutBackspaceErasesPriorCell(t *testing.T) {
	scr, fb, cursor := newTestScreen()
	scr.Put('A')
	scr.Put(Backspace)

	if cursor.Get() != 0 {
		t.Fatalf("expected cursor back at 0, got %d", cursor.Get())
	}
	if got := fb.Get(0) & 0xff; got != ' ' {
		t.Fatalf("expected cell cleared to space, got %q", got)
	}
}

func TestScreenScrollsOnOverflow(t *testing.T) {
	scr, fb, cursor := newTestScreen()
	cursor.Set((Rows - 1) * Cols)
	fb.Set(Cols, uint16('Z')|(normalAttr<<8)) // first cell of row 1

	scr.Put('A')

	if got := fb.Get(0) & 0xff; got != 'Z' {
		t.Fatalf("expected row 1 to have scrolled into row 0, got %q", got)
	}
	if cursor.Get() <= 0 {
		t.Fatalf("expected cursor to be rebased after scroll, got %d", cursor.Get())
	}
}

func TestScreenHighlightRangeTogglesAttributeOnly(t *testing.T) {
	scr, fb, _ := newTestScreen()
	scr.Put('h')
	scr.Put('i')

	scr.HighlightRange(0, 2, true)
	if got := fb.Get(0) >> 8; got != highlightAttr {
		t.Fatalf("expected highlight attribute, got %#x", got)
	}
	if got := fb.Get(0) & 0xff; got != 'h' {
		t.Fatalf("expected glyph preserved, got %q", got)
	}

	scr.HighlightRange(0, 2, false)
	if got := fb.Get(1) >> 8; got != normalAttr {
		t.Fatalf("expected attribute restored to normal, got %#x", got)
	}
}
