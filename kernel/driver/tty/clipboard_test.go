package tty

import "testing"

func TestClipboardCopyAndPaste(t *testing.T) {
	var cb Clipboard
	cb.Copy([]byte("hello"))
	if got := string(cb.Paste()); got != "hello" {
		t.Fatalf("expected %q, got %q", "hello", got)
	}
	if cb.Len() != 5 {
		t.Fatalf("expected len 5, got %d", cb.Len())
	}
}

func TestClipboardCopyTruncatesAtCapacity(t *testing.T) {
	var cb Clipboard
	data := make([]byte, ClipboardSize+10)
	for i := range data {
		data[i] = 'x'
	}
	cb.Copy(data)
	if cb.Len() != ClipboardSize {
		t.Fatalf("expected truncation to %d, got %d", ClipboardSize, cb.Len())
	}
}

func TestClipboardClear(t *testing.T) {
	var cb Clipboard
	cb.Copy([]byte("abc"))
	cb.Clear()
	if cb.Len() != 0 {
		t.Fatalf("expected empty clipboard, got len %d", cb.Len())
	}
	if got := cb.Paste(); len(got) != 0 {
		t.Fatalf("expected empty paste, got %q", got)
	}
}
