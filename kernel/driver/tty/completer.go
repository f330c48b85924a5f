package tty

import "consoleos/kernel/kfmt"

// prompt is reprinted after a Tab-Tab match listing.
const prompt = "$ "

// Completer implements first-word prefix completion against a fixed
// command list, with the classic shell "second Tab lists matches" latch.
type Completer struct {
	commands []string
	tabLatch bool
}

// NewCompleter builds a Completer over the given command list.
func NewCompleter(commands []string) *Completer {
	return &Completer{commands: commands}
}

// Reset clears the two-Tab latch. Every non-Tab keystroke should call this
// so a stale latch never disambiguates an unrelated Tab press.
func (c *Completer) Reset() { c.tabLatch = false }

// Complete runs one Tab keystroke against the current editable region of
// lb, inserting and rendering through scr as needed. undo is cleared when a
// match listing forces a prompt redraw.
func (c *Completer) Complete(lb *LineBuffer, scr *Screen, undo *UndoLog) {
	w, e := lb.w, lb.e
	length := e - w
	if length < 0 || length >= BufSize {
		c.Reset()
		return
	}
	for i := w; i < e; i++ {
		if lb.ByteAt(i) == ' ' {
			c.Reset()
			return
		}
	}

	prefix := make([]byte, length)
	for i := 0; i < length; i++ {
		prefix[i] = lb.ByteAt(w + i)
	}

	var matches []string
	for _, cmd := range c.commands {
		if len(cmd) >= length && string(prefix) == cmd[:length] {
			matches = append(matches, cmd)
		}
	}

	switch len(matches) {
	case 0:
		c.Reset()
		return
	case 1:
		appendSuffix(lb, scr, matches[0], length)
		c.Reset()
		return
	}

	if c.tabLatch {
		c.listAndRedraw(lb, scr, matches, undo)
		c.Reset()
		return
	}

	if lcp := longestCommonPrefix(matches); lcp > length {
		appendSuffix(lb, scr, matches[0][:lcp], length)
	}
	c.tabLatch = true
}

// appendSuffix appends completion[skip:] to lb, rendering each byte, and
// leaves the caret at the new end of the line.
func appendSuffix(lb *LineBuffer, scr *Screen, completion string, skip int) {
	for i := skip; i < len(completion); i++ {
		if lb.Full() {
			break
		}
		lb.buf[mask(lb.e)] = completion[i]
		lb.e++
		scr.Put(int(completion[i]))
	}
	lb.c = lb.e
}

// listAndRedraw prints every match and a fresh prompt, then erases the
// current edit region back to w, on screen and in the buffer, leaving an
// empty line with the caret at w. The typed prefix is not kept.
func (c *Completer) listAndRedraw(lb *LineBuffer, scr *Screen, matches []string, undo *UndoLog) {
	kfmt.Printf("\n")
	for _, m := range matches {
		kfmt.Printf("%s  ", m)
	}
	kfmt.Printf("\n")
	kfmt.Printf(prompt)

	if lb.e != lb.w {
		pos := scr.GetCursor()
		pos += lb.e - lb.c
		scr.SetCursor(pos)
		lb.c = lb.e

		for lb.e != lb.w {
			lb.e--
			lb.c--
			scr.Put(Backspace)
		}
	}
	scr.Put(' ')
	lb.c = lb.w
	undo.Clear()
}

// longestCommonPrefix returns the length of the longest shared prefix of
// matches, scanning column by column and stopping at the first divergence
// or the end of the shortest string.
func longestCommonPrefix(matches []string) int {
	if len(matches) == 0 {
		return 0
	}
	first := matches[0]
	n := 0
	for n < len(first) {
		ch := first[n]
		diverged := false
		for _, m := range matches[1:] {
			if n >= len(m) || m[n] != ch {
				diverged = true
				break
			}
		}
		if diverged {
			break
		}
		n++
	}
	return n
}
