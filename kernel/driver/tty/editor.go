package tty

import ksync "consoleos/kernel/sync"

// Key codes the Editor dispatches on. Control codes follow the classic
// C(x) = x - '@' convention; KeyLeft/KeyRight are out-of-band sentinels a
// platform's keyboard driver assigns to the arrow keys, chosen here well
// outside the single-byte range so they can never collide with a typed
// character.
const (
	keyTab = '\t'
	keyDEL = 0x7f

	ctrlA = 'A' - '@'
	ctrlC = 'C' - '@'
	ctrlD = 'D' - '@'
	ctrlH = 'H' - '@'
	ctrlP = 'P' - '@'
	ctrlS = 'S' - '@'
	ctrlU = 'U' - '@'
	ctrlV = 'V' - '@'
	ctrlZ = 'Z' - '@'

	// KeyLeft and KeyRight move the caret one position within the current
	// line without otherwise touching it.
	KeyLeft  = 0x9000
	KeyRight = 0x9001
)

// Editor is the input-event dispatcher: it consumes key codes delivered by
// Intr, mutates the LineBuffer, Selection, Clipboard and UndoLog, reflects
// every change to the Screen, and wakes a blocked reader whenever a line
// commits.
type Editor struct {
	lb   LineBuffer
	sel  Selection
	clip Clipboard
	undo UndoLog

	completer *Completer
	scr       *Screen
	sched     Scheduler
	lock      *ksync.Spinlock

	// dumpTasks, if set, is invoked after the console lock is released in
	// response to Ctrl-P. It is never called while the lock is held, since
	// a task dump routine typically needs locks of its own.
	dumpTasks func()
}

// NewEditor builds an Editor over the given collaborators. completer may be
// nil, in which case Tab is a no-op.
func NewEditor(scr *Screen, sched Scheduler, lock *ksync.Spinlock, completer *Completer, dumpTasks func()) *Editor {
	ed := &Editor{
		scr:       scr,
		sched:     sched,
		lock:      lock,
		completer: completer,
		dumpTasks: dumpTasks,
	}
	ed.sel = *NewSelection()
	return ed
}

// LineBuffer exposes the editor's ring buffer to DeviceIO.
func (ed *Editor) LineBuffer() *LineBuffer { return &ed.lb }

// Intr is the console's interrupt entry point: it drains getc() until a
// negative code is returned, dispatching each key under the console lock,
// then (outside the lock) invokes the deferred process dump if Ctrl-P was
// seen.
func (ed *Editor) Intr(getc func() int) {
	ed.lock.Acquire()
	dump := false
	for {
		c := getc()
		if c < 0 {
			break
		}
		if ed.dispatch(c) {
			dump = true
		}
	}
	ed.lock.Release()
	if dump && ed.dumpTasks != nil {
		ed.dumpTasks()
	}
}

// dispatch handles a single key code and reports whether a process dump was
// requested.
func (ed *Editor) dispatch(c int) (dump bool) {
	if c != keyTab && ed.completer != nil {
		ed.completer.Reset()
	}

	switch c {
	case keyTab:
		ed.clearSelection()
		if ed.completer != nil {
			ed.completer.Complete(&ed.lb, ed.scr, &ed.undo)
		}

	case ctrlS:
		if !ed.sel.Selecting() {
			ed.clearSelection()
			ed.sel.Begin(ed.lb.c)
		} else if lo, hi, ok := ed.sel.End(ed.lb.c); ok {
			ed.setHighlight(lo, hi, true)
		}

	case ctrlC:
		if lo, hi, ok := ed.sel.Range(); ok {
			if lo < ed.lb.w {
				lo = ed.lb.w
			}
			if hi > ed.lb.e {
				hi = ed.lb.e
			}
			buf := make([]byte, hi-lo)
			for i := range buf {
				buf[i] = ed.lb.ByteAt(lo + i)
			}
			ed.clip.Copy(buf)
		} else {
			ed.clearSelection()
			ed.clip.Clear()
		}

	case ctrlV:
		if ed.clip.Len() > 0 {
			if ed.sel.Active() {
				ed.deleteSelection()
			}
			for _, b := range ed.clip.Paste() {
				if !ed.insertByteWithUndo(b) {
					break
				}
			}
		}
		ed.clearSelection()

	case ctrlA:
		ed.deselectIfAny()
		if ed.lb.c > ed.lb.w {
			oldC := ed.lb.c
			t := ed.lb.c - 1
			for t > ed.lb.w && isWhitespace(ed.lb.ByteAt(t)) {
				t--
			}
			for t > ed.lb.w && !isWhitespace(ed.lb.ByteAt(t-1)) {
				t--
			}
			ed.lb.c = t
			ed.scr.SetCursor(ed.scr.GetCursor() - (oldC - t))
		}

	case ctrlD:
		ed.deselectIfAny()
		if ed.lb.e == ed.lb.w || ed.lb.c == ed.lb.e {
			ed.lb.CommitByte(ctrlD)
			ed.undo.Clear()
			ed.sched.Wakeup()
		} else if ed.lb.c < ed.lb.e {
			oldC := ed.lb.c
			t := ed.lb.c
			for t < ed.lb.e && !isWhitespace(ed.lb.ByteAt(t)) {
				t++
			}
			for t < ed.lb.e && isWhitespace(ed.lb.ByteAt(t)) {
				t++
			}
			if t < ed.lb.e {
				ed.scr.SetCursor(ed.scr.GetCursor() + (t - oldC))
				ed.lb.c = t
			}
		}

	case ctrlP:
		ed.deselectIfAny()
		dump = true

	case ctrlU:
		ed.deselectIfAny()
		if ed.lb.e != ed.lb.w {
			pos := ed.scr.GetCursor()
			pos += ed.lb.e - ed.lb.c
			ed.scr.SetCursor(pos)
			ed.lb.c = ed.lb.e
			for ed.lb.e != ed.lb.w {
				ed.lb.e--
				ed.lb.c--
				ed.scr.Put(Backspace)
			}
		}
		ed.lb.c = ed.lb.w
		ed.undo.Clear()

	case ctrlH, keyDEL:
		if ed.sel.Active() {
			ed.deleteSelection()
			break
		}
		if ed.lb.c > ed.lb.w {
			ed.undo.PushDelete(ed.lb.c-1, ed.lb.ByteAt(ed.lb.c-1))
			base := ed.scr.GetCursor() - (ed.lb.c - ed.lb.w)
			ed.lb.DeleteRange(ed.lb.c-1, ed.lb.c)
			ed.scr.SetCursor(base)
			for i := ed.lb.w; i < ed.lb.e; i++ {
				ed.scr.Put(int(ed.lb.ByteAt(i)))
			}
			ed.scr.Put(' ')
			ed.scr.SetCursor(base + (ed.lb.c - ed.lb.w))
		}

	case ctrlZ:
		ed.deselectIfAny()
		if op, ok := ed.undo.Pop(); ok {
			switch op.kind {
			case opInsert:
				ed.undoInsert(op)
			case opDelete:
				ed.undoDelete(op)
			}
		}

	case KeyLeft:
		ed.deselectIfAny()
		if ed.lb.c > ed.lb.w {
			ed.lb.c--
			ed.scr.SetCursor(ed.scr.GetCursor() - 1)
		}

	case KeyRight:
		ed.deselectIfAny()
		if ed.lb.c < ed.lb.e {
			ed.lb.c++
			ed.scr.SetCursor(ed.scr.GetCursor() + 1)
		}

	default:
		if c != 0 {
			if c == '\r' {
				c = '\n'
			}
			if ed.sel.Active() {
				ed.deleteSelection()
			}
			if c == '\n' || ed.lb.Full() {
				if c == '\n' {
					ed.scr.Put('\n')
				}
				ed.lb.CommitByte('\n')
				ed.undo.Clear()
				ed.sched.Wakeup()
			} else {
				ed.insertByteWithUndo(byte(c))
			}
			ed.clearSelection()
		}
	}

	return dump
}

// screenPosOfW returns the current screen cell that logical index w is
// rendered at, derived from the hardware cursor and the caret's offset
// from w.
func (ed *Editor) screenPosOfW() int {
	return ed.scr.GetCursor() - (ed.lb.c - ed.lb.w)
}

func (ed *Editor) setHighlight(lo, hi int, on bool) {
	if lo < ed.lb.w {
		lo = ed.lb.w
	}
	if hi > ed.lb.e {
		hi = ed.lb.e
	}
	if lo >= hi {
		return
	}
	base := ed.screenPosOfW()
	ed.scr.HighlightRange(base+(lo-ed.lb.w), base+(hi-ed.lb.w), on)
}

func (ed *Editor) clearSelection() {
	if lo, hi, ok := ed.sel.Range(); ok {
		ed.setHighlight(lo, hi, false)
	}
	ed.sel.Reset()
}

func (ed *Editor) deselectIfAny() {
	if ed.sel.Active() {
		ed.clearSelection()
	}
}

// deleteSelection removes the active selection's bytes from the line,
// recording a DELETE undo entry per byte (last byte first, so that repeated
// undo reinserts them in their original order), and redraws the tail.
func (ed *Editor) deleteSelection() {
	lo, hi, ok := ed.sel.Range()
	if !ok {
		return
	}
	if lo < ed.lb.w {
		lo = ed.lb.w
	}
	if hi > ed.lb.e {
		hi = ed.lb.e
	}
	if lo >= hi {
		ed.clearSelection()
		return
	}

	for k := hi - 1; k >= lo; k-- {
		ed.undo.PushDelete(k, ed.lb.ByteAt(k))
	}

	oldE := ed.lb.e
	base := ed.screenPosOfW()
	if base < 0 {
		base = 0
	}
	if base >= cellCount {
		base = cellCount - 1
	}

	ed.lb.DeleteRange(lo, hi)

	ed.scr.SetCursor(base)
	for i := ed.lb.w; i < ed.lb.e; i++ {
		ed.scr.Put(int(ed.lb.ByteAt(i)))
	}
	for i := ed.lb.e; i < oldE; i++ {
		ed.scr.Put(' ')
	}
	ed.scr.SetCursor(base + (ed.lb.c - ed.lb.w))

	ed.clearSelection()
}

// insertByteWithUndo inserts b at the caret, records an INSERT undo entry,
// and redraws the tail of the line.
func (ed *Editor) insertByteWithUndo(b byte) bool {
	if ed.lb.Full() {
		return false
	}
	ed.undo.PushInsert(ed.lb.c, b)
	ed.lb.InsertAt(ed.lb.c, b)
	ed.lb.c++
	for i := ed.lb.c - 1; i < ed.lb.e; i++ {
		ed.scr.Put(int(ed.lb.ByteAt(i)))
	}
	ed.scr.SetCursor(ed.scr.GetCursor() - (ed.lb.e - ed.lb.c))
	return true
}

// undoInsert inverts a recorded INSERT by deleting the byte it placed.
func (ed *Editor) undoInsert(op undoOp) {
	pos := op.pos
	if pos < ed.lb.w || pos >= ed.lb.e {
		return
	}
	cursorBefore := ed.scr.GetCursor()
	delta := ed.lb.c - pos
	ed.lb.DeleteRange(pos, pos+1)
	ed.scr.SetCursor(cursorBefore - delta)
	for i := pos; i < ed.lb.e; i++ {
		ed.scr.Put(int(ed.lb.ByteAt(i)))
	}
	ed.scr.Put(' ')
	ed.scr.SetCursor(ed.scr.GetCursor() - (ed.lb.e - pos + 1))
	ed.lb.c = pos
}

// undoDelete inverts a recorded DELETE by reinserting the byte it removed.
func (ed *Editor) undoDelete(op undoOp) {
	if ed.lb.Full() {
		return
	}
	pos := op.pos
	if pos < ed.lb.w || pos > ed.lb.e {
		pos = ed.lb.e
	}
	base := ed.screenPosOfW()
	ed.lb.InsertAt(pos, op.b)
	ed.lb.c = pos + 1
	ed.scr.SetCursor(base)
	for i := ed.lb.w; i < ed.lb.e; i++ {
		ed.scr.Put(int(ed.lb.ByteAt(i)))
	}
	ed.scr.SetCursor(base + (ed.lb.c - ed.lb.w))
}

func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\v'
}
