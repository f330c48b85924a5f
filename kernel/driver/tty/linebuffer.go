package tty

// BufSize is the capacity of the input ring, mirroring the original
// console's INPUT_BUF.
const BufSize = 128

// LineBuffer is a ring-buffered editable line. Four logical indices, each
// monotonically increasing and masked by BufSize on every buffer access,
// describe the state of the ring:
//
//	r - read cursor; [r, w) has been committed and awaits delivery to a reader
//	w - write watermark; [w, e) is the line currently being edited
//	e - end of the editable region
//	c - caret, the insertion point within [w, e]
//
// The invariants r <= w <= e, w <= c <= e and e-r <= BufSize hold after
// every operation below.
type LineBuffer struct {
	buf [BufSize]byte
	r, w, e, c int
}

func mask(i int) int { return i % BufSize }

// R, W, E, C return the current logical indices.
func (lb *LineBuffer) R() int { return lb.r }
func (lb *LineBuffer) W() int { return lb.w }
func (lb *LineBuffer) E() int { return lb.e }
func (lb *LineBuffer) C() int { return lb.c }

// SetC moves the caret. Callers are responsible for keeping it within
// [w, e].
func (lb *LineBuffer) SetC(c int) { lb.c = c }

// ByteAt returns the byte stored at logical position pos.
func (lb *LineBuffer) ByteAt(pos int) byte { return lb.buf[mask(pos)] }

// Full reports whether the ring holds BufSize bytes across the unread and
// editable regions together (e-r == BufSize), i.e. no further byte can be
// accepted until a reader consumes some.
func (lb *LineBuffer) Full() bool { return lb.e-lb.r >= BufSize }

// ReadByte consumes one byte from the committed region [r, w). It reports
// false if nothing has been committed yet.
func (lb *LineBuffer) ReadByte() (byte, bool) {
	if lb.r == lb.w {
		return 0, false
	}
	b := lb.buf[mask(lb.r)]
	lb.r++
	return b, true
}

// UnreadByte pushes r back by one, used to retain an EOF byte that a Read
// call observed but didn't consume.
func (lb *LineBuffer) UnreadByte() { lb.r-- }

// InsertAt shifts [pos, e) right by one, stores b at pos and advances e. It
// reports false, leaving the buffer unchanged, if the ring is already Full.
func (lb *LineBuffer) InsertAt(pos int, b byte) bool {
	if lb.Full() {
		return false
	}
	for i := lb.e; i > pos; i-- {
		lb.buf[mask(i)] = lb.buf[mask(i-1)]
	}
	lb.buf[mask(pos)] = b
	lb.e++
	return true
}

// DeleteRange removes [lo, hi), shifting the remainder of the editable
// region left and setting the caret to lo.
func (lb *LineBuffer) DeleteRange(lo, hi int) {
	if hi <= lo {
		return
	}
	n := hi - lo
	for i := hi; i < lb.e; i++ {
		lb.buf[mask(i-n)] = lb.buf[mask(i)]
	}
	lb.e -= n
	lb.c = lo
}

// CommitByte stores b at e, then commits the line by advancing w (and c) to
// the new e. Used both for a plain newline and for the literal EOF byte
// injected by Ctrl-D. If the ring is Full, b is dropped and the line is
// committed as it stands.
func (lb *LineBuffer) CommitByte(b byte) {
	if !lb.Full() {
		lb.buf[mask(lb.e)] = b
		lb.e++
	}
	lb.w = lb.e
	lb.c = lb.w
}

// Reset zeroes all indices, discarding any in-progress line.
func (lb *LineBuffer) Reset() {
	lb.r, lb.w, lb.e, lb.c = 0, 0, 0, 0
}
