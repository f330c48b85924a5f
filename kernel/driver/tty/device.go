package tty

// DeviceIO binds an Editor to the character-device read/write contract a
// kernel's device switch would dispatch into. Read blocks until a line
// commits (or the reader's process is killed); Write renders every byte
// through the Screen and never blocks.
type DeviceIO struct {
	ed *Editor
}

// NewDeviceIO binds a DeviceIO to ed. Multiple DeviceIO values may share one
// Editor, though in practice there is exactly one console.
func NewDeviceIO(ed *Editor) *DeviceIO {
	return &DeviceIO{ed: ed}
}

// Read copies up to len(dst) bytes into dst, blocking while no line has been
// committed. unlockInode/lockInode bracket the blocking portion exactly as
// the character-device contract requires: release the caller's inode lock
// before taking the console lock, and reacquire it before returning.
//
// Read returns the number of bytes copied, 0 if the line was EOF-only, or
// -1 if the calling reader's process was killed while blocked (in which
// case no bytes are copied and no partial state is retained).
func (d *DeviceIO) Read(unlockInode, lockInode func(), dst []byte) int {
	if unlockInode != nil {
		unlockInode()
	}

	ed := d.ed
	ed.lock.Acquire()

	target := len(dst)
	n := target
	for n > 0 {
		for ed.lb.r == ed.lb.w {
			if ed.sched.Killed() {
				ed.lock.Release()
				if lockInode != nil {
					lockInode()
				}
				return -1
			}
			ed.sched.Sleep(ed.lock)
		}

		b, _ := ed.lb.ReadByte()
		if b == ctrlD {
			if n < target {
				ed.lb.UnreadByte()
			}
			break
		}

		dst[target-n] = b
		n--
		if b == '\n' {
			break
		}
	}

	ed.lock.Release()
	if lockInode != nil {
		lockInode()
	}
	return target - n
}

// Write renders every byte of src through the Screen, masked to 8 bits, and
// always returns len(src).
func (d *DeviceIO) Write(src []byte) int {
	ed := d.ed
	ed.lock.Acquire()
	for _, b := range src {
		ed.scr.Put(int(b) & 0xff)
	}
	ed.lock.Release()
	return len(src)
}

// Init zeroes the line buffer and completion/undo state, then runs the
// caller-supplied registration and IRQ-enable hooks. Either may be nil.
func (d *DeviceIO) Init(registerFn, enableIRQ func()) {
	ed := d.ed
	ed.lb.Reset()
	ed.undo.Clear()
	if ed.completer != nil {
		ed.completer.Reset()
	}
	if registerFn != nil {
		registerFn()
	}
	if enableIRQ != nil {
		enableIRQ()
	}
}
