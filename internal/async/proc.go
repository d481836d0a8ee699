package async

import "time"

// ByteCallback is invoked for every chunk read from a proc's pipe, and once
// more with done=true when the proc is torn down (spec.md §4.6). bytes is
// only valid for the duration of the call; callbacks that need to retain
// data must copy it.
type ByteCallback func(p *Proc, bytes []byte, nbytes int, errFlag, eofFlag bool, done bool)

// Proc is one async subprocess bound into the multiplexer: a read pipe, a
// deadline past which it is terminated even if silent, and the byte
// callback that receives its output (spec.md §4.6).
type Proc struct {
	Name     string
	ReadFD   uintptr
	Deadline time.Time

	Callback ByteCallback

	// isDone lets a callback request teardown (e.g. after seeing a
	// sentinel in the output) without waiting for EOF or the deadline.
	isDone bool
}

// MarkDone requests that the multiplexer tear this proc down on its next
// turn, regardless of pipe readiness.
func (p *Proc) MarkDone() { p.isDone = true }

// pastDeadline reports whether p's deadline has already elapsed.
func (p *Proc) pastDeadline(now time.Time) bool {
	return !p.Deadline.IsZero() && now.After(p.Deadline)
}
