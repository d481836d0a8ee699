// Package async implements the bounded-select multiplexer that drains
// subprocess output between event-loop turns (spec.md §4.6), grounded on
// the teacher's termio pending-input probe (golang.org/x/sys/unix.Poll).
package async

import (
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// ChunkSize is the fixed read size per ready proc pipe per turn.
const ChunkSize = 1024

// DefaultWait is the bounded select timeout per turn.
const DefaultWait = time.Second

// Outcome tells the event loop what to do after one multiplexer turn.
type Outcome int

// The three outcomes a multiplexer turn can produce (spec.md §4.6).
const (
	// ProceedToInput means the TTY is ready (or there is nothing to
	// drain); the loop should go on to acquire input this turn.
	ProceedToInput Outcome = iota
	// CallAgain means the loop should restart its iteration without
	// consuming input: either the wait timed out with nothing ready and
	// procs remain, or a drain just ran and procs may still have more.
	CallAgain
	// StopDraining means the underlying select call itself failed.
	StopDraining
)

// Multiplexer owns the TTY read descriptor and the set of bound async
// procs, and runs one bounded select per Turn call.
type Multiplexer struct {
	ttyFD uintptr
	procs []*Proc
	wait  time.Duration
}

// New returns a Multiplexer polling ttyFD alongside whatever procs are
// bound to it.
func New(ttyFD uintptr) *Multiplexer {
	return &Multiplexer{ttyFD: ttyFD, wait: DefaultWait}
}

// SetWait overrides the bounded-select timeout (tests use this to avoid a
// real one-second wait).
func (m *Multiplexer) SetWait(d time.Duration) { m.wait = d }

// Bind adds p to the read-set.
func (m *Multiplexer) Bind(p *Proc) { m.procs = append(m.procs, p) }

// Len reports how many procs are currently bound.
func (m *Multiplexer) Len() int { return len(m.procs) }

// Turn runs one multiplexer pass (spec.md §4.6): proc deadlines are swept
// first regardless of readiness, then a bounded poll decides whether the
// TTY or any proc pipe is ready. TTY readiness always wins over draining
// procs this turn.
func (m *Multiplexer) Turn() (Outcome, error) {
	m.sweepDeadlines()
	if len(m.procs) == 0 {
		return ProceedToInput, nil
	}

	fds := make([]unix.PollFd, 0, len(m.procs)+1)
	fds = append(fds, unix.PollFd{Fd: int32(m.ttyFD), Events: unix.POLLIN})
	for _, p := range m.procs {
		fds = append(fds, unix.PollFd{Fd: int32(p.ReadFD), Events: unix.POLLIN})
	}

	n, err := unix.Poll(fds, int(m.wait/time.Millisecond))
	if err != nil {
		return StopDraining, errors.Wrap(err, "async: poll")
	}
	if n == 0 {
		return CallAgain, nil
	}
	if fds[0].Revents&unix.POLLIN != 0 {
		return ProceedToInput, nil
	}

	m.drainReady(fds[1:])
	return CallAgain, nil
}

func (m *Multiplexer) sweepDeadlines() {
	now := time.Now()
	var kept []*Proc
	for _, p := range m.procs {
		if p.isDone || p.pastDeadline(now) {
			m.destroy(p, false, false)
			continue
		}
		kept = append(kept, p)
	}
	m.procs = kept
}

// drainReady reads one chunk from every proc whose pollfd (aligned with
// m.procs) reported POLLIN or POLLHUP (a pipe whose writer has closed
// reports only POLLHUP), then tears down any proc that is now done.
func (m *Multiplexer) drainReady(fds []unix.PollFd) {
	var kept []*Proc
	for i, p := range m.procs {
		if i >= len(fds) || fds[i].Revents&(unix.POLLIN|unix.POLLHUP) == 0 {
			kept = append(kept, p)
			continue
		}

		buf := make([]byte, ChunkSize)
		n, err := unix.Read(int(p.ReadFD), buf)
		eof := n == 0 && err == nil
		errFlag := err != nil
		if n > 0 && p.Callback != nil {
			p.Callback(p, buf[:n], n, false, false, false)
		}

		if eof || errFlag || p.isDone || p.pastDeadline(time.Now()) {
			m.destroy(p, errFlag, eof)
			continue
		}
		kept = append(kept, p)
	}
	m.procs = kept
}

// destroy invokes p's final done callback and forgets it. The caller is
// responsible for excluding p from the retained proc slice.
func (m *Multiplexer) destroy(p *Proc, errFlag, eofFlag bool) {
	if p.Callback != nil {
		p.Callback(p, nil, 0, errFlag, eofFlag, true)
	}
}
