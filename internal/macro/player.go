package macro

import "github.com/mle-editor/mle/internal/keystroke"

// Player is the event loop's macro record/replay state (spec.md §4.4). A
// single Player instance is owned by the editor; the loop consults it once
// per turn to decide whether the next input comes from the terminal or
// from an in-flight replay.
type Player struct {
	reg *Registry

	recording  bool
	recordName string
	recordBuf  []keystroke.Keystroke

	replayKeys []keystroke.Keystroke
	replayIdx  int
	replaying  bool
}

// NewPlayer returns a Player backed by reg for macro lookup/registration.
func NewPlayer(reg *Registry) *Player {
	return &Player{reg: reg}
}

// IsRecording reports whether a recording is currently in progress.
func (p *Player) IsRecording() bool { return p.recording }

// IsReplaying reports whether a replay is currently supplying input.
func (p *Player) IsReplaying() bool { return p.replaying }

// StartRecording begins recording under name, replacing any in-progress
// recording.
func (p *Player) StartRecording(name string) {
	p.recording = true
	p.recordName = name
	p.recordBuf = nil
}

// RecordInput appends ks to the in-progress recording. The event loop
// calls this for every keystroke read from the terminal, including the
// toggle keystroke itself — StopRecording trims it back off. Replayed
// input must never reach this method (spec.md §4.4 "not re-recorded").
func (p *Player) RecordInput(ks keystroke.Keystroke) {
	if !p.recording {
		return
	}
	p.recordBuf = append(p.recordBuf, ks)
}

// StopRecording ends the in-progress recording, trims the trailing toggle
// keystroke that triggered the stop, and registers the result under its
// name — unless the trimmed recording is empty, in which case nothing is
// registered (an empty macro has no observable effect and would otherwise
// shadow a previously registered macro of the same name). Returns the
// macro (nil if nothing was recorded, or if no recording was active).
func (p *Player) StopRecording() *Macro {
	if !p.recording {
		return nil
	}
	p.recording = false
	buf := p.recordBuf
	p.recordBuf = nil
	if len(buf) > 0 {
		buf = buf[:len(buf)-1] // drop the toggle keystroke
	}
	if len(buf) == 0 {
		return nil
	}
	m := &Macro{Name: p.recordName, Keys: buf}
	p.reg.Register(m)
	return m
}

// StartReplay begins replaying the named macro, returning false if it is
// not registered (or is empty).
func (p *Player) StartReplay(name string) bool {
	m, ok := p.reg.Get(name)
	if !ok || len(m.Keys) == 0 {
		return false
	}
	p.replayKeys = m.Keys
	p.replayIdx = 0
	p.replaying = true
	return true
}

// NextReplayInput returns the next keystroke from the active replay. When
// the buffer is exhausted, the replay state is cleared and ok is false —
// callers must fall back to the terminal for that turn's input.
func (p *Player) NextReplayInput() (ks keystroke.Keystroke, ok bool) {
	if !p.replaying {
		return keystroke.Keystroke{}, false
	}
	if p.replayIdx >= len(p.replayKeys) {
		p.replaying = false
		p.replayKeys = nil
		return keystroke.Keystroke{}, false
	}
	ks = p.replayKeys[p.replayIdx]
	p.replayIdx++
	if p.replayIdx >= len(p.replayKeys) {
		p.replaying = false
		p.replayKeys = nil
	}
	return ks, true
}
