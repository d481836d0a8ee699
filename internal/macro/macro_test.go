package macro

import (
	"testing"

	"github.com/mle-editor/mle/internal/keystroke"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLineRoundTrip(t *testing.T) {
	m, err := ParseLine("m1,h,i,C-x")
	require.NoError(t, err)
	assert.Equal(t, "m1", m.Name)
	require.Len(t, m.Keys, 3)
	assert.Equal(t, EncodeLine(m), "m1,h,i,C-x")
}

func TestParseLineInvalidToken(t *testing.T) {
	_, err := ParseLine("m1,not-a-real-key-!!!")
	assert.Error(t, err)
}

func TestParseLineEmptyName(t *testing.T) {
	_, err := ParseLine(",h,i")
	assert.Error(t, err)
}

func TestRecordReplayRoundTrip(t *testing.T) {
	reg := NewRegistry()
	p := NewPlayer(reg)

	toggle := keystroke.Keystroke{Mod: keystroke.ModMeta, Rune: 'r'}
	h := keystroke.Keystroke{Rune: 'h'}
	i := keystroke.Keystroke{Rune: 'i'}

	p.StartRecording("m1")
	p.RecordInput(h)
	p.RecordInput(i)
	p.RecordInput(toggle) // the loop always records the toggle key itself
	m := p.StopRecording()

	require.NotNil(t, m)
	assert.Equal(t, []keystroke.Keystroke{h, i}, m.Keys, "toggle keystroke must be trimmed")

	ok := p.StartReplay("m1")
	require.True(t, ok)

	var replayed []keystroke.Keystroke
	for {
		ks, ok := p.NextReplayInput()
		if !ok {
			break
		}
		replayed = append(replayed, ks)
	}
	assert.Equal(t, m.Keys, replayed)
	assert.False(t, p.IsReplaying())
}

func TestEmptyRecordingIsNotRegistered(t *testing.T) {
	reg := NewRegistry()
	p := NewPlayer(reg)

	toggle := keystroke.Keystroke{Mod: keystroke.ModMeta, Rune: 'r'}
	p.StartRecording("empty")
	p.RecordInput(toggle)
	m := p.StopRecording()

	assert.Nil(t, m)
	_, ok := reg.Get("empty")
	assert.False(t, ok)
}

func TestStartReplayUnknownNameFails(t *testing.T) {
	reg := NewRegistry()
	p := NewPlayer(reg)
	assert.False(t, p.StartReplay("nope"))
}

func TestReplayedInputNotRecorded(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&Macro{Name: "m1", Keys: []keystroke.Keystroke{{Rune: 'x'}}})
	p := NewPlayer(reg)

	p.StartRecording("m2")
	require.True(t, p.StartReplay("m1"))
	ks, ok := p.NextReplayInput()
	require.True(t, ok)
	assert.Equal(t, rune('x'), ks.Rune)
	// the loop must call RecordInput only for terminal-sourced input; a
	// replayed keystroke reaching RecordInput would be a caller bug, not
	// something Player itself filters — verify the buffer stays empty
	// when the caller correctly withholds it.
	m := p.StopRecording()
	assert.Nil(t, m)
}
