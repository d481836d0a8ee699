package async

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTurnNoProcsProceedsToInput(t *testing.T) {
	ttyR, ttyW, err := os.Pipe()
	require.NoError(t, err)
	defer ttyR.Close()
	defer ttyW.Close()

	m := New(ttyR.Fd())
	out, err := m.Turn()
	require.NoError(t, err)
	assert.Equal(t, ProceedToInput, out)
}

func TestTurnTTYPriorityOverProcs(t *testing.T) {
	ttyR, ttyW, err := os.Pipe()
	require.NoError(t, err)
	defer ttyR.Close()
	defer ttyW.Close()
	procR, procW, err := os.Pipe()
	require.NoError(t, err)
	defer procR.Close()
	defer procW.Close()

	m := New(ttyR.Fd())
	var gotDone bool
	m.Bind(&Proc{Name: "p1", ReadFD: procR.Fd(), Callback: func(p *Proc, b []byte, n int, errF, eofF, done bool) {
		if done {
			gotDone = true
		}
	}})

	_, err = procW.Write([]byte("hello"))
	require.NoError(t, err)
	_, err = ttyW.Write([]byte("x"))
	require.NoError(t, err)

	out, err := m.Turn()
	require.NoError(t, err)
	assert.Equal(t, ProceedToInput, out, "TTY readiness must win over a ready proc pipe")
	assert.False(t, gotDone)
	assert.Equal(t, 1, m.Len())
}

func TestTurnDrainsReadyProc(t *testing.T) {
	ttyR, ttyW, err := os.Pipe()
	require.NoError(t, err)
	defer ttyR.Close()
	defer ttyW.Close()
	procR, procW, err := os.Pipe()
	require.NoError(t, err)
	defer procR.Close()

	m := New(ttyR.Fd())
	m.SetWait(50 * time.Millisecond)

	var gotBytes []byte
	m.Bind(&Proc{Name: "p1", ReadFD: procR.Fd(), Callback: func(p *Proc, b []byte, n int, errF, eofF, done bool) {
		if !done {
			gotBytes = append(gotBytes, b[:n]...)
		}
	}})

	_, err = procW.Write([]byte("hello"))
	require.NoError(t, err)

	out, err := m.Turn()
	require.NoError(t, err)
	assert.Equal(t, CallAgain, out)
	assert.Equal(t, "hello", string(gotBytes))
	assert.Equal(t, 1, m.Len())
}

func TestTurnEOFTearsDownProc(t *testing.T) {
	ttyR, ttyW, err := os.Pipe()
	require.NoError(t, err)
	defer ttyR.Close()
	defer ttyW.Close()
	procR, procW, err := os.Pipe()
	require.NoError(t, err)

	m := New(ttyR.Fd())
	m.SetWait(50 * time.Millisecond)

	var done bool
	m.Bind(&Proc{Name: "p1", ReadFD: procR.Fd(), Callback: func(p *Proc, b []byte, n int, errF, eofF, d bool) {
		if d {
			done = true
			assert.True(t, eofF)
		}
	}})

	require.NoError(t, procW.Close()) // EOF on the read end
	_, err = m.Turn()
	require.NoError(t, err)

	assert.True(t, done)
	assert.Equal(t, 0, m.Len())
	procR.Close()
}

func TestTurnDeadlineTearsDownSilentProc(t *testing.T) {
	ttyR, ttyW, err := os.Pipe()
	require.NoError(t, err)
	defer ttyR.Close()
	defer ttyW.Close()
	procR, procW, err := os.Pipe()
	require.NoError(t, err)
	defer procR.Close()
	defer procW.Close()

	m := New(ttyR.Fd())
	var done bool
	m.Bind(&Proc{
		Name:     "p1",
		ReadFD:   procR.Fd(),
		Deadline: time.Now().Add(-time.Second), // already elapsed
		Callback: func(p *Proc, b []byte, n int, errF, eofF, d bool) {
			if d {
				done = true
			}
		},
	})

	_, err = m.Turn()
	require.NoError(t, err)
	assert.True(t, done, "a proc past its deadline is torn down even if silent")
	assert.Equal(t, 0, m.Len())
}

func TestTurnTimeoutWithNoReadyFdsCallsAgain(t *testing.T) {
	ttyR, ttyW, err := os.Pipe()
	require.NoError(t, err)
	defer ttyR.Close()
	defer ttyW.Close()
	procR, procW, err := os.Pipe()
	require.NoError(t, err)
	defer procR.Close()
	defer procW.Close()

	m := New(ttyR.Fd())
	m.SetWait(20 * time.Millisecond)
	m.Bind(&Proc{Name: "p1", ReadFD: procR.Fd(), Callback: func(*Proc, []byte, int, bool, bool, bool) {}})

	out, err := m.Turn()
	require.NoError(t, err)
	assert.Equal(t, CallAgain, out)
	assert.Equal(t, 1, m.Len())
}
