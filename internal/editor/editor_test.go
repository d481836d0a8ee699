package editor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mle-editor/mle/internal/command"
	"github.com/mle-editor/mle/internal/view"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBuffer struct {
	dirty   bool
	written string
}

func (b *fakeBuffer) Dirty() bool { return b.dirty }
func (b *fakeBuffer) WriteBackup(path string) error {
	b.written = path
	return os.WriteFile(path, []byte("backup"), 0o600)
}

func TestOpenViewMakesItActiveTopLevel(t *testing.T) {
	e := New(zerolog.Nop(), t.TempDir())
	v := view.New(command.ViewEdit)
	e.OpenView(v)
	assert.Equal(t, v, e.Views.Active())
	assert.Equal(t, []*view.View{v}, e.Views.TopViews())
}

func TestCloseViewOpensBlankWhenLastClosed(t *testing.T) {
	e := New(zerolog.Nop(), t.TempDir())
	v := view.New(command.ViewEdit)
	e.OpenView(v)
	e.CloseView(v)
	require.Len(t, e.Views.TopViews(), 1)
	assert.NotEqual(t, v, e.Views.TopViews()[0])
}

func TestBackupUnsavedBuffersSkipsCleanAndNonSaverBuffers(t *testing.T) {
	dir := t.TempDir()
	e := New(zerolog.Nop(), dir)

	dirty := &fakeBuffer{dirty: true}
	vDirty := view.New(command.ViewEdit)
	vDirty.Buffer = dirty
	e.OpenView(vDirty)

	clean := &fakeBuffer{dirty: false}
	vClean := view.New(command.ViewEdit)
	vClean.Buffer = clean
	e.Views.Open(vClean, nil, false)

	// a prompt view has no Saver-shaped buffer at all.
	vPrompt := view.New(command.ViewPrompt)
	e.Views.Open(vPrompt, nil, false)

	e.backupUnsavedBuffers()

	assert.NotEmpty(t, dirty.written)
	assert.FileExists(t, dirty.written)
	assert.Equal(t, filepath.Join(dir, dirty.written[len(dir)+1:]), dirty.written)
	assert.Empty(t, clean.written)
}

func TestRequestExitSetsFlagAndCode(t *testing.T) {
	e := New(zerolog.Nop(), t.TempDir())
	e.RequestExit(1)
	assert.True(t, e.ShouldExit)
	assert.Equal(t, 1, e.ExitCode)
}
