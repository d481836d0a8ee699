package view

import (
	"testing"

	"github.com/mle-editor/mle/internal/command"
	"github.com/stretchr/testify/assert"
)

func TestNewViewHasNoInitialLineByDefault(t *testing.T) {
	v := New(command.ViewEdit)
	assert.Equal(t, 0, v.InitialLine)
}

func TestInitialLineIsSettable(t *testing.T) {
	v := New(command.ViewEdit)
	v.InitialLine = 42
	assert.Equal(t, 42, v.InitialLine)
}
