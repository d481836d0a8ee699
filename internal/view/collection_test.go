package view

import (
	"testing"

	"github.com/mle-editor/mle/internal/command"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blankEdit() *View { return New(command.ViewEdit) }

func TestOpenAppendsTopAndPrependsAll(t *testing.T) {
	c := NewCollection()
	v1 := blankEdit()
	v2 := blankEdit()

	c.Open(v1, nil, true)
	c.Open(v2, nil, true)

	assert.Equal(t, []*View{v1, v2}, c.TopViews())
	assert.Equal(t, v2, c.Active())
	assert.ElementsMatch(t, []*View{v1, v2}, c.AllViews())
}

func TestOpenSplitChildNotInTopViews(t *testing.T) {
	c := NewCollection()
	parent := blankEdit()
	c.Open(parent, nil, true)

	child := blankEdit()
	c.Open(child, parent, true)

	assert.Equal(t, []*View{parent}, c.TopViews())
	assert.Equal(t, parent, child.SplitParent())
	assert.Equal(t, child, parent.SplitChild())
	assert.ElementsMatch(t, []*View{parent, child}, c.AllViews())
}

func TestCloseSplitChildReactivatesParent(t *testing.T) {
	c := NewCollection()
	parent := blankEdit()
	c.Open(parent, nil, true)
	child := blankEdit()
	c.Open(child, parent, true)

	c.Close(child, blankEdit)

	assert.Equal(t, parent, c.Active())
	assert.Nil(t, parent.SplitChild())
	assert.Equal(t, []*View{parent}, c.TopViews())
}

func TestCloseRecursivelyClosesSplitChildFirst(t *testing.T) {
	c := NewCollection()
	parent := blankEdit()
	c.Open(parent, nil, true)
	child := blankEdit()
	c.Open(child, parent, true)

	c.Close(parent, blankEdit)

	// closing the parent must first close its child, then fall back to a
	// fresh blank view since no other top-level EDIT view remained.
	require.Len(t, c.TopViews(), 1)
	assert.NotEqual(t, parent, c.TopViews()[0])
	assert.NotEqual(t, child, c.TopViews()[0])
}

func TestCloseLastEditViewOpensBlank(t *testing.T) {
	c := NewCollection()
	v := blankEdit()
	c.Open(v, nil, true)

	c.Close(v, blankEdit)

	require.Len(t, c.TopViews(), 1)
	assert.NotEqual(t, v, c.TopViews()[0])
	assert.Equal(t, c.TopViews()[0], c.Active())
}

func TestCloseActivatesAdjacentEditView(t *testing.T) {
	c := NewCollection()
	v1 := blankEdit()
	v2 := blankEdit()
	c.Open(v1, nil, true)
	c.Open(v2, nil, true)

	c.Close(v2, blankEdit)

	assert.Equal(t, v1, c.Active())
	assert.Equal(t, []*View{v1}, c.TopViews())
}

func TestCloseInactiveViewLeavesActiveUnchanged(t *testing.T) {
	c := NewCollection()
	v1 := blankEdit()
	v2 := blankEdit()
	c.Open(v1, nil, true)
	c.Open(v2, nil, false)

	c.Close(v2, blankEdit)

	assert.Equal(t, v1, c.Active())
}

func TestResizeSplitsScreenAcrossTopViews(t *testing.T) {
	c := NewCollection()
	v1 := blankEdit()
	v2 := blankEdit()
	c.Open(v1, nil, true)
	c.Open(v2, nil, true)

	c.SetScreenSize(80, 24)

	assert.Equal(t, 80, v1.Rect.W)
	assert.Equal(t, 80, v2.Rect.W)
	assert.Equal(t, v1.Rect.H+v2.Rect.H, 24)
}

func TestResizeSplitsWidthForSplitChild(t *testing.T) {
	c := NewCollection()
	parent := blankEdit()
	c.Open(parent, nil, true)
	child := blankEdit()
	c.Open(child, parent, true)

	c.SetScreenSize(80, 24)

	assert.Equal(t, parent.Rect.W+child.Rect.W, 80)
	assert.Equal(t, 24, parent.Rect.H)
	assert.Equal(t, 24, child.Rect.H)
}

func TestViewHandleStructuralMatch(t *testing.T) {
	var handle command.ViewHandle = blankEdit()
	assert.Equal(t, command.ViewEdit, handle.Type())
	handle.SetPromptString("x")
	assert.Equal(t, "x", handle.PromptString())
}
