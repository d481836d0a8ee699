package view

import "github.com/mle-editor/mle/internal/command"

// Collection owns the editor's three view collections (spec.md §3 "View"):
// a circular doubly-linked all-views ring, a doubly-linked top-views list,
// and the split-parent/split-child relationships threaded through View
// itself. It also tracks which view is currently active.
type Collection struct {
	allHead *View // arbitrary entry point into the ring; nil iff empty
	topHead *View
	topTail *View

	active *View

	screenW, screenH int
}

// NewCollection returns an empty view collection.
func NewCollection() *Collection {
	return &Collection{}
}

// Active returns the currently active view, or nil if none is open.
func (c *Collection) Active() *View { return c.active }

// SetActive makes v the active view without otherwise altering the
// collections. v must already be a member of the all-views ring.
func (c *Collection) SetActive(v *View) { c.active = v }

// SetScreenSize records the terminal size used by Resize.
func (c *Collection) SetScreenSize(w, h int) {
	c.screenW, c.screenH = w, h
	c.Resize()
}

// Open allocates v into the collections (spec.md §4.7 "Opening a view"):
// prepended to the all-views ring always; if parent is nil it is also
// appended to the top-views list, otherwise it is attached as parent's
// split-child. If makeActive, v becomes the active view. Resize is left to
// the caller (opening optionally resizes per spec.md §4.7).
func (c *Collection) Open(v *View, parent *View, makeActive bool) {
	c.prependAll(v)
	if parent != nil {
		parent.splitChild = v
		v.splitParent = parent
	} else {
		c.appendTop(v)
	}
	if makeActive {
		c.active = v
	}
}

// Close closes v per spec.md §4.7 "Closing a view": its split-child (if
// any) closes first, recursively; a split-parent becomes active in v's
// place, otherwise the nearest EDIT-type view in the all-views ring
// becomes active, or blank() is opened fresh if none remain. Closing
// always triggers a full resize.
func (c *Collection) Close(v *View, blank func() *View) {
	if v.splitChild != nil {
		c.Close(v.splitChild, blank)
	}

	searchFrom := v.nextAll
	hadSiblings := searchFrom != v
	parent := v.splitParent

	c.removeAll(v)
	if parent != nil {
		parent.splitChild = nil
	} else {
		c.removeTop(v)
	}
	v.splitParent = nil

	wasActive := c.active == v
	if wasActive {
		switch {
		case parent != nil:
			c.active = parent
		case hadSiblings:
			c.active = firstEditFrom(searchFrom)
		default:
			c.active = nil
		}
		if c.active == nil && parent == nil {
			b := blank()
			c.Open(b, nil, true)
		}
	}
	c.Resize()
}

// firstEditFrom walks the ring starting at start, looking for the nearest
// EDIT-type view, wrapping once all the way around.
func firstEditFrom(start *View) *View {
	if start == nil {
		return nil
	}
	for cur := start; ; cur = cur.nextAll {
		if cur.typ == command.ViewEdit {
			return cur
		}
		if cur.nextAll == start {
			return nil
		}
	}
}

// AllViews returns every view in the all-views ring, starting at an
// arbitrary member.
func (c *Collection) AllViews() []*View {
	if c.allHead == nil {
		return nil
	}
	var out []*View
	for cur := c.allHead; ; cur = cur.nextAll {
		out = append(out, cur)
		if cur.nextAll == c.allHead {
			break
		}
	}
	return out
}

// TopViews returns the top-level views in list order.
func (c *Collection) TopViews() []*View {
	var out []*View
	for cur := c.topHead; cur != nil; cur = cur.nextTop {
		out = append(out, cur)
	}
	return out
}

func (c *Collection) prependAll(v *View) {
	if c.allHead == nil {
		v.prevAll, v.nextAll = v, v
		c.allHead = v
		return
	}
	tail := c.allHead.prevAll
	v.nextAll = c.allHead
	v.prevAll = tail
	tail.nextAll = v
	c.allHead.prevAll = v
	c.allHead = v
}

func (c *Collection) removeAll(v *View) {
	if v.nextAll == v {
		c.allHead = nil
	} else {
		v.prevAll.nextAll = v.nextAll
		v.nextAll.prevAll = v.prevAll
		if c.allHead == v {
			c.allHead = v.nextAll
		}
	}
	v.prevAll, v.nextAll = nil, nil
}

func (c *Collection) appendTop(v *View) {
	v.prevTop = c.topTail
	v.nextTop = nil
	if c.topTail != nil {
		c.topTail.nextTop = v
	} else {
		c.topHead = v
	}
	c.topTail = v
}

func (c *Collection) removeTop(v *View) {
	if v.prevTop != nil {
		v.prevTop.nextTop = v.nextTop
	} else {
		c.topHead = v.nextTop
	}
	if v.nextTop != nil {
		v.nextTop.prevTop = v.prevTop
	} else {
		c.topTail = v.prevTop
	}
	v.prevTop, v.nextTop = nil, nil
}

// Resize recomputes every top-level view's rectangle from the last known
// screen size, splitting height evenly across top-views and, for any view
// with a split-child, its own width evenly between parent and child. Actual
// drawing is an external collaborator's concern (spec.md §1); the core only
// needs the rectangles kept current for cursor/paint bookkeeping.
func (c *Collection) Resize() {
	tops := c.TopViews()
	if len(tops) == 0 || c.screenW == 0 || c.screenH == 0 {
		return
	}
	rowH := c.screenH / len(tops)
	y := 0
	for i, t := range tops {
		h := rowH
		if i == len(tops)-1 {
			h = c.screenH - y // give the remainder to the last row
		}
		resizeSplitChain(t, 0, y, c.screenW, h)
		y += rowH
	}
}

// resizeSplitChain assigns rect to v, splitting its width in half for a
// split-child chain.
func resizeSplitChain(v *View, x, y, w, h int) {
	v.Rect = Rect{X: x, Y: y, W: w, H: h}
	if v.splitChild == nil {
		return
	}
	half := w / 2
	v.Rect.W = half
	resizeSplitChain(v.splitChild, x+half, y, w-half, h)
}
