// Package cursor tracks the selected row and scroll window of a list.
package cursor

// Cursor holds a selection and the first visible row. The list length and
// viewport height are passed to each call since both change with the
// folder contents and the terminal size.
type Cursor struct {
	pos    int
	offset int
	margin int // rows kept visible above and below the selection
}

// New creates a Cursor with the given scroll margin.
func New(margin int) Cursor {
	return Cursor{margin: max(margin, 0)}
}

func (c Cursor) Pos() int    { return c.pos }
func (c Cursor) Offset() int { return c.offset }

// Move moves the selection by delta rows, stopping at both ends.
func (c *Cursor) Move(delta, listLen, height int) {
	c.Jump(c.pos+delta, listLen, height)
}

// Jump selects row pos, clamped to the list.
func (c *Cursor) Jump(pos, listLen, height int) {
	if listLen <= 0 {
		c.Reset()
		return
	}
	c.pos = clamp(pos, listLen-1)
	c.scroll(listLen, height)
}

// Page moves by one viewport height, down for dir > 0 and up otherwise.
func (c *Cursor) Page(dir, listLen, height int) {
	step := max(height-1, 1)
	if dir < 0 {
		step = -step
	}
	c.Move(step, listLen, height)
}

// Reset selects the first row.
func (c *Cursor) Reset() {
	c.pos, c.offset = 0, 0
}

// Clamp keeps the selection valid after the list shrank.
func (c *Cursor) Clamp(listLen, height int) {
	c.Jump(c.pos, listLen, height)
}

// VisibleRange returns the rows to draw as [start, end).
func (c Cursor) VisibleRange(listLen, height int) (start, end int) {
	if listLen <= 0 || height <= 0 {
		return 0, 0
	}
	return c.offset, min(c.offset+height, listLen)
}

func (c *Cursor) scroll(listLen, height int) {
	if height <= 0 {
		return
	}
	margin := min(c.margin, (height-1)/2)

	if c.pos < c.offset+margin {
		c.offset = c.pos - margin
	}
	if c.pos >= c.offset+height-margin {
		c.offset = c.pos - height + margin + 1
	}
	c.offset = clamp(c.offset, max(listLen-height, 0))
}

func clamp(v, hi int) int {
	return min(max(v, 0), hi)
}
