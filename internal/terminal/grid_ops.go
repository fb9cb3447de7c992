package terminal

// ---------------------------------------------------------------------------
// Grid manipulation helpers
// ---------------------------------------------------------------------------

// putChar writes a character at the cursor position and advances the
// cursor, honouring deferred autowrap: writing past the last column sets
// wrapPending instead of wrapping immediately, and the wrap only actually
// happens the next time a printable character arrives. This matches real
// terminals (and the original C implementation): a line that exactly fills
// the width doesn't eagerly start a new blank line underneath it.
func (g *Grid) putChar(ch rune) {
	if g.wrapPending {
		g.cx = 0
		g.lineFeed()
		g.wrapPending = false
	}
	if g.cy >= 0 && g.cy < g.rows && g.cx >= 0 && g.cx < g.cols {
		*g.cellAt(g.cy, g.cx) = Cell{Ch: ch, Attr: g.curAttr}
	}
	if g.cx == g.cols-1 {
		g.wrapPending = true
	} else {
		g.cx++
	}
}

// lineFeed moves the cursor down one line, scrolling the region if the
// cursor sits on the region's bottom line.
func (g *Grid) lineFeed() {
	g.wrapPending = false
	bottom := g.regionBottom()
	if g.cy == bottom {
		g.scrollUp()
	} else if g.cy < g.rows-1 {
		g.cy++
	}
}

// reverseLineFeed moves the cursor up one line, scrolling the region if the
// cursor sits on the region's top line.
func (g *Grid) reverseLineFeed() {
	g.wrapPending = false
	top := g.regionTop()
	if g.cy == top {
		g.scrollDown()
	} else if g.cy > 0 {
		g.cy--
	}
}

// scrollUp scrolls the scroll region up by one line: content moves up, a
// blank line (in the current attribute) appears at the region's bottom.
func (g *Grid) scrollUp() {
	top, bottom := g.regionTop(), g.regionBottom()
	if top >= bottom || top < 0 || bottom >= g.rows {
		return
	}
	for r := top; r < bottom; r++ {
		copy(g.cells[r*g.cols:(r+1)*g.cols], g.cells[(r+1)*g.cols:(r+2)*g.cols])
	}
	g.blankRow(bottom)
}

// scrollDown scrolls the scroll region down by one line: content moves
// down, a blank line appears at the region's top.
func (g *Grid) scrollDown() {
	top, bottom := g.regionTop(), g.regionBottom()
	if top >= bottom || top < 0 || bottom >= g.rows {
		return
	}
	for r := bottom; r > top; r-- {
		copy(g.cells[r*g.cols:(r+1)*g.cols], g.cells[(r-1)*g.cols:r*g.cols])
	}
	g.blankRow(top)
}

func (g *Grid) blankRow(row int) {
	for c := 0; c < g.cols; c++ {
		*g.cellAt(row, c) = Cell{Ch: ' ', Attr: g.curAttr}
	}
}

// eraseDisplay clears part of the screen: 0=cursor to end, 1=start to
// cursor, 2/3=entire screen. Erased cells take the current SGR attribute,
// matching real terminals (erasing with a background colour set paints
// that colour, it doesn't reset to default).
func (g *Grid) eraseDisplay(mode int) {
	switch mode {
	case 0:
		g.eraseLine(0)
		for r := g.cy + 1; r < g.rows; r++ {
			g.blankRow(r)
		}
	case 1:
		for r := 0; r < g.cy; r++ {
			g.blankRow(r)
		}
		g.eraseLine(1)
	case 2, 3:
		for r := 0; r < g.rows; r++ {
			g.blankRow(r)
		}
	}
}

// eraseLine clears part of the current line: 0=cursor to end, 1=start to
// cursor, 2=entire line.
func (g *Grid) eraseLine(mode int) {
	blank := Cell{Ch: ' ', Attr: g.curAttr}
	switch mode {
	case 0:
		for c := g.cx; c < g.cols; c++ {
			*g.cellAt(g.cy, c) = blank
		}
	case 1:
		for c := 0; c <= g.cx && c < g.cols; c++ {
			*g.cellAt(g.cy, c) = blank
		}
	case 2:
		g.blankRow(g.cy)
	}
}

// eraseChars blanks n characters starting at the cursor, without shifting
// the remainder of the line (CSI X).
func (g *Grid) eraseChars(n int) {
	blank := Cell{Ch: ' ', Attr: g.curAttr}
	for i := 0; i < n && g.cx+i < g.cols; i++ {
		*g.cellAt(g.cy, g.cx+i) = blank
	}
}

// insertLines inserts n blank lines at the cursor row, pushing the region's
// remaining lines down. A no-op outside the scroll region.
func (g *Grid) insertLines(n int) {
	bottom := g.regionBottom()
	if g.cy < g.regionTop() || g.cy > bottom {
		return
	}
	for i := 0; i < n && g.cy <= bottom; i++ {
		for r := bottom; r > g.cy; r-- {
			copy(g.cells[r*g.cols:(r+1)*g.cols], g.cells[(r-1)*g.cols:r*g.cols])
		}
		g.blankRow(g.cy)
	}
}

// deleteLines deletes n lines at the cursor row, pulling the region's
// remaining lines up. A no-op outside the scroll region.
func (g *Grid) deleteLines(n int) {
	bottom := g.regionBottom()
	if g.cy < g.regionTop() || g.cy > bottom {
		return
	}
	for i := 0; i < n && g.cy <= bottom; i++ {
		for r := g.cy; r < bottom; r++ {
			copy(g.cells[r*g.cols:(r+1)*g.cols], g.cells[(r+1)*g.cols:(r+2)*g.cols])
		}
		g.blankRow(bottom)
	}
}

// deleteChars deletes n characters at the cursor, shifting the rest of the
// line left and blanking the vacated tail.
func (g *Grid) deleteChars(n int) {
	row := g.cy * g.cols
	for i := g.cx; i < g.cols; i++ {
		if i+n < g.cols {
			g.cells[row+i] = g.cells[row+i+n]
		} else {
			g.cells[row+i] = Cell{Ch: ' ', Attr: g.curAttr}
		}
	}
}

// insertChars inserts n blank characters at the cursor, shifting the rest
// of the line right and truncating anything pushed past the last column.
func (g *Grid) insertChars(n int) {
	row := g.cy * g.cols
	for i := g.cols - 1; i >= g.cx+n; i-- {
		g.cells[row+i] = g.cells[row+i-n]
	}
	for i := g.cx; i < g.cx+n && i < g.cols; i++ {
		g.cells[row+i] = Cell{Ch: ' ', Attr: g.curAttr}
	}
}

// fullReset (RIS) resets modes, attributes, scroll region, and the cell
// buffer to their initial state.
func (g *Grid) fullReset() {
	g.curAttr = 0
	g.cx, g.cy = 0, 0
	g.wrapPending = false
	g.scrollTop = 0
	g.scrollBottom = g.rows - 1
	g.g0, g.g1 = charsetASCII, charsetASCII
	g.useG1 = false
	g.appCursor = false
	g.appKeypad = false
	g.Title = ""
	for i := range g.cells {
		g.cells[i] = Cell{Ch: ' '}
	}
}

// currentCharset returns whichever of G0/G1 is presently selected (SI/SO).
func (g *Grid) currentCharset() charsetID {
	if g.useG1 {
		return g.g1
	}
	return g.g0
}
