package terminal

import "testing"

func TestGrid_FullRowWriteWrapsPending(t *testing.T) {
	g := NewGrid(3, 5)
	g.Write([]byte("HELLO"))

	if row := plainRow(g, 0); row != "HELLO" {
		t.Errorf("row 0 = %q, want %q", row, "HELLO")
	}
	if g.cy != 0 || g.cx != 4 {
		t.Errorf("cursor = (%d,%d), want (0,4)", g.cy, g.cx)
	}
	if !g.wrapPending {
		t.Error("wrapPending should be set after filling the last column")
	}

	g.Write([]byte("!"))
	if row := plainRow(g, 0); row != "HELLO" {
		t.Errorf("row 0 after wrap = %q, want unchanged %q", row, "HELLO")
	}
	if g.cy != 1 || g.cx != 1 {
		t.Errorf("cursor after wrap = (%d,%d), want (1,1)", g.cy, g.cx)
	}
	if row := plainRow(g, 1)[:1]; row != "!" {
		t.Errorf("row 1 first char = %q, want '!'", row)
	}
}

func TestGrid_LineFeedClearsWrapPending(t *testing.T) {
	g := NewGrid(3, 5)
	g.Write([]byte("HELLO\n"))
	if g.wrapPending {
		t.Error("wrapPending should be cleared by a bare LF after a full-width row")
	}
	// LF keeps the column, so X lands on row 1 at column 4 rather than
	// wrapping a second time onto row 2.
	g.Write([]byte("X"))
	if row := plainRow(g, 1); row[4:5] != "X" {
		t.Errorf("row 1 col 4 = %q, want 'X' (no double wrap)", row[4:5])
	}
	if g.cy != 1 || g.cx != 4 {
		t.Errorf("cursor = (%d,%d), want (1,4)", g.cy, g.cx)
	}
}

func TestGrid_ReverseLineFeedClearsWrapPending(t *testing.T) {
	g := NewGrid(3, 5)
	g.Write([]byte("HELLO"))
	g.cy = 1
	g.Write([]byte("\x1bM")) // RI
	if g.wrapPending {
		t.Error("wrapPending should be cleared by RI")
	}
}

func TestGrid_NEL_MovesToColumnZeroOfNextLine(t *testing.T) {
	g := NewGrid(3, 5)
	g.Write([]byte("AB\x1bE")) // NEL
	if g.cx != 0 || g.cy != 1 {
		t.Errorf("cursor after NEL = (%d,%d), want (1,0)", g.cy, g.cx)
	}
	g.Write([]byte("Z"))
	if row := plainRow(g, 1); row[:1] != "Z" {
		t.Errorf("row 1 first char = %q, want 'Z'", row[:1])
	}
}

func TestGrid_DECKPAM_DECKPNM_ToggleAppKeypad(t *testing.T) {
	g := NewGrid(3, 5)
	g.Write([]byte("\x1b="))
	if !g.appKeypad {
		t.Error("DECKPAM should set appKeypad")
	}
	g.Write([]byte("\x1b>"))
	if g.appKeypad {
		t.Error("DECKPNM should clear appKeypad")
	}
}

func TestGrid_DECSTBMAndLineFeed(t *testing.T) {
	g := NewGrid(5, 3)
	g.Write([]byte("\x1b[2;4r"))
	if g.scrollTop != 1 || g.scrollBottom != 3 {
		t.Fatalf("scroll region = [%d,%d], want [1,3]", g.scrollTop, g.scrollBottom)
	}

	// mark every row so we can tell which ones scrolled
	for row := 0; row < 5; row++ {
		g.cy, g.cx = row, 0
		g.wrapPending = false
		g.Write([]byte{byte('0' + row)})
	}

	g.Write([]byte("\x1b[4;1H"))
	g.Write([]byte("A\n"))

	if plainRow(g, 0)[:1] != "0" {
		t.Error("row 0 should be unaffected by scroll region")
	}
	if plainRow(g, 4)[:1] != "4" {
		t.Error("row 4 should be unaffected by scroll region")
	}
	if plainRow(g, 3) != "   " {
		t.Errorf("row 3 should be blanked by the scroll, got %q", plainRow(g, 3))
	}
}

func TestGrid_EraseDisplayKeepsModes(t *testing.T) {
	g := NewGrid(4, 4)
	g.Write([]byte("\x1b[?1h\x1b(0\x1b[2J"))

	if !g.appCursor {
		t.Error("DECCKM should remain set after ED")
	}
	if g.g0 != charsetACS {
		t.Error("G0 charset should remain line-drawing after ED")
	}
	for row := 0; row < 4; row++ {
		if plainRow(g, row) != "    " {
			t.Errorf("row %d not blanked: %q", row, plainRow(g, row))
		}
	}
}

func TestGrid_EraseUsesCurrentSGR(t *testing.T) {
	g := NewGrid(3, 5)
	g.Write([]byte("\x1b[41m\x1b[2K"))
	for c := 0; c < 5; c++ {
		cell := g.cellAt(0, c)
		if cell.Attr.BG() != 2 { // 41 -> index 1+1=2 (red)
			t.Errorf("cell (0,%d) bg = %d, want 2 (red)", c, cell.Attr.BG())
		}
	}
}

func TestGrid_ScrollRegionContainment(t *testing.T) {
	g := NewGrid(10, 2)
	g.scrollTop, g.scrollBottom = 2, 4
	for row := 0; row < 10; row++ {
		g.cells[row*2] = Cell{Ch: rune('0' + row), Attr: 0}
	}
	g.cy = 4
	g.lineFeed()

	if plainRow(g, 0)[:1] != "0" || plainRow(g, 1)[:1] != "1" {
		t.Error("rows above region must be unchanged")
	}
	for row := 5; row < 10; row++ {
		want := string(rune('0' + row))
		if plainRow(g, row)[:1] != want {
			t.Errorf("row %d changed outside region: got %q want %q", row, plainRow(g, row)[:1], want)
		}
	}
}

func TestGrid_InsertDeleteLineOnlyInsideRegion(t *testing.T) {
	g := NewGrid(10, 2)
	g.scrollTop, g.scrollBottom = 2, 4
	g.cy = 0
	for row := 0; row < 10; row++ {
		g.cells[row*2] = Cell{Ch: rune('0' + row), Attr: 0}
	}
	g.insertLines(1)
	if plainRow(g, 0)[:1] != "0" {
		t.Error("insertLines at cy=0 outside region must be a no-op")
	}
	g.deleteLines(1)
	if plainRow(g, 0)[:1] != "0" {
		t.Error("deleteLines at cy=0 outside region must be a no-op")
	}
}

func TestGrid_CursorStaysInBounds(t *testing.T) {
	g := NewGrid(4, 4)
	seqs := [][]byte{
		[]byte("\x1b[100;100H"),
		[]byte("\x1b[A\x1b[A\x1b[A\x1b[A\x1b[A"),
		[]byte("\x1b[B\x1b[B\x1b[B\x1b[B\x1b[B\x1b[B"),
		[]byte("ABCDEFGH"),
	}
	for _, s := range seqs {
		g.Write(s)
		if g.cx < 0 || g.cx >= g.cols {
			t.Fatalf("cx out of bounds: %d", g.cx)
		}
		if g.cy < 0 || g.cy >= g.rows {
			t.Fatalf("cy out of bounds: %d", g.cy)
		}
	}
}

func TestGrid_ScrollRegionWellFormedAfterInvalidDECSTBM(t *testing.T) {
	g := NewGrid(5, 5)
	g.Write([]byte("\x1b[4;2r")) // top >= bottom, invalid
	if g.scrollTop != 0 || g.scrollBottom != 4 {
		t.Errorf("invalid DECSTBM should reset to full screen, got [%d,%d]", g.scrollTop, g.scrollBottom)
	}
}

func TestGrid_Resize(t *testing.T) {
	g := NewGrid(3, 3)
	g.Write([]byte("AB"))
	g.Resize(5, 5)
	if g.Rows() != 5 || g.Cols() != 5 {
		t.Fatalf("size after resize = %dx%d, want 5x5", g.Rows(), g.Cols())
	}
	if plainRow(g, 0)[:2] != "AB" {
		t.Errorf("resize should preserve existing content, row 0 = %q", plainRow(g, 0))
	}
}

func plainRow(g *Grid, row int) string {
	b := make([]rune, g.cols)
	for c := 0; c < g.cols; c++ {
		ch := g.cellAt(row, c).Ch
		if ch == 0 {
			ch = ' '
		}
		b[c] = ch
	}
	return string(b)
}
