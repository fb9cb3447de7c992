// Package terminal implements VT100/ANSI terminal emulation and PTY-backed
// child process supervision for an embedded popup terminal.
//
// Grid maintains a virtual terminal screen buffer that processes raw byte
// output (including ANSI escape sequences) and stores the resulting
// character+attribute grid, so real terminal content can be embedded inside
// a Bubbletea TUI.
package terminal

import "sync"

// Attr is a packed 16-bit cell attribute word:
//
//	bit 0:    reverse video
//	bit 1:    bold
//	bit 2:    underline
//	bit 3:    dim
//	bit 4:    ACS (alternate/line-drawing character set)
//	bits 5-8:  foreground index (0=default, 1-8=ANSI)
//	bits 9-12: background index (0=default, 1-8=ANSI)
type Attr uint16

const (
	AttrReverse   Attr = 1 << 0
	AttrBold      Attr = 1 << 1
	AttrUnderline Attr = 1 << 2
	AttrDim       Attr = 1 << 3
	AttrACS       Attr = 1 << 4

	attrFGShift = 5
	attrBGShift = 9
	attrColMask = 0xF
)

// FG returns the foreground palette index (0=default, 1..8=ANSI).
func (a Attr) FG() int { return int(a>>attrFGShift) & attrColMask }

// BG returns the background palette index (0=default, 1..8=ANSI).
func (a Attr) BG() int { return int(a>>attrBGShift) & attrColMask }

// WithFG returns a copy of a with the foreground index replaced.
func (a Attr) WithFG(idx int) Attr {
	a &^= Attr(attrColMask) << attrFGShift
	return a | Attr(idx&attrColMask)<<attrFGShift
}

// WithBG returns a copy of a with the background index replaced.
func (a Attr) WithBG(idx int) Attr {
	a &^= Attr(attrColMask) << attrBGShift
	return a | Attr(idx&attrColMask)<<attrBGShift
}

// Cell is a single character position on the grid.
type Cell struct {
	Ch   rune
	Attr Attr
}

// charsetID names a designated character set (G0/G1).
type charsetID int

const (
	charsetASCII charsetID = iota
	charsetACS             // VT100 line-drawing set (DEC Special Graphics)
)

// parserState tracks the escape-sequence parser automaton.
type parserState int

const (
	stateNormal parserState = iota
	stateESC
	stateCSI
	stateOSC
	stateCharset // ESC ( / ESC ) — next byte selects G0/G1 designation
)

// Grid is a VT100-compatible virtual terminal cell grid. It owns both the
// cell buffer and the byte-level VT parser that feeds it: Write drives
// bytes through the parser, which mutates cursor/attribute/buffer state.
//
// Thread-safety: all public methods acquire an internal mutex so the grid
// can be written to from a PTY reader goroutine while a render loop reads
// cells concurrently.
type Grid struct {
	mu sync.Mutex

	rows, cols int
	cells      []Cell // row-major, len == rows*cols

	cx, cy     int  // cursor column/row, 0-indexed
	savedCx    int  // DECSC / CSI s saved cursor
	savedCy    int
	curAttr    Attr // attribute applied to subsequently written cells
	wrapPending bool // deferred autowrap: next printable wraps first

	scrollTop    int // 0-indexed, inclusive
	scrollBottom int // 0-indexed, inclusive

	g0, g1  charsetID
	useG1   bool // true selects G1 via SO (Ctrl-N); false is G0 (default)
	appCursor bool // DECCKM: application cursor-key mode
	appKeypad bool // DECKPAM: application keypad mode (tracked, not acted on)

	// parser state
	state            parserState
	csiBuf           []byte
	oscBuf           []byte
	oscEscSeen       bool // ESC seen while collecting OSC payload, awaiting ST's '\'
	pendingDesignate byte // '(' or ')' while in stateCharset

	utf8Len int // expected length of an in-progress multi-byte rune
	utf8Got int
	utf8Buf [4]byte

	// Title reported by OSC 0/2 sequences (xterm window title).
	Title string
}

// NewGrid allocates a Grid of the given dimensions with a full-screen
// scroll region and default attributes.
func NewGrid(rows, cols int) *Grid {
	g := &Grid{}
	g.reinit(rows, cols)
	return g
}

func (g *Grid) reinit(rows, cols int) {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	g.rows, g.cols = rows, cols
	g.cells = make([]Cell, rows*cols)
	for i := range g.cells {
		g.cells[i] = Cell{Ch: ' '}
	}
	g.scrollTop = 0
	g.scrollBottom = rows - 1
}

// Rows returns the number of rows.
func (g *Grid) Rows() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rows
}

// Cols returns the number of columns.
func (g *Grid) Cols() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.cols
}

// Cursor returns the current 0-indexed cursor position.
func (g *Grid) Cursor() (row, col int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.cy, g.cx
}

// AppCursor reports whether DECCKM application cursor-key mode is active.
func (g *Grid) AppCursor() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.appCursor
}

// cellAt returns a pointer to the cell at (row, col). Caller holds g.mu.
func (g *Grid) cellAt(row, col int) *Cell {
	return &g.cells[row*g.cols+col]
}

// Resize changes the grid dimensions, preserving content where possible.
// The scroll region resets to the full screen, matching term_resize's
// behaviour of not trying to re-derive a meaningful region after a size
// change.
func (g *Grid) Resize(rows, cols int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if rows == g.rows && cols == g.cols {
		return
	}
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	nc := make([]Cell, rows*cols)
	for i := range nc {
		nc[i] = Cell{Ch: ' '}
	}
	for r := 0; r < rows && r < g.rows; r++ {
		for c := 0; c < cols && c < g.cols; c++ {
			nc[r*cols+c] = g.cells[r*g.cols+c]
		}
	}
	g.cells = nc
	g.rows, g.cols = rows, cols
	g.scrollTop = 0
	g.scrollBottom = rows - 1
	g.wrapPending = false
	g.clampCursor()
}

// ClearKeepModes blanks the cell buffer and resets the cursor, but leaves
// DECCKM/keypad/charset modes untouched. Used when a popup's viewport is
// resized while a child is running, so the next redraw from the child
// doesn't mix with stale cells while key encoding stays correct.
func (g *Grid) ClearKeepModes() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i := range g.cells {
		g.cells[i] = Cell{Ch: ' ', Attr: g.curAttr}
	}
	g.cx, g.cy = 0, 0
	g.wrapPending = false
}

// Write feeds raw child output bytes through the VT parser.
func (g *Grid) Write(p []byte) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, b := range p {
		g.processByte(b)
	}
	return len(p), nil
}

func (g *Grid) clampCursor() {
	if g.cy < 0 {
		g.cy = 0
	}
	if g.cy >= g.rows {
		g.cy = g.rows - 1
	}
	if g.cx < 0 {
		g.cx = 0
	}
	if g.cx >= g.cols {
		g.cx = g.cols - 1
	}
}

func (g *Grid) regionTop() int {
	if g.scrollTop >= 0 && g.scrollTop < g.rows {
		return g.scrollTop
	}
	return 0
}

func (g *Grid) regionBottom() int {
	if g.scrollBottom >= 0 && g.scrollBottom < g.rows {
		return g.scrollBottom
	}
	return g.rows - 1
}
