package terminal

import (
	"strconv"
	"strings"
)

// dispatchCSI executes a CSI sequence given its final byte, using the
// accumulated parameter buffer.
func (g *Grid) dispatchCSI(cmd byte) {
	priv := len(g.csiBuf) > 0 && g.csiBuf[0] == '?'
	params := g.parseCSIParams()

	switch cmd {
	case 'A': // Cursor Up
		g.cy -= paramDefault(params, 0, 1)
		g.clampCursor()
	case 'B': // Cursor Down
		g.cy += paramDefault(params, 0, 1)
		g.clampCursor()
	case 'C': // Cursor Forward
		g.cx += paramDefault(params, 0, 1)
		g.clampCursor()
	case 'D': // Cursor Backward
		g.cx -= paramDefault(params, 0, 1)
		g.clampCursor()
	case 'E': // Cursor Next Line
		g.cy += paramDefault(params, 0, 1)
		g.cx = 0
		g.clampCursor()
	case 'F': // Cursor Previous Line
		g.cy -= paramDefault(params, 0, 1)
		g.cx = 0
		g.clampCursor()
	case 'G', '`': // Cursor Horizontal Absolute
		g.cx = paramDefault(params, 0, 1) - 1
		g.clampCursor()
	case 'H', 'f': // Cursor Position
		g.cy = paramDefault(params, 0, 1) - 1
		g.cx = paramDefault(params, 1, 1) - 1
		g.clampCursor()
	case 'd': // Vertical Position Absolute
		g.cy = paramDefault(params, 0, 1) - 1
		g.clampCursor()
	case 'J': // Erase in Display
		g.eraseDisplay(paramDefault(params, 0, 0))
	case 'K': // Erase in Line
		g.eraseLine(paramDefault(params, 0, 0))
	case 'X': // Erase Characters
		g.eraseChars(paramDefault(params, 0, 1))
	case 'L': // Insert Lines
		g.insertLines(paramDefault(params, 0, 1))
	case 'M': // Delete Lines
		g.deleteLines(paramDefault(params, 0, 1))
	case 'P': // Delete Characters
		g.deleteChars(paramDefault(params, 0, 1))
	case '@': // Insert Characters
		g.insertChars(paramDefault(params, 0, 1))
	case 'S': // Scroll Up (within the scroll region)
		for i, n := 0, paramDefault(params, 0, 1); i < n; i++ {
			g.scrollUp()
		}
	case 'T': // Scroll Down (within the scroll region)
		for i, n := 0, paramDefault(params, 0, 1); i < n; i++ {
			g.scrollDown()
		}
	case 'm': // SGR
		g.applySGR(params)
	case 'r': // DECSTBM — Set Scrolling Region (1-indexed, inclusive)
		top := paramDefault(params, 0, 1) - 1
		bottom := paramDefault(params, 1, g.rows) - 1
		if top < 0 {
			top = 0
		}
		if bottom >= g.rows {
			bottom = g.rows - 1
		}
		if top < bottom {
			g.scrollTop, g.scrollBottom = top, bottom
		} else {
			g.scrollTop, g.scrollBottom = 0, g.rows-1
		}
		g.cx, g.cy = 0, 0
	case 's': // Save Cursor Position (ANSI.SYS form)
		g.savedCx, g.savedCy = g.cx, g.cy
	case 'u': // Restore Cursor Position
		g.cx, g.cy = g.savedCx, g.savedCy
		g.clampCursor()
	case 'h', 'l':
		g.applyMode(priv, params, cmd == 'h')
	}
}

// applyMode handles CSI ? N h/l (DEC private modes) relevant to this
// emulator: DECCKM (application cursor keys) and the alternate-screen
// modes (47/1049), which clear the buffer on entry while leaving modes
// intact — mirroring what a popup viewport resize does when it wants a
// clean redraw from an ncurses-style child without disturbing DECCKM.
func (g *Grid) applyMode(priv bool, params []int, set bool) {
	if !priv {
		return
	}
	for _, p := range params {
		switch p {
		case 1: // DECCKM
			g.appCursor = set
		case 1048: // save/restore cursor (bundled with 1049)
			if set {
				g.savedCx, g.savedCy = g.cx, g.cy
			} else {
				g.cx, g.cy = g.savedCx, g.savedCy
				g.clampCursor()
			}
		case 47, 1049:
			if set {
				g.savedCx, g.savedCy = g.cx, g.cy
				g.ClearKeepModesLocked()
			}
		}
	}
}

// ClearKeepModesLocked is ClearKeepModes for callers that already hold g.mu
// (the CSI dispatcher runs under Write's lock).
func (g *Grid) ClearKeepModesLocked() {
	for i := range g.cells {
		g.cells[i] = Cell{Ch: ' ', Attr: g.curAttr}
	}
	g.cx, g.cy = 0, 0
	g.wrapPending = false
}

// parseCSIParams splits the CSI parameter buffer into integer parameters.
// Leading private-mode markers (?, >, =, !) are stripped; ";" separates
// values; missing/empty values become 0.
func (g *Grid) parseCSIParams() []int {
	raw := strings.TrimLeft(string(g.csiBuf), "?>=!")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ";")
	params := make([]int, len(parts))
	for i, p := range parts {
		v, _ := strconv.Atoi(p)
		params[i] = v
	}
	return params
}

// paramDefault returns params[idx] if present and > 0, else def.
func paramDefault(params []int, idx, def int) int {
	if idx < len(params) && params[idx] > 0 {
		return params[idx]
	}
	return def
}

// ---------------------------------------------------------------------------
// SGR — Select Graphic Rendition
// ---------------------------------------------------------------------------

// applySGR updates curAttr from a CSI m parameter list, reducing any
// 256-colour (38/48;5;n) or truecolour (38/48;2;r;g;b) extended colour
// request down to the 8-colour palette the packed Attr word carries.
func (g *Grid) applySGR(params []int) {
	if len(params) == 0 {
		params = []int{0}
	}
	i := 0
	for i < len(params) {
		p := params[i]
		switch {
		case p == 0:
			g.curAttr = 0
		case p == 1:
			g.curAttr |= AttrBold
		case p == 2:
			g.curAttr |= AttrDim
		case p == 4:
			g.curAttr |= AttrUnderline
		case p == 7:
			g.curAttr |= AttrReverse
		case p == 22:
			g.curAttr &^= AttrBold | AttrDim
		case p == 24:
			g.curAttr &^= AttrUnderline
		case p == 27:
			g.curAttr &^= AttrReverse
		case p >= 30 && p <= 37:
			g.curAttr = g.curAttr.WithFG(p - 30 + 1)
		case p == 38:
			i = g.applyExtendedColor(params, i, true)
		case p == 39:
			g.curAttr = g.curAttr.WithFG(0)
		case p >= 40 && p <= 47:
			g.curAttr = g.curAttr.WithBG(p - 40 + 1)
		case p == 48:
			i = g.applyExtendedColor(params, i, false)
		case p == 49:
			g.curAttr = g.curAttr.WithBG(0)
		case p >= 90 && p <= 97: // bright fg -> base colour + bold, matching
			g.curAttr = g.curAttr.WithFG(p - 90 + 1) // the original's approximation
			g.curAttr |= AttrBold
		case p >= 100 && p <= 107: // bright bg -> base colour
			g.curAttr = g.curAttr.WithBG(p - 100 + 1)
		}
		i++
	}
}

// applyExtendedColor handles "38;5;N" (256-colour) and "38;2;R;G;B"
// (truecolour) sub-sequences, reducing to the 8-colour palette. Returns
// the index of the last parameter it consumed; applySGR's loop then
// advances past it.
func (g *Grid) applyExtendedColor(params []int, i int, fg bool) int {
	if i+1 >= len(params) {
		return i
	}
	mode := params[i+1]
	switch mode {
	case 5:
		if i+2 < len(params) {
			idx := xterm256ToAnsi8(params[i+2])
			if fg {
				g.curAttr = g.curAttr.WithFG(idx + 1)
			} else {
				g.curAttr = g.curAttr.WithBG(idx + 1)
			}
			return i + 2
		}
	case 2:
		if i+4 < len(params) {
			idx := rgbToAnsi8(params[i+2], params[i+3], params[i+4])
			if fg {
				g.curAttr = g.curAttr.WithFG(idx + 1)
			} else {
				g.curAttr = g.curAttr.WithBG(idx + 1)
			}
			return i + 4
		}
	}
	return i + 1
}
