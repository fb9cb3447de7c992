package terminal

import (
	"strings"
	"unicode/utf8"
)

// processByte feeds one byte into the parser state machine.
func (g *Grid) processByte(b byte) {
	switch g.state {
	case stateNormal:
		g.processNormal(b)
	case stateESC:
		g.processESC(b)
	case stateCSI:
		g.processCSI(b)
	case stateOSC:
		g.processOSC(b)
	case stateCharset:
		g.processCharset(b)
	}
}

// processNormal handles bytes outside any escape sequence.
func (g *Grid) processNormal(b byte) {
	if g.utf8Len > 0 {
		if b >= 0x80 && b <= 0xBF {
			g.utf8Buf[g.utf8Got] = b
			g.utf8Got++
			if g.utf8Got == g.utf8Len {
				r, _ := utf8.DecodeRune(g.utf8Buf[:g.utf8Len])
				g.utf8Len, g.utf8Got = 0, 0
				if r != utf8.RuneError {
					g.putChar(r)
				}
			}
			return
		}
		g.utf8Len, g.utf8Got = 0, 0
		// fall through: b is processed as a fresh byte below
	}

	switch b {
	case 0x1b: // ESC
		g.state = stateESC
	case '\n': // LF
		g.lineFeed()
	case '\r': // CR
		g.cx = 0
		g.wrapPending = false
	case '\b': // backspace
		if g.cx > 0 {
			g.cx--
		}
		g.wrapPending = false
	case '\t': // HT
		g.cx = (g.cx/8 + 1) * 8
		if g.cx >= g.cols {
			g.cx = g.cols - 1
		}
		g.wrapPending = false
	case 0x0e: // SO — shift to G1
		g.useG1 = true
	case 0x0f: // SI — shift to G0
		g.useG1 = false
	case 0x07: // BEL — ignored (popup has no bell sink)
	default:
		switch {
		case b >= 0x20 && b <= 0x7e:
			g.putChar(g.translateGlyph(rune(b)))
			g.curAttr &^= AttrACS
		case b >= 0xc0 && b <= 0xf7: // UTF-8 lead byte
			g.utf8Buf[0] = b
			g.utf8Got = 1
			switch {
			case b < 0xe0:
				g.utf8Len = 2
			case b < 0xf0:
				g.utf8Len = 3
			default:
				g.utf8Len = 4
			}
		}
		// other C0 controls and stray continuation bytes are dropped
	}
}

// translateGlyph applies the VT100 line-drawing (ACS) mapping and tags the
// cell's attribute with AttrACS when the currently designated charset is
// the DEC Special Graphics set, so the renderer knows to reinterpret the
// raw byte as a box-drawing glyph instead of literal ASCII. The flag is
// set on curAttr so putChar writes it into the cell; the caller clears it
// again once the cell is written.
func (g *Grid) translateGlyph(ch rune) rune {
	if g.currentCharset() != charsetACS {
		return ch
	}
	g.curAttr |= AttrACS
	return ch
}

// processESC handles the byte immediately after ESC.
func (g *Grid) processESC(b byte) {
	switch b {
	case '[':
		g.state = stateCSI
		g.csiBuf = g.csiBuf[:0]
	case ']':
		g.state = stateOSC
		g.oscBuf = g.oscBuf[:0]
		g.oscEscSeen = false
	case '(', ')': // designate G0/G1
		g.pendingDesignate = b
		g.state = stateCharset
	case '7': // DECSC
		g.savedCx, g.savedCy = g.cx, g.cy
		g.state = stateNormal
	case '8': // DECRC
		g.cx, g.cy = g.savedCx, g.savedCy
		g.clampCursor()
		g.wrapPending = false
		g.state = stateNormal
	case 'D': // IND
		g.lineFeed()
		g.state = stateNormal
	case 'E': // NEL
		g.cx = 0
		g.lineFeed()
		g.state = stateNormal
	case 'M': // RI
		g.reverseLineFeed()
		g.state = stateNormal
	case '=': // DECKPAM
		g.appKeypad = true
		g.state = stateNormal
	case '>': // DECKPNM
		g.appKeypad = false
		g.state = stateNormal
	case 'c': // RIS
		g.fullReset()
		g.state = stateNormal
	default:
		g.state = stateNormal
	}
}

// processCharset consumes the designation byte following ESC ( / ESC ).
func (g *Grid) processCharset(b byte) {
	set := charsetASCII
	if b == '0' {
		set = charsetACS
	}
	if g.pendingDesignate == '(' {
		g.g0 = set
	} else {
		g.g1 = set
	}
	g.state = stateNormal
}

// processCSI collects CSI parameter/intermediate bytes and dispatches on
// the final byte.
func (g *Grid) processCSI(b byte) {
	if b >= 0x30 && b <= 0x3f { // parameter bytes: digits ; : < = > ?
		g.csiBuf = append(g.csiBuf, b)
		return
	}
	if b >= 0x20 && b <= 0x2f { // intermediate bytes
		g.csiBuf = append(g.csiBuf, b)
		return
	}
	if b != 'm' {
		g.wrapPending = false
	}
	g.dispatchCSI(b)
	g.state = stateNormal
}

// processOSC collects the OSC payload until BEL or the two-byte ST (ESC \).
func (g *Grid) processOSC(b byte) {
	if g.oscEscSeen {
		g.oscEscSeen = false
		if b == '\\' {
			g.handleOSC()
			g.state = stateNormal
			return
		}
		// not a valid ST: drop the ESC, reprocess b as part of the payload
	}
	if b == 0x07 {
		g.handleOSC()
		g.state = stateNormal
		return
	}
	if b == 0x1b {
		g.oscEscSeen = true
		return
	}
	g.oscBuf = append(g.oscBuf, b)
}

// handleOSC processes the completed OSC payload (OSC 0/2 ; title).
func (g *Grid) handleOSC() {
	payload := string(g.oscBuf)
	if strings.HasPrefix(payload, "0;") || strings.HasPrefix(payload, "2;") {
		g.Title = payload[2:]
	}
}
