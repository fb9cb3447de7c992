package terminal

import tea "github.com/charmbracelet/bubbletea"

// fnSeqs holds the CSI sequences for F5-F12 (F1-F4 are always the SS3
// ESC O P/Q/R/S form and don't need a table).
var fnSeqs = [8]string{
	"\x1b[15~", "\x1b[17~", "\x1b[18~", "\x1b[19~",
	"\x1b[20~", "\x1b[21~", "\x1b[23~", "\x1b[24~",
}

// EncodeKey translates a host key event into the byte sequence a child on
// the PTY expects to receive, honouring DECCKM for the arrow/Home/End
// cursor keys: application mode uses the SS3 (ESC O x) form, normal mode
// uses the ANSI CSI (ESC [ x) form. F1-F4 are always SS3; F5-F12 and the
// Insert/Delete/PgUp/PgDn/Backtab family are mode-invariant CSI ~ /
// letter sequences, matching real xterm behaviour.
func EncodeKey(msg tea.KeyMsg, appCursor bool) []byte {
	switch msg.Type {
	case tea.KeyRunes:
		return []byte(string(msg.Runes))
	case tea.KeySpace:
		return []byte{' '}
	case tea.KeyEnter:
		return []byte{'\r'}
	case tea.KeyBackspace:
		return []byte{0x7f}
	case tea.KeyTab:
		return []byte{'\t'}
	case tea.KeyEsc:
		return []byte{0x1b}
	case tea.KeyCtrlA:
		return []byte{0x01}
	case tea.KeyCtrlB:
		return []byte{0x02}
	case tea.KeyCtrlC:
		return []byte{0x03}
	case tea.KeyCtrlD:
		return []byte{0x04}
	case tea.KeyCtrlE:
		return []byte{0x05}
	case tea.KeyCtrlF:
		return []byte{0x06}
	case tea.KeyCtrlG:
		return []byte{0x07}
	case tea.KeyCtrlH:
		// Ctrl-H is the Backspace key's control code on most keyboards;
		// treat it the same as KeyBackspace rather than literal BS (0x08).
		return []byte{0x7f}
	case tea.KeyCtrlJ:
		return []byte{0x0a}
	case tea.KeyCtrlK:
		return []byte{0x0b}
	case tea.KeyCtrlL:
		return []byte{0x0c}
	case tea.KeyCtrlN:
		return []byte{0x0e}
	case tea.KeyCtrlO:
		return []byte{0x0f}
	case tea.KeyCtrlP:
		return []byte{0x10}
	case tea.KeyCtrlQ:
		return []byte{0x11}
	case tea.KeyCtrlR:
		return []byte{0x12}
	case tea.KeyCtrlS:
		return []byte{0x13}
	case tea.KeyCtrlT:
		return []byte{0x14}
	case tea.KeyCtrlU:
		return []byte{0x15}
	case tea.KeyCtrlV:
		return []byte{0x16}
	case tea.KeyCtrlW:
		return []byte{0x17}
	case tea.KeyCtrlX:
		return []byte{0x18}
	case tea.KeyCtrlY:
		return []byte{0x19}
	case tea.KeyCtrlZ:
		return []byte{0x1a}

	case tea.KeyUp:
		return appOrCSI(appCursor, 'A')
	case tea.KeyDown:
		return appOrCSI(appCursor, 'B')
	case tea.KeyRight:
		return appOrCSI(appCursor, 'C')
	case tea.KeyLeft:
		return appOrCSI(appCursor, 'D')
	case tea.KeyHome:
		return appOrCSI(appCursor, 'H')
	case tea.KeyEnd:
		return appOrCSI(appCursor, 'F')

	case tea.KeyPgUp:
		return []byte("\x1b[5~")
	case tea.KeyPgDown:
		return []byte("\x1b[6~")
	case tea.KeyInsert:
		return []byte("\x1b[2~")
	case tea.KeyDelete:
		return []byte("\x1b[3~")
	case tea.KeyShiftTab:
		return []byte("\x1b[Z")

	case tea.KeyF1:
		return []byte("\x1bOP")
	case tea.KeyF2:
		return []byte("\x1bOQ")
	case tea.KeyF3:
		return []byte("\x1bOR")
	case tea.KeyF4:
		return []byte("\x1bOS")
	case tea.KeyF5:
		return []byte(fnSeqs[0])
	case tea.KeyF6:
		return []byte(fnSeqs[1])
	case tea.KeyF7:
		return []byte(fnSeqs[2])
	case tea.KeyF8:
		return []byte(fnSeqs[3])
	case tea.KeyF9:
		return []byte(fnSeqs[4])
	case tea.KeyF10:
		return []byte(fnSeqs[5])
	case tea.KeyF11:
		return []byte(fnSeqs[6])
	case tea.KeyF12:
		return []byte(fnSeqs[7])
	}
	return nil
}

func appOrCSI(app bool, final byte) []byte {
	if app {
		return []byte{0x1b, 'O', final}
	}
	return []byte{0x1b, '[', final}
}
