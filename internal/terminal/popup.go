package terminal

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// PopupMode is the two-phase lifecycle of a Popup: first the user types a
// command (or accepts the owner's default), then that command runs as a
// live child and the popup becomes a small embedded terminal.
type PopupMode int

const (
	ModeInput PopupMode = iota
	ModeTerm
)

// rawTailCap bounds the ring buffer used to recover a picker's final
// printed line after it exits and its alt-screen is torn down. 8KiB is
// comfortably more than any picker's last line plus a full redraw's
// worth of escape codes.
const rawTailCap = 8 * 1024

// Owner is the narrow interface a popup needs from whatever outer object
// opened it: a label for the title bar, a default command to prefill, and
// a place to deliver the harvested result.
type Owner interface {
	DisplayName() string
	Command() string
	SetValue(string)
}

// Popup is an embedded terminal viewport the host UI opens at an arbitrary
// rectangle: the user edits a command line (ModeInput), then watches it
// run (ModeTerm). If the command looks like an interactive picker, the
// popup harvests its last printed line as the result instead of leaving
// raw picker chrome behind.
type Popup struct {
	Active bool
	Mode   PopupMode
	Owner  Owner

	// Sentinel is the substring a started command is checked against to
	// decide whether its final printed line should be harvested as a
	// picker result. Defaults to "fzy"; set by the host from config.
	Sentinel string

	Y, X, H, W int

	input []rune
	inLen int

	session    *Session
	render     *Renderer
	startedCmd string

	rawTail []byte

	ClosedByEnter bool
	LastOwner     Owner
}

// NewPopup returns an inactive popup ready to be opened with Open.
func NewPopup() *Popup {
	return &Popup{render: NewRenderer(), Sentinel: "fzy"}
}

// Open activates the popup for owner at the given rectangle, prefilling
// the input line with the owner's existing command.
func (p *Popup) Open(owner Owner, y, x, h, w int) {
	p.Active = true
	p.Mode = ModeInput
	p.Owner = owner
	p.SetGeom(y, x, h, w)
	p.input = []rune(owner.Command())
	p.inLen = len(p.input)
	p.rawTail = nil
	p.ClosedByEnter = false
}

// Close tears the popup down, killing any running child.
func (p *Popup) Close() {
	if p.session != nil {
		p.session.Close()
		p.session = nil
	}
	p.Active = false
	p.Mode = ModeInput
	p.rawTail = nil
}

// minPopupH and minPopupW are the smallest popup geometry that still leaves room for
// a border, a title, and a single line of input.
const (
	minPopupH = 3
	minPopupW = 10
)

// SetGeom repositions/resizes the popup, enforcing a floor so the border
// and hint line always fit, and propagates the new inner size to a
// running child.
func (p *Popup) SetGeom(y, x, h, w int) {
	if h < minPopupH {
		h = minPopupH
	}
	if w < minPopupW {
		w = minPopupW
	}
	p.Y, p.X, p.H, p.W = y, x, h, w

	if p.Mode == ModeTerm && p.session != nil {
		innerRows, innerCols := h-2, w-2
		if innerRows < 1 {
			innerRows = 1
		}
		if innerCols < 1 {
			innerCols = 1
		}
		if p.session.Grid.Rows() != innerRows || p.session.Grid.Cols() != innerCols {
			p.session.Resize(innerRows, innerCols)
			p.session.Grid.ClearKeepModes()
		}
	}
}

// Start runs cmd as a live child, switching the popup into ModeTerm.
func (p *Popup) Start(cmd string) error {
	innerRows, innerCols := p.H-2, p.W-2
	if innerRows < 1 {
		innerRows = 1
	}
	if innerCols < 1 {
		innerCols = 1
	}
	s := NewSession(innerRows, innerCols)
	if err := s.Start(cmd, ""); err != nil {
		return err
	}
	p.session = s
	p.startedCmd = cmd
	p.Mode = ModeTerm
	p.rawTail = nil
	return nil
}

// Pump reads available output from the running child, feeds it to both
// the grid (so it renders) and the raw ring buffer (so a picker's result
// can be harvested after it exits), and checks whether the child has
// exited. If it has, and the command was a picker, it harvests the result
// before closing; otherwise it just closes.
func (p *Popup) Pump() {
	if p.session == nil {
		return
	}
	cmd := p.startedCmd

	buf := make([]byte, 64*1024)
	for {
		n, err := p.session.Read(buf)
		if n > 0 {
			p.appendRawTail(buf[:n])
			p.session.Grid.Write(buf[:n])
		}
		if n == 0 || err != nil {
			break
		}
	}

	if p.session.IsRunning() {
		return
	}

	// Child has exited. Drain once more: a picker often prints its final
	// selection line right before its process tears down, and that last
	// write can still be sitting unread on the PTY.
	n, _ := p.session.Read(buf)
	if n > 0 {
		p.appendRawTail(buf[:n])
		p.session.Grid.Write(buf[:n])
	}

	if isPickerCommand(cmd, p.sentinel()) && p.Owner != nil {
		plain := stripANSIToPlain(p.rawTail)
		line := lastNonEmptyLine(plain)
		p.Owner.SetValue(line)
		p.ClosedByEnter = true
		p.LastOwner = p.Owner
	}
	p.Close()
}

func (p *Popup) appendRawTail(chunk []byte) {
	if len(chunk) >= rawTailCap {
		p.rawTail = append(p.rawTail[:0], chunk[len(chunk)-rawTailCap:]...)
		return
	}
	if len(p.rawTail)+len(chunk) > rawTailCap {
		keep := rawTailCap / 2
		if keep < 1024 {
			keep = 1024
		}
		if keep > len(p.rawTail) {
			keep = len(p.rawTail)
		}
		if keep > rawTailCap-len(chunk) {
			keep = rawTailCap - len(chunk)
		}
		p.rawTail = append([]byte(nil), p.rawTail[len(p.rawTail)-keep:]...)
	}
	p.rawTail = append(p.rawTail, chunk...)
}

// sentinel returns the configured picker sentinel, defaulting to "fzy" if
// the popup was constructed without going through NewPopup.
func (p *Popup) sentinel() string {
	if p.Sentinel == "" {
		return "fzy"
	}
	return p.Sentinel
}

// isPickerCommand flags commands understood to be interactive selection
// tools whose result should be harvested from their final printed line
// rather than their full screen output. Kept as a single substring check
// against a configured sentinel (fzy is the one picker this popup model
// was built around) rather than a list — a single well-known sentinel is
// easier to reason about than a pattern an owner could get wrong.
func isPickerCommand(cmd, sentinel string) bool {
	return strings.Contains(cmd, sentinel)
}

// stripANSIToPlain removes escape sequences from raw terminal output,
// folds carriage returns onto newlines, and drops non-printable bytes,
// leaving plain text suitable for line-oriented harvesting.
func stripANSIToPlain(raw []byte) string {
	stripped := ansi.Strip(string(raw))
	var b strings.Builder
	b.Grow(len(stripped))
	prevCR := false
	for _, r := range stripped {
		switch {
		case r == '\r':
			b.WriteByte('\n')
		case r == '\n':
			if !prevCR { // CRLF already produced its newline at the CR
				b.WriteByte('\n')
			}
		case r >= 0x20 && r != 0x7f:
			b.WriteRune(r)
		}
		prevCR = r == '\r'
	}
	return b.String()
}

// lastNonEmptyLine returns the last non-blank line of text, trimmed of
// surrounding whitespace, with a leading "> " prompt marker (fzy's own
// selection-line prefix) stripped if present.
func lastNonEmptyLine(text string) string {
	lines := strings.Split(text, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		line = strings.TrimPrefix(line, "> ")
		return line
	}
	return ""
}

// --- Input-mode editing ---

// TypeRune appends a printable rune to the command line being edited.
func (p *Popup) TypeRune(r rune) {
	p.input = append(p.input, r)
	p.inLen++
}

// Backspace deletes the character before the cursor.
func (p *Popup) Backspace() {
	if p.inLen == 0 {
		return
	}
	p.input = p.input[:p.inLen-1]
	p.inLen--
}

// InputText returns the command line currently being edited.
func (p *Popup) InputText() string {
	return string(p.input)
}

// Submit trims leading whitespace from the input and starts it as a
// child command.
func (p *Popup) Submit() error {
	cmd := strings.TrimLeft(string(p.input), " \t")
	if cmd == "" {
		return nil
	}
	return p.Start(cmd)
}

// AppCursor reports whether the running child has enabled DECCKM
// application cursor-key mode, for key-encoding purposes.
func (p *Popup) AppCursor() bool {
	if p.session == nil {
		return false
	}
	return p.session.Grid.AppCursor()
}

// SendBytes writes raw bytes to the running child.
func (p *Popup) SendBytes(b []byte) {
	if p.session != nil {
		_, _ = p.session.Write(b)
	}
}

// Render renders the popup's inner terminal grid, or empty if no child is
// running yet.
func (p *Popup) Render() string {
	if p.session == nil {
		return ""
	}
	return p.render.Render(p.session.Grid)
}

// Title returns the popup's border title, e.g. " Popup: find a file ".
func (p *Popup) Title() string {
	name := ""
	if p.Owner != nil {
		name = p.Owner.DisplayName()
	}
	return " Popup: " + name + " "
}

// HandleKey routes a key event according to the popup's mode. It returns
// true if the popup was closed as a result (the caller should drop focus
// back to the outer view), false otherwise. The host's top-level
// tea.WindowSizeMsg handling always happens above this call, never here —
// HandleKey only ever sees key events.
func (p *Popup) HandleKey(msg tea.KeyMsg) bool {
	if p.Mode == ModeInput {
		return p.handleInputKey(msg)
	}
	return p.handleTermKey(msg)
}

func (p *Popup) handleInputKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyCtrlX, tea.KeyEsc:
		p.ClosedByEnter = false
		p.LastOwner = nil
		p.Close()
		return true
	case tea.KeyEnter:
		_ = p.Submit()
		return false
	case tea.KeyBackspace:
		p.Backspace()
		return false
	case tea.KeyRunes, tea.KeySpace:
		for _, r := range msg.Runes {
			if r >= 0x20 && r <= 0x7e {
				p.TypeRune(r)
			}
		}
		if msg.Type == tea.KeySpace {
			p.TypeRune(' ')
		}
		return false
	}
	return false
}

func (p *Popup) handleTermKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyCtrlX:
		p.ClosedByEnter = false
		p.LastOwner = nil
		p.Close()
		return true
	case tea.KeyEsc:
		// Forwarded to the child, never used to close TERM mode: a running
		// full-screen program gets its own chance to handle Escape.
		p.SendBytes([]byte{0x1b})
		return false
	}
	if b := EncodeKey(msg, p.AppCursor()); b != nil {
		p.SendBytes(b)
	}
	return false
}
