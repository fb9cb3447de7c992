// Package app wires the tree browser, the config, and the popup
// controller into a single bubbletea program.
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nt168/nodeterm/internal/config"
	"github.com/nt168/nodeterm/internal/terminal"
	"github.com/nt168/nodeterm/internal/tree"
	"github.com/nt168/nodeterm/internal/ui"
)

// idleTick paces redraws when no popup child is running (no popup, or a
// popup still in input mode) — generous, since there's nothing to pump.
const idleTick = 500 * time.Millisecond

// termTick paces redraws while a popup's child is live, so its output
// drains even when the user sends no keys — the host read loop's bounded
// timeout.
const termTick = 50 * time.Millisecond

type tickMsg time.Time

// Model is the top-level bubbletea model.
type Model struct {
	cfg   config.Config
	sty   ui.Styles
	root  *tree.Node
	stack []*tree.Node // navigation stack; last element's Children are shown
	cur   []int        // selected index within each stack level's children

	popup *terminal.Popup

	// suppressed holds the owner of a hot node whose popup just closed via
	// a picker harvest. Entering that same node again is a no-op until the
	// cursor moves off it and back, so a harvested selection can't reopen
	// its own picker a second time before the user has acted on it.
	suppressed terminal.Owner

	width, height int

	quitting bool
}

// New builds a Model from a loaded config and tree.
func New(cfg config.Config, root *tree.Node) Model {
	popup := terminal.NewPopup()
	popup.Sentinel = cfg.PickerSentinel
	return Model{
		cfg:   cfg,
		sty:   ui.BuildStyles(ui.PaletteFor(cfg.Theme)),
		root:  root,
		stack: []*tree.Node{root},
		cur:   []int{0},
		popup: popup,
	}
}

func (m Model) Init() tea.Cmd {
	return tickCmd(idleTick)
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// currentNode returns the node whose children are displayed.
func (m Model) currentNode() *tree.Node {
	return m.stack[len(m.stack)-1]
}

// selectedChild returns the highlighted child of the current node, or
// nil if it has none.
func (m Model) selectedChild() *tree.Node {
	n := m.currentNode()
	idx := m.cur[len(m.cur)-1]
	if idx < 0 || idx >= len(n.Children) {
		return nil
	}
	return n.Children[idx]
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// WindowSizeMsg is always handled here, above any popup key routing,
	// so the popup's geometry (and a running child's grid) is resized right
	// away, before the next tick pumps more output, whichever mode it's in.
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = wsm.Width, wsm.Height
		if m.popup.Active {
			r := popupRect(m)
			m.popup.SetGeom(r.Y, r.X, r.H, r.W)
		}
		return m, nil
	}

	switch msg := msg.(type) {
	case tickMsg:
		return m.handleTick()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.popup.Active && m.popup.Mode == terminal.ModeTerm {
		m.popup.Pump()
		if !m.popup.Active && m.popup.ClosedByEnter {
			// Picker harvested a value onto its owner node: hold off on
			// reopening its popup until the selection moves off and back.
			m.suppressed = m.popup.LastOwner
			m.popup.ClosedByEnter = false
		}
		return m, tickCmd(termTick)
	}
	return m, tickCmd(idleTick)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.popup.Active {
		closed := m.popup.HandleKey(msg)
		if closed {
			return m, tickCmd(idleTick)
		}
		if m.popup.Mode == terminal.ModeTerm {
			return m, tickCmd(termTick)
		}
		return m, tickCmd(idleTick)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		m.moveSelection(-1)
	case "down", "j":
		m.moveSelection(1)
	case "left", "h":
		m.popStack()
	case "right", "l", "enter":
		return m.enterSelection()
	}
	return m, nil
}

func (m *Model) moveSelection(delta int) {
	n := m.currentNode()
	if len(n.Children) == 0 {
		return
	}
	last := len(m.cur) - 1
	idx := m.cur[last] + delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(n.Children) {
		idx = len(n.Children) - 1
	}
	if idx != m.cur[last] {
		m.suppressed = nil
	}
	m.cur[last] = idx
}

func (m *Model) popStack() {
	if len(m.stack) <= 1 {
		return
	}
	m.stack = m.stack[:len(m.stack)-1]
	m.cur = m.cur[:len(m.cur)-1]
	m.suppressed = nil
}

func (m Model) enterSelection() (tea.Model, tea.Cmd) {
	child := m.selectedChild()
	if child == nil {
		return m, nil
	}
	switch child.Kind {
	case tree.KindGroup:
		m.stack = append(m.stack, child)
		m.cur = append(m.cur, 0)
	case tree.KindBool:
		child.Toggle()
	case tree.KindStatic:
		// fixed selection; nothing to do
	case tree.KindHot:
		if m.suppressed != nil && terminal.Owner(child) == m.suppressed {
			return m, nil
		}
		r := popupRect(m)
		m.popup.Open(child, r.Y, r.X, r.H, r.W)
		return m, tickCmd(idleTick)
	}
	return m, nil
}

func popupRect(m Model) ui.Rect {
	total := ui.Rect{Y: 0, X: 0, H: m.height, W: m.width}
	return ui.PopupRect(total, m.cfg.PopupHeightPercent, m.cfg.PopupWidthPercent)
}
