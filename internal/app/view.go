package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nt168/nodeterm/internal/terminal"
	"github.com/nt168/nodeterm/internal/tree"
	"github.com/nt168/nodeterm/internal/ui"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return ""
	}

	background := m.renderBrowser()

	if !m.popup.Active {
		return background
	}

	popupBox := m.renderPopupBox()
	return stampOnCanvas(background, popupBox, m.popup.Y, m.popup.X)
}

func (m Model) renderBrowser() string {
	total := ui.Rect{Y: 0, X: 0, H: m.height, W: m.width}
	bodyH := total.H - 1
	if bodyH < 1 {
		bodyH = 1
	}

	var lines []string
	n := m.currentNode()
	selIdx := m.cur[len(m.cur)-1]
	for i, child := range n.Children {
		if i >= bodyH {
			break
		}
		label := renderNodeLabel(child)
		if i == selIdx {
			lines = append(lines, m.sty.ItemSelected.Width(total.W).Render(label))
		} else if child.Kind == tree.KindGroup {
			lines = append(lines, m.sty.ItemGroup.Width(total.W).Render(label))
		} else {
			lines = append(lines, m.sty.Item.Width(total.W).Render(label))
		}
	}
	for len(lines) < bodyH {
		lines = append(lines, strings.Repeat(" ", total.W))
	}

	breadcrumb := make([]string, len(m.stack))
	for i, s := range m.stack {
		breadcrumb[i] = s.Name
	}
	status := ui.RenderStatus(m.sty, ui.StatusData{
		Path:      breadcrumb,
		PopupOpen: m.popup.Active,
		Width:     total.W,
	})

	return strings.Join(lines, "\n") + "\n" + status
}

func renderNodeLabel(n *tree.Node) string {
	switch n.Kind {
	case tree.KindBool:
		return ui.FormatBoolValue(n.Val) + " " + n.Name
	case tree.KindHot:
		return n.Name + "  " + ui.FormatHotValue(n.Val)
	case tree.KindStatic:
		return "(" + n.Val + ") " + n.Name
	default:
		return n.Name + "/"
	}
}

func (m Model) renderPopupBox() string {
	inner := m.popup.W - 2
	if inner < 1 {
		inner = 1
	}
	innerH := m.popup.H - 3
	if innerH < 1 {
		innerH = 1
	}

	title := m.sty.PopupTitle.Width(inner).Render(m.popup.Title())

	var body string
	switch m.popup.Mode {
	case terminal.ModeInput:
		hint := "enter: run   ctrl+x/esc: cancel"
		prompt := "> " + m.popup.InputText()
		body = lipgloss.NewStyle().Width(inner).Render(prompt) + "\n" +
			m.sty.ItemGroup.Width(inner).Render(hint)
	default: // ModeTerm
		body = m.popup.Render()
	}

	box := m.sty.PopupBorder.
		Width(inner).
		Height(innerH).
		Render(title + "\n" + body)

	return box
}

// stampOnCanvas overwrites background's lines, starting at (y,x), with
// overlay's lines — a plain rune-grid composite, the same technique a
// terminal UI uses to draw a floating window over already-rendered
// chrome without re-rendering the whole screen.
func stampOnCanvas(background, overlay string, y, x int) string {
	bgLines := strings.Split(background, "\n")
	ovLines := strings.Split(overlay, "\n")

	for i, ov := range ovLines {
		row := y + i
		if row < 0 || row >= len(bgLines) {
			continue
		}
		bgLines[row] = overwriteAt(bgLines[row], ov, x)
	}
	return strings.Join(bgLines, "\n")
}

// overwriteAt replaces the rune range [x, x+len(overlay)) of line with
// overlay, padding line with spaces first if it's too short.
func overwriteAt(line, overlay string, x int) string {
	lr := []rune(line)
	or := []rune(overlay)
	if x < 0 {
		x = 0
	}
	need := x + len(or)
	for len(lr) < need {
		lr = append(lr, ' ')
	}
	copy(lr[x:x+len(or)], or)
	return string(lr)
}
