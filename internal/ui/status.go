package ui

import (
	"fmt"
	"strings"
)

// StatusData is the information the status line renders, kept as a plain
// struct (rather than threading the app model in) so the rendering
// function stays a pure function of its inputs.
type StatusData struct {
	Path      []string // breadcrumb of node names from root to the node whose children are shown
	PopupOpen bool
	Width     int
}

// RenderStatus renders a single-line status bar: a breadcrumb on the
// left, key hints on the right.
func RenderStatus(st Styles, d StatusData) string {
	left := strings.Join(d.Path, " / ")
	hints := "enter: open/toggle  q: quit"
	if d.PopupOpen {
		hints = "ctrl+x: close popup  esc: cancel"
	}
	gap := d.Width - len(left) - len(hints)
	if gap < 1 {
		gap = 1
	}
	line := left + strings.Repeat(" ", gap) + hints
	if len(line) > d.Width && d.Width > 0 {
		line = line[:d.Width]
	}
	return st.StatusBar.Width(d.Width).Render(line)
}

// FormatBoolValue renders a boolean-node value for display, e.g.
// "[x]"/"[ ]".
func FormatBoolValue(val string) string {
	if val == "true" {
		return "[x]"
	}
	return "[ ]"
}

// FormatHotValue renders a hot node's harvested value for display, or a
// placeholder if nothing has been picked yet.
func FormatHotValue(val string) string {
	if val == "" {
		return "<unset>"
	}
	return fmt.Sprintf("%q", val)
}
