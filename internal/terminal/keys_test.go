package terminal

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestEncodeKey_ArrowsToggleOnAppCursor(t *testing.T) {
	up := tea.KeyMsg{Type: tea.KeyUp}
	if got := string(EncodeKey(up, false)); got != "\x1b[A" {
		t.Errorf("Up (normal) = %q, want ESC[A", got)
	}
	if got := string(EncodeKey(up, true)); got != "\x1bOA" {
		t.Errorf("Up (app) = %q, want ESC O A", got)
	}
}

func TestEncodeKey_HomeEnd(t *testing.T) {
	if got := string(EncodeKey(tea.KeyMsg{Type: tea.KeyHome}, false)); got != "\x1b[H" {
		t.Errorf("Home (normal) = %q", got)
	}
	if got := string(EncodeKey(tea.KeyMsg{Type: tea.KeyEnd}, true)); got != "\x1bOF" {
		t.Errorf("End (app) = %q", got)
	}
}

func TestEncodeKey_ModeInvariantSequences(t *testing.T) {
	cases := []struct {
		key  tea.KeyType
		want string
	}{
		{tea.KeyPgUp, "\x1b[5~"},
		{tea.KeyPgDown, "\x1b[6~"},
		{tea.KeyInsert, "\x1b[2~"},
		{tea.KeyDelete, "\x1b[3~"},
		{tea.KeyShiftTab, "\x1b[Z"},
	}
	for _, c := range cases {
		gotFalse := string(EncodeKey(tea.KeyMsg{Type: c.key}, false))
		gotTrue := string(EncodeKey(tea.KeyMsg{Type: c.key}, true))
		if gotFalse != c.want || gotTrue != c.want {
			t.Errorf("key %v = %q/%q, want %q both modes", c.key, gotFalse, gotTrue, c.want)
		}
	}
}

func TestEncodeKey_FunctionKeys(t *testing.T) {
	if got := string(EncodeKey(tea.KeyMsg{Type: tea.KeyF1}, false)); got != "\x1bOP" {
		t.Errorf("F1 = %q, want ESC O P", got)
	}
	if got := string(EncodeKey(tea.KeyMsg{Type: tea.KeyF12}, false)); got != "\x1b[24~" {
		t.Errorf("F12 = %q, want ESC[24~", got)
	}
}

func TestEncodeKey_BackspaceAndEnter(t *testing.T) {
	if got := EncodeKey(tea.KeyMsg{Type: tea.KeyBackspace}, false); string(got) != "\x7f" {
		t.Errorf("Backspace = %q, want 0x7f", got)
	}
	if got := EncodeKey(tea.KeyMsg{Type: tea.KeyEnter}, false); string(got) != "\r" {
		t.Errorf("Enter = %q, want CR", got)
	}
}

func TestEncodeKey_Runes(t *testing.T) {
	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}
	if got := string(EncodeKey(msg, false)); got != "x" {
		t.Errorf("rune passthrough = %q, want 'x'", got)
	}
}
