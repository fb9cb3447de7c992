package terminal

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ansiPalette maps the 8 ANSI palette indices (1-8) to lipgloss's basic
// ANSI colour numbers (0-7).
var ansiPalette = [9]lipgloss.Color{
	"", // 0: default — unused, Style leaves colour unset
	"0", "1", "2", "3", "4", "5", "6", "7",
}

// acsGlyphs is the VT100 DEC Special Graphics mapping: the same ASCII byte
// that a line-drawing-charset cell holds is reinterpreted as a box glyph.
var acsGlyphs = map[rune]rune{
	'q': '─', 'x': '│', 'l': '┌', 'k': '┐', 'm': '└', 'j': '┘',
	't': '├', 'u': '┤', 'v': '┴', 'w': '┬', 'n': '┼',
	'a': '▒', '`': '♦', 'f': '°', 'g': '±', '~': '·',
}

// Renderer converts Grid content into host-terminal output, caching a
// lipgloss.Style per distinct attribute word so repeated runs of the same
// attribute (the common case) don't rebuild a Style on every cell.
type Renderer struct {
	pairs  *PairCache
	styles map[Attr]lipgloss.Style
}

// NewRenderer returns a Renderer with its own pair cache.
func NewRenderer() *Renderer {
	return &Renderer{
		pairs:  NewPairCache(),
		styles: make(map[Attr]lipgloss.Style),
	}
}

func (r *Renderer) styleFor(a Attr) lipgloss.Style {
	if st, ok := r.styles[a]; ok {
		return st
	}
	st := lipgloss.NewStyle()
	if a&AttrBold != 0 {
		st = st.Bold(true)
	}
	if a&AttrDim != 0 {
		st = st.Faint(true)
	}
	if a&AttrUnderline != 0 {
		st = st.Underline(true)
	}
	if a&AttrReverse != 0 {
		st = st.Reverse(true)
	}
	fg, bg := a.FG(), a.BG()
	if fg > 0 && fg <= 8 {
		st = st.Foreground(ansiPalette[fg])
	}
	if bg > 0 && bg <= 8 {
		st = st.Background(ansiPalette[bg])
	}
	// Allocating a pair id keeps the cache's allocation pressure and
	// exhaustion behaviour observable even though lipgloss itself never
	// runs out of colour pairs the way a curses COLOR_PAIRS table does.
	r.pairs.Get(fg, bg)
	r.styles[a] = st
	return st
}

func glyphFor(c Cell) rune {
	ch := c.Ch
	if ch == 0 {
		ch = ' '
	}
	if c.Attr&AttrACS != 0 {
		if g, ok := acsGlyphs[ch]; ok {
			return g
		}
	}
	return ch
}

// Render renders the full grid as a string with embedded host styling,
// merging consecutive same-attribute cells into a single styled run per
// line to avoid re-emitting style codes per character.
func (r *Renderer) Render(g *Grid) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return r.renderRegionLocked(g, 0, 0, g.rows-1, g.cols-1)
}

// RenderRegion renders a sub-rectangle of the grid (0-indexed, inclusive).
func (r *Renderer) RenderRegion(g *Grid, startRow, startCol, endRow, endCol int) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return r.renderRegionLocked(g, startRow, startCol, endRow, endCol)
}

func (r *Renderer) renderRegionLocked(g *Grid, startRow, startCol, endRow, endCol int) string {
	var b strings.Builder
	for row := startRow; row <= endRow && row < g.rows; row++ {
		if row > startRow {
			b.WriteByte('\n')
		}
		c := startCol
		for c <= endCol && c < g.cols {
			runAttr := g.cellAt(row, c).Attr
			var run strings.Builder
			for c <= endCol && c < g.cols && g.cellAt(row, c).Attr == runAttr {
				run.WriteRune(glyphFor(*g.cellAt(row, c)))
				c++
			}
			b.WriteString(r.styleFor(runAttr).Render(run.String()))
		}
	}
	return b.String()
}

// PlainTextRow returns the plain (unstyled) text content of a single row,
// with trailing whitespace trimmed.
func (g *Grid) PlainTextRow(row int) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if row < 0 || row >= g.rows {
		return ""
	}
	var b strings.Builder
	for c := 0; c < g.cols; c++ {
		b.WriteRune(glyphFor(*g.cellAt(row, c)))
	}
	return strings.TrimRight(b.String(), " ")
}
