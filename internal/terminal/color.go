package terminal

// ---------------------------------------------------------------------------
// Colour reduction: 256-colour and truecolour SGR values collapse onto the
// 8-colour ANSI palette the packed Attr word can hold. The formulas below
// are a direct port of the chromaticity-sieve approach used by the
// original ncurses implementation this emulator's popup model is grounded
// on — ncurses programs addressed colour by a small, finite COLOR_PAIRS
// table, so there was never a reason to carry full RGB through the cell
// grid, and we keep that same reduced representation.
// ---------------------------------------------------------------------------

// rgbToAnsi8 approximates a truecolour value as one of the 8 base ANSI
// colours (0=black .. 7=white).
func rgbToAnsi8(r, g, b int) int {
	r = clampByte(r)
	g = clampByte(g)
	b = clampByte(b)

	maxc := max3(r, g, b)
	minc := min3(r, g, b)
	avg := (r + g + b) / 3

	switch {
	case maxc < 60:
		return 0 // very dark: black
	case minc > 210:
		return 7 // very bright: white
	case maxc-minc < 20:
		if avg > 140 {
			return 7
		}
		return 0 // near-grey
	}

	rh, gh, bh := r > 160, g > 160, b > 160
	switch {
	case rh && gh && bh:
		return 7
	case rh && gh && !bh:
		return 3 // yellow
	case rh && !gh && bh:
		return 5 // magenta
	case !rh && gh && bh:
		return 6 // cyan
	case rh && !gh && !bh:
		return 1 // red
	case !rh && gh && !bh:
		return 2 // green
	case !rh && !gh && bh:
		return 4 // blue
	}

	// fallback: dominant channel
	switch {
	case r >= g && r >= b:
		return 1
	case g >= r && g >= b:
		return 2
	default:
		return 4
	}
}

// xterm256ToAnsi8 reduces a 256-colour palette index to one of the 8 base
// ANSI colours: 0-7 pass through, 8-15 (bright) fold onto their base
// colour, 16-231 is the 6x6x6 colour cube (reduced via rgbToAnsi8), and
// 232-255 is the greyscale ramp (reduced by a luminance threshold).
func xterm256ToAnsi8(n int) int {
	switch {
	case n < 0:
		return 7
	case n < 8:
		return n
	case n < 16:
		return n - 8
	case n >= 232 && n <= 255:
		level := 8 + (n-232)*10
		if level > 128 {
			return 7
		}
		return 0
	case n >= 16 && n <= 231:
		x := n - 16
		rr := x / 36
		gg := (x % 36) / 6
		bb := x % 6
		return rgbToAnsi8(rr*51, gg*51, bb*51)
	default:
		return 7
	}
}

func clampByte(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

func max3(a, b, c int) int {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

// ---------------------------------------------------------------------------
// Pair cache: a bounded, lazily-populated id allocator modelling the
// ncurses COLOR_PAIR resource a host UI shares across the whole process.
// The popup's renderer must not clash with ids the outer UI has already
// claimed for its own chrome, so allocation starts from a reserved id
// (reservedPairIDs below) rather than 1.
// ---------------------------------------------------------------------------

// reservedPairIDs is how many low pair ids the host UI's own chrome may use
// before the popup renderer's cache starts allocating (mirrors the
// original's "1..3 already used by the UI" comment, generalised to a
// slightly larger reserved block).
const reservedPairIDs = 8

// maxPairIDs bounds the cache the way a typical terminfo's COLOR_PAIRS
// entry would (ncurses on most terminals reports 256 or 32767; we model
// the conservative end so exhaustion and its silent-degradation behaviour
// are actually reachable and testable).
const maxPairIDs = 256

// PairCache allocates small integer ids for (fg, bg) palette-index pairs,
// lazily and idempotently, degrading to id 0 ("use default rendering")
// once exhausted rather than erroring.
type PairCache struct {
	ids     [16][16]int
	next    int
}

// NewPairCache returns a cache whose first allocation starts past the
// host UI's reserved ids.
func NewPairCache() *PairCache {
	return &PairCache{next: reservedPairIDs}
}

// Get returns the pair id for (fg, bg), allocating one on first use. fg/bg
// are 0 (default) or 1-8 (ANSI). Returns 0 if both are default, or if the
// cache is exhausted.
func (p *PairCache) Get(fg, bg int) int {
	if fg < 0 {
		fg = 0
	}
	if fg > 15 {
		fg = 15
	}
	if bg < 0 {
		bg = 0
	}
	if bg > 15 {
		bg = 15
	}
	if fg == 0 && bg == 0 {
		return 0
	}
	if id := p.ids[fg][bg]; id != 0 {
		return id
	}
	if p.next >= maxPairIDs {
		return 0
	}
	id := p.next
	p.next++
	p.ids[fg][bg] = id
	return id
}
