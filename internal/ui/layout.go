package ui

// Rect is an (y, x, h, w) rectangle in host-terminal coordinates, the
// same shape the popup controller takes for its own geometry.
type Rect struct {
	Y, X, H, W int
}

// ComputeColumns lays out n equal-width columns across a rectangle,
// leaving one row at the bottom for the status line.
func ComputeColumns(total Rect, n int) []Rect {
	if n <= 0 {
		return nil
	}
	bodyH := total.H - 1
	if bodyH < 1 {
		bodyH = 1
	}
	colW := total.W / n
	if colW < 1 {
		colW = 1
	}
	cols := make([]Rect, n)
	x := total.X
	for i := 0; i < n; i++ {
		w := colW
		if i == n-1 {
			w = total.W - (colW * (n - 1))
		}
		cols[i] = Rect{Y: total.Y, X: x, H: bodyH, W: w}
		x += colW
	}
	return cols
}

// StatusRect returns the single-row rectangle for the status line at the
// bottom of total.
func StatusRect(total Rect) Rect {
	return Rect{Y: total.Y + total.H - 1, X: total.X, H: 1, W: total.W}
}

// PopupRect centers a popup rectangle of heightPercent/widthPercent of
// total inside total, honoring the popup controller's own h≥3, w≥10
// floor.
func PopupRect(total Rect, heightPercent, widthPercent int) Rect {
	h := total.H * heightPercent / 100
	w := total.W * widthPercent / 100
	if h > total.H {
		h = total.H
	}
	if w > total.W {
		w = total.W
	}
	if h < 3 {
		h = 3
	}
	if w < 10 {
		w = 10
	}
	y := total.Y + (total.H-h)/2
	x := total.X + (total.W-w)/2
	return Rect{Y: y, X: x, H: h, W: w}
}
