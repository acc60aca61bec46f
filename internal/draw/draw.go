// Package draw renders to a terminal using ANSI escapes and half-block characters.
package draw

import "math"

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Layout is the placement of a canvas inside the terminal.
type Layout struct {
	Width     int // Canvas columns
	Height    int // Canvas rows
	OffsetCol int // 0-based columns skipped on the left
	OffsetRow int // 0-based rows skipped at the top
}

// FitAspect sizes a canvas to show a logical area of logicalWidth x
// logicalHeight without distortion, centred in a termWidth x termHeight
// terminal. reserveCols and reserveRows are kept free for borders and text.
// Half-block sub-pixels are treated as square (a cell is twice as tall as wide).
func FitAspect(termWidth, termHeight int, logicalWidth, logicalHeight float64, reserveCols, reserveRows int) Layout {
	availCols := max(termWidth-reserveCols, 1)
	availRows := max(termHeight-reserveRows, 1)

	aspect := logicalWidth / logicalHeight // columns per sub-pixel row
	width := availCols
	height := int(math.Floor(float64(width) / aspect / 2))
	if height > availRows {
		height = availRows
		width = int(math.Floor(float64(height) * 2 * aspect))
	}
	width = max(width, 1)
	height = max(height, 1)

	return Layout{
		Width:     width,
		Height:    height,
		OffsetCol: (termWidth - width) / 2,
		OffsetRow: (termHeight - height) / 2,
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
