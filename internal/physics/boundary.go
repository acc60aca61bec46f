package physics

import (
	"fmt"

	"github.com/tomz197/collisions/internal/vector"
)

// Boundary is an axis-aligned rectangle that confines particles.
// X, Y is the top-left corner. It holds geometry only and is never mutated.
type Boundary struct {
	x, y          float64
	width, height float64
}

// NewBoundary creates a boundary. Width and height must be positive.
func NewBoundary(x, y, width, height float64) (Boundary, error) {
	if !finite(x) || !finite(y) {
		return Boundary{}, fmt.Errorf("%w: boundary origin (%v, %v)", ErrInvalidGeometry, x, y)
	}
	if !positive(width) || !positive(height) {
		return Boundary{}, fmt.Errorf("%w: boundary size %vx%v", ErrInvalidGeometry, width, height)
	}
	return Boundary{x: x, y: y, width: width, height: height}, nil
}

// X returns the left edge coordinate.
func (b Boundary) X() float64 { return b.x }

// Y returns the top edge coordinate.
func (b Boundary) Y() float64 { return b.y }

// Width returns the horizontal extent.
func (b Boundary) Width() float64 { return b.width }

// Height returns the vertical extent.
func (b Boundary) Height() float64 { return b.height }

// Left returns the x coordinate of the left edge.
func (b Boundary) Left() float64 { return b.x }

// Right returns the x coordinate of the right edge.
func (b Boundary) Right() float64 { return b.x + b.width }

// Top returns the y coordinate of the top edge.
func (b Boundary) Top() float64 { return b.y }

// Bottom returns the y coordinate of the bottom edge.
func (b Boundary) Bottom() float64 { return b.y + b.height }

// Contains reports whether pos lies inside the closed rectangle.
func (b Boundary) Contains(pos vector.Vector) bool {
	return pos.X() >= b.Left() && pos.X() <= b.Right() &&
		pos.Y() >= b.Top() && pos.Y() <= b.Bottom()
}

// FitsDisk reports whether a disk of the given radius centred at pos lies
// entirely inside the rectangle.
func (b Boundary) FitsDisk(pos vector.Vector, radius float64) bool {
	return pos.X()-radius >= b.Left() && pos.X()+radius <= b.Right() &&
		pos.Y()-radius >= b.Top() && pos.Y()+radius <= b.Bottom()
}
