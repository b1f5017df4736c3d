// Package svgtree is the rendering-tree data model: the closed set of node,
// paint, and filter types a scene walker consumes. It holds no rendering
// logic of its own.
package svgtree

import (
	"fmt"

	"github.com/lumenvec/svgraster/internal/transform"
)

// Transform is the affine map every node in the tree carries from its own
// coordinate space to its parent's. The teacher's transform.TransAffine
// already implements everything this spec needs (compose, invert, decompose)
// so it is reused directly rather than re-implemented.
type Transform = *transform.TransAffine

// Identity returns a fresh identity transform.
func Identity() Transform {
	return transform.NewTransAffine()
}

// Rect is an axis-aligned rectangle in a node's local user space. Unlike the
// teacher's basics.RectD, construction enforces W>0 and H>0: a degenerate
// rect is a caller error here, not a silently-accepted zero-area shape.
type Rect struct {
	X, Y, W, H float64
}

// NewRect validates and constructs a Rect.
func NewRect(x, y, w, h float64) (Rect, error) {
	if w <= 0 || h <= 0 {
		return Rect{}, fmt.Errorf("svgtree: degenerate rect %gx%g", w, h)
	}
	return Rect{X: x, Y: y, W: w, H: h}, nil
}

// X2 returns the right edge.
func (r Rect) X2() float64 { return r.X + r.W }

// Y2 returns the bottom edge.
func (r Rect) Y2() float64 { return r.Y + r.H }

// Union returns the smallest rect containing both r and o.
func (r Rect) Union(o Rect) Rect {
	x1, y1 := minF(r.X, o.X), minF(r.Y, o.Y)
	x2, y2 := maxF(r.X2(), o.X2()), maxF(r.Y2(), o.Y2())
	return Rect{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}
}

// Intersects reports whether r and o overlap.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X2() && o.X < r.X2() && r.Y < o.Y2() && o.Y < r.Y2()
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// ScreenRect is an axis-aligned rectangle in device (pixel) space, used for
// layer allocation and filter region bounds.
type ScreenRect struct {
	X, Y, W, H int
}

// NewScreenRect validates and constructs a ScreenRect.
func NewScreenRect(x, y, w, h int) (ScreenRect, error) {
	if w <= 0 || h <= 0 {
		return ScreenRect{}, fmt.Errorf("svgtree: degenerate screen rect %dx%d", w, h)
	}
	return ScreenRect{X: x, Y: y, W: w, H: h}, nil
}

// Intersect clips r to o, returning ok=false if the result is empty.
func (r ScreenRect) Intersect(o ScreenRect) (ScreenRect, bool) {
	x1 := maxI(r.X, o.X)
	y1 := maxI(r.Y, o.Y)
	x2 := minI(r.X+r.W, o.X+o.W)
	y2 := minI(r.Y+r.H, o.Y+o.H)
	if x2 <= x1 || y2 <= y1 {
		return ScreenRect{}, false
	}
	return ScreenRect{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}, true
}

func minI(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxI(a, b int) int {
	if a > b {
		return a
	}
	return b
}
