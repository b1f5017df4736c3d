package svgtree

import (
	"github.com/lumenvec/svgraster/internal/color"
)

// Color is a straight-alpha (non-premultiplied) sRGB color, the form paints
// and gradient stops are authored in. Pixmaps store premultiplied samples
// internally (see internal/svgrender) — the two representations are kept as
// distinct types throughout this codebase per the invariant that
// premultiplication happens exactly once, at blend time.
type Color struct {
	R, G, B, A uint8
}

// Opaque constructs a fully-opaque color from 8-bit components.
func Opaque(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// Transparent is the "none" paint sentinel: zero coverage, never painted.
var Transparent = Color{}

// Black is the initial value of fill/stroke paint per the SVG spec.
var Black = Opaque(0, 0, 0)

// WithAlpha returns a copy of c with a new straight alpha multiplied by
// opacity (0..1), used to fold a paint-server/element opacity into a color.
func (c Color) WithAlpha(opacity float64) Color {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	return Color{R: c.R, G: c.G, B: c.B, A: uint8(float64(c.A)*opacity + 0.5)}
}

// ToRGBA8 converts to the teacher's straight-alpha sRGB color type, the
// currency internal/svgrender's paint engine works in before premultiplying
// at blend time.
func (c Color) ToRGBA8() color.RGBA8[color.SRGB] {
	return color.NewRGBA8[color.SRGB](c.R, c.G, c.B, c.A)
}
