package svgrender

import (
	"math"

	"github.com/lumenvec/svgraster/internal/basics"
	"github.com/lumenvec/svgraster/internal/color"
	"github.com/lumenvec/svgraster/internal/pixfmt/blender"
	"github.com/lumenvec/svgraster/internal/svgtree"
	"github.com/lumenvec/svgraster/internal/transform"
)

// lutSize is the resolution of the precomputed stop LUT every gradient
// sampler builds once per paint and then indexes per pixel. The shape
// mirrors internal/span/gradient_lut.go's GradientLUT (a fixed-size
// interpolation table built ahead of the scanline sweep), rather than
// reinterpolating stops per pixel; the 4-type-param SpanGradient/
// ColorInterpolatorRGBA8 machinery in that file is not instantiated directly
// because its GradientFunction/ColorFunction constraints assume a
// fixed-stop-count model that doesn't fit SVG's arbitrary stop list (see
// DESIGN.md).
const lutSize = 256

// Sampler returns the paint color at a device-space point.
type Sampler interface {
	Sample(x, y float64) color.RGBA8[color.SRGB]
}

// solidSampler always returns the same color.
type solidSampler struct{ c color.RGBA8[color.SRGB] }

func (s solidSampler) Sample(float64, float64) color.RGBA8[color.SRGB] { return s.c }

// gradientLUT is a named array type so `at` can be a method on it; Go does
// not allow methods on unnamed array types.
type gradientLUT [lutSize]color.RGBA8[color.SRGB]

// buildStopLUT precomputes lutSize straight-alpha colors by linearly
// interpolating between consecutive stops. Stops are assumed sorted and
// offset-clamped by the caller (resolveStops does this).
func buildStopLUT(stops []svgtree.Stop) gradientLUT {
	var lut gradientLUT
	if len(stops) == 0 {
		return lut
	}
	if len(stops) == 1 {
		c := stops[0].Color.ToRGBA8()
		for i := range lut {
			lut[i] = c
		}
		return lut
	}
	si := 0
	for i := 0; i < lutSize; i++ {
		t := float64(i) / float64(lutSize-1)
		for si < len(stops)-2 && t > stops[si+1].Offset {
			si++
		}
		a, b := stops[si], stops[si+1]
		span := b.Offset - a.Offset
		local := 0.0
		if span > 0 {
			local = (t - a.Offset) / span
			if local < 0 {
				local = 0
			} else if local > 1 {
				local = 1
			}
		}
		lut[i] = lerpColor(a.Color, b.Color, local)
	}
	return lut
}

func lerpColor(a, b svgtree.Color, t float64) color.RGBA8[color.SRGB] {
	lerp8 := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.NewRGBA8[color.SRGB](lerp8(a.R, b.R), lerp8(a.G, b.G), lerp8(a.B, b.B), lerp8(a.A, b.A))
}

// resolveStops clamps and sorts offsets into a non-decreasing sequence, the
// behavior SVG requires when authored offsets go backwards.
func resolveStops(stops []svgtree.Stop) []svgtree.Stop {
	out := make([]svgtree.Stop, len(stops))
	copy(out, stops)
	last := 0.0
	for i := range out {
		if out[i].Offset < last {
			out[i].Offset = last
		}
		if out[i].Offset > 1 {
			out[i].Offset = 1
		}
		last = out[i].Offset
	}
	return out
}

func applySpread(t float64, spread svgtree.SpreadMethod) float64 {
	switch spread {
	case svgtree.SpreadRepeat:
		t -= math.Floor(t)
		return t
	case svgtree.SpreadReflect:
		t = math.Abs(t)
		period := math.Mod(t, 2)
		if period > 1 {
			period = 2 - period
		}
		return period
	default: // SpreadPad
		if t < 0 {
			return 0
		}
		if t > 1 {
			return 1
		}
		return t
	}
}

func (lut gradientLUT) at(t float64) color.RGBA8[color.SRGB] {
	i := int(t*float64(lutSize-1) + 0.5)
	if i < 0 {
		i = 0
	} else if i >= lutSize {
		i = lutSize - 1
	}
	return lut[i]
}

// linearSampler implements the SVG linearGradient parametrization: t is the
// projection of the point onto the (x1,y1)-(x2,y2) axis, normalized to that
// axis's length, then spread and looked up in the LUT.
type linearSampler struct {
	inv            *transform.TransAffine
	x1, y1, dx, dy float64
	lenSq          float64
	spread         svgtree.SpreadMethod
	lut            gradientLUT
}

func (s *linearSampler) Sample(x, y float64) color.RGBA8[color.SRGB] {
	s.inv.Transform(&x, &y)
	if s.lenSq == 0 {
		return s.lut.at(0)
	}
	t := ((x-s.x1)*s.dx + (y-s.y1)*s.dy) / s.lenSq
	return s.lut.at(applySpread(t, s.spread))
}

// newLinearSampler builds a linearSampler for g in the coordinate space
// where the gradient's own geometry (x1,y1)-(x2,y2) is already expressed:
// toLocal converts a device-space point into that space (user units, with
// objectBoundingBox already folded in by the caller when applicable).
func newLinearSampler(g *svgtree.LinearGradient, toLocal *transform.TransAffine) Sampler {
	stops := resolveStops(g.Stops)
	dx, dy := g.X2-g.X1, g.Y2-g.Y1
	return &linearSampler{
		inv:    toLocal,
		x1:     g.X1, y1: g.Y1,
		dx: dx, dy: dy,
		lenSq:  dx*dx + dy*dy,
		spread: g.Spread,
		lut:    buildStopLUT(stops),
	}
}

// radialSampler implements SVG's two-circle radial gradient, following the
// standard two-point-conical-gradient reduction (focal circle (fx,fy,fr)
// morphing into the end circle (cx,cy,r) as t goes 0..1) used by every
// production radial-gradient renderer, not AGG's single-circle
// gradient_radial_focus (which special-cases fr=0 and does not generalize).
type radialSampler struct {
	inv                  *transform.TransAffine
	fx, fy, fr           float64
	dcx, dcy, dr         float64
	a                    float64
	spread               svgtree.SpreadMethod
	lut                  gradientLUT
}

func newRadialSampler(g *svgtree.RadialGradient, toLocal *transform.TransAffine) Sampler {
	stops := resolveStops(g.Stops)
	dcx, dcy := g.Cx-g.Fx, g.Cy-g.Fy
	dr := g.R - g.Fr
	return &radialSampler{
		inv: toLocal,
		fx: g.Fx, fy: g.Fy, fr: g.Fr,
		dcx: dcx, dcy: dcy, dr: dr,
		a:      dcx*dcx + dcy*dcy - dr*dr,
		spread: g.Spread,
		lut:    buildStopLUT(stops),
	}
}

func (s *radialSampler) Sample(x, y float64) color.RGBA8[color.SRGB] {
	s.inv.Transform(&x, &y)
	px, py := x-s.fx, y-s.fy
	b := 2 * (px*s.dcx + py*s.dcy + s.fr*s.dr)
	c := px*px + py*py - s.fr*s.fr

	var t float64
	switch {
	case math.Abs(s.a) < 1e-9:
		if b == 0 {
			return s.lut.at(0)
		}
		t = c / b
	default:
		disc := b*b - 4*s.a*c
		if disc < 0 {
			return s.lut.at(0)
		}
		sq := math.Sqrt(disc)
		t1 := (b + sq) / (2 * s.a)
		t2 := (b - sq) / (2 * s.a)
		t = math.Max(t1, t2)
		if s.fr+t*s.dr < 0 {
			t = math.Min(t1, t2)
		}
	}
	return s.lut.at(applySpread(t, s.spread))
}

// patternSampler tiles a pre-rendered pattern cell (rendered by the scene
// walker, which owns tree recursion) across device space.
type patternSampler struct {
	inv        *transform.TransAffine
	tile       *Pixmap
	w, h       float64 // tile size in the pattern's local unit space
}

func newPatternSampler(tile *Pixmap, w, h float64, toLocal *transform.TransAffine) Sampler {
	return &patternSampler{inv: toLocal, tile: tile, w: w, h: h}
}

func (s *patternSampler) Sample(x, y float64) color.RGBA8[color.SRGB] {
	s.inv.Transform(&x, &y)
	if s.w <= 0 || s.h <= 0 {
		return color.RGBA8[color.SRGB]{}
	}
	u := math.Mod(x, s.w)
	if u < 0 {
		u += s.w
	}
	v := math.Mod(y, s.h)
	if v < 0 {
		v += s.h
	}
	px := int(u / s.w * float64(s.tile.Width()))
	py := int(v / s.h * float64(s.tile.Height()))
	if px < 0 {
		px = 0
	} else if px >= s.tile.Width() {
		px = s.tile.Width() - 1
	}
	if py < 0 {
		py = 0
	} else if py >= s.tile.Height() {
		py = s.tile.Height() - 1
	}
	return s.tile.At(px, py)
}

// FillSpan samples a sampler across a horizontal device-space span and
// blends it into dst, applying cov per-pixel AA coverage and opacity as a
// uniform multiplier — the paint-server equivalent of Rasterizer.sweep.
func FillSpan(dst *Pixmap, s Sampler, y, x0, length int, op blender.CompOp, opacity float64, covers []basics.Int8u) {
	extra := opacityToCover(opacity)
	for i := 0; i < length; i++ {
		x := x0 + i
		c := s.Sample(float64(x)+0.5, float64(y)+0.5)
		cover := covers[i]
		if extra != 255 {
			cover = basics.Int8u(uint32(cover) * uint32(extra) / 255)
		}
		dst.BlendPixel(x, y, op, c.R, c.G, c.B, c.A, cover)
	}
}
