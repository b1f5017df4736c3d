package svgrender

import (
	"math"

	"github.com/lumenvec/svgraster/internal/basics"
	"github.com/lumenvec/svgraster/internal/conv"
	"github.com/lumenvec/svgraster/internal/pixfmt/blender"
	"github.com/lumenvec/svgraster/internal/rasterizer"
	"github.com/lumenvec/svgraster/internal/scanline"
	"github.com/lumenvec/svgraster/internal/svgtree"
	"github.com/lumenvec/svgraster/internal/transform"
)

// approxScale mirrors internal/agg2d's ApproxScale constant: curve/stroke
// flattening tolerance is expressed relative to the world-to-screen scale so
// a path looks equally smooth whether it is rendered at 1x or zoomed in.
const approxScale = 1.0

// concreteRasterizer is the one instantiation of the generic rasterizer this
// renderer uses throughout, matching internal/agg2d's own choice: integer
// subpixel coordinates, no clip box (the scene walker clips via layer
// pixmap bounds instead).
type concreteRasterizer = rasterizer.RasterizerScanlineAA[int, rasterizer.RasConvInt, *rasterizer.RasterizerSlNoClip]

// scanlineU32 adapts internal/scanline.ScanlineU8 (whose AddCell/AddSpan take
// plain uint) to internal/rasterizer.ScanlineInterface (which takes uint32),
// the same bridging job internal/agg2d/adapters.go's scanlineWrapper does for
// the unrelated internal/renderer/scanline interface.
type scanlineU32 struct{ sl *scanline.ScanlineU8 }

func (w scanlineU32) ResetSpans()                          { w.sl.ResetSpans() }
func (w scanlineU32) AddCell(x int, cover uint32)           { w.sl.AddCell(x, uint(cover)) }
func (w scanlineU32) AddSpan(x, length int, cover uint32)   { w.sl.AddSpan(x, length, uint(cover)) }
func (w scanlineU32) Finalize(y int)                        { w.sl.Finalize(y) }
func (w scanlineU32) NumSpans() int                         { return w.sl.NumSpans() }

// Rasterizer rasterizes filled and stroked svgtree paths into a Pixmap. One
// instance is reused across an entire render (internal/agg2d keeps exactly
// one rasterizer + one scanline on its Agg2D struct for the same reason:
// the cell storage they hold internally is the expensive part to allocate).
type Rasterizer struct {
	ras *concreteRasterizer
	sl  *scanline.ScanlineU8
}

// NewRasterizer builds a rasterizer with no clip box.
func NewRasterizer() *Rasterizer {
	return &Rasterizer{
		ras: rasterizer.NewRasterizerScanlineAA[int, rasterizer.RasConvInt, *rasterizer.RasterizerSlNoClip](
			rasterizer.RasConvInt{}, rasterizer.NewRasterizerSlNoClip()),
		sl: scanline.NewScanlineU8(),
	}
}

// worldToScreenScalar is internal/agg2d.Agg2D.WorldToScreenScalar ported to a
// free function over internal/transform.TransAffine's exported fields.
func worldToScreenScalar(t svgtree.Transform) float64 {
	if t == nil {
		return 1
	}
	return (math.Hypot(t.SX, t.SHY) + math.Hypot(t.SHX, t.SY)) / 2
}

// feedVertexSource walks src to PathCmdStop, adding every vertex to the
// rasterizer, exactly as internal/agg2d/rendering.go's renderFill/
// renderStroke do with their transformedPath loop.
func feedVertexSource(ras *concreteRasterizer, src conv.VertexSource) {
	src.Rewind(0)
	for {
		x, y, cmd := src.Vertex()
		if cmd == basics.PathCmdStop {
			break
		}
		ras.AddVertex(x, y, uint32(cmd))
	}
}

// PathVertexSource is the vertex-source shape every svgtree.PathData cursor
// satisfies (see internal/conv.VertexSource); named here so callers outside
// this package don't need to import internal/conv just to hold one.
type PathVertexSource = conv.VertexSource

// prepareFill builds the transformed, curve-flattened vertex source for a
// fill and loads it into the rasterizer with the requested fill rule.
func (rz *Rasterizer) prepareFill(path PathVertexSource, xf *transform.TransAffine, rule svgtree.FillRule) {
	curve := conv.NewConvCurve(path)
	curve.SetApproximationScale(worldToScreenScalar(xf) * approxScale)
	transformed := conv.NewConvTransform(curve, xf)

	rz.ras.Reset()
	if rule == svgtree.FillEvenOdd {
		rz.ras.FillingRule(basics.FillEvenOdd)
	} else {
		rz.ras.FillingRule(basics.FillNonZero)
	}
	feedVertexSource(rz.ras, transformed)
}

// prepareStroke builds the transformed, curve-flattened, stroked (and
// optionally dashed) vertex source and loads it into the rasterizer.
// Dashing is applied before stroking when stroke.DashArray is non-empty,
// matching internal/agg2d's convDash-before-convStroke ordering.
func (rz *Rasterizer) prepareStroke(path PathVertexSource, xf *transform.TransAffine, stroke *svgtree.Stroke) {
	curve := conv.NewConvCurve(path)
	scale := worldToScreenScalar(xf) * approxScale
	curve.SetApproximationScale(scale)

	var strokeSource conv.VertexSource = curve
	if len(stroke.DashArray) > 0 {
		dash := conv.NewConvDash(curve)
		for i := 0; i+1 < len(stroke.DashArray); i += 2 {
			dash.AddDash(stroke.DashArray[i], stroke.DashArray[i+1])
		}
		if len(stroke.DashArray)%2 == 1 {
			dash.AddDash(stroke.DashArray[len(stroke.DashArray)-1], stroke.DashArray[len(stroke.DashArray)-1])
		}
		dash.DashStart(stroke.DashOffset)
		strokeSource = dash
	}

	cs := conv.NewConvStroke(strokeSource)
	cs.SetWidth(stroke.Width)
	cs.SetLineCap(toBasicsLineCap(stroke.Cap))
	cs.SetLineJoin(toBasicsLineJoin(stroke.Join))
	cs.SetMiterLimit(stroke.MiterLimit)
	cs.SetApproximationScale(scale)

	transformed := conv.NewConvTransform(cs, xf)

	rz.ras.Reset()
	rz.ras.FillingRule(basics.FillNonZero)
	feedVertexSource(rz.ras, transformed)
}

// FillPath rasterizes path transformed by xf with fill rule rule, then
// blends every resulting span into dst at (r,g,b,a) straight-alpha values
// using op, scaled by each span's own AA coverage.
func (rz *Rasterizer) FillPath(dst *Pixmap, path PathVertexSource, xf *transform.TransAffine, rule svgtree.FillRule, op blender.CompOp, r, g, b, a basics.Int8u) {
	rz.prepareFill(path, xf, rule)
	rz.sweep(dst, op, r, g, b, a)
}

// StrokePath rasterizes the outline of path stroked per stroke, transformed
// by xf, then blends it the same way FillPath does.
func (rz *Rasterizer) StrokePath(dst *Pixmap, path PathVertexSource, xf *transform.TransAffine, stroke *svgtree.Stroke, op blender.CompOp, r, g, b, a basics.Int8u) {
	rz.prepareStroke(path, xf, stroke)
	rz.sweep(dst, op, r, g, b, a)
}

// spanFunc receives one AA-coverage scanline span at a time, in device
// pixel coordinates, for a paint server to sample instead of a fixed color.
type spanFunc func(y, x0, length int, covers []basics.Int8u)

// fillCoverage is FillPath without a fixed color: every span's coverage
// is handed to emit instead of being blended directly, the shape a
// gradient/pattern fill needs to sample through.
func (rz *Rasterizer) fillCoverage(_ *Pixmap, path PathVertexSource, xf *transform.TransAffine, rule svgtree.FillRule, emit spanFunc) {
	rz.prepareFill(path, xf, rule)
	rz.sweepCoverage(emit)
}

// strokeCoverage is the stroke counterpart of fillCoverage.
func (rz *Rasterizer) strokeCoverage(_ *Pixmap, path PathVertexSource, xf *transform.TransAffine, stroke *svgtree.Stroke, emit spanFunc) {
	rz.prepareStroke(path, xf, stroke)
	rz.sweepCoverage(emit)
}

// sweep drains the prepared rasterizer's scanlines into dst, scaling the
// solid (r,g,b,a) color by each span's own AA coverage, following
// internal/agg2d/rendering.go's scanlineRender loop shape (RewindScanlines,
// then repeated SweepScanline/consume).
func (rz *Rasterizer) sweep(dst *Pixmap, op blender.CompOp, r, g, b, a basics.Int8u) {
	rz.sweepCoverage(func(y, x0, length int, covers []basics.Int8u) {
		dst.BlendHSpan(x0, y, length, op, r, g, b, a, covers)
	})
}

// sweepCoverage is the RewindScanlines/SweepScanline drain loop shared by
// sweep and the coverage-callback variants.
func (rz *Rasterizer) sweepCoverage(emit spanFunc) {
	if !rz.ras.RewindScanlines() {
		return
	}
	rz.sl.Reset(rz.ras.MinX(), rz.ras.MaxX())
	adapter := scanlineU32{sl: rz.sl}
	for rz.ras.SweepScanline(adapter) {
		y := rz.sl.Y()
		for _, span := range rz.sl.Spans() {
			length := int(span.Len)
			if length <= 0 {
				continue
			}
			emit(y, int(span.X), length, span.Covers[:length])
		}
	}
}

func toBasicsLineCap(c svgtree.LineCap) basics.LineCap {
	switch c {
	case svgtree.CapRound:
		return basics.RoundCap
	case svgtree.CapSquare:
		return basics.SquareCap
	default:
		return basics.ButtCap
	}
}

func toBasicsLineJoin(j svgtree.LineJoin) basics.LineJoin {
	switch j {
	case svgtree.JoinRound:
		return basics.RoundJoin
	case svgtree.JoinBevel:
		return basics.BevelJoin
	default:
		return basics.MiterJoin
	}
}
