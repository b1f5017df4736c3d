package svgrender

import (
	"github.com/lumenvec/svgraster/internal/basics"
	"github.com/lumenvec/svgraster/internal/color"
	"github.com/lumenvec/svgraster/internal/pixfmt/blender"
	"github.com/lumenvec/svgraster/internal/svgtree"
	"github.com/lumenvec/svgraster/internal/transform"
)

// Renderer walks an svgtree.Node and draws it into a Pixmap. It owns the
// single Rasterizer and LayerStack shared across the whole tree walk, the
// same resource-reuse discipline internal/agg2d.Agg2D applies by keeping one
// rasterizer/scanline pair on the struct rather than allocating per draw
// call.
type Renderer struct {
	opts    *RenderOptions
	ras     *Rasterizer
	layers  *LayerStack
	w, h    int
	filters *filterEvaluator
}

// NewRenderer prepares a renderer targeting a canvas of size w x h.
func NewRenderer(w, h int, opts *RenderOptions) *Renderer {
	r := &Renderer{
		opts:   opts,
		ras:    NewRasterizer(),
		layers: NewLayerStack(w, h),
		w:      w,
		h:      h,
	}
	r.filters = newFilterEvaluator(r)
	return r
}

// Render draws root's subtree onto dst, which must already be sized w x h
// (spec.md §4's top-level entry point — the tree's own root Transform is
// expected to already encode the viewBox-to-canvas fit, computed by the
// caller via internal/transform.TransViewport).
func (r *Renderer) Render(dst *Pixmap, root *svgtree.Node) {
	r.renderChildren(dst, root, root.Transform, 1)
}

func (r *Renderer) renderChildren(dst *Pixmap, n *svgtree.Node, ctm svgtree.Transform, inheritedOpacity float64) {
	for _, child := range n.Children {
		r.renderNode(dst, child, ctm, inheritedOpacity)
	}
}

func (r *Renderer) renderNode(dst *Pixmap, n *svgtree.Node, parentCTM svgtree.Transform, inheritedOpacity float64) {
	ctm := combineTransform(parentCTM, n.Transform)

	if !n.NeedsLayer() {
		r.paintNode(dst, n, ctm, inheritedOpacity)
		if n.Kind == svgtree.KindGroup || n.Kind == svgtree.KindRoot {
			r.renderChildren(dst, n, ctm, inheritedOpacity)
		}
		return
	}

	layer, err := r.layers.Acquire()
	if err != nil {
		warn(r.opts.warner(), WarnPixmapAllocation, "failed to allocate isolated layer")
		return
	}
	defer r.layers.Release(layer)

	r.paintNode(layer, n, ctm, 1)
	if n.Kind == svgtree.KindGroup || n.Kind == svgtree.KindRoot {
		r.renderChildren(layer, n, ctm, 1)
	}

	if n.Filter != nil {
		var strokePaint *svgtree.Paint
		if n.StrokeStyle != nil {
			strokePaint = &n.StrokeStyle.Paint
		}
		filtered, err := r.filters.Apply(n.Filter, layer, ctm, r.boundsOf(n, ctm), n.Fill, strokePaint)
		if err != nil {
			warn(r.opts.warner(), WarnBadPrimitive, "filter evaluation failed", "error", err.Error())
		} else {
			layer = filtered
		}
	}

	if n.ClipPath != nil {
		clipMask, err := RasterizeClipPath(r.ras, n.ClipPath, ctm, r.w, r.h)
		if err != nil {
			warn(r.opts.warner(), WarnPixmapAllocation, "failed to allocate clip mask")
		} else {
			ApplyMask(layer, clipMask)
		}
	}

	if n.Mask != nil {
		maskLayer, err := r.layers.Acquire()
		if err != nil {
			warn(r.opts.warner(), WarnPixmapAllocation, "failed to allocate mask layer")
		} else {
			r.renderChildren(maskLayer, &svgtree.Node{Kind: svgtree.KindGroup, Children: n.Mask.Content, Opacity: 1}, ctm, 1)
			ReduceMaskToAlpha(maskLayer, n.Mask.Type)
			ApplyMask(layer, maskLayer)
			r.layers.Release(maskLayer)
		}
	}

	op := blendModeToCompOp(n.Blend)
	opacity := n.Opacity * inheritedOpacity
	Composite(dst, layer, op, opacity)
}

// paintNode draws n's own geometry (fill/stroke/image), not its children.
func (r *Renderer) paintNode(dst *Pixmap, n *svgtree.Node, ctm svgtree.Transform, opacity float64) {
	switch n.Kind {
	case svgtree.KindFillPath, svgtree.KindStrokePath:
		r.paintShape(dst, n, ctm, opacity)
	case svgtree.KindImage:
		r.paintImage(dst, n, ctm, opacity)
	}
}

func (r *Renderer) paintShape(dst *Pixmap, n *svgtree.Node, ctm svgtree.Transform, opacity float64) {
	if n.Path == nil {
		return
	}
	bbox, hasBBox := pathBounds(n.Path)

	if n.Fill != nil {
		r.paintWithPaint(dst, n.Fill, bbox, hasBBox, ctm, opacity, func(op blender.CompOp, solid color.RGBA8[color.SRGB], sampler Sampler) {
			if sampler == nil {
				r.ras.FillPath(dst, n.Path.VertexSource(), ctm, n.Rule, op, solid.R, solid.G, solid.B, solid.A)
			} else {
				r.fillWithSampler(dst, n.Path.VertexSource(), ctm, n.Rule, op, sampler, opacity*n.Fill.Opacity)
			}
		})
	}
	if n.StrokeStyle != nil && n.StrokeStyle.Paint.Kind != svgtree.PaintNone {
		r.paintWithPaint(dst, &n.StrokeStyle.Paint, bbox, hasBBox, ctm, opacity, func(op blender.CompOp, solid color.RGBA8[color.SRGB], sampler Sampler) {
			if sampler == nil {
				r.ras.StrokePath(dst, n.Path.VertexSource(), ctm, n.StrokeStyle, op, solid.R, solid.G, solid.B, solid.A)
			} else {
				r.strokeWithSampler(dst, n.Path.VertexSource(), ctm, n.StrokeStyle, op, sampler, opacity*n.StrokeStyle.Paint.Opacity)
			}
		})
	}
}

// paintWithPaint resolves a Paint to either a solid color (fast path,
// reusing Rasterizer's direct-blend sweep) or a Sampler (gradient/pattern,
// routed through the two-pass rasterize-then-sample path below), then
// invokes draw with whichever is ready.
func (r *Renderer) paintWithPaint(dst *Pixmap, p *svgtree.Paint, bbox svgtree.Rect, hasBBox bool, ctm svgtree.Transform, opacity float64, draw func(op blender.CompOp, solid color.RGBA8[color.SRGB], sampler Sampler)) {
	op := blender.CompOpSrcOver
	switch p.Kind {
	case svgtree.PaintColor:
		c := p.Color.WithAlpha(opacity * p.Opacity)
		draw(op, c.ToRGBA8(), nil)
	case svgtree.PaintLinearGradient:
		if !hasBBox {
			return
		}
		toLocal := gradientInverse(p.Linear.Units, p.Linear.Transform, bbox, ctm)
		draw(op, color.RGBA8[color.SRGB]{}, newLinearSampler(p.Linear, toLocal))
	case svgtree.PaintRadialGradient:
		if !hasBBox {
			return
		}
		toLocal := gradientInverse(p.Radial.Units, p.Radial.Transform, bbox, ctm)
		draw(op, color.RGBA8[color.SRGB]{}, newRadialSampler(p.Radial, toLocal))
	case svgtree.PaintPattern:
		if !hasBBox || p.Pattern == nil {
			return
		}
		tile, w, h, toLocal := r.renderPatternTile(p.Pattern, bbox, ctm)
		if tile == nil {
			return
		}
		draw(op, color.RGBA8[color.SRGB]{}, newPatternSampler(tile, w, h, toLocal))
	}
}

// gradientInverse returns the device-to-gradient-local-space transform: the
// gradient's own Transform combined with an objectBoundingBox unit square
// mapped onto bbox when Units requests it, then inverted so Sampler.Sample
// can map a device point back into the space the gradient geometry
// (x1,y1,x2,y2 or cx,cy,r) is expressed in.
func gradientInverse(units svgtree.Units, gradXf svgtree.Transform, bbox svgtree.Rect, ctm svgtree.Transform) *transform.TransAffine {
	local := transform.NewTransAffine()
	if units == svgtree.ObjectBoundingBox {
		local.ScaleXY(bbox.W, bbox.H)
		local.Translate(bbox.X, bbox.Y)
	}
	combined := combineTransform(ctm, combineTransform(local, gradXf))
	inv := *combined
	inv.Invert()
	return &inv
}

func (r *Renderer) renderPatternTile(p *svgtree.Pattern, bbox svgtree.Rect, ctm svgtree.Transform) (*Pixmap, float64, float64, *transform.TransAffine) {
	w, h := p.W, p.H
	if p.Units == svgtree.ObjectBoundingBox {
		w *= bbox.W
		h *= bbox.H
	}
	scale := worldToScreenScalar(ctm)
	pw, ph := int(w*scale+0.5), int(h*scale+0.5)
	if pw <= 0 || ph <= 0 {
		warn(r.opts.warner(), WarnInvalidBBox, "pattern tile has zero area")
		return nil, 0, 0, nil
	}
	tile, err := NewPixmap(pw, ph)
	if err != nil {
		warn(r.opts.warner(), WarnPixmapAllocation, "failed to allocate pattern tile")
		return nil, 0, 0, nil
	}
	tileCTM := transform.NewTransAffine()
	tileCTM.ScaleXY(float64(pw)/w, float64(ph)/h)
	r.renderChildren(tile, &svgtree.Node{Kind: svgtree.KindGroup, Children: p.Content, Opacity: 1}, tileCTM, 1)

	local := transform.NewTransAffine()
	if p.Units == svgtree.ObjectBoundingBox {
		local.Translate(p.X*bbox.W+bbox.X, p.Y*bbox.H+bbox.Y)
	} else {
		local.Translate(p.X, p.Y)
	}
	combined := combineTransform(ctm, combineTransform(local, p.Transform))
	inv := *combined
	inv.Invert()
	return tile, w, h, &inv
}

// fillWithSampler rasterizes path's coverage into a temporary AA mask via
// the same rasterizer sweep as a solid fill, but instead of writing a fixed
// color, samples the paint server per pixel.
func (r *Renderer) fillWithSampler(dst *Pixmap, path PathVertexSource, ctm svgtree.Transform, rule svgtree.FillRule, op blender.CompOp, s Sampler, opacity float64) {
	r.ras.fillCoverage(dst, path, ctm, rule, func(y, x0, length int, covers []basics.Int8u) {
		FillSpan(dst, s, y, x0, length, op, opacity, covers)
	})
}

func (r *Renderer) strokeWithSampler(dst *Pixmap, path PathVertexSource, ctm svgtree.Transform, stroke *svgtree.Stroke, op blender.CompOp, s Sampler, opacity float64) {
	r.ras.strokeCoverage(dst, path, ctm, stroke, func(y, x0, length int, covers []basics.Int8u) {
		FillSpan(dst, s, y, x0, length, op, opacity, covers)
	})
}

func (r *Renderer) paintImage(dst *Pixmap, n *svgtree.Node, ctm svgtree.Transform, opacity float64) {
	if n.Image == nil || len(n.Image.Pixels) == 0 {
		return
	}
	img := n.Image
	vp := transform.NewTransViewport()
	vp.DeviceViewport(img.ViewBox.X, img.ViewBox.Y, img.ViewBox.X2(), img.ViewBox.Y2())
	vp.WorldViewport(0, 0, float64(img.Width), float64(img.Height))
	aspect := transform.AspectRatioStretch
	if img.PreserveAspectSlice {
		aspect = transform.AspectRatioSlice
	} else if img.PreserveAspectMeet {
		aspect = transform.AspectRatioMeet
	}
	vp.PreserveAspectRatio(img.AlignX, img.AlignY, aspect)
	fit := vp.ToAffine()
	full := combineTransform(ctm, fit)

	cover := opacityToCover(opacity)
	blitImage(dst, img, full, cover, img.SmoothInterpolation)
}

func (r *Renderer) boundsOf(n *svgtree.Node, ctm svgtree.Transform) svgtree.Rect {
	if n.Path != nil {
		if bbox, ok := pathBounds(n.Path); ok {
			return transformRect(bbox, ctm)
		}
	}
	return svgtree.Rect{X: 0, Y: 0, W: float64(r.w), H: float64(r.h)}
}

// combineTransform applies child first, then parent, matching AGG's
// TransAffine.Multiply(m) semantics (*this = *this * m) and SVG's
// local-to-parent chaining.
func combineTransform(parent, child svgtree.Transform) svgtree.Transform {
	if child == nil {
		return parent
	}
	if parent == nil {
		return child
	}
	result := *child
	result.Multiply(parent)
	return &result
}

func transformRect(rIn svgtree.Rect, xf svgtree.Transform) svgtree.Rect {
	if xf == nil {
		return rIn
	}
	xs := [4]float64{rIn.X, rIn.X2(), rIn.X, rIn.X2()}
	ys := [4]float64{rIn.Y, rIn.Y, rIn.Y2(), rIn.Y2()}
	minX, minY := xs[0], ys[0]
	maxX, maxY := xs[0], ys[0]
	for i := 0; i < 4; i++ {
		x, y := xs[i], ys[i]
		xf.Transform(&x, &y)
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}
	return svgtree.Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// pathBounds computes the axis-aligned local-space bounding box of a path's
// on-curve and control points, used for objectBoundingBox paint/filter
// regions (spec.md §4.5). Control points are included, matching how AGG's
// own bounding_rect helpers treat curve handles as a conservative bound.
func pathBounds(p *svgtree.PathData) (svgtree.Rect, bool) {
	if p.Empty() {
		return svgtree.Rect{}, false
	}
	first := true
	var minX, minY, maxX, maxY float64
	consider := func(x, y float64) {
		if first {
			minX, maxX, minY, maxY = x, x, y, y
			first = false
			return
		}
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}
	for _, seg := range p.Segments {
		switch seg.Kind {
		case svgtree.MoveTo, svgtree.LineTo:
			consider(seg.X, seg.Y)
		case svgtree.CurveTo:
			consider(seg.X1, seg.Y1)
			consider(seg.X2, seg.Y2)
			consider(seg.X, seg.Y)
		}
	}
	if first {
		return svgtree.Rect{}, false
	}
	return svgtree.Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}, true
}

// blitImage samples img's decoded straight-alpha pixels through full (local
// image space -> device space) into dst. Sampling is nearest-neighbor when
// !smooth (image-rendering: pixelated/crisp-edges) and bilinear otherwise,
// matching AGG's own image-transform span generators' two-mode choice
// (internal/span's nearest/bilinear span generators assume pixfmt types this
// renderer's premultiplied Pixmap does not use, so the sampling math is
// reimplemented directly here rather than wired through them — see
// DESIGN.md).
func blitImage(dst *Pixmap, img *svgtree.ImageRef, full svgtree.Transform, cover basics.Int8u, smooth bool) {
	inv := *full
	inv.Invert()
	for y := 0; y < dst.Height(); y++ {
		for x := 0; x < dst.Width(); x++ {
			sx, sy := float64(x)+0.5, float64(y)+0.5
			inv.Transform(&sx, &sy)
			sx -= 0.5
			sy -= 0.5
			if sx < -1 || sy < -1 || sx >= float64(img.Width) || sy >= float64(img.Height) {
				continue
			}
			var r8, g8, b8, a8 basics.Int8u
			if smooth {
				r8, g8, b8, a8 = sampleBilinear(img, sx, sy)
			} else {
				r8, g8, b8, a8 = sampleNearest(img, sx, sy)
			}
			if a8 == 0 {
				continue
			}
			dst.BlendPixel(x, y, blender.CompOpSrcOver, r8, g8, b8, a8, cover)
		}
	}
}

func sampleNearest(img *svgtree.ImageRef, sx, sy float64) (r, g, b, a basics.Int8u) {
	x, y := int(sx+0.5), int(sy+0.5)
	if x < 0 || y < 0 || x >= img.Width || y >= img.Height {
		return 0, 0, 0, 0
	}
	i := (y*img.Width + x) * 4
	return img.Pixels[i], img.Pixels[i+1], img.Pixels[i+2], img.Pixels[i+3]
}

func sampleBilinear(img *svgtree.ImageRef, sx, sy float64) (r, g, b, a basics.Int8u) {
	x0, y0 := int(sx), int(sy)
	fx, fy := sx-float64(x0), sy-float64(y0)
	at := func(x, y int) (float64, float64, float64, float64) {
		if x < 0 {
			x = 0
		} else if x >= img.Width {
			x = img.Width - 1
		}
		if y < 0 {
			y = 0
		} else if y >= img.Height {
			y = img.Height - 1
		}
		i := (y*img.Width + x) * 4
		return float64(img.Pixels[i]), float64(img.Pixels[i+1]), float64(img.Pixels[i+2]), float64(img.Pixels[i+3])
	}
	r00, g00, b00, a00 := at(x0, y0)
	r10, g10, b10, a10 := at(x0+1, y0)
	r01, g01, b01, a01 := at(x0, y0+1)
	r11, g11, b11, a11 := at(x0+1, y0+1)

	lerp := func(a, b, t float64) float64 { return a + (b-a)*t }
	top := func(a, b float64) float64 { return lerp(a, b, fx) }
	rv := lerp(top(r00, r10), top(r01, r11), fy)
	gv := lerp(top(g00, g10), top(g01, g11), fy)
	bv := lerp(top(b00, b10), top(b01, b11), fy)
	av := lerp(top(a00, a10), top(a01, a11), fy)
	return basics.Int8u(rv + 0.5), basics.Int8u(gv + 0.5), basics.Int8u(bv + 0.5), basics.Int8u(av + 0.5)
}
