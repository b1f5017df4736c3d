package svgrender

import (
	"math"

	"github.com/lumenvec/svgraster/internal/basics"
	"github.com/lumenvec/svgraster/internal/svgtree"
	"github.com/lumenvec/svgraster/internal/transform"
)

// fimage is a straight-alpha, floating-point RGBA working buffer. Every SVG
// filter primitive operates on unpremultiplied values (feColorMatrix,
// feComponentTransfer, feComposite's Porter-Duff modes) or needs float
// precision a byte Pixmap can't give (feGaussianBlur's box-blur passes,
// feTurbulence's Perlin lattice), so the filter graph runs entirely in this
// representation and only the final primitive's output is converted back to
// a Pixmap.
type fimage struct {
	w, h int
	pix  []float64 // row-major, 4 floats per pixel, straight alpha, 0..1
}

func newFImage(w, h int) *fimage {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &fimage{w: w, h: h, pix: make([]float64, w*h*4)}
}

func (f *fimage) at(x, y int) [4]float64 {
	if x < 0 || y < 0 || x >= f.w || y >= f.h {
		return [4]float64{}
	}
	i := (y*f.w + x) * 4
	return [4]float64{f.pix[i], f.pix[i+1], f.pix[i+2], f.pix[i+3]}
}

// atEdge samples with an explicit out-of-bounds policy for the primitives
// that declare one (feGaussianBlur, feConvolveMatrix).
func (f *fimage) atEdge(x, y int, mode svgtree.EdgeMode) [4]float64 {
	switch mode {
	case svgtree.EdgeWrap:
		if f.w == 0 || f.h == 0 {
			return [4]float64{}
		}
		x = ((x % f.w) + f.w) % f.w
		y = ((y % f.h) + f.h) % f.h
		return f.at(x, y)
	case svgtree.EdgeNone:
		return f.at(x, y)
	default: // EdgeDuplicate
		if x < 0 {
			x = 0
		} else if x >= f.w {
			x = f.w - 1
		}
		if y < 0 {
			y = 0
		} else if y >= f.h {
			y = f.h - 1
		}
		return f.at(x, y)
	}
}

func (f *fimage) set(x, y int, px [4]float64) {
	if x < 0 || y < 0 || x >= f.w || y >= f.h {
		return
	}
	i := (y*f.w + x) * 4
	f.pix[i], f.pix[i+1], f.pix[i+2], f.pix[i+3] = px[0], px[1], px[2], px[3]
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// newFImageFromPixmap unpremultiplies px's channels into a straight-alpha
// working buffer.
func newFImageFromPixmap(px *Pixmap) *fimage {
	out := newFImage(px.Width(), px.Height())
	var o pixOrder
	for y := 0; y < px.Height(); y++ {
		row := px.Row(y)
		for x := 0; x < px.Width(); x++ {
			i := x * 4
			a := float64(row[i+o.IdxA()]) / 255
			var r, g, b float64
			if a > 0 {
				r = float64(row[i+o.IdxR()]) / 255 / a
				g = float64(row[i+o.IdxG()]) / 255 / a
				b = float64(row[i+o.IdxB()]) / 255 / a
			}
			out.set(x, y, [4]float64{clamp01(r), clamp01(g), clamp01(b), a})
		}
	}
	return out
}

// toPixmap premultiplies f back into a new Pixmap.
func (f *fimage) toPixmap() (*Pixmap, error) {
	px, err := NewPixmap(f.w, f.h)
	if err != nil {
		return nil, err
	}
	var o pixOrder
	for y := 0; y < f.h; y++ {
		row := px.Row(y)
		for x := 0; x < f.w; x++ {
			c := f.at(x, y)
			a := clamp01(c[3])
			i := x * 4
			row[i+o.IdxR()] = basics.Int8u(clamp01(c[0])*a*255 + 0.5)
			row[i+o.IdxG()] = basics.Int8u(clamp01(c[1])*a*255 + 0.5)
			row[i+o.IdxB()] = basics.Int8u(clamp01(c[2])*a*255 + 0.5)
			row[i+o.IdxA()] = basics.Int8u(a*255 + 0.5)
		}
	}
	return px, nil
}

func (f *fimage) alphaOnly() *fimage {
	out := newFImage(f.w, f.h)
	copy(out.pix, f.pix)
	for i := 0; i < len(out.pix); i += 4 {
		out.pix[i], out.pix[i+1], out.pix[i+2] = 0, 0, 0
	}
	return out
}

// flatPaintImage materializes a FillPaint/StrokePaint filter input. Solid
// colors fill the whole canvas exactly; gradients and patterns fall back to
// fallback (the source graphic) since the filter evaluator only has the
// node's device-space bounds, not the local-space path bounds a paint
// server needs for objectBoundingBox placement (see DESIGN.md).
func flatPaintImage(p *svgtree.Paint, w, h int, fallback *fimage) *fimage {
	if p == nil {
		return newFImage(w, h)
	}
	if p.Kind == svgtree.PaintColor {
		return floodImage(w, h, p.Color, p.Opacity)
	}
	return fallback
}

func floodImage(w, h int, c svgtree.Color, opacity float64) *fimage {
	out := newFImage(w, h)
	a := clamp01(float64(c.A) / 255 * opacity)
	px := [4]float64{float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255, a}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.set(x, y, px)
		}
	}
	return out
}

// filterEvaluator evaluates an svgtree.Filter graph against a rendered node
// layer, following the primitive chain described in spec.md §4.6: each
// primitive reads from a magic source or an earlier primitive's named
// result, and the last primitive's result becomes the filtered output.
type filterEvaluator struct {
	r *Renderer
}

func newFilterEvaluator(r *Renderer) *filterEvaluator {
	return &filterEvaluator{r: r}
}

// Apply runs filter's primitive chain against layer (the node's own rendered
// content, already isolated) and returns the filtered replacement layer.
// bounds is the node's device-space bounding rect, used only as a fallback
// filter region when filter.Region isn't meaningfully set. fillPaint/
// strokePaint are the originating node's resolved paints, used to
// materialize the FillPaint/StrokePaint magic filter inputs (see
// DESIGN.md).
func (fe *filterEvaluator) Apply(filter *svgtree.Filter, layer *Pixmap, ctm svgtree.Transform, bounds svgtree.Rect, fillPaint, strokePaint *svgtree.Paint) (*Pixmap, error) {
	w, h := layer.Width(), layer.Height()
	sourceGraphic := newFImageFromPixmap(layer)
	sourceAlpha := sourceGraphic.alphaOnly()

	inv := copyAffine(ctm)
	inv.Invert()
	scale := worldToScreenScalar(ctm)

	results := map[string]*fimage{}
	prev := sourceGraphic

	resolve := func(in svgtree.FilterInput) *fimage {
		if in.Name != "" {
			if v, ok := results[in.Name]; ok {
				return v
			}
		}
		switch in.Magic {
		case svgtree.InputSourceAlpha:
			return sourceAlpha
		case svgtree.InputBackgroundImage, svgtree.InputBackgroundAlpha:
			// enable-background is a deprecated, widely-unimplemented SVG
			// feature (see DESIGN.md Open Question); treated as transparent.
			return newFImage(w, h)
		case svgtree.InputFillPaint:
			return flatPaintImage(fillPaint, w, h, sourceGraphic)
		case svgtree.InputStrokePaint:
			return flatPaintImage(strokePaint, w, h, sourceGraphic)
		case svgtree.InputPrevious:
			return prev
		default:
			return sourceGraphic
		}
	}

	for pi := range filter.Primitives {
		p := &filter.Primitives[pi]
		in1 := resolve(p.Input)
		var out *fimage

		switch p.Kind {
		case svgtree.FeFlood:
			out = floodImage(w, h, p.FloodColor, p.FloodOpacity)
		case svgtree.FeOffset:
			out = fe.offset(in1, p.Dx*scale, p.Dy*scale)
		case svgtree.FeMerge:
			out = newFImage(w, h)
			for _, mi := range p.Inputs {
				compositeOver(out, resolve(mi))
			}
		case svgtree.FeBlend:
			out = blendImages(in1, resolve(p.Input2), p.BlendMode)
		case svgtree.FeComposite:
			out = compositeImages(in1, resolve(p.Input2), p)
		case svgtree.FeColorMatrix:
			out = applyColorMatrix(in1, p)
		case svgtree.FeComponentTransfer:
			out = applyComponentTransfer(in1, p)
		case svgtree.FeGaussianBlur:
			out = gaussianBlur(in1, p.StdDeviationX*scale, p.StdDeviationY*scale, p.EdgeMode)
		case svgtree.FeMorphology:
			out = morphology(in1, p.MorphOp, p.RadiusX*scale, p.RadiusY*scale)
		case svgtree.FeConvolveMatrix:
			out = convolveMatrix(in1, p)
		case svgtree.FeTurbulence:
			out = renderTurbulence(p, w, h, inv)
		case svgtree.FeDisplacementMap:
			out = displacementMap(in1, resolve(p.Input2), p, scale)
		case svgtree.FeTile:
			out = tileImage(in1, p, ctm)
		case svgtree.FeImage:
			out = fe.renderImagePrimitive(p, w, h, ctm)
		case svgtree.FeDiffuseLighting:
			out = diffuseLighting(in1, p, scale)
		case svgtree.FeSpecularLighting:
			out = specularLighting(in1, p, scale)
		default:
			out = in1
		}

		if p.Region != nil {
			out = clipToRegion(out, *p.Region, ctm)
		}

		if p.Name != "" {
			results[p.Name] = out
		}
		prev = out
	}

	return prev.toPixmap()
}

func copyAffine(t *transform.TransAffine) *transform.TransAffine {
	if t == nil {
		return transform.NewTransAffine()
	}
	cp := *t
	return &cp
}

func (fe *filterEvaluator) offset(in *fimage, dx, dy float64) *fimage {
	out := newFImage(in.w, in.h)
	idx, idy := int(math.Round(dx)), int(math.Round(dy))
	for y := 0; y < in.h; y++ {
		for x := 0; x < in.w; x++ {
			out.set(x, y, in.at(x-idx, y-idy))
		}
	}
	return out
}

// compositeOver accumulates src onto dst in place using the standard
// "over" Porter-Duff formula on straight alpha, the shape feMerge needs for
// its ordered list of merge nodes.
func compositeOver(dst *fimage, src *fimage) {
	for i := 0; i+3 < len(dst.pix); i += 4 {
		cb := [3]float64{dst.pix[i], dst.pix[i+1], dst.pix[i+2]}
		ab := dst.pix[i+3]
		cs := [3]float64{src.pix[i], src.pix[i+1], src.pix[i+2]}
		as := src.pix[i+3]
		ao := as + ab*(1-as)
		for c := 0; c < 3; c++ {
			co := cs[c]*as + cb[c]*ab*(1-as)
			if ao > 0 {
				co /= ao
			}
			dst.pix[i+c] = clamp01(co)
		}
		dst.pix[i+3] = clamp01(ao)
	}
}

func (fe *filterEvaluator) renderImagePrimitive(p *svgtree.Primitive, w, h int, ctm svgtree.Transform) *fimage {
	if p.ImageContent == nil {
		return newFImage(w, h)
	}
	px, err := NewPixmap(w, h)
	if err != nil {
		return newFImage(w, h)
	}
	group := &svgtree.Node{Kind: svgtree.KindGroup, Opacity: 1, Children: []*svgtree.Node{p.ImageContent}}
	fe.r.renderChildren(px, group, ctm, 1)
	return newFImageFromPixmap(px)
}

func clipToRegion(in *fimage, region svgtree.Rect, ctm svgtree.Transform) *fimage {
	rect := transformRect(region, ctm)
	x0, y0 := int(math.Floor(rect.X)), int(math.Floor(rect.Y))
	x1, y1 := int(math.Ceil(rect.X2())), int(math.Ceil(rect.Y2()))
	out := newFImage(in.w, in.h)
	for y := maxI(0, y0); y < minI(in.h, y1); y++ {
		for x := maxI(0, x0); x < minI(in.w, x1); x++ {
			out.set(x, y, in.at(x, y))
		}
	}
	return out
}

func maxI(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minI(a, b int) int {
	if a < b {
		return a
	}
	return b
}
