package svgrender

import (
	"github.com/lumenvec/svgraster/internal/basics"
	"github.com/lumenvec/svgraster/internal/buffer"
	"github.com/lumenvec/svgraster/internal/color"
	"github.com/lumenvec/svgraster/internal/order"
	"github.com/lumenvec/svgraster/internal/pixfmt/blender"
)

// pixOrder fixes the in-memory channel order for every Pixmap in this
// renderer, following internal/agg2d.Agg2D's own RGBA default.
type pixOrder = order.RGBA

// Pixmap is a premultiplied sRGB RGBA8 surface. It is the renderer's own
// thin replacement for internal/pixfmt's PixFmtRGBA32 family: that family is
// left untouched in internal/pixfmt (see DESIGN.md) because it wraps
// straight-alpha blending assumptions this renderer does not want, while
// internal/buffer.RenderingBuffer + internal/pixfmt/blender.CompositeBlender
// give everything actually needed — a byte buffer plus a composite-mode
// blend primitive.
type Pixmap struct {
	buf    *buffer.RenderingBuffer[basics.Int8u]
	pixels []basics.Int8u
	w, h   int
}

// NewPixmap allocates a transparent-black premultiplied pixmap of the given
// size. Returns an error (never panics) so the scene walker can downgrade a
// misbehaving layer/filter region to a no-op per spec.md §7.
func NewPixmap(w, h int) (*Pixmap, error) {
	if w <= 0 || h <= 0 {
		return nil, errPixmapSize(w, h)
	}
	px := &Pixmap{
		pixels: make([]basics.Int8u, w*h*4),
		w:      w,
		h:      h,
	}
	px.buf = buffer.NewRenderingBufferWithData(px.pixels, w, h, w*4)
	return px, nil
}

func (p *Pixmap) Width() int  { return p.w }
func (p *Pixmap) Height() int { return p.h }

// Pixels returns the raw premultiplied RGBA8 row-major buffer (stride w*4).
func (p *Pixmap) Pixels() []basics.Int8u { return p.pixels }

// Row returns the 4*w-byte slice backing row y.
func (p *Pixmap) Row(y int) []basics.Int8u { return p.buf.Row(y) }

// At reads the premultiplied pixel at (x, y).
func (p *Pixmap) At(x, y int) color.RGBA8[color.SRGB] {
	row := p.buf.Row(y)
	i := x * 4
	var o pixOrder
	return color.NewRGBA8[color.SRGB](row[i+o.IdxR()], row[i+o.IdxG()], row[i+o.IdxB()], row[i+o.IdxA()])
}

// Clear resets every pixel to transparent black.
func (p *Pixmap) Clear() {
	for i := range p.pixels {
		p.pixels[i] = 0
	}
}

// CopyFrom overwrites this pixmap with src, which must be the same size.
func (p *Pixmap) CopyFrom(src *Pixmap) {
	copy(p.pixels, src.pixels)
}

// BlendPixel composites one premultiplied source texel (r,g,b,a already
// multiplied by cover in [0,255]) onto (x,y) using op. This is the single
// entry point every higher layer (raster fill/stroke spans, paint servers,
// the layer compositor, the filter evaluator) funnels through, so the
// Porter-Duff/blend-mode algebra lives in exactly one place:
// internal/pixfmt/blender.CompositeBlender.
func (p *Pixmap) BlendPixel(x, y int, op blender.CompOp, r, g, b, a, cover basics.Int8u) {
	if x < 0 || y < 0 || x >= p.w || y >= p.h {
		return
	}
	bl := blender.NewCompositeBlender[color.SRGB, pixOrder](op)
	row := p.buf.Row(y)
	bl.BlendPix(row[x*4:x*4+4], r, g, b, a, cover)
}

// BlendHSpan composites a run of `length` identical premultiplied texels
// starting at (x,y), each weighted by its own entry in covers (AGG's
// variable-coverage scanline span, see internal/renderer's BlendSolidHspan).
func (p *Pixmap) BlendHSpan(x, y, length int, op blender.CompOp, r, g, b, a basics.Int8u, covers []basics.Int8u) {
	if y < 0 || y >= p.h {
		return
	}
	bl := blender.NewCompositeBlender[color.SRGB, pixOrder](op)
	row := p.buf.Row(y)
	for i := 0; i < length; i++ {
		px := x + i
		if px < 0 || px >= p.w {
			continue
		}
		bl.BlendPix(row[px*4:px*4+4], r, g, b, a, covers[i])
	}
}

// BlendColorHSpan composites a run of per-pixel colors (already premultiplied
// straight RGBA channel values, not yet coverage-scaled) with per-pixel cover
// — the shape used by gradient/pattern paint-server spans.
func (p *Pixmap) BlendColorHSpan(x, y, length int, op blender.CompOp, colors []color.RGBA8[color.SRGB], covers []basics.Int8u) {
	if y < 0 || y >= p.h {
		return
	}
	bl := blender.NewCompositeBlender[color.SRGB, pixOrder](op)
	row := p.buf.Row(y)
	for i := 0; i < length; i++ {
		px := x + i
		if px < 0 || px >= p.w {
			continue
		}
		c := colors[i]
		cover := basics.Int8u(255)
		if covers != nil {
			cover = covers[i]
		}
		bl.BlendPix(row[px*4:px*4+4], c.R, c.G, c.B, c.A, cover)
	}
}

type pixmapSizeError struct {
	w, h int
}

func (e *pixmapSizeError) Error() string {
	return "svgrender: invalid pixmap size"
}

func errPixmapSize(w, h int) error {
	return &pixmapSizeError{w: w, h: h}
}
