package svgrender

import (
	"github.com/lumenvec/svgraster/internal/pixfmt/blender"
	"github.com/lumenvec/svgraster/internal/svgtree"
)

// maxPoolLayers bounds how many offscreen layers LayerStack keeps around for
// reuse. SVG documents rarely nest more than a handful of isolated groups at
// once (opacity/blend/clip/mask/filter, spec.md §4.2); anything deeper just
// allocates past the pool rather than growing it, so one pathological
// document can't pin unbounded memory for the life of a render.
const maxPoolLayers = 4

// LayerStack hands out and recycles same-size Pixmaps for isolated-group
// rendering, mirroring internal/agg2d.Agg2D's choice between renBase and
// renBaseComp depending on whether a layer push is active: a node that
// NeedsLayer() renders into a fresh pixmap, which is then composited back
// into its parent with the node's own opacity/blend mode/clip/mask.
type LayerStack struct {
	w, h int
	pool []*Pixmap
}

// NewLayerStack prepares a stack for canvases of size w x h.
func NewLayerStack(w, h int) *LayerStack {
	return &LayerStack{w: w, h: h}
}

// Acquire returns a cleared pixmap the same size as the canvas, reusing a
// pooled one when available.
func (s *LayerStack) Acquire() (*Pixmap, error) {
	if n := len(s.pool); n > 0 {
		px := s.pool[n-1]
		s.pool = s.pool[:n-1]
		px.Clear()
		return px, nil
	}
	return NewPixmap(s.w, s.h)
}

// Release returns a pixmap to the pool for reuse, once its caller is done
// compositing it into the parent layer.
func (s *LayerStack) Release(px *Pixmap) {
	if px == nil || len(s.pool) >= maxPoolLayers {
		return
	}
	s.pool = append(s.pool, px)
}

// Composite blends src onto dst using op, with each source texel weighted by
// opacity (0..1). Used to fold an isolated group's offscreen layer back into
// its parent once the group itself is fully rendered (spec.md §4.2's
// opacity/blend application point: after the group's children are
// flattened, not per-child).
func Composite(dst, src *Pixmap, op blender.CompOp, opacity float64) {
	if opacity <= 0 {
		return
	}
	cover := opacityToCover(opacity)
	var o pixOrder
	for y := 0; y < src.h; y++ {
		srow := src.Row(y)
		for x := 0; x < src.w; x++ {
			i := x * 4
			a := srow[i+o.IdxA()]
			if a == 0 {
				continue
			}
			dst.BlendPixel(x, y, op, srow[i+o.IdxR()], srow[i+o.IdxG()], srow[i+o.IdxB()], a, cover)
		}
	}
}

func opacityToCover(opacity float64) byte {
	if opacity >= 1 {
		return 255
	}
	if opacity <= 0 {
		return 0
	}
	return byte(opacity*255 + 0.5)
}

// blendModeToCompOp maps an svgtree.BlendMode onto the composite blender's
// operator set; all twelve CSS mix-blend-mode values have a direct
// CompositeBlender counterpart (internal/pixfmt/blender/rgba_composite.go).
func blendModeToCompOp(mode svgtree.BlendMode) blender.CompOp {
	switch mode {
	case svgtree.BlendMultiply:
		return blender.CompOpMultiply
	case svgtree.BlendScreen:
		return blender.CompOpScreen
	case svgtree.BlendOverlay:
		return blender.CompOpOverlay
	case svgtree.BlendDarken:
		return blender.CompOpDarken
	case svgtree.BlendLighten:
		return blender.CompOpLighten
	case svgtree.BlendColorDodge:
		return blender.CompOpColorDodge
	case svgtree.BlendColorBurn:
		return blender.CompOpColorBurn
	case svgtree.BlendHardLight:
		return blender.CompOpHardLight
	case svgtree.BlendSoftLight:
		return blender.CompOpSoftLight
	case svgtree.BlendDifference:
		return blender.CompOpDifference
	case svgtree.BlendExclusion:
		return blender.CompOpExclusion
	default:
		return blender.CompOpSrcOver
	}
}
