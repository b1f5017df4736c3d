package svgrender

import (
	"github.com/lumenvec/svgraster/internal/basics"
	"github.com/lumenvec/svgraster/internal/pixfmt/blender"
	"github.com/lumenvec/svgraster/internal/svgtree"
)

// luminanceCoefficients are the ITU-R BT.709 weights SVG's mask-type
// "luminance" reduction uses (the same constants resvg's clip_and_mask.rs
// applies, per SPEC_FULL.md's supplemented mask section).
const (
	lumR = 0.2125
	lumG = 0.7154
	lumB = 0.0721
)

// ReduceMaskToAlpha collapses a rendered mask layer (premultiplied RGBA) to
// a single alpha channel in place, following the mask's Type: Luminance
// applies the BT.709 weights to the premultiplied channels directly (which,
// because they already carry the mask content's own alpha, yields exactly
// alpha*luminance — the value SVG's masking model wants), Alpha keeps the
// rendered alpha channel unchanged. Color channels are zeroed since only
// DstIn's use of the alpha channel matters afterward.
func ReduceMaskToAlpha(layer *Pixmap, maskType svgtree.MaskType) {
	var o pixOrder
	for y := 0; y < layer.Height(); y++ {
		row := layer.Row(y)
		for x := 0; x < layer.Width(); x++ {
			i := x * 4
			var newA basics.Int8u
			if maskType == svgtree.MaskAlpha {
				newA = row[i+o.IdxA()]
			} else {
				r, g, b := float64(row[i+o.IdxR()]), float64(row[i+o.IdxG()]), float64(row[i+o.IdxB()])
				newA = basics.Int8u(lumR*r + lumG*g + lumB*b + 0.5)
			}
			row[i+o.IdxR()] = 0
			row[i+o.IdxG()] = 0
			row[i+o.IdxB()] = 0
			row[i+o.IdxA()] = newA
		}
	}
}

// ApplyMask multiplies target's alpha (and, since target is premultiplied,
// its color channels along with it) by maskLayer's alpha channel. maskLayer
// must already have been reduced with ReduceMaskToAlpha. This is exactly
// Porter-Duff Dst-In with maskLayer as the source, so it reuses
// CompositeBlender rather than a bespoke multiply loop.
func ApplyMask(target, maskLayer *Pixmap) {
	Composite(target, maskLayer, blender.CompOpDstIn, 1)
}

// RasterizeClipPath fills every shape in clip into a transparent w x h
// pixmap using solid white, unioning shapes by max coverage the way nested
// <clipPath> shapes union per SVG (spec.md §4.4), then intersects the
// result with clip.Nested if present. The returned pixmap's alpha channel is
// the clip coverage, ready for ApplyMask/ReduceMaskToAlpha's Dst-In.
func RasterizeClipPath(rz *Rasterizer, clip *svgtree.ClipPath, ctm svgtree.Transform, w, h int) (*Pixmap, error) {
	px, err := NewPixmap(w, h)
	if err != nil {
		return nil, err
	}
	combined := combineTransform(ctm, clip.Transform)
	for _, shape := range clip.Shapes {
		if shape.Path == nil {
			continue
		}
		shapeXf := combineTransform(combined, shape.Transform)
		rz.FillPath(px, shape.Path.VertexSource(), shapeXf, shape.Rule, blender.CompOpPlus, 255, 255, 255, 255)
	}
	if clip.Nested != nil {
		nested, err := RasterizeClipPath(rz, clip.Nested, ctm, w, h)
		if err != nil {
			return nil, err
		}
		Composite(px, nested, blender.CompOpDstIn, 1)
	}
	return px, nil
}
