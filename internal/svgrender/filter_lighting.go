package svgrender

import (
	"math"

	"github.com/lumenvec/svgraster/internal/basics"
	agimage "github.com/lumenvec/svgraster/internal/image"
	"github.com/lumenvec/svgraster/internal/svgtree"
)

// surfaceNormal estimates the surface normal at (x,y) from the alpha
// channel's gradient scaled by surfaceScale, using the standard Sobel-like
// 3x3 kernels from the SVG 1.1 feDiffuseLighting/feSpecularLighting spec
// appendix (the same finite-difference construction every filter-capable
// SVG renderer uses, since the spec defines the kernels explicitly rather
// than leaving the normal estimation implementation-defined).
func surfaceNormal(alpha *fimage, x, y int, surfaceScale float64) [3]float64 {
	a := func(dx, dy int) float64 {
		v := alpha.atEdge(x+dx, y+dy, svgtree.EdgeDuplicate)
		return v[3]
	}
	nx := -surfaceScale / 4 * ((a(1, -1) + 2*a(1, 0) + a(1, 1)) - (a(-1, -1) + 2*a(-1, 0) + a(-1, 1)))
	ny := -surfaceScale / 4 * ((a(-1, 1) + 2*a(0, 1) + a(1, 1)) - (a(-1, -1) + 2*a(0, -1) + a(1, -1)))
	n := [3]float64{nx, ny, 1}
	length := math.Sqrt(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])
	if length > 0 {
		n[0] /= length
		n[1] /= length
		n[2] /= length
	}
	return n
}

// lightVectorAt returns the unit vector from the surface point toward the
// light, plus a [0,1] attenuation factor (only feSpotLight's cone/focus
// attenuates).
func lightVectorAt(light svgtree.LightSource, x, y, z float64) ([3]float64, float64) {
	if !light.IsPoint {
		rad := func(deg float64) float64 { return deg * math.Pi / 180 }
		az, el := rad(light.Azimuth), rad(light.Elevation)
		return [3]float64{math.Cos(az) * math.Cos(el), math.Sin(az) * math.Cos(el), math.Sin(el)}, 1
	}

	lx, ly, lz := light.X-x, light.Y-y, light.Z-z
	length := math.Sqrt(lx*lx + ly*ly + lz*lz)
	if length == 0 {
		return [3]float64{0, 0, 1}, 1
	}
	l := [3]float64{lx / length, ly / length, lz / length}
	if !light.IsSpot {
		return l, 1
	}

	sx, sy, sz := light.PointsAtX-light.X, light.PointsAtY-light.Y, light.PointsAtZ-light.Z
	sLen := math.Sqrt(sx*sx + sy*sy + sz*sz)
	if sLen == 0 {
		return l, 1
	}
	s := [3]float64{sx / sLen, sy / sLen, sz / sLen}
	minusL := [3]float64{-l[0], -l[1], -l[2]}
	cosAngle := s[0]*minusL[0] + s[1]*minusL[1] + s[2]*minusL[2]
	if cosAngle <= 0 {
		return l, 0
	}
	if light.HasLimitingConeAngle {
		limit := math.Cos(light.LimitingConeAngle * math.Pi / 180)
		if cosAngle < limit {
			return l, 0
		}
	}
	exp := light.SpecularExponent
	if exp == 0 {
		exp = 1
	}
	return l, math.Pow(cosAngle, exp)
}

func diffuseLighting(alpha *fimage, p *svgtree.Primitive, scale float64) *fimage {
	out := newFImage(alpha.w, alpha.h)
	lr, lg, lb := float64(p.LightingColor.R)/255, float64(p.LightingColor.G)/255, float64(p.LightingColor.B)/255
	for y := 0; y < alpha.h; y++ {
		for x := 0; x < alpha.w; x++ {
			n := surfaceNormal(alpha, x, y, p.SurfaceScale)
			surf := alpha.at(x, y)
			z := p.SurfaceScale * surf[3]
			l, atten := lightVectorAt(p.Light, float64(x)/scale, float64(y)/scale, z)
			nDotL := clamp01(n[0]*l[0] + n[1]*l[1] + n[2]*l[2])
			k := p.DiffuseConstant * nDotL * atten
			out.set(x, y, [4]float64{clamp01(k * lr), clamp01(k * lg), clamp01(k * lb), 1})
		}
	}
	return out
}

func specularLighting(alpha *fimage, p *svgtree.Primitive, scale float64) *fimage {
	out := newFImage(alpha.w, alpha.h)
	lr, lg, lb := float64(p.LightingColor.R)/255, float64(p.LightingColor.G)/255, float64(p.LightingColor.B)/255
	exp := p.SpecularExponent
	if exp == 0 {
		exp = 1
	}
	for y := 0; y < alpha.h; y++ {
		for x := 0; x < alpha.w; x++ {
			n := surfaceNormal(alpha, x, y, p.SurfaceScale)
			surf := alpha.at(x, y)
			z := p.SurfaceScale * surf[3]
			l, atten := lightVectorAt(p.Light, float64(x)/scale, float64(y)/scale, z)
			h := [3]float64{l[0], l[1], l[2] + 1}
			hLen := math.Sqrt(h[0]*h[0] + h[1]*h[1] + h[2]*h[2])
			if hLen > 0 {
				h[0] /= hLen
				h[1] /= hLen
				h[2] /= hLen
			}
			nDotH := clamp01(n[0]*h[0] + n[1]*h[1] + n[2]*h[2])
			k := p.SpecularConstant * math.Pow(nDotH, exp) * atten
			r, g, b := clamp01(k*lr), clamp01(k*lg), clamp01(k*lb)
			a := math.Max(r, math.Max(g, b))
			out.set(x, y, [4]float64{r, g, b, a})
		}
	}
	return out
}

func channelValue(c [4]float64, sel svgtree.ChannelSelector) float64 {
	switch sel {
	case svgtree.ChannelR:
		return c[0]
	case svgtree.ChannelG:
		return c[1]
	case svgtree.ChannelB:
		return c[2]
	default:
		return c[3]
	}
}

// displacementMap implements feDisplacementMap: in2's selected channels at
// each pixel perturb where in1 is sampled from, scaled by p.Scale per
// spec.md §4.6's displacement formula.
func displacementMap(in1, in2 *fimage, p *svgtree.Primitive, deviceScale float64) *fimage {
	out := newFImage(in1.w, in1.h)
	scale := p.Scale * deviceScale
	for y := 0; y < in1.h; y++ {
		for x := 0; x < in1.w; x++ {
			m := in2.at(x, y)
			dx := scale * (channelValue(m, p.XChannel) - 0.5)
			dy := scale * (channelValue(m, p.YChannel) - 0.5)
			sx := int(math.Round(float64(x) + dx))
			sy := int(math.Round(float64(y) + dy))
			out.set(x, y, in1.at(sx, sy))
		}
	}
	return out
}

// tileImage repeats the content of p.Region (or, if unset, in's whole
// bounds) across the full working canvas, the feTile primitive.
func tileImage(in *fimage, p *svgtree.Primitive, ctm svgtree.Transform) *fimage {
	var x0, y0, tw, th int
	if p.Region != nil {
		r := transformRect(*p.Region, ctm)
		x0, y0 = int(math.Floor(r.X)), int(math.Floor(r.Y))
		tw, th = int(math.Ceil(r.W)), int(math.Ceil(r.H))
	} else {
		x0, y0, tw, th = 0, 0, in.w, in.h
	}
	if tw <= 0 || th <= 0 {
		return in
	}
	wrapX := agimage.NewWrapModeRepeat(basics.Int32u(tw))
	wrapY := agimage.NewWrapModeRepeat(basics.Int32u(th))
	out := newFImage(in.w, in.h)
	for y := 0; y < in.h; y++ {
		for x := 0; x < in.w; x++ {
			sx := int(wrapX.Call(x - x0))
			sy := int(wrapY.Call(y - y0))
			out.set(x, y, in.at(x0+sx, y0+sy))
		}
	}
	return out
}
