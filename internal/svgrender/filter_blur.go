package svgrender

import (
	"math"

	"github.com/lumenvec/svgraster/internal/svgtree"
)

// premultiply/unpremultiply convert an fimage in place between straight and
// premultiplied alpha. feGaussianBlur and feConvolveMatrix (when not
// PreserveAlpha) operate on premultiplied values per the SVG filter spec, to
// avoid bleeding fully-transparent color data into the result.
func premultiply(f *fimage) {
	for i := 0; i+3 < len(f.pix); i += 4 {
		a := f.pix[i+3]
		f.pix[i] *= a
		f.pix[i+1] *= a
		f.pix[i+2] *= a
	}
}

func unpremultiply(f *fimage) {
	for i := 0; i+3 < len(f.pix); i += 4 {
		a := f.pix[i+3]
		if a > 0 {
			f.pix[i] = clamp01(f.pix[i] / a)
			f.pix[i+1] = clamp01(f.pix[i+1] / a)
			f.pix[i+2] = clamp01(f.pix[i+2] / a)
		}
	}
}

// boxSizesForStdDev ports the three-box-blur approximation to a true
// Gaussian blur from the SVG 1.1 spec's feGaussianBlur appendix (also used
// by resvg's rendering backends per SPEC_FULL.md): three passes of box
// blurs of width d (or d and d+1 mixed when d is even) closely approximate
// a Gaussian of the given standard deviation.
func boxSizesForStdDev(sigma float64) (d1, d2, d3 int) {
	if sigma <= 0 {
		return 0, 0, 0
	}
	d := int(math.Floor(sigma*3*math.Sqrt(2*math.Pi/4) + 0.5))
	if d < 1 {
		d = 1
	}
	if d%2 == 1 {
		return d, d, d
	}
	return d, d, d + 1
}

// boxBlur1D runs one box-blur pass of width size along one axis (horizontal
// when stride==1, vertical when stride==w) over a single channel plane.
func boxBlur1D(src []float64, dst []float64, n, size int) {
	if size <= 0 {
		copy(dst, src)
		return
	}
	radius := size / 2
	var sum float64
	for i := -radius; i <= size-radius-1; i++ {
		if i >= 0 && i < n {
			sum += src[i]
		}
	}
	for i := 0; i < n; i++ {
		dst[i] = sum / float64(size)
		add := i + size - radius
		remove := i - radius
		if add < n {
			sum += src[add]
		}
		if remove >= 0 && remove < n {
			sum -= src[remove]
		}
	}
}

func boxBlurPass(f *fimage, channel, size int, horizontal bool) {
	if size <= 1 {
		return
	}
	if horizontal {
		line := make([]float64, f.w)
		out := make([]float64, f.w)
		for y := 0; y < f.h; y++ {
			for x := 0; x < f.w; x++ {
				line[x] = f.pix[(y*f.w+x)*4+channel]
			}
			boxBlur1D(line, out, f.w, size)
			for x := 0; x < f.w; x++ {
				f.pix[(y*f.w+x)*4+channel] = out[x]
			}
		}
	} else {
		col := make([]float64, f.h)
		out := make([]float64, f.h)
		for x := 0; x < f.w; x++ {
			for y := 0; y < f.h; y++ {
				col[y] = f.pix[(y*f.w+x)*4+channel]
			}
			boxBlur1D(col, out, f.h, size)
			for y := 0; y < f.h; y++ {
				f.pix[(y*f.w+x)*4+channel] = out[y]
			}
		}
	}
}

func gaussianBlur(in *fimage, sigmaX, sigmaY float64, _ svgtree.EdgeMode) *fimage {
	out := newFImage(in.w, in.h)
	copy(out.pix, in.pix)
	premultiply(out)

	dx1, dx2, dx3 := boxSizesForStdDev(sigmaX)
	dy1, dy2, dy3 := boxSizesForStdDev(sigmaY)
	for ch := 0; ch < 4; ch++ {
		boxBlurPass(out, ch, dx1, true)
		boxBlurPass(out, ch, dx2, true)
		boxBlurPass(out, ch, dx3, true)
		boxBlurPass(out, ch, dy1, false)
		boxBlurPass(out, ch, dy2, false)
		boxBlurPass(out, ch, dy3, false)
	}
	unpremultiply(out)
	return out
}

// morphology applies feMorphology's erode/dilate by taking the per-channel
// min/max over a rectangular radiusX x radiusY neighborhood, separable into
// a horizontal then vertical sliding-window pass (SVG permits the
// rectangular approximation of the nominally elliptical neighborhood).
func morphology(in *fimage, op svgtree.MorphologyOperator, radiusX, radiusY float64) *fimage {
	rx, ry := int(radiusX), int(radiusY)
	if rx < 0 {
		rx = 0
	}
	if ry < 0 {
		ry = 0
	}
	pick := func(a, b float64) float64 {
		if op == svgtree.MorphologyDilate {
			return math.Max(a, b)
		}
		return math.Min(a, b)
	}

	tmp := newFImage(in.w, in.h)
	for y := 0; y < in.h; y++ {
		for x := 0; x < in.w; x++ {
			acc := in.at(x, y)
			for dx := -rx; dx <= rx; dx++ {
				if dx == 0 {
					continue
				}
				v := in.at(x+dx, y)
				for c := 0; c < 4; c++ {
					acc[c] = pick(acc[c], v[c])
				}
			}
			tmp.set(x, y, acc)
		}
	}

	out := newFImage(in.w, in.h)
	for y := 0; y < in.h; y++ {
		for x := 0; x < in.w; x++ {
			acc := tmp.at(x, y)
			for dy := -ry; dy <= ry; dy++ {
				if dy == 0 {
					continue
				}
				v := tmp.at(x, y+dy)
				for c := 0; c < 4; c++ {
					acc[c] = pick(acc[c], v[c])
				}
			}
			out.set(x, y, acc)
		}
	}
	return out
}

// convolveMatrix applies feConvolveMatrix's orderX x orderY kernel, matching
// targetX/targetY, divisor, bias, preserveAlpha and edgeMode per spec.md
// §4.6.
func convolveMatrix(in *fimage, p *svgtree.Primitive) *fimage {
	ox, oy := p.OrderX, p.OrderY
	if ox <= 0 || oy <= 0 || len(p.KernelMatrix) < ox*oy {
		return in
	}
	divisor := p.Divisor
	if divisor == 0 {
		sum := 0.0
		for _, v := range p.KernelMatrix {
			sum += v
		}
		if sum != 0 {
			divisor = sum
		} else {
			divisor = 1
		}
	}
	tx, ty := p.TargetX, p.TargetY

	src := newFImage(in.w, in.h)
	copy(src.pix, in.pix)
	if !p.PreserveAlpha {
		premultiply(src)
	}

	out := newFImage(in.w, in.h)
	for y := 0; y < in.h; y++ {
		for x := 0; x < in.w; x++ {
			var acc [3]float64
			var accA float64
			for ky := 0; ky < oy; ky++ {
				for kx := 0; kx < ox; kx++ {
					kval := p.KernelMatrix[(oy-ky-1)*ox+(ox-kx-1)]
					sx := x - tx + kx
					sy := y - ty + ky
					c := src.atEdge(sx, sy, p.EdgeModeConv)
					acc[0] += c[0] * kval
					acc[1] += c[1] * kval
					acc[2] += c[2] * kval
					accA += c[3] * kval
				}
			}
			var o [4]float64
			if p.PreserveAlpha {
				center := src.at(x, y)
				o[0] = clamp01(acc[0]/divisor + p.Bias)
				o[1] = clamp01(acc[1]/divisor + p.Bias)
				o[2] = clamp01(acc[2]/divisor + p.Bias)
				o[3] = center[3]
			} else {
				o[3] = clamp01(accA/divisor + p.Bias)
				if o[3] > 0 {
					o[0] = clamp01((acc[0]/divisor + p.Bias*o[3]) / o[3])
					o[1] = clamp01((acc[1]/divisor + p.Bias*o[3]) / o[3])
					o[2] = clamp01((acc[2]/divisor + p.Bias*o[3]) / o[3])
				}
			}
			out.set(x, y, o)
		}
	}
	return out
}
