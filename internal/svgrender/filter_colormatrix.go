package svgrender

import (
	"math"

	"github.com/lumenvec/svgraster/internal/svgtree"
)

// colorMatrix5x4 returns the effective 5x4 row-major matrix for p, resolving
// Saturate/HueRotate/LuminanceToAlpha to their explicit-matrix equivalents
// per the SVG 1.1 feColorMatrix spec appendix.
func colorMatrix5x4(p *svgtree.Primitive) [20]float64 {
	switch p.MatrixType {
	case svgtree.MatrixSaturate:
		s := 1.0
		if len(p.MatrixValues) > 0 {
			s = p.MatrixValues[0]
		}
		return [20]float64{
			0.213 + 0.787*s, 0.715 - 0.715*s, 0.072 - 0.072*s, 0, 0,
			0.213 - 0.213*s, 0.715 + 0.285*s, 0.072 - 0.072*s, 0, 0,
			0.213 - 0.213*s, 0.715 - 0.715*s, 0.072 + 0.928*s, 0, 0,
			0, 0, 0, 1, 0,
		}
	case svgtree.MatrixHueRotate:
		deg := 0.0
		if len(p.MatrixValues) > 0 {
			deg = p.MatrixValues[0]
		}
		rad := deg * math.Pi / 180
		c, s := math.Cos(rad), math.Sin(rad)
		return [20]float64{
			0.213 + c*0.787 - s*0.213, 0.715 - c*0.715 - s*0.715, 0.072 - c*0.072 + s*0.928, 0, 0,
			0.213 - c*0.213 + s*0.143, 0.715 + c*0.285 + s*0.140, 0.072 - c*0.072 - s*0.283, 0, 0,
			0.213 - c*0.213 - s*0.787, 0.715 - c*0.715 + s*0.715, 0.072 + c*0.928 + s*0.072, 0, 0,
			0, 0, 0, 1, 0,
		}
	case svgtree.MatrixLuminanceToAlpha:
		return [20]float64{
			0, 0, 0, 0, 0,
			0, 0, 0, 0, 0,
			0, 0, 0, 0, 0,
			lumR, lumG, lumB, 0, 0,
		}
	default: // MatrixMatrix
		var m [20]float64
		copy(m[:], p.MatrixValues)
		return m
	}
}

func applyColorMatrix(in *fimage, p *svgtree.Primitive) *fimage {
	m := colorMatrix5x4(p)
	out := newFImage(in.w, in.h)
	for y := 0; y < in.h; y++ {
		for x := 0; x < in.w; x++ {
			c := in.at(x, y)
			var o [4]float64
			for row := 0; row < 4; row++ {
				base := row * 5
				o[row] = m[base]*c[0] + m[base+1]*c[1] + m[base+2]*c[2] + m[base+3]*c[3] + m[base+4]
				o[row] = clamp01(o[row])
			}
			out.set(x, y, o)
		}
	}
	return out
}

func transferChannel(v float64, f svgtree.ComponentTransferFunc) float64 {
	switch f.Type {
	case svgtree.TransferTable:
		n := len(f.TableValues)
		if n == 0 {
			return v
		}
		if n == 1 {
			return f.TableValues[0]
		}
		k := int(v * float64(n-1))
		if k >= n-1 {
			return f.TableValues[n-1]
		}
		frac := v*float64(n-1) - float64(k)
		return f.TableValues[k] + frac*(f.TableValues[k+1]-f.TableValues[k])
	case svgtree.TransferDiscrete:
		n := len(f.TableValues)
		if n == 0 {
			return v
		}
		k := int(v * float64(n))
		if k >= n {
			k = n - 1
		}
		return f.TableValues[k]
	case svgtree.TransferLinear:
		return f.Slope*v + f.Intercept
	case svgtree.TransferGamma:
		return f.Amplitude*math.Pow(v, f.Exponent) + f.Offset
	default: // TransferIdentity
		return v
	}
}

func applyComponentTransfer(in *fimage, p *svgtree.Primitive) *fimage {
	out := newFImage(in.w, in.h)
	funcs := [4]svgtree.ComponentTransferFunc{p.FuncR, p.FuncG, p.FuncB, p.FuncA}
	for y := 0; y < in.h; y++ {
		for x := 0; x < in.w; x++ {
			c := in.at(x, y)
			var o [4]float64
			for ch := 0; ch < 4; ch++ {
				o[ch] = clamp01(transferChannel(c[ch], funcs[ch]))
			}
			out.set(x, y, o)
		}
	}
	return out
}
