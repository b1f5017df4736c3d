package svgrender

import (
	"math"

	"github.com/lumenvec/svgraster/internal/svgtree"
	"github.com/lumenvec/svgraster/internal/transform"
)

// Perlin turbulence noise, ported from original_source/svgfilters/src/
// turbulence.rs (the resvg project's Rust reimplementation of the SVG 1.1
// feTurbulence reference algorithm) into the teacher's Go idiom. Every
// constant name and the random-number generator's magic constants are kept
// bit-for-bit so the lattice this produces matches what other SVG
// implementations render for the same seed.
const (
	turbRandM   = 2147483647
	turbRandA   = 16807
	turbRandQ   = 127773
	turbRandR   = 2836
	turbBSize   = 0x100
	turbBLen    = turbBSize + turbBSize + 2
	turbBM      = 0xff
	turbPerlinN = 0x1000
)

type turbulenceTables struct {
	latticeSelector [turbBLen]int
	gradient        [4][turbBLen][2]float64
}

func turbRandom(seed int32) int32 {
	result := turbRandA*(seed%turbRandQ) - turbRandR*(seed/turbRandQ)
	if result <= 0 {
		result += turbRandM
	}
	return result
}

func newTurbulenceTables(seed int64) *turbulenceTables {
	s := int32(seed)
	if s <= 0 {
		s = -s%(turbRandM-1) + 1
	}
	if s > turbRandM-1 {
		s = turbRandM - 1
	}

	t := &turbulenceTables{}
	for k := 0; k < 4; k++ {
		for i := 0; i < turbBSize; i++ {
			t.latticeSelector[i] = i
			for j := 0; j < 2; j++ {
				s = turbRandom(s)
				t.gradient[k][i][j] = float64((s%(turbBSize+turbBSize))-turbBSize) / turbBSize
			}
			g := &t.gradient[k][i]
			length := math.Sqrt(g[0]*g[0] + g[1]*g[1])
			if length != 0 {
				g[0] /= length
				g[1] /= length
			}
		}
	}

	for i := turbBSize - 1; i >= 1; i-- {
		k := t.latticeSelector[i]
		s = turbRandom(s)
		j := int(s % turbBSize)
		t.latticeSelector[i] = t.latticeSelector[j]
		t.latticeSelector[j] = k
	}

	for i := 0; i < turbBSize+2; i++ {
		t.latticeSelector[turbBSize+i] = t.latticeSelector[i]
		for k := 0; k < 4; k++ {
			t.gradient[k][turbBSize+i] = t.gradient[k][i]
		}
	}
	return t
}

func sCurve(t float64) float64 { return t * t * (3 - 2*t) }
func turbLerp(t, a, b float64) float64 { return a + t*(b-a) }

type stitchInfo struct{ width, height, wrapX, wrapY int }

func (t *turbulenceTables) noise2(channel int, x, y float64, stitch *stitchInfo) float64 {
	tx := x + turbPerlinN
	bx0 := int(tx)
	bx1 := bx0 + 1
	rx0 := tx - math.Floor(tx)
	rx1 := rx0 - 1

	ty := y + turbPerlinN
	by0 := int(ty)
	by1 := by0 + 1
	ry0 := ty - math.Floor(ty)
	ry1 := ry0 - 1

	if stitch != nil {
		if bx0 >= stitch.wrapX {
			bx0 -= stitch.width
		}
		if bx1 >= stitch.wrapX {
			bx1 -= stitch.width
		}
		if by0 >= stitch.wrapY {
			by0 -= stitch.height
		}
		if by1 >= stitch.wrapY {
			by1 -= stitch.height
		}
	}

	bx0 &= turbBM
	bx1 &= turbBM
	by0 &= turbBM
	by1 &= turbBM

	i := t.latticeSelector[bx0]
	j := t.latticeSelector[bx1]
	b00 := t.latticeSelector[i+by0]
	b10 := t.latticeSelector[j+by0]
	b01 := t.latticeSelector[i+by1]
	b11 := t.latticeSelector[j+by1]

	sx := sCurve(rx0)
	sy := sCurve(ry0)

	q := t.gradient[channel][b00]
	u := rx0*q[0] + ry0*q[1]
	q = t.gradient[channel][b10]
	v := rx1*q[0] + ry0*q[1]
	a := turbLerp(sx, u, v)

	q = t.gradient[channel][b01]
	u = rx0*q[0] + ry1*q[1]
	q = t.gradient[channel][b11]
	v = rx1*q[0] + ry1*q[1]
	b := turbLerp(sx, u, v)

	return turbLerp(sy, a, b)
}

func (t *turbulenceTables) turbulence(channel int, x, y, tileX, tileY, tileW, tileH, baseFreqX, baseFreqY float64, numOctaves int, fractalSum, doStitching bool) float64 {
	var stitch *stitchInfo
	if doStitching {
		if baseFreqX != 0 {
			loFreq := math.Floor(tileW*baseFreqX) / tileW
			hiFreq := math.Ceil(tileW*baseFreqX) / tileW
			if baseFreqX/loFreq < hiFreq/baseFreqX {
				baseFreqX = loFreq
			} else {
				baseFreqX = hiFreq
			}
		}
		if baseFreqY != 0 {
			loFreq := math.Floor(tileH*baseFreqY) / tileH
			hiFreq := math.Ceil(tileH*baseFreqY) / tileH
			if baseFreqY/loFreq < hiFreq/baseFreqY {
				baseFreqY = loFreq
			} else {
				baseFreqY = hiFreq
			}
		}
		width := int(tileW*baseFreqX + 0.5)
		height := int(tileH*baseFreqY + 0.5)
		stitch = &stitchInfo{
			width:  width,
			height: height,
			wrapX:  int(tileX*baseFreqX) + turbPerlinN + width,
			wrapY:  int(tileY*baseFreqY) + turbPerlinN + height,
		}
	}

	sum := 0.0
	x *= baseFreqX
	y *= baseFreqY
	ratio := 1.0
	for o := 0; o < numOctaves; o++ {
		n := t.noise2(channel, x, y, stitch)
		if fractalSum {
			sum += n / ratio
		} else {
			sum += math.Abs(n) / ratio
		}
		x *= 2
		y *= 2
		ratio *= 2
		if stitch != nil {
			stitch.width *= 2
			stitch.wrapX = 2*stitch.wrapX - turbPerlinN
			stitch.height *= 2
			stitch.wrapY = 2*stitch.wrapY - turbPerlinN
		}
	}
	return sum
}

// renderTurbulence evaluates an feTurbulence primitive into a fresh straight-
// alpha fimage the size of the working canvas. (x,y) device pixels are
// converted to filter user-space via invCTM before sampling, matching the
// reference algorithm's expectation of user-space coordinates.
func renderTurbulence(p *svgtree.Primitive, w, h int, invCTM *transform.TransAffine) *fimage {
	tables := newTurbulenceTables(p.Seed)
	out := newFImage(w, h)
	numOctaves := p.NumOctaves
	if numOctaves <= 0 {
		numOctaves = 1
	}
	tileX, tileY := 0.0, 0.0
	tileW, tileH := float64(w), float64(h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			ux, uy := float64(x)+0.5, float64(y)+0.5
			invCTM.Transform(&ux, &uy)
			var px [4]float64
			for ch := 0; ch < 4; ch++ {
				n := tables.turbulence(ch, ux, uy, tileX, tileY, tileW, tileH, p.BaseFreqX, p.BaseFreqY, numOctaves, p.Fractal, p.Stitch)
				if p.Fractal {
					n = (n + 1) / 2
				}
				if n < 0 {
					n = 0
				} else if n > 1 {
					n = 1
				}
				px[ch] = n
			}
			out.set(x, y, px)
		}
	}
	return out
}
