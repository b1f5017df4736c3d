package svgrender

import (
	"testing"

	"github.com/lumenvec/svgraster/internal/svgtree"
	"github.com/lumenvec/svgraster/internal/transform"
)

func TestTurbulenceIsDeterministicForFixedSeed(t *testing.T) {
	p := &svgtree.Primitive{
		BaseFreqX: 0.1, BaseFreqY: 0.1,
		NumOctaves: 2,
		Seed:       42,
	}
	a := renderTurbulence(p, 4, 4, transform.NewTransAffine())
	b := renderTurbulence(p, 4, 4, transform.NewTransAffine())
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			va, vb := a.at(x, y), b.at(x, y)
			if va != vb {
				t.Fatalf("turbulence not deterministic at (%d,%d): %v vs %v", x, y, va, vb)
			}
		}
	}
}

func TestTurbulenceDifferentSeedsDiffer(t *testing.T) {
	base := &svgtree.Primitive{BaseFreqX: 0.2, BaseFreqY: 0.2, NumOctaves: 2}
	p1 := *base
	p1.Seed = 1
	p2 := *base
	p2.Seed = 2

	a := renderTurbulence(&p1, 8, 8, transform.NewTransAffine())
	b := renderTurbulence(&p2, 8, 8, transform.NewTransAffine())

	same := true
	for y := 0; y < 8 && same; y++ {
		for x := 0; x < 8; x++ {
			if a.at(x, y) != b.at(x, y) {
				same = false
				break
			}
		}
	}
	if same {
		t.Error("different seeds produced identical turbulence fields")
	}
}

func TestTurbulenceOutputStaysInRange(t *testing.T) {
	p := &svgtree.Primitive{
		BaseFreqX: 0.3, BaseFreqY: 0.3,
		NumOctaves: 3,
		Fractal:    true,
		Seed:       7,
	}
	out := renderTurbulence(p, 6, 6, transform.NewTransAffine())
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			c := out.at(x, y)
			for ch, v := range c {
				if v < 0 || v > 1 {
					t.Fatalf("channel %d at (%d,%d) out of [0,1] range: %v", ch, x, y, v)
				}
			}
		}
	}
}
