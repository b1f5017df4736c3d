package svgraster

import (
	"errors"

	"github.com/lumenvec/svgraster/internal/svgrender"
	"github.com/lumenvec/svgraster/internal/svgtree"
	"github.com/lumenvec/svgraster/internal/transform"
)

// Tree is an already-resolved SVG scene graph, ready to render. Construct one
// with NewTree around a root internal/svgtree.Node built by a parser
// collaborator outside this module's scope.
type Tree struct {
	root *svgtree.Node
}

// NewTree wraps a pre-built, acyclic internal/svgtree.Node tree. root must be
// a KindRoot node; NewTree does not validate acyclicity or reference
// resolution, both of which spec.md §3 assigns to the parser stage.
func NewTree(root *svgtree.Node) (*Tree, error) {
	if root == nil {
		return nil, errors.New("svgraster: nil root node")
	}
	if root.Kind != svgtree.KindRoot {
		return nil, errors.New("svgraster: root node must have Kind svgtree.KindRoot")
	}
	return &Tree{root: root}, nil
}

// Root returns the tree's root node for callers that need direct access to
// the internal/svgtree data model (e.g. to build a parser on top of it).
func (t *Tree) Root() *svgtree.Node { return t.root }

// NodeByID finds the first node in document order whose ID matches id.
// Reports ok=false if no node carries that id, matching spec.md §6's
// Option<Node> query shape.
func (t *Tree) NodeByID(id string) (node *svgtree.Node, ok bool) {
	var walk func(n *svgtree.Node) *svgtree.Node
	walk = func(n *svgtree.Node) *svgtree.Node {
		if n.ID == id {
			return n
		}
		for _, c := range n.Children {
			if found := walk(c); found != nil {
				return found
			}
		}
		return nil
	}
	found := walk(t.root)
	return found, found != nil
}

// CalculateBBox computes n's axis-aligned bounding box in the tree's root
// coordinate space, or ok=false if n (and everything under it) has no
// geometry — an empty group, or a group containing only other empty groups.
func CalculateBBox(n *svgtree.Node) (bbox svgtree.Rect, ok bool) {
	return calculateBBox(n, transform.NewTransAffine())
}

func calculateBBox(n *svgtree.Node, ctm svgtree.Transform) (svgtree.Rect, bool) {
	local := n.Transform
	if local == nil {
		local = transform.NewTransAffine()
	}
	combined := *local
	combined.Multiply(ctm)

	var result svgtree.Rect
	has := false
	merge := func(r svgtree.Rect) {
		if !has {
			result, has = r, true
			return
		}
		x2, y2 := result.X2(), result.Y2()
		if r.X < result.X {
			result.X = r.X
		}
		if r.Y < result.Y {
			result.Y = r.Y
		}
		if r.X2() > x2 {
			x2 = r.X2()
		}
		if r.Y2() > y2 {
			y2 = r.Y2()
		}
		result.W, result.H = x2-result.X, y2-result.Y
	}

	if n.Path != nil {
		if b, ok := pathLocalBounds(n.Path); ok {
			merge(transformRectBy(b, &combined))
		}
	}
	if n.Image != nil {
		merge(transformRectBy(n.Image.ViewBox, &combined))
	}
	for _, c := range n.Children {
		if b, ok := calculateBBox(c, &combined); ok {
			merge(b)
		}
	}
	return result, has
}

func pathLocalBounds(p *svgtree.PathData) (svgtree.Rect, bool) {
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

func transformRectBy(r svgtree.Rect, xf svgtree.Transform) svgtree.Rect {
	xs := [4]float64{r.X, r.X2(), r.X, r.X2()}
	ys := [4]float64{r.Y, r.Y, r.Y2(), r.Y2()}
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

// Render rasterizes t into dst, applying xf as the root-to-device transform
// before the tree's own node transforms. dst must already be sized for the
// intended output; Render does not resize it.
func (t *Tree) Render(dst *svgrender.Pixmap, xf svgtree.Transform) {
	t.RenderWithOptions(dst, xf, nil)
}

// RenderWithOptions is Render plus an explicit RenderOptions (dpi, rendering
// hints, warning sink) instead of the implicit defaults.
func (t *Tree) RenderWithOptions(dst *svgrender.Pixmap, xf svgtree.Transform, opts *RenderOptions) {
	node := t.root
	if xf != nil {
		root := *t.root
		var combined transform.TransAffine
		if t.root.Transform != nil {
			combined = *t.root.Transform
		} else {
			combined = *transform.NewTransAffine()
		}
		combined.Multiply(xf)
		root.Transform = &combined
		node = &root
	}
	r := svgrender.NewRenderer(dst.Width(), dst.Height(), opts)
	r.Render(dst, node)
}
