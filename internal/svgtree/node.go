package svgtree

// LineCap is the SVG stroke-linecap value.
type LineCap uint8

const (
	CapButt LineCap = iota
	CapRound
	CapSquare
)

// LineJoin is the SVG stroke-linejoin value.
type LineJoin uint8

const (
	JoinMiter LineJoin = iota
	JoinRound
	JoinBevel
)

// FillRule is the SVG fill-rule / clip-rule value.
type FillRule uint8

const (
	FillNonZero FillRule = iota
	FillEvenOdd
)

// Stroke carries every stroke-* presentation attribute a StrokePath node
// needs to drive internal/conv's ConvStroke/ConvDash converters.
type Stroke struct {
	Paint      Paint
	Width      float64
	Cap        LineCap
	Join       LineJoin
	MiterLimit float64
	DashArray  []float64
	DashOffset float64
}

// BlendMode is the SVG/Compositing-Level-1 mix-blend-mode value, mapped
// directly onto internal/pixfmt/blender.CompOp by the layer stack.
type BlendMode uint8

const (
	BlendNormal BlendMode = iota
	BlendMultiply
	BlendScreen
	BlendOverlay
	BlendDarken
	BlendLighten
	BlendColorDodge
	BlendColorBurn
	BlendHardLight
	BlendSoftLight
	BlendDifference
	BlendExclusion
)

// Kind is the closed set of node variants in the rendering tree (spec.md
// §3). A Node holds exactly one of the kind-specific fields below, never an
// interface per kind — the set is closed and fixed, so a tagged struct
// following internal/rasterizer/cell_style_aa.go's dispatch convention is
// the idiomatic shape, not virtual dispatch (spec.md §9).
type Kind uint8

const (
	KindRoot Kind = iota
	KindGroup
	KindFillPath
	KindStrokePath
	KindImage
)

// Node is one element of the rendering tree.
type Node struct {
	Kind Kind

	// Common to every kind.
	ID        string    // element id, for Tree.NodeByID/--export-id/--query-all; "" if unset
	Transform Transform // local-to-parent affine
	Opacity   float64   // group/layer opacity, 0..1
	Blend     BlendMode
	ClipPath  *ClipPath
	Mask      *Mask
	Filter    *Filter
	Isolate   bool // force an offscreen layer even at opacity==1 (filter/mask/blend != Normal already imply this)

	// KindGroup / KindRoot
	Children []*Node

	// KindFillPath / KindStrokePath (a path may be listed once with both
	// set: SVG lets one element both fill and stroke)
	Path        *PathData
	Rule        FillRule // fill-rule, KindFillPath only
	Fill        *Paint   // nil if not filled
	StrokeStyle *Stroke  // nil if not stroked

	// KindImage
	Image *ImageRef
}

// ImageRef is a decoded raster payload placed by an <image> element. Decode
// is the out-of-scope parser collaborator's job; the renderer only blits
// already-decoded pixels into the viewport-fit rectangle.
type ImageRef struct {
	Pixels        []byte // straight-alpha RGBA8, row-major, Width*Height*4 bytes
	Width, Height int
	ViewBox       Rect // destination rect in the image element's local space
	// PreserveAspectMeet selects AspectRatioMeet over Slice when both
	// dimensions don't match; PreserveAspectSlice requests stretch-free
	// cropping instead. Plain stretch (neither) uses the teacher's
	// AspectRatioStretch directly.
	PreserveAspectMeet  bool
	PreserveAspectSlice bool
	AlignX, AlignY      float64
	SmoothInterpolation bool // image-rendering != "pixelated"/"crisp-edges"
}

// NewGroup constructs an empty group node.
func NewGroup(t Transform) *Node {
	return &Node{Kind: KindGroup, Transform: t, Opacity: 1}
}

// NewRoot constructs the tree's root node.
func NewRoot(t Transform) *Node {
	return &Node{Kind: KindRoot, Transform: t, Opacity: 1}
}

// AddChild appends a child to a group/root node.
func (n *Node) AddChild(c *Node) {
	n.Children = append(n.Children, c)
}

// NeedsLayer reports whether this node must be rendered to an offscreen
// layer rather than composited directly onto its parent's surface — any of
// opacity<1, a non-Normal blend mode, a clip-path, a mask, or a filter force
// isolation per spec.md §4.2.
func (n *Node) NeedsLayer() bool {
	return n.Isolate || n.Opacity < 1 || n.Blend != BlendNormal || n.ClipPath != nil || n.Mask != nil || n.Filter != nil
}
