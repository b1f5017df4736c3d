package svgtree

// SpreadMethod controls how a gradient paints beyond its defined [0,1] range.
type SpreadMethod uint8

const (
	SpreadPad SpreadMethod = iota
	SpreadReflect
	SpreadRepeat
)

// Units selects the coordinate system a gradient/pattern/filter/mask region
// is defined in.
type Units uint8

const (
	// UserSpaceOnUse: coordinates are in the user space active where the
	// referencing element is used.
	UserSpaceOnUse Units = iota
	// ObjectBoundingBox: coordinates are fractions of the referencing
	// element's bounding box (the common default for gradients).
	ObjectBoundingBox
)

// Stop is one gradient color stop.
type Stop struct {
	Offset float64 // 0..1, clamped and forced non-decreasing by the parser collaborator
	Color  Color
}

// LinearGradient is an SVG <linearGradient>.
type LinearGradient struct {
	X1, Y1, X2, Y2 float64
	Stops          []Stop
	Spread         SpreadMethod
	Units          Units
	Transform      Transform // gradientTransform
}

// RadialGradient is an SVG <radialGradient>, including the focal-point form.
type RadialGradient struct {
	Cx, Cy, R    float64
	Fx, Fy, Fr   float64 // focal point/radius; Fx==Cx && Fy==Cy && Fr==0 for the simple case
	Stops        []Stop
	Spread       SpreadMethod
	Units        Units
	Transform    Transform
}

// Pattern is an SVG <pattern>: a tile of nodes replayed across the fill.
type Pattern struct {
	X, Y, W, H   float64
	Units        Units
	ContentUnits Units // patternContentUnits
	Transform    Transform
	ViewBox      *Rect // optional; overrides W/H scaling when set
	Content      []Node
}

// PaintKind is the closed set of paint-server kinds a Paint value can carry.
type PaintKind uint8

const (
	PaintNone PaintKind = iota
	PaintColor
	PaintLinearGradient
	PaintRadialGradient
	PaintPattern
)

// Paint is a tagged union over the paint servers SVG fill/stroke can
// reference, matching spec.md's closed-variant convention for the
// rendering tree (internal/rasterizer/cell_style_aa.go and
// internal/span/span_gradient.go use the same tagged-dispatch shape rather
// than an interface per paint kind, since the set is closed and fixed).
type Paint struct {
	Kind    PaintKind
	Color   Color // PaintColor
	Linear  *LinearGradient
	Radial  *RadialGradient
	Pattern *Pattern
	Opacity float64 // fill-opacity/stroke-opacity, 0..1, folded in at paint-resolution time
}

// SolidPaint is a convenience constructor for a plain color fill/stroke.
func SolidPaint(c Color, opacity float64) Paint {
	return Paint{Kind: PaintColor, Color: c, Opacity: opacity}
}
