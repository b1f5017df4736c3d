package svgtree

import (
	"github.com/lumenvec/svgraster/internal/basics"
)

// SegmentKind is the closed set of absolute path segment kinds this tree
// stores. The out-of-scope parser collaborator is responsible for flattening
// relative commands, shorthand curves, and arcs into this set.
type SegmentKind uint8

const (
	MoveTo SegmentKind = iota
	LineTo
	CurveTo // cubic Bezier; (X1,Y1) and (X2,Y2) are the control points
	ClosePath
)

// Segment is one absolute path command.
type Segment struct {
	Kind           SegmentKind
	X, Y           float64 // endpoint (unused for ClosePath)
	X1, Y1, X2, Y2 float64 // control points (CurveTo only)
}

// PathData is a flattened, absolute-only path: the vertex source every fill
// and stroke in the rendering tree is built from. It implements the
// teacher's conv.VertexSource (Rewind/Vertex) directly, so it drops straight
// into conv.ConvCurve -> conv.ConvStroke/ConvDash -> rasterizer.RasterizerScanlineAA,
// the same pipeline internal/agg2d/rendering.go already drives — see
// NewConvCurve/NewConvTransform call sites in internal/svgrender/raster.go.
type PathData struct {
	Segments []Segment

	cursor   int
	subStart int // index of the MoveTo that began the current subpath, for curve endpoints after a stop/rewind
}

// MoveTo appends an absolute move.
func (p *PathData) MoveTo(x, y float64) {
	p.subStart = len(p.Segments)
	p.Segments = append(p.Segments, Segment{Kind: MoveTo, X: x, Y: y})
}

// LineTo appends an absolute line.
func (p *PathData) LineTo(x, y float64) {
	p.Segments = append(p.Segments, Segment{Kind: LineTo, X: x, Y: y})
}

// CubicTo appends an absolute cubic Bezier curve.
func (p *PathData) CubicTo(x1, y1, x2, y2, x, y float64) {
	p.Segments = append(p.Segments, Segment{Kind: CurveTo, X1: x1, Y1: y1, X2: x2, Y2: y2, X: x, Y: y})
}

// Close appends a close-path command.
func (p *PathData) Close() {
	p.Segments = append(p.Segments, Segment{Kind: ClosePath})
}

// Empty reports whether the path has no segments.
func (p *PathData) Empty() bool { return len(p.Segments) == 0 }

// curveStage tracks mid-emission of a CurveTo segment's three-vertex
// protocol (control1, control2, endpoint), since ConvCurve pulls the second
// and third vertex with their own Vertex() calls once it sees PathCmdCurve4.
type curveState struct {
	active bool
	stage  int // 0=ctrl1 already returned, 1=ctrl2 pending, 2=endpoint pending
	x2, y2 float64
	x, y   float64
}

// vsCursor is the mutable per-traversal state conv.VertexSource's Rewind
// contract expects PathData to reset; kept out of PathData itself so one
// PathData can be walked by several converters concurrently without races
// (each gets its own cursor via NewVertexSource).
type vsCursor struct {
	data   *PathData
	i      int
	curve  curveState
	lastX  float64
	lastY  float64
}

// VertexSource returns a fresh, independent cursor over p usable as a
// conv.VertexSource / rasterizer.VertexSource.
func (p *PathData) VertexSource() *vsCursor {
	return &vsCursor{data: p}
}

// Rewind resets the cursor to the start of the path. pathID is unused: this
// tree never stores multiple named subpaths per PathData.
func (c *vsCursor) Rewind(pathID uint) {
	c.i = 0
	c.curve = curveState{}
	c.lastX, c.lastY = 0, 0
}

// Vertex returns the next vertex in AGG's vertex-source protocol: a single
// PathCmdCurve4 vertex is followed by two more Vertex() calls (control2,
// then endpoint) before the stream resumes at the next segment.
func (c *vsCursor) Vertex() (x, y float64, cmd basics.PathCommand) {
	if c.curve.active {
		switch c.curve.stage {
		case 1:
			c.curve.stage = 2
			return c.curve.x2, c.curve.y2, basics.PathCmdCurve4
		case 2:
			c.curve.active = false
			c.lastX, c.lastY = c.curve.x, c.curve.y
			return c.curve.x, c.curve.y, basics.PathCmdCurve4
		}
	}

	if c.i >= len(c.data.Segments) {
		return 0, 0, basics.PathCmdStop
	}
	seg := c.data.Segments[c.i]
	c.i++

	switch seg.Kind {
	case MoveTo:
		c.lastX, c.lastY = seg.X, seg.Y
		return seg.X, seg.Y, basics.PathCmdMoveTo
	case LineTo:
		c.lastX, c.lastY = seg.X, seg.Y
		return seg.X, seg.Y, basics.PathCmdLineTo
	case CurveTo:
		c.curve = curveState{active: true, stage: 1, x2: seg.X2, y2: seg.Y2, x: seg.X, y: seg.Y}
		return seg.X1, seg.Y1, basics.PathCmdCurve4
	case ClosePath:
		return c.lastX, c.lastY, basics.PathCommand(uint32(basics.PathCmdEndPoly) | uint32(basics.PathFlagsClose))
	default:
		return 0, 0, basics.PathCmdStop
	}
}
