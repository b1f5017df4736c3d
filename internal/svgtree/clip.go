package svgtree

// ClipPath is an SVG <clipPath>: a set of shapes whose union defines the
// region a node is allowed to paint into. Nested ClipPaths intersect.
type ClipPath struct {
	Units    Units // clipPathUnits
	Rule     FillRule
	Shapes   []*Node // FillPath nodes only; stroke/paint on them is ignored
	Nested   *ClipPath
	Transform Transform
}
