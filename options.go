package svgraster

import "github.com/lumenvec/svgraster/internal/svgrender"

// RenderOptions, ShapeRendering, TextRendering, ImageRendering, Warner, and
// WarningKind are re-exported from internal/svgrender unchanged: the root
// package adds document construction and query helpers around the tree, not
// a second copy of the renderer's configuration surface.
type (
	RenderOptions  = svgrender.RenderOptions
	ShapeRendering = svgrender.ShapeRendering
	TextRendering  = svgrender.TextRendering
	ImageRendering = svgrender.ImageRendering
	Warner         = svgrender.Warner
	WarningKind    = svgrender.WarningKind
)

const (
	ShapeRenderingAuto               = svgrender.ShapeRenderingAuto
	ShapeRenderingOptimizeSpeed      = svgrender.ShapeRenderingOptimizeSpeed
	ShapeRenderingCrispEdges         = svgrender.ShapeRenderingCrispEdges
	ShapeRenderingGeometricPrecision = svgrender.ShapeRenderingGeometricPrecision

	TextRenderingAuto                = svgrender.TextRenderingAuto
	TextRenderingOptimizeSpeed       = svgrender.TextRenderingOptimizeSpeed
	TextRenderingOptimizeLegibility  = svgrender.TextRenderingOptimizeLegibility
	TextRenderingGeometricPrecision  = svgrender.TextRenderingGeometricPrecision

	ImageRenderingAuto           = svgrender.ImageRenderingAuto
	ImageRenderingOptimizeQuality = svgrender.ImageRenderingOptimizeQuality
	ImageRenderingOptimizeSpeed  = svgrender.ImageRenderingOptimizeSpeed
)

// DefaultRenderOptions returns spec.md §6's documented option defaults.
func DefaultRenderOptions() RenderOptions {
	return svgrender.DefaultRenderOptions()
}
