// Package svgrender implements the scene walker, layer stack, path
// rasterizer wrapper, paint-server engine, clip/mask engine, and filter
// graph evaluator that together turn an internal/svgtree.Node tree into
// pixels. It is the renderer core this project expands spec.md into.
package svgrender

// ShapeRendering is the SVG shape-rendering hint.
type ShapeRendering uint8

const (
	ShapeRenderingAuto ShapeRendering = iota
	ShapeRenderingOptimizeSpeed
	ShapeRenderingCrispEdges
	ShapeRenderingGeometricPrecision
)

// ImageRendering is the SVG image-rendering hint.
type ImageRendering uint8

const (
	ImageRenderingAuto ImageRendering = iota
	ImageRenderingOptimizeQuality
	ImageRenderingOptimizeSpeed
)

// TextRendering is the SVG text-rendering hint; carried here only so a host
// can configure the (out-of-scope) text/parser stage from the same options
// value, matching how usvg/resvg share one Options struct across parser and
// renderer (original_source/tools/rendersvg/src/args.rs).
type TextRendering uint8

const (
	TextRenderingAuto TextRendering = iota
	TextRenderingOptimizeSpeed
	TextRenderingOptimizeLegibility
	TextRenderingGeometricPrecision
)

// Warner is the pluggable warning channel spec.md §7 asks for: the renderer
// never aborts on a recoverable error, it downgrades to best effort and
// reports through here. *slog.Logger satisfies this directly.
type Warner interface {
	Warn(msg string, args ...any)
}

// nopWarner discards everything; used when RenderOptions.Warner is nil so
// callers never need a nil check before calling warn().
type nopWarner struct{}

func (nopWarner) Warn(string, ...any) {}

// WarningKind is spec.md §7's error taxonomy, passed to the Warner as a
// structured arg rather than as a Go error: PixmapAllocation (a layer or the
// root pixmap could not be sized/allocated, e.g. a filter region overflowed
// int dimensions), InvalidBBox (an objectBoundingBox-relative paint/filter
// region on a zero-area shape), BadPrimitive (a filter primitive with
// malformed parameters), UnresolvedReference (a paint/clip/mask/filter
// reference that does not resolve in the tree).
type WarningKind uint8

const (
	WarnPixmapAllocation WarningKind = iota
	WarnInvalidBBox
	WarnBadPrimitive
	WarnUnresolvedReference
)

func (k WarningKind) String() string {
	switch k {
	case WarnPixmapAllocation:
		return "pixmap_allocation"
	case WarnInvalidBBox:
		return "invalid_bbox"
	case WarnBadPrimitive:
		return "bad_primitive"
	case WarnUnresolvedReference:
		return "unresolved_reference"
	default:
		return "unknown"
	}
}

func warn(w Warner, kind WarningKind, msg string, args ...any) {
	if w == nil {
		return
	}
	all := append([]any{"kind", kind.String()}, args...)
	w.Warn(msg, all...)
}

// RenderOptions holds every external/configuration field spec.md §6 lists.
// Only the geometric fields (Dpi, ShapeRendering, ImageRendering,
// DefaultSize) affect this renderer core directly; the rest are threaded
// through so a host can configure the out-of-scope parser stage from the
// same value.
type RenderOptions struct {
	Dpi               float64
	FontSize          float64
	FontFamily        string
	Languages         []string
	ShapeRendering    ShapeRendering
	TextRendering     TextRendering
	ImageRendering    ImageRendering
	KeepNamedGroups   bool
	DefaultWidth      int
	DefaultHeight     int
	ImageHrefResolver func(href string) ([]byte, error)
	ResourcesDir      string

	// EnableBackground implements spec.md §9's Open Question: "new" starts
	// a background capture at the group that declares it; the default,
	// "accumulate", behaves as if the background were always transparent
	// (the recommended, simpler option — see DESIGN.md).
	EnableBackgroundNew bool

	Warner Warner
}

func (o *RenderOptions) warner() Warner {
	if o == nil || o.Warner == nil {
		return nopWarner{}
	}
	return o.Warner
}

// DefaultRenderOptions returns spec.md §6's documented defaults.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Dpi:            96,
		FontSize:       12,
		FontFamily:     "sans-serif",
		ShapeRendering: ShapeRenderingAuto,
		TextRendering:  TextRenderingAuto,
		ImageRendering: ImageRenderingAuto,
		DefaultWidth:   100,
		DefaultHeight:  100,
	}
}
