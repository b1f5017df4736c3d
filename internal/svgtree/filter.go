package svgtree

// FilterInput names where a primitive reads its input image from: either
// another primitive's result (by Name) or one of the four magic SVG filter
// inputs.
type FilterInput struct {
	Name string // "" means "use Magic"
	Magic FilterInputMagic
}

// FilterInputMagic is the closed set of special filter input keywords.
type FilterInputMagic uint8

const (
	InputNone FilterInputMagic = iota
	InputSourceGraphic
	InputSourceAlpha
	InputBackgroundImage // enable-background-dependent; see DESIGN.md Open Question
	InputBackgroundAlpha
	InputFillPaint
	InputStrokePaint
	InputPrevious // first primitive with no input defaults to SourceGraphic; later ones default here
)

// PrimitiveKind is the closed set of SVG filter primitives this evaluator
// implements (spec.md §4.6).
type PrimitiveKind uint8

const (
	FeGaussianBlur PrimitiveKind = iota
	FeColorMatrix
	FeComponentTransfer
	FeComposite
	FeConvolveMatrix
	FeMorphology
	FeTurbulence
	FeDisplacementMap
	FeFlood
	FeTile
	FeMerge
	FeOffset
	FeImage
	FeDiffuseLighting
	FeSpecularLighting
	FeBlend
)

// ColorMatrixType selects feColorMatrix's four variants.
type ColorMatrixType uint8

const (
	MatrixMatrix ColorMatrixType = iota // explicit 5x4 matrix
	MatrixSaturate
	MatrixHueRotate
	MatrixLuminanceToAlpha
)

// ComponentTransferFunc is one feComponentTransfer <feFuncR/G/B/A>.
type ComponentTransferFunc struct {
	Type       ComponentTransferType
	TableValues []float64 // Table/Discrete
	Slope, Intercept float64 // Linear
	Amplitude, Exponent, Offset float64 // Gamma
}

// ComponentTransferType is the closed set of transfer-function shapes.
type ComponentTransferType uint8

const (
	TransferIdentity ComponentTransferType = iota
	TransferTable
	TransferDiscrete
	TransferLinear
	TransferGamma
)

// CompositeOperator is feComposite's operator attribute.
type CompositeOperator uint8

const (
	CompositeOver CompositeOperator = iota
	CompositeIn
	CompositeOut
	CompositeAtop
	CompositeXor
	CompositeArithmetic
)

// EdgeMode controls how feGaussianBlur/feConvolveMatrix sample outside the
// filter region.
type EdgeMode uint8

const (
	EdgeDuplicate EdgeMode = iota
	EdgeWrap
	EdgeNone
)

// MorphologyOperator is feMorphology's operator attribute.
type MorphologyOperator uint8

const (
	MorphologyErode MorphologyOperator = iota
	MorphologyDilate
)

// ChannelSelector names a color channel feDisplacementMap reads.
type ChannelSelector uint8

const (
	ChannelR ChannelSelector = iota
	ChannelG
	ChannelB
	ChannelA
)

// LightSource is the closed set of feDiffuseLighting/feSpecularLighting
// light sources.
type LightSource struct {
	IsPoint bool // true: fePointLight/feSpotLight, false: feDistantLight
	// feDistantLight
	Azimuth, Elevation float64
	// fePointLight / feSpotLight
	X, Y, Z float64
	// feSpotLight only
	IsSpot                   bool
	PointsAtX, PointsAtY, PointsAtZ float64
	SpecularExponent         float64
	LimitingConeAngle        float64
	HasLimitingConeAngle     bool
}

// Primitive is one node in the filter graph: a closed tagged union over the
// sixteen SVG filter primitive kinds spec.md §4.6 enumerates (feBlend,
// feColorMatrix, feComponentTransfer, feComposite, feConvolveMatrix,
// feDiffuseLighting/feSpecularLighting, feDisplacementMap, feFlood,
// feGaussianBlur, feImage, feMerge, feMorphology, feOffset, feTile,
// feTurbulence), following the same tagged-struct convention as Node/Paint.
type Primitive struct {
	Kind    PrimitiveKind
	Input   FilterInput
	Input2  FilterInput // feComposite, feBlend, feDisplacementMap
	Inputs  []FilterInput // feMerge: one <feMergeNode> input per entry
	Region  *Rect       // x/y/width/height in the filter's primitive subregion units; nil = filter region default
	Name    string      // "result" attribute, for later primitives to reference

	// feGaussianBlur
	StdDeviationX, StdDeviationY float64
	EdgeMode                     EdgeMode

	// feColorMatrix
	MatrixType   ColorMatrixType
	MatrixValues []float64 // 20 values for Matrix, 1 for Saturate/HueRotate, unused for LuminanceToAlpha

	// feComponentTransfer
	FuncR, FuncG, FuncB, FuncA ComponentTransferFunc

	// feComposite
	CompositeOp CompositeOperator
	K1, K2, K3, K4 float64 // arithmetic coefficients

	// feConvolveMatrix
	KernelMatrix             []float64
	OrderX, OrderY           int
	Divisor, Bias            float64
	TargetX, TargetY         int
	PreserveAlpha            bool
	EdgeModeConv             EdgeMode

	// feMorphology
	MorphOp       MorphologyOperator
	RadiusX, RadiusY float64

	// feTurbulence
	BaseFreqX, BaseFreqY float64
	NumOctaves           int
	Seed                 int64
	Fractal              bool // type="fractalNoise" vs "turbulence"
	Stitch               bool

	// feDisplacementMap
	Scale       float64
	XChannel    ChannelSelector
	YChannel    ChannelSelector

	// feFlood
	FloodColor   Color
	FloodOpacity float64

	// feOffset
	Dx, Dy float64

	// feImage
	ImageContent *Node // a rendered sub-tree reference, or a raster (feImage href)

	// feDiffuseLighting / feSpecularLighting
	Light             LightSource
	SurfaceScale      float64
	LightingColor     Color
	DiffuseConstant   float64 // feDiffuseLighting
	SpecularConstant  float64 // feSpecularLighting
	SpecularExponent  float64 // feSpecularLighting

	// feBlend
	BlendMode BlendMode
}

// Filter is an SVG <filter> element: an ordered graph of primitives applied
// in sequence (each may reference any earlier primitive's result by name, in
// addition to the magic source inputs).
type Filter struct {
	Units        Units // filterUnits
	ContentUnits Units // primitiveUnits
	Region       Rect
	Primitives   []Primitive
}
