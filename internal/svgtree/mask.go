package svgtree

// MaskType selects how a rendered mask layer is reduced to a single alpha
// channel. resvg (original_source/resvg-skia/src/clip_and_mask.rs) keeps
// both modes rather than only luminance, and this tree does the same since
// it costs nothing extra to carry the tag.
type MaskType uint8

const (
	MaskLuminance MaskType = iota
	MaskAlpha
)

// Mask is an SVG <mask>: its content is rendered to an offscreen layer, then
// reduced to an alpha channel (luminance-to-alpha or the raw alpha channel)
// and multiplied into the masked node's own alpha.
type Mask struct {
	Units        Units // maskUnits, the region rect below
	ContentUnits Units // maskContentUnits
	Region       Rect
	Type         MaskType
	Content      []*Node
	Nested       *Mask // a mask can itself be masked
}
