package svgraster

import "github.com/lumenvec/svgraster/internal/svgrender"

// Pixmap is the RGBA8, row-major, premultiplied-alpha output buffer spec.md
// §6 describes. It is re-exported from internal/svgrender unchanged;
// Render/RenderWithOptions write into one directly.
type Pixmap = svgrender.Pixmap

// NewPixmap allocates a transparent-black Pixmap of the given size.
func NewPixmap(width, height int) (*Pixmap, error) {
	return svgrender.NewPixmap(width, height)
}
