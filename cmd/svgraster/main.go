// Command svgraster is a dev tool that drives the renderer core end to end,
// modeled on resvg's rendersvg CLI (original_source/tools/rendersvg/src/
// args.rs): a handful of scalar flags plus two positional file arguments.
//
// svgraster does not parse SVG/XML — spec.md §1 scopes that to a separate
// parser collaborator this module does not implement. In place of an SVG
// file, <in-tree> is a small JSON serialization of an internal/svgtree.Node
// tree (see scene.go); a real deployment wires a proper SVG/CSS parser ahead
// of this same Tree/Render entry point.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"strings"

	svgraster "github.com/lumenvec/svgraster"
	"github.com/lumenvec/svgraster/internal/svgtree"
	"github.com/lumenvec/svgraster/internal/transform"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("svgraster", flag.ContinueOnError)
	width := fs.Int("width", 0, "output width in pixels (0: use the tree's own size)")
	height := fs.Int("height", 0, "output height in pixels (0: use the tree's own size)")
	zoom := fs.Float64("zoom", 1, "zoom factor applied on top of width/height")
	dpi := fs.Float64("dpi", 96, "resolution in dots per inch")
	background := fs.String("background", "", "background color (e.g. #ffffff), empty for transparent")
	shapeRendering := fs.String("shape-rendering", "auto", "optimizeSpeed | crispEdges | geometricPrecision | auto")
	textRendering := fs.String("text-rendering", "auto", "optimizeSpeed | optimizeLegibility | geometricPrecision | auto")
	imageRendering := fs.String("image-rendering", "auto", "optimizeQuality | optimizeSpeed | auto")
	languages := fs.String("languages", "en", "comma-separated language list")
	exportID := fs.String("export-id", "", "render only the sub-element with this id")
	queryAll := fs.Bool("query-all", false, "print id,x,y,w,h for every id in the tree and exit")
	quiet := fs.Bool("quiet", false, "disable warning output")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	rest := fs.Args()
	if len(rest) < 1 {
		fmt.Fprintln(os.Stderr, "usage: svgraster [OPTIONS] <in-tree> [out-png]")
		return 2
	}
	inPath := rest[0]

	data, err := os.ReadFile(inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "svgraster: %v\n", err)
		return 1
	}
	root, err := decodeScene(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "svgraster: %v\n", err)
		return 1
	}

	tree, err := svgraster.NewTree(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "svgraster: %v\n", err)
		return 1
	}

	if *queryAll {
		printQueryAll(tree, root)
		return 0
	}

	var target *svgtree.Node = root
	if *exportID != "" {
		found, ok := tree.NodeByID(*exportID)
		if !ok {
			fmt.Fprintf(os.Stderr, "svgraster: no element with id %q\n", *exportID)
			return 1
		}
		target = found
		if target.Kind != svgtree.KindRoot {
			wrapped := svgtree.NewRoot(nil)
			wrapped.AddChild(target)
			target = wrapped
		}
		tree, err = svgraster.NewTree(target)
		if err != nil {
			fmt.Fprintf(os.Stderr, "svgraster: %v\n", err)
			return 1
		}
	}

	w, h := *width, *height
	if w <= 0 {
		w = 512
	}
	if h <= 0 {
		h = 512
	}

	px, err := svgraster.NewPixmap(w, h)
	if err != nil {
		fmt.Fprintf(os.Stderr, "svgraster: %v\n", err)
		return 1
	}

	opts := svgraster.DefaultRenderOptions()
	opts.Dpi = *dpi
	opts.Languages = strings.Split(*languages, ",")
	opts.ShapeRendering = parseShapeRendering(*shapeRendering)
	opts.TextRendering = parseTextRendering(*textRendering)
	opts.ImageRendering = parseImageRendering(*imageRendering)
	if !*quiet {
		opts.Warner = stderrWarner{}
	}

	xf := transform.NewTransAffine()
	xf.ScaleXY(*zoom, *zoom)
	tree.RenderWithOptions(px, xf, &opts)

	img := pixmapToImage(px, *background)

	var out *os.File
	if len(rest) >= 2 {
		f, err := os.Create(rest[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "svgraster: %v\n", err)
			return 1
		}
		defer f.Close()
		out = f
	} else {
		out = os.Stdout
	}
	if err := png.Encode(out, img); err != nil {
		fmt.Fprintf(os.Stderr, "svgraster: %v\n", err)
		return 1
	}
	return 0
}

func printQueryAll(tree *svgraster.Tree, root *svgtree.Node) {
	var walk func(n *svgtree.Node)
	walk = func(n *svgtree.Node) {
		if n.ID != "" {
			if bbox, ok := svgraster.CalculateBBox(n); ok {
				fmt.Printf("%s,%.3f,%.3f,%.3f,%.3f\n", n.ID, bbox.X, bbox.Y, bbox.W, bbox.H)
			}
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(root)
}

func parseShapeRendering(s string) svgraster.ShapeRendering {
	switch s {
	case "optimizeSpeed":
		return svgraster.ShapeRenderingOptimizeSpeed
	case "crispEdges":
		return svgraster.ShapeRenderingCrispEdges
	case "geometricPrecision":
		return svgraster.ShapeRenderingGeometricPrecision
	default:
		return svgraster.ShapeRenderingAuto
	}
}

func parseTextRendering(s string) svgraster.TextRendering {
	switch s {
	case "optimizeSpeed":
		return svgraster.TextRenderingOptimizeSpeed
	case "optimizeLegibility":
		return svgraster.TextRenderingOptimizeLegibility
	case "geometricPrecision":
		return svgraster.TextRenderingGeometricPrecision
	default:
		return svgraster.TextRenderingAuto
	}
}

func parseImageRendering(s string) svgraster.ImageRendering {
	switch s {
	case "optimizeQuality":
		return svgraster.ImageRenderingOptimizeQuality
	case "optimizeSpeed":
		return svgraster.ImageRenderingOptimizeSpeed
	default:
		return svgraster.ImageRenderingAuto
	}
}

// stderrWarner implements svgraster.Warner by printing to stderr; a real
// deployment would pass a *log/slog.Logger instead (see DESIGN.md).
type stderrWarner struct{}

func (stderrWarner) Warn(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "svgraster: warning: %s %v\n", msg, args)
}

// pixmapToImage converts the renderer's premultiplied Pixmap into a
// straight-alpha image.RGBA for PNG encoding, compositing over an opaque
// background color first when one is requested.
func pixmapToImage(px *svgraster.Pixmap, background string) *image.RGBA {
	w, h := px.Width(), px.Height()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	bg, hasBG := parseBackground(background)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := px.At(x, y)
			r, g, b, a := uint32(c.R), uint32(c.G), uint32(c.B), uint32(c.A)
			if hasBG && a < 255 {
				inv := 255 - a
				r = r + uint32(bg.R)*inv/255
				g = g + uint32(bg.G)*inv/255
				b = b + uint32(bg.B)*inv/255
				a = 255
			}
			if a > 0 {
				r = r * 255 / a
				g = g * 255 / a
				b = b * 255 / a
			}
			img.SetRGBA(x, y, color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: uint8(a)})
		}
	}
	return img
}

func parseBackground(s string) (color.RGBA, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.RGBA{}, false
	}
	var r, g, b int
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}, true
}
