package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/lumenvec/svgraster/internal/svgtree"
	"github.com/lumenvec/svgraster/internal/transform"
)

// sceneNode is the JSON shape decodeScene accepts in place of real SVG/XML,
// since parsing SVG is out of this module's scope (spec.md §1). It mirrors
// internal/svgtree.Node's closed kind set directly rather than inventing a
// richer document model: one constructor-ish struct, Kind picked by which
// fields are set.
type sceneNode struct {
	ID        string      `json:"id,omitempty"`
	Transform *[6]float64 `json:"transform,omitempty"` // sx,shy,shx,sy,tx,ty
	Opacity   *float64    `json:"opacity,omitempty"`

	Group    []sceneNode `json:"group,omitempty"`
	Path     []pathCmd   `json:"path,omitempty"`
	Rule     string      `json:"rule,omitempty"` // "nonzero" (default) | "evenodd"
	Fill     string      `json:"fill,omitempty"` // "#rrggbb" or "#rrggbbaa"; empty: unfilled
	Stroke   string      `json:"stroke,omitempty"`
	StrokeW  float64     `json:"strokeWidth,omitempty"`
}

// pathCmd is one absolute path command: "M x y", "L x y", "C x1 y1 x2 y2 x y", or "Z".
type pathCmd struct {
	Op   string    `json:"op"`
	Args []float64 `json:"args,omitempty"`
}

// decodeScene parses a JSON scene document into a rendering-tree root. The
// document's top level is always a group, wrapped in a KindRoot node.
func decodeScene(data []byte) (*svgtree.Node, error) {
	var doc sceneNode
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding scene: %w", err)
	}
	root := svgtree.NewRoot(parseTransform(doc.Transform))
	root.ID = doc.ID
	if doc.Opacity != nil {
		root.Opacity = *doc.Opacity
	}
	for _, c := range doc.Group {
		child, err := buildNode(c)
		if err != nil {
			return nil, err
		}
		root.AddChild(child)
	}
	return root, nil
}

func buildNode(n sceneNode) (*svgtree.Node, error) {
	switch {
	case n.Group != nil:
		g := svgtree.NewGroup(parseTransform(n.Transform))
		g.ID = n.ID
		if n.Opacity != nil {
			g.Opacity = *n.Opacity
		}
		for _, c := range n.Group {
			child, err := buildNode(c)
			if err != nil {
				return nil, err
			}
			g.AddChild(child)
		}
		return g, nil

	case n.Path != nil:
		path, err := buildPath(n.Path)
		if err != nil {
			return nil, err
		}
		node := &svgtree.Node{
			Kind:      svgtree.KindFillPath,
			ID:        n.ID,
			Transform: parseTransform(n.Transform),
			Opacity:   1,
			Path:      path,
			Rule:      parseFillRule(n.Rule),
		}
		if n.Opacity != nil {
			node.Opacity = *n.Opacity
		}
		if n.Fill != "" {
			c, opacity, err := parseColor(n.Fill)
			if err != nil {
				return nil, fmt.Errorf("node %q: fill: %w", n.ID, err)
			}
			fill := svgtree.SolidPaint(c, opacity)
			node.Fill = &fill
		}
		if n.Stroke != "" {
			c, opacity, err := parseColor(n.Stroke)
			if err != nil {
				return nil, fmt.Errorf("node %q: stroke: %w", n.ID, err)
			}
			node.StrokeStyle = &svgtree.Stroke{
				Paint:      svgtree.SolidPaint(c, opacity),
				Width:      n.StrokeW,
				Join:       svgtree.JoinMiter,
				Cap:        svgtree.CapButt,
				MiterLimit: 4,
			}
		}
		return node, nil

	default:
		return nil, fmt.Errorf("node %q: neither group nor path content", n.ID)
	}
}

func buildPath(cmds []pathCmd) (*svgtree.PathData, error) {
	p := &svgtree.PathData{}
	for i, c := range cmds {
		switch strings.ToUpper(c.Op) {
		case "M":
			if len(c.Args) != 2 {
				return nil, fmt.Errorf("path command %d (M): want 2 args, got %d", i, len(c.Args))
			}
			p.MoveTo(c.Args[0], c.Args[1])
		case "L":
			if len(c.Args) != 2 {
				return nil, fmt.Errorf("path command %d (L): want 2 args, got %d", i, len(c.Args))
			}
			p.LineTo(c.Args[0], c.Args[1])
		case "C":
			if len(c.Args) != 6 {
				return nil, fmt.Errorf("path command %d (C): want 6 args, got %d", i, len(c.Args))
			}
			p.CubicTo(c.Args[0], c.Args[1], c.Args[2], c.Args[3], c.Args[4], c.Args[5])
		case "Z":
			p.Close()
		default:
			return nil, fmt.Errorf("path command %d: unknown op %q", i, c.Op)
		}
	}
	return p, nil
}

func parseTransform(m *[6]float64) svgtree.Transform {
	if m == nil {
		return nil
	}
	return transform.NewTransAffineFromArray(*m)
}

func parseFillRule(s string) svgtree.FillRule {
	if s == "evenodd" {
		return svgtree.FillEvenOdd
	}
	return svgtree.FillNonZero
}

// parseColor accepts "#rrggbb" (opaque) or "#rrggbbaa", returning the color
// and its own alpha folded out as a separate 0..1 opacity (Paint.Opacity),
// matching how the rest of the tree keeps color and opacity distinct.
func parseColor(s string) (svgtree.Color, float64, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 && len(s) != 8 {
		return svgtree.Color{}, 0, fmt.Errorf("want #rrggbb or #rrggbbaa, got %q", s)
	}
	r, err := strconv.ParseUint(s[0:2], 16, 8)
	if err != nil {
		return svgtree.Color{}, 0, err
	}
	g, err := strconv.ParseUint(s[2:4], 16, 8)
	if err != nil {
		return svgtree.Color{}, 0, err
	}
	b, err := strconv.ParseUint(s[4:6], 16, 8)
	if err != nil {
		return svgtree.Color{}, 0, err
	}
	opacity := 1.0
	if len(s) == 8 {
		a, err := strconv.ParseUint(s[6:8], 16, 8)
		if err != nil {
			return svgtree.Color{}, 0, err
		}
		opacity = float64(a) / 255
	}
	return svgtree.Opaque(uint8(r), uint8(g), uint8(b)), opacity, nil
}
