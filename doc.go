// Package svgraster is the public entry point for the SVG renderer core: it
// wraps internal/svgtree's rendering-tree data model and internal/svgrender's
// scene walker behind the small surface a host program actually needs —
// build or receive a Tree, call Render, read back a Pixmap.
//
// svgraster does not parse SVG/XML, resolve CSS, or expand <use>/<symbol>;
// per spec.md §1 the renderer receives an already-resolved tree, built by a
// separate parser collaborator this module does not implement. Callers
// construct a Tree directly from internal/svgtree nodes (see NewTree) or
// plug in their own parser ahead of this package.
package svgraster
