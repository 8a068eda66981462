// Package outline turns SVG icons into closed, filled polygon outlines.
//
// Icons are parsed with oksvg and drawn through a rasterx Dasher whose
// scanner records the generated polygons instead of filling pixels. Every
// drawing feature oksvg understands (shape primitives, arcs, transforms,
// strokes with caps, joins and dashes) comes out as closed contours that a
// font can fill with the nonzero rule. Clean then removes what a font cannot
// use: repeated points, collinear points and zero-area contours.
//
// Outlines serialize to SVG path data with M, L and Z commands only.
// ParsePathData compiles any path data back into contours with oksvg.
package outline
