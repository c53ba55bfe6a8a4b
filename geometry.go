// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package preview

import "math"

// AffineTransform is a 2D affine map in the usual [a b c d e f] layout:
// a point (x, y) maps to (a*x + c*y + e, b*x + d*y + f).
type AffineTransform struct {
	A, B, C, D, E, F float64
}

// Identity returns the identity transform.
func Identity() AffineTransform {
	return AffineTransform{A: 1, D: 1}
}

// Mul returns the transform equivalent to applying t first, then n.
func (t AffineTransform) Mul(n AffineTransform) AffineTransform {
	return AffineTransform{
		A: t.A*n.A + t.B*n.C,
		B: t.A*n.B + t.B*n.D,
		C: t.C*n.A + t.D*n.C,
		D: t.C*n.B + t.D*n.D,
		E: t.E*n.A + t.F*n.C + n.E,
		F: t.E*n.B + t.F*n.D + n.F,
	}
}

// Apply maps the point (x, y) through t.
func (t AffineTransform) Apply(x, y float64) (float64, float64) {
	return t.A*x + t.C*y + t.E, t.B*x + t.D*y + t.F
}

// VerticalMagnitude is the length of the transform's vertical basis vector,
// i.e. how long a unit step along y becomes after mapping. For a text run
// transform this is the rendered glyph height.
func (t AffineTransform) VerticalMagnitude() float64 {
	return math.Hypot(t.C, t.D)
}

// ScaleBy returns t post-multiplied by a uniform scale. Used for the
// device-pixel-ratio step between CSS size and bitmap size.
func (t AffineTransform) ScaleBy(s float64) AffineTransform {
	return t.Mul(AffineTransform{A: s, D: s})
}

// Rect is an axis-aligned rectangle in device space (origin top-left,
// y increasing downward). Width and Height are always non-negative when the
// rectangle was produced by RectFromCorners.
type Rect struct {
	Left, Top, Width, Height float64
}

// RectFromCorners builds a normalized Rect from two opposite corners in any
// order. Transforms may invert axis order, so min/max both coordinates.
func RectFromCorners(x0, y0, x1, y1 float64) Rect {
	left := math.Min(x0, x1)
	top := math.Min(y0, y1)
	return Rect{
		Left:   left,
		Top:    top,
		Width:  math.Abs(x1 - x0),
		Height: math.Abs(y1 - y0),
	}
}

// PageRect is a rectangle in page coordinate space: origin bottom-left,
// y increasing upward, as decoders report text and annotation positions.
type PageRect struct {
	X0, Y0, X1, Y1 float64
}

// FlipY converts the rectangle from page space (y-up) to the decoder's
// internal y-down convention for a page of the given height.
func (r PageRect) FlipY(pageHeight float64) PageRect {
	return PageRect{
		X0: r.X0,
		Y0: pageHeight - r.Y1,
		X1: r.X1,
		Y1: pageHeight - r.Y0,
	}
}
