// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package preview

import "context"

// Decoder turns raw bytes into a page-addressable document. It is the one
// external capability this package consumes; implementations live outside
// the engine (see the pdfcpux subpackage for a reference adapter).
type Decoder interface {
	Parse(ctx context.Context, data []byte) (Document, error)
}

// Document is a decoded, page-addressable structure for one source
// identifier. Handles are immutable once created and are replaced
// wholesale, never patched, when the source changes.
type Document interface {
	// PageCount reports the number of pages.
	PageCount() int
	// Page returns the page for the given 1-based page number.
	Page(n int) (Page, error)
}

// Page is one renderable unit of a document.
type Page interface {
	// Viewport computes the page's viewport at the given scale. Scale 1
	// yields the intrinsic size in document units.
	Viewport(scale float64) Viewport
	// TextRuns returns the page's text runs in decoder reading order.
	TextRuns(ctx context.Context) ([]TextRun, error)
	// Draw rasterizes the page content onto the canvas at the viewport's
	// scale. The canvas transform has already been configured by the
	// renderer; Draw must not reset it.
	Draw(ctx context.Context, c Canvas, vp Viewport) error
}

// TextRun is one positioned string fragment within a page, in decoder
// reading order. That order, not any geometric sort, defines corpus order.
type TextRun struct {
	Text string
	// Transform positions the run in page space; composing it with the
	// viewport transform yields the run's anchor in device space.
	Transform AffineTransform
	// Width is the run's rendered width, already scale-correct for the
	// viewport it was read under.
	Width float64
	// Height is the decoder-reported glyph height, used only when the
	// composed transform has a degenerate vertical basis.
	Height float64
}

// Viewport maps page coordinate space to device space at a given scale.
type Viewport struct {
	// Width and Height are the scaled page size in device units.
	Width, Height float64
	Scale         float64
	// Transform maps page space (origin bottom-left, y-up) to device
	// space (origin top-left, y-down).
	Transform AffineTransform
}

// NewViewport builds the viewport for a page of the given intrinsic size
// at the given scale. The transform flips y so page space comes out in
// device orientation.
func NewViewport(intrinsicWidth, intrinsicHeight, scale float64) Viewport {
	return Viewport{
		Width:  intrinsicWidth * scale,
		Height: intrinsicHeight * scale,
		Scale:  scale,
		Transform: AffineTransform{
			A: scale,
			D: -scale,
			F: intrinsicHeight * scale,
		},
	}
}

// ConvertRect maps the rectangle's opposite corners through the viewport
// transform and normalizes the result. The transform may invert axis
// order, so callers get back a Rect with non-negative width and height.
func (vp Viewport) ConvertRect(r PageRect) Rect {
	x0, y0 := vp.Transform.Apply(r.X0, r.Y0)
	x1, y1 := vp.Transform.Apply(r.X1, r.Y1)
	return RectFromCorners(x0, y0, x1, y1)
}
