// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package preview

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

// Canvas is the drawing surface the renderer and the highlight engine
// target. Coordinates passed to the fill and stroke calls are in CSS
// (viewport) units; the configured transform maps them to bitmap pixels.
type Canvas interface {
	// Size reports the bitmap size in physical pixels.
	Size() (w, h int)
	// SetTransform replaces the current transform. The renderer sets a
	// device-pixel-ratio scale here before any drawing happens.
	SetTransform(t AffineTransform)
	// Clear fills the whole bitmap with the given color, ignoring the
	// transform.
	Clear(c color.Color)
	// FillRect fills r after mapping it through the current transform.
	FillRect(r Rect, c color.Color)
	// StrokeRect strokes a 1-unit border around r after mapping it
	// through the current transform.
	StrokeRect(r Rect, c color.Color)
}

// ImageCanvas is an in-memory Canvas over an RGBA bitmap. Hosts with a
// real display surface provide their own Canvas; this one backs headless
// rendering and tests.
type ImageCanvas struct {
	img       *image.RGBA
	transform AffineTransform
}

// NewImageCanvas allocates a canvas with the given bitmap size in pixels.
func NewImageCanvas(w, h int) *ImageCanvas {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return &ImageCanvas{
		img:       image.NewRGBA(image.Rect(0, 0, w, h)),
		transform: Identity(),
	}
}

// Image exposes the underlying bitmap.
func (c *ImageCanvas) Image() *image.RGBA { return c.img }

func (c *ImageCanvas) Size() (int, int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

func (c *ImageCanvas) SetTransform(t AffineTransform) { c.transform = t }

// Transform returns the current transform.
func (c *ImageCanvas) Transform() AffineTransform { return c.transform }

func (c *ImageCanvas) Clear(col color.Color) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

func (c *ImageCanvas) FillRect(r Rect, col color.Color) {
	draw.Draw(c.img, c.deviceBounds(r), image.NewUniform(col), image.Point{}, draw.Over)
}

func (c *ImageCanvas) StrokeRect(r Rect, col color.Color) {
	b := c.deviceBounds(r)
	if b.Empty() {
		return
	}
	u := image.NewUniform(col)
	top := image.Rect(b.Min.X, b.Min.Y, b.Max.X, b.Min.Y+1)
	bottom := image.Rect(b.Min.X, b.Max.Y-1, b.Max.X, b.Max.Y)
	left := image.Rect(b.Min.X, b.Min.Y, b.Min.X+1, b.Max.Y)
	right := image.Rect(b.Max.X-1, b.Min.Y, b.Max.X, b.Max.Y)
	for _, edge := range []image.Rectangle{top, bottom, left, right} {
		draw.Draw(c.img, edge, u, image.Point{}, draw.Over)
	}
}

// deviceBounds maps r through the transform into integer pixel bounds,
// clipped to the bitmap.
func (c *ImageCanvas) deviceBounds(r Rect) image.Rectangle {
	x0, y0 := c.transform.Apply(r.Left, r.Top)
	x1, y1 := c.transform.Apply(r.Left+r.Width, r.Top+r.Height)
	b := image.Rect(
		int(math.Floor(math.Min(x0, x1))),
		int(math.Floor(math.Min(y0, y1))),
		int(math.Ceil(math.Max(x0, x1))),
		int(math.Ceil(math.Max(y0, y1))),
	)
	return b.Intersect(c.img.Bounds())
}
