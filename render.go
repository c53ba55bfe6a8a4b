// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package preview

import (
	"context"
	"fmt"
	"image"
	"math"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/paperglass/preview/logger"
	"golang.org/x/image/draw"
)

// RasterResult is one finished frame: the drawn canvas plus the geometry
// the highlight engine and the host need to interpret it. BitmapWidth and
// BitmapHeight are physical pixels; CSSWidth and CSSHeight are the layout
// size, so on high-density displays the bitmap is sharper than the
// displayed size without changing layout.
type RasterResult struct {
	Page     Page
	Viewport Viewport
	Canvas   *ImageCanvas

	CSSWidth, CSSHeight       float64
	BitmapWidth, BitmapHeight int
}

type rasterKey struct {
	sourceID string
	page     int
	w, h     int
}

// PageRenderer computes the target scale for a page and issues the draw
// call. Identical inputs produce identical bitmap dimensions and content,
// which is what makes the raster cache sound.
type PageRenderer struct {
	cfg   *Config
	cache *lru.Cache[rasterKey, *image.RGBA]
}

func NewPageRenderer(cfg *Config) (*PageRenderer, error) {
	cache, err := lru.New[rasterKey, *image.RGBA](cfg.RasterCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create raster cache: %w", err)
	}
	return &PageRenderer{cfg: cfg, cache: cache}, nil
}

// RenderPage rasterizes pageNumber of doc at the scale derived from the
// zoom factor and the available container width.
func (r *PageRenderer) RenderPage(ctx context.Context, doc Document, sourceID string, pageNumber int, zoomFactor, containerWidthPx float64) (*RasterResult, error) {
	page, err := doc.Page(pageNumber)
	if err != nil {
		return nil, &RenderError{Page: pageNumber, Err: err}
	}

	intrinsic := page.Viewport(1)
	if intrinsic.Width <= 0 {
		return nil, &RenderError{Page: pageNumber, Err: fmt.Errorf("page has no intrinsic width")}
	}

	targetScale := r.targetScale(intrinsic.Width, zoomFactor, containerWidthPx)
	vp := page.Viewport(targetScale)

	dpr := r.cfg.DevicePixelRatio
	bitmapW := int(math.Round(vp.Width * dpr))
	bitmapH := int(math.Round(vp.Height * dpr))

	canvas := NewImageCanvas(bitmapW, bitmapH)
	canvas.SetTransform(AffineTransform{A: dpr, D: dpr})

	key := rasterKey{sourceID: sourceID, page: pageNumber, w: bitmapW, h: bitmapH}
	if cached, ok := r.cache.Get(key); ok {
		logger.Debug(fmt.Sprintf("Raster cache hit: page=%d size=%dx%d", pageNumber, bitmapW, bitmapH), true)
		draw.Draw(canvas.Image(), canvas.Image().Bounds(), cached, cached.Bounds().Min, draw.Src)
	} else {
		if err := page.Draw(ctx, canvas, vp); err != nil {
			return nil, &RenderError{Page: pageNumber, Err: err}
		}
		r.cache.Add(key, cloneRGBA(canvas.Image()))
		logger.Debug(fmt.Sprintf("Page drawn: page=%d scale=%.3f size=%dx%d", pageNumber, targetScale, bitmapW, bitmapH), true)
	}

	return &RasterResult{
		Page:         page,
		Viewport:     vp,
		Canvas:       canvas,
		CSSWidth:     vp.Width,
		CSSHeight:    vp.Height,
		BitmapWidth:  bitmapW,
		BitmapHeight: bitmapH,
	}, nil
}

// targetScale derives the final scale: fit the intrinsic width into the
// container (minus margin, capped so narrow pages are not blown up past
// FitScaleCap), apply the zoom factor, then clamp into the zoom bounds.
func (r *PageRenderer) targetScale(intrinsicWidth, zoomFactor, containerWidthPx float64) float64 {
	avail := math.Max(0, containerWidthPx-r.cfg.RenderMargin)
	fitScale := math.Min(r.cfg.FitScaleCap, avail/intrinsicWidth)
	return clamp(r.cfg.ZoomMin, r.cfg.ZoomMax, fitScale*zoomFactor)
}

// PurgeRasterCache drops every cached bitmap. Called when the source
// identifier changes.
func (r *PageRenderer) PurgeRasterCache() {
	r.cache.Purge()
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}
