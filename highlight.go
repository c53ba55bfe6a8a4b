// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package preview

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/paperglass/preview/logger"
)

// HighlightTarget is what the engine tries to mark on the current page:
// a free-text query, or an explicit rectangle tied to a page number.
// At most one target is active per render; a zero target highlights
// nothing, which is not an error.
type HighlightTarget struct {
	Query string
	Page  int
	Rect  *PageRect
}

// IsZero reports whether there is nothing to highlight.
func (t HighlightTarget) IsZero() bool {
	return t.Query == "" && t.Rect == nil
}

// HighlightStyle is the fill and border drawn over a match.
type HighlightStyle struct {
	Fill   color.Color
	Stroke color.Color
}

func DefaultHighlightStyle() HighlightStyle {
	return HighlightStyle{
		Fill:   color.NRGBA{R: 255, G: 214, B: 0, A: 80},
		Stroke: color.NRGBA{R: 255, G: 163, B: 0, A: 255},
	}
}

// HighlightStrategy is one way of locating the target on the page.
// Strategies are tried in order; the first one that draws wins.
type HighlightStrategy interface {
	Apply(c Canvas, vp Viewport, currentPage int, corpus CorpusIndex, target HighlightTarget) bool
}

// TextMatchHighlighter locates the first case-insensitive occurrence of
// the query in the page corpus and highlights every run the match spans.
type TextMatchHighlighter struct {
	Style HighlightStyle
}

func (h *TextMatchHighlighter) Apply(c Canvas, vp Viewport, currentPage int, corpus CorpusIndex, target HighlightTarget) bool {
	query := strings.TrimSpace(target.Query)
	// Single characters match near-everything; require at least two.
	if len(query) <= 1 {
		return false
	}

	matchStart := strings.Index(strings.ToLower(corpus.Corpus), strings.ToLower(query))
	if matchStart < 0 {
		logger.Debug(fmt.Sprintf("No corpus match: query=%q", query), true)
		return false
	}
	matchEnd := matchStart + len(query)

	hits := corpus.RangesIntersecting(matchStart, matchEnd)
	if len(hits) == 0 {
		return false
	}
	logger.Debug(fmt.Sprintf("Corpus match: query=%q at [%d,%d) spanning %d runs", query, matchStart, matchEnd, len(hits)), true)

	for _, hit := range hits {
		run := hit.Run
		composed := run.Transform.Mul(vp.Transform)
		x, y := composed.E, composed.F
		height := composed.VerticalMagnitude()
		if height == 0 {
			height = run.Height
		}
		r := Rect{Left: x, Top: y - height, Width: run.Width, Height: height}
		c.FillRect(r, h.Style.Fill)
		c.StrokeRect(r, h.Style.Stroke)
	}
	return true
}

// BoundingBoxHighlighter draws an explicit page-space rectangle. It only
// applies when the rectangle is tied to the page being rendered.
type BoundingBoxHighlighter struct {
	Style HighlightStyle
}

func (h *BoundingBoxHighlighter) Apply(c Canvas, vp Viewport, currentPage int, corpus CorpusIndex, target HighlightTarget) bool {
	if target.Rect == nil || target.Page != currentPage {
		return false
	}
	if vp.Scale <= 0 {
		return false
	}

	// The rectangle arrives in page space (origin bottom-left, y-up);
	// flip into the decoder's y-down convention before converting.
	pageHeight := vp.Height / vp.Scale
	flipped := target.Rect.FlipY(pageHeight)
	r := vp.ConvertRect(flipped)
	if r.Width <= 0 || r.Height <= 0 {
		return false
	}

	logger.Debug(fmt.Sprintf("Bounding-box highlight: page=%d rect=(%.1f,%.1f %.1fx%.1f)", currentPage, r.Left, r.Top, r.Width, r.Height), true)
	c.FillRect(r, h.Style.Fill)
	c.StrokeRect(r, h.Style.Stroke)
	return true
}

// HighlightEngine tries the text-match path first and falls back to the
// bounding box. Returns whether anything was drawn.
type HighlightEngine struct {
	strategies []HighlightStrategy
}

func NewHighlightEngine(style HighlightStyle) *HighlightEngine {
	return &HighlightEngine{
		strategies: []HighlightStrategy{
			&TextMatchHighlighter{Style: style},
			&BoundingBoxHighlighter{Style: style},
		},
	}
}

func (e *HighlightEngine) Apply(c Canvas, vp Viewport, currentPage int, corpus CorpusIndex, target HighlightTarget) bool {
	if target.IsZero() {
		return false
	}
	for _, s := range e.strategies {
		if s.Apply(c, vp, currentPage, corpus, target) {
			return true
		}
	}
	return false
}
