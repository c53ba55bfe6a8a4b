// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package preview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identityViewport(w, h float64) Viewport {
	return Viewport{Width: w, Height: h, Scale: 1, Transform: Identity()}
}

func TestTextMatchHighlighter_MatchSpanningTwoRuns(t *testing.T) {
	runs := []TextRun{
		{Text: "Hello", Transform: AffineTransform{A: 12, D: 12, E: 100, F: 700}, Width: 40, Height: 12},
		{Text: "World", Transform: AffineTransform{A: 12, D: 12, E: 150, F: 700}, Width: 40, Height: 12},
	}
	ci := BuildCorpus(runs)
	require.Equal(t, "Hello World", ci.Corpus)

	c := newRecordingCanvas(600, 800)
	e := NewHighlightEngine(DefaultHighlightStyle())

	// case-insensitive query spanning the separator selects both runs
	drawn := e.Apply(c, identityViewport(600, 800), 1, ci, HighlightTarget{Query: "lo Wo"})
	assert.True(t, drawn)
	require.Len(t, c.fills, 2)
	require.Len(t, c.strokes, 2)

	// each rectangle is anchored at (x, y - height)
	assert.Equal(t, 100.0, c.fills[0].Left)
	assert.Equal(t, 688.0, c.fills[0].Top)
	assert.Equal(t, 40.0, c.fills[0].Width)
	assert.Equal(t, 12.0, c.fills[0].Height)
	assert.Equal(t, 150.0, c.fills[1].Left)
}

func TestTextMatchHighlighter_GlyphHeightFromTransform(t *testing.T) {
	// vertical basis magnitude wins over the reported height
	runs := []TextRun{{Text: "sample text", Transform: AffineTransform{A: 10, D: 10, E: 0, F: 100}, Width: 50, Height: 99}}
	ci := BuildCorpus(runs)

	c := newRecordingCanvas(600, 800)
	h := &TextMatchHighlighter{Style: DefaultHighlightStyle()}
	assert.True(t, h.Apply(c, identityViewport(600, 800), 1, ci, HighlightTarget{Query: "sample"}))
	require.Len(t, c.fills, 1)
	assert.Equal(t, 10.0, c.fills[0].Height)

	// degenerate vertical basis falls back to the reported height
	runs[0].Transform = AffineTransform{E: 0, F: 100}
	ci = BuildCorpus(runs)
	c = newRecordingCanvas(600, 800)
	assert.True(t, h.Apply(c, identityViewport(600, 800), 1, ci, HighlightTarget{Query: "sample"}))
	require.Len(t, c.fills, 1)
	assert.Equal(t, 99.0, c.fills[0].Height)
}

func TestTextMatchHighlighter_ShortQueryNeverMatches(t *testing.T) {
	ci := BuildCorpus([]TextRun{{Text: "aaaa", Width: 10, Height: 10}})
	c := newRecordingCanvas(100, 100)
	h := &TextMatchHighlighter{Style: DefaultHighlightStyle()}

	assert.False(t, h.Apply(c, identityViewport(100, 100), 1, ci, HighlightTarget{Query: "a"}))
	assert.False(t, h.Apply(c, identityViewport(100, 100), 1, ci, HighlightTarget{Query: " a "}))
	assert.False(t, h.Apply(c, identityViewport(100, 100), 1, ci, HighlightTarget{Query: ""}))
	assert.Empty(t, c.fills)
}

func TestTextMatchHighlighter_NoMatch(t *testing.T) {
	ci := BuildCorpus([]TextRun{{Text: "Hello World"}})
	c := newRecordingCanvas(100, 100)
	h := &TextMatchHighlighter{Style: DefaultHighlightStyle()}
	assert.False(t, h.Apply(c, identityViewport(100, 100), 1, ci, HighlightTarget{Query: "absent"}))
	assert.Empty(t, c.fills)
}

func TestBoundingBoxHighlighter_FlipAndNormalize(t *testing.T) {
	c := newRecordingCanvas(600, 800)
	h := &BoundingBoxHighlighter{Style: DefaultHighlightStyle()}

	rect := &PageRect{X0: 10, Y0: 700, X1: 110, Y1: 750}
	drawn := h.Apply(c, identityViewport(600, 800), 3, CorpusIndex{}, HighlightTarget{Page: 3, Rect: rect})
	assert.True(t, drawn)
	require.Len(t, c.fills, 1)

	// flipped rectangle is {10, 50, 110, 100}; device rect keeps positive
	// extent after corner normalization
	assert.Equal(t, 10.0, c.fills[0].Left)
	assert.Equal(t, 50.0, c.fills[0].Top)
	assert.Equal(t, 100.0, c.fills[0].Width)
	assert.Equal(t, 50.0, c.fills[0].Height)
}

func TestBoundingBoxHighlighter_WrongPage(t *testing.T) {
	c := newRecordingCanvas(600, 800)
	h := &BoundingBoxHighlighter{Style: DefaultHighlightStyle()}
	rect := &PageRect{X0: 10, Y0: 700, X1: 110, Y1: 750}
	assert.False(t, h.Apply(c, identityViewport(600, 800), 2, CorpusIndex{}, HighlightTarget{Page: 3, Rect: rect}))
	assert.Empty(t, c.fills)
}

func TestHighlightEngine_TextPathWinsOverBbox(t *testing.T) {
	runs := []TextRun{{Text: "needle in text", Transform: AffineTransform{A: 10, D: 10}, Width: 60, Height: 10}}
	ci := BuildCorpus(runs)
	c := newRecordingCanvas(600, 800)
	e := NewHighlightEngine(DefaultHighlightStyle())

	target := HighlightTarget{
		Query: "needle",
		Page:  1,
		Rect:  &PageRect{X0: 0, Y0: 0, X1: 50, Y1: 50},
	}
	assert.True(t, e.Apply(c, identityViewport(600, 800), 1, ci, target))
	// only the text path drew
	require.Len(t, c.fills, 1)
	assert.Equal(t, 60.0, c.fills[0].Width)
}

func TestHighlightEngine_FallsBackToBbox(t *testing.T) {
	ci := BuildCorpus([]TextRun{{Text: "other content"}})
	c := newRecordingCanvas(600, 800)
	e := NewHighlightEngine(DefaultHighlightStyle())

	target := HighlightTarget{
		Query: "missing phrase",
		Page:  1,
		Rect:  &PageRect{X0: 10, Y0: 10, X1: 60, Y1: 40},
	}
	assert.True(t, e.Apply(c, identityViewport(600, 800), 1, ci, target))
	require.Len(t, c.fills, 1)
	assert.Equal(t, 50.0, c.fills[0].Width)
	assert.Equal(t, 30.0, c.fills[0].Height)
}

func TestHighlightEngine_NoTargetIsNotAnError(t *testing.T) {
	c := newRecordingCanvas(600, 800)
	e := NewHighlightEngine(DefaultHighlightStyle())
	assert.False(t, e.Apply(c, identityViewport(600, 800), 1, CorpusIndex{}, HighlightTarget{}))
	assert.Empty(t, c.fills)
}
