// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package preview

import (
	"context"
	"fmt"
	"image/color"
	"sync"
)

// Shared fakes for the engine tests. They implement Decoder, Document,
// Page, Fetcher and Canvas with controllable behavior.

type fakeFetcher struct {
	mu      sync.Mutex
	data    map[string][]byte
	err     error
	blockOn string        // source id whose fetch stalls
	block   chan struct{} // released by closing
	started chan struct{} // closed once the stalled fetch is entered
	fetches int
}

func (f *fakeFetcher) Fetch(ctx context.Context, sourceID string) ([]byte, error) {
	f.mu.Lock()
	f.fetches++
	blocked := f.blockOn != "" && f.blockOn == sourceID
	block, started := f.block, f.started
	f.mu.Unlock()
	if blocked {
		if started != nil {
			close(started)
			f.mu.Lock()
			f.started = nil
			f.mu.Unlock()
		}
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	if d, ok := f.data[sourceID]; ok {
		return d, nil
	}
	return []byte(sourceID), nil
}

func (f *fakeFetcher) fetchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches
}

type fakeDecoder struct {
	docs     map[string]*fakeDocument // keyed by string(data)
	parseErr error
}

func (d *fakeDecoder) Parse(ctx context.Context, data []byte) (Document, error) {
	if d.parseErr != nil {
		return nil, d.parseErr
	}
	if doc, ok := d.docs[string(data)]; ok {
		return doc, nil
	}
	return &fakeDocument{pages: 1, width: 600, height: 800}, nil
}

type fakeDocument struct {
	pages  int
	width  float64
	height float64
	runs   []TextRun
	drawn  []int // page numbers drawn, in order
	mu     sync.Mutex
}

func (d *fakeDocument) PageCount() int { return d.pages }

func (d *fakeDocument) Page(n int) (Page, error) {
	if n < 1 || n > d.pages {
		return nil, fmt.Errorf("no such page %d", n)
	}
	return &fakePage{doc: d, number: n}, nil
}

func (d *fakeDocument) drawCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.drawn)
}

type fakePage struct {
	doc     *fakeDocument
	number  int
	drawErr error
	runsErr error
}

func (p *fakePage) Viewport(scale float64) Viewport {
	return NewViewport(p.doc.width, p.doc.height, scale)
}

func (p *fakePage) TextRuns(ctx context.Context) ([]TextRun, error) {
	if p.runsErr != nil {
		return nil, p.runsErr
	}
	return p.doc.runs, nil
}

func (p *fakePage) Draw(ctx context.Context, c Canvas, vp Viewport) error {
	if p.drawErr != nil {
		return p.drawErr
	}
	p.doc.mu.Lock()
	p.doc.drawn = append(p.doc.drawn, p.number)
	p.doc.mu.Unlock()
	c.Clear(color.White)
	return nil
}

// recordingCanvas records fill and stroke calls instead of painting.
type recordingCanvas struct {
	w, h      int
	transform AffineTransform
	fills     []Rect
	strokes   []Rect
	cleared   bool
}

func newRecordingCanvas(w, h int) *recordingCanvas {
	return &recordingCanvas{w: w, h: h, transform: Identity()}
}

func (c *recordingCanvas) Size() (int, int)               { return c.w, c.h }
func (c *recordingCanvas) SetTransform(t AffineTransform) { c.transform = t }
func (c *recordingCanvas) Clear(color.Color)              { c.cleared = true }
func (c *recordingCanvas) FillRect(r Rect, _ color.Color) {
	c.fills = append(c.fills, r)
}
func (c *recordingCanvas) StrokeRect(r Rect, _ color.Color) {
	c.strokes = append(c.strokes, r)
}
