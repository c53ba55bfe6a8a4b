// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package preview

import (
	"fmt"
	"sync"

	"github.com/paperglass/preview/logger"
)

// ViewportState owns the current page number and zoom factor and the
// clamping rules around them. Mutators report whether a value actually
// changed; clamping onto the current value is a no-op and must not
// trigger a redundant render.
type ViewportState struct {
	mu sync.Mutex

	cfg *Config

	pageNumber int
	zoomFactor float64

	// requestedPage holds the raw page request made before the page count
	// is known; it is re-clamped once the document loads.
	requestedPage int
	pageCount     int
}

func NewViewportState(cfg *Config, initialPage int) *ViewportState {
	if initialPage < 1 {
		initialPage = 1
	}
	return &ViewportState{
		cfg:           cfg,
		pageNumber:    1,
		zoomFactor:    1.0,
		requestedPage: initialPage,
	}
}

func (v *ViewportState) PageNumber() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pageNumber
}

func (v *ViewportState) ZoomFactor() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.zoomFactor
}

// SetPage requests page n. Before the page count is known the raw request
// is stored and applied on load; afterwards n is clamped into
// [1, pageCount].
func (v *ViewportState) SetPage(n int) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.pageCount == 0 {
		v.requestedPage = n
		return false
	}
	clamped := clampPage(n, v.pageCount)
	v.requestedPage = clamped
	if clamped == v.pageNumber {
		return false
	}
	logger.Debug(fmt.Sprintf("Page change: requested=%d clamped=%d", n, clamped), true)
	v.pageNumber = clamped
	return true
}

func (v *ViewportState) ZoomIn() bool  { return v.adjustZoom(v.cfg.ZoomStep) }
func (v *ViewportState) ZoomOut() bool { return v.adjustZoom(-v.cfg.ZoomStep) }

func (v *ViewportState) adjustZoom(delta float64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	next := clamp(v.cfg.ZoomMin, v.cfg.ZoomMax, v.zoomFactor+delta)
	if next == v.zoomFactor {
		return false
	}
	logger.Debug(fmt.Sprintf("Zoom change: factor=%.2f", next), true)
	v.zoomFactor = next
	return true
}

// ApplyPageCount records a freshly loaded document's page count and
// re-clamps the pending page request against it. A request beyond the new
// document's last page resets to page 1; an in-range request is preserved.
// Returns whether the visible page number changed.
func (v *ViewportState) ApplyPageCount(count int) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.pageCount = count
	next := v.requestedPage
	if next > count {
		logger.Debug(fmt.Sprintf("Requested page %d beyond new page count %d, resetting to 1", next, count), true)
		next = 1
	}
	next = clampPage(next, count)
	v.requestedPage = next
	if next == v.pageNumber {
		return false
	}
	v.pageNumber = next
	return true
}

func (v *ViewportState) PageCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pageCount
}

func clampPage(n, count int) int {
	if n < 1 {
		return 1
	}
	if n > count {
		return count
	}
	return n
}
