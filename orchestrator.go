// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package preview

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/paperglass/preview/logger"
)

// CycleState is where a render cycle currently stands. Error is reachable
// from every other state.
type CycleState string

const (
	StateIdle         CycleState = "idle"
	StateLoading      CycleState = "loading"
	StateRendering    CycleState = "rendering"
	StateHighlighting CycleState = "highlighting"
	StateDone         CycleState = "done"
	StateError        CycleState = "error"
)

// Callbacks is the host-facing output surface. All callbacks are invoked
// from render-cycle goroutines; hosts that touch UI state must marshal
// onto their own loop. Nil members are skipped.
type Callbacks struct {
	OnPageChange  func(pageNumber int)
	OnPageCount   func(n int)
	OnRenderError func(message string)
	OnRendered    func(result *RasterResult)
}

// Orchestrator sequences loader, cache, renderer and highlighter on every
// input change. Each change starts a fresh render cycle under a new cycle
// token; a cycle checks its token before every state transition and every
// externally visible effect, so nothing from a superseded cycle lands
// after a newer cycle has started.
type Orchestrator struct {
	cfg         *Config
	cache       *DocumentCache
	renderer    *PageRenderer
	highlighter *HighlightEngine
	viewport    *ViewportState
	callbacks   Callbacks

	cycle atomic.Int64

	mu             sync.Mutex
	sourceID       string
	containerWidth float64
	target         HighlightTarget
	state          CycleState
	lastPage       int
	lastCount      int
	cancelPrev     context.CancelFunc

	wg sync.WaitGroup
}

// Options carries the host-provided pieces the orchestrator is built from.
// A nil Fetcher or Factory falls back to the defaults.
type Options struct {
	Fetcher        Fetcher
	Factory        DecoderFactory
	InitialPage    int
	ContainerWidth float64
	Style          *HighlightStyle
}

// NewOrchestrator validates the config and wires the engine together.
func NewOrchestrator(cfg *Config, opts Options, callbacks Callbacks) *Orchestrator {
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	if cfg.Logger != nil {
		logger.SetLogger(cfg.Logger)
	}

	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = NewDefaultFetcher(cfg)
	}
	if opts.Factory == nil {
		panic("preview: Options.Factory is required")
	}
	style := DefaultHighlightStyle()
	if opts.Style != nil {
		style = *opts.Style
	}

	renderer, err := NewPageRenderer(cfg)
	if err != nil {
		panic(err)
	}

	width := opts.ContainerWidth
	if width <= 0 {
		width = 800
	}

	logger.Debug(fmt.Sprintf("Orchestrator initialized: zoom=[%.2f,%.2f] fit_cap=%.2f dpr=%.2f",
		cfg.ZoomMin, cfg.ZoomMax, cfg.FitScaleCap, cfg.DevicePixelRatio), true)

	return &Orchestrator{
		cfg:            cfg,
		cache:          NewDocumentCache(cfg, NewDecoderLoader(opts.Factory), fetcher),
		renderer:       renderer,
		highlighter:    NewHighlightEngine(style),
		viewport:       NewViewportState(cfg, opts.InitialPage),
		callbacks:      callbacks,
		containerWidth: width,
		state:          StateIdle,
	}
}

// SetSource switches to a new source identifier. An unchanged identifier
// is a no-op; a changed one invalidates the raster cache and starts a new
// cycle.
func (o *Orchestrator) SetSource(sourceID string) {
	o.mu.Lock()
	if o.sourceID == sourceID {
		o.mu.Unlock()
		return
	}
	o.sourceID = sourceID
	o.mu.Unlock()

	o.renderer.PurgeRasterCache()
	o.schedule()
}

// SetPage requests a page change.
func (o *Orchestrator) SetPage(n int) {
	if o.viewport.SetPage(n) {
		o.schedule()
	}
}

// ZoomIn steps the zoom factor up, saturating at the configured maximum.
func (o *Orchestrator) ZoomIn() {
	if o.viewport.ZoomIn() {
		o.schedule()
	}
}

// ZoomOut steps the zoom factor down, saturating at the configured minimum.
func (o *Orchestrator) ZoomOut() {
	if o.viewport.ZoomOut() {
		o.schedule()
	}
}

// SetHighlight replaces the active highlight target.
func (o *Orchestrator) SetHighlight(target HighlightTarget) {
	o.mu.Lock()
	if targetsEqual(o.target, target) {
		o.mu.Unlock()
		return
	}
	o.target = target
	o.mu.Unlock()
	o.schedule()
}

func targetsEqual(a, b HighlightTarget) bool {
	if a.Query != b.Query || a.Page != b.Page {
		return false
	}
	if (a.Rect == nil) != (b.Rect == nil) {
		return false
	}
	return a.Rect == nil || *a.Rect == *b.Rect
}

// SetContainerWidth reports a layout change of the hosting container.
func (o *Orchestrator) SetContainerWidth(px float64) {
	o.mu.Lock()
	if o.containerWidth == px {
		o.mu.Unlock()
		return
	}
	o.containerWidth = px
	o.mu.Unlock()
	o.schedule()
}

// State reports where the most recent cycle stands.
func (o *Orchestrator) State() CycleState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Cycle reports the current cycle token. Useful for tests asserting
// supersession.
func (o *Orchestrator) Cycle() int64 { return o.cycle.Load() }

// Close cancels any in-flight cycle and waits for it to unwind.
func (o *Orchestrator) Close() {
	o.cycle.Add(1)
	o.mu.Lock()
	if o.cancelPrev != nil {
		o.cancelPrev()
	}
	o.mu.Unlock()
	o.wg.Wait()
}

// schedule supersedes any in-flight cycle and starts a fresh one.
func (o *Orchestrator) schedule() {
	token := o.cycle.Add(1)
	cycleID := uuid.NewString()

	ctx, cancel := context.WithCancel(context.Background())
	o.mu.Lock()
	if o.cancelPrev != nil {
		o.cancelPrev()
	}
	o.cancelPrev = cancel
	o.mu.Unlock()

	logger.Debug(fmt.Sprintf("Render cycle scheduled: cycle=%s token=%d", cycleID, token), true)

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		o.run(ctx, token, cycleID)
	}()
}

// stale reports whether the cycle owning token has been superseded.
func (o *Orchestrator) stale(token int64) bool {
	return o.cycle.Load() != token
}

// setState transitions the externally visible state, unless the cycle has
// been superseded.
func (o *Orchestrator) setState(token int64, s CycleState) bool {
	if o.stale(token) {
		return false
	}
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
	return true
}

func (o *Orchestrator) run(ctx context.Context, token int64, cycleID string) {
	o.mu.Lock()
	sourceID := o.sourceID
	width := o.containerWidth
	target := o.target
	o.mu.Unlock()

	if sourceID == "" {
		o.setState(token, StateIdle)
		return
	}

	if !o.setState(token, StateLoading) {
		return
	}
	doc, count, err := o.cache.Ensure(ctx, sourceID)
	if err != nil {
		o.fail(token, cycleID, err)
		return
	}
	if o.stale(token) {
		logger.Debug(fmt.Sprintf("Cycle superseded after load: cycle=%s", cycleID), true)
		return
	}

	o.viewport.ApplyPageCount(count)
	o.emitPageCount(token, count)

	pageNumber := o.viewport.PageNumber()
	zoom := o.viewport.ZoomFactor()
	o.emitPageChange(token, pageNumber)

	if !o.setState(token, StateRendering) {
		return
	}
	result, err := o.renderer.RenderPage(ctx, doc, sourceID, pageNumber, zoom, width)
	if err != nil {
		o.fail(token, cycleID, err)
		return
	}
	if o.stale(token) {
		logger.Debug(fmt.Sprintf("Cycle superseded after render: cycle=%s", cycleID), true)
		return
	}

	if !target.IsZero() {
		if !o.setState(token, StateHighlighting) {
			return
		}
		runs, err := result.Page.TextRuns(ctx)
		if err != nil {
			o.fail(token, cycleID, &RenderError{Page: pageNumber, Err: err})
			return
		}
		if o.stale(token) {
			return
		}
		corpus := BuildCorpus(runs)
		drawn := o.highlighter.Apply(result.Canvas, result.Viewport, pageNumber, corpus, target)
		logger.Debug(fmt.Sprintf("Highlight pass: cycle=%s drawn=%v", cycleID, drawn), true)
	}

	if !o.setState(token, StateDone) {
		return
	}
	if o.callbacks.OnRendered != nil {
		o.callbacks.OnRendered(result)
	}
	logger.Debug(fmt.Sprintf("Render cycle done: cycle=%s page=%d", cycleID, pageNumber), true)
}

// fail surfaces err to the host as a single message, unless superseded.
// The next successful cycle clears the error state unconditionally.
func (o *Orchestrator) fail(token int64, cycleID string, err error) {
	if o.stale(token) {
		logger.Debug(fmt.Sprintf("Error from superseded cycle dropped: cycle=%s err=%v", cycleID, err), true)
		return
	}
	logger.Error(fmt.Sprintf("Render cycle failed: cycle=%s err=%v", cycleID, err))
	o.mu.Lock()
	o.state = StateError
	o.mu.Unlock()
	if o.callbacks.OnRenderError != nil {
		o.callbacks.OnRenderError(err.Error())
	}
}

func (o *Orchestrator) emitPageCount(token int64, count int) {
	if o.stale(token) {
		return
	}
	o.mu.Lock()
	changed := o.lastCount != count
	o.lastCount = count
	o.mu.Unlock()
	if changed && o.callbacks.OnPageCount != nil {
		o.callbacks.OnPageCount(count)
	}
}

func (o *Orchestrator) emitPageChange(token int64, pageNumber int) {
	if o.stale(token) {
		return
	}
	o.mu.Lock()
	changed := o.lastPage != pageNumber
	o.lastPage = pageNumber
	o.mu.Unlock()
	if changed && o.callbacks.OnPageChange != nil {
		o.callbacks.OnPageChange(pageNumber)
	}
}
