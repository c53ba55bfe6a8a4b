// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package preview

import (
	"context"
	"fmt"
	"sync"

	"github.com/paperglass/preview/logger"
	"golang.org/x/sync/semaphore"
)

// DocumentCache holds at most one decoded document, keyed by source
// identifier. The slot is replaced wholesale when the source changes;
// superseded handles are dropped, never reused. Decoding is bounded by a
// weighted semaphore so several engines sharing one cache cannot pile up
// concurrent decodes.
type DocumentCache struct {
	loader  *DecoderLoader
	fetcher Fetcher
	sem     *semaphore.Weighted

	mu        sync.Mutex
	sourceID  string
	doc       Document
	pageCount int
}

func NewDocumentCache(cfg *Config, loader *DecoderLoader, fetcher Fetcher) *DocumentCache {
	return &DocumentCache{
		loader:  loader,
		fetcher: fetcher,
		sem:     semaphore.NewWeighted(int64(cfg.MaxConcurrentDecodes)),
	}
}

// Ensure returns the document for sourceID and its page count. A hit on
// the cached source identifier performs no fetch or decode work; a miss
// fetches the bytes, decodes them, and replaces the slot atomically.
func (c *DocumentCache) Ensure(ctx context.Context, sourceID string) (Document, int, error) {
	c.mu.Lock()
	if c.doc != nil && c.sourceID == sourceID {
		doc, count := c.doc, c.pageCount
		c.mu.Unlock()
		logger.Debug(fmt.Sprintf("Document cache hit: source=%s pages=%d", sourceID, count), true)
		return doc, count, nil
	}
	c.mu.Unlock()

	decoder, err := c.loader.Load(ctx)
	if err != nil {
		return nil, 0, err
	}

	data, err := c.fetcher.Fetch(ctx, sourceID)
	if err != nil {
		return nil, 0, err
	}

	if err := c.sem.Acquire(ctx, 1); err != nil {
		return nil, 0, fmt.Errorf("acquire decode slot: %w", err)
	}
	doc, err := decoder.Parse(ctx, data)
	c.sem.Release(1)
	if err != nil {
		logger.Debug(fmt.Sprintf("Decode failed: source=%s err=%v", sourceID, err), true)
		return nil, 0, &DecodeError{SourceID: sourceID, Err: err}
	}

	count := doc.PageCount()
	logger.Debug(fmt.Sprintf("Document decoded: source=%s pages=%d", sourceID, count), true)

	c.mu.Lock()
	c.sourceID = sourceID
	c.doc = doc
	c.pageCount = count
	c.mu.Unlock()

	return doc, count, nil
}

// Invalidate drops the cached handle unconditionally.
func (c *DocumentCache) Invalidate() {
	c.mu.Lock()
	c.sourceID = ""
	c.doc = nil
	c.pageCount = 0
	c.mu.Unlock()
}
