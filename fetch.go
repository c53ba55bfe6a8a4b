// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package preview

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/paperglass/preview/logger"
)

// Fetcher retrieves the raw bytes behind a source identifier. The engine
// rides on whatever transport the host uses; HTTP GET by URL is the
// expected case, local files the other.
type Fetcher interface {
	Fetch(ctx context.Context, sourceID string) ([]byte, error)
}

// HTTPFetcher fetches bytes over HTTP(S).
type HTTPFetcher struct {
	client *resty.Client
}

func NewHTTPFetcher(cfg *Config) *HTTPFetcher {
	client := resty.New().
		SetTimeout(cfg.FetchTimeout).
		SetRetryCount(cfg.FetchRetries).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= 500
		})
	return &HTTPFetcher{client: client}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, sourceID string) ([]byte, error) {
	logger.Debug(fmt.Sprintf("Fetching bytes: source=%s", sourceID), true)
	resp, err := f.client.R().SetContext(ctx).Get(sourceID)
	if err != nil {
		return nil, &FetchError{SourceID: sourceID, Err: err}
	}
	if resp.IsError() {
		logger.Debug(fmt.Sprintf("Fetch failed: source=%s status=%d", sourceID, resp.StatusCode()), true)
		return nil, &FetchError{SourceID: sourceID, Status: resp.StatusCode()}
	}
	logger.Debug(fmt.Sprintf("Fetched %d bytes: source=%s", len(resp.Body()), sourceID), true)
	return resp.Body(), nil
}

// FileFetcher reads bytes from the local filesystem.
type FileFetcher struct{}

func (FileFetcher) Fetch(ctx context.Context, sourceID string) ([]byte, error) {
	data, err := os.ReadFile(sourceID)
	if err != nil {
		return nil, &FetchError{SourceID: sourceID, Err: err}
	}
	return data, nil
}

// DefaultFetcher routes URL-shaped identifiers to HTTP and everything
// else to the filesystem.
type DefaultFetcher struct {
	HTTP *HTTPFetcher
	File FileFetcher
}

func NewDefaultFetcher(cfg *Config) *DefaultFetcher {
	return &DefaultFetcher{HTTP: NewHTTPFetcher(cfg)}
}

func (f *DefaultFetcher) Fetch(ctx context.Context, sourceID string) ([]byte, error) {
	if strings.HasPrefix(sourceID, "http://") || strings.HasPrefix(sourceID, "https://") {
		return f.HTTP.Fetch(ctx, sourceID)
	}
	return f.File.Fetch(ctx, sourceID)
}
