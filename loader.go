// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package preview

import (
	"context"
	"sync"

	"github.com/paperglass/preview/logger"
	"golang.org/x/sync/singleflight"
)

// DecoderFactory produces the document-decoding capability. Loading may be
// expensive (the original host loads it lazily), so DecoderLoader calls it
// at most once per successful load.
type DecoderFactory func(ctx context.Context) (Decoder, error)

// DecoderLoader memoizes the decoder. The first Load performs the factory
// call; every later Load returns the cached decoder. Concurrent first
// calls share a single flight. A failed load is not cached, so a later
// call may retry.
type DecoderLoader struct {
	factory DecoderFactory

	mu      sync.Mutex
	decoder Decoder
	group   singleflight.Group
}

func NewDecoderLoader(factory DecoderFactory) *DecoderLoader {
	return &DecoderLoader{factory: factory}
}

// Load returns the decoder, loading it on first use.
func (l *DecoderLoader) Load(ctx context.Context) (Decoder, error) {
	l.mu.Lock()
	cached := l.decoder
	l.mu.Unlock()
	if cached != nil {
		return cached, nil
	}

	v, err, _ := l.group.Do("decoder", func() (interface{}, error) {
		logger.Debug("Loading decoder module", true)
		d, err := l.factory(ctx)
		if err != nil {
			return nil, &DecodeModuleError{Err: err}
		}
		l.mu.Lock()
		l.decoder = d
		l.mu.Unlock()
		logger.Debug("Decoder module loaded", true)
		return d, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(Decoder), nil
}
