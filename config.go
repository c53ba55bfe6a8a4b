// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package preview

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/paperglass/preview/logger"
)

type Config struct {
	// Zoom clamp bounds and the step applied by ZoomIn/ZoomOut.
	ZoomMin  float64 `validate:"gt=0"`
	ZoomMax  float64 `validate:"gtfield=ZoomMin"`
	ZoomStep float64 `validate:"gt=0"`
	// FitScaleCap bounds how much a narrow page may be upscaled to fill a
	// wide container.
	FitScaleCap float64 `validate:"gt=0"`
	// RenderMargin is subtracted from the container width before the fit
	// scale is computed, in CSS pixels.
	RenderMargin float64 `validate:"min=0"`
	// DevicePixelRatio scales the physical bitmap relative to the CSS
	// size. 1 on standard displays, 2 on most high-density ones.
	DevicePixelRatio float64 `validate:"gt=0"`

	FetchTimeout time.Duration `validate:"required"`
	FetchRetries int           `validate:"min=0,max=5"`

	MaxConcurrentDecodes int `validate:"min=1,max=10"`
	RasterCacheSize      int `validate:"min=1,max=64"`

	DebugOn bool
	Logger  logger.LogFunc
}

func NewDefaultConfig() *Config {
	return &Config{
		ZoomMin:              0.7,
		ZoomMax:              2.5,
		ZoomStep:             0.1,
		FitScaleCap:          2.0,
		RenderMargin:         32,
		DevicePixelRatio:     1.0,
		FetchTimeout:         30 * time.Second,
		FetchRetries:         2,
		MaxConcurrentDecodes: 2,
		RasterCacheSize:      8,
	}
}

func (cfg *Config) Validate() error {
	logger.Debug("Validating Config Object")
	validate := validator.New()
	return validate.Struct(cfg)
}

// clamp bounds v into [lo, hi].
func clamp(lo, hi, v float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
