// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

// Package pdfcpux adapts pdfcpu to the preview engine's Decoder contract.
//
// The adapter is deliberately best-effort. Page count and page geometry
// are exact; text runs come from a literal-string scan of the page
// content stream, so hex- and CID-encoded text yields no runs (the
// highlight engine then simply finds no match, which is not an error);
// Draw paints the page background only, it does not rasterize content.
package pdfcpux

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/paperglass/preview"
)

type decoder struct {
	conf *model.Configuration
}

// New returns a pdfcpu-backed preview.Decoder.
func New() preview.Decoder {
	return &decoder{conf: model.NewDefaultConfiguration()}
}

func (d *decoder) Parse(ctx context.Context, data []byte) (preview.Document, error) {
	pdfContext, err := api.ReadValidateAndOptimize(bytes.NewReader(data), d.conf)
	if err != nil {
		return nil, err
	}
	dims, err := pdfContext.PageDims()
	if err != nil {
		return nil, err
	}
	return &document{ctx: pdfContext, dims: dims}, nil
}

type document struct {
	ctx  *model.Context
	dims []types.Dim
}

func (d *document) PageCount() int { return d.ctx.PageCount }

func (d *document) Page(n int) (preview.Page, error) {
	if n < 1 || n > d.ctx.PageCount {
		return nil, fmt.Errorf("page %d out of range [1,%d]", n, d.ctx.PageCount)
	}
	dim := types.Dim{Width: 612, Height: 792}
	if n-1 < len(d.dims) {
		dim = d.dims[n-1]
	}
	return &page{doc: d, number: n, dim: dim}, nil
}

type page struct {
	doc    *document
	number int
	dim    types.Dim
}

func (p *page) Viewport(scale float64) preview.Viewport {
	return preview.NewViewport(p.dim.Width, p.dim.Height, scale)
}

func (p *page) TextRuns(ctx context.Context) ([]preview.TextRun, error) {
	content, err := pdfcpu.ExtractPageContent(p.doc.ctx, p.number)
	if err != nil {
		return nil, err
	}
	raw, err := io.ReadAll(content)
	if err != nil {
		return nil, err
	}
	return scanTextRuns(raw), nil
}

// Draw paints the page background. Content rasterization is out of the
// adapter's scope; hosts wanting full-fidelity pixels plug in their own
// decoder.
func (p *page) Draw(ctx context.Context, c preview.Canvas, vp preview.Viewport) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.Clear(color.White)
	border := preview.Rect{Left: 0, Top: 0, Width: vp.Width, Height: vp.Height}
	c.StrokeRect(border, color.NRGBA{R: 0xd0, G: 0xd0, B: 0xd0, A: 0xff})
	return nil
}
