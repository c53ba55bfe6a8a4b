// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package preview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAffineTransform_Apply(t *testing.T) {
	id := Identity()
	x, y := id.Apply(3, 4)
	assert.Equal(t, 3.0, x)
	assert.Equal(t, 4.0, y)

	// scale 2 then translate (10, 20)
	m := AffineTransform{A: 2, D: 2}.Mul(AffineTransform{A: 1, D: 1, E: 10, F: 20})
	x, y = m.Apply(3, 4)
	assert.Equal(t, 16.0, x)
	assert.Equal(t, 28.0, y)
}

func TestAffineTransform_MulOrder(t *testing.T) {
	scale := AffineTransform{A: 2, D: 2}
	translate := AffineTransform{A: 1, D: 1, E: 5, F: 0}

	// scale first, then translate: (1,0) -> (2,0) -> (7,0)
	x, _ := scale.Mul(translate).Apply(1, 0)
	assert.Equal(t, 7.0, x)

	// translate first, then scale: (1,0) -> (6,0) -> (12,0)
	x, _ = translate.Mul(scale).Apply(1, 0)
	assert.Equal(t, 12.0, x)
}

func TestAffineTransform_VerticalMagnitude(t *testing.T) {
	assert.Equal(t, 1.0, Identity().VerticalMagnitude())
	assert.Equal(t, 12.0, AffineTransform{A: 12, D: 12}.VerticalMagnitude())
	// rotated basis still has its length
	assert.InDelta(t, 5.0, AffineTransform{C: 3, D: 4}.VerticalMagnitude(), 1e-9)
}

func TestRectFromCorners_Normalizes(t *testing.T) {
	r := RectFromCorners(110, 100, 10, 50)
	assert.Equal(t, 10.0, r.Left)
	assert.Equal(t, 50.0, r.Top)
	assert.Equal(t, 100.0, r.Width)
	assert.Equal(t, 50.0, r.Height)
}

func TestPageRect_FlipY(t *testing.T) {
	// page height 800, rect y-up [700, 750] flips to y-down [50, 100]
	r := PageRect{X0: 10, Y0: 700, X1: 110, Y1: 750}
	f := r.FlipY(800)
	assert.Equal(t, PageRect{X0: 10, Y0: 50, X1: 110, Y1: 100}, f)
}

func TestViewport_ConvertRect_IdentityTransform(t *testing.T) {
	vp := Viewport{Width: 600, Height: 800, Scale: 1, Transform: Identity()}
	r := vp.ConvertRect(PageRect{X0: 10, Y0: 50, X1: 110, Y1: 100})
	assert.Equal(t, 100.0, r.Width)
	assert.Equal(t, 50.0, r.Height)
	assert.Equal(t, 10.0, r.Left)
	assert.Equal(t, 50.0, r.Top)
}

func TestNewViewport(t *testing.T) {
	vp := NewViewport(600, 800, 1.5)
	assert.Equal(t, 900.0, vp.Width)
	assert.Equal(t, 1200.0, vp.Height)

	// page origin (bottom-left) maps to the bitmap's bottom-left
	x, y := vp.Transform.Apply(0, 0)
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 1200.0, y)

	// top of the page maps to device y 0
	_, y = vp.Transform.Apply(0, 800)
	assert.Equal(t, 0.0, y)
}
