// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package camera derives world-to-NDC projections from the pose of one
// tracked scene object. It owns the zoom height and the free/first-person
// mode switch; turn and move inputs are applied to the tracked object
// itself so the rest of the world sees the camera entity like any other.
package camera

import (
	"github.com/gogpu/stage"
	"github.com/gogpu/stage/scene"
)

// Stock view parameters.
const (
	DefaultHeight = 1000
	MinHeight     = 500
	MaxHeight     = 2000
	HeightStep    = 5

	// TurnSpeed is the rate turn inputs rotate the tracked object, in
	// degrees per second. LinearSpeed is the forward translation rate in
	// world units per second.
	TurnSpeed   = 90
	LinearSpeed = 2

	// DefaultMinimapHeight is the fixed view height of the minimap
	// projection, wide enough to cover the stock ±5000 spawn extent.
	DefaultMinimapHeight = 12000
)

// Mode selects how the view basis is built.
type Mode int

const (
	// Free keeps the view axes world-aligned and smooths the eye toward
	// the tracked object's position.
	Free Mode = iota
	// FirstPerson locks the eye to the object and uses its right/up
	// vectors as the view basis.
	FirstPerson
)

func (m Mode) String() string {
	if m == FirstPerson {
		return "first-person"
	}
	return "free"
}

// Camera is the 2D view state bound to one tracked object. It is
// updated once per frame; all derived matrices are pure functions of
// the tracked pose, the zoom height and the aspect ratio, so identical
// inputs reproduce identical projections.
type Camera struct {
	target *scene.Object

	// Height is the world-space extent visible vertically. Zoom input
	// walks it between MinZoom and MaxZoom in Step increments,
	// reflecting at the bounds.
	Height  float32
	MinZoom float32
	MaxZoom float32
	Step    float32

	// MinimapHeight is the fixed extent of the minimap projection.
	MinimapHeight float32

	mode      Mode
	zoomDir   float32
	position  stage.Vec2
	aspect    float32
	view      stage.Mat3
	toNDC     stage.Mat3
	toMinimap stage.Mat3
}

// New binds a camera to target with the stock parameters. The eye
// starts on the target, so the first Free-mode frame has nothing to
// smooth over.
func New(target *scene.Object) *Camera {
	c := &Camera{
		target:        target,
		Height:        DefaultHeight,
		MinZoom:       MinHeight,
		MaxZoom:       MaxHeight,
		Step:          HeightStep,
		MinimapHeight: DefaultMinimapHeight,
		zoomDir:       1,
		aspect:        1,
	}
	if target != nil {
		c.position = target.Position
	}
	c.project()
	return c
}

// Bind retargets the camera. The eye snaps to the new object.
func (c *Camera) Bind(o *scene.Object) {
	c.target = o
	if o != nil {
		c.position = o.Position
	}
}

// Target returns the tracked object.
func (c *Camera) Target() *scene.Object { return c.target }

// Mode reports the view mode chosen on the last Update.
func (c *Camera) Mode() Mode { return c.mode }

// Position returns the eye position, which trails the target in Free
// mode.
func (c *Camera) Position() stage.Vec2 { return c.position }

// Update applies one frame of input and recomputes the projections.
// aspect is the framebuffer width over height, sampled fresh each frame
// so window resizes take effect immediately.
//
// The mode flag mirrors the toggle input's level rather than latching
// on its edge. The Free-mode follow uses an interpolation factor equal
// to dt clamped to one; at very low frame rates the eye snaps instead
// of easing, which is kept as-is.
func (c *Camera) Update(in *stage.Input, dt, aspect float32) {
	if aspect > 0 {
		c.aspect = aspect
	}

	c.mode = Free
	if in.Down(stage.ActionToggleCamera) {
		c.mode = FirstPerson
	}

	if c.target != nil {
		if in.Down(stage.ActionTurnLeft) {
			c.turn(TurnSpeed * dt)
		}
		if in.Down(stage.ActionTurnRight) {
			c.turn(-TurnSpeed * dt)
		}
		if in.Down(stage.ActionMoveForward) {
			c.target.Position = c.target.Position.Add(c.target.Up().Mul(LinearSpeed * dt))
			c.target.Refresh()
		}
	}

	if in.Down(stage.ActionZoom) {
		c.stepZoom()
	}

	c.follow(dt)
	c.project()
}

// turn rotates the tracked object, wrapping its angle into [-360, 360].
func (c *Camera) turn(deg float32) {
	a := c.target.Angle + deg
	for a > 360 {
		a -= 720
	}
	for a < -360 {
		a += 720
	}
	c.target.Angle = a
	c.target.Refresh()
}

// stepZoom advances the height one increment, reflecting direction at
// the bounds so sustained zoom input ping-pongs between them.
func (c *Camera) stepZoom() {
	c.Height += c.zoomDir * c.Step
	if c.Height >= c.MaxZoom {
		c.Height = c.MaxZoom
		c.zoomDir = -1
	} else if c.Height <= c.MinZoom {
		c.Height = c.MinZoom
		c.zoomDir = 1
	}
}

func (c *Camera) follow(dt float32) {
	if c.target == nil {
		return
	}
	if c.mode == FirstPerson {
		c.position = c.target.Position
		return
	}
	f := dt
	if f > 1 {
		f = 1
	}
	c.position = c.position.Lerp(c.target.Position, f)
}

// project rebuilds the view matrix and both projections. The view is
// the inverse of the camera-to-world placement: basis transposed, eye
// negated through the basis.
func (c *Camera) project() {
	right := stage.V2(1, 0)
	up := stage.V2(0, 1)
	if c.mode == FirstPerson && c.target != nil {
		right = c.target.Right()
		up = c.target.Up()
	}
	c.view = stage.Mat3{
		right.X, up.X, 0,
		right.Y, up.Y, 0,
		-right.Dot(c.position), -up.Dot(c.position), 1,
	}

	c.toNDC = windowToNDC(c.Height, c.aspect).Mul(c.view)
	c.toMinimap = windowToNDC(c.MinimapHeight, c.aspect).Mul(c.view)
}

// windowToNDC maps a camera window of the given vertical extent onto
// the [-1, 1] NDC square.
func windowToNDC(height, aspect float32) stage.Mat3 {
	return stage.Scaling(2/(height*aspect), 2/height)
}

// View returns the shared world-to-view transform.
func (c *Camera) View() stage.Mat3 { return c.view }

// WorldToNDC returns the main-viewport projection from the last Update.
func (c *Camera) WorldToNDC() stage.Mat3 { return c.toNDC }

// WorldToMinimap returns the fixed-scale minimap projection, which
// shares the view transform but ignores the zoom height.
func (c *Camera) WorldToMinimap() stage.Mat3 { return c.toMinimap }
