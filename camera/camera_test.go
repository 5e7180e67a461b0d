// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package camera

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/gogpu/stage"
	"github.com/gogpu/stage/scene"
)

func near(a, b float32) bool { return math32.Abs(a-b) <= 1e-4 }

func vecNear(a, b stage.Vec2) bool { return near(a.X, b.X) && near(a.Y, b.Y) }

func testObject() *scene.Object {
	o := &scene.Object{
		Name:     "cam",
		Position: stage.V2(0, 0),
		Scale:    stage.V2(1, 1),
	}
	o.Refresh()
	return o
}

func TestZoomReflectsAtBounds(t *testing.T) {
	c := New(testObject())
	in := &stage.Input{}
	in.Press(stage.ActionZoom)

	c.Height = 1995
	c.Update(in, 0.016, 1)
	if c.Height != 2000 {
		t.Fatalf("Height = %g, want 2000", c.Height)
	}
	c.Update(in, 0.016, 1)
	if c.Height != 1995 {
		t.Fatalf("Height after ceiling = %g, want 1995", c.Height)
	}

	c.Height = 505
	c.zoomDir = -1
	c.Update(in, 0.016, 1)
	if c.Height != 500 {
		t.Fatalf("Height = %g, want 500", c.Height)
	}
	c.Update(in, 0.016, 1)
	if c.Height != 505 {
		t.Fatalf("Height after floor = %g, want 505", c.Height)
	}
}

func TestModeMirrorsToggleLevel(t *testing.T) {
	c := New(testObject())
	in := &stage.Input{}

	c.Update(in, 0.016, 1)
	if c.Mode() != Free {
		t.Fatalf("Mode() = %v, want Free", c.Mode())
	}

	in.Press(stage.ActionToggleCamera)
	c.Update(in, 0.016, 1)
	if c.Mode() != FirstPerson {
		t.Fatalf("Mode() = %v, want FirstPerson", c.Mode())
	}
	c.Update(in, 0.016, 1)
	if c.Mode() != FirstPerson {
		t.Fatal("mode should hold while the toggle is down")
	}

	in.Release(stage.ActionToggleCamera)
	c.Update(in, 0.016, 1)
	if c.Mode() != Free {
		t.Fatalf("Mode() = %v, want Free after release", c.Mode())
	}
}

func TestTurnRotatesTarget(t *testing.T) {
	o := testObject()
	c := New(o)
	in := &stage.Input{}

	in.Press(stage.ActionTurnLeft)
	c.Update(in, 0.5, 1)
	if !near(o.Angle, 45) {
		t.Fatalf("Angle = %g, want 45", o.Angle)
	}

	in.Release(stage.ActionTurnLeft)
	in.Press(stage.ActionTurnRight)
	c.Update(in, 1, 1)
	if !near(o.Angle, -45) {
		t.Fatalf("Angle = %g, want -45", o.Angle)
	}
}

func TestTurnWraps(t *testing.T) {
	o := testObject()
	o.Angle = 350
	c := New(o)
	in := &stage.Input{}
	in.Press(stage.ActionTurnLeft)

	c.Update(in, 0.2, 1) // +18 degrees crosses the wrap point
	if !near(o.Angle, -352) {
		t.Fatalf("Angle = %g, want -352", o.Angle)
	}
}

func TestMoveAlongUp(t *testing.T) {
	o := testObject()
	o.Angle = 90 // up is now (-1, 0)
	o.Refresh()
	c := New(o)
	in := &stage.Input{}
	in.Press(stage.ActionMoveForward)

	c.Update(in, 1, 1)
	if !vecNear(o.Position, stage.V2(-LinearSpeed, 0)) {
		t.Fatalf("Position = %v, want (-%d, 0)", o.Position, LinearSpeed)
	}
}

func TestFreeFollowUsesDeltaTimeFactor(t *testing.T) {
	o := testObject()
	c := New(o)
	in := &stage.Input{}

	o.Position = stage.V2(100, 0)
	o.Refresh()

	// The follow factor equals dt, so a quarter-second frame covers a
	// quarter of the distance.
	c.Update(in, 0.25, 1)
	if !vecNear(c.Position(), stage.V2(25, 0)) {
		t.Fatalf("Position() = %v, want (25, 0)", c.Position())
	}

	// The factor clamps at one; a pathological frame snaps to the
	// target instead of overshooting.
	c.Update(in, 3, 1)
	if !vecNear(c.Position(), stage.V2(100, 0)) {
		t.Fatalf("Position() = %v, want (100, 0)", c.Position())
	}
}

func TestFirstPersonTracksExactly(t *testing.T) {
	o := testObject()
	c := New(o)
	in := &stage.Input{}
	in.Press(stage.ActionToggleCamera)

	o.Position = stage.V2(300, -200)
	o.Angle = 90
	o.Refresh()

	c.Update(in, 0.016, 1)
	if !vecNear(c.Position(), o.Position) {
		t.Fatalf("Position() = %v, want %v", c.Position(), o.Position)
	}

	// The view maps the eye to the origin and the object's right vector
	// to +X.
	origin := c.View().MulVec(o.Position)
	if !vecNear(origin, stage.V2(0, 0)) {
		t.Fatalf("view(eye) = %v, want origin", origin)
	}
	ahead := c.View().MulVec(o.Position.Add(o.Right()))
	if !vecNear(ahead, stage.V2(1, 0)) {
		t.Fatalf("view(eye+right) = %v, want (1, 0)", ahead)
	}
}

func TestWorldToNDCScale(t *testing.T) {
	c := New(testObject())
	in := &stage.Input{}
	c.Update(in, 0.016, 2) // height 1000, aspect 2

	got := c.WorldToNDC().MulVec(stage.V2(500, 250))
	if !vecNear(got, stage.V2(0.5, 0.5)) {
		t.Fatalf("NDC = %v, want (0.5, 0.5)", got)
	}
}

func TestMinimapIgnoresZoom(t *testing.T) {
	o := testObject()
	c := New(o)
	in := &stage.Input{}

	c.Update(in, 0.016, 1)
	before := c.WorldToMinimap()

	c.Height = 500
	c.Update(in, 0.016, 1)
	after := c.WorldToMinimap()

	for i := range before {
		if !near(before[i], after[i]) {
			t.Fatalf("minimap projection changed with zoom: %v vs %v", before, after)
		}
	}
}

func TestProjectionReproducible(t *testing.T) {
	build := func() stage.Mat3 {
		o := testObject()
		o.Position = stage.V2(123, -456)
		o.Angle = 37
		o.Refresh()
		c := New(o)
		in := &stage.Input{}
		in.Press(stage.ActionZoom)
		for i := 0; i < 10; i++ {
			c.Update(in, 0.016, 1.5)
		}
		return c.WorldToNDC()
	}

	a, b := build(), build()
	if a != b {
		t.Fatalf("projections diverged:\n%v\n%v", a, b)
	}
}
