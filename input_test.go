package stage

import "testing"

func TestInputLevel(t *testing.T) {
	in := NewInput()
	if in.Down(ActionZoom) {
		t.Fatal("action down before any press")
	}
	in.Press(ActionZoom)
	if !in.Down(ActionZoom) {
		t.Fatal("action not down after press")
	}
	in.Release(ActionZoom)
	if in.Down(ActionZoom) {
		t.Fatal("action still down after release")
	}
}

func TestInputEdgeConsumedOnce(t *testing.T) {
	in := NewInput()
	in.Press(ActionCycleFillMode)
	if !in.Pressed(ActionCycleFillMode) {
		t.Fatal("edge not reported after press")
	}
	if in.Pressed(ActionCycleFillMode) {
		t.Fatal("edge reported twice for one press")
	}
	// Held key across frames: no new edge until released and re-pressed.
	in.Press(ActionCycleFillMode)
	if in.Pressed(ActionCycleFillMode) {
		t.Fatal("repeat press while held produced a new edge")
	}
	in.Release(ActionCycleFillMode)
	in.Press(ActionCycleFillMode)
	if !in.Pressed(ActionCycleFillMode) {
		t.Fatal("edge not reported after release and re-press")
	}
}

func TestInputReset(t *testing.T) {
	in := NewInput()
	in.Press(ActionMoveForward)
	in.Reset()
	if in.Down(ActionMoveForward) || in.Pressed(ActionMoveForward) {
		t.Fatal("state survived Reset")
	}
}
