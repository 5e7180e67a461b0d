// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package stage

// Action identifies one discrete input the engine reacts to. The mapping
// from physical keys or buttons to actions is owned by the windowing
// collaborator; the engine only ever sees these.
type Action int

// Input actions.
const (
	// ActionToggleCamera switches the camera between free and
	// first-person mode while held.
	ActionToggleCamera Action = iota

	// ActionZoom steps the camera view height while held.
	ActionZoom

	// ActionTurnLeft rotates the camera's bound object counter-clockwise.
	ActionTurnLeft

	// ActionTurnRight rotates the camera's bound object clockwise.
	ActionTurnRight

	// ActionMoveForward translates the bound object along its up vector.
	ActionMoveForward

	// ActionTogglePopulation drives the spawn/despawn population controller.
	ActionTogglePopulation

	// ActionCycleFillMode cycles the raster fill mode Fill, Line, Point.
	ActionCycleFillMode

	numActions
)

// Input is the per-frame input surface. The window layer records press
// and release events as they arrive; the engine samples levels and edges
// once per frame during update.
//
// An edge is latched by Press and consumed by the first Pressed call, so
// a key held across many frames triggers edge-sensitive behavior exactly
// once, while Down keeps reporting the held level.
type Input struct {
	down [numActions]bool
	edge [numActions]bool
}

// NewInput returns an Input with all actions released.
func NewInput() *Input {
	return &Input{}
}

// Press records that the action's key went down.
func (in *Input) Press(a Action) {
	if !in.down[a] {
		in.edge[a] = true
	}
	in.down[a] = true
}

// Release records that the action's key went up.
func (in *Input) Release(a Action) {
	in.down[a] = false
}

// Down reports whether the action's key is currently held.
func (in *Input) Down(a Action) bool {
	return in.down[a]
}

// Pressed reports whether the action transitioned to held since the last
// call, consuming the edge.
func (in *Input) Pressed(a Action) bool {
	if in.edge[a] {
		in.edge[a] = false
		return true
	}
	return false
}

// Reset releases all actions and clears pending edges.
func (in *Input) Reset() {
	*in = Input{}
}
