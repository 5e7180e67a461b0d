// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package scene holds the live world: named objects with resolved model
// and shader references, the registries that back them, and the scene
// file loader that populates a World from disk.
package scene

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/stage"
	"github.com/gogpu/stage/mesh"
	"github.com/gogpu/stage/render"
	"github.com/gogpu/stage/shader"
)

// Model pairs a parsed mesh with its uploaded GPU handle. A model is
// created once per name and shared by every object that references it.
type Model struct {
	Name string
	Mesh *mesh.Mesh
	ID   render.MeshID
}

// Object is one live entity. Its model and shader fields hold both the
// lookup keys from the scene file and the references resolved at load
// time, so per-frame code never touches a registry.
type Object struct {
	Name string

	// Lookup keys as they appeared in the scene file.
	ModelName  string
	ShaderName string

	Model     *Model
	Program   *shader.Program
	ProgramID render.ProgramID
	TextureID render.TextureID

	Color stage.Color

	Position stage.Vec2
	Scale    stage.Vec2

	// Angle and AngularSpeed are in degrees and degrees per second.
	Angle        float32
	AngularSpeed float32

	ModelToWorld   stage.Mat3
	ModelToNDC     stage.Mat3
	ModelToMinimap stage.Mat3
}

// Update advances the orientation by AngularSpeed over dt seconds and
// rebuilds the model-to-world matrix as translate * rotate * scale.
func (o *Object) Update(dt float32) {
	o.Angle += o.AngularSpeed * dt
	o.computeWorld()
}

// Refresh rebuilds the world matrix after a direct pose mutation, for
// callers that drive an object's pose themselves rather than through
// Update.
func (o *Object) Refresh() { o.computeWorld() }

func (o *Object) computeWorld() {
	t := stage.Translation(o.Position.X, o.Position.Y)
	r := stage.RotationDeg(o.Angle)
	s := stage.Scaling(o.Scale.X, o.Scale.Y)
	o.ModelToWorld = t.Mul(r).Mul(s)
}

// Project concatenates the object's world matrix with the two view
// projections for the frame.
func (o *Object) Project(worldToNDC, worldToMinimap stage.Mat3) {
	o.ModelToNDC = worldToNDC.Mul(o.ModelToWorld)
	o.ModelToMinimap = worldToMinimap.Mul(o.ModelToWorld)
}

// Up is the object's local +Y axis in world space: (-sin a, cos a).
func (o *Object) Up() stage.Vec2 {
	sin, cos := math32.Sincos(stage.Radians(o.Angle))
	return stage.V2(-sin, cos)
}

// Right is the object's local +X axis in world space: (cos a, sin a).
func (o *Object) Right() stage.Vec2 {
	sin, cos := math32.Sincos(stage.Radians(o.Angle))
	return stage.V2(cos, sin)
}
