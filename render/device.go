// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package render owns GPU resource residency for the engine: it uploads
// parsed meshes, compiled shader programs and decoded textures, hands
// back opaque handles, and consumes per-object draw calls.
//
// Two implementations exist. GPUDevice drives a wgpu/hal device and is
// what a windowing host embeds; Headless tracks resources in maps and
// backs tests and batch runs. Window/surface creation and render-pass
// presentation stay outside this module; a host encodes the staged
// draws of a GPUDevice against its own surface.
package render

import (
	"github.com/gogpu/stage"
	"github.com/gogpu/stage/mesh"
	"github.com/gogpu/stage/shader"
	"github.com/gogpu/stage/texture"
)

// Opaque resource handles. Each device maintains its own mapping from
// handles to backend resources; handles from one device are meaningless
// on another. The zero value is never a live resource.
type (
	// MeshID is an opaque handle to uploaded vertex/index buffers.
	MeshID uint64

	// ProgramID is an opaque handle to a pair of shader modules.
	ProgramID uint64

	// TextureID is an opaque handle to a sampled texture.
	TextureID uint64
)

// InvalidID is the zero handle, representing no resource.
const InvalidID = 0

// FillMode selects how primitives are rasterized.
type FillMode int

// Fill modes, cycled by the fill-mode input action.
const (
	FillSolid FillMode = iota
	FillLine
	FillPoint
)

// Rasterization sizes applied by hosts for the non-solid modes.
const (
	LineWidth = 5.0
	PointSize = 10.0
)

// Cycle returns the next fill mode in the Solid, Line, Point rotation.
func (f FillMode) Cycle() FillMode {
	return (f + 1) % 3
}

// String returns the fill mode name.
func (f FillMode) String() string {
	switch f {
	case FillSolid:
		return "solid"
	case FillLine:
		return "line"
	case FillPoint:
		return "point"
	default:
		return "unknown"
	}
}

// DrawCall describes one object for the current frame: which uploaded
// resources to bind and the uniforms to feed the vertex stage.
type DrawCall struct {
	Mesh    MeshID
	Program ProgramID

	// Texture is optional; InvalidID draws untextured.
	Texture TextureID

	// ModelToNDC is the full model-to-clip transform for this object.
	ModelToNDC stage.Mat3

	// Tint is the per-object color uniform.
	Tint stage.Color

	Fill FillMode
}

// Device uploads immutable resources once and consumes draw calls every
// frame. Implementations are not safe for concurrent use; the engine is
// single-threaded and frame-stepped.
type Device interface {
	// UploadMesh validates m and creates its GPU-side buffers.
	UploadMesh(m *mesh.Mesh) (MeshID, error)

	// UploadProgram creates shader modules for a compiled program.
	UploadProgram(p *shader.Program) (ProgramID, error)

	// UploadTexture creates a sampled texture from decoded pixels.
	UploadTexture(t *texture.Texture) (TextureID, error)

	// Draw stages one call for the current frame. Handles must refer to
	// live resources of this device.
	Draw(call DrawCall) error

	// Flush completes the frame: staged calls are handed to the backend
	// and the staging list is cleared.
	Flush() error

	// Close releases every resource owned by the device.
	Close() error
}
