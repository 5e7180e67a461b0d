// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package mesh parses line-oriented mesh descriptions into immutable
// geometry. A mesh file contains one directive per line:
//
//	v <x> <y>          append a vertex position
//	t <i0> <i1> <i2>   append a triangle (topology becomes Triangles)
//	f <i0> <i1> <i2>   seed a triangle fan when no indices exist yet
//	f <i>              extend the fan by one index
//	n <name>           set the mesh's registry key
//
// Parsed meshes are never mutated; GPU upload and buffer ownership live
// in the render package.
package mesh

import (
	"github.com/gogpu/stage"
)

// Topology describes how indices group into primitives.
type Topology int

// Primitive topologies.
const (
	Triangles Topology = iota
	TriangleFan
	TriangleStrip
	Points
	Lines
)

// String returns the topology name.
func (t Topology) String() string {
	switch t {
	case Triangles:
		return "triangles"
	case TriangleFan:
		return "triangle-fan"
	case TriangleStrip:
		return "triangle-strip"
	case Points:
		return "points"
	case Lines:
		return "lines"
	default:
		return "unknown"
	}
}

// Mesh is an immutable geometry descriptor: vertex attributes, indices
// and the topology they assemble into. Colors and TexCoords are optional;
// when present they run parallel to Positions.
type Mesh struct {
	Name      string
	Positions []stage.Vec2
	Colors    []stage.Color
	TexCoords []stage.Vec2
	Indices   []uint16
	Topology  Topology
}

// PrimitiveCount returns how many primitives the index list assembles
// into under the mesh's topology.
func (m *Mesh) PrimitiveCount() int {
	n := len(m.Indices)
	switch m.Topology {
	case Triangles:
		return n / 3
	case TriangleFan, TriangleStrip:
		if n < 3 {
			return 0
		}
		return n - 2
	case Lines:
		return n / 2
	case Points:
		return n
	default:
		return 0
	}
}

// Validate checks the structural invariants a registry entry relies on:
// a non-empty name, at least one vertex, and all indices in range.
func (m *Mesh) Validate() error {
	if m.Name == "" {
		return ErrNoName
	}
	if len(m.Positions) == 0 {
		return ErrNoVertices
	}
	for _, idx := range m.Indices {
		if int(idx) >= len(m.Positions) {
			return &IndexRangeError{Index: idx, VertexCount: len(m.Positions)}
		}
	}
	if m.Colors != nil && len(m.Colors) != len(m.Positions) {
		return ErrAttributeLength
	}
	if m.TexCoords != nil && len(m.TexCoords) != len(m.Positions) {
		return ErrAttributeLength
	}
	return nil
}
