package render

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/stage"
	"github.com/gogpu/stage/mesh"
)

// VertexStride is the byte size of one interleaved vertex:
// position vec2, color vec3, texcoord vec2, all float32.
const VertexStride = (2 + 3 + 2) * 4

// UniformSize is the byte size of the per-draw uniform block:
// a std140 mat3 (three vec4-aligned columns) followed by a vec4 tint.
const UniformSize = (3*4 + 4) * 4

// InterleaveVertices packs a mesh's attributes into the interleaved
// layout the vertex stage consumes. Missing colors default to white and
// missing texture coordinates to the origin, so one vertex layout serves
// every pipeline.
func InterleaveVertices(m *mesh.Mesh) []byte {
	out := make([]byte, 0, len(m.Positions)*VertexStride)
	for i, p := range m.Positions {
		c := stage.RGB(1, 1, 1)
		if m.Colors != nil {
			c = m.Colors[i]
		}
		var uv stage.Vec2
		if m.TexCoords != nil {
			uv = m.TexCoords[i]
		}
		out = appendFloats(out, p.X, p.Y, c.R, c.G, c.B, uv.X, uv.Y)
	}
	return out
}

// PackIndices encodes mesh indices as little-endian uint16.
func PackIndices(indices []uint16) []byte {
	out := make([]byte, len(indices)*2)
	for i, idx := range indices {
		binary.LittleEndian.PutUint16(out[i*2:], idx)
	}
	return out
}

// PackDrawUniform encodes a draw call's uniforms with std140 layout:
// each mat3 column padded to a vec4, then the tint as a vec4.
func PackDrawUniform(m stage.Mat3, tint stage.Color) []byte {
	out := make([]byte, 0, UniformSize)
	for col := 0; col < 3; col++ {
		out = appendFloats(out, m[col*3], m[col*3+1], m[col*3+2], 0)
	}
	out = appendFloats(out, tint.R, tint.G, tint.B, 1)
	return out
}

func appendFloats(dst []byte, vals ...float32) []byte {
	for _, v := range vals {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(v))
	}
	return dst
}
